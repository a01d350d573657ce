package connectivity

import (
	"strings"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"gitlab.com/tinyland/lab/daybook/pkg/timer"
)

func newTestMonitor(online bool) (*Monitor, *timer.Recorder) {
	rec := &timer.Recorder{}
	m := NewMonitor(0, rec, nil)
	m.Mount(online)
	return m, rec
}

// deliver runs cmd and feeds the resulting message back into m.
func deliver(m *Monitor, cmd tea.Cmd) tea.Cmd {
	if cmd == nil {
		return nil
	}
	return m.Update(cmd())
}

func TestMountOnline(t *testing.T) {
	m, rec := newTestMonitor(true)
	if !m.IsOnline() {
		t.Error("IsOnline() = false, want true")
	}
	if m.ShouldShowBanner() {
		t.Error("banner should be hidden when mounted online")
	}
	if rec.Len() != 0 {
		t.Errorf("scheduled %d timers at mount, want 0", rec.Len())
	}
}

func TestMountOfflineShowsBannerWithoutTimer(t *testing.T) {
	m, rec := newTestMonitor(false)
	if m.IsOnline() {
		t.Error("IsOnline() = true, want false")
	}
	if !m.ShouldShowBanner() {
		t.Error("banner should be visible when mounted offline")
	}
	if rec.Len() != 0 {
		t.Errorf("scheduled %d timers at mount, want 0", rec.Len())
	}
}

func TestOnlineTransitionHidesAfterDelay(t *testing.T) {
	m, rec := newTestMonitor(false)

	cmd := m.Update(ChangedMsg{Online: true})
	if cmd == nil {
		t.Fatal("online transition should schedule a hide")
	}
	if !m.ShouldShowBanner() || !m.IsOnline() {
		t.Fatal("banner should show the online state")
	}
	last, _ := rec.Last()
	if last.Delay != 3*time.Second {
		t.Errorf("hide delay = %v, want 3s", last.Delay)
	}

	deliver(m, cmd)
	if m.ShouldShowBanner() {
		t.Error("banner should be hidden after the delay")
	}
}

func TestOfflineTransitionHasNoAutoHide(t *testing.T) {
	m, rec := newTestMonitor(true)
	if cmd := m.Update(ChangedMsg{Online: false}); cmd != nil {
		t.Error("offline transition should not schedule anything")
	}
	if !m.ShouldShowBanner() || m.IsOnline() {
		t.Error("banner should show the offline state")
	}
	if rec.Len() != 0 {
		t.Errorf("scheduled %d timers, want 0", rec.Len())
	}
}

func TestOfflineSupersedesPendingHide(t *testing.T) {
	m, _ := newTestMonitor(false)

	hide := m.Update(ChangedMsg{Online: true})
	m.Update(ChangedMsg{Online: false})

	deliver(m, hide)
	if !m.ShouldShowBanner() {
		t.Fatal("stale hide must not clear the offline banner")
	}
	if m.IsOnline() {
		t.Error("IsOnline() = true after offline transition")
	}
}

func TestRapidOnlineTransitionsOnlyLatestHides(t *testing.T) {
	m, _ := newTestMonitor(false)

	first := m.Update(ChangedMsg{Online: true})
	m.Update(ChangedMsg{Online: false})
	second := m.Update(ChangedMsg{Online: true})

	deliver(m, first)
	if !m.ShouldShowBanner() {
		t.Fatal("first hide is stale and must be ignored")
	}
	deliver(m, second)
	if m.ShouldShowBanner() {
		t.Error("latest hide should clear the banner")
	}
}

func TestUnmountMakesHideInert(t *testing.T) {
	m, _ := newTestMonitor(false)
	hide := m.Update(ChangedMsg{Online: true})
	m.Unmount()

	deliver(m, hide)
	if !m.ShouldShowBanner() {
		t.Error("hide after unmount must not mutate state")
	}
	if cmd := m.Update(ChangedMsg{Online: false}); cmd != nil {
		t.Error("unmounted monitor should ignore transitions")
	}
}

func TestCustomHideDelay(t *testing.T) {
	rec := &timer.Recorder{}
	m := NewMonitor(500*time.Millisecond, rec, nil)
	m.Mount(true)
	m.Update(ChangedMsg{Online: true})

	last, ok := rec.Last()
	if !ok || last.Delay != 500*time.Millisecond {
		t.Errorf("delay = %v, want 500ms", last.Delay)
	}
}

func TestView(t *testing.T) {
	m, _ := newTestMonitor(true)
	if got := m.View(80); got != "" {
		t.Errorf("hidden banner View() = %q, want empty", got)
	}

	m.Update(ChangedMsg{Online: false})
	if got := m.View(80); !strings.Contains(got, "offline") {
		t.Errorf("offline View() = %q", got)
	}

	m.Update(ChangedMsg{Online: true})
	if got := m.View(80); !strings.Contains(got, "Back online") {
		t.Errorf("online View() = %q", got)
	}
}
