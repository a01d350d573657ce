// Package connectivity tracks whether daybook can reach the network and
// drives the transient status banner shown above the main view.
//
// Raw reachability samples come from a probe running under the collector
// runner. A Tracker turns those samples into edge transitions (ChangedMsg),
// and the Monitor turns transitions into banner state: every transition shows
// the banner, and only a transition to online schedules it to hide again.
package connectivity

import (
	"log/slog"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"gitlab.com/tinyland/lab/daybook/pkg/logging"
	"gitlab.com/tinyland/lab/daybook/pkg/timer"
)

// DefaultBannerHide is how long the "back online" banner stays up.
const DefaultBannerHide = 3 * time.Second

// ChangedMsg reports a connectivity transition.
type ChangedMsg struct {
	Online bool
	At     time.Time
}

type hideBannerMsg struct {
	gen uint64
}

// Monitor holds the connectivity banner state. It must only be used from the
// Bubble Tea update goroutine.
type Monitor struct {
	hideAfter time.Duration
	sched     timer.Scheduler
	logger    *slog.Logger

	mounted bool
	online  bool
	visible bool
	hide    timer.Slot
}

// NewMonitor creates an unmounted monitor. A non-positive hideAfter uses
// DefaultBannerHide; a nil scheduler uses tea.Tick.
func NewMonitor(hideAfter time.Duration, sched timer.Scheduler, logger *slog.Logger) *Monitor {
	if hideAfter <= 0 {
		hideAfter = DefaultBannerHide
	}
	if sched == nil {
		sched = timer.TickScheduler{}
	}
	return &Monitor{
		hideAfter: hideAfter,
		sched:     sched,
		logger:    logging.OrDiscard(logger).With(logging.Component("connectivity")),
		online:    true,
	}
}

// Mount starts tracking from the current reachability. Starting offline shows
// the banner at once; no hide is ever scheduled at mount.
func (m *Monitor) Mount(online bool) {
	m.mounted = true
	m.online = online
	m.visible = !online
	m.hide.Cancel()
	m.logger.Debug("mounted", logging.Online(online))
}

// Unmount stops reacting to transitions and makes any pending hide inert.
func (m *Monitor) Unmount() {
	m.mounted = false
	m.hide.Cancel()
}

// Update applies connectivity messages. It returns the command that will hide
// the banner, if one is needed.
func (m *Monitor) Update(msg tea.Msg) tea.Cmd {
	switch msg := msg.(type) {
	case ChangedMsg:
		return m.transition(msg.Online)
	case hideBannerMsg:
		if !m.mounted || !m.hide.Fire(msg.gen) {
			return nil
		}
		m.visible = false
	}
	return nil
}

func (m *Monitor) transition(online bool) tea.Cmd {
	if !m.mounted {
		return nil
	}
	m.online = online
	m.visible = true
	m.logger.Info("connectivity changed", logging.Online(online))

	if !online {
		m.hide.Cancel()
		return nil
	}
	gen := m.hide.Arm()
	return m.sched.After(m.hideAfter, hideBannerMsg{gen: gen})
}

// IsOnline reports the last known reachability.
func (m *Monitor) IsOnline() bool {
	return m.online
}

// ShouldShowBanner reports whether the banner is currently visible.
func (m *Monitor) ShouldShowBanner() bool {
	return m.visible
}
