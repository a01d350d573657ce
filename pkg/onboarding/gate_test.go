package onboarding

import (
	"testing"

	"gitlab.com/tinyland/lab/daybook/pkg/prefs"
)

func TestGateInitialDecision(t *testing.T) {
	tests := []struct {
		name   string
		flag   string
		counts Counts
		want   bool
	}{
		{"fresh user", "", Counts{}, true},
		{"has a task", "", Counts{Tasks: 1}, false},
		{"has a habit", "", Counts{Habits: 2}, false},
		{"completed", "true", Counts{}, false},
		{"completed with data", "true", Counts{Tasks: 3, Habits: 1}, false},
		{"flag not exactly true", "yes", Counts{}, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			store := prefs.NewMemoryStore()
			if tt.flag != "" {
				_ = store.Set(prefs.KeyOnboardingCompleted, tt.flag)
			}
			g := NewGate(store, nil)
			g.Mount(tt.counts)
			if g.IsOpen() != tt.want {
				t.Errorf("IsOpen() = %v, want %v", g.IsOpen(), tt.want)
			}
		})
	}
}

func TestGateNewDataDoesNotClose(t *testing.T) {
	g := NewGate(prefs.NewMemoryStore(), nil)
	g.Mount(Counts{})
	g.SetCounts(Counts{Tasks: 1})
	if !g.IsOpen() {
		t.Error("adding data must not close an open tour")
	}
}

func TestGateOpensWhenDataDisappears(t *testing.T) {
	g := NewGate(prefs.NewMemoryStore(), nil)
	g.Mount(Counts{Tasks: 1})
	if g.IsOpen() {
		t.Fatal("should start closed with data")
	}
	g.SetCounts(Counts{})
	if !g.IsOpen() {
		t.Error("should open once the data is gone")
	}
}

func TestGateUserCloseSticks(t *testing.T) {
	g := NewGate(prefs.NewMemoryStore(), nil)
	g.Mount(Counts{})

	h := g.Handle()
	if !h.IsOpen {
		t.Fatal("handle should report open")
	}
	h.OnClose()
	if g.IsOpen() {
		t.Fatal("OnClose did not close the gate")
	}

	g.SetCounts(Counts{Tasks: 1})
	g.SetCounts(Counts{})
	if g.IsOpen() {
		t.Error("a closed tour must not re-open this session")
	}
}

func TestGateRemountReadsFlag(t *testing.T) {
	store := prefs.NewMemoryStore()
	g := NewGate(store, nil)
	g.Mount(Counts{})
	_ = prefs.SetTrue(store, prefs.KeyOnboardingCompleted)

	if !g.IsOpen() {
		t.Error("flag is read once per mount, not continuously")
	}
	g.Unmount()
	g.Mount(Counts{})
	if g.IsOpen() {
		t.Error("remount should see the completion flag")
	}
}

func TestGateNilStore(t *testing.T) {
	g := NewGate(nil, nil)
	g.Mount(Counts{})
	if !g.IsOpen() {
		t.Error("nil store reads as not completed")
	}
}
