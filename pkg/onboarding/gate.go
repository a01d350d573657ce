// Package onboarding decides when first-run guidance is shown and renders the
// short guided tour itself.
//
// The Gate opens the tour for a user who has neither finished it before nor
// created any data. Once open, only the user closes it.
package onboarding

import (
	"log/slog"

	"gitlab.com/tinyland/lab/daybook/pkg/logging"
	"gitlab.com/tinyland/lab/daybook/pkg/prefs"
)

// Counts is the slice of the data store the gate looks at.
type Counts struct {
	Tasks  int
	Habits int
}

// HasData reports whether the user has created anything.
func (c Counts) HasData() bool {
	return c.Tasks > 0 || c.Habits > 0
}

// CountsMsg carries fresh counts from the data store.
type CountsMsg struct {
	Counts Counts
}

// Handle is what the onboarding UI sees of the gate.
type Handle struct {
	IsOpen  bool
	OnClose func()
}

// Gate owns the open/closed state of the onboarding tour.
type Gate struct {
	store  prefs.Store
	logger *slog.Logger

	mounted      bool
	completed    bool
	counts       Counts
	open         bool
	closedByUser bool
}

// NewGate creates an unmounted gate.
func NewGate(store prefs.Store, logger *slog.Logger) *Gate {
	return &Gate{
		store:  store,
		logger: logging.OrDiscard(logger).With(logging.Component("onboarding")),
	}
}

// Mount reads the completion flag and decides initial visibility.
func (g *Gate) Mount(counts Counts) {
	g.mounted = true
	g.completed = prefs.IsTrue(g.store, prefs.KeyOnboardingCompleted)
	g.counts = counts
	g.closedByUser = false
	g.open = g.shouldOpen()
	g.logger.Debug("mounted",
		slog.Bool("completed", g.completed),
		slog.Int("tasks", counts.Tasks),
		slog.Int("habits", counts.Habits),
		slog.Bool("open", g.open))
}

// Unmount stops the gate from reacting to count changes.
func (g *Gate) Unmount() {
	g.mounted = false
}

// SetCounts re-derives visibility after the data changed. New data never
// closes an open tour, and a tour the user closed stays closed.
func (g *Gate) SetCounts(counts Counts) {
	if !g.mounted || counts == g.counts {
		return
	}
	g.counts = counts
	if !g.open && g.shouldOpen() {
		g.open = true
		g.logger.Debug("opened after data change")
	}
}

// Close records that the user closed the tour.
func (g *Gate) Close() {
	if !g.open {
		return
	}
	g.open = false
	g.closedByUser = true
	g.logger.Debug("closed by user")
}

// IsOpen reports whether the tour should be shown.
func (g *Gate) IsOpen() bool {
	return g.open
}

// Handle returns the collaborator view of the gate.
func (g *Gate) Handle() Handle {
	return Handle{IsOpen: g.open, OnClose: g.Close}
}

func (g *Gate) shouldOpen() bool {
	return !g.completed && !g.closedByUser && !g.counts.HasData()
}
