// Package app is the composition root of the daybook TUI. AppModel mounts
// the lifecycle components (connectivity banner, install prompt, onboarding
// gate), feeds them the background signals, and renders the body widgets
// beneath them.
//
// This package is designed against bubbletea v1.3.x but architected so that
// migrating to v2 requires only import-path changes and minor API adjustments.
package app

import (
	"time"

	tea "github.com/charmbracelet/bubbletea"
)

// DataUpdateEvent carries new data from a collector goroutine back into the
// bubbletea update loop. Receivers type-assert Data based on Source.
type DataUpdateEvent struct {
	Source    string      // Collector name (e.g., "network", "tasks")
	Data      interface{} // Type-asserted by the receiver
	Err       error       // Non-nil if the sample failed
	Timestamp time.Time
}

// TickEvent is sent periodically to refresh the date header.
type TickEvent struct {
	Time time.Time
}

// updatesClosedMsg reports that the collector runner has stopped.
type updatesClosedMsg struct{}

// Widget is a body panel.
type Widget interface {
	ID() string
	Title() string
	Update(msg tea.Msg) tea.Cmd
	View(width, height int) string
	MinSize() (int, int)
	HandleKey(key tea.KeyMsg) tea.Cmd
}
