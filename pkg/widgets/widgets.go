// Package widgets provides the body widgets of the daybook TUI. Each widget
// implements the app.Widget interface and receives data via the
// Elm-architecture Update loop.
package widgets

import (
	"gitlab.com/tinyland/lab/daybook/pkg/app"
	"gitlab.com/tinyland/lab/daybook/pkg/tasks"
)

// Item markers.
const (
	markOpen  = "○"
	markDone  = "✓"
	markHabit = "◇"
)

var (
	_ app.Widget = (*TasksWidget)(nil)
	_ app.Widget = (*HabitsWidget)(nil)
)

// snapshotFrom extracts a data snapshot from a DataUpdateEvent for the tasks
// collector.
func snapshotFrom(msg app.DataUpdateEvent) (tasks.Snapshot, bool) {
	if msg.Source != tasks.CollectorName || msg.Err != nil {
		return tasks.Snapshot{}, false
	}
	snap, ok := msg.Data.(tasks.Snapshot)
	return snap, ok
}

// scrollWindow clamps offset so a list of n items fills rows lines.
func scrollWindow(offset, n, rows int) int {
	if rows <= 0 || n <= rows {
		return 0
	}
	if offset > n-rows {
		offset = n - rows
	}
	if offset < 0 {
		offset = 0
	}
	return offset
}
