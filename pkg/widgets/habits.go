package widgets

import (
	tea "github.com/charmbracelet/bubbletea"

	"gitlab.com/tinyland/lab/daybook/pkg/app"
	"gitlab.com/tinyland/lab/daybook/pkg/components"
	"gitlab.com/tinyland/lab/daybook/pkg/tasks"
)

// HabitsWidget lists the user's daily habits.
type HabitsWidget struct {
	items  []tasks.Habit
	loaded bool
	offset int
}

// NewHabitsWidget creates an empty habits widget.
func NewHabitsWidget() *HabitsWidget {
	return &HabitsWidget{}
}

func (w *HabitsWidget) ID() string          { return "habits" }
func (w *HabitsWidget) Title() string       { return "Habits" }
func (w *HabitsWidget) MinSize() (int, int) { return 24, 4 }

// Update stores snapshots from the tasks collector.
func (w *HabitsWidget) Update(msg tea.Msg) tea.Cmd {
	if ev, ok := msg.(app.DataUpdateEvent); ok {
		if snap, ok := snapshotFrom(ev); ok {
			w.items = snap.Habits
			w.loaded = true
		}
	}
	return nil
}

// HandleKey scrolls the list.
func (w *HabitsWidget) HandleKey(key tea.KeyMsg) tea.Cmd {
	switch key.String() {
	case "up", "k":
		if w.offset > 0 {
			w.offset--
		}
	case "down", "j":
		if w.offset < len(w.items)-1 {
			w.offset++
		}
	}
	return nil
}

// View renders the list body.
func (w *HabitsWidget) View(width, height int) string {
	if width <= 0 || height <= 0 {
		return ""
	}
	if !w.loaded {
		return components.FitLines([]string{components.Dim("Loading…")}, width, height)
	}
	if len(w.items) == 0 {
		return components.FitLines([]string{
			components.Dim("No habits yet."),
			components.Dim("daybook -add-habit TITLE"),
		}, width, height)
	}

	w.offset = scrollWindow(w.offset, len(w.items), height)
	end := min(w.offset+height, len(w.items))

	lines := make([]string, 0, height)
	for _, h := range w.items[w.offset:end] {
		lines = append(lines, components.Accent(markHabit)+" "+h.Title)
	}
	return components.FitLines(lines, width, height)
}
