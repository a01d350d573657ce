package widgets

import (
	"fmt"

	tea "github.com/charmbracelet/bubbletea"

	"gitlab.com/tinyland/lab/daybook/pkg/app"
	"gitlab.com/tinyland/lab/daybook/pkg/components"
	"gitlab.com/tinyland/lab/daybook/pkg/tasks"
)

// TasksWidget lists the user's tasks, open ones first.
type TasksWidget struct {
	items  []tasks.Task
	loaded bool
	offset int
}

// NewTasksWidget creates an empty tasks widget.
func NewTasksWidget() *TasksWidget {
	return &TasksWidget{}
}

// ID returns the unique identifier for this widget.
func (w *TasksWidget) ID() string { return "tasks" }

// Title returns the panel title, with counts once data has loaded.
func (w *TasksWidget) Title() string {
	if !w.loaded || len(w.items) == 0 {
		return "Tasks"
	}
	return "Tasks · " + w.Summary()
}

// MinSize returns the minimum width and height this widget requires.
func (w *TasksWidget) MinSize() (int, int) { return 24, 4 }

// Update stores snapshots from the tasks collector.
func (w *TasksWidget) Update(msg tea.Msg) tea.Cmd {
	if ev, ok := msg.(app.DataUpdateEvent); ok {
		if snap, ok := snapshotFrom(ev); ok {
			w.items = orderTasks(snap.Tasks)
			w.loaded = true
		}
	}
	return nil
}

// HandleKey scrolls the list.
func (w *TasksWidget) HandleKey(key tea.KeyMsg) tea.Cmd {
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
func (w *TasksWidget) View(width, height int) string {
	if width <= 0 || height <= 0 {
		return ""
	}
	if !w.loaded {
		return components.FitLines([]string{components.Dim("Loading…")}, width, height)
	}
	if len(w.items) == 0 {
		return components.FitLines([]string{
			components.Dim("No tasks yet."),
			components.Dim("daybook -add-task TITLE"),
		}, width, height)
	}

	w.offset = scrollWindow(w.offset, len(w.items), height)
	end := min(w.offset+height, len(w.items))

	lines := make([]string, 0, height)
	for _, t := range w.items[w.offset:end] {
		if t.Done {
			lines = append(lines, components.Dim(markDone+" ")+components.Done(t.Title))
		} else {
			lines = append(lines, components.Accent(markOpen)+" "+t.Title)
		}
	}
	return components.FitLines(lines, width, height)
}

// Summary returns "N open / M total".
func (w *TasksWidget) Summary() string {
	open := 0
	for _, t := range w.items {
		if !t.Done {
			open++
		}
	}
	return fmt.Sprintf("%d open / %d total", open, len(w.items))
}

// orderTasks puts open tasks before done ones, keeping file order otherwise.
func orderTasks(in []tasks.Task) []tasks.Task {
	out := make([]tasks.Task, 0, len(in))
	for _, t := range in {
		if !t.Done {
			out = append(out, t)
		}
	}
	for _, t := range in {
		if t.Done {
			out = append(out, t)
		}
	}
	return out
}
