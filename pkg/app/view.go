package app

import (
	"strings"

	"github.com/charmbracelet/lipgloss"

	"gitlab.com/tinyland/lab/daybook/pkg/components"
)

const (
	defaultWidth  = 80
	defaultHeight = 24
)

var headerStyle = lipgloss.NewStyle().Bold(true).Padding(0, 1)

// View renders the header, the lifecycle banners, the body and the help line.
func (m AppModel) View() string {
	width, height := m.width, m.height
	if width <= 0 {
		width = defaultWidth
	}
	if height <= 0 {
		height = defaultHeight
	}

	top := []string{m.header(width)}
	if b := m.conn.View(width); b != "" {
		top = append(top, b)
	}
	if b := m.installer.View(width, m.zones); b != "" {
		top = append(top, b)
	}
	helpLine := m.help.View(m.keys)

	used := 0
	for _, s := range top {
		used += lipgloss.Height(s)
	}
	used += lipgloss.Height(helpLine)
	bodyH := max(height-used, 3)

	var body string
	if m.gate.IsOpen() {
		body = m.flow.View(width, bodyH)
	} else {
		body = m.renderWidgets(width, bodyH)
	}

	out := strings.Join(append(top, body, helpLine), "\n")
	if m.zones != nil {
		out = m.zones.Scan(out)
	}
	return out
}

func (m AppModel) header(width int) string {
	left := "daybook"
	right := m.today.Format("Monday, 2 January")
	if !m.conn.IsOnline() {
		right = components.Dim("offline") + "  " + right
	}
	gap := width - lipgloss.Width(left) - lipgloss.Width(right) - 2
	if gap < 1 {
		return headerStyle.Render(components.Truncate(left+" "+right, max(width-2, 1)))
	}
	return headerStyle.Render(left + strings.Repeat(" ", gap) + right)
}

// renderWidgets lays the widgets out side by side, or the expanded widget
// alone.
func (m AppModel) renderWidgets(width, height int) string {
	ids := m.widgetOrder
	if m.expandedWidget != "" {
		ids = []string{m.expandedWidget}
	}
	if len(ids) == 0 {
		return lipgloss.Place(width, height, lipgloss.Center, lipgloss.Center,
			components.Dim("Nothing to show."))
	}

	panels := make([]string, 0, len(ids))
	remaining := width
	for i, id := range ids {
		w := remaining / (len(ids) - i)
		remaining -= w
		widget := m.widgets[id]
		inner := widget.View(max(w-2, 0), max(height-3, 0))
		panel := components.Panel(widget.Title(), strings.Split(inner, "\n"), w, height, id == m.focusedWidget)
		if m.zones != nil {
			panel = m.zones.Mark(widgetZoneID(id), panel)
		}
		panels = append(panels, panel)
	}
	return lipgloss.JoinHorizontal(lipgloss.Top, panels...)
}
