package components

import "github.com/charmbracelet/lipgloss"

// Panel draws body inside a rounded border of exactly width x height cells,
// with title in the first row. A focused panel gets the accent border.
func Panel(title string, body []string, width, height int, focused bool) string {
	if width < 4 || height < 3 {
		return ""
	}
	innerW, innerH := width-2, height-2

	border := ColorBorder
	if focused {
		border = ColorFocus
	}
	style := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(lipgloss.Color(border))

	titleStyle := lipgloss.NewStyle().Bold(true)
	if focused {
		titleStyle = titleStyle.Foreground(lipgloss.Color(ColorFocus))
	}

	lines := make([]string, 0, len(body)+1)
	lines = append(lines, titleStyle.Render(Truncate(title, innerW)))
	lines = append(lines, body...)
	return style.Render(FitLines(lines, innerW, innerH))
}
