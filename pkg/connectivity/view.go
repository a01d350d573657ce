package connectivity

import (
	"github.com/charmbracelet/lipgloss"
)

const (
	offlineText = "You're offline. Changes are saved locally."
	onlineText  = "Back online."
)

var (
	offlineStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#1E1E2E")).
			Background(lipgloss.Color("#F9E2AF")).
			Bold(true).
			Padding(0, 1)
	onlineStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#1E1E2E")).
			Background(lipgloss.Color("#A6E3A1")).
			Padding(0, 1)
)

// View renders the banner across width columns, or "" when it is hidden.
func (m *Monitor) View(width int) string {
	if !m.visible {
		return ""
	}
	style, text := onlineStyle, onlineText
	if !m.online {
		style, text = offlineStyle, offlineText
	}
	if width > 0 {
		style = style.Width(width)
	}
	return style.Render(text)
}
