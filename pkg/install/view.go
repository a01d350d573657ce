package install

import (
	"github.com/charmbracelet/lipgloss"
	zone "github.com/lrstanley/bubblezone"
)

// Zone ids for the banner's clickable controls.
const (
	ZoneAccept  = "install-accept"
	ZoneDismiss = "install-dismiss"
)

const promptText = "Install Daybook as an app for one-click access."

var (
	bannerStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#CDD6F4")).
			Background(lipgloss.Color("#313244")).
			Padding(0, 1)
	acceptStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#1E1E2E")).
			Background(lipgloss.Color("#89B4FA")).
			Bold(true).
			Padding(0, 1)
	dismissStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#A6ADC8")).
			Padding(0, 1)
)

// View renders the install banner, or "" when it is hidden. When zones is
// non-nil the two controls are marked for mouse hit-testing.
func (p *Presenter) View(width int, zones *zone.Manager) string {
	if !p.visible {
		return ""
	}

	label := "Install (i)"
	if p.invoking {
		label = "Installing…"
	}
	accept := acceptStyle.Render(label)
	dismiss := dismissStyle.Render("Not now (x)")
	if zones != nil {
		accept = zones.Mark(ZoneAccept, accept)
		dismiss = zones.Mark(ZoneDismiss, dismiss)
	}

	row := lipgloss.JoinHorizontal(lipgloss.Center, promptText, "  ", accept, " ", dismiss)
	style := bannerStyle
	if width > 0 {
		style = style.Width(width)
	}
	return style.Render(row)
}
