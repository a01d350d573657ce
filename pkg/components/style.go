package components

import "github.com/charmbracelet/lipgloss"

// Palette shared by the widgets.
const (
	ColorBorder = "#6C7086"
	ColorFocus  = "#CBA6F7"
	ColorAccent = "#89B4FA"
	ColorDone   = "#A6E3A1"
	ColorDim    = "#7F849C"
)

var (
	dimStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color(ColorDim))
	accentStyle = lipgloss.NewStyle().Foreground(lipgloss.Color(ColorAccent))
	doneStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color(ColorDone)).Faint(true)
)

// Dim renders de-emphasized text.
func Dim(s string) string { return dimStyle.Render(s) }

// Accent renders highlighted text.
func Accent(s string) string { return accentStyle.Render(s) }

// Done renders a completed item.
func Done(s string) string { return doneStyle.Render(s) }
