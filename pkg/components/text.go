// Package components holds the small rendering helpers shared by daybook's
// widgets: width-aware text fitting and the bordered panel every widget is
// drawn in.
package components

import (
	"strings"

	"github.com/charmbracelet/x/ansi"
)

// Ellipsis is appended to truncated text.
const Ellipsis = "…"

// VisibleLen returns the visible width of s in terminal cells. ANSI escape
// sequences are ignored and wide characters count as two cells.
func VisibleLen(s string) int {
	return ansi.StringWidth(s)
}

// Truncate cuts s to at most maxWidth cells, ending in Ellipsis when
// something was cut.
func Truncate(s string, maxWidth int) string {
	if maxWidth <= 0 {
		return ""
	}
	return ansi.Truncate(s, maxWidth, Ellipsis)
}

// PadRight pads s with trailing spaces to width cells. Wider strings are
// returned unchanged.
func PadRight(s string, width int) string {
	vis := VisibleLen(s)
	if vis >= width {
		return s
	}
	return s + strings.Repeat(" ", width-vis)
}

// FitLines truncates and pads lines so the result is exactly width cells
// wide and height lines tall.
func FitLines(lines []string, width, height int) string {
	if width <= 0 || height <= 0 {
		return ""
	}
	out := make([]string, height)
	for i := range out {
		var line string
		if i < len(lines) {
			line = lines[i]
		}
		if VisibleLen(line) > width {
			line = Truncate(line, width)
		}
		out[i] = PadRight(line, width)
	}
	return strings.Join(out, "\n")
}
