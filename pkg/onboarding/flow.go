package onboarding

import (
	_ "embed"
	"fmt"
	"log/slog"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"gopkg.in/yaml.v3"

	"gitlab.com/tinyland/lab/daybook/pkg/logging"
	"gitlab.com/tinyland/lab/daybook/pkg/prefs"
)

//go:embed pages.yaml
var defaultPages []byte

// Page is one screen of the tour.
type Page struct {
	Title string `yaml:"title"`
	Body  string `yaml:"body"`
}

type pageFile struct {
	Pages []Page `yaml:"pages"`
}

// ParsePages decodes a YAML page list.
func ParsePages(data []byte) ([]Page, error) {
	var f pageFile
	if err := yaml.Unmarshal(data, &f); err != nil {
		return nil, fmt.Errorf("parse onboarding pages: %w", err)
	}
	if len(f.Pages) == 0 {
		return nil, fmt.Errorf("parse onboarding pages: no pages")
	}
	return f.Pages, nil
}

// DefaultPages returns the built-in tour.
func DefaultPages() []Page {
	pages, err := ParsePages(defaultPages)
	if err != nil {
		panic(err)
	}
	return pages
}

// Flow is the onboarding tour. It marks onboarding complete when the user
// reaches the end, and hands closing back to the gate.
type Flow struct {
	pages  []Page
	store  prefs.Store
	logger *slog.Logger
	page   int
}

// NewFlow creates a tour over pages. Nil pages uses DefaultPages.
func NewFlow(pages []Page, store prefs.Store, logger *slog.Logger) *Flow {
	if len(pages) == 0 {
		pages = DefaultPages()
	}
	return &Flow{
		pages:  pages,
		store:  store,
		logger: logging.OrDiscard(logger).With(logging.Component("onboarding")),
	}
}

// Page returns the index of the current page.
func (f *Flow) Page() int { return f.page }

// Len returns the number of pages.
func (f *Flow) Len() int { return len(f.pages) }

// Next advances one page. On the last page it completes the tour.
func (f *Flow) Next(h Handle) {
	if f.page < len(f.pages)-1 {
		f.page++
		return
	}
	f.Finish(h)
}

// Prev goes back one page.
func (f *Flow) Prev() {
	if f.page > 0 {
		f.page--
	}
}

// Finish writes the completion flag and closes the tour.
func (f *Flow) Finish(h Handle) {
	if err := prefs.SetTrue(f.store, prefs.KeyOnboardingCompleted); err != nil {
		f.logger.Warn("persist onboarding completion failed", logging.Error(err))
	}
	f.page = 0
	if h.OnClose != nil {
		h.OnClose()
	}
}

// Skip closes the tour without completing it.
func (f *Flow) Skip(h Handle) {
	f.page = 0
	if h.OnClose != nil {
		h.OnClose()
	}
}

// HandleKey applies a key press and reports whether the flow consumed it.
func (f *Flow) HandleKey(msg tea.KeyMsg, h Handle) bool {
	if !h.IsOpen {
		return false
	}
	switch msg.String() {
	case "right", "l", "n", "enter", " ":
		f.Next(h)
	case "left", "h", "p":
		f.Prev()
	case "esc", "s":
		f.Skip(h)
	default:
		return false
	}
	return true
}

var (
	modalStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("#CBA6F7")).
			Padding(1, 2)
	modalTitle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("#CBA6F7"))
	modalHint = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#6C7086"))
)

// View renders the current page centered in a width x height area.
func (f *Flow) View(width, height int) string {
	p := f.pages[f.page]

	inner := 56
	if width > 0 && width-6 < inner {
		inner = max(width-6, 10)
	}

	next := "→ next"
	if f.page == len(f.pages)-1 {
		next = "enter finish"
	}
	hint := fmt.Sprintf("%d/%d   ← back   %s   esc skip", f.page+1, len(f.pages), next)

	body := lipgloss.JoinVertical(lipgloss.Left,
		modalTitle.Render(p.Title),
		"",
		lipgloss.NewStyle().Width(inner).Render(strings.TrimRight(p.Body, "\n")),
		"",
		modalHint.Render(hint),
	)
	box := modalStyle.Render(body)
	if width <= 0 || height <= 0 {
		return box
	}
	return lipgloss.Place(width, height, lipgloss.Center, lipgloss.Center, box)
}
