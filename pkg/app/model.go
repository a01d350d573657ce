package app

import (
	"context"
	"log/slog"
	"time"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	zone "github.com/lrstanley/bubblezone"

	"gitlab.com/tinyland/lab/daybook/pkg/collectors"
	"gitlab.com/tinyland/lab/daybook/pkg/connectivity"
	"gitlab.com/tinyland/lab/daybook/pkg/install"
	"gitlab.com/tinyland/lab/daybook/pkg/logging"
	"gitlab.com/tinyland/lab/daybook/pkg/onboarding"
	"gitlab.com/tinyland/lab/daybook/pkg/prefs"
	"gitlab.com/tinyland/lab/daybook/pkg/tasks"
	"gitlab.com/tinyland/lab/daybook/pkg/timer"
)

// Deps are the collaborators the shell is composed from. Zero values are
// usable: nil channels are never listened on and a nil DetectOffer disables
// the install prompt.
type Deps struct {
	Context   context.Context
	Prefs     prefs.Store
	Scheduler timer.Scheduler
	Logger    *slog.Logger
	Zones     *zone.Manager

	Updates     <-chan collectors.Update
	Completions <-chan install.CompletedMsg

	DetectOffer      func() (install.Capability, bool)
	StandaloneProbes []install.Probe

	InitialOnline bool
	InitialCounts onboarding.Counts

	OnboardingDisabled bool
	OnboardingPages    []onboarding.Page

	BannerHide  time.Duration
	PromptDelay time.Duration

	Now func() time.Time
}

// AppModel is the root bubbletea model.
type AppModel struct {
	ctx    context.Context
	cancel context.CancelFunc
	logger *slog.Logger
	zones  *zone.Manager

	keys     KeyMap
	help     help.Model
	showHelp bool

	conn      *connectivity.Monitor
	tracker   *connectivity.Tracker
	installer *install.Presenter
	gate      *onboarding.Gate
	flow      *onboarding.Flow

	updates     <-chan collectors.Update
	completions <-chan install.CompletedMsg
	detectOffer func() (install.Capability, bool)

	widgets        map[string]Widget
	widgetOrder    []string
	focusedWidget  string
	expandedWidget string

	width, height int
	now           func() time.Time
	today         time.Time
}

// NewAppModel composes and mounts the shell. Widgets render in the order
// given.
func NewAppModel(deps Deps, widgets ...Widget) AppModel {
	ctx := deps.Context
	if ctx == nil {
		ctx = context.Background()
	}
	ctx, cancel := context.WithCancel(ctx)

	store := deps.Prefs
	if store == nil {
		store = prefs.NewMemoryStore()
	}
	logger := logging.OrDiscard(deps.Logger)
	now := deps.Now
	if now == nil {
		now = time.Now
	}

	m := AppModel{
		ctx:         ctx,
		cancel:      cancel,
		logger:      logger.With(logging.Component("shell")),
		zones:       deps.Zones,
		keys:        DefaultKeyMap(),
		help:        help.New(),
		conn:        connectivity.NewMonitor(deps.BannerHide, deps.Scheduler, logger),
		tracker:     &connectivity.Tracker{},
		installer:   install.NewPresenter(store, deps.PromptDelay, deps.Scheduler, logger),
		gate:        onboarding.NewGate(store, logger),
		flow:        onboarding.NewFlow(deps.OnboardingPages, store, logger),
		updates:     deps.Updates,
		completions: deps.Completions,
		detectOffer: deps.DetectOffer,
		widgets:     make(map[string]Widget, len(widgets)),
		now:         now,
		today:       now(),
	}
	for _, w := range widgets {
		m.widgets[w.ID()] = w
		m.widgetOrder = append(m.widgetOrder, w.ID())
	}
	if len(m.widgetOrder) > 0 {
		m.focusedWidget = m.widgetOrder[0]
	}

	m.conn.Mount(deps.InitialOnline)
	m.tracker.Seed(deps.InitialOnline)
	m.installer.Mount(ctx, deps.StandaloneProbes...)
	if !deps.OnboardingDisabled {
		m.gate.Mount(deps.InitialCounts)
	}
	return m
}

// Init starts the subscriptions.
func (m AppModel) Init() tea.Cmd {
	return tea.Batch(
		ListenUpdates(m.updates),
		ListenCompletions(m.completions),
		DetectOfferCmd(m.detectOffer),
		TickCmd(time.Minute),
	)
}

// Teardown unmounts every component. Timers and invocations still in flight
// become inert.
func (m AppModel) Teardown() {
	m.conn.Unmount()
	m.installer.Unmount()
	m.gate.Unmount()
	m.cancel()
}

// Update routes messages to the lifecycle components and widgets.
func (m AppModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width, m.height = msg.Width, msg.Height
		m.help.Width = msg.Width
		return m, nil

	case tea.KeyMsg:
		return m.handleKey(msg)

	case tea.MouseMsg:
		return m, m.handleMouse(msg)

	case DataUpdateEvent:
		cmds := []tea.Cmd{m.route(msg), ListenUpdates(m.updates)}
		for _, id := range m.widgetOrder {
			cmds = append(cmds, m.widgets[id].Update(msg))
		}
		return m, tea.Batch(cmds...)

	case updatesClosedMsg:
		m.logger.Debug("collector updates closed")
		return m, nil

	case install.CompletedMsg:
		return m, tea.Batch(m.installer.Update(msg), ListenCompletions(m.completions))

	case TickEvent:
		m.today = msg.Time
		return m, TickCmd(time.Minute)
	}

	return m, tea.Batch(m.conn.Update(msg), m.installer.Update(msg))
}

// route feeds a collector sample to the lifecycle component that owns it.
func (m AppModel) route(ev DataUpdateEvent) tea.Cmd {
	switch ev.Source {
	case connectivity.ProbeName:
		changed, ok := m.tracker.Observe(collectors.Update{
			Source:    ev.Source,
			Data:      ev.Data,
			Error:     ev.Err,
			Timestamp: ev.Timestamp,
		})
		if !ok {
			return nil
		}
		return m.conn.Update(changed)

	case tasks.CollectorName:
		if snap, ok := ev.Data.(tasks.Snapshot); ok && ev.Err == nil {
			m.gate.SetCounts(snap.Counts())
		}
	}
	return nil
}

func (m AppModel) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if msg.Type == tea.KeyCtrlC {
		return m.quit()
	}
	if m.gate.IsOpen() && m.flow.HandleKey(msg, m.gate.Handle()) {
		return m, nil
	}

	switch {
	case key.Matches(msg, m.keys.Quit):
		return m.quit()
	case key.Matches(msg, m.keys.Help):
		m.showHelp = !m.showHelp
		m.help.ShowAll = m.showHelp
	case key.Matches(msg, m.keys.Next):
		m.CycleFocusForward()
	case key.Matches(msg, m.keys.Prev):
		m.CycleFocusBackward()
	case key.Matches(msg, m.keys.Expand):
		m.ToggleExpand()
	case key.Matches(msg, m.keys.Collapse):
		m.expandedWidget = ""
	case key.Matches(msg, m.keys.Install):
		return m, m.installer.Accept()
	case key.Matches(msg, m.keys.Dismiss):
		m.installer.Dismiss()
	default:
		if w, ok := m.widgets[m.focusedWidget]; ok {
			return m, w.HandleKey(msg)
		}
	}
	return m, nil
}

func (m AppModel) quit() (tea.Model, tea.Cmd) {
	m.Teardown()
	return m, tea.Quit
}

func (m *AppModel) handleMouse(msg tea.MouseMsg) tea.Cmd {
	if m.zones == nil || msg.Button != tea.MouseButtonLeft || msg.Action != tea.MouseActionRelease {
		return nil
	}
	if m.gate.IsOpen() {
		return nil
	}
	switch {
	case zoneHit(m.zones.Get(install.ZoneAccept), msg.X, msg.Y):
		return m.installer.Accept()
	case zoneHit(m.zones.Get(install.ZoneDismiss), msg.X, msg.Y):
		m.installer.Dismiss()
		return nil
	}
	for _, id := range m.widgetOrder {
		if zoneHit(m.zones.Get(widgetZoneID(id)), msg.X, msg.Y) {
			m.FocusWidget(id)
			break
		}
	}
	return nil
}

func zoneHit(z *zone.ZoneInfo, x, y int) bool {
	if z == nil || z.IsZero() {
		return false
	}
	return x >= z.StartX && x <= z.EndX && y >= z.StartY && y <= z.EndY
}

// --- accessors ---

// Width returns the terminal width.
func (m AppModel) Width() int { return m.width }

// Height returns the terminal height.
func (m AppModel) Height() int { return m.height }

// FocusedWidgetID returns the id of the focused widget.
func (m AppModel) FocusedWidgetID() string { return m.focusedWidget }

// ExpandedWidgetID returns the id of the expanded widget, or "".
func (m AppModel) ExpandedWidgetID() string { return m.expandedWidget }

// Connectivity returns the connectivity monitor.
func (m AppModel) Connectivity() *connectivity.Monitor { return m.conn }

// Installer returns the install prompt presenter.
func (m AppModel) Installer() *install.Presenter { return m.installer }

// Onboarding returns the onboarding gate.
func (m AppModel) Onboarding() *onboarding.Gate { return m.gate }
