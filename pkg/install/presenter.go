package install

import (
	"context"
	"log/slog"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"gitlab.com/tinyland/lab/daybook/pkg/logging"
	"gitlab.com/tinyland/lab/daybook/pkg/prefs"
	"gitlab.com/tinyland/lab/daybook/pkg/timer"
)

type evaluateMsg struct {
	gen uint64
}

type outcomeMsg struct {
	capability Capability
	outcome    Outcome
	err        error
}

// Presenter owns the install banner. All methods must be called from the
// Bubble Tea update goroutine; Invoke runs in a command.
//
// Invariant: the banner is visible only while a capability is held and the
// app is not installed.
type Presenter struct {
	store  prefs.Store
	delay  time.Duration
	sched  timer.Scheduler
	logger *slog.Logger

	tracker  Tracker
	phase    Phase
	visible  bool
	invoking bool
	mounted  bool
	eval     timer.Slot

	ctx    context.Context
	cancel context.CancelFunc
}

// NewPresenter creates an unmounted presenter. A non-positive delay uses
// DefaultPromptDelay; a nil scheduler uses tea.Tick.
func NewPresenter(store prefs.Store, delay time.Duration, sched timer.Scheduler, logger *slog.Logger) *Presenter {
	if delay <= 0 {
		delay = DefaultPromptDelay
	}
	if sched == nil {
		sched = timer.TickScheduler{}
	}
	return &Presenter{
		store:  store,
		delay:  delay,
		sched:  sched,
		logger: logging.OrDiscard(logger).With(logging.Component("install")),
		ctx:    context.Background(),
	}
}

// Mount starts the presenter. The first probe that detects an installed
// session moves it straight to PhaseAlreadyInstalled.
func (p *Presenter) Mount(ctx context.Context, probes ...Probe) {
	if ctx == nil {
		ctx = context.Background()
	}
	p.ctx, p.cancel = context.WithCancel(ctx)
	p.mounted = true

	for _, probe := range probes {
		ok, err := probe.Detect()
		if err != nil {
			p.logger.Debug("standalone probe failed", logging.Source(probe.Name), logging.Error(err))
			continue
		}
		if ok {
			p.logger.Info("running as installed app", logging.Source(probe.Name))
			p.markInstalled()
			return
		}
	}
}

// Unmount tears the presenter down. Pending evaluations and in-flight
// invocations become inert.
func (p *Presenter) Unmount() {
	p.mounted = false
	p.eval.Cancel()
	p.visible = false
	if p.cancel != nil {
		p.cancel()
	}
}

// Update applies install messages.
func (p *Presenter) Update(msg tea.Msg) tea.Cmd {
	if !p.mounted {
		return nil
	}
	switch msg := msg.(type) {
	case OfferedMsg:
		return p.offered(msg.Capability)
	case evaluateMsg:
		if p.eval.Fire(msg.gen) {
			p.evaluate()
		}
	case outcomeMsg:
		p.resolve(msg)
	case CompletedMsg:
		p.logger.Info("install completed", logging.Path(msg.Path))
		p.markInstalled()
	}
	return nil
}

func (p *Presenter) offered(c Capability) tea.Cmd {
	if !p.tracker.Capture(c) {
		p.logger.Debug("offer ignored", logging.Phase(p.phase.String()))
		return nil
	}
	if p.phase == PhaseVisible {
		return nil
	}
	p.phase = PhaseCaptured
	p.logger.Debug("capability captured")

	p.phase = PhasePromptPending
	gen := p.eval.Arm()
	return p.sched.After(p.delay, evaluateMsg{gen: gen})
}

func (p *Presenter) evaluate() {
	if p.phase != PhasePromptPending || p.invoking || !p.tracker.Usable() {
		p.logger.Debug("prompt evaluation skipped", logging.Phase(p.phase.String()))
		return
	}
	if prefs.Present(p.store, prefs.KeyInstallDismissed) {
		p.phase = PhaseDeclined
		p.logger.Debug("prompt suppressed by earlier dismissal")
		return
	}
	p.phase = PhaseVisible
	p.visible = true
}

func (p *Presenter) resolve(msg outcomeMsg) {
	// At most one invocation runs at a time, so any outcome ends it.
	p.invoking = false
	if !p.tracker.Holds(msg.capability) {
		p.logger.Debug("stale install outcome ignored")
		return
	}

	if msg.err != nil {
		p.logger.Warn("install rejected", logging.Error(msg.err))
		p.visible = false
		p.tracker.Clear()
		p.phase = PhaseUnavailable
		return
	}

	p.logger.Info("install prompt resolved", logging.Outcome(msg.outcome.String()))
	switch msg.outcome {
	case OutcomeAccepted:
		p.visible = false
		p.tracker.Clear()
		p.phase = PhaseAccepted
	case OutcomeDismissed:
		p.decline()
	}
}

func (p *Presenter) decline() {
	p.visible = false
	p.tracker.Clear()
	p.phase = PhaseDeclined
	if err := prefs.SetTrue(p.store, prefs.KeyInstallDismissed); err != nil {
		p.logger.Warn("persist dismissal failed", logging.Key(prefs.KeyInstallDismissed), logging.Error(err))
	}
}

func (p *Presenter) markInstalled() {
	p.tracker.MarkInstalled()
	p.visible = false
	p.invoking = false
	p.phase = PhaseAlreadyInstalled
	p.eval.Cancel()
}

// Accept invokes the held capability. It returns nil when there is nothing
// usable to invoke or an invocation is already running.
func (p *Presenter) Accept() tea.Cmd {
	if !p.mounted || p.invoking || !p.tracker.Usable() {
		p.logger.Debug("install request ignored", logging.Phase(p.phase.String()))
		return nil
	}
	c := p.tracker.Token()
	p.invoking = true
	ctx := p.ctx
	return func() tea.Msg {
		outcome, err := c.Invoke(ctx)
		return outcomeMsg{capability: c, outcome: outcome, err: err}
	}
}

// Dismiss handles the banner's dismiss control. It reports whether the
// banner was dismissed. While an invocation is running the outcome decides,
// so Dismiss does nothing.
func (p *Presenter) Dismiss() bool {
	if !p.mounted || !p.visible || p.invoking {
		return false
	}
	p.logger.Info("install prompt dismissed")
	p.decline()
	return true
}

// Phase returns the current lifecycle phase.
func (p *Presenter) Phase() Phase { return p.phase }

// IsVisible reports whether the install banner is showing.
func (p *Presenter) IsVisible() bool { return p.visible }

// IsInstalled reports whether the app is known to be installed.
func (p *Presenter) IsInstalled() bool { return p.tracker.Installed() }

// Invoking reports whether a capability invocation is in flight.
func (p *Presenter) Invoking() bool { return p.invoking }

// CanInstall reports whether Accept would do anything.
func (p *Presenter) CanInstall() bool {
	return p.mounted && !p.invoking && p.tracker.Usable()
}
