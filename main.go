// daybook is an offline-first terminal planner for tasks and habits.
//
// It keeps its data on local disk, shows a status banner when the network
// comes and goes, and offers once, after a short delay, to install itself as
// a desktop launcher that opens daybook in its own terminal window.
//
// Usage:
//
//	daybook [flags]
//
// Flags:
//
//	-config string     Path to configuration file (default: ~/.config/daybook/config.toml)
//	-install           Install the desktop launcher and exit
//	-uninstall         Remove the desktop launcher and exit
//	-add-task string   Add a task and exit
//	-add-habit string  Add a habit and exit
//	-status            Print connectivity, install and onboarding state
//	-reset-prompts     Forget install dismissal and onboarding completion
//	-print-config      Print the effective configuration as TOML
//	-ephemeral         Keep preferences in memory for this run only
//	-verbose           Enable verbose logging
//	-version           Print version and exit
package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"path/filepath"
	"strings"
	"syscall"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/x/term"
	zone "github.com/lrstanley/bubblezone"
	"github.com/mattn/go-isatty"

	"gitlab.com/tinyland/lab/daybook/pkg/app"
	"gitlab.com/tinyland/lab/daybook/pkg/collectors"
	"gitlab.com/tinyland/lab/daybook/pkg/config"
	"gitlab.com/tinyland/lab/daybook/pkg/connectivity"
	"gitlab.com/tinyland/lab/daybook/pkg/install"
	"gitlab.com/tinyland/lab/daybook/pkg/logging"
	"gitlab.com/tinyland/lab/daybook/pkg/onboarding"
	"gitlab.com/tinyland/lab/daybook/pkg/platform"
	"gitlab.com/tinyland/lab/daybook/pkg/prefs"
	"gitlab.com/tinyland/lab/daybook/pkg/tasks"
	"gitlab.com/tinyland/lab/daybook/pkg/widgets"
)

var (
	version = "0.1.0"
	commit  = "dev"
	date    = "unknown"
)

// startupProbeTimeout bounds the synchronous samples taken before the first
// frame.
const startupProbeTimeout = 2 * time.Second

func main() {
	var (
		configPath   = flag.String("config", "", "Path to configuration file")
		doInstall    = flag.Bool("install", false, "Install the desktop launcher and exit")
		doUninstall  = flag.Bool("uninstall", false, "Remove the desktop launcher and exit")
		addTask      = flag.String("add-task", "", "Add a task and exit")
		addHabit     = flag.String("add-habit", "", "Add a habit and exit")
		showStatus   = flag.Bool("status", false, "Print connectivity, install and onboarding state")
		resetPrompts = flag.Bool("reset-prompts", false, "Forget install dismissal and onboarding completion")
		printConfig  = flag.Bool("print-config", false, "Print the effective configuration as TOML")
		ephemeral    = flag.Bool("ephemeral", false, "Keep preferences in memory for this run only")
		verbose      = flag.Bool("verbose", false, "Enable verbose logging")
		showVersion  = flag.Bool("version", false, "Print version and exit")
	)
	flag.Parse()

	if *showVersion {
		fmt.Printf("daybook %s (%s) built %s\n", version, commit, date)
		os.Exit(0)
	}

	cfg, err := loadConfig(*configPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to load config: %v\n", err)
		os.Exit(1)
	}
	if err := cfg.Validate(); err != nil {
		fmt.Fprintf(os.Stderr, "invalid config: %v\n", err)
		os.Exit(1)
	}

	if *printConfig {
		if err := config.Encode(os.Stdout, cfg); err != nil {
			fmt.Fprintf(os.Stderr, "encode config: %v\n", err)
			os.Exit(1)
		}
		os.Exit(0)
	}

	launcher := platform.LauncherConfig{
		BinaryPath: install.Executable(),
		Dir:        cfg.Install.LauncherDir,
	}
	data := tasks.NewStore(cfg.General.StateDir)

	// One-shot commands log to stderr; only the TUI logs to a file.
	level := logging.ParseLevel(cfg.General.LogLevel)
	if *verbose {
		level = slog.LevelDebug
	}
	oneShot := logging.Options{Level: level}

	switch {
	case *doInstall:
		path, err := platform.InstallLauncher(launcher)
		if err != nil {
			fatal("install launcher", err)
		}
		fmt.Printf("installed %s\n", path)
		return

	case *doUninstall:
		if err := platform.UninstallLauncher(launcher); err != nil {
			fatal("uninstall launcher", err)
		}
		fmt.Println("launcher removed")
		return

	case *addTask != "":
		t, err := data.AddTask(*addTask)
		if err != nil {
			fatal("add task", err)
		}
		fmt.Printf("added %s %s\n", t.ID, t.Title)
		return

	case *addHabit != "":
		h, err := data.AddHabit(*addHabit)
		if err != nil {
			fatal("add habit", err)
		}
		fmt.Printf("added %s %s\n", h.ID, h.Title)
		return

	case *resetPrompts:
		logger, closer := logging.New(oneShot)
		defer closer.Close()
		store := openPrefs(cfg, false, logger)
		defer store.Close()
		for _, key := range []string{prefs.KeyInstallDismissed, prefs.KeyOnboardingCompleted} {
			if err := store.Delete(key); err != nil {
				fatal("reset "+key, err)
			}
		}
		fmt.Println("prompts reset")
		return

	case *showStatus:
		logger, closer := logging.New(oneShot)
		defer closer.Close()
		if err := printStatus(os.Stdout, cfg, launcher, data, logger); err != nil {
			fatal("status", err)
		}
		return
	}

	if !isatty.IsTerminal(os.Stdout.Fd()) && !isatty.IsCygwinTerminal(os.Stdout.Fd()) {
		fmt.Fprintln(os.Stderr, "daybook: stdout is not a terminal; try -status")
		os.Exit(1)
	}

	// Writing to stderr would tear the alt screen, so the TUI logs to a
	// rotating file.
	logger, closer := logging.New(logging.Options{
		File:       cfg.General.LogFile,
		MaxSizeMB:  cfg.General.LogMaxSizeMB,
		MaxBackups: cfg.General.LogMaxBackups,
		Level:      level,
	})
	defer closer.Close()

	if err := runTUI(cfg, launcher, data, *ephemeral, logger); err != nil {
		logger.Error("TUI error", logging.Error(err))
		fmt.Fprintf(os.Stderr, "daybook: %v\n", err)
		os.Exit(1)
	}
}

func runTUI(cfg *config.Config, launcher platform.LauncherConfig, data *tasks.Store, ephemeral bool, logger *slog.Logger) error {
	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	store := openPrefs(cfg, ephemeral, logger)
	defer store.Close()

	runner, err := newRunner(cfg, data, logger)
	if err != nil {
		return err
	}

	online := startupOnline(ctx, runner, logger)
	counts := startupCounts(ctx, runner, logger)

	pages, err := loadPages(cfg.Onboarding.Pages)
	if err != nil {
		return err
	}

	zones := zone.New()
	defer zones.Close()

	deps := app.Deps{
		Context:            ctx,
		Prefs:              store,
		Logger:             logger,
		Zones:              zones,
		InitialOnline:      online,
		InitialCounts:      counts,
		OnboardingDisabled: !cfg.Onboarding.Enabled,
		OnboardingPages:    pages,
		BannerHide:         cfg.Connectivity.BannerHide.Duration,
		PromptDelay:        cfg.Install.PromptDelay.Duration,
	}

	if cfg.Install.Enabled {
		deps.DetectOffer = func() (install.Capability, bool) { return install.DetectOffer(launcher) }
		deps.StandaloneProbes = install.StandaloneProbes(launcher, os.Getenv)

		if path, err := platform.LauncherPath(launcher); err == nil {
			watcher, err := install.NewCompletionWatcher(path, logger)
			if err != nil {
				logger.Warn("install completion watch unavailable", logging.Error(err))
			} else {
				watcher.Start(ctx)
				defer watcher.Close()
				deps.Completions = watcher.Events()
			}
		}
	}

	runner.Start(ctx)
	defer runner.Stop()
	deps.Updates = runner.Updates()

	model := app.NewAppModel(deps,
		widgets.NewTasksWidget(),
		widgets.NewHabitsWidget(),
	)

	logger.Info("starting daybook", slog.String("version", version), logging.Online(online))
	p := tea.NewProgram(model,
		tea.WithAltScreen(),
		tea.WithMouseCellMotion(),
		tea.WithContext(ctx),
	)
	final, err := p.Run()
	if m, ok := final.(app.AppModel); ok {
		m.Teardown()
	}
	if errors.Is(err, tea.ErrProgramKilled) && ctx.Err() != nil {
		return nil
	}
	return err
}

func loadConfig(path string) (*config.Config, error) {
	if path == "" {
		return config.Load()
	}
	return config.LoadFromFile(path)
}

// openPrefs opens the file store, or an in-memory one for ephemeral runs.
func openPrefs(cfg *config.Config, ephemeral bool, logger *slog.Logger) interface {
	prefs.Store
	io.Closer
} {
	if ephemeral {
		return nopCloser{prefs.NewMemoryStore()}
	}
	return prefs.Open(filepath.Join(cfg.General.StateDir, "prefs.json"), logger)
}

type nopCloser struct{ *prefs.MemoryStore }

func (nopCloser) Close() error { return nil }

func newRunner(cfg *config.Config, data *tasks.Store, logger *slog.Logger) (*collectors.Runner, error) {
	probe, err := connectivity.NewProbe(connectivity.ProbeConfig{
		Kind:            cfg.Connectivity.Probe,
		Interval:        cfg.Connectivity.Interval.Duration,
		TailscaleSocket: cfg.Connectivity.TailscaleSocket,
	})
	if err != nil {
		return nil, err
	}

	reg := collectors.NewRegistry()
	for _, c := range []collectors.Collector{
		probe,
		tasks.NewCollector(data, cfg.Data.RefreshInterval.Duration),
	} {
		if err := reg.Register(c); err != nil {
			return nil, err
		}
	}
	return collectors.NewRunner(reg, logger), nil
}

// startupOnline samples reachability once. An unusable sample counts as
// online so a broken probe never pins the offline banner.
func startupOnline(ctx context.Context, runner *collectors.Runner, logger *slog.Logger) bool {
	ctx, cancel := context.WithTimeout(ctx, startupProbeTimeout)
	defer cancel()
	v, err := runner.CollectOnce(ctx, connectivity.ProbeName)
	if err != nil {
		logger.Debug("startup reachability sample failed", logging.Error(err))
		return true
	}
	s, ok := v.(connectivity.Sample)
	return !ok || s.Online
}

func startupCounts(ctx context.Context, runner *collectors.Runner, logger *slog.Logger) onboarding.Counts {
	v, err := runner.CollectOnce(ctx, tasks.CollectorName)
	if err != nil {
		logger.Warn("startup data load failed", logging.Error(err))
		return onboarding.Counts{}
	}
	snap, _ := v.(tasks.Snapshot)
	return snap.Counts()
}

func loadPages(path string) ([]onboarding.Page, error) {
	if path == "" {
		return nil, nil
	}
	b, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read onboarding pages: %w", err)
	}
	pages, err := onboarding.ParsePages(b)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return pages, nil
}

func printStatus(w io.Writer, cfg *config.Config, launcher platform.LauncherConfig, data *tasks.Store, logger *slog.Logger) error {
	runner, err := newRunner(cfg, data, logger)
	if err != nil {
		return err
	}
	store := prefs.Open(filepath.Join(cfg.General.StateDir, "prefs.json"), logger)
	defer store.Close()

	online := startupOnline(context.Background(), runner, logger)
	snap, err := data.Load()
	if err != nil {
		return err
	}

	launcherState := "not supported on " + string(platform.Current())
	if platform.LauncherSupported() {
		path, _ := platform.LauncherPath(launcher)
		if platform.LauncherInstalled(launcher) {
			launcherState = "installed at " + path
		} else {
			launcherState = "not installed"
		}
	}

	width := 60
	if term.IsTerminal(os.Stdout.Fd()) {
		if tw, _, err := term.GetSize(os.Stdout.Fd()); err == nil && tw > 0 && tw < width {
			width = tw
		}
	}
	rule := strings.Repeat("─", width)

	fmt.Fprintf(w, "daybook %s\n%s\n", version, rule)
	fmt.Fprintf(w, "%-22s %s\n", "connectivity", onlineWord(online))
	fmt.Fprintf(w, "%-22s %s\n", "launcher", launcherState)
	fmt.Fprintf(w, "%-22s %t\n", "install dismissed", prefs.Present(store, prefs.KeyInstallDismissed))
	fmt.Fprintf(w, "%-22s %t\n", "onboarding completed", prefs.IsTrue(store, prefs.KeyOnboardingCompleted))
	fmt.Fprintf(w, "%-22s %d tasks (%d open), %d habits\n", "data",
		len(snap.Tasks), len(snap.Open()), len(snap.Habits))
	fmt.Fprintf(w, "%s\n%-22s %s\n", rule, "state dir", cfg.General.StateDir)
	return nil
}

func onlineWord(online bool) string {
	if online {
		return "online"
	}
	return "offline"
}

func fatal(what string, err error) {
	fmt.Fprintf(os.Stderr, "daybook: %s: %v\n", what, err)
	os.Exit(1)
}
