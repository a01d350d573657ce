package install

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sync"

	"gitlab.com/tinyland/lab/daybook/pkg/platform"
)

// ErrOfferUsed is returned by a LauncherOffer invoked a second time.
var ErrOfferUsed = errors.New("install: offer already used")

// LauncherOffer is the Capability for installing the desktop launcher. It
// asks for confirmation with a native dialog and then writes the launcher.
// When no dialog is available the in-app banner counts as confirmation.
type LauncherOffer struct {
	cfg     platform.LauncherConfig
	dialog  platform.Dialog
	confirm func(context.Context, platform.Dialog) (bool, error)
	install func(platform.LauncherConfig) (string, error)

	mu   sync.Mutex
	used bool
}

// OfferOption configures a LauncherOffer.
type OfferOption func(*LauncherOffer)

// WithConfirm replaces the native dialog.
func WithConfirm(fn func(context.Context, platform.Dialog) (bool, error)) OfferOption {
	return func(o *LauncherOffer) { o.confirm = fn }
}

// WithInstaller replaces the launcher writer.
func WithInstaller(fn func(platform.LauncherConfig) (string, error)) OfferOption {
	return func(o *LauncherOffer) { o.install = fn }
}

// NewLauncherOffer creates an offer for cfg.
func NewLauncherOffer(cfg platform.LauncherConfig, opts ...OfferOption) *LauncherOffer {
	o := &LauncherOffer{
		cfg: cfg,
		dialog: platform.Dialog{
			Title: "Install Daybook",
			Text:  "Add Daybook to your applications so it opens in its own window?",
		},
		confirm: platform.Confirm,
		install: platform.InstallLauncher,
	}
	for _, opt := range opts {
		opt(o)
	}
	return o
}

// Valid reports whether the offer can still be invoked.
func (o *LauncherOffer) Valid() bool {
	o.mu.Lock()
	defer o.mu.Unlock()
	return !o.used && o.cfg.BinaryPath != ""
}

// Invoke confirms with the user and installs the launcher.
func (o *LauncherOffer) Invoke(ctx context.Context) (Outcome, error) {
	o.mu.Lock()
	if o.used {
		o.mu.Unlock()
		return OutcomeDismissed, ErrOfferUsed
	}
	o.used = true
	o.mu.Unlock()

	ok, err := o.confirm(ctx, o.dialog)
	if errors.Is(err, platform.ErrNoDialog) {
		ok, err = true, nil
	}
	if err != nil {
		return OutcomeDismissed, fmt.Errorf("confirm install: %w", err)
	}
	if !ok {
		return OutcomeDismissed, nil
	}

	if _, err := o.install(o.cfg); err != nil {
		return OutcomeDismissed, fmt.Errorf("install launcher: %w", err)
	}
	return OutcomeAccepted, nil
}

// DetectOffer returns a LauncherOffer when this OS has a launcher format,
// the launcher is not installed yet, and the binary path is known.
func DetectOffer(cfg platform.LauncherConfig) (Capability, bool) {
	if !platform.LauncherSupported() || cfg.BinaryPath == "" || platform.LauncherInstalled(cfg) {
		return nil, false
	}
	return NewLauncherOffer(cfg), true
}

// StandaloneProbes returns the probes that detect an already installed app:
// the launcher's display-mode marker and the launcher file itself.
func StandaloneProbes(cfg platform.LauncherConfig, getenv func(string) string) []Probe {
	return []Probe{
		{
			Name: "display-mode",
			Detect: func() (bool, error) {
				return platform.DisplayModeStandalone(getenv), nil
			},
		},
		{
			Name: "launcher",
			Detect: func() (bool, error) {
				path, err := platform.LauncherPath(cfg)
				if err != nil {
					return false, err
				}
				_, err = os.Stat(path)
				if os.IsNotExist(err) {
					return false, nil
				}
				return err == nil, err
			},
		},
	}
}

// Executable returns the resolved path of the running binary, or "".
func Executable() string {
	exe, err := os.Executable()
	if err != nil {
		return ""
	}
	if resolved, err := filepath.EvalSymlinks(exe); err == nil {
		return resolved
	}
	return exe
}
