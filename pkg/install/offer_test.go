package install

import (
	"context"
	"errors"
	"path/filepath"
	"testing"

	"gitlab.com/tinyland/lab/daybook/pkg/platform"
)

func confirmWith(ok bool, err error) OfferOption {
	return WithConfirm(func(context.Context, platform.Dialog) (bool, error) {
		return ok, err
	})
}

func recordInstall(called *int, err error) OfferOption {
	return WithInstaller(func(platform.LauncherConfig) (string, error) {
		*called++
		return "/tmp/daybook.desktop", err
	})
}

func TestLauncherOfferInvoke(t *testing.T) {
	cfg := platform.LauncherConfig{BinaryPath: "/usr/bin/daybook"}

	tests := []struct {
		name        string
		confirmOK   bool
		confirmErr  error
		installErr  error
		want        Outcome
		wantErr     bool
		wantInstall int
	}{
		{name: "confirmed", confirmOK: true, want: OutcomeAccepted, wantInstall: 1},
		{name: "declined", confirmOK: false, want: OutcomeDismissed},
		{name: "no dialog", confirmErr: platform.ErrNoDialog, want: OutcomeAccepted, wantInstall: 1},
		{name: "dialog failed", confirmErr: errors.New("exit status 5"), want: OutcomeDismissed, wantErr: true},
		{name: "write failed", confirmOK: true, installErr: errors.New("read-only fs"), want: OutcomeDismissed, wantErr: true, wantInstall: 1},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			installs := 0
			o := NewLauncherOffer(cfg, confirmWith(tt.confirmOK, tt.confirmErr), recordInstall(&installs, tt.installErr))
			got, err := o.Invoke(context.Background())
			if (err != nil) != tt.wantErr {
				t.Fatalf("err = %v, wantErr %v", err, tt.wantErr)
			}
			if got != tt.want {
				t.Errorf("outcome = %v, want %v", got, tt.want)
			}
			if installs != tt.wantInstall {
				t.Errorf("installs = %d, want %d", installs, tt.wantInstall)
			}
		})
	}
}

func TestLauncherOfferSingleUse(t *testing.T) {
	installs := 0
	o := NewLauncherOffer(platform.LauncherConfig{BinaryPath: "/usr/bin/daybook"}, confirmWith(true, nil), recordInstall(&installs, nil))
	if !o.Valid() {
		t.Fatal("fresh offer should be valid")
	}
	if _, err := o.Invoke(context.Background()); err != nil {
		t.Fatal(err)
	}
	if o.Valid() {
		t.Error("used offer should be invalid")
	}
	if _, err := o.Invoke(context.Background()); !errors.Is(err, ErrOfferUsed) {
		t.Errorf("second Invoke err = %v, want ErrOfferUsed", err)
	}
	if installs != 1 {
		t.Errorf("installs = %d, want 1", installs)
	}
}

func TestLauncherOfferNeedsBinary(t *testing.T) {
	if NewLauncherOffer(platform.LauncherConfig{}).Valid() {
		t.Error("offer without binary path should be invalid")
	}
}

func TestStandaloneProbes(t *testing.T) {
	cfg := platform.LauncherConfig{BinaryPath: "/usr/bin/daybook", Dir: t.TempDir()}
	env := map[string]string{}
	probes := StandaloneProbes(cfg, func(k string) string { return env[k] })

	detect := func() bool {
		for _, p := range probes {
			if ok, err := p.Detect(); err == nil && ok {
				return true
			}
		}
		return false
	}

	if detect() {
		t.Fatal("nothing installed yet")
	}

	env[platform.DisplayModeEnv] = "standalone"
	if !detect() {
		t.Error("display-mode probe should detect a launcher session")
	}
	delete(env, platform.DisplayModeEnv)

	if !platform.LauncherSupported() {
		return
	}
	if _, err := platform.InstallLauncher(cfg); err != nil {
		t.Fatal(err)
	}
	if !detect() {
		t.Error("launcher probe should detect the installed file")
	}
}

func TestDetectOffer(t *testing.T) {
	if !platform.LauncherSupported() {
		t.Skip("no launcher format on this OS")
	}
	cfg := platform.LauncherConfig{BinaryPath: "/usr/bin/daybook", Dir: filepath.Join(t.TempDir(), "apps")}

	c, ok := DetectOffer(cfg)
	if !ok || c == nil || !c.Valid() {
		t.Fatal("expected an offer before install")
	}
	if _, err := platform.InstallLauncher(cfg); err != nil {
		t.Fatal(err)
	}
	if _, ok := DetectOffer(cfg); ok {
		t.Error("no offer expected once installed")
	}
	if _, ok := DetectOffer(platform.LauncherConfig{Dir: cfg.Dir}); ok {
		t.Error("no offer expected without a binary path")
	}
}
