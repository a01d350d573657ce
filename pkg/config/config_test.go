package config

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"
)

func TestDefaultConfigValid(t *testing.T) {
	cfg := DefaultConfig()
	if err := cfg.Validate(); err != nil {
		t.Fatalf("defaults invalid: %v", err)
	}
	if cfg.Connectivity.BannerHide.Duration != 3*time.Second {
		t.Errorf("banner_hide = %v, want 3s", cfg.Connectivity.BannerHide)
	}
	if cfg.Install.PromptDelay.Duration != 10*time.Second {
		t.Errorf("prompt_delay = %v, want 10s", cfg.Install.PromptDelay)
	}
	if !strings.HasSuffix(cfg.General.StateDir, "daybook") {
		t.Errorf("state_dir = %q", cfg.General.StateDir)
	}
}

func TestLoadFromReaderOverridesDefaults(t *testing.T) {
	t.Setenv(EnvStateDir, "")
	t.Setenv(EnvProbe, "")
	t.Setenv(EnvLogLevel, "")

	doc := `
[general]
state_dir = "/tmp/daybook-test"

[connectivity]
probe = "tailscale"
banner_hide = "500ms"

[install]
enabled = false
`
	cfg, err := LoadFromReader(strings.NewReader(doc))
	if err != nil {
		t.Fatalf("LoadFromReader: %v", err)
	}
	if cfg.Connectivity.Probe != "tailscale" {
		t.Errorf("probe = %q", cfg.Connectivity.Probe)
	}
	if cfg.Connectivity.BannerHide.Duration != 500*time.Millisecond {
		t.Errorf("banner_hide = %v", cfg.Connectivity.BannerHide)
	}
	if cfg.Install.Enabled {
		t.Error("install.enabled should be false")
	}
	if cfg.Install.PromptDelay.Duration != 10*time.Second {
		t.Error("unset keys should keep their defaults")
	}
	if cfg.General.LogFile != filepath.Join("/tmp/daybook-test", "daybook.log") {
		t.Errorf("log_file = %q", cfg.General.LogFile)
	}
}

func TestLoadFromReaderRejectsUnknownKeys(t *testing.T) {
	if _, err := LoadFromReader(strings.NewReader("[install]\ndelay = \"1s\"\n")); err == nil {
		t.Error("expected error for unknown key")
	}
}

func TestLoadFromReaderBadDuration(t *testing.T) {
	if _, err := LoadFromReader(strings.NewReader("[connectivity]\ninterval = \"soon\"\n")); err == nil {
		t.Error("expected error for bad duration")
	}
	if _, err := LoadFromReader(strings.NewReader("[connectivity]\ninterval = \"-1s\"\n")); err == nil {
		t.Error("expected error for negative duration")
	}
}

func TestEnvOverrides(t *testing.T) {
	t.Setenv(EnvStateDir, "/var/tmp/db")
	t.Setenv(EnvProbe, "tailscale")
	t.Setenv(EnvLogLevel, "debug")

	cfg, err := LoadFromReader(strings.NewReader(""))
	if err != nil {
		t.Fatal(err)
	}
	if cfg.General.StateDir != "/var/tmp/db" || cfg.Connectivity.Probe != "tailscale" || cfg.General.LogLevel != "debug" {
		t.Errorf("overrides not applied: %+v", cfg.General)
	}
}

func TestLoadFromFileMissing(t *testing.T) {
	cfg, err := LoadFromFile(filepath.Join(t.TempDir(), "nope.toml"))
	if err != nil {
		t.Fatalf("missing file: %v", err)
	}
	if cfg.Connectivity.Probe == "" {
		t.Error("missing file should yield defaults")
	}
}

func TestLoadSearchesXDG(t *testing.T) {
	dir := t.TempDir()
	t.Setenv("XDG_CONFIG_HOME", dir)
	t.Setenv(EnvProbe, "")
	if err := os.MkdirAll(filepath.Join(dir, "daybook"), 0o755); err != nil {
		t.Fatal(err)
	}
	doc := "[connectivity]\nprobe = \"tailscale\"\n"
	if err := os.WriteFile(filepath.Join(dir, "daybook", "config.toml"), []byte(doc), 0o644); err != nil {
		t.Fatal(err)
	}

	cfg, err := Load()
	if err != nil {
		t.Fatal(err)
	}
	if cfg.Connectivity.Probe != "tailscale" {
		t.Errorf("probe = %q, want tailscale from XDG config", cfg.Connectivity.Probe)
	}
}

func TestValidateCollectsErrors(t *testing.T) {
	cfg := DefaultConfig()
	cfg.General.LogLevel = "loud"
	cfg.Connectivity.Probe = "ping"
	cfg.Install.PromptDelay = Duration{}

	err := cfg.Validate()
	if err == nil {
		t.Fatal("expected validation error")
	}
	for _, want := range []string{"log_level", "probe", "prompt_delay"} {
		if !strings.Contains(err.Error(), want) {
			t.Errorf("error %q missing %q", err, want)
		}
	}
}

func TestEncodeRoundTrip(t *testing.T) {
	t.Setenv(EnvStateDir, "")
	t.Setenv(EnvProbe, "")
	t.Setenv(EnvLogLevel, "")

	cfg := DefaultConfig()
	cfg.Connectivity.BannerHide = Duration{1500 * time.Millisecond}

	var buf bytes.Buffer
	if err := Encode(&buf, cfg); err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(buf.String(), `banner_hide = "1.5s"`) {
		t.Errorf("encoded config:\n%s", buf.String())
	}
	got, err := LoadFromReader(&buf)
	if err != nil {
		t.Fatalf("re-decode: %v", err)
	}
	if got.Connectivity.BannerHide.Duration != 1500*time.Millisecond {
		t.Errorf("banner_hide = %v after round trip", got.Connectivity.BannerHide)
	}
}
