// Package config provides TOML-based configuration for daybook.
package config

import (
	"errors"
	"fmt"
	"strings"
)

// Config is the full daybook configuration.
type Config struct {
	General      GeneralConfig      `toml:"general"`
	Connectivity ConnectivityConfig `toml:"connectivity"`
	Install      InstallConfig      `toml:"install"`
	Onboarding   OnboardingConfig   `toml:"onboarding"`
	Data         DataConfig         `toml:"data"`
}

// GeneralConfig holds logging and storage locations.
type GeneralConfig struct {
	LogLevel      string `toml:"log_level"`
	LogFile       string `toml:"log_file"`
	LogMaxSizeMB  int    `toml:"log_max_size_mb"`
	LogMaxBackups int    `toml:"log_max_backups"`

	// StateDir holds prefs.json and data.json.
	StateDir string `toml:"state_dir"`
}

// ConnectivityConfig tunes the reachability probe and the status banner.
type ConnectivityConfig struct {
	// Probe is "interfaces" or "tailscale".
	Probe           string   `toml:"probe"`
	Interval        Duration `toml:"interval"`
	BannerHide      Duration `toml:"banner_hide"`
	TailscaleSocket string   `toml:"tailscale_socket"`
}

// InstallConfig tunes the install prompt.
type InstallConfig struct {
	Enabled     bool     `toml:"enabled"`
	PromptDelay Duration `toml:"prompt_delay"`

	// LauncherDir overrides the OS launcher directory.
	LauncherDir string `toml:"launcher_dir"`
}

// OnboardingConfig toggles the first-run tour.
type OnboardingConfig struct {
	Enabled bool `toml:"enabled"`

	// Pages is an optional YAML file replacing the built-in tour.
	Pages string `toml:"pages"`
}

// DataConfig tunes how often the data file is re-read.
type DataConfig struct {
	RefreshInterval Duration `toml:"refresh_interval"`
}

var validProbes = map[string]bool{"interfaces": true, "tailscale": true}

var validLevels = map[string]bool{"debug": true, "info": true, "warn": true, "warning": true, "error": true}

// Validate reports every invalid field at once.
func (c *Config) Validate() error {
	var errs []error
	if !validLevels[strings.ToLower(c.General.LogLevel)] {
		errs = append(errs, fmt.Errorf("general.log_level: unknown level %q", c.General.LogLevel))
	}
	if c.General.StateDir == "" {
		errs = append(errs, errors.New("general.state_dir: must not be empty"))
	}
	if !validProbes[c.Connectivity.Probe] {
		errs = append(errs, fmt.Errorf("connectivity.probe: unknown probe %q", c.Connectivity.Probe))
	}
	if c.Connectivity.Interval.Duration <= 0 {
		errs = append(errs, errors.New("connectivity.interval: must be positive"))
	}
	if c.Connectivity.BannerHide.Duration <= 0 {
		errs = append(errs, errors.New("connectivity.banner_hide: must be positive"))
	}
	if c.Install.PromptDelay.Duration <= 0 {
		errs = append(errs, errors.New("install.prompt_delay: must be positive"))
	}
	if c.Data.RefreshInterval.Duration <= 0 {
		errs = append(errs, errors.New("data.refresh_interval: must be positive"))
	}
	return errors.Join(errs...)
}
