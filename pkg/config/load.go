package config

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"time"

	"github.com/BurntSushi/toml"
)

const appName = "daybook"

// Environment overrides.
const (
	EnvStateDir = "DAYBOOK_STATE_DIR"
	EnvProbe    = "DAYBOOK_PROBE"
	EnvLogLevel = "DAYBOOK_LOG_LEVEL"
)

// Load reads configuration from the standard config path.
// Search order:
//  1. $XDG_CONFIG_HOME/daybook/config.toml
//  2. ~/.config/daybook/config.toml
//
// If no file exists, returns DefaultConfig() with env overrides applied.
func Load() (*Config, error) {
	for _, p := range configSearchPaths() {
		if _, err := os.Stat(p); err == nil {
			return LoadFromFile(p)
		}
	}
	cfg := DefaultConfig()
	finish(cfg)
	return cfg, nil
}

// LoadFromFile reads configuration from a specific file path. A missing file
// yields the defaults.
func LoadFromFile(path string) (*Config, error) {
	f, err := os.Open(path)
	if err != nil {
		if os.IsNotExist(err) {
			cfg := DefaultConfig()
			finish(cfg)
			return cfg, nil
		}
		return nil, fmt.Errorf("open config: %w", err)
	}
	defer f.Close()

	cfg, err := LoadFromReader(f)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return cfg, nil
}

// LoadFromReader reads configuration from an io.Reader. Keys missing from
// the document keep their defaults.
func LoadFromReader(r io.Reader) (*Config, error) {
	cfg := DefaultConfig()
	md, err := toml.NewDecoder(r).Decode(cfg)
	if err != nil {
		return nil, fmt.Errorf("decode config: %w", err)
	}
	if undecoded := md.Undecoded(); len(undecoded) > 0 {
		return nil, fmt.Errorf("unknown config key %q", undecoded[0].String())
	}
	finish(cfg)
	return cfg, nil
}

// Encode writes cfg as TOML.
func Encode(w io.Writer, cfg *Config) error {
	return toml.NewEncoder(w).Encode(cfg)
}

// DefaultConfig returns the default configuration.
func DefaultConfig() *Config {
	home, _ := os.UserHomeDir()

	return &Config{
		General: GeneralConfig{
			LogLevel:      "info",
			LogMaxSizeMB:  5,
			LogMaxBackups: 3,
			StateDir:      filepath.Join(xdgStateHome(home), appName),
		},
		Connectivity: ConnectivityConfig{
			Probe:      "interfaces",
			Interval:   Duration{5 * time.Second},
			BannerHide: Duration{3 * time.Second},
		},
		Install: InstallConfig{
			Enabled:     true,
			PromptDelay: Duration{10 * time.Second},
		},
		Onboarding: OnboardingConfig{
			Enabled: true,
		},
		Data: DataConfig{
			RefreshInterval: Duration{2 * time.Second},
		},
	}
}

// finish applies env overrides and fills values derived from others.
func finish(cfg *Config) {
	applyEnvOverrides(cfg)
	if cfg.General.LogFile == "" {
		cfg.General.LogFile = filepath.Join(cfg.General.StateDir, appName+".log")
	}
}

// applyEnvOverrides checks environment variables and overrides config values.
func applyEnvOverrides(cfg *Config) {
	if v := os.Getenv(EnvStateDir); v != "" {
		cfg.General.StateDir = v
	}
	if v := os.Getenv(EnvProbe); v != "" {
		cfg.Connectivity.Probe = v
	}
	if v := os.Getenv(EnvLogLevel); v != "" {
		cfg.General.LogLevel = v
	}
}

// configSearchPaths returns the ordered list of config file paths to try.
func configSearchPaths() []string {
	home, _ := os.UserHomeDir()
	var paths []string

	xdg := xdgConfigHome(home)
	paths = append(paths, filepath.Join(xdg, appName, "config.toml"))

	// If XDG_CONFIG_HOME was explicitly set, also try the fallback default.
	defaultXDG := filepath.Join(home, ".config")
	if xdg != defaultXDG {
		paths = append(paths, filepath.Join(defaultXDG, appName, "config.toml"))
	}

	return paths
}

// xdgConfigHome returns XDG_CONFIG_HOME or ~/.config as fallback.
func xdgConfigHome(home string) string {
	if v := os.Getenv("XDG_CONFIG_HOME"); v != "" {
		return v
	}
	return filepath.Join(home, ".config")
}

// xdgStateHome returns XDG_STATE_HOME or ~/.local/state as fallback.
func xdgStateHome(home string) string {
	if v := os.Getenv("XDG_STATE_HOME"); v != "" {
		return v
	}
	return filepath.Join(home, ".local", "state")
}
