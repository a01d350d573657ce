// Package platform provides the OS-specific pieces of installing daybook as a
// standalone app: the desktop launcher file (a freedesktop .desktop entry on
// Linux, a .command script on macOS), the native confirmation dialog shown
// before writing it, and detection of a launcher-started session.
package platform

import (
	"errors"
	"os"
	"runtime"
)

// Platform identifies the current OS platform.
type Platform string

const (
	// Darwin represents macOS.
	Darwin Platform = "darwin"
	// Linux represents Linux distributions.
	Linux Platform = "linux"
)

// Current returns the platform for the running OS.
func Current() Platform {
	return Platform(runtime.GOOS)
}

var (
	// ErrUnsupported is returned when the running OS has no launcher format.
	ErrUnsupported = errors.New("platform: launcher not supported on this OS")

	// ErrNoDialog is returned by Confirm when no dialog tool is available.
	ErrNoDialog = errors.New("platform: no confirmation dialog available")
)

// DisplayModeEnv is set to "standalone" by the launcher's command line.
const DisplayModeEnv = "DAYBOOK_DISPLAY_MODE"

// displayModeStandalone is the DisplayModeEnv value the launcher sets.
const displayModeStandalone = "standalone"

// DisplayModeStandalone reports whether this process was started from the
// installed launcher. A nil getenv uses os.Getenv.
func DisplayModeStandalone(getenv func(string) string) bool {
	if getenv == nil {
		getenv = os.Getenv
	}
	return getenv(DisplayModeEnv) == displayModeStandalone
}

// LauncherConfig describes the launcher to generate.
type LauncherConfig struct {
	ID         string // file stem, e.g. "daybook"
	Name       string // display name, e.g. "Daybook"
	Comment    string // one-line description
	BinaryPath string // absolute path to the daybook binary
	Dir        string // launcher directory; empty uses the OS default
}

// withDefaults fills empty identity fields.
func (c LauncherConfig) withDefaults() LauncherConfig {
	if c.ID == "" {
		c.ID = "daybook"
	}
	if c.Name == "" {
		c.Name = "Daybook"
	}
	if c.Comment == "" {
		c.Comment = "Tasks and habits, offline first"
	}
	return c
}
