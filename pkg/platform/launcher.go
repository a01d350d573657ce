package platform

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"gitlab.com/tinyland/lab/daybook/pkg/fsutil"
)

// launcherFile is a launcher ready to be written.
type launcherFile struct {
	Path    string
	Content string
	Mode    os.FileMode
}

// PlGenerateDesktopEntryFunc is the pure, testable implementation of
// freedesktop launcher generation.
func PlGenerateDesktopEntryFunc(cfg LauncherConfig) string {
	cfg = cfg.withDefaults()
	return fmt.Sprintf(`[Desktop Entry]
Type=Application
Version=1.0
Name=%s
Comment=%s
Exec=env %s=%s %s
Terminal=true
Categories=Office;ProjectManagement;
StartupNotify=false
`, cfg.Name, cfg.Comment, DisplayModeEnv, displayModeStandalone, desktopExecQuote(cfg.BinaryPath))
}

// PlDesktopEntryPathFunc is the pure, testable implementation.
func PlDesktopEntryPathFunc(home string, cfg LauncherConfig) string {
	cfg = cfg.withDefaults()
	dir := cfg.Dir
	if dir == "" {
		dir = filepath.Join(home, ".local", "share", "applications")
	}
	return filepath.Join(dir, cfg.ID+".desktop")
}

// PlGenerateCommandScriptFunc is the pure, testable implementation of macOS
// launcher generation.
func PlGenerateCommandScriptFunc(cfg LauncherConfig) string {
	cfg = cfg.withDefaults()
	return fmt.Sprintf(`#!/bin/sh
# %s: %s
%s=%s exec %s
`, cfg.Name, cfg.Comment, DisplayModeEnv, displayModeStandalone, shellQuote(cfg.BinaryPath))
}

// PlCommandScriptPathFunc is the pure, testable implementation.
func PlCommandScriptPathFunc(home string, cfg LauncherConfig) string {
	cfg = cfg.withDefaults()
	dir := cfg.Dir
	if dir == "" {
		dir = filepath.Join(home, "Applications")
	}
	return filepath.Join(dir, cfg.Name+".command")
}

// LauncherSupported reports whether this OS has a launcher format.
func LauncherSupported() bool {
	_, err := plLauncher(LauncherConfig{}, "")
	return err == nil
}

// LauncherPath returns where the launcher for cfg lives.
func LauncherPath(cfg LauncherConfig) (string, error) {
	f, err := plLauncher(cfg, homeDir())
	if err != nil {
		return "", err
	}
	return f.Path, nil
}

// LauncherInstalled reports whether the launcher file exists.
func LauncherInstalled(cfg LauncherConfig) bool {
	path, err := LauncherPath(cfg)
	if err != nil {
		return false
	}
	_, err = os.Stat(path)
	return err == nil
}

// InstallLauncher writes the launcher for cfg and returns its path. The file
// appears atomically, so watchers see one create event for a complete file.
func InstallLauncher(cfg LauncherConfig) (string, error) {
	if cfg.BinaryPath == "" {
		return "", fmt.Errorf("install launcher: binary path is required")
	}
	f, err := plLauncher(cfg, homeDir())
	if err != nil {
		return "", err
	}

	dir := filepath.Dir(f.Path)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return "", fmt.Errorf("creating launcher directory: %w", err)
	}

	if err := fsutil.WriteAtomic(f.Path, []byte(f.Content), f.Mode, ".tmp-launcher-*"); err != nil {
		return "", fmt.Errorf("writing launcher: %w", err)
	}

	plRefreshLaunchers(dir)
	return f.Path, nil
}

// UninstallLauncher removes the launcher. A missing launcher is not an error.
func UninstallLauncher(cfg LauncherConfig) error {
	path, err := LauncherPath(cfg)
	if err != nil {
		return err
	}
	if err := os.Remove(path); err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("removing launcher: %w", err)
	}
	plRefreshLaunchers(filepath.Dir(path))
	return nil
}

func homeDir() string {
	home, err := os.UserHomeDir()
	if err != nil {
		home = os.Getenv("HOME")
	}
	return home
}

// desktopExecQuote quotes a path for a desktop entry Exec key.
func desktopExecQuote(s string) string {
	if !strings.ContainsAny(s, " \t\"'\\$`") {
		return s
	}
	r := strings.NewReplacer(`\`, `\\`, `"`, `\"`, "`", "\\`", `$`, `\$`)
	return `"` + r.Replace(s) + `"`
}

// shellQuote single-quotes s for sh.
func shellQuote(s string) string {
	return "'" + strings.ReplaceAll(s, "'", `'\''`) + "'"
}
