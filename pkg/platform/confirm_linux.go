//go:build linux

package platform

import (
	"context"
	"os"
	"os/exec"
)

// Confirm shows d with zenity or kdialog and reports whether the user
// accepted. It returns ErrNoDialog when there is no graphical session or
// neither tool is installed.
func Confirm(ctx context.Context, d Dialog) (bool, error) {
	if os.Getenv("DISPLAY") == "" && os.Getenv("WAYLAND_DISPLAY") == "" {
		return false, ErrNoDialog
	}
	if path, err := exec.LookPath("zenity"); err == nil {
		return runDialog(ctx, path, PlZenityArgsFunc(d))
	}
	if path, err := exec.LookPath("kdialog"); err == nil {
		return runDialog(ctx, path, PlKdialogArgsFunc(d))
	}
	return false, ErrNoDialog
}
