//go:build darwin

package platform

import (
	"context"
	"os/exec"
)

// Confirm shows d with osascript and reports whether the user accepted.
func Confirm(ctx context.Context, d Dialog) (bool, error) {
	path, err := exec.LookPath("osascript")
	if err != nil {
		return false, ErrNoDialog
	}
	return runDialog(ctx, path, PlOsascriptArgsFunc(d))
}
