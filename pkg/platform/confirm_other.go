//go:build !linux && !darwin

package platform

import "context"

// Confirm always returns ErrNoDialog on this OS.
func Confirm(context.Context, Dialog) (bool, error) {
	return false, ErrNoDialog
}
