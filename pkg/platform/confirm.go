package platform

import (
	"context"
	"errors"
	"fmt"
	"os/exec"
	"strings"
)

// Dialog is a confirmation prompt.
type Dialog struct {
	Title   string
	Text    string
	Accept  string // accept button label
	Decline string // decline button label
}

func (d Dialog) withDefaults() Dialog {
	if d.Accept == "" {
		d.Accept = "Install"
	}
	if d.Decline == "" {
		d.Decline = "Not now"
	}
	return d
}

// PlZenityArgsFunc is the pure, testable implementation.
func PlZenityArgsFunc(d Dialog) []string {
	d = d.withDefaults()
	return []string{
		"--question",
		"--title=" + d.Title,
		"--text=" + d.Text,
		"--ok-label=" + d.Accept,
		"--cancel-label=" + d.Decline,
	}
}

// PlKdialogArgsFunc is the pure, testable implementation.
func PlKdialogArgsFunc(d Dialog) []string {
	d = d.withDefaults()
	return []string{
		"--title", d.Title,
		"--yesno", d.Text,
		"--yes-label", d.Accept,
		"--no-label", d.Decline,
	}
}

// PlOsascriptArgsFunc is the pure, testable implementation.
func PlOsascriptArgsFunc(d Dialog) []string {
	d = d.withDefaults()
	script := fmt.Sprintf(
		`display dialog %s with title %s buttons {%s, %s} default button %s cancel button %s`,
		appleQuote(d.Text), appleQuote(d.Title),
		appleQuote(d.Decline), appleQuote(d.Accept),
		appleQuote(d.Accept), appleQuote(d.Decline),
	)
	return []string{"-e", script}
}

// runDialog runs a dialog tool. Exit status 1 is the tools' shared way of
// saying the user declined.
func runDialog(ctx context.Context, name string, args []string) (bool, error) {
	err := exec.CommandContext(ctx, name, args...).Run()
	if err == nil {
		return true, nil
	}
	var exitErr *exec.ExitError
	if errors.As(err, &exitErr) && exitErr.ExitCode() == 1 && ctx.Err() == nil {
		return false, nil
	}
	if ctx.Err() != nil {
		return false, ctx.Err()
	}
	return false, fmt.Errorf("%s: %w", name, err)
}

func appleQuote(s string) string {
	r := strings.NewReplacer(`\`, `\\`, `"`, `\"`)
	return `"` + r.Replace(s) + `"`
}
