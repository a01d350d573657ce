// Package install decides when, and whether, daybook offers to install itself
// as a standalone app.
//
// The platform's install capability arrives as an opaque Capability. The
// Tracker holds it without acting on it; the Presenter waits a grace period
// after the offer, then shows an install banner unless the user dismissed
// one before. Installation completing by any route retires the capability
// and everything pending on it.
package install

import (
	"context"
	"time"
)

// DefaultPromptDelay is how long after an offer the banner may appear.
const DefaultPromptDelay = 10 * time.Second

// Outcome is how the user resolved an invoked capability.
type Outcome int

const (
	OutcomeAccepted Outcome = iota
	OutcomeDismissed
)

func (o Outcome) String() string {
	switch o {
	case OutcomeAccepted:
		return "accepted"
	case OutcomeDismissed:
		return "dismissed"
	default:
		return "unknown"
	}
}

// Capability is a deferred install offer. Invoke may be called at most once;
// a returned error means the platform rejected the install. Implementations
// must be comparable (pointer types are).
type Capability interface {
	Invoke(ctx context.Context) (Outcome, error)
	Valid() bool
}

// OfferedMsg announces an install capability.
type OfferedMsg struct {
	Capability Capability
}

// CompletedMsg announces that the app was installed.
type CompletedMsg struct {
	Path string
}

// Probe detects a session that is already running as the installed app.
// Detection errors count as "not detected".
type Probe struct {
	Name   string
	Detect func() (bool, error)
}
