// Package timer provides scheduled tasks for components that live inside the
// Bubble Tea update loop. A tea.Tick cannot be stopped once issued, so every
// scheduled message carries a generation number and the owning component
// discards firings whose generation is no longer current. Cancelling a Slot
// or tearing a component down therefore makes any in-flight tick inert.
package timer

import (
	"time"

	tea "github.com/charmbracelet/bubbletea"
)

// Scheduler turns a delay and a message into a command that delivers the
// message back to the update loop once the delay has elapsed.
type Scheduler interface {
	After(d time.Duration, msg tea.Msg) tea.Cmd
}

// TickScheduler schedules messages with tea.Tick.
type TickScheduler struct{}

// After returns a tea.Tick command that yields msg after d.
func (TickScheduler) After(d time.Duration, msg tea.Msg) tea.Cmd {
	return tea.Tick(d, func(time.Time) tea.Msg {
		return msg
	})
}

// Slot tracks the single pending timer a component owns for one purpose.
// The zero value is an idle slot.
type Slot struct {
	gen     uint64
	pending bool
}

// Arm invalidates any earlier timer and returns the generation the new
// timer's message must carry.
func (s *Slot) Arm() uint64 {
	s.gen++
	s.pending = true
	return s.gen
}

// Cancel invalidates the pending timer, if any.
func (s *Slot) Cancel() {
	s.gen++
	s.pending = false
}

// Fire reports whether a timer carrying gen is the live one. A live firing
// consumes the slot, so a duplicate delivery of the same message is ignored.
func (s *Slot) Fire(gen uint64) bool {
	if !s.pending || gen != s.gen {
		return false
	}
	s.pending = false
	return true
}

// Pending reports whether a live timer is outstanding.
func (s *Slot) Pending() bool {
	return s.pending
}
