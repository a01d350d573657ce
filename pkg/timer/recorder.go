package timer

import (
	"sync"
	"time"

	tea "github.com/charmbracelet/bubbletea"
)

// Scheduled is one call recorded by a Recorder.
type Scheduled struct {
	Delay time.Duration
	Msg   tea.Msg
}

// Recorder implements Scheduler for tests. It records every request and
// returns a command that yields the message immediately, so tests decide
// when (and whether) a timer fires by choosing when to feed the message
// back into Update.
type Recorder struct {
	mu    sync.Mutex
	calls []Scheduled
}

// After records the request and returns a command yielding msg.
func (r *Recorder) After(d time.Duration, msg tea.Msg) tea.Cmd {
	r.mu.Lock()
	r.calls = append(r.calls, Scheduled{Delay: d, Msg: msg})
	r.mu.Unlock()
	return func() tea.Msg { return msg }
}

// Calls returns a copy of all recorded requests in order.
func (r *Recorder) Calls() []Scheduled {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]Scheduled, len(r.calls))
	copy(out, r.calls)
	return out
}

// Last returns the most recent request, or false if nothing was scheduled.
func (r *Recorder) Last() (Scheduled, bool) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if len(r.calls) == 0 {
		return Scheduled{}, false
	}
	return r.calls[len(r.calls)-1], true
}

// Len returns the number of recorded requests.
func (r *Recorder) Len() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.calls)
}
