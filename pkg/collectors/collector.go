// Package collectors runs the background samplers that feed the daybook
// update loop: the reachability probe behind the connectivity banner and the
// task/habit counter behind the onboarding gate. Each sampler implements
// Collector; a Runner ticks every registered collector on its own interval
// and fans the results into one channel that the TUI drains.
package collectors

import (
	"context"
	"time"
)

// Collector is one periodically sampled source.
type Collector interface {
	// Name returns a unique identifier (e.g., "network", "tasks"). The TUI
	// routes updates by this name.
	Name() string

	// Collect takes one sample. The value is opaque here; consumers
	// type-assert based on the collector name.
	Collect(ctx context.Context) (interface{}, error)

	// Interval returns how often the runner samples this collector.
	Interval() time.Duration
}

// Status is the runtime bookkeeping the runner keeps per collector.
type Status struct {
	Name        string
	LastRun     time.Time
	LastError   error
	RunCount    int64
	ErrorCount  int64
	LastLatency time.Duration
}

// Healthy reports whether the most recent sample succeeded. A collector that
// has never run is healthy.
func (s Status) Healthy() bool {
	return s.LastError == nil
}

// Update carries one sample from a runner goroutine to the consumer.
type Update struct {
	Source    string
	Data      interface{}
	Timestamp time.Time
	Error     error
}
