package tasks

import (
	"context"
	"time"

	"gitlab.com/tinyland/lab/daybook/pkg/collectors"
	"gitlab.com/tinyland/lab/daybook/pkg/onboarding"
)

// CollectorName is the name the data collector registers under.
const CollectorName = "tasks"

// DefaultRefresh is how often the TUI re-reads the data file.
const DefaultRefresh = 2 * time.Second

var _ collectors.Collector = (*Collector)(nil)

// Collector samples the data file for the TUI. Each sample is a Snapshot.
type Collector struct {
	store    *Store
	interval time.Duration
}

// NewCollector creates a collector over store.
func NewCollector(store *Store, interval time.Duration) *Collector {
	if interval <= 0 {
		interval = DefaultRefresh
	}
	return &Collector{store: store, interval: interval}
}

func (c *Collector) Name() string            { return CollectorName }
func (c *Collector) Interval() time.Duration { return c.interval }

// Collect loads the current snapshot.
func (c *Collector) Collect(ctx context.Context) (interface{}, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	snap, err := c.store.Load()
	if err != nil {
		return nil, err
	}
	return snap, nil
}

// Counts summarises a snapshot for the onboarding gate.
func (s Snapshot) Counts() onboarding.Counts {
	return onboarding.Counts{Tasks: len(s.Tasks), Habits: len(s.Habits)}
}

// Open returns the tasks that are not done.
func (s Snapshot) Open() []Task {
	var out []Task
	for _, t := range s.Tasks {
		if !t.Done {
			out = append(out, t)
		}
	}
	return out
}
