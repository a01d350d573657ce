package collectors

import (
	"context"
	"log/slog"
	"sync"
	"time"

	"gitlab.com/tinyland/lab/daybook/pkg/logging"
)

// DefaultBuffer is the capacity of the updates channel.
const DefaultBuffer = 16

// Runner samples every registered collector on its interval. The first
// sample of each collector is taken immediately on Start.
type Runner struct {
	registry *Registry
	logger   *slog.Logger
	updates  chan Update

	mu      sync.Mutex
	cancel  context.CancelFunc
	started bool
	stopped bool
	wg      sync.WaitGroup
}

// NewRunner creates a runner over reg. Collectors registered after Start are
// not sampled.
func NewRunner(reg *Registry, logger *slog.Logger) *Runner {
	return &Runner{
		registry: reg,
		logger:   logging.OrDiscard(logger).With(logging.Component("collectors")),
		updates:  make(chan Update, DefaultBuffer),
	}
}

// Updates returns the channel samples are delivered on. It is closed by Stop
// once every collector goroutine has exited.
func (r *Runner) Updates() <-chan Update {
	return r.updates
}

// Start launches one goroutine per registered collector. Calling Start more
// than once is a no-op.
func (r *Runner) Start(ctx context.Context) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.started || r.stopped {
		return
	}
	r.started = true

	ctx, r.cancel = context.WithCancel(ctx)
	for _, name := range r.registry.List() {
		c, ok := r.registry.Get(name)
		if !ok {
			continue
		}
		r.wg.Add(1)
		go r.loop(ctx, c)
	}
	r.logger.Debug("collectors started", slog.Int("count", len(r.registry.List())))
}

// Stop cancels every collector goroutine, waits for them to exit and closes
// the updates channel. It is safe to call Stop more than once, and before
// Start.
func (r *Runner) Stop() {
	r.mu.Lock()
	if r.stopped {
		r.mu.Unlock()
		return
	}
	r.stopped = true
	if r.cancel != nil {
		r.cancel()
	}
	r.mu.Unlock()

	r.wg.Wait()
	close(r.updates)
}

// CollectOnce takes a single synchronous sample from the named collector
// without going through the updates channel. It is used at startup to seed
// state the UI must know before the first frame.
func (r *Runner) CollectOnce(ctx context.Context, name string) (interface{}, error) {
	c, ok := r.registry.Get(name)
	if !ok {
		return nil, errUnknownCollector(name)
	}
	return r.sample(ctx, c)
}

func (r *Runner) loop(ctx context.Context, c Collector) {
	defer r.wg.Done()

	interval := c.Interval()
	if interval <= 0 {
		interval = time.Minute
	}

	r.runOnce(ctx, c)

	ticker := time.NewTicker(interval)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			r.runOnce(ctx, c)
		}
	}
}

func (r *Runner) runOnce(ctx context.Context, c Collector) {
	data, err := r.sample(ctx, c)
	if ctx.Err() != nil {
		return
	}

	u := Update{
		Source:    c.Name(),
		Data:      data,
		Timestamp: time.Now(),
		Error:     err,
	}
	select {
	case r.updates <- u:
	case <-ctx.Done():
	}
}

func (r *Runner) sample(ctx context.Context, c Collector) (interface{}, error) {
	start := time.Now()
	data, err := c.Collect(ctx)
	latency := time.Since(start)

	r.registry.record(c.Name(), func(s *Status) {
		s.LastRun = start
		s.LastLatency = latency
		s.LastError = err
		s.RunCount++
		if err != nil {
			s.ErrorCount++
		}
	})
	if err != nil {
		r.logger.Debug("collect failed", logging.Source(c.Name()), logging.Error(err))
	}
	return data, err
}
