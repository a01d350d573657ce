package collectors

import (
	"context"
	"sync"
	"sync/atomic"
	"time"
)

// MockCollector implements Collector for tests. It counts Collect calls and
// returns whatever data or error it was last configured with.
type MockCollector struct {
	name     string
	interval time.Duration

	mu   sync.RWMutex
	data interface{}
	err  error

	calls atomic.Int64

	// CollectFunc, if set, replaces the configured data/error. Tests use it
	// to block, to vary results per call, or to observe the context.
	CollectFunc func(ctx context.Context) (interface{}, error)
}

// MockOption configures a MockCollector.
type MockOption func(*MockCollector)

// WithData sets the data returned by Collect.
func WithData(data interface{}) MockOption {
	return func(m *MockCollector) { m.data = data }
}

// WithError sets the error returned by Collect.
func WithError(err error) MockOption {
	return func(m *MockCollector) { m.err = err }
}

// WithCollectFunc replaces Collect's behaviour.
func WithCollectFunc(fn func(ctx context.Context) (interface{}, error)) MockOption {
	return func(m *MockCollector) { m.CollectFunc = fn }
}

// NewMockCollector creates a mock named name sampled every interval.
func NewMockCollector(name string, interval time.Duration, opts ...MockOption) *MockCollector {
	m := &MockCollector{name: name, interval: interval}
	for _, opt := range opts {
		opt(m)
	}
	return m
}

func (m *MockCollector) Name() string            { return m.name }
func (m *MockCollector) Interval() time.Duration { return m.interval }

// Set replaces the data and error returned by later calls.
func (m *MockCollector) Set(data interface{}, err error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.data, m.err = data, err
}

// Collect returns the configured sample.
func (m *MockCollector) Collect(ctx context.Context) (interface{}, error) {
	m.calls.Add(1)
	if m.CollectFunc != nil {
		return m.CollectFunc(ctx)
	}
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.data, m.err
}

// CallCount returns how many times Collect ran.
func (m *MockCollector) CallCount() int64 {
	return m.calls.Load()
}
