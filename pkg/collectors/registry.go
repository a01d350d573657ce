package collectors

import (
	"fmt"
	"sort"
	"sync"
)

type registryEntry struct {
	collector Collector
	status    Status
}

// Registry holds the named collectors a Runner drives. It is safe for
// concurrent use.
type Registry struct {
	mu      sync.RWMutex
	entries map[string]*registryEntry
}

// NewRegistry returns an empty registry.
func NewRegistry() *Registry {
	return &Registry{entries: make(map[string]*registryEntry)}
}

// Register adds c. Names must be unique.
func (r *Registry) Register(c Collector) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	name := c.Name()
	if _, exists := r.entries[name]; exists {
		return fmt.Errorf("collector %q already registered", name)
	}
	r.entries[name] = &registryEntry{collector: c, status: Status{Name: name}}
	return nil
}

// Get returns the collector registered under name.
func (r *Registry) Get(name string) (Collector, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	e, ok := r.entries[name]
	if !ok {
		return nil, false
	}
	return e.collector, true
}

// List returns the registered names, sorted.
func (r *Registry) List() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()

	names := make([]string, 0, len(r.entries))
	for name := range r.entries {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Status returns a copy of the bookkeeping for name.
func (r *Registry) Status(name string) (Status, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	e, ok := r.entries[name]
	if !ok {
		return Status{}, false
	}
	return e.status, true
}

// record applies fn to the status of name under the write lock.
func (r *Registry) record(name string, fn func(s *Status)) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if e, ok := r.entries[name]; ok {
		fn(&e.status)
	}
}
