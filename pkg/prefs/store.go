// Package prefs persists the handful of string flags daybook remembers
// between runs (onboarding completion, install prompt dismissal).
//
// Storage is best effort. A store that cannot be read starts empty and a
// store that cannot be written keeps the value in memory for the rest of the
// session; callers never block the UI on either.
package prefs

import (
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"sort"
	"sync"

	"gitlab.com/tinyland/lab/daybook/pkg/fsutil"
	"gitlab.com/tinyland/lab/daybook/pkg/logging"
)

// ErrClosed is returned by writes after Close.
var ErrClosed = errors.New("prefs: store closed")

// Store is the key-value collaborator the lifecycle components depend on.
// Get reports absence as ("", false), including when the backing storage is
// unavailable.
type Store interface {
	Get(key string) (string, bool)
	Set(key, value string) error
	Delete(key string) error
}

// fileFormat is the on-disk JSON document.
type fileFormat struct {
	Version int               `json:"version"`
	Values  map[string]string `json:"values"`
}

// FileStore keeps every key in a single JSON file. Writes are atomic via
// temp-file-then-rename, so a crash never leaves a half-written file.
type FileStore struct {
	path   string
	logger *slog.Logger

	mu     sync.RWMutex
	values map[string]string
	closed bool
}

// Open loads the store at path. It never fails: a missing file is an empty
// store and an unreadable or corrupt one is logged and treated as empty.
func Open(path string, logger *slog.Logger) *FileStore {
	s := &FileStore{
		path:   path,
		logger: logging.OrDiscard(logger).With(logging.Component("prefs")),
		values: make(map[string]string),
	}

	data, err := os.ReadFile(path)
	switch {
	case err == nil:
		var doc fileFormat
		if err := json.Unmarshal(data, &doc); err != nil {
			s.logger.Warn("ignoring corrupt prefs file", logging.Path(path), logging.Error(err))
			break
		}
		for k, v := range doc.Values {
			s.values[k] = v
		}
	case os.IsNotExist(err):
		// First run.
	default:
		s.logger.Warn("prefs unreadable, starting empty", logging.Path(path), logging.Error(err))
	}

	return s
}

// Path returns the backing file path.
func (s *FileStore) Path() string {
	return s.path
}

// Get returns the value stored under key.
func (s *FileStore) Get(key string) (string, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	v, ok := s.values[key]
	return v, ok
}

// Set stores value under key and persists the whole document. If the write
// fails the value is still visible to Get for this session and the error is
// returned for the caller to log.
func (s *FileStore) Set(key, value string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.closed {
		return ErrClosed
	}
	s.values[key] = value
	if err := s.persistLocked(); err != nil {
		return fmt.Errorf("prefs: set %q: %w", key, err)
	}
	return nil
}

// Delete removes key. Deleting an absent key is not an error.
func (s *FileStore) Delete(key string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.closed {
		return ErrClosed
	}
	if _, ok := s.values[key]; !ok {
		return nil
	}
	delete(s.values, key)
	if err := s.persistLocked(); err != nil {
		return fmt.Errorf("prefs: delete %q: %w", key, err)
	}
	return nil
}

// Keys returns all stored keys, sorted.
func (s *FileStore) Keys() []string {
	s.mu.RLock()
	defer s.mu.RUnlock()

	keys := make([]string, 0, len(s.values))
	for k := range s.values {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

// Close rejects further writes. Reads keep working. It is safe to call
// Close multiple times.
func (s *FileStore) Close() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.closed = true
	return nil
}

// --- internal helpers ---

// persistLocked writes the current map to disk. Caller must hold s.mu.
func (s *FileStore) persistLocked() error {
	data, err := json.MarshalIndent(fileFormat{Version: 1, Values: s.values}, "", "  ")
	if err != nil {
		return fmt.Errorf("marshal: %w", err)
	}

	dir := filepath.Dir(s.path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("create directory %s: %w", dir, err)
	}
	return fsutil.WriteAtomic(s.path, data, 0o600, ".tmp-prefs-*")
}
