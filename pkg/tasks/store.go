// Package tasks is daybook's local data store: a single JSON document of
// tasks and habits in the state directory. The TUI reads it through a
// collector; the CLI appends to it. Writes replace the file atomically, so a
// running TUI never sees a half-written document.
package tasks

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"sync"
	"time"

	"gitlab.com/tinyland/lab/daybook/pkg/fsutil"
)

// ErrEmptyTitle is returned when adding an item without a title.
var ErrEmptyTitle = errors.New("tasks: title is required")

// FileName is the data file inside the state directory.
const FileName = "data.json"

// Task is a one-off to-do.
type Task struct {
	ID        string    `json:"id"`
	Title     string    `json:"title"`
	Done      bool      `json:"done"`
	CreatedAt time.Time `json:"created_at"`
}

// Habit is a recurring daily item.
type Habit struct {
	ID        string    `json:"id"`
	Title     string    `json:"title"`
	CreatedAt time.Time `json:"created_at"`
}

// Snapshot is the full document.
type Snapshot struct {
	Tasks  []Task  `json:"tasks"`
	Habits []Habit `json:"habits"`
}

// Store reads and writes the data file.
type Store struct {
	mu   sync.Mutex
	path string
	now  func() time.Time
}

// NewStore returns a store for the data file in dir. The file is created on
// first write.
func NewStore(dir string) *Store {
	return &Store{path: filepath.Join(dir, FileName), now: time.Now}
}

// Path returns the data file path.
func (s *Store) Path() string { return s.path }

// Load reads the document. A missing file is an empty snapshot.
func (s *Store) Load() (Snapshot, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.loadLocked()
}

// AddTask appends a task and returns it.
func (s *Store) AddTask(title string) (Task, error) {
	title = strings.TrimSpace(title)
	if title == "" {
		return Task{}, ErrEmptyTitle
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	snap, err := s.loadLocked()
	if err != nil {
		return Task{}, err
	}
	ids := make([]string, len(snap.Tasks))
	for i, t := range snap.Tasks {
		ids[i] = t.ID
	}
	task := Task{ID: nextID("t", ids), Title: title, CreatedAt: s.now().UTC()}
	snap.Tasks = append(snap.Tasks, task)
	return task, s.saveLocked(snap)
}

// AddHabit appends a habit and returns it.
func (s *Store) AddHabit(title string) (Habit, error) {
	title = strings.TrimSpace(title)
	if title == "" {
		return Habit{}, ErrEmptyTitle
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	snap, err := s.loadLocked()
	if err != nil {
		return Habit{}, err
	}
	ids := make([]string, len(snap.Habits))
	for i, h := range snap.Habits {
		ids[i] = h.ID
	}
	habit := Habit{ID: nextID("h", ids), Title: title, CreatedAt: s.now().UTC()}
	snap.Habits = append(snap.Habits, habit)
	return habit, s.saveLocked(snap)
}

func (s *Store) loadLocked() (Snapshot, error) {
	data, err := os.ReadFile(s.path)
	if os.IsNotExist(err) {
		return Snapshot{}, nil
	}
	if err != nil {
		return Snapshot{}, fmt.Errorf("read data file: %w", err)
	}
	var snap Snapshot
	if err := json.Unmarshal(data, &snap); err != nil {
		return Snapshot{}, fmt.Errorf("unmarshal data file: %w", err)
	}
	return snap, nil
}

func (s *Store) saveLocked(snap Snapshot) error {
	data, err := json.MarshalIndent(snap, "", "  ")
	if err != nil {
		return fmt.Errorf("marshal data file: %w", err)
	}
	if err := os.MkdirAll(filepath.Dir(s.path), 0o755); err != nil {
		return fmt.Errorf("create data directory: %w", err)
	}
	if err := fsutil.WriteAtomic(s.path, data, 0o644, ".tmp-data-*"); err != nil {
		return fmt.Errorf("write data file: %w", err)
	}
	return nil
}

// nextID returns prefix-NNN one past the highest existing number.
func nextID(prefix string, ids []string) string {
	maxNum := 0
	for _, id := range ids {
		num, err := strconv.Atoi(strings.TrimPrefix(id, prefix+"-"))
		if err != nil {
			continue
		}
		if num > maxNum {
			maxNum = num
		}
	}
	return fmt.Sprintf("%s-%03d", prefix, maxNum+1)
}
