package install

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"sync"

	"github.com/fsnotify/fsnotify"

	"gitlab.com/tinyland/lab/daybook/pkg/logging"
)

// CompletionWatcher reports when the launcher file appears, whether daybook
// wrote it or another process did.
type CompletionWatcher struct {
	path    string
	logger  *slog.Logger
	watcher *fsnotify.Watcher
	events  chan CompletedMsg

	done      chan struct{}
	closeOnce sync.Once
	startOnce sync.Once
	wg        sync.WaitGroup
}

// NewCompletionWatcher watches the directory that holds path. The directory
// is created if missing.
func NewCompletionWatcher(path string, logger *slog.Logger) (*CompletionWatcher, error) {
	absPath, err := filepath.Abs(path)
	if err != nil {
		return nil, fmt.Errorf("resolve launcher path: %w", err)
	}
	dir := filepath.Dir(absPath)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return nil, fmt.Errorf("create launcher directory: %w", err)
	}

	w, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("create file watcher: %w", err)
	}
	if err := w.Add(dir); err != nil {
		_ = w.Close()
		return nil, fmt.Errorf("watch %s: %w", dir, err)
	}

	return &CompletionWatcher{
		path:    absPath,
		logger:  logging.OrDiscard(logger).With(logging.Component("install-watcher")),
		watcher: w,
		events:  make(chan CompletedMsg, 1),
		done:    make(chan struct{}),
	}, nil
}

// Events delivers one message per launcher creation. It is closed by Close.
func (cw *CompletionWatcher) Events() <-chan CompletedMsg {
	return cw.events
}

// Start begins watching until ctx is done or Close is called.
func (cw *CompletionWatcher) Start(ctx context.Context) {
	cw.startOnce.Do(func() {
		cw.wg.Add(1)
		go cw.loop(ctx)
	})
}

// Close stops the watcher and waits for its goroutine. It is safe to call
// more than once.
func (cw *CompletionWatcher) Close() error {
	var err error
	cw.closeOnce.Do(func() {
		close(cw.done)
		err = cw.watcher.Close()
		cw.wg.Wait()
		close(cw.events)
	})
	return err
}

func (cw *CompletionWatcher) loop(ctx context.Context) {
	defer cw.wg.Done()
	base := filepath.Base(cw.path)

	for {
		select {
		case <-ctx.Done():
			return
		case <-cw.done:
			return
		case ev, ok := <-cw.watcher.Events:
			if !ok {
				return
			}
			if filepath.Base(ev.Name) != base || !ev.Has(fsnotify.Create) {
				continue
			}
			cw.logger.Debug("launcher created", logging.Path(ev.Name))
			select {
			case cw.events <- CompletedMsg{Path: cw.path}:
			case <-ctx.Done():
				return
			case <-cw.done:
				return
			}
		case err, ok := <-cw.watcher.Errors:
			if !ok {
				return
			}
			cw.logger.Warn("launcher watcher error", logging.Error(err))
		}
	}
}
