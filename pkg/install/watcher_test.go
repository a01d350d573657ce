package install

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"go.uber.org/goleak"
)

func TestMain(m *testing.M) {
	goleak.VerifyTestMain(m)
}

func TestCompletionWatcherSeesCreate(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "applications")
	path := filepath.Join(dir, "daybook.desktop")

	w, err := NewCompletionWatcher(path, nil)
	if err != nil {
		t.Fatalf("NewCompletionWatcher: %v", err)
	}
	defer w.Close()
	w.Start(context.Background())

	if err := os.WriteFile(filepath.Join(dir, "other.desktop"), []byte("x"), 0644); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(path, []byte("[Desktop Entry]\n"), 0644); err != nil {
		t.Fatal(err)
	}

	select {
	case msg := <-w.Events():
		if filepath.Base(msg.Path) != "daybook.desktop" {
			t.Errorf("Path = %q", msg.Path)
		}
	case <-time.After(5 * time.Second):
		t.Fatal("no completion event")
	}
}

func TestCompletionWatcherCloseIdempotent(t *testing.T) {
	w, err := NewCompletionWatcher(filepath.Join(t.TempDir(), "daybook.desktop"), nil)
	if err != nil {
		t.Fatal(err)
	}
	w.Start(context.Background())

	if err := w.Close(); err != nil {
		t.Errorf("Close: %v", err)
	}
	_ = w.Close()

	if _, open := <-w.Events(); open {
		t.Error("events channel should be closed")
	}
}

func TestCompletionWatcherStopsOnContext(t *testing.T) {
	w, err := NewCompletionWatcher(filepath.Join(t.TempDir(), "daybook.desktop"), nil)
	if err != nil {
		t.Fatal(err)
	}
	ctx, cancel := context.WithCancel(context.Background())
	w.Start(ctx)
	cancel()
	_ = w.Close()
}
