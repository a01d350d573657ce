// Package logging builds the slog logger shared by every daybook component
// and defines the canonical attribute keys they log with.
//
// The TUI owns the terminal, so interactive runs log to a size-rotated file
// instead of stderr.
package logging

import (
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/google/uuid"
	"gopkg.in/natefinch/lumberjack.v2"
)

// Canonical log field names.
const (
	KeySession   = "session"
	KeyComponent = "component"
	KeyPhase     = "phase"
	KeySource    = "source"
	KeyOnline    = "online"
	KeyPath      = "path"
	KeyKey       = "key"
	KeyOutcome   = "outcome"
	KeyError     = "error"
)

// Component tags the subsystem that logged.
func Component(name string) slog.Attr { return slog.String(KeyComponent, name) }

// Phase tags a lifecycle phase name.
func Phase(p string) slog.Attr { return slog.String(KeyPhase, p) }

// Source tags the collector or probe a value came from.
func Source(s string) slog.Attr { return slog.String(KeySource, s) }

// Online tags a reachability reading.
func Online(v bool) slog.Attr { return slog.Bool(KeyOnline, v) }

// Path tags a filesystem path.
func Path(p string) slog.Attr { return slog.String(KeyPath, p) }

// Key tags a preference key.
func Key(k string) slog.Attr { return slog.String(KeyKey, k) }

// Outcome tags how an install prompt was resolved.
func Outcome(o string) slog.Attr { return slog.String(KeyOutcome, o) }

// Error tags an error message. A nil error logs as "".
func Error(err error) slog.Attr {
	if err == nil {
		return slog.String(KeyError, "")
	}
	return slog.String(KeyError, err.Error())
}

// Options controls where and how much the logger writes.
type Options struct {
	// File is the log file path. Empty means stderr.
	File string

	// MaxSizeMB is the size at which the file is rotated. Default: 5.
	MaxSizeMB int

	// MaxBackups is how many rotated files are kept. Default: 3.
	MaxBackups int

	Level slog.Level
}

// New returns a text logger tagged with a fresh session id, and a closer
// that releases the log file. The closer is never nil.
func New(opts Options) (*slog.Logger, io.Closer) {
	var w io.Writer = os.Stderr
	var closer io.Closer = io.NopCloser(nil)

	if opts.File != "" {
		if opts.MaxSizeMB <= 0 {
			opts.MaxSizeMB = 5
		}
		if opts.MaxBackups <= 0 {
			opts.MaxBackups = 3
		}
		_ = os.MkdirAll(filepath.Dir(opts.File), 0o755)
		lj := &lumberjack.Logger{
			Filename:   opts.File,
			MaxSize:    opts.MaxSizeMB,
			MaxBackups: opts.MaxBackups,
		}
		w = lj
		closer = lj
	}

	handler := slog.NewTextHandler(w, &slog.HandlerOptions{Level: opts.Level})
	return slog.New(handler).With(slog.String(KeySession, uuid.NewString())), closer
}

// Discard returns a logger that drops everything. Tests and callers that
// pass a nil logger get this.
func Discard() *slog.Logger {
	return slog.New(slog.DiscardHandler)
}

// OrDiscard returns l, or a discarding logger when l is nil.
func OrDiscard(l *slog.Logger) *slog.Logger {
	if l == nil {
		return Discard()
	}
	return l
}

// ParseLevel maps "debug", "info", "warn" and "error" to slog levels.
// Anything else is info.
func ParseLevel(s string) slog.Level {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "debug":
		return slog.LevelDebug
	case "warn", "warning":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}
