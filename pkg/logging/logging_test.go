package logging

import (
	"errors"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestAttrKeysAreStable(t *testing.T) {
	cases := []struct {
		name string
		attr slog.Attr
		key  string
		val  string
	}{
		{"Component", Component("install"), KeyComponent, "install"},
		{"Phase", Phase("visible"), KeyPhase, "visible"},
		{"Source", Source("network"), KeySource, "network"},
		{"Path", Path("/tmp/x"), KeyPath, "/tmp/x"},
		{"Key", Key("pwa-install-dismissed"), KeyKey, "pwa-install-dismissed"},
		{"Outcome", Outcome("accepted"), KeyOutcome, "accepted"},
		{"Error", Error(errors.New("boom")), KeyError, "boom"},
		{"NilError", Error(nil), KeyError, ""},
	}

	for _, tc := range cases {
		if tc.attr.Key != tc.key {
			t.Errorf("%s: key = %q, want %q", tc.name, tc.attr.Key, tc.key)
		}
		if got := tc.attr.Value.String(); got != tc.val {
			t.Errorf("%s: value = %q, want %q", tc.name, got, tc.val)
		}
	}

	if a := Online(true); a.Key != KeyOnline || !a.Value.Bool() {
		t.Errorf("Online(true) = %v", a)
	}
}

func TestParseLevel(t *testing.T) {
	cases := map[string]slog.Level{
		"debug":   slog.LevelDebug,
		"DEBUG":   slog.LevelDebug,
		"info":    slog.LevelInfo,
		"warn":    slog.LevelWarn,
		"warning": slog.LevelWarn,
		"error":   slog.LevelError,
		"":        slog.LevelInfo,
		"chatty":  slog.LevelInfo,
	}
	for in, want := range cases {
		if got := ParseLevel(in); got != want {
			t.Errorf("ParseLevel(%q) = %v, want %v", in, got, want)
		}
	}
}

func TestNewWritesToFileWithSession(t *testing.T) {
	path := filepath.Join(t.TempDir(), "logs", "daybook.log")
	logger, closer := New(Options{File: path, Level: slog.LevelDebug})

	logger.Info("hello", Component("test"))
	if err := closer.Close(); err != nil {
		t.Fatalf("Close: %v", err)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("read log: %v", err)
	}
	out := string(data)
	if !strings.Contains(out, "msg=hello") {
		t.Errorf("log missing message: %q", out)
	}
	if !strings.Contains(out, KeySession+"=") {
		t.Errorf("log missing session attr: %q", out)
	}
	if !strings.Contains(out, "component=test") {
		t.Errorf("log missing component attr: %q", out)
	}
}

func TestOrDiscard(t *testing.T) {
	if OrDiscard(nil) == nil {
		t.Fatal("OrDiscard(nil) returned nil")
	}
	l := Discard()
	if OrDiscard(l) != l {
		t.Error("OrDiscard should return a non-nil logger unchanged")
	}
}
