package logging

import (
	"context"
	"log/slog"
	"testing"
)

func TestParseLevel(t *testing.T) {
	cases := map[string]slog.Level{
		"debug":   slog.LevelDebug,
		"Warn":    slog.LevelWarn,
		" error ": slog.LevelError,
		"info":    slog.LevelInfo,
		"":        slog.LevelInfo,
		"bogus":   slog.LevelInfo,
	}
	for in, want := range cases {
		if got := ParseLevel(in); got != want {
			t.Errorf("ParseLevel(%q) = %v, want %v", in, got, want)
		}
	}
}

func TestNewRejectsUnknownFormat(t *testing.T) {
	if _, err := New(Options{Format: "xml"}); err == nil {
		t.Fatal("expected error for unknown format")
	}
}

func TestNewAcceptsKnownFormats(t *testing.T) {
	for _, format := range []string{"", "console", "json", "text"} {
		if _, err := New(Options{Format: format}); err != nil {
			t.Errorf("New(format=%q): %v", format, err)
		}
	}
}

func TestWithContextNilSafety(t *testing.T) {
	if logger := WithContext(context.Background(), nil); logger == nil {
		t.Fatal("WithContext returned nil logger")
	}
}

func TestWithContextCarriesFields(t *testing.T) {
	ctx := WithRunID(context.Background(), "run-1")
	ctx = WithDocument(ctx, "ch01.md")
	logger := WithContext(ctx, NewNop())
	if logger == nil {
		t.Fatal("nil logger")
	}
	// The augmented logger must be distinct from the bare one.
	if WithContext(context.Background(), logger) != logger {
		t.Fatal("empty context should return the logger unchanged")
	}
}
