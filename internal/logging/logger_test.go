package logging

import (
	"bytes"
	"context"
	"log/slog"
	"strings"
	"testing"
)

func TestParseLevel(t *testing.T) {
	tests := []struct {
		in   string
		want slog.Level
	}{
		{"info", slog.LevelInfo},
		{"debug", slog.LevelDebug},
		{"DEBUG", slog.LevelDebug},
		{"trace", LevelTrace},
		{"Trace", LevelTrace},
		{"", slog.LevelInfo},
		{"bogus", slog.LevelInfo},
	}

	for _, tt := range tests {
		if got := ParseLevel(tt.in); got != tt.want {
			t.Fatalf("ParseLevel(%q): got %v, want %v", tt.in, got, tt.want)
		}
	}
}

func TestNewLoggerFiltersBelowLevel(t *testing.T) {
	var buf bytes.Buffer
	log := NewLogger("info", &buf)

	log.Debug("hidden")
	log.Info("shown")

	out := buf.String()
	if strings.Contains(out, "hidden") {
		t.Fatalf("NewLogger(info): debug output leaked: %q", out)
	}
	if !strings.Contains(out, "shown") {
		t.Fatalf("NewLogger(info): info output missing: %q", out)
	}
}

func TestNewLoggerLabelsTraceLevel(t *testing.T) {
	var buf bytes.Buffer
	log := NewLogger("trace", &buf)

	log.Log(context.Background(), LevelTrace, "weight update", "delta", 0.0025)

	out := buf.String()
	if !strings.Contains(out, "TRACE") {
		t.Fatalf("NewLogger(trace): trace level not labeled: %q", out)
	}
	if !strings.Contains(out, "weight update") {
		t.Fatalf("NewLogger(trace): message missing: %q", out)
	}
}
