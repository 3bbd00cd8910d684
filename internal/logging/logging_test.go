package logging

import (
	"bytes"
	"log/slog"
	"strings"
	"testing"
)

func TestParseLevel(t *testing.T) {
	tests := map[string]slog.Level{
		"debug":   slog.LevelDebug,
		" INFO ":  slog.LevelInfo,
		"warn":    slog.LevelWarn,
		"error":   slog.LevelError,
		"":        slog.LevelWarn,
		"verbose": slog.LevelWarn,
	}
	for in, want := range tests {
		if got := ParseLevel(in); got != want {
			t.Fatalf("ParseLevel(%q) = %v, want %v", in, got, want)
		}
	}
}

func TestNew_FiltersByLevel(t *testing.T) {
	var buf bytes.Buffer
	log := New("info", &buf)
	log.Debug("hidden")
	log.Info("search finished", "matches", 3)

	out := buf.String()
	if strings.Contains(out, "hidden") {
		t.Fatalf("debug message logged at info level: %q", out)
	}
	if !strings.Contains(out, "msg=\"search finished\"") || !strings.Contains(out, "matches=3") {
		t.Fatalf("log output = %q, want structured info message", out)
	}
}
