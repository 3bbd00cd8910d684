// Package logging builds the structured logger shared by cg and vg.
package logging

import (
	"io"
	"log/slog"
	"os"
	"strings"
)

// EnvVar names the environment variable holding the log level.
const EnvVar = "RGVG_LOG"

// New returns a text logger writing to w at the named level. Unknown or empty
// levels log warnings and errors only.
func New(level string, w io.Writer) *slog.Logger {
	handler := slog.NewTextHandler(w, &slog.HandlerOptions{
		Level: ParseLevel(level),
	})
	return slog.New(handler)
}

// FromEnv returns a logger writing to stderr at the level in $RGVG_LOG.
func FromEnv() *slog.Logger {
	return New(os.Getenv(EnvVar), os.Stderr)
}

// Discard returns a logger that drops everything.
func Discard() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

// ParseLevel maps debug, info, warn and error to slog levels.
func ParseLevel(level string) slog.Level {
	switch strings.ToLower(strings.TrimSpace(level)) {
	case "debug":
		return slog.LevelDebug
	case "info":
		return slog.LevelInfo
	case "error":
		return slog.LevelError
	default:
		return slog.LevelWarn
	}
}
