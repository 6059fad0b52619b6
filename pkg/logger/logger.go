// Package logger constructs the slog.Logger used across taxindexer.
package logger

import (
	"log/slog"
	"os"
	"strings"
)

// New creates a slog.Logger writing text-formatted records to stderr at the
// given level. Invalid or empty levels default to Info.
func New(level string) *slog.Logger {
	opts := &slog.HandlerOptions{Level: ParseLevel(level)}
	handler := slog.NewTextHandler(os.Stderr, opts)
	return slog.New(handler)
}

// ParseLevel converts a level string ("debug", "info", "warn", "error",
// case-insensitive) to a slog.Level. Unrecognized values default to Info.
func ParseLevel(level string) slog.Level {
	switch strings.ToLower(level) {
	case "debug":
		return slog.LevelDebug
	case "info", "":
		return slog.LevelInfo
	case "warn", "warning":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}
