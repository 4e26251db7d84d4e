package slogutil

import (
	"io"
	"log/slog"
	"strings"
)

// LevelSilent is above every standard level and suppresses all output.
const LevelSilent = slog.Level(100)

// Format selects the log line encoding.
type Format string

const (
	FormatHuman Format = "human"
	FormatJSON  Format = "json"
)

// NewLogger creates a logger using the repolens line format.
func NewLogger(w io.Writer, level slog.Level) *slog.Logger {
	return slog.New(NewHandler(w, &slog.HandlerOptions{Level: level}))
}

// NewFormattedLogger creates a logger in the given format. Unknown formats
// fall back to human.
func NewFormattedLogger(w io.Writer, level slog.Level, format Format) *slog.Logger {
	if format == FormatJSON {
		return slog.New(slog.NewJSONHandler(w, &slog.HandlerOptions{Level: level}))
	}
	return NewLogger(w, level)
}

// NewDiscardLogger creates a logger that discards all output.
func NewDiscardLogger() *slog.Logger {
	return slog.New(NewHandler(io.Discard, &slog.HandlerOptions{Level: LevelSilent}))
}

// LevelFromString converts a string to a slog.Level.
// Supports: debug, info, warn, error (case-insensitive).
// Returns slog.LevelInfo for unrecognized strings.
func LevelFromString(s string) slog.Level {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "debug":
		return slog.LevelDebug
	case "warn", "warning":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	case "silent", "off":
		return LevelSilent
	default:
		return slog.LevelInfo
	}
}

// LevelFromVerbosity converts CLI verbosity flags to a slog.Level.
// quiet wins over verbosity; with no flags the configured level applies.
func LevelFromVerbosity(verbosity int, quiet bool, configured slog.Level) slog.Level {
	switch {
	case quiet:
		return LevelSilent
	case verbosity == 1:
		return slog.LevelInfo
	case verbosity >= 2:
		return slog.LevelDebug
	default:
		return configured
	}
}
