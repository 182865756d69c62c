// Package logging builds the slog loggers used by the server and the CLI.
package logging

import (
	"io"
	"log/slog"
	"strings"

	"github.com/charmbracelet/log"
)

const (
	FormatJSON    = "json"
	FormatText    = "text"
	FormatConsole = "console"
)

// New returns a logger writing to w in the given format. Unknown formats fall
// back to JSON. The console format is human-readable and colored when w is a TTY.
func New(w io.Writer, format string, level slog.Level) *slog.Logger {
	switch strings.ToLower(format) {
	case FormatText:
		return slog.New(slog.NewTextHandler(w, &slog.HandlerOptions{Level: level}))
	case FormatConsole:
		return slog.New(log.NewWithOptions(w, log.Options{
			Level:           log.Level(level),
			ReportTimestamp: true,
			Prefix:          "todolist",
		}))
	default:
		return slog.New(slog.NewJSONHandler(w, &slog.HandlerOptions{Level: level}))
	}
}

// ParseLevel maps debug, info, warn and error (any case) to a slog level.
// Anything else is info.
func ParseLevel(s string) slog.Level {
	switch strings.ToLower(s) {
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
