// Package log configures the process-wide structured logger used by every
// next-prune package.
package log

import (
	"io"
	"log/slog"
	"os"
	"strings"
	"sync"
)

var (
	once   sync.Once
	logger *slog.Logger
)

// Setup initializes the global logger. level defaults to INFO when empty or
// unrecognized; format selects between "json" and text (the default).
func Setup(level, format string) {
	once.Do(func() {
		logger = build(level, format, os.Stderr)
		slog.SetDefault(logger)
	})
}

func build(level, format string, w io.Writer) *slog.Logger {
	var l slog.Level
	switch strings.ToUpper(level) {
	case "DEBUG":
		l = slog.LevelDebug
	case "WARN":
		l = slog.LevelWarn
	case "ERROR":
		l = slog.LevelError
	default:
		l = slog.LevelInfo
	}

	opts := &slog.HandlerOptions{Level: l}

	var handler slog.Handler
	if strings.ToLower(format) == "json" {
		handler = slog.NewJSONHandler(w, opts)
	} else {
		handler = slog.NewTextHandler(w, opts)
	}
	return slog.New(handler)
}

// Get returns the configured logger, defaulting to INFO/text if Setup
// hasn't been called yet.
func Get() *slog.Logger {
	if logger == nil {
		Setup("INFO", "text")
	}
	return logger
}

// WithComponent returns a logger with the component field set, the
// convention every next-prune package logs through.
func WithComponent(name string) *slog.Logger {
	return Get().With(slog.String("component", name))
}
