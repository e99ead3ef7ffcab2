package main

import (
	"io"
	"log/slog"
)

// newLogger builds a text-handler slog.Logger writing to errW at the
// requested level.
func newLogger(levelStr string, errW io.Writer) *slog.Logger {
	var level slog.Level
	switch levelStr {
	case "debug":
		level = slog.LevelDebug
	case "warn":
		level = slog.LevelWarn
	case "error":
		level = slog.LevelError
	default:
		level = slog.LevelInfo
	}
	return slog.New(slog.NewTextHandler(errW, &slog.HandlerOptions{Level: level}))
}
