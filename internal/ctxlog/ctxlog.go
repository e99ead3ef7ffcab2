// Package ctxlog carries a *slog.Logger on a context.Context so that
// qpstore and graphspec can log at the point of computation without
// threading a logger parameter through every call.
package ctxlog

import (
	"context"
	"log/slog"
)

type ctxKey struct{}

var loggerKey = ctxKey{}

// WithLogger returns ctx with logger embedded, retrievable by FromContext.
func WithLogger(ctx context.Context, logger *slog.Logger) context.Context {
	return context.WithValue(ctx, loggerKey, logger)
}

// FromContext returns the logger embedded in ctx, or slog.Default() if
// none was embedded. Every entry point in this repo embeds one via
// WithLogger before calling into qpstore or graphspec, so the default
// is only ever reached from a caller that skipped that step, or from a
// test.
func FromContext(ctx context.Context) *slog.Logger {
	if logger, ok := ctx.Value(loggerKey).(*slog.Logger); ok {
		return logger
	}
	return slog.Default()
}
