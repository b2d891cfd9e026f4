package logging

import (
	"context"
	"log/slog"
	"os"
)

// ctxKey is the key used to store the logger in a context.
// Using a custom type prevents collisions.
type ctxKey struct{}

// New builds the process-wide structured logger. Production gets Info and
// above; otherwise Debug is enabled.
func New(isProduction bool) *slog.Logger {
	level := slog.LevelDebug
	if isProduction {
		level = slog.LevelInfo
	}
	return slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{Level: level}))
}

// WithCtx stores a request-scoped logger in the context.
func WithCtx(ctx context.Context, logger *slog.Logger) context.Context {
	return context.WithValue(ctx, ctxKey{}, logger)
}

// FromCtx retrieves the request-scoped logger from the context, falling back
// to the default logger when none was attached.
func FromCtx(ctx context.Context) *slog.Logger {
	if logger, ok := ctx.Value(ctxKey{}).(*slog.Logger); ok {
		return logger
	}
	return slog.Default()
}
