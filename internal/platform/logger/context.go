package logger

import (
	"context"
	"log/slog"
)

type contextKey string

const (
	loggerKey       contextKey = "logger"
	invocationIDKey contextKey = "invocation_id"
)

// WithLogger returns a copy of ctx carrying the given logger.
func WithLogger(ctx context.Context, logger *slog.Logger) context.Context {
	return context.WithValue(ctx, loggerKey, logger)
}

// FromContext returns the logger stored in ctx, or the slog default.
// If an invocation ID is present it is attached to the returned logger.
func FromContext(ctx context.Context) *slog.Logger {
	logger, ok := ctx.Value(loggerKey).(*slog.Logger)
	if !ok || logger == nil {
		logger = slog.Default()
	}

	if id, ok := ctx.Value(invocationIDKey).(string); ok && id != "" {
		logger = logger.With("invocation_id", id)
	}

	return logger
}

// WithInvocationID tags ctx with the ID of the task invocation it belongs to.
func WithInvocationID(ctx context.Context, id string) context.Context {
	return context.WithValue(ctx, invocationIDKey, id)
}

// InvocationID returns the invocation ID stored in ctx, if any.
func InvocationID(ctx context.Context) string {
	id, _ := ctx.Value(invocationIDKey).(string)
	return id
}
