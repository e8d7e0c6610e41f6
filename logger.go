package coldb

import (
	"context"
	"errors"
	"log/slog"
	"os"
)

// Logger wraps slog.Logger with coldb-specific context.
// This provides structured logging with consistent field names.
type Logger struct {
	*slog.Logger
}

// NewLogger creates a new Logger with the given handler.
// If handler is nil, uses default text handler to stderr.
func NewLogger(handler slog.Handler) *Logger {
	if handler == nil {
		handler = slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
			Level: slog.LevelInfo,
		})
	}
	return &Logger{
		Logger: slog.New(handler),
	}
}

// NewJSONLogger creates a Logger that outputs JSON-formatted logs.
// level sets the minimum log level (e.g., slog.LevelDebug, slog.LevelInfo).
func NewJSONLogger(level slog.Level) *Logger {
	return NewLogger(slog.NewJSONHandler(os.Stderr, &slog.HandlerOptions{
		Level: level,
	}))
}

// NewTextLogger creates a Logger that outputs human-readable text logs.
func NewTextLogger(level slog.Level) *Logger {
	return NewLogger(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
		Level: level,
	}))
}

// NoopLogger creates a Logger that discards all log output.
func NoopLogger() *Logger {
	return NewLogger(slog.DiscardHandler)
}

// WithColumn adds a column field to the logger.
func (l *Logger) WithColumn(column string) *Logger {
	return &Logger{
		Logger: l.Logger.With("column", column),
	}
}

// LogOpen logs the opening of a store.
func (l *Logger) LogOpen(ctx context.Context, backend string, columns []string) {
	l.InfoContext(ctx, "store opened",
		"backend", backend,
		"columns", columns,
	)
}

// LogGet logs a get operation.
func (l *Logger) LogGet(ctx context.Context, column string, found bool, err error) {
	l.logResult(ctx, "get", err,
		"column", column,
		"found", found,
	)
}

// LogPut logs a put operation.
func (l *Logger) LogPut(ctx context.Context, column string, size int, err error) {
	l.logResult(ctx, "put", err,
		"column", column,
		"size", size,
	)
}

// LogExists logs an exists operation.
func (l *Logger) LogExists(ctx context.Context, column string, exists bool, err error) {
	l.logResult(ctx, "exists", err,
		"column", column,
		"exists", exists,
	)
}

// LogDelete logs a delete operation.
func (l *Logger) LogDelete(ctx context.Context, column string, err error) {
	l.logResult(ctx, "delete", err,
		"column", column,
	)
}

// logResult logs unknown columns at warn, other failures at error and
// successes at debug.
func (l *Logger) logResult(ctx context.Context, op string, err error, args ...any) {
	switch {
	case err == nil:
		l.DebugContext(ctx, op+" completed", args...)
	case errors.Is(err, ErrColumnNotFound):
		l.WarnContext(ctx, op+" rejected", append(args, "error", err)...)
	default:
		l.ErrorContext(ctx, op+" failed", append(args, "error", err)...)
	}
}
