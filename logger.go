package topogo

import (
	"context"
	"log/slog"
	"os"
)

// Logger wraps slog.Logger with topogo-specific context.
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
	handler := slog.NewJSONHandler(os.Stderr, &slog.HandlerOptions{
		Level: level,
	})
	return &Logger{
		Logger: slog.New(handler),
	}
}

// NewTextLogger creates a Logger that outputs human-readable text logs.
func NewTextLogger(level slog.Level) *Logger {
	handler := slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
		Level: level,
	})
	return &Logger{
		Logger: slog.New(handler),
	}
}

// NoopLogger creates a Logger that discards all log output.
// Use this to disable logging entirely.
func NoopLogger() *Logger {
	handler := slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
		Level: slog.Level(1000), // Unreachable level
	})
	return &Logger{
		Logger: slog.New(handler),
	}
}

// WithID adds an ID field to the logger (useful for tagging operations).
func (l *Logger) WithID(id uint64) *Logger {
	return &Logger{
		Logger: l.Logger.With("id", id),
	}
}

// WithDimension adds a dimension field to the logger.
func (l *Logger) WithDimension(dim int) *Logger {
	return &Logger{
		Logger: l.Logger.With("dimension", dim),
	}
}

// WithField adds a field-characteristic field to the logger.
func (l *Logger) WithField(characteristic uint32) *Logger {
	return &Logger{
		Logger: l.Logger.With("characteristic", characteristic),
	}
}

// LogInsert logs a simplex insertion.
func (l *Logger) LogInsert(ctx context.Context, id uint64, dim uint32, err error) {
	if err != nil {
		l.ErrorContext(ctx, "insert failed",
			"id", id,
			"dim", dim,
			"error", err,
		)
	} else {
		l.DebugContext(ctx, "insert completed",
			"id", id,
			"dim", dim,
		)
	}
}

// LogReduce logs a full matrix reduction.
func (l *Logger) LogReduce(ctx context.Context, columns, pairs int, err error) {
	if err != nil {
		l.ErrorContext(ctx, "reduce failed",
			"columns", columns,
			"error", err,
		)
	} else {
		l.InfoContext(ctx, "reduce completed",
			"columns", columns,
			"pairs", pairs,
		)
	}
}

// LogTranspose logs a vineyard transposition.
func (l *Logger) LogTranspose(ctx context.Context, index int, err error) {
	if err != nil {
		l.ErrorContext(ctx, "transpose failed",
			"index", index,
			"error", err,
		)
	} else {
		l.DebugContext(ctx, "transpose completed",
			"index", index,
		)
	}
}

// LogCycles logs a representative-cycle extraction.
func (l *Logger) LogCycles(ctx context.Context, count int, err error) {
	if err != nil {
		l.ErrorContext(ctx, "cycle extraction failed",
			"error", err,
		)
	} else {
		l.DebugContext(ctx, "cycle extraction completed",
			"count", count,
		)
	}
}
