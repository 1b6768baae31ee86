package objslot

import (
	"context"
	"io"
	"log/slog"
	"os"
)

// Logger wraps slog.Logger with pool-specific context.
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
	return &Logger{
		Logger: slog.New(slog.NewTextHandler(io.Discard, &slog.HandlerOptions{
			Level: slog.Level(1000), // Unreachable level
		})),
	}
}

// With returns a Logger that adds args to every record.
func (l *Logger) With(args ...any) *Logger {
	return &Logger{
		Logger: l.Logger.With(args...),
	}
}

// LogCreate logs a slot birth.
func (l *Logger) LogCreate(h Handle, reused bool) {
	l.DebugContext(context.Background(), "slot created",
		"index", h.Index,
		"generation", h.Generation,
		"reused", reused,
	)
}

// LogRemove logs a slot death. generation is the value after the bump.
func (l *Logger) LogRemove(index, generation uint32) {
	l.DebugContext(context.Background(), "slot removed",
		"index", index,
		"generation", generation,
	)
}

// LogRejected logs a refused admission.
func (l *Logger) LogRejected(count, maxCapacity int) {
	l.WarnContext(context.Background(), "create rejected",
		"count", count,
		"max_capacity", maxCapacity,
	)
}

// LogClear logs a Clear call.
func (l *Logger) LogClear(count, capacity int) {
	l.InfoContext(context.Background(), "pool cleared",
		"count", count,
		"capacity", capacity,
	)
}

// LogShrink logs a ShrinkToFit call that trimmed slots.
func (l *Logger) LogShrink(from, to int) {
	l.InfoContext(context.Background(), "pool shrunk",
		"from", from,
		"to", to,
	)
}

// LogMaxCapacity logs a max-capacity change that leaves the pool over its
// new limit.
func (l *Logger) LogMaxCapacity(count, maxCapacity int) {
	l.InfoContext(context.Background(), "max capacity below live count",
		"count", count,
		"max_capacity", maxCapacity,
	)
}
