package slotpool

import (
	"io"
	"log/slog"
	"os"
)

// Logger wraps slog.Logger with pool-specific helpers.
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

// WithPool tags the logger with a pool name.
func (l *Logger) WithPool(name string) *Logger {
	return &Logger{
		Logger: l.Logger.With("pool", name),
	}
}

// LogGrow logs a growth of the slot table.
func (l *Logger) LogGrow(requested, added, capacity int) {
	if added < requested {
		l.Warn("pool growth limited",
			"requested", requested,
			"added", added,
			"capacity", capacity,
		)
		return
	}
	l.Debug("pool grown",
		"added", added,
		"capacity", capacity,
	)
}

// LogPrune logs a compaction.
func (l *Logger) LogPrune(trigger string, before, after, used, dropped int) {
	l.Debug("pool pruned",
		"trigger", trigger,
		"capacity_before", before,
		"capacity_after", after,
		"used", used,
		"dropped", dropped,
	)
}

// LogPruneSkipped logs an automatic prune that did not run.
func (l *Logger) LogPruneSkipped(trigger, reason string) {
	l.Debug("pool prune skipped",
		"trigger", trigger,
		"reason", reason,
	)
}

// LogExhausted logs a checkout that found no free slot and could not grow.
func (l *Logger) LogExhausted(capacity, maxSize int) {
	l.Warn("pool exhausted",
		"capacity", capacity,
		"max_size", maxSize,
	)
}

// LogClose logs the shutdown of a pool.
func (l *Logger) LogClose(capacity, used int) {
	if used > 0 {
		l.Warn("pool closed with outstanding handles",
			"capacity", capacity,
			"used", used,
		)
		return
	}
	l.Debug("pool closed",
		"capacity", capacity,
	)
}
