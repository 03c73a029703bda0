package primecount

import (
	"context"
	"io"
	"log/slog"
	"os"
	"time"

	"github.com/hupe1980/primecount/internal/partition"
)

// Logger wraps slog.Logger with primecount-specific context.
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

// NewJSONLogger creates a Logger that outputs JSON-formatted logs to stderr.
// level sets the minimum log level (e.g., slog.LevelDebug, slog.LevelInfo).
func NewJSONLogger(level slog.Level) *Logger {
	return NewLogger(slog.NewJSONHandler(os.Stderr, &slog.HandlerOptions{
		Level: level,
	}))
}

// NewTextLogger creates a Logger that outputs human-readable text logs to stderr.
func NewTextLogger(level slog.Level) *Logger {
	return NewLogger(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
		Level: level,
	}))
}

// NoopLogger creates a Logger that discards all log output.
func NoopLogger() *Logger {
	return NewLogger(slog.NewTextHandler(io.Discard, &slog.HandlerOptions{
		Level: slog.Level(1000), // Unreachable level
	}))
}

// WithWorker adds a worker index field to the logger.
func (l *Logger) WithWorker(idx int) *Logger {
	return &Logger{
		Logger: l.Logger.With("worker", idx),
	}
}

// WithRange adds lo/hi fields to the logger.
func (l *Logger) WithRange(lo, hi uint64) *Logger {
	return &Logger{
		Logger: l.Logger.With("lo", lo, "hi", hi),
	}
}

// LogScan logs the outcome of a complete parallel scan.
func (l *Logger) LogScan(ctx context.Context, res Result, elapsed time.Duration, err error) {
	if err != nil {
		l.ErrorContext(ctx, "scan failed",
			"elapsed", elapsed,
			"error", err,
		)
		return
	}
	l.InfoContext(ctx, "scan completed",
		"workers", res.Workers,
		"count", res.Count,
		"sum", res.Sum,
		"elapsed", elapsed,
	)
}

// LogWorker logs a single worker's termination.
func (l *Logger) LogWorker(ctx context.Context, r partition.Range, scanned, primes uint64, elapsed time.Duration, err error) {
	if err != nil {
		l.ErrorContext(ctx, "worker failed",
			"range", r.String(),
			"scanned", scanned,
			"error", err,
		)
		return
	}
	l.DebugContext(ctx, "worker completed",
		"range", r.String(),
		"scanned", scanned,
		"primes", primes,
		"elapsed", elapsed,
	)
}
