package primecount

import (
	"context"
	"log/slog"
	"runtime"
	"time"

	"github.com/hupe1980/primecount/internal/partition"
	"github.com/hupe1980/primecount/internal/scan"
	"github.com/hupe1980/primecount/internal/topk"
)

// DefaultTopK is the number of largest primes tracked unless WithTopK says otherwise.
const DefaultTopK = 10

// DefaultProgressInterval is used by WithProgress when interval <= 0.
const DefaultProgressInterval = time.Second

// scanFunc is the worker body. It is a field so tests can inject failures.
type scanFunc func(ctx context.Context, r partition.Range, agg *scan.Aggregate, top *topk.Tracker, report scan.ReportFunc) (scan.Stats, error)

type options struct {
	workers          int
	topK             int
	metricsCollector MetricsCollector
	logger           *Logger
	progressInterval time.Duration
	progressFn       func(Progress)
	scan             scanFunc
}

// Option configures a Count call.
type Option func(*options)

// WithWorkers sets the number of workers, and therefore sub-ranges, used for
// the scan. The count is static for the whole call.
//
// If n <= 0, runtime.GOMAXPROCS(0) is used.
func WithWorkers(n int) Option {
	return func(o *options) {
		o.workers = n
	}
}

// WithTopK sets how many of the largest primes are tracked.
//
// k == 0 disables tracking; Result.TopK is then empty. Negative values make
// Count fail with ErrInvalidTopK.
func WithTopK(k int) Option {
	return func(o *options) {
		o.topK = k
	}
}

// WithMetricsCollector configures a metrics collector for monitoring scans.
// Pass nil to disable metrics collection.
//
// Example with BasicMetricsCollector:
//
//	metrics := &primecount.BasicMetricsCollector{}
//	res, _ := primecount.Count(ctx, 1, 1_000_001, primecount.WithMetricsCollector(metrics))
//	stats := metrics.GetStats()
//	fmt.Printf("Scanned: %d, Avg worker latency: %dns\n", stats.IntegersScanned, stats.WorkerAvgNanos)
func WithMetricsCollector(mc MetricsCollector) Option {
	return func(o *options) {
		if mc == nil {
			mc = NoopMetricsCollector{}
		}
		o.metricsCollector = mc
	}
}

// WithLogger configures structured logging for scans.
// Pass nil to disable logging.
//
// Example with JSON logging:
//
//	logger := primecount.NewJSONLogger(slog.LevelInfo)
//	res, _ := primecount.Count(ctx, 1, 1_000_001, primecount.WithLogger(logger))
func WithLogger(logger *Logger) Option {
	return func(o *options) {
		if logger == nil {
			logger = NoopLogger()
		}
		o.logger = logger
	}
}

// WithLogLevel creates a text logger with the specified level and sets it.
// Convenience wrapper for WithLogger(NewTextLogger(level)).
func WithLogLevel(level slog.Level) Option {
	return func(o *options) {
		o.logger = NewTextLogger(level)
	}
}

// WithProgress registers fn to receive progress snapshots while the scan runs.
// fn is called at most once per interval and never concurrently with itself.
// The first completed chunk always triggers a report.
func WithProgress(interval time.Duration, fn func(Progress)) Option {
	return func(o *options) {
		if interval <= 0 {
			interval = DefaultProgressInterval
		}
		o.progressInterval = interval
		o.progressFn = fn
	}
}

func applyOptions(optFns []Option) options {
	o := options{
		topK:             DefaultTopK,
		metricsCollector: NoopMetricsCollector{},
		logger:           NoopLogger(),
		scan:             scan.Range,
	}
	for _, fn := range optFns {
		if fn != nil {
			fn(&o)
		}
	}
	if o.workers <= 0 {
		o.workers = runtime.GOMAXPROCS(0)
	}
	return o
}
