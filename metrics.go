package primecount

import (
	"sync/atomic"
	"time"
)

// MetricsCollector defines an interface for collecting operational metrics.
// Implement this interface to integrate with monitoring systems like Prometheus.
//
// Example Prometheus integration:
//
//	type PrometheusCollector struct {
//	    scanCounter   prometheus.Counter
//	    scanHistogram prometheus.Histogram
//	}
//
//	func (p *PrometheusCollector) RecordScan(span uint64, workers int, duration time.Duration, err error) {
//	    p.scanCounter.Inc()
//	    p.scanHistogram.Observe(duration.Seconds())
//	}
type MetricsCollector interface {
	// RecordScan is called once per Count call after every worker has joined.
	// span is the number of integers in the requested range.
	RecordScan(span uint64, workers int, duration time.Duration, err error)

	// RecordWorker is called when a single worker terminates.
	// scanned is the number of integers it examined, primes how many were prime.
	RecordWorker(scanned, primes uint64, duration time.Duration, err error)
}

// NoopMetricsCollector is a no-op implementation of MetricsCollector.
// Use this when metrics collection is not needed.
type NoopMetricsCollector struct{}

func (NoopMetricsCollector) RecordScan(uint64, int, time.Duration, error)      {}
func (NoopMetricsCollector) RecordWorker(uint64, uint64, time.Duration, error) {}

// BasicMetricsCollector provides simple in-memory metrics collection.
// Useful for debugging and basic monitoring without external dependencies.
type BasicMetricsCollector struct {
	ScanCount        atomic.Int64
	ScanErrors       atomic.Int64
	ScanTotalNanos   atomic.Int64
	IntegersScanned  atomic.Uint64
	PrimesFound      atomic.Uint64
	WorkerCount      atomic.Int64
	WorkerErrors     atomic.Int64
	WorkerTotalNanos atomic.Int64
}

// RecordScan implements MetricsCollector.
func (b *BasicMetricsCollector) RecordScan(span uint64, workers int, duration time.Duration, err error) {
	b.ScanCount.Add(1)
	b.ScanTotalNanos.Add(duration.Nanoseconds())
	if err != nil {
		b.ScanErrors.Add(1)
	}
}

// RecordWorker implements MetricsCollector.
func (b *BasicMetricsCollector) RecordWorker(scanned, primes uint64, duration time.Duration, err error) {
	b.WorkerCount.Add(1)
	b.WorkerTotalNanos.Add(duration.Nanoseconds())
	b.IntegersScanned.Add(scanned)
	b.PrimesFound.Add(primes)
	if err != nil {
		b.WorkerErrors.Add(1)
	}
}

// GetStats returns a snapshot of current metrics.
func (b *BasicMetricsCollector) GetStats() BasicMetricsStats {
	return BasicMetricsStats{
		ScanCount:       b.ScanCount.Load(),
		ScanErrors:      b.ScanErrors.Load(),
		ScanAvgNanos:    avgNanos(b.ScanTotalNanos.Load(), b.ScanCount.Load()),
		IntegersScanned: b.IntegersScanned.Load(),
		PrimesFound:     b.PrimesFound.Load(),
		WorkerCount:     b.WorkerCount.Load(),
		WorkerErrors:    b.WorkerErrors.Load(),
		WorkerAvgNanos:  avgNanos(b.WorkerTotalNanos.Load(), b.WorkerCount.Load()),
	}
}

func avgNanos(total, count int64) int64 {
	if count == 0 {
		return 0
	}
	return total / count
}

// BasicMetricsStats is a snapshot of BasicMetricsCollector state.
type BasicMetricsStats struct {
	ScanCount       int64
	ScanErrors      int64
	ScanAvgNanos    int64
	IntegersScanned uint64
	PrimesFound     uint64
	WorkerCount     int64
	WorkerErrors    int64
	WorkerAvgNanos  int64
}
