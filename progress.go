package primecount

import (
	"sync/atomic"
	"time"

	"golang.org/x/sys/cpu"
	"golang.org/x/time/rate"
)

// Progress is a point-in-time view of a running scan.
type Progress struct {
	// Scanned is the number of integers examined so far, across all workers.
	Scanned uint64
	// Total is the number of integers in the requested range.
	Total uint64
	// Primes is the number of primes found so far.
	Primes uint64
	// Elapsed is the time since the scan started.
	Elapsed time.Duration
}

// Percent returns Scanned as a percentage of Total.
func (p Progress) Percent() float64 {
	if p.Total == 0 {
		return 100
	}
	return float64(p.Scanned) / float64(p.Total) * 100
}

// progressTracker accumulates per-chunk reports from every worker and
// forwards a throttled snapshot to the user callback.
type progressTracker struct {
	_       cpu.CacheLinePad
	scanned atomic.Uint64
	_       cpu.CacheLinePad
	primes  atomic.Uint64
	_       cpu.CacheLinePad

	total     uint64
	start     time.Time
	sometimes *rate.Sometimes
	fn        func(Progress)
}

func newProgressTracker(total uint64, interval time.Duration, fn func(Progress)) *progressTracker {
	return &progressTracker{
		total:     total,
		start:     time.Now(),
		sometimes: &rate.Sometimes{Interval: interval},
		fn:        fn,
	}
}

// report matches scan.ReportFunc.
func (t *progressTracker) report(scanned, primes uint64) {
	t.scanned.Add(scanned)
	t.primes.Add(primes)
	// Sometimes.Do holds its own lock while running, so fn is serialised.
	t.sometimes.Do(func() {
		t.fn(t.snapshot())
	})
}

// finish delivers a final snapshot once every worker has joined.
func (t *progressTracker) finish() {
	t.fn(t.snapshot())
}

func (t *progressTracker) snapshot() Progress {
	return Progress{
		Scanned: t.scanned.Load(),
		Total:   t.total,
		Primes:  t.primes.Load(),
		Elapsed: time.Since(t.start),
	}
}
