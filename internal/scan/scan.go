// Package scan runs the primality oracle over a range and folds the primes it
// finds into shared, concurrently updated state.
package scan

import (
	"context"
	"sync/atomic"

	"golang.org/x/sys/cpu"

	"github.com/hupe1980/primecount/internal/partition"
	"github.com/hupe1980/primecount/internal/primality"
	"github.com/hupe1980/primecount/internal/topk"
)

// ChunkSize is the number of integers a scanner examines between progress
// reports and abort checks.
const ChunkSize = 1 << 16

// Aggregate is the prime count and sum shared by every scanner of one run.
// Both counters sit on their own cache line since every worker hits them.
type Aggregate struct {
	_     cpu.CacheLinePad
	count atomic.Uint64
	_     cpu.CacheLinePad
	sum   atomic.Uint64
	_     cpu.CacheLinePad
}

// Add records one prime.
func (a *Aggregate) Add(p uint64) {
	a.count.Add(1)
	a.sum.Add(p)
}

// Count returns the number of primes recorded so far.
func (a *Aggregate) Count() uint64 {
	return a.count.Load()
}

// Sum returns the sum of the primes recorded so far.
func (a *Aggregate) Sum() uint64 {
	return a.sum.Load()
}

// Stats describes the work done by a single Range call.
type Stats struct {
	Scanned uint64
	Primes  uint64
}

// ReportFunc receives the integers scanned and primes found since the previous
// report.
type ReportFunc func(scanned, primes uint64)

// Range tests every integer of r in increasing order. Each prime is added to
// agg and offered to top, which may be nil.
//
// report, if non-nil, is called after every ChunkSize integers and once for
// the final partial chunk. ctx is checked at the same points; when it is done
// Range stops early and returns ctx.Err() along with the stats so far.
func Range(ctx context.Context, r partition.Range, agg *Aggregate, top *topk.Tracker, report ReportFunc) (Stats, error) {
	var stats Stats

	for lo := r.Lo; lo < r.Hi; {
		if err := ctx.Err(); err != nil {
			return stats, err
		}

		hi := r.Hi
		if hi-lo > ChunkSize {
			hi = lo + ChunkSize
		}

		var primes uint64
		for n := lo; n < hi; n++ {
			if !primality.IsPrime(n) {
				continue
			}
			primes++
			agg.Add(n)
			top.Offer(n)
		}

		stats.Scanned += hi - lo
		stats.Primes += primes
		if report != nil {
			report(hi-lo, primes)
		}

		lo = hi
	}

	return stats, nil
}
