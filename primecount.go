package primecount

import (
	"context"
	"math/bits"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/hupe1980/primecount/internal/partition"
	"github.com/hupe1980/primecount/internal/primality"
	"github.com/hupe1980/primecount/internal/scan"
	"github.com/hupe1980/primecount/internal/topk"
)

// Result is the aggregate of a completed scan.
type Result struct {
	// Count is the number of primes in the range.
	Count uint64
	// Sum is the sum of those primes.
	Sum uint64
	// TopK holds the largest primes found, ascending. It has at most K
	// entries and fewer only when the range contains fewer than K primes.
	TopK []uint64
	// K is the requested top-k capacity.
	K int
	// Workers is the number of sub-ranges the scan was split into.
	Workers int
	// Elapsed is the wall-clock duration of the scan.
	Elapsed time.Duration
}

// PaddedTopK returns TopK left-padded with zeros to exactly K entries, the
// fixed-width layout where 0 marks a slot no prime was found for.
func (r Result) PaddedTopK() []uint64 {
	n := max(r.K, len(r.TopK))
	out := make([]uint64, n)
	copy(out[n-len(r.TopK):], r.TopK)
	return out
}

// IsPrime reports whether n is prime, using the same deterministic
// Miller-Rabin test as the scan.
func IsPrime(n uint64) bool {
	return primality.IsPrime(n)
}

// ParallelCount counts and sums the primes in [lo, hi) and tracks the
// DefaultTopK largest of them, using workerCount concurrent workers over
// contiguous sub-ranges.
//
// If workerCount <= 0, runtime.GOMAXPROCS(0) workers are used.
func ParallelCount(lo, hi uint64, workerCount int) (Result, error) {
	return Count(context.Background(), lo, hi, WithWorkers(workerCount))
}

// Count counts and sums the primes in [lo, hi) and tracks the largest of
// them.
//
// The range is split into one contiguous sub-range per worker and every
// worker runs in its own goroutine. Count returns only after every worker has
// terminated. If a worker fails, or ctx is canceled, the remaining workers
// stop at their next chunk boundary and Count returns the error without a
// result.
func Count(ctx context.Context, lo, hi uint64, optFns ...Option) (Result, error) {
	o := applyOptions(optFns)

	start := time.Now()
	res, err := run(ctx, lo, hi, o)
	elapsed := time.Since(start)
	if err == nil {
		res.Elapsed = elapsed
	}

	o.metricsCollector.RecordScan(partition.Range{Lo: lo, Hi: hi}.Len(), o.workers, elapsed, err)
	o.logger.WithRange(lo, hi).LogScan(ctx, res, elapsed, err)

	return res, err
}

func validate(lo, hi uint64, o options) error {
	if hi < lo {
		return &ErrInvalidRange{Lo: lo, Hi: hi}
	}
	if o.topK < 0 {
		return ErrInvalidTopK
	}
	if sumMayOverflow(lo, hi) {
		return &ErrSumOverflow{Lo: lo, Hi: hi}
	}
	return nil
}

// sumMayOverflow reports whether lo + (lo+1) + ... + (hi-1) exceeds 64 bits,
// an upper bound for the sum of the primes in [lo, hi).
func sumMayOverflow(lo, hi uint64) bool {
	if hi <= lo {
		return false
	}

	// sum = (lo + hi-1) * n / 2, with the first factor up to 65 bits wide.
	n := hi - lo
	s, carry := bits.Add64(lo, hi-1, 0)
	ph, _ := bits.Mul64(s, n)
	ph, c := bits.Add64(ph, carry*n, 0)

	// The halved product fits in 64 bits iff the product is below 2^65.
	return c != 0 || ph >= 2
}

func run(ctx context.Context, lo, hi uint64, o options) (Result, error) {
	if err := validate(lo, hi, o); err != nil {
		return Result{}, err
	}

	agg := new(scan.Aggregate)
	top := topk.New(o.topK)

	var (
		prog   *progressTracker
		report scan.ReportFunc
	)
	if o.progressFn != nil {
		prog = newProgressTracker(hi-lo, o.progressInterval, o.progressFn)
		report = prog.report
	}

	g, gctx := errgroup.WithContext(ctx)

	for i, r := range partition.Split(lo, hi, o.workers) {
		g.Go(func() (err error) {
			var stats scan.Stats
			begin := time.Now()

			defer func() {
				if v := recover(); v != nil {
					err = newPanicError(i, r, v)
				}
				d := time.Since(begin)
				o.metricsCollector.RecordWorker(stats.Scanned, stats.Primes, d, err)
				o.logger.WithWorker(i).LogWorker(gctx, r, stats.Scanned, stats.Primes, d, err)
			}()

			stats, err = o.scan(gctx, r, agg, top, report)
			return err
		})
	}

	if err := g.Wait(); err != nil {
		return Result{}, err
	}

	if prog != nil {
		prog.finish()
	}

	return Result{
		Count:   agg.Count(),
		Sum:     agg.Sum(),
		TopK:    top.Values(),
		K:       o.topK,
		Workers: o.workers,
	}, nil
}
