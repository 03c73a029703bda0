// Package primecount counts, sums and ranks the primes of an integer range
// using a static pool of concurrent workers.
//
// Each integer is classified with a deterministic Miller-Rabin test. The range
// is split into contiguous sub-ranges, one per worker, and every worker folds
// its primes into shared state: an atomic count and sum, and a mutex-guarded
// top-k set with a lock-free admission threshold.
//
// # Quick Start
//
//	res, err := primecount.ParallelCount(1, 100_000_001, 8)
//	if err != nil {
//	    log.Fatal(err)
//	}
//	fmt.Println(res.Count, res.Sum, res.TopK)
//
// With options:
//
//	res, err := primecount.Count(ctx, 1, 100_000_001,
//	    primecount.WithWorkers(runtime.NumCPU()),
//	    primecount.WithTopK(20),
//	    primecount.WithLogger(primecount.NewJSONLogger(slog.LevelInfo)),
//	    primecount.WithProgress(time.Second, func(p primecount.Progress) {
//	        fmt.Printf("%.1f%%\n", p.Percent())
//	    }),
//	)
//
// # Supported Range
//
// Any [lo, hi) of uint64 values is accepted as long as the sum of all its
// integers fits in 64 bits (otherwise Count returns *ErrSumOverflow). Values
// below 3,215,031,751 are tested with the witness bases {2, 3, 5, 7}; larger
// values use the first twelve primes, which is deterministic for all uint64.
//
// # Top-K
//
// Result.TopK holds only real primes. When the range contains fewer than K
// primes it is shorter than K; Result.PaddedTopK returns the fixed-width view
// with zero placeholders.
//
// # Failure Semantics
//
// A panicking worker is recovered and reported as *WorkerError. The other
// workers are stopped at their next chunk boundary and no partial result is
// returned, since a missing sub-range would make the aggregate silently wrong.
package primecount
