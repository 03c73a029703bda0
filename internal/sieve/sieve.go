// Package sieve is a single-threaded Sieve of Eratosthenes used to verify the
// results of the parallel Miller-Rabin scan.
//
// Memory grows with hi (one bit per integer below hi), so it is meant for
// verification runs and tests, not as the primary engine.
package sieve

import (
	"github.com/bits-and-blooms/bitset"
)

// Result mirrors the aggregate produced by the parallel scan.
type Result struct {
	Count uint64
	Sum   uint64
	// TopK holds up to k of the largest primes, ascending.
	TopK []uint64
}

// composites returns a bitset in which bit i is set iff i < hi is not prime.
func composites(hi uint64) *bitset.BitSet {
	marks := bitset.New(uint(hi))
	if hi > 0 {
		marks.Set(0)
	}
	if hi > 1 {
		marks.Set(1)
	}
	for i := uint64(2); i*i < hi; i++ {
		if marks.Test(uint(i)) {
			continue
		}
		for j := i * i; j < hi; j += i {
			marks.Set(uint(j))
		}
	}
	return marks
}

// Count returns the number, sum and k largest of the primes in [lo, hi).
func Count(lo, hi uint64, k int) Result {
	var res Result
	if hi <= lo {
		return res
	}

	marks := composites(hi)
	for i, ok := marks.NextClear(uint(lo)); ok && uint64(i) < hi; i, ok = marks.NextClear(i + 1) {
		res.Count++
		res.Sum += uint64(i)
	}

	if k > 0 {
		res.TopK = largest(marks, lo, hi, k)
	}

	return res
}

// Primes returns every prime in [lo, hi), ascending.
func Primes(lo, hi uint64) []uint64 {
	if hi <= lo {
		return nil
	}

	marks := composites(hi)
	var out []uint64
	for i, ok := marks.NextClear(uint(lo)); ok && uint64(i) < hi; i, ok = marks.NextClear(i + 1) {
		out = append(out, uint64(i))
	}
	return out
}

func largest(marks *bitset.BitSet, lo, hi uint64, k int) []uint64 {
	top := make([]uint64, 0, k)
	for i := hi; i > lo && len(top) < k; i-- {
		if !marks.Test(uint(i - 1)) {
			top = append(top, i-1)
		}
	}
	// Collected descending.
	for l, r := 0, len(top)-1; l < r; l, r = l+1, r-1 {
		top[l], top[r] = top[r], top[l]
	}
	return top
}
