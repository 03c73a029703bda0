// Package primality implements a deterministic Miller-Rabin primality test
// for 64-bit unsigned integers.
//
// Below DeterministicBound the test uses the witness bases {2, 3, 5, 7},
// which is the hot path for ranges of 32-bit magnitude. At and above the
// bound it switches to the first twelve primes, which is deterministic for
// every uint64.
package primality

import (
	"math/bits"

	"github.com/hupe1980/primecount/internal/modarith"
)

// DeterministicBound is the smallest strong pseudoprime to the bases 2, 3, 5
// and 7. Every n below it is classified correctly by SmallWitnesses.
const DeterministicBound uint64 = 3_215_031_751

var (
	// SmallWitnesses are the bases used for n < DeterministicBound.
	SmallWitnesses = []uint64{2, 3, 5, 7}

	// LargeWitnesses are the bases used for n >= DeterministicBound. They
	// have no common strong pseudoprime below 3.3e24.
	LargeWitnesses = []uint64{2, 3, 5, 7, 11, 13, 17, 19, 23, 29, 31, 37}
)

// Witnesses returns the witness bases IsPrime uses for n.
func Witnesses(n uint64) []uint64 {
	if n < DeterministicBound {
		return SmallWitnesses
	}
	return LargeWitnesses
}

// IsPrime reports whether n is prime. It is pure and safe for concurrent use.
func IsPrime(n uint64) bool {
	// Everything that is not 6k+1 or 6k+5 is a multiple of 2 or 3.
	if n < 2 || n%6%4 != 1 {
		return n == 2 || n == 3
	}

	s := bits.TrailingZeros64(n - 1)
	d := (n - 1) >> s

	for _, a := range Witnesses(n) {
		if a >= n {
			break
		}
		if isWitness(a, d, s, n) {
			return false
		}
	}

	return true
}

// isWitness reports whether a proves n composite, where n-1 = d * 2^s.
func isWitness(a, d uint64, s int, n uint64) bool {
	x := modarith.PowMod(a, d, n)
	for i := 0; i < s; i++ {
		y := modarith.MulMod(x, x, n)
		if y == 1 && x != 1 && x != n-1 {
			return true
		}
		x = y
	}
	return x != 1
}
