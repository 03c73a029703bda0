package primality

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func trialDivision(n uint64) bool {
	if n < 2 {
		return false
	}
	for d := uint64(2); d*d <= n; d++ {
		if n%d == 0 {
			return false
		}
	}
	return true
}

func TestIsPrimeMatchesTrialDivision(t *testing.T) {
	for n := uint64(0); n < 10000; n++ {
		require.Equal(t, trialDivision(n), IsPrime(n), "n=%d", n)
	}
}

func TestIsPrimeSmallValues(t *testing.T) {
	primes := []uint64{2, 3, 5, 7, 11, 13}
	for _, p := range primes {
		assert.True(t, IsPrime(p), "%d", p)
	}

	for _, n := range []uint64{0, 1, 4, 6, 8, 9, 25, 35, 49} {
		assert.False(t, IsPrime(n), "%d", n)
	}
}

func TestIsPrimeWitnessBases(t *testing.T) {
	for _, a := range SmallWitnesses {
		assert.True(t, IsPrime(a), "witness %d", a)
	}
	for _, a := range LargeWitnesses {
		assert.True(t, IsPrime(a), "witness %d", a)
	}
}

func TestIsPrimePseudoprimes(t *testing.T) {
	composites := []uint64{
		// Strong pseudoprimes to base 2.
		2047, 3277, 4033, 4681, 8321,
		// Strong pseudoprimes to bases 2 and 3.
		1373653, 1530787, 1987021,
		// Strong pseudoprime to bases 2, 3 and 5.
		25326001,
		// Carmichael numbers.
		561, 1105, 1729, 2465, 2821, 6601, 8911, 41041, 825265,
		// Strong pseudoprime to 2, 3, 5 and 7; needs the large witness set.
		DeterministicBound,
		// Strong pseudoprime to every prime base up to 23.
		3825123056546413051,
	}

	for _, n := range composites {
		assert.False(t, IsPrime(n), "%d", n)
	}
}

func TestIsPrimeLargeValues(t *testing.T) {
	tests := []struct {
		n    uint64
		want bool
	}{
		{99999989, true},
		{100000000, false},
		{1<<31 - 1, true},
		{4294967291, true},
		{4294967295, false},
		{DeterministicBound - 2, true},
		{1<<61 - 1, true},
		{18446744073709551557, true},
		{math.MaxUint64, false},
		{1<<62 + 1, false},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.want, IsPrime(tt.n), "n=%d", tt.n)
	}
}

func TestIsPrimeAroundBound(t *testing.T) {
	for n := DeterministicBound - 200; n < DeterministicBound+200; n++ {
		assert.Equal(t, trialDivision(n), IsPrime(n), "n=%d", n)
	}
}

func TestIsPrimeIdempotent(t *testing.T) {
	for _, n := range []uint64{2, 97, 561, 99999989, DeterministicBound} {
		first := IsPrime(n)
		for i := 0; i < 5; i++ {
			assert.Equal(t, first, IsPrime(n))
		}
	}
}

func TestWitnesses(t *testing.T) {
	assert.Equal(t, SmallWitnesses, Witnesses(DeterministicBound-1))
	assert.Equal(t, LargeWitnesses, Witnesses(DeterministicBound))
}
