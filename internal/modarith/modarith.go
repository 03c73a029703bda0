// Package modarith provides overflow-free modular multiplication and
// exponentiation over 64-bit unsigned integers.
//
// Intermediate products are widened to 128 bits with math/bits, so the
// results are exact for every non-zero modulus that fits in a uint64.
package modarith

import "math/bits"

// MulMod returns (a * b) mod m.
//
// a and b need not be reduced. MulMod panics if m is zero.
func MulMod(a, b, m uint64) uint64 {
	hi, lo := bits.Mul64(a, b)
	return bits.Rem64(hi, lo, m)
}

// PowMod returns base^exp mod m using binary exponentiation.
//
// The result is always reduced, so PowMod(x, 0, 1) == 0. PowMod panics if
// m is zero.
func PowMod(base, exp, m uint64) uint64 {
	result := 1 % m
	base %= m
	for exp > 0 {
		if exp&1 == 1 {
			result = MulMod(result, base, m)
		}
		base = MulMod(base, base, m)
		exp >>= 1
	}
	return result
}
