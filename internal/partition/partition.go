// Package partition splits a half-open integer range into contiguous
// sub-ranges for static work distribution.
package partition

import (
	"fmt"
	"math/bits"
)

// Range is the half-open interval [Lo, Hi).
type Range struct {
	Lo uint64
	Hi uint64
}

// Len returns the number of integers in r.
func (r Range) Len() uint64 {
	if r.Hi <= r.Lo {
		return 0
	}
	return r.Hi - r.Lo
}

// Empty reports whether r contains no integers.
func (r Range) Empty() bool {
	return r.Len() == 0
}

func (r Range) String() string {
	return fmt.Sprintf("[%d, %d)", r.Lo, r.Hi)
}

// Boundary returns lo + (hi-lo)*i/n, the start of the i-th of n sub-ranges.
//
// The product is computed in 128 bits, so the result is exact for any
// range. Boundary panics if n == 0 or i > n.
func Boundary(lo, hi uint64, i, n int) uint64 {
	if n <= 0 || i < 0 || i > n {
		panic(fmt.Sprintf("partition: boundary %d of %d out of range", i, n))
	}

	span := hi - lo
	ph, pl := bits.Mul64(span, uint64(i))
	// i <= n implies the quotient is at most span, so ph < n and Div64
	// cannot overflow.
	q, _ := bits.Div64(ph, pl, uint64(n))
	return lo + q
}

// Split partitions [lo, hi) into n contiguous sub-ranges whose lengths differ
// by at most one. Together they cover every integer of [lo, hi) exactly once.
// Some sub-ranges are empty when n exceeds the range length.
//
// Split panics if n < 1 or hi < lo.
func Split(lo, hi uint64, n int) []Range {
	if n < 1 {
		panic(fmt.Sprintf("partition: invalid part count %d", n))
	}
	if hi < lo {
		panic(fmt.Sprintf("partition: invalid range [%d, %d)", lo, hi))
	}

	parts := make([]Range, n)
	start := lo
	for i := range n {
		end := Boundary(lo, hi, i+1, n)
		parts[i] = Range{Lo: start, Hi: end}
		start = end
	}
	return parts
}
