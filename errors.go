package primecount

import (
	"errors"
	"fmt"

	"github.com/hupe1980/primecount/internal/partition"
)

var (
	// ErrInvalidTopK is returned when WithTopK is given a negative value.
	ErrInvalidTopK = errors.New("top-k must not be negative")

	// ErrWorkerPanic is wrapped by every WorkerError caused by a panic.
	ErrWorkerPanic = errors.New("worker panicked")
)

// ErrInvalidRange indicates hi < lo.
type ErrInvalidRange struct {
	Lo uint64
	Hi uint64
}

func (e *ErrInvalidRange) Error() string {
	return fmt.Sprintf("invalid range [%d, %d): hi is below lo", e.Lo, e.Hi)
}

// ErrSumOverflow indicates a range whose prime sum could exceed 64 bits.
//
// The check is conservative: it rejects any range in which the sum of all
// integers, prime or not, does not fit in a uint64.
type ErrSumOverflow struct {
	Lo uint64
	Hi uint64
}

func (e *ErrSumOverflow) Error() string {
	return fmt.Sprintf("range [%d, %d) is too large: prime sum may overflow 64 bits", e.Lo, e.Hi)
}

// WorkerError reports the failure of a single worker. A failed worker aborts
// the whole scan; no partial result is returned.
//
// The underlying error can be accessed via errors.Unwrap.
type WorkerError struct {
	Worker int
	Range  partition.Range
	cause  error
}

func (e *WorkerError) Error() string {
	return fmt.Sprintf("worker %d on %s: %v", e.Worker, e.Range, e.cause)
}

func (e *WorkerError) Unwrap() error { return e.cause }

func newPanicError(worker int, r partition.Range, v any) *WorkerError {
	return &WorkerError{
		Worker: worker,
		Range:  r,
		cause:  fmt.Errorf("%w: %v", ErrWorkerPanic, v),
	}
}
