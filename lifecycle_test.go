package primecount_test

import (
	"context"
	"errors"
	"runtime"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hupe1980/primecount"
)

// TestNoGoroutineLeaks verifies that Count never leaves workers behind,
// whether the scan completes, fails validation or is canceled midway.
func TestNoGoroutineLeaks(t *testing.T) {
	tests := []struct {
		name     string
		run      func(t *testing.T)
		maxLeaks int // Allow small variance (runtime background goroutines)
	}{
		{
			name: "completed scan",
			run: func(t *testing.T) {
				_, err := primecount.Count(t.Context(), 1, 200_000, primecount.WithWorkers(16))
				require.NoError(t, err)
			},
			maxLeaks: 2,
		},
		{
			name: "completed scan with progress",
			run: func(t *testing.T) {
				_, err := primecount.Count(t.Context(), 1, 200_000,
					primecount.WithWorkers(8),
					primecount.WithProgress(time.Millisecond, func(primecount.Progress) {}),
				)
				require.NoError(t, err)
			},
			maxLeaks: 2,
		},
		{
			name: "invalid range",
			run: func(t *testing.T) {
				_, err := primecount.Count(t.Context(), 10, 1, primecount.WithWorkers(8))
				require.Error(t, err)
			},
			maxLeaks: 2,
		},
		{
			name: "canceled midway",
			run: func(t *testing.T) {
				ctx, cancel := context.WithTimeout(t.Context(), 5*time.Millisecond)
				defer cancel()

				_, err := primecount.Count(ctx, 1, 1<<32, primecount.WithWorkers(8))
				require.True(t, errors.Is(err, context.DeadlineExceeded), "unexpected error: %v", err)
			},
			maxLeaks: 2,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			runtime.GC()
			time.Sleep(50 * time.Millisecond)

			initial := runtime.NumGoroutine()
			t.Logf("Initial goroutines: %d", initial)

			tt.run(t)

			// Count joins its workers before returning, but give the runtime a
			// moment to reap them before counting.
			deadline := time.Now().Add(2 * time.Second)
			var final int
			var leaked int
			for {
				runtime.GC()
				time.Sleep(20 * time.Millisecond)

				final = runtime.NumGoroutine()
				leaked = final - initial
				if leaked <= tt.maxLeaks || time.Now().After(deadline) {
					break
				}
			}

			t.Logf("Final goroutines: %d (leaked: %d)", final, leaked)

			if leaked > tt.maxLeaks {
				t.Errorf("Goroutine leak detected: started with %d, ended with %d (leaked: %d, max allowed: %d)",
					initial, final, leaked, tt.maxLeaks)

				buf := make([]byte, 1<<20)
				stackSize := runtime.Stack(buf, true)
				t.Logf("Goroutine stacks:\n%s", buf[:stackSize])
			}
		})
	}
}

// TestCountRepeated verifies that back-to-back scans share no state.
func TestCountRepeated(t *testing.T) {
	first, err := primecount.ParallelCount(1, 50_000, 4)
	require.NoError(t, err)

	for i := 0; i < 3; i++ {
		again, err := primecount.ParallelCount(1, 50_000, 4)
		require.NoError(t, err)

		assert.Equal(t, first.Count, again.Count)
		assert.Equal(t, first.Sum, again.Sum)
		assert.Equal(t, first.TopK, again.TopK)
	}
}
