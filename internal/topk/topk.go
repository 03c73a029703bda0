// Package topk tracks the K largest values offered by concurrent producers.
package topk

import (
	"slices"
	"sync"
	"sync/atomic"
)

// Tracker holds the K largest values seen so far.
//
// The slots are kept sorted ascending and are initialised to zero, which
// marks an unfilled slot. Slot 0 is the admission threshold: a value must be
// strictly greater than it to be admitted. The threshold is mirrored in an
// atomic so Offer can reject most values without taking the lock.
//
// A nil *Tracker is valid and ignores every offer.
type Tracker struct {
	threshold atomic.Uint64 // mirrors slots[0]; only ever increases

	mu    sync.Mutex
	slots []uint64
}

// New returns a tracker for the k largest values, or nil if k <= 0.
func New(k int) *Tracker {
	if k <= 0 {
		return nil
	}
	return &Tracker{
		slots: make([]uint64, k),
	}
}

// Offer submits v for admission.
//
// The unlocked threshold read may be stale while another goroutine is raising
// it. A stale read is always lower than the real threshold, so it can only
// send a value into the locked path, where it is compared again.
func (t *Tracker) Offer(v uint64) {
	if t == nil {
		return
	}
	if v <= t.threshold.Load() {
		return
	}

	t.mu.Lock()
	defer t.mu.Unlock()

	if v <= t.slots[0] {
		return
	}

	// i is the first slot >= v, so slots[1:i] are all < v. Shifting them down
	// by one evicts the old minimum and leaves room for v at i-1.
	i, _ := slices.BinarySearch(t.slots, v)
	copy(t.slots[:i-1], t.slots[1:i])
	t.slots[i-1] = v

	t.threshold.Store(t.slots[0])
}

// Min returns the current admission threshold. It is zero while any slot is
// unfilled.
func (t *Tracker) Min() uint64 {
	if t == nil {
		return 0
	}
	return t.threshold.Load()
}

// Cap returns K.
func (t *Tracker) Cap() int {
	if t == nil {
		return 0
	}
	return len(t.slots)
}

// Len returns the number of filled slots.
func (t *Tracker) Len() int {
	if t == nil {
		return 0
	}

	t.mu.Lock()
	defer t.mu.Unlock()

	return len(t.slots) - t.emptyLocked()
}

// Snapshot returns a copy of all K slots in ascending order, including the
// zero placeholders of unfilled slots.
func (t *Tracker) Snapshot() []uint64 {
	if t == nil {
		return nil
	}

	t.mu.Lock()
	defer t.mu.Unlock()

	return slices.Clone(t.slots)
}

// Values returns the filled slots in ascending order.
func (t *Tracker) Values() []uint64 {
	if t == nil {
		return nil
	}

	t.mu.Lock()
	defer t.mu.Unlock()

	return slices.Clone(t.slots[t.emptyLocked():])
}

// emptyLocked counts the zero placeholders. They are always a prefix.
func (t *Tracker) emptyLocked() int {
	n, _ := slices.BinarySearch(t.slots, 1)
	return n
}
