// ABOUTME: Shared behavioural tests run against both Dense and Compact implementations
// ABOUTME: Covers increment/decrement, underflow, apply-delta, and entropy parity

package histogram

import (
	"math"
	"testing"

	"eax-ga/internal/tour"
)

func newBoth(n int) []EdgeCounter {
	return []EdgeCounter{NewDense(n), NewCompact(n)}
}

func TestIncrementDecrementGet(t *testing.T) {
	for _, h := range newBoth(4) {
		h.Increment(0, 1)
		h.Increment(0, 1)
		if got := h.Get(0, 1); got != 2 {
			t.Fatalf("%T: Get = %d, want 2", h, got)
		}
		if h.UniqueDirectedEdgeCount() != 1 {
			t.Fatalf("%T: unique count = %d, want 1", h, h.UniqueDirectedEdgeCount())
		}
		if err := h.Decrement(0, 1); err != nil {
			t.Fatalf("%T: unexpected error: %v", h, err)
		}
		if got := h.Get(0, 1); got != 1 {
			t.Fatalf("%T: Get after one decrement = %d, want 1", h, got)
		}
	}
}

func TestDecrementUnderflow(t *testing.T) {
	for _, h := range newBoth(4) {
		if err := h.Decrement(2, 3); err != ErrCounterUnderflow {
			t.Fatalf("%T: expected ErrCounterUnderflow, got %v", h, err)
		}
	}
}

func TestConnectedOfMatchesUniqueCount(t *testing.T) {
	for _, h := range newBoth(4) {
		h.Increment(0, 1)
		h.Increment(0, 2)
		h.Increment(1, 0)
		var total int
		for v := int32(0); v < 4; v++ {
			total += len(h.ConnectedOf(v))
		}
		if int64(total) != h.UniqueDirectedEdgeCount() {
			t.Fatalf("%T: sum of ConnectedOf = %d, want %d", h, total, h.UniqueDirectedEdgeCount())
		}
	}
}

func TestApplyDeltaRoundTrip(t *testing.T) {
	mods := []tour.Modification{{V1: 0, V2: 1, NewV2: 2}}
	reverse := []tour.Modification{{V1: 0, V2: 2, NewV2: 1}}
	for _, h := range newBoth(4) {
		h.Increment(0, 1)
		before := h.Get(0, 1)
		if err := h.ApplyDelta(mods); err != nil {
			t.Fatalf("%T: apply failed: %v", h, err)
		}
		if h.Get(0, 1) != before-1 || h.Get(0, 2) != 1 {
			t.Fatalf("%T: apply did not move the count", h)
		}
		if err := h.ApplyDelta(reverse); err != nil {
			t.Fatalf("%T: reverse apply failed: %v", h, err)
		}
		if h.Get(0, 1) != before || h.Get(0, 2) != 0 {
			t.Fatalf("%T: apply+reverse was not the identity", h)
		}
	}
}

func TestEntropyAgreesAcrossImplementations(t *testing.T) {
	dense := NewDense(4)
	compact := NewCompact(4)
	pairs := [][2]int32{{0, 1}, {1, 2}, {2, 3}, {3, 0}, {0, 1}}
	for _, p := range pairs {
		dense.Increment(p[0], p[1])
		compact.Increment(p[0], p[1])
	}
	de := dense.Entropy(4)
	ce := compact.Entropy(4)
	if math.Abs(de-ce) > 1e-12 {
		t.Fatalf("entropy mismatch: dense=%v compact=%v", de, ce)
	}
}
