// ABOUTME: Tests for the Greedy, Entropy, and DistancePreserving evaluators
// ABOUTME: Covers sign conventions and the apply-measure-revert exactness property

package evaluate

import (
	"testing"

	"eax-ga/internal/histogram"
	"eax-ga/internal/tour"
)

func TestGreedyPrefersShorterTours(t *testing.T) {
	g := Greedy{}
	if got := g.Evaluate(&tour.Delta{DeltaDistance: -5}); got <= 0 {
		t.Fatalf("shortening delta scored %v, want > 0", got)
	}
	if got := g.Evaluate(&tour.Delta{DeltaDistance: 5}); got >= 0 {
		t.Fatalf("lengthening delta scored %v, want < 0", got)
	}
	if got := g.Evaluate(&tour.Delta{DeltaDistance: 0}); got != 0 {
		t.Fatalf("no-op delta scored %v, want 0", got)
	}
}

func seeded(h histogram.EdgeCounter, edges [][2]int32) {
	for _, e := range edges {
		h.Increment(e[0], e[1])
	}
}

func TestEntropyRejectsLengtheningDelta(t *testing.T) {
	h := histogram.NewDense(4)
	e := Entropy{Counter: h, PopulationSize: 3}
	d := &tour.Delta{DeltaDistance: 5, Mods: []tour.Modification{{V1: 0, V2: 1, NewV2: 2}}}
	if got := e.Evaluate(d); got >= 0 {
		t.Fatalf("lengthening delta scored %v, want negative", got)
	}
}

func TestEntropyLeavesHistogramUnchanged(t *testing.T) {
	h := histogram.NewDense(4)
	seeded(h, [][2]int32{{0, 1}, {0, 1}, {0, 2}})
	e := Entropy{Counter: h, PopulationSize: 3}

	before := h.Get(0, 1)
	d := &tour.Delta{DeltaDistance: -1, Mods: []tour.Modification{{V1: 0, V2: 1, NewV2: 3}}}
	e.Evaluate(d)

	if got := h.Get(0, 1); got != before {
		t.Fatalf("Get(0,1) after Evaluate = %d, want unchanged %d", got, before)
	}
	if got := h.Get(0, 3); got != 0 {
		t.Fatalf("Get(0,3) after Evaluate = %d, want 0 (reverted)", got)
	}
}

func TestEntropyRewardsNovelEdge(t *testing.T) {
	h := histogram.NewDense(4)
	seeded(h, [][2]int32{{0, 1}, {0, 1}, {0, 1}})
	e := Entropy{Counter: h, PopulationSize: 3}

	// Replacing a saturated edge (present in every tour) with one absent
	// from the population strictly increases entropy, so even a barely
	// shortening swap should score positively.
	d := &tour.Delta{DeltaDistance: -1, Mods: []tour.Modification{{V1: 0, V2: 1, NewV2: 3}}}
	if got := e.Evaluate(d); got <= 0 {
		t.Fatalf("diversity-improving delta scored %v, want > 0", got)
	}
}

func TestDistancePreservingRejectsNonShorteningDelta(t *testing.T) {
	h := histogram.NewDense(4)
	dp := DistancePreserving{Counter: h}
	d := &tour.Delta{DeltaDistance: 0, Mods: []tour.Modification{{V1: 0, V2: 1, NewV2: 2}}}
	if got := dp.Evaluate(d); got >= 0 {
		t.Fatalf("non-shortening delta scored %v, want negative", got)
	}
}

func TestDistancePreservingLeavesHistogramUnchanged(t *testing.T) {
	h := histogram.NewDense(4)
	seeded(h, [][2]int32{{0, 1}, {0, 1}})
	dp := DistancePreserving{Counter: h}

	before := h.Get(0, 1)
	d := &tour.Delta{DeltaDistance: -1, Mods: []tour.Modification{{V1: 0, V2: 1, NewV2: 2}}}
	dp.Evaluate(d)

	if got := h.Get(0, 1); got != before {
		t.Fatalf("Get(0,1) after Evaluate = %d, want unchanged %d", got, before)
	}
	if got := h.Get(0, 2); got != 0 {
		t.Fatalf("Get(0,2) after Evaluate = %d, want 0 (reverted)", got)
	}
}

func TestDistancePreservingFavoursRarerEdge(t *testing.T) {
	h := histogram.NewDense(4)
	seeded(h, [][2]int32{{0, 1}, {0, 1}, {0, 1}}) // (0,1) saturated, (0,2) unseen
	dp := DistancePreserving{Counter: h}

	d := &tour.Delta{DeltaDistance: -1, Mods: []tour.Modification{{V1: 0, V2: 1, NewV2: 2}}}
	if got := dp.Evaluate(d); got <= 0 {
		t.Fatalf("shortening delta replacing a common edge with a rare one scored %v, want > 0", got)
	}
}
