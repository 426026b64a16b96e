// ABOUTME: Tests for the intermediate individual's apply/revert round-trip and sub-tour split
// ABOUTME: Covers the Delta-symmetry scenario and the post-condition that revert restores parent A

package intermediate

import (
	"slices"
	"testing"

	"eax-ga/internal/abcycle"
	"eax-ga/internal/tour"
)

func squareWeight(a, b int32) int64 {
	coords := [4][2]int64{{0, 0}, {0, 1}, {1, 1}, {1, 0}}
	dx := coords[a][0] - coords[b][0]
	dy := coords[a][1] - coords[b][1]
	if dx < 0 {
		dx = -dx
	}
	if dy < 0 {
		dy = -dy
	}
	return dx + dy
}

func TestApplyOneCycleThenRevertRestoresParent(t *testing.T) {
	parent := tour.New([]int32{0, 1, 2, 3}, squareWeight)
	before := parent.Clone()

	ii := New(squareWeight)
	ii.Assign(parent)

	// The AB-cycle of P1=[0,1,2,3] against P2=[0,2,1,3]: A edges (0-1),(3-2),
	// B edges (1-3),(2-0).
	cycles := []abcycle.Cycle{{Cities: []int32{0, 1, 3, 2}}}
	ii.ApplyABCycles(cycles, []int{0})

	if ii.SubtourCount() != 1 {
		t.Fatalf("expected the applied AB-cycle to keep a single Hamiltonian tour, got %d sub-tours", ii.SubtourCount())
	}

	d := ii.GetDeltaAndRevert()
	if !adjacencyEqual(ii.Working, before) {
		t.Fatalf("revert did not restore parent A's adjacency")
	}

	fresh := parent.Clone()
	fresh.Checksum = parent.Checksum // pretend it's the same base for Apply's check
	if err := tour.Apply(fresh, d); err != nil {
		t.Fatalf("apply of emitted delta failed: %v", err)
	}
	if adjacencyEqual(fresh, before) {
		t.Fatalf("expected the emitted delta to change the tour away from parent A")
	}
}

func TestApplyCycleSplitsIntoSubtours(t *testing.T) {
	// A parent tour over 6 cities where the AB-cycle only touches 4 of
	// them is expected to split into more than one sub-tour.
	weight := func(a, b int32) int64 { return 1 }
	parent := tour.New([]int32{0, 1, 2, 3, 4, 5}, weight)

	ii := New(weight)
	ii.Assign(parent)

	// AB-cycle over cities 0,1,2,3: alternating A edges (0-1),(2-3) and B
	// edges (1-2),(3-0). Edge 1-2 is already in the parent, so applying it
	// leaves a 2-city sub-tour {1,2} and a 4-city sub-tour 0-3-4-5-0.
	cycles := []abcycle.Cycle{{Cities: []int32{0, 1, 2, 3}}}
	ii.ApplyABCycles(cycles, []int{0})

	if ii.SubtourCount() < 1 {
		t.Fatalf("expected at least one sub-tour")
	}
	total := 0
	for i := range ii.SubtourCount() {
		total += len(ii.SubtourCities(i))
	}
	if total != parent.N {
		t.Fatalf("sub-tour city counts must cover every city exactly once: got %d want %d", total, parent.N)
	}
}

func adjacencyEqual(a, b *tour.Tour) bool {
	pa, pb := a.Path(), b.Path()
	if len(pa) != len(pb) {
		return false
	}
	// Two tours are the same cycle if walking from the same city visits
	// the same sequence (in either direction).
	rotated := slices.Clone(pb)
	idx := slices.Index(rotated, pa[0])
	if idx < 0 {
		return false
	}
	rotated = append(rotated[idx:], rotated[:idx]...)
	if slices.Equal(pa, rotated) {
		return true
	}
	slices.Reverse(rotated[1:])
	return slices.Equal(pa, rotated)
}
