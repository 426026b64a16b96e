// ABOUTME: Tests for AB-cycle decomposition boundary behaviour and the Delta-symmetry scenario
// ABOUTME: Covers identical parents, a two-city degenerate tour, and the square-4 single-cycle case

package abcycle

import (
	"math"
	"math/rand/v2"
	"testing"

	"eax-ga/internal/tour"
)

func weightFor(n int) tour.WeightFunc {
	coords := map[int]struct{ x, y int64 }{
		0: {0, 0}, 1: {0, 1}, 2: {1, 1}, 3: {1, 0},
	}
	return func(a, b int32) int64 {
		if int(a) >= len(coords) || int(b) >= len(coords) {
			return 1
		}
		ca, cb := coords[int(a)], coords[int(b)]
		dx, dy := ca.x-cb.x, ca.y-cb.y
		if dx < 0 {
			dx = -dx
		}
		if dy < 0 {
			dy = -dy
		}
		return dx + dy
	}
}

func TestIdenticalParentsYieldNoCycles(t *testing.T) {
	rng := rand.New(rand.NewPCG(1, 2))
	a := tour.New([]int32{0, 1, 2, 3}, weightFor(4))
	b := tour.New([]int32{0, 1, 2, 3}, weightFor(4))
	cycles := Find(a, b, rng, math.MaxInt)
	if len(cycles) != 0 {
		t.Fatalf("expected zero AB-cycles for identical parents, got %d", len(cycles))
	}
}

func TestTwoCityTourYieldsNoCycles(t *testing.T) {
	rng := rand.New(rand.NewPCG(3, 4))
	w := func(a, b int32) int64 { return 1 }
	a := tour.New([]int32{0, 1}, w)
	b := tour.New([]int32{0, 1}, w)
	cycles := Find(a, b, rng, math.MaxInt)
	if len(cycles) != 0 {
		t.Fatalf("expected zero AB-cycles for a two-city tour, got %d", len(cycles))
	}
}

func TestSquareFourYieldsExactlyOneCycle(t *testing.T) {
	rng := rand.New(rand.NewPCG(5, 6))
	p1 := tour.New([]int32{0, 1, 2, 3}, weightFor(4))
	p2 := tour.New([]int32{0, 2, 1, 3}, weightFor(4))
	cycles := Find(p1, p2, rng, math.MaxInt)
	if len(cycles) != 1 {
		t.Fatalf("expected exactly one AB-cycle, got %d", len(cycles))
	}
	if len(cycles[0].Cities) != 4 {
		t.Fatalf("expected a length-4 AB-cycle, got %d", len(cycles[0].Cities))
	}
}

func TestCyclesAreAlwaysEvenLengthAtLeastFour(t *testing.T) {
	rng := rand.New(rand.NewPCG(7, 8))
	n := 12
	path := make([]int32, n)
	for i := range path {
		path[i] = int32(i)
	}
	w := func(a, b int32) int64 { return int64(a) + int64(b) + 1 }
	p1 := tour.New(path, w)
	shuffled := []int32{0, 3, 1, 4, 2, 5, 7, 6, 9, 8, 11, 10}
	p2 := tour.New(shuffled, w)
	cycles := Find(p1, p2, rng, math.MaxInt)
	for _, c := range cycles {
		if len(c.Cities) < 4 || len(c.Cities)%2 != 0 {
			t.Fatalf("found a cycle violating even-length>=4: %v", c.Cities)
		}
	}
}
