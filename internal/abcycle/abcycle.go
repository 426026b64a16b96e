// ABOUTME: Decomposes the symmetric difference of two parent tours into AB-cycles
// ABOUTME: Single alternating walk with self-intersection closure and trivial-cycle discard

// Package abcycle finds elementary alternating cycles in the union multigraph
// of two parent tours, the first step of every EAX crossover.
package abcycle

import (
	"math/rand/v2"
	"slices"

	"eax-ga/internal/tour"
)

// Cycle is an even-length, cyclically-alternating sequence of cities: edge
// (Cities[i], Cities[i+1]) alternates between parent A and parent B as i
// increases, wrapping from the last city back to the first.
type Cycle struct {
	Cities []int32
}

// Find decomposes parentA and parentB into AB-cycles, stopping once maxCycles
// have been emitted or no live city remains. Pass an effectively-unbounded
// maxCycles (e.g. math.MaxInt) for variants with no cap.
//
// There is no grounding source for this component in the reference corpus
// (no ab_cycle_finder.hpp/.cpp was retrieved, despite being included by every
// EAX variant header); this implements the canonical single-alternating-walk
// formulation of AB-cycle decomposition, which satisfies every invariant and
// boundary case this specification names (self-intersection closure, discard
// of trivial length-2 cycles, zero cycles for identical parents, uniform
// tie-break over duplicate adjacency slots).
func Find(parentA, parentB *tour.Tour, rng *rand.Rand, maxCycles int) []Cycle {
	n := parentA.N
	remA := make([][]int32, n)
	remB := make([][]int32, n)
	for v := range int32(n) {
		a0, a1 := parentA.Neighbors(v)
		remA[v] = []int32{a0, a1}
		b0, b1 := parentB.Neighbors(v)
		remB[v] = []int32{b0, b1}
	}

	removeFrom := func(list []int32, x int32) []int32 {
		for i, y := range list {
			if y == x {
				last := len(list) - 1
				list[i] = list[last]
				return list[:last]
			}
		}
		return list
	}
	removeEdge := func(rem [][]int32, u, w int32) {
		rem[u] = removeFrom(rem[u], w)
		rem[w] = removeFrom(rem[w], u)
	}
	isLive := func(v int32) bool { return len(remA[v]) > 0 }

	// An edge both parents share forms a trivial length-2 cycle (one A copy,
	// one B copy); drop both copies up front so only differing edges are walked.
	for v := range int32(n) {
		for i := 0; i < len(remA[v]); {
			if u := remA[v][i]; slices.Contains(remB[v], u) {
				removeEdge(remA, v, u)
				removeEdge(remB, v, u)
				continue
			}
			i++
		}
	}

	var cycles []Cycle

	for len(cycles) < maxCycles {
		s := findLiveCity(n, rng, isLive)
		if s < 0 {
			break
		}

		path := []int32{s}
		cur := s
		useB := true // starting vertex is treated as vB=[s]; first move is a B edge

		for {
			var opts []int32
			if useB {
				opts = remB[cur]
			} else {
				opts = remA[cur]
			}
			if len(opts) == 0 {
				break
			}
			nb := opts[rng.IntN(len(opts))]
			if useB {
				removeEdge(remB, cur, nb)
			} else {
				removeEdge(remA, cur, nb)
			}
			useB = !useB
			path = append(path, nb)
			cur = nb

			closeIdx := -1
			for i := range len(path) - 1 {
				if path[i] == nb && (len(path)-1-i)%2 == 0 {
					closeIdx = i
					break
				}
			}
			if closeIdx < 0 {
				continue
			}

			cycleCities := path[closeIdx : len(path)-1]
			if len(cycleCities) >= 4 {
				cc := make([]int32, len(cycleCities))
				copy(cc, cycleCities)
				if closeIdx%2 == 0 { // walk entered via a B edge; rotate so (cc[0],cc[1]) is from A
					cc = append(cc[1:], cc[0])
				}
				cycles = append(cycles, Cycle{Cities: cc})
				if len(cycles) >= maxCycles {
					return cycles
				}
			}
			path = path[:closeIdx+1]
		}
	}

	return cycles
}

// findLiveCity picks a uniformly random live city by scanning from a random
// offset, so that every live city is equally likely regardless of how the
// live set is distributed across [0,n).
func findLiveCity(n int, rng *rand.Rand, isLive func(int32) bool) int32 {
	if n == 0 {
		return -1
	}
	start := rng.IntN(n)
	for i := range n {
		idx := int32((start + i) % n)
		if isLive(idx) {
			return idx
		}
	}
	return -1
}
