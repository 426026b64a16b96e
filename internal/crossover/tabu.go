// ABOUTME: C7-tabu support: a decaying edge tabu list and the AB-cycle filter it drives
// ABOUTME: Edges enter tabu status after surviving two independent Bernoulli(1-sqrt(1/2)) draws

package crossover

import (
	"math"
	"math/rand/v2"

	"eax-ga/internal/abcycle"
	"eax-ga/internal/tour"
)

// escapeProbability is the per-draw probability an edge "escapes" tabu
// entry; surviving two independent draws gives combined entry probability
// sqrt(1/2) * sqrt(1/2) = 1/2. See SPEC_FULL.md Open Question (c).
const escapeProbability = 1 - math.Sqrt2/2

type edgeKey [2]int32

func newEdgeKey(a, b int32) edgeKey {
	if a > b {
		a, b = b, a
	}
	return edgeKey{a, b}
}

// TabuList is parent1's forbidden-edge set: an edge entering tabu status
// stays forbidden for a fixed number of future generations, decremented once
// per generation by Tick.
type TabuList struct {
	remaining map[edgeKey]int
}

// NewTabuList returns an empty tabu list.
func NewTabuList() *TabuList {
	return &TabuList{remaining: make(map[edgeKey]int)}
}

// Sample offers every modification in delta a chance to enter tabu status,
// each surviving two independent escapeProbability draws, and assigns it the
// given tenure (generations until it expires).
func (tl *TabuList) Sample(delta *tour.Delta, tenure int, rng *rand.Rand) {
	for _, m := range delta.Mods {
		if rng.Float64() < escapeProbability {
			continue
		}
		if rng.Float64() < escapeProbability {
			continue
		}
		tl.remaining[newEdgeKey(m.V1, m.NewV2)] = tenure
	}
}

// Tick decrements every tabu edge's remaining tenure by one generation,
// dropping any edge whose tenure expires.
func (tl *TabuList) Tick() {
	for k, v := range tl.remaining {
		if v <= 1 {
			delete(tl.remaining, k)
		} else {
			tl.remaining[k] = v - 1
		}
	}
}

// Contains reports whether edge (a,b) is currently tabu.
func (tl *TabuList) Contains(a, b int32) bool {
	_, ok := tl.remaining[newEdgeKey(a, b)]
	return ok
}

// filterCycles drops every AB-cycle containing at least one edge that is
// both tabu and parent-consistent: present in whichever of parent1/parent2
// currently carries it.
func (tl *TabuList) filterCycles(cycles []abcycle.Cycle, parent1, parent2 *tour.Tour) []abcycle.Cycle {
	if len(tl.remaining) == 0 {
		return cycles
	}
	kept := cycles[:0]
	for _, c := range cycles {
		if tl.cycleIsForbidden(c, parent1, parent2) {
			continue
		}
		kept = append(kept, c)
	}
	return kept
}

func (tl *TabuList) cycleIsForbidden(c abcycle.Cycle, parent1, parent2 *tour.Tour) bool {
	m := len(c.Cities)
	for i := range m {
		a, b := c.Cities[i], c.Cities[(i+1)%m]
		if !tl.Contains(a, b) {
			continue
		}
		if parent1.HasEdge(a, b) || parent2.HasEdge(a, b) {
			return true
		}
	}
	return false
}
