// ABOUTME: Intermediate individual: parent A plus a modification log and sub-tour bookkeeping
// ABOUTME: Applies an E-set as edge swaps, tracks the resulting sub-tours, reverts to emit a delta

// Package intermediate implements the working copy of parent A that an
// E-set is applied to, producing a (generally disconnected) set of
// sub-tours that the merger package repairs back to Hamiltonicity.
//
// The reference header computed sub-tours from cut positions in parent A's
// canonical linear order (two position tuples per cut, wraparound handled
// specially at position 0/n-1). This implementation instead decomposes the
// resulting adjacency graph directly by walking each connected cycle once
// the E-set has been applied — the two approaches are behaviourally
// equivalent (both classify cities into disjoint Hamiltonian sub-cycles),
// and the direct walk needs no cut/segment bookkeeping to get the
// wraparound cases right. See the grounding ledger for the full rationale.
package intermediate

import (
	"eax-ga/internal/abcycle"
	"eax-ga/internal/tour"
)

// Individual is the pool-borrowed scratch object the crossover driver
// assigns to parent A once per pair, then reuses across every child.
type Individual struct {
	Working       *tour.Tour
	Mods          []tour.Modification
	baseChecksum  uint64
	weight        tour.WeightFunc
	subtourOf     []int32
	subtourCities [][]int32
}

// New creates an Individual bound to the given edge-weight function. Call
// Assign before first use.
func New(weight tour.WeightFunc) *Individual {
	return &Individual{Working: &tour.Tour{}, weight: weight}
}

// Assign copies parent's adjacency into the working tour and clears the
// modification log, ready for ApplyABCycles.
func (ii *Individual) Assign(parent *tour.Tour) {
	ii.Working.CopyFrom(parent)
	ii.baseChecksum = parent.Checksum
	if len(ii.subtourOf) != parent.N {
		ii.subtourOf = make([]int32, parent.N)
	}
	ii.Mods = ii.Mods[:0]
	ii.subtourCities = ii.subtourCities[:0]
}

func (ii *Individual) changeConnection(v1, v2, newV2 int32) {
	ii.Working.Replace(v1, v2, newV2)
	ii.Mods = append(ii.Mods, tour.Modification{V1: v1, V2: v2, NewV2: newV2})
}

// ApplyABCycles executes the edge swaps of every selected AB-cycle against
// the working tour and recomputes the resulting sub-tour partition.
// selected indexes into cycles.
func (ii *Individual) ApplyABCycles(cycles []abcycle.Cycle, selected []int) {
	for _, idx := range selected {
		c := cycles[idx].Cities
		m := len(c)
		for i := 0; i < m; i += 2 {
			cur, nxt := c[i], c[i+1]
			prev := c[(i-1+m)%m]
			nxt2 := c[(i+2)%m]
			ii.changeConnection(cur, nxt, prev)
			ii.changeConnection(nxt, cur, nxt2)
		}
	}
	ii.computeSubtours()
}

func (ii *Individual) computeSubtours() {
	n := ii.Working.N
	visited := make([]bool, n)
	ii.subtourCities = ii.subtourCities[:0]
	for v := range int32(n) {
		if visited[v] {
			continue
		}
		id := len(ii.subtourCities)
		var cities []int32
		prev := int32(-1)
		cur := v
		for {
			visited[cur] = true
			cities = append(cities, cur)
			ii.subtourOf[cur] = int32(id)
			a, b := ii.Working.Neighbors(cur)
			next := a
			if next == prev {
				next = b
			}
			prev = cur
			cur = next
			if cur == v {
				break
			}
		}
		ii.subtourCities = append(ii.subtourCities, cities)
	}
}

// SubtourCount returns how many disjoint sub-tours the working tour
// currently decomposes into. It is 1 exactly when the working tour is
// already Hamiltonian.
func (ii *Individual) SubtourCount() int { return len(ii.subtourCities) }

// SubtourCities returns the cities belonging to sub-tour id.
func (ii *Individual) SubtourCities(id int) []int32 { return ii.subtourCities[id] }

// SubtourOf returns which sub-tour id a city currently belongs to.
func (ii *Individual) SubtourOf(v int32) int32 { return ii.subtourOf[v] }

// FindMinSizeSubtour returns the id of the smallest sub-tour.
func (ii *Individual) FindMinSizeSubtour() int {
	best := 0
	for i, cities := range ii.subtourCities {
		if len(cities) < len(ii.subtourCities[best]) {
			best = i
		}
	}
	return best
}

// MergeSubtour folds id2's cities into id1 and keeps the sub-tour ID space
// compact by moving the last ID down into id2's now-vacant slot.
func (ii *Individual) MergeSubtour(id1, id2 int) {
	if id1 == id2 {
		return
	}
	for _, v := range ii.subtourCities[id2] {
		ii.subtourOf[v] = int32(id1)
	}
	ii.subtourCities[id1] = append(ii.subtourCities[id1], ii.subtourCities[id2]...)

	last := len(ii.subtourCities) - 1
	if id2 != last {
		ii.subtourCities[id2] = ii.subtourCities[last]
		for _, v := range ii.subtourCities[id2] {
			ii.subtourOf[v] = int32(id2)
		}
	}
	ii.subtourCities = ii.subtourCities[:last]
}

// SwapEdges replaces edges (u,u') and (v,v') with (u,v) and (u',v'),
// recording four modifications — the same primitive the merger uses to
// reconnect two sub-tours into one.
func (ii *Individual) SwapEdges(u, uPrime, v, vPrime int32) {
	ii.changeConnection(u, uPrime, v)
	ii.changeConnection(v, vPrime, u)
	ii.changeConnection(uPrime, u, vPrime)
	ii.changeConnection(vPrime, v, uPrime)
}

// ModCount returns the number of modifications recorded so far; callers use
// this immediately after ApplyABCycles (before the merger runs) to derive
// the Block2 filter's "swapped edge count".
func (ii *Individual) ModCount() int { return len(ii.Mods) }

// GetDeltaAndRevert reverts the working tour to parent A and returns the
// modification log (plus its precomputed length delta) as a Delta.
func (ii *Individual) GetDeltaAndRevert() *tour.Delta {
	mods := make([]tour.Modification, len(ii.Mods))
	copy(mods, ii.Mods)
	ii.revert()
	dd := tour.ComputeDeltaDistance(mods, ii.weight)
	return &tour.Delta{BaseChecksum: ii.baseChecksum, Mods: mods, DeltaDistance: dd}
}

// Discard reverts the working tour to parent A without emitting a delta.
func (ii *Individual) Discard() {
	ii.revert()
}

func (ii *Individual) revert() {
	for i := len(ii.Mods) - 1; i >= 0; i-- {
		m := ii.Mods[i]
		ii.Working.Replace(m.V1, m.NewV2, m.V2)
	}
	ii.Mods = ii.Mods[:0]
}
