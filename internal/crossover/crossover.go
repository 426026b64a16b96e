// ABOUTME: Crossover driver orchestrating AB-cycle decomposition, E-set assembly, merge, and delta extraction
// ABOUTME: Implements the Block2 parent2-equivalence filter that guarantees at least one child per pair

// Package crossover implements C7, the component every generation calls
// once per parent pair to produce up to Nchild candidate deltas.
package crossover

import (
	"math/rand/v2"

	"eax-ga/internal/abcycle"
	"eax-ga/internal/eset"
	"eax-ga/internal/intermediate"
	"eax-ga/internal/merger"
	"eax-ga/internal/tour"
)

// Params bundles the per-call configuration: which EAX variant to run, how
// many children to attempt, and an optional tabu snapshot (nil disables the
// C7-tabu behaviour entirely).
type Params struct {
	Variant eset.Variant
	Nchild  int
	Tabu    *TabuList
}

// Driver owns the pool-borrowed scratch objects (the intermediate
// individual and the merger) that every crossover call reuses.
type Driver struct {
	weight tour.WeightFunc
	ii     *intermediate.Individual
	merger *merger.Merger
}

// New builds a Driver bound to a weight function and the neighbour table the
// merger needs for its reconnection search.
func New(weight tour.WeightFunc, table merger.NeighborTable) *Driver {
	return &Driver{
		weight: weight,
		ii:     intermediate.New(weight),
		merger: merger.New(table),
	}
}

// Cross runs the full C3→C4→C5→C6 pipeline for one parent pair and returns
// the accepted child deltas, each one ready to be applied against parent1 or
// evaluated by C8 without mutating parent1 itself.
func (d *Driver) Cross(parent1, parent2 *tour.Tour, params Params, rng *rand.Rand) []*tour.Delta {
	cycles := abcycle.Find(parent1, parent2, rng, params.Variant.MaxCycles(params.Nchild))
	if params.Tabu != nil {
		cycles = params.Tabu.filterCycles(cycles, parent1, parent2)
	}
	if len(cycles) == 0 {
		return nil
	}

	assembler := eset.New(params.Variant, cycles, params.Nchild, rng)
	d.ii.Assign(parent1)

	edgeDiff := edgeDifference(parent1, parent2)
	isBlock2 := params.Variant.Kind == eset.KindBlock2

	var deltas []*tour.Delta
	var lastDiscarded *tour.Delta

	for assembler.HasNext() {
		selected := assembler.Next(rng)
		d.ii.ApplyABCycles(cycles, selected)
		swapCount := d.ii.ModCount() / 2 // two modifications per swapped A edge
		d.merger.Merge(d.ii)

		resultDistance := parent1.Distance + tour.ComputeDeltaDistance(d.ii.Mods, d.weight)
		delta := d.ii.GetDeltaAndRevert()

		if isBlock2 && swapCount >= edgeDiff/2 && resultDistance == parent2.Distance {
			lastDiscarded = delta
			continue
		}
		deltas = append(deltas, delta)
	}

	if len(deltas) == 0 && lastDiscarded != nil {
		deltas = append(deltas, lastDiscarded)
	}
	return deltas
}

// edgeDifference counts the edges present in a but not in b (equivalently,
// by symmetry of two Hamiltonian cycles of the same size, the edges present
// in b but not in a): the "inter-parent edge difference".
func edgeDifference(a, b *tour.Tour) int {
	diff := 0
	for v := range int32(a.N) {
		n0, n1 := a.Neighbors(v)
		for _, u := range [2]int32{n0, n1} {
			if u > v && !b.HasEdge(v, u) {
				diff++
			}
		}
	}
	return diff
}
