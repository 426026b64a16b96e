// ABOUTME: Greedy nearest-neighbour sub-tour merger that restores Hamiltonicity
// ABOUTME: Widening-window reconnection search with an optional parent-reference tie-break

// Package merger repairs an intermediate individual's disjoint sub-tours
// into a single Hamiltonian cycle, the last step of every EAX crossover.
package merger

import (
	"eax-ga/internal/intermediate"
	"eax-ga/internal/objpool"
	"eax-ga/internal/tour"
)

// NeighborTable is the minimal TSP-instance surface the merger needs: edge
// weights and a per-city ascending nearest-neighbour list.
type NeighborTable interface {
	Weight(a, b int32) int64
	// NearestNeighbor returns the k-th (0-indexed) nearest neighbour of
	// city, or ok=false if the table has fewer than k+1 entries for it.
	NearestNeighbor(city int32, k int) (neighbor int32, ok bool)
	MaxNeighbors() int
}

// Merger performs the greedy repair. ReferenceParents, when non-empty,
// makes this the ParentReferenceMerger variant: among equal-cost
// reconnections it prefers one that reintroduces an edge present in a
// reference parent.
type Merger struct {
	Table            NeighborTable
	ReferenceParents []*tour.Tour

	citiesPool *objpool.SlicePool[int32]
}

// New builds a plain greedy merger.
func New(table NeighborTable) *Merger {
	return &Merger{Table: table, citiesPool: objpool.NewSlicePool[int32](16)}
}

// Merge repeatedly reconnects the smallest sub-tour into its best-matching
// neighbour until ii is a single Hamiltonian cycle.
func (m *Merger) Merge(ii *intermediate.Individual) {
	for ii.SubtourCount() > 1 {
		m.mergeOnce(ii)
	}
}

type candidate struct {
	u, uPrime, v, vPrime int32
	delta                int64
	refBonus             bool
}

func (m *Merger) mergeOnce(ii *intermediate.Individual) {
	small := ii.FindMinSizeSubtour()
	cities := m.citiesPool.Get()
	cities = append(cities, ii.SubtourCities(small)...)
	defer m.citiesPool.Put(cities)

	window := 10
	var best *candidate

	for {
		found := false
		for _, u := range cities {
			uSub := ii.SubtourOf(u)
			for k := range window {
				v, ok := m.Table.NearestNeighbor(u, k)
				if !ok {
					break
				}
				if ii.SubtourOf(v) == uSub {
					continue
				}
				found = true
				m.considerCity(ii, u, v, &best)
			}
		}
		if found || window >= m.Table.MaxNeighbors() {
			break
		}
		window *= 2
	}

	vSub := ii.SubtourOf(best.v)
	ii.SwapEdges(best.u, best.uPrime, best.v, best.vPrime)
	ii.MergeSubtour(small, int(vSub))
}

func (m *Merger) considerCity(ii *intermediate.Individual, u, v int32, best **candidate) {
	un0, un1 := ii.Working.Neighbors(u)
	vn0, vn1 := ii.Working.Neighbors(v)

	for _, uPrime := range [2]int32{un0, un1} {
		for _, vPrime := range [2]int32{vn0, vn1} {
			removed := m.Table.Weight(u, uPrime) + m.Table.Weight(v, vPrime)

			// Forward shape: new edges (u,v) and (u',v').
			fwdDelta := m.Table.Weight(u, v) + m.Table.Weight(uPrime, vPrime) - removed
			m.offer(best, candidate{u: u, uPrime: uPrime, v: v, vPrime: vPrime, delta: fwdDelta,
				refBonus: m.reintroducesRefEdge(u, v) || m.reintroducesRefEdge(uPrime, vPrime)})

			// Reverse shape: new edges (u,v') and (u',v).
			revDelta := m.Table.Weight(u, vPrime) + m.Table.Weight(uPrime, v) - removed
			m.offer(best, candidate{u: u, uPrime: uPrime, v: vPrime, vPrime: v, delta: revDelta,
				refBonus: m.reintroducesRefEdge(u, vPrime) || m.reintroducesRefEdge(uPrime, v)})
		}
	}
}

func (m *Merger) offer(best **candidate, c candidate) {
	if *best == nil {
		*best = &c
		return
	}
	cur := *best
	if c.delta < cur.delta {
		*best = &c
		return
	}
	if c.delta == cur.delta && c.refBonus && !cur.refBonus {
		*best = &c
	}
}

func (m *Merger) reintroducesRefEdge(a, b int32) bool {
	for _, p := range m.ReferenceParents {
		if p.HasEdge(a, b) {
			return true
		}
	}
	return false
}
