// ABOUTME: Block2 E-set assembler: per-center seed plus tabu local search over C-vertex count
// ABOUTME: One E-set per AB-cycle, centers visited largest-first as in the reference driver

package eset

import (
	"math/rand/v2"
	"slices"

	"eax-ga/internal/abcycle"
)

// block2Assembler precomputes, once per AB-cycle list, which one or two
// cycles each vertex belongs to, and from that the per-cycle "C-vertex"
// boundary metric the tabu search minimises.
//
// Ported from block2_e_set_assembler.cpp's preprocessing and tabu search,
// including its aspiration criterion (a tabu move is still eligible when it
// would beat the best boundary found so far).
type block2Assembler struct {
	cycles      []abcycle.Cycle
	centers     []int // cycle indices, largest-first
	centerIdx   int
	vertexCycle [][]int // up to 2 cycle indices per vertex
	sharesWith  [][]int // per cycle, the other cycle indices sharing >=1 vertex
}

func newBlock2(cycles []abcycle.Cycle, nchild int) *block2Assembler {
	b := &block2Assembler{cycles: cycles}
	if len(cycles) == 0 {
		return b
	}

	maxCity := int32(0)
	for _, c := range cycles {
		for _, v := range c.Cities {
			if v > maxCity {
				maxCity = v
			}
		}
	}
	b.vertexCycle = make([][]int, maxCity+1)
	for ci, c := range cycles {
		for _, v := range c.Cities {
			if !slices.Contains(b.vertexCycle[v], ci) {
				b.vertexCycle[v] = append(b.vertexCycle[v], ci)
			}
		}
	}

	b.sharesWith = make([][]int, len(cycles))
	shareSet := make([]map[int]bool, len(cycles))
	for i := range shareSet {
		shareSet[i] = make(map[int]bool)
	}
	for _, cs := range b.vertexCycle {
		if len(cs) < 2 {
			continue
		}
		for i := range cs {
			for j := range cs {
				if i != j {
					shareSet[cs[i]][cs[j]] = true
				}
			}
		}
	}
	for i, set := range shareSet {
		for j := range set {
			b.sharesWith[i] = append(b.sharesWith[i], j)
		}
	}

	b.centers = make([]int, len(cycles))
	for i := range b.centers {
		b.centers[i] = i
	}
	slices.SortFunc(b.centers, func(x, y int) int {
		return len(cycles[y].Cities) - len(cycles[x].Cities)
	})
	if nchild > 0 && nchild < len(b.centers) {
		b.centers = b.centers[:nchild]
	}
	return b
}

func (b *block2Assembler) HasNext() bool {
	return b.centerIdx < len(b.centers)
}

// boundary counts vertices whose two incident cycles differ and whose
// membership in `in` disagrees between the two — the E-set's exposed
// boundary, which the tabu search minimises.
func (b *block2Assembler) boundary(in map[int]bool) int {
	count := 0
	for _, cs := range b.vertexCycle {
		if len(cs) < 2 {
			continue
		}
		if in[cs[0]] != in[cs[1]] {
			count++
		}
	}
	return count
}

// Next runs one tabu local search descent from center, mirroring
// block2_e_set_assembler.cpp's main loop: scan every cycle index in order,
// pick the minimizing move, and admit a tabu move anyway when it beats the
// best boundary seen so far (the aspiration criterion). Scanning cycle
// indices 0..n-1 in a fixed order rather than ranging over the `in`/`tabu`
// maps keeps the tie-break ("first candidate found wins") reproducible
// across runs with the same seed.
func (b *block2Assembler) Next(rng *rand.Rand) []int {
	center := b.centers[b.centerIdx]
	b.centerIdx++

	in := map[int]bool{center: true}
	for _, j := range b.sharesWith[center] {
		if len(b.cycles[j].Cities) < len(b.cycles[center].Cities) {
			if rng.Float64() < 0.5 {
				in[j] = true
			}
		}
	}

	tabu := make(map[int]int)
	best := b.boundary(in)
	bestIn := cloneSet(in)
	sinceImprovement := 0
	n := len(b.cycles)

	for sinceImprovement < 20 {
		type move struct {
			cycle    int
			add      bool
			boundary int
		}
		var bestMove move
		found := false

		for j := 0; j < n; j++ {
			isTabu := tabu[j] > 0

			if !in[j] {
				if !sharesESet(b.sharesWith[j], in) {
					continue
				}
				trial := cloneSet(in)
				trial[j] = true
				boundary := b.boundary(trial)
				if (boundary < best || !isTabu) && (!found || boundary < bestMove.boundary) {
					bestMove = move{cycle: j, add: true, boundary: boundary}
					found = true
				}
			} else if j != center {
				trial := cloneSet(in)
				delete(trial, j)
				boundary := b.boundary(trial)
				if (boundary < best || !isTabu) && (!found || boundary < bestMove.boundary) {
					bestMove = move{cycle: j, add: false, boundary: boundary}
					found = true
				}
			}
		}

		if !found {
			break
		}

		if bestMove.add {
			in[bestMove.cycle] = true
		} else {
			delete(in, bestMove.cycle)
		}
		tabu[bestMove.cycle] = 1 + rng.IntN(10)
		for k := range tabu {
			if tabu[k] > 0 {
				tabu[k]--
			}
		}

		if bestMove.boundary < best {
			best = bestMove.boundary
			bestIn = cloneSet(in)
			sinceImprovement = 0
		} else {
			sinceImprovement++
		}
	}

	out := make([]int, 0, len(bestIn))
	for j := range bestIn {
		out = append(out, j)
	}
	slices.Sort(out)
	return out
}

// sharesESet reports whether any cycle in shares is currently in the E-set.
func sharesESet(shares []int, in map[int]bool) bool {
	for _, k := range shares {
		if in[k] {
			return true
		}
	}
	return false
}

func cloneSet(in map[int]bool) map[int]bool {
	out := make(map[int]bool, len(in))
	for k, v := range in {
		out[k] = v
	}
	return out
}
