// ABOUTME: Rand E-set assembler: each AB-cycle independently included with probability 1/2

package eset

import (
	"math/rand/v2"

	"eax-ga/internal/abcycle"
)

type randAssembler struct {
	cycles []abcycle.Cycle
	nchild int
	drawn  int
}

func newRand(cycles []abcycle.Cycle, nchild int) *randAssembler {
	return &randAssembler{cycles: cycles, nchild: nchild}
}

func (r *randAssembler) HasNext() bool {
	return len(r.cycles) > 0 && r.drawn < r.nchild
}

func (r *randAssembler) Next(rng *rand.Rand) []int {
	r.drawn++
	var sel []int
	for i := range r.cycles {
		if rng.Float64() < 0.5 {
			sel = append(sel, i)
		}
	}
	return sel
}
