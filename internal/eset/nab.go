// ABOUTME: N-AB E-set assembler: shuffle once, deal consecutive groups of N, reshuffle on exhaustion

package eset

import (
	"math/rand/v2"

	"eax-ga/internal/abcycle"
)

type nabAssembler struct {
	n      int
	nchild int
	drawn  int
	order  []int
	pos    int
}

func newNAB(cycles []abcycle.Cycle, n, nchild int, rng *rand.Rand) *nabAssembler {
	if n < 1 {
		n = 1
	}
	order := make([]int, len(cycles))
	for i := range order {
		order[i] = i
	}
	rng.Shuffle(len(order), func(i, j int) { order[i], order[j] = order[j], order[i] })
	return &nabAssembler{n: n, nchild: nchild, order: order}
}

func (a *nabAssembler) HasNext() bool {
	if len(a.order) == 0 || a.drawn >= a.nchild {
		return false
	}
	if a.pos+a.n <= len(a.order) {
		return true
	}
	// Only worth reshuffling when N>1 and there is still a full group's
	// worth of cycles overall; otherwise the pool is permanently exhausted.
	return a.n > 1 && len(a.order) >= a.n
}

func (a *nabAssembler) Next(rng *rand.Rand) []int {
	if a.pos+a.n > len(a.order) {
		rng.Shuffle(len(a.order), func(i, j int) { a.order[i], a.order[j] = a.order[j], a.order[i] })
		a.pos = 0
	}
	group := a.order[a.pos : a.pos+a.n]
	a.pos += a.n
	a.drawn++
	out := make([]int, len(group))
	copy(out, group)
	return out
}
