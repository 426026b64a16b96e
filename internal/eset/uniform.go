// ABOUTME: Uniform / half-uniform E-set assembler: shuffle, take a uniform-length random prefix

package eset

import (
	"math/rand/v2"

	"eax-ga/internal/abcycle"
)

type uniformAssembler struct {
	n      int
	nchild int
	drawn  int
	half   bool
}

func newUniform(cycles []abcycle.Cycle, nchild int, half bool) *uniformAssembler {
	return &uniformAssembler{n: len(cycles), nchild: nchild, half: half}
}

func (u *uniformAssembler) HasNext() bool {
	return u.n > 0 && u.drawn < u.nchild
}

func (u *uniformAssembler) Next(rng *rand.Rand) []int {
	u.drawn++
	order := make([]int, u.n)
	for i := range order {
		order[i] = i
	}
	rng.Shuffle(len(order), func(i, j int) { order[i], order[j] = order[j], order[i] })

	maxLen := u.n
	if u.half {
		maxLen = (u.n + 1) / 2
	}
	k := 1 + rng.IntN(maxLen)
	return order[:k]
}
