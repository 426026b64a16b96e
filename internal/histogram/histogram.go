// ABOUTME: Edge-frequency histogram behavioural contract shared by Dense and Compact policies
// ABOUTME: Maps each directed city pair to its occurrence count across the population

// Package histogram tracks, for every directed city pair (v1,v2), how many
// tours in the population currently record v2 as a neighbour of v1. It is
// consulted by the Entropy and Distance-Preserving evaluators and updated
// incrementally as accepted deltas are applied to the population.
package histogram

import (
	"errors"
	"math"

	"eax-ga/internal/tour"
)

// ErrCounterUnderflow is returned when Decrement is called on a pair whose
// count is already zero; it indicates the caller's population edge counts
// have become corrupted and is treated as fatal by callers.
var ErrCounterUnderflow = errors.New("eax-ga: edge counter underflow")

// EdgeCounter is the one behavioural interface both the Dense and Compact
// implementations satisfy. Evaluators must not depend on which is in use.
type EdgeCounter interface {
	Increment(v1, v2 int32)
	Decrement(v1, v2 int32) error
	Get(v1, v2 int32) int32
	ConnectedOf(v int32) []int32
	UniqueDirectedEdgeCount() int64
	Entropy(populationSize int) float64

	// ApplyDelta mirrors histogram.apply_delta: decrement(v1,v2) then
	// increment(v1,new_v2), per modification, in order.
	ApplyDelta(mods []tour.Modification) error
}

// entropyFromCounts computes Shannon entropy in bits over the given non-zero
// directed-edge counts, each normalised by populationSize.
func entropyFromCounts(counts iterFunc, populationSize int) float64 {
	var h float64
	p := float64(populationSize)
	counts(func(count int32) {
		if count <= 0 {
			return
		}
		freq := float64(count) / p
		h -= freq * math.Log2(freq)
	})
	return h
}

// iterFunc calls its argument once per count in the histogram; zero counts
// may be included.
type iterFunc func(yield func(count int32))
