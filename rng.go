// ABOUTME: PRNG state (de)serialization for checkpoint save/restore
// ABOUTME: Wraps math/rand/v2's PCG binary marshaling behind the checkpoint's opaque []byte field

package main

import (
	"fmt"
	"math/rand/v2"

	"eax-ga/internal/crossover"
)

// marshalRNG captures a PCG source's internal state for the checkpoint's
// "Random Generator State" line.
func marshalRNG(source *rand.PCG) ([]byte, error) {
	return source.MarshalBinary()
}

// restoreRNG reconstructs a PRNG source from a checkpoint: seed initialises
// a fresh PCG, then state (if present) overwrites it with the exact saved
// position.
func restoreRNG(seed uint64, state []byte) (*rand.PCG, error) {
	source := rand.NewPCG(seed, seed)
	if len(state) == 0 {
		return source, nil
	}
	if err := source.UnmarshalBinary(state); err != nil {
		return nil, fmt.Errorf("restoring RNG state: %w", err)
	}
	return source, nil
}

// newTabuFromCheckpoint builds an empty tabu list for a restored member.
// The checkpoint format does not persist per-member tabu state, only
// population edge counts and PRNG state; a resumed tabu-variant run starts
// each member's forbidden-edge set empty rather than reject resume entirely.
func newTabuFromCheckpoint() *crossover.TabuList {
	return crossover.NewTabuList()
}
