// ABOUTME: Crossover delta: an ordered, reversible edge-modification log
// ABOUTME: Apply/revert against a Tour plus cheap delta-distance and checksum helpers

package tour

import "math/bits"

// Modification records "at vertex V1, the neighbour that was V2 is replaced
// by NewV2". A delta is a balanced sequence of these: an edge swap (u,u')
// with (v,v') contributes four modifications, two endpoints times two
// directions.
type Modification struct {
	V1, V2, NewV2 int32
}

// Delta is an ordered modification list that transforms one tour into
// another. It carries the base tour's checksum (for BaseMismatch detection)
// and the precomputed length change.
type Delta struct {
	BaseChecksum  uint64
	Mods          []Modification
	DeltaDistance int64
}

// Apply performs every modification against t in order. t must be the tour
// the delta was built against (matching checksum); otherwise ErrBaseMismatch
// is returned and t is left unmodified.
func Apply(t *Tour, d *Delta) error {
	if t.Checksum != d.BaseChecksum {
		return ErrBaseMismatch
	}
	for i, m := range d.Mods {
		if !t.set(m.V1, m.V2, m.NewV2) {
			// Roll back the partial application before reporting failure.
			for j := i - 1; j >= 0; j-- {
				rm := d.Mods[j]
				t.set(rm.V1, rm.NewV2, rm.V2)
			}
			return ErrBaseMismatch
		}
	}
	return nil
}

// Revert undoes Apply by walking the modification log backwards and
// performing the inverse replacement at each step.
func Revert(t *Tour, d *Delta) {
	for i := len(d.Mods) - 1; i >= 0; i-- {
		m := d.Mods[i]
		t.set(m.V1, m.NewV2, m.V2)
	}
}

// ComputeDeltaDistance sums w(v1,new_v2) - w(v1,v2) over every modification
// and divides by two, since each undirected edge change is counted from both
// of its endpoints.
func ComputeDeltaDistance(mods []Modification, weight WeightFunc) int64 {
	var sum int64
	for _, m := range mods {
		sum += weight(m.V1, m.NewV2) - weight(m.V1, m.V2)
	}
	return sum / 2
}

// Checksum constants for the cheap delta-identity mix (SplitMix64-style
// finalizer), folding the first, middle, and last modification of the log.
const (
	mixConst1 = 0x9e3779b97f4a7c15
	mixConst2 = 0xbf58476d1ce4e5b9
	mixConst3 = 0x94d049bb133111eb
)

func hashMod(m Modification) uint64 {
	h := uint64(m.V1)<<42 ^ uint64(m.V2)<<21 ^ uint64(m.NewV2)
	h ^= h >> 33
	h *= mixConst1
	h ^= h >> 29
	h *= mixConst2
	h ^= h >> 32
	return h
}

// ChecksumOf folds the first, middle, and last modification into a single
// 64-bit value cheap enough to compare before resorting to a full slice
// comparison. Empty deltas hash to mixConst3.
func ChecksumOf(mods []Modification) uint64 {
	if len(mods) == 0 {
		return mixConst3
	}
	first := hashMod(mods[0])
	mid := hashMod(mods[len(mods)/2])
	last := hashMod(mods[len(mods)-1])
	return first ^ bits.RotateLeft64(mid, 19) ^ bits.RotateLeft64(last, 41)
}
