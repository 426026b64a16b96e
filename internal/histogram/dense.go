// ABOUTME: Dense n*n edge-count matrix: O(1) mutation, O(n^2) entropy recompute

package histogram

import "eax-ga/internal/tour"

// Dense stores one int32 count per ordered city pair. Appropriate when n is
// small enough that an n*n matrix is cheap relative to population size.
type Dense struct {
	n      int
	counts []int32 // row-major, n*n
	unique int64
}

// NewDense allocates a zeroed n*n dense edge counter.
func NewDense(n int) *Dense {
	return &Dense{n: n, counts: make([]int32, n*n)}
}

func (d *Dense) idx(v1, v2 int32) int { return int(v1)*d.n + int(v2) }

func (d *Dense) Increment(v1, v2 int32) {
	i := d.idx(v1, v2)
	if d.counts[i] == 0 {
		d.unique++
	}
	d.counts[i]++
}

func (d *Dense) Decrement(v1, v2 int32) error {
	i := d.idx(v1, v2)
	if d.counts[i] == 0 {
		return ErrCounterUnderflow
	}
	d.counts[i]--
	if d.counts[i] == 0 {
		d.unique--
	}
	return nil
}

func (d *Dense) Get(v1, v2 int32) int32 {
	return d.counts[d.idx(v1, v2)]
}

func (d *Dense) ConnectedOf(v int32) []int32 {
	var out []int32
	base := int(v) * d.n
	for j := range d.n {
		if d.counts[base+j] > 0 {
			out = append(out, int32(j))
		}
	}
	return out
}

func (d *Dense) UniqueDirectedEdgeCount() int64 { return d.unique }

func (d *Dense) Entropy(populationSize int) float64 {
	return entropyFromCounts(func(yield func(int32)) {
		for _, c := range d.counts {
			yield(c)
		}
	}, populationSize)
}

func (d *Dense) ApplyDelta(mods []tour.Modification) error {
	for _, m := range mods {
		if err := d.Decrement(m.V1, m.V2); err != nil {
			return err
		}
		d.Increment(m.V1, m.NewV2)
	}
	return nil
}
