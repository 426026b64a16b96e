// ABOUTME: Compact per-vertex sparse edge counter: linear search, swap-to-last removal
// ABOUTME: Amortised O(1) mutation on the common case of small TSP-geometry degree

package histogram

import "eax-ga/internal/tour"

// Compact stores, per vertex, parallel slices of (neighbour, count). Search
// is linear but cheap in practice because a city's live directed-neighbour
// degree across a TSP population stays small.
type Compact struct {
	neighbors [][]int32
	counts    [][]int32
	unique    int64
}

// NewCompact allocates an empty per-vertex compact edge counter for n
// cities.
func NewCompact(n int) *Compact {
	return &Compact{
		neighbors: make([][]int32, n),
		counts:    make([][]int32, n),
	}
}

func (c *Compact) find(v1, v2 int32) int {
	row := c.neighbors[v1]
	for i, n := range row {
		if n == v2 {
			return i
		}
	}
	return -1
}

func (c *Compact) Increment(v1, v2 int32) {
	if i := c.find(v1, v2); i >= 0 {
		c.counts[v1][i]++
		return
	}
	c.neighbors[v1] = append(c.neighbors[v1], v2)
	c.counts[v1] = append(c.counts[v1], 1)
	c.unique++
}

func (c *Compact) Decrement(v1, v2 int32) error {
	i := c.find(v1, v2)
	if i < 0 || c.counts[v1][i] == 0 {
		return ErrCounterUnderflow
	}
	c.counts[v1][i]--
	if c.counts[v1][i] == 0 {
		last := len(c.neighbors[v1]) - 1
		c.neighbors[v1][i] = c.neighbors[v1][last]
		c.counts[v1][i] = c.counts[v1][last]
		c.neighbors[v1] = c.neighbors[v1][:last]
		c.counts[v1] = c.counts[v1][:last]
		c.unique--
	}
	return nil
}

func (c *Compact) Get(v1, v2 int32) int32 {
	if i := c.find(v1, v2); i >= 0 {
		return c.counts[v1][i]
	}
	return 0
}

func (c *Compact) ConnectedOf(v int32) []int32 {
	out := make([]int32, len(c.neighbors[v]))
	copy(out, c.neighbors[v])
	return out
}

func (c *Compact) UniqueDirectedEdgeCount() int64 { return c.unique }

func (c *Compact) Entropy(populationSize int) float64 {
	return entropyFromCounts(func(yield func(int32)) {
		for _, row := range c.counts {
			for _, cnt := range row {
				yield(cnt)
			}
		}
	}, populationSize)
}

func (c *Compact) ApplyDelta(mods []tour.Modification) error {
	for _, m := range mods {
		if err := c.Decrement(m.V1, m.V2); err != nil {
			return err
		}
		c.Increment(m.V1, m.NewV2)
	}
	return nil
}
