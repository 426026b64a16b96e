// ABOUTME: TSPLIB (.tsp) file loader producing the in-core distance matrix and NN table
// ABOUTME: Supports EUC_2D and ATT edge-weight types; NN rows computed in parallel via the worker pool

// Package tsplib parses the TSPLIB file format into an Instance the
// generational engine, merger, and crossover driver consume through the
// tour.WeightFunc / merger.NeighborTable surfaces.
package tsplib

import (
	"bufio"
	"fmt"
	"io"
	"math"
	"os"
	"sort"
	"strconv"
	"strings"

	"eax-ga/internal/errs"
	"eax-ga/pool"
)

// Instance is the loaded TSP: a name, its distance formula, and the derived
// weight matrix / nearest-neighbour table every core component reads from.
type Instance struct {
	Name         string
	DistanceType string
	N            int
	Coords       [][2]float64

	weights   []int64 // row-major n*n
	neighbors [][]int32
}

// Load reads and parses a TSPLIB file at path.
func Load(path string) (*Instance, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("%w: opening tsp file: %v", errs.ErrBadInput, err)
	}
	defer f.Close()
	return parse(f)
}

func parse(r io.Reader) (*Instance, error) {
	scanner := bufio.NewScanner(r)

	in := &Instance{DistanceType: "EUC_2D"}
	dimension := -1
	inCoords := false

	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" {
			continue
		}
		if line == "NODE_COORD_SECTION" {
			inCoords = true
			if dimension < 0 {
				return nil, fmt.Errorf("%w: NODE_COORD_SECTION before DIMENSION", errs.ErrBadInput)
			}
			in.Coords = make([][2]float64, dimension)
			continue
		}
		if line == "EOF" {
			break
		}

		if inCoords {
			if err := parseCoordLine(line, in.Coords); err != nil {
				return nil, err
			}
			continue
		}

		key, value, ok := splitHeaderLine(line)
		if !ok {
			continue
		}
		switch key {
		case "NAME":
			in.Name = value
		case "EDGE_WEIGHT_TYPE":
			in.DistanceType = value
		case "DIMENSION":
			n, err := strconv.Atoi(value)
			if err != nil || n <= 0 {
				return nil, fmt.Errorf("%w: invalid DIMENSION %q", errs.ErrBadInput, value)
			}
			dimension = n
		}
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("%w: reading tsp file: %v", errs.ErrBadInput, err)
	}
	if dimension < 0 {
		return nil, fmt.Errorf("%w: missing DIMENSION", errs.ErrBadInput)
	}
	if len(in.Coords) != dimension {
		return nil, fmt.Errorf("%w: missing NODE_COORD_SECTION", errs.ErrBadInput)
	}

	distance, err := distanceFunc(in.DistanceType)
	if err != nil {
		return nil, err
	}

	in.N = dimension
	in.buildWeights(distance)
	in.buildNeighbors()
	return in, nil
}

func splitHeaderLine(line string) (key, value string, ok bool) {
	sep := strings.IndexAny(line, ":")
	if sep < 0 {
		return "", "", false
	}
	key = strings.ToUpper(strings.TrimSpace(line[:sep]))
	value = strings.TrimSpace(line[sep+1:])
	return key, value, true
}

func parseCoordLine(line string, coords [][2]float64) error {
	fields := strings.Fields(line)
	if len(fields) < 3 {
		return fmt.Errorf("%w: malformed NODE_COORD_SECTION line %q", errs.ErrBadInput, line)
	}
	idx, err := strconv.Atoi(fields[0])
	if err != nil {
		return fmt.Errorf("%w: malformed node index in %q", errs.ErrBadInput, line)
	}
	x, errX := strconv.ParseFloat(fields[1], 64)
	y, errY := strconv.ParseFloat(fields[2], 64)
	if errX != nil || errY != nil {
		return fmt.Errorf("%w: malformed coordinates in %q", errs.ErrBadInput, line)
	}
	pos := idx - 1
	if pos < 0 || pos >= len(coords) {
		return fmt.Errorf("%w: node index %d out of range [1,%d]", errs.ErrBadInput, idx, len(coords))
	}
	coords[pos] = [2]float64{x, y}
	return nil
}

// distanceFunc returns the weight formula for a TSPLIB EDGE_WEIGHT_TYPE.
func distanceFunc(kind string) (func(p, q [2]float64) int64, error) {
	switch kind {
	case "EUC_2D":
		return euc2D, nil
	case "ATT":
		return att, nil
	default:
		return nil, fmt.Errorf("%w: unsupported EDGE_WEIGHT_TYPE %q", errs.ErrBadInput, kind)
	}
}

func euc2D(p, q [2]float64) int64 {
	dx, dy := p[0]-q[0], p[1]-q[1]
	return int64(math.Round(math.Sqrt(dx*dx + dy*dy)))
}

func att(p, q [2]float64) int64 {
	dx, dy := p[0]-q[0], p[1]-q[1]
	r := math.Sqrt((dx*dx + dy*dy) / 10)
	t := math.Floor(r + 0.5)
	if t < r {
		return int64(t) + 1
	}
	return int64(t)
}

func (in *Instance) buildWeights(distance func(p, q [2]float64) int64) {
	n := in.N
	in.weights = make([]int64, n*n)
	for i := 0; i < n; i++ {
		for j := i + 1; j < n; j++ {
			w := distance(in.Coords[i], in.Coords[j])
			in.weights[i*n+j] = w
			in.weights[j*n+i] = w
		}
	}
}

// buildNeighbors computes each city's ascending-by-weight neighbour list,
// truncated to max(ceil(n/5), 10) entries, one worker-pool task per city.
func (in *Instance) buildNeighbors() {
	n := in.N
	rowLen := n / 5
	if n%5 != 0 {
		rowLen++
	}
	if rowLen < 10 {
		rowLen = 10
	}
	if rowLen > n-1 {
		rowLen = n - 1
	}

	in.neighbors = make([][]int32, n)
	wp := pool.NewWorkerPool(n)
	for v := range n {
		v := v
		wp.Submit(func() {
			in.neighbors[v] = in.nearestRow(v, rowLen)
		})
	}
	wp.Wait()
	wp.Close()
}

func (in *Instance) nearestRow(v, rowLen int) []int32 {
	n := in.N
	type cand struct {
		c int32
		w int64
	}
	cands := make([]cand, 0, n-1)
	for u := 0; u < n; u++ {
		if u == v {
			continue
		}
		cands = append(cands, cand{int32(u), in.Weight(int32(v), int32(u))})
	}
	sort.Slice(cands, func(i, j int) bool {
		if cands[i].w != cands[j].w {
			return cands[i].w < cands[j].w
		}
		return cands[i].c < cands[j].c
	})
	if len(cands) > rowLen {
		cands = cands[:rowLen]
	}
	row := make([]int32, len(cands))
	for i, c := range cands {
		row[i] = c.c
	}
	return row
}

// Weight returns the edge weight between two cities, satisfying
// tour.WeightFunc and merger.NeighborTable.
func (in *Instance) Weight(a, b int32) int64 {
	return in.weights[int(a)*in.N+int(b)]
}

// NearestNeighbor returns the k-th (0-indexed) nearest neighbour of city.
func (in *Instance) NearestNeighbor(city int32, k int) (int32, bool) {
	row := in.neighbors[city]
	if k >= len(row) {
		return 0, false
	}
	return row[k], true
}

// MaxNeighbors returns the per-city NN row length every city shares.
func (in *Instance) MaxNeighbors() int {
	if in.N == 0 {
		return 0
	}
	return len(in.neighbors[0])
}
