// ABOUTME: Checkpoint save/restore in the line-oriented textual layout
// ABOUTME: Section markers (not pre-declared counts) delimit the edge-count matrix and population lines

// Package checkpoint saves and restores the line-oriented, human-readable
// checkpoint format: enough of a generational engine's state (plus the
// population itself) to resume a run byte-for-bit identically.
package checkpoint

import (
	"bufio"
	"encoding/base64"
	"fmt"
	"os"
	"strconv"
	"strings"

	"eax-ga/internal/errs"
)

// Checkpoint is the full round-trippable state this package persists.
type Checkpoint struct {
	TSPName        string
	PopulationSize int
	NumChildren    int
	SelectionType  string
	RandomSeed     uint64
	EAXType        string

	EdgeCounts [][]int32 // n*n, row-major by city
	RNGState   []byte    // marshaled PRNG source state

	BestLength                     int64
	GenerationOfReachedBest        int
	StagnationGenerations          int
	GenerationOfTransitionToStage2 int
	GDividedBy10                   int
	CurrentGeneration              int
	FinalGeneration                int
	Stage                          string // Stage1|Stage2
	ElapsedTime                    float64

	Population [][]int32 // one row per individual: its canonical city order
}

// Save writes cp to path in the checkpoint file's textual layout.
func Save(path string, cp Checkpoint) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("%w: creating checkpoint file: %v", errs.ErrBadInput, err)
	}
	defer f.Close()

	w := bufio.NewWriter(f)

	fmt.Fprintln(w, "# Environment")
	fmt.Fprintln(w, "## TSP")
	fmt.Fprintf(w, "name=%s\n", cp.TSPName)
	fmt.Fprintln(w, "## Other Parameters")
	fmt.Fprintf(w, "population_size=%d\n", cp.PopulationSize)
	fmt.Fprintf(w, "num_children=%d\n", cp.NumChildren)
	fmt.Fprintf(w, "selection_type=%s\n", cp.SelectionType)
	fmt.Fprintf(w, "random_seed=%d\n", cp.RandomSeed)
	fmt.Fprintf(w, "eax_type=%s\n", cp.EAXType)

	fmt.Fprintln(w, "# GA State")
	fmt.Fprintln(w, "## Population Edge Counts")
	for _, row := range cp.EdgeCounts {
		writeIntRow(w, row)
	}

	fmt.Fprintln(w, "## Random Generator State")
	fmt.Fprintln(w, base64.StdEncoding.EncodeToString(cp.RNGState))

	fmt.Fprintln(w, "## Other State Variables")
	fmt.Fprintf(w, "best_length=%d\n", cp.BestLength)
	fmt.Fprintf(w, "generation_of_reached_best=%d\n", cp.GenerationOfReachedBest)
	fmt.Fprintf(w, "stagnation_generations=%d\n", cp.StagnationGenerations)
	fmt.Fprintf(w, "generation_of_transition_to_stage2=%d\n", cp.GenerationOfTransitionToStage2)
	fmt.Fprintf(w, "G_devided_by_10=%d\n", cp.GDividedBy10)
	fmt.Fprintf(w, "current_generation=%d\n", cp.CurrentGeneration)
	fmt.Fprintf(w, "final_generation=%d\n", cp.FinalGeneration)
	fmt.Fprintf(w, "stage=%s\n", cp.Stage)
	fmt.Fprintf(w, "elapsed_time=%g\n", cp.ElapsedTime)

	fmt.Fprintln(w, "# Population")
	for _, ind := range cp.Population {
		writeIntRow(w, ind)
	}

	return w.Flush()
}

func writeIntRow(w *bufio.Writer, row []int32) {
	parts := make([]string, len(row))
	for i, v := range row {
		parts[i] = strconv.Itoa(int(v))
	}
	fmt.Fprintln(w, strings.Join(parts, " "))
}

// section tags the part of the file the scanner is currently inside.
type section int

const (
	secNone section = iota
	secEdgeCounts
	secRNGState
	secPopulation
)

// Load parses a checkpoint file, tolerant of trailing whitespace on any
// line. Section markers, not pre-declared row counts, delimit the edge-count
// matrix and the population block.
func Load(path string) (Checkpoint, error) {
	f, err := os.Open(path)
	if err != nil {
		return Checkpoint{}, fmt.Errorf("%w: opening checkpoint file: %v", errs.ErrBadInput, err)
	}
	defer f.Close()

	var cp Checkpoint
	cur := secNone

	scanner := bufio.NewScanner(f)
	for scanner.Scan() {
		line := strings.TrimRight(scanner.Text(), " \t\r")
		trimmed := strings.TrimSpace(line)
		if trimmed == "" {
			continue
		}

		switch trimmed {
		case "# Environment", "## TSP", "## Other Parameters", "# GA State", "## Other State Variables":
			cur = secNone
			continue
		case "## Population Edge Counts":
			cur = secEdgeCounts
			continue
		case "## Random Generator State":
			cur = secRNGState
			continue
		case "# Population":
			cur = secPopulation
			continue
		}

		switch cur {
		case secEdgeCounts:
			row, err := parseIntRow(trimmed)
			if err != nil {
				return Checkpoint{}, err
			}
			cp.EdgeCounts = append(cp.EdgeCounts, row)
		case secRNGState:
			state, err := base64.StdEncoding.DecodeString(trimmed)
			if err != nil {
				return Checkpoint{}, fmt.Errorf("%w: malformed RNG state: %v", errs.ErrBadInput, err)
			}
			cp.RNGState = state
		case secPopulation:
			row, err := parseIntRow(trimmed)
			if err != nil {
				return Checkpoint{}, err
			}
			cp.Population = append(cp.Population, row)
		default:
			if err := assignField(&cp, trimmed); err != nil {
				return Checkpoint{}, err
			}
		}
	}
	if err := scanner.Err(); err != nil {
		return Checkpoint{}, fmt.Errorf("%w: reading checkpoint file: %v", errs.ErrBadInput, err)
	}
	return cp, nil
}

func parseIntRow(line string) ([]int32, error) {
	fields := strings.Fields(line)
	row := make([]int32, len(fields))
	for i, f := range fields {
		v, err := strconv.Atoi(f)
		if err != nil {
			return nil, fmt.Errorf("%w: malformed integer %q in checkpoint row", errs.ErrBadInput, f)
		}
		row[i] = int32(v)
	}
	return row, nil
}

func assignField(cp *Checkpoint, line string) error {
	key, value, ok := strings.Cut(line, "=")
	if !ok {
		return nil
	}
	var err error
	switch key {
	case "name":
		cp.TSPName = value
	case "population_size":
		cp.PopulationSize, err = strconv.Atoi(value)
	case "num_children":
		cp.NumChildren, err = strconv.Atoi(value)
	case "selection_type":
		cp.SelectionType = value
	case "random_seed":
		var seed uint64
		seed, err = strconv.ParseUint(value, 10, 64)
		cp.RandomSeed = seed
	case "eax_type":
		cp.EAXType = value
	case "best_length":
		var v int64
		v, err = strconv.ParseInt(value, 10, 64)
		cp.BestLength = v
	case "generation_of_reached_best":
		cp.GenerationOfReachedBest, err = strconv.Atoi(value)
	case "stagnation_generations":
		cp.StagnationGenerations, err = strconv.Atoi(value)
	case "generation_of_transition_to_stage2":
		cp.GenerationOfTransitionToStage2, err = strconv.Atoi(value)
	case "G_devided_by_10":
		cp.GDividedBy10, err = strconv.Atoi(value)
	case "current_generation":
		cp.CurrentGeneration, err = strconv.Atoi(value)
	case "final_generation":
		cp.FinalGeneration, err = strconv.Atoi(value)
	case "stage":
		cp.Stage = value
	case "elapsed_time":
		var v float64
		v, err = strconv.ParseFloat(value, 64)
		cp.ElapsedTime = v
	}
	if err != nil {
		return fmt.Errorf("%w: malformed value for %s: %v", errs.ErrBadInput, key, err)
	}
	return nil
}
