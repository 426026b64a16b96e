// ABOUTME: Round-trip tests for the checkpoint textual layout

package checkpoint

import (
	"bytes"
	"errors"
	"os"
	"path/filepath"
	"reflect"
	"testing"

	"eax-ga/internal/errs"
)

func readFile(path string) ([]byte, error) {
	return os.ReadFile(path)
}

func writeFile(path string, data []byte) error {
	return os.WriteFile(path, data, 0644)
}

func padLines(data []byte) []byte {
	lines := bytes.Split(data, []byte("\n"))
	for i, line := range lines {
		if len(line) > 0 {
			lines[i] = append(line, []byte("   ")...)
		}
	}
	return bytes.Join(lines, []byte("\n"))
}

func sampleCheckpoint() Checkpoint {
	return Checkpoint{
		TSPName:        "square",
		PopulationSize: 4,
		NumChildren:    2,
		SelectionType:  "Ent",
		RandomSeed:     12345,
		EAXType:        "EAX_Rand",
		EdgeCounts: [][]int32{
			{0, 4, 1, 3},
			{4, 0, 2, 0},
			{1, 2, 0, 1},
			{3, 0, 1, 0},
		},
		RNGState:                       []byte{0x01, 0x02, 0xff, 0x00, 0x7e},
		BestLength:                     9999,
		GenerationOfReachedBest:        42,
		StagnationGenerations:          7,
		GenerationOfTransitionToStage2: 0,
		GDividedBy10:                   3,
		CurrentGeneration:              50,
		FinalGeneration:                0,
		Stage:                          "Stage1",
		ElapsedTime:                    12.5,
		Population: [][]int32{
			{0, 1, 2, 3},
			{0, 2, 1, 3},
		},
	}
}

func TestSaveLoadRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "checkpoint.txt")
	want := sampleCheckpoint()

	if err := Save(path, want); err != nil {
		t.Fatalf("Save failed: %v", err)
	}

	got, err := Load(path)
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}

	if !reflect.DeepEqual(got, want) {
		t.Fatalf("round trip mismatch:\n got: %+v\nwant: %+v", got, want)
	}
}

func TestLoadToleratesTrailingWhitespace(t *testing.T) {
	path := filepath.Join(t.TempDir(), "checkpoint.txt")
	want := sampleCheckpoint()
	if err := Save(path, want); err != nil {
		t.Fatalf("Save failed: %v", err)
	}

	data, err := readFile(path)
	if err != nil {
		t.Fatalf("readFile failed: %v", err)
	}
	// Re-save with trailing spaces appended to every line.
	padded := padLines(data)
	if err := writeFile(path, padded); err != nil {
		t.Fatalf("writeFile failed: %v", err)
	}

	got, err := Load(path)
	if err != nil {
		t.Fatalf("Load failed on padded file: %v", err)
	}
	if !reflect.DeepEqual(got, want) {
		t.Fatalf("padded round trip mismatch:\n got: %+v\nwant: %+v", got, want)
	}
}

func TestLoadMissingFileIsBadInput(t *testing.T) {
	_, err := Load("/nonexistent/path/checkpoint.txt")
	if !errors.Is(err, errs.ErrBadInput) {
		t.Fatalf("expected a BadInput error, got %v", err)
	}
}

func TestLoadMalformedIntegerIsBadInput(t *testing.T) {
	path := filepath.Join(t.TempDir(), "checkpoint.txt")
	content := "# Environment\n## TSP\nname=x\n## Other Parameters\npopulation_size=2\n" +
		"num_children=1\nselection_type=Greedy\nrandom_seed=1\neax_type=EAX_Rand\n" +
		"# GA State\n## Population Edge Counts\n0 not-a-number\n1 0\n" +
		"## Random Generator State\nAA==\n## Other State Variables\nbest_length=1\n" +
		"generation_of_reached_best=0\nstagnation_generations=0\n" +
		"generation_of_transition_to_stage2=0\nG_devided_by_10=0\ncurrent_generation=0\n" +
		"final_generation=0\nstage=Stage1\nelapsed_time=0\n# Population\n0 1\n"
	if err := writeFile(path, []byte(content)); err != nil {
		t.Fatalf("writeFile failed: %v", err)
	}

	_, err := Load(path)
	if !errors.Is(err, errs.ErrBadInput) {
		t.Fatalf("expected a BadInput error, got %v", err)
	}
}
