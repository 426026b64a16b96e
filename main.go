// ABOUTME: Entry point for eax-ga
// ABOUTME: Handles command-line parsing, profiling, and routing to CLI or TUI modes

// Package main provides the entry point for eax-ga, a symmetric TSP solver
// whose sole crossover operator is Edge Assembly Crossover.
package main

import (
	"flag"
	"fmt"
	"log"
	"os"
	"runtime"
	"runtime/pprof"
	"time"

	"eax-ga/config"
	"eax-ga/internal/errs"
	"eax-ga/tui"
)

func main() {
	os.Exit(run())
}

func run() int {
	fs := flag.NewFlagSet("eax-ga", flag.ContinueOnError)

	file := fs.String("file", "", "TSPLIB instance file (required)")
	ps := fs.Int("ps", 0, "population size (default from config)")
	children := fs.Int("children", 0, "children per crossover (default from config)")
	trials := fs.Int("trials", 1, "number of independent trials")
	seed := fs.Uint64("seed", 0, "PRNG seed (0 means 1; a resumed checkpoint uses its own random_seed)")
	selection := fs.String("selection", "", "selection type: Greedy|Ent|DistancePreserving (default from config)")
	eaxType := fs.String("eax-type", "", "EAX variant: EAX_Rand|Block2|EAX_<N>_AB (default from config)")
	output := fs.String("output", "", "append result rows to this Markdown file")
	timeout := fs.Duration("timeout", 0, "wall-clock deadline per trial (default from config's timeout_seconds)")
	checkpointSave := fs.String("checkpoint-save", "", "write a checkpoint here if the run times out")
	checkpointLoad := fs.String("checkpoint-load", "", "resume from this checkpoint instead of a fresh population")
	visual := fs.Bool("visual", false, "run with a live terminal progress view")
	debugFlag := fs.Bool("debug", false, "enable debug logging to eax-ga-debug.log")
	cpuprofile := fs.String("cpuprofile", "", "write cpu profile to file")
	memprofile := fs.String("memprofile", "", "write memory profile to file")

	if err := fs.Parse(os.Args[1:]); err != nil {
		return 1
	}

	if *file == "" {
		fmt.Println("Usage: eax-ga --file <instance.tsp> [flags]")
		fmt.Println("\nFlags:")
		fs.PrintDefaults()
		return 1
	}

	cfg, _ := config.LoadConfig(config.GetConfigPath())
	applyFlagOverrides(&cfg, fs, ps, children, selection, eaxType, timeout, checkpointSave, checkpointLoad)

	if *cpuprofile != "" {
		stop, err := setupCPUProfile(*cpuprofile)
		if err != nil {
			log.Printf("could not start CPU profile: %v", err)
			return 1
		}
		defer stop()
	}
	if *memprofile != "" {
		defer writeMemoryProfile(*memprofile)
	}

	effectiveSeed := *seed
	if effectiveSeed == 0 {
		effectiveSeed = 1
	}

	opts := RunOptions{
		TSPFile:        *file,
		OutputPath:     *output,
		CheckpointSave: cfg.CheckpointSave,
		CheckpointLoad: cfg.CheckpointLoad,
		Timeout:        time.Duration(cfg.TimeoutSeconds) * time.Second,
		PopulationSize: cfg.PopulationSize,
		NumChildren:    cfg.NumChildren,
		Trials:         *trials,
		Seed:           effectiveSeed,
		Selection:      cfg.SelectionType,
		EAXType:        cfg.EAXType,
		DebugLog:       *debugFlag,
	}

	if *visual {
		if err := runVisual(opts); err != nil {
			log.Printf("TUI error: %v", err)
			return 1
		}
		return 0
	}

	if err := RunCLI(opts); err != nil {
		log.Printf("eax-ga error: %v", err)
		return 1
	}

	return 0
}

func applyFlagOverrides(cfg *config.GAConfig, fs *flag.FlagSet, ps, children *int, selection, eaxType *string, timeout *time.Duration, checkpointSave, checkpointLoad *string) {
	fs.Visit(func(f *flag.Flag) {
		switch f.Name {
		case "ps":
			cfg.PopulationSize = *ps
		case "children":
			cfg.NumChildren = *children
		case "selection":
			cfg.SelectionType = *selection
		case "eax-type":
			cfg.EAXType = *eaxType
		case "timeout":
			cfg.TimeoutSeconds = int(timeout.Seconds())
		case "checkpoint-save":
			cfg.CheckpointSave = *checkpointSave
		case "checkpoint-load":
			cfg.CheckpointLoad = *checkpointLoad
		}
	})
}

// setupCPUProfile starts CPU profiling, returning a cleanup function.
func setupCPUProfile(filename string) (func(), error) {
	f, err := os.Create(filename)
	if err != nil {
		return nil, fmt.Errorf("%w: creating cpu profile: %v", errs.ErrBadInput, err)
	}
	if err := pprof.StartCPUProfile(f); err != nil {
		_ = f.Close()
		return nil, fmt.Errorf("%w: starting cpu profile: %v", errs.ErrBadInput, err)
	}
	return func() {
		pprof.StopCPUProfile()
		if err := f.Close(); err != nil {
			log.Printf("Warning: failed to close CPU profile: %v", err)
		}
	}, nil
}

// writeMemoryProfile writes a heap profile to file.
func writeMemoryProfile(filename string) {
	f, err := os.Create(filename)
	if err != nil {
		log.Printf("could not create memory profile: %v", err)
		return
	}
	defer func() {
		if err := f.Close(); err != nil {
			log.Printf("Warning: failed to close memory profile: %v", err)
		}
	}()

	runtime.GC()
	if err := pprof.WriteHeapProfile(f); err != nil {
		log.Printf("could not write memory profile: %v", err)
	}
}

// runVisual loads the TSP instance and drives the generational engine under
// the Bubble Tea progress view instead of the plain CLI status line.
func runVisual(opts RunOptions) error {
	if opts.DebugLog {
		if err := SetupDebugLog("eax-ga-debug.log"); err != nil {
			return err
		}
	}

	in, err := LoadInstance(opts.TSPFile, false)
	if err != nil {
		return err
	}

	return tui.Run(tui.Options{
		InstanceName:   in.Name,
		PopulationSize: opts.PopulationSize,
		Timeout:        opts.Timeout,
	}, func(updates chan<- tui.Update) (tui.Result, error) {
		return runForTUI(in, opts, updates)
	})
}
