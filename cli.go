// ABOUTME: CLI mode implementation for non-interactive TSP optimization
// ABOUTME: Handles progress display, checkpoint save/restore, result rows, and signal handling

package main

import (
	"context"
	"fmt"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"eax-ga/config"
	"eax-ga/internal/checkpoint"
	"eax-ga/internal/engine"
	"eax-ga/internal/errs"
	"eax-ga/internal/histogram"
	"eax-ga/internal/tour"
	"eax-ga/internal/tsplib"
)

// RunCLI executes CLI mode optimization: one or more independent trials
// against the same TSP instance, each appending a result row to opts.OutputPath.
func RunCLI(opts RunOptions) error {
	if opts.DebugLog {
		if err := SetupDebugLog("eax-ga-debug.log"); err != nil {
			return err
		}
	}

	in, err := LoadInstance(opts.TSPFile, true)
	if err != nil {
		return err
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, os.Interrupt, syscall.SIGTERM)
	go func() {
		<-stop
		cancel()
	}()

	trials := opts.Trials
	if trials < 1 {
		trials = 1
	}

	for trial := 0; trial < trials; trial++ {
		if ctx.Err() != nil {
			break
		}
		seed := opts.Seed + uint64(trial)
		if err := runTrial(ctx, in, opts, seed); err != nil {
			return err
		}
	}

	return nil
}

func runTrial(ctx context.Context, in *tsplib.Instance, opts RunOptions, seed uint64) error {
	deadline := time.Now().Add(opts.Timeout)
	updates := make(chan engine.Update, 4)

	gctx, err := buildTrialContext(in, opts, seed, updates, deadline)
	if err != nil {
		return err
	}
	gctx.Ctx = ctx

	fmt.Printf("\nOptimizing %s (seed %d)... press Ctrl+C to stop early, timeout %s\n", in.Name, seed, opts.Timeout)

	tracker := newProgressTracker(gctx.StartTime)
	done := make(chan engine.TerminationReason, 1)
	go func() { done <- gctx.Run() }()

	var tickerC <-chan time.Time
	if tracker.isTerminal {
		ticker := time.NewTicker(spinnerUpdateInterval)
		defer ticker.Stop()
		tickerC = ticker.C
	}

	var reason engine.TerminationReason
loop:
	for {
		select {
		case u := <-updates:
			if tracker.shouldPrint(u) {
				tracker.printLine(u)
			}
		case <-tickerC:
			tracker.printSpinner(gctx.Generation)
		case reason = <-done:
			break loop
		}
	}
	tracker.clearLine()

	elapsed := time.Since(gctx.StartTime)
	fmt.Printf("\n%s after %d generations (%s), best length %d\n", reason, gctx.Generation, elapsed.Round(time.Millisecond), gctx.BestLength)

	if err := appendResultRow(opts.OutputPath, in.Name, opts, seed, gctx, elapsed); err != nil {
		log.Printf("Warning: failed to write result row: %v", err)
	}

	if opts.CheckpointSave != "" && reason == engine.TimeLimit {
		if err := saveCheckpoint(opts.CheckpointSave, in, opts, seed, gctx, elapsed); err != nil {
			log.Printf("Warning: failed to write checkpoint: %v", err)
		}
	}

	return nil
}

func buildTrialContext(in *tsplib.Instance, opts RunOptions, seed uint64, updates chan<- engine.Update, deadline time.Time) (*engine.Context, error) {
	if opts.CheckpointLoad != "" {
		return restoreFromCheckpoint(opts.CheckpointLoad, in, updates, deadline)
	}

	cfg := config.GAConfig{
		PopulationSize: opts.PopulationSize,
		NumChildren:    opts.NumChildren,
		SelectionType:  opts.Selection,
		EAXType:        opts.EAXType,
	}
	return engineContextFromConfig(in, cfg, seed, updates, deadline)
}

func restoreFromCheckpoint(path string, in *tsplib.Instance, updates chan<- engine.Update, deadline time.Time) (*engine.Context, error) {
	cp, err := checkpoint.Load(path)
	if err != nil {
		return nil, err
	}
	if cp.TSPName != in.Name {
		return nil, fmt.Errorf("%w: checkpoint was for %q, loaded instance is %q", errs.ErrCheckpointMismatch, cp.TSPName, in.Name)
	}

	variant, useTabu, err := parseEAXType(cp.EAXType)
	if err != nil {
		return nil, err
	}

	hist := histogram.NewDense(in.N)
	evaluator, err := buildEvaluator(cp.SelectionType, hist, cp.PopulationSize)
	if err != nil {
		return nil, err
	}

	source, err := restoreRNG(cp.RandomSeed, cp.RNGState)
	if err != nil {
		return nil, err
	}

	population := make([]engine.Member, len(cp.Population))
	for i, path := range cp.Population {
		m := engine.Member{Tour: tour.New(path, in.Weight)}
		if useTabu {
			m.Tabu = newTabuFromCheckpoint()
		}
		population[i] = m
	}

	stage := 1
	stageStart := 0
	if cp.Stage == "Stage2" {
		stage = 2
		stageStart = cp.GenerationOfTransitionToStage2
	}

	return engine.RestoreContext(
		in, in.Weight, population, cp.NumChildren, variant, evaluator, hist,
		useTabu, tabuTenure, source, deadline, updates,
		cp.CurrentGeneration, cp.BestLength, cp.StagnationGenerations,
		stage, stageStart, cp.GDividedBy10,
	), nil
}

func appendResultRow(path, name string, opts RunOptions, seed uint64, gctx *engine.Context, elapsed time.Duration) error {
	if path == "" {
		return nil
	}

	needsHeader := true
	if info, err := os.Stat(path); err == nil && info.Size() > 0 {
		needsHeader = false
	}

	f, err := os.OpenFile(path, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0644)
	if err != nil {
		return fmt.Errorf("opening result file: %w", err)
	}
	defer f.Close()

	if needsHeader {
		if _, err := fmt.Fprintln(f, "| name | P | selection | Nchild | seed | best_length | gen_of_best | final_gen | elapsed_s |"); err != nil {
			return err
		}
		if _, err := fmt.Fprintln(f, "| --- | --- | --- | --- | --- | --- | --- | --- | --- |"); err != nil {
			return err
		}
	}

	genOfBest := gctx.Generation - gctx.GenerationsSinceBestImproved
	_, err = fmt.Fprintf(f, "| %s | %d | %s | %d | %d | %d | %d | %d | %.3f |\n",
		name, opts.PopulationSize, opts.Selection, opts.NumChildren, seed,
		gctx.BestLength, genOfBest, gctx.Generation, elapsed.Seconds())
	return err
}

func saveCheckpoint(path string, in *tsplib.Instance, opts RunOptions, seed uint64, gctx *engine.Context, elapsed time.Duration) error {
	edgeCounts := make([][]int32, in.N)
	for v := 0; v < in.N; v++ {
		row := make([]int32, in.N)
		for u := 0; u < in.N; u++ {
			row[u] = gctx.Histogram.Get(int32(v), int32(u))
		}
		edgeCounts[v] = row
	}

	population := make([][]int32, len(gctx.Population))
	for i, m := range gctx.Population {
		population[i] = m.Tour.Path()
	}

	rngState, err := marshalRNG(gctx.Source)
	if err != nil {
		return err
	}

	stage := "Stage1"
	transitionGen := 0
	if gctx.Stage == 2 {
		stage = "Stage2"
		transitionGen = gctx.StageStartGeneration
	}

	return checkpoint.Save(path, checkpoint.Checkpoint{
		TSPName:                        in.Name,
		PopulationSize:                 opts.PopulationSize,
		NumChildren:                    opts.NumChildren,
		SelectionType:                  opts.Selection,
		RandomSeed:                     seed,
		EAXType:                        opts.EAXType,
		EdgeCounts:                     edgeCounts,
		RNGState:                       rngState,
		BestLength:                     gctx.BestLength,
		GenerationOfReachedBest:        gctx.Generation - gctx.GenerationsSinceBestImproved,
		StagnationGenerations:          gctx.GenerationsSinceBestImproved,
		GenerationOfTransitionToStage2: transitionGen,
		GDividedBy10:                   gctx.StagnationLatch,
		CurrentGeneration:              gctx.Generation,
		FinalGeneration:                gctx.Generation,
		Stage:                          stage,
		ElapsedTime:                    elapsed.Seconds(),
		Population:                     population,
	})
}
