// ABOUTME: Bridges the generational engine's update channel into the TUI's Update/Result types
// ABOUTME: Mirrors runTrial's context setup, but feeds a Bubble Tea model instead of a plain status line

package main

import (
	"time"

	"eax-ga/config"
	"eax-ga/internal/engine"
	"eax-ga/internal/tsplib"
	"eax-ga/tui"
)

// runForTUI runs one trial against in and forwards every engine.Update onto
// the TUI's own Update channel, translating the final termination reason
// into a tui.Result once the run stops.
func runForTUI(in *tsplib.Instance, opts RunOptions, updates chan<- tui.Update) (tui.Result, error) {
	deadline := time.Now().Add(opts.Timeout)
	engineUpdates := make(chan engine.Update, 4)

	cfg := config.GAConfig{
		PopulationSize: opts.PopulationSize,
		NumChildren:    opts.NumChildren,
		SelectionType:  opts.Selection,
		EAXType:        opts.EAXType,
	}
	gctx, err := engineContextFromConfig(in, cfg, opts.Seed, engineUpdates, deadline)
	if err != nil {
		return tui.Result{}, err
	}

	done := make(chan engine.TerminationReason, 1)
	go func() { done <- gctx.Run() }()

	for {
		select {
		case u := <-engineUpdates:
			updates <- tui.Update{
				Generation: u.Generation,
				BestLength: u.BestLength,
				MeanLength: u.MeanLength,
				Stagnation: u.Stagnation,
				Stage:      u.Stage,
				Elapsed:    u.Elapsed,
			}
		case reason := <-done:
			return tui.Result{
				Reason:     reason.String(),
				BestLength: gctx.BestLength,
				Generation: gctx.Generation,
			}, nil
		}
	}
}
