// ABOUTME: TUI mode configuration and the GAUpdate/Result shapes it renders
// ABOUTME: Defines input parameters and the progress channel contract for running the TUI

package tui

import "time"

// Options configures one visual run: which instance is being optimized and
// the parameters worth showing in the header.
type Options struct {
	InstanceName   string
	PopulationSize int
	Timeout        time.Duration
}

// Update is one generation's progress snapshot, converted from the
// generational engine's own internal Update by the caller.
type Update struct {
	Generation int
	BestLength int64
	MeanLength float64
	Stagnation int
	Stage      int
	Elapsed    time.Duration
}

// Result is the run's final outcome, shown once the GA goroutine returns.
type Result struct {
	Reason     string
	BestLength int64
	Generation int
}
