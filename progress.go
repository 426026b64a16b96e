// ABOUTME: Progress tracking and update management for the generational engine
// ABOUTME: Rate-limits which generations get printed: on improvement or every 50th

package main

import (
	"fmt"
	"os"
	"time"

	"eax-ga/internal/engine"
)

const spinnerUpdateInterval = 500 * time.Millisecond

var spinnerFrames = []string{"⠋", "⠙", "⠹", "⠸", "⠼", "⠴", "⠦", "⠧", "⠇", "⠏"}

// isTTY checks if the given file is a terminal.
func isTTY(f *os.File) bool {
	stat, err := f.Stat()
	if err != nil {
		return false
	}
	return (stat.Mode() & os.ModeCharDevice) != 0
}

// formatElapsed right-pads an elapsed duration to 6 characters (max "59m59s").
func formatElapsed(d time.Duration) string {
	var s string
	if d >= time.Minute {
		s = fmt.Sprintf("%dm%ds", int(d.Minutes()), int(d.Seconds())%60)
	} else {
		s = fmt.Sprintf("%ds", int(d.Seconds()))
	}
	return fmt.Sprintf("%6s", s)
}

// progressTracker decides which generations are worth printing: on best-
// length improvement, or every 50th generation.
type progressTracker struct {
	previousBest int64
	haveBest     bool
	minPrecision int
	spinnerIdx   int
	isTerminal   bool
	startTime    time.Time
}

func newProgressTracker(startTime time.Time) *progressTracker {
	return &progressTracker{
		minPrecision: 2,
		isTerminal:   isTTY(os.Stdout),
		startTime:    startTime,
	}
}

// shouldPrint reports whether update warrants a printed line rather than
// just a spinner refresh.
func (pt *progressTracker) shouldPrint(update engine.Update) bool {
	improved := !pt.haveBest || update.BestLength < pt.previousBest
	return improved || update.Generation%50 == 0
}

// printLine prints a progress line for update, clearing any spinner first.
func (pt *progressTracker) printLine(update engine.Update) {
	if pt.isTerminal {
		fmt.Print("\r\033[K")
	}
	elapsedStr := formatElapsed(update.Elapsed)

	var fitnessStr string
	prev := float64(pt.previousBest)
	if !pt.haveBest {
		prev = float64(update.BestLength)
	}
	fitnessStr, pt.minPrecision = FormatWithMonotonicPrecision(prev, float64(update.BestLength), pt.minPrecision)

	fmt.Printf("%s Gen %7d - stage %d - best %s - mean %.2f - stagnant %d\n",
		elapsedStr, update.Generation, update.Stage, fitnessStr, update.MeanLength, update.Stagnation)

	pt.previousBest = update.BestLength
	pt.haveBest = true
}

// printSpinner refreshes the status line without a newline (TTY only).
func (pt *progressTracker) printSpinner(gen int) {
	if !pt.isTerminal {
		return
	}
	elapsed := time.Since(pt.startTime)
	fmt.Printf("\r%s Gen %d %s     ", formatElapsed(elapsed), gen, spinnerFrames[pt.spinnerIdx])
	pt.spinnerIdx = (pt.spinnerIdx + 1) % len(spinnerFrames)
}

// clearLine clears any in-progress spinner line (TTY only).
func (pt *progressTracker) clearLine() {
	if pt.isTerminal {
		fmt.Print("\r\033[K")
	}
}
