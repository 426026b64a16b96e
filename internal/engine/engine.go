// ABOUTME: C9 generational engine: round-robin parent pairing, best-of-children replacement
// ABOUTME: Two-stage stagnation detection that switches the EAX variant to Block2 before giving up

// Package engine drives the generational loop: every generation it shuffles
// the population, asks the crossover driver for children from each adjacent
// pair, replaces a parent with the best accepted child, and updates the
// shared edge-frequency histogram by the same delta.
package engine

import (
	"context"
	"math/rand/v2"
	"time"

	"eax-ga/internal/crossover"
	"eax-ga/internal/eset"
	"eax-ga/internal/evaluate"
	"eax-ga/internal/histogram"
	"eax-ga/internal/merger"
	"eax-ga/internal/tour"
)

// TerminationReason names why Run stopped.
type TerminationReason int

const (
	NotTerminated TerminationReason = iota
	Converged
	Stagnation
	TimeLimit
)

func (r TerminationReason) String() string {
	switch r {
	case Converged:
		return "Converged"
	case Stagnation:
		return "Stagnation"
	case TimeLimit:
		return "TimeLimit"
	default:
		return "NotTerminated"
	}
}

// Member is one population slot. Tabu is nil unless the run uses the
// C7-tabu variant, in which case it is that slot's own decaying edge
// tabu list, built from the deltas it has personally accepted.
type Member struct {
	Tour *tour.Tour
	Tabu *crossover.TabuList
}

// Update is the progress snapshot offered once per generation to whichever
// consumer the CLI wired up (plain status line or the TUI); the send does not
// block, so a snapshot is dropped when the channel is full. The consumer
// decides how often to actually render it.
type Update struct {
	Generation int
	BestLength int64
	MeanLength float64
	Stagnation int
	Stage      int
	Elapsed    time.Duration
}

// Context holds everything one GA run needs across its generational loop.
type Context struct {
	Instance   merger.NeighborTable
	Weight     tour.WeightFunc
	Population []Member
	Nchild     int
	Variant    eset.Variant
	Evaluator  evaluate.Evaluator
	Histogram  histogram.EdgeCounter
	UseTabu    bool
	TabuTenure int

	RNG    *rand.Rand
	Source *rand.PCG // backs RNG; kept so checkpoint save can marshal its state
	Driver *crossover.Driver

	Generation                   int
	BestLength                   int64
	GenerationsSinceBestImproved int
	Stage                        int
	StageStartGeneration         int
	StagnationLatch              int // -1 = unlatched

	Deadline  time.Time
	StartTime time.Time
	Updates   chan<- Update

	// Ctx, if set after construction, is checked alongside Deadline at each
	// generation boundary so an external SIGTERM cancels the run cleanly
	// without corrupting in-progress state.
	Ctx context.Context
}

// NewContext builds a ready-to-run Context: it wraps the initial population,
// seeds the shared histogram with every tour's edges, and records the
// starting best length.
func NewContext(
	instance merger.NeighborTable,
	weight tour.WeightFunc,
	initial []*tour.Tour,
	nchild int,
	variant eset.Variant,
	evaluator evaluate.Evaluator,
	hist histogram.EdgeCounter,
	useTabu bool,
	tabuTenure int,
	source *rand.PCG,
	deadline time.Time,
	updates chan<- Update,
) *Context {
	population := make([]Member, len(initial))
	for i, t := range initial {
		m := Member{Tour: t}
		if useTabu {
			m.Tabu = crossover.NewTabuList()
		}
		population[i] = m
	}
	seedHistogram(hist, initial)

	c := &Context{
		Instance:        instance,
		Weight:          weight,
		Population:      population,
		Nchild:          nchild,
		Variant:         variant,
		Evaluator:       evaluator,
		Histogram:       hist,
		UseTabu:         useTabu,
		TabuTenure:      tabuTenure,
		RNG:             rand.New(source),
		Source:          source,
		Driver:          crossover.New(weight, instance),
		Stage:           1,
		StagnationLatch: -1,
		Deadline:        deadline,
		StartTime:       time.Now(),
		Updates:         updates,
	}
	c.BestLength = c.minLength()
	return c
}

// RestoreContext rebuilds a Context from checkpointed generational state
// rather than a fresh population. The histogram is reseeded from the
// restored population's own edges rather than trusted from the checkpoint's
// stored matrix, since the two must agree by construction and recomputing
// avoids carrying a second, potentially-inconsistent source of truth.
func RestoreContext(
	instance merger.NeighborTable,
	weight tour.WeightFunc,
	population []Member,
	nchild int,
	variant eset.Variant,
	evaluator evaluate.Evaluator,
	hist histogram.EdgeCounter,
	useTabu bool,
	tabuTenure int,
	source *rand.PCG,
	deadline time.Time,
	updates chan<- Update,
	generation int,
	bestLength int64,
	generationsSinceBestImproved int,
	stage int,
	stageStartGeneration int,
	stagnationLatch int,
) *Context {
	tours := make([]*tour.Tour, len(population))
	for i, m := range population {
		tours[i] = m.Tour
	}
	seedHistogram(hist, tours)

	return &Context{
		Instance:                     instance,
		Weight:                       weight,
		Population:                   population,
		Nchild:                       nchild,
		Variant:                      variant,
		Evaluator:                    evaluator,
		Histogram:                    hist,
		UseTabu:                      useTabu,
		TabuTenure:                   tabuTenure,
		RNG:                          rand.New(source),
		Source:                       source,
		Driver:                       crossover.New(weight, instance),
		Generation:                   generation,
		BestLength:                   bestLength,
		GenerationsSinceBestImproved: generationsSinceBestImproved,
		Stage:                        stage,
		StageStartGeneration:         stageStartGeneration,
		StagnationLatch:              stagnationLatch,
		Deadline:                     deadline,
		StartTime:                    time.Now(),
		Updates:                      updates,
	}
}

func seedHistogram(hist histogram.EdgeCounter, population []*tour.Tour) {
	for _, t := range population {
		for v := range int32(t.N) {
			a, b := t.Neighbors(v)
			hist.Increment(v, a)
			hist.Increment(v, b)
		}
	}
}

// Run drives generations until a termination condition fires, returning the
// reason. The population inside c reflects the final generation's state.
func (c *Context) Run() TerminationReason {
	for {
		c.sendUpdate()

		pending := c.step()
		c.applyPending(pending)

		if min := c.minLength(); min < c.BestLength {
			c.BestLength = min
			c.GenerationsSinceBestImproved = 0
		} else {
			c.GenerationsSinceBestImproved++
		}

		if reason := c.checkTermination(); reason != NotTerminated {
			return reason
		}
	}
}

func (c *Context) sendUpdate() {
	if c.Updates == nil {
		return
	}
	mean, _ := c.meanAndMinLength()
	select {
	case c.Updates <- Update{
		Generation: c.Generation,
		BestLength: c.BestLength,
		MeanLength: mean,
		Stagnation: c.GenerationsSinceBestImproved,
		Stage:      c.Stage,
		Elapsed:    time.Since(c.StartTime),
	}:
	default:
	}
}

// step performs one generation's crossover pass, returning a pending delta
// per population slot (nil where no child was accepted). Replacement is
// deferred to applyPending so a parent tour is never mutated mid-pass.
func (c *Context) step() []*tour.Delta {
	p := len(c.Population)
	indices := c.RNG.Perm(p)
	pending := make([]*tour.Delta, p)

	for i := range p {
		a := indices[i]
		b := indices[(i+1)%p]
		parentA := c.Population[a].Tour
		parentB := c.Population[b].Tour

		params := crossover.Params{Variant: c.Variant, Nchild: c.Nchild}
		if c.UseTabu {
			params.Tabu = c.Population[a].Tabu
		}

		children := c.Driver.Cross(parentA, parentB, params, c.RNG)
		if len(children) == 0 {
			continue
		}

		var best *tour.Delta
		var bestFitness float64
		for _, child := range children {
			f := c.Evaluator.Evaluate(child)
			if best == nil || f > bestFitness {
				best, bestFitness = child, f
			}
		}
		if bestFitness > 0 {
			pending[a] = best
		}
	}
	return pending
}

func (c *Context) applyPending(pending []*tour.Delta) {
	for i, d := range pending {
		if d == nil {
			continue
		}
		member := &c.Population[i]
		if err := tour.Apply(member.Tour, d); err != nil {
			panic(err)
		}
		member.Tour.Distance += d.DeltaDistance
		if err := c.Histogram.ApplyDelta(d.Mods); err != nil {
			panic(err)
		}
		if c.UseTabu {
			member.Tabu.Sample(d, c.TabuTenure, c.RNG)
		}
	}
	if c.UseTabu {
		for i := range c.Population {
			c.Population[i].Tabu.Tick()
		}
	}
	c.Generation++
}

// checkTermination implements Converged, TimeLimit (deadline passed or Ctx
// cancelled), and the two-stage Stagnation latch, in that priority order.
func (c *Context) checkTermination() TerminationReason {
	mean, min := c.meanAndMinLength()
	if mean-float64(min) < 0.001 {
		return Converged
	}
	if !time.Now().Before(c.Deadline) {
		return TimeLimit
	}
	if c.Ctx != nil && c.Ctx.Err() != nil {
		return TimeLimit
	}

	threshold := 1500 / c.Nchild
	if c.GenerationsSinceBestImproved <= threshold {
		return NotTerminated
	}

	relGen := c.Generation - c.StageStartGeneration
	if c.StagnationLatch < 0 {
		c.StagnationLatch = relGen / 10
		return NotTerminated
	}
	if c.GenerationsSinceBestImproved <= c.StagnationLatch {
		return NotTerminated
	}

	if c.Stage == 1 {
		c.Stage = 2
		c.Variant = eset.Variant{Kind: eset.KindBlock2}
		c.StagnationLatch = -1
		c.GenerationsSinceBestImproved = 0
		c.StageStartGeneration = c.Generation
		return NotTerminated
	}
	return Stagnation
}

func (c *Context) minLength() int64 {
	best := c.Population[0].Tour.Distance
	for _, m := range c.Population[1:] {
		if m.Tour.Distance < best {
			best = m.Tour.Distance
		}
	}
	return best
}

func (c *Context) meanAndMinLength() (float64, int64) {
	var sum int64
	min := c.Population[0].Tour.Distance
	for _, m := range c.Population {
		sum += m.Tour.Distance
		if m.Tour.Distance < min {
			min = m.Tour.Distance
		}
	}
	return float64(sum) / float64(len(c.Population)), min
}
