// ABOUTME: Generic scratch-buffer recycling on top of sync.Pool
// ABOUTME: Grounded on the gene-recycling pool in the corpus's own TSP genetic algorithm example

// Package objpool reuses large scratch buffers (the merger's sub-tour city
// lists) across crossovers instead of allocating a fresh one
// every time, the way the reference corpus's own evolutionary-TSP example
// recycles permutation genes through a *sync.Pool keyed by backing array
// rather than by value.
package objpool

import "sync"

// Pool recycles values of type T. It wraps sync.Pool so callers never need
// a manual type assertion to get their value back.
type Pool[T any] struct {
	pool sync.Pool
}

// New builds a Pool whose New callback produces a fresh T whenever Get finds
// nothing to reuse.
func New[T any](newFunc func() T) *Pool[T] {
	return &Pool[T]{pool: sync.Pool{New: func() any { return newFunc() }}}
}

// Get returns a recycled value, or a freshly constructed one if the pool is
// currently empty.
func (p *Pool[T]) Get() T { return p.pool.Get().(T) }

// Put returns v to the pool for a future Get to reuse.
func (p *Pool[T]) Put(v T) { p.pool.Put(v) }

// SlicePool recycles slices of element type E. Get always returns a
// zero-length slice so callers append into the reused backing array
// rather than allocate a new one.
type SlicePool[E any] struct {
	pool Pool[[]E]
}

// NewSlicePool builds a SlicePool whose fresh slices start at the given
// capacity.
func NewSlicePool[E any](capacity int) *SlicePool[E] {
	return &SlicePool[E]{pool: *New(func() []E { return make([]E, 0, capacity) })}
}

// Get returns a zero-length slice backed by a recycled (or fresh) array.
func (p *SlicePool[E]) Get() []E { return p.pool.Get()[:0] }

// Put returns s to the pool for a future Get to reuse its backing array.
func (p *SlicePool[E]) Put(s []E) { p.pool.Put(s) }
