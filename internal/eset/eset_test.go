// ABOUTME: Tests for the four E-set assembler policies
// ABOUTME: Checks termination, cap respect, and that Block2 never diverges past 20 stale iterations

package eset

import (
	"math/rand/v2"
	"testing"

	"eax-ga/internal/abcycle"
)

func sampleCycles() []abcycle.Cycle {
	return []abcycle.Cycle{
		{Cities: []int32{0, 1, 2, 3}},
		{Cities: []int32{4, 5, 6, 7}},
		{Cities: []int32{3, 8, 7, 9}},
	}
}

func TestRandRespectsNchildCap(t *testing.T) {
	rng := rand.New(rand.NewPCG(1, 1))
	a := New(Variant{Kind: KindRand}, sampleCycles(), 5, rng)
	count := 0
	for a.HasNext() {
		a.Next(rng)
		count++
	}
	if count != 5 {
		t.Fatalf("expected exactly 5 draws, got %d", count)
	}
}

func TestNABGroupsOfN(t *testing.T) {
	rng := rand.New(rand.NewPCG(2, 2))
	cycles := sampleCycles()
	a := New(Variant{Kind: KindNAB, N: 2}, cycles, 3, rng)
	var got [][]int
	for a.HasNext() {
		got = append(got, a.Next(rng))
	}
	for _, g := range got {
		if len(g) != 2 {
			t.Fatalf("expected groups of size 2, got %v", g)
		}
	}
}

func TestUniformPrefixBounds(t *testing.T) {
	rng := rand.New(rand.NewPCG(3, 3))
	cycles := sampleCycles()
	a := New(Variant{Kind: KindUniform}, cycles, 4, rng)
	for a.HasNext() {
		sel := a.Next(rng)
		if len(sel) < 1 || len(sel) > len(cycles) {
			t.Fatalf("uniform prefix out of bounds: %v", sel)
		}
	}
}

func TestHalfUniformPrefixBounds(t *testing.T) {
	rng := rand.New(rand.NewPCG(4, 4))
	cycles := sampleCycles()
	a := New(Variant{Kind: KindHalfUniform}, cycles, 4, rng)
	maxLen := (len(cycles) + 1) / 2
	for a.HasNext() {
		sel := a.Next(rng)
		if len(sel) < 1 || len(sel) > maxLen {
			t.Fatalf("half-uniform prefix out of bounds: %v (max %d)", sel, maxLen)
		}
	}
}

func TestBlock2AlwaysIncludesCenterAndTerminates(t *testing.T) {
	rng := rand.New(rand.NewPCG(5, 5))
	cycles := sampleCycles()
	a := New(Variant{Kind: KindBlock2}, cycles, len(cycles), rng)
	count := 0
	for a.HasNext() {
		sel := a.Next(rng)
		if len(sel) == 0 {
			t.Fatalf("block2 E-set must contain at least its center")
		}
		count++
	}
	if count != len(cycles) {
		t.Fatalf("expected one E-set per center cycle, got %d", count)
	}
}

func TestBlock2SingletonNeverDiverges(t *testing.T) {
	rng := rand.New(rand.NewPCG(6, 6))
	// A single AB-cycle: the whole list is the singleton E-set case named
	// in the boundary-behaviour property.
	cycles := []abcycle.Cycle{{Cities: []int32{0, 1, 2, 3}}}
	a := New(Variant{Kind: KindBlock2}, cycles, 1, rng)
	if !a.HasNext() {
		t.Fatalf("expected one center")
	}
	sel := a.Next(rng)
	if len(sel) != 1 || sel[0] != 0 {
		t.Fatalf("expected the singleton E-set to be exactly the one cycle, got %v", sel)
	}
}
