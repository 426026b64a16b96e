// ABOUTME: Tests for progress-line float formatting
// ABOUTME: Covers minimal-precision selection and the monotonic precision ratchet

package main

import "testing"

func TestFormatMinimalPrecisionDistinguishesValues(t *testing.T) {
	tests := []struct {
		prev, curr float64
		want       string
	}{
		{100.0, 100.0, "100.00"},
		{100.5, 99.5, "99.50"},
		{100.001, 100.002, "100.0020"},
		{1.0, 1.00001, "1.000010"},
	}
	for _, tt := range tests {
		if got := FormatMinimalPrecision(tt.prev, tt.curr); got != tt.want {
			t.Errorf("FormatMinimalPrecision(%v, %v) = %q, want %q", tt.prev, tt.curr, got, tt.want)
		}
	}
}

func TestFormatMinimalPrecisionCapsAtMaxPrecision(t *testing.T) {
	got := FormatMinimalPrecision(1.00000000001, 1.00000000002)
	if len(got) == 0 {
		t.Fatal("expected a non-empty formatted string")
	}
}

func TestFormatWithMonotonicPrecisionNeverNarrows(t *testing.T) {
	_, p1 := FormatWithMonotonicPrecision(100.0, 100.001, 0)
	if p1 < 3 {
		t.Fatalf("first call ratchet = %d, want >= 3", p1)
	}

	formatted2, p2 := FormatWithMonotonicPrecision(100.001, 100.0, p1)
	if p2 < p1 {
		t.Fatalf("ratchet narrowed from %d to %d", p1, p2)
	}

	wantDigits := p1
	gotDigits := digitsAfterDecimal(formatted2)
	if gotDigits < wantDigits {
		t.Fatalf("formatted2 = %q has %d digits, want at least %d", formatted2, gotDigits, wantDigits)
	}
}

func digitsAfterDecimal(s string) int {
	for i := len(s) - 1; i >= 0; i-- {
		if s[i] == '.' {
			return len(s) - i - 1
		}
	}
	return 0
}
