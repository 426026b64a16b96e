// ABOUTME: Minimal precision formatting for tour-length progress output
// ABOUTME: Formats float64 pairs with one digit more than needed to show the difference

package main

import (
	"fmt"
	"math"
)

const maxPrecision = 10

// FormatMinimalPrecision returns a formatted string of curr with one digit
// more than the first precision at which it differs from prev (capped at
// maxPrecision).
func FormatMinimalPrecision(prev, curr float64) string {
	if math.IsNaN(prev) || math.IsNaN(curr) || math.IsInf(prev, 0) || math.IsInf(curr, 0) {
		return fmt.Sprintf("%.2f", curr)
	}
	if prev == curr {
		return fmt.Sprintf("%.2f", curr)
	}

	for precision := 1; precision <= maxPrecision; precision++ {
		format := fmt.Sprintf("%%.%df", precision)
		if fmt.Sprintf(format, prev) != fmt.Sprintf(format, curr) {
			clarity := precision + 1
			if clarity > maxPrecision {
				clarity = maxPrecision
			}
			return fmt.Sprintf(fmt.Sprintf("%%.%df", clarity), curr)
		}
	}
	return fmt.Sprintf(fmt.Sprintf("%%.%df", maxPrecision), curr)
}

// FormatWithMonotonicPrecision behaves like FormatMinimalPrecision but never
// narrows the precision across a sequence of calls: the CLI's progress line
// should not "lose" digits between successive improvements, only gain them.
// minPrecision is the ratchet from the previous call; the returned int is
// the ratchet to pass on the next call.
func FormatWithMonotonicPrecision(prev, curr float64, minPrecision int) (string, int) {
	formatted := FormatMinimalPrecision(prev, curr)

	used := 0
	for i := len(formatted) - 1; i >= 0; i-- {
		if formatted[i] == '.' {
			used = len(formatted) - i - 1
			break
		}
	}
	if used < minPrecision {
		used = minPrecision
		formatted = fmt.Sprintf(fmt.Sprintf("%%.%df", used), curr)
	}
	if used > minPrecision {
		minPrecision = used
	}
	return formatted, minPrecision
}
