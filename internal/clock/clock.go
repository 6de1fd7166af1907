// Package clock converts between "HH:MM" wall-clock strings and minutes
// since midnight. All scheduling math in this codebase happens on minute
// offsets within a single day; there is no cross-midnight handling.
package clock

import (
	"fmt"
)

// Parse converts "HH:MM" to minutes since midnight.
func Parse(s string) (int, error) {
	var h, m int
	if _, err := fmt.Sscanf(s, "%d:%d", &h, &m); err != nil {
		return 0, fmt.Errorf("invalid clock value %q: %w", s, err)
	}
	if h < 0 || h > 23 || m < 0 || m > 59 {
		return 0, fmt.Errorf("invalid clock value %q", s)
	}
	return h*60 + m, nil
}

// Format converts minutes since midnight to a zero-padded "HH:MM" string.
// Zero-padded output sorts lexicographically in time order, which the
// repository layer relies on for overlap comparisons.
func Format(minutes int) string {
	return fmt.Sprintf("%02d:%02d", minutes/60, minutes%60)
}
