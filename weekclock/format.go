package weekclock

import (
	"fmt"
)

// FormatOdds renders an American odds integer with its conventional sign,
// e.g. +150 or -110.
func FormatOdds(odds int) string {
	if odds > 0 {
		return fmt.Sprintf("+%d", odds)
	}
	return fmt.Sprintf("%d", odds)
}

// FormatPoints renders awarded points, with a leading + for positive values.
func FormatPoints(points int) string {
	if points > 0 {
		return fmt.Sprintf("+%d", points)
	}
	return fmt.Sprintf("%d", points)
}
