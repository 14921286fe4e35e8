// Package weekclock buckets timestamps into the 1-52 week numbers that scope
// the per-user placement limits, and renders American odds for display.
package weekclock

import (
	"math"
	"time"
)

// ForTime returns the week-of-year bucket for t, 1-indexed and clamped to
// [1,52]. The formula is ceil((dayOfYear + jan1Weekday + 1) / 7) with
// weekday 0 = Sunday; stored week numbers depend on it staying exactly this.
func ForTime(t time.Time) int {
	startOfYear := time.Date(t.Year(), time.January, 1, 0, 0, 0, 0, t.Location())
	pastDays := int(t.Sub(startOfYear).Hours() / 24)
	week := int(math.Ceil(float64(pastDays+int(startOfYear.Weekday())+1) / 7))
	if week < 1 {
		return 1
	}
	if week > 52 {
		return 52
	}
	return week
}
