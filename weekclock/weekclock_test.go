package weekclock

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestForTime(t *testing.T) {
	utc := func(year int, month time.Month, day int) time.Time {
		return time.Date(year, month, day, 12, 0, 0, 0, time.UTC)
	}

	t.Run("year starting on Monday", func(t *testing.T) {
		// 2024-01-01 is a Monday
		assert.Equal(t, 1, ForTime(utc(2024, time.January, 1)))
		assert.Equal(t, 1, ForTime(utc(2024, time.January, 6)))
		// The first Sunday starts week 2
		assert.Equal(t, 2, ForTime(utc(2024, time.January, 7)))
	})

	t.Run("year starting on Sunday", func(t *testing.T) {
		// 2023-01-01 is a Sunday
		assert.Equal(t, 1, ForTime(utc(2023, time.January, 1)))
		assert.Equal(t, 1, ForTime(utc(2023, time.January, 7)))
		assert.Equal(t, 2, ForTime(utc(2023, time.January, 8)))
	})

	t.Run("mid-season date", func(t *testing.T) {
		assert.Equal(t, 41, ForTime(utc(2024, time.October, 10)))
	})

	t.Run("end of year clamps to 52", func(t *testing.T) {
		assert.Equal(t, 52, ForTime(utc(2024, time.December, 31)))
		assert.Equal(t, 52, ForTime(utc(2023, time.December, 31)))
	})

	t.Run("never below 1 or above 52", func(t *testing.T) {
		for day := utc(2024, time.January, 1); day.Year() == 2024; day = day.AddDate(0, 0, 1) {
			week := ForTime(day)
			assert.GreaterOrEqual(t, week, 1)
			assert.LessOrEqual(t, week, 52)
		}
	})

	t.Run("non-decreasing within a year", func(t *testing.T) {
		prev := ForTime(utc(2024, time.January, 1))
		for day := utc(2024, time.January, 2); day.Year() == 2024; day = day.AddDate(0, 0, 1) {
			week := ForTime(day)
			assert.GreaterOrEqual(t, week, prev)
			prev = week
		}
	})
}

func TestFormatOdds(t *testing.T) {
	assert.Equal(t, "+150", FormatOdds(150))
	assert.Equal(t, "-110", FormatOdds(-110))
	assert.Equal(t, "0", FormatOdds(0))
}

func TestFormatPoints(t *testing.T) {
	assert.Equal(t, "+600", FormatPoints(600))
	assert.Equal(t, "0", FormatPoints(0))
}
