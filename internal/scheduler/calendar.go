package scheduler

import (
	"time"

	"github.com/studyhive/studyhive-backend/internal/apierr"
)

// AvailableDays estimates how many days of study fit between start and
// deadline. The deadline day itself is outside the window. Skipped weekdays
// are removed from the raw count, then the remainder is scaled by
// daysPerWeek/7 — the result is a continuous estimate, not a literal count.
func AvailableDays(start, deadline time.Time, skip SkipDays, daysPerWeek int) (float64, error) {
	totalDays := int(deadline.Sub(start).Hours() / 24)
	if totalDays < 1 {
		return 0, apierr.InsufficientWindow("no days available for a study plan before the deadline")
	}

	skipped := 0
	for i := 0; i < totalDays; i++ {
		if skip[start.AddDate(0, 0, i).Weekday()] {
			skipped++
		}
	}

	available := float64(totalDays-skipped) * float64(daysPerWeek) / 7.0
	if available < 1 {
		return 0, apierr.InsufficientAvailability("no available days for a study plan after skipping days")
	}
	return available, nil
}
