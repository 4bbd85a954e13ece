package scheduler

import (
	"time"

	"github.com/studyhive/studyhive-backend/internal/apierr"
)

// TaskParameters are the task/event inputs for one scheduling call.
type TaskParameters struct {
	Subject        string
	StartAt        time.Time
	Deadline       time.Time
	EstimatedHours float64
	SkipDays       SkipDays
}

func (p TaskParameters) Validate() error {
	if p.Subject == "" {
		return apierr.Validation("subject is required")
	}
	if p.EstimatedHours <= 0 {
		return apierr.Validation("estimated study hours must be positive")
	}
	if !p.StartAt.Before(p.Deadline) {
		return apierr.Validation("study start date must be before the deadline")
	}
	if len(p.SkipDays) >= 7 {
		return apierr.Validation("skip days cannot cover the whole week")
	}
	return nil
}

// Plan is the scheduler's output: the ordered day sequence plus the
// intermediate figures callers may want to report.
type Plan struct {
	Days          []DayPlan
	DailyBudget   float64
	AvailableDays float64
	// AdjustedSessionHours is the strength/weakness-scaled per-session
	// estimate. It caps at maxSessionHours and is reported but does not
	// drive the day-level allocation, which follows DailyBudget.
	AdjustedSessionHours float64
}

// TotalHours sums the per-day totals, rounded to two decimals.
func (p *Plan) TotalHours() float64 {
	var total float64
	for _, day := range p.Days {
		total += day.TotalHours
	}
	return round2(total)
}

// Build produces the full day-by-day plan for one task. Failures are
// recoverable apierr values: bad parameters, too small a window, or no
// available days once skips and the weekly target are applied.
func Build(pref Preference, params TaskParameters, scores Snapshots) (*Plan, error) {
	if err := params.Validate(); err != nil {
		return nil, err
	}

	budget := DailyBudget(pref, scores)

	available, err := AvailableDays(params.StartAt, params.Deadline, params.SkipDays, pref.DaysPerWeek)
	if err != nil {
		return nil, err
	}

	hoursPerSession := params.EstimatedHours / available
	adjusted := adjustForTraits(hoursPerSession, pref)

	var days []DayPlan
	current := params.StartAt
	lastDay := params.Deadline.AddDate(0, 0, -1)
	for len(days) < int(available) && !current.After(lastDay) {
		if params.SkipDays[current.Weekday()] {
			current = current.AddDate(0, 0, 1)
			continue
		}
		day := AllocateDay(current, budget, pref.StudyTime)
		day.Subject = params.Subject
		days = append(days, day)
		current = current.AddDate(0, 0, 1)
	}

	return &Plan{
		Days:                 days,
		DailyBudget:          budget,
		AvailableDays:        available,
		AdjustedSessionHours: adjusted,
	}, nil
}

// adjustForTraits stacks the strength and weakness multipliers onto the
// raw per-session estimate. Multipliers compound; only labels from the
// fixed vocabularies carry a rating. The result never exceeds the session
// length cap.
func adjustForTraits(hours float64, pref Preference) float64 {
	adjusted := hours
	for _, s := range pref.Strengths {
		if rating, ok := strengthRatings[s]; ok {
			adjusted *= 1 + float64(rating)*0.05
		}
	}
	for _, w := range pref.Weaknesses {
		if rating, ok := weaknessRatings[w]; ok {
			adjusted *= 1 - float64(rating)*0.05
		}
	}
	if adjusted > maxSessionHours {
		adjusted = maxSessionHours
	}
	return adjusted
}
