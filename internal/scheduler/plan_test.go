package scheduler

import (
	"errors"
	"reflect"
	"testing"
	"time"

	"github.com/studyhive/studyhive-backend/internal/apierr"
)

func basePreference() Preference {
	return Preference{
		HoursPerDay: 2,
		DaysPerWeek: 7,
		StudyTime:   StudyTimeMorning,
	}
}

func baseParameters() TaskParameters {
	return TaskParameters{
		Subject:        "DSA",
		StartAt:        date(2025, 1, 1),
		Deadline:       date(2025, 1, 11),
		EstimatedHours: 10,
	}
}

func TestBuild_TenDayPlan(t *testing.T) {
	plan, err := Build(basePreference(), baseParameters(), nil)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if !almostEqual(plan.DailyBudget, 2.5) {
		t.Fatalf("expected daily budget 2.5, got %v", plan.DailyBudget)
	}
	if !almostEqual(plan.AvailableDays, 10) {
		t.Fatalf("expected 10 available days, got %v", plan.AvailableDays)
	}
	if len(plan.Days) != 10 {
		t.Fatalf("expected 10 day plans, got %d", len(plan.Days))
	}

	for i, day := range plan.Days {
		wantDate := date(2025, 1, 1).AddDate(0, 0, i).Format("2006-01-02")
		if day.StudyDate != wantDate {
			t.Fatalf("day %d: expected %s, got %s", i, wantDate, day.StudyDate)
		}
		if day.Subject != "DSA" || day.StudyTime != StudyTimeMorning {
			t.Fatalf("day %d: unexpected labels %q/%q", i, day.Subject, day.StudyTime)
		}
		if len(day.Sessions) != 2 {
			t.Fatalf("day %d: expected 2 sessions for a 2.5h budget, got %d", i, len(day.Sessions))
		}
		if day.Sessions[0].StartTime != "06:00" || day.Sessions[0].EndTime != "07:15" {
			t.Fatalf("day %d: unexpected first session %s-%s", i, day.Sessions[0].StartTime, day.Sessions[0].EndTime)
		}
		if day.TotalHours != 2.5 {
			t.Fatalf("day %d: expected total 2.5, got %v", i, day.TotalHours)
		}
	}

	// 10 estimated hours over 10 available days, no traits.
	if !almostEqual(plan.AdjustedSessionHours, 1.0) {
		t.Fatalf("expected adjusted session hours 1.0, got %v", plan.AdjustedSessionHours)
	}
	if plan.TotalHours() != 25.0 {
		t.Fatalf("expected plan total 25.0, got %v", plan.TotalHours())
	}
}

func TestBuild_Deterministic(t *testing.T) {
	pref := basePreference()
	pref.Strengths = []Strength{StrengthQuickLearner}
	pref.Weaknesses = []Weakness{WeaknessDistraction}
	scores := Snapshots{LevelIntermediate: 72}

	first, err := Build(pref, baseParameters(), scores)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	second, err := Build(pref, baseParameters(), scores)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !reflect.DeepEqual(first, second) {
		t.Fatalf("identical inputs produced different plans")
	}
}

func TestBuild_SkipDaysNeverScheduled(t *testing.T) {
	skip, err := ParseSkipDays([]string{"Saturday", "Sunday"})
	if err != nil {
		t.Fatalf("parse skip days: %v", err)
	}
	params := baseParameters()
	params.Deadline = date(2025, 1, 21)
	params.SkipDays = skip

	plan, err := Build(basePreference(), params, nil)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(plan.Days) == 0 {
		t.Fatalf("expected a non-empty plan")
	}
	for _, day := range plan.Days {
		d, err := time.Parse("2006-01-02", day.StudyDate)
		if err != nil {
			t.Fatalf("bad study date %q", day.StudyDate)
		}
		if skip[d.Weekday()] {
			t.Fatalf("scheduled day %s falls on skipped weekday %s", day.StudyDate, d.Weekday())
		}
		if !d.Before(params.Deadline) {
			t.Fatalf("scheduled day %s falls on or after the deadline", day.StudyDate)
		}
	}
}

func TestBuild_DeadlineDayNeverScheduled(t *testing.T) {
	params := baseParameters()
	params.Deadline = date(2025, 1, 3)
	params.EstimatedHours = 2

	plan, err := Build(basePreference(), params, nil)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	for _, day := range plan.Days {
		if day.StudyDate >= "2025-01-03" {
			t.Fatalf("day %s scheduled on or after the deadline", day.StudyDate)
		}
	}
}

func TestBuild_StartAfterDeadlineIsValidationError(t *testing.T) {
	params := baseParameters()
	params.StartAt = date(2025, 1, 11)
	params.Deadline = date(2025, 1, 1)

	_, err := Build(basePreference(), params, nil)
	var ae *apierr.Error
	if !errors.As(err, &ae) || ae.Code != apierr.CodeValidation {
		t.Fatalf("expected validation_error, got %v", err)
	}
}

func TestBuild_StartEqualsDeadlineIsValidationError(t *testing.T) {
	params := baseParameters()
	params.Deadline = params.StartAt

	_, err := Build(basePreference(), params, nil)
	var ae *apierr.Error
	if !errors.As(err, &ae) || ae.Code != apierr.CodeValidation {
		t.Fatalf("expected validation_error, got %v", err)
	}
}

func TestBuild_PropagatesInsufficientAvailability(t *testing.T) {
	skip, err := ParseSkipDays([]string{"Monday", "Tuesday", "Wednesday", "Thursday", "Friday", "Saturday"})
	if err != nil {
		t.Fatalf("parse skip days: %v", err)
	}
	pref := basePreference()
	pref.DaysPerWeek = 5
	params := baseParameters()
	params.Deadline = date(2025, 1, 8)
	params.SkipDays = skip

	_, err = Build(pref, params, nil)
	var ae *apierr.Error
	if !errors.As(err, &ae) || ae.Code != apierr.CodeInsufficientAvailability {
		t.Fatalf("expected insufficient_availability, got %v", err)
	}
}

func TestBuild_TraitMultipliersCompound(t *testing.T) {
	pref := basePreference()
	pref.Strengths = []Strength{StrengthContinuousFocus, StrengthOrganizing}
	pref.Weaknesses = []Weakness{WeaknessStress}

	plan, err := Build(pref, baseParameters(), nil)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	// 1.0 * 1.25 * 1.20 * 0.85, still under the 1.5 cap.
	if !almostEqual(plan.AdjustedSessionHours, 1.0*1.25*1.20*0.85) {
		t.Fatalf("unexpected adjusted session hours %v", plan.AdjustedSessionHours)
	}
}

func TestBuild_AdjustedHoursCapped(t *testing.T) {
	pref := basePreference()
	pref.Strengths = []Strength{StrengthContinuousFocus, StrengthSustainedFocus}
	params := baseParameters()
	params.EstimatedHours = 40

	plan, err := Build(pref, params, nil)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !almostEqual(plan.AdjustedSessionHours, 1.5) {
		t.Fatalf("expected 1.5 cap, got %v", plan.AdjustedSessionHours)
	}
}

// The adjusted figure is reported only; day sizing follows the daily
// budget. A trait-heavy preference must not change the allocated sessions.
func TestBuild_TraitsDoNotChangeAllocation(t *testing.T) {
	plain, err := Build(basePreference(), baseParameters(), nil)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	pref := basePreference()
	pref.Weaknesses = []Weakness{WeaknessDistraction, WeaknessProcrastination}
	weighted, err := Build(pref, baseParameters(), nil)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if !reflect.DeepEqual(plain.Days, weighted.Days) {
		t.Fatalf("trait multipliers changed the day allocation")
	}
	if almostEqual(plain.AdjustedSessionHours, weighted.AdjustedSessionHours) {
		t.Fatalf("expected traits to move the adjusted figure")
	}
}

func TestBuild_ZeroEstimatedHoursRejected(t *testing.T) {
	params := baseParameters()
	params.EstimatedHours = 0

	_, err := Build(basePreference(), params, nil)
	var ae *apierr.Error
	if !errors.As(err, &ae) || ae.Code != apierr.CodeValidation {
		t.Fatalf("expected validation_error, got %v", err)
	}
}
