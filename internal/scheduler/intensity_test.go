package scheduler

import (
	"math"
	"testing"
)

func almostEqual(a, b float64) bool {
	return math.Abs(a-b) < 1e-9
}

func TestDailyBudget_NoEvidenceIncreasesBudget(t *testing.T) {
	pref := Preference{HoursPerDay: 2, DaysPerWeek: 7}

	got := DailyBudget(pref, Snapshots{})
	if !almostEqual(got, 2.5) {
		t.Fatalf("expected 2.5 with no snapshots, got %v", got)
	}

	got = DailyBudget(pref, nil)
	if !almostEqual(got, 2.5) {
		t.Fatalf("expected 2.5 with nil snapshots, got %v", got)
	}
}

func TestDailyBudget_IncreaseIsCapped(t *testing.T) {
	pref := Preference{HoursPerDay: 4, DaysPerWeek: 7}
	got := DailyBudget(pref, Snapshots{})
	if !almostEqual(got, 4.0) {
		t.Fatalf("expected cap at 4.0, got %v", got)
	}
}

func TestDailyBudget_BaseIsCappedBeforeAdjustment(t *testing.T) {
	pref := Preference{HoursPerDay: 10, DaysPerWeek: 7}
	got := DailyBudget(pref, Snapshots{LevelBeginner: 75})
	if !almostEqual(got, 4.0*0.9) {
		t.Fatalf("expected 3.6 (4.0 * 0.9), got %v", got)
	}
}

func TestDailyBudget_MinimumFactorWins(t *testing.T) {
	pref := Preference{HoursPerDay: 4, DaysPerWeek: 7}
	scores := Snapshots{
		LevelBeginner:     90,
		LevelIntermediate: 70,
		LevelAdvanced:     61,
	}
	got := DailyBudget(pref, scores)
	if !almostEqual(got, 4.0*0.7) {
		t.Fatalf("expected 2.8 (advanced factor wins), got %v", got)
	}
}

func TestDailyBudget_ScoreAtThresholdDoesNotCount(t *testing.T) {
	pref := Preference{HoursPerDay: 3, DaysPerWeek: 7}
	got := DailyBudget(pref, Snapshots{LevelAdvanced: 60})
	if !almostEqual(got, 3.5) {
		t.Fatalf("expected the increase branch at exactly 60%%, got %v", got)
	}
}

// Stronger evidence at a level never yields a larger budget than no
// evidence at all.
func TestDailyBudget_Monotonic(t *testing.T) {
	pref := Preference{HoursPerDay: 3, DaysPerWeek: 7}
	baseline := DailyBudget(pref, Snapshots{})
	for _, level := range []Level{LevelBeginner, LevelIntermediate, LevelAdvanced} {
		for _, score := range []float64{0, 30, 60, 61, 85, 100} {
			got := DailyBudget(pref, Snapshots{level: score})
			if got > baseline {
				t.Fatalf("budget %v for %s=%v exceeds no-evidence baseline %v", got, level, score, baseline)
			}
		}
	}
}
