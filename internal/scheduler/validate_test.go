package scheduler

import (
	"errors"
	"testing"

	"github.com/studyhive/studyhive-backend/internal/apierr"
)

func validDay() DayPlan {
	return DayPlan{
		StudyDate: "2025-01-02",
		Sessions: []Session{
			{StartTime: "06:00", EndTime: "07:15", HoursToStudy: 1.25},
			{StartTime: "07:45", EndTime: "09:00", HoursToStudy: 1.25},
		},
		Subject:    "OOP",
		StudyTime:  StudyTimeMorning,
		TotalHours: 2.5,
	}
}

func expectValidationError(t *testing.T, err error) {
	t.Helper()
	var ae *apierr.Error
	if !errors.As(err, &ae) || ae.Code != apierr.CodeValidation {
		t.Fatalf("expected validation_error, got %v", err)
	}
}

func TestValidatePlan_AcceptsWellFormedPlan(t *testing.T) {
	if err := ValidatePlan([]DayPlan{validDay()}); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
}

func TestValidatePlan_EmptyPlanRejected(t *testing.T) {
	expectValidationError(t, ValidatePlan(nil))
}

func TestValidatePlan_MissingFieldsRejected(t *testing.T) {
	day := validDay()
	day.Subject = ""
	expectValidationError(t, ValidatePlan([]DayPlan{day}))

	day = validDay()
	day.Sessions = nil
	expectValidationError(t, ValidatePlan([]DayPlan{day}))

	day = validDay()
	day.StudyDate = ""
	expectValidationError(t, ValidatePlan([]DayPlan{day}))
}

func TestValidatePlan_BadDateRejected(t *testing.T) {
	day := validDay()
	day.StudyDate = "02/01/2025"
	expectValidationError(t, ValidatePlan([]DayPlan{day}))
}

func TestValidatePlan_BadClockTimeRejected(t *testing.T) {
	day := validDay()
	day.Sessions[0].StartTime = "6am"
	expectValidationError(t, ValidatePlan([]DayPlan{day}))

	day = validDay()
	day.Sessions[1].EndTime = "25:00"
	expectValidationError(t, ValidatePlan([]DayPlan{day}))
}

func TestValidatePlan_NonPositiveNumbersRejected(t *testing.T) {
	day := validDay()
	day.TotalHours = 0
	expectValidationError(t, ValidatePlan([]DayPlan{day}))

	day = validDay()
	day.Sessions[0].HoursToStudy = -1
	expectValidationError(t, ValidatePlan([]DayPlan{day}))
}

// Structural validation only: a plan whose numbers do not add up still
// passes, matching how manual edits are accepted.
func TestValidatePlan_NumericInconsistencyAccepted(t *testing.T) {
	day := validDay()
	day.TotalHours = 99
	day.Sessions[0].HoursToStudy = 0.1
	if err := ValidatePlan([]DayPlan{day}); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
}
