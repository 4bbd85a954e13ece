package scheduler

import (
	"time"

	"github.com/studyhive/studyhive-backend/internal/apierr"
)

// ValidatePlan checks a caller-supplied replacement plan against the
// structural schema: every day carries a parseable date, a session list,
// subject, study-time label and a positive total; every session carries
// parseable HH:MM bounds and positive hours. It deliberately does not
// re-derive the scheduling arithmetic — a structurally valid manual edit
// with inconsistent numbers passes.
func ValidatePlan(days []DayPlan) error {
	if len(days) == 0 {
		return apierr.Validation("a valid study plan list is required")
	}
	for _, day := range days {
		if day.StudyDate == "" || day.Sessions == nil || day.Subject == "" || day.StudyTime == "" {
			return apierr.Validation("each day must include study_date, sessions, subject, study_time, and total_hours")
		}
		if _, err := time.Parse("2006-01-02", day.StudyDate); err != nil {
			return apierr.Validation("invalid date format %q, use YYYY-MM-DD", day.StudyDate)
		}
		if day.TotalHours <= 0 {
			return apierr.Validation("total_hours must be a positive number")
		}
		for _, session := range day.Sessions {
			if session.StartTime == "" || session.EndTime == "" {
				return apierr.Validation("each session must include start_time, end_time, and hours_to_study")
			}
			if _, err := time.Parse("15:04", session.StartTime); err != nil {
				return apierr.Validation("invalid time format %q, use HH:MM", session.StartTime)
			}
			if _, err := time.Parse("15:04", session.EndTime); err != nil {
				return apierr.Validation("invalid time format %q, use HH:MM", session.EndTime)
			}
			if session.HoursToStudy <= 0 {
				return apierr.Validation("hours_to_study must be a positive number")
			}
		}
	}
	return nil
}
