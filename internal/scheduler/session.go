package scheduler

import (
	"fmt"
	"math"
	"time"
)

const (
	maxSessionHours   = 1.5
	maxSessionsPerDay = 2
	sessionGapMinutes = 30

	minutesPerDay = 24 * 60
)

// Session is one time-boxed study block within a day. Clock times are
// HH:MM strings with no date component.
type Session struct {
	StartTime    string  `json:"start_time"`
	EndTime      string  `json:"end_time"`
	HoursToStudy float64 `json:"hours_to_study"`
}

// DayPlan is a single calendar day's schedule.
type DayPlan struct {
	StudyDate  string    `json:"study_date"`
	Sessions   []Session `json:"sessions"`
	Subject    string    `json:"subject"`
	StudyTime  StudyTime `json:"study_time"`
	TotalHours float64   `json:"total_hours"`
}

// anchorMinutes maps the preferred time of day onto the first session's
// start, in minutes from midnight. The 08:00 fallback is unreachable
// through validated preferences but kept for callers that relax validation.
func anchorMinutes(studyTime StudyTime) int {
	switch studyTime {
	case StudyTimeMorning:
		return 6 * 60
	case StudyTimeDay:
		return 12 * 60
	case StudyTimeNight:
		return 21 * 60
	default:
		return 8 * 60
	}
}

// AllocateDay splits a day's hour budget into one or two bounded sessions
// anchored to the preferred time of day, separated by a fixed 30-minute
// buffer. Night sessions may wrap past midnight; clock strings wrap with
// them.
func AllocateDay(date time.Time, dailyHourBudget float64, studyTime StudyTime) DayPlan {
	sessionsPerDay := int(math.Ceil(dailyHourBudget / maxSessionHours))
	if sessionsPerDay < 1 {
		sessionsPerDay = 1
	}
	if sessionsPerDay > maxSessionsPerDay {
		sessionsPerDay = maxSessionsPerDay
	}

	sessionHours := dailyHourBudget / float64(sessionsPerDay)
	if sessionHours > maxSessionHours {
		sessionHours = maxSessionHours
	}
	sessionMinutes := int(math.Round(sessionHours * 60))

	sessions := make([]Session, 0, sessionsPerDay)
	cursor := anchorMinutes(studyTime)
	for i := 0; i < sessionsPerDay; i++ {
		end := cursor + sessionMinutes
		sessions = append(sessions, Session{
			StartTime:    clockString(cursor),
			EndTime:      clockString(end),
			HoursToStudy: round2(sessionHours),
		})
		cursor = end + sessionGapMinutes
	}

	return DayPlan{
		StudyDate:  date.Format("2006-01-02"),
		Sessions:   sessions,
		StudyTime:  studyTime,
		TotalHours: round2(sessionHours * float64(sessionsPerDay)),
	}
}

func clockString(minutes int) string {
	m := ((minutes % minutesPerDay) + minutesPerDay) % minutesPerDay
	return fmt.Sprintf("%02d:%02d", m/60, m%60)
}

func round2(v float64) float64 {
	return math.Round(v*100) / 100
}
