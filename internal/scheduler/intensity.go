package scheduler

// Preference is the slice of a user's stored preference record that the
// scheduler consumes.
type Preference struct {
	HoursPerDay float64
	DaysPerWeek int
	StudyTime   StudyTime
	Strengths   []Strength
	Weaknesses  []Weakness
}

// Snapshots holds the latest quiz score per difficulty level for one
// subject, as percentages. A missing level means no evidence, not zero.
type Snapshots map[Level]float64

const (
	// maxDailyHours caps the daily budget no matter what the user asked for.
	maxDailyHours = 4.0
	// strongScore is the percentage above which a level counts as mastered.
	strongScore = 60.0
)

// Reduction factors per mastered level. Harder levels reduce more: a user
// acing Advanced needs less daily volume than one acing Beginner.
var levelFactors = map[Level]float64{
	LevelAdvanced:     0.7,
	LevelIntermediate: 0.8,
	LevelBeginner:     0.9,
}

// DailyBudget maps stated preference plus demonstrated mastery into the
// effective study-hour budget per day. Strong performance shrinks the
// budget by the most conservative applicable factor; no strong performance
// anywhere grows it by half an hour, still capped at maxDailyHours.
func DailyBudget(pref Preference, scores Snapshots) float64 {
	budget := pref.HoursPerDay
	if budget > maxDailyHours {
		budget = maxDailyHours
	}

	var factor float64
	for level, score := range scores {
		if score <= strongScore {
			continue
		}
		f, ok := levelFactors[level]
		if !ok {
			continue
		}
		if factor == 0 || f < factor {
			factor = f
		}
	}

	if factor > 0 {
		return budget * factor
	}
	budget += 0.5
	if budget > maxDailyHours {
		budget = maxDailyHours
	}
	return budget
}
