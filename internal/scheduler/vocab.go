package scheduler

import (
	"time"

	"github.com/studyhive/studyhive-backend/internal/apierr"
)

// Level is a quiz difficulty tier.
type Level string

const (
	LevelBeginner     Level = "Beginner"
	LevelIntermediate Level = "Intermediate"
	LevelAdvanced     Level = "Advanced"
)

func ParseLevel(s string) (Level, error) {
	switch Level(s) {
	case LevelBeginner, LevelIntermediate, LevelAdvanced:
		return Level(s), nil
	}
	return "", apierr.Validation("unknown quiz level %q", s)
}

// StudyTime is the user's preferred time of day for sessions.
type StudyTime string

const (
	StudyTimeMorning StudyTime = "Morning"
	StudyTimeDay     StudyTime = "Day"
	StudyTimeNight   StudyTime = "Night"
)

func ParseStudyTime(s string) (StudyTime, error) {
	switch StudyTime(s) {
	case StudyTimeMorning, StudyTimeDay, StudyTimeNight:
		return StudyTime(s), nil
	}
	return "", apierr.Validation("unknown study time %q", s)
}

// Strength and Weakness are the fixed self-assessment vocabularies. Each
// label carries a rating that scales the per-session hour multiplier.
type Strength string

const (
	StrengthContinuousFocus  Strength = "continuous-focus"
	StrengthOrganizing       Strength = "organizing"
	StrengthQuickLearner     Strength = "quick-learner"
	StrengthSustainedFocus   Strength = "sustained-focus"
	StrengthReadingRetention Strength = "reading-retention"
)

var strengthRatings = map[Strength]int{
	StrengthContinuousFocus:  5,
	StrengthOrganizing:       4,
	StrengthQuickLearner:     4,
	StrengthSustainedFocus:   5,
	StrengthReadingRetention: 3,
}

func ParseStrength(s string) (Strength, error) {
	if _, ok := strengthRatings[Strength(s)]; ok {
		return Strength(s), nil
	}
	return "", apierr.Validation("unknown strength %q", s)
}

type Weakness string

const (
	WeaknessDistraction     Weakness = "distraction"
	WeaknessProcrastination Weakness = "procrastination"
	WeaknessMotivation      Weakness = "motivation"
	WeaknessOrganizing      Weakness = "organizing"
	WeaknessStress          Weakness = "stress"
)

var weaknessRatings = map[Weakness]int{
	WeaknessDistraction:     5,
	WeaknessProcrastination: 5,
	WeaknessMotivation:      4,
	WeaknessOrganizing:      4,
	WeaknessStress:          3,
}

func ParseWeakness(s string) (Weakness, error) {
	if _, ok := weaknessRatings[Weakness(s)]; ok {
		return Weakness(s), nil
	}
	return "", apierr.Validation("unknown weakness %q", s)
}

// SkipDays is the set of weekdays excluded from scheduling.
type SkipDays map[time.Weekday]bool

var weekdayNames = map[string]time.Weekday{
	"Sunday":    time.Sunday,
	"Monday":    time.Monday,
	"Tuesday":   time.Tuesday,
	"Wednesday": time.Wednesday,
	"Thursday":  time.Thursday,
	"Friday":    time.Friday,
	"Saturday":  time.Saturday,
}

func ParseSkipDays(names []string) (SkipDays, error) {
	skip := SkipDays{}
	for _, name := range names {
		wd, ok := weekdayNames[name]
		if !ok {
			return nil, apierr.Validation("unknown weekday %q", name)
		}
		skip[wd] = true
	}
	return skip, nil
}

// Names returns the skip set as weekday names in calendar order.
func (s SkipDays) Names() []string {
	var names []string
	for wd := time.Sunday; wd <= time.Saturday; wd++ {
		if s[wd] {
			names = append(names, wd.String())
		}
	}
	return names
}
