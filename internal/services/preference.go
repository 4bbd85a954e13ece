package services

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"gorm.io/datatypes"
	"gorm.io/gorm"

	"github.com/studyhive/studyhive-backend/internal/apierr"
	"github.com/studyhive/studyhive-backend/internal/logger"
	"github.com/studyhive/studyhive-backend/internal/repos"
	"github.com/studyhive/studyhive-backend/internal/scheduler"
	"github.com/studyhive/studyhive-backend/internal/types"
)

type PreferenceInput struct {
	HoursPerDay        float64  `json:"hours_per_day"`
	DaysPerWeek        int      `json:"days_per_week"`
	PreferredStudyTime string   `json:"preferred_study_time"`
	Strengths          []string `json:"strengths"`
	Weaknesses         []string `json:"weaknesses"`
}

type PreferenceService interface {
	// Save creates the user's single preference record or updates it in
	// place. Returns true when the record was created.
	Save(ctx context.Context, userID uuid.UUID, input PreferenceInput) (bool, error)
	Get(ctx context.Context, userID uuid.UUID) (*types.UserPreference, error)
}

type preferenceService struct {
	db       *gorm.DB
	log      *logger.Logger
	prefRepo repos.UserPreferenceRepo
}

func NewPreferenceService(db *gorm.DB, log *logger.Logger, prefRepo repos.UserPreferenceRepo) PreferenceService {
	return &preferenceService{
		db:       db,
		log:      log.With("service", "PreferenceService"),
		prefRepo: prefRepo,
	}
}

func (ps *preferenceService) Save(ctx context.Context, userID uuid.UUID, input PreferenceInput) (bool, error) {
	if input.HoursPerDay < 0 || input.HoursPerDay > 24 {
		return false, apierr.Validation("hours per day must be between 0 and 24")
	}
	if input.DaysPerWeek < 1 || input.DaysPerWeek > 7 {
		return false, apierr.Validation("days per week must be between 1 and 7")
	}
	if _, err := scheduler.ParseStudyTime(input.PreferredStudyTime); err != nil {
		return false, err
	}
	for _, s := range input.Strengths {
		if _, err := scheduler.ParseStrength(s); err != nil {
			return false, err
		}
	}
	for _, w := range input.Weaknesses {
		if _, err := scheduler.ParseWeakness(w); err != nil {
			return false, err
		}
	}

	strengths, err := json.Marshal(input.Strengths)
	if err != nil {
		return false, fmt.Errorf("marshal strengths: %w", err)
	}
	weaknesses, err := json.Marshal(input.Weaknesses)
	if err != nil {
		return false, fmt.Errorf("marshal weaknesses: %w", err)
	}

	pref := &types.UserPreference{
		ID:                 uuid.New(),
		UserID:             userID,
		HoursPerDay:        input.HoursPerDay,
		DaysPerWeek:        input.DaysPerWeek,
		PreferredStudyTime: input.PreferredStudyTime,
		Strengths:          datatypes.JSON(strengths),
		Weaknesses:         datatypes.JSON(weaknesses),
	}
	created, err := ps.prefRepo.Upsert(ctx, nil, pref)
	if err != nil {
		return false, fmt.Errorf("save preferences: %w", err)
	}
	return created, nil
}

func (ps *preferenceService) Get(ctx context.Context, userID uuid.UUID) (*types.UserPreference, error) {
	pref, err := ps.prefRepo.GetByUserID(ctx, nil, userID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apierr.NotFound("user preferences not found")
		}
		return nil, fmt.Errorf("retrieve preferences: %w", err)
	}
	return pref, nil
}

// SchedulerPreference converts a stored preference record into the typed
// slice the scheduler consumes. Labels outside the fixed vocabularies are
// carried through; the scheduler ignores what it does not rate.
func SchedulerPreference(pref *types.UserPreference) scheduler.Preference {
	var strengths []string
	var weaknesses []string
	_ = json.Unmarshal(pref.Strengths, &strengths)
	_ = json.Unmarshal(pref.Weaknesses, &weaknesses)

	out := scheduler.Preference{
		HoursPerDay: pref.HoursPerDay,
		DaysPerWeek: pref.DaysPerWeek,
		StudyTime:   scheduler.StudyTime(pref.PreferredStudyTime),
	}
	for _, s := range strengths {
		out.Strengths = append(out.Strengths, scheduler.Strength(s))
	}
	for _, w := range weaknesses {
		out.Weaknesses = append(out.Weaknesses, scheduler.Weakness(w))
	}
	return out
}
