package repos

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/studyhive/studyhive-backend/internal/logger"
	"github.com/studyhive/studyhive-backend/internal/types"
)

type UserPreferenceRepo interface {
	// Upsert creates the user's preference row or updates it in place.
	// Returns true when a new row was created.
	Upsert(ctx context.Context, tx *gorm.DB, pref *types.UserPreference) (bool, error)
	GetByUserID(ctx context.Context, tx *gorm.DB, userID uuid.UUID) (*types.UserPreference, error)
}

type userPreferenceRepo struct {
	db  *gorm.DB
	log *logger.Logger
}

func NewUserPreferenceRepo(db *gorm.DB, baseLog *logger.Logger) UserPreferenceRepo {
	return &userPreferenceRepo{db: db, log: baseLog.With("repo", "UserPreferenceRepo")}
}

func (r *userPreferenceRepo) conn(tx *gorm.DB) *gorm.DB {
	if tx != nil {
		return tx
	}
	return r.db
}

func (r *userPreferenceRepo) Upsert(ctx context.Context, tx *gorm.DB, pref *types.UserPreference) (bool, error) {
	conn := r.conn(tx).WithContext(ctx)

	existing, err := r.GetByUserID(ctx, tx, pref.UserID)
	if err != nil && !errors.Is(err, gorm.ErrRecordNotFound) {
		return false, err
	}
	if existing != nil {
		pref.ID = existing.ID
		pref.CreatedAt = existing.CreatedAt
	}

	err = conn.Clauses(clause.OnConflict{
		Columns: []clause.Column{{Name: "user_id"}},
		DoUpdates: clause.AssignmentColumns([]string{
			"hours_per_day", "days_per_week", "preferred_study_time", "strengths", "weaknesses", "updated_at",
		}),
	}).Create(pref).Error
	if err != nil {
		return false, err
	}
	return existing == nil, nil
}

func (r *userPreferenceRepo) GetByUserID(ctx context.Context, tx *gorm.DB, userID uuid.UUID) (*types.UserPreference, error) {
	var result types.UserPreference
	err := r.conn(tx).WithContext(ctx).
		Where("user_id = ?", userID).
		First(&result).Error
	if err != nil {
		return nil, err
	}
	return &result, nil
}
