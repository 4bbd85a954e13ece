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

type StudyPlanRepo interface {
	// UpsertByTaskEvent replaces the plan for the task event in place, or
	// creates the row on the first successful build. The unique index on
	// task_event_id makes the conflict path a transactional replace, so
	// concurrent builds for one task never accumulate duplicates.
	UpsertByTaskEvent(ctx context.Context, tx *gorm.DB, plan *types.StudyPlan) (*types.StudyPlan, error)
	GetByTaskEventID(ctx context.Context, tx *gorm.DB, userID, taskEventID uuid.UUID) (*types.StudyPlan, error)
	ListByUser(ctx context.Context, tx *gorm.DB, userID uuid.UUID) ([]*types.StudyPlan, error)
}

type studyPlanRepo struct {
	db  *gorm.DB
	log *logger.Logger
}

func NewStudyPlanRepo(db *gorm.DB, baseLog *logger.Logger) StudyPlanRepo {
	return &studyPlanRepo{db: db, log: baseLog.With("repo", "StudyPlanRepo")}
}

func (r *studyPlanRepo) conn(tx *gorm.DB) *gorm.DB {
	if tx != nil {
		return tx
	}
	return r.db
}

func (r *studyPlanRepo) UpsertByTaskEvent(ctx context.Context, tx *gorm.DB, plan *types.StudyPlan) (*types.StudyPlan, error) {
	conn := r.conn(tx).WithContext(ctx)

	var existing types.StudyPlan
	err := conn.Where("task_event_id = ?", plan.TaskEventID).First(&existing).Error
	if err != nil && !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, err
	}
	if err == nil {
		plan.ID = existing.ID
		plan.CreatedAt = existing.CreatedAt
	}

	err = conn.Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "task_event_id"}},
		DoUpdates: clause.AssignmentColumns([]string{"subject", "study_type", "plan", "updated_at"}),
	}).Create(plan).Error
	if err != nil {
		return nil, err
	}
	return plan, nil
}

func (r *studyPlanRepo) GetByTaskEventID(ctx context.Context, tx *gorm.DB, userID, taskEventID uuid.UUID) (*types.StudyPlan, error) {
	var result types.StudyPlan
	err := r.conn(tx).WithContext(ctx).
		Where("task_event_id = ? AND user_id = ?", taskEventID, userID).
		First(&result).Error
	if err != nil {
		return nil, err
	}
	return &result, nil
}

func (r *studyPlanRepo) ListByUser(ctx context.Context, tx *gorm.DB, userID uuid.UUID) ([]*types.StudyPlan, error) {
	var results []*types.StudyPlan
	if err := r.conn(tx).WithContext(ctx).
		Where("user_id = ?", userID).
		Order("created_at").
		Find(&results).Error; err != nil {
		return nil, err
	}
	return results, nil
}
