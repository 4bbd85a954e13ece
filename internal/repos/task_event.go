package repos

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/studyhive/studyhive-backend/internal/logger"
	"github.com/studyhive/studyhive-backend/internal/types"
)

type TaskEventRepo interface {
	Create(ctx context.Context, tx *gorm.DB, events []*types.TaskEvent) ([]*types.TaskEvent, error)
	GetByID(ctx context.Context, tx *gorm.DB, userID, eventID uuid.UUID) (*types.TaskEvent, error)
	ListByUser(ctx context.Context, tx *gorm.DB, userID uuid.UUID, excludeStatuses []string) ([]*types.TaskEvent, error)
	ListByStatus(ctx context.Context, tx *gorm.DB, userID uuid.UUID, status string) ([]*types.TaskEvent, error)
	ListPendingBySubject(ctx context.Context, tx *gorm.DB, userID uuid.UUID, subject string) ([]*types.TaskEvent, error)
	UpdateStatus(ctx context.Context, tx *gorm.DB, userID, eventID uuid.UUID, status string) (*types.TaskEvent, error)
}

type taskEventRepo struct {
	db  *gorm.DB
	log *logger.Logger
}

func NewTaskEventRepo(db *gorm.DB, baseLog *logger.Logger) TaskEventRepo {
	return &taskEventRepo{db: db, log: baseLog.With("repo", "TaskEventRepo")}
}

func (r *taskEventRepo) conn(tx *gorm.DB) *gorm.DB {
	if tx != nil {
		return tx
	}
	return r.db
}

func (r *taskEventRepo) Create(ctx context.Context, tx *gorm.DB, events []*types.TaskEvent) ([]*types.TaskEvent, error) {
	if len(events) == 0 {
		return []*types.TaskEvent{}, nil
	}
	if err := r.conn(tx).WithContext(ctx).Create(&events).Error; err != nil {
		return nil, err
	}
	return events, nil
}

func (r *taskEventRepo) GetByID(ctx context.Context, tx *gorm.DB, userID, eventID uuid.UUID) (*types.TaskEvent, error) {
	var result types.TaskEvent
	err := r.conn(tx).WithContext(ctx).
		Where("id = ? AND user_id = ?", eventID, userID).
		First(&result).Error
	if err != nil {
		return nil, err
	}
	return &result, nil
}

func (r *taskEventRepo) ListByUser(ctx context.Context, tx *gorm.DB, userID uuid.UUID, excludeStatuses []string) ([]*types.TaskEvent, error) {
	var results []*types.TaskEvent
	query := r.conn(tx).WithContext(ctx).
		Where("user_id = ?", userID)
	if len(excludeStatuses) > 0 {
		query = query.Where("status NOT IN ?", excludeStatuses)
	}
	if err := query.Order("event_date").Find(&results).Error; err != nil {
		return nil, err
	}
	return results, nil
}

func (r *taskEventRepo) ListByStatus(ctx context.Context, tx *gorm.DB, userID uuid.UUID, status string) ([]*types.TaskEvent, error) {
	var results []*types.TaskEvent
	if err := r.conn(tx).WithContext(ctx).
		Where("user_id = ? AND status = ?", userID, status).
		Order("event_date").
		Find(&results).Error; err != nil {
		return nil, err
	}
	return results, nil
}

func (r *taskEventRepo) ListPendingBySubject(ctx context.Context, tx *gorm.DB, userID uuid.UUID, subject string) ([]*types.TaskEvent, error) {
	var results []*types.TaskEvent
	if err := r.conn(tx).WithContext(ctx).
		Where("user_id = ? AND subject = ? AND status = ?", userID, subject, types.TaskStatusPending).
		Order("event_date").
		Find(&results).Error; err != nil {
		return nil, err
	}
	return results, nil
}

func (r *taskEventRepo) UpdateStatus(ctx context.Context, tx *gorm.DB, userID, eventID uuid.UUID, status string) (*types.TaskEvent, error) {
	event, err := r.GetByID(ctx, tx, userID, eventID)
	if err != nil {
		return nil, err
	}
	event.Status = status
	if err := r.conn(tx).WithContext(ctx).Save(event).Error; err != nil {
		return nil, err
	}
	return event, nil
}
