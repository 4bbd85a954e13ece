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

type QuizResultRepo interface {
	// Upsert saves the latest result for a (user, subject, level) triple;
	// later saves overwrite. Returns true when a new row was created.
	Upsert(ctx context.Context, tx *gorm.DB, result *types.QuizResult) (bool, error)
	GetByUserSubject(ctx context.Context, tx *gorm.DB, userID uuid.UUID, subject string) ([]*types.QuizResult, error)
	GetByUser(ctx context.Context, tx *gorm.DB, userID uuid.UUID) ([]*types.QuizResult, error)
}

type quizResultRepo struct {
	db  *gorm.DB
	log *logger.Logger
}

func NewQuizResultRepo(db *gorm.DB, baseLog *logger.Logger) QuizResultRepo {
	return &quizResultRepo{db: db, log: baseLog.With("repo", "QuizResultRepo")}
}

func (r *quizResultRepo) conn(tx *gorm.DB) *gorm.DB {
	if tx != nil {
		return tx
	}
	return r.db
}

func (r *quizResultRepo) Upsert(ctx context.Context, tx *gorm.DB, result *types.QuizResult) (bool, error) {
	conn := r.conn(tx).WithContext(ctx)

	var existing types.QuizResult
	err := conn.
		Where("user_id = ? AND subject = ? AND level = ?", result.UserID, result.Subject, result.Level).
		First(&existing).Error
	created := errors.Is(err, gorm.ErrRecordNotFound)
	if err != nil && !created {
		return false, err
	}
	if !created {
		result.ID = existing.ID
		result.CreatedAt = existing.CreatedAt
	}

	err = conn.Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "user_id"}, {Name: "subject"}, {Name: "level"}},
		DoUpdates: clause.AssignmentColumns([]string{"results", "updated_at"}),
	}).Create(result).Error
	if err != nil {
		return false, err
	}
	return created, nil
}

func (r *quizResultRepo) GetByUserSubject(ctx context.Context, tx *gorm.DB, userID uuid.UUID, subject string) ([]*types.QuizResult, error) {
	var results []*types.QuizResult
	if err := r.conn(tx).WithContext(ctx).
		Where("user_id = ? AND subject = ?", userID, subject).
		Find(&results).Error; err != nil {
		return nil, err
	}
	return results, nil
}

func (r *quizResultRepo) GetByUser(ctx context.Context, tx *gorm.DB, userID uuid.UUID) ([]*types.QuizResult, error) {
	var results []*types.QuizResult
	if err := r.conn(tx).WithContext(ctx).
		Where("user_id = ?", userID).
		Order("subject, level").
		Find(&results).Error; err != nil {
		return nil, err
	}
	return results, nil
}
