package repos

import (
	"context"

	"gorm.io/gorm"

	"github.com/studyhive/studyhive-backend/internal/logger"
	"github.com/studyhive/studyhive-backend/internal/types"
)

type ResourceRepo interface {
	Create(ctx context.Context, tx *gorm.DB, resources []*types.Resource) ([]*types.Resource, error)
	GetBySubjectLevel(ctx context.Context, tx *gorm.DB, subject, studyLevel string) ([]*types.Resource, error)
}

type resourceRepo struct {
	db  *gorm.DB
	log *logger.Logger
}

func NewResourceRepo(db *gorm.DB, baseLog *logger.Logger) ResourceRepo {
	return &resourceRepo{db: db, log: baseLog.With("repo", "ResourceRepo")}
}

func (r *resourceRepo) conn(tx *gorm.DB) *gorm.DB {
	if tx != nil {
		return tx
	}
	return r.db
}

func (r *resourceRepo) Create(ctx context.Context, tx *gorm.DB, resources []*types.Resource) ([]*types.Resource, error) {
	if len(resources) == 0 {
		return []*types.Resource{}, nil
	}
	if err := r.conn(tx).WithContext(ctx).Create(&resources).Error; err != nil {
		return nil, err
	}
	return resources, nil
}

func (r *resourceRepo) GetBySubjectLevel(ctx context.Context, tx *gorm.DB, subject, studyLevel string) ([]*types.Resource, error) {
	var results []*types.Resource
	if err := r.conn(tx).WithContext(ctx).
		Where("subject = ? AND study_level = ?", subject, studyLevel).
		Find(&results).Error; err != nil {
		return nil, err
	}
	return results, nil
}
