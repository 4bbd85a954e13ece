package services

import (
	"context"

	"gorm.io/gorm"

	"github.com/studyhive/studyhive-backend/internal/apierr"
	"github.com/studyhive/studyhive-backend/internal/logger"
	"github.com/studyhive/studyhive-backend/internal/repos"
	"github.com/studyhive/studyhive-backend/internal/scheduler"
	"github.com/studyhive/studyhive-backend/internal/types"
)

type ResourceInput struct {
	Subject    string `json:"subject"`
	Resource   string `json:"resource"`
	StudyLevel string `json:"study_level"`
}

type ResourceService interface {
	Add(ctx context.Context, inputs []ResourceInput) ([]*types.Resource, error)
	// GetBySubjectLevel returns curated material for a subject at one
	// difficulty level.
	GetBySubjectLevel(ctx context.Context, subject, studyLevel string) ([]*types.Resource, error)
}

type resourceService struct {
	db           *gorm.DB
	log          *logger.Logger
	resourceRepo repos.ResourceRepo
}

func NewResourceService(db *gorm.DB, log *logger.Logger, resourceRepo repos.ResourceRepo) ResourceService {
	return &resourceService{
		db:           db,
		log:          log.With("service", "ResourceService"),
		resourceRepo: resourceRepo,
	}
}

func (rs *resourceService) Add(ctx context.Context, inputs []ResourceInput) ([]*types.Resource, error) {
	if len(inputs) == 0 {
		return nil, apierr.Validation("at least one resource is required")
	}
	rows := make([]*types.Resource, 0, len(inputs))
	for _, input := range inputs {
		if input.Subject == "" || input.Resource == "" {
			return nil, apierr.Validation("subject and resource are required")
		}
		level, err := scheduler.ParseLevel(input.StudyLevel)
		if err != nil {
			return nil, err
		}
		rows = append(rows, &types.Resource{
			Subject:    input.Subject,
			Resource:   input.Resource,
			StudyLevel: string(level),
		})
	}
	return rs.resourceRepo.Create(ctx, nil, rows)
}

func (rs *resourceService) GetBySubjectLevel(ctx context.Context, subject, studyLevel string) ([]*types.Resource, error) {
	if subject == "" {
		return nil, apierr.Validation("subject is required")
	}
	level, err := scheduler.ParseLevel(studyLevel)
	if err != nil {
		return nil, err
	}
	rows, err := rs.resourceRepo.GetBySubjectLevel(ctx, nil, subject, string(level))
	if err != nil {
		return nil, err
	}
	if len(rows) == 0 {
		return nil, apierr.NotFound("no resources found for %s at %s level", subject, level)
	}
	return rows, nil
}
