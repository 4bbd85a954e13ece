package services

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
	"gorm.io/gorm"

	"github.com/studyhive/studyhive-backend/internal/apierr"
	"github.com/studyhive/studyhive-backend/internal/logger"
	"github.com/studyhive/studyhive-backend/internal/repos"
	"github.com/studyhive/studyhive-backend/internal/scheduler"
	"github.com/studyhive/studyhive-backend/internal/types"
)

type TaskEventInput struct {
	TaskName            string   `json:"task_name"`
	Subject             string   `json:"subject"`
	TaskType            string   `json:"task_type"`
	StartDate           string   `json:"start_date"`
	EventDate           string   `json:"event_date"`
	EstimatedStudyHours float64  `json:"estimated_study_hours"`
	Notes               string   `json:"notes"`
	Priority            string   `json:"priority"`
	SkipDays            []string `json:"skip_days"`
}

type TaskEventService interface {
	Create(ctx context.Context, userID uuid.UUID, input TaskEventInput) (*types.TaskEvent, error)
	ListActive(ctx context.Context, userID uuid.UUID) ([]*types.TaskEvent, error)
	ListAll(ctx context.Context, userID uuid.UUID) ([]*types.TaskEvent, error)
	ListCompleted(ctx context.Context, userID uuid.UUID) ([]*types.TaskEvent, error)
	UpdateStatus(ctx context.Context, userID, eventID uuid.UUID, status string) (*types.TaskEvent, error)
}

type taskEventService struct {
	db               *gorm.DB
	log              *logger.Logger
	taskEventRepo    repos.TaskEventRepo
	notificationRepo repos.NotificationRepo
}

func NewTaskEventService(db *gorm.DB, log *logger.Logger, taskEventRepo repos.TaskEventRepo, notificationRepo repos.NotificationRepo) TaskEventService {
	return &taskEventService{
		db:               db,
		log:              log.With("service", "TaskEventService"),
		taskEventRepo:    taskEventRepo,
		notificationRepo: notificationRepo,
	}
}

func (ts *taskEventService) Create(ctx context.Context, userID uuid.UUID, input TaskEventInput) (*types.TaskEvent, error) {
	if input.TaskName == "" || input.Subject == "" {
		return nil, apierr.Validation("task_name and subject are required")
	}
	startDate, err := ParseTimestamp(input.StartDate)
	if err != nil {
		return nil, apierr.Validation("invalid start_date: %v", err)
	}
	eventDate, err := ParseTimestamp(input.EventDate)
	if err != nil {
		return nil, apierr.Validation("invalid event_date: %v", err)
	}
	if input.EstimatedStudyHours <= 0 {
		return nil, apierr.Validation("estimated_study_hours must be positive")
	}
	if _, err := scheduler.ParseSkipDays(input.SkipDays); err != nil {
		return nil, err
	}

	skipDays, err := json.Marshal(input.SkipDays)
	if err != nil {
		return nil, fmt.Errorf("marshal skip days: %w", err)
	}

	event := &types.TaskEvent{
		ID:                  uuid.New(),
		UserID:              userID,
		TaskName:            input.TaskName,
		Subject:             input.Subject,
		TaskType:            input.TaskType,
		StartDate:           startDate,
		EventDate:           eventDate,
		EstimatedStudyHours: input.EstimatedStudyHours,
		Notes:               input.Notes,
		Priority:            input.Priority,
		Status:              types.TaskStatusPending,
		SkipDays:            datatypes.JSON(skipDays),
	}
	if _, err := ts.taskEventRepo.Create(ctx, nil, []*types.TaskEvent{event}); err != nil {
		return nil, fmt.Errorf("create task event: %w", err)
	}
	return event, nil
}

func (ts *taskEventService) ListActive(ctx context.Context, userID uuid.UUID) ([]*types.TaskEvent, error) {
	return ts.taskEventRepo.ListByUser(ctx, nil, userID, []string{types.TaskStatusDeleted, types.TaskStatusComplete})
}

func (ts *taskEventService) ListAll(ctx context.Context, userID uuid.UUID) ([]*types.TaskEvent, error) {
	return ts.taskEventRepo.ListByUser(ctx, nil, userID, []string{types.TaskStatusDeleted})
}

func (ts *taskEventService) ListCompleted(ctx context.Context, userID uuid.UUID) ([]*types.TaskEvent, error) {
	return ts.taskEventRepo.ListByStatus(ctx, nil, userID, types.TaskStatusComplete)
}

func (ts *taskEventService) UpdateStatus(ctx context.Context, userID, eventID uuid.UUID, status string) (*types.TaskEvent, error) {
	if !types.ValidTaskStatus(status) {
		return nil, apierr.Validation("invalid status value %q", status)
	}
	event, err := ts.taskEventRepo.UpdateStatus(ctx, nil, userID, eventID, status)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apierr.NotFound("task not found")
		}
		return nil, fmt.Errorf("update task status: %w", err)
	}

	_, err = ts.notificationRepo.Create(ctx, nil, []*types.Notification{{
		ID:     uuid.New(),
		UserID: userID,
		Title:  "Task Status Updated",
		Body:   fmt.Sprintf("Task %q is now %s", event.TaskName, status),
	}})
	if err != nil {
		// Status change already landed; a missed notification is not fatal.
		ts.log.Warn("create status notification failed", "task_event_id", eventID, "error", err)
	}
	return event, nil
}

// ParseTimestamp accepts the ISO-8601 shapes clients actually send:
// RFC3339, a bare datetime, or a bare date.
func ParseTimestamp(value string) (time.Time, error) {
	if value == "" {
		return time.Time{}, fmt.Errorf("empty timestamp")
	}
	for _, layout := range []string{time.RFC3339, "2006-01-02T15:04:05", "2006-01-02"} {
		if t, err := time.Parse(layout, value); err == nil {
			return t, nil
		}
	}
	return time.Time{}, fmt.Errorf("unrecognized timestamp %q", value)
}
