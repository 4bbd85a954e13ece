package services

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"sync"

	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"
	"gorm.io/datatypes"
	"gorm.io/gorm"

	"github.com/studyhive/studyhive-backend/internal/apierr"
	"github.com/studyhive/studyhive-backend/internal/clients/redis"
	"github.com/studyhive/studyhive-backend/internal/logger"
	"github.com/studyhive/studyhive-backend/internal/repos"
	"github.com/studyhive/studyhive-backend/internal/scheduler"
	"github.com/studyhive/studyhive-backend/internal/types"
)

// studyTypeExamPrep tags generated plans; manual edits keep the tag.
const studyTypeExamPrep = "exam preparation"

// regenerateParallelism bounds concurrent per-task builds in a bulk
// regeneration. Builds are independent; only the final upserts serialize,
// per task, behind the plan lock.
const regenerateParallelism = 4

type GeneratePlanInput struct {
	TaskEventID         uuid.UUID `json:"id"`
	Subject             string    `json:"subject"`
	StudyStartDate      string    `json:"study_start_date"`
	ExamDate            string    `json:"exam_date"`
	EstimatedStudyHours float64   `json:"estimated_study_hours"`
}

type GeneratePlanResult struct {
	StudyPlanID     uuid.UUID           `json:"study_plan_id"`
	Days            []scheduler.DayPlan `json:"study_plan"`
	TotalStudyHours float64             `json:"total_study_hours"`
}

type RegeneratedPlan struct {
	TaskEventID     uuid.UUID `json:"task_event_id"`
	TaskName        string    `json:"task_name"`
	StudyPlanID     uuid.UUID `json:"study_plan_id"`
	TotalStudyHours float64   `json:"total_study_hours"`
}

type RegenerateError struct {
	TaskEventID uuid.UUID `json:"task_event_id"`
	TaskName    string    `json:"task_name"`
	Error       string    `json:"error"`
}

type BatchStatus string

const (
	BatchStatusFull    BatchStatus = "full"
	BatchStatusPartial BatchStatus = "partial"
	BatchStatusFailed  BatchStatus = "failed"
	BatchStatusEmpty   BatchStatus = "empty"
)

type RegenerateResult struct {
	UpdatedPlans []RegeneratedPlan `json:"updated_plans"`
	Errors       []RegenerateError `json:"errors"`
	Status       BatchStatus       `json:"-"`
}

type StudyPlanService interface {
	// Generate builds and persists the plan for one task event. Repeat
	// calls replace the stored plan in place.
	Generate(ctx context.Context, userID uuid.UUID, input GeneratePlanInput) (*GeneratePlanResult, error)
	// RegenerateForSubject rebuilds every Pending task for the subject.
	// Per-task failures are collected, never escalated.
	RegenerateForSubject(ctx context.Context, userID uuid.UUID, subject string) (*RegenerateResult, error)
	// UpdatePlan applies a manually edited plan after structural validation.
	UpdatePlan(ctx context.Context, userID, taskEventID uuid.UUID, days []scheduler.DayPlan) (*GeneratePlanResult, error)
	GetByTaskEvent(ctx context.Context, userID, taskEventID uuid.UUID) (*types.StudyPlan, error)
	ListByUser(ctx context.Context, userID uuid.UUID) ([]*types.StudyPlan, error)
}

type studyPlanService struct {
	db               *gorm.DB
	log              *logger.Logger
	prefRepo         repos.UserPreferenceRepo
	quizResultRepo   repos.QuizResultRepo
	taskEventRepo    repos.TaskEventRepo
	studyPlanRepo    repos.StudyPlanRepo
	notificationRepo repos.NotificationRepo
	planLock         redis.PlanLock
}

func NewStudyPlanService(
	db *gorm.DB,
	log *logger.Logger,
	prefRepo repos.UserPreferenceRepo,
	quizResultRepo repos.QuizResultRepo,
	taskEventRepo repos.TaskEventRepo,
	studyPlanRepo repos.StudyPlanRepo,
	notificationRepo repos.NotificationRepo,
	planLock redis.PlanLock,
) StudyPlanService {
	return &studyPlanService{
		db:               db,
		log:              log.With("service", "StudyPlanService"),
		prefRepo:         prefRepo,
		quizResultRepo:   quizResultRepo,
		taskEventRepo:    taskEventRepo,
		studyPlanRepo:    studyPlanRepo,
		notificationRepo: notificationRepo,
		planLock:         planLock,
	}
}

func (sp *studyPlanService) Generate(ctx context.Context, userID uuid.UUID, input GeneratePlanInput) (*GeneratePlanResult, error) {
	startAt, err := ParseTimestamp(input.StudyStartDate)
	if err != nil {
		return nil, apierr.Validation("invalid date format: %v", err)
	}
	deadline, err := ParseTimestamp(input.ExamDate)
	if err != nil {
		return nil, apierr.Validation("invalid date format: %v", err)
	}

	params := scheduler.TaskParameters{
		Subject:        input.Subject,
		StartAt:        startAt,
		Deadline:       deadline,
		EstimatedHours: input.EstimatedStudyHours,
		SkipDays:       sp.skipDaysForTask(ctx, userID, input.TaskEventID),
	}

	plan, err := sp.buildForTask(ctx, userID, params)
	if err != nil {
		return nil, err
	}

	stored, err := sp.persistPlan(ctx, userID, input.TaskEventID, params.Subject, plan.Days)
	if err != nil {
		return nil, err
	}
	return &GeneratePlanResult{
		StudyPlanID:     stored.ID,
		Days:            plan.Days,
		TotalStudyHours: plan.TotalHours(),
	}, nil
}

func (sp *studyPlanService) RegenerateForSubject(ctx context.Context, userID uuid.UUID, subject string) (*RegenerateResult, error) {
	if subject == "" {
		return nil, apierr.Validation("subject is required")
	}

	tasks, err := sp.taskEventRepo.ListPendingBySubject(ctx, nil, userID, subject)
	if err != nil {
		return nil, fmt.Errorf("list pending tasks: %w", err)
	}
	if len(tasks) == 0 {
		return &RegenerateResult{
			UpdatedPlans: []RegeneratedPlan{},
			Errors:       []RegenerateError{},
			Status:       BatchStatusEmpty,
		}, nil
	}

	updated := make([]*RegeneratedPlan, len(tasks))
	failures := make([]*RegenerateError, len(tasks))
	var mu sync.Mutex

	group, groupCtx := errgroup.WithContext(ctx)
	group.SetLimit(regenerateParallelism)
	for i, task := range tasks {
		group.Go(func() error {
			entry, err := sp.regenerateTask(groupCtx, userID, task)
			mu.Lock()
			defer mu.Unlock()
			if err != nil {
				failures[i] = &RegenerateError{
					TaskEventID: task.ID,
					TaskName:    task.TaskName,
					Error:       err.Error(),
				}
				return nil
			}
			updated[i] = entry
			return nil
		})
	}
	_ = group.Wait()

	result := &RegenerateResult{
		UpdatedPlans: []RegeneratedPlan{},
		Errors:       []RegenerateError{},
	}
	for i := range tasks {
		if updated[i] != nil {
			result.UpdatedPlans = append(result.UpdatedPlans, *updated[i])
		}
		if failures[i] != nil {
			result.Errors = append(result.Errors, *failures[i])
		}
	}
	switch {
	case len(result.Errors) > 0 && len(result.UpdatedPlans) == 0:
		result.Status = BatchStatusFailed
	case len(result.Errors) > 0:
		result.Status = BatchStatusPartial
	default:
		result.Status = BatchStatusFull
	}
	return result, nil
}

func (sp *studyPlanService) regenerateTask(ctx context.Context, userID uuid.UUID, task *types.TaskEvent) (*RegeneratedPlan, error) {
	params := scheduler.TaskParameters{
		Subject:        task.Subject,
		StartAt:        task.StartDate,
		Deadline:       task.EventDate,
		EstimatedHours: task.EstimatedStudyHours,
		SkipDays:       sp.storedSkipDays(task),
	}
	plan, err := sp.buildForTask(ctx, userID, params)
	if err != nil {
		return nil, err
	}
	stored, err := sp.persistPlan(ctx, userID, task.ID, task.Subject, plan.Days)
	if err != nil {
		return nil, err
	}
	return &RegeneratedPlan{
		TaskEventID:     task.ID,
		TaskName:        task.TaskName,
		StudyPlanID:     stored.ID,
		TotalStudyHours: plan.TotalHours(),
	}, nil
}

func (sp *studyPlanService) UpdatePlan(ctx context.Context, userID, taskEventID uuid.UUID, days []scheduler.DayPlan) (*GeneratePlanResult, error) {
	existing, err := sp.GetByTaskEvent(ctx, userID, taskEventID)
	if err != nil {
		return nil, err
	}
	if err := scheduler.ValidatePlan(days); err != nil {
		return nil, err
	}

	stored, err := sp.persistPlan(ctx, userID, taskEventID, existing.Subject, days)
	if err != nil {
		return nil, err
	}

	var total float64
	for _, day := range days {
		total += day.TotalHours
	}

	_, err = sp.notificationRepo.Create(ctx, nil, []*types.Notification{{
		ID:     uuid.New(),
		UserID: userID,
		Title:  "Study Plan Updated",
		Body:   "Your study plan has been successfully updated.",
	}})
	if err != nil {
		sp.log.Warn("create plan-update notification failed", "task_event_id", taskEventID, "error", err)
	}

	return &GeneratePlanResult{
		StudyPlanID:     stored.ID,
		Days:            days,
		TotalStudyHours: total,
	}, nil
}

func (sp *studyPlanService) GetByTaskEvent(ctx context.Context, userID, taskEventID uuid.UUID) (*types.StudyPlan, error) {
	plan, err := sp.studyPlanRepo.GetByTaskEventID(ctx, nil, userID, taskEventID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apierr.NotFound("study plan not found for the given event id")
		}
		return nil, fmt.Errorf("retrieve study plan: %w", err)
	}
	return plan, nil
}

func (sp *studyPlanService) ListByUser(ctx context.Context, userID uuid.UUID) ([]*types.StudyPlan, error) {
	return sp.studyPlanRepo.ListByUser(ctx, nil, userID)
}

// buildForTask gathers the scheduler's typed inputs and runs the build.
// Preference and quiz reads happen inside one transaction so a mid-build
// preference save cannot partially apply.
func (sp *studyPlanService) buildForTask(ctx context.Context, userID uuid.UUID, params scheduler.TaskParameters) (*scheduler.Plan, error) {
	var pref *types.UserPreference
	var results []*types.QuizResult

	err := sp.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		p, err := sp.prefRepo.GetByUserID(ctx, tx, userID)
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return apierr.NotFound("user preferences not found")
			}
			return fmt.Errorf("retrieve preferences: %w", err)
		}
		pref = p
		rows, err := sp.quizResultRepo.GetByUserSubject(ctx, tx, userID, params.Subject)
		if err != nil {
			return fmt.Errorf("retrieve quiz results: %w", err)
		}
		results = rows
		return nil
	})
	if err != nil {
		return nil, err
	}

	snapshots := scheduler.Snapshots{}
	for _, row := range results {
		pct, err := ParsePercent(row.Results)
		if err != nil {
			// No evidence beats bad evidence; the build continues without it.
			sp.log.Warn("skipping unparseable quiz result", "subject", row.Subject, "level", row.Level, "error", err)
			continue
		}
		snapshots[scheduler.Level(row.Level)] = pct
	}

	return scheduler.Build(SchedulerPreference(pref), params, snapshots)
}

// skipDaysForTask resolves the stored skip set. A task record that cannot
// be found yields an empty set rather than a failure.
func (sp *studyPlanService) skipDaysForTask(ctx context.Context, userID, taskEventID uuid.UUID) scheduler.SkipDays {
	task, err := sp.taskEventRepo.GetByID(ctx, nil, userID, taskEventID)
	if err != nil {
		if !errors.Is(err, gorm.ErrRecordNotFound) {
			sp.log.Warn("retrieve task for skip days failed", "task_event_id", taskEventID, "error", err)
		}
		return scheduler.SkipDays{}
	}
	return sp.storedSkipDays(task)
}

func (sp *studyPlanService) storedSkipDays(task *types.TaskEvent) scheduler.SkipDays {
	if len(task.SkipDays) == 0 {
		return scheduler.SkipDays{}
	}
	var names []string
	if err := json.Unmarshal(task.SkipDays, &names); err != nil {
		sp.log.Warn("unparseable stored skip days", "task_event_id", task.ID, "error", err)
		return scheduler.SkipDays{}
	}
	skip, err := scheduler.ParseSkipDays(names)
	if err != nil {
		// Stored names are validated at creation; tolerate drift the way
		// the skip-day match always has — unknown names never match a date.
		sp.log.Warn("ignoring unknown stored skip days", "task_event_id", task.ID, "error", err)
		valid := scheduler.SkipDays{}
		for _, name := range names {
			if s, err := scheduler.ParseSkipDays([]string{name}); err == nil {
				for wd := range s {
					valid[wd] = true
				}
			}
		}
		return valid
	}
	return skip
}

// persistPlan is the single write path for plans: per-task lease around a
// transactional upsert keyed by task event.
func (sp *studyPlanService) persistPlan(ctx context.Context, userID, taskEventID uuid.UUID, subject string, days []scheduler.DayPlan) (*types.StudyPlan, error) {
	raw, err := json.Marshal(days)
	if err != nil {
		return nil, fmt.Errorf("marshal plan: %w", err)
	}

	release, err := sp.planLock.Acquire(ctx, taskEventID)
	if err != nil {
		return nil, fmt.Errorf("acquire plan lock: %w", err)
	}
	defer release()

	plan := &types.StudyPlan{
		ID:          uuid.New(),
		UserID:      userID,
		TaskEventID: taskEventID,
		Subject:     subject,
		StudyType:   studyTypeExamPrep,
		Plan:        datatypes.JSON(raw),
	}
	err = sp.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		stored, err := sp.studyPlanRepo.UpsertByTaskEvent(ctx, tx, plan)
		if err != nil {
			return fmt.Errorf("save study plan: %w", err)
		}
		plan = stored
		return nil
	})
	if err != nil {
		return nil, err
	}
	return plan, nil
}
