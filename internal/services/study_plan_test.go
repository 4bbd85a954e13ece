package services

import (
	"context"
	"encoding/json"
	"fmt"
	"testing"
	"time"

	"github.com/google/uuid"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"github.com/studyhive/studyhive-backend/internal/apierr"
	"github.com/studyhive/studyhive-backend/internal/clients/redis"
	"github.com/studyhive/studyhive-backend/internal/logger"
	"github.com/studyhive/studyhive-backend/internal/scheduler"
	"github.com/studyhive/studyhive-backend/internal/types"
)

func testDB(t *testing.T) *gorm.DB {
	t.Helper()
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	if err != nil {
		t.Fatalf("open test db: %v", err)
	}
	return db
}

func testLogger(t *testing.T) *logger.Logger {
	t.Helper()
	log, err := logger.New("test")
	if err != nil {
		t.Fatalf("new logger: %v", err)
	}
	return log
}

type fakePrefRepo struct {
	pref *types.UserPreference
}

func (f *fakePrefRepo) Upsert(ctx context.Context, tx *gorm.DB, pref *types.UserPreference) (bool, error) {
	f.pref = pref
	return true, nil
}

func (f *fakePrefRepo) GetByUserID(ctx context.Context, tx *gorm.DB, userID uuid.UUID) (*types.UserPreference, error) {
	if f.pref == nil {
		return nil, gorm.ErrRecordNotFound
	}
	return f.pref, nil
}

type fakeQuizResultRepo struct {
	results []*types.QuizResult
}

func (f *fakeQuizResultRepo) Upsert(ctx context.Context, tx *gorm.DB, result *types.QuizResult) (bool, error) {
	f.results = append(f.results, result)
	return true, nil
}

func (f *fakeQuizResultRepo) GetByUserSubject(ctx context.Context, tx *gorm.DB, userID uuid.UUID, subject string) ([]*types.QuizResult, error) {
	var out []*types.QuizResult
	for _, r := range f.results {
		if r.Subject == subject {
			out = append(out, r)
		}
	}
	return out, nil
}

func (f *fakeQuizResultRepo) GetByUser(ctx context.Context, tx *gorm.DB, userID uuid.UUID) ([]*types.QuizResult, error) {
	return f.results, nil
}

type fakeTaskEventRepo struct {
	events []*types.TaskEvent
}

func (f *fakeTaskEventRepo) Create(ctx context.Context, tx *gorm.DB, events []*types.TaskEvent) ([]*types.TaskEvent, error) {
	f.events = append(f.events, events...)
	return events, nil
}

func (f *fakeTaskEventRepo) GetByID(ctx context.Context, tx *gorm.DB, userID, eventID uuid.UUID) (*types.TaskEvent, error) {
	for _, e := range f.events {
		if e.ID == eventID {
			return e, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (f *fakeTaskEventRepo) ListByUser(ctx context.Context, tx *gorm.DB, userID uuid.UUID, excludeStatuses []string) ([]*types.TaskEvent, error) {
	return f.events, nil
}

func (f *fakeTaskEventRepo) ListByStatus(ctx context.Context, tx *gorm.DB, userID uuid.UUID, status string) ([]*types.TaskEvent, error) {
	var out []*types.TaskEvent
	for _, e := range f.events {
		if e.Status == status {
			out = append(out, e)
		}
	}
	return out, nil
}

func (f *fakeTaskEventRepo) ListPendingBySubject(ctx context.Context, tx *gorm.DB, userID uuid.UUID, subject string) ([]*types.TaskEvent, error) {
	var out []*types.TaskEvent
	for _, e := range f.events {
		if e.Subject == subject && e.Status == types.TaskStatusPending {
			out = append(out, e)
		}
	}
	return out, nil
}

func (f *fakeTaskEventRepo) UpdateStatus(ctx context.Context, tx *gorm.DB, userID, eventID uuid.UUID, status string) (*types.TaskEvent, error) {
	event, err := f.GetByID(ctx, tx, userID, eventID)
	if err != nil {
		return nil, err
	}
	event.Status = status
	return event, nil
}

type fakeStudyPlanRepo struct {
	byTaskEvent map[uuid.UUID]*types.StudyPlan
	upsertErr   error
}

func newFakeStudyPlanRepo() *fakeStudyPlanRepo {
	return &fakeStudyPlanRepo{byTaskEvent: map[uuid.UUID]*types.StudyPlan{}}
}

func (f *fakeStudyPlanRepo) UpsertByTaskEvent(ctx context.Context, tx *gorm.DB, plan *types.StudyPlan) (*types.StudyPlan, error) {
	if f.upsertErr != nil {
		return nil, f.upsertErr
	}
	if existing, ok := f.byTaskEvent[plan.TaskEventID]; ok {
		existing.Subject = plan.Subject
		existing.StudyType = plan.StudyType
		existing.Plan = plan.Plan
		return existing, nil
	}
	f.byTaskEvent[plan.TaskEventID] = plan
	return plan, nil
}

func (f *fakeStudyPlanRepo) GetByTaskEventID(ctx context.Context, tx *gorm.DB, userID, taskEventID uuid.UUID) (*types.StudyPlan, error) {
	plan, ok := f.byTaskEvent[taskEventID]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	return plan, nil
}

func (f *fakeStudyPlanRepo) ListByUser(ctx context.Context, tx *gorm.DB, userID uuid.UUID) ([]*types.StudyPlan, error) {
	var out []*types.StudyPlan
	for _, p := range f.byTaskEvent {
		out = append(out, p)
	}
	return out, nil
}

type fakeNotificationRepo struct {
	created []*types.Notification
}

func (f *fakeNotificationRepo) Create(ctx context.Context, tx *gorm.DB, notifications []*types.Notification) ([]*types.Notification, error) {
	f.created = append(f.created, notifications...)
	return notifications, nil
}

func (f *fakeNotificationRepo) GetByID(ctx context.Context, tx *gorm.DB, userID, notificationID uuid.UUID) (*types.Notification, error) {
	for _, n := range f.created {
		if n.ID == notificationID {
			return n, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (f *fakeNotificationRepo) ListByUser(ctx context.Context, tx *gorm.DB, userID uuid.UUID) ([]*types.Notification, error) {
	return f.created, nil
}

func (f *fakeNotificationRepo) Update(ctx context.Context, tx *gorm.DB, notification *types.Notification) error {
	return nil
}

type planFixture struct {
	svc       StudyPlanService
	prefs     *fakePrefRepo
	quiz      *fakeQuizResultRepo
	tasks     *fakeTaskEventRepo
	plans     *fakeStudyPlanRepo
	notifs    *fakeNotificationRepo
	userID    uuid.UUID
	morningJS []byte
}

func newPlanFixture(t *testing.T) *planFixture {
	t.Helper()
	f := &planFixture{
		prefs:  &fakePrefRepo{},
		quiz:   &fakeQuizResultRepo{},
		tasks:  &fakeTaskEventRepo{},
		plans:  newFakeStudyPlanRepo(),
		notifs: &fakeNotificationRepo{},
		userID: uuid.New(),
	}
	f.svc = NewStudyPlanService(
		testDB(t), testLogger(t),
		f.prefs, f.quiz, f.tasks, f.plans, f.notifs,
		redis.NewLocalPlanLock(),
	)
	return f
}

func (f *planFixture) withMorningPreference(t *testing.T) {
	t.Helper()
	f.prefs.pref = &types.UserPreference{
		ID:                 uuid.New(),
		UserID:             f.userID,
		HoursPerDay:        2,
		DaysPerWeek:        7,
		PreferredStudyTime: string(scheduler.StudyTimeMorning),
		Strengths:          []byte(`[]`),
		Weaknesses:         []byte(`[]`),
	}
}

func TestStudyPlanGenerate(t *testing.T) {
	f := newPlanFixture(t)
	f.withMorningPreference(t)

	taskID := uuid.New()
	result, err := f.svc.Generate(context.Background(), f.userID, GeneratePlanInput{
		TaskEventID:         taskID,
		Subject:             "Calculus",
		StudyStartDate:      "2025-01-01",
		ExamDate:            "2025-01-11",
		EstimatedStudyHours: 10,
	})
	if err != nil {
		t.Fatalf("Generate: %v", err)
	}
	if len(result.Days) != 10 {
		t.Fatalf("expected 10 days, got %d", len(result.Days))
	}
	if result.TotalStudyHours != 25.0 {
		t.Fatalf("expected 25.0 total hours, got %v", result.TotalStudyHours)
	}

	stored, ok := f.plans.byTaskEvent[taskID]
	if !ok {
		t.Fatal("plan was not persisted")
	}
	if stored.Subject != "Calculus" {
		t.Fatalf("stored subject = %q", stored.Subject)
	}
	if stored.StudyType != "exam preparation" {
		t.Fatalf("stored study type = %q", stored.StudyType)
	}
	var days []scheduler.DayPlan
	if err := json.Unmarshal(stored.Plan, &days); err != nil {
		t.Fatalf("stored plan does not decode: %v", err)
	}
	if len(days) != 10 {
		t.Fatalf("stored plan has %d days", len(days))
	}
}

func TestStudyPlanGenerateUsesQuizMastery(t *testing.T) {
	f := newPlanFixture(t)
	f.withMorningPreference(t)
	f.quiz.results = []*types.QuizResult{
		{UserID: f.userID, Subject: "Calculus", Level: "Advanced", Results: "75%"},
	}

	result, err := f.svc.Generate(context.Background(), f.userID, GeneratePlanInput{
		TaskEventID:         uuid.New(),
		Subject:             "Calculus",
		StudyStartDate:      "2025-01-01",
		ExamDate:            "2025-01-11",
		EstimatedStudyHours: 10,
	})
	if err != nil {
		t.Fatalf("Generate: %v", err)
	}
	// Advanced mastery reduces the 2h day to 1.4h, one session per day.
	if result.TotalStudyHours != 14.0 {
		t.Fatalf("expected 14.0 total hours, got %v", result.TotalStudyHours)
	}
	for _, day := range result.Days {
		if len(day.Sessions) != 1 {
			t.Fatalf("expected single session on %s, got %d", day.StudyDate, len(day.Sessions))
		}
	}
}

func TestStudyPlanGenerateSkipsUnparseableQuizResults(t *testing.T) {
	f := newPlanFixture(t)
	f.withMorningPreference(t)
	f.quiz.results = []*types.QuizResult{
		{UserID: f.userID, Subject: "Calculus", Level: "Advanced", Results: "garbage"},
	}

	result, err := f.svc.Generate(context.Background(), f.userID, GeneratePlanInput{
		TaskEventID:         uuid.New(),
		Subject:             "Calculus",
		StudyStartDate:      "2025-01-01",
		ExamDate:            "2025-01-11",
		EstimatedStudyHours: 10,
	})
	if err != nil {
		t.Fatalf("Generate: %v", err)
	}
	// The bad row is ignored, so the no-evidence budget applies.
	if result.TotalStudyHours != 25.0 {
		t.Fatalf("expected 25.0 total hours, got %v", result.TotalStudyHours)
	}
}

func TestStudyPlanGeneratePreferenceMissing(t *testing.T) {
	f := newPlanFixture(t)

	_, err := f.svc.Generate(context.Background(), f.userID, GeneratePlanInput{
		TaskEventID:         uuid.New(),
		Subject:             "Calculus",
		StudyStartDate:      "2025-01-01",
		ExamDate:            "2025-01-11",
		EstimatedStudyHours: 10,
	})
	if err == nil {
		t.Fatal("expected error for missing preference")
	}
	if apierr.CodeOf(err) != apierr.CodeNotFound {
		t.Fatalf("expected not_found, got %q (%v)", apierr.CodeOf(err), err)
	}
}

func TestStudyPlanGenerateBadDate(t *testing.T) {
	f := newPlanFixture(t)
	f.withMorningPreference(t)

	_, err := f.svc.Generate(context.Background(), f.userID, GeneratePlanInput{
		TaskEventID:         uuid.New(),
		Subject:             "Calculus",
		StudyStartDate:      "01/01/2025",
		ExamDate:            "2025-01-11",
		EstimatedStudyHours: 10,
	})
	if apierr.CodeOf(err) != apierr.CodeValidation {
		t.Fatalf("expected validation_error, got %q (%v)", apierr.CodeOf(err), err)
	}
}

func TestStudyPlanGenerateHonorsStoredSkipDays(t *testing.T) {
	f := newPlanFixture(t)
	f.withMorningPreference(t)

	taskID := uuid.New()
	f.tasks.events = []*types.TaskEvent{{
		ID:       taskID,
		UserID:   f.userID,
		Subject:  "Calculus",
		Status:   types.TaskStatusPending,
		SkipDays: []byte(`["Saturday","Sunday"]`),
	}}

	result, err := f.svc.Generate(context.Background(), f.userID, GeneratePlanInput{
		TaskEventID:         taskID,
		Subject:             "Calculus",
		StudyStartDate:      "2025-01-01",
		ExamDate:            "2025-01-15",
		EstimatedStudyHours: 10,
	})
	if err != nil {
		t.Fatalf("Generate: %v", err)
	}
	for _, day := range result.Days {
		date, err := time.Parse("2006-01-02", day.StudyDate)
		if err != nil {
			t.Fatalf("bad study date %q: %v", day.StudyDate, err)
		}
		if wd := date.Weekday(); wd == time.Saturday || wd == time.Sunday {
			t.Fatalf("weekend day %s scheduled despite skip days", day.StudyDate)
		}
	}
}

func regenTask(userID uuid.UUID, name string, start, deadline time.Time) *types.TaskEvent {
	return &types.TaskEvent{
		ID:                  uuid.New(),
		UserID:              userID,
		TaskName:            name,
		Subject:             "Calculus",
		Status:              types.TaskStatusPending,
		StartDate:           start,
		EventDate:           deadline,
		EstimatedStudyHours: 10,
	}
}

func TestRegenerateForSubjectFull(t *testing.T) {
	f := newPlanFixture(t)
	f.withMorningPreference(t)

	start := time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC)
	f.tasks.events = []*types.TaskEvent{
		regenTask(f.userID, "midterm", start, start.AddDate(0, 0, 10)),
		regenTask(f.userID, "final", start, start.AddDate(0, 0, 20)),
	}

	result, err := f.svc.RegenerateForSubject(context.Background(), f.userID, "Calculus")
	if err != nil {
		t.Fatalf("RegenerateForSubject: %v", err)
	}
	if result.Status != BatchStatusFull {
		t.Fatalf("expected full, got %q", result.Status)
	}
	if len(result.UpdatedPlans) != 2 || len(result.Errors) != 0 {
		t.Fatalf("expected 2 updates and 0 errors, got %d/%d", len(result.UpdatedPlans), len(result.Errors))
	}
	// Input order is preserved regardless of which build finished first.
	if result.UpdatedPlans[0].TaskName != "midterm" || result.UpdatedPlans[1].TaskName != "final" {
		t.Fatalf("batch order not preserved: %q, %q", result.UpdatedPlans[0].TaskName, result.UpdatedPlans[1].TaskName)
	}
}

func TestRegenerateForSubjectPartial(t *testing.T) {
	f := newPlanFixture(t)
	f.withMorningPreference(t)

	start := time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC)
	bad := regenTask(f.userID, "broken", start, start) // start == deadline
	f.tasks.events = []*types.TaskEvent{
		regenTask(f.userID, "midterm", start, start.AddDate(0, 0, 10)),
		bad,
		regenTask(f.userID, "final", start, start.AddDate(0, 0, 20)),
	}

	result, err := f.svc.RegenerateForSubject(context.Background(), f.userID, "Calculus")
	if err != nil {
		t.Fatalf("RegenerateForSubject: %v", err)
	}
	if result.Status != BatchStatusPartial {
		t.Fatalf("expected partial, got %q", result.Status)
	}
	if len(result.UpdatedPlans) != 2 {
		t.Fatalf("expected 2 updates, got %d", len(result.UpdatedPlans))
	}
	if len(result.Errors) != 1 {
		t.Fatalf("expected 1 error, got %d", len(result.Errors))
	}
	if result.Errors[0].TaskEventID != bad.ID || result.Errors[0].TaskName != "broken" {
		t.Fatalf("error entry does not name the failed task: %+v", result.Errors[0])
	}
}

func TestRegenerateForSubjectFailed(t *testing.T) {
	f := newPlanFixture(t)
	f.withMorningPreference(t)

	start := time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC)
	f.tasks.events = []*types.TaskEvent{
		regenTask(f.userID, "a", start, start),
		regenTask(f.userID, "b", start, start),
	}
	f.plans.upsertErr = fmt.Errorf("disk full")

	result, err := f.svc.RegenerateForSubject(context.Background(), f.userID, "Calculus")
	if err != nil {
		t.Fatalf("RegenerateForSubject: %v", err)
	}
	if result.Status != BatchStatusFailed {
		t.Fatalf("expected failed, got %q", result.Status)
	}
	if len(result.Errors) != 2 {
		t.Fatalf("expected 2 errors, got %d", len(result.Errors))
	}
}

func TestRegenerateForSubjectEmpty(t *testing.T) {
	f := newPlanFixture(t)

	result, err := f.svc.RegenerateForSubject(context.Background(), f.userID, "Astronomy")
	if err != nil {
		t.Fatalf("RegenerateForSubject: %v", err)
	}
	if result.Status != BatchStatusEmpty {
		t.Fatalf("expected empty, got %q", result.Status)
	}
}

func TestRegenerateForSubjectRequiresSubject(t *testing.T) {
	f := newPlanFixture(t)
	_, err := f.svc.RegenerateForSubject(context.Background(), f.userID, "")
	if apierr.CodeOf(err) != apierr.CodeValidation {
		t.Fatalf("expected validation_error, got %q (%v)", apierr.CodeOf(err), err)
	}
}

func validEditedDays() []scheduler.DayPlan {
	return []scheduler.DayPlan{{
		StudyDate: "2025-01-02",
		Subject:   "Calculus",
		StudyTime: "Morning",
		Sessions: []scheduler.Session{
			{StartTime: "09:00", EndTime: "10:30", HoursToStudy: 1.5},
		},
		TotalHours: 1.5,
	}}
}

func TestUpdatePlanReplacesStoredPlan(t *testing.T) {
	f := newPlanFixture(t)
	f.withMorningPreference(t)

	taskID := uuid.New()
	if _, err := f.svc.Generate(context.Background(), f.userID, GeneratePlanInput{
		TaskEventID:         taskID,
		Subject:             "Calculus",
		StudyStartDate:      "2025-01-01",
		ExamDate:            "2025-01-11",
		EstimatedStudyHours: 10,
	}); err != nil {
		t.Fatalf("Generate: %v", err)
	}

	edited := validEditedDays()
	result, err := f.svc.UpdatePlan(context.Background(), f.userID, taskID, edited)
	if err != nil {
		t.Fatalf("UpdatePlan: %v", err)
	}
	if result.TotalStudyHours != 1.5 {
		t.Fatalf("expected 1.5 total hours, got %v", result.TotalStudyHours)
	}

	var stored []scheduler.DayPlan
	if err := json.Unmarshal(f.plans.byTaskEvent[taskID].Plan, &stored); err != nil {
		t.Fatalf("stored plan does not decode: %v", err)
	}
	if len(stored) != 1 || stored[0].StudyDate != "2025-01-02" {
		t.Fatalf("stored plan was not replaced: %+v", stored)
	}
	if len(f.notifs.created) != 1 || f.notifs.created[0].Title != "Study Plan Updated" {
		t.Fatalf("expected plan-update notification, got %+v", f.notifs.created)
	}
}

func TestUpdatePlanRejectsInvalidStructure(t *testing.T) {
	f := newPlanFixture(t)
	f.withMorningPreference(t)

	taskID := uuid.New()
	if _, err := f.svc.Generate(context.Background(), f.userID, GeneratePlanInput{
		TaskEventID:         taskID,
		Subject:             "Calculus",
		StudyStartDate:      "2025-01-01",
		ExamDate:            "2025-01-11",
		EstimatedStudyHours: 10,
	}); err != nil {
		t.Fatalf("Generate: %v", err)
	}

	edited := validEditedDays()
	edited[0].Sessions[0].EndTime = "25:99"
	_, err := f.svc.UpdatePlan(context.Background(), f.userID, taskID, edited)
	if apierr.CodeOf(err) != apierr.CodeValidation {
		t.Fatalf("expected validation_error, got %q (%v)", apierr.CodeOf(err), err)
	}
}

func TestUpdatePlanMissingPlan(t *testing.T) {
	f := newPlanFixture(t)
	_, err := f.svc.UpdatePlan(context.Background(), f.userID, uuid.New(), validEditedDays())
	if apierr.CodeOf(err) != apierr.CodeNotFound {
		t.Fatalf("expected not_found, got %q (%v)", apierr.CodeOf(err), err)
	}
}

func TestGetByTaskEventNotFound(t *testing.T) {
	f := newPlanFixture(t)
	_, err := f.svc.GetByTaskEvent(context.Background(), f.userID, uuid.New())
	if apierr.CodeOf(err) != apierr.CodeNotFound {
		t.Fatalf("expected not_found, got %q (%v)", apierr.CodeOf(err), err)
	}
}
