package services

import (
	"context"
	"encoding/json"
	"testing"
	"time"

	"github.com/google/uuid"

	"github.com/studyhive/studyhive-backend/internal/apierr"
	"github.com/studyhive/studyhive-backend/internal/types"
)

func newTaskEventService(t *testing.T) (TaskEventService, *fakeTaskEventRepo, *fakeNotificationRepo) {
	t.Helper()
	tasks := &fakeTaskEventRepo{}
	notifs := &fakeNotificationRepo{}
	return NewTaskEventService(testDB(t), testLogger(t), tasks, notifs), tasks, notifs
}

func validTaskEventInput() TaskEventInput {
	return TaskEventInput{
		TaskName:            "Calculus midterm",
		Subject:             "Calculus",
		TaskType:            "exam",
		StartDate:           "2025-03-01",
		EventDate:           "2025-03-15T09:00:00",
		EstimatedStudyHours: 12,
		SkipDays:            []string{"Sunday"},
	}
}

func TestParseTimestamp(t *testing.T) {
	cases := []struct {
		in   string
		want time.Time
	}{
		{"2025-03-01", time.Date(2025, 3, 1, 0, 0, 0, 0, time.UTC)},
		{"2025-03-01T09:30:00", time.Date(2025, 3, 1, 9, 30, 0, 0, time.UTC)},
		{"2025-03-01T09:30:00Z", time.Date(2025, 3, 1, 9, 30, 0, 0, time.UTC)},
	}
	for _, tc := range cases {
		got, err := ParseTimestamp(tc.in)
		if err != nil {
			t.Fatalf("ParseTimestamp(%q): %v", tc.in, err)
		}
		if !got.Equal(tc.want) {
			t.Fatalf("ParseTimestamp(%q) = %v, want %v", tc.in, got, tc.want)
		}
	}
	for _, bad := range []string{"", "03/01/2025", "yesterday"} {
		if _, err := ParseTimestamp(bad); err == nil {
			t.Fatalf("ParseTimestamp(%q): expected error", bad)
		}
	}
}

func TestTaskEventCreate(t *testing.T) {
	svc, tasks, _ := newTaskEventService(t)
	userID := uuid.New()

	event, err := svc.Create(context.Background(), userID, validTaskEventInput())
	if err != nil {
		t.Fatalf("Create: %v", err)
	}
	if event.Status != types.TaskStatusPending {
		t.Fatalf("new task status = %q, want Pending", event.Status)
	}
	if len(tasks.events) != 1 {
		t.Fatalf("task not stored")
	}
	var skip []string
	if err := json.Unmarshal(event.SkipDays, &skip); err != nil {
		t.Fatalf("skip days do not decode: %v", err)
	}
	if len(skip) != 1 || skip[0] != "Sunday" {
		t.Fatalf("stored skip days = %v", skip)
	}
}

func TestTaskEventCreateValidation(t *testing.T) {
	svc, _, _ := newTaskEventService(t)

	cases := []struct {
		name   string
		mutate func(*TaskEventInput)
	}{
		{"missing name", func(in *TaskEventInput) { in.TaskName = "" }},
		{"missing subject", func(in *TaskEventInput) { in.Subject = "" }},
		{"bad start date", func(in *TaskEventInput) { in.StartDate = "03/01/2025" }},
		{"bad event date", func(in *TaskEventInput) { in.EventDate = "soon" }},
		{"zero hours", func(in *TaskEventInput) { in.EstimatedStudyHours = 0 }},
		{"unknown skip day", func(in *TaskEventInput) { in.SkipDays = []string{"Funday"} }},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			input := validTaskEventInput()
			tc.mutate(&input)
			_, err := svc.Create(context.Background(), uuid.New(), input)
			if apierr.CodeOf(err) != apierr.CodeValidation {
				t.Fatalf("expected validation_error, got %q (%v)", apierr.CodeOf(err), err)
			}
		})
	}
}

func TestTaskEventUpdateStatus(t *testing.T) {
	svc, tasks, notifs := newTaskEventService(t)
	userID := uuid.New()
	event := &types.TaskEvent{
		ID:       uuid.New(),
		UserID:   userID,
		TaskName: "Calculus midterm",
		Subject:  "Calculus",
		Status:   types.TaskStatusPending,
	}
	tasks.events = []*types.TaskEvent{event}

	updated, err := svc.UpdateStatus(context.Background(), userID, event.ID, types.TaskStatusComplete)
	if err != nil {
		t.Fatalf("UpdateStatus: %v", err)
	}
	if updated.Status != types.TaskStatusComplete {
		t.Fatalf("status = %q", updated.Status)
	}
	if len(notifs.created) != 1 || notifs.created[0].Title != "Task Status Updated" {
		t.Fatalf("expected status notification, got %+v", notifs.created)
	}
}

func TestTaskEventUpdateStatusRejectsUnknownValue(t *testing.T) {
	svc, _, _ := newTaskEventService(t)
	_, err := svc.UpdateStatus(context.Background(), uuid.New(), uuid.New(), "Paused")
	if apierr.CodeOf(err) != apierr.CodeValidation {
		t.Fatalf("expected validation_error, got %q (%v)", apierr.CodeOf(err), err)
	}
}

func TestTaskEventUpdateStatusNotFound(t *testing.T) {
	svc, _, _ := newTaskEventService(t)
	_, err := svc.UpdateStatus(context.Background(), uuid.New(), uuid.New(), types.TaskStatusComplete)
	if apierr.CodeOf(err) != apierr.CodeNotFound {
		t.Fatalf("expected not_found, got %q (%v)", apierr.CodeOf(err), err)
	}
}
