package types

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

// Task status vocabulary, closed per the API contract.
const (
	TaskStatusPending     = "Pending"
	TaskStatusNotComplete = "Not Complete"
	TaskStatusComplete    = "Complete"
	TaskStatusDeleted     = "Deleted"
)

func ValidTaskStatus(s string) bool {
	switch s {
	case TaskStatusPending, TaskStatusNotComplete, TaskStatusComplete, TaskStatusDeleted:
		return true
	}
	return false
}

// TaskEvent is a deadline-bearing study goal (exam, assignment, ...).
type TaskEvent struct {
	ID                  uuid.UUID      `gorm:"type:uuid;default:uuid_generate_v4();primaryKey" json:"id"`
	UserID              uuid.UUID      `gorm:"type:uuid;not null;index" json:"user_id"`
	User                *User          `gorm:"constraint:OnDelete:CASCADE;foreignKey:UserID;references:ID" json:"user,omitempty"`
	TaskName            string         `gorm:"not null;column:task_name" json:"task_name"`
	Subject             string         `gorm:"not null;index;column:subject" json:"subject"`
	TaskType            string         `gorm:"column:task_type" json:"task_type"`
	StartDate           time.Time      `gorm:"not null;column:start_date" json:"start_date"`
	EventDate           time.Time      `gorm:"not null;column:event_date" json:"event_date"`
	EstimatedStudyHours float64        `gorm:"not null;column:estimated_study_hours" json:"estimated_study_hours"`
	Notes               string         `gorm:"column:notes" json:"notes"`
	Priority            string         `gorm:"column:priority" json:"priority"`
	Status              string         `gorm:"not null;default:'Pending';index;column:status" json:"status"`
	SkipDays            datatypes.JSON `gorm:"type:jsonb;column:skip_days" json:"skip_days"`
	CreatedAt           time.Time      `gorm:"not null;default:now()" json:"created_at"`
	UpdatedAt           time.Time      `gorm:"not null;default:now()" json:"updated_at"`
	DeletedAt           gorm.DeletedAt `gorm:"index" json:"deleted_at,omitempty"`
}

func (TaskEvent) TableName() string { return "task_event" }
