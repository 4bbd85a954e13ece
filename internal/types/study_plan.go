package types

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
)

// StudyPlan is the persisted output of plan generation. One row per task
// event; regenerating replaces Plan in place.
type StudyPlan struct {
	ID          uuid.UUID      `gorm:"type:uuid;default:uuid_generate_v4();primaryKey" json:"id"`
	UserID      uuid.UUID      `gorm:"type:uuid;not null;index" json:"user_id"`
	User        *User          `gorm:"constraint:OnDelete:CASCADE;foreignKey:UserID;references:ID" json:"user,omitempty"`
	TaskEventID uuid.UUID      `gorm:"type:uuid;not null;uniqueIndex;column:task_event_id" json:"task_event_id"`
	TaskEvent   *TaskEvent     `gorm:"constraint:OnDelete:CASCADE;foreignKey:TaskEventID;references:ID" json:"task_event,omitempty"`
	Subject     string         `gorm:"not null;column:subject" json:"subject"`
	StudyType   string         `gorm:"not null;column:study_type" json:"study_type"`
	Plan        datatypes.JSON `gorm:"type:jsonb;not null;column:plan" json:"plan"`
	CreatedAt   time.Time      `gorm:"not null;default:now()" json:"created_at"`
	UpdatedAt   time.Time      `gorm:"not null;default:now()" json:"updated_at"`
}

func (StudyPlan) TableName() string { return "study_plan" }
