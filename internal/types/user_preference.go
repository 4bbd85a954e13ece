package types

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
)

// UserPreference holds the study preferences that feed plan generation.
// One row per user; saves update in place, no history.
type UserPreference struct {
	ID                 uuid.UUID      `gorm:"type:uuid;default:uuid_generate_v4();primaryKey" json:"id"`
	UserID             uuid.UUID      `gorm:"type:uuid;not null;uniqueIndex" json:"user_id"`
	User               *User          `gorm:"constraint:OnDelete:CASCADE;foreignKey:UserID;references:ID" json:"user,omitempty"`
	HoursPerDay        float64        `gorm:"not null;column:hours_per_day" json:"hours_per_day"`
	DaysPerWeek        int            `gorm:"not null;column:days_per_week" json:"days_per_week"`
	PreferredStudyTime string         `gorm:"not null;column:preferred_study_time" json:"preferred_study_time"`
	Strengths          datatypes.JSON `gorm:"type:jsonb;column:strengths" json:"strengths"`
	Weaknesses         datatypes.JSON `gorm:"type:jsonb;column:weaknesses" json:"weaknesses"`
	CreatedAt          time.Time      `gorm:"not null;default:now()" json:"created_at"`
	UpdatedAt          time.Time      `gorm:"not null;default:now()" json:"updated_at"`
}

func (UserPreference) TableName() string { return "user_preference" }
