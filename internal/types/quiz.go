package types

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type QuizQuestion struct {
	ID              uuid.UUID      `gorm:"type:uuid;default:uuid_generate_v4();primaryKey" json:"id"`
	Subject         string         `gorm:"not null;index;column:subject" json:"subject"`
	Question        string         `gorm:"not null;column:question" json:"question"`
	Choice1         string         `gorm:"not null;column:choice_1" json:"choice_1"`
	Choice2         string         `gorm:"not null;column:choice_2" json:"choice_2"`
	Choice3         string         `gorm:"not null;column:choice_3" json:"choice_3"`
	Choice4         string         `gorm:"not null;column:choice_4" json:"choice_4"`
	CorrectAnswer   string         `gorm:"not null;column:correct_answer" json:"correct_answer"`
	DifficultyLevel string         `gorm:"not null;index;column:difficulty_level" json:"difficulty_level"`
	CreatedAt       time.Time      `gorm:"not null;default:now()" json:"created_at"`
	UpdatedAt       time.Time      `gorm:"not null;default:now()" json:"updated_at"`
	DeletedAt       gorm.DeletedAt `gorm:"index" json:"deleted_at,omitempty"`
}

func (QuizQuestion) TableName() string { return "quiz_question" }

// QuizResult is the latest score per user/subject/level. Results keeps the
// original "NN%" string shape at the storage boundary; it is parsed to a
// percentage before it reaches the scheduler.
type QuizResult struct {
	ID        uuid.UUID `gorm:"type:uuid;default:uuid_generate_v4();primaryKey" json:"id"`
	UserID    uuid.UUID `gorm:"type:uuid;not null;index:idx_result_user_subject_level,unique" json:"user_id"`
	User      *User     `gorm:"constraint:OnDelete:CASCADE;foreignKey:UserID;references:ID" json:"user,omitempty"`
	Subject   string    `gorm:"not null;index:idx_result_user_subject_level,unique;column:subject" json:"subject"`
	Level     string    `gorm:"not null;index:idx_result_user_subject_level,unique;column:level" json:"level"`
	Results   string    `gorm:"not null;column:results" json:"results"`
	CreatedAt time.Time `gorm:"not null;default:now()" json:"created_at"`
	UpdatedAt time.Time `gorm:"not null;default:now()" json:"updated_at"`
}

func (QuizResult) TableName() string { return "quiz_result" }
