package domain

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
)

// Answer is one entry of a question's answers_json column.
type Answer struct {
	Text    string `json:"text"`
	Correct bool   `json:"correct"`
}

type Question struct {
	ID          uuid.UUID      `gorm:"type:uuid;default:uuid_generate_v4();primaryKey" json:"id"`
	QuizID      uuid.UUID      `gorm:"type:uuid;not null;index:idx_question_quiz_position,unique,priority:1" json:"quiz_id"`
	Quiz        *Quiz          `gorm:"constraint:OnDelete:CASCADE;foreignKey:QuizID;references:ID" json:"quiz,omitempty"`
	QuestionMD  string         `gorm:"column:question_md;type:text;not null" json:"question_md"`
	AnswersJSON datatypes.JSON `gorm:"column:answers_json;type:jsonb;not null" json:"answers_json"`
	// Position doubles as the natural key within a quiz. Uniqueness on
	// (quiz_id, position) is what makes question upserts converge.
	Position  int            `gorm:"column:position;not null;index:idx_question_quiz_position,unique,priority:2" json:"position"`
	Version   int            `gorm:"column:version;not null;default:1" json:"version"`
	RawJSON   datatypes.JSON `gorm:"column:raw_json;type:jsonb" json:"raw_json,omitempty"`
	CreatedAt time.Time      `gorm:"not null;default:now()" json:"created_at"`
	UpdatedAt time.Time      `gorm:"not null;default:now()" json:"updated_at"`
}

func (Question) TableName() string { return "questions" }
