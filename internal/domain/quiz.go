package domain

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
)

type Quiz struct {
	ID        uuid.UUID      `gorm:"type:uuid;default:uuid_generate_v4();primaryKey" json:"id"`
	CourseID  uuid.UUID      `gorm:"type:uuid;not null;index" json:"course_id"`
	Course    *Course        `gorm:"constraint:OnDelete:CASCADE;foreignKey:CourseID;references:ID" json:"course,omitempty"`
	Title     string         `gorm:"column:title;not null" json:"title"`
	Slug      string         `gorm:"column:slug;not null;uniqueIndex" json:"slug"`
	Version   int            `gorm:"column:version;not null;default:1" json:"version"`
	Status    string         `gorm:"column:status;not null;default:'draft'" json:"status"`
	RawJSON   datatypes.JSON `gorm:"column:raw_json;type:jsonb" json:"raw_json,omitempty"`
	CreatedAt time.Time      `gorm:"not null;default:now()" json:"created_at"`
	UpdatedAt time.Time      `gorm:"not null;default:now()" json:"updated_at"`
}

func (Quiz) TableName() string { return "quizzes" }
