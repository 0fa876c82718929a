package domain

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
)

type Lesson struct {
	ID          uuid.UUID      `gorm:"type:uuid;default:uuid_generate_v4();primaryKey" json:"id"`
	CourseID    uuid.UUID      `gorm:"type:uuid;not null;index" json:"course_id"`
	Course      *Course        `gorm:"constraint:OnDelete:CASCADE;foreignKey:CourseID;references:ID" json:"course,omitempty"`
	Title       string         `gorm:"column:title;not null" json:"title"`
	Slug        string         `gorm:"column:slug;not null;uniqueIndex" json:"slug"`
	BodyMD      string         `gorm:"column:body_md;type:text;not null" json:"body_md"`
	DurationMin int            `gorm:"column:duration_min" json:"duration_min,omitempty"`
	Position    int            `gorm:"column:position;not null;default:0" json:"position"`
	Version     int            `gorm:"column:version;not null;default:1" json:"version"`
	Status      string         `gorm:"column:status;not null;default:'draft'" json:"status"`
	RawJSON     datatypes.JSON `gorm:"column:raw_json;type:jsonb" json:"raw_json,omitempty"`
	// Materialized by update_search_tsv_for_content(); never written by the app.
	SearchTSV string    `gorm:"column:search_tsv;type:tsvector;->" json:"-"`
	CreatedAt time.Time `gorm:"not null;default:now()" json:"created_at"`
	UpdatedAt time.Time `gorm:"not null;default:now()" json:"updated_at"`
}

func (Lesson) TableName() string { return "lessons" }
