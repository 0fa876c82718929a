package domain

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
)

type Course struct {
	ID         uuid.UUID      `gorm:"type:uuid;default:uuid_generate_v4();primaryKey" json:"id"`
	AcademyID  uuid.UUID      `gorm:"type:uuid;not null;index" json:"academy_id"`
	Academy    *Academy       `gorm:"constraint:OnDelete:CASCADE;foreignKey:AcademyID;references:ID" json:"academy,omitempty"`
	Title      string         `gorm:"column:title;not null" json:"title"`
	Slug       string         `gorm:"column:slug;not null;uniqueIndex" json:"slug"`
	SummaryMD  string         `gorm:"column:summary_md;type:text" json:"summary_md,omitempty"`
	Language   string         `gorm:"column:language;not null;default:'en-AU'" json:"language"`
	Difficulty string         `gorm:"column:difficulty" json:"difficulty,omitempty"`
	Position   int            `gorm:"column:position;not null;default:0" json:"position"`
	Version    int            `gorm:"column:version;not null;default:1" json:"version"`
	Status     string         `gorm:"column:status;not null;default:'draft'" json:"status"`
	RawJSON    datatypes.JSON `gorm:"column:raw_json;type:jsonb" json:"raw_json,omitempty"`
	// Materialized by update_search_tsv_for_content(); never written by the app.
	SearchTSV string    `gorm:"column:search_tsv;type:tsvector;->" json:"-"`
	CreatedAt time.Time `gorm:"not null;default:now()" json:"created_at"`
	UpdatedAt time.Time `gorm:"not null;default:now()" json:"updated_at"`
}

func (Course) TableName() string { return "courses" }
