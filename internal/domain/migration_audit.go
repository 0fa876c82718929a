package domain

import (
	"time"

	"github.com/google/uuid"
)

// MigrationAudit is append-only: one row per import run, never mutated.
type MigrationAudit struct {
	ID                uuid.UUID `gorm:"type:uuid;default:uuid_generate_v4();primaryKey" json:"id"`
	SourceSnapshot    string    `gorm:"column:source_snapshot;not null" json:"source_snapshot"`
	ImportedAcademies int       `gorm:"column:imported_academies;not null;default:0" json:"imported_academies"`
	ImportedCourses   int       `gorm:"column:imported_courses;not null;default:0" json:"imported_courses"`
	ImportedLessons   int       `gorm:"column:imported_lessons;not null;default:0" json:"imported_lessons"`
	ImportedQuizzes   int       `gorm:"column:imported_quizzes;not null;default:0" json:"imported_quizzes"`
	ImportedQuestions int       `gorm:"column:imported_questions;not null;default:0" json:"imported_questions"`
	ChecksumManifest  string    `gorm:"column:checksum_manifest;not null" json:"checksum_manifest"`
	StartedAt         time.Time `gorm:"column:started_at;not null;default:now()" json:"started_at"`
	FinishedAt        time.Time `gorm:"column:finished_at;not null" json:"finished_at"`
}

func (MigrationAudit) TableName() string { return "migration_audit" }
