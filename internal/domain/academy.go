package domain

import (
	"time"

	"github.com/google/uuid"
)

// Visibility values for an academy catalog.
const (
	VisibilityPrivate  = "private"
	VisibilityPublic   = "public"
	VisibilityUnlisted = "unlisted"
)

// Publication status shared by academies, courses, lessons and quizzes.
const (
	StatusDraft     = "draft"
	StatusInReview  = "in_review"
	StatusPublished = "published"
)

type Academy struct {
	ID             uuid.UUID     `gorm:"type:uuid;default:uuid_generate_v4();primaryKey" json:"id"`
	OrganisationID uuid.UUID     `gorm:"type:uuid;not null;index" json:"organisation_id"`
	Organisation   *Organisation `gorm:"constraint:OnDelete:CASCADE;foreignKey:OrganisationID;references:ID" json:"organisation,omitempty"`
	Title          string        `gorm:"column:title;not null" json:"title"`
	Slug           string        `gorm:"column:slug;not null;uniqueIndex" json:"slug"`
	DescriptionMD  string        `gorm:"column:description_md;type:text" json:"description_md,omitempty"`
	Visibility     string        `gorm:"column:visibility;not null;default:'private'" json:"visibility"`
	Version        int           `gorm:"column:version;not null;default:1" json:"version"`
	Status         string        `gorm:"column:status;not null;default:'draft'" json:"status"`
	CreatedAt      time.Time     `gorm:"not null;default:now()" json:"created_at"`
	UpdatedAt      time.Time     `gorm:"not null;default:now()" json:"updated_at"`
}

func (Academy) TableName() string { return "academies" }
