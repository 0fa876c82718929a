package content

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	types "github.com/glasscode/content-migrate/internal/domain"
	"github.com/glasscode/content-migrate/internal/platform/dbctx"
	"github.com/glasscode/content-migrate/internal/platform/logger"
)

type LessonRepo interface {
	UpsertBySlug(dbc dbctx.Context, row *types.Lesson) error
	GetBySlug(dbc dbctx.Context, slug string) (*types.Lesson, error)
	ListByCourseID(dbc dbctx.Context, courseID uuid.UUID) ([]*types.Lesson, error)
}

type lessonRepo struct {
	db  *gorm.DB
	log *logger.Logger
}

func NewLessonRepo(db *gorm.DB, baseLog *logger.Logger) LessonRepo {
	return &lessonRepo{db: db, log: baseLog.With("repo", "LessonRepo")}
}

func (r *lessonRepo) UpsertBySlug(dbc dbctx.Context, row *types.Lesson) error {
	t := dbc.Tx
	if t == nil {
		t = r.db
	}
	if row == nil || row.Slug == "" {
		return nil
	}
	var existing types.Lesson
	if err := t.WithContext(dbc.Ctx).
		Where("slug = ?", row.Slug).
		Assign(map[string]interface{}{
			"slug":         row.Slug,
			"course_id":    row.CourseID,
			"title":        row.Title,
			"body_md":      row.BodyMD,
			"duration_min": row.DurationMin,
			"position":     row.Position,
			"version":      row.Version,
			"status":       row.Status,
			"raw_json":     row.RawJSON,
			"updated_at":   time.Now().UTC(),
		}).
		FirstOrCreate(&existing).Error; err != nil {
		return err
	}
	row.ID = existing.ID
	return nil
}

func (r *lessonRepo) GetBySlug(dbc dbctx.Context, slug string) (*types.Lesson, error) {
	t := dbc.Tx
	if t == nil {
		t = r.db
	}
	if slug == "" {
		return nil, nil
	}
	var out []*types.Lesson
	if err := t.WithContext(dbc.Ctx).Where("slug = ?", slug).Limit(1).Find(&out).Error; err != nil {
		return nil, err
	}
	if len(out) == 0 {
		return nil, nil
	}
	return out[0], nil
}

func (r *lessonRepo) ListByCourseID(dbc dbctx.Context, courseID uuid.UUID) ([]*types.Lesson, error) {
	t := dbc.Tx
	if t == nil {
		t = r.db
	}
	var out []*types.Lesson
	if err := t.WithContext(dbc.Ctx).
		Where("course_id = ?", courseID).
		Order("position ASC, slug ASC").
		Find(&out).Error; err != nil {
		return nil, err
	}
	return out, nil
}
