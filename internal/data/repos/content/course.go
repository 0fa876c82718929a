package content

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	types "github.com/glasscode/content-migrate/internal/domain"
	"github.com/glasscode/content-migrate/internal/platform/dbctx"
	"github.com/glasscode/content-migrate/internal/platform/logger"
)

type CourseRepo interface {
	UpsertBySlug(dbc dbctx.Context, row *types.Course) error
	GetBySlug(dbc dbctx.Context, slug string) (*types.Course, error)
	ListByAcademyID(dbc dbctx.Context, academyID uuid.UUID) ([]*types.Course, error)
}

type courseRepo struct {
	db  *gorm.DB
	log *logger.Logger
}

func NewCourseRepo(db *gorm.DB, baseLog *logger.Logger) CourseRepo {
	return &courseRepo{db: db, log: baseLog.With("repo", "CourseRepo")}
}

func (r *courseRepo) UpsertBySlug(dbc dbctx.Context, row *types.Course) error {
	t := dbc.Tx
	if t == nil {
		t = r.db
	}
	if row == nil || row.Slug == "" {
		return nil
	}
	var existing types.Course
	if err := t.WithContext(dbc.Ctx).
		Where("slug = ?", row.Slug).
		Assign(map[string]interface{}{
			"slug":       row.Slug,
			"academy_id": row.AcademyID,
			"title":      row.Title,
			"summary_md": row.SummaryMD,
			"language":   row.Language,
			"difficulty": row.Difficulty,
			"position":   row.Position,
			"version":    row.Version,
			"status":     row.Status,
			"raw_json":   row.RawJSON,
			"updated_at": time.Now().UTC(),
		}).
		FirstOrCreate(&existing).Error; err != nil {
		return err
	}
	row.ID = existing.ID
	return nil
}

func (r *courseRepo) GetBySlug(dbc dbctx.Context, slug string) (*types.Course, error) {
	t := dbc.Tx
	if t == nil {
		t = r.db
	}
	if slug == "" {
		return nil, nil
	}
	var out []*types.Course
	if err := t.WithContext(dbc.Ctx).Where("slug = ?", slug).Limit(1).Find(&out).Error; err != nil {
		return nil, err
	}
	if len(out) == 0 {
		return nil, nil
	}
	return out[0], nil
}

func (r *courseRepo) ListByAcademyID(dbc dbctx.Context, academyID uuid.UUID) ([]*types.Course, error) {
	t := dbc.Tx
	if t == nil {
		t = r.db
	}
	var out []*types.Course
	if err := t.WithContext(dbc.Ctx).
		Where("academy_id = ?", academyID).
		Order("position ASC, slug ASC").
		Find(&out).Error; err != nil {
		return nil, err
	}
	return out, nil
}
