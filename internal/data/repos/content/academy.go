package content

import (
	"time"

	"gorm.io/gorm"

	types "github.com/glasscode/content-migrate/internal/domain"
	"github.com/glasscode/content-migrate/internal/platform/dbctx"
	"github.com/glasscode/content-migrate/internal/platform/logger"
)

type AcademyRepo interface {
	UpsertBySlug(dbc dbctx.Context, row *types.Academy) error
	GetBySlug(dbc dbctx.Context, slug string) (*types.Academy, error)
}

type academyRepo struct {
	db  *gorm.DB
	log *logger.Logger
}

func NewAcademyRepo(db *gorm.DB, baseLog *logger.Logger) AcademyRepo {
	return &academyRepo{db: db, log: baseLog.With("repo", "AcademyRepo")}
}

func (r *academyRepo) UpsertBySlug(dbc dbctx.Context, row *types.Academy) error {
	t := dbc.Tx
	if t == nil {
		t = r.db
	}
	if row == nil || row.Slug == "" {
		return nil
	}
	var existing types.Academy
	if err := t.WithContext(dbc.Ctx).
		Where("slug = ?", row.Slug).
		Assign(map[string]interface{}{
			"slug":            row.Slug,
			"organisation_id": row.OrganisationID,
			"title":           row.Title,
			"description_md":  row.DescriptionMD,
			"visibility":      row.Visibility,
			"version":         row.Version,
			"status":          row.Status,
			"updated_at":      time.Now().UTC(),
		}).
		FirstOrCreate(&existing).Error; err != nil {
		return err
	}
	row.ID = existing.ID
	return nil
}

func (r *academyRepo) GetBySlug(dbc dbctx.Context, slug string) (*types.Academy, error) {
	t := dbc.Tx
	if t == nil {
		t = r.db
	}
	if slug == "" {
		return nil, nil
	}
	var out []*types.Academy
	if err := t.WithContext(dbc.Ctx).Where("slug = ?", slug).Limit(1).Find(&out).Error; err != nil {
		return nil, err
	}
	if len(out) == 0 {
		return nil, nil
	}
	return out[0], nil
}
