package content

import (
	"time"

	"gorm.io/gorm"

	types "github.com/glasscode/content-migrate/internal/domain"
	"github.com/glasscode/content-migrate/internal/platform/dbctx"
	"github.com/glasscode/content-migrate/internal/platform/logger"
)

type OrganisationRepo interface {
	UpsertBySlug(dbc dbctx.Context, row *types.Organisation) error
	GetBySlug(dbc dbctx.Context, slug string) (*types.Organisation, error)
}

type organisationRepo struct {
	db  *gorm.DB
	log *logger.Logger
}

func NewOrganisationRepo(db *gorm.DB, baseLog *logger.Logger) OrganisationRepo {
	return &organisationRepo{db: db, log: baseLog.With("repo", "OrganisationRepo")}
}

// UpsertBySlug inserts the row, or updates the existing row with the
// same slug in place. The surrogate id of the persisted row is written
// back into row.ID either way. The natural key must ride in the Assign
// map: a string Where condition seeds no attributes on the create path,
// so leaving it out would insert an empty slug.
func (r *organisationRepo) UpsertBySlug(dbc dbctx.Context, row *types.Organisation) error {
	t := dbc.Tx
	if t == nil {
		t = r.db
	}
	if row == nil || row.Slug == "" {
		return nil
	}
	var existing types.Organisation
	if err := t.WithContext(dbc.Ctx).
		Where("slug = ?", row.Slug).
		Assign(map[string]interface{}{
			"slug":       row.Slug,
			"name":       row.Name,
			"updated_at": time.Now().UTC(),
		}).
		FirstOrCreate(&existing).Error; err != nil {
		return err
	}
	row.ID = existing.ID
	return nil
}

func (r *organisationRepo) GetBySlug(dbc dbctx.Context, slug string) (*types.Organisation, error) {
	t := dbc.Tx
	if t == nil {
		t = r.db
	}
	if slug == "" {
		return nil, nil
	}
	var out []*types.Organisation
	if err := t.WithContext(dbc.Ctx).Where("slug = ?", slug).Limit(1).Find(&out).Error; err != nil {
		return nil, err
	}
	if len(out) == 0 {
		return nil, nil
	}
	return out[0], nil
}
