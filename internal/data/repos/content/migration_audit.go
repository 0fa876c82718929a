package content

import (
	"gorm.io/gorm"

	types "github.com/glasscode/content-migrate/internal/domain"
	"github.com/glasscode/content-migrate/internal/platform/dbctx"
	"github.com/glasscode/content-migrate/internal/platform/logger"
)

type MigrationAuditRepo interface {
	Create(dbc dbctx.Context, row *types.MigrationAudit) error
	GetLatest(dbc dbctx.Context) (*types.MigrationAudit, error)
}

type migrationAuditRepo struct {
	db  *gorm.DB
	log *logger.Logger
}

func NewMigrationAuditRepo(db *gorm.DB, baseLog *logger.Logger) MigrationAuditRepo {
	return &migrationAuditRepo{db: db, log: baseLog.With("repo", "MigrationAuditRepo")}
}

func (r *migrationAuditRepo) Create(dbc dbctx.Context, row *types.MigrationAudit) error {
	t := dbc.Tx
	if t == nil {
		t = r.db
	}
	if row == nil {
		return nil
	}
	return t.WithContext(dbc.Ctx).Create(row).Error
}

func (r *migrationAuditRepo) GetLatest(dbc dbctx.Context) (*types.MigrationAudit, error) {
	t := dbc.Tx
	if t == nil {
		t = r.db
	}
	var out []*types.MigrationAudit
	if err := t.WithContext(dbc.Ctx).
		Order("started_at DESC").
		Limit(1).
		Find(&out).Error; err != nil {
		return nil, err
	}
	if len(out) == 0 {
		return nil, nil
	}
	return out[0], nil
}
