package content

import (
	"gorm.io/gorm"

	"github.com/glasscode/content-migrate/internal/platform/dbctx"
	"github.com/glasscode/content-migrate/internal/platform/logger"
)

type SearchIndexRepo interface {
	// RefreshContentVectors runs the store-side materialization step
	// once. It is idempotent; a second call with no content changes is
	// a no-op.
	RefreshContentVectors(dbc dbctx.Context) error
}

type searchIndexRepo struct {
	db  *gorm.DB
	log *logger.Logger
}

func NewSearchIndexRepo(db *gorm.DB, baseLog *logger.Logger) SearchIndexRepo {
	return &searchIndexRepo{db: db, log: baseLog.With("repo", "SearchIndexRepo")}
}

func (r *searchIndexRepo) RefreshContentVectors(dbc dbctx.Context) error {
	t := dbc.Tx
	if t == nil {
		t = r.db
	}
	return t.WithContext(dbc.Ctx).Exec(`SELECT update_search_tsv_for_content()`).Error
}
