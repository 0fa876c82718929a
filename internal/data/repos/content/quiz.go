package content

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	types "github.com/glasscode/content-migrate/internal/domain"
	"github.com/glasscode/content-migrate/internal/platform/dbctx"
	"github.com/glasscode/content-migrate/internal/platform/logger"
)

type QuizRepo interface {
	UpsertBySlug(dbc dbctx.Context, row *types.Quiz) error
	GetBySlug(dbc dbctx.Context, slug string) (*types.Quiz, error)
	ListByCourseID(dbc dbctx.Context, courseID uuid.UUID) ([]*types.Quiz, error)
}

type quizRepo struct {
	db  *gorm.DB
	log *logger.Logger
}

func NewQuizRepo(db *gorm.DB, baseLog *logger.Logger) QuizRepo {
	return &quizRepo{db: db, log: baseLog.With("repo", "QuizRepo")}
}

func (r *quizRepo) UpsertBySlug(dbc dbctx.Context, row *types.Quiz) error {
	t := dbc.Tx
	if t == nil {
		t = r.db
	}
	if row == nil || row.Slug == "" {
		return nil
	}
	var existing types.Quiz
	if err := t.WithContext(dbc.Ctx).
		Where("slug = ?", row.Slug).
		Assign(map[string]interface{}{
			"slug":       row.Slug,
			"course_id":  row.CourseID,
			"title":      row.Title,
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

func (r *quizRepo) GetBySlug(dbc dbctx.Context, slug string) (*types.Quiz, error) {
	t := dbc.Tx
	if t == nil {
		t = r.db
	}
	if slug == "" {
		return nil, nil
	}
	var out []*types.Quiz
	if err := t.WithContext(dbc.Ctx).Where("slug = ?", slug).Limit(1).Find(&out).Error; err != nil {
		return nil, err
	}
	if len(out) == 0 {
		return nil, nil
	}
	return out[0], nil
}

func (r *quizRepo) ListByCourseID(dbc dbctx.Context, courseID uuid.UUID) ([]*types.Quiz, error) {
	t := dbc.Tx
	if t == nil {
		t = r.db
	}
	var out []*types.Quiz
	if err := t.WithContext(dbc.Ctx).
		Where("course_id = ?", courseID).
		Order("slug ASC").
		Find(&out).Error; err != nil {
		return nil, err
	}
	return out, nil
}
