package content

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	types "github.com/glasscode/content-migrate/internal/domain"
	"github.com/glasscode/content-migrate/internal/platform/dbctx"
	"github.com/glasscode/content-migrate/internal/platform/logger"
)

type QuestionRepo interface {
	UpsertByQuizPosition(dbc dbctx.Context, row *types.Question) error
	ListByQuizID(dbc dbctx.Context, quizID uuid.UUID) ([]*types.Question, error)
}

type questionRepo struct {
	db  *gorm.DB
	log *logger.Logger
}

func NewQuestionRepo(db *gorm.DB, baseLog *logger.Logger) QuestionRepo {
	return &questionRepo{db: db, log: baseLog.With("repo", "QuestionRepo")}
}

// UpsertByQuizPosition upserts on the (quiz_id, position) natural key.
// Questions carry no slug; position within the owning quiz is the
// stable identity that keeps re-runs from duplicating rows.
func (r *questionRepo) UpsertByQuizPosition(dbc dbctx.Context, row *types.Question) error {
	t := dbc.Tx
	if t == nil {
		t = r.db
	}
	if row == nil || row.QuizID == uuid.Nil {
		return nil
	}
	var existing types.Question
	if err := t.WithContext(dbc.Ctx).
		Where("quiz_id = ? AND position = ?", row.QuizID, row.Position).
		Assign(map[string]interface{}{
			"quiz_id":      row.QuizID,
			"position":     row.Position,
			"question_md":  row.QuestionMD,
			"answers_json": row.AnswersJSON,
			"version":      row.Version,
			"raw_json":     row.RawJSON,
			"updated_at":   time.Now().UTC(),
		}).
		FirstOrCreate(&existing).Error; err != nil {
		return err
	}
	row.ID = existing.ID
	return nil
}

func (r *questionRepo) ListByQuizID(dbc dbctx.Context, quizID uuid.UUID) ([]*types.Question, error) {
	t := dbc.Tx
	if t == nil {
		t = r.db
	}
	var out []*types.Question
	if err := t.WithContext(dbc.Ctx).
		Where("quiz_id = ?", quizID).
		Order("position ASC").
		Find(&out).Error; err != nil {
		return nil, err
	}
	return out, nil
}
