package content

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
	"gorm.io/gorm"

	"github.com/glasscode/content-migrate/internal/data/repos/testutil"
	types "github.com/glasscode/content-migrate/internal/domain"
	"github.com/glasscode/content-migrate/internal/platform/dbctx"
)

func txContext(t *testing.T) (dbctx.Context, *gorm.DB) {
	t.Helper()
	gdb := testutil.DB(t)
	tx := testutil.Tx(t, gdb)
	return dbctx.Context{Ctx: context.Background(), Tx: tx}, gdb
}

// seedCourse creates the organisation/academy/course chain a child row
// needs and returns the course.
func seedCourse(t *testing.T, dbc dbctx.Context, gdb *gorm.DB, slug string) *types.Course {
	t.Helper()
	log := testutil.Logger(t)

	org := &types.Organisation{Name: "Default Org", Slug: "default"}
	if err := NewOrganisationRepo(gdb, log).UpsertBySlug(dbc, org); err != nil {
		t.Fatalf("seed organisation: %v", err)
	}
	academy := &types.Academy{
		OrganisationID: org.ID,
		Title:          "GlassCode Academy",
		Slug:           "glasscode-academy",
		Visibility:     types.VisibilityPublic,
		Version:        1,
		Status:         types.StatusPublished,
	}
	if err := NewAcademyRepo(gdb, log).UpsertBySlug(dbc, academy); err != nil {
		t.Fatalf("seed academy: %v", err)
	}
	course := &types.Course{
		AcademyID:  academy.ID,
		Title:      "Seed Course",
		Slug:       slug,
		Language:   "en-AU",
		Difficulty: "Beginner",
		Position:   1,
		Version:    1,
		Status:     types.StatusPublished,
	}
	if err := NewCourseRepo(gdb, log).UpsertBySlug(dbc, course); err != nil {
		t.Fatalf("seed course: %v", err)
	}
	return course
}

func TestCourseRepo_UpsertBySlug_Idempotent(t *testing.T) {
	dbc, gdb := txContext(t)
	repo := NewCourseRepo(gdb, testutil.Logger(t))
	course := seedCourse(t, dbc, gdb, "repo-upsert-course")
	firstID := course.ID
	if firstID == uuid.Nil {
		t.Fatalf("upsert did not assign an id")
	}

	again := &types.Course{
		AcademyID:  course.AcademyID,
		Title:      "Renamed Course",
		Slug:       "repo-upsert-course",
		SummaryMD:  "updated summary",
		Language:   "en-AU",
		Difficulty: "Advanced",
		Position:   0,
		Version:    1,
		Status:     types.StatusDraft,
	}
	if err := repo.UpsertBySlug(dbc, again); err != nil {
		t.Fatalf("second upsert: %v", err)
	}
	if again.ID != firstID {
		t.Fatalf("slug collision must reuse the surrogate id: %s != %s", again.ID, firstID)
	}

	got, err := repo.GetBySlug(dbc, "repo-upsert-course")
	if err != nil {
		t.Fatalf("GetBySlug: %v", err)
	}
	if got.Title != "Renamed Course" || got.Difficulty != "Advanced" {
		t.Fatalf("mutable fields not updated: %+v", got)
	}
	if got.Position != 0 {
		t.Fatalf("zero-valued fields must overwrite too, got position %d", got.Position)
	}
	if got.Status != types.StatusDraft {
		t.Fatalf("status not updated: %s", got.Status)
	}
}

func TestCourseRepo_UpsertBySlug_CreatePersistsNaturalKey(t *testing.T) {
	dbc, gdb := txContext(t)
	repo := NewCourseRepo(gdb, testutil.Logger(t))
	course := seedCourse(t, dbc, gdb, "repo-create-course")

	// Read the freshly created row back by its natural key: the create
	// path must persist the slug, not just the Assign columns.
	got, err := repo.GetBySlug(dbc, "repo-create-course")
	if err != nil {
		t.Fatalf("GetBySlug: %v", err)
	}
	if got == nil {
		t.Fatalf("created course not findable by slug")
	}
	if got.Slug != "repo-create-course" {
		t.Fatalf("created row lost its slug: %q", got.Slug)
	}
	if got.ID != course.ID {
		t.Fatalf("round-tripped row id %s != upserted id %s", got.ID, course.ID)
	}
	if got.AcademyID == uuid.Nil {
		t.Fatalf("created row lost its academy reference")
	}
}

func TestQuestionRepo_UpsertByQuizPosition_CreatePersistsNaturalKey(t *testing.T) {
	dbc, gdb := txContext(t)
	log := testutil.Logger(t)
	course := seedCourse(t, dbc, gdb, "repo-qcreate-course")

	quiz := &types.Quiz{
		CourseID: course.ID,
		Title:    "Create Quiz",
		Slug:     "repo-qcreate-course-quiz",
		Version:  1,
		Status:   types.StatusPublished,
	}
	if err := NewQuizRepo(gdb, log).UpsertBySlug(dbc, quiz); err != nil {
		t.Fatalf("seed quiz: %v", err)
	}

	repo := NewQuestionRepo(gdb, log)
	q := &types.Question{
		QuizID:      quiz.ID,
		QuestionMD:  "Does the key survive creation?",
		AnswersJSON: datatypes.JSON(`[{"text":"yes","correct":true}]`),
		Position:    3,
		Version:     1,
	}
	if err := repo.UpsertByQuizPosition(dbc, q); err != nil {
		t.Fatalf("upsert: %v", err)
	}

	got, err := repo.ListByQuizID(dbc, quiz.ID)
	if err != nil {
		t.Fatalf("ListByQuizID: %v", err)
	}
	if len(got) != 1 {
		t.Fatalf("created question not findable by quiz id, got %d rows", len(got))
	}
	if got[0].QuizID != quiz.ID || got[0].Position != 3 {
		t.Fatalf("created row lost its natural key: quiz_id=%s position=%d", got[0].QuizID, got[0].Position)
	}
}

func TestCourseRepo_GetBySlug_Missing(t *testing.T) {
	dbc, gdb := txContext(t)
	repo := NewCourseRepo(gdb, testutil.Logger(t))
	got, err := repo.GetBySlug(dbc, "no-such-course")
	if err != nil {
		t.Fatalf("GetBySlug: %v", err)
	}
	if got != nil {
		t.Fatalf("missing slug should return nil, got %+v", got)
	}
}

func TestLessonRepo_ListByCourseID_Order(t *testing.T) {
	dbc, gdb := txContext(t)
	log := testutil.Logger(t)
	course := seedCourse(t, dbc, gdb, "repo-lesson-course")
	repo := NewLessonRepo(gdb, log)

	for _, l := range []struct {
		slug string
		pos  int
	}{
		{"lesson-c", 3},
		{"lesson-a", 1},
		{"lesson-b", 2},
	} {
		row := &types.Lesson{
			CourseID: course.ID,
			Title:    "Lesson",
			Slug:     l.slug,
			BodyMD:   "body",
			Position: l.pos,
			Version:  1,
			Status:   types.StatusPublished,
		}
		if err := repo.UpsertBySlug(dbc, row); err != nil {
			t.Fatalf("upsert %s: %v", l.slug, err)
		}
	}

	got, err := repo.ListByCourseID(dbc, course.ID)
	if err != nil {
		t.Fatalf("ListByCourseID: %v", err)
	}
	if len(got) != 3 {
		t.Fatalf("expected 3 lessons, got %d", len(got))
	}
	for i, want := range []string{"lesson-a", "lesson-b", "lesson-c"} {
		if got[i].Slug != want {
			t.Fatalf("lesson %d out of order: got %s want %s", i, got[i].Slug, want)
		}
	}
}

func TestQuestionRepo_UpsertByQuizPosition(t *testing.T) {
	dbc, gdb := txContext(t)
	log := testutil.Logger(t)
	course := seedCourse(t, dbc, gdb, "repo-question-course")

	quiz := &types.Quiz{
		CourseID: course.ID,
		Title:    "Seed Quiz",
		Slug:     "repo-question-course-quiz",
		Version:  1,
		Status:   types.StatusPublished,
	}
	if err := NewQuizRepo(gdb, log).UpsertBySlug(dbc, quiz); err != nil {
		t.Fatalf("seed quiz: %v", err)
	}

	repo := NewQuestionRepo(gdb, log)
	q1 := &types.Question{
		QuizID:      quiz.ID,
		QuestionMD:  "What is a goroutine?",
		AnswersJSON: datatypes.JSON(`[{"text":"A thread","correct":true}]`),
		Position:    1,
		Version:     1,
	}
	if err := repo.UpsertByQuizPosition(dbc, q1); err != nil {
		t.Fatalf("first upsert: %v", err)
	}
	firstID := q1.ID

	// Same slot again: must update in place, never duplicate.
	q1b := &types.Question{
		QuizID:      quiz.ID,
		QuestionMD:  "What is a goroutine, really?",
		AnswersJSON: datatypes.JSON(`[{"text":"A lightweight thread","correct":true}]`),
		Position:    1,
		Version:     1,
	}
	if err := repo.UpsertByQuizPosition(dbc, q1b); err != nil {
		t.Fatalf("second upsert: %v", err)
	}
	if q1b.ID != firstID {
		t.Fatalf("same quiz+position must reuse the surrogate id")
	}

	q2 := &types.Question{
		QuizID:      quiz.ID,
		QuestionMD:  "What is a channel?",
		AnswersJSON: datatypes.JSON(`[{"text":"A pipe","correct":true}]`),
		Position:    2,
		Version:     1,
	}
	if err := repo.UpsertByQuizPosition(dbc, q2); err != nil {
		t.Fatalf("third upsert: %v", err)
	}

	got, err := repo.ListByQuizID(dbc, quiz.ID)
	if err != nil {
		t.Fatalf("ListByQuizID: %v", err)
	}
	if len(got) != 2 {
		t.Fatalf("expected 2 questions, got %d", len(got))
	}
	if got[0].QuestionMD != "What is a goroutine, really?" {
		t.Fatalf("position 1 not updated in place: %q", got[0].QuestionMD)
	}
}

func TestMigrationAuditRepo_GetLatest(t *testing.T) {
	dbc, gdb := txContext(t)
	repo := NewMigrationAuditRepo(gdb, testutil.Logger(t))

	older := &types.MigrationAudit{
		SourceSnapshot:   "snapshot-1",
		ChecksumManifest: "aaa",
		StartedAt:        time.Now().UTC().Add(-time.Hour),
		FinishedAt:       time.Now().UTC().Add(-time.Hour).Add(time.Minute),
	}
	if err := repo.Create(dbc, older); err != nil {
		t.Fatalf("create older: %v", err)
	}
	newer := &types.MigrationAudit{
		SourceSnapshot:    "snapshot-2",
		ImportedCourses:   4,
		ImportedLessons:   12,
		ImportedQuizzes:   4,
		ImportedQuestions: 40,
		ChecksumManifest:  "bbb",
		StartedAt:         time.Now().UTC(),
		FinishedAt:        time.Now().UTC().Add(time.Minute),
	}
	if err := repo.Create(dbc, newer); err != nil {
		t.Fatalf("create newer: %v", err)
	}

	got, err := repo.GetLatest(dbc)
	if err != nil {
		t.Fatalf("GetLatest: %v", err)
	}
	if got == nil || got.SourceSnapshot != "snapshot-2" {
		t.Fatalf("expected most recent audit, got %+v", got)
	}
	if got.ImportedQuestions != 40 {
		t.Fatalf("audit counts not persisted: %+v", got)
	}
}

func TestSearchIndexRepo_RefreshContentVectors(t *testing.T) {
	dbc, gdb := txContext(t)
	log := testutil.Logger(t)
	course := seedCourse(t, dbc, gdb, "repo-search-course")

	lesson := &types.Lesson{
		CourseID: course.ID,
		Title:    "Searchable Lesson",
		Slug:     "repo-search-lesson",
		BodyMD:   "generics in go",
		Position: 1,
		Version:  1,
		Status:   types.StatusPublished,
	}
	if err := NewLessonRepo(gdb, log).UpsertBySlug(dbc, lesson); err != nil {
		t.Fatalf("seed lesson: %v", err)
	}

	if err := NewSearchIndexRepo(gdb, log).RefreshContentVectors(dbc); err != nil {
		t.Fatalf("RefreshContentVectors: %v", err)
	}

	var stale int64
	if err := dbc.Tx.Raw(
		`SELECT COUNT(*) FROM lessons WHERE id = ? AND search_tsv IS NULL`, lesson.ID,
	).Scan(&stale).Error; err != nil {
		t.Fatalf("count stale lessons: %v", err)
	}
	if stale != 0 {
		t.Fatalf("lesson search vector still NULL after refresh")
	}
	if err := dbc.Tx.Raw(
		`SELECT COUNT(*) FROM courses WHERE id = ? AND search_tsv IS NULL`, course.ID,
	).Scan(&stale).Error; err != nil {
		t.Fatalf("count stale courses: %v", err)
	}
	if stale != 0 {
		t.Fatalf("course search vector still NULL after refresh")
	}
}
