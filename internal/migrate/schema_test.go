package migrate

import (
	"encoding/json"
	"testing"

	types "github.com/glasscode/content-migrate/internal/domain"
)

func TestQuestionFromSource_AnswerIndexRoundTrip(t *testing.T) {
	rec := map[string]any{
		"question":      "Which one?",
		"choices":       []any{"A", "B", "C"},
		"correctAnswer": float64(1),
	}

	in := QuestionFromSource(rec, "go-basics-quiz", 0)
	want := []types.Answer{
		{Text: "A", Correct: false},
		{Text: "B", Correct: true},
		{Text: "C", Correct: false},
	}
	if len(in.Answers) != len(want) {
		t.Fatalf("expected %d answers, got %d", len(want), len(in.Answers))
	}
	for i := range want {
		if in.Answers[i] != want[i] {
			t.Fatalf("answer %d: got %+v want %+v", i, in.Answers[i], want[i])
		}
	}
	if in.NoCorrectAnswer {
		t.Fatalf("question with a valid correct index flagged as anomalous")
	}
	if verr := in.Validate("quiz.json", 0); verr != nil {
		t.Fatalf("unexpected validation error: %v", verr)
	}
}

func TestQuestionFromSource_MissingCorrectIndex(t *testing.T) {
	rec := map[string]any{
		"question": "No answer key",
		"choices":  []any{"A", "B"},
	}

	in := QuestionFromSource(rec, "go-basics-quiz", 4)
	if !in.NoCorrectAnswer {
		t.Fatalf("expected missing correct index to be flagged")
	}
	for _, a := range in.Answers {
		if a.Correct {
			t.Fatalf("no answer should be correct, got %+v", in.Answers)
		}
	}
	// Anomaly, not a failure: the record still validates.
	if verr := in.Validate("quiz.json", 4); verr != nil {
		t.Fatalf("unexpected validation error: %v", verr)
	}
	if in.Position != 5 {
		t.Fatalf("expected 1-based fallback position 5, got %d", in.Position)
	}
}

func TestQuestionFromSource_OutOfRangeCorrectIndex(t *testing.T) {
	rec := map[string]any{
		"question":      "Out of range",
		"choices":       []any{"A", "B"},
		"correctAnswer": float64(7),
	}
	in := QuestionFromSource(rec, "q", 0)
	if !in.NoCorrectAnswer {
		t.Fatalf("expected out-of-range correct index to be flagged")
	}
}

func TestQuestionFromSource_PositionFromID(t *testing.T) {
	rec := map[string]any{
		"question":      "Keyed",
		"choices":       []any{"A"},
		"correctAnswer": float64(0),
		"id":            float64(12),
	}
	in := QuestionFromSource(rec, "q", 3)
	if in.Position != 12 {
		t.Fatalf("expected source id to win as position, got %d", in.Position)
	}
}

func TestQuestionValidate_NoAnswers(t *testing.T) {
	in := QuestionInput{QuizSlug: "q", QuestionMD: "body", Version: 1}
	verr := in.Validate("quiz.json", 2)
	if verr == nil {
		t.Fatalf("expected validation error for empty answers")
	}
	if verr.Field != "answers" || verr.Index != 2 || verr.Kind != "question" {
		t.Fatalf("unexpected error context: %+v", verr)
	}
}

func TestLessonFromSource_Defaults(t *testing.T) {
	rec := map[string]any{"intro": "body text"}

	in := LessonFromSource(rec, "go-basics", 2)
	if in.Title != "Lesson 3" {
		t.Fatalf("expected fallback title, got %q", in.Title)
	}
	if in.Slug != "go-basics-lesson-3" {
		t.Fatalf("expected fallback slug, got %q", in.Slug)
	}
	if in.DurationMin != DefaultDurationMin {
		t.Fatalf("expected default duration %d, got %d", DefaultDurationMin, in.DurationMin)
	}
	if in.Position != 3 {
		t.Fatalf("expected 1-based fallback position, got %d", in.Position)
	}
	if in.Status != types.StatusPublished {
		t.Fatalf("migrated lessons are published, got %q", in.Status)
	}
	if verr := in.Validate("lessons.json", 2); verr != nil {
		t.Fatalf("unexpected validation error: %v", verr)
	}
}

func TestLessonFromSource_ExplicitFields(t *testing.T) {
	rec := map[string]any{
		"title":            "Channels",
		"slug":             "channels",
		"intro":            "about channels",
		"estimatedMinutes": float64(45),
		"order":            float64(7),
	}
	in := LessonFromSource(rec, "go-concurrency", 0)
	if in.Title != "Channels" || in.Slug != "channels" || in.DurationMin != 45 || in.Position != 7 {
		t.Fatalf("source fields not preserved: %+v", in)
	}
}

func TestLessonValidate_MissingBody(t *testing.T) {
	rec := map[string]any{"title": "Empty"}
	in := LessonFromSource(rec, "go-basics", 0)
	verr := in.Validate("lessons/go-basics.json", 0)
	if verr == nil {
		t.Fatalf("expected validation error for missing body")
	}
	if verr.Field != "body_md" {
		t.Fatalf("expected body_md failure, got %+v", verr)
	}
	if verr.File != "lessons/go-basics.json" {
		t.Fatalf("error should carry the source file, got %q", verr.File)
	}
}

func TestCourseFromModule(t *testing.T) {
	mod := RegistryModule{Slug: "go-basics", Title: "Go Basics", Description: "Intro", Order: 4}
	in := CourseFromModule(mod, "glasscode-academy")
	if in.Difficulty != DefaultDifficulty {
		t.Fatalf("expected default difficulty, got %q", in.Difficulty)
	}
	if in.Language != DefaultLanguage {
		t.Fatalf("expected default language, got %q", in.Language)
	}
	if in.Position != 4 {
		t.Fatalf("expected position from order, got %d", in.Position)
	}
	if in.Status != types.StatusPublished {
		t.Fatalf("migrated courses are published, got %q", in.Status)
	}
	if verr := in.Validate("registry.json", 0); verr != nil {
		t.Fatalf("unexpected validation error: %v", verr)
	}
}

func TestCourseValidate_MissingSlug(t *testing.T) {
	in := CourseFromModule(RegistryModule{Title: "No Slug"}, "glasscode-academy")
	if verr := in.Validate("registry.json", 1); verr == nil || verr.Field != "slug" {
		t.Fatalf("expected slug failure, got %+v", verr)
	}
}

func TestAcademyValidate_Defaults(t *testing.T) {
	in := AcademyInput{Title: "T", Slug: "t"}
	if verr := in.Validate("(config)", 0); verr != nil {
		t.Fatalf("unexpected validation error: %v", verr)
	}
	if in.Visibility != types.VisibilityPrivate {
		t.Fatalf("expected private default visibility, got %q", in.Visibility)
	}
	if in.Status != types.StatusDraft {
		t.Fatalf("expected draft default status, got %q", in.Status)
	}
	if in.Version != 1 {
		t.Fatalf("expected default version 1, got %d", in.Version)
	}
}

func TestAcademyValidate_BadEnums(t *testing.T) {
	in := AcademyInput{Title: "T", Slug: "t", Visibility: "secret"}
	if verr := in.Validate("(config)", 0); verr == nil || verr.Field != "visibility" {
		t.Fatalf("expected visibility failure, got %+v", verr)
	}
	in = AcademyInput{Title: "T", Slug: "t", Status: "archived"}
	if verr := in.Validate("(config)", 0); verr == nil || verr.Field != "status" {
		t.Fatalf("expected status failure, got %+v", verr)
	}
}

func TestQuizForModule(t *testing.T) {
	in := QuizForModule("go-error-handling")
	if in.Slug != "go-error-handling-quiz" {
		t.Fatalf("unexpected quiz slug %q", in.Slug)
	}
	if in.Title != "go error handling Quiz" {
		t.Fatalf("unexpected quiz title %q", in.Title)
	}
	if verr := in.Validate("quizzes/go-error-handling.json", 0); verr != nil {
		t.Fatalf("unexpected validation error: %v", verr)
	}
}

func TestAnswersSerializeForStorage(t *testing.T) {
	answers := []types.Answer{{Text: "A", Correct: false}, {Text: "B", Correct: true}}
	raw, err := json.Marshal(answers)
	if err != nil {
		t.Fatalf("marshal answers: %v", err)
	}
	want := `[{"text":"A","correct":false},{"text":"B","correct":true}]`
	if string(raw) != want {
		t.Fatalf("unexpected answers json: %s", raw)
	}
}
