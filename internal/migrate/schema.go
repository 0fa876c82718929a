package migrate

import (
	"fmt"
	"strings"

	types "github.com/glasscode/content-migrate/internal/domain"
)

// Defaults applied by the schema layer when the source record omits a
// field. The importer overrides status with "published" for migrated
// content; the schema default stays "draft" for any other caller.
const (
	DefaultLanguage    = "en-AU"
	DefaultDifficulty  = "Beginner"
	DefaultDurationMin = 30
	DefaultVersion     = 1
	DefaultStatus      = types.StatusDraft
	DefaultVisibility  = types.VisibilityPrivate
)

// ValidationError pinpoints one rejected record with enough context to
// find it in the source tree. It never aborts a run; the importer logs
// it and moves on to the next record.
type ValidationError struct {
	File   string
	Index  int
	Kind   string
	Field  string
	Reason string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("%s record %d in %s: field %q %s", e.Kind, e.Index, e.File, e.Field, e.Reason)
}

func invalid(file string, index int, kind, field, reason string) *ValidationError {
	return &ValidationError{File: file, Index: index, Kind: kind, Field: field, Reason: reason}
}

func validStatus(s string) bool {
	switch s {
	case types.StatusDraft, types.StatusInReview, types.StatusPublished:
		return true
	}
	return false
}

func validVisibility(s string) bool {
	switch s {
	case types.VisibilityPrivate, types.VisibilityPublic, types.VisibilityUnlisted:
		return true
	}
	return false
}

// AcademyInput is the canonical academy record before persistence.
type AcademyInput struct {
	Title         string
	Slug          string
	DescriptionMD string
	Visibility    string
	Version       int
	Status        string
}

func (in *AcademyInput) Validate(file string, index int) *ValidationError {
	const kind = "academy"
	if strings.TrimSpace(in.Title) == "" {
		return invalid(file, index, kind, "title", "is required")
	}
	if strings.TrimSpace(in.Slug) == "" {
		return invalid(file, index, kind, "slug", "is required")
	}
	if in.Visibility == "" {
		in.Visibility = DefaultVisibility
	}
	if !validVisibility(in.Visibility) {
		return invalid(file, index, kind, "visibility", fmt.Sprintf("has invalid value %q", in.Visibility))
	}
	if in.Version == 0 {
		in.Version = DefaultVersion
	}
	if in.Version < 1 {
		return invalid(file, index, kind, "version", "must be a positive integer")
	}
	if in.Status == "" {
		in.Status = DefaultStatus
	}
	if !validStatus(in.Status) {
		return invalid(file, index, kind, "status", fmt.Sprintf("has invalid value %q", in.Status))
	}
	return nil
}

// CourseInput is the canonical course record before persistence.
type CourseInput struct {
	AcademySlug string
	Title       string
	Slug        string
	SummaryMD   string
	Language    string
	Difficulty  string
	Position    int
	Version     int
	Status      string
}

func (in *CourseInput) Validate(file string, index int) *ValidationError {
	const kind = "course"
	if strings.TrimSpace(in.AcademySlug) == "" {
		return invalid(file, index, kind, "academy_slug", "is required")
	}
	if strings.TrimSpace(in.Title) == "" {
		return invalid(file, index, kind, "title", "is required")
	}
	if strings.TrimSpace(in.Slug) == "" {
		return invalid(file, index, kind, "slug", "is required")
	}
	if in.Language == "" {
		in.Language = DefaultLanguage
	}
	if in.Position < 0 {
		return invalid(file, index, kind, "position", "must not be negative")
	}
	if in.Version == 0 {
		in.Version = DefaultVersion
	}
	if in.Version < 1 {
		return invalid(file, index, kind, "version", "must be a positive integer")
	}
	if in.Status == "" {
		in.Status = DefaultStatus
	}
	if !validStatus(in.Status) {
		return invalid(file, index, kind, "status", fmt.Sprintf("has invalid value %q", in.Status))
	}
	return nil
}

// CourseFromModule maps a registry module onto a canonical course
// record. Migrated content is explicitly published regardless of the
// schema's draft default.
func CourseFromModule(mod RegistryModule, academySlug string) CourseInput {
	difficulty := mod.Difficulty
	if difficulty == "" {
		difficulty = DefaultDifficulty
	}
	return CourseInput{
		AcademySlug: academySlug,
		Title:       mod.Title,
		Slug:        mod.Slug,
		SummaryMD:   mod.Description,
		Language:    DefaultLanguage,
		Difficulty:  difficulty,
		Position:    mod.Order,
		Version:     DefaultVersion,
		Status:      types.StatusPublished,
	}
}

// LessonInput is the canonical lesson record before persistence.
type LessonInput struct {
	CourseSlug  string
	Title       string
	Slug        string
	BodyMD      string
	DurationMin int
	Position    int
	Version     int
	Status      string
}

func (in *LessonInput) Validate(file string, index int) *ValidationError {
	const kind = "lesson"
	if strings.TrimSpace(in.CourseSlug) == "" {
		return invalid(file, index, kind, "course_slug", "is required")
	}
	if strings.TrimSpace(in.Title) == "" {
		return invalid(file, index, kind, "title", "is required")
	}
	if strings.TrimSpace(in.Slug) == "" {
		return invalid(file, index, kind, "slug", "is required")
	}
	if strings.TrimSpace(in.BodyMD) == "" {
		return invalid(file, index, kind, "body_md", "is required")
	}
	if in.DurationMin < 0 {
		return invalid(file, index, kind, "duration_min", "must not be negative")
	}
	if in.Position < 0 {
		return invalid(file, index, kind, "position", "must not be negative")
	}
	if in.Version == 0 {
		in.Version = DefaultVersion
	}
	if in.Version < 1 {
		return invalid(file, index, kind, "version", "must be a positive integer")
	}
	if in.Status == "" {
		in.Status = DefaultStatus
	}
	if !validStatus(in.Status) {
		return invalid(file, index, kind, "status", fmt.Sprintf("has invalid value %q", in.Status))
	}
	return nil
}

// LessonFromSource maps one raw lesson record onto a canonical lesson.
// index is the record's 0-based position within its source file and
// backs the 1-based fallbacks for title, slug and position.
func LessonFromSource(rec map[string]any, moduleSlug string, index int) LessonInput {
	title := stringField(rec, "title")
	if title == "" {
		title = fmt.Sprintf("Lesson %d", index+1)
	}
	slug := stringField(rec, "slug")
	if slug == "" {
		slug = fmt.Sprintf("%s-lesson-%d", moduleSlug, index+1)
	}
	duration := intField(rec, "estimatedMinutes", DefaultDurationMin)
	position := intField(rec, "order", index+1)
	return LessonInput{
		CourseSlug:  moduleSlug,
		Title:       title,
		Slug:        slug,
		BodyMD:      stringField(rec, "intro"),
		DurationMin: duration,
		Position:    position,
		Version:     DefaultVersion,
		Status:      types.StatusPublished,
	}
}

// QuizInput is the canonical quiz record before persistence.
type QuizInput struct {
	CourseSlug string
	Title      string
	Slug       string
	Version    int
	Status     string
}

func (in *QuizInput) Validate(file string, index int) *ValidationError {
	const kind = "quiz"
	if strings.TrimSpace(in.CourseSlug) == "" {
		return invalid(file, index, kind, "course_slug", "is required")
	}
	if strings.TrimSpace(in.Title) == "" {
		return invalid(file, index, kind, "title", "is required")
	}
	if strings.TrimSpace(in.Slug) == "" {
		return invalid(file, index, kind, "slug", "is required")
	}
	if in.Version == 0 {
		in.Version = DefaultVersion
	}
	if in.Version < 1 {
		return invalid(file, index, kind, "version", "must be a positive integer")
	}
	if in.Status == "" {
		in.Status = DefaultStatus
	}
	if !validStatus(in.Status) {
		return invalid(file, index, kind, "status", fmt.Sprintf("has invalid value %q", in.Status))
	}
	return nil
}

// QuizForModule derives the single quiz aggregating a module's
// questions. One quiz per module file is the source convention.
func QuizForModule(moduleSlug string) QuizInput {
	return QuizInput{
		CourseSlug: moduleSlug,
		Title:      strings.ReplaceAll(moduleSlug, "-", " ") + " Quiz",
		Slug:       moduleSlug + "-quiz",
		Version:    DefaultVersion,
		Status:     types.StatusPublished,
	}
}

// QuestionInput is the canonical question record before persistence.
type QuestionInput struct {
	QuizSlug   string
	QuestionMD string
	Answers    []types.Answer
	Position   int
	Version    int
	// NoCorrectAnswer flags a source record whose correct index was
	// missing or out of range. An anomaly worth a warning, not an
	// error: the record still imports.
	NoCorrectAnswer bool
}

func (in *QuestionInput) Validate(file string, index int) *ValidationError {
	const kind = "question"
	if strings.TrimSpace(in.QuizSlug) == "" {
		return invalid(file, index, kind, "quiz_slug", "is required")
	}
	if strings.TrimSpace(in.QuestionMD) == "" {
		return invalid(file, index, kind, "question_md", "is required")
	}
	if len(in.Answers) == 0 {
		return invalid(file, index, kind, "answers", "must have at least one entry")
	}
	for i, a := range in.Answers {
		if strings.TrimSpace(a.Text) == "" {
			return invalid(file, index, kind, fmt.Sprintf("answers[%d].text", i), "is required")
		}
	}
	if in.Position < 0 {
		return invalid(file, index, kind, "position", "must not be negative")
	}
	if in.Version == 0 {
		in.Version = DefaultVersion
	}
	if in.Version < 1 {
		return invalid(file, index, kind, "version", "must be a positive integer")
	}
	return nil
}

// QuestionFromSource maps a raw question record, translating the
// choices[] + correctAnswer index pair into the canonical answers
// list: the index selects exactly one correct:true entry, every other
// choice becomes correct:false.
func QuestionFromSource(rec map[string]any, quizSlug string, index int) QuestionInput {
	correctIdx, hasCorrect := intFieldOK(rec, "correctAnswer")

	var answers []types.Answer
	if choices, ok := rec["choices"].([]any); ok {
		answers = make([]types.Answer, 0, len(choices))
		for j, c := range choices {
			answers = append(answers, types.Answer{
				Text:    fmt.Sprintf("%v", c),
				Correct: hasCorrect && correctIdx == j,
			})
		}
	}
	noCorrect := !hasCorrect || correctIdx < 0 || correctIdx >= len(answers)

	return QuestionInput{
		QuizSlug:        quizSlug,
		QuestionMD:      stringField(rec, "question"),
		Answers:         answers,
		Position:        intField(rec, "id", index+1),
		Version:         DefaultVersion,
		NoCorrectAnswer: noCorrect,
	}
}

func stringField(rec map[string]any, key string) string {
	if v, ok := rec[key].(string); ok {
		return v
	}
	return ""
}

// intField reads a numeric field, falling back when the field is
// absent, non-numeric or zero (the source data treats 0 as unset).
func intField(rec map[string]any, key string, fallback int) int {
	if v, ok := intFieldOK(rec, key); ok && v != 0 {
		return v
	}
	return fallback
}

func intFieldOK(rec map[string]any, key string) (int, bool) {
	switch v := rec[key].(type) {
	case float64:
		return int(v), true
	case int:
		return v, true
	default:
		return 0, false
	}
}
