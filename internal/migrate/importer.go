package migrate

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"

	"github.com/glasscode/content-migrate/internal/data/repos"
	types "github.com/glasscode/content-migrate/internal/domain"
	"github.com/glasscode/content-migrate/internal/platform/dbctx"
	"github.com/glasscode/content-migrate/internal/platform/logger"
)

// Summary is what one pipeline run produced. Counts are distinct
// natural keys successfully upserted, not records attempted.
type Summary struct {
	SnapshotLabel string
	Checksum      string
	Academies     int
	Courses       int
	Lessons       int
	Quizzes       int
	Questions     int
	Invalid       int
	Skipped       int
	Failed        int
	StartedAt     time.Time
	FinishedAt    time.Time
	AuditID       uuid.UUID
	DryRun        bool
}

// Importer runs the content migration: checksum, read, validate,
// upsert in hierarchy order, search refresh, audit. Each record
// commits independently; one bad record never aborts its siblings.
type Importer struct {
	cfg   Config
	repos repos.Bundle
	log   *logger.Logger
}

func NewImporter(cfg Config, bundle repos.Bundle, baseLog *logger.Logger) *Importer {
	return &Importer{cfg: cfg, repos: bundle, log: baseLog.With("component", "Importer")}
}

func (imp *Importer) Run(ctx context.Context) (*Summary, error) {
	sum := &Summary{
		SnapshotLabel: imp.cfg.SourceSnapshot,
		StartedAt:     time.Now().UTC(),
		DryRun:        imp.cfg.DryRun,
	}

	checksum, err := ChecksumDir(imp.cfg.ContentRoot)
	if err != nil {
		return nil, fmt.Errorf("checksum content root: %w", err)
	}
	sum.Checksum = checksum
	imp.log.Info("computed content checksum", "checksum", checksum, "content_root", imp.cfg.ContentRoot)

	reg, err := ReadRegistry(filepath.Join(imp.cfg.ContentRoot, "registry.json"))
	if err != nil {
		return nil, err
	}
	imp.log.Info("loaded registry", "modules", len(reg.Modules))

	res := NewResolver()
	dbc := dbctx.Context{Ctx: ctx}

	academyID, err := imp.importOrganisationAndAcademy(dbc, res)
	if err != nil {
		return nil, err
	}

	imp.importCourses(dbc, reg, res, academyID, sum)
	imp.importLessons(dbc, res, sum)
	imp.importQuizzes(dbc, res, sum)

	if !imp.cfg.DryRun {
		if err := imp.repos.SearchIndex.RefreshContentVectors(dbc); err != nil {
			return nil, fmt.Errorf("refresh search vectors: %w", err)
		}
		imp.log.Info("refreshed search vectors")
	}

	sum.Academies = res.Count(KindAcademy)
	sum.Courses = res.Count(KindCourse)
	sum.Lessons = res.Count(KindLesson)
	sum.Quizzes = res.Count(KindQuiz)
	sum.Questions = res.Count(KindQuestion)
	sum.FinishedAt = time.Now().UTC()

	if !imp.cfg.DryRun {
		audit := &types.MigrationAudit{
			SourceSnapshot:    sum.SnapshotLabel,
			ImportedAcademies: sum.Academies,
			ImportedCourses:   sum.Courses,
			ImportedLessons:   sum.Lessons,
			ImportedQuizzes:   sum.Quizzes,
			ImportedQuestions: sum.Questions,
			ChecksumManifest:  sum.Checksum,
			StartedAt:         sum.StartedAt,
			FinishedAt:        sum.FinishedAt,
		}
		if err := imp.repos.MigrationAudits.Create(dbc, audit); err != nil {
			return nil, fmt.Errorf("record migration audit: %w", err)
		}
		sum.AuditID = audit.ID
		imp.log.Info("recorded migration audit", "audit_id", audit.ID)
	}

	imp.log.Info("import finished",
		"snapshot", sum.SnapshotLabel,
		"checksum", sum.Checksum,
		"academies", sum.Academies,
		"courses", sum.Courses,
		"lessons", sum.Lessons,
		"quizzes", sum.Quizzes,
		"questions", sum.Questions,
		"invalid", sum.Invalid,
		"skipped", sum.Skipped,
		"failed", sum.Failed,
		"dry_run", sum.DryRun,
	)
	return sum, nil
}

// importOrganisationAndAcademy seeds the top of the hierarchy. A
// failure here is run-level: nothing below can attach without these
// two ids.
func (imp *Importer) importOrganisationAndAcademy(dbc dbctx.Context, res *Resolver) (uuid.UUID, error) {
	org := &types.Organisation{Name: "Default Org", Slug: "default"}
	if imp.cfg.DryRun {
		org.ID = uuid.New()
	} else if err := imp.repos.Organisations.UpsertBySlug(dbc, org); err != nil {
		return uuid.Nil, fmt.Errorf("upsert organisation %q: %w", org.Slug, err)
	}
	res.Register(KindOrganisation, org.Slug, org.ID)
	imp.log.Info("upserted organisation", "slug", org.Slug, "id", org.ID)

	in := AcademyInput{
		Title:         imp.cfg.AcademyTitle,
		Slug:          imp.cfg.AcademySlug,
		DescriptionMD: "Comprehensive programming courses",
		Visibility:    types.VisibilityPublic,
		Version:       DefaultVersion,
		Status:        types.StatusPublished,
	}
	if verr := in.Validate("(config)", 0); verr != nil {
		return uuid.Nil, verr
	}
	academy := &types.Academy{
		OrganisationID: org.ID,
		Title:          in.Title,
		Slug:           in.Slug,
		DescriptionMD:  in.DescriptionMD,
		Visibility:     in.Visibility,
		Version:        in.Version,
		Status:         in.Status,
	}
	if imp.cfg.DryRun {
		academy.ID = uuid.New()
	} else if err := imp.repos.Academies.UpsertBySlug(dbc, academy); err != nil {
		return uuid.Nil, fmt.Errorf("upsert academy %q: %w", academy.Slug, err)
	}
	res.Register(KindAcademy, academy.Slug, academy.ID)
	imp.log.Info("upserted academy", "slug", academy.Slug, "id", academy.ID)
	return academy.ID, nil
}

func (imp *Importer) importCourses(dbc dbctx.Context, reg *Registry, res *Resolver, academyID uuid.UUID, sum *Summary) {
	for i, mod := range reg.Modules {
		in := CourseFromModule(mod, imp.cfg.AcademySlug)
		if verr := in.Validate("registry.json", i); verr != nil {
			imp.log.Warn("invalid record", "error", verr.Error())
			sum.Invalid++
			continue
		}
		course := &types.Course{
			AcademyID:  academyID,
			Title:      in.Title,
			Slug:       in.Slug,
			SummaryMD:  in.SummaryMD,
			Language:   in.Language,
			Difficulty: in.Difficulty,
			Position:   in.Position,
			Version:    in.Version,
			Status:     in.Status,
			RawJSON:    datatypes.JSON(mod.Raw),
		}
		if imp.cfg.DryRun {
			course.ID = uuid.New()
		} else if err := imp.repos.Courses.UpsertBySlug(dbc, course); err != nil {
			imp.log.Error("upsert failed", "kind", "course", "slug", course.Slug, "error", err)
			sum.Failed++
			continue
		}
		res.Register(KindCourse, course.Slug, course.ID)
		imp.log.Info("upserted course", "slug", course.Slug, "title", course.Title)
	}
}

func (imp *Importer) importLessons(dbc dbctx.Context, res *Resolver, sum *Summary) {
	dir := filepath.Join(imp.cfg.ContentRoot, "lessons")
	for _, file := range listJSONFiles(dir, imp.log) {
		moduleSlug := strings.TrimSuffix(filepath.Base(file), ".json")
		courseID, ok := res.Resolve(KindCourse, moduleSlug)
		if !ok {
			imp.log.Warn("skipping lessons for module with no course", "module", moduleSlug)
			sum.Skipped++
			continue
		}

		records, _ := ReadRecords(file, imp.log)
		imp.log.Info("processing lessons", "module", moduleSlug, "records", len(records))
		for i, rec := range records {
			in := LessonFromSource(rec, moduleSlug, i)
			if verr := in.Validate(file, i); verr != nil {
				imp.log.Warn("invalid record", "error", verr.Error())
				sum.Invalid++
				continue
			}
			raw, err := json.Marshal(rec)
			if err != nil {
				imp.log.Error("upsert failed", "kind", "lesson", "slug", in.Slug, "error", err)
				sum.Failed++
				continue
			}
			lesson := &types.Lesson{
				CourseID:    courseID,
				Title:       in.Title,
				Slug:        in.Slug,
				BodyMD:      in.BodyMD,
				DurationMin: in.DurationMin,
				Position:    in.Position,
				Version:     in.Version,
				Status:      in.Status,
				RawJSON:     datatypes.JSON(raw),
			}
			if imp.cfg.DryRun {
				lesson.ID = uuid.New()
			} else if err := imp.repos.Lessons.UpsertBySlug(dbc, lesson); err != nil {
				imp.log.Error("upsert failed", "kind", "lesson", "slug", lesson.Slug, "error", err)
				sum.Failed++
				continue
			}
			res.Register(KindLesson, lesson.Slug, lesson.ID)
			imp.log.Info("upserted lesson", "slug", lesson.Slug, "title", lesson.Title)
		}
	}
}

func (imp *Importer) importQuizzes(dbc dbctx.Context, res *Resolver, sum *Summary) {
	dir := filepath.Join(imp.cfg.ContentRoot, "quizzes")
	for _, file := range listJSONFiles(dir, imp.log) {
		moduleSlug := strings.TrimSuffix(filepath.Base(file), ".json")
		courseID, ok := res.Resolve(KindCourse, moduleSlug)
		if !ok {
			imp.log.Warn("skipping quizzes for module with no course", "module", moduleSlug)
			sum.Skipped++
			continue
		}

		records, shape := ReadRecords(file, imp.log)
		if shape != ShapeQuestionsObject || len(records) == 0 {
			imp.log.Warn("no questions found in quiz file", "file", file, "shape", shape.String())
			sum.Skipped++
			continue
		}
		imp.log.Info("processing questions", "module", moduleSlug, "records", len(records))

		in := QuizForModule(moduleSlug)
		if verr := in.Validate(file, 0); verr != nil {
			imp.log.Warn("invalid record", "error", verr.Error())
			sum.Invalid++
			continue
		}
		rawFile, err := os.ReadFile(file)
		if err != nil {
			imp.log.Error("upsert failed", "kind", "quiz", "slug", in.Slug, "error", err)
			sum.Failed++
			continue
		}
		quiz := &types.Quiz{
			CourseID: courseID,
			Title:    in.Title,
			Slug:     in.Slug,
			Version:  in.Version,
			Status:   in.Status,
			RawJSON:  datatypes.JSON(rawFile),
		}
		if imp.cfg.DryRun {
			quiz.ID = uuid.New()
		} else if err := imp.repos.Quizzes.UpsertBySlug(dbc, quiz); err != nil {
			imp.log.Error("upsert failed", "kind", "quiz", "slug", quiz.Slug, "error", err)
			sum.Failed++
			continue
		}
		res.Register(KindQuiz, quiz.Slug, quiz.ID)
		imp.log.Info("upserted quiz", "slug", quiz.Slug, "title", quiz.Title)

		imp.importQuestions(dbc, res, sum, file, quiz, records)
	}
}

func (imp *Importer) importQuestions(dbc dbctx.Context, res *Resolver, sum *Summary, file string, quiz *types.Quiz, records []map[string]any) {
	for i, rec := range records {
		in := QuestionFromSource(rec, quiz.Slug, i)
		if verr := in.Validate(file, i); verr != nil {
			imp.log.Warn("invalid record", "error", verr.Error())
			sum.Invalid++
			continue
		}
		if in.NoCorrectAnswer {
			imp.log.Warn("question has no correct answer", "file", file, "index", i, "quiz", quiz.Slug)
		}
		answers, err := json.Marshal(in.Answers)
		if err != nil {
			imp.log.Error("upsert failed", "kind", "question", "quiz", quiz.Slug, "position", in.Position, "error", err)
			sum.Failed++
			continue
		}
		raw, err := json.Marshal(rec)
		if err != nil {
			imp.log.Error("upsert failed", "kind", "question", "quiz", quiz.Slug, "position", in.Position, "error", err)
			sum.Failed++
			continue
		}
		question := &types.Question{
			QuizID:      quiz.ID,
			QuestionMD:  in.QuestionMD,
			AnswersJSON: datatypes.JSON(answers),
			Position:    in.Position,
			Version:     in.Version,
			RawJSON:     datatypes.JSON(raw),
		}
		if imp.cfg.DryRun {
			question.ID = uuid.New()
		} else if err := imp.repos.Questions.UpsertByQuizPosition(dbc, question); err != nil {
			imp.log.Error("upsert failed", "kind", "question", "quiz", quiz.Slug, "position", question.Position, "error", err)
			sum.Failed++
			continue
		}
		res.Register(KindQuestion, fmt.Sprintf("%s#%d", quiz.Slug, question.Position), question.ID)
		imp.log.Info("upserted question", "quiz", quiz.Slug, "position", question.Position)
	}
}

// listJSONFiles returns the .json entries of dir in name order. A
// missing directory is a tolerated partial tree, not a failure.
func listJSONFiles(dir string, log *logger.Logger) []string {
	entries, err := os.ReadDir(dir)
	if err != nil {
		log.Warn("content directory unavailable, skipping", "dir", dir, "error", err)
		return nil
	}
	var out []string
	for _, e := range entries {
		if e.IsDir() || !strings.HasSuffix(e.Name(), ".json") {
			continue
		}
		out = append(out, filepath.Join(dir, e.Name()))
	}
	return out
}
