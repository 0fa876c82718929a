package verify

import (
	"context"
	"fmt"

	"gorm.io/gorm"

	types "github.com/glasscode/content-migrate/internal/domain"
	"github.com/glasscode/content-migrate/internal/platform/logger"
)

// offenderLimit caps how many offending rows a failed check reports.
const offenderLimit = 10

// Check is one verification category's outcome.
type Check struct {
	Name      string
	Passed    bool
	Detail    string
	Offenders []string
}

// Report aggregates every check of one verification pass together with
// the store's current row counts.
type Report struct {
	Counts map[string]int64
	Checks []Check
	Audit  *types.MigrationAudit
}

func (r *Report) Failed() bool {
	for _, c := range r.Checks {
		if !c.Passed {
			return true
		}
	}
	return false
}

// Runner re-queries the persisted store and checks the invariants the
// import pipeline is supposed to guarantee. It is strictly read-only
// and safe to run at any time; results reflect the store as it stands.
type Runner struct {
	db  *gorm.DB
	log *logger.Logger
}

func NewRunner(db *gorm.DB, baseLog *logger.Logger) *Runner {
	return &Runner{db: db, log: baseLog.With("component", "Verifier")}
}

func (r *Runner) Run(ctx context.Context) (*Report, error) {
	report := &Report{Counts: map[string]int64{}}

	for _, table := range []string{"organisations", "academies", "courses", "lessons", "quizzes", "questions"} {
		var n int64
		if err := r.db.WithContext(ctx).Table(table).Count(&n).Error; err != nil {
			return nil, fmt.Errorf("count %s: %w", table, err)
		}
		report.Counts[table] = n
		r.log.Info("row count", "table", table, "count", n)
	}

	orphanChecks := []struct {
		name  string
		query string
	}{
		{"orphaned academies", `
			SELECT a.slug FROM academies a
			LEFT JOIN organisations o ON o.id = a.organisation_id
			WHERE o.id IS NULL LIMIT ?`},
		{"orphaned courses", `
			SELECT c.slug FROM courses c
			LEFT JOIN academies a ON a.id = c.academy_id
			WHERE a.id IS NULL LIMIT ?`},
		{"orphaned lessons", `
			SELECT l.slug FROM lessons l
			LEFT JOIN courses c ON c.id = l.course_id
			WHERE c.id IS NULL LIMIT ?`},
		{"orphaned quizzes", `
			SELECT q.slug FROM quizzes q
			LEFT JOIN courses c ON c.id = q.course_id
			WHERE c.id IS NULL LIMIT ?`},
		{"orphaned questions", `
			SELECT qs.id::text FROM questions qs
			LEFT JOIN quizzes q ON q.id = qs.quiz_id
			WHERE q.id IS NULL LIMIT ?`},
	}
	for _, oc := range orphanChecks {
		check, err := r.offenderCheck(ctx, oc.name, oc.query)
		if err != nil {
			return nil, err
		}
		report.Checks = append(report.Checks, check)
	}

	dupChecks := []struct {
		name  string
		query string
	}{
		{"duplicate course slugs", `
			SELECT slug FROM courses GROUP BY slug HAVING COUNT(*) > 1 LIMIT ?`},
		{"duplicate lesson slugs", `
			SELECT slug FROM lessons GROUP BY slug HAVING COUNT(*) > 1 LIMIT ?`},
		{"duplicate quiz slugs", `
			SELECT slug FROM quizzes GROUP BY slug HAVING COUNT(*) > 1 LIMIT ?`},
		{"duplicate question positions", `
			SELECT quiz_id::text || '#' || position::text FROM questions
			GROUP BY quiz_id, position HAVING COUNT(*) > 1 LIMIT ?`},
	}
	for _, dc := range dupChecks {
		check, err := r.offenderCheck(ctx, dc.name, dc.query)
		if err != nil {
			return nil, err
		}
		report.Checks = append(report.Checks, check)
	}

	searchChecks := []struct {
		name  string
		query string
	}{
		{"lessons missing search vector", `
			SELECT slug FROM lessons WHERE search_tsv IS NULL LIMIT ?`},
		{"courses missing search vector", `
			SELECT slug FROM courses WHERE search_tsv IS NULL LIMIT ?`},
	}
	for _, sc := range searchChecks {
		check, err := r.offenderCheck(ctx, sc.name, sc.query)
		if err != nil {
			return nil, err
		}
		report.Checks = append(report.Checks, check)
	}

	auditCheck, audit, err := r.checkAudit(ctx)
	if err != nil {
		return nil, err
	}
	report.Checks = append(report.Checks, auditCheck)
	report.Audit = audit

	for _, c := range report.Checks {
		if c.Passed {
			r.log.Info("check passed", "check", c.Name)
		} else {
			r.log.Warn("check failed", "check", c.Name, "detail", c.Detail, "offenders", c.Offenders)
		}
	}
	return report, nil
}

func (r *Runner) offenderCheck(ctx context.Context, name, query string) (Check, error) {
	var offenders []string
	if err := r.db.WithContext(ctx).Raw(query, offenderLimit).Scan(&offenders).Error; err != nil {
		return Check{}, fmt.Errorf("%s: %w", name, err)
	}
	check := Check{Name: name, Passed: len(offenders) == 0, Offenders: offenders}
	if !check.Passed {
		check.Detail = fmt.Sprintf("found %d offending rows (showing at most %d)", len(offenders), offenderLimit)
	}
	return check, nil
}

// checkAudit verifies at least one migration audit row exists and
// surfaces the latest one so an operator can cross-check its counts
// against the content tree.
func (r *Runner) checkAudit(ctx context.Context) (Check, *types.MigrationAudit, error) {
	var rows []*types.MigrationAudit
	if err := r.db.WithContext(ctx).
		Order("started_at DESC").
		Limit(1).
		Find(&rows).Error; err != nil {
		return Check{}, nil, fmt.Errorf("load migration audit: %w", err)
	}
	if len(rows) == 0 {
		return Check{Name: "migration audit present", Passed: false, Detail: "no migration audit rows found"}, nil, nil
	}
	audit := rows[0]
	r.log.Info("latest migration audit",
		"audit_id", audit.ID,
		"snapshot", audit.SourceSnapshot,
		"checksum", audit.ChecksumManifest,
		"academies", audit.ImportedAcademies,
		"courses", audit.ImportedCourses,
		"lessons", audit.ImportedLessons,
		"quizzes", audit.ImportedQuizzes,
		"questions", audit.ImportedQuestions,
		"started_at", audit.StartedAt,
		"finished_at", audit.FinishedAt,
	)
	return Check{Name: "migration audit present", Passed: true}, audit, nil
}
