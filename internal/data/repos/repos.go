package repos

import (
	"gorm.io/gorm"

	"github.com/glasscode/content-migrate/internal/data/repos/content"
	"github.com/glasscode/content-migrate/internal/platform/logger"
)

type OrganisationRepo = content.OrganisationRepo
type AcademyRepo = content.AcademyRepo
type CourseRepo = content.CourseRepo
type LessonRepo = content.LessonRepo
type QuizRepo = content.QuizRepo
type QuestionRepo = content.QuestionRepo
type MigrationAuditRepo = content.MigrationAuditRepo
type SearchIndexRepo = content.SearchIndexRepo

func NewOrganisationRepo(db *gorm.DB, baseLog *logger.Logger) OrganisationRepo {
	return content.NewOrganisationRepo(db, baseLog)
}
func NewAcademyRepo(db *gorm.DB, baseLog *logger.Logger) AcademyRepo {
	return content.NewAcademyRepo(db, baseLog)
}
func NewCourseRepo(db *gorm.DB, baseLog *logger.Logger) CourseRepo {
	return content.NewCourseRepo(db, baseLog)
}
func NewLessonRepo(db *gorm.DB, baseLog *logger.Logger) LessonRepo {
	return content.NewLessonRepo(db, baseLog)
}
func NewQuizRepo(db *gorm.DB, baseLog *logger.Logger) QuizRepo {
	return content.NewQuizRepo(db, baseLog)
}
func NewQuestionRepo(db *gorm.DB, baseLog *logger.Logger) QuestionRepo {
	return content.NewQuestionRepo(db, baseLog)
}
func NewMigrationAuditRepo(db *gorm.DB, baseLog *logger.Logger) MigrationAuditRepo {
	return content.NewMigrationAuditRepo(db, baseLog)
}
func NewSearchIndexRepo(db *gorm.DB, baseLog *logger.Logger) SearchIndexRepo {
	return content.NewSearchIndexRepo(db, baseLog)
}

// Bundle groups every repo a pipeline run needs.
type Bundle struct {
	Organisations   OrganisationRepo
	Academies       AcademyRepo
	Courses         CourseRepo
	Lessons         LessonRepo
	Quizzes         QuizRepo
	Questions       QuestionRepo
	MigrationAudits MigrationAuditRepo
	SearchIndex     SearchIndexRepo
}

func NewBundle(db *gorm.DB, baseLog *logger.Logger) Bundle {
	return Bundle{
		Organisations:   NewOrganisationRepo(db, baseLog),
		Academies:       NewAcademyRepo(db, baseLog),
		Courses:         NewCourseRepo(db, baseLog),
		Lessons:         NewLessonRepo(db, baseLog),
		Quizzes:         NewQuizRepo(db, baseLog),
		Questions:       NewQuestionRepo(db, baseLog),
		MigrationAudits: NewMigrationAuditRepo(db, baseLog),
		SearchIndex:     NewSearchIndexRepo(db, baseLog),
	}
}
