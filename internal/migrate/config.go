package migrate

import (
	"github.com/glasscode/content-migrate/internal/platform/envutil"
	"github.com/glasscode/content-migrate/internal/platform/logger"
)

type Config struct {
	// ContentRoot is the directory holding registry.json plus the
	// lessons/ and quizzes/ subtrees.
	ContentRoot string
	// SourceSnapshot is a free-text label stored on the audit row.
	SourceSnapshot string
	AcademyTitle   string
	AcademySlug    string
	// DryRun reads, validates and fingerprints but writes nothing.
	DryRun bool
}

func LoadConfig(log *logger.Logger) Config {
	return Config{
		ContentRoot:    envutil.String("CONTENT_ROOT", "content", log),
		SourceSnapshot: envutil.String("SOURCE_SNAPSHOT", "local", log),
		AcademyTitle:   envutil.String("ACADEMY_TITLE", "GlassCode Academy", log),
		AcademySlug:    envutil.String("ACADEMY_SLUG", "glasscode-academy", log),
	}
}
