package main

import (
	"context"
	"flag"
	"fmt"
	"os"

	"github.com/glasscode/content-migrate/internal/data/repos"
	"github.com/glasscode/content-migrate/internal/db"
	"github.com/glasscode/content-migrate/internal/migrate"
	"github.com/glasscode/content-migrate/internal/platform/logger"
)

func main() {
	os.Exit(run())
}

// run carries the whole import; returning (instead of exiting) keeps
// the deferred connection cleanup guaranteed even on failure.
func run() int {
	var dryRun bool
	flag.BoolVar(&dryRun, "dry-run", false, "read, validate and fingerprint without writing to the store")
	flag.Parse()

	log, err := logger.New(os.Getenv("LOG_MODE"))
	if err != nil {
		fmt.Printf("Failed to init logger: %v\n", err)
		return 1
	}
	defer log.Sync()

	cfg := migrate.LoadConfig(log)
	cfg.DryRun = dryRun

	var bundle repos.Bundle
	if !dryRun {
		postgresService, err := db.NewPostgresService(log)
		if err != nil {
			log.Error("Postgres init failed", "error", err)
			return 1
		}
		defer postgresService.Close()

		if err := postgresService.AutoMigrateAll(); err != nil {
			log.Error("Postgres auto migration failed", "error", err)
			return 1
		}
		bundle = repos.NewBundle(postgresService.DB(), log)
	}

	importer := migrate.NewImporter(cfg, bundle, log)
	sum, err := importer.Run(context.Background())
	if err != nil {
		log.Error("import failed", "error", err)
		return 1
	}

	fmt.Printf("Import succeeded.\n")
	fmt.Printf("Snapshot: %s\n", sum.SnapshotLabel)
	fmt.Printf("Manifest checksum: %s\n", sum.Checksum)
	fmt.Printf("Counts -> academies:%d courses:%d lessons:%d quizzes:%d questions:%d\n",
		sum.Academies, sum.Courses, sum.Lessons, sum.Quizzes, sum.Questions)
	if sum.Invalid > 0 || sum.Skipped > 0 || sum.Failed > 0 {
		fmt.Printf("Anomalies -> invalid:%d skipped:%d failed:%d\n", sum.Invalid, sum.Skipped, sum.Failed)
	}
	return 0
}
