package db

import (
	"fmt"

	"gorm.io/driver/postgres"
	"gorm.io/gorm"

	"github.com/glasscode/content-migrate/internal/domain"
	"github.com/glasscode/content-migrate/internal/platform/envutil"
	"github.com/glasscode/content-migrate/internal/platform/logger"
)

type PostgresService struct {
	db  *gorm.DB
	log *logger.Logger
}

// NewPostgresService opens the store connection. DATABASE_URL wins when
// set; otherwise the DSN is assembled from the POSTGRES_* variables.
func NewPostgresService(log *logger.Logger) (*PostgresService, error) {
	serviceLog := log.With("service", "PostgresService")

	dsn := envutil.String("DATABASE_URL", "", log)
	if dsn == "" {
		host := envutil.String("POSTGRES_HOST", "localhost", log)
		port := envutil.String("POSTGRES_PORT", "5432", log)
		user := envutil.String("POSTGRES_USER", "glasscode", log)
		password := envutil.String("POSTGRES_PASSWORD", "glasscode", log)
		name := envutil.String("POSTGRES_NAME", "glasscode", log)
		dsn = fmt.Sprintf("postgres://%s:%s@%s:%s/%s?sslmode=disable", user, password, host, port, name)
	}

	serviceLog.Info("Connecting to Postgres...")
	gdb, err := gorm.Open(postgres.Open(dsn), &gorm.Config{
		DisableForeignKeyConstraintWhenMigrating: true,
	})
	if err != nil {
		serviceLog.Error("Failed to connect to Postgres", "error", err)
		return nil, fmt.Errorf("failed to connect to Postgres: %w", err)
	}

	if err := gdb.Exec(`CREATE EXTENSION IF NOT EXISTS "uuid-ossp";`).Error; err != nil {
		serviceLog.Error("Failed to enable uuid-ossp extension", "error", err)
		return nil, fmt.Errorf("failed to enable uuid-ossp extension: %w", err)
	}

	return &PostgresService{db: gdb, log: serviceLog}, nil
}

func (s *PostgresService) AutoMigrateAll() error {
	s.log.Info("Auto migrating postgres tables...")
	err := s.db.AutoMigrate(
		&domain.Organisation{},
		&domain.Academy{},
		&domain.Course{},
		&domain.Lesson{},
		&domain.Quiz{},
		&domain.Question{},
		&domain.MigrationAudit{},
	)
	if err != nil {
		s.log.Error("Auto migration failed for postgres tables", "error", err)
		return err
	}
	if err := InstallSearchFunction(s.db); err != nil {
		return err
	}
	return nil
}

// InstallSearchFunction (re)creates the store-side materialization step
// invoked once per import run. It rebuilds search_tsv for every course
// and lesson row whose vector is stale or missing.
func InstallSearchFunction(gdb *gorm.DB) error {
	return gdb.Exec(`
		CREATE OR REPLACE FUNCTION update_search_tsv_for_content() RETURNS void AS $$
		BEGIN
			UPDATE courses
			SET search_tsv = to_tsvector('english',
				coalesce(title, '') || ' ' || coalesce(summary_md, ''))
			WHERE search_tsv IS NULL
				OR search_tsv != to_tsvector('english',
					coalesce(title, '') || ' ' || coalesce(summary_md, ''));

			UPDATE lessons
			SET search_tsv = to_tsvector('english',
				coalesce(title, '') || ' ' || coalesce(body_md, ''))
			WHERE search_tsv IS NULL
				OR search_tsv != to_tsvector('english',
					coalesce(title, '') || ' ' || coalesce(body_md, ''));
		END;
		$$ LANGUAGE plpgsql;
	`).Error
}

// Close releases the underlying connection pool. Guaranteed-cleanup
// callers defer this so a failed run still returns the connection.
func (s *PostgresService) Close() error {
	sqlDB, err := s.db.DB()
	if err != nil {
		return err
	}
	return sqlDB.Close()
}

func (s *PostgresService) DB() *gorm.DB {
	return s.db
}
