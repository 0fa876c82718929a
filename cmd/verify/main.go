package main

import (
	"context"
	"fmt"
	"os"

	"github.com/glasscode/content-migrate/internal/db"
	"github.com/glasscode/content-migrate/internal/platform/logger"
	"github.com/glasscode/content-migrate/internal/verify"
)

func main() {
	os.Exit(run())
}

func run() int {
	log, err := logger.New(os.Getenv("LOG_MODE"))
	if err != nil {
		fmt.Printf("Failed to init logger: %v\n", err)
		return 1
	}
	defer log.Sync()

	postgresService, err := db.NewPostgresService(log)
	if err != nil {
		log.Error("Postgres init failed", "error", err)
		return 1
	}
	defer postgresService.Close()

	runner := verify.NewRunner(postgresService.DB(), log)
	report, err := runner.Run(context.Background())
	if err != nil {
		log.Error("verification failed", "error", err)
		return 1
	}

	for _, table := range []string{"organisations", "academies", "courses", "lessons", "quizzes", "questions"} {
		fmt.Printf("%-15s %d\n", table, report.Counts[table])
	}
	for _, c := range report.Checks {
		status := "PASS"
		if !c.Passed {
			status = "FAIL"
		}
		fmt.Printf("[%s] %s", status, c.Name)
		if c.Detail != "" {
			fmt.Printf(" - %s", c.Detail)
		}
		fmt.Println()
		for _, o := range c.Offenders {
			fmt.Printf("    - %s\n", o)
		}
	}

	if report.Failed() {
		fmt.Println("Verification completed with failures.")
		return 1
	}
	fmt.Println("Verification completed.")
	return 0
}
