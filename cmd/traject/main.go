package main

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/ameliebergh/traject/internal/cli"
	"github.com/ameliebergh/traject/internal/db"
	"github.com/ameliebergh/traject/internal/repository"
	"github.com/ameliebergh/traject/internal/service"
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	// Determine DB path: env var or default ~/.traject/traject.db
	dbPath := os.Getenv("TRAJECT_DB")
	if dbPath == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return fmt.Errorf("finding home directory: %w", err)
		}
		dbPath = filepath.Join(home, ".traject", "traject.db")
	}

	database, err := db.OpenDB(dbPath)
	if err != nil {
		return fmt.Errorf("opening database: %w", err)
	}
	defer database.Close()

	scopeRepo := repository.NewSQLiteScopeRepo(database)
	workItemRepo := repository.NewSQLiteWorkItemRepo(database)
	depRepo := repository.NewSQLiteDependencyRepo(database)

	uow := db.NewSQLiteUnitOfWork(database)

	// Optional use-case logging to stderr.
	var observers []service.UseCaseObserver
	if os.Getenv("TRAJECT_LOG") != "" {
		observers = append(observers, service.NewLogUseCaseObserver(os.Stderr))
	}

	app := &cli.App{
		Scopes:    service.NewScopeService(scopeRepo, workItemRepo, uow),
		Outline:   service.NewOutlineService(workItemRepo, depRepo, uow),
		WorkItems: service.NewWorkItemService(workItemRepo, depRepo, uow),
		Deps:      service.NewDependencyService(workItemRepo, depRepo, uow),
		Rollup:    service.NewRollupService(scopeRepo, workItemRepo, observers...),
		Health:    service.NewHealthService(scopeRepo, workItemRepo, depRepo, observers...),
	}

	return cli.NewRootCmd(app).Execute()
}
