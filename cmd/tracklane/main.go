package main

import (
	"fmt"
	"os"
	"os/user"
	"path/filepath"

	"github.com/mattn/go-isatty"

	"github.com/rfaulkner/tracklane/internal/cli"
	"github.com/rfaulkner/tracklane/internal/config"
	"github.com/rfaulkner/tracklane/internal/db"
	"github.com/rfaulkner/tracklane/internal/repository"
	"github.com/rfaulkner/tracklane/internal/service"
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	// Determine DB path: env var or default ~/.tracklane/tracklane.db
	dbPath := os.Getenv("TRACKLANE_DB")
	if dbPath == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return fmt.Errorf("finding home directory: %w", err)
		}
		dbPath = filepath.Join(home, ".tracklane", "tracklane.db")
	}

	cfg, err := config.Load(os.Getenv("TRACKLANE_CONFIG"))
	if err != nil {
		return fmt.Errorf("loading config: %w", err)
	}

	database, err := db.OpenDB(dbPath)
	if err != nil {
		return fmt.Errorf("opening database: %w", err)
	}
	defer database.Close()

	// Wire repositories
	projectRepo := repository.NewSQLiteProjectRepo(database)
	memberRepo := repository.NewSQLiteMemberRepo(database)
	trackRepo := repository.NewSQLiteTrackRepo(database)
	itemRepo := repository.NewSQLiteItemRepo(database)
	viewStateRepo := repository.NewSQLiteViewStateRepo(database)

	// Wire unit of work for transactional operations
	uow := db.NewSQLiteUnitOfWork(database)

	var observers []service.UseCaseObserver
	if os.Getenv("TRACKLANE_LOG_USECASES") != "" {
		observers = append(observers, service.NewLogUseCaseObserver(os.Stderr))
	}

	app := &cli.App{
		Projects:   service.NewProjectService(projectRepo, memberRepo, uow),
		Tracks:     service.NewTrackService(trackRepo, uow, cfg.TrashRetention()),
		Items:      service.NewItemService(itemRepo, trackRepo, uow),
		Roadmap:    service.NewRoadmapService(trackRepo, itemRepo, memberRepo, viewStateRepo, observers...),
		ViewStates: service.NewViewStateService(viewStateRepo),

		Config:      cfg,
		CurrentUser: currentUser(),
	}

	// Detect interactive terminal for the TUI entrypoint.
	app.IsInteractive = func() bool {
		return isatty.IsTerminal(os.Stdin.Fd()) || isatty.IsCygwinTerminal(os.Stdin.Fd())
	}

	rootCmd := cli.NewRootCmd(app)
	return rootCmd.Execute()
}

// currentUser picks the identity used for permission checks and per-viewer
// state; --as overrides it.
func currentUser() string {
	if v := os.Getenv("TRACKLANE_USER"); v != "" {
		return v
	}
	if u, err := user.Current(); err == nil && u.Username != "" {
		return u.Username
	}
	return "local"
}
