package main

import (
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/mattn/go-isatty"

	"github.com/lvitali/cronosheet/internal/auth"
	"github.com/lvitali/cronosheet/internal/cli"
	"github.com/lvitali/cronosheet/internal/config"
	"github.com/lvitali/cronosheet/internal/db"
	"github.com/lvitali/cronosheet/internal/intelligence"
	"github.com/lvitali/cronosheet/internal/llm"
	"github.com/lvitali/cronosheet/internal/repository"
	"github.com/lvitali/cronosheet/internal/service"
	"github.com/lvitali/cronosheet/internal/storage"
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	cfg, err := config.Load()
	if err != nil {
		return err
	}
	if err := os.MkdirAll(cfg.DataDir, 0755); err != nil {
		return fmt.Errorf("creating data directory: %w", err)
	}

	var (
		projectRepo repository.ProjectRepo
		entryRepo   repository.EntryRepo
		profileRepo repository.ProfileRepo
		uow         db.UnitOfWork
		demoMode    = cfg.Demo
	)

	if !demoMode {
		database, err := db.OpenDB(cfg.DBPath)
		if err != nil {
			// A broken database never blocks usage; the local JSON
			// store takes over with demo data.
			fmt.Fprintf(os.Stderr, "Warning: database unavailable (%v); falling back to the local demo store.\n", err)
			demoMode = true
		} else {
			defer database.Close()
			projectRepo = repository.NewSQLiteProjectRepo(database)
			entryRepo = repository.NewSQLiteEntryRepo(database)
			profileRepo = repository.NewSQLiteProfileRepo(database)
			uow = db.NewSQLiteUnitOfWork(database)
		}
	}

	if demoMode {
		store, err := storage.NewStore(filepath.Join(cfg.DataDir, "demo"))
		if err != nil {
			return fmt.Errorf("opening demo store: %w", err)
		}
		projectRepo = store.Projects()
		entryRepo = store.Entries()
		profileRepo = store.Profiles()
	}

	var obsWriter io.Writer
	if cfg.LogUseCases {
		obsWriter = os.Stderr
	}
	observer := service.NewLogUseCaseObserver(obsWriter)

	var insightsClient llm.Client
	llmCfg := llm.LoadConfig()
	if llmCfg.Enabled {
		var llmObserver llm.Observer = llm.NoopObserver{}
		if llmCfg.LogCalls {
			llmObserver = llm.NewLogObserver(os.Stderr)
		}
		insightsClient = llm.NewOllamaClient(llmCfg, llmObserver)
	}

	app := &cli.App{
		Auth:      auth.NewManager(profileRepo, cfg.DataDir),
		Projects:  service.NewProjectService(projectRepo, observer),
		Entries:   service.NewEntryService(entryRepo, projectRepo, uow, observer),
		Profiles:  service.NewProfileService(profileRepo, observer),
		Admin:     service.NewAdminService(profileRepo, observer),
		Workspace: service.NewWorkspaceService(projectRepo, entryRepo, observer),
		Insights:  intelligence.NewInsightsService(insightsClient),
		DemoMode:  demoMode,
		Interactive: isatty.IsTerminal(os.Stdin.Fd()) ||
			isatty.IsCygwinTerminal(os.Stdin.Fd()),
	}

	return cli.NewRootCmd(app).Execute()
}
