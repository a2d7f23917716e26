package main

import (
	"context"
	"log"
	"os"
	"path/filepath"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/squadhq/squadtui/internal/config"
	"github.com/squadhq/squadtui/internal/database"
	"github.com/squadhq/squadtui/internal/database/repository"
	"github.com/squadhq/squadtui/internal/modal"
	"github.com/squadhq/squadtui/internal/modals"
	"github.com/squadhq/squadtui/internal/tui"
)

func main() {
	ctx := context.Background()

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("config: %v", err)
	}

	if err := os.MkdirAll(filepath.Dir(cfg.Database.Path), 0o755); err != nil {
		log.Fatalf("mkdir db dir: %v", err)
	}

	if err := database.RunMigrations(cfg.Database.Path, "internal/database/migrations"); err != nil {
		log.Fatalf("migrate: %v", err)
	}

	db, err := database.Open(cfg.Database.Path)
	if err != nil {
		log.Fatalf("open db: %v", err)
	}
	defer db.Close()

	if err := database.SeedDefaults(ctx, db); err != nil {
		log.Fatalf("seed defaults: %v", err)
	}

	// repositories
	postRepo := repository.NewPostRepo(db)
	squadRepo := repository.NewSquadRepo(db)
	upvoteRepo := repository.NewUpvoteRepo(db)
	reportRepo := repository.NewReportRepo(db)

	// modal registry: totality over the variant set is checked here, before
	// the UI starts, so a malformed entry set fails fast at boot.
	entries := modals.Entries(modals.Deps{
		Posts:    postRepo,
		Squads:   squadRepo,
		Upvotes:  upvoteRepo,
		Reports:  reportRepo,
		Username: cfg.UI.Username,
	})
	registry, err := modal.NewRegistry(entries)
	if err != nil {
		log.Fatalf("modal registry: %v", err)
	}
	loader := modal.NewLoader(registry)

	app := tui.New(ctx, cfg, registry, loader, tui.Repos{
		Posts:   postRepo,
		Squads:  squadRepo,
		Upvotes: upvoteRepo,
		Reports: reportRepo,
	})

	p := tea.NewProgram(app, tea.WithAltScreen())
	if _, err := p.Run(); err != nil {
		log.Fatalf("tui: %v", err)
	}
}
