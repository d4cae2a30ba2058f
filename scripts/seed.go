package main

import (
	"context"
	"flag"
	"fmt"
	"log"

	"github.com/Rohit1301k/dareroom/internal/catalog"
	"github.com/Rohit1301k/dareroom/internal/config"
	"github.com/Rohit1301k/dareroom/internal/pkg/database"
	"github.com/Rohit1301k/dareroom/internal/repository"
	"github.com/Rohit1301k/dareroom/internal/store"
	"go.uber.org/zap"
)

// Seeds the question catalog into the configured store. The server
// does this on first run by itself; this tool exists for resetting the
// catalog after edits with -reset.
func main() {
	reset := flag.Bool("reset", false, "clear the question collection before seeding")
	flag.Parse()

	log.Println("Starting question seed...")

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	logger := zap.NewNop()

	gameStore, err := openStore(cfg, logger)
	if err != nil {
		log.Fatalf("Failed to open store: %v", err)
	}
	defer gameStore.Close()

	ctx := context.Background()

	if *reset {
		col, err := gameStore.Collection(store.Questions)
		if err != nil {
			log.Fatalf("Failed to open question collection: %v", err)
		}
		if err := col.Clear(ctx); err != nil {
			log.Fatalf("Failed to clear questions: %v", err)
		}
		log.Println("Cleared existing questions")
	}

	questionRepo := repository.NewQuestionRepository(gameStore)
	seeded, err := questionRepo.SeedIfEmpty(ctx, catalog.Questions())
	if err != nil {
		log.Fatalf("Failed to seed questions: %v", err)
	}

	if seeded == 0 {
		log.Println("Question collection already seeded, nothing to do")
	} else {
		log.Printf("Seeded %d questions across %d categories", seeded, len(catalog.Categories()))
	}
}

func openStore(cfg *config.Config, logger *zap.Logger) (store.Store, error) {
	switch cfg.Store.Backend {
	case config.BackendFile:
		return store.NewFileStore(cfg.Store.File.Dir, logger)
	case config.BackendPostgres:
		db, err := database.NewPostgres(&cfg.Store.Postgres, logger)
		if err != nil {
			return nil, err
		}
		return store.NewPostgresStore(db, logger)
	default:
		return nil, fmt.Errorf("unknown store backend: %q", cfg.Store.Backend)
	}
}
