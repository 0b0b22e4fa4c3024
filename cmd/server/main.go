package main

import (
	"context"
	"log"

	"github.com/fibercare/backend-go/internal/config"
	"github.com/fibercare/backend-go/internal/db"
	"github.com/fibercare/backend-go/internal/export"
	"github.com/fibercare/backend-go/internal/handler"
	"github.com/fibercare/backend-go/internal/observability"
	"github.com/fibercare/backend-go/internal/topology"
)

func main() {
	cfg := config.Load()
	ctx := context.Background()

	rules := topology.DefaultRules()
	if cfg.RulesFile != "" {
		loaded, err := topology.LoadRules(cfg.RulesFile)
		if err != nil {
			log.Fatalf("failed to load topology rules: %v", err)
		}
		rules = loaded
	}
	rules.Strict = cfg.StrictRules

	pool, err := db.NewPool(ctx, cfg.DatabaseURL)
	if err != nil {
		log.Fatalf("failed to connect to database: %v", err)
	}
	defer pool.Close()

	if err := db.Migrate(ctx, pool); err != nil {
		log.Fatalf("failed to migrate schema: %v", err)
	}

	store := db.NewElementStore(pool)

	var archiver handler.Archiver
	if cfg.ArchiveBucket != "" {
		a, err := export.NewArchiver(ctx, cfg.AWSRegion, cfg.ArchiveBucket)
		if err != nil {
			log.Fatalf("failed to configure analysis archive: %v", err)
		}
		archiver = a
	}

	metrics := observability.NewMetrics()
	topoHandler := handler.NewTopologyHandler(
		topology.NewPlanner(rules),
		topology.NewValidator(rules, store),
		topology.NewResolver(rules, store),
		store,
		archiver,
		metrics,
	)
	elemHandler := handler.NewElementHandler(store)

	r := handler.SetupRouter(topoHandler, elemHandler, metrics, cfg.CORSAllowOrigin)

	log.Printf("FiberCare backend-go starting on :%s", cfg.ServerPort)
	if err := r.Run(":" + cfg.ServerPort); err != nil {
		log.Fatalf("failed to start server: %v", err)
	}
}
