//go:build ignore

// check_db verifies the configured database is reachable, applies the
// schema and reports how many products are stored:
//
//	go run scripts/check_db.go
package main

import (
	"context"
	"fmt"
	"os"

	"catalog-sync/internal/config"
	"catalog-sync/internal/database"
	"catalog-sync/internal/repository"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Invalid configuration: %v\n", err)
		os.Exit(1)
	}

	logger := config.NewLogger(cfg.Logger)
	ctx := context.Background()

	pool, err := database.NewPool(ctx, cfg.Database, logger)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Unable to connect to database: %v\n", err)
		os.Exit(1)
	}
	defer pool.Close()

	if err := database.EnsureSchema(ctx, pool, logger); err != nil {
		fmt.Fprintf(os.Stderr, "Unable to apply schema: %v\n", err)
		os.Exit(1)
	}

	count, err := repository.NewProductRepository(pool, logger).Count(ctx)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Count failed: %v\n", err)
		os.Exit(1)
	}

	fmt.Printf("Successfully connected to database %s: %d products stored\n", cfg.Database.Database, count)
}
