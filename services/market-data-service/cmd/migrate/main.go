package main

import (
	"context"
	"flag"
	"io/fs"
	"log"
	"os"

	"github.com/muhammadchandra19/exchange/pkg/logger"
	"github.com/muhammadchandra19/exchange/pkg/migration"
	"github.com/muhammadchandra19/exchange/pkg/questdb"
	"github.com/muhammadchandra19/exchange/services/market-data-service/internal/infrastructure/questdb/migrations"
	"github.com/muhammadchandra19/exchange/services/market-data-service/pkg/config"
)

func main() {
	steps := flag.Int("steps", 0, "Number of pending migrations to apply (0 applies all)")
	flag.Parse()

	ctx := context.Background()

	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	appLogger, err := logger.NewLogger(logger.WithLoggingLevel(logger.ParseLevel(cfg.App.LogLevel)))
	if err != nil {
		log.Fatalf("Failed to initialize logger: %v", err)
	}
	defer appLogger.Sync()

	// Initialize QuestDB client
	client, err := questdb.NewClient(ctx, cfg.QuestDB)
	if err != nil {
		log.Fatalf("Failed to initialize QuestDB client: %v", err)
	}
	defer client.Close()

	// MIGRATION_DIR overrides the embedded schema.
	var source fs.FS = migrations.FS
	if cfg.MigrationDir != "" {
		source = os.DirFS(cfg.MigrationDir)
	}

	applied, err := migration.NewRunner(client, source, appLogger).Up(ctx, *steps)
	if err != nil {
		appLogger.Error(err, logger.NewField("action", "migrate"), logger.NewField("applied", applied))
		os.Exit(1)
	}

	appLogger.Info("Migrations completed successfully", logger.NewField("applied", applied))
}
