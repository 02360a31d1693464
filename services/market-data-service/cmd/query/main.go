package main

import (
	"context"
	"log"
	"os"

	"github.com/muhammadchandra19/exchange/pkg/logger"
	"github.com/muhammadchandra19/exchange/pkg/questdb"
	bookInfra "github.com/muhammadchandra19/exchange/services/market-data-service/internal/infrastructure/questdb/book"
	priceInfra "github.com/muhammadchandra19/exchange/services/market-data-service/internal/infrastructure/questdb/price"
	marketdataUc "github.com/muhammadchandra19/exchange/services/market-data-service/internal/usecase/marketdata"
	"github.com/muhammadchandra19/exchange/services/market-data-service/pkg/config"
)

func main() {
	ctx := context.Background()

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	// Logs go to stderr so stdout stays machine readable.
	appLogger, err := logger.NewLogger(
		logger.WithLoggingLevel(logger.ParseLevel(cfg.App.LogLevel)),
		logger.WithOutputPaths([]string{"stderr"}),
	)
	if err != nil {
		log.Fatalf("Failed to initialize logger: %v", err)
	}

	client, err := questdb.NewClient(ctx, cfg.QuestDB)
	if err != nil {
		log.Fatalf("Failed to initialize QuestDB client: %v", err)
	}

	usecase := marketdataUc.NewUsecase(
		priceInfra.NewRepository(client),
		bookInfra.NewRepository(client),
		cfg.Query,
		appLogger,
	)

	code := run(ctx, usecase, os.Args[1:], os.Stdout, os.Stderr)

	client.Close()
	_ = appLogger.Sync()
	os.Exit(code)
}
