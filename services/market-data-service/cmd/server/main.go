package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/muhammadchandra19/exchange/pkg/logger"
	"github.com/muhammadchandra19/exchange/services/market-data-service/app/server"
	"github.com/muhammadchandra19/exchange/services/market-data-service/pkg/config"
)

func main() {
	ctx := context.Background()

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	appLogger, err := logger.NewLogger(logger.WithLoggingLevel(logger.ParseLevel(cfg.App.LogLevel)))
	if err != nil {
		log.Fatalf("Failed to initialize logger: %v", err)
	}
	defer appLogger.Sync()

	srv, err := server.InitServer(ctx, cfg, appLogger)
	if err != nil {
		appLogger.Error(err, logger.NewField("action", "init_server"))
		os.Exit(1)
	}

	if err := srv.Start(ctx); err != nil {
		appLogger.Error(err, logger.NewField("action", "start_server"))
		os.Exit(1)
	}

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	appLogger.Info("Shutting down market data service...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := srv.Stop(shutdownCtx); err != nil {
		appLogger.Error(err, logger.NewField("action", "stop_server"))
	}

	appLogger.Info("Market data service stopped")
}
