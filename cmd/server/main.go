package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"

	"go.uber.org/zap"

	"scholarship-go/internal/app"
	"scholarship-go/internal/config"
	"scholarship-go/internal/logging"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("config error: %v", err)
	}

	logger, err := logging.New(cfg.LogLevel)
	if err != nil {
		log.Fatalf("logger error: %v", err)
	}
	defer func() { _ = logger.Sync() }()

	if cfg.SerperAPIKey == "" || cfg.FirecrawlAPIKey == "" {
		logger.Warn("provider credentials missing; /search will fail until they are set")
	}

	application, err := app.NewBuilder(&cfg, app.WithLogger(logger)).Build()
	if err != nil {
		logger.Fatal("app build error", zap.Error(err))
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := application.Run(ctx); err != nil {
		logger.Error("server error", zap.Error(err))
		os.Exit(1)
	}
}
