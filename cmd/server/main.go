package main

import (
	"context"
	"log"
	"os/signal"
	"syscall"
	"time"

	"go.uber.org/zap"

	"github.com/dcortes/volunteer-hub/internal/api"
	"github.com/dcortes/volunteer-hub/internal/auth"
	"github.com/dcortes/volunteer-hub/internal/config"
	"github.com/dcortes/volunteer-hub/internal/db"
	"github.com/dcortes/volunteer-hub/internal/notify"
)

func main() {
	logger, err := zap.NewProduction()
	if err != nil {
		log.Fatalf("Failed to initialize logger: %v", err)
	}
	defer logger.Sync()

	cfg, err := config.Load()
	if err != nil {
		logger.Fatal("failed to load configuration", zap.Error(err))
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	pool, err := db.Connect(ctx, cfg.DatabaseURL)
	if err != nil {
		logger.Fatal("failed to connect to database", zap.Error(err))
	}
	defer pool.Close()

	if err := db.ApplyMigrations(ctx, pool, logger); err != nil {
		logger.Fatal("migration failed", zap.Error(err))
	}

	store := db.NewStore(pool)

	authService, err := auth.NewService(store, cfg.JWTSecret)
	if err != nil {
		logger.Fatal("failed to initialize auth", zap.Error(err))
	}

	srv := api.NewServer(store, authService, cfg.Weights, logger)

	poller := notify.NewPoller(store, &notify.LogSender{Logger: logger}, cfg.NotifyInterval, logger)
	go poller.Run(ctx)

	go func() {
		logger.Info("server starting", zap.String("port", cfg.Port))
		if err := srv.Start(cfg.Port); err != nil {
			logger.Info("server stopped", zap.Error(err))
		}
	}()

	<-ctx.Done()

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Echo.Shutdown(shutdownCtx); err != nil {
		logger.Error("graceful shutdown failed", zap.Error(err))
	}
}
