// Package main provides the entry point for the HTTP server.
package main

import (
	"context"
	"log"
	"os/signal"
	"syscall"

	"github.com/gin-gonic/gin"

	"github.com/festy23/as_manager/internal/app"
	"github.com/festy23/as_manager/internal/config"
	"github.com/festy23/as_manager/internal/database/database"
	"github.com/festy23/as_manager/internal/database/migrate"
	"github.com/festy23/as_manager/pkg/logger"
)

func main() {
	cfg := config.LoadFromEnv()
	if err := cfg.Validate(); err != nil {
		log.Fatalf("invalid configuration: %v", err)
	}

	appLogger, err := logger.NewWithConfig(cfg.Logger)
	if err != nil {
		log.Fatalf("failed to create logger: %v", err)
	}
	defer func() { _ = appLogger.Sync() }()

	gin.SetMode(cfg.GinMode)
	appLogger.Infow("configuration loaded", cfg.Summary()...)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	db, err := database.New(appLogger)
	if err != nil {
		appLogger.Fatalw("failed to connect to database", "error", err)
	}
	defer func() {
		if err := database.Close(db); err != nil {
			appLogger.Warnw("failed to close database", "error", err)
		}
	}()

	if err := migrate.Migrate(db); err != nil {
		appLogger.Fatalw("failed to apply migrations", "error", err)
	}

	sessions, closeSessions, err := app.NewSessionStore(ctx, cfg.Session, appLogger)
	if err != nil {
		appLogger.Fatalw("failed to open session store", "error", err)
	}
	defer func() { _ = closeSessions() }()

	router, err := app.NewRouter(app.Deps{
		Config:   cfg,
		DB:       db,
		Sessions: sessions,
		Logger:   appLogger,
	})
	if err != nil {
		appLogger.Fatalw("failed to build router", "error", err)
	}

	if err := app.Serve(ctx, cfg.Server, router, appLogger); err != nil {
		appLogger.Errorw("server stopped with error", "error", err)
	}
}
