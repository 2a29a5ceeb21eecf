// Package main provides the asctl administrative command line.
package main

import (
	"context"
	"fmt"
	"os"

	"gorm.io/gorm"

	"github.com/festy23/as_manager/internal/cli"
	"github.com/festy23/as_manager/internal/config"
	"github.com/festy23/as_manager/internal/database/database"
	"github.com/festy23/as_manager/pkg/logger"
)

func main() {
	cfg := config.LoadFromEnv()
	cfg.Logger.Level = "warn"
	cfg.Logger.Output = "stderr"

	log, err := logger.NewWithConfig(cfg.Logger)
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to create logger: %v\n", err)
		os.Exit(1)
	}
	defer func() { _ = log.Sync() }()

	rt := &cli.Runtime{
		Config: cfg,
		Logger: log,
		OpenDB: func(context.Context) (*gorm.DB, error) {
			return database.New(log)
		},
	}

	if err := cli.NewRootCmd(rt).Execute(); err != nil {
		os.Exit(1)
	}
}
