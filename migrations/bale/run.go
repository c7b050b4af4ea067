package main

import (
	"context"
	"embed"
	"log/slog"
	"os"

	"github.com/ghuser/baleyard/pkg/config"
	"github.com/ghuser/baleyard/pkg/logger"
	"github.com/ghuser/baleyard/pkg/migrator"
)

//go:embed *.sql
var MigrationsFS embed.FS

func main() {
	cfg, err := config.Load()
	if err != nil {
		slog.Error("failed to load config", "error", err)
		os.Exit(1)
	}
	log := logger.New(cfg)

	res, err := migrator.RunMigrations(context.Background(), cfg.DefinitionDatabaseURL, MigrationsFS)
	if err != nil {
		log.Error("bale migrations failed", "error", err)
		os.Exit(1)
	}
	log.Info("bale migrations applied", "applied", res.Applied, "version", res.Version)
}
