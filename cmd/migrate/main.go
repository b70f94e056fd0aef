package main

import (
	"context"
	"flag"
	"log"
	"time"

	"applytrack/internal/app"
	"applytrack/internal/config"
	dbpostgres "applytrack/internal/database/postgres"
	"applytrack/internal/pkg/logger"
)

func main() {
	dir := flag.String("dir", "", "migrations directory (defaults to MIGRATIONS_DIR)")
	timeout := flag.Duration("timeout", 2*time.Minute, "overall timeout")
	flag.Parse()

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("failed to load config: %v", err)
	}
	if cfg.App.StorageDriver != config.StorageDriverPostgres {
		log.Fatalf("migrate requires STORAGE_DRIVER=%s", config.StorageDriverPostgres)
	}
	if *dir == "" {
		*dir = cfg.App.MigrationsDir
	}

	lg, err := logger.New(cfg.App.Environment)
	if err != nil {
		log.Fatalf("failed to init logger: %v", err)
	}
	defer lg.Sync()

	ctx, cancel := context.WithTimeout(context.Background(), *timeout)
	defer cancel()

	db, err := dbpostgres.Connect(ctx, cfg.Database)
	if err != nil {
		lg.Fatal("failed to connect database", "error", err)
	}
	defer func() {
		_ = db.Close()
	}()

	if err := app.Migrate(ctx, db, *dir, lg); err != nil {
		lg.Fatal("migration failed", "error", err)
	}
}
