package main

import (
	"context"
	"flag"
	"log"
	"time"

	"skillified/internal/config"
	"skillified/internal/database/migration"
	dbpostgres "skillified/internal/database/postgres"
	"skillified/internal/database/seeder"
	"skillified/internal/logger"

	"go.uber.org/zap"
)

func main() {
	seed := flag.Bool("seed", false, "insert the default skill catalog after migrating")
	dir := flag.String("dir", "", "read migrations from this directory instead of the embedded set")
	flag.Parse()

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("failed to load config: %v", err)
	}
	if cfg.App.StoreDriver != config.StoreDriverPostgres {
		log.Fatalf("migrations need STORE_DRIVER=%s, got %q", config.StoreDriverPostgres, cfg.App.StoreDriver)
	}

	lg, err := logger.New(logger.Config{
		Environment: cfg.App.Environment,
		Level:       cfg.Log.Level,
		ServiceName: cfg.App.AppName + "-migrate",
	})
	if err != nil {
		log.Fatalf("failed to init logger: %v", err)
	}
	defer func() { _ = lg.Sync() }()

	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Minute)
	defer cancel()

	db, err := dbpostgres.Connect(ctx, cfg.Database, lg.Named("db"))
	if err != nil {
		lg.Fatal("connect database", zap.Error(err))
	}
	defer func() { _ = db.Close() }()

	migDir := cfg.Database.MigrationsDir
	if *dir != "" {
		migDir = *dir
	}
	r := migration.Runner{Dir: migDir, Logger: lg}
	if err := r.Run(ctx, db.SQLDB()); err != nil {
		lg.Fatal("migration failed", zap.Error(err))
	}
	lg.Info("migrations up to date")

	if !*seed {
		return
	}
	s := seeder.Runner{Seeders: seeder.Defaults(), Logger: lg}
	if err := s.Run(ctx, db); err != nil {
		lg.Fatal("seed failed", zap.Error(err))
	}
}
