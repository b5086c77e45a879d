// Command seed loads the sample users, listers and listings into the
// configured store. Records that already exist are left untouched.
package main

import (
	"context"
	"log"
	"time"

	"roomfinder/internal/config"
	"roomfinder/internal/core/services"
	"roomfinder/internal/pkg/logger"

	"go.uber.org/zap"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	zlog, err := logger.New(cfg.AppMode, cfg.LogLevel)
	if err != nil {
		log.Fatalf("Failed to build logger: %v", err)
	}
	defer func() { _ = zlog.Sync() }()

	if cfg.Database.Driver == config.DriverMemory {
		zlog.Fatal("Seeding the memory store has no lasting effect; set DB_DRIVER to mysql or mongodb")
	}

	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Minute)
	defer cancel()

	store, err := config.OpenStore(ctx, cfg, zlog)
	if err != nil {
		zlog.Fatal("Failed to open store", zap.Error(err))
	}
	defer store.Close()

	seeder := services.NewSeedService(store, cfg, zlog)
	if err := seeder.SeedAdmin(ctx, cfg.Seed); err != nil {
		zlog.Fatal("Failed to seed admin", zap.Error(err))
	}
	if err := seeder.SeedSampleData(ctx); err != nil {
		zlog.Fatal("Failed to seed sample data", zap.Error(err))
	}

	zlog.Info("Sample data loaded")
}
