package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"roomfinder/internal/adapters/cache/redisstore"
	"roomfinder/internal/adapters/http/routes"
	"roomfinder/internal/config"
	"roomfinder/internal/core/services"
	"roomfinder/internal/pkg/logger"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"

	_ "roomfinder/docs" // Swagger docs
)

// @title roomfinder API
// @version 1.0
// @description Roommate and housing-listing marketplace API

// @BasePath /api

// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
// @description Type "Bearer" followed by a space and JWT token.

func main() {
	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	zlog, err := logger.New(cfg.AppMode, cfg.LogLevel)
	if err != nil {
		log.Fatalf("Failed to build logger: %v", err)
	}
	defer func() { _ = zlog.Sync() }()

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	store, err := config.OpenStore(ctx, cfg, zlog)
	cancel()
	if err != nil {
		zlog.Fatal("Failed to open store", zap.String("driver", cfg.Database.Driver), zap.Error(err))
	}
	defer func() {
		if err := store.Close(); err != nil {
			zlog.Error("Failed to close store", zap.Error(err))
		}
	}()

	// Bootstrap administrator, if configured
	seeder := services.NewSeedService(store, cfg, zlog)
	if err := seeder.SeedAdmin(context.Background(), cfg.Seed); err != nil {
		zlog.Fatal("Failed to seed admin", zap.Error(err))
	}

	// Shared rate limiter counters
	var limiterStorage fiber.Storage
	if cfg.Redis.URL != "" {
		rs, err := redisstore.NewFromURL(cfg.Redis.URL, zlog)
		if err != nil {
			zlog.Fatal("Failed to connect to Redis", zap.Error(err))
		}
		defer rs.Close()
		limiterStorage = rs
	}

	// Start maintenance cron
	cronService := services.NewCronService(store, cfg.Maintenance.Schedule, zlog)
	if err := cronService.Start(); err != nil {
		zlog.Fatal("Failed to start cron", zap.Error(err))
	}
	defer cronService.Stop()

	app := routes.NewApp(store, cfg, zlog, limiterStorage)

	// Graceful shutdown
	go gracefulShutdown(app, zlog)

	// Start server
	zlog.Info("Server starting", zap.String("port", cfg.Port), zap.String("mode", cfg.AppMode))
	if err := app.Listen(":" + cfg.Port); err != nil {
		zlog.Error("Server stopped with error", zap.Error(err))
	}
}

// gracefulShutdown handles graceful shutdown
func gracefulShutdown(app *fiber.App, zlog *zap.Logger) {
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	zlog.Info("Shutting down server...")
	if err := app.ShutdownWithTimeout(10 * time.Second); err != nil {
		zlog.Error("Error during shutdown", zap.Error(err))
	}
	zlog.Info("Server stopped gracefully")
}
