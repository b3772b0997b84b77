/*
Package main is the entry point for the PawHaven server.

It is responsible for loading configuration, initializing the global logging
system, connecting to PostgreSQL (running migrations), Redis, and the photo
store, starting the support chat hub, and gracefully handling operating
system interrupt signals (SIGINT, SIGTERM) for a smooth shutdown.
*/
package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"pawhaven/internal/app/application"
	"pawhaven/internal/app/appointment"
	"pawhaven/internal/app/cache"
	"pawhaven/internal/app/chat"
	"pawhaven/internal/app/contact"
	"pawhaven/internal/app/db"
	"pawhaven/internal/app/medical"
	"pawhaven/internal/app/pet"
	"pawhaven/internal/app/resource"
	"pawhaven/internal/app/storage"
	"pawhaven/internal/app/user"
	"pawhaven/internal/configs"
	"pawhaven/internal/handler"
	"pawhaven/internal/pkg/logx"
	"pawhaven/internal/pkg/pow"
)

func main() {
	// Load configuration from environment variables
	cfg, err := configs.LoadConfig()
	if err != nil {
		fmt.Fprintf(os.Stderr, "FATAL: Failed to load configuration: %v\n", err)
		os.Exit(1)
	}

	// Initialize global logger
	logx.InitGlobalLogger(cfg.Environment == "development")
	logx.Logger().Info().
		Str("environment", cfg.Environment).
		Int("port", cfg.Port).
		Strs("allowed_origins", cfg.AllowedOrigins).
		Int("pow_difficulty", cfg.PowDifficulty).
		Msg("Configuration loaded successfully")

	// Create a context that listens for the interrupt signal from the OS.
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	// Database (with migrations)
	pool, err := db.NewPool(cfg.DatabaseDSN)
	if err != nil {
		logx.Fatal(err, "Failed to connect to database")
	}
	defer pool.Close()

	// Photo storage
	photos, err := storage.NewPhotoStore(storage.ServiceConfig{
		S3BucketName:      cfg.S3BucketName,
		S3Endpoint:        cfg.S3Endpoint,
		S3AccessKeyID:     cfg.S3AccessKeyID,
		S3SecretAccessKey: cfg.S3SecretAccessKey,
	})
	if err != nil {
		logx.Fatal(err, "Failed to initialize photo storage")
	}

	// Pet catalog cache is optional: without REDIS_URL every read hits the
	// database directly.
	var catalog *cache.Catalog
	if cfg.RedisURL != "" {
		catalog, err = cache.NewCatalog(ctx, cfg.RedisURL)
		if err != nil {
			logx.Fatal(err, "Failed to connect to Redis")
		}
		defer catalog.Close()
		logx.Info("Pet catalog cache enabled")
	} else {
		logx.Info("REDIS_URL not set, pet catalog cache disabled")
	}

	// Support chat hub
	hub := chat.NewHub()

	deps := &handler.AppDeps{
		Hub:     hub,
		Config:  cfg,
		Photos:  photos,
		Catalog: catalog,
		Pow:     pow.NewManager(cfg.PowDifficulty),

		Users:        user.NewRepository(pool),
		Pets:         pet.NewRepository(pool),
		Resources:    resource.NewRepository(pool),
		Appointments: appointment.NewRepository(pool),
		Applications: application.NewRepository(pool),
		Medical:      medical.NewRepository(pool),
		Contacts:     contact.NewRepository(pool),
	}

	router := handler.Router(deps)

	serverAddr := fmt.Sprintf(":%d", cfg.Port)
	server := &http.Server{
		Addr:         serverAddr,
		Handler:      router,
		ReadTimeout:  5 * time.Second,
		WriteTimeout: 10 * time.Second,
		IdleTimeout:  120 * time.Second,
	}

	go func() {
		logx.Info(fmt.Sprintf("PawHaven Server starting on http://localhost%s", serverAddr))
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logx.Fatal(err, "Server failed to start")
		}
	}()

	// Wait for interrupt signal to gracefully shutdown the server with a timeout of 5 seconds.
	<-ctx.Done()
	logx.Info("Received shutdown signal. Starting graceful shutdown...")

	shutdownCtx, cancelShutdown := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancelShutdown()

	if err := server.Shutdown(shutdownCtx); err != nil {
		logx.Fatal(err, "Server forced to shutdown")
	}

	hub.Shutdown()

	logx.Info("Server gracefully stopped.")
}
