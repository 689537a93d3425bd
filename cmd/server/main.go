package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/medisupply/product-import/internal/api"
	"github.com/medisupply/product-import/internal/config"
	"github.com/medisupply/product-import/internal/service"
	"github.com/medisupply/product-import/internal/uploader"
	"github.com/medisupply/product-import/pkg/logger"
)

func main() {
	// Initialize logger
	log := logger.New(api.ImporterServiceName)
	log.Info().Msg("Starting product import server...")

	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to load configuration")
	}
	log = log.Level(logger.ParseLevel(cfg.Log.Level))

	// Catalog client
	client := uploader.New(
		cfg.Catalog.BaseURL,
		cfg.Catalog.Timeout,
		log,
		uploader.WithToken(cfg.Catalog.Token),
	)

	// Initialize services
	services := service.NewImportServices(client, log)

	// Initialize router
	router := api.NewImportRouter(services, cfg, log)

	// Create HTTP server
	srv := &http.Server{
		Addr:         ":" + cfg.Server.Port,
		Handler:      router,
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
		IdleTimeout:  cfg.Server.ReadTimeout,
	}

	// Start server in goroutine
	go func() {
		log.Info().
			Str("port", cfg.Server.Port).
			Str("catalog_url", cfg.Catalog.BaseURL).
			Msg("Server listening")
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal().Err(err).Msg("Server failed")
		}
	}()

	// Graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	log.Info().Msg("Shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeout)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		log.Fatal().Err(err).Msg("Server forced to shutdown")
	}

	log.Info().Msg("Server exited gracefully")
}
