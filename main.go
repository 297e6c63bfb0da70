package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"

	"marketdash/internal/charts"
	"marketdash/internal/config"
	"marketdash/internal/dashboard"
	"marketdash/internal/logger"
	"marketdash/internal/server"
)

func main() {
	ctx := context.Background()

	// .env is optional
	_ = godotenv.Load()

	// Load configuration
	cfg, err := config.Load(ctx)
	if err != nil {
		logger.Fatal("Failed to load configuration", err)
	}
	logger.Configure(cfg.LogLevel, cfg.LogFormat, cfg.Environment)
	log := logger.Component("main")

	profile, err := config.LoadProfile(cfg.ProfilePath)
	if err != nil {
		log.Fatal("Failed to load dashboard profile", err)
	}

	log.Info("Starting market dashboard", logger.Fields{
		"version":     config.GetVersion(),
		"port":        cfg.Port,
		"environment": cfg.Environment,
		"mockup_mode": cfg.MockupMode,
	})

	// The dataset is fetched once; a failed load ends the process
	loadCtx, cancelLoad := context.WithTimeout(ctx, cfg.HTTPTimeout)
	store, err := dashboard.LoadStore(loadCtx, cfg, profile, nil)
	cancelLoad()
	if err != nil {
		log.Fatal("Failed to load dataset", err, logger.Fields{"url": cfg.DataURL})
	}

	controller := dashboard.NewController(store, charts.NewBuilder(profile), profile)
	srv := server.NewServer(cfg, store, controller)

	httpServer := &http.Server{
		Addr:         ":" + cfg.Port,
		Handler:      srv.Handler(),
		ReadTimeout:  30 * time.Second,
		WriteTimeout: 60 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	// Start server in goroutine
	go func() {
		log.Info("Server listening", logger.Fields{"addr": httpServer.Addr})
		if err := httpServer.ListenAndServe(); !errors.Is(err, http.ErrServerClosed) {
			log.Fatal("HTTP server error", err)
		}
	}()

	// Wait for interrupt signal
	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)
	<-sigChan

	log.Info("Shutting down server...")

	// Graceful shutdown
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := httpServer.Shutdown(shutdownCtx); err != nil {
		log.Error("Server shutdown error", err)
	}

	log.Info("Server stopped")
}
