package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/robfig/cron/v3"
	"github.com/rs/cors"
	"github.com/sirupsen/logrus"

	"github.com/nishanthbasava/quantra-finance-hub/internal/config"
	"github.com/nishanthbasava/quantra-finance-hub/internal/handler"
	"github.com/nishanthbasava/quantra-finance-hub/internal/seed"
	"github.com/nishanthbasava/quantra-finance-hub/internal/service"
)

func main() {
	// Initialize logger
	logger := logrus.New()
	logger.SetFormatter(&logrus.JSONFormatter{})

	// Load configuration
	cfg, err := config.NewConfig()
	if err != nil {
		logger.Fatalf("Failed to load config: %v", err)
	}
	logLevel, err := logrus.ParseLevel(cfg.LogLevel)
	if err != nil {
		logLevel = logrus.InfoLevel
	}
	logger.SetLevel(logLevel)

	// Seed persistence: file-backed when a path is configured, otherwise
	// in-memory (a fresh identity per process).
	var store seed.Store
	if cfg.SeedFilePath != "" {
		store = seed.NewFileStore(cfg.SeedFilePath)
		logger.Infof("Using seed file at %s", cfg.SeedFilePath)
	} else {
		store = seed.NewMemoryStore()
		logger.Info("Using in-memory seed store")
	}

	svc := service.NewDataService(store, cfg.CacheSize, logger)
	h := handler.NewHandler(svc, logger)

	// Hourly sweep: session seeds rotate per hour bucket, so cached
	// forecasts for an unlocked seed go stale at the boundary.
	sweeper := cron.New()
	if _, err := sweeper.AddFunc(cfg.SweepSchedule, func() {
		locked, err := svc.IsLocked()
		if err != nil {
			logger.WithError(err).Warn("[sweep] failed to read lock state")
			return
		}
		if !locked {
			svc.ClearForecastCache()
			logger.Info("[sweep] cleared forecast cache for rotated session")
		}
	}); err != nil {
		logger.Fatalf("Failed to schedule cache sweep: %v", err)
	}
	sweeper.Start()
	defer sweeper.Stop()

	corsHandler := cors.New(cors.Options{
		AllowedOrigins: cfg.CORSOrigins,
		AllowedMethods: []string{"GET", "POST", "DELETE", "OPTIONS"},
		AllowedHeaders: []string{"Content-Type"},
	})

	addr := fmt.Sprintf(":%s", cfg.Port)
	server := &http.Server{
		Addr:         addr,
		Handler:      corsHandler.Handler(h.Router()),
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 10 * time.Second,
	}

	go func() {
		logger.Infof("Starting server on %s", addr)
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Fatalf("Server failed: %v", err)
		}
	}()

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, os.Interrupt, syscall.SIGTERM)
	<-stop

	logger.Info("Shutting down")
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := server.Shutdown(ctx); err != nil {
		logger.Errorf("Shutdown failed: %v", err)
	}
}
