package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/MKhiriev/go-card-sync/internal/adapter"
	"github.com/MKhiriev/go-card-sync/internal/config"
	handler "github.com/MKhiriev/go-card-sync/internal/handler/http"
	"github.com/MKhiriev/go-card-sync/internal/logger"
	"github.com/MKhiriev/go-card-sync/internal/service"
	"github.com/MKhiriev/go-card-sync/internal/store"
	"github.com/MKhiriev/go-card-sync/internal/workers"
)

const shutdownTimeout = 10 * time.Second

var (
	buildVersion string
	buildDate    string
	buildCommit  string
)

func main() {
	printBuildInfo()

	log := logger.NewLogger("go-card-syncd")
	cfg, err := config.GetStructuredConfig()
	if err != nil {
		log.Fatal().Err(err).Msg("error getting configs")
	}

	log.Debug().Any("config", cfg).Msg("received configs")

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM, syscall.SIGQUIT)
	defer stop()

	storages, err := store.NewStorages(cfg.Storage, log)
	if err != nil {
		log.Fatal().Err(err).Msg("error creating storages")
	}
	defer storages.Close()

	cloud, err := adapter.NewHTTPCloudStore(cfg.Cloud, log)
	if err != nil {
		log.Fatal().Err(err).Msg("error creating cloud store adapter")
	}

	services := service.NewServices(storages.Entities, cloud, cfg, log)
	defer services.Orchestrator.Close()

	runner := workers.NewRunner(services, storages.Entities, cloud, cfg.Workers, cfg.Validation, log)
	runner.Start(ctx)
	defer runner.Stop()

	handlers := handler.NewHandler(services, log)
	server := &http.Server{
		Addr:              cfg.Server.HTTPAddress,
		Handler:           http.TimeoutHandler(handlers.Init(), cfg.Server.RequestTimeout, "request timed out"),
		ReadHeaderTimeout: 5 * time.Second,
	}

	serverErr := make(chan error, 1)
	go func() {
		log.Info().Str("address", cfg.Server.HTTPAddress).Msg("http server listening")
		serverErr <- server.ListenAndServe()
	}()

	select {
	case <-ctx.Done():
		log.Info().Msg("shutdown signal received")
	case err := <-serverErr:
		log.Error().Err(err).Msg("http server failed")
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := server.Shutdown(shutdownCtx); err != nil && !errors.Is(err, http.ErrServerClosed) {
		log.Error().Err(err).Msg("http server shutdown failed")
	}
}

func printBuildInfo() {
	if buildVersion == "" {
		buildVersion = "N/A"
	}

	if buildDate == "" {
		buildDate = "N/A"
	}

	if buildCommit == "" {
		buildCommit = "N/A"
	}

	fmt.Printf("Build version: %s\n", buildVersion)
	fmt.Printf("Build date: %s\n", buildDate)
	fmt.Printf("Build commit: %s\n", buildCommit)
}
