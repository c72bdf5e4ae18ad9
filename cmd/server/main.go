package main

import (
	"context"
	"fmt"
	"os/signal"
	"syscall"

	"github.com/MKhiriev/repertoire-sync/internal/config"
	"github.com/MKhiriev/repertoire-sync/internal/handler"
	"github.com/MKhiriev/repertoire-sync/internal/logger"
	"github.com/MKhiriev/repertoire-sync/internal/metrics"
	"github.com/MKhiriev/repertoire-sync/internal/server"
	"github.com/MKhiriev/repertoire-sync/internal/service"
	"github.com/MKhiriev/repertoire-sync/internal/store"
	"github.com/MKhiriev/repertoire-sync/internal/workers"
	"github.com/MKhiriev/repertoire-sync/models"
)

var (
	buildVersion string
	buildDate    string
	buildCommit  string
)

func main() {
	printBuildInfo()

	log := logger.NewLogger("repertoire-sync-server")
	cfg, err := config.GetStructuredConfig()
	if err != nil {
		log.Fatal().Err(err).Msg("error getting configs")
	}
	if err = logger.SetLevel(cfg.App.LogLevel); err != nil {
		log.Fatal().Err(err).Msg("error setting log level")
	}

	log.Debug().Str("driver", cfg.Storage.DB.Driver).Str("address", cfg.Server.HTTPAddress).Msg("received configs")

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGTERM, syscall.SIGINT, syscall.SIGQUIT)
	defer stop()

	storages, err := store.NewStorages(ctx, cfg.Storage, log)
	if err != nil {
		log.Fatal().Err(err).Msg("error creating storages")
	}
	defer func() {
		if err := storages.Close(); err != nil {
			log.Err(err).Msg("error closing storages")
		}
	}()

	m := metrics.New()
	build := models.NewAppBuildInfo(buildVersion, buildDate, buildCommit)

	services, err := service.NewServices(storages, *cfg, build, m, log)
	if err != nil {
		log.Fatal().Err(err).Msg("error creating services")
	}

	handlers, err := handler.NewHandlers(services, m, cfg.Server, log)
	if err != nil {
		log.Fatal().Err(err).Msg("error creating handlers")
	}

	srv, err := server.NewServer(handlers, cfg.Server, log)
	if err != nil {
		log.Fatal().Err(err).Msg("error creating server")
	}

	bg := workers.NewWorkers(services, cfg.Workers, log)
	workersDone := make(chan struct{})
	go func() {
		bg.Run(ctx)
		close(workersDone)
	}()

	if err = srv.RunServer(ctx); err != nil {
		log.Err(err).Msg("server stopped with error")
		stop()
	}
	<-workersDone
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
