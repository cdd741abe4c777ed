package main

import (
	"context"
	"fmt"
	"os"

	"github.com/MKhiriev/go-user-service/internal/config"
	"github.com/MKhiriev/go-user-service/internal/handler"
	"github.com/MKhiriev/go-user-service/internal/logger"
	"github.com/MKhiriev/go-user-service/internal/server"
	"github.com/MKhiriev/go-user-service/internal/service"
	"github.com/MKhiriev/go-user-service/internal/store"
	"github.com/MKhiriev/go-user-service/models"
)

var (
	buildVersion string
	buildDate    string
	buildCommit  string
)

func main() {
	buildInfo := models.NewAppBuildInfo(buildVersion, buildDate, buildCommit)
	fmt.Print(buildInfo.String())

	log := logger.NewLogger("go-user-service")
	cfg, err := config.GetStructuredConfig(os.Args[1:])
	if err != nil {
		log.Fatal().Err(err).Msg("error getting configs")
	}

	log.Debug().
		Str("http_address", cfg.Server.HTTPAddress).
		Str("ledger_path", cfg.Storage.Ledger.Path).
		Bool("redis_lock", cfg.Storage.Redis.Address != "").
		Msg("received configs")

	storages, err := store.NewStorages(context.Background(), cfg.Storage, log)
	if err != nil {
		log.Fatal().Err(err).Msg("error creating storages")
	}

	services, err := service.NewServices(storages, *cfg, buildInfo, log)
	if err != nil {
		_ = storages.Close()
		log.Fatal().Err(err).Msg("error creating services")
	}

	handlers, err := handler.NewHandlers(services, *cfg, log)
	if err != nil {
		_ = storages.Close()
		log.Fatal().Err(err).Msg("error creating handlers")
	}

	srv, err := server.NewServer(handlers, cfg.Server, log, storages)
	if err != nil {
		_ = storages.Close()
		log.Fatal().Err(err).Msg("error creating server")
	}

	srv.RunServer()
}
