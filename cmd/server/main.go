package main

import (
	"context"
	"fmt"

	"github.com/cpwcao/recipe-app-api/internal/config"
	"github.com/cpwcao/recipe-app-api/internal/handler"
	"github.com/cpwcao/recipe-app-api/internal/logger"
	"github.com/cpwcao/recipe-app-api/internal/server"
	"github.com/cpwcao/recipe-app-api/internal/service"
	"github.com/cpwcao/recipe-app-api/internal/store"
)

var (
	buildVersion string
	buildDate    string
	buildCommit  string
)

func main() {
	printBuildInfo()

	log := logger.NewLogger("recipe-api-server")
	cfg, err := config.GetStructuredConfig()
	if err != nil {
		log.Fatal().Err(err).Msg("error getting configs")
	}

	log.Debug().Any("config", cfg).Msg("received configs")

	ctx := context.Background()

	storages, err := store.NewStorages(ctx, cfg.Storage, log)
	if err != nil {
		log.Fatal().Err(err).Msg("error creating storages")
	}
	defer storages.Close()

	services := service.NewServices(storages, log)

	if cfg.App.AdminEmail != "" && cfg.App.AdminPassword != "" {
		if err := services.AuthService.EnsureSuperuser(ctx, cfg.App.AdminEmail, cfg.App.AdminPassword); err != nil {
			log.Fatal().Err(err).Msg("error bootstrapping superuser account")
		}
	}

	handlers, err := handler.NewHandlers(services, cfg.Server, log)
	if err != nil {
		log.Fatal().Err(err).Msg("error creating handlers")
	}

	servers, err := server.NewServer(handlers, cfg.Server, log)
	if err != nil {
		log.Fatal().Err(err).Msg("error creating server")
	}

	servers.RunServer()
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
