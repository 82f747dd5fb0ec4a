// Package main starts the pocketledger API to manage transactions and budgets.
package main

import (
	"github.com/rs/zerolog/log"

	"github.com/avasiliev/pocketledger/cmd/httpserver"
	"github.com/avasiliev/pocketledger/internal/middleware"
	"github.com/avasiliev/pocketledger/pkg/configpkg"
	"github.com/avasiliev/pocketledger/pkg/dbpkg"

	_ "github.com/lib/pq"
)

func main() {
	config, err := configpkg.Load("./configs")
	if err != nil {
		log.Fatal().Err(err).Msg("cannot load config")
	}

	logger := middleware.CreateLogger(config)

	db, err := dbpkg.Setup(config.DBDriver, config.DBSource)
	if err != nil {
		logger.Fatal().Err(err).Msg("cannot connect to database")
	}

	server, err := httpserver.New(db, logger, config)
	if err != nil {
		logger.Fatal().Err(err).Msg("cannot create server")
	}

	logger.Info().Msg("POCKETLEDGER API SERVER HAS STARTED")

	err = server.Engine.Run(config.ServerAddress)
	if err != nil {
		logger.Fatal().Err(err).Msg("cannot start server")
	}
}
