// Package main starts the bank accounts API server.
package main

import (
	"github.com/rs/zerolog/log"

	"github.com/go-petr/bank-accounts/cmd/httpserver"
	"github.com/go-petr/bank-accounts/internal/middleware"
	"github.com/go-petr/bank-accounts/pkg/configpkg"
	"github.com/go-petr/bank-accounts/pkg/dbpkg"

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

	if err := dbpkg.Migrate(db, config.MigrationURL); err != nil {
		logger.Fatal().Err(err).Str("migration_url", config.MigrationURL).Msg("cannot migrate database")
	}

	server, err := httpserver.New(db, logger, config)
	if err != nil {
		logger.Fatal().Err(err).Msg("cannot create server")
	}

	logger.Info().Str("address", config.ServerAddress).Msg("BANK ACCOUNTS API SERVER HAS STARTED")

	err = server.Engine.Run(config.ServerAddress)
	if err != nil {
		logger.Fatal().Err(err).Msg("cannot start server")
	}
}
