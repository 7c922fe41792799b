package main

import (
	"context"

	"vipdining/config"
	"vipdining/di"
	"vipdining/shared/logger"

	"github.com/rs/zerolog/log"
)

// @title VIP Dining Reservations API
// @version 1.0.0
// @description Records, lists and retrieves VIP dining reservations.
// @BasePath /
func main() {
	cfg := config.Get()

	logger.InitLogger(cfg)

	logger.SetLogLevel(cfg)

	http, cleanup, err := di.InitializeService()
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to build service")
	}

	if err := http.Serve(context.Background()); err != nil {
		cleanup()
		log.Fatal().Err(err).Msg("Server stopped")
	}

	cleanup()
}
