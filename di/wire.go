//go:build wireinject
// +build wireinject

package di

import (
	"vipdining/config"
	"vipdining/helper"
	"vipdining/infras/database"
	"vipdining/infras/otel"
	"vipdining/infras/redis"
	"vipdining/shared/cache"
	"vipdining/transport/http"
	"vipdining/transport/http/middleware"
	"vipdining/transport/http/router"

	healthService "vipdining/internal/domains/health/service"
	reservationRepository "vipdining/internal/domains/reservation/repository"
	reservationService "vipdining/internal/domains/reservation/service"

	healthHandler "vipdining/internal/handlers/health"
	reservationHandler "vipdining/internal/handlers/reservation"
	siteHandler "vipdining/internal/handlers/site"

	"github.com/google/wire"
)

var configurations = wire.NewSet(
	config.Get,
)

var infrastructures = wire.NewSet(
	otel.New,
	database.New,
	redis.New,
)

var middlewares = wire.NewSet(
	middleware.NewAppMiddleware,
)

var sharedHelpers = wire.NewSet(
	cache.NewRedisCache,
	helper.NewMigrator,
)

var reservationDomain = wire.NewSet(
	reservationRepository.New,
	reservationService.New,
)

var healthDomain = wire.NewSet(
	healthService.New,
)

var domains = wire.NewSet(
	reservationDomain,
	healthDomain,
)

var routing = wire.NewSet(
	wire.Struct(new(router.DomainHandlers), "*"),
	siteHandler.New,
	healthHandler.New,
	reservationHandler.New,
	router.New,
)

func InitializeService() (*http.HTTP, func(), error) {
	wire.Build(
		configurations,
		infrastructures,
		middlewares,
		sharedHelpers,
		domains,
		routing,
		http.New,
	)

	return nil, nil, nil
}
