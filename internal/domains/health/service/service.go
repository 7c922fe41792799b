package service

//go:generate go run go.uber.org/mock/mockgen -source=./service.go -destination=./mocks/service_mock.go -package=mocks

import (
	"context"

	"vipdining/config"
	"vipdining/infras/otel"
	"vipdining/internal/domains/health/model/dto"
	"vipdining/internal/domains/reservation/repository"
	"vipdining/shared/constant"
	gDto "vipdining/shared/dto"
	"vipdining/shared/logger"
	"vipdining/shared/timezone"
)

type Health interface {
	Check(ctx context.Context) dto.HealthResponse
}

type serviceImpl struct {
	repo repository.Reservation
	cfg  *config.Config
	otel otel.Otel
}

func New(repo repository.Reservation, cfg *config.Config, otel otel.Otel) Health {
	return &serviceImpl{
		repo: repo,
		cfg:  cfg,
		otel: otel,
	}
}

// Check counts the stored reservations. A failing store is reported in the
// response, never returned as an error.
func (s *serviceImpl) Check(ctx context.Context) dto.HealthResponse {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".Health.Check")
	defer scope.End()

	timestamp := timezone.Now().Format(constant.DateFormat)

	total, err := s.repo.Count(ctx, gDto.FilterGroup{})
	if err != nil {
		scope.TraceError(err)
		logger.FromContext(ctx).Error().Err(err).Msg("health check could not reach the store")

		return dto.HealthResponse{
			Status:    constant.HealthStatusError,
			Message:   constant.HealthMessageDBFailed,
			Error:     err.Error(),
			Timestamp: timestamp,
		}
	}

	return dto.HealthResponse{
		Status:       constant.HealthStatusHealthy,
		Message:      constant.HealthMessageHealthy,
		Database:     constant.HealthDatabaseOnline,
		TotalRecords: &total,
		Timestamp:    timestamp,
		Version:      s.cfg.App.Version,
	}
}
