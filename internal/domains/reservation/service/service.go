package service

//go:generate go run go.uber.org/mock/mockgen -source=./service.go -destination=./mocks/service_mock.go -package=mocks

import (
	"context"
	"fmt"
	"strconv"
	"strings"

	"vipdining/helper"
	"vipdining/infras/otel"
	"vipdining/internal/domains/reservation/model"
	"vipdining/internal/domains/reservation/model/dto"
	"vipdining/internal/domains/reservation/repository"
	"vipdining/shared"
	"vipdining/shared/constant"
	gDto "vipdining/shared/dto"
	"vipdining/shared/failure"
	"vipdining/shared/logger"
	"vipdining/shared/validator"
)

const (
	MessageNotFound     = "reservation not found"
	MessageCreateFailed = "failed to create reservation"
	MessageReadFailed   = "failed to read reservations"
)

type Reservation interface {
	Initialize(ctx context.Context) error
	Create(ctx context.Context, req dto.CreateReservationRequest) (dto.CreateReservationResponse, error)
	GetAll(ctx context.Context) ([]dto.ReservationResponse, error)
	Get(ctx context.Context, id string) (dto.ReservationResponse, error)
}

type serviceImpl struct {
	repo     repository.Reservation
	migrator helper.Migrator
	otel     otel.Otel
}

func New(repo repository.Reservation, migrator helper.Migrator, otel otel.Otel) Reservation {
	return &serviceImpl{
		repo:     repo,
		migrator: migrator,
		otel:     otel,
	}
}

// Initialize makes sure the reservation table exists and can be read. The server
// must not start when it fails.
func (s *serviceImpl) Initialize(ctx context.Context) (err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".Initialize")
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	if err = s.migrator.Up(ctx); err != nil {
		return fmt.Errorf("failed to ensure reservation schema: %w", err)
	}

	total, err := s.repo.Count(ctx, gDto.FilterGroup{})
	if err != nil {
		return fmt.Errorf("failed to verify reservation table: %w", err)
	}

	logger.FromContext(ctx).Info().Int("total_records", total).Msg("Reservation store ready")

	return nil
}

func (s *serviceImpl) Create(ctx context.Context, req dto.CreateReservationRequest) (res dto.CreateReservationResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".Create")
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	if err = validator.ValidateStruct(&req); err != nil {
		return res, err //nolint:wrapcheck
	}

	reservation := req.ToModel()

	id, err := s.repo.Insert(ctx, reservation)
	if err != nil {
		logger.FromContext(ctx).Error().Err(err).Msg("failed to create reservation")

		return res, failure.Persistence(MessageCreateFailed, err) //nolint:wrapcheck
	}

	reservation.ID = id
	res.FromModel(reservation)

	logger.FromContext(ctx).Info().Int64("id", id).Msg("Reservation created")

	return res, nil
}

// GetAll lists every reservation, newest first. Rows created at the same instant
// come back in reverse id order.
func (s *serviceImpl) GetAll(ctx context.Context) (res []dto.ReservationResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".GetAll")
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	models, err := s.repo.GetAll(ctx, gDto.NewestFirst(), gDto.FilterGroup{})
	if err != nil {
		logger.FromContext(ctx).Error().Err(err).Msg("failed to get reservations")

		return nil, failure.Persistence(MessageReadFailed, err) //nolint:wrapcheck
	}

	scope.SetAttribute("total", len(models))

	return dto.FromModels(models), nil
}

// Get looks a reservation up by its path id. An id that is not a base-10 integer
// cannot match any row and is reported as not found.
func (s *serviceImpl) Get(ctx context.Context, id string) (res dto.ReservationResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".Get")
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	reservationID, parseErr := strconv.ParseInt(strings.TrimSpace(id), 10, 64)
	if parseErr != nil {
		return res, failure.NotFound(MessageNotFound) //nolint:wrapcheck
	}

	reservation, err := s.repo.Get(ctx, shared.FilterByID(reservationID, model.FieldID, model.TableName))
	if err != nil {
		logger.FromContext(ctx).Error().Err(err).Int64("id", reservationID).Msg("failed to get reservation")

		return res, failure.Persistence(MessageReadFailed, err) //nolint:wrapcheck
	}

	if reservation.ID == 0 {
		return res, failure.NotFound(MessageNotFound) //nolint:wrapcheck
	}

	res.FromModel(reservation)

	return res, nil
}
