package reservation

import (
	"errors"
	"net/http"

	"vipdining/infras/otel"
	"vipdining/internal/domains/reservation/model/dto"
	"vipdining/internal/domains/reservation/service"
	"vipdining/shared/constant"
	"vipdining/shared/failure"
	"vipdining/shared/logger"
	"vipdining/shared/validator"
	"vipdining/transport/http/response"

	"github.com/go-chi/chi/v5"
)

type Handler struct {
	service service.Reservation
	otel    otel.Otel
}

func New(service service.Reservation, otel otel.Otel) Handler {
	return Handler{
		service: service,
		otel:    otel,
	}
}

func (handler *Handler) Router(router chi.Router) {
	router.Route("/vip-dining", func(routerGroup chi.Router) {
		routerGroup.Post("/", handler.CreateReservation)
		routerGroup.Get("/", handler.GetReservations)
		routerGroup.Get("/{id}", handler.GetReservationByID)
	})
}

// CreateReservation records a new VIP dining reservation.
// @Summary Create a reservation
// @Description Validate and store a reservation. occasion is optional; partySize may be an integer or a numeric string.
// @Tags Reservation
// @Accept json
// @Produce json
// @Param request body dto.CreateReservationRequest true "Create Reservation Request"
// @Success 201 {object} dto.CreateReservationResponse "Reservation created"
// @Failure 400 {object} response.Error
// @Failure 500 {object} response.Error
// @Router /api/vip-dining [post]
func (handler *Handler) CreateReservation(writer http.ResponseWriter, request *http.Request) {
	ctx, scope := handler.otel.NewScope(request.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".CreateReservation")
	defer scope.End()

	req := dto.CreateReservationRequest{}

	if err := validator.Validate(request.Body, &req); err != nil {
		scope.TraceError(err)
		logger.FromContext(ctx).Warn().Err(err).Msg("rejected reservation request")

		var valErr *validator.Error
		if errors.As(err, &valErr) {
			response.WithErrorFields(writer, err, map[string]any{"missing": valErr.Fields})

			return
		}

		response.WithError(writer, err)

		return
	}

	res, err := handler.service.Create(ctx, req)
	if err != nil {
		scope.TraceError(err)
		logger.FromContext(ctx).Error().Err(err).Msg("failed to create reservation")

		response.WithError(writer, err)

		return
	}

	scope.AddEvent("Reservation created")

	response.WithJSON(writer, http.StatusCreated, res)
}

// GetReservations lists every reservation.
// @Summary List reservations
// @Description All reservations, newest first. Not paginated.
// @Tags Reservation
// @Produce json
// @Success 200 {array} dto.ReservationResponse "Reservations"
// @Failure 500 {object} response.Error
// @Router /api/vip-dining [get]
func (handler *Handler) GetReservations(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".GetReservations")
	defer scope.End()

	reservations, err := handler.service.GetAll(ctx)
	if err != nil {
		scope.TraceError(err)
		logger.FromContext(ctx).Error().Err(err).Msg("failed to get reservations")

		response.WithError(w, err)

		return
	}

	response.WithJSON(w, http.StatusOK, reservations)
}

// GetReservationByID retrieves one reservation.
// @Summary Get a reservation by ID
// @Tags Reservation
// @Produce json
// @Param id path string true "Reservation ID"
// @Success 200 {object} dto.ReservationResponse "Reservation"
// @Failure 404 {object} response.Error
// @Failure 500 {object} response.Error
// @Router /api/vip-dining/{id} [get]
func (handler *Handler) GetReservationByID(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".GetReservationByID")
	defer scope.End()

	id := chi.URLParam(r, constant.RequestParamID)

	reservation, err := handler.service.Get(ctx, id)
	if err != nil {
		scope.TraceError(err)

		if failure.IsNotFound(err) {
			response.WithErrorFields(w, err, map[string]any{"id": id})

			return
		}

		logger.FromContext(ctx).Error().Err(err).Str("id", id).Msg("failed to get reservation by ID")
		response.WithError(w, err)

		return
	}

	response.WithJSON(w, http.StatusOK, reservation)
}
