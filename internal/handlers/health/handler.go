package health

import (
	"net/http"

	"vipdining/infras/otel"
	"vipdining/internal/domains/health/model/dto"
	"vipdining/internal/domains/health/service"
	"vipdining/shared/constant"
	"vipdining/transport/http/response"

	"github.com/go-chi/chi/v5"
)

type Handler struct {
	service service.Health
	otel    otel.Otel
}

func New(service service.Health, otel otel.Otel) Handler {
	return Handler{
		service: service,
		otel:    otel,
	}
}

func (handler *Handler) Router(router chi.Router) {
	router.Get("/health", handler.Check)
}

// Check reports whether the reservation store answers.
// @Summary Health check
// @Tags Health
// @Produce json
// @Success 200 {object} dto.HealthResponse
// @Failure 500 {object} dto.HealthResponse
// @Router /api/health [get]
func (handler *Handler) Check(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".HealthCheck")
	defer scope.End()

	res := handler.service.Check(ctx)
	if !res.Healthy() {
		scope.AddEvent("Store unreachable")
	}

	response.WithJSON(w, statusCode(&res), res)
}

func statusCode(res *dto.HealthResponse) int {
	if res.Healthy() {
		return http.StatusOK
	}

	return http.StatusInternalServerError
}
