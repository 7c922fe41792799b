package router

import (
	"vipdining/internal/handlers/health"
	"vipdining/internal/handlers/reservation"
	"vipdining/internal/handlers/site"

	"github.com/go-chi/chi/v5"
)

type DomainHandlers struct {
	Site        site.Handler
	Health      health.Handler
	Reservation reservation.Handler
}

type Router struct {
	DomainHandlers DomainHandlers
}

func (r *Router) SetupRoutes(router chi.Router) {
	// set before mounting so /api inherits them
	router.NotFound(r.DomainHandlers.Site.NotFound)
	router.MethodNotAllowed(r.DomainHandlers.Site.NotFound)

	r.DomainHandlers.Site.Router(router)

	router.Route("/api", func(routerGroup chi.Router) {
		r.DomainHandlers.Site.APIRouter(routerGroup)
		r.DomainHandlers.Health.Router(routerGroup)
		r.DomainHandlers.Reservation.Router(routerGroup)
	})
}

func New(domainHandlers DomainHandlers) Router {
	return Router{
		DomainHandlers: domainHandlers,
	}
}
