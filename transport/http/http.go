package http

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/http"
	"os"
	"os/signal"
	"sync"
	"sync/atomic"
	"syscall"
	"time"

	"vipdining/config"
	"vipdining/internal/domains/reservation/service"
	"vipdining/shared/constant"
	"vipdining/transport/http/middleware"
	"vipdining/transport/http/router"

	"github.com/go-chi/chi/v5"
	chiMiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/rs/zerolog/log"
)

type ServerState int32

const (
	ServerStateReady ServerState = iota + 1
	ServerStateInGracePeriod
	ServerStateInCleanupPeriod
)

const (
	readHeaderTimeout = 10 * time.Second
	shutdownTimeout   = 10 * time.Second
)

// Initializer prepares the backing store. The listener is never opened when it fails.
type Initializer interface {
	Initialize(ctx context.Context) error
}

type HTTP struct {
	Config     *config.Config
	Router     router.Router
	Middleware middleware.AppMiddleware
	store      Initializer
	state      atomic.Int32
	handler    http.Handler
	once       sync.Once
}

func New(cfg *config.Config, r router.Router, mw middleware.AppMiddleware, reservations service.Reservation) *HTTP {
	return &HTTP{
		Config:     cfg,
		Router:     r,
		Middleware: mw,
		store:      reservations,
	}
}

func (h *HTTP) State() ServerState {
	return ServerState(h.state.Load())
}

func (h *HTTP) setState(state ServerState) {
	h.state.Store(int32(state))
}

func (h *HTTP) accepting() bool {
	return h.State() < ServerStateInGracePeriod
}

// Initialize runs the store setup without starting a listener.
func (h *HTTP) Initialize(ctx context.Context) error {
	if err := h.store.Initialize(ctx); err != nil {
		return fmt.Errorf("initializing reservation store: %w", err)
	}

	return nil
}

// Handler returns the routed handler with the full middleware chain. It is built once.
func (h *HTTP) Handler() http.Handler {
	h.once.Do(func() {
		mux := chi.NewRouter()

		mux.Use(
			h.Middleware.RequestID,
			h.Middleware.RequestLogger,
			h.Middleware.Recoverer,
			middleware.ShutdownGuard(h.accepting),
			h.Middleware.Tracing,
		)

		if h.Config.App.CORS.Enable {
			mux.Use(h.cors())
		}

		mux.Use(h.Middleware.RateLimit())

		if timeout := h.Config.Server.RequestTimeoutSeconds; timeout > 0 {
			mux.Use(chiMiddleware.Timeout(time.Duration(timeout) * time.Second))
		}

		h.Router.SetupRoutes(mux)

		h.handler = mux
	})

	return h.handler
}

func (h *HTTP) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	h.Handler().ServeHTTP(w, r)
}

// Serve initializes the store, listens, and blocks until ctx ends or SIGINT/SIGTERM
// arrives. Outside development, shutdown waits out the grace and cleanup periods
// first, answering 503 to new requests.
func (h *HTTP) Serve(ctx context.Context) error {
	if err := h.Initialize(ctx); err != nil {
		return err
	}

	server := &http.Server{
		Addr:              net.JoinHostPort(h.Config.Server.Host, h.Config.Server.Port),
		Handler:           h.Handler(),
		ReadHeaderTimeout: readHeaderTimeout,
	}

	ctx, stop := signal.NotifyContext(ctx, os.Interrupt, syscall.SIGTERM)
	defer stop()

	h.setState(ServerStateReady)

	errCh := make(chan error, 1)

	go func() {
		log.Info().Str("host", h.Config.Server.Host).Str("port", h.Config.Server.Port).Msg("Starting up HTTP server.")

		errCh <- server.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}

		return fmt.Errorf("http server stopped: %w", err)
	case <-ctx.Done():
	}

	h.drain()

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("shutting down http server: %w", err)
	}

	log.Info().Msg("HTTP server stopped.")

	return nil
}

func (h *HTTP) drain() {
	if h.Config.Server.Env == constant.ServerEnvDevelopment {
		log.Warn().Msg("Received shutdown signal. Shutting down now.")

		return
	}

	shutdownConfig := h.Config.Server.Shutdown

	log.Info().Msg("Received shutdown signal.")
	log.Info().Int64("seconds", shutdownConfig.GracePeriodSeconds).Msg("Entering grace period.")

	h.setState(ServerStateInGracePeriod)

	time.Sleep(time.Duration(shutdownConfig.GracePeriodSeconds) * time.Second)

	log.Info().Int64("seconds", shutdownConfig.CleanupPeriodSeconds).Msg("Entering cleanup period.")

	h.setState(ServerStateInCleanupPeriod)

	time.Sleep(time.Duration(shutdownConfig.CleanupPeriodSeconds) * time.Second)

	log.Info().Msg("Cleaning up completed. Shutting down now.")
}

func (h *HTTP) cors() func(http.Handler) http.Handler {
	corsConfig := h.Config.App.CORS

	return cors.Handler(cors.Options{
		AllowedOrigins:   corsConfig.AllowedOrigins,
		AllowedMethods:   corsConfig.AllowedMethods,
		AllowedHeaders:   corsConfig.AllowedHeaders,
		ExposedHeaders:   []string{constant.RequestHeaderRequestID},
		AllowCredentials: corsConfig.AllowCredentials,
		MaxAge:           corsConfig.MaxAgeSeconds,
	})
}
