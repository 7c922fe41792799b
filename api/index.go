package handler

import (
	"context"
	"net/http"
	"sync"

	"vipdining/config"
	"vipdining/di"
	"vipdining/shared/logger"
	transport "vipdining/transport/http"
	"vipdining/transport/http/response"

	"github.com/rs/zerolog/log"
)

var (
	once    sync.Once
	app     *transport.HTTP
	initErr error
)

// Handler is the serverless entrypoint. The graph is built and the store
// initialized on the first request; the process lifetime owns the handles.
func Handler(w http.ResponseWriter, r *http.Request) {
	r.RequestURI = r.URL.String()

	once.Do(func() {
		cfg := config.Get()

		logger.InitLogger(cfg)

		logger.SetLogLevel(cfg)

		app, _, initErr = di.InitializeService()
		if initErr == nil {
			initErr = app.Initialize(context.Background())
		}
	})

	if initErr != nil {
		log.Error().Err(initErr).Msg("service unavailable")
		response.WithError(w, initErr)

		return
	}

	app.ServeHTTP(w, r)
}
