package middleware_test

import (
	"bytes"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"vipdining/config"
	"vipdining/infras/otel/mocks"
	cacheMocks "vipdining/shared/cache/mocks"
	"vipdining/shared/constant"
	"vipdining/transport/http/middleware"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"github.com/stretchr/testify/assert"
	"go.uber.org/mock/gomock"
)

var okHandler = http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
	w.WriteHeader(http.StatusOK)
})

func newMiddleware(t *testing.T, cfg *config.Config) (middleware.AppMiddleware, *cacheMocks.MockRedisCache) {
	t.Helper()

	ctrl := gomock.NewController(t)
	mockCache := cacheMocks.NewMockRedisCache(ctrl)

	return middleware.NewAppMiddleware(mocks.NewOtel(), cfg, mockCache), mockCache
}

func TestRequestID(t *testing.T) {
	mw, _ := newMiddleware(t, &config.Config{})

	var seen string

	handler := mw.RequestID(http.HandlerFunc(func(_ http.ResponseWriter, r *http.Request) {
		seen, _ = r.Context().Value(constant.ContextKeyRequestID).(string)
	}))

	t.Run("minted when absent", func(t *testing.T) {
		recorder := httptest.NewRecorder()
		handler.ServeHTTP(recorder, httptest.NewRequest(http.MethodGet, "/api", nil))

		assert.NotEmpty(t, seen)
		assert.Equal(t, seen, recorder.Header().Get(constant.RequestHeaderRequestID))
	})

	t.Run("caller id is kept", func(t *testing.T) {
		request := httptest.NewRequest(http.MethodGet, "/api", nil)
		request.Header.Set(constant.RequestHeaderRequestID, "req-7")

		recorder := httptest.NewRecorder()
		handler.ServeHTTP(recorder, request)

		assert.Equal(t, "req-7", seen)
		assert.Equal(t, "req-7", recorder.Header().Get(constant.RequestHeaderRequestID))
	})
}

func TestRecoverer(t *testing.T) {
	mw, _ := newMiddleware(t, &config.Config{})

	handler := mw.Recoverer(http.HandlerFunc(func(_ http.ResponseWriter, _ *http.Request) {
		panic("nil map write")
	}))

	recorder := httptest.NewRecorder()

	assert.NotPanics(t, func() {
		handler.ServeHTTP(recorder, httptest.NewRequest(http.MethodGet, "/api/vip-dining", nil))
	})
	assert.Equal(t, http.StatusInternalServerError, recorder.Code)
	assert.Contains(t, recorder.Body.String(), `"error":"internal server error"`)
	assert.Contains(t, recorder.Body.String(), `"message"`)
}

func TestRequestLogger(t *testing.T) {
	originalLogger := log.Logger
	originalLevel := zerolog.GlobalLevel()
	defer func() {
		log.Logger = originalLogger
		zerolog.SetGlobalLevel(originalLevel)
	}()

	zerolog.SetGlobalLevel(zerolog.TraceLevel)

	var buf bytes.Buffer
	log.Logger = zerolog.New(&buf)

	mw, _ := newMiddleware(t, &config.Config{})

	handler := mw.RequestLogger(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusCreated)
		_, _ = w.Write([]byte(`{"id":1}`))
	}))

	handler.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodPost, "/api/vip-dining", nil))

	assert.Contains(t, buf.String(), `"method":"POST"`)
	assert.Contains(t, buf.String(), `"path":"/api/vip-dining"`)
	assert.Contains(t, buf.String(), `"status":201`)
	assert.Contains(t, buf.String(), `"bytes":8`)
}

func TestTracing(t *testing.T) {
	mw, _ := newMiddleware(t, &config.Config{})

	recorder := httptest.NewRecorder()
	mw.Tracing(okHandler).ServeHTTP(recorder, httptest.NewRequest(http.MethodGet, "/api/health", nil))

	assert.Equal(t, http.StatusOK, recorder.Code)
}

func TestShutdownGuard(t *testing.T) {
	accepting := true
	handler := middleware.ShutdownGuard(func() bool { return accepting })(okHandler)

	recorder := httptest.NewRecorder()
	handler.ServeHTTP(recorder, httptest.NewRequest(http.MethodGet, "/", nil))
	assert.Equal(t, http.StatusOK, recorder.Code)

	accepting = false

	recorder = httptest.NewRecorder()
	handler.ServeHTTP(recorder, httptest.NewRequest(http.MethodGet, "/", nil))
	assert.Equal(t, http.StatusServiceUnavailable, recorder.Code)
	assert.Contains(t, recorder.Body.String(), constant.ResponseErrorPrepareShutdown)
}

func TestRateLimit(t *testing.T) {
	cfg := &config.Config{}
	cfg.App.RateLimiter.Enable = true
	cfg.App.RateLimiter.MaxRequests = 2
	cfg.App.RateLimiter.WindowSeconds = 60

	newRequest := func() *http.Request {
		request := httptest.NewRequest(http.MethodGet, "/api/vip-dining", nil)
		request.Header.Set(constant.RequestHeaderForwardedFor, "203.0.113.9, 10.0.0.1")
		request.Header.Set(constant.RequestHeaderUserAgent, "curl/8")

		return request
	}

	t.Run("under the limit", func(t *testing.T) {
		mw, mockCache := newMiddleware(t, cfg)
		mockCache.EXPECT().Increment(gomock.Any(), "limiter:203.0.113.9:curl/8", 60).Return(int64(1), nil)

		recorder := httptest.NewRecorder()
		mw.RateLimit()(okHandler).ServeHTTP(recorder, newRequest())

		assert.Equal(t, http.StatusOK, recorder.Code)
		assert.Equal(t, "2", recorder.Header().Get(constant.RequestHeaderRateLimit))
		assert.Equal(t, "1", recorder.Header().Get(constant.RequestHeaderRateLimitRemaining))
		assert.Equal(t, "60", recorder.Header().Get(constant.RequestHeaderRateLimitWindow))
	})

	t.Run("over the limit", func(t *testing.T) {
		mw, mockCache := newMiddleware(t, cfg)
		mockCache.EXPECT().Increment(gomock.Any(), gomock.Any(), 60).Return(int64(3), nil)

		recorder := httptest.NewRecorder()
		mw.RateLimit()(okHandler).ServeHTTP(recorder, newRequest())

		assert.Equal(t, http.StatusTooManyRequests, recorder.Code)
		assert.Equal(t, "0", recorder.Header().Get(constant.RequestHeaderRateLimitRemaining))
		assert.Contains(t, recorder.Body.String(), constant.ResponseErrorRequestLimitExceeded)
	})

	t.Run("cache failure lets the request through", func(t *testing.T) {
		mw, mockCache := newMiddleware(t, cfg)
		mockCache.EXPECT().Increment(gomock.Any(), gomock.Any(), gomock.Any()).Return(int64(0), errors.New("connection refused"))

		recorder := httptest.NewRecorder()
		mw.RateLimit()(okHandler).ServeHTTP(recorder, newRequest())

		assert.Equal(t, http.StatusOK, recorder.Code)
	})

	t.Run("disabled never touches the cache", func(t *testing.T) {
		mw, _ := newMiddleware(t, &config.Config{})

		recorder := httptest.NewRecorder()
		mw.RateLimit()(okHandler).ServeHTTP(recorder, newRequest())

		assert.Equal(t, http.StatusOK, recorder.Code)
	})
}
