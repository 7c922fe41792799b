package response

import (
	"encoding/json"
	"maps"
	"net/http"

	"vipdining/shared/constant"
	"vipdining/shared/failure"
	"vipdining/shared/logger"
	"vipdining/shared/timezone"
)

type Error struct {
	Error string `json:"error"`
}

type NotFound struct {
	Error     string `json:"error"`
	Path      string `json:"path"`
	Timestamp string `json:"timestamp"`
}

type Panic struct {
	Error   string `json:"error"`
	Message string `json:"message"`
}

// WithJSON sends payload as the whole response body.
func WithJSON(writer http.ResponseWriter, code int, payload any) {
	response(writer, code, payload)
}

// WithError sends {"error": ...}. Server-side failures get a generic message; the
// cause is only logged.
func WithError(writer http.ResponseWriter, err error) {
	WithErrorFields(writer, err, nil)
}

// WithErrorFields is WithError with extra top-level keys next to "error".
func WithErrorFields(writer http.ResponseWriter, err error, fields map[string]any) {
	code := failure.GetCode(err)

	errMsg := err.Error()
	if code >= http.StatusInternalServerError {
		errMsg = constant.ResponseErrorInternal
	}

	body := make(map[string]any, len(fields)+1)
	maps.Copy(body, fields)

	body["error"] = errMsg

	response(writer, code, body)
}

// WithNotFound sends the body used for routes that match nothing.
func WithNotFound(writer http.ResponseWriter, path string) {
	response(writer, http.StatusNotFound, NotFound{
		Error:     constant.ResponseErrorRouteNotFound,
		Path:      path,
		Timestamp: timezone.Now().Format(constant.DateFormat),
	})
}

// WithPanic sends the body used when a handler panicked.
func WithPanic(writer http.ResponseWriter) {
	response(writer, http.StatusInternalServerError, Panic{
		Error:   constant.ResponseErrorInternal,
		Message: constant.ResponseErrorUnexpected,
	})
}

// WithRequestLimitExceeded sends a default response for when the request limit is exceeded
func WithRequestLimitExceeded(writer http.ResponseWriter) {
	response(writer, http.StatusTooManyRequests, Error{Error: constant.ResponseErrorRequestLimitExceeded})
}

// WithPreparingShutdown sends a default response for when the server is preparing to shut down
func WithPreparingShutdown(writer http.ResponseWriter) {
	response(writer, http.StatusServiceUnavailable, Error{Error: constant.ResponseErrorPrepareShutdown})
}

func WithHTML(writer http.ResponseWriter, code int, body []byte) {
	writer.Header().Set(constant.RequestHeaderContentType, constant.ContentTypeHTML)
	writer.WriteHeader(code)

	if _, err := writer.Write(body); err != nil {
		logger.ErrorWithStack(err)
	}
}

func response(writer http.ResponseWriter, code int, payload any) {
	response, err := json.Marshal(payload)
	if err != nil {
		logger.ErrorWithStack(err)
		writer.WriteHeader(http.StatusInternalServerError)

		return
	}

	writer.Header().Set(constant.RequestHeaderContentType, constant.ContentTypeJSON)
	writer.WriteHeader(code)
	_, err = writer.Write(response)

	if err != nil {
		logger.ErrorWithStack(err)
	}
}
