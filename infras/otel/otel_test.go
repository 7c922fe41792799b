package otel_test

import (
	"context"
	"errors"
	"testing"

	"vipdining/config"
	"vipdining/infras/otel"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	oteltrace "go.opentelemetry.io/otel/trace"
)

func TestNew_WithoutEndpoint(t *testing.T) {
	cfg := &config.Config{}
	cfg.App.Name = "vip-dining-test"

	tracer, cleanup, err := otel.New(cfg)
	require.NoError(t, err)

	defer cleanup()

	ctx, scope := tracer.NewScope(context.Background(), "service", "service.Create")
	defer scope.End()

	span := oteltrace.SpanFromContext(ctx)
	assert.True(t, span.SpanContext().IsValid())
	assert.True(t, span.IsRecording())

	assert.NotPanics(t, func() {
		scope.SetAttributes(map[string]any{
			"reservation.id":   int64(3),
			"reservation.size": 4,
			"http.method":      "POST",
			"flags":            []string{"a"},
			"ok":               true,
		})
		scope.AddEvent("created")
		scope.TraceIfError(nil)
		scope.TraceError(errors.New("boom"))
	})
}
