package service_test

import (
	"context"
	"encoding/json"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"vipdining/config"
	"vipdining/infras/otel/mocks"
	"vipdining/internal/domains/health/service"
	reservationMocks "vipdining/internal/domains/reservation/mocks"
	"vipdining/shared/constant"
)

func TestHealthService_Check(t *testing.T) {
	ctrl := gomock.NewController(t)

	mockRepo := reservationMocks.NewMockReservation(ctrl)

	cfg := &config.Config{}
	cfg.App.Version = "1.0.0"

	svc := service.New(mockRepo, cfg, mocks.NewOtel())

	t.Run("healthy store", func(t *testing.T) {
		mockRepo.EXPECT().Count(gomock.Any(), gomock.Any()).Return(5, nil)

		res := svc.Check(context.Background())

		assert.True(t, res.Healthy())
		assert.Equal(t, constant.HealthStatusHealthy, res.Status)
		assert.Equal(t, constant.HealthDatabaseOnline, res.Database)
		require.NotNil(t, res.TotalRecords)
		assert.Equal(t, 5, *res.TotalRecords)
		assert.Equal(t, "1.0.0", res.Version)
		assert.NotEmpty(t, res.Timestamp)
		assert.Empty(t, res.Error)
	})

	t.Run("empty store still reports zero", func(t *testing.T) {
		mockRepo.EXPECT().Count(gomock.Any(), gomock.Any()).Return(0, nil)

		encoded, err := json.Marshal(svc.Check(context.Background()))

		require.NoError(t, err)
		assert.Contains(t, string(encoded), `"totalRecords":0`)
	})

	t.Run("store failure is reported, not returned", func(t *testing.T) {
		mockRepo.EXPECT().Count(gomock.Any(), gomock.Any()).Return(0, errors.New("no such table: vip_dining"))

		res := svc.Check(context.Background())

		assert.False(t, res.Healthy())
		assert.Equal(t, constant.HealthStatusError, res.Status)
		assert.Equal(t, constant.HealthMessageDBFailed, res.Message)
		assert.Equal(t, "no such table: vip_dining", res.Error)
		assert.Nil(t, res.TotalRecords)
		assert.Empty(t, res.Version)
	})
}
