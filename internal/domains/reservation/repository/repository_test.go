package repository_test

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"vipdining/config"
	"vipdining/helper"
	"vipdining/infras/database"
	otelMocks "vipdining/infras/otel/mocks"
	"vipdining/internal/domains/reservation/model"
	"vipdining/internal/domains/reservation/repository"
	"vipdining/shared"
	gDto "vipdining/shared/dto"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newRepository(t *testing.T) repository.Reservation {
	t.Helper()

	cfg := &config.Config{}
	cfg.DB.Driver = config.DriverSQLite
	cfg.DB.SQLite.Path = filepath.Join(t.TempDir(), "vip.db")
	cfg.DB.MigrationTable = "schema_migrations"

	require.NoError(t, helper.Up(cfg))

	db, err := database.CreateSQLiteConnection(cfg.DB.SQLite.Path, 1000, 1, 0)
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })

	return repository.New(&database.Connection{Read: db, Write: db, Driver: config.DriverSQLite}, otelMocks.NewOtel())
}

func reservationAt(name string, createdAt time.Time) model.Reservation {
	return model.Reservation{
		CustomerName: name,
		Phone:        "0912345678",
		DiningDate:   "2024-05-01",
		DiningTime:   "19:00",
		PartySize:    4,
		TableType:    "window",
		CreatedAt:    createdAt,
	}
}

func TestReservation_InsertThenGet(t *testing.T) {
	ctx := context.Background()
	repo := newRepository(t)

	createdAt := time.Date(2024, 4, 20, 10, 30, 15, 0, time.UTC)
	want := reservationAt("Chen", createdAt)
	want.Occasion = "anniversary"

	id, err := repo.Insert(ctx, want)
	require.NoError(t, err)
	assert.Positive(t, id)

	got, err := repo.Get(ctx, shared.FilterByID(id, model.FieldID, model.TableName))
	require.NoError(t, err)

	want.ID = id
	assert.Equal(t, want.CustomerName, got.CustomerName)
	assert.Equal(t, want.Phone, got.Phone)
	assert.Equal(t, want.DiningDate, got.DiningDate)
	assert.Equal(t, want.DiningTime, got.DiningTime)
	assert.Equal(t, want.PartySize, got.PartySize)
	assert.Equal(t, want.TableType, got.TableType)
	assert.Equal(t, want.Occasion, got.Occasion)
	assert.Equal(t, id, got.ID)
	assert.True(t, createdAt.Equal(got.CreatedAt))
}

func TestReservation_IDsAreUnique(t *testing.T) {
	ctx := context.Background()
	repo := newRepository(t)

	seen := map[int64]bool{}

	for range 5 {
		id, err := repo.Insert(ctx, reservationAt("Chen", time.Now().UTC()))
		require.NoError(t, err)

		assert.False(t, seen[id])
		seen[id] = true
	}
}

func TestReservation_GetMissing(t *testing.T) {
	repo := newRepository(t)

	got, err := repo.Get(context.Background(), shared.FilterByID(int64(404), model.FieldID, model.TableName))

	require.NoError(t, err)
	assert.Zero(t, got.ID)
}

func TestReservation_GetAllNewestFirst(t *testing.T) {
	ctx := context.Background()
	repo := newRepository(t)

	base := time.Date(2024, 4, 20, 10, 0, 0, 0, time.UTC)

	_, err := repo.Insert(ctx, reservationAt("second", base.Add(time.Minute)))
	require.NoError(t, err)

	_, err = repo.Insert(ctx, reservationAt("first", base))
	require.NoError(t, err)

	_, err = repo.Insert(ctx, reservationAt("third", base.Add(2*time.Minute)))
	require.NoError(t, err)

	// same instant as "third", written later
	_, err = repo.Insert(ctx, reservationAt("third-tie", base.Add(2*time.Minute)))
	require.NoError(t, err)

	rows, err := repo.GetAll(ctx, gDto.NewestFirst(), gDto.FilterGroup{})
	require.NoError(t, err)

	names := make([]string, 0, len(rows))
	for _, row := range rows {
		names = append(names, row.CustomerName)
	}

	assert.Equal(t, []string{"third-tie", "third", "second", "first"}, names)
}

func TestReservation_Count(t *testing.T) {
	ctx := context.Background()
	repo := newRepository(t)

	count, err := repo.Count(ctx, gDto.FilterGroup{})
	require.NoError(t, err)
	assert.Equal(t, 0, count)

	for range 3 {
		_, err = repo.Insert(ctx, reservationAt("Chen", time.Now().UTC()))
		require.NoError(t, err)
	}

	count, err = repo.Count(ctx, gDto.FilterGroup{})
	require.NoError(t, err)
	assert.Equal(t, 3, count)
}
