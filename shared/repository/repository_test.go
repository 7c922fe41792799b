package repository_test

import (
	"context"
	"path/filepath"
	"testing"

	"vipdining/config"
	"vipdining/infras/database"
	otelMocks "vipdining/infras/otel/mocks"
	"vipdining/shared"
	"vipdining/shared/dto"
	"vipdining/shared/repository"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type Audit struct {
	Note string `db:"note"`
}

type dish struct {
	ID    int64  `db:"id" generated:"true"`
	Name  string `db:"name"`
	Price int    `db:"price"`
	Skip  string `db:"-"`
	Audit
}

func newDishRepository(t *testing.T) repository.Repository[dish] {
	t.Helper()

	db, err := database.CreateSQLiteConnection(filepath.Join(t.TempDir(), "dishes.db"), 1000, 1, 0)
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })

	db.MustExec(`CREATE TABLE dishes (id INTEGER PRIMARY KEY AUTOINCREMENT, name TEXT NOT NULL, price INTEGER NOT NULL, note TEXT NOT NULL)`)

	conn := &database.Connection{Read: db, Write: db, Driver: config.DriverSQLite}

	return repository.NewRepository[dish]("dish", "dishes", "id", conn, otelMocks.NewOtel())
}

func TestRepository_InsertColumns(t *testing.T) {
	repo := newDishRepository(t)

	assert.Equal(t, []string{"name", "price", "note"}, repo.InsertColumns)
}

func TestRepository_InsertAndGet(t *testing.T) {
	ctx := context.Background()
	repo := newDishRepository(t)

	firstID, err := repo.Insert(ctx, dish{Name: "abalone", Price: 1200, Audit: Audit{Note: "seasonal"}})
	require.NoError(t, err)

	secondID, err := repo.Insert(ctx, dish{Name: "wagyu", Price: 2400})
	require.NoError(t, err)

	assert.Greater(t, secondID, firstID)

	got, err := repo.Get(ctx, shared.FilterByID(firstID, "id", "dishes"))
	require.NoError(t, err)

	assert.Equal(t, firstID, got.ID)
	assert.Equal(t, "abalone", got.Name)
	assert.Equal(t, "seasonal", got.Note)
}

func TestRepository_GetMissingReturnsZeroValue(t *testing.T) {
	repo := newDishRepository(t)

	got, err := repo.Get(context.Background(), shared.FilterByID(int64(99), "id", "dishes"))

	require.NoError(t, err)
	assert.Equal(t, dish{}, got)
}

func TestRepository_GetAllOrdering(t *testing.T) {
	ctx := context.Background()
	repo := newDishRepository(t)

	for _, name := range []string{"tea", "soup", "rice"} {
		_, err := repo.Insert(ctx, dish{Name: name, Price: 100})
		require.NoError(t, err)
	}

	// every price ties, so the primary key decides
	rows, err := repo.GetAll(ctx, dto.QueryParams{SortBy: "price", SortDir: dto.SortDirDesc}, dto.FilterGroup{})
	require.NoError(t, err)
	require.Len(t, rows, 3)
	assert.Equal(t, []string{"rice", "soup", "tea"}, []string{rows[0].Name, rows[1].Name, rows[2].Name})

	rows, err = repo.GetAll(ctx, dto.QueryParams{SortBy: "id"}, dto.FilterGroup{})
	require.NoError(t, err)
	assert.Equal(t, "tea", rows[0].Name)
}

func TestRepository_GetAllEmptyIsNotNil(t *testing.T) {
	repo := newDishRepository(t)

	rows, err := repo.GetAll(context.Background(), dto.QueryParams{}, dto.FilterGroup{})

	require.NoError(t, err)
	assert.NotNil(t, rows)
	assert.Empty(t, rows)
}

func TestRepository_GetAllRejectsUnknownSortColumn(t *testing.T) {
	repo := newDishRepository(t)

	_, err := repo.GetAll(context.Background(), dto.QueryParams{SortBy: "price; DROP TABLE dishes"}, dto.FilterGroup{})

	assert.ErrorContains(t, err, "unknown sort column")
}

func TestRepository_Count(t *testing.T) {
	ctx := context.Background()
	repo := newDishRepository(t)

	count, err := repo.Count(ctx, dto.FilterGroup{})
	require.NoError(t, err)
	assert.Equal(t, 0, count)

	_, err = repo.Insert(ctx, dish{Name: "tea", Price: 100})
	require.NoError(t, err)

	_, err = repo.Insert(ctx, dish{Name: "soup", Price: 300})
	require.NoError(t, err)

	count, err = repo.Count(ctx, dto.FilterGroup{Filters: []any{dto.Filter{Field: "price", Value: 300, Operator: dto.FilterOperatorEq}}})
	require.NoError(t, err)
	assert.Equal(t, 1, count)
}

func TestRepository_StoreFailure(t *testing.T) {
	repo := newDishRepository(t)

	_, err := repo.Count(context.Background(), shared.FilterByID(int64(1), "missing_column", "dishes"))

	assert.Error(t, err)
}
