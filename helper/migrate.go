package helper

//go:generate go run go.uber.org/mock/mockgen -source=./migrate.go -destination=./mocks/migrate_mock.go -package=mocks

//nolint:revive
import (
	"context"
	"errors"
	"fmt"

	"vipdining/config"
	"vipdining/infras/database"
	"vipdining/migrations"

	"github.com/golang-migrate/migrate/v4"
	_ "github.com/golang-migrate/migrate/v4/database/postgres"
	_ "github.com/golang-migrate/migrate/v4/database/sqlite3"
	"github.com/golang-migrate/migrate/v4/source/iofs"
	"github.com/rs/zerolog/log"
)

const (
	ActionUp     = "up"
	ActionDown   = "down"
	ActionStepUp = "step-up"
	ActionDrop   = "drop"
)

var errUnknownAction = errors.New("unknown migration action")

// Migrator brings the store schema up to date.
type Migrator interface {
	Up(ctx context.Context) error
}

type migrator struct {
	cfg *config.Config
}

func NewMigrator(cfg *config.Config) Migrator {
	return &migrator{cfg: cfg}
}

// Up applies every pending step. Running it against an up-to-date store is a no-op.
func (m *migrator) Up(ctx context.Context) error {
	if err := ctx.Err(); err != nil {
		return fmt.Errorf("migration cancelled: %w", err)
	}

	return Up(m.cfg)
}

// DatabaseURL returns the golang-migrate URL for the configured store.
func DatabaseURL(cfg *config.Config) (string, error) {
	switch cfg.DB.Driver {
	case config.DriverSQLite:
		return fmt.Sprintf("sqlite3://%s?x-migrations-table=%s", cfg.DB.SQLite.Path, cfg.DB.MigrationTable), nil
	case config.DriverPostgres:
		pg := cfg.DB.Postgres

		return database.PostgresDSN(pg.Username, pg.Password, pg.Host, pg.Port, pg.Name, pg.SSLMode) +
			"&x-migrations-table=" + cfg.DB.MigrationTable, nil
	default:
		return "", fmt.Errorf("no migrations for driver %q", cfg.DB.Driver)
	}
}

func getConnection(config *config.Config) (*migrate.Migrate, error) {
	connectionString, err := DatabaseURL(config)
	if err != nil {
		return nil, err
	}

	source, err := iofs.New(migrations.FS, config.DB.Driver)
	if err != nil {
		return nil, fmt.Errorf("error opening embedded migrations: %w", err)
	}

	mig, err := migrate.NewWithSourceInstance("iofs", source, connectionString)
	if err != nil {
		return nil, fmt.Errorf("error creating migrate instance: %w", err)
	}

	return mig, nil
}

func Runner(config *config.Config, action string) error {
	mig, err := getConnection(config)
	if err != nil {
		return fmt.Errorf("error creating migrate instance: %w", err)
	}

	defer mig.Close()

	switch action {
	case ActionUp:
		if err := mig.Up(); err != nil && !errors.Is(err, migrate.ErrNoChange) {
			return fmt.Errorf("error running migrations: %w", err)
		}

		log.Info().Str("driver", config.DB.Driver).Msg("Database migrations completed successfully")

		return nil
	case ActionDown:
		if err := mig.Steps(-1); err != nil && !errors.Is(err, migrate.ErrNoChange) {
			return fmt.Errorf("error rolling back migrations: %w", err)
		}

		log.Info().Msg("Database migrations rolled back successfully")

		return nil
	case ActionStepUp:
		if err := mig.Steps(1); err != nil && !errors.Is(err, migrate.ErrNoChange) {
			return fmt.Errorf("error running migrations: %w", err)
		}

		log.Info().Msg("Database migrations completed successfully")

		return nil
	case ActionDrop:
		if err := mig.Down(); err != nil && !errors.Is(err, migrate.ErrNoChange) {
			return fmt.Errorf("error rolling back migrations: %w", err)
		}

		log.Info().Msg("Database migrations rolled back successfully")

		return nil
	}

	return fmt.Errorf("%w: %s", errUnknownAction, action)
}

func Up(config *config.Config) error {
	return Runner(config, ActionUp)
}

func StepUp(config *config.Config) error {
	return Runner(config, ActionStepUp)
}

func Down(config *config.Config) error {
	return Runner(config, ActionDown)
}

func Drop(config *config.Config) error {
	return Runner(config, ActionDrop)
}
