package database

//nolint:revive
import (
	"errors"
	"fmt"
	"net"
	"os"
	"path/filepath"
	"time"

	"vipdining/config"

	"github.com/jmoiron/sqlx"
	_ "github.com/lib/pq"
	_ "github.com/mattn/go-sqlite3"
	"github.com/rs/zerolog/log"
)

const (
	postgresMaxIdleConnection = 10
	postgresMaxOpenConnection = 10

	// SQLite serialises writers; a single pooled connection avoids SQLITE_BUSY between our own requests.
	sqliteMaxOpenConnection = 1
)

var errUnsupportedDriver = errors.New("unsupported database driver")

// Connection holds the store handles. With SQLite both fields point to the same handle.
type Connection struct {
	Read   *sqlx.DB
	Write  *sqlx.DB
	Driver string
}

// New opens the configured store once for the process lifetime. The returned cleanup closes it.
func New(cfg *config.Config) (*Connection, func(), error) {
	var (
		db  *sqlx.DB
		err error
	)

	switch cfg.DB.Driver {
	case config.DriverSQLite:
		db, err = CreateSQLiteConnection(cfg.DB.SQLite.Path, cfg.DB.SQLite.BusyTimeoutMs, cfg.DB.MaxRetry, cfg.DB.RetryWaitTime)
	case config.DriverPostgres:
		db, err = CreatePostgresConnection(cfg.DB.Postgres.Username, cfg.DB.Postgres.Password, cfg.DB.Postgres.Host,
			cfg.DB.Postgres.Port, cfg.DB.Postgres.Name, cfg.DB.Postgres.SSLMode, cfg.DB.MaxRetry, cfg.DB.RetryWaitTime)
	default:
		err = fmt.Errorf("%w: %q", errUnsupportedDriver, cfg.DB.Driver)
	}

	if err != nil {
		return nil, nil, err
	}

	conn := &Connection{Read: db, Write: db, Driver: cfg.DB.Driver}

	cleanup := func() {
		if err := db.Close(); err != nil {
			log.Error().Err(err).Msg("Failed to close database connection")

			return
		}

		log.Info().Str("driver", conn.Driver).Msg("Database connection closed")
	}

	return conn, cleanup, nil
}

// SQLiteDSN builds the go-sqlite3 data source name for a database file.
func SQLiteDSN(path string, busyTimeoutMs int) string {
	return fmt.Sprintf("file:%s?_busy_timeout=%d&_foreign_keys=on", path, busyTimeoutMs)
}

// PostgresDSN builds a lib/pq connection URL.
func PostgresDSN(username, password, host, port, dbName, sslMode string) string {
	return fmt.Sprintf(
		"postgres://%s:%s@%s/%s?sslmode=%s",
		username,
		password,
		net.JoinHostPort(host, port),
		dbName,
		sslMode,
	)
}

// CreateSQLiteConnection opens (and creates, if needed) the SQLite database file.
func CreateSQLiteConnection(path string, busyTimeoutMs, maxRetry, waitTime int) (*sqlx.DB, error) {
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return nil, fmt.Errorf("creating database directory: %w", err)
		}
	}

	db, err := connect(config.DriverSQLite, SQLiteDSN(path, busyTimeoutMs), path, maxRetry, waitTime)
	if err != nil {
		return nil, err
	}

	db.SetMaxOpenConns(sqliteMaxOpenConnection)

	return db, nil
}

// CreatePostgresConnection creates a database connection.
func CreatePostgresConnection(username, password, host, port, dbName, sslMode string, maxRetry, waitTime int) (*sqlx.DB, error) {
	db, err := connect(config.DriverPostgres, PostgresDSN(username, password, host, port, dbName, sslMode),
		net.JoinHostPort(host, port)+"/"+dbName, maxRetry, waitTime)
	if err != nil {
		return nil, err
	}

	db.SetMaxIdleConns(postgresMaxIdleConnection)
	db.SetMaxOpenConns(postgresMaxOpenConnection)

	return db, nil
}

func connect(driver, descriptor, target string, maxRetry, waitTime int) (*sqlx.DB, error) {
	var lastErr error

	for retry := range max(1, maxRetry) {
		sqlDB, err := sqlx.Connect(driver, descriptor)
		if err == nil {
			log.
				Info().
				Str("driver", driver).
				Str("target", target).
				Msg("Connected to database")

			return sqlDB, nil
		}

		lastErr = err

		log.
			Error().
			Err(err).
			Str("driver", driver).
			Str("target", target).
			Int("attempt", retry+1).
			Msg("Failed connecting to database, retrying")

		time.Sleep(time.Duration(waitTime) * time.Second)
	}

	return nil, fmt.Errorf("connecting to %s database %s: %w", driver, target, lastErr)
}
