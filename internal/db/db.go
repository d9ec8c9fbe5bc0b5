package db

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"time"

	_ "github.com/jackc/pgx/v5/stdlib"
	"github.com/jmoiron/sqlx"
	_ "modernc.org/sqlite"
)

// Drivers registered by this package.
const (
	DriverSQLite   = "sqlite"
	DriverPostgres = "pgx"
)

// Init opens and pings the database. For file-backed sqlite the parent
// directory is created first.
func Init(driver, connection string) (*sqlx.DB, error) {
	if driver == DriverSQLite {
		if err := ensureDir(connection); err != nil {
			return nil, err
		}
	}

	conn, err := sqlx.Open(driver, connection)
	if err != nil {
		return nil, fmt.Errorf("failed to open %s database: %w", driver, err)
	}
	conn.SetMaxOpenConns(25)
	conn.SetMaxIdleConns(5)
	conn.SetConnMaxLifetime(5 * time.Minute)

	if err := conn.Ping(); err != nil {
		conn.Close()
		return nil, fmt.Errorf("failed to ping %s database: %w", driver, err)
	}

	slog.Info("database connected", "driver", driver)
	return conn, nil
}

// ensureDir creates the directory holding a sqlite file given as a plain
// path or a file: URI.
func ensureDir(connection string) error {
	path, _, _ := strings.Cut(strings.TrimPrefix(connection, "file:"), "?")
	if path == "" || strings.HasPrefix(path, ":memory:") {
		return nil
	}
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return fmt.Errorf("failed to create data directory: %w", err)
	}
	return nil
}
