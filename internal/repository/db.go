package repository

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	_ "github.com/lib/pq"
	_ "github.com/mattn/go-sqlite3"
)

const (
	DriverPostgres = "postgres"
	DriverSQLite   = "sqlite3"
	DriverMemory   = "memory"
)

var schemas = map[string]string{
	DriverPostgres: `
		CREATE TABLE IF NOT EXISTS todo_items (
			id           BIGSERIAL PRIMARY KEY,
			title        TEXT NOT NULL DEFAULT '',
			description  TEXT NULL,
			is_completed BOOLEAN NOT NULL DEFAULT FALSE,
			created_at   TIMESTAMPTZ NOT NULL DEFAULT now(),
			completed_at TIMESTAMPTZ NULL
		)`,
	DriverSQLite: `
		CREATE TABLE IF NOT EXISTS todo_items (
			id           INTEGER PRIMARY KEY AUTOINCREMENT,
			title        TEXT NOT NULL DEFAULT '',
			description  TEXT NULL,
			is_completed BOOLEAN NOT NULL DEFAULT 0,
			created_at   TIMESTAMP NOT NULL DEFAULT CURRENT_TIMESTAMP,
			completed_at TIMESTAMP NULL
		)`,
}

// SchemaSQL returns the todo_items DDL for the given driver.
func SchemaSQL(driver string) (string, error) {
	ddl, ok := schemas[driver]
	if !ok {
		return "", fmt.Errorf("no schema for driver %q", driver)
	}
	return ddl, nil
}

// Open opens a connection pool for driver and verifies it with a ping.
func Open(ctx context.Context, driver, dsn string) (*sql.DB, error) {
	db, err := sql.Open(driver, dsn)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	if driver == DriverSQLite {
		// a single writer avoids "database is locked" under concurrent requests
		db.SetMaxOpenConns(1)
	}

	pingCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()
	if err := db.PingContext(pingCtx); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}

	return db, nil
}

// Migrate creates the todo_items table if it does not exist.
func Migrate(ctx context.Context, db *sql.DB, driver string) error {
	ddl, err := SchemaSQL(driver)
	if err != nil {
		return err
	}
	if _, err := db.ExecContext(ctx, ddl); err != nil {
		return fmt.Errorf("failed to migrate schema: %w", err)
	}
	return nil
}
