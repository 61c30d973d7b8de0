package persistence

import (
	"context"
	"fmt"

	"github.com/jmoiron/sqlx"
)

var schema = map[string][]string{
	DriverPostgres: {
		`CREATE TABLE IF NOT EXISTS categories (
			id         TEXT PRIMARY KEY,
			name       TEXT NOT NULL UNIQUE,
			created_at TIMESTAMPTZ NOT NULL,
			updated_at TIMESTAMPTZ NOT NULL
		)`,
		`CREATE TABLE IF NOT EXISTS tickets (
			id              TEXT PRIMARY KEY,
			title           TEXT NOT NULL,
			category        TEXT NOT NULL,
			description     TEXT NOT NULL,
			email           TEXT NOT NULL,
			additional_info TEXT,
			summary         TEXT,
			status          TEXT NOT NULL DEFAULT 'open',
			created_at      TIMESTAMPTZ NOT NULL,
			updated_at      TIMESTAMPTZ NOT NULL
		)`,
		`CREATE INDEX IF NOT EXISTS idx_tickets_created_at ON tickets(created_at DESC)`,
		`CREATE INDEX IF NOT EXISTS idx_tickets_status ON tickets(status)`,
		`CREATE INDEX IF NOT EXISTS idx_tickets_category ON tickets(category)`,
	},
	DriverSQLite: {
		`CREATE TABLE IF NOT EXISTS categories (
			id         TEXT PRIMARY KEY,
			name       TEXT NOT NULL UNIQUE,
			created_at TIMESTAMP NOT NULL,
			updated_at TIMESTAMP NOT NULL
		)`,
		`CREATE TABLE IF NOT EXISTS tickets (
			id              TEXT PRIMARY KEY,
			title           TEXT NOT NULL,
			category        TEXT NOT NULL,
			description     TEXT NOT NULL,
			email           TEXT NOT NULL,
			additional_info TEXT,
			summary         TEXT,
			status          TEXT NOT NULL DEFAULT 'open',
			created_at      TIMESTAMP NOT NULL,
			updated_at      TIMESTAMP NOT NULL
		)`,
		`CREATE INDEX IF NOT EXISTS idx_tickets_created_at ON tickets(created_at)`,
		`CREATE INDEX IF NOT EXISTS idx_tickets_status ON tickets(status)`,
		`CREATE INDEX IF NOT EXISTS idx_tickets_category ON tickets(category)`,
	},
}

// Migrate creates the tables for db's driver. Safe to run repeatedly.
func Migrate(ctx context.Context, db *sqlx.DB) error {
	stmts, ok := schema[db.DriverName()]
	if !ok {
		return fmt.Errorf("no schema for driver %q", db.DriverName())
	}

	tx, err := db.BeginTxx(ctx, nil)
	if err != nil {
		return fmt.Errorf("migrate: begin: %w", err)
	}
	defer tx.Rollback()

	for i, stmt := range stmts {
		if _, err := tx.ExecContext(ctx, stmt); err != nil {
			return fmt.Errorf("migrate: statement %d: %w", i+1, err)
		}
	}
	if err := tx.Commit(); err != nil {
		return fmt.Errorf("migrate: commit: %w", err)
	}
	return nil
}
