// Package migration runs schema migrations with goose against the service
// database connection.
package migration

import (
	"database/sql"
	"embed"
	"fmt"

	"github.com/pressly/goose/v3"

	"github.com/bizcompare/bizcompare/internal/shared/logger"
)

//go:embed scripts/*.sql
var embedMigrations embed.FS

func setup() error {
	goose.SetBaseFS(embedMigrations)
	if err := goose.SetDialect("mysql"); err != nil {
		return fmt.Errorf("failed to set goose dialect: %w", err)
	}
	return nil
}

// Up applies all pending migrations.
func Up(db *sql.DB, log logger.Interface) error {
	if err := setup(); err != nil {
		return err
	}
	if err := goose.Up(db, "scripts"); err != nil {
		return fmt.Errorf("failed to apply migrations: %w", err)
	}
	log.Infow("migrations applied")
	return nil
}

// Down rolls back the most recent migration.
func Down(db *sql.DB, log logger.Interface) error {
	if err := setup(); err != nil {
		return err
	}
	if err := goose.Down(db, "scripts"); err != nil {
		return fmt.Errorf("failed to roll back migration: %w", err)
	}
	log.Infow("migration rolled back")
	return nil
}

// Status prints the migration status table.
func Status(db *sql.DB) error {
	if err := setup(); err != nil {
		return err
	}
	if err := goose.Status(db, "scripts"); err != nil {
		return fmt.Errorf("failed to get migration status: %w", err)
	}
	return nil
}
