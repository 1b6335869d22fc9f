package db

import (
	"database/sql"
	"fmt"

	"github.com/pressly/goose/v3"

	"krysselista-backend/internal/infrastructure/db/migrations"
)

// Migrate applies the embedded schema migrations.
func Migrate(sqlDB *sql.DB) error {
	goose.SetBaseFS(migrations.FS)
	if err := goose.SetDialect("mysql"); err != nil {
		return err
	}
	if err := goose.Up(sqlDB, "."); err != nil {
		return fmt.Errorf("goose up: %w", err)
	}
	return nil
}
