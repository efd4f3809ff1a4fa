// Package migrations applies the embedded SQL migrations for the play
// history database.
//
// It carries a small golang-migrate driver for ncruces/go-sqlite3: the
// stock golang-migrate sqlite3 driver imports mattn/go-sqlite3, which
// collides with the ncruces driver over the "sqlite3" registration and
// would drag CGO back in. The driver here speaks to whatever *sql.DB the
// caller opened.
package migrations

import (
	"database/sql"
	"embed"
	"errors"
	"fmt"
	"io/fs"

	"github.com/golang-migrate/migrate/v4"
	"github.com/golang-migrate/migrate/v4/source/iofs"
)

//go:embed *.sql
var migrationFiles embed.FS

// MigrationsFS exposes the embedded migration files.
func MigrationsFS() fs.FS {
	return migrationFiles
}

// RunMigrations brings the database schema up to date. Already-applied
// migrations are not an error.
func RunMigrations(db *sql.DB) error {
	source, err := iofs.New(migrationFiles, ".")
	if err != nil {
		return fmt.Errorf("loading embedded migrations: %w", err)
	}
	driver, err := newDriver(db)
	if err != nil {
		return fmt.Errorf("preparing migration driver: %w", err)
	}
	m, err := migrate.NewWithInstance("iofs", source, "sqlite3", driver)
	if err != nil {
		return fmt.Errorf("building migrator: %w", err)
	}
	if err := m.Up(); err != nil && !errors.Is(err, migrate.ErrNoChange) {
		return fmt.Errorf("applying migrations: %w", err)
	}
	return nil
}
