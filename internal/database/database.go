// Package database opens the course store and keeps its schema up to date
package database

import (
	"database/sql"
	"embed"
	"errors"
	"fmt"
	"time"

	_ "github.com/go-sql-driver/mysql"
	"github.com/golang-migrate/migrate/v4"
	"github.com/golang-migrate/migrate/v4/database"
	"github.com/golang-migrate/migrate/v4/database/mysql"
	"github.com/golang-migrate/migrate/v4/database/sqlite3"
	"github.com/golang-migrate/migrate/v4/source/iofs"
	_ "github.com/mattn/go-sqlite3"
	"github.com/studyshelf/backend/internal/config"
)

const migrationsTable = "study_schema_migrations"

//go:embed migrations/*.sql
var migrationsFS embed.FS

// Connect opens a connection pool for the given driver and checks it with a ping
func Connect(driver, dsn string) (*sql.DB, error) {
	if dsn == "" {
		return nil, fmt.Errorf("empty DSN for driver %s", driver)
	}

	db, err := sql.Open(driver, dsn)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	switch driver {
	case config.DriverSQLite:
		// A single connection keeps writers from tripping over SQLite's file lock.
		db.SetMaxOpenConns(1)
	default:
		db.SetMaxOpenConns(25)
		db.SetMaxIdleConns(5)
		db.SetConnMaxLifetime(5 * time.Minute)
	}

	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}

	return db, nil
}

// RunMigrations applies every pending migration. An up-to-date schema is not an error.
//
// The returned migrator is not closed: closing it would close db as well.
func RunMigrations(db *sql.DB, driver string) error {
	var (
		instance database.Driver
		err      error
	)
	switch driver {
	case config.DriverSQLite:
		instance, err = sqlite3.WithInstance(db, &sqlite3.Config{MigrationsTable: migrationsTable})
	case config.DriverMySQL:
		instance, err = mysql.WithInstance(db, &mysql.Config{MigrationsTable: migrationsTable})
	default:
		return fmt.Errorf("unsupported database driver: %s", driver)
	}
	if err != nil {
		return fmt.Errorf("failed to create migration driver: %w", err)
	}

	source, err := iofs.New(migrationsFS, "migrations")
	if err != nil {
		return fmt.Errorf("failed to open embedded migrations: %w", err)
	}

	m, err := migrate.NewWithInstance("iofs", source, driver, instance)
	if err != nil {
		return fmt.Errorf("failed to create migrate instance: %w", err)
	}

	if err := m.Up(); err != nil && !errors.Is(err, migrate.ErrNoChange) {
		return fmt.Errorf("failed to run migrations: %w", err)
	}

	return nil
}

// Open connects to the configured store and migrates it
func Open(cfg *config.Config) (*sql.DB, error) {
	db, err := Connect(cfg.Database.Driver, cfg.DSN())
	if err != nil {
		return nil, err
	}

	if err := RunMigrations(db, cfg.Database.Driver); err != nil {
		db.Close()
		return nil, err
	}

	return db, nil
}
