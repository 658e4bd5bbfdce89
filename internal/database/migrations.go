package database

import (
	"database/sql"
	"embed"
	"errors"
	"fmt"

	"github.com/golang-migrate/migrate/v4"
	"github.com/golang-migrate/migrate/v4/database/postgres"
	"github.com/golang-migrate/migrate/v4/source/iofs"
	_ "github.com/lib/pq"
)

//go:embed migrations/*.sql
var migrationFiles embed.FS

// MigrationManager handles database migrations
type MigrationManager struct {
	databaseURL string
}

// NewMigrationManager creates a new migration manager
func NewMigrationManager(databaseURL string) *MigrationManager {
	return &MigrationManager{databaseURL: databaseURL}
}

// Up runs all up migrations
func (m *MigrationManager) Up() error {
	migration, err := m.createMigrationInstance()
	if err != nil {
		return err
	}
	defer migration.Close()

	if err := migration.Up(); err != nil && !errors.Is(err, migrate.ErrNoChange) {
		return fmt.Errorf("failed to run up migrations: %w", err)
	}
	return nil
}

// Down runs all down migrations
func (m *MigrationManager) Down() error {
	migration, err := m.createMigrationInstance()
	if err != nil {
		return err
	}
	defer migration.Close()

	if err := migration.Down(); err != nil && !errors.Is(err, migrate.ErrNoChange) {
		return fmt.Errorf("failed to run down migrations: %w", err)
	}
	return nil
}

// Version returns current migration version
func (m *MigrationManager) Version() (uint, bool, error) {
	migration, err := m.createMigrationInstance()
	if err != nil {
		return 0, false, err
	}
	defer migration.Close()

	return migration.Version()
}

// createMigrationInstance creates a new migration instance.
// It uses its own connection because closing the migrate instance closes the
// underlying *sql.DB.
func (m *MigrationManager) createMigrationInstance() (*migrate.Migrate, error) {
	migrationDB, err := sql.Open("postgres", m.databaseURL)
	if err != nil {
		return nil, fmt.Errorf("failed to open migration database connection: %w", err)
	}

	driver, err := postgres.WithInstance(migrationDB, &postgres.Config{})
	if err != nil {
		migrationDB.Close()
		return nil, fmt.Errorf("failed to create postgres driver: %w", err)
	}

	source, err := iofs.New(migrationFiles, "migrations")
	if err != nil {
		driver.Close()
		return nil, fmt.Errorf("failed to open embedded migrations: %w", err)
	}

	migration, err := migrate.NewWithInstance("iofs", source, "postgres", driver)
	if err != nil {
		driver.Close()
		return nil, fmt.Errorf("failed to create migration instance: %w", err)
	}

	return migration, nil
}
