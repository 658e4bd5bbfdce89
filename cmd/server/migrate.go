package main

import (
	"errors"
	"fmt"

	kitlog "github.com/go-kit/log"
	"github.com/go-kit/log/level"
	"github.com/golang-migrate/migrate/v4"
	"github.com/prajwalbharadwajbm/influencerconnect/internal/config"
	"github.com/prajwalbharadwajbm/influencerconnect/internal/database"
	"github.com/prajwalbharadwajbm/influencerconnect/internal/repository"
)

// Migrator is the subset of database.MigrationManager the migrate flag drives
type Migrator interface {
	Up() error
	Down() error
	Version() (uint, bool, error)
}

// ErrMigrationsUnsupported is returned when the configured store has no schema
var ErrMigrationsUnsupported = errors.New("migrations require a postgres DATABASE_URL")

// newMigrator returns the migration manager for a postgres database URL
func newMigrator(cfg config.DatabaseConfig) (Migrator, error) {
	backend, err := repository.Backend(cfg.URL)
	if err != nil {
		return nil, err
	}
	if backend != repository.BackendPostgres {
		return nil, fmt.Errorf("%w: store is %s", ErrMigrationsUnsupported, backend)
	}
	return database.NewMigrationManager(cfg.URL), nil
}

// runMigrate executes one of up, down or version and returns
func runMigrate(command string, m Migrator, log kitlog.Logger) error {
	switch command {
	case "up":
		if err := m.Up(); err != nil {
			return err
		}
		level.Info(log).Log("msg", "migrations applied")
	case "down":
		if err := m.Down(); err != nil {
			return err
		}
		level.Info(log).Log("msg", "migrations rolled back")
	case "version":
		version, dirty, err := m.Version()
		if errors.Is(err, migrate.ErrNilVersion) {
			level.Info(log).Log("msg", "no migrations applied")
			return nil
		}
		if err != nil {
			return fmt.Errorf("failed to read migration version: %w", err)
		}
		level.Info(log).Log("msg", "migration version", "version", version, "dirty", dirty)
	default:
		return fmt.Errorf("unknown migrate command %q (want up, down or version)", command)
	}
	return nil
}
