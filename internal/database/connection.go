package database

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	_ "github.com/lib/pq"
	"github.com/prajwalbharadwajbm/influencerconnect/internal/config"
)

// DB holds the database connection
type DB struct {
	*sql.DB
}

// NewConnection creates a new database connection with connection pooling
func NewConnection(ctx context.Context, cfg config.DatabaseConfig) (*DB, error) {
	db, err := sql.Open("postgres", cfg.URL)
	if err != nil {
		return nil, fmt.Errorf("failed to open database connection: %w", err)
	}

	// Configure connection pool
	db.SetMaxOpenConns(cfg.MaxOpenConns)
	db.SetMaxIdleConns(cfg.MaxIdleConns)
	db.SetConnMaxLifetime(cfg.ConnMaxLifetime)
	db.SetConnMaxIdleTime(cfg.ConnMaxIdleTime)

	pingCtx, cancel := context.WithTimeout(ctx, cfg.ConnectTimeout)
	defer cancel()

	// Test the connection
	if err := db.PingContext(pingCtx); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}

	return &DB{db}, nil
}

// HealthCheck performs a health check on the database connection
func (db *DB) HealthCheck(ctx context.Context) error {
	ctx, cancel := context.WithTimeout(ctx, 2*time.Second)
	defer cancel()

	if err := db.PingContext(ctx); err != nil {
		return fmt.Errorf("database health check failed: %w", err)
	}

	return nil
}

// Close closes the database connection
func (db *DB) Close() error {
	return db.DB.Close()
}

// Initialize connects to Postgres and brings the schema up to date. It is
// the open function of the process-wide lazy handle.
func Initialize(ctx context.Context, cfg config.DatabaseConfig) (*DB, error) {
	db, err := NewConnection(ctx, cfg)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	if cfg.MigrationsEnabled {
		if err := NewMigrationManager(cfg.URL).Up(); err != nil {
			db.Close()
			return nil, fmt.Errorf("failed to run migrations: %w", err)
		}
	}

	return db, nil
}

// NewLazyPostgres returns the lazily opened Postgres handle for cfg
func NewLazyPostgres(cfg config.DatabaseConfig) *Lazy[*DB] {
	return NewLazy(func(ctx context.Context) (*DB, error) {
		return Initialize(ctx, cfg)
	}, (*DB).Close)
}
