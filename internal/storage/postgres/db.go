package postgres

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/Rrens/content-creator-bot/internal/config"
	"github.com/jackc/pgx/v5/pgxpool"
)

const (
	applicationName = "content-creator-bot"
	kvTable         = "kv_entries"
)

// ErrSchemaMissing means the kv table has not been migrated yet
var ErrSchemaMissing = errors.New("postgres: kv_entries table missing, run cmd/migrate or set database.auto_migrate")

// DB wraps the pool that backs the session store
type DB struct {
	Pool *pgxpool.Pool
}

// NewDB opens a pool tuned for short key lookups and checks that the kv
// table exists.
func NewDB(ctx context.Context, cfg config.DatabaseConfig) (*DB, error) {
	poolConfig, err := pgxpool.ParseConfig(cfg.DSN())
	if err != nil {
		return nil, fmt.Errorf("failed to parse database config: %w", err)
	}

	poolConfig.MaxConns = cfg.MaxConns
	poolConfig.MinConns = cfg.MinConns
	poolConfig.MaxConnIdleTime = 5 * time.Minute
	poolConfig.HealthCheckPeriod = time.Minute
	poolConfig.ConnConfig.RuntimeParams["application_name"] = applicationName

	pool, err := pgxpool.NewWithConfig(ctx, poolConfig)
	if err != nil {
		return nil, fmt.Errorf("failed to create connection pool: %w", err)
	}

	db := &DB{Pool: pool}
	if err := db.Ping(ctx); err != nil {
		pool.Close()
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}
	if err := db.CheckSchema(ctx); err != nil {
		pool.Close()
		return nil, err
	}

	return db, nil
}

// CheckSchema returns ErrSchemaMissing when kv_entries does not exist
func (db *DB) CheckSchema(ctx context.Context) error {
	var exists bool
	err := db.Pool.QueryRow(ctx, `SELECT to_regclass($1) IS NOT NULL`, kvTable).Scan(&exists)
	if err != nil {
		return fmt.Errorf("failed to inspect schema: %w", err)
	}
	if !exists {
		return ErrSchemaMissing
	}
	return nil
}

func (db *DB) Close() {
	if db.Pool != nil {
		db.Pool.Close()
	}
}

func (db *DB) Ping(ctx context.Context) error {
	return db.Pool.Ping(ctx)
}
