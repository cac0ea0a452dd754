package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/Rrens/content-creator-bot/internal/config"
	"github.com/Rrens/content-creator-bot/internal/storage"
	"github.com/jackc/pgx/v5"
)

// Store implements storage.Store on the kv_entries table
type Store struct {
	db *DB
}

// NewStore creates a store on an open pool
func NewStore(db *DB) *Store {
	return &Store{db: db}
}

// Open is the storage.Factory for the postgres backend
func Open(ctx context.Context, cfg *config.Config) (storage.Store, error) {
	if err := AutoMigrate(cfg.Database); err != nil {
		return nil, err
	}

	db, err := NewDB(ctx, cfg.Database)
	if err != nil {
		return nil, err
	}
	return NewStore(db), nil
}

func (s *Store) Get(ctx context.Context, key string) (string, error) {
	var value string
	err := s.db.Pool.QueryRow(ctx,
		`SELECT entry_value FROM kv_entries WHERE entry_key = $1`, key,
	).Scan(&value)
	if errors.Is(err, pgx.ErrNoRows) {
		return "", storage.ErrNotFound
	}
	if err != nil {
		return "", fmt.Errorf("failed to get %s: %w", key, err)
	}
	return value, nil
}

func (s *Store) Set(ctx context.Context, key, value string) error {
	query := `
		INSERT INTO kv_entries (entry_key, entry_value, updated_at)
		VALUES ($1, $2, NOW())
		ON CONFLICT (entry_key) DO UPDATE
		SET entry_value = EXCLUDED.entry_value, updated_at = EXCLUDED.updated_at
	`
	if _, err := s.db.Pool.Exec(ctx, query, key, value); err != nil {
		return fmt.Errorf("failed to set %s: %w", key, err)
	}
	return nil
}

func (s *Store) Delete(ctx context.Context, key string) error {
	if _, err := s.db.Pool.Exec(ctx, `DELETE FROM kv_entries WHERE entry_key = $1`, key); err != nil {
		return fmt.Errorf("failed to delete %s: %w", key, err)
	}
	return nil
}

func (s *Store) List(ctx context.Context, prefix string) ([]string, error) {
	rows, err := s.db.Pool.Query(ctx, `
		SELECT entry_key
		FROM kv_entries
		WHERE entry_key LIKE $1 ESCAPE '\'
		ORDER BY entry_key COLLATE "C"
	`, storage.EscapeLike(prefix)+"%")
	if err != nil {
		return nil, fmt.Errorf("failed to list keys: %w", err)
	}
	defer rows.Close()

	var keys []string
	for rows.Next() {
		var k string
		if err := rows.Scan(&k); err != nil {
			return nil, fmt.Errorf("failed to scan key: %w", err)
		}
		keys = append(keys, k)
	}
	return keys, rows.Err()
}

func (s *Store) Ping(ctx context.Context) error {
	return s.db.Ping(ctx)
}

func (s *Store) Close() error {
	s.db.Close()
	return nil
}
