package redis

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/Rrens/content-creator-bot/internal/config"
	"github.com/Rrens/content-creator-bot/internal/storage"
	"github.com/redis/go-redis/v9"
)

const scanBatch = 100

// Store implements storage.Store on Redis strings
type Store struct {
	client *Client
}

// NewStore creates a store on an open client
func NewStore(client *Client) *Store {
	return &Store{client: client}
}

// Open is the storage.Factory for the redis backend
func Open(ctx context.Context, cfg *config.Config) (storage.Store, error) {
	client, err := NewClient(ctx, cfg.Redis)
	if err != nil {
		return nil, err
	}
	return NewStore(client), nil
}

// Client exposes the connection so the rate limiter can share it
func (s *Store) Client() *Client {
	return s.client
}

func (s *Store) Get(ctx context.Context, key string) (string, error) {
	v, err := s.client.rdb.Get(ctx, key).Result()
	if errors.Is(err, redis.Nil) {
		return "", storage.ErrNotFound
	}
	if err != nil {
		return "", fmt.Errorf("failed to get %s: %w", key, err)
	}
	return v, nil
}

func (s *Store) Set(ctx context.Context, key, value string) error {
	if err := s.client.rdb.Set(ctx, key, value, 0).Err(); err != nil {
		return fmt.Errorf("failed to set %s: %w", key, err)
	}
	return nil
}

func (s *Store) Delete(ctx context.Context, key string) error {
	if err := s.client.rdb.Del(ctx, key).Err(); err != nil {
		return fmt.Errorf("failed to delete %s: %w", key, err)
	}
	return nil
}

// List walks the keyspace with SCAN so large databases are not blocked
func (s *Store) List(ctx context.Context, prefix string) ([]string, error) {
	pattern := escapeGlob(prefix) + "*"
	var cursor uint64
	var keys []string

	for {
		batch, nextCursor, err := s.client.rdb.Scan(ctx, cursor, pattern, scanBatch).Result()
		if err != nil {
			return nil, fmt.Errorf("failed to scan keys: %w", err)
		}
		keys = append(keys, batch...)

		cursor = nextCursor
		if cursor == 0 {
			break
		}
	}

	return storage.SortKeys(dedupe(keys)), nil
}

func (s *Store) Ping(ctx context.Context) error {
	return s.client.Ping(ctx)
}

func (s *Store) Close() error {
	return s.client.Close()
}

func escapeGlob(s string) string {
	r := strings.NewReplacer(`\`, `\\`, `*`, `\*`, `?`, `\?`, `[`, `\[`, `]`, `\]`)
	return r.Replace(s)
}

// SCAN may return a key more than once
func dedupe(keys []string) []string {
	seen := make(map[string]struct{}, len(keys))
	out := keys[:0]
	for _, k := range keys {
		if _, ok := seen[k]; ok {
			continue
		}
		seen[k] = struct{}{}
		out = append(out, k)
	}
	return out
}
