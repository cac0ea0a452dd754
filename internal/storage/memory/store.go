package memory

import (
	"context"
	"strings"

	"github.com/Rrens/content-creator-bot/internal/config"
	"github.com/Rrens/content-creator-bot/internal/storage"
	"github.com/patrickmn/go-cache"
)

// Store is an in-process key-value store. Entries never expire.
type Store struct {
	cache *cache.Cache
}

// NewStore creates an empty in-memory store
func NewStore() *Store {
	return &Store{cache: cache.New(cache.NoExpiration, 0)}
}

// Open is the storage.Factory for the memory backend
func Open(_ context.Context, _ *config.Config) (storage.Store, error) {
	return NewStore(), nil
}

func (s *Store) Get(_ context.Context, key string) (string, error) {
	v, found := s.cache.Get(key)
	if !found {
		return "", storage.ErrNotFound
	}
	return v.(string), nil
}

func (s *Store) Set(_ context.Context, key, value string) error {
	s.cache.Set(key, value, cache.NoExpiration)
	return nil
}

func (s *Store) Delete(_ context.Context, key string) error {
	s.cache.Delete(key)
	return nil
}

func (s *Store) List(_ context.Context, prefix string) ([]string, error) {
	var keys []string
	for k := range s.cache.Items() {
		if strings.HasPrefix(k, prefix) {
			keys = append(keys, k)
		}
	}
	return storage.SortKeys(keys), nil
}

func (s *Store) Ping(context.Context) error {
	return nil
}

func (s *Store) Close() error {
	s.cache.Flush()
	return nil
}
