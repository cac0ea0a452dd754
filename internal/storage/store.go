package storage

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"strings"
	"sync"

	"github.com/Rrens/content-creator-bot/internal/config"
)

var (
	// ErrNotFound is returned by Get when the key is absent
	ErrNotFound = errors.New("storage: key not found")

	// ErrCorrupt is returned by Get when a stored value exists but cannot be decoded
	ErrCorrupt = errors.New("storage: corrupt value")
)

// Store is a namespaced key-value store over opaque string keys and values
type Store interface {
	// Get returns the value for key or ErrNotFound
	Get(ctx context.Context, key string) (string, error)

	// Set writes value under key, overwriting any previous value
	Set(ctx context.Context, key, value string) error

	// Delete removes key. Deleting an absent key is not an error.
	Delete(ctx context.Context, key string) error

	// List returns all keys starting with prefix
	List(ctx context.Context, prefix string) ([]string, error)

	// Ping verifies the backend is reachable
	Ping(ctx context.Context) error

	// Close releases backend resources
	Close() error
}

// Factory opens a store for the given configuration
type Factory func(ctx context.Context, cfg *config.Config) (Store, error)

// Registry maps backend names to store factories
type Registry struct {
	factories map[string]Factory
	mu        sync.RWMutex
}

// NewRegistry creates an empty backend registry
func NewRegistry() *Registry {
	return &Registry{factories: make(map[string]Factory)}
}

// Register registers a factory for a backend name
func (r *Registry) Register(backend string, factory Factory) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.factories[backend] = factory
}

// Backends returns the registered backend names, sorted
func (r *Registry) Backends() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()

	names := make([]string, 0, len(r.factories))
	for name := range r.factories {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Open creates the store configured by cfg.Storage.Backend
func (r *Registry) Open(ctx context.Context, cfg *config.Config) (Store, error) {
	r.mu.RLock()
	factory, ok := r.factories[cfg.Storage.Backend]
	r.mu.RUnlock()

	if !ok {
		return nil, fmt.Errorf("unsupported storage backend: %s", cfg.Storage.Backend)
	}

	store, err := factory(ctx, cfg)
	if err != nil {
		return nil, fmt.Errorf("failed to open %s storage: %w", cfg.Storage.Backend, err)
	}
	return store, nil
}

// SortKeys sorts keys ascending in place and returns them
func SortKeys(keys []string) []string {
	sort.Strings(keys)
	return keys
}

// EscapeLike escapes the LIKE wildcards of a literal prefix using `\` as the escape character
func EscapeLike(prefix string) string {
	r := strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)
	return r.Replace(prefix)
}
