package main

import (
	"context"
	"fmt"

	"github.com/Rrens/content-creator-bot/internal/config"
	"github.com/Rrens/content-creator-bot/internal/security"
	"github.com/Rrens/content-creator-bot/internal/storage"
	"github.com/Rrens/content-creator-bot/internal/storage/memory"
	"github.com/Rrens/content-creator-bot/internal/storage/mongo"
	"github.com/Rrens/content-creator-bot/internal/storage/mysql"
	"github.com/Rrens/content-creator-bot/internal/storage/postgres"
	"github.com/Rrens/content-creator-bot/internal/storage/redis"
	"github.com/Rrens/content-creator-bot/internal/storage/sqlite"
	"github.com/rs/zerolog/log"
)

func newRegistry() *storage.Registry {
	registry := storage.NewRegistry()
	registry.Register(config.BackendMemory, memory.Open)
	registry.Register(config.BackendRedis, redis.Open)
	registry.Register(config.BackendPostgres, postgres.Open)
	registry.Register(config.BackendMySQL, mysql.Open)
	registry.Register(config.BackendSQLite, sqlite.Open)
	registry.Register(config.BackendMongo, mongo.Open)
	return registry
}

// openStore opens the configured backend and layers encryption and the
// deployment namespace on top of it
func openStore(ctx context.Context, cfg *config.Config) (storage.Store, error) {
	store, err := newRegistry().Open(ctx, cfg)
	if err != nil {
		return nil, err
	}

	if cfg.Storage.EncryptionKey != "" {
		encryptor, err := security.NewEncryptorFromSecret(cfg.Storage.EncryptionKey)
		if err != nil {
			store.Close()
			return nil, fmt.Errorf("invalid storage encryption key: %w", err)
		}
		store = storage.Encrypted(store, encryptor)
		log.Info().Msg("Session values are encrypted at rest")
	}

	return storage.Namespaced(store, cfg.Storage.Namespace), nil
}
