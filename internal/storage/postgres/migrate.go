package postgres

import (
	"errors"
	"fmt"

	"github.com/Rrens/content-creator-bot/internal/config"
	"github.com/golang-migrate/migrate/v4"
	_ "github.com/golang-migrate/migrate/v4/database/postgres"
	_ "github.com/golang-migrate/migrate/v4/source/file"
	"github.com/rs/zerolog/log"
)

// RunMigrations brings the kv schema to the latest version. A dirty schema
// left by an interrupted run is reported instead of migrated over.
func RunMigrations(dsn string, sourceURL string) error {
	m, err := migrate.New(sourceURL, dsn)
	if err != nil {
		return fmt.Errorf("failed to create migrate instance: %w", err)
	}
	defer m.Close()

	version, dirty, err := m.Version()
	switch {
	case errors.Is(err, migrate.ErrNilVersion):
	case err != nil:
		return fmt.Errorf("failed to read schema version: %w", err)
	case dirty:
		return fmt.Errorf("kv schema is dirty at version %d, fix it and rerun cmd/migrate with -force %d", version, version)
	}

	if err := m.Up(); err != nil && !errors.Is(err, migrate.ErrNoChange) {
		return fmt.Errorf("failed to run migrate up: %w", err)
	}

	version, _, err = m.Version()
	if err != nil {
		return fmt.Errorf("failed to read schema version: %w", err)
	}
	log.Info().Uint("version", version).Msg("Session store schema is current")
	return nil
}

// ForceVersion marks the schema as clean at version after a manual repair
func ForceVersion(dsn string, sourceURL string, version int) error {
	m, err := migrate.New(sourceURL, dsn)
	if err != nil {
		return fmt.Errorf("failed to create migrate instance: %w", err)
	}
	defer m.Close()

	if err := m.Force(version); err != nil {
		return fmt.Errorf("failed to force version %d: %w", version, err)
	}
	log.Warn().Int("version", version).Msg("Session store schema version forced")
	return nil
}

// AutoMigrate runs migrations when database.auto_migrate is on
func AutoMigrate(cfg config.DatabaseConfig) error {
	if !cfg.AutoMigrate {
		log.Debug().Msg("database.auto_migrate is off, expecting kv_entries to exist")
		return nil
	}
	return RunMigrations(cfg.DSN(), cfg.MigrationsURL)
}
