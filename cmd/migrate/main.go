package main

import (
	"flag"
	"fmt"
	"os"

	"github.com/Rrens/content-creator-bot/internal/config"
	"github.com/Rrens/content-creator-bot/internal/storage/postgres"
	"github.com/joho/godotenv"
)

func main() {
	source := flag.String("source", "", "migration source URL (defaults to database.migrations_url)")
	force := flag.Int("force", -1, "mark the schema clean at this version instead of migrating")
	flag.Parse()

	// Load .env file if it exists
	_ = godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to load config: %v\n", err)
		os.Exit(1)
	}

	sourceURL := *source
	if sourceURL == "" {
		sourceURL = cfg.Database.MigrationsURL
	}

	if *force >= 0 {
		if err := postgres.ForceVersion(cfg.Database.DSN(), sourceURL, *force); err != nil {
			fmt.Fprintf(os.Stderr, "Force failed: %v\n", err)
			os.Exit(1)
		}
		fmt.Printf("Schema forced to version %d\n", *force)
		return
	}

	fmt.Printf("Migrating %s:%d/%s from %s...\n", cfg.Database.Host, cfg.Database.Port, cfg.Database.Database, sourceURL)

	if err := postgres.RunMigrations(cfg.Database.DSN(), sourceURL); err != nil {
		fmt.Fprintf(os.Stderr, "Migration failed: %v\n", err)
		os.Exit(1)
	}

	fmt.Println("Migrations applied")
}
