package main

import (
	"context"
	"flag"
	"os/signal"
	"syscall"

	"seocontrol/internal/logger"
	"seocontrol/internal/repository"

	"github.com/joho/godotenv"
	"github.com/kelseyhightower/envconfig"
)

// migrateConfig is the subset of settings the schema migration needs.
type migrateConfig struct {
	Environment        string `envconfig:"ENV" default:"development"`
	DBConnectionString string `envconfig:"DB_CONNECTION_STRING" required:"true"`
}

func main() {
	dsn := flag.String("dsn", "", "Postgres connection string (overrides DB_CONNECTION_STRING)")
	flag.Parse()

	logger := logger.New()

	if err := godotenv.Load(); err != nil {
		logger.Warn().Msg("Warning: no .env file found")
	}

	var cfg migrateConfig
	if err := envconfig.Process("", &cfg); err != nil && *dsn == "" {
		logger.Fatal().Msgf("Error loading config: %v", err)
	}
	if *dsn != "" {
		cfg.DBConnectionString = *dsn
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	pool, err := repository.NewPool(ctx, repository.PoolOptions{
		DSN:         cfg.DBConnectionString,
		Development: cfg.Environment == "development",
	}, logger)
	if err != nil {
		logger.Fatal().Msgf("Failed to connect to database: %v", err)
	}
	defer pool.Close()

	if err := repository.Migrate(ctx, pool); err != nil {
		logger.Fatal().Msgf("Migration failed: %v", err)
	}
	logger.Info().Msg("Schema migrated")
}
