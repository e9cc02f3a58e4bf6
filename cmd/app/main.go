package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"seocontrol/internal/api/v1/router"
	"seocontrol/internal/config"
	"seocontrol/internal/logger"
	"seocontrol/internal/secrets"

	"github.com/joho/godotenv"
	"github.com/rs/zerolog"
)

// @title SEOControl API
// @version 1.0
// @description SEOControl API documentation
// @host localhost:8080
// @BasePath /api
// @Schemes http https

func main() {
	logger := logger.New()

	// 1. Load configuration
	if err := godotenv.Load(); err != nil {
		logger.Warn().Msg("Warning: no .env file found")
	}

	cfg, err := config.Load()
	if err != nil {
		logger.Fatal().Msgf("Error loading config: %v", err)
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	// 2. Resolve sm:// secret references
	if err := resolveSecrets(ctx, cfg, logger); err != nil {
		logger.Fatal().Msgf("Failed to resolve secrets: %v", err)
	}

	// 3. Build router (and get DB connection)
	r, cleanup, err := router.New(ctx, cfg, logger)
	if err != nil {
		logger.Fatal().Msgf("Failed to build router: %v", err)
	}
	defer cleanup()

	// 4. Create HTTP server
	srv := &http.Server{
		Addr:         ":" + cfg.Port,
		Handler:      r,
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 10 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	// 5. Start server in a goroutine
	go func() {
		logger.Info().Msgf("Server starting on port %s", cfg.Port)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Error().Err(err).Msg("Listen failed")
			stop()
		}
	}()

	// 6. Graceful shutdown
	<-ctx.Done()
	logger.Info().Msg("Shutdown signal received, exiting...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Error().Err(err).Msg("Server forced to shutdown")
		os.Exit(1)
	}
	logger.Info().Msg("Server shut down gracefully")
}

// resolveSecrets swaps sm:// references in cfg for their Secret Manager values.
// Nothing is contacted when no value is a reference.
func resolveSecrets(ctx context.Context, cfg *config.Config, logger zerolog.Logger) error {
	values := []*string{
		&cfg.DBConnectionString,
		&cfg.SupabaseAnonKey,
		&cfg.JWTSecret,
		&cfg.StripeSecretKey,
		&cfg.StripeWebhookSecret,
	}
	refs := 0
	for _, v := range values {
		if secrets.IsReference(*v) {
			refs++
		}
	}
	if refs == 0 {
		return nil
	}

	resolver, err := secrets.NewResolver(ctx, cfg.GCPProjectID)
	if err != nil {
		return err
	}
	defer resolver.Close()

	if err := resolver.ResolveAll(ctx, values...); err != nil {
		return err
	}
	logger.Info().Int("secrets", refs).Msg("Resolved secrets from Secret Manager")
	return nil
}
