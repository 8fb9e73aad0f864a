package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/rs/zerolog/log"

	"github.com/clinicdesk/backend/internal/adapters/cache"
	"github.com/clinicdesk/backend/internal/adapters/classifier"
	"github.com/clinicdesk/backend/internal/adapters/database"
	"github.com/clinicdesk/backend/internal/api/handlers"
	"github.com/clinicdesk/backend/internal/api/routes"
	"github.com/clinicdesk/backend/internal/application/services"
	"github.com/clinicdesk/backend/internal/domain/repositories"
	"github.com/clinicdesk/backend/internal/infrastructure/clients/postgres"
	"github.com/clinicdesk/backend/internal/infrastructure/clients/redis"
	"github.com/clinicdesk/backend/internal/infrastructure/observability"
	"github.com/clinicdesk/backend/pkg/config"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to load configuration: %v\n", err)
		os.Exit(1)
	}

	observability.InitLogger("clinicdesk-mlservice", cfg.Server.Env)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// Initialize OpenTelemetry if enabled
	if cfg.OTEL.Enabled && cfg.OTEL.Endpoint != "" {
		shutdown, err := observability.Setup(
			ctx,
			cfg.OTEL.ServiceName,
			cfg.OTEL.ServiceVersion,
			cfg.OTEL.Endpoint,
		)
		if err != nil {
			log.Warn().Err(err).Msg("failed to set up OpenTelemetry")
		} else {
			defer func() {
				ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
				defer cancel()
				if err := shutdown(ctx); err != nil {
					log.Error().Err(err).Msg("error shutting down OpenTelemetry")
				}
			}()
			log.Info().Msg("OpenTelemetry initialized")
		}
	}

	metrics, err := observability.InitMetrics()
	if err != nil {
		log.Fatal().Err(err).Msg("failed to initialize metrics")
	}

	pgClient, err := postgres.NewClient(&cfg.Database)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to initialize PostgreSQL client")
	}
	defer pgClient.Close()
	log.Info().Msg("PostgreSQL client initialized")

	// Recommendation lookups go through Redis when it is reachable; the
	// service still works without it.
	var recommendationAdapter repositories.RecommendationRepository
	recommendationAdapter = database.NewRecommendationAdapter(pgClient)

	redisClient, err := redis.NewClient(&cfg.Redis)
	if err != nil {
		log.Warn().Err(err).Msg("recommendation cache disabled, Redis unavailable")
	} else {
		defer redisClient.Close()
		recommendationAdapter = database.NewCachedRecommendationAdapter(
			recommendationAdapter,
			cache.NewRedisAdapter(redisClient),
		)
		log.Info().Msg("recommendation adapter wrapped with Redis cache")
	}

	model, err := classifier.Load(cfg.Model.Dir)
	if err != nil {
		log.Fatal().Err(err).Str("dir", cfg.Model.Dir).Msg("failed to load classifier model")
	}
	log.Info().Str("dir", cfg.Model.Dir).Msg("classifier model loaded")

	// Seed recommendations. Failure here is not fatal; lookups fall back to
	// whatever is already stored.
	loader := services.NewRecommendationLoader(recommendationAdapter)
	if err := loader.LoadFile(ctx, cfg.Model.SeedPath); err != nil {
		log.Warn().Err(err).Str("path", cfg.Model.SeedPath).Msg("recommendation seeding skipped")
	}

	inferenceService := services.NewInferenceService(model, recommendationAdapter)
	predictHandler := handlers.NewPredictHandler(inferenceService)

	router := routes.NewModelRouter(predictHandler, metrics)

	serverAddr := fmt.Sprintf("%s:%d", cfg.Server.Host, cfg.Server.Port)
	server := &http.Server{
		Addr:         serverAddr,
		Handler:      router.SetupRoutes(),
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	go func() {
		log.Info().Str("addr", serverAddr).Msg("inference backend starting")
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal().Err(err).Msg("server failed to start")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info().Msg("server shutting down")

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer shutdownCancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("error during server shutdown")
	}

	log.Info().Msg("server stopped")
}
