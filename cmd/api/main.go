package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/rs/zerolog/log"

	"github.com/localserve/backend/internal/adapters/cache"
	"github.com/localserve/backend/internal/adapters/database"
	"github.com/localserve/backend/internal/adapters/kvstore"
	"github.com/localserve/backend/internal/api/handlers"
	"github.com/localserve/backend/internal/api/routes"
	"github.com/localserve/backend/internal/application/services"
	"github.com/localserve/backend/internal/domain/providers"
	"github.com/localserve/backend/internal/domain/repositories"
	"github.com/localserve/backend/internal/infrastructure/clients/postgres"
	"github.com/localserve/backend/internal/infrastructure/clients/redis"
	"github.com/localserve/backend/internal/infrastructure/observability"
	"github.com/localserve/backend/pkg/config"
)

// recordStore bundles the repositories of one backend.
type recordStore struct {
	services repositories.ServiceRepository
	reviews  repositories.ReviewRepository
	requests repositories.RequestRepository
	health   routes.HealthChecker
	close    func() error
}

func main() {
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to load configuration: %v\n", err)
		os.Exit(1)
	}
	if err := observability.InitLogger(cfg.OTEL.ServiceName, cfg.Server.Env, cfg.Server.LogLevel); err != nil {
		fmt.Fprintf(os.Stderr, "Failed to initialize logger: %v\n", err)
		os.Exit(1)
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// Initialize OpenTelemetry if enabled
	if cfg.OTEL.Enabled && cfg.OTEL.Endpoint != "" {
		shutdown, err := observability.Setup(ctx, cfg.OTEL.ServiceName, cfg.OTEL.ServiceVersion, cfg.OTEL.Endpoint)
		if err != nil {
			log.Warn().Err(err).Msg("Failed to set up OpenTelemetry")
		} else {
			defer func() {
				ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
				defer cancel()
				if err := shutdown(ctx); err != nil {
					log.Error().Err(err).Msg("Error shutting down OpenTelemetry")
				}
			}()
			log.Info().Str("endpoint", cfg.OTEL.Endpoint).Msg("OpenTelemetry initialized")
		}
	}

	metrics, err := observability.InitMetrics()
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to initialize metrics")
	}

	// Redis is the record store for the redis backend and the shared
	// rate-limit store for both; the API still runs without it on postgres.
	var kv providers.KeyValueStore
	redisClient, err := redis.NewClient(ctx, &cfg.Redis)
	if err != nil {
		if cfg.Store.Backend == config.StoreRedis {
			log.Fatal().Err(err).Str("addr", cfg.Redis.RedisAddr()).Msg("Failed to initialize Redis client")
		}
		log.Warn().Err(err).Msg("Redis unavailable, submission guard falls back to in-process state")
	} else {
		defer redisClient.Close()
		kv = cache.NewRedisAdapter(redisClient)
		log.Info().Str("addr", cfg.Redis.RedisAddr()).Msg("Redis client initialized")
	}

	store, err := openRecordStore(ctx, cfg, kv, redisClient)
	if err != nil {
		log.Fatal().Err(err).Str("backend", cfg.Store.Backend).Msg("Failed to open record store")
	}
	defer func() {
		if err := store.close(); err != nil {
			log.Error().Err(err).Msg("Error closing record store")
		}
	}()

	policy := services.DefaultRankingPolicy()
	policy.RatingWeight = cfg.Ranking.RatingWeight
	policy.AvailabilityWeight = cfg.Ranking.AvailabilityWeight
	policy.LocationWeight = cfg.Ranking.LocationWeight

	classifier := services.NewSentimentClassifier(services.WithThreshold(cfg.Ranking.SentimentThreshold))
	insightsService := services.NewInsightsService(
		store.services,
		store.reviews,
		store.requests,
		classifier,
		services.NewServiceRankingServiceWithPolicy(policy),
	)
	insightsService.SetMetrics(metrics)
	reviewService := services.NewReviewService(store.services, store.reviews, store.requests)

	router := routes.NewRouter(
		handlers.NewInsightsHandler(insightsService),
		handlers.NewReviewHandler(reviewService, kv),
		store.health,
		cfg.Server.AllowedOrigins,
		metrics,
	)

	server := &http.Server{
		Addr:         cfg.Server.Addr(),
		Handler:      router.SetupRoutes(),
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	go func() {
		log.Info().Str("addr", server.Addr).Str("store", cfg.Store.Backend).Msg("Server starting")
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatal().Err(err).Msg("Server failed to start")
		}
	}()

	// Wait for interrupt signal for graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	log.Info().Msg("Server shutting down")

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer shutdownCancel()
	if err := server.Shutdown(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("Error during server shutdown")
	}
	log.Info().Msg("Server stopped")
}

func openRecordStore(ctx context.Context, cfg *config.Config, kv providers.KeyValueStore, redisClient *redis.Client) (*recordStore, error) {
	switch cfg.Store.Backend {
	case config.StorePostgres:
		pgClient, err := postgres.NewClient(ctx, &cfg.Database)
		if err != nil {
			return nil, err
		}
		if err := database.EnsureSchema(ctx, pgClient); err != nil {
			pgClient.Close()
			return nil, err
		}
		log.Info().Str("database", cfg.Database.Database).Msg("PostgreSQL record store ready")
		return &recordStore{
			services: database.NewServiceAdapter(pgClient),
			reviews:  database.NewReviewAdapter(pgClient),
			requests: database.NewRequestAdapter(pgClient),
			health:   pgClient.Ping,
			close:    pgClient.Close,
		}, nil
	default:
		log.Info().Str("prefix", cfg.Store.KeyPrefix).Msg("Redis record store ready")
		return &recordStore{
			services: kvstore.NewServiceStore(kv, cfg.Store.KeyPrefix),
			reviews:  kvstore.NewReviewStore(kv, cfg.Store.KeyPrefix),
			requests: kvstore.NewRequestStore(kv, cfg.Store.KeyPrefix),
			health:   redisClient.Ping,
			close:    func() error { return nil },
		}, nil
	}
}
