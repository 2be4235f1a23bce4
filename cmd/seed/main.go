package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"

	"github.com/localserve/backend/internal/adapters/cache"
	"github.com/localserve/backend/internal/adapters/database"
	"github.com/localserve/backend/internal/adapters/kvstore"
	"github.com/localserve/backend/internal/domain/entities"
	"github.com/localserve/backend/internal/domain/repositories"
	"github.com/localserve/backend/internal/infrastructure/clients/postgres"
	"github.com/localserve/backend/internal/infrastructure/clients/redis"
	"github.com/localserve/backend/internal/infrastructure/observability"
	"github.com/localserve/backend/pkg/config"
)

type seedService struct {
	listing entities.ServiceListing
	reviews []seedReview
}

type seedReview struct {
	rating float64
	text   string
}

var demoServices = []seedService{
	{
		listing: entities.ServiceListing{Name: "QuickFix Plumbing", Category: "Plumbing", Rating: 4.7, Status: entities.StatusAvailable, Location: "Andheri", Verified: true},
		reviews: []seedReview{
			{5, "Very professional and quick, fixed the leak in an hour"},
			{5, "Excellent work, reasonable price"},
			{4, "Good service but arrived a bit late"},
		},
	},
	{
		listing: entities.ServiceListing{Name: "Bright Spark Electricals", Category: "Electrical", Rating: 4.2, Status: entities.StatusBusy, Location: "Andheri West", Verified: true},
		reviews: []seedReview{
			{4, "Helpful electrician, clean wiring job"},
			{2, "Rude on the phone and overpriced"},
		},
	},
	{
		listing: entities.ServiceListing{Name: "Sparkle Home Cleaning", Category: "Cleaning", Rating: 3.6, Status: entities.StatusAvailable, Location: "Bandra"},
		reviews: []seedReview{
			{3, "Okay job, missed a few corners"},
			{1, "Terrible experience, never showed up"},
			{5, "Amazing deep clean, highly recommend"},
		},
	},
	{
		listing: entities.ServiceListing{Name: "CoolAir AC Repair", Category: "Appliance Repair", Rating: 4.9, Status: entities.StatusOffline, Location: "Powai", Verified: true},
		reviews: []seedReview{
			{5, "Fantastic, the AC works perfectly now"},
		},
	},
	{
		listing: entities.ServiceListing{Name: "Tutor Point", Category: "Tutoring", Status: entities.StatusAvailable, Location: "Dadar"},
	},
}

func main() {
	backend := flag.String("store", "", "record store to seed (redis or postgres); defaults to STORE_BACKEND")
	flag.Parse()

	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to load config: %v\n", err)
		os.Exit(1)
	}
	if err := observability.InitLogger("localserve-seed", cfg.Server.Env, cfg.Server.LogLevel); err != nil {
		fmt.Fprintf(os.Stderr, "Failed to initialize logger: %v\n", err)
		os.Exit(1)
	}
	if *backend != "" {
		cfg.Store.Backend = *backend
	}

	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Minute)
	defer cancel()

	var (
		serviceRepo repositories.ServiceRepository
		reviewRepo  repositories.ReviewRepository
		requestRepo repositories.RequestRepository
	)

	switch cfg.Store.Backend {
	case config.StorePostgres:
		pgClient, err := postgres.NewClient(ctx, &cfg.Database)
		if err != nil {
			log.Fatal().Err(err).Msg("Failed to connect to PostgreSQL")
		}
		defer pgClient.Close()

		if err := database.EnsureSchema(ctx, pgClient); err != nil {
			log.Fatal().Err(err).Msg("Failed to ensure schema")
		}
		if os.Getenv("RESET_DB") == "true" {
			log.Info().Msg("RESET_DB=true detected, truncating tables before seeding")
			if _, err := pgClient.DB().ExecContext(ctx, `TRUNCATE TABLE contact_requests, reviews, services`); err != nil {
				log.Fatal().Err(err).Msg("Failed to reset tables")
			}
		}
		serviceRepo = database.NewServiceAdapter(pgClient)
		reviewRepo = database.NewReviewAdapter(pgClient)
		requestRepo = database.NewRequestAdapter(pgClient)
	case config.StoreRedis:
		redisClient, err := redis.NewClient(ctx, &cfg.Redis)
		if err != nil {
			log.Fatal().Err(err).Msg("Failed to connect to Redis")
		}
		defer redisClient.Close()

		kv := cache.NewRedisAdapter(redisClient)
		serviceRepo = kvstore.NewServiceStore(kv, cfg.Store.KeyPrefix)
		reviewRepo = kvstore.NewReviewStore(kv, cfg.Store.KeyPrefix)
		requestRepo = kvstore.NewRequestStore(kv, cfg.Store.KeyPrefix)
	default:
		log.Fatal().Str("store", cfg.Store.Backend).Msg("Unknown record store")
	}

	now := time.Now().UTC()
	var services, reviews int
	for i, seed := range demoServices {
		listing := seed.listing
		listing.ID = uuid.New().String()
		listing.VendorID = uuid.New().String()
		listing.CreatedAt = now.Add(-time.Duration(len(demoServices)-i) * 24 * time.Hour)
		if err := serviceRepo.Create(ctx, &listing); err != nil {
			log.Error().Err(err).Str("service", listing.Name).Msg("Failed to create service")
			continue
		}
		services++

		for j, r := range seed.reviews {
			review := entities.Review{
				ID:         uuid.New().String(),
				ServiceID:  listing.ID,
				Rating:     r.rating,
				Text:       r.text,
				CustomerID: uuid.New().String(),
				CreatedAt:  listing.CreatedAt.Add(time.Duration(j+1) * time.Hour),
			}
			if err := reviewRepo.Create(ctx, &review); err != nil {
				log.Error().Err(err).Str("service", listing.Name).Msg("Failed to create review")
				continue
			}
			reviews++
		}

		request := entities.ContactRequest{
			ID:         uuid.New().String(),
			ServiceID:  listing.ID,
			CustomerID: uuid.New().String(),
			Message:    fmt.Sprintf("Is %s free this weekend?", listing.Name),
			Status:     entities.RequestPending,
			CreatedAt:  now,
		}
		if err := requestRepo.Create(ctx, &request); err != nil {
			log.Error().Err(err).Str("service", listing.Name).Msg("Failed to create contact request")
		}
	}

	log.Info().
		Str("store", cfg.Store.Backend).
		Int("services", services).
		Int("reviews", reviews).
		Msg("Seeding completed")
}
