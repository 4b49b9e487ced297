// Package main provides the entrypoint for the TollRoute background worker.
package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"strconv"
	"syscall"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/joho/godotenv"
	"github.com/rs/zerolog"

	"github.com/tollroute/tollroute/internal/api/middleware"
	"github.com/tollroute/tollroute/internal/database"
	"github.com/tollroute/tollroute/internal/pricing"
	"github.com/tollroute/tollroute/internal/provider/resilience"
	"github.com/tollroute/tollroute/internal/routing"
	"github.com/tollroute/tollroute/internal/routing/openrouteservice"
	"github.com/tollroute/tollroute/internal/worker"
)

// Version and BuildTime are set at compile time via ldflags
var (
	Version   = "dev"
	BuildTime = "unknown"
)

func main() {
	const serviceName = "tollroute-worker"

	// Load .env in local development; a missing file is fine.
	_ = godotenv.Load()

	log := zerolog.New(os.Stdout).
		With().
		Timestamp().
		Str("service", serviceName).
		Str("version", Version).
		Logger()

	log.Info().
		Str("build_time", BuildTime).
		Msg("starting TollRoute worker")

	// Worker also exposes a health endpoint for Cloud Run
	port := os.Getenv("APP_PORT")
	if port == "" {
		port = "8080"
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// Pricing repository: postgres when configured, seeded in-memory otherwise
	var pool *pgxpool.Pool
	var pricingRepo pricing.Repository = pricing.NewMemoryRepository()
	if os.Getenv("DB_ENABLED") == "true" {
		dbConfig := database.ConfigFromEnv()
		var err error
		pool, err = database.Connect(ctx, dbConfig)
		if err != nil {
			log.Fatal().Err(err).Msg("failed to connect to database")
		}
		defer pool.Close()
		pricingRepo = pricing.NewPostgresRepository(pool)
		log.Info().Str("host", dbConfig.Host).Msg("database connected")
	}

	pricingService := pricing.NewService(pricing.ServiceConfig{
		Repository: pricingRepo,
		Logger:     log,
	})

	// Routing service for corridor prewarms
	var routingService *routing.Service
	if orsAPIKey := os.Getenv("ORS_API_KEY"); orsAPIKey != "" {
		orsClient := openrouteservice.NewClient(openrouteservice.ClientConfig{
			APIKey:   orsAPIKey,
			BaseURL:  os.Getenv("ORS_BASE_URL"),
			Registry: resilience.GlobalRegistry,
			Logger:   log,
		})
		providerMetrics, err := middleware.NewProviderMetrics(orsClient.Name())
		if err != nil {
			log.Fatal().Err(err).Msg("failed to initialize provider metrics")
		}
		routingService = routing.NewService(routing.ServiceConfig{
			Provider: orsClient,
			Logger:   log,
			Metrics:  providerMetrics,
		})
	} else {
		log.Warn().Msg("ORS_API_KEY not set - corridor prewarm disabled")
	}

	refreshConfig := worker.DefaultRefreshConfig()
	if v := os.Getenv("REFRESH_CONCURRENCY"); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n > 0 {
			refreshConfig.Concurrency = n
		}
	}
	refreshConfig.PrewarmDirections = routingService != nil

	refreshJob := worker.NewRefreshJob(worker.RefreshJobConfig{
		Config:         refreshConfig,
		Logger:         log,
		RoutingService: routingService,
		PricingService: pricingService,
	})

	// Health check server
	mux := http.NewServeMux()
	mux.HandleFunc("/health", func(w http.ResponseWriter, _ *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte(`{"status":"healthy","version":"` + Version + `"}`))
	})

	server := &http.Server{
		Addr:         ":" + port,
		Handler:      mux,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
	}

	go func() {
		log.Info().Str("addr", server.Addr).Msg("health server listening")
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Error().Err(err).Msg("health server error")
		}
	}()

	// Pub/Sub message loop
	projectID := os.Getenv("PUBSUB_PROJECT_ID")
	subscription := os.Getenv("PUBSUB_SUBSCRIPTION")
	if subscription == "" {
		subscription = "tollroute-pricing-refresh"
	}

	if projectID != "" {
		handler, err := worker.NewPubSubHandler(ctx, worker.PubSubConfig{
			ProjectID:        projectID,
			SubscriptionName: subscription,
			RefreshJob:       refreshJob,
			Logger:           log,
		})
		if err != nil {
			log.Fatal().Err(err).Msg("failed to create pubsub handler")
		}
		defer func() {
			if closeErr := handler.Close(); closeErr != nil {
				log.Error().Err(closeErr).Msg("failed to close pubsub client")
			}
		}()

		go func() {
			if err := handler.Start(ctx); err != nil && ctx.Err() == nil {
				log.Fatal().Err(err).Msg("pubsub receive failed")
			}
		}()
	} else {
		// Without Pub/Sub, fall back to a periodic refresh loop.
		interval := 6 * time.Hour
		if v := os.Getenv("REFRESH_INTERVAL"); v != "" {
			if d, err := time.ParseDuration(v); err == nil {
				interval = d
			}
		}
		log.Warn().
			Dur("interval", interval).
			Msg("PUBSUB_PROJECT_ID not set - running periodic refresh loop")

		go func() {
			ticker := time.NewTicker(interval)
			defer ticker.Stop()
			for {
				if err := refreshJob.RefreshPricing(ctx); err != nil {
					log.Error().Err(err).Msg("pricing refresh failed")
				}
				refreshJob.Run(ctx)

				select {
				case <-ctx.Done():
					return
				case <-ticker.C:
				}
			}
		}()
	}

	// Wait for interrupt signal
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info().Msg("shutting down worker")
	cancel()

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer shutdownCancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("health server forced to shutdown")
	}

	log.Info().Msg("worker stopped")
}
