// Package main provides the entrypoint for the TollRoute API server.
package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/joho/godotenv"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"

	"github.com/tollroute/tollroute/internal/analysis"
	"github.com/tollroute/tollroute/internal/api"
	"github.com/tollroute/tollroute/internal/api/middleware"
	"github.com/tollroute/tollroute/internal/auth"
	"github.com/tollroute/tollroute/internal/database"
	"github.com/tollroute/tollroute/internal/estimate"
	"github.com/tollroute/tollroute/internal/geocode"
	"github.com/tollroute/tollroute/internal/pricing"
	"github.com/tollroute/tollroute/internal/provider/resilience"
	"github.com/tollroute/tollroute/internal/routing"
	"github.com/tollroute/tollroute/internal/routing/openrouteservice"
	"github.com/tollroute/tollroute/internal/telemetry"
)

// Version and BuildTime are set at compile time via ldflags.
var (
	Version   = "dev"
	BuildTime = "unknown"
)

func main() {
	const serviceName = "tollroute-api"

	// Load .env in local development; a missing file is fine.
	_ = godotenv.Load()

	// Setup structured logging
	log := zerolog.New(os.Stdout).
		With().
		Timestamp().
		Str("service", serviceName).
		Str("version", Version).
		Logger()

	log.Info().
		Str("build_time", BuildTime).
		Msg("starting TollRoute API")

	// Get configuration from environment
	port := os.Getenv("APP_PORT")
	if port == "" {
		port = "8080"
	}

	otlpEndpoint := os.Getenv("OTEL_EXPORTER_OTLP_ENDPOINT")
	if otlpEndpoint == "" {
		otlpEndpoint = "localhost:4317"
	}

	env := os.Getenv("APP_ENV")
	if env == "" {
		env = "development"
	}

	// Initialize OpenTelemetry
	ctx := context.Background()
	telemetryEnabled := os.Getenv("OTEL_ENABLED") == "true"

	tp, err := telemetry.Init(ctx, telemetry.Config{
		ServiceName:    serviceName,
		ServiceVersion: Version,
		Environment:    env,
		OTLPEndpoint:   otlpEndpoint,
		Enabled:        telemetryEnabled,
	})
	if err != nil {
		log.Fatal().Err(err).Msg("failed to initialize telemetry")
	}
	defer func() {
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if shutdownErr := tp.Shutdown(shutdownCtx); shutdownErr != nil {
			log.Error().Err(shutdownErr).Msg("failed to shutdown telemetry")
		}
	}()

	if telemetryEnabled {
		log.Info().
			Str("otlp_endpoint", otlpEndpoint).
			Msg("OpenTelemetry initialized")
	}

	// Initialize metrics
	metrics, err := middleware.NewMetrics()
	if err != nil {
		log.Error().Err(err).Msg("failed to initialize metrics")
		os.Exit(1) //nolint:gocritic // intentional exit, telemetry cleanup is best-effort
	}

	// Pricing repository: postgres when configured, seeded in-memory otherwise
	var pool *pgxpool.Pool
	var pricingRepo pricing.Repository = pricing.NewMemoryRepository()
	if os.Getenv("DB_ENABLED") == "true" {
		dbConfig := database.ConfigFromEnv()
		pool, err = database.Connect(ctx, dbConfig)
		if err != nil {
			log.Fatal().Err(err).Msg("failed to connect to database")
		}
		defer pool.Close()
		log.Info().
			Str("host", dbConfig.Host).
			Int("port", dbConfig.Port).
			Str("database", dbConfig.Database).
			Msg("database connected")
		pricingRepo = pricing.NewPostgresRepository(pool)
	} else {
		log.Warn().Msg("DB_ENABLED not set - using seeded in-memory pricing data")
	}

	pricingService := pricing.NewService(pricing.ServiceConfig{
		Repository: pricingRepo,
		Logger:     log,
	})
	log.Info().Msg("pricing service initialized")

	// Initialize JWT service (get signing key from environment)
	jwtSigningKey := os.Getenv("JWT_SIGNING_KEY")
	if jwtSigningKey == "" {
		jwtSigningKey = "local-dev-signing-key-change-in-production"
		log.Warn().Msg("using default JWT signing key - not secure for production")
	}

	jwtService := auth.NewJWTService(auth.JWTConfig{
		SigningKey: jwtSigningKey,
	})

	// Initialize the directions provider and routing service
	orsAPIKey := os.Getenv("ORS_API_KEY")
	if orsAPIKey == "" {
		log.Warn().Msg("ORS_API_KEY not set - trip analysis will fail")
	}

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

	routingService := routing.NewService(routing.ServiceConfig{
		Provider: orsClient,
		Logger:   log,
		Metrics:  providerMetrics,
	})
	log.Info().Str("provider", orsClient.Name()).Msg("routing service initialized")

	// Geocode cache: redis when configured, in-memory otherwise
	var geocodeStore geocode.Store
	if os.Getenv("GEOCODE_CACHE") == "redis" {
		redisAddr := os.Getenv("REDIS_ADDR")
		if redisAddr == "" {
			redisAddr = "localhost:6379"
		}
		redisClient := redis.NewClient(&redis.Options{
			Addr:     redisAddr,
			Password: os.Getenv("REDIS_PASSWORD"),
		})
		geocodeStore = geocode.NewRedisStore(redisClient)
		log.Info().Str("addr", redisAddr).Msg("redis geocode cache enabled")
	}

	geocodeService := geocode.NewService(geocode.ServiceConfig{
		Resolver: geocode.NewClient(geocode.ClientConfig{
			APIKey:   orsAPIKey,
			Registry: resilience.GlobalRegistry,
			Logger:   log,
		}),
		Store:  geocodeStore,
		Logger: log,
	})
	log.Info().Msg("geocode service initialized")

	// Create router with configuration
	router := api.NewRouter(api.RouterConfig{
		Version:     Version,
		BuildTime:   BuildTime,
		Logger:      log,
		ServiceName: serviceName,
		Metrics:     metrics,

		JWTService:     jwtService,
		RoutingService: routingService,
		GeocodeService: geocodeService,
		Analyzer:       analysis.NewAnalyzer(log),
		Estimator:      estimate.NewEstimator(pricingService, log),
		PricingService: pricingService,

		Registry: resilience.GlobalRegistry,
		DB:       pool,
	})

	// Create HTTP server
	server := &http.Server{
		Addr:         ":" + port,
		Handler:      router,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	// Start server in goroutine
	go func() {
		log.Info().
			Str("addr", server.Addr).
			Msg("server listening")

		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal().Err(err).Msg("server error")
		}
	}()

	// Wait for interrupt signal
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info().Msg("shutting down server")

	// Graceful shutdown with timeout
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := server.Shutdown(ctx); err != nil {
		log.Error().Err(err).Msg("server forced to shutdown")
		os.Exit(1)
	}

	log.Info().Msg("server stopped")
}
