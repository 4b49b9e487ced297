// Package api provides the HTTP API for TollRoute.
package api

import (
	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/rs/zerolog"

	"github.com/tollroute/tollroute/internal/analysis"
	"github.com/tollroute/tollroute/internal/api/handler"
	"github.com/tollroute/tollroute/internal/api/middleware"
	"github.com/tollroute/tollroute/internal/auth"
	"github.com/tollroute/tollroute/internal/estimate"
	"github.com/tollroute/tollroute/internal/geocode"
	"github.com/tollroute/tollroute/internal/pricing"
	"github.com/tollroute/tollroute/internal/provider/resilience"
	"github.com/tollroute/tollroute/internal/routing"
)

// RouterConfig holds configuration for the router.
type RouterConfig struct {
	Version     string
	BuildTime   string
	Logger      zerolog.Logger
	ServiceName string
	Metrics     *middleware.Metrics

	JWTService     *auth.JWTService
	RoutingService *routing.Service
	GeocodeService *geocode.Service
	Analyzer       *analysis.Analyzer
	Estimator      *estimate.Estimator
	PricingService *pricing.Service

	Registry *resilience.Registry
	DB       *pgxpool.Pool
}

// NewRouter creates a new chi router with all API routes configured.
func NewRouter(cfg RouterConfig) *chi.Mux {
	r := chi.NewRouter()

	// Set default service name if not provided
	serviceName := cfg.ServiceName
	if serviceName == "" {
		serviceName = "tollroute-api"
	}

	// Global middleware - order matters
	r.Use(middleware.RequestID)            // Generate/propagate request ID first
	r.Use(middleware.Tracing(serviceName)) // Distributed tracing
	if cfg.Metrics != nil {
		r.Use(cfg.Metrics.Middleware()) // HTTP metrics
	}
	r.Use(middleware.Logger(cfg.Logger))   // Structured logging
	r.Use(middleware.Recovery(cfg.Logger)) // Panic recovery
	r.Use(chimiddleware.RealIP)            // Real IP extraction
	r.Use(middleware.SecurityHeaders)      // Security headers (HSTS, CSP, etc.)
	r.Use(middleware.RequireTLS)           // TLS enforcement (enabled via REQUIRE_TLS=true)
	r.Use(middleware.ContentTypeJSON)      // JSON content type

	// Initialize handlers
	opsHandler := handler.NewOpsHandler(handler.OpsHandlerConfig{
		Version:   cfg.Version,
		BuildTime: cfg.BuildTime,
		Registry:  cfg.Registry,
		Routing:   cfg.RoutingService,
		DB:        cfg.DB,
	})
	tripHandler := handler.NewTripHandler(handler.TripHandlerConfig{
		Routing:   cfg.RoutingService,
		Geocoding: cfg.GeocodeService,
		Analyzer:  cfg.Analyzer,
		Estimator: cfg.Estimator,
		Logger:    cfg.Logger,
	})
	metadataHandler := handler.NewMetadataHandler(cfg.PricingService, cfg.Logger)
	pricingHandler := handler.NewPricingHandler(cfg.PricingService, cfg.Logger)

	// Scoped auth middleware for operator endpoints
	opsAuth := middleware.Auth(cfg.JWTService, auth.ScopeOpsRead)
	pricingAuth := middleware.Auth(cfg.JWTService, auth.ScopePricingWrite)

	// Create rate limit middleware for different endpoint categories
	expensiveRateLimit := middleware.RateLimitByIP(middleware.ExpensiveRateLimit) // 30 req/min
	standardRateLimit := middleware.RateLimitByIP(middleware.StandardRateLimit)   // 100 req/min

	// API v1 routes
	r.Route("/v1", func(r chi.Router) {
		// Trip analysis - expensive compute, strict rate limiting
		r.With(expensiveRateLimit).Post("/trips:analyze", tripHandler.AnalyzeTrip)

		// Ops endpoints (public)
		r.Route("/ops", func(r chi.Router) {
			r.Get("/health", opsHandler.HealthCheck)
			r.Get("/ready", opsHandler.ReadinessCheck)
			// Status endpoint requires an operator token with ops:read
			r.With(opsAuth).Get("/status", opsHandler.SystemStatus)
		})

		// Metadata endpoints (public) - standard rate limiting
		r.Route("/metadata", func(r chi.Router) {
			r.Use(standardRateLimit)
			r.Get("/countries", metadataHandler.Countries)
			r.Get("/enums", metadataHandler.Enums)
		})

		// Admin endpoints - operator tokens with pricing:write only
		r.Route("/admin/pricing", func(r chi.Router) {
			r.Use(pricingAuth)
			r.Use(middleware.RateLimitBySubject(middleware.StandardRateLimit))
			r.Put("/{countryCode}/vignettes", pricingHandler.UpsertVignetteCatalog)
			r.Put("/{countryCode}/fuel", pricingHandler.UpsertFuelPrices)
			r.Post("/invalidate", pricingHandler.InvalidateCache)
		})
	})

	return r
}
