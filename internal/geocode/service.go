package geocode

import (
	"context"
	"strings"
	"time"

	"github.com/rs/zerolog"
)

// ServiceConfig holds configuration for the geocoding service.
type ServiceConfig struct {
	// Resolver is the upstream geocoding provider.
	Resolver Resolver

	// Store is the cache in front of the provider. If nil, an in-memory
	// store is used.
	Store Store

	// CacheTTL is how long resolved places are cached
	// (default: 24 hours; place names do not move).
	CacheTTL time.Duration

	// Logger for service operations.
	Logger zerolog.Logger
}

// Service resolves place names with caching.
type Service struct {
	resolver Resolver
	store    Store
	cacheTTL time.Duration
	logger   zerolog.Logger
}

// NewService creates a new geocoding service.
func NewService(cfg ServiceConfig) *Service {
	store := cfg.Store
	if store == nil {
		store = NewMemoryStore()
	}

	cacheTTL := cfg.CacheTTL
	if cacheTTL == 0 {
		cacheTTL = 24 * time.Hour
	}

	return &Service{
		resolver: cfg.Resolver,
		store:    store,
		cacheTTL: cacheTTL,
		logger:   cfg.Logger,
	}
}

// Resolve resolves a place name, consulting the cache first. Cache write
// failures are logged and do not fail the lookup.
func (s *Service) Resolve(ctx context.Context, query string) (*Place, error) {
	normalized := normalizeQuery(query)
	key := cacheKey(normalized)

	if place, found, err := s.store.Get(ctx, key); err != nil {
		s.logger.Warn().Err(err).Str("query", normalized).Msg("geocode cache read failed")
	} else if found {
		s.logger.Debug().Str("query", normalized).Msg("geocode cache hit")
		return place, nil
	}

	place, err := s.resolver.Resolve(ctx, normalized)
	if err != nil {
		return nil, err
	}

	if err := s.store.Set(ctx, key, place, s.cacheTTL); err != nil {
		s.logger.Warn().Err(err).Str("query", normalized).Msg("geocode cache write failed")
	}

	return place, nil
}

// normalizeQuery lowercases and collapses whitespace so that trivially
// different spellings share a cache entry.
func normalizeQuery(query string) string {
	return strings.Join(strings.Fields(strings.ToLower(query)), " ")
}
