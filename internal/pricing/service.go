package pricing

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/rs/zerolog"
)

// ServiceConfig holds configuration for the pricing service.
type ServiceConfig struct {
	Repository Repository
	Logger     zerolog.Logger
	CacheTTL   time.Duration // How long to cache reference data in memory
}

// Service fronts the pricing repository with a TTL cache. Reference prices
// change rarely; a short cache keeps estimate latency independent of the
// backing store.
type Service struct {
	repo     Repository
	logger   zerolog.Logger
	cacheTTL time.Duration

	mu          sync.RWMutex
	catalogs    map[string][]VignetteProduct
	tolls       map[string]float64
	fuel        map[string]FuelPrices
	rates       map[string]float64
	noData      map[string]bool
	cacheExpiry time.Time
}

// NewService creates a new pricing service.
func NewService(cfg ServiceConfig) *Service {
	cacheTTL := cfg.CacheTTL
	if cacheTTL == 0 {
		cacheTTL = 10 * time.Minute
	}

	s := &Service{
		repo:     cfg.Repository,
		logger:   cfg.Logger,
		cacheTTL: cacheTTL,
	}
	s.resetCacheLocked()
	return s
}

func (s *Service) resetCacheLocked() {
	s.catalogs = make(map[string][]VignetteProduct)
	s.tolls = make(map[string]float64)
	s.fuel = make(map[string]FuelPrices)
	s.rates = make(map[string]float64)
	s.noData = make(map[string]bool)
	s.cacheExpiry = time.Now().Add(s.cacheTTL)
}

func (s *Service) expireIfStale() {
	s.mu.Lock()
	defer s.mu.Unlock()
	if time.Now().After(s.cacheExpiry) {
		s.resetCacheLocked()
	}
}

// VignetteCatalog returns a country's vignette catalog, cached.
func (s *Service) VignetteCatalog(ctx context.Context, countryCode string) ([]VignetteProduct, error) {
	s.expireIfStale()

	key := "vignette:" + countryCode
	s.mu.RLock()
	if s.noData[key] {
		s.mu.RUnlock()
		return nil, ErrNoData
	}
	if products, ok := s.catalogs[countryCode]; ok {
		s.mu.RUnlock()
		return products, nil
	}
	s.mu.RUnlock()

	products, err := s.repo.VignetteCatalog(ctx, countryCode)
	if err != nil {
		s.markMiss(ctx, key, err)
		return nil, err
	}

	s.mu.Lock()
	s.catalogs[countryCode] = products
	s.mu.Unlock()
	return products, nil
}

// SectionTollEstimate returns the flat per-trip estimate in EUR, cached.
func (s *Service) SectionTollEstimate(ctx context.Context, countryCode string) (float64, error) {
	s.expireIfStale()

	key := "toll:" + countryCode
	s.mu.RLock()
	if s.noData[key] {
		s.mu.RUnlock()
		return 0, ErrNoData
	}
	if estimate, ok := s.tolls[countryCode]; ok {
		s.mu.RUnlock()
		return estimate, nil
	}
	s.mu.RUnlock()

	estimate, err := s.repo.SectionTollEstimate(ctx, countryCode)
	if err != nil {
		s.markMiss(ctx, key, err)
		return 0, err
	}

	s.mu.Lock()
	s.tolls[countryCode] = estimate
	s.mu.Unlock()
	return estimate, nil
}

// FuelPrices returns a country's fuel prices, cached.
func (s *Service) FuelPrices(ctx context.Context, countryCode string) (FuelPrices, error) {
	s.expireIfStale()

	key := "fuel:" + countryCode
	s.mu.RLock()
	if s.noData[key] {
		s.mu.RUnlock()
		return FuelPrices{}, ErrNoData
	}
	if prices, ok := s.fuel[countryCode]; ok {
		s.mu.RUnlock()
		return prices, nil
	}
	s.mu.RUnlock()

	prices, err := s.repo.FuelPrices(ctx, countryCode)
	if err != nil {
		s.markMiss(ctx, key, err)
		return FuelPrices{}, err
	}

	s.mu.Lock()
	s.fuel[countryCode] = prices
	s.mu.Unlock()
	return prices, nil
}

// RateToEUR returns the reference conversion rate for a currency, cached.
func (s *Service) RateToEUR(ctx context.Context, currency string) (float64, error) {
	s.expireIfStale()

	key := "rate:" + currency
	s.mu.RLock()
	if s.noData[key] {
		s.mu.RUnlock()
		return 0, ErrNoData
	}
	if rate, ok := s.rates[currency]; ok {
		s.mu.RUnlock()
		return rate, nil
	}
	s.mu.RUnlock()

	rate, err := s.repo.RateToEUR(ctx, currency)
	if err != nil {
		s.markMiss(ctx, key, err)
		return 0, err
	}

	s.mu.Lock()
	s.rates[currency] = rate
	s.mu.Unlock()
	return rate, nil
}

// UpsertVignetteCatalog writes through to the repository and invalidates
// the cache.
func (s *Service) UpsertVignetteCatalog(ctx context.Context, countryCode string, products []VignetteProduct) error {
	if err := s.repo.UpsertVignetteCatalog(ctx, countryCode, products); err != nil {
		return err
	}
	s.Invalidate()
	return nil
}

// UpsertFuelPrices writes through to the repository and invalidates the
// cache.
func (s *Service) UpsertFuelPrices(ctx context.Context, countryCode string, prices FuelPrices) error {
	if err := s.repo.UpsertFuelPrices(ctx, countryCode, prices); err != nil {
		return err
	}
	s.Invalidate()
	return nil
}

// Invalidate discards all cached reference data.
func (s *Service) Invalidate() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.resetCacheLocked()
}

// markMiss caches negative lookups so a country without data does not hit
// the repository on every estimate.
func (s *Service) markMiss(ctx context.Context, key string, err error) {
	if errors.Is(err, ErrNoData) {
		s.mu.Lock()
		s.noData[key] = true
		s.mu.Unlock()
		return
	}
	if ctx.Err() == nil {
		s.logger.Warn().Err(err).Str("key", key).Msg("pricing repository lookup failed")
	}
}
