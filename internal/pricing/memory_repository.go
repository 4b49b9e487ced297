package pricing

import (
	"context"
	"sync"
)

// MemoryRepository is the seeded in-memory Repository. It is the default
// backing store and the one used in tests.
type MemoryRepository struct {
	mu        sync.RWMutex
	vignettes map[string][]VignetteProduct
	tolls     map[string]float64
	fuel      map[string]FuelPrices
	rates     map[string]float64
}

// NewMemoryRepository creates a repository seeded with the bundled
// reference tables.
func NewMemoryRepository() *MemoryRepository {
	return &MemoryRepository{
		vignettes: defaultVignetteCatalogs(),
		tolls:     defaultSectionTollEstimates(),
		fuel:      defaultFuelPrices(),
		rates:     defaultExchangeRates(),
	}
}

// NewEmptyMemoryRepository creates a repository with no seed data, for tests
// exercising reference-data-gap behavior.
func NewEmptyMemoryRepository() *MemoryRepository {
	return &MemoryRepository{
		vignettes: make(map[string][]VignetteProduct),
		tolls:     make(map[string]float64),
		fuel:      make(map[string]FuelPrices),
		rates:     defaultExchangeRates(),
	}
}

func (m *MemoryRepository) VignetteCatalog(_ context.Context, countryCode string) ([]VignetteProduct, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	products, ok := m.vignettes[countryCode]
	if !ok || len(products) == 0 {
		return nil, ErrNoData
	}
	out := make([]VignetteProduct, len(products))
	copy(out, products)
	return out, nil
}

func (m *MemoryRepository) SectionTollEstimate(_ context.Context, countryCode string) (float64, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	estimate, ok := m.tolls[countryCode]
	if !ok {
		return 0, ErrNoData
	}
	return estimate, nil
}

func (m *MemoryRepository) FuelPrices(_ context.Context, countryCode string) (FuelPrices, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	prices, ok := m.fuel[countryCode]
	if !ok {
		return FuelPrices{}, ErrNoData
	}
	return prices, nil
}

func (m *MemoryRepository) RateToEUR(_ context.Context, currency string) (float64, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	rate, ok := m.rates[currency]
	if !ok {
		return 0, ErrNoData
	}
	return rate, nil
}

func (m *MemoryRepository) UpsertVignetteCatalog(_ context.Context, countryCode string, products []VignetteProduct) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	cp := make([]VignetteProduct, len(products))
	copy(cp, products)
	m.vignettes[countryCode] = cp
	return nil
}

func (m *MemoryRepository) UpsertFuelPrices(_ context.Context, countryCode string, prices FuelPrices) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.fuel[countryCode] = prices
	return nil
}
