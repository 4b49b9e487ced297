package pricing

import "context"

// Repository provides access to reference price tables. Implementations:
// the seeded in-memory repository (default) and the Postgres repository.
type Repository interface {
	// VignetteCatalog returns the purchasable vignette products for a
	// country. Returns ErrNoData when the country has no catalog.
	VignetteCatalog(ctx context.Context, countryCode string) ([]VignetteProduct, error)

	// SectionTollEstimate returns the flat per-trip toll estimate in EUR.
	// Returns ErrNoData when the country has no entry.
	SectionTollEstimate(ctx context.Context, countryCode string) (float64, error)

	// FuelPrices returns average fuel and charging prices for a country.
	// Returns ErrNoData when the country has no entry.
	FuelPrices(ctx context.Context, countryCode string) (FuelPrices, error)

	// RateToEUR returns the fixed reference conversion rate from the given
	// currency to EUR. EUR itself returns 1.
	RateToEUR(ctx context.Context, currency string) (float64, error)

	// UpsertVignetteCatalog replaces a country's vignette catalog.
	UpsertVignetteCatalog(ctx context.Context, countryCode string, products []VignetteProduct) error

	// UpsertFuelPrices replaces a country's fuel price entry.
	UpsertFuelPrices(ctx context.Context, countryCode string, prices FuelPrices) error
}
