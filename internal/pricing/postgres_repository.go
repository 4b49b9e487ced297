package pricing

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

// PostgresRepository is a PostgreSQL implementation of Repository, used in
// deployments where the pricing worker keeps reference tables current.
type PostgresRepository struct {
	pool *pgxpool.Pool
}

// NewPostgresRepository creates a new PostgreSQL pricing repository.
func NewPostgresRepository(pool *pgxpool.Pool) *PostgresRepository {
	return &PostgresRepository{pool: pool}
}

// VignetteCatalog retrieves a country's vignette products.
func (r *PostgresRepository) VignetteCatalog(ctx context.Context, countryCode string) ([]VignetteProduct, error) {
	query := `
		SELECT products
		FROM vignette_catalogs
		WHERE country_code = $1
	`

	var productsJSON []byte
	err := r.pool.QueryRow(ctx, query, countryCode).Scan(&productsJSON)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrNoData
		}
		return nil, fmt.Errorf("query vignette catalog: %w", err)
	}

	var products []VignetteProduct
	if err := json.Unmarshal(productsJSON, &products); err != nil {
		return nil, fmt.Errorf("decode vignette catalog: %w", err)
	}
	if len(products) == 0 {
		return nil, ErrNoData
	}
	return products, nil
}

// SectionTollEstimate retrieves the flat per-trip toll estimate in EUR.
func (r *PostgresRepository) SectionTollEstimate(ctx context.Context, countryCode string) (float64, error) {
	query := `
		SELECT estimate_eur
		FROM section_toll_estimates
		WHERE country_code = $1
	`

	var estimate float64
	err := r.pool.QueryRow(ctx, query, countryCode).Scan(&estimate)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return 0, ErrNoData
		}
		return 0, fmt.Errorf("query section toll estimate: %w", err)
	}
	return estimate, nil
}

// FuelPrices retrieves a country's average fuel and charging prices.
func (r *PostgresRepository) FuelPrices(ctx context.Context, countryCode string) (FuelPrices, error) {
	query := `
		SELECT petrol_per_litre, diesel_per_litre, electricity_per_kwh, currency
		FROM fuel_prices
		WHERE country_code = $1
	`

	var prices FuelPrices
	err := r.pool.QueryRow(ctx, query, countryCode).Scan(
		&prices.PetrolPerLitre,
		&prices.DieselPerLitre,
		&prices.ElectricityPerKWh,
		&prices.Currency,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return FuelPrices{}, ErrNoData
		}
		return FuelPrices{}, fmt.Errorf("query fuel prices: %w", err)
	}
	return prices, nil
}

// RateToEUR retrieves the reference conversion rate for a currency.
func (r *PostgresRepository) RateToEUR(ctx context.Context, currency string) (float64, error) {
	if currency == "EUR" {
		return 1, nil
	}

	query := `
		SELECT rate_to_eur
		FROM exchange_rates
		WHERE currency = $1
	`

	var rate float64
	err := r.pool.QueryRow(ctx, query, currency).Scan(&rate)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return 0, ErrNoData
		}
		return 0, fmt.Errorf("query exchange rate: %w", err)
	}
	return rate, nil
}

// UpsertVignetteCatalog replaces a country's vignette catalog.
func (r *PostgresRepository) UpsertVignetteCatalog(ctx context.Context, countryCode string, products []VignetteProduct) error {
	productsJSON, err := json.Marshal(products)
	if err != nil {
		return fmt.Errorf("encode vignette catalog: %w", err)
	}

	query := `
		INSERT INTO vignette_catalogs (country_code, products, updated_at)
		VALUES ($1, $2, NOW())
		ON CONFLICT (country_code)
		DO UPDATE SET products = EXCLUDED.products, updated_at = NOW()
	`

	if _, err := r.pool.Exec(ctx, query, countryCode, productsJSON); err != nil {
		return fmt.Errorf("upsert vignette catalog: %w", err)
	}
	return nil
}

// UpsertFuelPrices replaces a country's fuel price entry.
func (r *PostgresRepository) UpsertFuelPrices(ctx context.Context, countryCode string, prices FuelPrices) error {
	query := `
		INSERT INTO fuel_prices (country_code, petrol_per_litre, diesel_per_litre, electricity_per_kwh, currency, updated_at)
		VALUES ($1, $2, $3, $4, $5, NOW())
		ON CONFLICT (country_code)
		DO UPDATE SET
			petrol_per_litre = EXCLUDED.petrol_per_litre,
			diesel_per_litre = EXCLUDED.diesel_per_litre,
			electricity_per_kwh = EXCLUDED.electricity_per_kwh,
			currency = EXCLUDED.currency,
			updated_at = NOW()
	`

	if _, err := r.pool.Exec(ctx, query,
		countryCode,
		prices.PetrolPerLitre,
		prices.DieselPerLitre,
		prices.ElectricityPerKWh,
		prices.Currency,
	); err != nil {
		return fmt.Errorf("upsert fuel prices: %w", err)
	}
	return nil
}
