package models

import (
	"fmt"

	"github.com/tollroute/tollroute/internal/pricing"
)

// VignetteCatalogUpsert is the request body for
// PUT /v1/admin/pricing/{countryCode}/vignettes.
type VignetteCatalogUpsert struct {
	Products []pricing.VignetteProduct `json:"products"`
}

// Validate checks the catalog upsert.
func (u *VignetteCatalogUpsert) Validate() []FieldError {
	var errs []FieldError

	if len(u.Products) == 0 {
		errs = append(errs, FieldError{Field: "products", Message: "at least one product is required"})
	}
	for i, p := range u.Products {
		if p.ID == "" {
			errs = append(errs, FieldError{Field: "products", Message: "product id is required", Code: indexCode(i)})
		}
		if p.Price < 0 {
			errs = append(errs, FieldError{Field: "products", Message: "price must not be negative", Code: indexCode(i)})
		}
		if p.Currency == "" {
			errs = append(errs, FieldError{Field: "products", Message: "currency is required", Code: indexCode(i)})
		}
	}

	return errs
}

// FuelPricesUpsert is the request body for
// PUT /v1/admin/pricing/{countryCode}/fuel.
type FuelPricesUpsert struct {
	PetrolPerLitre    float64 `json:"petrolPerLitre"`
	DieselPerLitre    float64 `json:"dieselPerLitre"`
	ElectricityPerKWh float64 `json:"electricityPerKwh"`
	Currency          string  `json:"currency"`
}

// Validate checks the fuel prices upsert.
func (u *FuelPricesUpsert) Validate() []FieldError {
	var errs []FieldError

	if u.Currency == "" {
		errs = append(errs, FieldError{Field: "currency", Message: "currency is required"})
	}
	if u.PetrolPerLitre < 0 {
		errs = append(errs, FieldError{Field: "petrolPerLitre", Message: "must not be negative"})
	}
	if u.DieselPerLitre < 0 {
		errs = append(errs, FieldError{Field: "dieselPerLitre", Message: "must not be negative"})
	}
	if u.ElectricityPerKWh < 0 {
		errs = append(errs, FieldError{Field: "electricityPerKwh", Message: "must not be negative"})
	}

	return errs
}

// ToFuelPrices converts the upsert into the pricing domain type.
func (u *FuelPricesUpsert) ToFuelPrices() pricing.FuelPrices {
	return pricing.FuelPrices{
		PetrolPerLitre:    u.PetrolPerLitre,
		DieselPerLitre:    u.DieselPerLitre,
		ElectricityPerKWh: u.ElectricityPerKWh,
		Currency:          u.Currency,
	}
}

func indexCode(i int) string {
	return fmt.Sprintf("index_%d", i)
}
