package pricing

import "github.com/tollroute/tollroute/internal/analysis"

// Seed reference data. Prices are point-in-time averages maintained by hand;
// the Postgres repository supersedes these in deployments where the pricing
// worker keeps the tables current.

func defaultVignetteCatalogs() map[string][]VignetteProduct {
	return map[string][]VignetteProduct{
		"AT": {
			{ID: "at-1d", Label: "Austria 1-day vignette", Price: 9.30, Currency: "EUR", DurationDays: 1},
			{ID: "at-10d", Label: "Austria 10-day vignette", Price: 12.40, Currency: "EUR", DurationDays: 10},
			{ID: "at-2m", Label: "Austria 2-month vignette", Price: 31.10, Currency: "EUR", DurationDays: 62},
			{ID: "at-10d-moto", Label: "Austria 10-day motorcycle vignette", Price: 5.80, Currency: "EUR", DurationDays: 10,
				VehicleClasses: []analysis.VehicleClass{analysis.VehicleMotorcycle}},
		},
		"CZ": {
			{ID: "cz-10d", Label: "Czechia 10-day e-vignette", Price: 270, Currency: "CZK", DurationDays: 10},
			{ID: "cz-30d", Label: "Czechia 30-day e-vignette", Price: 430, Currency: "CZK", DurationDays: 30},
			{ID: "cz-ev", Label: "Czechia zero-emission exemption", Price: 0, Currency: "CZK", DurationDays: 365,
				Powertrains: []analysis.Powertrain{analysis.PowertrainElectric}},
		},
		"SK": {
			{ID: "sk-10d", Label: "Slovakia 10-day e-vignette", Price: 10.80, Currency: "EUR", DurationDays: 10},
			{ID: "sk-30d", Label: "Slovakia 30-day e-vignette", Price: 17.10, Currency: "EUR", DurationDays: 30},
		},
		"HU": {
			{ID: "hu-d1-10d", Label: "Hungary D1 10-day e-vignette", Price: 6400, Currency: "HUF", DurationDays: 10},
			{ID: "hu-d1-1m", Label: "Hungary D1 monthly e-vignette", Price: 10360, Currency: "HUF", DurationDays: 31},
			{ID: "hu-d1m-10d", Label: "Hungary D1M motorcycle 10-day", Price: 3580, Currency: "HUF", DurationDays: 10,
				VehicleClasses: []analysis.VehicleClass{analysis.VehicleMotorcycle}},
			{ID: "hu-d2-10d", Label: "Hungary D2 van 10-day", Price: 9080, Currency: "HUF", DurationDays: 10,
				VehicleClasses: []analysis.VehicleClass{analysis.VehicleVan}},
		},
		"SI": {
			{ID: "si-7d", Label: "Slovenia 7-day e-vignette", Price: 16.00, Currency: "EUR", DurationDays: 7},
			{ID: "si-1m", Label: "Slovenia monthly e-vignette", Price: 32.00, Currency: "EUR", DurationDays: 31},
		},
		"CH": {
			{ID: "ch-1y", Label: "Switzerland annual vignette", Price: 40, Currency: "CHF", DurationDays: 365},
		},
		"RO": {
			{ID: "ro-7d", Label: "Romania 7-day rovinieta", Price: 6.00, Currency: "EUR", DurationDays: 7},
			{ID: "ro-30d", Label: "Romania 30-day rovinieta", Price: 9.50, Currency: "EUR", DurationDays: 30},
		},
		"BG": {
			{ID: "bg-we", Label: "Bulgaria weekend e-vignette", Price: 10, Currency: "BGN", DurationDays: 2},
			{ID: "bg-7d", Label: "Bulgaria weekly e-vignette", Price: 15, Currency: "BGN", DurationDays: 7},
			{ID: "bg-1m", Label: "Bulgaria monthly e-vignette", Price: 30, Currency: "BGN", DurationDays: 30},
		},
	}
}

// Flat per-trip section toll estimates in EUR for a typical full transit.
func defaultSectionTollEstimates() map[string]float64 {
	return map[string]float64{
		"AT": 12.0,
		"RO": 4.0,
		"HR": 25.0,
		"RS": 12.0,
		"FR": 45.0,
		"IT": 30.0,
		"BA": 10.0,
		"ME": 5.0,
		"MK": 6.0,
		"AL": 2.5,
		"PL": 10.0,
		"ES": 20.0,
		"PT": 15.0,
		"TR": 8.0,
		"GR": 18.0,
		"GB": 10.0,
		"IE": 6.0,
	}
}

// Average pump and public-charging prices, normalized to EUR.
func defaultFuelPrices() map[string]FuelPrices {
	return map[string]FuelPrices{
		"AL": {PetrolPerLitre: 1.75, DieselPerLitre: 1.70, ElectricityPerKWh: 0.30, Currency: "EUR"},
		"AT": {PetrolPerLitre: 1.65, DieselPerLitre: 1.60, ElectricityPerKWh: 0.52, Currency: "EUR"},
		"BA": {PetrolPerLitre: 1.30, DieselPerLitre: 1.28, ElectricityPerKWh: 0.30, Currency: "EUR"},
		"BE": {PetrolPerLitre: 1.75, DieselPerLitre: 1.70, ElectricityPerKWh: 0.55, Currency: "EUR"},
		"BG": {PetrolPerLitre: 1.32, DieselPerLitre: 1.35, ElectricityPerKWh: 0.32, Currency: "EUR"},
		"CH": {PetrolPerLitre: 1.85, DieselPerLitre: 1.90, ElectricityPerKWh: 0.45, Currency: "EUR"},
		"CZ": {PetrolPerLitre: 1.52, DieselPerLitre: 1.48, ElectricityPerKWh: 0.40, Currency: "EUR"},
		"DE": {PetrolPerLitre: 1.78, DieselPerLitre: 1.67, ElectricityPerKWh: 0.55, Currency: "EUR"},
		"ES": {PetrolPerLitre: 1.58, DieselPerLitre: 1.52, ElectricityPerKWh: 0.48, Currency: "EUR"},
		"FR": {PetrolPerLitre: 1.80, DieselPerLitre: 1.72, ElectricityPerKWh: 0.50, Currency: "EUR"},
		"GB": {PetrolPerLitre: 1.72, DieselPerLitre: 1.78, ElectricityPerKWh: 0.62, Currency: "EUR"},
		"GR": {PetrolPerLitre: 1.85, DieselPerLitre: 1.60, ElectricityPerKWh: 0.46, Currency: "EUR"},
		"HR": {PetrolPerLitre: 1.45, DieselPerLitre: 1.42, ElectricityPerKWh: 0.40, Currency: "EUR"},
		"HU": {PetrolPerLitre: 1.50, DieselPerLitre: 1.55, ElectricityPerKWh: 0.38, Currency: "EUR"},
		"IE": {PetrolPerLitre: 1.70, DieselPerLitre: 1.75, ElectricityPerKWh: 0.55, Currency: "EUR"},
		"IT": {PetrolPerLitre: 1.82, DieselPerLitre: 1.75, ElectricityPerKWh: 0.58, Currency: "EUR"},
		"ME": {PetrolPerLitre: 1.45, DieselPerLitre: 1.40, ElectricityPerKWh: 0.35, Currency: "EUR"},
		"MK": {PetrolPerLitre: 1.35, DieselPerLitre: 1.32, ElectricityPerKWh: 0.30, Currency: "EUR"},
		"NL": {PetrolPerLitre: 1.95, DieselPerLitre: 1.68, ElectricityPerKWh: 0.60, Currency: "EUR"},
		"PL": {PetrolPerLitre: 1.42, DieselPerLitre: 1.45, ElectricityPerKWh: 0.36, Currency: "EUR"},
		"PT": {PetrolPerLitre: 1.72, DieselPerLitre: 1.62, ElectricityPerKWh: 0.50, Currency: "EUR"},
		"RO": {PetrolPerLitre: 1.40, DieselPerLitre: 1.42, ElectricityPerKWh: 0.34, Currency: "EUR"},
		"RS": {PetrolPerLitre: 1.55, DieselPerLitre: 1.58, ElectricityPerKWh: 0.35, Currency: "EUR"},
		"SI": {PetrolPerLitre: 1.48, DieselPerLitre: 1.52, ElectricityPerKWh: 0.44, Currency: "EUR"},
		"SK": {PetrolPerLitre: 1.55, DieselPerLitre: 1.50, ElectricityPerKWh: 0.42, Currency: "EUR"},
		"TR": {PetrolPerLitre: 1.25, DieselPerLitre: 1.28, ElectricityPerKWh: 0.25, Currency: "EUR"},
		"XK": {PetrolPerLitre: 1.40, DieselPerLitre: 1.35, ElectricityPerKWh: 0.28, Currency: "EUR"},
	}
}

// Fixed reference conversion rates to EUR.
func defaultExchangeRates() map[string]float64 {
	return map[string]float64{
		"EUR": 1.0,
		"CZK": 0.041,
		"HUF": 0.0026,
		"BGN": 0.511,
		"RON": 0.201,
		"CHF": 1.06,
		"GBP": 1.17,
		"PLN": 0.233,
		"RSD": 0.0085,
		"TRY": 0.027,
	}
}
