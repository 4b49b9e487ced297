package estimate

import (
	"context"
	"errors"
	"fmt"
	"math"

	"github.com/rs/zerolog"

	"github.com/tollroute/tollroute/internal/analysis"
	"github.com/tollroute/tollroute/internal/pricing"
)

// consumptionRates maps vehicle class to consumption per 100 km: litres for
// combustion powertrains, kWh for electric.
type consumptionRate struct {
	petrol   float64
	diesel   float64
	hybrid   float64
	electric float64
}

var consumptionRates = map[analysis.VehicleClass]consumptionRate{
	analysis.VehicleCar:        {petrol: 7.0, diesel: 6.0, hybrid: 5.0, electric: 18},
	analysis.VehicleMotorcycle: {petrol: 4.5, diesel: 4.0, hybrid: 3.5, electric: 10},
	analysis.VehicleVan:        {petrol: 9.5, diesel: 8.5, hybrid: 8.0, electric: 25},
	analysis.VehicleCommercial: {petrol: 12.0, diesel: 11.0, hybrid: 10.0, electric: 30},
	analysis.VehicleUnknown:    {petrol: 7.0, diesel: 6.0, hybrid: 5.0, electric: 18},
}

// rangeKm approximates one full tank or battery, by vehicle class.
var rangeKm = map[analysis.VehicleClass]struct {
	combustion float64
	electric   float64
}{
	analysis.VehicleCar:        {combustion: 750, electric: 380},
	analysis.VehicleMotorcycle: {combustion: 300, electric: 180},
	analysis.VehicleVan:        {combustion: 650, electric: 280},
	analysis.VehicleCommercial: {combustion: 900, electric: 250},
	analysis.VehicleUnknown:    {combustion: 750, electric: 380},
}

// Estimator produces trip budgets. Estimation is advisory: reference-data
// gaps degrade to "no standard price table" lines, never to a failed
// estimate.
type Estimator struct {
	pricing *pricing.Service
	logger  zerolog.Logger
}

// NewEstimator creates a trip estimator backed by the pricing service.
func NewEstimator(pricingService *pricing.Service, logger zerolog.Logger) *Estimator {
	return &Estimator{pricing: pricingService, logger: logger}
}

// Estimate builds the trip budget for an analyzed route. It always returns
// a TripEstimate.
func (e *Estimator) Estimate(ctx context.Context, req analysis.Request, result *analysis.Result) *TripEstimate {
	est := &TripEstimate{
		TotalDistanceKm: math.Round(result.TotalDistanceMeters/100) / 10,
	}

	for _, country := range result.Countries {
		if country.RequiresVignette {
			e.addVignetteCost(ctx, est, country.CountryCode, req)
		}
		if country.RequiresSectionToll {
			e.addSectionTollCost(ctx, est, country.CountryCode)
		}
	}

	if req.Powertrain == analysis.PowertrainElectric {
		est.Electric = e.electricEstimate(ctx, req, result, est.TotalDistanceKm)
	} else {
		est.Fuel = e.fuelEstimate(ctx, req, result, est.TotalDistanceKm)
	}

	est.CombinedTotalEUR = round2(est.VignetteTotalEUR + est.SectionTollTotalEUR + energyCost(est))
	return est
}

func energyCost(est *TripEstimate) float64 {
	if est.Electric != nil {
		return est.Electric.CostEUR
	}
	if est.Fuel != nil {
		return est.Fuel.CostEUR
	}
	return 0
}

func (e *Estimator) addVignetteCost(ctx context.Context, est *TripEstimate, countryCode string, req analysis.Request) {
	catalog, err := e.pricing.VignetteCatalog(ctx, countryCode)
	if err != nil {
		if !errors.Is(err, pricing.ErrNoData) {
			e.logger.Warn().Err(err).Str("country", countryCode).Msg("vignette catalog lookup failed")
		}
		est.Vignettes = append(est.Vignettes, VignetteCost{CountryCode: countryCode, Note: NoPriceTableNote})
		est.MissingPriceData = append(est.MissingPriceData, countryCode)
		return
	}

	product, priceEUR, ok := e.bestProduct(ctx, catalog, req)
	if !ok {
		est.Vignettes = append(est.Vignettes, VignetteCost{CountryCode: countryCode, Note: NoPriceTableNote})
		est.MissingPriceData = append(est.MissingPriceData, countryCode)
		return
	}

	est.Vignettes = append(est.Vignettes, VignetteCost{
		CountryCode: countryCode,
		ProductID:   product.ID,
		Label:       product.Label,
		PriceEUR:    priceEUR,
	})
	est.VignetteTotalEUR = round2(est.VignetteTotalEUR + priceEUR)
}

// bestProduct selects the catalog product with the highest match score for
// the request's vehicle. Tagged products score above untagged generics;
// products tagged for a different vehicle are ineligible. Ties resolve to
// the cheaper product.
func (e *Estimator) bestProduct(ctx context.Context, catalog []pricing.VignetteProduct, req analysis.Request) (pricing.VignetteProduct, float64, bool) {
	bestScore := -1
	var best pricing.VignetteProduct
	var bestPrice float64

	for _, p := range catalog {
		score := matchScore(p, req)
		if score < 0 {
			continue
		}

		rate, err := e.pricing.RateToEUR(ctx, p.Currency)
		if err != nil {
			e.logger.Warn().Str("currency", p.Currency).Msg("no reference exchange rate; skipping product")
			continue
		}
		priceEUR := round2(p.Price * rate)

		if score > bestScore || (score == bestScore && priceEUR < bestPrice) {
			bestScore = score
			best = p
			bestPrice = priceEUR
		}
	}

	return best, bestPrice, bestScore >= 0
}

func matchScore(p pricing.VignetteProduct, req analysis.Request) int {
	score := 0

	if len(p.VehicleClasses) > 0 {
		if !containsClass(p.VehicleClasses, req.VehicleClass) {
			return -1
		}
		score += 3
	} else if len(p.Powertrains) == 0 {
		score = 1 // untagged generic
	}

	if len(p.Powertrains) > 0 {
		if !containsPowertrain(p.Powertrains, req.Powertrain) {
			return -1
		}
		score += 2
	}

	return score
}

func containsClass(list []analysis.VehicleClass, want analysis.VehicleClass) bool {
	for _, c := range list {
		if c == want {
			return true
		}
	}
	return false
}

func containsPowertrain(list []analysis.Powertrain, want analysis.Powertrain) bool {
	for _, p := range list {
		if p == want {
			return true
		}
	}
	return false
}

func (e *Estimator) addSectionTollCost(ctx context.Context, est *TripEstimate, countryCode string) {
	amount, err := e.pricing.SectionTollEstimate(ctx, countryCode)
	if err != nil {
		if !errors.Is(err, pricing.ErrNoData) {
			e.logger.Warn().Err(err).Str("country", countryCode).Msg("section toll lookup failed")
		}
		// Countries without an entry contribute 0.
		est.SectionTolls = append(est.SectionTolls, SectionTollCost{CountryCode: countryCode, Note: NoPriceTableNote})
		est.MissingPriceData = append(est.MissingPriceData, countryCode)
		return
	}

	est.SectionTolls = append(est.SectionTolls, SectionTollCost{CountryCode: countryCode, EstimateEUR: amount})
	est.SectionTollTotalEUR = round2(est.SectionTollTotalEUR + amount)
}

// fuelEstimate computes litres needed, route-average price, the cheapest
// on-route country for a top-up, and suggested stops. Only countries the
// route passes through are considered for the "best" suggestion.
func (e *Estimator) fuelEstimate(ctx context.Context, req analysis.Request, result *analysis.Result, distanceKm float64) *FuelEstimate {
	rate := consumptionFor(req.VehicleClass, req.Powertrain)
	litres := round2(rate * distanceKm / 100)

	avg, best, bestPrice := e.routePrices(ctx, req.Powertrain, result.CountryCodes())

	fe := &FuelEstimate{
		LitresNeeded:     litres,
		AvgPricePerLitre: avg,
		CostEUR:          round2(litres * avg),
		BestTopUpCountry: best,
	}

	vehicleRange := rangeKm[vehicleClassOrDefault(req.VehicleClass)].combustion
	fe.SuggestedStops = suggestStops(distanceKm, vehicleRange, best, bestPrice, "tank")
	return fe
}

func (e *Estimator) electricEstimate(ctx context.Context, req analysis.Request, result *analysis.Result, distanceKm float64) *ElectricEstimate {
	rate := consumptionFor(req.VehicleClass, req.Powertrain)
	kwh := round2(rate * distanceKm / 100)

	avg, best, bestPrice := e.routePrices(ctx, req.Powertrain, result.CountryCodes())

	ee := &ElectricEstimate{
		KWhNeeded:         kwh,
		AvgPricePerKWh:    avg,
		CostEUR:           round2(kwh * avg),
		BestChargeCountry: best,
	}

	vehicleRange := rangeKm[vehicleClassOrDefault(req.VehicleClass)].electric
	ee.SuggestedStops = suggestStops(distanceKm, vehicleRange, best, bestPrice, "charge")
	return ee
}

// routePrices averages the per-unit energy price over the route countries
// with data and identifies the cheapest among them.
func (e *Estimator) routePrices(ctx context.Context, powertrain analysis.Powertrain, countries []string) (avg float64, best string, bestPrice float64) {
	sum := 0.0
	n := 0

	for _, code := range countries {
		prices, err := e.pricing.FuelPrices(ctx, code)
		if err != nil {
			continue
		}
		price := prices.PricePerUnit(powertrain)
		if price <= 0 {
			continue
		}
		sum += price
		n++
		if best == "" || price < bestPrice {
			best = code
			bestPrice = price
		}
	}

	if n == 0 {
		return 0, "", 0
	}
	return round2(sum / float64(n)), best, bestPrice
}

func suggestStops(distanceKm, vehicleRange float64, best string, bestPrice float64, unit string) []string {
	if distanceKm <= 0 || vehicleRange <= 0 {
		return nil
	}
	if distanceKm <= vehicleRange {
		return []string{fmt.Sprintf("A single full %s covers the whole route.", unit)}
	}
	if best == "" {
		return []string{fmt.Sprintf("Route exceeds one %s range; plan at least one stop.", unit)}
	}
	return []string{fmt.Sprintf(
		"Route exceeds one %s range; top up in %s (%.2f EUR per unit), the cheapest country on the route.",
		unit, best, bestPrice,
	)}
}

func consumptionFor(class analysis.VehicleClass, powertrain analysis.Powertrain) float64 {
	rates := consumptionRates[vehicleClassOrDefault(class)]
	switch powertrain {
	case analysis.PowertrainDiesel:
		return rates.diesel
	case analysis.PowertrainElectric:
		return rates.electric
	case analysis.PowertrainHybrid:
		return rates.hybrid
	default:
		return rates.petrol
	}
}

func vehicleClassOrDefault(class analysis.VehicleClass) analysis.VehicleClass {
	if _, ok := consumptionRates[class]; ok {
		return class
	}
	return analysis.VehicleUnknown
}

func round2(v float64) float64 {
	return math.Round(v*100) / 100
}
