package handler

import (
	"errors"
	"net/http"

	"github.com/rs/zerolog"

	"github.com/tollroute/tollroute/internal/analysis"
	"github.com/tollroute/tollroute/internal/api/models"
	"github.com/tollroute/tollroute/internal/api/response"
	"github.com/tollroute/tollroute/internal/pricing"
)

// MetadataHandler serves the static reference data clients need to build
// request forms and render analysis results.
type MetadataHandler struct {
	pricing *pricing.Service
	logger  zerolog.Logger
}

// NewMetadataHandler creates a new MetadataHandler.
func NewMetadataHandler(pricingService *pricing.Service, logger zerolog.Logger) *MetadataHandler {
	return &MetadataHandler{pricing: pricingService, logger: logger}
}

// Countries handles GET /v1/metadata/countries. It lists every modeled
// country with its toll regime and, where loaded, its vignette catalog.
func (h *MetadataHandler) Countries(w http.ResponseWriter, r *http.Request) {
	codes := analysis.ModeledCountryCodes()
	items := make([]models.CountryMetadata, 0, len(codes))

	for _, code := range codes {
		// Evaluate with full highway and tollway coverage so the regime
		// flags reflect what the country can require, not a specific route.
		decision := analysis.EvaluateCountry(code, true, true, analysis.Request{})

		item := models.CountryMetadata{
			CountryCode:      code,
			VignetteRequired: decision.RequiresVignette,
			SectionTolls:     decision.RequiresSectionToll,
		}

		if h.pricing != nil && decision.RequiresVignette {
			products, err := h.pricing.VignetteCatalog(r.Context(), code)
			switch {
			case err == nil:
				item.VignetteProducts = products
			case errors.Is(err, pricing.ErrNoData):
				// No catalog loaded yet; the regime flags still apply.
			default:
				h.logger.Warn().Err(err).Str("country", code).Msg("vignette catalog lookup failed")
			}
		}

		items = append(items, item)
	}

	w.Header().Set("Cache-Control", "public, max-age=3600")
	response.JSON(w, r, http.StatusOK, models.Countries{Items: items})
}

// Enums handles GET /v1/metadata/enums. It lists the accepted values for
// every enumerated request and response field.
func (h *MetadataHandler) Enums(w http.ResponseWriter, r *http.Request) {
	enums := models.Enums{
		VehicleClasses: []models.VehicleClass{
			models.VehicleClassCar,
			models.VehicleClassMotorcycle,
			models.VehicleClassVan,
			models.VehicleClassCommercial,
		},
		Powertrains: []models.Powertrain{
			models.PowertrainPetrol,
			models.PowertrainDiesel,
			models.PowertrainElectric,
			models.PowertrainHybrid,
		},
		ChannelPreferences: []models.ChannelPreference{
			models.ChannelPreferenceAuto,
			models.ChannelPreferenceFerry,
			models.ChannelPreferenceTunnel,
		},
		ConfidenceLevels: []models.ConfidenceLevel{
			models.ConfidenceLevelHigh,
			models.ConfidenceLevelMedium,
			models.ConfidenceLevelLow,
		},
	}

	w.Header().Set("Cache-Control", "public, max-age=86400")
	response.JSON(w, r, http.StatusOK, enums)
}
