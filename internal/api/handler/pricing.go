package handler

import (
	"encoding/json"
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog"

	"github.com/tollroute/tollroute/internal/api/models"
	"github.com/tollroute/tollroute/internal/api/response"
	"github.com/tollroute/tollroute/internal/pricing"
)

// PricingHandler handles the admin pricing endpoints. All routes behind it
// require an operator token carrying the pricing:write scope.
type PricingHandler struct {
	pricing *pricing.Service
	logger  zerolog.Logger
}

// NewPricingHandler creates a new PricingHandler.
func NewPricingHandler(pricingService *pricing.Service, logger zerolog.Logger) *PricingHandler {
	return &PricingHandler{pricing: pricingService, logger: logger}
}

// UpsertVignetteCatalog handles PUT /v1/admin/pricing/{countryCode}/vignettes.
func (h *PricingHandler) UpsertVignetteCatalog(w http.ResponseWriter, r *http.Request) {
	countryCode, ok := h.countryCode(w, r)
	if !ok {
		return
	}

	var input models.VignetteCatalogUpsert
	if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
		response.BadRequest(w, r, "invalid JSON body", nil)
		return
	}
	if errs := input.Validate(); len(errs) > 0 {
		response.BadRequest(w, r, "invalid vignette catalog", errs)
		return
	}

	if err := h.pricing.UpsertVignetteCatalog(r.Context(), countryCode, input.Products); err != nil {
		h.logger.Error().Err(err).Str("country", countryCode).Msg("vignette catalog upsert failed")
		response.InternalError(w, r, "failed to store vignette catalog")
		return
	}

	h.logger.Info().
		Str("country", countryCode).
		Int("products", len(input.Products)).
		Str("subject", GetSubject(r.Context())).
		Msg("vignette catalog updated")

	response.NoContent(w, r)
}

// UpsertFuelPrices handles PUT /v1/admin/pricing/{countryCode}/fuel.
func (h *PricingHandler) UpsertFuelPrices(w http.ResponseWriter, r *http.Request) {
	countryCode, ok := h.countryCode(w, r)
	if !ok {
		return
	}

	var input models.FuelPricesUpsert
	if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
		response.BadRequest(w, r, "invalid JSON body", nil)
		return
	}
	if errs := input.Validate(); len(errs) > 0 {
		response.BadRequest(w, r, "invalid fuel prices", errs)
		return
	}

	if err := h.pricing.UpsertFuelPrices(r.Context(), countryCode, input.ToFuelPrices()); err != nil {
		h.logger.Error().Err(err).Str("country", countryCode).Msg("fuel prices upsert failed")
		response.InternalError(w, r, "failed to store fuel prices")
		return
	}

	h.logger.Info().
		Str("country", countryCode).
		Str("subject", GetSubject(r.Context())).
		Msg("fuel prices updated")

	response.NoContent(w, r)
}

// InvalidateCache handles POST /v1/admin/pricing/invalidate. It drops the
// pricing service's in-memory caches so the next lookup reloads from the
// repository.
func (h *PricingHandler) InvalidateCache(w http.ResponseWriter, r *http.Request) {
	h.pricing.Invalidate()

	h.logger.Info().
		Str("subject", GetSubject(r.Context())).
		Msg("pricing caches invalidated")

	response.NoContent(w, r)
}

func (h *PricingHandler) countryCode(w http.ResponseWriter, r *http.Request) (string, bool) {
	code := strings.ToUpper(chi.URLParam(r, "countryCode"))
	if len(code) != 2 || !isAlpha(code) {
		response.BadRequest(w, r, "countryCode must be a two-letter ISO 3166-1 code", []models.FieldError{
			{Field: "countryCode", Message: "expected a two-letter country code"},
		})
		return "", false
	}
	return code, true
}

func isAlpha(s string) bool {
	for _, c := range s {
		if c < 'A' || c > 'Z' {
			return false
		}
	}
	return true
}
