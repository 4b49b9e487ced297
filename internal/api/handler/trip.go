package handler

import (
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"github.com/rs/zerolog"

	"github.com/tollroute/tollroute/internal/analysis"
	"github.com/tollroute/tollroute/internal/api/models"
	"github.com/tollroute/tollroute/internal/api/response"
	"github.com/tollroute/tollroute/internal/estimate"
	"github.com/tollroute/tollroute/internal/geocode"
	"github.com/tollroute/tollroute/internal/routing"
	"github.com/tollroute/tollroute/internal/shield"
	"github.com/tollroute/tollroute/pkg/polyline"
)

// TripHandler handles the trip analysis endpoint.
type TripHandler struct {
	routing   *routing.Service
	geocoding *geocode.Service
	analyzer  *analysis.Analyzer
	estimator *estimate.Estimator
	logger    zerolog.Logger
}

// TripHandlerConfig holds the dependencies of the trip handler.
type TripHandlerConfig struct {
	Routing   *routing.Service
	Geocoding *geocode.Service
	Analyzer  *analysis.Analyzer
	Estimator *estimate.Estimator
	Logger    zerolog.Logger
}

// NewTripHandler creates a new TripHandler.
func NewTripHandler(cfg TripHandlerConfig) *TripHandler {
	return &TripHandler{
		routing:   cfg.Routing,
		geocoding: cfg.Geocoding,
		analyzer:  cfg.Analyzer,
		estimator: cfg.Estimator,
		logger:    cfg.Logger,
	}
}

// AnalyzeTrip handles POST /v1/trips:analyze. It resolves the trip
// endpoints, fetches a driving route, and runs the full annotation
// pipeline: per-country obligations, cost estimate, trip shield insights,
// and the readiness summary.
func (h *TripHandler) AnalyzeTrip(w http.ResponseWriter, r *http.Request) {
	var input models.TripAnalyzeRequest
	if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
		response.BadRequest(w, r, "invalid JSON body", nil)
		return
	}

	if errs := input.Validate(); len(errs) > 0 {
		response.BadRequest(w, r, "invalid trip analysis request", errs)
		return
	}

	ctx := r.Context()

	origin, ok := h.resolveEndpoint(w, r, "origin", input.Origin, input.OriginQuery)
	if !ok {
		return
	}
	destination, ok := h.resolveEndpoint(w, r, "destination", input.Destination, input.DestinationQuery)
	if !ok {
		return
	}

	req := input.Normalize()
	req.Start = origin.Label
	req.End = destination.Label

	dir, err := h.routing.GetDirections(ctx, routing.DirectionsRequest{
		Origin:      routing.Coordinate{Lat: origin.Point.Lat, Lon: origin.Point.Lon},
		Destination: routing.Coordinate{Lat: destination.Point.Lat, Lon: destination.Point.Lon},
		AvoidTolls:  req.AvoidTolls,
	})
	if err != nil {
		h.writeRoutingError(w, r, err)
		return
	}

	result, err := h.analyzer.Analyze(req, dir)
	if err != nil {
		h.writeAnalysisError(w, r, err)
		return
	}

	tripEstimate := h.estimator.Estimate(ctx, req, result)
	insights := shield.Derive(req, result)
	readiness := shield.BuildReadiness(req, result, tripEstimate, insights)

	resp := models.TripAnalysisResponse{
		GeneratedAt: models.Timestamp(time.Now()),
		Origin:      origin,
		Destination: destination,
		Vehicle: models.VehicleSpec{
			Class:         models.VehicleClass(req.VehicleClass),
			Powertrain:    models.Powertrain(req.Powertrain),
			GrossWeightKg: req.GrossWeightKg,
			AxleCount:     req.AxleCount,
			EmissionClass: req.EmissionClass,
		},
		Preferences: models.TripPreferences{
			AvoidTolls:        req.AvoidTolls,
			ChannelPreference: models.ChannelPreference(req.ChannelPreference),
		},
		TripDate: input.TripDate,
		Route: models.RouteOverview{
			GeoJSON:             result.RouteGeoJSON,
			OverviewPolyline:    encodeOverview(dir),
			TotalDistanceMeters: result.TotalDistanceMeters,
			DurationSeconds:     dir.DurationSeconds,
			Provider:            dir.Provider,
		},
		Countries:          result.Countries,
		SectionTollNotices: result.SectionTollNotices,
		BorderCrossings:    result.BorderCrossings,
		InformationalOnly:  result.InformationalOnly,
		Estimate:           tripEstimate,
		Insights:           insights,
		Readiness:          readiness,
	}

	w.Header().Set("Cache-Control", "private, max-age=60")
	response.JSON(w, r, http.StatusOK, resp)
}

// resolveEndpoint turns a trip endpoint into a resolved place, geocoding
// the query form. Writes the error response and returns ok=false on failure.
func (h *TripHandler) resolveEndpoint(w http.ResponseWriter, r *http.Request, field string, point *models.Point, query string) (models.ResolvedPlace, bool) {
	if point != nil {
		return models.ResolvedPlace{
			Label: query,
			Point: *point,
		}, true
	}

	place, err := h.geocoding.Resolve(r.Context(), query)
	if err != nil {
		switch {
		case errors.Is(err, geocode.ErrNotFound):
			response.BadRequest(w, r, "could not resolve "+field, []models.FieldError{
				{Field: field + "Query", Message: "no matching place found"},
			})
		case errors.Is(err, geocode.ErrProviderUnavailable):
			response.ServiceUnavailable(w, r, "geocoding service is temporarily unavailable")
		default:
			h.logger.Error().Err(err).Str("field", field).Msg("geocoding failed")
			response.InternalError(w, r, "geocoding failed")
		}
		return models.ResolvedPlace{}, false
	}

	return models.ResolvedPlace{
		Label:       place.Label,
		CountryCode: place.CountryCode,
		Point:       models.Point{Lat: place.Lat, Lon: place.Lon},
	}, true
}

// writeRoutingError maps directions-provider errors onto problem responses.
func (h *TripHandler) writeRoutingError(w http.ResponseWriter, r *http.Request, err error) {
	switch {
	case errors.Is(err, routing.ErrInvalidCoordinates):
		response.BadRequest(w, r, "coordinates outside the routable area", nil)
	case errors.Is(err, routing.ErrNoRouteFound):
		response.BadRequest(w, r, "no drivable route found between the given points", nil)
	case errors.Is(err, routing.ErrRateLimitExceeded):
		response.TooManyRequests(w, r, "directions provider rate limit exceeded, try again shortly")
	case errors.Is(err, routing.ErrProviderUnavailable):
		response.ServiceUnavailable(w, r, "directions provider is temporarily unavailable")
	default:
		h.logger.Error().Err(err).Msg("directions request failed")
		response.InternalError(w, r, "directions request failed")
	}
}

// writeAnalysisError maps analyzer errors onto problem responses. A route
// that comes back without geometry or country metadata cannot be annotated,
// but that is a property of this request, not a server fault.
func (h *TripHandler) writeAnalysisError(w http.ResponseWriter, r *http.Request, err error) {
	switch {
	case errors.Is(err, analysis.ErrNoRouteFeature),
		errors.Is(err, analysis.ErrNoGeometry),
		errors.Is(err, analysis.ErrNoCountryInfo):
		h.logger.Warn().Err(err).Msg("directions response unusable for analysis")
		response.BadRequest(w, r, "the computed route carries no usable toll metadata", nil)
	default:
		h.logger.Error().Err(err).Msg("route analysis failed")
		response.InternalError(w, r, "route analysis failed")
	}
}

// maxOverviewPoints caps the overview polyline size. Long routes can carry
// tens of thousands of geometry points; the map overview does not need them.
const maxOverviewPoints = 512

// encodeOverview encodes the route geometry as a Google polyline for map
// rendering without shipping the full GeoJSON twice. Dense geometries are
// downsampled to maxOverviewPoints before encoding.
func encodeOverview(dir *routing.Directions) string {
	coords := make([]polyline.Coordinate, 0, len(dir.Geometry))
	for _, p := range dir.Geometry {
		coords = append(coords, polyline.Coordinate{Lat: p[1], Lon: p[0]})
	}
	if len(coords) > maxOverviewPoints {
		interval := polyline.Length(coords) / float64(maxOverviewPoints)
		coords = polyline.Sample(coords, interval)
	}
	return polyline.Encode(coords)
}
