package handler_test

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/paulmach/orb"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tollroute/tollroute/internal/analysis"
	"github.com/tollroute/tollroute/internal/api/handler"
	"github.com/tollroute/tollroute/internal/api/models"
	"github.com/tollroute/tollroute/internal/estimate"
	"github.com/tollroute/tollroute/internal/geocode"
	"github.com/tollroute/tollroute/internal/pricing"
	"github.com/tollroute/tollroute/internal/routing"
)

type stubProvider struct {
	directions *routing.Directions
	err        error
}

func (p *stubProvider) GetDirections(_ context.Context, _ routing.DirectionsRequest) (*routing.Directions, error) {
	if p.err != nil {
		return nil, p.err
	}
	return p.directions, nil
}

func (p *stubProvider) Name() string { return "stub" }

type stubGeocoder struct {
	place *geocode.Place
	err   error
}

func (g *stubGeocoder) Resolve(_ context.Context, _ string) (*geocode.Place, error) {
	if g.err != nil {
		return nil, g.err
	}
	return g.place, nil
}

func austrianDirections() *routing.Directions {
	return &routing.Directions{
		Geometry: orb.LineString{
			{16.37208, 48.20817},
			{15.8, 47.6},
			{15.44954, 47.07083},
		},
		DistanceMeters:  195340.2,
		DurationSeconds: 7201.5,
		CountryInfo:     []routing.ExtraRange{{Start: 0, End: 2, Value: 11}},
		WayCategory:     []routing.ExtraRange{{Start: 0, End: 2, Value: 1}},
		Provider:        "openrouteservice",
	}
}

func newTripHandler(provider routing.Provider, resolver geocode.Resolver) *handler.TripHandler {
	logger := zerolog.New(io.Discard)
	pricingService := pricing.NewService(pricing.ServiceConfig{
		Repository: pricing.NewMemoryRepository(),
		Logger:     logger,
	})
	return handler.NewTripHandler(handler.TripHandlerConfig{
		Routing:   routing.NewService(routing.ServiceConfig{Provider: provider, Logger: logger}),
		Geocoding: geocode.NewService(geocode.ServiceConfig{Resolver: resolver, Logger: logger}),
		Analyzer:  analysis.NewAnalyzer(logger),
		Estimator: estimate.NewEstimator(pricingService, logger),
		Logger:    logger,
	})
}

func analyzeRequest(t *testing.T, h *handler.TripHandler, input models.TripAnalyzeRequest) *httptest.ResponseRecorder {
	t.Helper()
	body, err := json.Marshal(input)
	require.NoError(t, err)

	req := httptest.NewRequest(http.MethodPost, "/v1/trips:analyze", bytes.NewReader(body))
	w := httptest.NewRecorder()
	h.AnalyzeTrip(w, req)
	return w
}

func coordinateInput() models.TripAnalyzeRequest {
	return models.TripAnalyzeRequest{
		Origin:      &models.Point{Lat: 48.20817, Lon: 16.37208},
		Destination: &models.Point{Lat: 47.07083, Lon: 15.44954},
	}
}

func TestAnalyzeTrip_Success(t *testing.T) {
	h := newTripHandler(&stubProvider{directions: austrianDirections()}, &stubGeocoder{})

	w := analyzeRequest(t, h, coordinateInput())

	assert.Equal(t, http.StatusOK, w.Code)
	assert.NotEmpty(t, w.Header().Get("Cache-Control"))

	var resp models.TripAnalysisResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))

	require.Len(t, resp.Countries, 1)
	assert.Equal(t, "AT", resp.Countries[0].CountryCode)
	assert.True(t, resp.Countries[0].RequiresVignette)
	assert.Equal(t, "openrouteservice", resp.Route.Provider)
	assert.InDelta(t, 195340.2, resp.Route.TotalDistanceMeters, 0.1)
	assert.NotEmpty(t, resp.Route.OverviewPolyline)
	assert.NotNil(t, resp.Estimate)
	assert.NotNil(t, resp.Readiness)
	assert.True(t, resp.InformationalOnly)
	assert.Empty(t, resp.BorderCrossings)
}

func TestAnalyzeTrip_BorderCrossings(t *testing.T) {
	dir := austrianDirections()
	dir.CountryInfo = []routing.ExtraRange{
		{Start: 0, End: 1, Value: 11}, // Austria
		{Start: 1, End: 2, Value: 74}, // Germany
	}

	h := newTripHandler(&stubProvider{directions: dir}, &stubGeocoder{})

	w := analyzeRequest(t, h, coordinateInput())
	assert.Equal(t, http.StatusOK, w.Code)

	var resp models.TripAnalysisResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))

	require.Len(t, resp.BorderCrossings, 1)
	assert.Equal(t, "AT", resp.BorderCrossings[0].FromCountryCode)
	assert.Equal(t, "DE", resp.BorderCrossings[0].ToCountryCode)
	assert.True(t, resp.InformationalOnly)
}

func TestAnalyzeTrip_UnusableRouteData(t *testing.T) {
	// A route without countryinfo extras cannot be annotated; this is a
	// request-level failure, not a server fault.
	dir := austrianDirections()
	dir.CountryInfo = nil

	h := newTripHandler(&stubProvider{directions: dir}, &stubGeocoder{})

	w := analyzeRequest(t, h, coordinateInput())

	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Contains(t, w.Body.String(), "toll metadata")
}

func TestAnalyzeTrip_InvalidBody(t *testing.T) {
	h := newTripHandler(&stubProvider{directions: austrianDirections()}, &stubGeocoder{})

	req := httptest.NewRequest(http.MethodPost, "/v1/trips:analyze", bytes.NewReader([]byte("{not json")))
	w := httptest.NewRecorder()
	h.AnalyzeTrip(w, req)

	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestAnalyzeTrip_MissingEndpoints(t *testing.T) {
	h := newTripHandler(&stubProvider{directions: austrianDirections()}, &stubGeocoder{})

	w := analyzeRequest(t, h, models.TripAnalyzeRequest{})

	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Contains(t, w.Body.String(), "origin")
}

func TestAnalyzeTrip_GeocodeNotFound(t *testing.T) {
	h := newTripHandler(
		&stubProvider{directions: austrianDirections()},
		&stubGeocoder{err: geocode.ErrNotFound},
	)

	w := analyzeRequest(t, h, models.TripAnalyzeRequest{
		OriginQuery:      "nowhereville",
		DestinationQuery: "Graz",
	})

	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Contains(t, w.Body.String(), "originQuery")
}

func TestAnalyzeTrip_GeocodeUnavailable(t *testing.T) {
	h := newTripHandler(
		&stubProvider{directions: austrianDirections()},
		&stubGeocoder{err: geocode.ErrProviderUnavailable},
	)

	w := analyzeRequest(t, h, models.TripAnalyzeRequest{
		OriginQuery:      "Vienna",
		DestinationQuery: "Graz",
	})

	assert.Equal(t, http.StatusServiceUnavailable, w.Code)
}

func TestAnalyzeTrip_RoutingErrors(t *testing.T) {
	tests := []struct {
		name       string
		err        error
		wantStatus int
	}{
		{"no route", routing.ErrNoRouteFound, http.StatusBadRequest},
		{"rate limited", routing.ErrRateLimitExceeded, http.StatusTooManyRequests},
		{"provider down", routing.ErrProviderUnavailable, http.StatusServiceUnavailable},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			h := newTripHandler(&stubProvider{err: &routing.Error{
				Provider: "stub",
				Code:     "TEST",
				Message:  "test error",
				Err:      tt.err,
			}}, &stubGeocoder{})

			w := analyzeRequest(t, h, coordinateInput())
			assert.Equal(t, tt.wantStatus, w.Code)
		})
	}
}

func TestAnalyzeTrip_GeocodedLabelsFeedAnalysis(t *testing.T) {
	// A destination resolved to London should surface the congestion
	// charge advisory produced by the city rules.
	dir := austrianDirections()
	dir.CountryInfo = []routing.ExtraRange{{Start: 0, End: 2, Value: 213}}

	h := newTripHandler(&stubProvider{directions: dir}, &stubGeocoder{
		place: &geocode.Place{Label: "London, England", CountryCode: "GB", Lat: 51.5, Lon: -0.12},
	})

	w := analyzeRequest(t, h, models.TripAnalyzeRequest{
		OriginQuery:      "London",
		DestinationQuery: "London",
	})

	assert.Equal(t, http.StatusOK, w.Code)

	var resp models.TripAnalysisResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))

	require.Len(t, resp.Countries, 1)
	assert.Equal(t, "GB", resp.Countries[0].CountryCode)

	found := false
	for _, notice := range resp.Countries[0].Notices {
		if strings.Contains(notice, "Congestion Charge") {
			found = true
		}
	}
	assert.True(t, found, "expected a congestion charge notice, got %v", resp.Countries[0].Notices)
}
