package openrouteservice

// orsRequest represents the ORS directions API request body for the GeoJSON
// endpoint. Extras request the per-coordinate country and road-category
// annotations the analysis pipeline consumes.
type orsRequest struct {
	Coordinates  [][]float64  `json:"coordinates"`
	ExtraInfo    []string     `json:"extra_info,omitempty"`
	Options      *orsOptions  `json:"options,omitempty"`
	Instructions bool         `json:"instructions"`
	Units        string       `json:"units"`
	Language     string       `json:"language"`
}

// orsOptions carries route preferences.
type orsOptions struct {
	AvoidFeatures []string `json:"avoid_features,omitempty"`
}

// orsGeoJSONResponse represents the ORS GeoJSON directions response.
type orsGeoJSONResponse struct {
	Features []orsFeature `json:"features"`
	BBox     []float64    `json:"bbox,omitempty"`
	Metadata *metadata    `json:"metadata,omitempty"`
}

// metadata contains response metadata.
type metadata struct {
	Attribution string `json:"attribution,omitempty"`
	Service     string `json:"service,omitempty"`
	Timestamp   int64  `json:"timestamp,omitempty"`
}

// orsFeature is one route feature.
type orsFeature struct {
	Geometry   orsGeometry   `json:"geometry"`
	Properties orsProperties `json:"properties"`
	BBox       []float64     `json:"bbox,omitempty"`
}

// orsGeometry is the route LineString in [lon, lat] order.
type orsGeometry struct {
	Type        string      `json:"type"`
	Coordinates [][]float64 `json:"coordinates"`
}

// orsProperties carries the route summary and extras.
type orsProperties struct {
	Summary *routeSummary       `json:"summary,omitempty"`
	Extras  map[string]orsExtra `json:"extras,omitempty"`
}

// routeSummary contains summary information for a route.
type routeSummary struct {
	Distance float64 `json:"distance"` // Distance in meters
	Duration float64 `json:"duration"` // Duration in seconds
}

// orsExtra contains one extra-info block: index ranges tagged with a value.
// Each values entry is [startIndex, endIndex, value].
type orsExtra struct {
	Values  [][]int   `json:"values,omitempty"`
	Summary []summary `json:"summary,omitempty"`
}

// summary provides summary statistics for extras.
type summary struct {
	Value    float64 `json:"value"`
	Distance float64 `json:"distance"`
	Amount   float64 `json:"amount"`
}

// orsErrorResponse represents an error response from ORS.
type orsErrorResponse struct {
	Error struct {
		Code    int    `json:"code"`
		Message string `json:"message"`
	} `json:"error"`
	Info string `json:"info,omitempty"`
}

// ORS error codes for error mapping.
const (
	orsErrorCodeNotFound     = 2009 // Route not found
	orsErrorCodeInvalidParam = 2003 // Invalid parameter
)
