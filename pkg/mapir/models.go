package mapir

import (
	"encoding/json"
	"strconv"
)

// Point is a WGS84 position in longitude/latitude order.
type Point struct {
	Lng float64 `json:"lng" validate:"gte=-180,lte=180"`
	Lat float64 `json:"lat" validate:"gte=-90,lte=90"`
}

// GeoJSON returns the point as a GeoJSON Point (coordinates are [lng, lat]).
func (p Point) GeoJSON() GeoJSONPoint {
	return GeoJSONPoint{
		Type:        "Point",
		Coordinates: []float64{p.Lng, p.Lat},
	}
}

// String formats the point as "lng,lat", the form used in route paths and markers.
func (p Point) String() string {
	return formatFloat(p.Lng) + "," + formatFloat(p.Lat)
}

// GeoJSONPoint is a GeoJSON geometry of type Point.
type GeoJSONPoint struct {
	Type        string    `json:"type" validate:"omitempty,eq=Point"`
	Coordinates []float64 `json:"coordinates" validate:"omitempty,len=2"`
}

// Point converts the geometry back to a Point. ok is false when coordinates are missing.
func (g GeoJSONPoint) Point() (p Point, ok bool) {
	if len(g.Coordinates) != 2 {
		return Point{}, false
	}
	return Point{Lng: g.Coordinates[0], Lat: g.Coordinates[1]}, true
}

// LatLon is the coordinate form used by search results.
type LatLon struct {
	Lat float64 `json:"lat"`
	Lon float64 `json:"lon"`
}

// ========================================
// Search
// ========================================

type searchPayload struct {
	Text     string       `json:"text"`
	ReturnID bool         `json:"returnid"`
	Location GeoJSONPoint `json:"location"`
}

// SearchResult is the reply of /search and /search/autocomplete.
type SearchResult struct {
	Count     int     `json:"odata.count"`
	RequestID int64   `json:"request_id"`
	Value     []Place `json:"value"`
}

// Place is a single search match.
type Place struct {
	Address    string `json:"Address"`
	City       string `json:"City"`
	Coordinate LatLon `json:"Coordinate"`
	FClass     string `json:"FClass"`
	ID         string `json:"Id"`
	Province   string `json:"Province"`
	Text       string `json:"Text"`
	Title      string `json:"Title"`
	Type       string `json:"Type"`
}

// ========================================
// Reverse geocode
// ========================================

// ReverseResult holds the address components of a reverse geocoded point.
type ReverseResult struct {
	Address        string       `json:"address"`
	AddressCompact string       `json:"address_compact"`
	City           string       `json:"city"`
	Country        string       `json:"country"`
	County         string       `json:"county"`
	District       string       `json:"district"`
	Geom           GeoJSONPoint `json:"geom"`
	Last           string       `json:"last"`
	Name           string       `json:"name"`
	Neighbourhood  string       `json:"neighbourhood"`
	Penult         string       `json:"penult"`
	Plaque         string       `json:"plaque"`
	POI            string       `json:"poi"`
	PostalAddress  string       `json:"postal_address"`
	PostalCode     string       `json:"postal_code"`
	Primary        string       `json:"primary"`
	Province       string       `json:"province"`
	Region         string       `json:"region"`
	RuralDistrict  string       `json:"rural_district"`
	Village        string       `json:"village"`
}

// ========================================
// Route
// ========================================

// RouteResponse is an OSRM-style route reply.
type RouteResponse struct {
	Code      string     `json:"code" validate:"required"`
	Message   string     `json:"message,omitempty"`
	Routes    []Route    `json:"routes"`
	Waypoints []Waypoint `json:"waypoints"`
}

// Route is one route alternative.
type Route struct {
	Distance   float64         `json:"distance"`
	Duration   float64         `json:"duration"`
	Weight     float64         `json:"weight"`
	WeightName string          `json:"weight_name"`
	Geometry   json.RawMessage `json:"geometry,omitempty"`
	Legs       []RouteLeg      `json:"legs"`
}

// RouteLeg is the part of a route between two consecutive waypoints.
type RouteLeg struct {
	Distance float64     `json:"distance"`
	Duration float64     `json:"duration"`
	Weight   float64     `json:"weight"`
	Summary  string      `json:"summary"`
	Steps    []RouteStep `json:"steps"`
}

// RouteStep is a single maneuver along a leg.
type RouteStep struct {
	Distance    float64         `json:"distance"`
	Duration    float64         `json:"duration"`
	Weight      float64         `json:"weight"`
	Name        string          `json:"name"`
	Mode        string          `json:"mode"`
	DrivingSide string          `json:"driving_side,omitempty"`
	Geometry    json.RawMessage `json:"geometry,omitempty"`
	Maneuver    StepManeuver    `json:"maneuver"`
}

// StepManeuver describes the turn at the start of a step.
type StepManeuver struct {
	Location      []float64 `json:"location"`
	BearingBefore float64   `json:"bearing_before"`
	BearingAfter  float64   `json:"bearing_after"`
	Type          string    `json:"type"`
	Modifier      string    `json:"modifier,omitempty"`
	Exit          int       `json:"exit,omitempty"`
}

// Waypoint is an input location snapped to the road network.
type Waypoint struct {
	Name     string    `json:"name"`
	Location []float64 `json:"location"`
	Distance float64   `json:"distance"`
	Hint     string    `json:"hint,omitempty"`
}

// ========================================
// Static map
// ========================================

// StaticMapImage is the rendered image as returned by the service.
type StaticMapImage struct {
	ContentType string
	Data        []byte
}

func formatFloat(f float64) string {
	return strconv.FormatFloat(f, 'f', -1, 64)
}
