package mapir

import (
	"context"
	"net/http"
	"strings"

	"github.com/richxcame/mapir/pkg/tracing"
)

// RouteType selects the routing profile.
type RouteType string

const (
	RouteCar     RouteType = "car"
	RouteWalking RouteType = "walking"
	RouteBicycle RouteType = "bicycle"
)

// path segments per profile; car uses the generic "route" engine
var routeSegments = map[RouteType]string{
	RouteCar:     "route",
	RouteWalking: "walking",
	RouteBicycle: "bicycle",
}

// Overview controls the overview geometry of each route.
type Overview string

const (
	OverviewFalse      Overview = "false"
	OverviewFull       Overview = "full"
	OverviewSimplified Overview = "simplified"
)

// Geometries selects the geometry encoding.
type Geometries string

const (
	GeometriesPolyline  Geometries = "polyline"
	GeometriesPolyline6 Geometries = "polyline6"
	GeometriesGeoJSON   Geometries = "geojson"
)

// RouteOptions override the route defaults. Nil and empty fields keep the
// default: alternatives=true, steps=true, overview=false, no geometries.
type RouteOptions struct {
	Alternatives *bool
	Steps        *bool
	Overview     Overview
	Geometries   Geometries
}

// Bool returns a pointer to b, for RouteOptions fields.
func Bool(b bool) *bool {
	return &b
}

type routeInput struct {
	Locations  []Point    `validate:"min=2,dive"`
	Type       RouteType  `validate:"oneof=car walking bicycle"`
	Overview   Overview   `validate:"omitempty,oneof=false full simplified"`
	Geometries Geometries `validate:"omitempty,oneof=polyline polyline6 geojson"`
}

// Route computes a route through locations in order. An empty routeType means
// RouteCar; opts may be nil.
func (c *Client) Route(ctx context.Context, locations []Point, routeType RouteType, opts *RouteOptions) (*RouteResponse, error) {
	const op = "route"

	if routeType == "" {
		routeType = RouteCar
	}
	if opts == nil {
		opts = &RouteOptions{}
	}

	if err := c.check(op, routeInput{
		Locations:  locations,
		Type:       routeType,
		Overview:   opts.Overview,
		Geometries: opts.Geometries,
	}); err != nil {
		return nil, c.invalid(ctx, op, err)
	}

	resp, err := c.call(ctx, op, http.MethodGet, routePath(locations, routeType, opts), nil, true,
		tracing.LocationCountKey.Int(len(locations)))
	if err != nil {
		return nil, err
	}

	result, err := decodeJSON[RouteResponse](c, op, resp.Body)
	return finish(op, result, err)
}

// routePath builds /routes/{segment}/v1/driving/{lng,lat;...}?{options}.
func routePath(locations []Point, routeType RouteType, opts *RouteOptions) string {
	pairs := make([]string, len(locations))
	for i, loc := range locations {
		pairs[i] = loc.String()
	}

	path := "/routes/" + routeSegments[routeType] + "/v1/driving/" + strings.Join(pairs, ";")
	return mergeRouteOptions(opts).AppendTo(path, CleanPresent)
}

// mergeRouteOptions lays caller options over the defaults. Present-mode
// encoding keeps explicit false values.
func mergeRouteOptions(opts *RouteOptions) *Query {
	alternatives, steps, overview := true, true, OverviewFalse
	if opts.Alternatives != nil {
		alternatives = *opts.Alternatives
	}
	if opts.Steps != nil {
		steps = *opts.Steps
	}
	if opts.Overview != "" {
		overview = opts.Overview
	}

	return NewQuery().
		Set("alternatives", alternatives).
		Set("steps", steps).
		Set("overview", overview).
		Set("geometries", opts.Geometries)
}
