package mapir

import (
	"context"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const routeReply = `{
	"code": "Ok",
	"routes": [
		{
			"distance": 1520.4,
			"duration": 210.2,
			"weight": 210.2,
			"weight_name": "routability",
			"geometry": "o~lxEm}lyH",
			"legs": [
				{
					"distance": 1520.4,
					"duration": 210.2,
					"summary": "Azadi St.",
					"steps": [
						{
							"distance": 300,
							"duration": 40,
							"name": "Azadi St.",
							"mode": "driving",
							"driving_side": "right",
							"maneuver": {
								"location": [1, 2],
								"bearing_before": 0,
								"bearing_after": 90,
								"type": "depart"
							}
						}
					]
				}
			]
		}
	],
	"waypoints": [
		{"name": "Azadi St.", "location": [1, 2], "distance": 3.1, "hint": "h1"},
		{"name": "Enghelab St.", "location": [3, 4], "distance": 1.2, "hint": "h2"}
	]
}`

var twoPoints = []Point{{Lng: 1, Lat: 2}, {Lng: 3, Lat: 4}}

func TestRoute_BuildsPathAndDefaults(t *testing.T) {
	client, upstream := newTestClient(t, "application/json", routeReply)

	result, err := client.Route(context.Background(), twoPoints, "", nil)
	require.NoError(t, err)

	req := upstream.last(t)
	assert.Equal(t, http.MethodGet, req.Method)
	assert.Equal(t, "/routes/route/v1/driving/1,2;3,4", req.Path)
	assert.Equal(t, "alternatives=true&steps=true&overview=false", req.Raw)
	assert.Equal(t, "test-key", req.Header.Get("x-api-key"))
	assert.Equal(t, "application/json", req.Header.Get("content-type"))

	require.NotNil(t, result)
	assert.Equal(t, "Ok", result.Code)
	require.Len(t, result.Routes, 1)
	assert.Equal(t, 1520.4, result.Routes[0].Distance)
	assert.JSONEq(t, `"o~lxEm}lyH"`, string(result.Routes[0].Geometry))
	require.Len(t, result.Routes[0].Legs, 1)
	require.Len(t, result.Routes[0].Legs[0].Steps, 1)
	assert.Equal(t, "depart", result.Routes[0].Legs[0].Steps[0].Maneuver.Type)
	require.Len(t, result.Waypoints, 2)
	assert.Equal(t, []float64{3, 4}, result.Waypoints[1].Location)
}

func TestRoute_TypeSelectsPathSegment(t *testing.T) {
	tests := []struct {
		routeType RouteType
		segment   string
	}{
		{RouteCar, "route"},
		{RouteWalking, "walking"},
		{RouteBicycle, "bicycle"},
	}

	for _, tt := range tests {
		t.Run(string(tt.routeType), func(t *testing.T) {
			client, upstream := newTestClient(t, "application/json", routeReply)

			_, err := client.Route(context.Background(), twoPoints, tt.routeType, nil)
			require.NoError(t, err)
			assert.Equal(t, "/routes/"+tt.segment+"/v1/driving/1,2;3,4", upstream.last(t).Path)
		})
	}
}

func TestRoute_CallerOptionsOverrideDefaults(t *testing.T) {
	client, upstream := newTestClient(t, "application/json", routeReply)

	_, err := client.Route(context.Background(), twoPoints, RouteCar, &RouteOptions{Steps: Bool(false)})
	require.NoError(t, err)

	req := upstream.last(t)
	assert.Equal(t, "false", req.Query.Get("steps"))
	assert.Equal(t, "true", req.Query.Get("alternatives"))
	assert.Equal(t, "false", req.Query.Get("overview"))
	assert.False(t, req.Query.Has("geometries"))
}

func TestRoute_AllOptions(t *testing.T) {
	client, upstream := newTestClient(t, "application/json", routeReply)

	_, err := client.Route(context.Background(), append(twoPoints, Point{Lng: 5.5, Lat: 6.25}), RouteWalking, &RouteOptions{
		Alternatives: Bool(false),
		Steps:        Bool(true),
		Overview:     OverviewFull,
		Geometries:   GeometriesPolyline6,
	})
	require.NoError(t, err)

	req := upstream.last(t)
	assert.Equal(t, "/routes/walking/v1/driving/1,2;3,4;5.5,6.25", req.Path)
	assert.Equal(t, "alternatives=false&steps=true&overview=full&geometries=polyline6", req.Raw)
}

func TestRoute_RejectsInvalidInputWithoutSending(t *testing.T) {
	client, upstream := newTestClient(t, "application/json", routeReply)

	tests := []struct {
		name      string
		locations []Point
		routeType RouteType
		opts      *RouteOptions
	}{
		{"single point", twoPoints[:1], RouteCar, nil},
		{"no points", nil, RouteCar, nil},
		{"unknown type", twoPoints, RouteType("truck"), nil},
		{"bad point", []Point{{Lng: 1, Lat: 2}, {Lng: 3, Lat: 91}}, RouteCar, nil},
		{"bad overview", twoPoints, RouteCar, &RouteOptions{Overview: "partial"}},
		{"bad geometries", twoPoints, RouteCar, &RouteOptions{Geometries: "wkt"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result, err := client.Route(context.Background(), tt.locations, tt.routeType, tt.opts)
			assert.Nil(t, result)
			assertMapirError(t, err, KindInput)
		})
	}

	assert.Equal(t, 0, upstream.count())
}

func TestRoute_MissingCodeIsDecodeError(t *testing.T) {
	client, _ := newTestClient(t, "application/json", `{"routes":[],"waypoints":[]}`)

	result, err := client.Route(context.Background(), twoPoints, RouteCar, nil)
	assert.Nil(t, result)
	assert.ErrorIs(t, err, ErrDecode)
}

func TestRoutePath(t *testing.T) {
	got := routePath(twoPoints, RouteBicycle, &RouteOptions{Overview: OverviewSimplified})
	assert.Equal(t, "/routes/bicycle/v1/driving/1,2;3,4?alternatives=true&steps=true&overview=simplified", got)
}
