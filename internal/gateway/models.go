package gateway

import "github.com/richxcame/mapir/pkg/mapir"

// PointRequest is a WGS84 position in a request body.
type PointRequest struct {
	Lng *float64 `json:"lng" binding:"required,gte=-180,lte=180"`
	Lat *float64 `json:"lat" binding:"required,gte=-90,lte=90"`
}

func (p PointRequest) point() mapir.Point {
	return mapir.Point{Lng: *p.Lng, Lat: *p.Lat}
}

func points(in []PointRequest) []mapir.Point {
	out := make([]mapir.Point, len(in))
	for i, p := range in {
		out[i] = p.point()
	}
	return out
}

// SearchRequest is the body of POST /maps/search.
type SearchRequest struct {
	Text         string        `json:"text" binding:"required"`
	Location     *PointRequest `json:"location" binding:"required"`
	Autocomplete bool          `json:"autocomplete"`
}

// ReverseQuery holds the query parameters of GET /maps/reverse.
type ReverseQuery struct {
	Lat    *float64 `form:"lat" binding:"required,gte=-90,lte=90"`
	Lng    *float64 `form:"lng" binding:"required,gte=-180,lte=180"`
	Digits string   `form:"digits" binding:"omitempty,oneof=fa en"`
}

// RouteOptionsRequest mirrors mapir.RouteOptions.
type RouteOptionsRequest struct {
	Alternatives *bool  `json:"alternatives"`
	Steps        *bool  `json:"steps"`
	Overview     string `json:"overview" binding:"omitempty,oneof=false full simplified"`
	Geometries   string `json:"geometries" binding:"omitempty,oneof=polyline polyline6 geojson"`
}

// RouteRequest is the body of POST /maps/route.
type RouteRequest struct {
	Locations []PointRequest       `json:"locations" binding:"required,min=2,dive"`
	Type      string               `json:"type" binding:"omitempty,oneof=car walking bicycle"`
	Options   *RouteOptionsRequest `json:"options"`
}

func (r RouteRequest) options() *mapir.RouteOptions {
	if r.Options == nil {
		return nil
	}
	return &mapir.RouteOptions{
		Alternatives: r.Options.Alternatives,
		Steps:        r.Options.Steps,
		Overview:     mapir.Overview(r.Options.Overview),
		Geometries:   mapir.Geometries(r.Options.Geometries),
	}
}

// StaticMapRequest is the body of POST /maps/static.
type StaticMapRequest struct {
	Locations []PointRequest `json:"locations" binding:"required,min=1,max=2,dive"`
	Width     int            `json:"width" binding:"gte=0"`
	Height    int            `json:"height" binding:"gte=0"`
	Zoom      int            `json:"zoom" binding:"gte=0"`
	Colors    []string       `json:"colors" binding:"max=2"`
	Labels    []string       `json:"labels" binding:"max=2"`
}

func (r StaticMapRequest) options() *mapir.StaticMapOptions {
	return &mapir.StaticMapOptions{
		Width:  r.Width,
		Height: r.Height,
		Zoom:   r.Zoom,
		Colors: r.Colors,
		Labels: r.Labels,
	}
}
