package gateway

import (
	"context"
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/richxcame/mapir/pkg/common"
	"github.com/richxcame/mapir/pkg/mapir"
	"github.com/richxcame/mapir/pkg/middleware"
	"github.com/richxcame/mapir/pkg/tracing"
)

// MapsAPI is the map.ir surface the gateway depends on; *mapir.Client implements it.
type MapsAPI interface {
	Search(ctx context.Context, text string, location mapir.Point, autocomplete bool) (*mapir.SearchResult, error)
	ReverseGeocode(ctx context.Context, location mapir.Point) (*mapir.ReverseResult, error)
	Route(ctx context.Context, locations []mapir.Point, routeType mapir.RouteType, opts *mapir.RouteOptions) (*mapir.RouteResponse, error)
	StaticMap(ctx context.Context, locations []mapir.Point, opts *mapir.StaticMapOptions) (*mapir.StaticMapImage, error)
}

// Handler exposes map.ir operations over HTTP
type Handler struct {
	maps MapsAPI
}

// NewHandler creates a new gateway handler
func NewHandler(maps MapsAPI) *Handler {
	return &Handler{maps: maps}
}

// RegisterRoutes registers the maps routes under rg
func (h *Handler) RegisterRoutes(rg *gin.RouterGroup) {
	maps := rg.Group("/maps")
	{
		maps.POST("/search", h.Search)
		maps.GET("/reverse", h.ReverseGeocode)
		maps.POST("/route", h.Route)
		maps.POST("/static", h.StaticMap)
	}
}

// Search handles place search and autocomplete
// @Summary Search places
// @Description Searches map.ir for places matching text near a location
// @Tags Maps
// @Accept json
// @Produce json
// @Param request body SearchRequest true "Search request"
// @Success 200 {object} common.Response
// @Failure 400 {object} common.Response
// @Failure 502 {object} common.Response
// @Failure 504 {object} common.Response
// @Router /api/v1/maps/search [post]
func (h *Handler) Search(c *gin.Context) {
	var req SearchRequest
	if !common.BindJSON(c, &req) {
		return
	}

	location := req.Location.point()
	middleware.AddSpanAttributes(c, tracing.LocationAttributes(location.Lng, location.Lat)...)

	result, err := h.maps.Search(c.Request.Context(), req.Text, location, req.Autocomplete)
	if common.HandleServiceError(c, toAppError(err), "search failed") {
		return
	}

	common.SuccessResponse(c, result)
}

// ReverseGeocode handles reverse geocoding
// @Summary Reverse geocode a point
// @Description Returns the address of a point; digits=fa renders plaque and postal code in Persian digits
// @Tags Maps
// @Produce json
// @Param lat query number true "Latitude"
// @Param lng query number true "Longitude"
// @Param digits query string false "fa or en"
// @Success 200 {object} common.Response
// @Failure 400 {object} common.Response
// @Failure 502 {object} common.Response
// @Router /api/v1/maps/reverse [get]
func (h *Handler) ReverseGeocode(c *gin.Context) {
	var query ReverseQuery
	if !common.BindQuery(c, &query) {
		return
	}

	location := mapir.Point{Lng: *query.Lng, Lat: *query.Lat}
	middleware.AddSpanAttributes(c, tracing.LocationAttributes(location.Lng, location.Lat)...)

	result, err := h.maps.ReverseGeocode(c.Request.Context(), location)
	if common.HandleServiceError(c, toAppError(err), "reverse geocode failed") {
		return
	}

	if query.Digits == "fa" {
		localized := *result
		localized.Plaque = mapir.FaDigits(localized.Plaque)
		localized.PostalCode = mapir.FaDigits(localized.PostalCode)
		result = &localized
	}

	common.SuccessResponse(c, result)
}

// Route handles route calculation
// @Summary Calculate a route
// @Description Routes through two or more points by car, walking or bicycle
// @Tags Maps
// @Accept json
// @Produce json
// @Param request body RouteRequest true "Route request"
// @Success 200 {object} common.Response
// @Failure 400 {object} common.Response
// @Failure 502 {object} common.Response
// @Router /api/v1/maps/route [post]
func (h *Handler) Route(c *gin.Context) {
	var req RouteRequest
	if !common.BindJSON(c, &req) {
		return
	}

	middleware.AddSpanAttributes(c, tracing.LocationCountKey.Int(len(req.Locations)))

	result, err := h.maps.Route(c.Request.Context(), points(req.Locations), mapir.RouteType(req.Type), req.options())
	if common.HandleServiceError(c, toAppError(err), "route failed") {
		return
	}

	common.SuccessResponse(c, result)
}

// StaticMap renders a static map image
// @Summary Render a static map
// @Description Returns an image with one marker per location (one or two)
// @Tags Maps
// @Accept json
// @Produce image/png
// @Param request body StaticMapRequest true "Static map request"
// @Success 200 {file} binary
// @Failure 400 {object} common.Response
// @Failure 502 {object} common.Response
// @Router /api/v1/maps/static [post]
func (h *Handler) StaticMap(c *gin.Context) {
	var req StaticMapRequest
	if !common.BindJSON(c, &req) {
		return
	}

	img, err := h.maps.StaticMap(c.Request.Context(), points(req.Locations), req.options())
	if common.HandleServiceError(c, toAppError(err), "static map failed") {
		return
	}

	contentType := img.ContentType
	if contentType == "" {
		contentType = "application/octet-stream"
	}
	c.Data(http.StatusOK, contentType, img.Data)
}

// toAppError maps client errors onto gateway responses: input errors are
// 400, upstream failures 502, and upstream deadlines 504.
func toAppError(err error) error {
	if err == nil {
		return nil
	}

	var mErr *mapir.Error
	if !errors.As(err, &mErr) {
		return common.NewInternalError("unexpected map.ir client error", err)
	}

	switch mErr.Kind {
	case mapir.KindInput:
		return common.NewBadRequestError(mErr.Err.Error(), err)
	case mapir.KindStatus:
		return common.NewUpstreamStatusError("map.ir rejected the request", mErr.StatusCode(), err)
	case mapir.KindDecode:
		return common.NewUpstreamDecodeError("map.ir returned an unreadable response", err)
	default:
		if errors.Is(err, context.DeadlineExceeded) {
			return common.NewUpstreamTimeoutError("map.ir did not respond in time", err)
		}
		return common.NewUpstreamUnavailableError("map.ir is unreachable", err)
	}
}
