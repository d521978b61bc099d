package mapir

import (
	"context"
	"net/http"

	"github.com/richxcame/mapir/pkg/tracing"
)

const reverseEndpoint = "/reverse"

type reverseInput struct {
	Location Point
}

// ReverseGeocode resolves location to its address components.
func (c *Client) ReverseGeocode(ctx context.Context, location Point) (*ReverseResult, error) {
	const op = "reverse"

	if err := c.check(op, reverseInput{Location: location}); err != nil {
		return nil, c.invalid(ctx, op, err)
	}

	// Coordinates go in as strings so a zero axis is not cleaned away.
	path := NewQuery().
		Set("lat", formatFloat(location.Lat)).
		Set("lon", formatFloat(location.Lng)).
		AppendTo(reverseEndpoint, CleanStrict)

	resp, err := c.call(ctx, op, http.MethodGet, path, nil, true,
		tracing.LocationAttributes(location.Lng, location.Lat)...)
	if err != nil {
		return nil, err
	}

	result, err := decodeJSON[ReverseResult](c, op, resp.Body)
	return finish(op, result, err)
}
