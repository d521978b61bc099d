package mapir

import (
	"context"
	"net/http"
	"strings"

	"github.com/richxcame/mapir/pkg/tracing"
)

const (
	searchEndpoint       = "/search"
	autocompleteEndpoint = "/search/autocomplete"
)

type searchInput struct {
	Text     string `validate:"required"`
	Location Point
}

// Search looks up places matching text, biased towards location. With
// autocomplete set the query is treated as partial input.
func (c *Client) Search(ctx context.Context, text string, location Point, autocomplete bool) (*SearchResult, error) {
	op := "search"
	path := searchEndpoint
	if autocomplete {
		op = "autocomplete"
		path = autocompleteEndpoint
	}

	if err := c.check(op, searchInput{Text: strings.TrimSpace(text), Location: location}); err != nil {
		return nil, c.invalid(ctx, op, err)
	}

	payload := searchPayload{
		Text:     text,
		ReturnID: true,
		Location: location.GeoJSON(),
	}

	resp, err := c.call(ctx, op, http.MethodPost, path, payload, true,
		tracing.LocationAttributes(location.Lng, location.Lat)...)
	if err != nil {
		return nil, err
	}

	result, err := decodeJSON[SearchResult](c, op, resp.Body)
	return finish(op, result, err)
}
