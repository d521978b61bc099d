package mapir

import (
	"context"
	"fmt"
	"net/http"
	"strconv"
	"strings"

	"github.com/richxcame/mapir/pkg/tracing"
)

const staticEndpoint = "/static"

const (
	DefaultStaticWidth  = 700
	DefaultStaticHeight = 500
	DefaultStaticZoom   = 13
	DefaultMarkerColor  = "red"
)

// StaticMapOptions tune the rendered image. Zero values take the defaults.
type StaticMapOptions struct {
	Width  int
	Height int
	Zoom   int
	// Colors holds one color per marker; missing entries are red.
	Colors []string
	// Labels holds an optional label per marker.
	Labels []string
}

type staticMapInput struct {
	Locations []Point  `validate:"min=1,max=2,dive"`
	Width     int      `validate:"gt=0"`
	Height    int      `validate:"gt=0"`
	Zoom      int      `validate:"gte=0"`
	Colors    []string `validate:"max=2"`
	Labels    []string `validate:"max=2"`
}

// StaticMap renders a map image with one marker per location (one or two).
func (c *Client) StaticMap(ctx context.Context, locations []Point, opts *StaticMapOptions) (*StaticMapImage, error) {
	const op = "static_map"

	in := staticMapInput{
		Locations: locations,
		Width:     DefaultStaticWidth,
		Height:    DefaultStaticHeight,
		Zoom:      DefaultStaticZoom,
	}
	if opts != nil {
		if opts.Width != 0 {
			in.Width = opts.Width
		}
		if opts.Height != 0 {
			in.Height = opts.Height
		}
		if opts.Zoom != 0 {
			in.Zoom = opts.Zoom
		}
		in.Colors = opts.Colors
		in.Labels = opts.Labels
	}

	if err := c.check(op, in); err != nil {
		return nil, c.invalid(ctx, op, err)
	}

	path := NewQuery().
		Set("markers", markers(in.Locations, in.Colors, in.Labels)).
		Set("width", strconv.Itoa(in.Width)).
		Set("height", strconv.Itoa(in.Height)).
		Set("zoom_level", strconv.Itoa(in.Zoom)).
		AppendTo(staticEndpoint, CleanStrict)

	resp, err := c.call(ctx, op, http.MethodGet, path, nil, false,
		tracing.LocationCountKey.Int(len(locations)))
	if err != nil {
		return nil, err
	}

	if len(resp.Body) == 0 {
		return finish[StaticMapImage](op, nil, decodeError(op, fmt.Errorf("empty image")))
	}

	return finish(op, &StaticMapImage{
		ContentType: resp.ContentType(),
		Data:        resp.Body,
	}, nil)
}

// markers encodes one "color:{c}|{lng},{lat}[|{label}]" descriptor per
// location, comma separated.
func markers(locations []Point, colors, labels []string) string {
	descriptors := make([]string, len(locations))
	for i, loc := range locations {
		color := DefaultMarkerColor
		if i < len(colors) && colors[i] != "" {
			color = colors[i]
		}

		parts := []string{"color:" + color, loc.String()}
		if i < len(labels) && labels[i] != "" {
			parts = append(parts, labels[i])
		}
		descriptors[i] = strings.Join(parts, "|")
	}
	return strings.Join(descriptors, ",")
}
