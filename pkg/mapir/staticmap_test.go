package mapir

import (
	"context"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var pngBytes = "\x89PNG\r\n\x1a\nfake"

func TestStaticMap_SingleMarkerWithColor(t *testing.T) {
	client, upstream := newTestClient(t, "image/png", pngBytes)

	img, err := client.StaticMap(context.Background(), []Point{{Lng: 10, Lat: 20}}, &StaticMapOptions{Colors: []string{"blue"}})
	require.NoError(t, err)

	req := upstream.last(t)
	assert.Equal(t, http.MethodGet, req.Method)
	assert.Equal(t, "/static", req.Path)
	assert.Equal(t, "color:blue|10,20", req.Query.Get("markers"))
	assert.Equal(t, "700", req.Query.Get("width"))
	assert.Equal(t, "500", req.Query.Get("height"))
	assert.Equal(t, "13", req.Query.Get("zoom_level"))
	assert.Equal(t, "test-key", req.Header.Get("x-api-key"))
	assert.Empty(t, req.Header.Get("content-type"))

	require.NotNil(t, img)
	assert.Equal(t, "image/png", img.ContentType)
	assert.Equal(t, []byte(pngBytes), img.Data)
}

func TestStaticMap_TwoMarkersWithLabels(t *testing.T) {
	client, upstream := newTestClient(t, "image/png", pngBytes)

	_, err := client.StaticMap(context.Background(),
		[]Point{{Lng: 51.1, Lat: 35.1}, {Lng: 51.2, Lat: 35.2}},
		&StaticMapOptions{Labels: []string{"A", "B"}, Width: 300, Height: 200, Zoom: 15},
	)
	require.NoError(t, err)

	req := upstream.last(t)
	assert.Equal(t, "color:red|51.1,35.1|A,color:red|51.2,35.2|B", req.Query.Get("markers"))
	assert.Equal(t, "300", req.Query.Get("width"))
	assert.Equal(t, "200", req.Query.Get("height"))
	assert.Equal(t, "15", req.Query.Get("zoom_level"))
}

func TestStaticMap_RejectsBadInput(t *testing.T) {
	client, upstream := newTestClient(t, "image/png", pngBytes)
	three := []Point{{Lng: 1, Lat: 1}, {Lng: 2, Lat: 2}, {Lng: 3, Lat: 3}}

	tests := []struct {
		name      string
		locations []Point
		opts      *StaticMapOptions
	}{
		{"no points", nil, nil},
		{"three points", three, nil},
		{"negative width", three[:1], &StaticMapOptions{Width: -1}},
		{"negative zoom", three[:1], &StaticMapOptions{Zoom: -2}},
		{"too many colors", three[:1], &StaticMapOptions{Colors: []string{"a", "b", "c"}}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			img, err := client.StaticMap(context.Background(), tt.locations, tt.opts)
			assert.Nil(t, img)
			assert.ErrorIs(t, err, ErrInvalidInput)
		})
	}

	assert.Equal(t, 0, upstream.count())
}

func TestStaticMap_EmptyBodyIsDecodeError(t *testing.T) {
	client, _ := newTestClient(t, "image/png", "")

	img, err := client.StaticMap(context.Background(), []Point{{Lng: 1, Lat: 1}}, nil)
	assert.Nil(t, img)
	assert.ErrorIs(t, err, ErrDecode)
}

func TestMarkers(t *testing.T) {
	tests := []struct {
		name      string
		locations []Point
		colors    []string
		labels    []string
		want      string
	}{
		{"defaults", []Point{{Lng: 1, Lat: 2}}, nil, nil, "color:red|1,2"},
		{"second color missing", []Point{{Lng: 1, Lat: 2}, {Lng: 3, Lat: 4}}, []string{"blue"}, nil, "color:blue|1,2,color:red|3,4"},
		{"one label", []Point{{Lng: 1, Lat: 2}, {Lng: 3, Lat: 4}}, nil, []string{"", "B"}, "color:red|1,2,color:red|3,4|B"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, markers(tt.locations, tt.colors, tt.labels))
		})
	}
}
