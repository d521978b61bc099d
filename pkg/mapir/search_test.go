package mapir

import (
	"context"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const searchReply = `{
	"odata.count": 2,
	"request_id": 9911,
	"value": [
		{
			"Address": "Tehran, Azadi Sq.",
			"City": "Tehran",
			"Coordinate": {"lat": 35.6997, "lon": 51.3380},
			"FClass": "square",
			"Id": "abc-1",
			"Province": "Tehran",
			"Text": "Azadi",
			"Title": "Azadi Square",
			"Type": "poi",
			"Extra": "ignored"
		},
		{"Title": "Azadi Stadium", "Coordinate": {"lat": 35.72, "lon": 51.27}}
	]
}`

func TestSearch_BuildsPostRequest(t *testing.T) {
	client, upstream := newTestClient(t, "application/json", searchReply)

	result, err := client.Search(context.Background(), "azadi", Point{Lng: 51.338, Lat: 35.699}, false)
	require.NoError(t, err)

	req := upstream.last(t)
	assert.Equal(t, http.MethodPost, req.Method)
	assert.Equal(t, "/search", req.Path)
	assert.Equal(t, "test-key", req.Header.Get("x-api-key"))
	assert.Equal(t, "application/json", req.Header.Get("content-type"))

	assert.JSONEq(t, `{
		"text": "azadi",
		"returnid": true,
		"location": {"type": "Point", "coordinates": [51.338, 35.699]}
	}`, string(req.Body))

	require.NotNil(t, result)
	assert.Equal(t, 2, result.Count)
	assert.Equal(t, int64(9911), result.RequestID)
	require.Len(t, result.Value, 2)
	assert.Equal(t, "abc-1", result.Value[0].ID)
	assert.Equal(t, "Azadi Square", result.Value[0].Title)
	assert.Equal(t, LatLon{Lat: 35.6997, Lon: 51.3380}, result.Value[0].Coordinate)
	assert.Equal(t, "Azadi Stadium", result.Value[1].Title)
}

func TestSearch_AutocompleteUsesItsOwnEndpoint(t *testing.T) {
	client, upstream := newTestClient(t, "application/json", `{"odata.count":0,"value":[]}`)

	result, err := client.Search(context.Background(), "aza", Point{Lng: 51, Lat: 35}, true)
	require.NoError(t, err)
	assert.Equal(t, 0, result.Count)

	req := upstream.last(t)
	assert.Equal(t, "/search/autocomplete", req.Path)
	assert.Equal(t, "aza", decodeBody(t, req.Body)["text"])
}

func TestSearch_RejectsInvalidInputWithoutSending(t *testing.T) {
	client, upstream := newTestClient(t, "application/json", searchReply)

	tests := []struct {
		name     string
		text     string
		location Point
	}{
		{"empty text", "", Point{Lng: 51, Lat: 35}},
		{"blank text", "   ", Point{Lng: 51, Lat: 35}},
		{"latitude out of range", "azadi", Point{Lng: 51, Lat: 95}},
		{"longitude out of range", "azadi", Point{Lng: -181, Lat: 35}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result, err := client.Search(context.Background(), tt.text, tt.location, false)
			assert.Nil(t, result)
			assert.ErrorIs(t, err, ErrInvalidInput)
			assertMapirError(t, err, KindInput)
		})
	}

	assert.Equal(t, 0, upstream.count())
}
