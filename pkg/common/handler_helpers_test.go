package common_test

import (
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/richxcame/mapir/pkg/common"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func init() {
	gin.SetMode(gin.TestMode)
}

func decodeResponse(t *testing.T, w *httptest.ResponseRecorder) common.Response {
	t.Helper()
	var resp common.Response
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	return resp
}

func TestHandleServiceError(t *testing.T) {
	tests := []struct {
		name            string
		err             error
		fallbackMsg     string
		expectHandled   bool
		expectStatus    int
		expectErrorCode string
		expectContains  string
	}{
		{
			name:          "nil error returns false",
			err:           nil,
			fallbackMsg:   "failed",
			expectHandled: false,
		},
		{
			name:            "bad request AppError",
			err:             common.NewBadRequestError("text is required", nil),
			fallbackMsg:     "failed",
			expectHandled:   true,
			expectStatus:    http.StatusBadRequest,
			expectErrorCode: common.CodeInvalidInput,
			expectContains:  "text is required",
		},
		{
			name:            "upstream timeout AppError",
			err:             common.NewUpstreamTimeoutError("map.ir timed out", errors.New("deadline")),
			fallbackMsg:     "failed",
			expectHandled:   true,
			expectStatus:    http.StatusGatewayTimeout,
			expectErrorCode: common.CodeUpstreamTimeout,
			expectContains:  "map.ir timed out",
		},
		{
			name:           "regular error uses fallback",
			err:            errors.New("boom"),
			fallbackMsg:    "search failed",
			expectHandled:  true,
			expectStatus:   http.StatusInternalServerError,
			expectContains: "search failed",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := httptest.NewRecorder()
			c, _ := gin.CreateTestContext(w)
			c.Request = httptest.NewRequest(http.MethodGet, "/test", nil)

			handled := common.HandleServiceError(c, tt.err, tt.fallbackMsg)
			assert.Equal(t, tt.expectHandled, handled)

			if tt.expectHandled {
				assert.Equal(t, tt.expectStatus, w.Code)
				resp := decodeResponse(t, w)
				assert.False(t, resp.Success)
				require.NotNil(t, resp.Error)
				assert.Equal(t, tt.expectErrorCode, resp.Error.ErrorCode)
				assert.Contains(t, resp.Error.Message, tt.expectContains)
			}
		})
	}
}

func TestHandleServiceError_UnwrapsWrappedAppError(t *testing.T) {
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request = httptest.NewRequest(http.MethodGet, "/test", nil)

	appErr := common.NewUpstreamStatusError("map.ir rejected the request", http.StatusForbidden, errors.New("403"))
	handled := common.HandleServiceError(c, errors.Join(errors.New("context"), appErr), "failed")

	assert.True(t, handled)
	assert.Equal(t, http.StatusBadGateway, w.Code)
	resp := decodeResponse(t, w)
	assert.Equal(t, http.StatusForbidden, resp.Error.UpstreamStatus)
	assert.Len(t, c.Errors, 1)
}

func TestBindJSON(t *testing.T) {
	type request struct {
		Text string `json:"text" binding:"required"`
	}

	tests := []struct {
		name         string
		body         string
		expectOK     bool
		expectStatus int
	}{
		{"valid", `{"text":"azadi"}`, true, http.StatusOK},
		{"missing field", `{}`, false, http.StatusBadRequest},
		{"malformed", `{"text":`, false, http.StatusBadRequest},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := httptest.NewRecorder()
			c, _ := gin.CreateTestContext(w)
			c.Request = httptest.NewRequest(http.MethodPost, "/test", strings.NewReader(tt.body))
			c.Request.Header.Set("Content-Type", "application/json")

			var req request
			ok := common.BindJSON(c, &req)
			assert.Equal(t, tt.expectOK, ok)
			if !ok {
				assert.Equal(t, tt.expectStatus, w.Code)
				assert.Equal(t, common.CodeInvalidInput, decodeResponse(t, w).Error.ErrorCode)
			} else {
				assert.Equal(t, "azadi", req.Text)
			}
		})
	}
}

func TestBindQuery(t *testing.T) {
	type request struct {
		Lat *float64 `form:"lat" binding:"required"`
	}

	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request = httptest.NewRequest(http.MethodGet, "/test?lat=35.7", nil)

	var req request
	require.True(t, common.BindQuery(c, &req))
	require.NotNil(t, req.Lat)
	assert.Equal(t, 35.7, *req.Lat)

	w = httptest.NewRecorder()
	c, _ = gin.CreateTestContext(w)
	c.Request = httptest.NewRequest(http.MethodGet, "/test", nil)

	assert.False(t, common.BindQuery(c, &request{}))
	assert.Equal(t, http.StatusBadRequest, w.Code)
}
