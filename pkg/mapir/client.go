// Package mapir is a client for the map.ir search, reverse geocoding,
// routing and static map APIs.
//
// Every operation sends exactly one request and returns either a decoded
// result or an *Error. A Client holds only read-only configuration and is
// safe for concurrent use.
package mapir

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/richxcame/mapir/pkg/httpclient"
	"github.com/richxcame/mapir/pkg/logger"
	"github.com/richxcame/mapir/pkg/tracing"
	"go.opentelemetry.io/otel/attribute"
	"go.uber.org/zap"
)

// DefaultBaseURL is the production map.ir host.
const DefaultBaseURL = "https://map.ir"

const (
	apiKeyHeader      = "x-api-key"
	contentTypeHeader = "content-type"
	jsonContentType   = "application/json"

	tracerName  = "mapir"
	serviceName = "mapir"
)

// Config holds the client configuration.
type Config struct {
	APIKey string
	// BaseURL defaults to DefaultBaseURL.
	BaseURL string
	// Timeout bounds each request. Zero leaves deadlines to the caller's context.
	Timeout time.Duration
	// HTTPClient replaces the default *http.Client; Timeout is then ignored.
	HTTPClient *http.Client
}

// Client issues requests against a map.ir deployment.
type Client struct {
	apiKey   string
	baseURL  string
	http     *httpclient.Client
	validate *validator.Validate
}

// NewClient validates cfg and builds a Client.
func NewClient(cfg Config) (*Client, error) {
	baseURL := cfg.BaseURL
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}

	parsed, err := url.Parse(baseURL)
	if err != nil {
		return nil, fmt.Errorf("%w: base URL: %v", ErrInvalidInput, err)
	}
	if !parsed.IsAbs() || parsed.Host == "" || (parsed.Scheme != "http" && parsed.Scheme != "https") {
		return nil, fmt.Errorf("%w: base URL %q must be an absolute http(s) URL", ErrInvalidInput, baseURL)
	}
	baseURL = strings.TrimRight(baseURL, "/")

	return &Client{
		apiKey:   cfg.APIKey,
		baseURL:  baseURL,
		http:     httpclient.NewClient(baseURL, cfg.Timeout, httpclient.WithHTTPClient(cfg.HTTPClient)),
		validate: validator.New(validator.WithRequiredStructEnabled()),
	}, nil
}

// BaseURL returns the normalised base URL requests are sent to.
func (c *Client) BaseURL() string {
	return c.baseURL
}

func (c *Client) headers(withJSON bool) map[string]string {
	h := map[string]string{apiKeyHeader: c.apiKey}
	if withJSON {
		h[contentTypeHeader] = jsonContentType
	}
	return h
}

// call is the single exit point to the network. body is JSON-encoded for POST.
func (c *Client) call(ctx context.Context, op, method, path string, body interface{}, withJSON bool, attrs ...attribute.KeyValue) (*httpclient.Response, error) {
	start := time.Now()
	var resp *httpclient.Response

	err := tracing.TraceExternalCall(ctx, tracerName, serviceName, op, method, c.baseURL+path, attrs,
		func(ctx context.Context) (int, error) {
			var err error
			switch method {
			case http.MethodPost:
				resp, err = c.http.Post(ctx, path, body, c.headers(withJSON))
			default:
				resp, err = c.http.Get(ctx, path, c.headers(withJSON))
			}
			if err != nil {
				mErr := requestError(op, err)
				return mErr.StatusCode(), mErr
			}
			return resp.StatusCode, nil
		},
	)

	elapsed := time.Since(start)
	observeDuration(op, elapsed.Seconds())
	log := logger.WithContext(ctx).Named(tracerName)
	if err != nil {
		countResult(op, err)
		log.Warn("map.ir request failed",
			zap.String("operation", op),
			zap.String("method", method),
			zap.String("path", path),
			zap.Duration("latency", elapsed),
			zap.Error(err),
		)
		return nil, err
	}

	log.Debug("map.ir request completed",
		zap.String("operation", op),
		zap.String("method", method),
		zap.String("path", path),
		zap.Int("status", resp.StatusCode),
		zap.Int("response_size", len(resp.Body)),
		zap.Duration("latency", elapsed),
	)
	return resp, nil
}

// finish counts the outcome of a request that reached the decode stage.
func finish[T any](op string, out *T, err error) (*T, error) {
	countResult(op, err)
	if err != nil {
		return nil, err
	}
	return out, nil
}

// invalid logs and records an input error before any request is sent.
func (c *Client) invalid(ctx context.Context, op string, err *Error) error {
	countResult(op, err)
	logger.WithContext(ctx).Named(tracerName).Warn("map.ir request rejected",
		zap.String("operation", op),
		zap.Error(err),
	)
	return err
}

// check runs struct validation on v and converts failures to an input error.
func (c *Client) check(op string, v interface{}) *Error {
	if err := c.validate.Struct(v); err != nil {
		return inputError(op, "%s", err.Error())
	}
	return nil
}

// decodeJSON decodes body into a fresh T and checks it against T's validate tags.
// Unknown fields are ignored.
func decodeJSON[T any](c *Client, op string, body []byte) (*T, error) {
	trimmed := bytes.TrimSpace(body)
	if len(trimmed) == 0 || bytes.Equal(trimmed, []byte("null")) {
		return nil, decodeError(op, fmt.Errorf("empty body"))
	}

	var out T
	if err := json.Unmarshal(trimmed, &out); err != nil {
		return nil, decodeError(op, err)
	}
	if err := c.validate.Struct(&out); err != nil {
		return nil, decodeError(op, err)
	}
	return &out, nil
}
