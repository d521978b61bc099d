package httpclient

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/richxcame/mapir/pkg/logger"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/propagation"
)

// CorrelationIDHeader carries the request correlation ID to upstream services.
const CorrelationIDHeader = "X-Request-ID"

// Client wraps http.Client with convenience methods for JSON and binary APIs.
type Client struct {
	httpClient *http.Client
	baseURL    string
}

// Option configures the HTTP client
type Option func(*Client)

// WithHTTPClient swaps the underlying *http.Client. The timeout passed to
// NewClient is ignored when this option is used.
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) {
		if hc != nil {
			c.httpClient = hc
		}
	}
}

// NewClient creates a new HTTP client. A zero timeout leaves deadlines to the
// request context.
func NewClient(baseURL string, timeout time.Duration, opts ...Option) *Client {
	client := &Client{
		httpClient: &http.Client{
			Timeout: timeout,
		},
		baseURL: baseURL,
	}

	for _, opt := range opts {
		opt(client)
	}

	return client
}

// BaseURL returns the prefix every request path is appended to.
func (c *Client) BaseURL() string {
	return c.baseURL
}

// Response is a fully read upstream reply.
type Response struct {
	StatusCode int
	Header     http.Header
	Body       []byte
}

// ContentType returns the Content-Type header of the response.
func (r *Response) ContentType() string {
	return r.Header.Get("Content-Type")
}

// Post makes a POST request with a JSON body
func (c *Client) Post(ctx context.Context, path string, body interface{}, headers map[string]string) (*Response, error) {
	var bodyReader io.Reader
	if body != nil {
		jsonData, err := json.Marshal(body)
		if err != nil {
			return nil, fmt.Errorf("failed to marshal request body: %w", err)
		}
		bodyReader = bytes.NewReader(jsonData)
	}

	return c.Do(ctx, http.MethodPost, path, bodyReader, headers)
}

// Get makes a GET request
func (c *Client) Get(ctx context.Context, path string, headers map[string]string) (*Response, error) {
	return c.Do(ctx, http.MethodGet, path, nil, headers)
}

// Do sends a request to baseURL+path and reads the whole body. Responses with a
// status of 400 or above are returned as *HTTPError.
func (c *Client) Do(ctx context.Context, method, path string, body io.Reader, headers map[string]string) (*Response, error) {
	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, body)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}

	for key, value := range headers {
		req.Header.Set(key, value)
	}
	injectCorrelationID(ctx, req)
	otel.GetTextMapPropagator().Inject(ctx, propagation.HeaderCarrier(req.Header))

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("failed to make request: %w", err)
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read response body: %w", err)
	}

	if resp.StatusCode >= 400 {
		return nil, &HTTPError{
			StatusCode: resp.StatusCode,
			Body:       string(respBody),
		}
	}

	return &Response{
		StatusCode: resp.StatusCode,
		Header:     resp.Header,
		Body:       respBody,
	}, nil
}

// HTTPError represents an HTTP error response
type HTTPError struct {
	StatusCode int
	Body       string
}

func (e *HTTPError) Error() string {
	return fmt.Sprintf("HTTP %d: %s", e.StatusCode, e.Body)
}

func injectCorrelationID(ctx context.Context, req *http.Request) {
	if correlationID := logger.CorrelationIDFromContext(ctx); correlationID != "" {
		req.Header.Set(CorrelationIDHeader, correlationID)
	}
}
