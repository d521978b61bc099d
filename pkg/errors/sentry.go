package errors

import (
	stderrors "errors"
	"fmt"
	"net/http"
	"time"

	"github.com/getsentry/sentry-go"
	"github.com/richxcame/mapir/pkg/common"
)

// SentryConfig holds configuration for Sentry integration
type SentryConfig struct {
	DSN              string
	Environment      string
	Release          string
	TracesSampleRate float64
	ServerName       string
	Debug            bool
}

// sensitive headers stripped from events and breadcrumbs
var sensitiveHeaders = []string{"Authorization", "Cookie", "X-Api-Key"}

// InitSentry initializes the Sentry SDK. It returns an error when no DSN is
// configured so callers can log and continue without error tracking.
func InitSentry(config SentryConfig) error {
	if config.DSN == "" {
		return fmt.Errorf("sentry DSN is not configured")
	}

	err := sentry.Init(sentry.ClientOptions{
		Dsn:              config.DSN,
		Environment:      config.Environment,
		Release:          config.Release,
		TracesSampleRate: config.TracesSampleRate,
		EnableTracing:    config.TracesSampleRate > 0,
		ServerName:       config.ServerName,
		Debug:            config.Debug,
		AttachStacktrace: true,
		BeforeSend: func(event *sentry.Event, hint *sentry.EventHint) *sentry.Event {
			if event.Level == sentry.LevelInfo || event.Level == sentry.LevelDebug {
				return nil
			}
			if event.Request != nil {
				for _, h := range sensitiveHeaders {
					delete(event.Request.Headers, h)
				}
			}
			return event
		},
		BeforeBreadcrumb: func(breadcrumb *sentry.Breadcrumb, hint *sentry.BreadcrumbHint) *sentry.Breadcrumb {
			if breadcrumb.Category == "http" && breadcrumb.Data != nil {
				for _, h := range sensitiveHeaders {
					delete(breadcrumb.Data, h)
				}
			}
			return breadcrumb
		},
	})
	if err != nil {
		return fmt.Errorf("failed to initialize sentry: %w", err)
	}

	return nil
}

// Flush flushes the Sentry buffer
func Flush(timeout time.Duration) bool {
	return sentry.Flush(timeout)
}

// CaptureError captures an error and sends it to Sentry
func CaptureError(err error) *sentry.EventID {
	if err == nil {
		return nil
	}
	return sentry.CaptureException(err)
}

// AddBreadcrumbForRequest adds a breadcrumb for HTTP request
func AddBreadcrumbForRequest(method, url string, statusCode int, duration time.Duration) {
	sentry.AddBreadcrumb(&sentry.Breadcrumb{
		Type:      "http",
		Category:  "http.request",
		Level:     sentry.LevelInfo,
		Message:   fmt.Sprintf("%s %s", method, url),
		Timestamp: time.Now(),
		Data: map[string]interface{}{
			"method":      method,
			"url":         url,
			"status_code": statusCode,
			"duration_ms": duration.Milliseconds(),
		},
	})
}

// IsBusinessError reports whether err is an expected client-side failure,
// i.e. an AppError with a 4xx code.
func IsBusinessError(err error) bool {
	var appErr *common.AppError
	if stderrors.As(err, &appErr) {
		return appErr.Code < http.StatusInternalServerError
	}
	return false
}

// ShouldReportError determines if an error should be reported to Sentry
func ShouldReportError(err error, statusCode int) bool {
	if err == nil || IsBusinessError(err) {
		return false
	}

	// Client errors (4xx) are not reported except 429
	if statusCode >= 400 && statusCode < 500 && statusCode != http.StatusTooManyRequests {
		return false
	}

	return true
}

// SanitizeHeaders flattens headers for event context, redacting credentials.
func SanitizeHeaders(headers http.Header) map[string]string {
	sanitized := make(map[string]string, len(headers))
	for key, values := range headers {
		if len(values) > 0 {
			sanitized[key] = values[0]
		}
	}
	for _, h := range sensitiveHeaders {
		if _, ok := sanitized[h]; ok {
			sanitized[h] = "[REDACTED]"
		}
	}
	return sanitized
}
