package middleware

import (
	stderrors "errors"
	"fmt"
	"net/http"
	"runtime/debug"
	"time"

	"github.com/getsentry/sentry-go"
	sentrygin "github.com/getsentry/sentry-go/gin"
	"github.com/gin-gonic/gin"
	"github.com/richxcame/mapir/pkg/common"
	"github.com/richxcame/mapir/pkg/errors"
	"github.com/richxcame/mapir/pkg/logger"
	"go.uber.org/zap"
)

// SentryMiddleware attaches a per-request Sentry hub
func SentryMiddleware() gin.HandlerFunc {
	return sentrygin.New(sentrygin.Options{
		Repanic:         true,
		WaitForDelivery: false,
		Timeout:         2 * time.Second,
	})
}

// ErrorHandler reports unexpected errors recorded with c.Error, and 5xx
// responses without one, to Sentry. Register it after the other middleware.
func ErrorHandler() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()

		c.Next()

		duration := time.Since(start)
		statusCode := c.Writer.Status()

		errors.AddBreadcrumbForRequest(c.Request.Method, c.Request.URL.Path, statusCode, duration)

		for _, err := range c.Errors {
			if errors.ShouldReportError(err.Err, statusCode) {
				captureError(c, err.Err, statusCode, duration)
			}
		}

		if statusCode >= http.StatusInternalServerError && len(c.Errors) == 0 {
			hub := hubFor(c, statusCode)
			hub.CaptureMessage(fmt.Sprintf("HTTP %d: %s %s", statusCode, c.Request.Method, c.Request.URL.Path))
		}
	}
}

// RecoveryWithSentry recovers from panics, reports them to Sentry and
// answers with the standard 500 envelope.
func RecoveryWithSentry() gin.HandlerFunc {
	return func(c *gin.Context) {
		defer func() {
			if rec := recover(); rec != nil {
				hub := sentrygin.GetHubFromContext(c)
				if hub == nil {
					hub = sentry.CurrentHub().Clone()
				}
				hub.Scope().SetRequest(c.Request)
				hub.Scope().SetContext("panic", map[string]interface{}{
					"value":      fmt.Sprintf("%v", rec),
					"stacktrace": string(debug.Stack()),
				})
				hub.RecoverWithContext(c.Request.Context(), rec)

				logger.WithContext(c.Request.Context()).Error("Recovered from panic",
					zap.Any("panic", rec),
					zap.String("path", c.Request.URL.Path),
				)

				c.Abort()
				common.AppErrorResponse(c, common.NewInternalError("An unexpected error occurred", nil))
			}
		}()

		c.Next()
	}
}

func hubFor(c *gin.Context, statusCode int) *sentry.Hub {
	hub := sentrygin.GetHubFromContext(c)
	if hub == nil {
		hub = sentry.CurrentHub().Clone()
	}

	hub.Scope().SetRequest(c.Request)
	hub.Scope().SetLevel(getSentryLevel(statusCode))
	hub.Scope().SetTag("http.method", c.Request.Method)
	hub.Scope().SetTag("http.status_code", fmt.Sprintf("%d", statusCode))
	hub.Scope().SetTag("endpoint", c.FullPath())
	if correlationID := GetCorrelationID(c); correlationID != "" {
		hub.Scope().SetTag("correlation_id", correlationID)
	}
	return hub
}

func captureError(c *gin.Context, err error, statusCode int, duration time.Duration) {
	hub := hubFor(c, statusCode)
	hub.Scope().SetContext("http", map[string]interface{}{
		"method":      c.Request.Method,
		"url":         c.Request.URL.String(),
		"status_code": statusCode,
		"duration_ms": duration.Milliseconds(),
		"remote_addr": c.ClientIP(),
		"headers":     errors.SanitizeHeaders(c.Request.Header),
	})

	var appErr *common.AppError
	if stderrors.As(err, &appErr) && appErr.UpstreamStatus != 0 {
		hub.Scope().SetTag("upstream.status_code", fmt.Sprintf("%d", appErr.UpstreamStatus))
	}

	hub.CaptureException(err)
}

// getSentryLevel maps HTTP status codes to Sentry severity levels
func getSentryLevel(statusCode int) sentry.Level {
	switch {
	case statusCode >= 500:
		return sentry.LevelError
	case statusCode == http.StatusTooManyRequests:
		return sentry.LevelWarning
	default:
		return sentry.LevelInfo
	}
}
