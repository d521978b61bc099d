package middleware

import (
	"bytes"
	"io"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/richxcame/mapir/pkg/logger"
	"go.uber.org/zap"
)

const maxLoggedBodyLength = 512

// RequestLogger logs one line per request. JSON request bodies are logged
// truncated; response bodies are not, since static map replies are images.
func RequestLogger(serviceName string) gin.HandlerFunc {
	return func(c *gin.Context) {
		requestBody := captureRequestBody(c)

		start := time.Now()
		path := c.Request.URL.Path
		query := c.Request.URL.RawQuery

		c.Next()

		fields := []zap.Field{
			zap.String("service", serviceName),
			zap.Int("status", c.Writer.Status()),
			zap.String("method", c.Request.Method),
			zap.String("path", path),
			zap.String("query", query),
			zap.String("ip", c.ClientIP()),
			zap.Duration("latency", time.Since(start)),
			zap.Int("response_size", c.Writer.Size()),
		}
		if requestBody != "" {
			fields = append(fields, zap.String("request_body", requestBody))
		}

		reqLogger := logger.WithContext(c.Request.Context())

		if len(c.Errors) > 0 {
			fields = append(fields, zap.String("errors", c.Errors.String()))
			reqLogger.Error("Request completed with errors", fields...)
		} else {
			reqLogger.Info("Request completed", fields...)
		}
	}
}

func captureRequestBody(c *gin.Context) string {
	if c.Request == nil || c.Request.Body == nil || !strings.HasPrefix(c.ContentType(), "application/json") {
		return ""
	}

	bodyBytes, err := io.ReadAll(c.Request.Body)
	if err != nil {
		return ""
	}

	c.Request.Body = io.NopCloser(bytes.NewBuffer(bodyBytes))
	return compactPayload(bodyBytes)
}

func compactPayload(payload []byte) string {
	if len(payload) == 0 {
		return ""
	}

	compacted := strings.Join(strings.Fields(string(payload)), " ")
	if len(compacted) > maxLoggedBodyLength {
		compacted = compacted[:maxLoggedBodyLength] + "...(truncated)"
	}
	return compacted
}
