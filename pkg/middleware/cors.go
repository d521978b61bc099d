package middleware

import (
	"net/http"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
)

// CORS builds the gin-contrib cors handler for the given origins. An empty
// list falls back to http://localhost:3000 for development; "*" allows any
// origin without credentials.
func CORS(origins []string) gin.HandlerFunc {
	corsConfig := cors.DefaultConfig()
	corsConfig.AllowMethods = []string{http.MethodGet, http.MethodPost, http.MethodOptions}
	corsConfig.AllowHeaders = []string{"Origin", "Content-Type", "Accept", CorrelationIDHeader}
	corsConfig.ExposeHeaders = []string{CorrelationIDHeader, "X-Trace-ID"}
	corsConfig.MaxAge = 24 * time.Hour

	if len(origins) == 0 {
		origins = []string{"http://localhost:3000"}
	}
	for _, origin := range origins {
		if origin == "*" {
			corsConfig.AllowAllOrigins = true
			return cors.New(corsConfig)
		}
	}

	corsConfig.AllowOrigins = origins
	corsConfig.AllowCredentials = true
	return cors.New(corsConfig)
}
