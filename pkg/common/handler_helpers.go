package common

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/richxcame/mapir/pkg/logger"
	"go.uber.org/zap"
)

// HandleServiceError writes err to the response.
// Returns true if an error was handled (and response was sent), false otherwise.
//
// Usage:
//
//	result, err := h.maps.Search(ctx, ...)
//	if HandleServiceError(c, err, "search failed") {
//	    return
//	}
func HandleServiceError(c *gin.Context, err error, fallbackMessage string) bool {
	if err == nil {
		return false
	}

	var appErr *AppError
	if errors.As(err, &appErr) {
		if appErr.Code >= http.StatusInternalServerError {
			_ = c.Error(err)
		}
		AppErrorResponse(c, appErr)
		return true
	}

	logger.WithContext(c.Request.Context()).Error(fallbackMessage, zap.Error(err))
	_ = c.Error(err)

	ErrorResponse(c, http.StatusInternalServerError, fallbackMessage)
	return true
}

// BindJSON binds JSON request body and sends error response on failure.
// Returns true on success, false on failure (response already sent).
func BindJSON(c *gin.Context, obj interface{}) bool {
	if err := c.ShouldBindJSON(obj); err != nil {
		AppErrorResponse(c, NewBadRequestError(err.Error(), err))
		return false
	}
	return true
}

// BindQuery binds query parameters and sends error response on failure.
// Returns true on success, false on failure (response already sent).
func BindQuery(c *gin.Context, obj interface{}) bool {
	if err := c.ShouldBindQuery(obj); err != nil {
		AppErrorResponse(c, NewBadRequestError(err.Error(), err))
		return false
	}
	return true
}
