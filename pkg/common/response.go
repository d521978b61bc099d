package common

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// Response represents a standard API response
type Response struct {
	Success bool        `json:"success"`
	Data    interface{} `json:"data,omitempty"`
	Error   *ErrorInfo  `json:"error,omitempty"`
}

// ErrorInfo contains error details
type ErrorInfo struct {
	Code           int    `json:"code"`
	ErrorCode      string `json:"error_code,omitempty"`
	Message        string `json:"message"`
	UpstreamStatus int    `json:"upstream_status,omitempty"`
}

// SuccessResponse sends a successful response
func SuccessResponse(c *gin.Context, data interface{}) {
	c.JSON(http.StatusOK, Response{
		Success: true,
		Data:    data,
	})
}

// ErrorResponse sends an error response
func ErrorResponse(c *gin.Context, statusCode int, message string) {
	c.JSON(statusCode, Response{
		Success: false,
		Error: &ErrorInfo{
			Code:    statusCode,
			Message: message,
		},
	})
}

// AppErrorResponse sends an AppError response
func AppErrorResponse(c *gin.Context, err *AppError) {
	c.JSON(err.Code, Response{
		Success: false,
		Error: &ErrorInfo{
			Code:           err.Code,
			ErrorCode:      err.ErrorCode,
			Message:        err.Message,
			UpstreamStatus: err.UpstreamStatus,
		},
	})
}

// NoRouteHandler answers unknown paths with the standard envelope
func NoRouteHandler() gin.HandlerFunc {
	return func(c *gin.Context) {
		ErrorResponse(c, http.StatusNotFound, "route not found")
	}
}

// NoMethodHandler answers known paths called with the wrong method
func NoMethodHandler() gin.HandlerFunc {
	return func(c *gin.Context) {
		ErrorResponse(c, http.StatusMethodNotAllowed, "method not allowed")
	}
}
