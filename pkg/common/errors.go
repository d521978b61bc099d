package common

import (
	"errors"
	"net/http"
)

// Common error types
var (
	ErrBadRequest     = errors.New("bad request")
	ErrInternalServer = errors.New("internal server error")
	ErrValidation     = errors.New("validation error")
	ErrUpstream       = errors.New("upstream error")
)

// Machine-readable error codes carried in ErrorInfo.ErrorCode
const (
	CodeInvalidInput    = "INVALID_INPUT"
	CodeUpstreamStatus  = "UPSTREAM_STATUS"
	CodeUpstreamDecode  = "UPSTREAM_DECODE"
	CodeUpstreamTimeout = "UPSTREAM_TIMEOUT"
	CodeUpstreamFailure = "UPSTREAM_UNAVAILABLE"
	CodeInternal        = "INTERNAL_ERROR"
)

// AppError represents an application error with HTTP status code
type AppError struct {
	Code      int    `json:"code"`
	ErrorCode string `json:"error_code,omitempty"`
	Message   string `json:"message"`
	// UpstreamStatus is the map.ir status code when the upstream replied with an error.
	UpstreamStatus int   `json:"upstream_status,omitempty"`
	Err            error `json:"-"`
}

// Error implements the error interface
func (e *AppError) Error() string {
	if e.Err != nil {
		return e.Err.Error()
	}
	return e.Message
}

// Unwrap exposes the underlying cause
func (e *AppError) Unwrap() error {
	return e.Err
}

// NewAppError creates a new AppError
func NewAppError(code int, errorCode, message string, err error) *AppError {
	return &AppError{
		Code:      code,
		ErrorCode: errorCode,
		Message:   message,
		Err:       err,
	}
}

func NewBadRequestError(message string, err error) *AppError {
	if err == nil {
		err = ErrBadRequest
	}
	return NewAppError(http.StatusBadRequest, CodeInvalidInput, message, err)
}

func NewValidationError(message string) *AppError {
	return NewAppError(http.StatusBadRequest, CodeInvalidInput, message, ErrValidation)
}

// NewUpstreamStatusError reports a non-2xx reply from the upstream as 502.
func NewUpstreamStatusError(message string, upstreamStatus int, err error) *AppError {
	appErr := NewAppError(http.StatusBadGateway, CodeUpstreamStatus, message, err)
	appErr.UpstreamStatus = upstreamStatus
	return appErr
}

func NewUpstreamDecodeError(message string, err error) *AppError {
	return NewAppError(http.StatusBadGateway, CodeUpstreamDecode, message, err)
}

func NewUpstreamTimeoutError(message string, err error) *AppError {
	return NewAppError(http.StatusGatewayTimeout, CodeUpstreamTimeout, message, err)
}

func NewUpstreamUnavailableError(message string, err error) *AppError {
	return NewAppError(http.StatusBadGateway, CodeUpstreamFailure, message, err)
}

func NewInternalError(message string, err error) *AppError {
	if err == nil {
		err = ErrInternalServer
	}
	return NewAppError(http.StatusInternalServerError, CodeInternal, message, err)
}
