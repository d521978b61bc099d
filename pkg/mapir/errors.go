package mapir

import (
	"errors"
	"fmt"

	"github.com/richxcame/mapir/pkg/httpclient"
)

var (
	// ErrInvalidInput marks a request that was rejected before anything was sent.
	ErrInvalidInput = errors.New("invalid input")
	// ErrDecode marks a reply whose body does not match the expected shape.
	ErrDecode = errors.New("malformed response")
)

// Kind classifies where an operation failed.
type Kind string

const (
	KindInput     Kind = "input"
	KindTransport Kind = "transport"
	KindStatus    Kind = "status"
	KindDecode    Kind = "decode"
)

// Error is returned by every Client operation.
type Error struct {
	Op   string
	Kind Kind
	Err  error
}

func (e *Error) Error() string {
	return fmt.Sprintf("mapir %s: %v", e.Op, e.Err)
}

func (e *Error) Unwrap() error {
	return e.Err
}

// StatusCode returns the upstream HTTP status for KindStatus errors and 0 otherwise.
func (e *Error) StatusCode() int {
	var httpErr *httpclient.HTTPError
	if errors.As(e.Err, &httpErr) {
		return httpErr.StatusCode
	}
	return 0
}

func inputError(op string, format string, args ...interface{}) *Error {
	return &Error{
		Op:   op,
		Kind: KindInput,
		Err:  fmt.Errorf("%w: %s", ErrInvalidInput, fmt.Sprintf(format, args...)),
	}
}

func decodeError(op string, cause error) *Error {
	return &Error{
		Op:   op,
		Kind: KindDecode,
		Err:  fmt.Errorf("%w: %v", ErrDecode, cause),
	}
}

func requestError(op string, err error) *Error {
	var httpErr *httpclient.HTTPError
	if errors.As(err, &httpErr) {
		return &Error{Op: op, Kind: KindStatus, Err: err}
	}
	return &Error{Op: op, Kind: KindTransport, Err: err}
}
