// Package errors defines the coded errors shared by the loader, the query
// layer, the API and the CLI.
//
// Every [Error] carries a [Code]. The API serializes the code next to the
// message and picks the status with [HTTPStatus]; the CLI maps invalid-input
// codes to exit status 2.
//
//	err := errors.New(errors.ErrCodeUnknownMetric, "unknown metric: %s", name)
//	if errors.Is(err, errors.ErrCodeUnknownMetric) { ... }
package errors

import (
	"errors"
	"fmt"
	"net/http"
)

// Code is a machine-readable error code.
type Code string

const (
	ErrCodeInvalidInput     Code = "INVALID_INPUT"
	ErrCodeInvalidDate      Code = "INVALID_DATE"
	ErrCodeInvalidDateRange Code = "INVALID_DATE_RANGE"
	ErrCodeInvalidFormat    Code = "INVALID_FORMAT"
	ErrCodeInvalidFeed      Code = "INVALID_FEED"
	ErrCodeUnknownMetric    Code = "UNKNOWN_METRIC"

	ErrCodeNotFound Code = "NOT_FOUND"
	ErrCodeNoData   Code = "NO_DATA" // no dataset has been loaded yet

	ErrCodeNetwork      Code = "NETWORK_ERROR"
	ErrCodeTimeout      Code = "TIMEOUT"
	ErrCodeRateLimited  Code = "RATE_LIMITED"
	ErrCodeUpstreamAuth Code = "UPSTREAM_AUTH" // the feed rejected our API key

	ErrCodeInternal    Code = "INTERNAL_ERROR"
	ErrCodeUnsupported Code = "UNSUPPORTED"
)

// statusByCode backs HTTPStatus. Codes not listed map to 500.
var statusByCode = map[Code]int{
	ErrCodeInvalidInput:     http.StatusBadRequest,
	ErrCodeInvalidDate:      http.StatusBadRequest,
	ErrCodeInvalidDateRange: http.StatusBadRequest,
	ErrCodeInvalidFormat:    http.StatusBadRequest,
	ErrCodeUnknownMetric:    http.StatusBadRequest,
	ErrCodeNotFound:         http.StatusNotFound,
	ErrCodeNoData:           http.StatusServiceUnavailable,
	ErrCodeRateLimited:      http.StatusTooManyRequests,
	ErrCodeNetwork:          http.StatusBadGateway,
	ErrCodeUpstreamAuth:     http.StatusBadGateway,
	ErrCodeInvalidFeed:      http.StatusBadGateway,
	ErrCodeTimeout:          http.StatusGatewayTimeout,
	ErrCodeUnsupported:      http.StatusNotImplemented,
}

// Error is a structured error with a code and optional cause.
type Error struct {
	Code    Code   // Machine-readable error code
	Message string // Human-readable message
	Cause   error  // Underlying error (optional)
}

func (e *Error) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("%s: %s: %v", e.Code, e.Message, e.Cause)
	}
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

func (e *Error) Unwrap() error {
	return e.Cause
}

// New creates a new Error with the given code and formatted message.
func New(code Code, format string, args ...any) *Error {
	return &Error{
		Code:    code,
		Message: fmt.Sprintf(format, args...),
	}
}

// Wrap creates a new Error wrapping an existing error.
func Wrap(code Code, cause error, format string, args ...any) *Error {
	return &Error{
		Code:    code,
		Message: fmt.Sprintf(format, args...),
		Cause:   cause,
	}
}

// Is reports whether the outermost *Error in err's chain has code.
func Is(err error, code Code) bool {
	var e *Error
	if errors.As(err, &e) {
		return e.Code == code
	}
	return false
}

// GetCode returns err's code, or "" for uncoded errors.
func GetCode(err error) Code {
	var e *Error
	if errors.As(err, &e) {
		return e.Code
	}
	var rl *RateLimitedError
	if errors.As(err, &rl) {
		return rl.Code()
	}
	return ""
}

// UserMessage returns the message without the code prefix or cause.
func UserMessage(err error) string {
	var e *Error
	if errors.As(err, &e) {
		return e.Message
	}
	return err.Error()
}

// HTTPStatus maps err to the status the API responds with.
func HTTPStatus(err error) int {
	if status, ok := statusByCode[GetCode(err)]; ok {
		return status
	}
	return http.StatusInternalServerError
}

// RateLimitedError reports an upstream 429. It is kept apart from [Error] so
// callers can read RetryAfter without parsing a message.
type RateLimitedError struct {
	RetryAfter int // seconds; 0 when the upstream sent no Retry-After
}

// Error implements the error interface.
func (e *RateLimitedError) Error() string {
	if e.RetryAfter > 0 {
		return fmt.Sprintf("rate limited: retry after %d seconds", e.RetryAfter)
	}
	return "rate limited"
}

// Code always returns ErrCodeRateLimited.
func (e *RateLimitedError) Code() Code {
	return ErrCodeRateLimited
}
