package integrations

import (
	"net/http"
	"strconv"
	"strings"
	"time"

	errs "github.com/matzehuels/neoscope/pkg/errors"
)

const httpTimeout = 10 * time.Second

var (
	// ErrNotFound is returned when the upstream resource doesn't exist.
	ErrNotFound = errs.New(errs.ErrCodeNotFound, "resource not found")

	// ErrNetwork is returned for HTTP failures (connection errors, 5xx responses).
	ErrNetwork = errs.New(errs.ErrCodeNetwork, "network error")

	// ErrUnauthorized is returned when the upstream rejects the API key. It
	// is a server-side configuration fault, not bad client input.
	ErrUnauthorized = errs.New(errs.ErrCodeUpstreamAuth, "API key rejected by upstream")
)

// NewHTTPClient creates an HTTP client with the standard upstream timeout.
func NewHTTPClient() *http.Client {
	return &http.Client{Timeout: httpTimeout}
}

// ParseRetryAfter reads a Retry-After header given in seconds. HTTP-date
// values and garbage yield 0.
func ParseRetryAfter(v string) int {
	n, err := strconv.Atoi(strings.TrimSpace(v))
	if err != nil || n < 0 {
		return 0
	}
	return n
}
