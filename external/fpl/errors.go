package fpl

import (
	"fmt"
	"net/http"

	crerr "github.com/cockroachdb/errors"
)

var (
	// ErrTransient marks failures worth retrying and counting against the circuit breaker:
	// network errors, 429 and 5xx responses, truncated bodies.
	ErrTransient = crerr.New("fpl upstream transient failure")
	// ErrUpstreamStatus is matched by every *StatusError.
	ErrUpstreamStatus = crerr.New("fpl upstream returned non-2xx status")
	// ErrUnavailable is returned without a request while the circuit breaker is open.
	ErrUnavailable = crerr.New("fpl upstream temporarily unavailable")
)

// StatusError reports a non-2xx response.
type StatusError struct {
	StatusCode int
	Path       string
	Body       string
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("fpl upstream status=%d path=%s body=%s", e.StatusCode, e.Path, e.Body)
}

func (e *StatusError) Unwrap() error { return ErrUpstreamStatus }

// IsNotFound reports whether err is a 404 from upstream.
func IsNotFound(err error) bool {
	var statusErr *StatusError
	return crerr.As(err, &statusErr) && statusErr.StatusCode == http.StatusNotFound
}

func isTransient(err error) bool {
	return err != nil && crerr.Is(err, ErrTransient)
}

func isRetryableStatus(code int) bool {
	return code == http.StatusTooManyRequests || code >= http.StatusInternalServerError
}
