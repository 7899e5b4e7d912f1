package usecase

import "errors"

// Handlers map these to HTTP status codes. Services wrap them with fmt.Errorf("%w: ...").
var (
	// ErrInvalidInput covers non-positive ids, negative gameweeks and similar caller mistakes.
	ErrInvalidInput = errors.New("invalid input")
	// ErrNotFound is returned when the FPL API has no data for a league or manager.
	ErrNotFound     = errors.New("not found")
	ErrUnauthorized = errors.New("unauthorized")
	// ErrDependencyUnavailable means a read the result cannot be built without has failed.
	ErrDependencyUnavailable = errors.New("upstream dependency unavailable")
)
