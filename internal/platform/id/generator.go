// Package id issues the request ids echoed in X-Request-ID.
package id

import (
	"context"
	"crypto/rand"
	"encoding/hex"
	"fmt"

	"go.opentelemetry.io/otel/trace"
)

const randomIDBytes = 8

type Generator interface {
	NewID(ctx context.Context) (string, error)
}

// RequestIDGenerator returns the trace id of the active span, or a random id for
// untraced requests.
type RequestIDGenerator struct{}

func NewRequestIDGenerator() RequestIDGenerator {
	return RequestIDGenerator{}
}

func (RequestIDGenerator) NewID(ctx context.Context) (string, error) {
	if sc := trace.SpanContextFromContext(ctx); sc.HasTraceID() {
		return sc.TraceID().String(), nil
	}

	var buf [randomIDBytes]byte
	if _, err := rand.Read(buf[:]); err != nil {
		return "", fmt.Errorf("read request id bytes: %w", err)
	}
	return hex.EncodeToString(buf[:]), nil
}
