// Package cache is the TTL key/value store that sits in front of every upstream call.
//
// A Backend moves raw bytes and reports failures. Store layers JSON serialization on top
// and turns every failure into a miss or a false return, so a broken cache degrades the
// service to "always hit upstream" instead of failing requests.
package cache

import (
	"context"
	"errors"
	"time"
)

// ErrMiss is returned by backends when the key is absent or expired.
var ErrMiss = errors.New("cache miss")

type Backend interface {
	Name() string
	Get(ctx context.Context, key string) ([]byte, error)
	// Set stores value. ttl <= 0 stores the value without expiry.
	Set(ctx context.Context, key string, value []byte, ttl time.Duration) error
	Delete(ctx context.Context, key string) error
	Exists(ctx context.Context, key string) (bool, error)
	FlushAll(ctx context.Context) error
	Close() error
}
