package cache

import (
	"context"
	"errors"
	"time"

	sonic "github.com/bytedance/sonic"
	"github.com/riskibarqy/fpl-analytics/internal/platform/logging"
)

// Store serializes values to JSON and never surfaces backend failures to callers.
// It is safe for concurrent use; concurrent Set on the same key is last-write-wins.
type Store struct {
	backend Backend
	logger  *logging.Logger
}

func NewStore(backend Backend, logger *logging.Logger) *Store {
	if backend == nil {
		backend = NewMemoryBackend()
	}
	if logger == nil {
		logger = logging.Default()
	}
	return &Store{
		backend: backend,
		logger:  logger,
	}
}

func (s *Store) Backend() Backend { return s.backend }

// Get decodes the cached value into dest. It returns false on a miss, an expired entry,
// a backend failure or a payload that no longer decodes.
func (s *Store) Get(ctx context.Context, key string, dest any) bool {
	if key == "" {
		return false
	}
	name := s.backend.Name()

	data, err := s.backend.Get(ctx, key)
	if err != nil {
		cacheMisses.WithLabelValues(name).Inc()
		if !errors.Is(err, ErrMiss) {
			cacheErrors.WithLabelValues(name, "get").Inc()
			s.logger.WarnContext(ctx, "cache get failed", "key", key, "error", err)
		}
		return false
	}

	if err := sonic.Unmarshal(data, dest); err != nil {
		cacheMisses.WithLabelValues(name).Inc()
		cacheErrors.WithLabelValues(name, "decode").Inc()
		s.logger.WarnContext(ctx, "cache entry decode failed", "key", key, "error", err)
		return false
	}

	cacheHits.WithLabelValues(name).Inc()
	return true
}

// Set serializes value and stores it. ttl <= 0 stores it without expiry.
func (s *Store) Set(ctx context.Context, key string, value any, ttl time.Duration) bool {
	if key == "" {
		return false
	}
	name := s.backend.Name()

	data, err := sonic.Marshal(value)
	if err != nil {
		cacheErrors.WithLabelValues(name, "encode").Inc()
		s.logger.WarnContext(ctx, "cache entry encode failed", "key", key, "error", err)
		return false
	}

	if err := s.backend.Set(ctx, key, data, ttl); err != nil {
		cacheErrors.WithLabelValues(name, "set").Inc()
		s.logger.WarnContext(ctx, "cache set failed", "key", key, "error", err)
		return false
	}
	return true
}

func (s *Store) Delete(ctx context.Context, key string) bool {
	if key == "" {
		return false
	}
	if err := s.backend.Delete(ctx, key); err != nil {
		cacheErrors.WithLabelValues(s.backend.Name(), "delete").Inc()
		s.logger.WarnContext(ctx, "cache delete failed", "key", key, "error", err)
		return false
	}
	return true
}

func (s *Store) Exists(ctx context.Context, key string) bool {
	if key == "" {
		return false
	}
	ok, err := s.backend.Exists(ctx, key)
	if err != nil {
		cacheErrors.WithLabelValues(s.backend.Name(), "exists").Inc()
		s.logger.WarnContext(ctx, "cache exists failed", "key", key, "error", err)
		return false
	}
	return ok
}

func (s *Store) FlushAll(ctx context.Context) bool {
	if err := s.backend.FlushAll(ctx); err != nil {
		cacheErrors.WithLabelValues(s.backend.Name(), "flush").Inc()
		s.logger.ErrorContext(ctx, "cache flush failed", "error", err)
		return false
	}
	return true
}

func (s *Store) Close() error {
	return s.backend.Close()
}
