// Package fplapi puts the TTL cache in front of every Fantasy Premier League API read and
// decodes the payloads the rest of the service works with.
package fplapi

import (
	"context"
	"encoding/json"
	"time"

	sonic "github.com/bytedance/sonic"
	crerr "github.com/cockroachdb/errors"
	"github.com/riskibarqy/fpl-analytics/internal/domain/standings"
	"github.com/riskibarqy/fpl-analytics/internal/platform/cache"
	"github.com/riskibarqy/fpl-analytics/internal/platform/logging"
	"github.com/riskibarqy/fpl-analytics/internal/platform/resilience"
)

const (
	KeyPrefix  = "fpl_api:"
	DefaultTTL = 300 * time.Second
)

var errMalformedPayload = crerr.New("upstream payload is not valid json")

// Upstream is the raw transport; *fpl.Client satisfies it.
type Upstream interface {
	GetJSON(ctx context.Context, path string) ([]byte, error)
}

type Fetcher struct {
	upstream Upstream
	cache    *cache.Store
	ttl      time.Duration
	logger   *logging.Logger
	flight   resilience.SingleFlight[json.RawMessage]
}

func NewFetcher(upstream Upstream, store *cache.Store, ttl time.Duration, logger *logging.Logger) *Fetcher {
	if logger == nil {
		logger = logging.Default()
	}
	if store == nil {
		store = cache.NewStore(cache.NewMemoryBackend(), logger)
	}
	if ttl <= 0 {
		ttl = DefaultTTL
	}
	return &Fetcher{
		upstream: upstream,
		cache:    store,
		ttl:      ttl,
		logger:   logger.Named("fplapi"),
	}
}

func CacheKey(path string) string {
	return KeyPrefix + path
}

// Fetch returns the payload for path from cache, or from upstream on a miss.
// Upstream failures are logged and reported as ok=false; Fetch never returns an error.
func (f *Fetcher) Fetch(ctx context.Context, path string) (json.RawMessage, bool) {
	key := CacheKey(path)

	var cached json.RawMessage
	if f.cache.Get(ctx, key, &cached) && len(cached) > 0 {
		return cached, true
	}

	// The flight is shared by every caller waiting on key, so it must not be cancelled by
	// whichever caller started it. The upstream client timeout still bounds it.
	flightCtx := context.WithoutCancel(ctx)
	data, err, _ := f.flight.Do(key, func() (json.RawMessage, error) {
		raw, err := f.upstream.GetJSON(flightCtx, path)
		if err != nil {
			return nil, err
		}
		if !sonic.Valid(raw) {
			return nil, crerr.Wrapf(errMalformedPayload, "path=%s", path)
		}
		f.cache.Set(flightCtx, key, json.RawMessage(raw), f.ttl)
		return raw, nil
	})
	if err != nil {
		f.logger.WarnContext(ctx, "fpl fetch failed", "path", path, "error", err)
		return nil, false
	}
	return data, true
}

// Invalidate drops the cached payload for path.
func (f *Fetcher) Invalidate(ctx context.Context, path string) bool {
	return f.cache.Delete(ctx, CacheKey(path))
}

// InvalidateLeague drops the cached table for leagueID and, when that table is still
// cached, the history of every member listed in it. It returns the number of keys dropped.
// Nothing is read from upstream.
func (f *Fetcher) InvalidateLeague(ctx context.Context, leagueID int64) int {
	tablePath := LeagueStandingsPath(leagueID)
	paths := []string{tablePath}

	var table standings.Snapshot
	if f.cache.Get(ctx, CacheKey(tablePath), &table) {
		for _, entryID := range table.EntryIDs() {
			paths = append(paths, EntryHistoryPath(entryID))
		}
	}

	dropped := 0
	for _, path := range paths {
		if f.Invalidate(ctx, path) {
			dropped++
		}
	}
	f.logger.InfoContext(ctx, "league cache invalidated", "league_id", leagueID, "keys", dropped)
	return dropped
}

func (f *Fetcher) fetchInto(ctx context.Context, path string, dest any) bool {
	raw, ok := f.Fetch(ctx, path)
	if !ok {
		return false
	}
	if err := sonic.Unmarshal(raw, dest); err != nil {
		f.logger.WarnContext(ctx, "fpl payload decode failed", "path", path, "error", err)
		return false
	}
	return true
}
