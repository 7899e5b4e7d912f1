package usecase

import (
	"context"
	"fmt"
	"sort"
	"sync"
	"sync/atomic"
	"time"

	"github.com/panjf2000/ants/v2"
	"github.com/riskibarqy/fpl-analytics/internal/domain/standings"
	"github.com/riskibarqy/fpl-analytics/internal/platform/logging"
)

const (
	DefaultWarmWorkers = 8

	warmStatusSuccess = "success"
	warmStatusPartial = "partial"
	warmStatusFailed  = "failed"
)

type WarmResult struct {
	LeagueCount int                `json:"league_count"`
	EntryCount  int                `json:"entry_count"`
	FailedCount int                `json:"failed_count"`
	WorkerCount int                `json:"worker_count"`
	DurationMs  int64              `json:"duration_ms"`
	Leagues     []WarmLeagueResult `json:"leagues"`
}

type WarmLeagueResult struct {
	LeagueID      int64  `json:"league_id"`
	Status        string `json:"status"`
	Entries       int    `json:"entries"`
	FailedEntries int    `json:"failed_entries"`
	Message       string `json:"message,omitempty"`
}

// CacheWarmer reads league tables and member histories through the cache so later
// requests for those leagues are served without upstream calls.
type CacheWarmer struct {
	source  standings.Source
	workers int
	logger  *logging.Logger
}

func NewCacheWarmer(source standings.Source, workers int, logger *logging.Logger) *CacheWarmer {
	if workers < 1 {
		workers = DefaultWarmWorkers
	}
	if logger == nil {
		logger = logging.Default()
	}
	return &CacheWarmer{
		source:  source,
		workers: workers,
		logger:  logger.Named("cache_warmer"),
	}
}

type warmLeagueState struct {
	result  WarmLeagueResult
	entries []int64
	failed  atomic.Int32
}

func (w *CacheWarmer) Warm(ctx context.Context, leagueIDs []int64) (WarmResult, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.CacheWarmer.Warm")
	defer span.End()

	ids, err := normalizeLeagueIDs(leagueIDs)
	if err != nil {
		return WarmResult{}, err
	}

	started := time.Now()
	result := WarmResult{
		LeagueCount: len(ids),
		WorkerCount: w.workers,
		Leagues:     make([]WarmLeagueResult, 0, len(ids)),
	}
	if len(ids) == 0 {
		return result, nil
	}

	pool, err := ants.NewPool(w.workers)
	if err != nil {
		return WarmResult{}, fmt.Errorf("create worker pool: %w", err)
	}
	defer pool.Release()

	states := make([]*warmLeagueState, len(ids))
	for i, id := range ids {
		states[i] = &warmLeagueState{result: WarmLeagueResult{LeagueID: id}}
	}

	// Tables first: member lists are only known once each table is read.
	if err := submitAll(pool, len(states), func(i int) {
		state := states[i]
		snapshot, ok := w.source.LeagueStandings(ctx, state.result.LeagueID)
		if !ok {
			state.result.Status = warmStatusFailed
			state.result.Message = "league standings unavailable"
			return
		}
		state.entries = snapshot.EntryIDs()
	}); err != nil {
		return WarmResult{}, err
	}

	type entryTask struct {
		state   *warmLeagueState
		entryID int64
	}
	tasks := make([]entryTask, 0)
	for _, state := range states {
		for _, entryID := range state.entries {
			tasks = append(tasks, entryTask{state: state, entryID: entryID})
		}
	}

	if err := submitAll(pool, len(tasks), func(i int) {
		task := tasks[i]
		if _, ok := w.source.EntryHistory(ctx, task.entryID); !ok {
			task.state.failed.Add(1)
		}
	}); err != nil {
		return WarmResult{}, err
	}

	for _, state := range states {
		row := state.result
		if row.Status != warmStatusFailed {
			row.Entries = len(state.entries)
			row.FailedEntries = int(state.failed.Load())
			row.Status = warmStatusSuccess
			if row.FailedEntries > 0 {
				row.Status = warmStatusPartial
			}
			result.EntryCount += row.Entries
		} else {
			result.FailedCount++
		}
		result.Leagues = append(result.Leagues, row)
	}

	sort.SliceStable(result.Leagues, func(i, j int) bool {
		return result.Leagues[i].LeagueID < result.Leagues[j].LeagueID
	})
	result.DurationMs = time.Since(started).Milliseconds()

	w.logger.InfoContext(ctx, "cache warm finished",
		"leagues", result.LeagueCount,
		"entries", result.EntryCount,
		"failed_leagues", result.FailedCount,
		"duration_ms", result.DurationMs,
	)
	return result, nil
}

// Run warms leagueIDs immediately and then on every interval tick until ctx is done.
func (w *CacheWarmer) Run(ctx context.Context, leagueIDs []int64, interval time.Duration) {
	if len(leagueIDs) == 0 || interval <= 0 {
		return
	}

	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		if _, err := w.Warm(ctx, leagueIDs); err != nil {
			w.logger.WarnContext(ctx, "scheduled cache warm failed", "error", err)
		}
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
		}
	}
}

func submitAll(pool *ants.Pool, n int, fn func(i int)) error {
	var wg sync.WaitGroup
	for i := 0; i < n; i++ {
		wg.Add(1)
		if err := pool.Submit(func() {
			defer wg.Done()
			fn(i)
		}); err != nil {
			wg.Done()
			wg.Wait()
			return fmt.Errorf("submit task to worker pool: %w", err)
		}
	}
	wg.Wait()
	return nil
}

func normalizeLeagueIDs(leagueIDs []int64) ([]int64, error) {
	seen := make(map[int64]struct{}, len(leagueIDs))
	out := make([]int64, 0, len(leagueIDs))
	for _, id := range leagueIDs {
		if id <= 0 {
			return nil, fmt.Errorf("%w: league id must be positive, got %d", ErrInvalidInput, id)
		}
		if _, ok := seen[id]; ok {
			continue
		}
		seen[id] = struct{}{}
		out = append(out, id)
	}
	return out, nil
}
