package cache

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"sync"
	"testing"
	"time"

	"github.com/riskibarqy/fpl-analytics/internal/platform/logging"
	"github.com/stretchr/testify/require"
)

type fakeClock struct {
	mu  sync.Mutex
	now time.Time
}

func (c *fakeClock) Now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.now
}

func (c *fakeClock) Advance(d time.Duration) {
	c.mu.Lock()
	c.now = c.now.Add(d)
	c.mu.Unlock()
}

func newTestStore(t *testing.T) (*Store, *MemoryBackend, *fakeClock) {
	t.Helper()

	clock := &fakeClock{now: time.Date(2025, 9, 20, 10, 0, 0, 0, time.UTC)}
	backend := NewMemoryBackend()
	backend.now = clock.Now
	return NewStore(backend, logging.NewNop()), backend, clock
}

type gameweek struct {
	Event       int `json:"event"`
	Points      int `json:"points"`
	TotalPoints int `json:"total_points"`
}

func TestStore_RoundTrip(t *testing.T) {
	t.Parallel()

	store, _, _ := newTestStore(t)
	ctx := context.Background()

	in := []gameweek{{Event: 1, Points: 60, TotalPoints: 60}, {Event: 2, Points: 45, TotalPoints: 105}}
	require.True(t, store.Set(ctx, "fpl_api:/entry/10/history/", in, 5*time.Minute))

	var out []gameweek
	require.True(t, store.Get(ctx, "fpl_api:/entry/10/history/", &out))
	require.Equal(t, in, out)
}

func TestStore_RawJSONRoundTrip(t *testing.T) {
	t.Parallel()

	store, _, _ := newTestStore(t)
	ctx := context.Background()

	raw := json.RawMessage(`{"league":{"id":314},"standings":{"results":[]}}`)
	require.True(t, store.Set(ctx, "fpl_api:/leagues-classic/314/standings/", raw, 0))

	var out json.RawMessage
	require.True(t, store.Get(ctx, "fpl_api:/leagues-classic/314/standings/", &out))
	require.JSONEq(t, string(raw), string(out))
}

func TestStore_ExpiresAfterTTL(t *testing.T) {
	t.Parallel()

	store, _, clock := newTestStore(t)
	ctx := context.Background()

	require.True(t, store.Set(ctx, "k", "v", time.Second))

	var got string
	require.True(t, store.Get(ctx, "k", &got))
	require.True(t, store.Exists(ctx, "k"))

	clock.Advance(time.Second)
	require.False(t, store.Get(ctx, "k", &got), "entry must behave as a miss once its ttl elapsed")
	require.False(t, store.Exists(ctx, "k"))
}

func TestStore_NoTTLNeverExpires(t *testing.T) {
	t.Parallel()

	store, _, clock := newTestStore(t)
	ctx := context.Background()

	require.True(t, store.Set(ctx, "k", 42, 0))
	clock.Advance(365 * 24 * time.Hour)

	var got int
	require.True(t, store.Get(ctx, "k", &got))
	require.Equal(t, 42, got)
}

func TestStore_SetOverwrites(t *testing.T) {
	t.Parallel()

	store, _, _ := newTestStore(t)
	ctx := context.Background()

	require.True(t, store.Set(ctx, "k", "first", time.Minute))
	require.True(t, store.Set(ctx, "k", "second", time.Minute))

	var got string
	require.True(t, store.Get(ctx, "k", &got))
	require.Equal(t, "second", got)
}

func TestStore_DeleteAndFlush(t *testing.T) {
	t.Parallel()

	store, backend, _ := newTestStore(t)
	ctx := context.Background()

	for i := 0; i < 3; i++ {
		require.True(t, store.Set(ctx, fmt.Sprintf("k%d", i), i, time.Minute))
	}
	require.True(t, store.Delete(ctx, "k0"))
	require.False(t, store.Exists(ctx, "k0"))
	require.Equal(t, 2, backend.Len())

	require.True(t, store.FlushAll(ctx))
	require.Equal(t, 0, backend.Len())
}

func TestStore_CorruptEntryIsMiss(t *testing.T) {
	t.Parallel()

	store, backend, _ := newTestStore(t)
	ctx := context.Background()

	require.NoError(t, backend.Set(ctx, "k", []byte("{not json"), 0))

	var got map[string]any
	require.False(t, store.Get(ctx, "k", &got))
}

func TestStore_UnencodableValueReturnsFalse(t *testing.T) {
	t.Parallel()

	store, _, _ := newTestStore(t)
	require.False(t, store.Set(context.Background(), "k", make(chan int), time.Minute))
}

type brokenBackend struct{}

var errBackendDown = errors.New("connection refused")

func (brokenBackend) Name() string { return "broken" }
func (brokenBackend) Get(context.Context, string) ([]byte, error) {
	return nil, errBackendDown
}
func (brokenBackend) Set(context.Context, string, []byte, time.Duration) error {
	return errBackendDown
}
func (brokenBackend) Delete(context.Context, string) error          { return errBackendDown }
func (brokenBackend) Exists(context.Context, string) (bool, error) { return false, errBackendDown }
func (brokenBackend) FlushAll(context.Context) error                { return errBackendDown }
func (brokenBackend) Close() error                                  { return nil }

func TestStore_BackendFailuresDegradeToMiss(t *testing.T) {
	t.Parallel()

	store := NewStore(brokenBackend{}, logging.NewNop())
	ctx := context.Background()

	var got string
	require.False(t, store.Get(ctx, "k", &got))
	require.False(t, store.Set(ctx, "k", "v", time.Minute))
	require.False(t, store.Delete(ctx, "k"))
	require.False(t, store.Exists(ctx, "k"))
	require.False(t, store.FlushAll(ctx))
}

func TestStore_ConcurrentAccessToDistinctKeys(t *testing.T) {
	t.Parallel()

	store, _, _ := newTestStore(t)
	ctx := context.Background()

	const workers = 32
	var wg sync.WaitGroup
	wg.Add(workers)
	for i := 0; i < workers; i++ {
		go func(i int) {
			defer wg.Done()
			key := fmt.Sprintf("fpl_api:/entry/%d/history/", i)
			if !store.Set(ctx, key, i, time.Minute) {
				t.Errorf("set %s failed", key)
				return
			}
			var got int
			if !store.Get(ctx, key, &got) || got != i {
				t.Errorf("get %s = %d, want %d", key, got, i)
			}
		}(i)
	}
	wg.Wait()
}

type countingBackend struct {
	brokenBackend
	calls int
}

func (b *countingBackend) Get(context.Context, string) ([]byte, error) {
	b.calls++
	return nil, ErrMiss
}
func (b *countingBackend) Set(context.Context, string, []byte, time.Duration) error {
	b.calls++
	return nil
}
func (b *countingBackend) Delete(context.Context, string) error {
	b.calls++
	return nil
}
func (b *countingBackend) Exists(context.Context, string) (bool, error) {
	b.calls++
	return true, nil
}

func TestStore_EmptyKeyNeverReachesBackend(t *testing.T) {
	t.Parallel()

	backend := &countingBackend{}
	store := NewStore(backend, logging.NewNop())
	ctx := context.Background()

	var got string
	require.False(t, store.Get(ctx, "", &got))
	require.False(t, store.Set(ctx, "", "v", time.Minute))
	require.False(t, store.Delete(ctx, ""))
	require.False(t, store.Exists(ctx, ""))
	require.Zero(t, backend.calls)
}
