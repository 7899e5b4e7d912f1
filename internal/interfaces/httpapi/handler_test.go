package httpapi

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"
	"time"

	sonic "github.com/bytedance/sonic"
	"github.com/riskibarqy/fpl-analytics/external/fpl"
	"github.com/riskibarqy/fpl-analytics/internal/infrastructure/fplapi"
	"github.com/riskibarqy/fpl-analytics/internal/platform/cache"
	"github.com/riskibarqy/fpl-analytics/internal/platform/logging"
	"github.com/riskibarqy/fpl-analytics/internal/usecase"
	"github.com/stretchr/testify/require"
)

const testInternalToken = "s3cret"

type fakeUpstream struct {
	mu       sync.Mutex
	payloads map[string]string
	calls    map[string]int
}

func (u *fakeUpstream) GetJSON(_ context.Context, path string) ([]byte, error) {
	u.mu.Lock()
	defer u.mu.Unlock()
	u.calls[path]++
	payload, ok := u.payloads[path]
	if !ok {
		return nil, &fpl.StatusError{StatusCode: http.StatusNotFound, Path: path}
	}
	return []byte(payload), nil
}

func (u *fakeUpstream) Calls(path string) int {
	u.mu.Lock()
	defer u.mu.Unlock()
	return u.calls[path]
}

func newTestRouter(t *testing.T) (http.Handler, *fakeUpstream) {
	t.Helper()

	upstream := &fakeUpstream{
		calls: make(map[string]int),
		payloads: map[string]string{
			"/leagues-classic/314/standings/": `{
				"league":{"id":314,"name":"Office League"},
				"new_entries":{"has_next":false,"page":1,"results":[]},
				"standings":{"has_next":false,"page":1,"results":[
					{"id":1,"entry":10,"entry_name":"A","player_name":"Alice","rank":1,"last_rank":1,"rank_sort":1,"total":210,"event_total":50,"has_played":true},
					{"id":2,"entry":20,"entry_name":"B","player_name":"Bob","rank":2,"last_rank":2,"rank_sort":2,"total":200,"event_total":52,"has_played":true}
				]}
			}`,
			"/entry/10/history/": `{"current":[
				{"event":1,"points":60,"total_points":60,"rank":2},
				{"event":2,"points":45,"total_points":105,"rank":2},
				{"event":3,"points":55,"total_points":160,"rank":1}
			],"past":[],"chips":[]}`,
			"/entry/20/history/": `{"current":[
				{"event":1,"points":70,"total_points":70,"rank":1},
				{"event":2,"points":32,"total_points":102,"rank":1},
				{"event":3,"points":48,"total_points":150,"rank":2}
			],"past":[],"chips":[]}`,
			"/entry/10/":               `{"id":10,"name":"A"}`,
			"/entry/20/":               `{"id":20,"name":"B"}`,
			"/entry/10/transfers/":     `[{"element_in":1,"element_out":2,"entry":10,"event":3},{"element_in":5,"element_out":6,"entry":10,"event":2}]`,
			"/bootstrap-static/":       `{"events":[{"id":3,"is_current":true}]}`,
			"/entry/10/event/3/picks/": `{"picks":[{"element":355,"is_captain":true}]}`,
			"/event/3/live/":           `{"elements":[]}`,
			"/fixtures/?event=3":       `[{"id":21,"event":3}]`,
		},
	}

	logger := logging.NewNop()
	store := cache.NewStore(cache.NewMemoryBackend(), logger)
	fetcher := fplapi.NewFetcher(upstream, store, time.Minute, logger)
	standingsService := usecase.NewStandingsService(fetcher, 4, logger)

	handler := NewHandler(HandlerDeps{
		LeagueService:    usecase.NewLeagueService(fetcher),
		StandingsService: standingsService,
		ManagerService:   usecase.NewManagerService(fetcher, fetcher),
		GameweekService:  usecase.NewGameweekService(fetcher),
		AnalyticsService: usecase.NewAnalyticsService(standingsService, fetcher, fetcher, 4, logger),
		CacheWarmer:      usecase.NewCacheWarmer(fetcher, 2, logger),
		Cache:            store,
		LeagueCache:      fetcher,
		WarmLeagueIDs:    []int64{314},
		Logger:           logger,
	})
	return NewRouter(handler, logger, nil, testInternalToken), upstream
}

func serve(t *testing.T, router http.Handler, req *http.Request) (*httptest.ResponseRecorder, map[string]any) {
	t.Helper()

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	var body map[string]any
	if err := sonic.Unmarshal(rec.Body.Bytes(), &body); err != nil {
		t.Fatalf("decode response: %v (raw=%s)", err, rec.Body.String())
	}
	return rec, body
}

func TestRouter_HistoricalStandings(t *testing.T) {
	router, _ := newTestRouter(t)

	rec, body := serve(t, router, httptest.NewRequest(http.MethodGet, "/v1/leagues/314/standings?gameweek=3", nil))
	require.Equal(t, http.StatusOK, rec.Code)

	data := body["data"].(map[string]any)
	results := data["standings"].(map[string]any)["results"].([]any)
	require.Len(t, results, 2)

	first := results[0].(map[string]any)
	require.EqualValues(t, 10, first["entry"])
	require.EqualValues(t, 1, first["rank"])
	require.EqualValues(t, 160, first["total"])
	require.EqualValues(t, 55, first["event_total"])
	require.Equal(t, true, first["has_played"])
	require.Equal(t, "Office League", data["league"].(map[string]any)["name"])
}

func TestRouter_LiveStandingsServedFromCacheOnRepeat(t *testing.T) {
	router, upstream := newTestRouter(t)

	for i := 0; i < 2; i++ {
		rec, _ := serve(t, router, httptest.NewRequest(http.MethodGet, "/v1/leagues/314/standings", nil))
		require.Equal(t, http.StatusOK, rec.Code)
	}
	require.Equal(t, 1, upstream.Calls("/leagues-classic/314/standings/"))
}

func TestRouter_StandingsErrors(t *testing.T) {
	router, _ := newTestRouter(t)

	tests := []struct {
		path   string
		status int
	}{
		{path: "/v1/leagues/999/standings", status: http.StatusNotFound},
		{path: "/v1/leagues/abc/standings", status: http.StatusBadRequest},
		{path: "/v1/leagues/0/standings", status: http.StatusBadRequest},
		{path: "/v1/leagues/314/standings?gameweek=39", status: http.StatusBadRequest},
		{path: "/v1/leagues/314/standings?gameweek=-1", status: http.StatusBadRequest},
	}
	for _, tt := range tests {
		rec, body := serve(t, router, httptest.NewRequest(http.MethodGet, tt.path, nil))
		if rec.Code != tt.status {
			t.Fatalf("%s: expected status %d, got %d (%v)", tt.path, tt.status, rec.Code, body)
		}
		if _, ok := body["error"]; !ok {
			t.Fatalf("%s: expected error envelope", tt.path)
		}
	}
}

func TestRouter_ManagerEndpoints(t *testing.T) {
	router, _ := newTestRouter(t)

	rec, body := serve(t, router, httptest.NewRequest(http.MethodGet, "/v1/managers/10", nil))
	require.Equal(t, http.StatusOK, rec.Code)
	require.Equal(t, "A", body["data"].(map[string]any)["name"])

	rec, body = serve(t, router, httptest.NewRequest(http.MethodGet, "/v1/managers/10/team", nil))
	require.Equal(t, http.StatusOK, rec.Code)
	picks := body["data"].(map[string]any)["picks"].([]any)
	require.Len(t, picks, 1)

	rec, body = serve(t, router, httptest.NewRequest(http.MethodGet, "/v1/managers/10/transfers?gameweek=3", nil))
	require.Equal(t, http.StatusOK, rec.Code)
	require.Len(t, body["data"].([]any), 1)

	rec, body = serve(t, router, httptest.NewRequest(http.MethodGet, "/v1/managers/77/transfers", nil))
	require.Equal(t, http.StatusOK, rec.Code)
	require.Empty(t, body["data"].([]any))

	rec, _ = serve(t, router, httptest.NewRequest(http.MethodGet, "/v1/managers/77", nil))
	require.Equal(t, http.StatusNotFound, rec.Code)
}

func TestRouter_GameweekEndpoints(t *testing.T) {
	router, _ := newTestRouter(t)

	rec, _ := serve(t, router, httptest.NewRequest(http.MethodGet, "/v1/gameweeks/3/live", nil))
	require.Equal(t, http.StatusOK, rec.Code)

	rec, body := serve(t, router, httptest.NewRequest(http.MethodGet, "/v1/fixtures?gameweek=3", nil))
	require.Equal(t, http.StatusOK, rec.Code)
	require.Len(t, body["data"].([]any), 1)

	rec, _ = serve(t, router, httptest.NewRequest(http.MethodGet, "/v1/gameweeks/0/live", nil))
	require.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestRouter_AnalyticsEndpoints(t *testing.T) {
	router, _ := newTestRouter(t)

	rec, body := serve(t, router, httptest.NewRequest(http.MethodGet, "/v1/analytics/leagues/314/summary?gameweek=3", nil))
	require.Equal(t, http.StatusOK, rec.Code)
	summary := body["data"].(map[string]any)
	require.EqualValues(t, 2, summary["total_managers"])
	require.EqualValues(t, 55, summary["highest_points"])
	require.EqualValues(t, 48, summary["lowest_points"])

	rec, body = serve(t, router, httptest.NewRequest(http.MethodGet, "/v1/analytics/managers/compare?manager1=10&manager2=20&gameweek_start=2", nil))
	require.Equal(t, http.StatusOK, rec.Code)
	totals := body["data"].(map[string]any)["total_points_comparison"].(map[string]any)
	require.EqualValues(t, 100, totals["manager1"])
	require.EqualValues(t, 80, totals["manager2"])

	rec, _ = serve(t, router, httptest.NewRequest(http.MethodGet, "/v1/analytics/managers/compare?manager1=10&manager2=10", nil))
	require.Equal(t, http.StatusBadRequest, rec.Code)

	rec, _ = serve(t, router, httptest.NewRequest(http.MethodGet, "/v1/analytics/managers/compare?manager1=10", nil))
	require.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestRouter_InternalCacheRoutes(t *testing.T) {
	router, upstream := newTestRouter(t)

	req := httptest.NewRequest(http.MethodPost, "/v1/internal/cache/warm", strings.NewReader(`{"league_ids":[314]}`))
	rec, _ := serve(t, router, req)
	require.Equal(t, http.StatusUnauthorized, rec.Code)

	req = httptest.NewRequest(http.MethodPost, "/v1/internal/cache/warm", strings.NewReader(`{"league_ids":[314]}`))
	req.Header.Set("X-Internal-Token", testInternalToken)
	rec, body := serve(t, router, req)
	require.Equal(t, http.StatusOK, rec.Code)
	require.EqualValues(t, 2, body["data"].(map[string]any)["entry_count"])
	require.Equal(t, 1, upstream.Calls("/entry/20/history/"))

	// Warmed entries are served without another upstream call.
	rec, _ = serve(t, router, httptest.NewRequest(http.MethodGet, "/v1/leagues/314/standings?gameweek=2", nil))
	require.Equal(t, http.StatusOK, rec.Code)
	require.Equal(t, 1, upstream.Calls("/entry/20/history/"))

	req = httptest.NewRequest(http.MethodDelete, "/v1/internal/cache", nil)
	req.Header.Set("X-Internal-Token", testInternalToken)
	rec, _ = serve(t, router, req)
	require.Equal(t, http.StatusOK, rec.Code)

	rec, _ = serve(t, router, httptest.NewRequest(http.MethodGet, "/v1/leagues/314/standings", nil))
	require.Equal(t, http.StatusOK, rec.Code)
	require.Equal(t, 2, upstream.Calls("/leagues-classic/314/standings/"))
}

func TestRouter_InvalidateLeagueCache(t *testing.T) {
	router, upstream := newTestRouter(t)

	rec, _ := serve(t, router, httptest.NewRequest(http.MethodGet, "/v1/leagues/314/standings?gameweek=3", nil))
	require.Equal(t, http.StatusOK, rec.Code)
	rec, _ = serve(t, router, httptest.NewRequest(http.MethodGet, "/v1/managers/10", nil))
	require.Equal(t, http.StatusOK, rec.Code)

	req := httptest.NewRequest(http.MethodDelete, "/v1/internal/cache/leagues/314", nil)
	rec, _ = serve(t, router, req)
	require.Equal(t, http.StatusUnauthorized, rec.Code)

	req = httptest.NewRequest(http.MethodDelete, "/v1/internal/cache/leagues/314", nil)
	req.Header.Set("X-Internal-Token", testInternalToken)
	rec, body := serve(t, router, req)
	require.Equal(t, http.StatusOK, rec.Code)
	data := body["data"].(map[string]any)
	require.EqualValues(t, 314, data["league_id"])
	require.EqualValues(t, 3, data["keys"])

	// Table and member histories are read again; unrelated entries stay cached.
	rec, _ = serve(t, router, httptest.NewRequest(http.MethodGet, "/v1/leagues/314/standings?gameweek=3", nil))
	require.Equal(t, http.StatusOK, rec.Code)
	require.Equal(t, 2, upstream.Calls("/leagues-classic/314/standings/"))
	require.Equal(t, 2, upstream.Calls("/entry/10/history/"))
	require.Equal(t, 2, upstream.Calls("/entry/20/history/"))

	rec, _ = serve(t, router, httptest.NewRequest(http.MethodGet, "/v1/managers/10", nil))
	require.Equal(t, http.StatusOK, rec.Code)
	require.Equal(t, 1, upstream.Calls("/entry/10/"))

	req = httptest.NewRequest(http.MethodDelete, "/v1/internal/cache/leagues/0", nil)
	req.Header.Set("X-Internal-Token", testInternalToken)
	rec, _ = serve(t, router, req)
	require.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestRouter_WarmCacheUsesConfiguredLeagues(t *testing.T) {
	router, _ := newTestRouter(t)

	req := httptest.NewRequest(http.MethodPost, "/v1/internal/cache/warm", nil)
	req.Header.Set("X-Internal-Token", testInternalToken)
	rec, body := serve(t, router, req)
	require.Equal(t, http.StatusOK, rec.Code)
	require.EqualValues(t, 1, body["data"].(map[string]any)["league_count"])

	req = httptest.NewRequest(http.MethodPost, "/v1/internal/cache/warm", strings.NewReader(`{"league_ids":[314],"force":true}`))
	req.Header.Set("X-Internal-Token", testInternalToken)
	rec, _ = serve(t, router, req)
	require.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestRouter_Healthz(t *testing.T) {
	router, _ := newTestRouter(t)

	rec, body := serve(t, router, httptest.NewRequest(http.MethodGet, "/healthz", nil))
	require.Equal(t, http.StatusOK, rec.Code)
	require.Equal(t, "ok", body["data"].(map[string]any)["status"])
}
