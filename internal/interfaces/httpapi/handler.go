package httpapi

import (
	"context"
	"fmt"
	"net/http"
	"strconv"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/riskibarqy/fpl-analytics/internal/platform/logging"
	"github.com/riskibarqy/fpl-analytics/internal/usecase"
)

// CacheFlusher drops every cached upstream payload. *cache.Store satisfies it.
type CacheFlusher interface {
	FlushAll(ctx context.Context) bool
}

// LeagueCacheInvalidator drops one league's cached reads. *fplapi.Fetcher satisfies it.
type LeagueCacheInvalidator interface {
	InvalidateLeague(ctx context.Context, leagueID int64) int
}

type Handler struct {
	leagueService    *usecase.LeagueService
	standingsService *usecase.StandingsService
	managerService   *usecase.ManagerService
	gameweekService  *usecase.GameweekService
	analyticsService *usecase.AnalyticsService
	cacheWarmer      *usecase.CacheWarmer
	cache            CacheFlusher
	leagueCache      LeagueCacheInvalidator
	warmLeagueIDs    []int64
	logger           *logging.Logger
	validator        *validator.Validate
}

type HandlerDeps struct {
	LeagueService    *usecase.LeagueService
	StandingsService *usecase.StandingsService
	ManagerService   *usecase.ManagerService
	GameweekService  *usecase.GameweekService
	AnalyticsService *usecase.AnalyticsService
	CacheWarmer      *usecase.CacheWarmer
	Cache            CacheFlusher
	LeagueCache      LeagueCacheInvalidator
	// WarmLeagueIDs is used by WarmCache when the request names no leagues.
	WarmLeagueIDs []int64
	Logger        *logging.Logger
}

func NewHandler(deps HandlerDeps) *Handler {
	logger := deps.Logger
	if logger == nil {
		logger = logging.Default()
	}

	return &Handler{
		leagueService:    deps.LeagueService,
		standingsService: deps.StandingsService,
		managerService:   deps.ManagerService,
		gameweekService:  deps.GameweekService,
		analyticsService: deps.AnalyticsService,
		cacheWarmer:      deps.CacheWarmer,
		cache:            deps.Cache,
		leagueCache:      deps.LeagueCache,
		warmLeagueIDs:    append([]int64(nil), deps.WarmLeagueIDs...),
		logger:           logger.Named("httpapi"),
		validator:        validator.New(),
	}
}

func (h *Handler) Healthz(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.Healthz")
	defer span.End()

	writeSuccess(ctx, w, http.StatusOK, map[string]string{"status": "ok"})
}

func (h *Handler) validateRequest(ctx context.Context, payload any) error {
	ctx, span := startSpan(ctx, "httpapi.Handler.validateRequest")
	defer span.End()

	if err := h.validator.StructCtx(ctx, payload); err != nil {
		return fmt.Errorf("%w: validation failed: %v", usecase.ErrInvalidInput, err)
	}

	return nil
}

// parseInt64 reads an integer path or query value. An empty optional value is 0.
func parseInt64(raw, name string, required bool) (int64, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		if required {
			return 0, fmt.Errorf("%w: %s is required", usecase.ErrInvalidInput, name)
		}
		return 0, nil
	}
	value, err := strconv.ParseInt(raw, 10, 64)
	if err != nil {
		return 0, fmt.Errorf("%w: %s must be an integer", usecase.ErrInvalidInput, name)
	}
	return value, nil
}

func parseInt(raw, name string, required bool) (int, error) {
	value, err := parseInt64(raw, name, required)
	if err != nil {
		return 0, err
	}
	return int(value), nil
}
