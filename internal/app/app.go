package app

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/riskibarqy/fpl-analytics/external/fpl"
	"github.com/riskibarqy/fpl-analytics/internal/config"
	"github.com/riskibarqy/fpl-analytics/internal/infrastructure/fplapi"
	"github.com/riskibarqy/fpl-analytics/internal/interfaces/httpapi"
	"github.com/riskibarqy/fpl-analytics/internal/platform/cache"
	"github.com/riskibarqy/fpl-analytics/internal/platform/logging"
	"github.com/riskibarqy/fpl-analytics/internal/platform/resilience"
	"github.com/riskibarqy/fpl-analytics/internal/usecase"
)

const redisPingTimeout = 3 * time.Second

// App owns the long lived pieces of the service. Close releases the cache connection.
type App struct {
	Server    *http.Server
	Store     *cache.Store
	Fetcher   *fplapi.Fetcher
	Standings *usecase.StandingsService
	Warmer    *usecase.CacheWarmer

	cfg    config.Config
	logger *logging.Logger
}

// OpenCache builds the cache store for the configured backend. An unreachable Redis is
// logged and tolerated: every read then misses and requests go straight upstream.
func OpenCache(ctx context.Context, cfg config.Config, logger *logging.Logger) (*cache.Store, error) {
	if logger == nil {
		logger = logging.Default()
	}
	logger = logger.Named("cache")

	switch cfg.CacheBackend {
	case config.CacheBackendMemory:
		backend := cache.NewMemoryBackend()
		backend.StartJanitor(ctx, cfg.CacheJanitorInterval)
		logger.Info("cache backend ready", "backend", backend.Name())
		return cache.NewStore(backend, logger), nil
	case config.CacheBackendRedis:
		backend, err := cache.NewRedisBackend(cfg.RedisURL)
		if err != nil {
			return nil, err
		}
		pingCtx, cancel := context.WithTimeout(ctx, redisPingTimeout)
		defer cancel()
		if err := backend.Ping(pingCtx); err != nil {
			logger.Warn("redis ping failed, cache will miss until it recovers", "error", err)
		} else {
			logger.Info("cache backend ready", "backend", backend.Name())
		}
		return cache.NewStore(backend, logger), nil
	default:
		return nil, fmt.Errorf("unsupported cache backend %q", cfg.CacheBackend)
	}
}

func NewUpstreamClient(cfg config.Config, logger *logging.Logger) *fpl.Client {
	return fpl.NewClient(fpl.ClientConfig{
		BaseURL:      cfg.FPLBaseURL,
		Timeout:      cfg.FPLTimeout,
		MaxRetries:   cfg.FPLMaxRetries,
		RetryBackoff: cfg.FPLRetryBackoff,
		Logger:       logger,
		CircuitBreaker: resilience.CircuitBreakerConfig{
			Enabled:          cfg.FPLCircuitEnabled,
			FailureThreshold: cfg.FPLCircuitFailureCount,
			OpenTimeout:      cfg.FPLCircuitOpenTimeout,
			HalfOpenMaxReq:   cfg.FPLCircuitHalfOpenMaxReq,
		},
	})
}

func New(ctx context.Context, cfg config.Config, logger *logging.Logger) (*App, error) {
	if logger == nil {
		logger = logging.Default()
	}
	if cfg.HTTPAddr == "" {
		return nil, fmt.Errorf("http server addr cannot be empty")
	}

	store, err := OpenCache(ctx, cfg, logger)
	if err != nil {
		return nil, fmt.Errorf("open cache: %w", err)
	}

	fetcher := fplapi.NewFetcher(NewUpstreamClient(cfg, logger), store, cfg.CacheTTL, logger)

	standingsSvc := usecase.NewStandingsService(fetcher, cfg.FPLHistoryMaxConcurrency, logger)
	warmer := usecase.NewCacheWarmer(fetcher, cfg.CacheWarmWorkers, logger)

	handler := httpapi.NewHandler(httpapi.HandlerDeps{
		LeagueService:    usecase.NewLeagueService(fetcher),
		StandingsService: standingsSvc,
		ManagerService:   usecase.NewManagerService(fetcher, fetcher),
		GameweekService:  usecase.NewGameweekService(fetcher),
		AnalyticsService: usecase.NewAnalyticsService(standingsSvc, fetcher, fetcher, cfg.FPLHistoryMaxConcurrency, logger),
		CacheWarmer:      warmer,
		Cache:            store,
		LeagueCache:      fetcher,
		WarmLeagueIDs:    cfg.CacheWarmLeagueIDs,
		Logger:           logger,
	})
	router := httpapi.NewRouter(handler, logger, cfg.CORSAllowedOrigins, cfg.InternalToken)

	return &App{
		Server: &http.Server{
			Addr:         cfg.HTTPAddr,
			Handler:      router,
			ReadTimeout:  cfg.ReadTimeout,
			WriteTimeout: cfg.WriteTimeout,
		},
		Store:     store,
		Fetcher:   fetcher,
		Standings: standingsSvc,
		Warmer:    warmer,
		cfg:       cfg,
		logger:    logger,
	}, nil
}

// StartBackground launches the periodic cache warmer when one is configured.
func (a *App) StartBackground(ctx context.Context) {
	if a.cfg.CacheWarmInterval <= 0 || len(a.cfg.CacheWarmLeagueIDs) == 0 {
		return
	}
	a.logger.Info("scheduled cache warming enabled",
		"interval", a.cfg.CacheWarmInterval,
		"league_ids", a.cfg.CacheWarmLeagueIDs,
	)
	go a.Warmer.Run(ctx, a.cfg.CacheWarmLeagueIDs, a.cfg.CacheWarmInterval)
}

func (a *App) Close() error {
	if a == nil || a.Store == nil {
		return nil
	}
	return a.Store.Close()
}
