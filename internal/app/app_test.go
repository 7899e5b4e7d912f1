package app

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/riskibarqy/fpl-analytics/internal/config"
	"github.com/riskibarqy/fpl-analytics/internal/platform/logging"
)

func memoryConfig() config.Config {
	return config.Config{
		AppEnv:                   config.EnvDev,
		ServiceName:              "fpl-analytics-api",
		HTTPAddr:                 ":0",
		ReadTimeout:              time.Second,
		WriteTimeout:             time.Second,
		CORSAllowedOrigins:       []string{"*"},
		InternalToken:            "s3cret",
		FPLBaseURL:               "http://127.0.0.1:1",
		FPLTimeout:               time.Second,
		FPLRetryBackoff:          time.Millisecond,
		FPLHistoryMaxConcurrency: 4,
		CacheBackend:             config.CacheBackendMemory,
		CacheTTL:                 time.Minute,
		CacheWarmWorkers:         2,
	}
}

func TestNew_ServesHealthz(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	application, err := New(ctx, memoryConfig(), logging.NewNop())
	if err != nil {
		t.Fatalf("build app: %v", err)
	}
	defer application.Close()

	rec := httptest.NewRecorder()
	application.Server.Handler.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/healthz", nil))
	if rec.Code != http.StatusOK {
		t.Fatalf("expected status %d, got %d", http.StatusOK, rec.Code)
	}
	if application.Server.WriteTimeout != time.Second {
		t.Fatalf("unexpected write timeout: %s", application.Server.WriteTimeout)
	}
}

func TestNew_RequiresAddr(t *testing.T) {
	cfg := memoryConfig()
	cfg.HTTPAddr = ""

	if _, err := New(context.Background(), cfg, logging.NewNop()); err == nil {
		t.Fatalf("expected error for empty http addr")
	}
}

func TestOpenCache_Backends(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	cfg := memoryConfig()
	store, err := OpenCache(ctx, cfg, nil)
	if err != nil {
		t.Fatalf("open memory cache: %v", err)
	}
	if store.Backend().Name() != "memory" {
		t.Fatalf("unexpected backend: %s", store.Backend().Name())
	}

	cfg.CacheBackend = config.CacheBackendRedis
	cfg.RedisURL = "not a url"
	if _, err := OpenCache(ctx, cfg, nil); err == nil {
		t.Fatalf("expected error for invalid redis url")
	}

	cfg.CacheBackend = "memcached"
	if _, err := OpenCache(ctx, cfg, nil); err == nil {
		t.Fatalf("expected error for unsupported backend")
	}
}

func TestClose_NilApp(t *testing.T) {
	var application *App
	if err := application.Close(); err != nil {
		t.Fatalf("close nil app: %v", err)
	}
}
