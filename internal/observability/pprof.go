package observability

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"net/http/pprof"
	"time"

	"github.com/riskibarqy/fpl-analytics/internal/config"
	"github.com/riskibarqy/fpl-analytics/internal/platform/logging"
)

const (
	pprofPrefix            = "/debug/pprof/"
	pprofReadHeaderTimeout = 5 * time.Second
)

// newPprofMux registers the net/http/pprof handlers without touching http.DefaultServeMux.
func newPprofMux() *http.ServeMux {
	handlers := map[string]http.HandlerFunc{
		"":        pprof.Index,
		"cmdline": pprof.Cmdline,
		"profile": pprof.Profile,
		"symbol":  pprof.Symbol,
		"trace":   pprof.Trace,
	}

	mux := http.NewServeMux()
	for name, h := range handlers {
		mux.HandleFunc(pprofPrefix+name, h)
	}
	return mux
}

// StartPprofServer serves the runtime profiles on a separate listener. It returns nil when
// pprof is disabled.
func StartPprofServer(cfg config.Config, logger *logging.Logger) (*http.Server, error) {
	if logger == nil {
		logger = logging.Default()
	}
	logger = logger.Named("pprof")

	if !cfg.PprofEnabled {
		logger.Info("pprof disabled", "reason", "PPROF_ENABLED=false")
		return nil, nil
	}

	srv := &http.Server{
		Addr:              cfg.PprofAddr,
		Handler:           newPprofMux(),
		ReadHeaderTimeout: pprofReadHeaderTimeout,
	}

	go func() {
		logger.Info("listening", "addr", cfg.PprofAddr)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Error("listener failed", "addr", cfg.PprofAddr, "error", err)
		}
	}()

	return srv, nil
}

// StopPprofServer is a no-op for a nil server.
func StopPprofServer(srv *http.Server, logger *logging.Logger, timeout time.Duration) error {
	if srv == nil {
		return nil
	}
	if logger == nil {
		logger = logging.Default()
	}

	ctx, cancel := context.WithTimeout(context.Background(), timeout)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		return fmt.Errorf("shutdown pprof server: %w", err)
	}
	logger.Named("pprof").Info("stopped", "addr", srv.Addr)
	return nil
}
