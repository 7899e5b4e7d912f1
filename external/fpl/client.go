// Package fpl is the raw HTTP transport to the Fantasy Premier League API: GET a path,
// return the body, fail on anything that is not 2xx.
package fpl

import (
	"context"
	"io"
	"net/http"
	"strings"
	"time"

	crerr "github.com/cockroachdb/errors"
	"github.com/riskibarqy/fpl-analytics/internal/platform/logging"
	"github.com/riskibarqy/fpl-analytics/internal/platform/resilience"
	"github.com/valyala/bytebufferpool"
	"go.opentelemetry.io/contrib/instrumentation/net/http/otelhttp"
)

const (
	DefaultBaseURL  = "https://fantasy.premierleague.com/api"
	DefaultTimeout  = 30 * time.Second
	maxResponseSize = 8 << 20
	userAgent       = "fpl-analytics/1.0"
)

type ClientConfig struct {
	HTTPClient     *http.Client
	BaseURL        string
	Timeout        time.Duration
	MaxRetries     int
	RetryBackoff   time.Duration
	Logger         *logging.Logger
	CircuitBreaker resilience.CircuitBreakerConfig
}

type Client struct {
	httpClient     *http.Client
	baseURL        string
	maxRetries     int
	retryBackoff   time.Duration
	logger         *logging.Logger
	breaker        *resilience.CircuitBreaker
	circuitEnabled bool
}

func NewClient(cfg ClientConfig) *Client {
	logger := cfg.Logger
	if logger == nil {
		logger = logging.Default()
	}
	logger = logger.Named("fpl")

	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = DefaultTimeout
	}
	httpClient := cfg.HTTPClient
	if httpClient == nil {
		httpClient = &http.Client{
			Timeout:   timeout,
			Transport: otelhttp.NewTransport(http.DefaultTransport),
		}
	}
	if httpClient.Timeout <= 0 {
		httpClient.Timeout = timeout
	}

	baseURL := strings.TrimRight(strings.TrimSpace(cfg.BaseURL), "/")
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}
	backoff := cfg.RetryBackoff
	if backoff <= 0 {
		backoff = time.Second
	}

	breaker := resilience.NewCircuitBreaker(cfg.CircuitBreaker)
	breaker.OnStateChange(func(from, to resilience.CircuitState) {
		if to == resilience.CircuitStateClosed {
			breakerState.Set(0)
		} else {
			breakerState.Set(1)
		}
		logger.Warn("fpl circuit breaker state changed", "from", from, "to", to)
	})

	return &Client{
		httpClient:     httpClient,
		baseURL:        baseURL,
		maxRetries:     max(cfg.MaxRetries, 0),
		retryBackoff:   backoff,
		logger:         logger,
		breaker:        breaker,
		circuitEnabled: cfg.CircuitBreaker.Enabled,
	}
}

func (c *Client) BaseURL() string { return c.baseURL }

// GetJSON fetches baseURL+path and returns the raw body of a 2xx response.
func (c *Client) GetJSON(ctx context.Context, path string) ([]byte, error) {
	if !strings.HasPrefix(path, "/") {
		path = "/" + path
	}

	if c.circuitEnabled {
		if err := c.breaker.Allow(); err != nil {
			upstreamRequests.WithLabelValues("rejected").Inc()
			return nil, crerr.Wrapf(ErrUnavailable, "path=%s state=%s", path, c.breaker.State())
		}
	}

	raw, err := c.executeRequest(ctx, path)
	if c.circuitEnabled {
		if isTransient(err) {
			c.breaker.RecordFailure()
		} else {
			c.breaker.RecordSuccess()
		}
	}
	return raw, err
}

func (c *Client) executeRequest(ctx context.Context, path string) ([]byte, error) {
	fullURL := c.baseURL + path

	var lastErr error
	for attempt := 0; attempt <= c.maxRetries; attempt++ {
		raw, err := c.attempt(ctx, fullURL, path)
		if err == nil {
			return raw, nil
		}
		lastErr = err
		if !isTransient(err) || ctx.Err() != nil {
			return nil, err
		}

		if attempt == c.maxRetries {
			break
		}
		timer := time.NewTimer(time.Duration(attempt+1) * c.retryBackoff)
		select {
		case <-ctx.Done():
			timer.Stop()
			return nil, crerr.Wrap(ctx.Err(), "fpl request cancelled during backoff")
		case <-timer.C:
		}
	}

	c.logger.WarnContext(ctx, "fpl request failed", "url", fullURL, "attempts", c.maxRetries+1, "error", lastErr)
	return nil, lastErr
}

func (c *Client) attempt(ctx context.Context, fullURL, path string) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, fullURL, nil)
	if err != nil {
		return nil, crerr.Wrap(err, "build request")
	}
	req.Header.Set("Accept", "application/json")
	req.Header.Set("User-Agent", userAgent)

	started := time.Now()
	resp, err := c.httpClient.Do(req)
	upstreamDuration.Observe(time.Since(started).Seconds())
	if err != nil {
		upstreamRequests.WithLabelValues("network").Inc()
		return nil, crerr.Mark(crerr.Wrapf(err, "send request path=%s", path), ErrTransient)
	}
	defer resp.Body.Close()

	buf := bytebufferpool.Get()
	defer bytebufferpool.Put(buf)
	if _, err := buf.ReadFrom(io.LimitReader(resp.Body, maxResponseSize+1)); err != nil {
		upstreamRequests.WithLabelValues("network").Inc()
		return nil, crerr.Mark(crerr.Wrapf(err, "read response body path=%s", path), ErrTransient)
	}
	if buf.Len() > maxResponseSize {
		return nil, crerr.Newf("response body for path=%s exceeds %d bytes", path, maxResponseSize)
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		statusErr := &StatusError{StatusCode: resp.StatusCode, Path: path, Body: abbreviateBody(buf.B)}
		if isRetryableStatus(resp.StatusCode) {
			upstreamRequests.WithLabelValues("status_5xx").Inc()
			return nil, crerr.Mark(statusErr, ErrTransient)
		}
		upstreamRequests.WithLabelValues("status_4xx").Inc()
		return nil, statusErr
	}

	upstreamRequests.WithLabelValues("ok").Inc()
	return append([]byte(nil), buf.B...), nil
}

func abbreviateBody(body []byte) string {
	text := strings.TrimSpace(string(body))
	if len(text) <= 240 {
		return text
	}
	return text[:240] + "..."
}
