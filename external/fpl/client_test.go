package fpl

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync/atomic"
	"testing"
	"time"

	crerr "github.com/cockroachdb/errors"
	"github.com/riskibarqy/fpl-analytics/internal/platform/resilience"
	"github.com/stretchr/testify/require"
)

func newTestClient(baseURL string, retries int, breaker resilience.CircuitBreakerConfig) *Client {
	return NewClient(ClientConfig{
		BaseURL:        baseURL,
		Timeout:        2 * time.Second,
		MaxRetries:     retries,
		RetryBackoff:   time.Millisecond,
		CircuitBreaker: breaker,
	})
}

func TestClientGetJSON_ReturnsBody(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/api/bootstrap-static/" {
			t.Errorf("unexpected path: %s", r.URL.Path)
		}
		if got := r.Header.Get("Accept"); got != "application/json" {
			t.Errorf("unexpected accept header: %s", got)
		}
		_, _ = w.Write([]byte(`{"events":[]}`))
	}))
	defer srv.Close()

	client := newTestClient(srv.URL+"/api/", 0, resilience.CircuitBreakerConfig{})
	raw, err := client.GetJSON(context.Background(), "bootstrap-static/")
	require.NoError(t, err)
	require.JSONEq(t, `{"events":[]}`, string(raw))
}

func TestClientGetJSON_NotFoundIsNotRetried(t *testing.T) {
	var calls atomic.Int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls.Add(1)
		http.Error(w, "The game is being updated.", http.StatusNotFound)
	}))
	defer srv.Close()

	client := newTestClient(srv.URL, 3, resilience.CircuitBreakerConfig{})
	_, err := client.GetJSON(context.Background(), "/entry/1/history/")
	if err == nil {
		t.Fatalf("expected error for 404")
	}
	if !IsNotFound(err) {
		t.Fatalf("expected not found status error, got %v", err)
	}
	if !crerr.Is(err, ErrUpstreamStatus) {
		t.Fatalf("expected ErrUpstreamStatus, got %v", err)
	}
	if isTransient(err) {
		t.Fatalf("404 must not be transient")
	}
	if calls.Load() != 1 {
		t.Fatalf("expected one call, got %d", calls.Load())
	}
}

func TestClientGetJSON_RetriesServerErrors(t *testing.T) {
	var calls atomic.Int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if calls.Add(1) < 3 {
			w.WriteHeader(http.StatusServiceUnavailable)
			return
		}
		_, _ = w.Write([]byte(`{"ok":true}`))
	}))
	defer srv.Close()

	client := newTestClient(srv.URL, 2, resilience.CircuitBreakerConfig{})
	raw, err := client.GetJSON(context.Background(), "/fixtures/")
	require.NoError(t, err)
	require.Equal(t, `{"ok":true}`, string(raw))
	require.EqualValues(t, 3, calls.Load())
}

func TestClientGetJSON_GivesUpAfterRetries(t *testing.T) {
	var calls atomic.Int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls.Add(1)
		w.WriteHeader(http.StatusBadGateway)
	}))
	defer srv.Close()

	client := newTestClient(srv.URL, 1, resilience.CircuitBreakerConfig{})
	_, err := client.GetJSON(context.Background(), "/fixtures/")
	require.Error(t, err)
	require.True(t, isTransient(err))

	var statusErr *StatusError
	require.True(t, crerr.As(err, &statusErr))
	require.Equal(t, http.StatusBadGateway, statusErr.StatusCode)
	require.EqualValues(t, 2, calls.Load())
}

func TestClientGetJSON_CircuitOpensAfterFailures(t *testing.T) {
	var calls atomic.Int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls.Add(1)
		w.WriteHeader(http.StatusInternalServerError)
	}))
	defer srv.Close()

	client := newTestClient(srv.URL, 0, resilience.CircuitBreakerConfig{
		Enabled:          true,
		FailureThreshold: 2,
		OpenTimeout:      time.Minute,
		HalfOpenMaxReq:   1,
	})

	for i := 0; i < 2; i++ {
		if _, err := client.GetJSON(context.Background(), "/fixtures/"); err == nil {
			t.Fatalf("expected failure on call %d", i)
		}
	}

	_, err := client.GetJSON(context.Background(), "/fixtures/")
	if !crerr.Is(err, ErrUnavailable) {
		t.Fatalf("expected ErrUnavailable while open, got %v", err)
	}
	if calls.Load() != 2 {
		t.Fatalf("open circuit must not reach upstream, calls=%d", calls.Load())
	}
}

func TestClientGetJSON_CancelledContext(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusServiceUnavailable)
	}))
	defer srv.Close()

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	client := newTestClient(srv.URL, 5, resilience.CircuitBreakerConfig{})
	if _, err := client.GetJSON(ctx, "/fixtures/"); err == nil {
		t.Fatalf("expected error for cancelled context")
	}
}

func TestAbbreviateBody(t *testing.T) {
	long := strings.Repeat("x", 300)
	got := abbreviateBody([]byte(long))
	if len(got) != 243 || !strings.HasSuffix(got, "...") {
		t.Fatalf("unexpected abbreviation: len=%d", len(got))
	}
	if abbreviateBody([]byte("  short \n")) != "short" {
		t.Fatalf("expected trimmed short body")
	}
}
