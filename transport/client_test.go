package transport

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"hyperliquid-go-sdk/hlerr"
)

func newTestClient(t *testing.T, srv *httptest.Server) *Client {
	t.Helper()
	cfg := DefaultConfig(srv.URL)
	cfg.Retry.BaseDelay = time.Millisecond
	cfg.Retry.MaxDelay = 5 * time.Millisecond
	c, err := NewClient(cfg)
	if err != nil {
		t.Fatalf("NewClient: %v", err)
	}
	t.Cleanup(c.Shutdown)
	return c
}

func TestClientSuccessResponse(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"status":"ok"}`))
	}))
	defer srv.Close()

	c := newTestClient(t, srv)
	env, err := c.Do(context.Background(), http.MethodGet, "/info", nil)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if env.IsError {
		t.Fatal("expected success envelope")
	}
	stats := c.Stats()
	if stats.Total != 1 || stats.Successful != 1 {
		t.Fatalf("unexpected stats: %+v", stats)
	}
}

func TestClientRetriesOn503ThenSucceeds(t *testing.T) {
	calls := 0
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls++
		if calls < 2 {
			w.WriteHeader(http.StatusServiceUnavailable)
			return
		}
		_, _ = w.Write([]byte(`{"status":"ok"}`))
	}))
	defer srv.Close()

	c := newTestClient(t, srv)
	env, err := c.Do(context.Background(), http.MethodGet, "/info", nil)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if env.IsError {
		t.Fatal("expected success envelope after retry")
	}
	stats := c.Stats()
	if stats.RetriesAttempted == 0 || stats.RetriesSucceeded == 0 {
		t.Fatalf("expected retry counters to advance: %+v", stats)
	}
}

func TestClientRetryExhaustedOnPersistent5xx(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	}))
	defer srv.Close()

	cfg := DefaultConfig(srv.URL)
	cfg.Retry.MaxRetries = 1
	cfg.Retry.BaseDelay = time.Millisecond
	cfg.Retry.MaxDelay = 5 * time.Millisecond
	c, err := NewClient(cfg)
	if err != nil {
		t.Fatalf("NewClient: %v", err)
	}
	defer c.Shutdown()

	_, err = c.Do(context.Background(), http.MethodGet, "/info", nil)
	if err == nil {
		t.Fatal("expected error after exhausting retries")
	}
	var e *hlerr.Error
	if he, ok := err.(*hlerr.Error); ok {
		e = he
	}
	if e == nil || e.Kind != hlerr.RetryExhausted {
		t.Fatalf("expected RetryExhausted error, got %v", err)
	}
	stats := c.Stats()
	if stats.RetriesAttempted != 1 || stats.RetryExhausted != 1 || stats.Successful != 0 {
		t.Fatalf("unexpected stats after exhaustion: %+v", stats)
	}
}

func TestClientClientErrorNotRetried(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadRequest)
		_, _ = w.Write([]byte(`{"code":7,"msg":"bad order"}`))
	}))
	defer srv.Close()

	c := newTestClient(t, srv)
	_, err := c.Do(context.Background(), http.MethodPost, "/exchange", map[string]string{"type": "order"})
	if err == nil {
		t.Fatal("expected client error")
	}
	e, ok := err.(*hlerr.Error)
	if !ok || e.Kind != hlerr.Client || e.Code != "7" {
		t.Fatalf("expected Client error code 7, got %v", err)
	}
}

func TestClientRateLimited(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Retry-After", "2")
		w.WriteHeader(http.StatusTooManyRequests)
	}))
	defer srv.Close()

	cfg := DefaultConfig(srv.URL)
	cfg.Retry.MaxRetries = 0
	c, err := NewClient(cfg)
	if err != nil {
		t.Fatalf("NewClient: %v", err)
	}
	defer c.Shutdown()

	_, err = c.Do(context.Background(), http.MethodGet, "/info", nil)
	if err == nil {
		t.Fatal("expected rate limit error")
	}
	e, ok := err.(*hlerr.Error)
	if !ok || e.Kind != hlerr.RateLimit || e.RetryAfter != 2 {
		t.Fatalf("expected RateLimit error with retry_after=2, got %v", err)
	}
}

func TestPinnedCertVerifierEmptyAcceptsAll(t *testing.T) {
	v := NewPinnedCertVerifier(nil)
	if err := v.Verify([][]byte{[]byte("anything")}, nil); err != nil {
		t.Fatalf("expected empty pin set to accept all, got %v", err)
	}
}

func TestPinnedCertVerifierRejectsMismatch(t *testing.T) {
	v := NewPinnedCertVerifier([][]byte{[]byte("expected-cert")})
	if err := v.Verify([][]byte{[]byte("other-cert")}, nil); err == nil {
		t.Fatal("expected mismatch to be rejected")
	}
}

func TestPinnedCertVerifierAcceptsMatch(t *testing.T) {
	pin := []byte("matching-cert")
	v := NewPinnedCertVerifier([][]byte{pin})
	if err := v.Verify([][]byte{pin}, nil); err != nil {
		t.Fatalf("expected match to be accepted, got %v", err)
	}
}

func TestBackoffDelayBounds(t *testing.T) {
	policy := RetryPolicy{BaseDelay: 100 * time.Millisecond, MaxDelay: time.Second, JitterFactor: 0.5}
	for attempt := 0; attempt < 10; attempt++ {
		d := backoffDelay(policy, attempt)
		if d < 0 {
			t.Fatalf("attempt %d: negative delay %v", attempt, d)
		}
		maxPossible := policy.MaxDelay + time.Duration(float64(policy.MaxDelay)*policy.JitterFactor)
		if d > maxPossible {
			t.Fatalf("attempt %d: delay %v exceeds max+jitter bound %v", attempt, d, maxPossible)
		}
	}
}
