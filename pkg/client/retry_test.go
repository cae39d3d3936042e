package client

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"
	"time"

	"token-swap-gateway/pkg/types"
)

// fakeClock resolves every delay immediately and records what was asked for.
type fakeClock struct {
	mu     sync.Mutex
	delays []time.Duration
}

func (c *fakeClock) After(d time.Duration) <-chan time.Time {
	c.mu.Lock()
	c.delays = append(c.delays, d)
	c.mu.Unlock()

	ch := make(chan time.Time, 1)
	ch <- time.Now()
	return ch
}

func (c *fakeClock) Now() time.Time { return time.Now() }

func newTestRetrier(clock *fakeClock) *Retrier {
	r := NewRetrier(nil)
	r.Clock = clock
	return r
}

func buildGet(url string) func() (*http.Request, error) {
	return func() (*http.Request, error) {
		return http.NewRequest(http.MethodGet, url, nil)
	}
}

func TestRetrier_RecoversFromRateLimit(t *testing.T) {
	var attempts int
	upstream := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		attempts++
		if attempts <= 2 {
			w.WriteHeader(http.StatusTooManyRequests)
			return
		}
		w.Write([]byte(`{"ok":true}`))
	}))
	defer upstream.Close()

	clock := &fakeClock{}
	body, err := newTestRetrier(clock).Do(context.Background(), buildGet(upstream.URL))
	if err != nil {
		t.Fatalf("Do() returned error: %v", err)
	}
	if string(body) != `{"ok":true}` {
		t.Errorf("body = %q, want pass-through of upstream body", body)
	}
	if attempts != 3 {
		t.Errorf("attempts = %d, want 3", attempts)
	}

	// Backoff is linear in the attempt number.
	want := []time.Duration{1 * time.Second, 2 * time.Second}
	if len(clock.delays) != len(want) {
		t.Fatalf("delays = %v, want %v", clock.delays, want)
	}
	for i := range want {
		if clock.delays[i] != want[i] {
			t.Errorf("delay[%d] = %v, want %v", i, clock.delays[i], want[i])
		}
	}
}

func TestRetrier_ExhaustsRateLimit(t *testing.T) {
	var attempts int
	upstream := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		attempts++
		w.WriteHeader(http.StatusTooManyRequests)
	}))
	defer upstream.Close()

	_, err := newTestRetrier(&fakeClock{}).Do(context.Background(), buildGet(upstream.URL))
	if err == nil {
		t.Fatal("Do() succeeded, want error after rate-limit exhaustion")
	}
	if attempts != DefaultMaxAttempts {
		t.Errorf("attempts = %d, want %d", attempts, DefaultMaxAttempts)
	}

	var uerr *types.UpstreamError
	if !errors.As(err, &uerr) {
		t.Fatalf("error type = %T, want *types.UpstreamError", err)
	}
	if uerr.Status != http.StatusTooManyRequests {
		t.Errorf("status = %d, want 429", uerr.Status)
	}
}

func TestRetrier_NonRateLimitFailsImmediately(t *testing.T) {
	var attempts int
	upstream := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		attempts++
		w.WriteHeader(http.StatusBadGateway)
		w.Write([]byte(`{"message":"routing unavailable"}`))
	}))
	defer upstream.Close()

	_, err := newTestRetrier(&fakeClock{}).Do(context.Background(), buildGet(upstream.URL))
	if err == nil {
		t.Fatal("Do() succeeded, want error")
	}
	if attempts != 1 {
		t.Errorf("attempts = %d, want 1 (no retry on non-429)", attempts)
	}

	var uerr *types.UpstreamError
	if !errors.As(err, &uerr) {
		t.Fatalf("error type = %T, want *types.UpstreamError", err)
	}
	if uerr.Body != `{"message":"routing unavailable"}` {
		t.Errorf("body = %q, want upstream payload verbatim", uerr.Body)
	}
}

func TestRetrier_TransportError(t *testing.T) {
	upstream := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	upstream.Close() // connection refused from here on

	_, err := newTestRetrier(&fakeClock{}).Do(context.Background(), buildGet(upstream.URL))
	if err == nil {
		t.Fatal("Do() succeeded against a closed server")
	}

	var uerr *types.UpstreamError
	if !errors.As(err, &uerr) {
		t.Fatalf("error type = %T, want *types.UpstreamError", err)
	}
	if uerr.Err == nil {
		t.Error("transport error should be preserved in Err")
	}
}
