package client

import (
	"bytes"
	"context"
	"io"
	"net/http"
	"time"

	"token-swap-gateway/pkg/types"
	"token-swap-gateway/pkg/util"
)

const (
	// DefaultMaxAttempts bounds the retry loop, counting the first try.
	DefaultMaxAttempts = 3
	// DefaultBaseDelay is multiplied by the attempt number between retries.
	DefaultBaseDelay = 1 * time.Second
)

// Retrier wraps outbound HTTP calls with bounded retries on rate-limit
// responses. Any other failure, and rate-limit exhaustion, surface as
// *types.UpstreamError carrying the upstream payload when one was read.
type Retrier struct {
	HTTPClient  *http.Client
	MaxAttempts int
	BaseDelay   time.Duration
	Clock       util.Clock
}

// NewRetrier creates a Retrier with the default attempt bound and delay.
func NewRetrier(httpClient *http.Client) *Retrier {
	if httpClient == nil {
		httpClient = &http.Client{Timeout: 30 * time.Second}
	}
	return &Retrier{
		HTTPClient:  httpClient,
		MaxAttempts: DefaultMaxAttempts,
		BaseDelay:   DefaultBaseDelay,
		Clock:       util.RealClock{},
	}
}

// Do issues the request, retrying on HTTP 429 with a delay of
// attempt*BaseDelay between tries. The response body is returned
// unchanged on success. The delay suspends only this call: it waits on
// the clock in a select so ctx cancellation is honored immediately.
func (r *Retrier) Do(ctx context.Context, build func() (*http.Request, error)) ([]byte, error) {
	maxAttempts := r.MaxAttempts
	if maxAttempts < 1 {
		maxAttempts = DefaultMaxAttempts
	}

	for attempt := 1; attempt <= maxAttempts; attempt++ {
		req, err := build()
		if err != nil {
			return nil, err
		}

		body, status, err := r.roundTrip(req.WithContext(ctx))
		if err != nil {
			return nil, &types.UpstreamError{Err: err}
		}

		if status >= 200 && status < 300 {
			return body, nil
		}

		if status == http.StatusTooManyRequests && attempt < maxAttempts {
			select {
			case <-r.Clock.After(time.Duration(attempt) * r.BaseDelay):
				continue
			case <-ctx.Done():
				return nil, &types.UpstreamError{Err: ctx.Err()}
			}
		}

		return nil, &types.UpstreamError{Status: status, Body: string(bytes.TrimSpace(body))}
	}

	// Unreachable: the loop always returns.
	return nil, &types.UpstreamError{Status: http.StatusTooManyRequests}
}

func (r *Retrier) roundTrip(req *http.Request) ([]byte, int, error) {
	resp, err := r.HTTPClient.Do(req)
	if err != nil {
		return nil, 0, err
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, resp.StatusCode, err
	}
	return body, resp.StatusCode, nil
}
