package gateway

import (
	"net"
	"net/http"
	"sync"
	"time"

	"token-swap-gateway/pkg/types"
	"token-swap-gateway/pkg/util"
)

// RateLimiter is a fixed-window per-IP request throttle applied across
// every gateway endpoint. The window is not sliding: counts reset when
// the window that opened on a client's first request expires.
type RateLimiter struct {
	max    int
	window time.Duration
	clock  util.Clock

	mu      sync.Mutex
	clients map[string]*windowCount
}

type windowCount struct {
	start time.Time
	count int
}

// NewRateLimiter creates a limiter allowing max requests per IP per window.
func NewRateLimiter(max int, window time.Duration, clock util.Clock) *RateLimiter {
	if clock == nil {
		clock = util.RealClock{}
	}
	return &RateLimiter{
		max:     max,
		window:  window,
		clock:   clock,
		clients: make(map[string]*windowCount),
	}
}

// Allow records a request from ip and reports whether it is within the limit.
func (rl *RateLimiter) Allow(ip string) bool {
	now := rl.clock.Now()

	rl.mu.Lock()
	defer rl.mu.Unlock()

	wc, ok := rl.clients[ip]
	if !ok || now.Sub(wc.start) >= rl.window {
		rl.clients[ip] = &windowCount{start: now, count: 1}
		return true
	}

	wc.count++
	return wc.count <= rl.max
}

// Middleware rejects over-limit requests before they reach a handler.
func (rl *RateLimiter) Middleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if !rl.Allow(clientIP(r)) {
			respondError(w, http.StatusTooManyRequests, types.ErrRateLimited.Error())
			return
		}
		next.ServeHTTP(w, r)
	})
}

func clientIP(r *http.Request) string {
	host, _, err := net.SplitHostPort(r.RemoteAddr)
	if err != nil {
		return r.RemoteAddr
	}
	return host
}
