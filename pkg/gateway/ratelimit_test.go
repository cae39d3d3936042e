package gateway

import (
	"testing"
	"time"
)

// stepClock reports a controllable current time.
type stepClock struct {
	now time.Time
}

func (c *stepClock) After(d time.Duration) <-chan time.Time { return time.After(d) }
func (c *stepClock) Now() time.Time                         { return c.now }

func TestRateLimiter_FixedWindow(t *testing.T) {
	clock := &stepClock{now: time.Unix(1000, 0)}
	rl := NewRateLimiter(3, 15*time.Minute, clock)

	for i := 0; i < 3; i++ {
		if !rl.Allow("10.0.0.1") {
			t.Fatalf("request %d rejected, want allowed", i+1)
		}
	}
	if rl.Allow("10.0.0.1") {
		t.Error("request over the limit allowed, want rejected")
	}

	// Other clients have their own window.
	if !rl.Allow("10.0.0.2") {
		t.Error("different IP rejected, want allowed")
	}

	// A new window opens once the old one expires.
	clock.now = clock.now.Add(15 * time.Minute)
	if !rl.Allow("10.0.0.1") {
		t.Error("request in fresh window rejected, want allowed")
	}
}

func TestRateLimiter_WindowDoesNotSlide(t *testing.T) {
	clock := &stepClock{now: time.Unix(1000, 0)}
	rl := NewRateLimiter(2, 10*time.Minute, clock)

	rl.Allow("10.0.0.1")
	clock.now = clock.now.Add(9 * time.Minute)
	rl.Allow("10.0.0.1")

	// Still inside the window that opened at the first request.
	if rl.Allow("10.0.0.1") {
		t.Error("third request inside window allowed, want rejected")
	}

	// One minute later the original window expires; counting restarts.
	clock.now = clock.now.Add(1 * time.Minute)
	if !rl.Allow("10.0.0.1") {
		t.Error("request after window expiry rejected, want allowed")
	}
}
