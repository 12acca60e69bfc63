package httpapi

import (
	"context"
	"net/http"
	"strconv"
	"sync"
	"time"

	"golang.org/x/time/rate"
)

const (
	// HeaderRetryAfter is the back-off header honoured on 429 responses.
	HeaderRetryAfter = "Retry-After"

	// maxRetryWait caps how long a single Retry-After hint can stall requests.
	maxRetryWait = time.Minute
)

// rateLimiter throttles outgoing requests. It combines an optional
// proactive token bucket with the server's Retry-After hints.
type rateLimiter struct {
	mu      sync.Mutex
	bucket  *rate.Limiter
	retryAt time.Time
	now     func() time.Time
}

// newRateLimiter creates a limiter allowing perSecond requests per second.
// Zero disables proactive throttling; Retry-After is still honoured.
func newRateLimiter(perSecond float64) *rateLimiter {
	r := &rateLimiter{now: time.Now}
	if perSecond > 0 {
		burst := int(perSecond)
		if burst < 1 {
			burst = 1
		}
		r.bucket = rate.NewLimiter(rate.Limit(perSecond), burst)
	}
	return r
}

// Wait blocks until a request may be sent or ctx is done.
func (r *rateLimiter) Wait(ctx context.Context) error {
	r.mu.Lock()
	wait := r.retryAt.Sub(r.now())
	r.mu.Unlock()

	if wait > 0 {
		timer := time.NewTimer(wait)
		defer timer.Stop()
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-timer.C:
		}
	}

	if r.bucket != nil {
		return r.bucket.Wait(ctx)
	}
	return nil
}

// Observe records back-off hints from a response.
func (r *rateLimiter) Observe(resp *http.Response) {
	if resp == nil || !isRateLimited(resp.StatusCode) {
		return
	}
	retryAfter := resp.Header.Get(HeaderRetryAfter)
	if retryAfter == "" {
		return
	}

	var until time.Time
	if seconds, err := strconv.Atoi(retryAfter); err == nil {
		until = r.now().Add(time.Duration(seconds) * time.Second)
	} else if at, err := http.ParseTime(retryAfter); err == nil {
		until = at
	} else {
		return
	}

	if limit := r.now().Add(maxRetryWait); until.After(limit) {
		until = limit
	}

	r.mu.Lock()
	defer r.mu.Unlock()
	if until.After(r.retryAt) {
		r.retryAt = until
	}
}
