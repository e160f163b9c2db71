// Package ratelimit implements the fixed-window admission counter used
// on the admin applications listing.
//
// This is deliberately a fixed window, not a sliding window or token
// bucket: a burst straddling a window boundary can admit up to twice
// the ceiling in a short span, which is accepted behaviour.
package ratelimit

import (
	"net/http"
	"strings"
	"sync"
	"time"

	"github.com/clubhub/clubhub/internal/platform/httpx"
)

// UnknownClientKey is the shared bucket for requests that carry neither
// forwarding header. All unidentified clients count against it.
const UnknownClientKey = "unknown"

type entry struct {
	count         int
	windowResetAt time.Time
}

// Limiter is a process-local fixed-window counter keyed by client
// identifier. State is not shared across instances; each instance
// enforces its own ceiling.
type Limiter struct {
	mu      sync.Mutex
	entries map[string]*entry

	window time.Duration
	max    int
	now    func() time.Time
}

// New constructs a Limiter with the given window and ceiling.
func New(window time.Duration, max int) *Limiter {
	return &Limiter{
		entries: make(map[string]*entry),
		window:  window,
		max:     max,
		now:     time.Now,
	}
}

// Allow records one request for the key and reports whether it is
// admitted. The first request of a window, or any request after the
// window expired, replaces the entry with count 1. At the ceiling the
// request is rejected without incrementing further.
func (l *Limiter) Allow(key string) bool {
	now := l.now()

	l.mu.Lock()
	defer l.mu.Unlock()

	e, ok := l.entries[key]
	if !ok || !now.Before(e.windowResetAt) {
		l.entries[key] = &entry{count: 1, windowResetAt: now.Add(l.window)}
		return true
	}
	if e.count >= l.max {
		return false
	}
	e.count++
	return true
}

// Sweep evicts entries whose window expired at least a full window ago,
// keeping the map bounded in a long-running process.
func (l *Limiter) Sweep() {
	now := l.now()

	l.mu.Lock()
	defer l.mu.Unlock()

	for key, e := range l.entries {
		if now.Sub(e.windowResetAt) >= l.window {
			delete(l.entries, key)
		}
	}
}

// Run sweeps periodically until the stop channel closes.
func (l *Limiter) Run(stop <-chan struct{}) {
	ticker := time.NewTicker(l.window)
	defer ticker.Stop()
	for {
		select {
		case <-ticker.C:
			l.Sweep()
		case <-stop:
			return
		}
	}
}

// ClientKey derives the limiter key from proxy forwarding headers,
// falling back to the shared unknown bucket. RemoteAddr is not
// consulted: the service always sits behind a proxy that sets these.
func ClientKey(r *http.Request) string {
	if fwd := r.Header.Get("X-Forwarded-For"); fwd != "" {
		if i := strings.IndexByte(fwd, ','); i >= 0 {
			fwd = fwd[:i]
		}
		if fwd = strings.TrimSpace(fwd); fwd != "" {
			return fwd
		}
	}
	if real := r.Header.Get("X-Real-IP"); real != "" {
		return real
	}
	return UnknownClientKey
}

// Middleware rejects over-ceiling requests with 429 before the wrapped
// handler runs.
func (l *Limiter) Middleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if !l.Allow(ClientKey(r)) {
			httpx.RespondError(w, httpx.ErrRateLimited)
			return
		}
		next.ServeHTTP(w, r)
	})
}
