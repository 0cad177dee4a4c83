// Package ratelimit spaces outbound collector requests so a daily run stays
// polite to the sites it pulls from.
package ratelimit

import (
	"fmt"
	"net/url"
	"strings"
	"sync"
	"time"
)

// Limiter enforces a minimum interval between requests to the same host and
// an overall per-run request cap. Collection is sequential, but the limiter
// still locks so a future parallel fan-out does not need changes here.
type Limiter struct {
	mu          sync.Mutex
	minInterval time.Duration
	maxRequests int // 0 = unlimited
	total       int
	lastRequest map[string]time.Time

	sleep func(time.Duration) // swapped out in tests
}

func New(minInterval time.Duration, maxRequests int) *Limiter {
	return &Limiter{
		minInterval: minInterval,
		maxRequests: maxRequests,
		lastRequest: make(map[string]time.Time),
		sleep:       time.Sleep,
	}
}

// Wait blocks until the host's minimum interval has elapsed, then records
// the request. Returns an error once the per-run budget is spent.
func (l *Limiter) Wait(rawURL string) error {
	host := hostOf(rawURL)

	l.mu.Lock()
	if l.maxRequests > 0 && l.total >= l.maxRequests {
		l.mu.Unlock()
		return fmt.Errorf("request budget exhausted (%d requests)", l.maxRequests)
	}
	l.total++

	var wait time.Duration
	if last, ok := l.lastRequest[host]; ok {
		if elapsed := time.Since(last); elapsed < l.minInterval {
			wait = l.minInterval - elapsed
		}
	}
	// Record the effective request time up front so concurrent callers queue
	// behind this one instead of racing through.
	l.lastRequest[host] = time.Now().Add(wait)
	l.mu.Unlock()

	if wait > 0 {
		l.sleep(wait)
	}
	return nil
}

// Requests reports how many requests the limiter has admitted this run.
func (l *Limiter) Requests() int {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.total
}

func hostOf(rawURL string) string {
	u, err := url.Parse(rawURL)
	if err != nil || u.Host == "" {
		return "unknown"
	}
	return strings.ToLower(u.Host)
}
