package scanner

import (
	"context"
	"fmt"
	"net/url"
	"sync"

	"golang.org/x/time/rate"
)

// Limiter gates how fast scans of the same host may start.
type Limiter struct {
	perSecond  int
	limiters   map[string]*rate.Limiter
	limitersMu sync.RWMutex
}

// NewLimiter allows perSecond scan starts per host; 0 or less disables it.
func NewLimiter(perSecond int) *Limiter {
	return &Limiter{
		perSecond: perSecond,
		limiters:  make(map[string]*rate.Limiter),
	}
}

func (l *Limiter) getRateLimiter(host string) *rate.Limiter {
	if l == nil || l.perSecond <= 0 {
		return nil
	}

	l.limitersMu.RLock()
	limiter, exists := l.limiters[host]
	l.limitersMu.RUnlock()

	if exists {
		return limiter
	}

	l.limitersMu.Lock()
	defer l.limitersMu.Unlock()

	if limiter, exists := l.limiters[host]; exists {
		return limiter
	}

	limiter = rate.NewLimiter(rate.Limit(l.perSecond), 1)
	l.limiters[host] = limiter
	return limiter
}

// Wait blocks until a scan of normalizedURL's host may start.
func (l *Limiter) Wait(ctx context.Context, normalizedURL string) error {
	limiter := l.getRateLimiter(hostOf(normalizedURL))
	if limiter == nil {
		return nil
	}
	if err := limiter.Wait(ctx); err != nil {
		return fmt.Errorf("rate limiter cancelled: %w", err)
	}
	return nil
}

func hostOf(rawURL string) string {
	if u, err := url.Parse(rawURL); err == nil && u.Host != "" {
		return u.Host
	}
	return rawURL
}
