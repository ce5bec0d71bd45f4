// Package ratelimit throttles verification-code sends per caller.
package ratelimit

import (
	"sync"
	"time"

	"golang.org/x/time/rate"
)

const (
	sweepInterval = time.Minute
	// idleSlack keeps a key past the moment its bucket is full again.
	idleSlack = 5 * time.Second
)

// Limiter keeps one token bucket per key and forgets idle keys.
type Limiter struct {
	mu       sync.Mutex
	visitors map[string]*visitor
	limit    rate.Limit
	burst    int
	ttl      time.Duration
	now      func() time.Time

	stopOnce sync.Once
	stop     chan struct{}
}

type visitor struct {
	limiter  *rate.Limiter
	lastSeen time.Time
}

// New allows burst sends and then one send per interval for each key.
// A non-positive interval disables limiting.
func New(interval time.Duration, burst int) *Limiter {
	if burst < 1 {
		burst = 1
	}
	l := &Limiter{
		visitors: make(map[string]*visitor),
		limit:    rate.Inf,
		burst:    burst,
		ttl:      interval*time.Duration(burst) + idleSlack,
		now:      time.Now,
		stop:     make(chan struct{}),
	}
	if interval > 0 {
		l.limit = rate.Every(interval)
	}
	go l.sweep()
	return l
}

// Allow consumes a token for key. When none is available it reports how
// long the caller should wait.
func (l *Limiter) Allow(key string) (bool, time.Duration) {
	if l == nil || l.limit == rate.Inf {
		return true, 0
	}
	limiter := l.limiterFor(key)
	now := l.now()
	reservation := limiter.ReserveN(now, 1)
	if !reservation.OK() {
		return false, 0
	}
	delay := reservation.DelayFrom(now)
	if delay == 0 {
		return true, 0
	}
	reservation.CancelAt(now)
	return false, delay
}

// Close stops the background sweeper.
func (l *Limiter) Close() {
	if l == nil {
		return
	}
	l.stopOnce.Do(func() { close(l.stop) })
}

// Len reports how many keys are tracked.
func (l *Limiter) Len() int {
	l.mu.Lock()
	defer l.mu.Unlock()
	return len(l.visitors)
}

func (l *Limiter) limiterFor(key string) *rate.Limiter {
	l.mu.Lock()
	defer l.mu.Unlock()

	v, ok := l.visitors[key]
	if !ok {
		v = &visitor{limiter: rate.NewLimiter(l.limit, l.burst)}
		l.visitors[key] = v
	}
	v.lastSeen = l.now()
	return v.limiter
}

func (l *Limiter) sweep() {
	ticker := time.NewTicker(sweepInterval)
	defer ticker.Stop()
	for {
		select {
		case <-l.stop:
			return
		case <-ticker.C:
			l.evictIdle()
		}
	}
}

func (l *Limiter) evictIdle() {
	l.mu.Lock()
	defer l.mu.Unlock()
	cutoff := l.now().Add(-l.ttl)
	for key, v := range l.visitors {
		if v.lastSeen.Before(cutoff) {
			delete(l.visitors, key)
		}
	}
}
