// Package ratelimit provides a keyed token bucket limiter used to throttle
// public endpoints per client address.
package ratelimit

import (
	"sync"
	"time"

	"golang.org/x/time/rate"
)

type entry struct {
	limiter  *rate.Limiter
	lastSeen time.Time
}

// KeyedRateLimiter keeps one limiter per key. Keys idle for longer than the
// idle timeout are dropped by Prune.
type KeyedRateLimiter struct {
	mu       sync.Mutex
	limiters map[string]*entry
	limit    rate.Limit
	burst    int
	idle     time.Duration
	now      func() time.Time

	done     chan struct{}
	stopOnce sync.Once
}

// New creates a limiter allowing rps requests per second with the given
// burst. A background goroutine prunes idle keys every idle interval until
// Stop is called.
func New(rps float64, burst int, idle time.Duration) *KeyedRateLimiter {
	krl := &KeyedRateLimiter{
		limiters: make(map[string]*entry),
		limit:    rate.Limit(rps),
		burst:    burst,
		idle:     idle,
		now:      time.Now,
		done:     make(chan struct{}),
	}
	if idle > 0 {
		go krl.cleanup()
	}
	return krl
}

// PerMinute is New with n requests per minute and a burst of n.
func PerMinute(n int) *KeyedRateLimiter {
	if n <= 0 {
		n = 1
	}
	return New(float64(n)/60, n, 10*time.Minute)
}

// Allow reports whether a request for key may proceed now.
func (krl *KeyedRateLimiter) Allow(key string) bool {
	krl.mu.Lock()
	e, ok := krl.limiters[key]
	if !ok {
		e = &entry{limiter: rate.NewLimiter(krl.limit, krl.burst)}
		krl.limiters[key] = e
	}
	e.lastSeen = krl.now()
	krl.mu.Unlock()

	return e.limiter.Allow()
}

// Prune drops keys not seen within the idle timeout and returns how many
// were removed.
func (krl *KeyedRateLimiter) Prune() int {
	krl.mu.Lock()
	defer krl.mu.Unlock()

	cutoff := krl.now().Add(-krl.idle)
	n := 0
	for k, e := range krl.limiters {
		if e.lastSeen.Before(cutoff) {
			delete(krl.limiters, k)
			n++
		}
	}
	return n
}

// Len returns the number of tracked keys.
func (krl *KeyedRateLimiter) Len() int {
	krl.mu.Lock()
	defer krl.mu.Unlock()
	return len(krl.limiters)
}

// Stop shuts down the cleanup goroutine.
func (krl *KeyedRateLimiter) Stop() {
	krl.stopOnce.Do(func() {
		close(krl.done)
	})
}

func (krl *KeyedRateLimiter) cleanup() {
	ticker := time.NewTicker(krl.idle)
	defer ticker.Stop()
	for {
		select {
		case <-krl.done:
			return
		case <-ticker.C:
			krl.Prune()
		}
	}
}
