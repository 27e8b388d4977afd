// Package ratelimit throttles API clients with per-endpoint token buckets.
// Evaluation requests fan out into model calls, so the expensive routes get
// much tighter budgets than plain reads.
package ratelimit

import (
	"sync"
	"time"
)

// bucket is a token bucket for one client+endpoint+method combination.
// Tokens refill continuously at rate per second, capped at capacity.
// lastSeen doubles as the idle marker the limiter uses to evict buckets.
type bucket struct {
	mu       sync.Mutex
	capacity int
	rate     float64
	tokens   float64
	refilled time.Time
	lastSeen time.Time
}

func newBucket(capacity int, rate float64) *bucket {
	now := time.Now()
	return &bucket{
		capacity: capacity,
		rate:     rate,
		tokens:   float64(capacity),
		refilled: now,
		lastSeen: now,
	}
}

// refillLocked credits tokens for the time elapsed since the last refill.
// Callers must hold b.mu.
func (b *bucket) refillLocked(now time.Time) {
	credit := now.Sub(b.refilled).Seconds() * b.rate
	b.tokens = min(float64(b.capacity), b.tokens+credit)
	b.refilled = now
}

// take consumes one token if available.
func (b *bucket) take() bool {
	b.mu.Lock()
	defer b.mu.Unlock()

	now := time.Now()
	b.refillLocked(now)
	b.lastSeen = now

	if b.tokens < 1.0 {
		return false
	}
	b.tokens -= 1.0
	return true
}

// status reports remaining tokens and when the bucket will be full again,
// without consuming anything.
func (b *bucket) status() (remaining int, resetTime time.Time) {
	b.mu.Lock()
	defer b.mu.Unlock()

	now := time.Now()
	b.refillLocked(now)

	remaining = int(b.tokens)
	missing := float64(b.capacity) - b.tokens
	if missing <= 0 {
		return remaining, now
	}
	return remaining, now.Add(time.Duration(missing / b.rate * float64(time.Second)))
}

func (b *bucket) idleSince(cutoff time.Time) bool {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.lastSeen.Before(cutoff)
}

// Info describes the rate-limit outcome for one request. The server turns
// it into X-RateLimit response headers.
type Info struct {
	Allowed    bool
	Limit      int
	Remaining  int
	ResetTime  time.Time
	RetryAfter time.Duration
}

// Config holds limiter-wide settings plus the per-endpoint overrides.
type Config struct {
	Enabled         bool
	DefaultLimit    int
	DefaultWindow   time.Duration
	CleanupInterval time.Duration
	Whitelist       map[string]bool
	Blacklist       map[string]bool
	EndpointConfigs []EndpointConfig
}

// Limiter tracks token buckets per client and endpoint.
type Limiter struct {
	mu      sync.RWMutex
	buckets map[string]*bucket
	config  *Config
	ticker  *time.Ticker
	stop    chan struct{}
}

// NewLimiter creates a limiter and, when cleanup is configured, starts the
// background sweep that evicts idle buckets.
func NewLimiter(config *Config) *Limiter {
	if config == nil {
		config = &Config{
			Enabled:         true,
			DefaultLimit:    1000,
			DefaultWindow:   time.Minute,
			CleanupInterval: 5 * time.Minute,
			Whitelist:       make(map[string]bool),
			Blacklist:       make(map[string]bool),
		}
	}

	l := &Limiter{
		buckets: make(map[string]*bucket),
		config:  config,
	}

	if config.Enabled && config.CleanupInterval > 0 {
		l.ticker = time.NewTicker(config.CleanupInterval)
		l.stop = make(chan struct{})
		go l.sweep()
	}

	return l
}

// Allow reports whether one more request from clientID may hit the given
// endpoint and method, and returns the current budget either way.
func (l *Limiter) Allow(clientID string, endpoint string, method string) (bool, Info) {
	if !l.config.Enabled || l.config.Whitelist[clientID] {
		return true, Info{Allowed: true}
	}
	if l.config.Blacklist[clientID] {
		return false, Info{}
	}

	ec := MatchEndpoint(endpoint, method, l.config.EndpointConfigs)
	if ec == nil {
		ec = &EndpointConfig{
			Limit:  l.config.DefaultLimit,
			Window: l.config.DefaultWindow,
			Burst:  l.config.DefaultLimit,
		}
	}

	// Non-positive limit means unthrottled, used for the health check
	if ec.Limit <= 0 {
		return true, Info{Allowed: true}
	}

	b := l.bucketFor(clientID+":"+endpoint+":"+method, ec)

	allowed := b.take()
	remaining, resetTime := b.status()

	var retryAfter time.Duration
	if !allowed {
		if retryAfter = time.Until(resetTime); retryAfter < 0 {
			retryAfter = 0
		}
	}

	return allowed, Info{
		Allowed:    allowed,
		Limit:      ec.Limit,
		Remaining:  remaining,
		ResetTime:  resetTime,
		RetryAfter: retryAfter,
	}
}

func (l *Limiter) bucketFor(key string, ec *EndpointConfig) *bucket {
	l.mu.RLock()
	b, ok := l.buckets[key]
	l.mu.RUnlock()
	if ok {
		return b
	}

	capacity := ec.Burst
	if capacity <= 0 {
		capacity = ec.Limit
	}
	rate := float64(ec.Limit) / ec.Window.Seconds()

	l.mu.Lock()
	defer l.mu.Unlock()
	// Another request may have created it between the two locks
	if existing, ok := l.buckets[key]; ok {
		return existing
	}
	b = newBucket(capacity, rate)
	l.buckets[key] = b
	return b
}

func (l *Limiter) sweep() {
	for {
		select {
		case <-l.ticker.C:
			l.evictIdle(time.Now().Add(-1 * time.Hour))
		case <-l.stop:
			return
		}
	}
}

// evictIdle drops buckets whose clients have gone quiet, so one-off
// candidates do not accumulate state forever.
func (l *Limiter) evictIdle(cutoff time.Time) {
	l.mu.Lock()
	defer l.mu.Unlock()

	for key, b := range l.buckets {
		if b.idleSince(cutoff) {
			delete(l.buckets, key)
		}
	}
}

// Stop halts the cleanup sweep.
func (l *Limiter) Stop() {
	if l.ticker != nil {
		l.ticker.Stop()
	}
	if l.stop != nil {
		close(l.stop)
	}
}
