package ratelimit

import (
	"fmt"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBucket_TakeExhaustsBurst(t *testing.T) {
	b := newBucket(10, 1.0) // 10 tokens, refills 1/s

	for i := 0; i < 10; i++ {
		assert.True(t, b.take(), "request %d should fit in the burst", i+1)
	}
	assert.False(t, b.take(), "request past the burst should be denied")
}

func TestBucket_Refill(t *testing.T) {
	b := newBucket(10, 1.0)
	for i := 0; i < 10; i++ {
		b.take()
	}

	time.Sleep(1100 * time.Millisecond)

	assert.True(t, b.take(), "one token should have refilled")
	assert.False(t, b.take(), "only one token should have refilled")
}

func TestBucket_Status(t *testing.T) {
	b := newBucket(10, 1.0)
	for i := 0; i < 5; i++ {
		b.take()
	}

	remaining, resetTime := b.status()
	assert.Equal(t, 5, remaining)
	assert.False(t, resetTime.Before(time.Now()), "reset time should be in the future")
}

func TestLimiter_AllowCountsDown(t *testing.T) {
	limiter := NewLimiter(&Config{
		Enabled:       true,
		DefaultLimit:  10,
		DefaultWindow: time.Minute,
	})
	defer limiter.Stop()

	clientID := "203.0.113.7"

	for i := 0; i < 10; i++ {
		allowed, info := limiter.Allow(clientID, "/sessions/abc/breakdown", "GET")
		require.True(t, allowed, "request %d should be allowed", i+1)
		assert.Equal(t, 10, info.Limit)
		assert.Equal(t, 9-i, info.Remaining)
	}

	allowed, info := limiter.Allow(clientID, "/sessions/abc/breakdown", "GET")
	assert.False(t, allowed, "request past the limit should be denied")
	assert.Zero(t, info.Remaining)
	assert.Positive(t, info.RetryAfter)
}

func TestLimiter_Whitelist(t *testing.T) {
	limiter := NewLimiter(&Config{
		Enabled:       true,
		DefaultLimit:  1,
		DefaultWindow: time.Minute,
		Whitelist:     map[string]bool{"203.0.113.7": true},
	})
	defer limiter.Stop()

	// Whitelisted clients bypass even the evaluation budget
	for i := 0; i < 100; i++ {
		allowed, info := limiter.Allow("203.0.113.7", "/sessions/abc/evaluate", "POST")
		require.True(t, allowed, "whitelisted request %d should be allowed", i+1)
		assert.Zero(t, info.Limit)
	}
}

func TestLimiter_Blacklist(t *testing.T) {
	limiter := NewLimiter(&Config{
		Enabled:       true,
		DefaultLimit:  1000,
		DefaultWindow: time.Minute,
		Blacklist:     map[string]bool{"198.51.100.9": true},
	})
	defer limiter.Stop()

	allowed, _ := limiter.Allow("198.51.100.9", "/sessions", "POST")
	assert.False(t, allowed, "blacklisted client should always be denied")
}

func TestLimiter_Disabled(t *testing.T) {
	limiter := NewLimiter(&Config{Enabled: false})
	defer limiter.Stop()

	for i := 0; i < 100; i++ {
		allowed, info := limiter.Allow("203.0.113.7", "/sessions/abc/evaluate", "POST")
		require.True(t, allowed, "request %d should pass when limiting is off", i+1)
		assert.Zero(t, info.Limit)
	}
}

func TestLimiter_EvaluateBudgetSeparateFromReads(t *testing.T) {
	limiter := NewLimiter(&Config{
		Enabled:       true,
		DefaultLimit:  1000,
		DefaultWindow: time.Minute,
		EndpointConfigs: []EndpointConfig{
			{Path: "/sessions/", Method: "POST", Limit: 5, Window: time.Hour, Burst: 5},
		},
	})
	defer limiter.Stop()

	clientID := "203.0.113.7"

	// Evaluation posts draw from the tight per-hour budget
	for i := 0; i < 5; i++ {
		allowed, info := limiter.Allow(clientID, "/sessions/abc/evaluate", "POST")
		require.True(t, allowed, "evaluation %d should fit the budget", i+1)
		assert.Equal(t, 5, info.Limit)
	}

	allowed, info := limiter.Allow(clientID, "/sessions/abc/evaluate", "POST")
	assert.False(t, allowed, "sixth evaluation should be throttled")
	assert.Equal(t, 5, info.Limit)

	// Reading the same session stays on the generous default
	allowed, info = limiter.Allow(clientID, "/sessions/abc", "GET")
	assert.True(t, allowed)
	assert.Equal(t, 1000, info.Limit)
}

func TestLimiter_Concurrent(t *testing.T) {
	limiter := NewLimiter(&Config{
		Enabled:       true,
		DefaultLimit:  100,
		DefaultWindow: time.Minute,
	})
	defer limiter.Stop()

	var wg sync.WaitGroup
	var mu sync.Mutex
	allowedCount := 0

	for i := 0; i < 200; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			if allowed, _ := limiter.Allow("203.0.113.7", "/users/u1/readiness", "GET"); allowed {
				mu.Lock()
				allowedCount++
				mu.Unlock()
			}
		}()
	}
	wg.Wait()

	assert.Equal(t, 100, allowedCount, "concurrent requests should consume exactly the limit")
}

func TestLimiter_EvictIdle(t *testing.T) {
	limiter := NewLimiter(&Config{
		Enabled:       true,
		DefaultLimit:  10,
		DefaultWindow: time.Minute,
	})
	defer limiter.Stop()

	for i := 0; i < 10; i++ {
		clientID := fmt.Sprintf("203.0.113.%d", i+1)
		allowed, _ := limiter.Allow(clientID, "/users/u1/roadmap", "GET")
		require.True(t, allowed)
	}

	limiter.mu.RLock()
	before := len(limiter.buckets)
	limiter.mu.RUnlock()
	assert.Equal(t, 10, before)

	// A cutoff in the future treats every bucket as idle
	limiter.evictIdle(time.Now().Add(time.Minute))

	limiter.mu.RLock()
	after := len(limiter.buckets)
	limiter.mu.RUnlock()
	assert.Zero(t, after, "idle buckets should be evicted")

	// Clients can come back after eviction
	allowed, _ := limiter.Allow("203.0.113.1", "/users/u1/roadmap", "GET")
	assert.True(t, allowed)
}

func TestLimiter_BurstBelowLimit(t *testing.T) {
	limiter := NewLimiter(&Config{
		Enabled:       true,
		DefaultLimit:  10,
		DefaultWindow: time.Minute,
		EndpointConfigs: []EndpointConfig{
			{Path: "/sessions", Method: "POST", Limit: 10, Window: time.Minute, Burst: 5},
		},
	})
	defer limiter.Stop()

	clientID := "203.0.113.7"

	for i := 0; i < 5; i++ {
		allowed, _ := limiter.Allow(clientID, "/sessions", "POST")
		require.True(t, allowed, "session create %d should fit the burst", i+1)
	}

	allowed, _ := limiter.Allow(clientID, "/sessions", "POST")
	assert.False(t, allowed, "burst capacity caps instantaneous session creation")
}

func TestNewLimiter_NilConfig(t *testing.T) {
	limiter := NewLimiter(nil)
	defer limiter.Stop()

	allowed, info := limiter.Allow("203.0.113.7", "/users/u1/weak-skills", "GET")
	assert.True(t, allowed)
	assert.Equal(t, 1000, info.Limit, "nil config should fall back to defaults")
}
