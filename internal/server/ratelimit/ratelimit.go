// Package ratelimit implements per-client token bucket rate limiting for the
// interview API endpoints.
package ratelimit

import (
	"sync"
	"time"
)

// tokenBucket is one client+endpoint bucket. Tokens refill continuously at
// refillRate per second up to capacity. lastAccess drives idle cleanup.
type tokenBucket struct {
	mu         sync.Mutex
	capacity   int
	refillRate float64
	tokens     float64
	lastRefill time.Time
	lastAccess time.Time
}

func newTokenBucket(capacity int, refillRate float64) *tokenBucket {
	now := time.Now()
	return &tokenBucket{
		capacity:   capacity,
		refillRate: refillRate,
		tokens:     float64(capacity),
		lastRefill: now,
		lastAccess: now,
	}
}

// take consumes one token if available and reports the bucket state.
func (tb *tokenBucket) take() (allowed bool, remaining int, resetTime time.Time) {
	tb.mu.Lock()
	defer tb.mu.Unlock()

	now := time.Now()
	tb.refill(now)
	tb.lastAccess = now

	if tb.tokens >= 1.0 {
		tb.tokens -= 1.0
		allowed = true
	}

	remaining = int(tb.tokens)
	if tb.tokens < float64(tb.capacity) {
		deficit := float64(tb.capacity) - tb.tokens
		resetTime = now.Add(time.Duration(deficit / tb.refillRate * float64(time.Second)))
	} else {
		resetTime = now
	}
	return allowed, remaining, resetTime
}

// refill adds tokens for the elapsed time. Caller holds the lock.
func (tb *tokenBucket) refill(now time.Time) {
	elapsed := now.Sub(tb.lastRefill)
	tb.tokens = min(float64(tb.capacity), tb.tokens+elapsed.Seconds()*tb.refillRate)
	tb.lastRefill = now
}

func (tb *tokenBucket) idleSince(cutoff time.Time) bool {
	tb.mu.Lock()
	defer tb.mu.Unlock()
	return tb.lastAccess.Before(cutoff)
}

// Info describes the outcome of a rate limit check, used to populate the
// X-RateLimit response headers.
type Info struct {
	Allowed    bool
	Limit      int
	Remaining  int
	ResetTime  time.Time
	RetryAfter time.Duration
}

// Limiter tracks one token bucket per client+endpoint+method combination.
type Limiter struct {
	mu      sync.RWMutex
	buckets map[string]*tokenBucket
	config  *Config

	cleanupTicker *time.Ticker
	cleanupStop   chan struct{}
}

// NewLimiter creates a limiter and, when cleanup is configured, starts the
// background sweep that drops idle buckets.
func NewLimiter(config *Config) *Limiter {
	if config == nil {
		config = LoadConfig()
	}

	limiter := &Limiter{
		buckets: make(map[string]*tokenBucket),
		config:  config,
	}

	if config.Enabled && config.CleanupInterval > 0 {
		limiter.cleanupTicker = time.NewTicker(config.CleanupInterval)
		limiter.cleanupStop = make(chan struct{})
		go limiter.sweep()
	}

	return limiter
}

// Allow checks whether the client may issue one more request against the
// endpoint. Endpoints without a matching config fall back to the default
// limit; a matched limit of zero means unlimited.
func (l *Limiter) Allow(clientID, endpoint, method string) (bool, Info) {
	if !l.config.Enabled {
		return true, Info{Allowed: true}
	}

	endpointConfig := MatchEndpoint(endpoint, method, l.config.EndpointConfigs)
	if endpointConfig == nil {
		endpointConfig = &EndpointConfig{
			Limit:  l.config.DefaultLimit,
			Window: l.config.DefaultWindow,
			Burst:  l.config.DefaultLimit,
		}
	}
	if endpointConfig.Limit <= 0 {
		return true, Info{Allowed: true}
	}

	key := clientID + ":" + endpoint + ":" + method
	bucket := l.getBucket(key, endpointConfig)

	allowed, remaining, resetTime := bucket.take()

	var retryAfter time.Duration
	if !allowed {
		retryAfter = max(time.Until(resetTime), 0)
	}

	return allowed, Info{
		Allowed:    allowed,
		Limit:      endpointConfig.Limit,
		Remaining:  remaining,
		ResetTime:  resetTime,
		RetryAfter: retryAfter,
	}
}

func (l *Limiter) getBucket(key string, config *EndpointConfig) *tokenBucket {
	l.mu.RLock()
	bucket, ok := l.buckets[key]
	l.mu.RUnlock()
	if ok {
		return bucket
	}

	capacity := config.Burst
	if capacity <= 0 {
		capacity = config.Limit
	}
	refillRate := float64(config.Limit) / config.Window.Seconds()

	l.mu.Lock()
	defer l.mu.Unlock()
	if existing, ok := l.buckets[key]; ok {
		return existing
	}
	bucket = newTokenBucket(capacity, refillRate)
	l.buckets[key] = bucket
	return bucket
}

func (l *Limiter) sweep() {
	for {
		select {
		case <-l.cleanupTicker.C:
			l.dropIdle(time.Now().Add(-time.Hour))
		case <-l.cleanupStop:
			return
		}
	}
}

func (l *Limiter) dropIdle(cutoff time.Time) {
	l.mu.Lock()
	defer l.mu.Unlock()
	for key, bucket := range l.buckets {
		if bucket.idleSince(cutoff) {
			delete(l.buckets, key)
		}
	}
}

// Stop halts the cleanup goroutine.
func (l *Limiter) Stop() {
	if l.cleanupTicker != nil {
		l.cleanupTicker.Stop()
	}
	if l.cleanupStop != nil {
		close(l.cleanupStop)
	}
}
