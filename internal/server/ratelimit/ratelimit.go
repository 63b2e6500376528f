// Package ratelimit throttles session API clients with per-endpoint
// token buckets.
package ratelimit

import (
	"sync"
	"time"
)

// Info describes the outcome of one rate limit check. The server turns
// it into X-RateLimit-* headers and 429 bodies.
type Info struct {
	Allowed    bool
	Limit      int
	Remaining  int
	ResetTime  time.Time
	RetryAfter time.Duration
}

// Config holds limiter-wide settings. Whitelisted clients bypass all
// limits; blacklisted clients are refused outright.
type Config struct {
	Enabled         bool
	DefaultLimit    int
	DefaultWindow   time.Duration
	CleanupInterval time.Duration
	Whitelist       map[string]bool
	Blacklist       map[string]bool
	EndpointConfigs []EndpointConfig
}

// bucket is one client+endpoint token bucket. The level refills
// continuously at rate tokens/second up to burst; touched feeds idle
// eviction.
type bucket struct {
	mu      sync.Mutex
	burst   float64
	rate    float64
	level   float64
	refresh time.Time
	touched time.Time
}

// take refills the bucket to now, then consumes one token if available.
func (b *bucket) take(now time.Time) (allowed bool, remaining int, reset time.Time) {
	b.mu.Lock()
	defer b.mu.Unlock()

	b.level = min(b.burst, b.level+now.Sub(b.refresh).Seconds()*b.rate)
	b.refresh = now
	b.touched = now

	if b.level >= 1 {
		b.level--
		allowed = true
	}

	remaining = int(b.level)
	reset = now
	if b.level < b.burst {
		deficit := b.burst - b.level
		reset = now.Add(time.Duration(deficit / b.rate * float64(time.Second)))
	}
	return allowed, remaining, reset
}

// idleEviction is how long a bucket may go untouched before the
// cleanup pass drops it.
const idleEviction = time.Hour

// Limiter hands out tokens per client+endpoint+method and evicts
// buckets that have gone idle.
type Limiter struct {
	mu      sync.Mutex
	buckets map[string]*bucket
	config  *Config
	now     func() time.Time

	stop     chan struct{}
	stopOnce sync.Once
}

// NewLimiter builds a limiter from config. A nil config yields a
// permissive limiter with only the global default limit.
func NewLimiter(config *Config) *Limiter {
	if config == nil {
		config = &Config{
			Enabled:         true,
			DefaultLimit:    1000,
			DefaultWindow:   time.Minute,
			CleanupInterval: 5 * time.Minute,
		}
	}

	l := &Limiter{
		buckets: make(map[string]*bucket),
		config:  config,
		now:     time.Now,
		stop:    make(chan struct{}),
	}
	if config.Enabled && config.CleanupInterval > 0 {
		go l.evictLoop(config.CleanupInterval)
	}
	return l
}

// Allow reports whether the client may hit endpoint with method right
// now, consuming a token when it may.
func (l *Limiter) Allow(clientID, endpoint, method string) (bool, Info) {
	if !l.config.Enabled || l.config.Whitelist[clientID] {
		return true, Info{Allowed: true}
	}
	if l.config.Blacklist[clientID] {
		return false, Info{}
	}

	ec := MatchEndpoint(endpoint, method, l.config.EndpointConfigs)
	if ec == nil {
		ec = &EndpointConfig{Limit: l.config.DefaultLimit, Window: l.config.DefaultWindow}
	}
	if ec.Limit <= 0 {
		// Unlimited endpoint.
		return true, Info{Allowed: true}
	}

	now := l.now()
	b := l.bucketFor(clientID+" "+method+" "+endpoint, ec, now)
	allowed, remaining, reset := b.take(now)

	info := Info{Allowed: allowed, Limit: ec.Limit, Remaining: remaining, ResetTime: reset}
	if !allowed {
		if wait := reset.Sub(now); wait > 0 {
			info.RetryAfter = wait
		}
	}
	return allowed, info
}

func (l *Limiter) bucketFor(key string, ec *EndpointConfig, now time.Time) *bucket {
	l.mu.Lock()
	defer l.mu.Unlock()

	if b, ok := l.buckets[key]; ok {
		return b
	}

	burst := ec.Burst
	if burst <= 0 {
		burst = ec.Limit
	}
	b := &bucket{
		burst:   float64(burst),
		rate:    float64(ec.Limit) / ec.Window.Seconds(),
		level:   float64(burst),
		refresh: now,
		touched: now,
	}
	l.buckets[key] = b
	return b
}

func (l *Limiter) evictLoop(interval time.Duration) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()
	for {
		select {
		case <-ticker.C:
			l.evictIdle(l.now())
		case <-l.stop:
			return
		}
	}
}

func (l *Limiter) evictIdle(now time.Time) {
	cutoff := now.Add(-idleEviction)

	l.mu.Lock()
	defer l.mu.Unlock()
	for key, b := range l.buckets {
		b.mu.Lock()
		idle := b.touched.Before(cutoff)
		b.mu.Unlock()
		if idle {
			delete(l.buckets, key)
		}
	}
}

// Stop terminates the eviction goroutine. Safe to call more than once.
func (l *Limiter) Stop() {
	l.stopOnce.Do(func() { close(l.stop) })
}
