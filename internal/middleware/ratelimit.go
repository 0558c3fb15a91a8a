package middleware

import (
	"net"
	"net/http"
	"strings"
	"sync"
	"time"

	"github.com/hearthside/vesta/internal/domain"
	"github.com/hearthside/vesta/internal/handler"
)

// RateLimiterConfig tunes a token-bucket limiter. Keys default to the
// client IP, so the budget is per caller, not global.
type RateLimiterConfig struct {
	// RequestsPerSecond is the steady refill rate per key.
	RequestsPerSecond float64

	// BurstSize caps how many requests a key can spend at once.
	BurstSize int

	// CleanupInterval is how often idle buckets are dropped.
	CleanupInterval time.Duration

	// KeyFunc derives the bucket key from the request. Nil means GetClientIP.
	KeyFunc func(r *http.Request) string
}

// DefaultRateLimiterConfig is the budget for general API traffic.
func DefaultRateLimiterConfig() RateLimiterConfig {
	return RateLimiterConfig{
		RequestsPerSecond: 10,
		BurstSize:         20,
		CleanupInterval:   time.Minute,
		KeyFunc:           GetClientIP,
	}
}

// StrictRateLimiterConfig is the tighter budget for the auth endpoints,
// which are the ones worth hammering.
func StrictRateLimiterConfig() RateLimiterConfig {
	return RateLimiterConfig{
		RequestsPerSecond: 1,
		BurstSize:         5,
		CleanupInterval:   time.Minute,
		KeyFunc:           GetClientIP,
	}
}

type tokenBucket struct {
	tokens     float64
	lastRefill time.Time
	mu         sync.Mutex
}

// RateLimiter holds per-key token buckets in memory. State is per process;
// a multi-instance deployment limits per instance.
type RateLimiter struct {
	config  RateLimiterConfig
	buckets map[string]*tokenBucket
	mu      sync.RWMutex
	stop    chan struct{}
}

// NewRateLimiter creates a limiter and starts its idle-bucket sweeper.
func NewRateLimiter(config RateLimiterConfig) *RateLimiter {
	if config.KeyFunc == nil {
		config.KeyFunc = GetClientIP
	}

	rl := &RateLimiter{
		config:  config,
		buckets: make(map[string]*tokenBucket),
		stop:    make(chan struct{}),
	}
	go rl.sweep()
	return rl
}

// Allow spends one token from the key's bucket, refilling by elapsed time
// first. False means the caller is over budget.
func (rl *RateLimiter) Allow(key string) bool {
	rl.mu.Lock()
	bucket, ok := rl.buckets[key]
	if !ok {
		bucket = &tokenBucket{
			tokens:     float64(rl.config.BurstSize),
			lastRefill: time.Now(),
		}
		rl.buckets[key] = bucket
	}
	rl.mu.Unlock()

	bucket.mu.Lock()
	defer bucket.mu.Unlock()

	now := time.Now()
	bucket.tokens += now.Sub(bucket.lastRefill).Seconds() * rl.config.RequestsPerSecond
	if bucket.tokens > float64(rl.config.BurstSize) {
		bucket.tokens = float64(rl.config.BurstSize)
	}
	bucket.lastRefill = now

	if bucket.tokens < 1 {
		return false
	}
	bucket.tokens--
	return true
}

// sweep drops buckets that refilled completely and then sat unused for a
// whole cleanup interval.
func (rl *RateLimiter) sweep() {
	ticker := time.NewTicker(rl.config.CleanupInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			rl.mu.Lock()
			now := time.Now()
			for key, bucket := range rl.buckets {
				bucket.mu.Lock()
				if bucket.tokens >= float64(rl.config.BurstSize) &&
					now.Sub(bucket.lastRefill) > rl.config.CleanupInterval {
					delete(rl.buckets, key)
				}
				bucket.mu.Unlock()
			}
			rl.mu.Unlock()
		case <-rl.stop:
			return
		}
	}
}

// Stop ends the sweeper goroutine.
func (rl *RateLimiter) Stop() {
	close(rl.stop)
}

// Middleware rejects over-budget requests with 429 and the API's flat JSON
// error body.
func (rl *RateLimiter) Middleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if !rl.Allow(rl.config.KeyFunc(r)) {
			w.Header().Set("Retry-After", "1")
			handler.Error(w, domain.Errorf(domain.ERATELIMIT, "middleware.ratelimit",
				"Too many requests, please try again later"))
			return
		}
		next.ServeHTTP(w, r)
	})
}

// RateLimit builds a rate limiting middleware with its own limiter.
func RateLimit(config RateLimiterConfig) func(http.Handler) http.Handler {
	return NewRateLimiter(config).Middleware
}

// GetClientIP picks the client address for rate limit keying: the first
// X-Forwarded-For hop, then X-Real-IP, then the socket peer.
func GetClientIP(r *http.Request) string {
	if xff := r.Header.Get("X-Forwarded-For"); xff != "" {
		first, _, _ := strings.Cut(xff, ",")
		return strings.TrimSpace(first)
	}
	if xri := r.Header.Get("X-Real-IP"); xri != "" {
		return xri
	}
	host, _, err := net.SplitHostPort(r.RemoteAddr)
	if err != nil {
		return r.RemoteAddr
	}
	return host
}
