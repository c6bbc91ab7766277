package api

import (
	"fmt"
	"net/http"
	"sync"
	"time"

	"github.com/gin-gonic/gin"
	"golang.org/x/time/rate"
)

// RateLimiterConfig holds rate limiter configuration.
type RateLimiterConfig struct {
	RequestsPerMinute int
	BurstSize         int
}

// clientLimiter is one client's token bucket plus the last time it was used.
type clientLimiter struct {
	limiter  *rate.Limiter
	mu       sync.Mutex
	lastSeen time.Time
}

func newClientLimiter(perMinute, burst int) *clientLimiter {
	return &clientLimiter{
		limiter:  rate.NewLimiter(rate.Limit(float64(perMinute)/60.0), burst),
		lastSeen: time.Now(),
	}
}

func (cl *clientLimiter) allow() bool {
	cl.touch()
	return cl.limiter.Allow()
}

// remaining returns the number of whole tokens available now.
func (cl *clientLimiter) remaining() int {
	return max(0, int(cl.limiter.Tokens()))
}

// reset returns the time when the bucket will be full again.
func (cl *clientLimiter) reset() time.Time {
	now := time.Now()
	tokens := cl.limiter.TokensAt(now)
	burst := float64(cl.limiter.Burst())
	if tokens >= burst || cl.limiter.Limit() <= 0 {
		return now
	}
	secondsUntilFull := (burst - tokens) / float64(cl.limiter.Limit())
	return now.Add(time.Duration(secondsUntilFull * float64(time.Second)))
}

func (cl *clientLimiter) touch() {
	cl.mu.Lock()
	cl.lastSeen = time.Now()
	cl.mu.Unlock()
}

func (cl *clientLimiter) idleSince() time.Time {
	cl.mu.Lock()
	defer cl.mu.Unlock()
	return cl.lastSeen
}

// RateLimiter manages per-client rate limiting.
type RateLimiter struct {
	buckets    map[string]*clientLimiter
	config     RateLimiterConfig
	mu         sync.RWMutex
	cleanupTTL time.Duration
	stop       chan struct{}
	stopOnce   sync.Once
}

// NewRateLimiter creates a new rate limiter and starts its cleanup loop.
// Call Stop to end the loop.
func NewRateLimiter(config RateLimiterConfig) *RateLimiter {
	if config.BurstSize <= 0 {
		config.BurstSize = 10
	}
	rl := &RateLimiter{
		buckets:    make(map[string]*clientLimiter),
		config:     config,
		cleanupTTL: 5 * time.Minute,
		stop:       make(chan struct{}),
	}

	go rl.cleanup()

	return rl
}

// Stop ends the cleanup loop.
func (rl *RateLimiter) Stop() {
	rl.stopOnce.Do(func() { close(rl.stop) })
}

// getBucket returns the limiter for a client, creating if necessary.
func (rl *RateLimiter) getBucket(client string) *clientLimiter {
	rl.mu.RLock()
	bucket, exists := rl.buckets[client]
	rl.mu.RUnlock()

	if exists {
		return bucket
	}

	rl.mu.Lock()
	defer rl.mu.Unlock()

	// Double-check after acquiring write lock
	if bucket, exists := rl.buckets[client]; exists {
		return bucket
	}

	bucket = newClientLimiter(rl.config.RequestsPerMinute, rl.config.BurstSize)
	rl.buckets[client] = bucket

	return bucket
}

// cleanup periodically removes stale buckets.
func (rl *RateLimiter) cleanup() {
	ticker := time.NewTicker(1 * time.Minute)
	defer ticker.Stop()

	for {
		select {
		case <-rl.stop:
			return
		case now := <-ticker.C:
			rl.mu.Lock()
			for client, bucket := range rl.buckets {
				if now.Sub(bucket.idleSince()) > rl.cleanupTTL {
					delete(rl.buckets, client)
				}
			}
			rl.mu.Unlock()
		}
	}
}

// Allow checks if a request from the given client should be allowed.
func (rl *RateLimiter) Allow(client string) bool {
	return rl.getBucket(client).allow()
}

// Middleware applies rate limiting keyed by gin's client IP.
func (rl *RateLimiter) Middleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		bucket := rl.getBucket(c.ClientIP())
		reset := bucket.reset()

		c.Header("X-RateLimit-Limit", fmt.Sprintf("%d", rl.config.RequestsPerMinute))
		c.Header("X-RateLimit-Reset", fmt.Sprintf("%d", reset.Unix()))

		if !bucket.allow() {
			retryAfter := int(time.Until(reset).Seconds()) + 1
			c.Header("X-RateLimit-Remaining", "0")
			c.Header("Retry-After", fmt.Sprintf("%d", retryAfter))
			respondError(c, http.StatusTooManyRequests, "RATE_LIMIT_EXCEEDED",
				fmt.Sprintf("Rate limit exceeded. Try again in %d seconds.", retryAfter))
			return
		}

		c.Header("X-RateLimit-Remaining", fmt.Sprintf("%d", bucket.remaining()))
		c.Next()
	}
}
