package middleware

import (
	"net/http"
	"sync"
	"time"

	"github.com/gin-gonic/gin"
	"golang.org/x/time/rate"
)

// RateLimitConfig bounds how often one client IP may call the guarded routes.
type RateLimitConfig struct {
	RateLimit rate.Limit
	BurstSize int
	// IdleTTL is how long an IP's bucket is kept after its last request.
	// Zero means ten minutes.
	IdleTTL time.Duration
}

const defaultIdleTTL = 10 * time.Minute

// PerMinute allows n requests per minute with a burst of n.
func PerMinute(n int) RateLimitConfig {
	return RateLimitConfig{RateLimit: rate.Limit(float64(n) / 60), BurstSize: n}
}

// RateLimit rejects requests over the limit with 429. Each client IP gets its
// own token bucket. A zero RateLimit disables the middleware.
func RateLimit(cfg RateLimitConfig) gin.HandlerFunc {
	if cfg.RateLimit <= 0 {
		return func(c *gin.Context) { c.Next() }
	}
	if cfg.BurstSize < 1 {
		cfg.BurstSize = 1
	}

	clients := newClientLimiters(cfg, time.Now)

	return func(c *gin.Context) {
		if !clients.get(c.ClientIP()).Allow() {
			c.AbortWithStatusJSON(http.StatusTooManyRequests, gin.H{"ok": false, "error": "too many requests"})
			return
		}
		c.Next()
	}
}

type clientLimiter struct {
	limiter  *rate.Limiter
	lastSeen time.Time
}

// clientLimiters holds one bucket per IP. Buckets idle for longer than ttl
// with a full burst are dropped on the next sweep, which runs at most once
// per ttl.
type clientLimiters struct {
	mu        sync.Mutex
	cfg       RateLimitConfig
	ttl       time.Duration
	now       func() time.Time
	entries   map[string]*clientLimiter
	lastSweep time.Time
}

func newClientLimiters(cfg RateLimitConfig, now func() time.Time) *clientLimiters {
	ttl := cfg.IdleTTL
	if ttl <= 0 {
		ttl = defaultIdleTTL
	}
	return &clientLimiters{cfg: cfg, ttl: ttl, now: now, entries: map[string]*clientLimiter{}, lastSweep: now()}
}

func (c *clientLimiters) get(ip string) *rate.Limiter {
	c.mu.Lock()
	defer c.mu.Unlock()

	now := c.now()
	if now.Sub(c.lastSweep) >= c.ttl {
		c.sweep(now)
	}
	e, ok := c.entries[ip]
	if !ok {
		e = &clientLimiter{limiter: rate.NewLimiter(c.cfg.RateLimit, c.cfg.BurstSize)}
		c.entries[ip] = e
	}
	e.lastSeen = now
	return e.limiter
}

// sweep must be called with mu held. A bucket that has not refilled is kept
// so that dropping it never grants extra requests.
func (c *clientLimiters) sweep(now time.Time) {
	for ip, e := range c.entries {
		if now.Sub(e.lastSeen) >= c.ttl && e.limiter.TokensAt(now) >= float64(c.cfg.BurstSize) {
			delete(c.entries, ip)
		}
	}
	c.lastSweep = now
}

func (c *clientLimiters) size() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.entries)
}
