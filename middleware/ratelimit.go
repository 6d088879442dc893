package middleware

import (
	"net/http"
	"sync"
	"time"

	"github.com/gin-gonic/gin"
)

type window struct {
	count   int
	startAt time.Time
}

// RateLimiter caps requests per client IP over a fixed window. It protects
// the public catalog endpoints from scraping bursts.
type RateLimiter struct {
	mu       sync.Mutex
	visitors map[string]*window
	limit    int
	interval time.Duration
}

// NewRateLimiter allows up to limit requests per interval for each client IP.
func NewRateLimiter(limit int, interval time.Duration) *RateLimiter {
	rl := &RateLimiter{
		visitors: make(map[string]*window),
		limit:    limit,
		interval: interval,
	}

	go rl.cleanup()

	return rl
}

// cleanup drops windows that expired long ago so the visitor map stays bounded.
func (rl *RateLimiter) cleanup() {
	for range time.Tick(5 * time.Minute) {
		rl.mu.Lock()
		cutoff := time.Now().Add(-2 * rl.interval)
		for ip, w := range rl.visitors {
			if w.startAt.Before(cutoff) {
				delete(rl.visitors, ip)
			}
		}
		rl.mu.Unlock()
	}
}

func (rl *RateLimiter) allow(clientIP string) bool {
	rl.mu.Lock()
	defer rl.mu.Unlock()

	now := time.Now()
	w, exists := rl.visitors[clientIP]
	if !exists || now.Sub(w.startAt) >= rl.interval {
		rl.visitors[clientIP] = &window{count: 1, startAt: now}
		return true
	}

	w.count++
	return w.count <= rl.limit
}

// Middleware returns a gin middleware enforcing the limit.
func (rl *RateLimiter) Middleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		if !rl.allow(c.ClientIP()) {
			c.JSON(http.StatusTooManyRequests, gin.H{"error": "Too many requests. Please try again later."})
			c.Abort()
			return
		}
		c.Next()
	}
}
