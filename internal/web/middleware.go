package web

import (
	"math"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/hashicorp/golang-lru/v2/expirable"
	"golang.org/x/time/rate"

	"github.com/twdsco/hackertracker/internal/log"
)

// requestLogger logs one line per request.
func requestLogger() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()
		log.Debug("http request",
			"method", c.Request.Method,
			"path", c.Request.URL.Path,
			"status", c.Writer.Status(),
			"client", c.ClientIP(),
			"elapsed", time.Since(start),
		)
	}
}

// rateLimiter keeps one token bucket per client, forgetting idle clients.
type rateLimiter struct {
	limiters *expirable.LRU[string, *rate.Limiter]
	rate     rate.Limit
	burst    int
}

func newRateLimiter(perSecond float64) *rateLimiter {
	return &rateLimiter{
		limiters: expirable.NewLRU[string, *rate.Limiter](
			1000,          // Max 1000 unique clients
			nil,           // No eviction callback
			time.Minute*5, // TTL: 5 minutes
		),
		rate:  rate.Limit(perSecond),
		burst: int(math.Max(1, math.Ceil(perSecond))),
	}
}

func (rl *rateLimiter) allow(key string) bool {
	limiter, ok := rl.limiters.Get(key)
	if !ok {
		limiter = rate.NewLimiter(rl.rate, rl.burst)
		rl.limiters.Add(key, limiter)
	}
	return limiter.Allow()
}

func (rl *rateLimiter) middleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		if !rl.allow(c.ClientIP()) {
			abortWithError(c, http.StatusTooManyRequests, "rate limit exceeded")
			return
		}
		c.Next()
	}
}

// feedCache holds rendered iCalendar bodies.
type feedCache struct {
	lru *expirable.LRU[string, string]
}

func newFeedCache(size int, ttl time.Duration) *feedCache {
	return &feedCache{lru: expirable.NewLRU[string, string](size, nil, ttl)}
}

func (f *feedCache) get(key string) (string, bool) {
	return f.lru.Get(key)
}

func (f *feedCache) add(key, body string) {
	f.lru.Add(key, body)
}

func (f *feedCache) purge() {
	f.lru.Purge()
}

func abortWithError(c *gin.Context, status int, msg string) {
	c.AbortWithStatusJSON(status, gin.H{"error": msg})
}
