package middleware

import (
	"net/http"
	"sync"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/use-agent/blogdex/config"
	"github.com/use-agent/blogdex/models"
	"golang.org/x/time/rate"
)

const (
	limiterIdleTTL  = time.Hour
	limiterSweepGap = 5 * time.Minute
)

// keyedLimiters holds one token bucket per caller identity and sweeps
// buckets that have gone idle so the map cannot grow without bound.
type keyedLimiters struct {
	mu      sync.Mutex
	rps     rate.Limit
	burst   int
	buckets map[string]*bucket
}

type bucket struct {
	lim      *rate.Limiter
	lastSeen time.Time
}

func newKeyedLimiters(cfg config.RateLimitConfig) *keyedLimiters {
	kl := &keyedLimiters{
		rps:     rate.Limit(cfg.RequestsPerSecond),
		burst:   cfg.Burst,
		buckets: make(map[string]*bucket),
	}
	go kl.sweep()
	return kl
}

func (kl *keyedLimiters) allow(identity string) bool {
	kl.mu.Lock()
	defer kl.mu.Unlock()

	b, ok := kl.buckets[identity]
	if !ok {
		b = &bucket{lim: rate.NewLimiter(kl.rps, kl.burst)}
		kl.buckets[identity] = b
	}
	b.lastSeen = time.Now()
	return b.lim.Allow()
}

func (kl *keyedLimiters) sweep() {
	ticker := time.NewTicker(limiterSweepGap)
	defer ticker.Stop()
	for range ticker.C {
		cutoff := time.Now().Add(-limiterIdleTTL)
		kl.mu.Lock()
		for id, b := range kl.buckets {
			if b.lastSeen.Before(cutoff) {
				delete(kl.buckets, id)
			}
		}
		kl.mu.Unlock()
	}
}

// RateLimit applies a token-bucket limit per caller. Authenticated calls
// are keyed by API key, anonymous ones by client IP.
func RateLimit(cfg config.RateLimitConfig) gin.HandlerFunc {
	kl := newKeyedLimiters(cfg)

	return func(c *gin.Context) {
		identity := c.ClientIP()
		if key, ok := c.Get("api_key"); ok {
			identity = key.(string)
		}

		if !kl.allow(identity) {
			c.AbortWithStatusJSON(http.StatusTooManyRequests, models.ErrorResponse{
				Error: models.ErrorDetail{
					Code:    models.ErrCodeRateLimited,
					Message: "rate limit exceeded, please slow down",
				},
			})
			return
		}
		c.Next()
	}
}
