package middleware

import (
	"fmt"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"

	"github.com/mindease/mindease-backend/internal/logger"
	"github.com/mindease/mindease-backend/internal/requestdata"
)

// RateLimiter is a fixed-window per-caller limiter backed by Redis. A nil
// Redis client disables limiting entirely, so the service runs fine without
// Redis in development.
type RateLimiter struct {
	rdb    *redis.Client
	log    *logger.Logger
	limit  int
	window time.Duration
}

func NewRateLimiter(rdb *redis.Client, log *logger.Logger, limit int, window time.Duration) *RateLimiter {
	return &RateLimiter{
		rdb:    rdb,
		log:    log.With("middleware", "ratelimit"),
		limit:  limit,
		window: window,
	}
}

func (rl *RateLimiter) Limit() gin.HandlerFunc {
	return func(c *gin.Context) {
		if rl.rdb == nil || rl.limit <= 0 {
			c.Next()
			return
		}
		key := rl.key(c)
		ctx := c.Request.Context()

		count, err := rl.rdb.Incr(ctx, key).Result()
		if err != nil {
			// Redis being down should not take chat down with it.
			rl.log.Warn("rate limit check failed, allowing request", "error", err)
			c.Next()
			return
		}
		if count == 1 {
			if err := rl.rdb.Expire(ctx, key, rl.window).Err(); err != nil {
				rl.log.Warn("failed to set rate limit window", "error", err)
			}
		}
		if count > int64(rl.limit) {
			c.AbortWithStatusJSON(http.StatusTooManyRequests, gin.H{"error": "rate limit exceeded, slow down"})
			return
		}
		c.Next()
	}
}

func (rl *RateLimiter) key(c *gin.Context) string {
	id := c.ClientIP()
	if rd := requestdata.GetRequestData(c.Request.Context()); rd != nil && rd.UserID != "" {
		id = rd.UserID
	}
	return fmt.Sprintf("ratelimit:%s:%s", c.FullPath(), id)
}
