package middleware

import (
	"context"
	_ "embed"
	"fmt"
	"net/http"
	"time"

	"fintrack/internal/auth"
	"fintrack/internal/response"

	"github.com/gin-gonic/gin"
	"github.com/go-redis/redis/v8"
	"github.com/sirupsen/logrus"
)

//go:embed rate_limiter.lua
var luaScript string

// RateLimiterConfig holds rate limiter configuration
type RateLimiterConfig struct {
	Capacity   int     // Maximum number of tokens (max burst)
	RefillRate float64 // Tokens refilled per second
}

// DefaultRateLimiterConfig returns default rate limiter settings:
// 10 requests per second with burst capacity of 20.
func DefaultRateLimiterConfig() *RateLimiterConfig {
	return &RateLimiterConfig{
		Capacity:   20,
		RefillRate: 10.0,
	}
}

// StrictRateLimiterConfig guards credential endpoints:
// burst of 5, sustained 1 request per 2 seconds.
func StrictRateLimiterConfig() *RateLimiterConfig {
	return &RateLimiterConfig{
		Capacity:   5,
		RefillRate: 0.5,
	}
}

// RateLimiterMiddleware implements a token bucket using Redis + Lua.
// Buckets are keyed by the authenticated user when one is in the context,
// falling back to the client IP for public endpoints.
func RateLimiterMiddleware(redisClient *redis.Client, config *RateLimiterConfig) gin.HandlerFunc {
	// Load the Lua script once; Redis caches it by SHA.
	ctx := context.Background()
	scriptSHA, err := redisClient.ScriptLoad(ctx, luaScript).Result()
	if err != nil {
		logrus.WithError(err).Fatal("Failed to load Lua script for rate limiter")
	}

	return func(c *gin.Context) {
		key := clientRateLimiterKey(c)
		now := time.Now().Unix()

		result, err := redisClient.EvalSha(ctx, scriptSHA, []string{key},
			config.Capacity,
			config.RefillRate,
			now,
		).Result()

		if err != nil {
			logrus.WithError(err).Error("Failed to execute rate limiter Lua script")
			// Fail open: allow request if Redis fails
			c.Next()
			return
		}

		allowed := result.(int64)
		if allowed == 0 {
			response.Fail(c, http.StatusTooManyRequests, "Rate limit exceeded", map[string]string{
				"retry_after": fmt.Sprintf("%.1f seconds", 1.0/config.RefillRate),
			})
			c.Abort()
			return
		}

		c.Next()
	}
}

func clientRateLimiterKey(c *gin.Context) string {
	if userID, err := auth.GetUserIDFromContext(c); err == nil {
		return fmt.Sprintf("rate_limiter:user:%d", userID)
	}
	return fmt.Sprintf("rate_limiter:ip:%s", c.ClientIP())
}
