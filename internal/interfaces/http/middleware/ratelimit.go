package middleware

import (
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/bizcompare/bizcompare/internal/infrastructure/ratelimit"
	"github.com/bizcompare/bizcompare/internal/shared/logger"
	"github.com/bizcompare/bizcompare/internal/shared/utils"
)

// RateLimit enforces a per-IP request budget for a route group. The
// limiter is shared across instances through Redis; if Redis is down
// the request is admitted rather than failing the whole API.
func RateLimit(limiter ratelimit.RateLimiter, scope string, perMinute int, log logger.Interface) gin.HandlerFunc {
	config := ratelimit.Config{RequestsPerMinute: perMinute}

	return func(c *gin.Context) {
		key := fmt.Sprintf("%s:%s", scope, c.ClientIP())

		allowed, err := limiter.Allow(c.Request.Context(), key, config)
		if err != nil {
			log.Warnw("rate limiter unavailable, admitting request", "scope", scope, "error", err)
			c.Next()
			return
		}
		if !allowed {
			utils.ErrorResponse(c, http.StatusTooManyRequests, "rate limit exceeded, please try again later")
			c.Abort()
			return
		}

		c.Next()
	}
}
