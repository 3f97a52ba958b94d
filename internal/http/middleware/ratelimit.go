package middleware

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/yungbote/newsroom-backend/internal/http/response"
	"github.com/yungbote/newsroom-backend/internal/observability"
	"github.com/yungbote/newsroom-backend/internal/platform/ratelimit"
)

var errTooManyRequests = errors.New("too many requests, slow down")

// RateLimitByIP rejects requests from a client IP that exceeds the limiter.
// A nil limiter disables the check.
func RateLimitByIP(limiter *ratelimit.KeyedLimiter, m *observability.Metrics) gin.HandlerFunc {
	if limiter == nil {
		return func(c *gin.Context) { c.Next() }
	}
	return func(c *gin.Context) {
		if !limiter.Allow(c.ClientIP()) {
			m.IncRateLimited(c.FullPath())
			c.Header("Retry-After", "1")
			response.RespondError(c, http.StatusTooManyRequests, "rate_limited", errTooManyRequests)
			c.Abort()
			return
		}
		c.Next()
	}
}
