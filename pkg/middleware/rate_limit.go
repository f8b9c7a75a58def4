package middleware

import (
	"net/http"

	"github.com/gin-gonic/gin"

	mem "github.com/masa-png/gadget-concierge-sub001/pkg/memcache"
	"github.com/masa-png/gadget-concierge-sub001/pkg/utils"
)

// RateLimitMiddleware throttles by client IP. Exceeding the budget is
// terminal for the request; the client has to retry later.
func RateLimitMiddleware(limiter mem.KeyedLimiter) gin.HandlerFunc {
	return func(c *gin.Context) {
		if !limiter.Allow(c.ClientIP()) {
			utils.RespondError(c, http.StatusTooManyRequests, "Too many requests, please try again later")
			c.Abort()
			return
		}
		c.Next()
	}
}
