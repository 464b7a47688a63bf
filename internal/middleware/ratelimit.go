package middleware

import (
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/likhith1072/Buyer-Lead-Intake/internal/ratelimit"
)

// RateLimit gates mutating endpoints. Keyed by the authenticated user
// when available, otherwise by client IP. In-process only: separate
// instances do not share counters.
func RateLimit(limiter *ratelimit.Limiter, limit int, window time.Duration) gin.HandlerFunc {
	return func(c *gin.Context) {
		key := "ip:" + c.ClientIP()
		if v, ok := c.Get("user_id"); ok {
			if id, ok := v.(int); ok {
				key = "user:" + strconv.Itoa(id)
			}
		}

		if !limiter.Allow(key, limit, window) {
			c.AbortWithStatusJSON(http.StatusTooManyRequests, gin.H{
				"error": "Too many requests. Please slow down and try again.",
			})
			return
		}
		c.Next()
	}
}
