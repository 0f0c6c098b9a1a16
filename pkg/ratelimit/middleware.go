package ratelimit

import (
	"fmt"
	"net/http"
	"strings"

	"seatly/internal/shared/utils/response"

	"github.com/gin-gonic/gin"
)

// Middleware applies the rate limiter to every request, classifying routes
// into budgets by path.
func Middleware(rateLimiter *RateLimiter) gin.HandlerFunc {
	return func(c *gin.Context) {
		clientIP := c.ClientIP()
		limitType := getRateLimitType(c.FullPath())

		result, err := rateLimiter.IsAllowed(c.Request.Context(), clientIP, limitType)
		if err != nil {
			// Redis being down must not take browsing down with it
			c.Next()
			return
		}

		c.Header("X-RateLimit-Limit", fmt.Sprintf("%d", result.Limit))
		c.Header("X-RateLimit-Remaining", fmt.Sprintf("%d", result.Remaining))
		c.Header("X-RateLimit-Reset", fmt.Sprintf("%d", result.ResetTime))

		if !result.Allowed {
			response.RespondJSON(c, "error", http.StatusTooManyRequests,
				"Rate limit exceeded", nil, map[string]interface{}{
					"limit":      result.Limit,
					"reset_time": result.ResetTime,
				})
			c.Abort()
			return
		}

		c.Next()
	}
}

func getRateLimitType(path string) RateLimitType {
	switch {
	case strings.HasPrefix(path, "/health"),
		strings.HasPrefix(path, "/ping"),
		strings.HasPrefix(path, "/status"):
		return RateLimitTypeHealth

	// seat mutation endpoints get the tightest budget
	case strings.HasSuffix(path, "/hold"),
		strings.HasSuffix(path, "/release"),
		strings.Contains(path, "/reservations"):
		return RateLimitTypeBooking

	case strings.Contains(path, "/auth/"):
		return RateLimitTypeAdmin

	case strings.Contains(path, "/movies"),
		strings.Contains(path, "/halls"),
		strings.Contains(path, "/screenings"):
		return RateLimitTypePublic

	default:
		return RateLimitTypeDefault
	}
}
