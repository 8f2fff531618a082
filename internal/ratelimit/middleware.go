package ratelimit

import (
	"math"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"
)

const (
	HeaderLimit      = "X-RateLimit-Limit"
	HeaderRemaining  = "X-RateLimit-Remaining"
	HeaderReset      = "X-RateLimit-Reset"
	HeaderRetryAfter = "Retry-After"
)

const tooManyRequestsMessage = "Too many requests, please try again later"

// Middleware limits requests per client IP and route. Limiter errors
// let the request through.
func Middleware(logger zerolog.Logger, limiter Allower) gin.HandlerFunc {
	return func(c *gin.Context) {
		key := c.FullPath() + ":" + c.ClientIP()
		result, err := limiter.Allow(c.Request.Context(), key)
		if err != nil {
			logger.Error().
				Err(err).
				Str("key", key).
				Msg("rate limiter unavailable, allowing request")
			c.Next()
			return
		}

		c.Header(HeaderLimit, strconv.Itoa(result.Limit))
		c.Header(HeaderRemaining, strconv.Itoa(result.Remaining))
		c.Header(HeaderReset, formatUnix(result.ResetAt))

		if !result.Allowed {
			retryAfter := int(math.Ceil(time.Until(result.ResetAt).Seconds()))
			if retryAfter < 1 {
				retryAfter = 1
			}
			c.Header(HeaderRetryAfter, strconv.Itoa(retryAfter))

			logger.Warn().
				Str("key", key).
				Msg("rate limit exceeded")
			c.AbortWithStatusJSON(http.StatusTooManyRequests, gin.H{
				"success": false,
				"error":   tooManyRequestsMessage,
			})
			return
		}
		c.Next()
	}
}
