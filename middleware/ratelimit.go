package middleware

import (
	"fmt"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/ulule/limiter/v3"
	"github.com/ulule/limiter/v3/drivers/store/memory"
)

// RateLimit enforces a per-client-IP ceiling given in formatted notation
// ("5-M" is five per minute). Exceeding it yields 429 with the number of
// seconds until the window resets. Each call owns an independent in-memory
// store, so per-route ceilings stack on top of the default one.
func RateLimit(formatted string) gin.HandlerFunc {
	rate, err := limiter.NewRateFromFormatted(formatted)
	if err != nil {
		// Rates come from config defaults or env overrides; a malformed
		// override should fail at startup, not at request time.
		panic(fmt.Sprintf("invalid rate limit %q: %v", formatted, err))
	}

	instance := limiter.New(memory.NewStore(), rate)

	return func(c *gin.Context) {
		limiterCtx, err := instance.Get(c.Request.Context(), c.ClientIP())
		if err != nil {
			c.Next()
			return
		}

		if limiterCtx.Reached {
			retryAfter := int64(time.Until(time.Unix(limiterCtx.Reset, 0)).Seconds())
			if retryAfter < 0 {
				retryAfter = 0
			}
			c.AbortWithStatusJSON(http.StatusTooManyRequests, gin.H{
				"error":       "Rate limit exceeded. Please try again later.",
				"retry_after": retryAfter,
			})
			return
		}

		c.Next()
	}
}
