package middleware

import (
	"context"
	"time"

	"github.com/gin-gonic/gin"
)

// RequestTimeout deadlines the request context. Outbound calls made by
// handlers inherit the deadline; the budget must cover the slowest
// path, a cold lot-size refresh (publisher priming, listing scan and
// archive download back to back).
func RequestTimeout(d time.Duration) gin.HandlerFunc {
	return func(c *gin.Context) {
		ctx, cancel := context.WithTimeout(c.Request.Context(), d)
		defer cancel()
		c.Request = c.Request.WithContext(ctx)
		c.Next()
	}
}
