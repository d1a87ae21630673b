package middleware

import (
	"time"

	"github.com/gin-gonic/gin"

	"breezerelay/internal/logger"
)

// RequestLogger emits one structured log line per request: method, path,
// status, latency, client IP and the request ID injected by RequestID().
func RequestLogger() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		method := c.Request.Method
		path := c.Request.URL.Path

		c.Next()

		logger.L().Info().
			Str("request_id", c.GetString(RequestIDKey)).
			Str("method", method).
			Str("path", path).
			Int("status", c.Writer.Status()).
			Int64("latency_ms", time.Since(start).Milliseconds()).
			Str("client_ip", c.ClientIP()).
			Msg("http_request")
	}
}
