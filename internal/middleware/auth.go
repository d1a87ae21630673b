package middleware

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"breezerelay/internal/domain/dto"
)

// AppTokenHeader carries the shared secret on protected routes.
const AppTokenHeader = "X-APP-TOKEN"

// SharedSecret guards a route group with a static token. The expected
// value is read per request through token, so a server deployed without
// one answers 500 (misconfiguration) while a bad or missing header
// answers 401.
func SharedSecret(token func() string) gin.HandlerFunc {
	return func(c *gin.Context) {
		expected := token()
		if expected == "" {
			c.AbortWithStatusJSON(http.StatusInternalServerError,
				dto.NewErrorResponse("APP_TOKEN not set on server", nil))
			return
		}
		if c.GetHeader(AppTokenHeader) != expected {
			c.AbortWithStatusJSON(http.StatusUnauthorized,
				dto.NewErrorResponse("Unauthorized", nil))
			return
		}
		c.Next()
	}
}
