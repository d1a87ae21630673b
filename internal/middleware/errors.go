package middleware

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"breezerelay/internal/domain/dto"
	"breezerelay/internal/logger"
)

// ErrorHandler turns errors attached to the gin context during handling
// into a single 500 JSON response. Requests that already wrote a
// response are left untouched.
func ErrorHandler(c *gin.Context) {
	c.Next()

	if len(c.Errors) == 0 || c.Writer.Written() {
		return
	}
	err := c.Errors.Last().Err
	logger.L().Error().
		Err(err).
		Str("path", c.Request.URL.Path).
		Msg("request failed")
	c.AbortWithStatusJSON(http.StatusInternalServerError, dto.NewErrorResponse("Internal server error", err))
}

// AbortWithError stops the request with the given status and a
// standardized error body, recording err on the context for the
// request log.
func AbortWithError(c *gin.Context, status int, message string, err error) {
	if err != nil {
		_ = c.Error(err)
	}
	c.AbortWithStatusJSON(status, dto.NewErrorResponse(message, err))
}
