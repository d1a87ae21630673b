package api

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// RegisterHealth mounts the liveness endpoint. It is unauthenticated:
// deployment probes and the spreadsheet client's connectivity check hit
// it without the shared secret.
//
// @Summary      Liveness probe
// @Description  Reports whether the relay is up
// @Tags         health
// @Produce      json
// @Success      200  {object}  map[string]bool
// @Router       /health [get]
func RegisterHealth(r *gin.Engine) {
	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"ok": true})
	})
}
