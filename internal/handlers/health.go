package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/akshay-h-dev/milestack/pkg/response"
)

// Health returns the banner payload used by uptime checks.
func Health() gin.HandlerFunc {
	return func(c *gin.Context) {
		response.JSON(c, http.StatusOK, gin.H{"ok": true, "msg": "Milestack backend running"})
	}
}
