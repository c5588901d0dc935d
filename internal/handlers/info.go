package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

const ServiceName = "lead-intake"

// Health handles GET /health, the liveness probe.
func Health(version string) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"status":  "healthy",
			"service": ServiceName,
			"version": version,
		})
	}
}

// Root handles GET / with basic API info.
func Root(version string) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"service": ServiceName,
			"version": version,
			"endpoints": gin.H{
				"lead_intake": "POST /lead-intake",
				"transcribe":  "POST /transcribe",
				"health":      "GET /health",
			},
		})
	}
}
