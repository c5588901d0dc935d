// Package auth implements the shared-secret access gate protecting the
// public endpoints.
package auth

import (
	"crypto/subtle"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
)

// HeaderAPIKey is the request header carrying the shared secret.
const HeaderAPIKey = "X-API-KEY"

// Allowed reports whether a request carrying the provided credential may pass
// the gate. When no secret is configured, every request passes. The
// comparison is constant-time so its duration does not depend on where the
// strings first differ.
func Allowed(configuredSecret, provided string) bool {
	expected := strings.TrimSpace(configuredSecret)
	if expected == "" {
		return true
	}
	provided = strings.TrimSpace(provided)
	if provided == "" {
		return false
	}
	return subtle.ConstantTimeCompare([]byte(provided), []byte(expected)) == 1
}

// Middleware rejects requests that fail the gate with 401 and no detail
// beyond "unauthorized".
func Middleware(configuredSecret string) gin.HandlerFunc {
	return func(c *gin.Context) {
		if !Allowed(configuredSecret, c.GetHeader(HeaderAPIKey)) {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
			return
		}
		c.Next()
	}
}
