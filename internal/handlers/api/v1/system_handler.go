package v1

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"
)

// HealthCheck reports whether a dependency is reachable
type HealthCheck func(ctx context.Context) error

// Test handles GET /api/test
func Test(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "ok", "message": "AGE Toolbox API is working!"})
}

// Health returns the handler for GET /api/health. A nil check always
// reports ok. Check failures are logged, never returned to the caller.
func Health(check HealthCheck) gin.HandlerFunc {
	return func(c *gin.Context) {
		if check != nil {
			if err := check(c.Request.Context()); err != nil {
				slog.WarnContext(c.Request.Context(), "Health check failed", "error", err)
				c.JSON(http.StatusServiceUnavailable, gin.H{"status": "unavailable"})
				return
			}
		}
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	}
}
