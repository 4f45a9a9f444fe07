package v1

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"k8s.io/klog/v2"
)

// Pinger reports whether the database answers
type Pinger interface {
	PingContext(ctx context.Context) error
}

// HealthCheck handles the health check endpoint. A nil db skips the database probe.
func HealthCheck(db Pinger) gin.HandlerFunc {
	return func(c *gin.Context) {
		overall, database := "ok", "ok"
		status := http.StatusOK
		if db != nil {
			ctx, cancel := context.WithTimeout(c.Request.Context(), 2*time.Second)
			defer cancel()
			if err := db.PingContext(ctx); err != nil {
				klog.ErrorS(err, "Health check database ping failed")
				overall, database = "degraded", "unavailable"
				status = http.StatusServiceUnavailable
			}
		}

		c.JSON(status, gin.H{
			"status":   overall,
			"service":  "grantdesk-api",
			"version":  "1.0.0",
			"database": database,
		})
	}
}
