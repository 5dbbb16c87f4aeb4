package middleware

import (
	"time"

	"github.com/gin-gonic/gin"

	"github.com/edumatrix/edumatrix-api/internal/service"
)

// routeLabel keeps the metric label space bounded. Registered routes
// report their pattern (e.g. /api/v1/students/:id); anything that fell
// through to a 404 collapses into a single bucket rather than emitting
// one label per probed URL.
func routeLabel(c *gin.Context) string {
	if pattern := c.FullPath(); pattern != "" {
		return pattern
	}
	return "unmatched"
}

// Metrics records per-request latency and counts through the metrics service.
func Metrics(metricsSvc *service.MetricsService) gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()
		metricsSvc.ObserveHTTPRequest(
			c.Request.Method,
			routeLabel(c),
			c.Writer.Status(),
			time.Since(start),
		)
	}
}
