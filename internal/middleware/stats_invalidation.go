package middleware

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/edumatrix/edumatrix-api/internal/service"
)

// StatsInvalidation drops the cached statistics snapshot after any
// successful mutating request, so /stats never serves stale counts
// longer than one request after a write.
func StatsInvalidation(stats *service.StatsService) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Next()
		if stats == nil {
			return
		}
		switch c.Request.Method {
		case http.MethodPost, http.MethodPut, http.MethodDelete:
			if c.Writer.Status() < http.StatusMultipleChoices {
				stats.Invalidate(c.Request.Context())
			}
		}
	}
}
