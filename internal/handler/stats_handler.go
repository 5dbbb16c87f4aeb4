package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/edumatrix/edumatrix-api/internal/service"
	"github.com/edumatrix/edumatrix-api/pkg/response"
)

// StatsHandler exposes the cached registry statistics endpoint.
type StatsHandler struct {
	stats   *service.StatsService
	metrics *service.MetricsService
}

// NewStatsHandler constructs StatsHandler.
func NewStatsHandler(stats *service.StatsService, metrics *service.MetricsService) *StatsHandler {
	return &StatsHandler{stats: stats, metrics: metrics}
}

// Get godoc
// @Summary Registry statistics
// @Tags Stats
// @Produce json
// @Success 200 {object} response.Envelope
// @Router /stats [get]
func (h *StatsHandler) Get(c *gin.Context) {
	stats, hit, err := h.stats.Get(c.Request.Context())
	if err != nil {
		response.Error(c, err)
		return
	}
	h.metrics.RecordCacheLookup(hit)
	response.JSON(c, http.StatusOK, stats, nil, map[string]interface{}{"cache_hit": hit})
}
