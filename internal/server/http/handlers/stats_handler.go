package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/ecomarket/ecomarket/internal/server/http/dto"
)

// StatsHandler serves aggregate counters and the health probe.
type StatsHandler struct {
	facade StatsFacade
}

// NewStatsHandler constructs StatsHandler.
func NewStatsHandler(facade StatsFacade) *StatsHandler {
	return &StatsHandler{facade: facade}
}

// Statistics handles GET /api/statistics.
func (h *StatsHandler) Statistics(c *gin.Context) {
	summary, err := h.facade.Statistics(c.Request.Context())
	if err != nil {
		c.Status(http.StatusInternalServerError)
		return
	}

	recent := make([]dto.OrderResponse, 0, len(summary.RecentOrders))
	for i := range summary.RecentOrders {
		recent = append(recent, toOrderResponse(&summary.RecentOrders[i]))
	}

	c.JSON(http.StatusOK, dto.StatsResponse{
		UserCount:    summary.UserCount,
		ProductCount: summary.ProductCount,
		OrderCount:   summary.OrderCount,
		RecentOrders: recent,
	})
}

// Health handles GET /api/health.
func (h *StatsHandler) Health(c *gin.Context) {
	if err := h.facade.Health(c.Request.Context()); err != nil {
		c.JSON(http.StatusServiceUnavailable, gin.H{"status": "degraded"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}
