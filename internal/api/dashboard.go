package api

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/u22754459/Group-29-Retail-Supply-Chain/internal/models"
)

// GetDashboardMetrics returns the KPI block
func (h *Handler) GetDashboardMetrics(c *gin.Context) {
	ctx, cancel := h.requestContext(c)
	defer cancel()

	metrics, err := h.store.DashboardMetrics(ctx)
	if err != nil {
		c.JSON(http.StatusInternalServerError, models.ErrorResponse{
			Error:   "Failed to get dashboard metrics",
			Message: err.Error(),
		})
		return
	}
	c.JSON(http.StatusOK, metrics)
}

// GetForecasts returns the demand forecast rows
func (h *Handler) GetForecasts(c *gin.Context) {
	ctx, cancel := h.requestContext(c)
	defer cancel()

	forecasts, err := h.store.ListForecasts(ctx)
	if err != nil {
		c.JSON(http.StatusInternalServerError, models.ErrorResponse{
			Error:   "Failed to get forecasts",
			Message: err.Error(),
		})
		return
	}
	c.JSON(http.StatusOK, forecasts)
}
