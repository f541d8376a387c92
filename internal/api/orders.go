package api

import (
	"fmt"
	"log"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/u22754459/Group-29-Retail-Supply-Chain/internal/models"
)

// GetOrders lists all orders, newest first
func (h *Handler) GetOrders(c *gin.Context) {
	ctx, cancel := h.requestContext(c)
	defer cancel()

	orders, err := h.store.ListOrders(ctx)
	if err != nil {
		c.JSON(http.StatusInternalServerError, models.ErrorResponse{
			Error:   "Failed to get orders",
			Message: err.Error(),
		})
		return
	}
	c.JSON(http.StatusOK, orders)
}

// GetOrder returns one order or 404
func (h *Handler) GetOrder(c *gin.Context) {
	id, ok := pathID(c, "Order")
	if !ok {
		return
	}

	ctx, cancel := h.requestContext(c)
	defer cancel()

	order, err := h.store.GetOrder(ctx, id)
	if err != nil {
		if isNotFound(err) {
			c.JSON(http.StatusNotFound, models.ErrorResponse{Error: "Order not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, models.ErrorResponse{
			Error:   "Failed to get order",
			Message: err.Error(),
		})
		return
	}
	c.JSON(http.StatusOK, order)
}

// CreateOrder places an order with the next order number
func (h *Handler) CreateOrder(c *gin.Context) {
	var req models.CreateOrderRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, models.ErrorResponse{
			Error:   "Invalid request body",
			Message: err.Error(),
		})
		return
	}

	ctx, cancel := h.requestContext(c)
	defer cancel()

	order, err := h.store.CreateOrder(ctx, req.ToOrder())
	if err != nil {
		c.JSON(http.StatusBadRequest, models.ErrorResponse{
			Error:   "Failed to create order",
			Message: err.Error(),
		})
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"success":      true,
		"order_id":     order.ID,
		"order_number": order.OrderNumber,
	})
}

// UpdateOrderStatus moves an order along its route and publishes the change
func (h *Handler) UpdateOrderStatus(c *gin.Context) {
	id, ok := pathID(c, "Order")
	if !ok {
		return
	}

	var req models.UpdateOrderStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, models.ErrorResponse{
			Error:   "Invalid request body",
			Message: err.Error(),
		})
		return
	}
	if !req.Status.IsValid() {
		c.JSON(http.StatusBadRequest, models.ErrorResponse{
			Error:   "Invalid status",
			Message: fmt.Sprintf("Status must be one of: %s, %s, %s, %s",
				models.OrderStatusProcessing, models.OrderStatusInTransit, models.OrderStatusDelayed, models.OrderStatusDelivered),
		})
		return
	}

	ctx, cancel := h.requestContext(c)
	defer cancel()

	order, err := h.store.UpdateOrderStatus(ctx, id, req)
	if err != nil {
		if isNotFound(err) {
			c.JSON(http.StatusNotFound, models.ErrorResponse{Error: "Order not found"})
			return
		}
		c.JSON(http.StatusBadRequest, models.ErrorResponse{
			Error:   "Failed to update order status",
			Message: err.Error(),
		})
		return
	}

	if h.notifier != nil {
		if err := h.notifier.OrderStatusChanged(ctx, *order); err != nil {
			log.Printf("[WARN] order event for %s not published: %v", order.OrderNumber, err)
			_ = c.Error(err)
		}
	}

	c.JSON(http.StatusOK, gin.H{"success": true, "message": "Order status updated"})
}
