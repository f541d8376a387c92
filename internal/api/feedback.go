package api

import (
	"log"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/u22754459/Group-29-Retail-Supply-Chain/internal/models"
)

const (
	defaultFeedbackLimit = 10
	maxFeedbackLimit     = 100
)

// SubmitFeedback stores a customer feedback entry
func (h *Handler) SubmitFeedback(c *gin.Context) {
	var req models.CreateFeedbackRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, models.ErrorResponse{
			Error:   "Invalid request body",
			Message: err.Error(),
		})
		return
	}

	ctx, cancel := h.requestContext(c)
	defer cancel()

	f := req.ToFeedback(h.now())
	id, err := h.store.CreateFeedback(ctx, f)
	if err != nil {
		c.JSON(http.StatusBadRequest, models.ErrorResponse{
			Error:   "Failed to submit feedback",
			Message: err.Error(),
		})
		return
	}
	f.ID = id
	h.thankForFeedback(c, f)

	c.JSON(http.StatusCreated, gin.H{"success": true, "message": "Feedback submitted successfully"})
}

// GetFeedback returns the most recent feedback and the satisfaction summary
func (h *Handler) GetFeedback(c *gin.Context) {
	limit := defaultFeedbackLimit
	if v := c.Query("limit"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil || n < 1 || n > maxFeedbackLimit {
			c.JSON(http.StatusBadRequest, models.ErrorResponse{
				Error:   "Invalid limit",
				Message: "limit must be between 1 and 100",
			})
			return
		}
		limit = n
	}

	ctx, cancel := h.requestContext(c)
	defer cancel()

	entries, err := h.store.RecentFeedback(ctx, limit)
	if err != nil {
		c.JSON(http.StatusInternalServerError, models.ErrorResponse{
			Error:   "Failed to get feedback",
			Message: err.Error(),
		})
		return
	}
	summary, err := h.store.FeedbackSummary(ctx)
	if err != nil {
		c.JSON(http.StatusInternalServerError, models.ErrorResponse{
			Error:   "Failed to get feedback summary",
			Message: err.Error(),
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{"feedback": entries, "metrics": summary})
}

// thankForFeedback emails the customer; failures are logged and never fail the request
func (h *Handler) thankForFeedback(c *gin.Context, f models.Feedback) {
	if h.mailer == nil || f.CustomerEmail == "" {
		return
	}
	ctx, cancel := h.requestContext(c)
	defer cancel()
	if err := h.mailer.SendFeedbackThanks(ctx, f); err != nil {
		log.Printf("[WARN] feedback email to %s failed: %v", f.CustomerEmail, err)
		_ = c.Error(err)
	}
}
