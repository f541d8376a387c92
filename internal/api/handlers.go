package api

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/u22754459/Group-29-Retail-Supply-Chain/internal/config"
	"github.com/u22754459/Group-29-Retail-Supply-Chain/internal/db"
	"github.com/u22754459/Group-29-Retail-Supply-Chain/internal/models"
)

const requestTimeout = 10 * time.Second

// Store is the persistence surface the handlers use. *db.Database implements it.
type Store interface {
	Health(ctx context.Context) error

	ListProducts(ctx context.Context) ([]models.Product, error)
	GetProduct(ctx context.Context, id int) (*models.Product, error)
	CreateProduct(ctx context.Context, p models.Product) (int, error)
	ListCategories(ctx context.Context) ([]models.Category, error)
	ListCategoryNames(ctx context.Context) ([]string, error)

	ListOrders(ctx context.Context) ([]models.Order, error)
	ListOrdersForTracking(ctx context.Context) ([]models.Order, error)
	GetOrder(ctx context.Context, id int) (*models.Order, error)
	CreateOrder(ctx context.Context, o models.Order) (*models.Order, error)
	UpdateOrderStatus(ctx context.Context, id int, req models.UpdateOrderStatusRequest) (*models.Order, error)

	ListForecasts(ctx context.Context) ([]models.Forecast, error)

	RecentFeedback(ctx context.Context, limit int) ([]models.Feedback, error)
	FeedbackSummary(ctx context.Context) (*models.FeedbackSummary, error)
	CreateFeedback(ctx context.Context, f models.Feedback) (int, error)

	GetUserByEmail(ctx context.Context, email string) (*models.User, error)
	GetUserByID(ctx context.Context, id int) (*models.User, error)
	CreateUser(ctx context.Context, u models.User) (int, error)

	DashboardMetrics(ctx context.Context) (*models.DashboardMetrics, error)
}

// Mailer sends transactional emails. Implementations must tolerate being disabled.
type Mailer interface {
	SendWelcome(ctx context.Context, user models.User) error
	SendFeedbackThanks(ctx context.Context, f models.Feedback) error
}

// OrderNotifier publishes order lifecycle events
type OrderNotifier interface {
	OrderStatusChanged(ctx context.Context, o models.Order) error
}

// Handler holds the store and integrations and provides HTTP handlers
type Handler struct {
	store    Store
	auth     config.AuthConfig
	mailer   Mailer
	notifier OrderNotifier
	now      func() time.Time
}

// NewHandler creates a new handler instance. store may be nil when the
// database was unreachable at startup; readiness reports it.
func NewHandler(store Store, auth config.AuthConfig, mailer Mailer, notifier OrderNotifier) *Handler {
	return &Handler{
		store:    store,
		auth:     auth,
		mailer:   mailer,
		notifier: notifier,
		now:      time.Now,
	}
}

func (h *Handler) requestContext(c *gin.Context) (context.Context, context.CancelFunc) {
	return context.WithTimeout(c.Request.Context(), requestTimeout)
}

// Live reports that the process is up
func (h *Handler) Live(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}

// Ready checks the health of the database
func (h *Handler) Ready(c *gin.Context) {
	ctx, cancel := context.WithTimeout(c.Request.Context(), 5*time.Second)
	defer cancel()

	err := db.ErrUnavailable
	if h.store != nil {
		err = h.store.Health(ctx)
	}
	if err != nil {
		c.JSON(http.StatusServiceUnavailable, models.ErrorResponse{
			Error:   "Database connection failed",
			Message: err.Error(),
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"status":    "ready",
		"service":   "retail-supply-chain",
		"timestamp": time.Now().UTC(),
	})
}

// RequireStore short-circuits requests with 503 while the database is unavailable
func (h *Handler) RequireStore() gin.HandlerFunc {
	return func(c *gin.Context) {
		if h.store != nil {
			c.Next()
			return
		}
		if isAPIRequest(c) {
			c.AbortWithStatusJSON(http.StatusServiceUnavailable, models.ErrorResponse{
				Error: "Database unavailable",
			})
			return
		}
		h.render(c, http.StatusServiceUnavailable, "500.html", gin.H{"Title": "Service unavailable"})
		c.Abort()
	}
}

func isNotFound(err error) bool {
	return errors.Is(err, db.ErrNotFound)
}
