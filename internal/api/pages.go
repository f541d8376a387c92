package api

import (
	"errors"
	"fmt"
	"log"
	"net/http"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"
	"golang.org/x/crypto/bcrypt"

	"github.com/u22754459/Group-29-Retail-Supply-Chain/internal/db"
	"github.com/u22754459/Group-29-Retail-Supply-Chain/internal/models"
)

const recentFeedbackOnPage = 10

// render executes a page template with the session user and pending flashes
func (h *Handler) render(c *gin.Context, status int, name string, data gin.H) {
	if data == nil {
		data = gin.H{}
	}
	data["User"] = CurrentUser(c)
	data["Flashes"] = h.takeFlashes(c)
	data["Page"] = strings.TrimSuffix(name, ".html")
	c.HTML(status, name, data)
}

// pageError logs a load failure and surfaces it on the page being rendered
func (h *Handler) pageError(c *gin.Context, what string, err error) {
	_ = c.Error(err)
	log.Printf("[SC-WEB] %s: %v", what, err)
	h.addFlash(c, "danger", fmt.Sprintf("Error loading %s: %v", what, err))
}

func (h *Handler) redirect(c *gin.Context, location string) {
	c.Redirect(http.StatusFound, location)
}

// Index renders the KPI dashboard
func (h *Handler) Index(c *gin.Context) {
	ctx, cancel := h.requestContext(c)
	defer cancel()

	metrics, err := h.store.DashboardMetrics(ctx)
	if err != nil {
		h.pageError(c, "dashboard", err)
		metrics = &models.DashboardMetrics{}
	}
	h.render(c, http.StatusOK, "index.html", gin.H{"Metrics": metrics})
}

// Shop renders the product catalog
func (h *Handler) Shop(c *gin.Context) {
	ctx, cancel := h.requestContext(c)
	defer cancel()

	products, err := h.store.ListProducts(ctx)
	if err != nil {
		h.pageError(c, "products", err)
	}
	categories, err := h.store.ListCategoryNames(ctx)
	if err != nil {
		h.pageError(c, "categories", err)
	}
	h.render(c, http.StatusOK, "shop.html", gin.H{
		"Products":   products,
		"Categories": categories,
	})
}

// ShopAction handles the add-to-cart form. Nothing is persisted.
func (h *Handler) ShopAction(c *gin.Context) {
	if c.PostForm("action") == "add_to_cart" {
		h.addFlash(c, "success", fmt.Sprintf("%s added to cart!", c.PostForm("product_name")))
	}
	h.redirect(c, "/shop")
}

// Tracking renders orders grouped by shipment stage
func (h *Handler) Tracking(c *gin.Context) {
	ctx, cancel := h.requestContext(c)
	defer cancel()

	orders, err := h.store.ListOrdersForTracking(ctx)
	if err != nil {
		h.pageError(c, "orders", err)
	}
	h.render(c, http.StatusOK, "tracking.html", gin.H{
		"Orders":  orders,
		"Summary": models.SummarizeTracking(orders),
	})
}

// Forecast renders the demand forecast table
func (h *Handler) Forecast(c *gin.Context) {
	ctx, cancel := h.requestContext(c)
	defer cancel()

	forecasts, err := h.store.ListForecasts(ctx)
	if err != nil {
		h.pageError(c, "forecasts", err)
	}
	h.render(c, http.StatusOK, "forecast.html", gin.H{"Forecasts": forecasts})
}

// Customer renders the feedback portal
func (h *Handler) Customer(c *gin.Context) {
	ctx, cancel := h.requestContext(c)
	defer cancel()

	entries, err := h.store.RecentFeedback(ctx, recentFeedbackOnPage)
	if err != nil {
		h.pageError(c, "feedback", err)
	}
	summary, err := h.store.FeedbackSummary(ctx)
	if err != nil {
		h.pageError(c, "feedback summary", err)
		summary = &models.FeedbackSummary{}
	}
	h.render(c, http.StatusOK, "customer.html", gin.H{
		"FeedbackList": entries,
		"Metrics":      summary,
	})
}

// parseRatings converts the three rating form fields to integers
func parseRatings(c *gin.Context) (rating, delivery, product int, err error) {
	fields := []string{"rating", "delivery_rating", "product_rating"}
	values := make([]int, len(fields))
	for i, field := range fields {
		raw := c.PostForm(field)
		values[i], err = strconv.Atoi(strings.TrimSpace(raw))
		if err != nil {
			return 0, 0, 0, fmt.Errorf("invalid literal for %s: %q", field, raw)
		}
		if values[i] < 1 || values[i] > 5 {
			return 0, 0, 0, fmt.Errorf("%s must be between 1 and 5", field)
		}
	}
	return values[0], values[1], values[2], nil
}

// SubmitCustomerFeedback handles the feedback form
func (h *Handler) SubmitCustomerFeedback(c *gin.Context) {
	defer h.redirect(c, "/customer")

	rating, delivery, product, err := parseRatings(c)
	if err != nil {
		h.addFlash(c, "danger", "Error submitting feedback: "+err.Error())
		return
	}

	f := models.CreateFeedbackRequest{
		CustomerName:   c.PostForm("customer_name"),
		CustomerEmail:  c.PostForm("customer_email"),
		OrderNumber:    c.PostForm("order_number"),
		Rating:         rating,
		DeliveryRating: delivery,
		ProductRating:  product,
		Comment:        c.PostForm("comment"),
	}.ToFeedback(h.now())

	ctx, cancel := h.requestContext(c)
	defer cancel()

	id, err := h.store.CreateFeedback(ctx, f)
	if err != nil {
		_ = c.Error(err)
		h.addFlash(c, "danger", "Error submitting feedback: "+err.Error())
		return
	}
	f.ID = id
	h.thankForFeedback(c, f)
	h.addFlash(c, "success", "Thank you for your feedback!")
}

// LoginPage renders the login form
func (h *Handler) LoginPage(c *gin.Context) {
	h.render(c, http.StatusOK, "login.html", gin.H{"Email": ""})
}

// LoginSubmit checks the credentials and starts a session
func (h *Handler) LoginSubmit(c *gin.Context) {
	var req models.LoginRequest
	if err := c.ShouldBind(&req); err != nil {
		h.addFlash(c, "danger", "Invalid email or password.")
		h.render(c, http.StatusOK, "login.html", gin.H{"Email": req.Email})
		return
	}

	user, err := h.authenticate(c, req.Email, req.Password)
	if err != nil {
		if !isNotFound(err) && !errors.Is(err, bcrypt.ErrMismatchedHashAndPassword) {
			_ = c.Error(err)
		}
		h.addFlash(c, "danger", "Invalid email or password.")
		h.render(c, http.StatusOK, "login.html", gin.H{"Email": req.Email})
		return
	}

	if err := h.startSession(c, *user); err != nil {
		_ = c.Error(err)
		h.addFlash(c, "danger", "Login is unavailable: "+err.Error())
		h.render(c, http.StatusOK, "login.html", gin.H{"Email": req.Email})
		return
	}

	h.addFlash(c, "success", "Login successful!")
	h.redirect(c, "/")
}

// SignupPage renders the signup form
func (h *Handler) SignupPage(c *gin.Context) {
	h.render(c, http.StatusOK, "signup.html", gin.H{"Form": models.SignupRequest{}})
}

// SignupSubmit registers a customer account
func (h *Handler) SignupSubmit(c *gin.Context) {
	var req models.SignupRequest
	_ = c.ShouldBind(&req)
	form := gin.H{"Form": req}

	if req.Password != req.ConfirmPassword {
		h.addFlash(c, "danger", "Passwords do not match!")
		h.render(c, http.StatusOK, "signup.html", form)
		return
	}
	if strings.TrimSpace(req.Email) == "" || req.Password == "" {
		h.addFlash(c, "danger", "Email and password are required.")
		h.render(c, http.StatusOK, "signup.html", form)
		return
	}

	ctx, cancel := h.requestContext(c)
	defer cancel()

	if _, err := h.store.GetUserByEmail(ctx, strings.TrimSpace(req.Email)); err == nil {
		h.addFlash(c, "danger", "Email already registered.")
		h.render(c, http.StatusOK, "signup.html", form)
		return
	} else if !isNotFound(err) {
		h.signupFailed(c, form, err)
		return
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		h.signupFailed(c, form, err)
		return
	}
	user := models.User{
		FirstName: req.FirstName,
		LastName:  req.LastName,
		Email:     strings.TrimSpace(req.Email),
		Password:  string(hash),
		UserType:  models.UserTypeCustomer,
	}
	id, err := h.store.CreateUser(ctx, user)
	if errors.Is(err, db.ErrEmailTaken) {
		h.addFlash(c, "danger", "Email already registered.")
		h.render(c, http.StatusOK, "signup.html", form)
		return
	}
	if err != nil {
		h.signupFailed(c, form, err)
		return
	}
	user.ID = id

	if h.mailer != nil {
		if err := h.mailer.SendWelcome(ctx, user); err != nil {
			log.Printf("[WARN] welcome email to %s failed: %v", user.Email, err)
			_ = c.Error(err)
		}
	}

	h.addFlash(c, "success", "Account created successfully! Please log in.")
	h.redirect(c, "/login")
}

func (h *Handler) signupFailed(c *gin.Context, form gin.H, err error) {
	_ = c.Error(err)
	h.addFlash(c, "danger", "Error creating account: "+err.Error())
	h.render(c, http.StatusOK, "signup.html", form)
}

// Logout clears the session
func (h *Handler) Logout(c *gin.Context) {
	h.clearSession(c)
	h.addFlash(c, "info", "You have been logged out.")
	h.redirect(c, "/")
}

// NotFound renders the 404 page, or a JSON body for API paths
func (h *Handler) NotFound(c *gin.Context) {
	if isAPIRequest(c) {
		c.JSON(http.StatusNotFound, models.ErrorResponse{Error: "Not found"})
		return
	}
	h.render(c, http.StatusNotFound, "404.html", gin.H{"Title": "Not found"})
}

// Recovery turns panics into the 500 page, or a JSON body for API paths
func (h *Handler) Recovery() gin.HandlerFunc {
	return gin.CustomRecovery(func(c *gin.Context, recovered any) {
		log.Printf("[SC-WEB] panic serving %s: %v", c.Request.URL.Path, recovered)
		if isAPIRequest(c) {
			c.AbortWithStatusJSON(http.StatusInternalServerError, models.ErrorResponse{Error: "Internal server error"})
			return
		}
		h.render(c, http.StatusInternalServerError, "500.html", gin.H{"Title": "Server error"})
		c.Abort()
	})
}

func isAPIRequest(c *gin.Context) bool {
	return strings.HasPrefix(c.Request.URL.Path, "/api/")
}
