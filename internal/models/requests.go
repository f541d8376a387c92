package models

import "time"

// Default stock thresholds applied when a product is created without them
const (
	DefaultMinStockLevel = 10
	DefaultMaxStockLevel = 100
)

// Defaults applied to new orders
const (
	DefaultOrderLocation = "Warehouse"
	DefaultOrderQuantity = 1
)

// CreateProductRequest represents a request to add a product to the catalog
type CreateProductRequest struct {
	SKU           string   `json:"sku" binding:"required"`
	Name          string   `json:"product_name" binding:"required"`
	CategoryID    *int     `json:"category_id,omitempty"`
	Quantity      *int     `json:"quantity,omitempty" binding:"omitempty,min=0"`
	Price         *float64 `json:"price" binding:"required,gte=0"`
	Description   string   `json:"description,omitempty"`
	Supplier      string   `json:"supplier,omitempty"`
	MinStockLevel *int     `json:"min_stock_level,omitempty" binding:"omitempty,min=0"`
	MaxStockLevel *int     `json:"max_stock_level,omitempty" binding:"omitempty,min=0"`
}

// ToProduct applies defaults and returns the product row to insert
func (r CreateProductRequest) ToProduct() Product {
	p := Product{
		SKU:           r.SKU,
		Name:          r.Name,
		CategoryID:    r.CategoryID,
		Description:   r.Description,
		Supplier:      r.Supplier,
		MinStockLevel: DefaultMinStockLevel,
		MaxStockLevel: DefaultMaxStockLevel,
	}
	if r.Quantity != nil {
		p.Quantity = *r.Quantity
	}
	if r.Price != nil {
		p.Price = *r.Price
	}
	if r.MinStockLevel != nil {
		p.MinStockLevel = *r.MinStockLevel
	}
	if r.MaxStockLevel != nil {
		p.MaxStockLevel = *r.MaxStockLevel
	}
	return p
}

// CreateOrderRequest represents a request to place an order
type CreateOrderRequest struct {
	CustomerName  string   `json:"customer_name" binding:"required"`
	CustomerEmail string   `json:"customer_email,omitempty"`
	ProductName   string   `json:"product_name" binding:"required"`
	ProductID     *int     `json:"product_id,omitempty"`
	Quantity      *int     `json:"quantity,omitempty" binding:"omitempty,min=1"`
	TotalAmount   *float64 `json:"total_amount" binding:"required,gte=0"`
	ETA           string   `json:"eta,omitempty"`
}

// ToOrder applies defaults and returns the order row to insert (order number excluded)
func (r CreateOrderRequest) ToOrder() Order {
	o := Order{
		CustomerName:  r.CustomerName,
		CustomerEmail: r.CustomerEmail,
		ProductName:   r.ProductName,
		ProductID:     r.ProductID,
		Quantity:      DefaultOrderQuantity,
		Status:        OrderStatusProcessing,
		ETA:           r.ETA,
		Location:      DefaultOrderLocation,
		Progress:      0,
	}
	if r.Quantity != nil {
		o.Quantity = *r.Quantity
	}
	if r.TotalAmount != nil {
		o.TotalAmount = *r.TotalAmount
	}
	return o
}

// UpdateOrderStatusRequest represents a request to move an order along its route
type UpdateOrderStatusRequest struct {
	Status   OrderStatus `json:"status" binding:"required"`
	Location string      `json:"location,omitempty"`
	Progress int         `json:"progress,omitempty" binding:"omitempty,min=0,max=100"`
}

// CreateFeedbackRequest represents a customer feedback submission
type CreateFeedbackRequest struct {
	CustomerName   string `json:"customer_name" binding:"required"`
	CustomerEmail  string `json:"customer_email,omitempty"`
	OrderNumber    string `json:"order_number" binding:"required"`
	Rating         int    `json:"rating" binding:"required,min=1,max=5"`
	DeliveryRating int    `json:"delivery_rating" binding:"required,min=1,max=5"`
	ProductRating  int    `json:"product_rating" binding:"required,min=1,max=5"`
	Comment        string `json:"comment" binding:"required"`
	OrderStatus    string `json:"order_status,omitempty"`
}

// ToFeedback stamps the feedback date and default order status
func (r CreateFeedbackRequest) ToFeedback(now time.Time) Feedback {
	status := r.OrderStatus
	if status == "" {
		status = string(OrderStatusDelivered)
	}
	return Feedback{
		CustomerName:   r.CustomerName,
		CustomerEmail:  r.CustomerEmail,
		OrderNumber:    r.OrderNumber,
		Rating:         r.Rating,
		DeliveryRating: r.DeliveryRating,
		ProductRating:  r.ProductRating,
		Comment:        r.Comment,
		FeedbackDate:   now.Format("2006-01-02"),
		OrderStatus:    status,
	}
}

// LoginRequest represents the request payload for user login
type LoginRequest struct {
	Email    string `json:"email" form:"email" binding:"required"`
	Password string `json:"password" form:"password" binding:"required"`
}

// SignupRequest represents the signup form
type SignupRequest struct {
	FirstName       string `form:"first_name"`
	LastName        string `form:"last_name"`
	Email           string `form:"email"`
	Password        string `form:"password"`
	ConfirmPassword string `form:"confirm_password"`
}

// AuthResponse represents the response after successful API authentication
type AuthResponse struct {
	Token     string    `json:"token"`
	ExpiresAt time.Time `json:"expires_at"`
	User      User      `json:"user"`
}

// ErrorResponse represents an error response
type ErrorResponse struct {
	Error   string `json:"error"`
	Message string `json:"message,omitempty"`
}

// SuccessResponse represents a success response
type SuccessResponse struct {
	Message string      `json:"message"`
	Data    interface{} `json:"data,omitempty"`
}
