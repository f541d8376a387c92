package models

import (
	"time"
)

// OrderStatus represents the shipping status of an order
type OrderStatus string

const (
	OrderStatusProcessing OrderStatus = "processing"
	OrderStatusInTransit  OrderStatus = "in-transit"
	OrderStatusDelayed    OrderStatus = "delayed"
	OrderStatusDelivered  OrderStatus = "delivered"
)

// IsValid checks if the order status is one of the known shipment states
func (s OrderStatus) IsValid() bool {
	switch s {
	case OrderStatusProcessing, OrderStatusInTransit, OrderStatusDelayed, OrderStatusDelivered:
		return true
	default:
		return false
	}
}

// SortRank returns the position of the status on the tracking board.
// Unknown statuses sort last.
func (s OrderStatus) SortRank() int {
	switch s {
	case OrderStatusProcessing:
		return 1
	case OrderStatusInTransit:
		return 2
	case OrderStatusDelayed:
		return 3
	case OrderStatusDelivered:
		return 4
	default:
		return 5
	}
}

// UserType represents the role stored on a user row
type UserType string

const (
	UserTypeCustomer UserType = "customer"
	UserTypeAdmin    UserType = "admin"
)

// Category represents a product category
type Category struct {
	ID   int    `json:"category_id" db:"category_id"`
	Name string `json:"category_name" db:"category_name"`
}

// Product represents a stocked item in the catalog
type Product struct {
	ID            int       `json:"product_id" db:"product_id"`
	SKU           string    `json:"sku" db:"sku"`
	Name          string    `json:"product_name" db:"product_name"`
	CategoryID    *int      `json:"category_id" db:"category_id"`
	CategoryName  *string   `json:"category_name,omitempty" db:"category_name"`
	Quantity      int       `json:"quantity" db:"quantity"`
	Price         float64   `json:"price" db:"price"`
	Description   string    `json:"description" db:"description"`
	Supplier      string    `json:"supplier" db:"supplier"`
	MinStockLevel int       `json:"min_stock_level" db:"min_stock_level"`
	MaxStockLevel int       `json:"max_stock_level" db:"max_stock_level"`
	LowStock      bool      `json:"low_stock"`
	CreatedAt     time.Time `json:"created_at" db:"created_at"`
	UpdatedAt     time.Time `json:"updated_at" db:"updated_at"`
}

// IsLowStock reports whether the quantity is below the minimum stock level
func (p *Product) IsLowStock() bool {
	return p.Quantity < p.MinStockLevel
}

// StockValue returns quantity * price
func (p *Product) StockValue() float64 {
	return float64(p.Quantity) * p.Price
}

// Order represents a customer order and its shipment tracking state
type Order struct {
	ID            int         `json:"order_id" db:"order_id"`
	OrderNumber   string      `json:"order_number" db:"order_number"`
	CustomerName  string      `json:"customer_name" db:"customer_name"`
	CustomerEmail string      `json:"customer_email" db:"customer_email"`
	ProductName   string      `json:"product_name" db:"product_name"`
	ProductID     *int        `json:"product_id" db:"product_id"`
	Quantity      int         `json:"quantity" db:"quantity"`
	TotalAmount   float64     `json:"total_amount" db:"total_amount"`
	Status        OrderStatus `json:"status" db:"status"`
	ETA           string      `json:"eta" db:"eta"`
	Location      string      `json:"location" db:"location"`
	Progress      int         `json:"progress" db:"progress"`
	CreatedAt     time.Time   `json:"created_at" db:"created_at"`
	UpdatedAt     time.Time   `json:"updated_at" db:"updated_at"`
}

// Forecast represents a precomputed demand forecast row
type Forecast struct {
	ID              int       `json:"forecast_id" db:"forecast_id"`
	CategoryID      *int      `json:"category_id" db:"category_id"`
	CategoryName    *string   `json:"category_name,omitempty" db:"category_name"`
	CurrentStock    int       `json:"current_stock" db:"current_stock"`
	PredictedDemand int       `json:"predicted_demand" db:"predicted_demand"`
	ForecastPeriod  string    `json:"forecast_period" db:"forecast_period"`
	Status          string    `json:"status" db:"status"`
	CreatedAt       time.Time `json:"created_at" db:"created_at"`
}

// Feedback represents a customer satisfaction entry
type Feedback struct {
	ID             int       `json:"feedback_id" db:"feedback_id"`
	CustomerName   string    `json:"customer_name" db:"customer_name"`
	CustomerEmail  string    `json:"customer_email" db:"customer_email"`
	OrderNumber    string    `json:"order_number" db:"order_number"`
	Rating         int       `json:"rating" db:"rating"`
	DeliveryRating int       `json:"delivery_rating" db:"delivery_rating"`
	ProductRating  int       `json:"product_rating" db:"product_rating"`
	Comment        string    `json:"comment" db:"comment"`
	FeedbackDate   string    `json:"feedback_date" db:"feedback_date"`
	OrderStatus    string    `json:"order_status" db:"order_status"`
	CreatedAt      time.Time `json:"created_at" db:"created_at"`
}

// FeedbackSummary holds the satisfaction averages shown on the customer portal
type FeedbackSummary struct {
	AvgRating    float64 `json:"avg_rating"`
	AvgDelivery  float64 `json:"avg_delivery"`
	AvgProduct   float64 `json:"avg_product"`
	TotalReviews int     `json:"total_reviews"`
}

// User represents an account that can sign in
type User struct {
	ID        int       `json:"user_id" db:"user_id"`
	FirstName string    `json:"first_name" db:"first_name"`
	LastName  string    `json:"last_name" db:"last_name"`
	Email     string    `json:"email" db:"email"`
	Password  string    `json:"-" db:"password"`
	UserType  UserType  `json:"user_type" db:"user_type"`
	CreatedAt time.Time `json:"created_at" db:"created_at"`
}

// DashboardMetrics represents the KPI block on the home page and the metrics API
type DashboardMetrics struct {
	TotalOrders     int     `json:"total_orders"`
	TotalProducts   int     `json:"total_products"`
	TotalStock      int     `json:"total_stock"`
	LowStockCount   int     `json:"low_stock_count"`
	InventoryValue  float64 `json:"inventory_value"`
	AvgRating       float64 `json:"avg_rating"`
	OnTimeDelivery  float64 `json:"on_time_delivery"`
	AvgDeliveryTime float64 `json:"avg_delivery_time"`
}

// TrackingSummary holds the KPI strip of the tracking page
type TrackingSummary struct {
	TotalOrders    int     `json:"total_orders"`
	DeliveredCount int     `json:"delivered_count"`
	OnTimeRate     float64 `json:"on_time_rate"`
}
