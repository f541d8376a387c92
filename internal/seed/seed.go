package seed

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log"
	"strings"

	"github.com/lib/pq"
	"golang.org/x/crypto/bcrypt"

	"github.com/u22754459/Group-29-Retail-Supply-Chain/internal/models"
)

// ErrEmailTaken mirrors db.ErrEmailTaken for the database/sql path
var ErrEmailTaken = errors.New("email already registered")

// Result counts the rows inserted by Run
type Result struct {
	Skipped    bool
	Categories int
	Products   int
	Orders     int
	Forecasts  int
	Feedback   int
	Users      int
}

func (r Result) String() string {
	if r.Skipped {
		return "seed skipped: products already present"
	}
	return fmt.Sprintf("seeded %d categories, %d products, %d orders, %d forecasts, %d feedback, %d users",
		r.Categories, r.Products, r.Orders, r.Forecasts, r.Feedback, r.Users)
}

type sampleProduct struct {
	sku, name, category string
	quantity            int
	price               float64
	supplier            string
}

var sampleCategories = []string{"Electronics", "Groceries", "Home & Kitchen", "Apparel"}

var sampleProducts = []sampleProduct{
	{"ELEC-001", "Wireless Headphones", "Electronics", 45, 79.99, "SoundWave Ltd"},
	{"ELEC-002", "USB-C Charger", "Electronics", 6, 19.50, "VoltCo"},
	{"ELEC-003", "Bluetooth Speaker", "Electronics", 18, 49.00, "SoundWave Ltd"},
	{"GROC-001", "Organic Coffee Beans 1kg", "Groceries", 120, 14.25, "Highland Roasters"},
	{"GROC-002", "Olive Oil 500ml", "Groceries", 8, 9.80, "Mediterra Foods"},
	{"HOME-001", "Cast Iron Skillet", "Home & Kitchen", 25, 34.90, "Forge & Hearth"},
	{"HOME-002", "Glass Storage Set", "Home & Kitchen", 3, 27.40, "ClearHome"},
	{"APP-001", "Cotton T-Shirt", "Apparel", 200, 12.00, "ThreadWorks"},
	{"APP-002", "Rain Jacket", "Apparel", 9, 64.99, "NorthTrail"},
}

type sampleOrder struct {
	customer, email, product string
	quantity                 int
	total                    float64
	status                   models.OrderStatus
	eta, location            string
	progress                 int
	ageDays                  int
}

var sampleOrders = []sampleOrder{
	{"Thabo Mokoena", "thabo@example.com", "Wireless Headphones", 1, 79.99, models.OrderStatusDelivered, "Delivered", "Johannesburg", 100, 9},
	{"Lerato Dlamini", "lerato@example.com", "Organic Coffee Beans 1kg", 2, 28.50, models.OrderStatusDelivered, "Delivered", "Pretoria", 100, 7},
	{"Sipho Nkosi", "sipho@example.com", "Cast Iron Skillet", 1, 34.90, models.OrderStatusInTransit, "2 days", "Durban Hub", 60, 3},
	{"Anele Khumalo", "anele@example.com", "Rain Jacket", 1, 64.99, models.OrderStatusDelayed, "5 days", "Cape Town Depot", 40, 4},
	{"Naledi Mahlangu", "naledi@example.com", "Bluetooth Speaker", 1, 49.00, models.OrderStatusProcessing, "4 days", models.DefaultOrderLocation, 0, 1},
	{"Kagiso Molefe", "kagiso@example.com", "Cotton T-Shirt", 3, 36.00, models.OrderStatusProcessing, "4 days", models.DefaultOrderLocation, 10, 0},
}

type sampleForecast struct {
	category        string
	current, demand int
	period, status  string
}

var sampleForecasts = []sampleForecast{
	{"Electronics", 69, 140, "Next 30 days", "critical"},
	{"Groceries", 128, 160, "Next 30 days", "low"},
	{"Home & Kitchen", 28, 30, "Next 30 days", "low"},
	{"Apparel", 209, 120, "Next 30 days", "adequate"},
}

type sampleFeedback struct {
	customer, email, order    string
	rating, delivery, product int
	comment                   string
}

var sampleFeedbackRows = []sampleFeedback{
	{"Thabo Mokoena", "thabo@example.com", "ORD-001", 5, 5, 4, "Fast delivery and great sound."},
	{"Lerato Dlamini", "lerato@example.com", "ORD-002", 4, 3, 5, "Coffee is excellent, courier was a day late."},
}

// DemoAdminEmail is the admin account created by Run
const DemoAdminEmail = "admin@example.com"

// Run inserts the sample data set in one transaction unless products already exist
func Run(ctx context.Context, db *sql.DB, adminPassword string) (Result, error) {
	var res Result

	var existing int
	if err := db.QueryRowContext(ctx, `SELECT COUNT(*) FROM products`).Scan(&existing); err != nil {
		return res, fmt.Errorf("count products: %w", err)
	}
	if existing > 0 {
		res.Skipped = true
		return res, nil
	}

	tx, err := db.BeginTx(ctx, nil)
	if err != nil {
		return res, fmt.Errorf("begin seed tx: %w", err)
	}
	defer tx.Rollback()

	categoryIDs := map[string]int{}
	for _, name := range sampleCategories {
		var id int
		err := tx.QueryRowContext(ctx, `
			INSERT INTO product_categories (category_name) VALUES ($1)
			ON CONFLICT (category_name) DO UPDATE SET category_name = EXCLUDED.category_name
			RETURNING category_id`, name).Scan(&id)
		if err != nil {
			return res, fmt.Errorf("insert category %s: %w", name, err)
		}
		categoryIDs[name] = id
		res.Categories++
	}

	productIDs := map[string]int{}
	for _, p := range sampleProducts {
		var id int
		err := tx.QueryRowContext(ctx, `
			INSERT INTO products (sku, product_name, category_id, quantity, price, description, supplier,
				min_stock_level, max_stock_level)
			VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
			RETURNING product_id`,
			p.sku, p.name, categoryIDs[p.category], p.quantity, p.price,
			p.name+" from "+p.supplier, p.supplier,
			models.DefaultMinStockLevel, models.DefaultMaxStockLevel).Scan(&id)
		if err != nil {
			return res, fmt.Errorf("insert product %s: %w", p.sku, err)
		}
		productIDs[p.name] = id
		res.Products++
	}

	for i, o := range sampleOrders {
		number := fmt.Sprintf("%s-%03d", models.OrderNumberPrefix, i+1)
		_, err := tx.ExecContext(ctx, `
			INSERT INTO orders (order_number, customer_name, customer_email, product_name, product_id,
				quantity, total_amount, status, eta, location, progress, created_at, updated_at)
			VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11,
				now() - make_interval(days => $12), now() - make_interval(days => $12) / 3)`,
			number, o.customer, o.email, o.product, productIDs[o.product],
			o.quantity, o.total, string(o.status), o.eta, o.location, o.progress, o.ageDays)
		if err != nil {
			return res, fmt.Errorf("insert order %s: %w", number, err)
		}
		res.Orders++
	}

	for _, f := range sampleForecasts {
		_, err := tx.ExecContext(ctx, `
			INSERT INTO forecasts (category_id, current_stock, predicted_demand, forecast_period, status)
			VALUES ($1, $2, $3, $4, $5)`,
			categoryIDs[f.category], f.current, f.demand, f.period, f.status)
		if err != nil {
			return res, fmt.Errorf("insert forecast %s: %w", f.category, err)
		}
		res.Forecasts++
	}

	for _, f := range sampleFeedbackRows {
		_, err := tx.ExecContext(ctx, `
			INSERT INTO feedback (customer_name, customer_email, order_number, rating, delivery_rating,
				product_rating, comment, feedback_date, order_status)
			VALUES ($1, $2, $3, $4, $5, $6, $7, to_char(now(), 'YYYY-MM-DD'), $8)`,
			f.customer, f.email, f.order, f.rating, f.delivery, f.product, f.comment,
			string(models.OrderStatusDelivered))
		if err != nil {
			return res, fmt.Errorf("insert feedback %s: %w", f.order, err)
		}
		res.Feedback++
	}

	if adminPassword != "" {
		var taken bool
		if err := tx.QueryRowContext(ctx, `SELECT EXISTS (SELECT 1 FROM users WHERE email = $1)`, DemoAdminEmail).Scan(&taken); err != nil {
			return res, fmt.Errorf("check admin user: %w", err)
		}
		if !taken {
			_, err := insertUser(ctx, tx, models.User{
				FirstName: "Demo", LastName: "Admin", Email: DemoAdminEmail,
				Password: adminPassword, UserType: models.UserTypeAdmin,
			})
			if err != nil {
				return res, err
			}
			res.Users++
		}
	}

	if err := tx.Commit(); err != nil {
		return res, fmt.Errorf("commit seed: %w", err)
	}
	log.Printf("[SC-ADMIN] %s", res)
	return res, nil
}

// CreateUser hashes the plain password and inserts the user
func CreateUser(ctx context.Context, db *sql.DB, u models.User) (int, error) {
	return insertUser(ctx, db, u)
}

type rowQuerier interface {
	QueryRowContext(ctx context.Context, query string, args ...any) *sql.Row
}

// ValidateUser checks the fields create-user requires
func ValidateUser(u models.User) error {
	var missing []string
	if strings.TrimSpace(u.Email) == "" {
		missing = append(missing, "email")
	}
	if u.Password == "" {
		missing = append(missing, "password")
	}
	if len(missing) > 0 {
		return fmt.Errorf("missing required fields: %s", strings.Join(missing, ", "))
	}
	switch u.UserType {
	case "", models.UserTypeCustomer, models.UserTypeAdmin:
		return nil
	default:
		return fmt.Errorf("invalid user type %q", u.UserType)
	}
}

func insertUser(ctx context.Context, q rowQuerier, u models.User) (int, error) {
	if err := ValidateUser(u); err != nil {
		return 0, err
	}
	if u.UserType == "" {
		u.UserType = models.UserTypeCustomer
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(u.Password), bcrypt.DefaultCost)
	if err != nil {
		return 0, fmt.Errorf("hash password: %w", err)
	}

	var id int
	err = q.QueryRowContext(ctx, `
		INSERT INTO users (first_name, last_name, email, password, user_type)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING user_id`,
		u.FirstName, u.LastName, strings.TrimSpace(u.Email), string(hash), string(u.UserType)).Scan(&id)
	var pqErr *pq.Error
	if errors.As(err, &pqErr) && pqErr.Code == "23505" {
		return 0, ErrEmailTaken
	}
	if err != nil {
		return 0, fmt.Errorf("insert user: %w", err)
	}
	return id, nil
}
