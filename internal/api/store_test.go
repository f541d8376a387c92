package api

import (
	"context"
	"errors"
	"sort"
	"sync"
	"time"

	"github.com/u22754459/Group-29-Retail-Supply-Chain/internal/db"
	"github.com/u22754459/Group-29-Retail-Supply-Chain/internal/models"
)

// memStore is an in-memory Store used by the handler tests
type memStore struct {
	mu         sync.Mutex
	now        time.Time
	failWith   error
	categories []models.Category
	products   []models.Product
	orders     []models.Order
	forecasts  []models.Forecast
	feedback   []models.Feedback
	users      []models.User
}

func newMemStore() *memStore {
	return &memStore{now: time.Date(2025, 6, 1, 9, 0, 0, 0, time.UTC)}
}

// tick returns a strictly increasing timestamp so created_at ordering is stable
func (s *memStore) tick() time.Time {
	s.now = s.now.Add(time.Minute)
	return s.now
}

func (s *memStore) Health(ctx context.Context) error { return s.failWith }

func (s *memStore) ListProducts(ctx context.Context) ([]models.Product, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.failWith != nil {
		return nil, s.failWith
	}
	out := append([]models.Product(nil), s.products...)
	sort.SliceStable(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out, nil
}

func (s *memStore) GetProduct(ctx context.Context, id int) (*models.Product, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, p := range s.products {
		if p.ID == id {
			return &p, nil
		}
	}
	return nil, db.ErrNotFound
}

func (s *memStore) CreateProduct(ctx context.Context, p models.Product) (int, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.failWith != nil {
		return 0, s.failWith
	}
	for _, existing := range s.products {
		if existing.SKU == p.SKU {
			return 0, errors.New("duplicate key value violates unique constraint \"products_sku_key\"")
		}
	}
	p.ID = len(s.products) + 1
	p.CreatedAt = s.tick()
	p.UpdatedAt = p.CreatedAt
	p.LowStock = p.IsLowStock()
	s.products = append(s.products, p)
	return p.ID, nil
}

func (s *memStore) ListCategories(ctx context.Context) ([]models.Category, error) {
	return s.categories, nil
}

func (s *memStore) ListCategoryNames(ctx context.Context) ([]string, error) {
	names := []string{}
	for _, c := range s.categories {
		names = append(names, c.Name)
	}
	sort.Strings(names)
	return names, nil
}

func (s *memStore) ListOrders(ctx context.Context) ([]models.Order, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := append([]models.Order(nil), s.orders...)
	sort.SliceStable(out, func(i, j int) bool { return out[i].CreatedAt.After(out[j].CreatedAt) })
	return out, nil
}

func (s *memStore) ListOrdersForTracking(ctx context.Context) ([]models.Order, error) {
	out, _ := s.ListOrders(ctx)
	sort.SliceStable(out, func(i, j int) bool { return out[i].Status.SortRank() < out[j].Status.SortRank() })
	return out, nil
}

func (s *memStore) GetOrder(ctx context.Context, id int) (*models.Order, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, o := range s.orders {
		if o.ID == id {
			return &o, nil
		}
	}
	return nil, db.ErrNotFound
}

func (s *memStore) CreateOrder(ctx context.Context, o models.Order) (*models.Order, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	last := ""
	if n := len(s.orders); n > 0 {
		last = s.orders[n-1].OrderNumber
	}
	number, err := models.NextOrderNumber(last)
	if err != nil {
		return nil, err
	}
	o.OrderNumber = number
	o.ID = len(s.orders) + 1
	o.CreatedAt = s.tick()
	o.UpdatedAt = o.CreatedAt
	s.orders = append(s.orders, o)
	return &o, nil
}

func (s *memStore) UpdateOrderStatus(ctx context.Context, id int, req models.UpdateOrderStatusRequest) (*models.Order, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for i := range s.orders {
		if s.orders[i].ID == id {
			s.orders[i].Status = req.Status
			s.orders[i].Location = req.Location
			s.orders[i].Progress = req.Progress
			s.orders[i].UpdatedAt = s.tick()
			o := s.orders[i]
			return &o, nil
		}
	}
	return nil, db.ErrNotFound
}

func (s *memStore) ListForecasts(ctx context.Context) ([]models.Forecast, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.failWith != nil {
		return nil, s.failWith
	}
	return append([]models.Forecast{}, s.forecasts...), nil
}

func (s *memStore) RecentFeedback(ctx context.Context, limit int) ([]models.Feedback, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.failWith != nil {
		return nil, s.failWith
	}
	out := []models.Feedback{}
	for i := len(s.feedback) - 1; i >= 0 && len(out) < limit; i-- {
		out = append(out, s.feedback[i])
	}
	return out, nil
}

func (s *memStore) FeedbackSummary(ctx context.Context) (*models.FeedbackSummary, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	sum := &models.FeedbackSummary{TotalReviews: len(s.feedback)}
	if len(s.feedback) == 0 {
		return sum, nil
	}
	var r, d, p float64
	for _, f := range s.feedback {
		r += float64(f.Rating)
		d += float64(f.DeliveryRating)
		p += float64(f.ProductRating)
	}
	n := float64(len(s.feedback))
	sum.AvgRating = models.Round(r/n, 1)
	sum.AvgDelivery = models.Round(d/n, 1)
	sum.AvgProduct = models.Round(p/n, 1)
	return sum, nil
}

func (s *memStore) CreateFeedback(ctx context.Context, f models.Feedback) (int, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.failWith != nil {
		return 0, s.failWith
	}
	f.ID = len(s.feedback) + 1
	f.CreatedAt = s.tick()
	s.feedback = append(s.feedback, f)
	return f.ID, nil
}

func (s *memStore) GetUserByEmail(ctx context.Context, email string) (*models.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, u := range s.users {
		if u.Email == email {
			return &u, nil
		}
	}
	return nil, db.ErrNotFound
}

func (s *memStore) GetUserByID(ctx context.Context, id int) (*models.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, u := range s.users {
		if u.ID == id {
			return &u, nil
		}
	}
	return nil, db.ErrNotFound
}

func (s *memStore) CreateUser(ctx context.Context, u models.User) (int, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, existing := range s.users {
		if existing.Email == u.Email {
			return 0, db.ErrEmailTaken
		}
	}
	u.ID = len(s.users) + 1
	u.CreatedAt = s.tick()
	s.users = append(s.users, u)
	return u.ID, nil
}

func (s *memStore) DashboardMetrics(ctx context.Context) (*models.DashboardMetrics, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.failWith != nil {
		return nil, s.failWith
	}
	m := &models.DashboardMetrics{TotalOrders: len(s.orders), TotalProducts: len(s.products)}
	for _, p := range s.products {
		m.TotalStock += p.Quantity
		if p.IsLowStock() {
			m.LowStockCount++
		}
		m.InventoryValue += p.StockValue()
	}
	m.InventoryValue = models.Round(m.InventoryValue, 2)
	return m, nil
}

type fakeMailer struct {
	mu       sync.Mutex
	welcomes []models.User
	thanks   []models.Feedback
	err      error
}

func (m *fakeMailer) SendWelcome(ctx context.Context, u models.User) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.welcomes = append(m.welcomes, u)
	return m.err
}

func (m *fakeMailer) SendFeedbackThanks(ctx context.Context, f models.Feedback) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.thanks = append(m.thanks, f)
	return nil
}

type fakeNotifier struct {
	events []models.Order
	err    error
}

func (n *fakeNotifier) OrderStatusChanged(ctx context.Context, o models.Order) error {
	n.events = append(n.events, o)
	return n.err
}

var errTestDown = errors.New("database is down")
