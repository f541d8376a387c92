package db

import (
	"context"
	"fmt"

	"github.com/u22754459/Group-29-Retail-Supply-Chain/internal/models"
)

// DashboardMetrics computes the KPI block in a single round trip.
// on_time_delivery is the delivered share of all orders; avg_delivery_time is
// the mean days between creation and last update of delivered orders.
func (db *Database) DashboardMetrics(ctx context.Context) (*models.DashboardMetrics, error) {
	var m models.DashboardMetrics
	err := db.Pool.QueryRow(ctx, `
		SELECT
			(SELECT COUNT(*) FROM orders),
			(SELECT COUNT(*) FROM products),
			(SELECT COALESCE(SUM(quantity), 0) FROM products),
			(SELECT COUNT(*) FROM products WHERE quantity < min_stock_level),
			(SELECT COALESCE(ROUND(SUM(quantity * price)::numeric, 2), 0)::float8 FROM products),
			(SELECT COALESCE(ROUND(AVG(rating), 1), 0)::float8 FROM feedback),
			(SELECT COALESCE(ROUND(100.0 * COUNT(*) FILTER (WHERE status = 'delivered') / NULLIF(COUNT(*), 0), 1), 0)::float8
				FROM orders),
			(SELECT COALESCE(ROUND((AVG(EXTRACT(EPOCH FROM (updated_at - created_at))) / 86400.0)::numeric, 1), 0)::float8
				FROM orders WHERE status = 'delivered')`,
	).Scan(&m.TotalOrders, &m.TotalProducts, &m.TotalStock, &m.LowStockCount,
		&m.InventoryValue, &m.AvgRating, &m.OnTimeDelivery, &m.AvgDeliveryTime)
	if err != nil {
		return nil, fmt.Errorf("failed to compute dashboard metrics: %w", err)
	}
	return &m, nil
}
