package db

import (
	"context"
	"fmt"

	"github.com/u22754459/Group-29-Retail-Supply-Chain/internal/models"
)

// ListForecasts returns forecast rows with their category name, ordered by status then current stock
func (db *Database) ListForecasts(ctx context.Context) ([]models.Forecast, error) {
	rows, err := db.Pool.Query(ctx, `
		SELECT f.forecast_id, f.category_id, c.category_name, f.current_stock,
			f.predicted_demand, f.forecast_period, f.status, f.created_at
		FROM forecasts f
		LEFT JOIN product_categories c ON c.category_id = f.category_id
		ORDER BY f.status, f.current_stock`)
	if err != nil {
		return nil, fmt.Errorf("failed to query forecasts: %w", err)
	}
	defer rows.Close()

	forecasts := []models.Forecast{}
	for rows.Next() {
		var f models.Forecast
		if err := rows.Scan(&f.ID, &f.CategoryID, &f.CategoryName, &f.CurrentStock,
			&f.PredictedDemand, &f.ForecastPeriod, &f.Status, &f.CreatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan forecast: %w", err)
		}
		forecasts = append(forecasts, f)
	}
	return forecasts, rows.Err()
}
