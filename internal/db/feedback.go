package db

import (
	"context"
	"fmt"

	"github.com/u22754459/Group-29-Retail-Supply-Chain/internal/models"
)

// RecentFeedback returns the newest feedback entries, at most limit rows
func (db *Database) RecentFeedback(ctx context.Context, limit int) ([]models.Feedback, error) {
	rows, err := db.Pool.Query(ctx, `
		SELECT feedback_id, customer_name, customer_email, order_number,
			rating, delivery_rating, product_rating, comment,
			feedback_date, order_status, created_at
		FROM feedback
		ORDER BY created_at DESC, feedback_id DESC
		LIMIT $1`, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to query feedback: %w", err)
	}
	defer rows.Close()

	entries := []models.Feedback{}
	for rows.Next() {
		var f models.Feedback
		if err := rows.Scan(&f.ID, &f.CustomerName, &f.CustomerEmail, &f.OrderNumber,
			&f.Rating, &f.DeliveryRating, &f.ProductRating, &f.Comment,
			&f.FeedbackDate, &f.OrderStatus, &f.CreatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan feedback: %w", err)
		}
		entries = append(entries, f)
	}
	return entries, rows.Err()
}

// FeedbackSummary returns the rating averages (1 dp) and the review count
func (db *Database) FeedbackSummary(ctx context.Context) (*models.FeedbackSummary, error) {
	var s models.FeedbackSummary
	err := db.Pool.QueryRow(ctx, `
		SELECT
			COALESCE(ROUND(AVG(rating), 1), 0)::float8,
			COALESCE(ROUND(AVG(delivery_rating), 1), 0)::float8,
			COALESCE(ROUND(AVG(product_rating), 1), 0)::float8,
			COUNT(*)
		FROM feedback`).Scan(&s.AvgRating, &s.AvgDelivery, &s.AvgProduct, &s.TotalReviews)
	if err != nil {
		return nil, fmt.Errorf("failed to summarize feedback: %w", err)
	}
	return &s, nil
}

// CreateFeedback inserts a feedback entry and returns its id
func (db *Database) CreateFeedback(ctx context.Context, f models.Feedback) (int, error) {
	var id int
	err := db.Pool.QueryRow(ctx, `
		INSERT INTO feedback (customer_name, customer_email, order_number,
			rating, delivery_rating, product_rating, comment, feedback_date, order_status)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
		RETURNING feedback_id`,
		f.CustomerName, f.CustomerEmail, f.OrderNumber,
		f.Rating, f.DeliveryRating, f.ProductRating, f.Comment, f.FeedbackDate, f.OrderStatus,
	).Scan(&id)
	if err != nil {
		return 0, fmt.Errorf("failed to create feedback: %w", err)
	}
	return id, nil
}
