package db

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/u22754459/Group-29-Retail-Supply-Chain/internal/models"
)

// orderNumberLockKey serializes order number allocation across connections
const orderNumberLockKey int64 = 0x53432d4f5244 // "SC-ORD"

const orderColumns = `
	order_id, order_number, customer_name, customer_email, product_name, product_id,
	quantity, total_amount, status, eta, location, progress, created_at, updated_at`

func scanOrder(row pgx.Row) (*models.Order, error) {
	var o models.Order
	err := row.Scan(
		&o.ID, &o.OrderNumber, &o.CustomerName, &o.CustomerEmail, &o.ProductName, &o.ProductID,
		&o.Quantity, &o.TotalAmount, &o.Status, &o.ETA, &o.Location, &o.Progress,
		&o.CreatedAt, &o.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &o, nil
}

func collectOrders(rows pgx.Rows) ([]models.Order, error) {
	defer rows.Close()
	orders := []models.Order{}
	for rows.Next() {
		o, err := scanOrder(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan order: %w", err)
		}
		orders = append(orders, *o)
	}
	return orders, rows.Err()
}

// ListOrders returns all orders, newest first
func (db *Database) ListOrders(ctx context.Context) ([]models.Order, error) {
	rows, err := db.Pool.Query(ctx, `
		SELECT `+orderColumns+` FROM orders
		ORDER BY created_at DESC, order_id DESC`)
	if err != nil {
		return nil, fmt.Errorf("failed to query orders: %w", err)
	}
	return collectOrders(rows)
}

// ListOrdersForTracking returns all orders grouped by shipment stage, newest first within a stage
func (db *Database) ListOrdersForTracking(ctx context.Context) ([]models.Order, error) {
	rows, err := db.Pool.Query(ctx, `
		SELECT `+orderColumns+` FROM orders
		ORDER BY
			CASE status
				WHEN 'processing' THEN 1
				WHEN 'in-transit' THEN 2
				WHEN 'delayed' THEN 3
				WHEN 'delivered' THEN 4
				ELSE 5
			END,
			created_at DESC, order_id DESC`)
	if err != nil {
		return nil, fmt.Errorf("failed to query tracking orders: %w", err)
	}
	return collectOrders(rows)
}

// GetOrder returns an order by id or ErrNotFound
func (db *Database) GetOrder(ctx context.Context, id int) (*models.Order, error) {
	o, err := scanOrder(db.Pool.QueryRow(ctx, `
		SELECT `+orderColumns+` FROM orders WHERE order_id = $1`, id))
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get order %d: %w", id, err)
	}
	return o, nil
}

// CreateOrder allocates the next order number and inserts the order in one transaction.
// The returned order carries the generated id, number and timestamps.
func (db *Database) CreateOrder(ctx context.Context, o models.Order) (*models.Order, error) {
	tx, err := db.Pool.Begin(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback(ctx)

	if _, err := tx.Exec(ctx, `SELECT pg_advisory_xact_lock($1)`, orderNumberLockKey); err != nil {
		return nil, fmt.Errorf("failed to lock order numbers: %w", err)
	}

	var last string
	err = tx.QueryRow(ctx, `SELECT order_number FROM orders ORDER BY order_id DESC LIMIT 1`).Scan(&last)
	if err != nil && !errors.Is(err, pgx.ErrNoRows) {
		return nil, fmt.Errorf("failed to read last order number: %w", err)
	}

	number, err := models.NextOrderNumber(last)
	if err != nil {
		return nil, err
	}
	o.OrderNumber = number

	err = tx.QueryRow(ctx, `
		INSERT INTO orders (order_number, customer_name, customer_email, product_name, product_id,
			quantity, total_amount, status, eta, location, progress)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)
		RETURNING order_id, created_at, updated_at`,
		o.OrderNumber, o.CustomerName, o.CustomerEmail, o.ProductName, o.ProductID,
		o.Quantity, o.TotalAmount, string(o.Status), o.ETA, o.Location, o.Progress,
	).Scan(&o.ID, &o.CreatedAt, &o.UpdatedAt)
	if err != nil {
		return nil, fmt.Errorf("failed to insert order: %w", err)
	}

	if err := tx.Commit(ctx); err != nil {
		return nil, fmt.Errorf("failed to commit order: %w", err)
	}
	return &o, nil
}

// UpdateOrderStatus sets status, location and progress and bumps updated_at.
// Returns ErrNotFound when no order has the id.
func (db *Database) UpdateOrderStatus(ctx context.Context, id int, req models.UpdateOrderStatusRequest) (*models.Order, error) {
	o, err := scanOrder(db.Pool.QueryRow(ctx, `
		UPDATE orders
		SET status = $1, location = $2, progress = $3, updated_at = now()
		WHERE order_id = $4
		RETURNING `+orderColumns,
		string(req.Status), req.Location, req.Progress, id))
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to update order %d: %w", id, err)
	}
	return o, nil
}
