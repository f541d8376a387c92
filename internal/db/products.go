package db

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/u22754459/Group-29-Retail-Supply-Chain/internal/models"
)

const productColumns = `
	p.product_id, p.sku, p.product_name, p.category_id, c.category_name,
	p.quantity, p.price, p.description, p.supplier,
	p.min_stock_level, p.max_stock_level, p.created_at, p.updated_at`

func scanProduct(row pgx.Row) (*models.Product, error) {
	var p models.Product
	err := row.Scan(
		&p.ID, &p.SKU, &p.Name, &p.CategoryID, &p.CategoryName,
		&p.Quantity, &p.Price, &p.Description, &p.Supplier,
		&p.MinStockLevel, &p.MaxStockLevel, &p.CreatedAt, &p.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	p.LowStock = p.IsLowStock()
	return &p, nil
}

// ListProducts returns all products with their category name, ordered by name
func (db *Database) ListProducts(ctx context.Context) ([]models.Product, error) {
	rows, err := db.Pool.Query(ctx, `
		SELECT `+productColumns+`
		FROM products p
		LEFT JOIN product_categories c ON c.category_id = p.category_id
		ORDER BY p.product_name, p.product_id`)
	if err != nil {
		return nil, fmt.Errorf("failed to query products: %w", err)
	}
	defer rows.Close()

	products := []models.Product{}
	for rows.Next() {
		p, err := scanProduct(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan product: %w", err)
		}
		products = append(products, *p)
	}
	return products, rows.Err()
}

// ListLowStockProducts returns products whose quantity is below their minimum level
func (db *Database) ListLowStockProducts(ctx context.Context) ([]models.Product, error) {
	rows, err := db.Pool.Query(ctx, `
		SELECT `+productColumns+`
		FROM products p
		LEFT JOIN product_categories c ON c.category_id = p.category_id
		WHERE p.quantity < p.min_stock_level
		ORDER BY p.quantity, p.product_name`)
	if err != nil {
		return nil, fmt.Errorf("failed to query low stock products: %w", err)
	}
	defer rows.Close()

	products := []models.Product{}
	for rows.Next() {
		p, err := scanProduct(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan product: %w", err)
		}
		products = append(products, *p)
	}
	return products, rows.Err()
}

// GetProduct returns a product by id or ErrNotFound
func (db *Database) GetProduct(ctx context.Context, id int) (*models.Product, error) {
	p, err := scanProduct(db.Pool.QueryRow(ctx, `
		SELECT `+productColumns+`
		FROM products p
		LEFT JOIN product_categories c ON c.category_id = p.category_id
		WHERE p.product_id = $1`, id))
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get product %d: %w", id, err)
	}
	return p, nil
}

// CreateProduct inserts a product and returns its id
func (db *Database) CreateProduct(ctx context.Context, p models.Product) (int, error) {
	var id int
	err := db.Pool.QueryRow(ctx, `
		INSERT INTO products (sku, product_name, category_id, quantity, price,
			description, supplier, min_stock_level, max_stock_level)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
		RETURNING product_id`,
		p.SKU, p.Name, p.CategoryID, p.Quantity, p.Price,
		p.Description, p.Supplier, p.MinStockLevel, p.MaxStockLevel,
	).Scan(&id)
	if err != nil {
		return 0, fmt.Errorf("failed to create product: %w", err)
	}
	return id, nil
}

// ListCategories returns all product categories ordered by name
func (db *Database) ListCategories(ctx context.Context) ([]models.Category, error) {
	rows, err := db.Pool.Query(ctx, `
		SELECT category_id, category_name FROM product_categories ORDER BY category_name`)
	if err != nil {
		return nil, fmt.Errorf("failed to query categories: %w", err)
	}
	defer rows.Close()

	categories := []models.Category{}
	for rows.Next() {
		var c models.Category
		if err := rows.Scan(&c.ID, &c.Name); err != nil {
			return nil, fmt.Errorf("failed to scan category: %w", err)
		}
		categories = append(categories, c)
	}
	return categories, rows.Err()
}

// ListCategoryNames returns the distinct category names used by the shop filter
func (db *Database) ListCategoryNames(ctx context.Context) ([]string, error) {
	rows, err := db.Pool.Query(ctx, `
		SELECT DISTINCT category_name FROM product_categories ORDER BY category_name`)
	if err != nil {
		return nil, fmt.Errorf("failed to query category names: %w", err)
	}
	defer rows.Close()

	names := []string{}
	for rows.Next() {
		var name string
		if err := rows.Scan(&name); err != nil {
			return nil, err
		}
		names = append(names, name)
	}
	return names, rows.Err()
}
