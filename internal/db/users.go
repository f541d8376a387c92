package db

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/u22754459/Group-29-Retail-Supply-Chain/internal/models"
)

// GetUserByEmail returns the user with the given email or ErrNotFound
func (db *Database) GetUserByEmail(ctx context.Context, email string) (*models.User, error) {
	var u models.User
	err := db.Pool.QueryRow(ctx, `
		SELECT user_id, first_name, last_name, email, password, user_type, created_at
		FROM users WHERE email = $1`, email,
	).Scan(&u.ID, &u.FirstName, &u.LastName, &u.Email, &u.Password, &u.UserType, &u.CreatedAt)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get user: %w", err)
	}
	return &u, nil
}

// GetUserByID returns the user with the given id or ErrNotFound
func (db *Database) GetUserByID(ctx context.Context, id int) (*models.User, error) {
	var u models.User
	err := db.Pool.QueryRow(ctx, `
		SELECT user_id, first_name, last_name, email, password, user_type, created_at
		FROM users WHERE user_id = $1`, id,
	).Scan(&u.ID, &u.FirstName, &u.LastName, &u.Email, &u.Password, &u.UserType, &u.CreatedAt)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get user: %w", err)
	}
	return &u, nil
}

// CreateUser inserts a user whose Password field already holds a hash.
// Returns ErrEmailTaken when the email is registered.
func (db *Database) CreateUser(ctx context.Context, u models.User) (int, error) {
	if u.UserType == "" {
		u.UserType = models.UserTypeCustomer
	}
	var id int
	err := db.Pool.QueryRow(ctx, `
		INSERT INTO users (first_name, last_name, email, password, user_type)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING user_id`,
		u.FirstName, u.LastName, u.Email, u.Password, string(u.UserType),
	).Scan(&id)
	if isUniqueViolation(err, "users_email_key") {
		return 0, ErrEmailTaken
	}
	if err != nil {
		return 0, fmt.Errorf("failed to create user: %w", err)
	}
	return id, nil
}
