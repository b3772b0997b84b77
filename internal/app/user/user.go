/*
Package user contains the account model and its persistence layer.
*/
package user

import (
	"context"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
)

// User represents an account in the marketplace. Admins additionally manage
// listings, review applications, and staff the support chat.
type User struct {
	ID           int64      `json:"id"`
	Username     string     `json:"username"`
	Email        string     `json:"email"`
	PasswordHash string     `json:"-"`
	IsAdmin      bool       `json:"isAdmin"`
	CreatedAt    time.Time  `json:"createdAt"`
	LastLoginAt  *time.Time `json:"lastLoginAt,omitempty"`
}

// Repository provides access to the users table.
type Repository struct {
	pool *pgxpool.Pool
}

// NewRepository wraps the shared connection pool.
func NewRepository(pool *pgxpool.Pool) *Repository {
	return &Repository{pool: pool}
}

// Create inserts a new account and returns it with its generated id.
func (r *Repository) Create(ctx context.Context, username, email, passwordHash string) (*User, error) {
	u := &User{Username: username, Email: email, PasswordHash: passwordHash}

	query := `
		INSERT INTO users (username, email, password_hash)
		VALUES ($1, $2, $3)
		RETURNING id, is_admin, created_at`

	err := r.pool.QueryRow(ctx, query, username, email, passwordHash).
		Scan(&u.ID, &u.IsAdmin, &u.CreatedAt)
	if err != nil {
		return nil, err
	}

	return u, nil
}

// GetByUsername fetches an account by its unique username.
func (r *Repository) GetByUsername(ctx context.Context, username string) (*User, error) {
	u := &User{}

	query := `
		SELECT id, username, email, password_hash, is_admin, created_at, last_login_at
		FROM users
		WHERE username = $1`

	err := r.pool.QueryRow(ctx, query, username).
		Scan(&u.ID, &u.Username, &u.Email, &u.PasswordHash, &u.IsAdmin, &u.CreatedAt, &u.LastLoginAt)
	if err != nil {
		return nil, err
	}

	return u, nil
}

// GetByID fetches an account by id.
func (r *Repository) GetByID(ctx context.Context, id int64) (*User, error) {
	u := &User{}

	query := `
		SELECT id, username, email, password_hash, is_admin, created_at, last_login_at
		FROM users
		WHERE id = $1`

	err := r.pool.QueryRow(ctx, query, id).
		Scan(&u.ID, &u.Username, &u.Email, &u.PasswordHash, &u.IsAdmin, &u.CreatedAt, &u.LastLoginAt)
	if err != nil {
		return nil, err
	}

	return u, nil
}

// TouchLastLogin stamps last_login_at with the current time.
func (r *Repository) TouchLastLogin(ctx context.Context, id int64) error {
	_, err := r.pool.Exec(ctx, `UPDATE users SET last_login_at = now() WHERE id = $1`, id)
	return err
}
