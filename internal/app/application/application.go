/*
Package application contains adoption applications and their persistence
layer. A user may hold at most one application per pet, enforced by a unique
constraint on (user_id, pet_id).
*/
package application

import (
	"context"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

// Review status values.
const (
	StatusPending  = "pending"
	StatusApproved = "approved"
	StatusRejected = "rejected"
)

// Application is one adoption request awaiting or past admin review.
type Application struct {
	ID        int64      `json:"id"`
	UserID    int64      `json:"userId"`
	PetID     int64      `json:"petId"`
	Message   string     `json:"message"`
	Status    string     `json:"status"`
	DecidedAt *time.Time `json:"decidedAt,omitempty"`
	CreatedAt time.Time  `json:"createdAt"`
}

// Repository provides access to the applications table.
type Repository struct {
	pool *pgxpool.Pool
}

// NewRepository wraps the shared connection pool.
func NewRepository(pool *pgxpool.Pool) *Repository {
	return &Repository{pool: pool}
}

const applicationColumns = `id, user_id, pet_id, message, status, decided_at, created_at`

func scanApplication(row interface{ Scan(...any) error }) (*Application, error) {
	a := &Application{}
	err := row.Scan(&a.ID, &a.UserID, &a.PetID, &a.Message, &a.Status,
		&a.DecidedAt, &a.CreatedAt)
	if err != nil {
		return nil, err
	}
	return a, nil
}

// Create files a new application. Duplicate submissions surface as a unique
// constraint violation.
func (r *Repository) Create(ctx context.Context, userID, petID int64, message string) (*Application, error) {
	query := `
		INSERT INTO applications (user_id, pet_id, message)
		VALUES ($1, $2, $3)
		RETURNING ` + applicationColumns

	row := r.pool.QueryRow(ctx, query, userID, petID, message)
	return scanApplication(row)
}

// Get fetches one application by id.
func (r *Repository) Get(ctx context.Context, id int64) (*Application, error) {
	row := r.pool.QueryRow(ctx,
		`SELECT `+applicationColumns+` FROM applications WHERE id = $1`, id)
	return scanApplication(row)
}

// ListByUser returns a user's own applications, newest first.
func (r *Repository) ListByUser(ctx context.Context, userID int64) ([]*Application, error) {
	return r.list(ctx, `WHERE user_id = $1`, userID)
}

// ListByStatus returns all applications in one review state, oldest first so
// admins work the queue in arrival order.
func (r *Repository) ListByStatus(ctx context.Context, status string) ([]*Application, error) {
	query := `
		SELECT ` + applicationColumns + `
		FROM applications
		WHERE status = $1
		ORDER BY created_at ASC`

	rows, err := r.pool.Query(ctx, query, status)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return collect(rows)
}

func (r *Repository) list(ctx context.Context, where string, args ...any) ([]*Application, error) {
	query := `
		SELECT ` + applicationColumns + `
		FROM applications ` + where + `
		ORDER BY created_at DESC`

	rows, err := r.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return collect(rows)
}

func collect(rows pgx.Rows) ([]*Application, error) {
	var out []*Application
	for rows.Next() {
		a, err := scanApplication(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, a)
	}
	return out, rows.Err()
}

// Decide records an admin's verdict on a pending application and returns the
// updated row. Applications already decided cannot change again.
func (r *Repository) Decide(ctx context.Context, id int64, status string) (*Application, error) {
	query := `
		UPDATE applications
		SET status = $2, decided_at = now()
		WHERE id = $1 AND status = $3
		RETURNING ` + applicationColumns

	row := r.pool.QueryRow(ctx, query, id, status, StatusPending)
	return scanApplication(row)
}
