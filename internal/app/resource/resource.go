/*
Package resource contains pet-care guides and their persistence layer.
*/
package resource

import (
	"context"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

var errNoRows = pgx.ErrNoRows

// Resource is one care guide or external reference shown in the resource hub.
type Resource struct {
	ID        int64     `json:"id"`
	Title     string    `json:"title"`
	Category  string    `json:"category"`
	Body      string    `json:"body"`
	URL       string    `json:"url,omitempty"`
	CreatedAt time.Time `json:"createdAt"`
}

// Repository provides access to the resources table.
type Repository struct {
	pool *pgxpool.Pool
}

// NewRepository wraps the shared connection pool.
func NewRepository(pool *pgxpool.Pool) *Repository {
	return &Repository{pool: pool}
}

const resourceColumns = `id, title, category, body, url, created_at`

func scanResource(row interface{ Scan(...any) error }) (*Resource, error) {
	res := &Resource{}
	err := row.Scan(&res.ID, &res.Title, &res.Category, &res.Body, &res.URL, &res.CreatedAt)
	if err != nil {
		return nil, err
	}
	return res, nil
}

// List returns guides newest-first, optionally restricted to one category.
func (r *Repository) List(ctx context.Context, category string) ([]*Resource, error) {
	query := `
		SELECT ` + resourceColumns + `
		FROM resources
		WHERE ($1 = '' OR category = $1)
		ORDER BY created_at DESC`

	rows, err := r.pool.Query(ctx, query, category)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []*Resource
	for rows.Next() {
		res, err := scanResource(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, res)
	}
	return out, rows.Err()
}

// Get fetches one guide by id.
func (r *Repository) Get(ctx context.Context, id int64) (*Resource, error) {
	row := r.pool.QueryRow(ctx, `SELECT `+resourceColumns+` FROM resources WHERE id = $1`, id)
	return scanResource(row)
}

// Create inserts a new guide.
func (r *Repository) Create(ctx context.Context, res *Resource) (*Resource, error) {
	query := `
		INSERT INTO resources (title, category, body, url)
		VALUES ($1, $2, $3, $4)
		RETURNING ` + resourceColumns

	row := r.pool.QueryRow(ctx, query, res.Title, res.Category, res.Body, res.URL)
	return scanResource(row)
}

// Update replaces the mutable fields of a guide.
func (r *Repository) Update(ctx context.Context, res *Resource) (*Resource, error) {
	query := `
		UPDATE resources
		SET title = $2, category = $3, body = $4, url = $5
		WHERE id = $1
		RETURNING ` + resourceColumns

	row := r.pool.QueryRow(ctx, query, res.ID, res.Title, res.Category, res.Body, res.URL)
	return scanResource(row)
}

// Delete removes a guide.
func (r *Repository) Delete(ctx context.Context, id int64) error {
	tag, err := r.pool.Exec(ctx, `DELETE FROM resources WHERE id = $1`, id)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return errNoRows
	}
	return nil
}
