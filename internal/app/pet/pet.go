/*
Package pet contains the adoptable-pet listing model and its persistence layer.
*/
package pet

import (
	"context"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

// errNoRows lets Exec-based operations surface the same sentinel the callers
// already check for QueryRow paths.
var errNoRows = pgx.ErrNoRows

// Adoption status values for a listing.
const (
	StatusAdoptable = "adoptable"
	StatusPending   = "pending"
	StatusAdopted   = "adopted"
)

// Pet is one adoptable listing.
type Pet struct {
	ID          int64     `json:"id"`
	Name        string    `json:"name"`
	Species     string    `json:"species"`
	Breed       string    `json:"breed"`
	AgeMonths   int       `json:"ageMonths"`
	Gender      string    `json:"gender"`
	Description string    `json:"description"`
	PhotoKey    string    `json:"photoKey,omitempty"`
	Status      string    `json:"status"`
	CreatedAt   time.Time `json:"createdAt"`
	UpdatedAt   time.Time `json:"updatedAt"`
}

// Filter narrows List results. Zero values mean "no restriction".
type Filter struct {
	Species string
	Status  string
}

// Repository provides access to the pets table.
type Repository struct {
	pool *pgxpool.Pool
}

// NewRepository wraps the shared connection pool.
func NewRepository(pool *pgxpool.Pool) *Repository {
	return &Repository{pool: pool}
}

const petColumns = `id, name, species, breed, age_months, gender, description, photo_key, status, created_at, updated_at`

func scanPet(row interface{ Scan(...any) error }) (*Pet, error) {
	p := &Pet{}
	err := row.Scan(&p.ID, &p.Name, &p.Species, &p.Breed, &p.AgeMonths, &p.Gender,
		&p.Description, &p.PhotoKey, &p.Status, &p.CreatedAt, &p.UpdatedAt)
	if err != nil {
		return nil, err
	}
	return p, nil
}

// List returns listings newest-first, optionally filtered by species and status.
func (r *Repository) List(ctx context.Context, f Filter) ([]*Pet, error) {
	query := `
		SELECT ` + petColumns + `
		FROM pets
		WHERE ($1 = '' OR species = $1)
		  AND ($2 = '' OR status = $2)
		ORDER BY created_at DESC`

	rows, err := r.pool.Query(ctx, query, f.Species, f.Status)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var pets []*Pet
	for rows.Next() {
		p, err := scanPet(rows)
		if err != nil {
			return nil, err
		}
		pets = append(pets, p)
	}
	return pets, rows.Err()
}

// Get fetches one listing by id.
func (r *Repository) Get(ctx context.Context, id int64) (*Pet, error) {
	row := r.pool.QueryRow(ctx, `SELECT `+petColumns+` FROM pets WHERE id = $1`, id)
	return scanPet(row)
}

// Create inserts a new listing and returns it with generated fields.
func (r *Repository) Create(ctx context.Context, p *Pet) (*Pet, error) {
	query := `
		INSERT INTO pets (name, species, breed, age_months, gender, description, photo_key)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		RETURNING ` + petColumns

	row := r.pool.QueryRow(ctx, query,
		p.Name, p.Species, p.Breed, p.AgeMonths, p.Gender, p.Description, p.PhotoKey)
	return scanPet(row)
}

// Update replaces the mutable fields of a listing.
func (r *Repository) Update(ctx context.Context, p *Pet) (*Pet, error) {
	query := `
		UPDATE pets
		SET name = $2, species = $3, breed = $4, age_months = $5, gender = $6,
		    description = $7, photo_key = $8, status = $9, updated_at = now()
		WHERE id = $1
		RETURNING ` + petColumns

	row := r.pool.QueryRow(ctx, query,
		p.ID, p.Name, p.Species, p.Breed, p.AgeMonths, p.Gender, p.Description, p.PhotoKey, p.Status)
	return scanPet(row)
}

// SetStatus moves a listing through the adoption pipeline.
func (r *Repository) SetStatus(ctx context.Context, id int64, status string) error {
	tag, err := r.pool.Exec(ctx,
		`UPDATE pets SET status = $2, updated_at = now() WHERE id = $1`, id, status)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return errNoRows
	}
	return nil
}

// Delete removes a listing.
func (r *Repository) Delete(ctx context.Context, id int64) error {
	tag, err := r.pool.Exec(ctx, `DELETE FROM pets WHERE id = $1`, id)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return errNoRows
	}
	return nil
}
