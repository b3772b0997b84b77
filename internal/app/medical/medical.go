/*
Package medical contains per-pet veterinary records and their persistence
layer. Records are admin-written but publicly readable so adopters can see a
pet's vaccination and treatment history.
*/
package medical

import (
	"context"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

var errNoRows = pgx.ErrNoRows

// Record is one veterinary entry for a pet.
type Record struct {
	ID          int64     `json:"id"`
	PetID       int64     `json:"petId"`
	RecordType  string    `json:"recordType"`
	Description string    `json:"description"`
	VetName     string    `json:"vetName,omitempty"`
	RecordDate  time.Time `json:"recordDate"`
	CreatedAt   time.Time `json:"createdAt"`
}

// Repository provides access to the medical_records table.
type Repository struct {
	pool *pgxpool.Pool
}

// NewRepository wraps the shared connection pool.
func NewRepository(pool *pgxpool.Pool) *Repository {
	return &Repository{pool: pool}
}

const recordColumns = `id, pet_id, record_type, description, vet_name, record_date, created_at`

func scanRecord(row interface{ Scan(...any) error }) (*Record, error) {
	rec := &Record{}
	err := row.Scan(&rec.ID, &rec.PetID, &rec.RecordType, &rec.Description,
		&rec.VetName, &rec.RecordDate, &rec.CreatedAt)
	if err != nil {
		return nil, err
	}
	return rec, nil
}

// ListByPet returns a pet's records, most recent visit first.
func (r *Repository) ListByPet(ctx context.Context, petID int64) ([]*Record, error) {
	query := `
		SELECT ` + recordColumns + `
		FROM medical_records
		WHERE pet_id = $1
		ORDER BY record_date DESC, id DESC`

	rows, err := r.pool.Query(ctx, query, petID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []*Record
	for rows.Next() {
		rec, err := scanRecord(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, rec)
	}
	return out, rows.Err()
}

// Create adds a record to a pet's history.
func (r *Repository) Create(ctx context.Context, rec *Record) (*Record, error) {
	query := `
		INSERT INTO medical_records (pet_id, record_type, description, vet_name, record_date)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING ` + recordColumns

	row := r.pool.QueryRow(ctx, query,
		rec.PetID, rec.RecordType, rec.Description, rec.VetName, rec.RecordDate)
	return scanRecord(row)
}

// Delete removes a record.
func (r *Repository) Delete(ctx context.Context, id int64) error {
	tag, err := r.pool.Exec(ctx, `DELETE FROM medical_records WHERE id = $1`, id)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return errNoRows
	}
	return nil
}
