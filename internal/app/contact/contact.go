/*
Package contact contains a user's emergency contacts and their persistence
layer. Shelters require at least one contact before an adoption completes.
*/
package contact

import (
	"context"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

var errNoRows = pgx.ErrNoRows

// Contact is one emergency contact attached to an account.
type Contact struct {
	ID           int64     `json:"id"`
	UserID       int64     `json:"userId"`
	Name         string    `json:"name"`
	Phone        string    `json:"phone"`
	Relationship string    `json:"relationship,omitempty"`
	CreatedAt    time.Time `json:"createdAt"`
}

// Repository provides access to the emergency_contacts table.
type Repository struct {
	pool *pgxpool.Pool
}

// NewRepository wraps the shared connection pool.
func NewRepository(pool *pgxpool.Pool) *Repository {
	return &Repository{pool: pool}
}

const contactColumns = `id, user_id, name, phone, relationship, created_at`

func scanContact(row interface{ Scan(...any) error }) (*Contact, error) {
	c := &Contact{}
	err := row.Scan(&c.ID, &c.UserID, &c.Name, &c.Phone, &c.Relationship, &c.CreatedAt)
	if err != nil {
		return nil, err
	}
	return c, nil
}

// ListByUser returns an account's contacts in the order they were added.
func (r *Repository) ListByUser(ctx context.Context, userID int64) ([]*Contact, error) {
	query := `
		SELECT ` + contactColumns + `
		FROM emergency_contacts
		WHERE user_id = $1
		ORDER BY id ASC`

	rows, err := r.pool.Query(ctx, query, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []*Contact
	for rows.Next() {
		c, err := scanContact(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, c)
	}
	return out, rows.Err()
}

// Create adds a contact to an account.
func (r *Repository) Create(ctx context.Context, c *Contact) (*Contact, error) {
	query := `
		INSERT INTO emergency_contacts (user_id, name, phone, relationship)
		VALUES ($1, $2, $3, $4)
		RETURNING ` + contactColumns

	row := r.pool.QueryRow(ctx, query, c.UserID, c.Name, c.Phone, c.Relationship)
	return scanContact(row)
}

// Update replaces one of the owner's contacts.
func (r *Repository) Update(ctx context.Context, c *Contact) (*Contact, error) {
	query := `
		UPDATE emergency_contacts
		SET name = $3, phone = $4, relationship = $5
		WHERE id = $1 AND user_id = $2
		RETURNING ` + contactColumns

	row := r.pool.QueryRow(ctx, query, c.ID, c.UserID, c.Name, c.Phone, c.Relationship)
	return scanContact(row)
}

// Delete removes one of the owner's contacts. The user id guard keeps users
// from deleting someone else's contact by guessing ids.
func (r *Repository) Delete(ctx context.Context, id, userID int64) error {
	tag, err := r.pool.Exec(ctx,
		`DELETE FROM emergency_contacts WHERE id = $1 AND user_id = $2`, id, userID)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return errNoRows
	}
	return nil
}
