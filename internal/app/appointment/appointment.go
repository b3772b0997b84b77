/*
Package appointment contains meet-and-greet bookings and their persistence
layer. Each booking carries a short confirmation code the visitor presents at
the shelter.
*/
package appointment

import (
	"context"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

var errNoRows = pgx.ErrNoRows

// Booking status values.
const (
	StatusBooked    = "booked"
	StatusCancelled = "cancelled"
	StatusCompleted = "completed"
)

// Appointment is one scheduled visit to meet a pet.
type Appointment struct {
	ID               int64     `json:"id"`
	UserID           int64     `json:"userId"`
	PetID            int64     `json:"petId"`
	ScheduledAt      time.Time `json:"scheduledAt"`
	Status           string    `json:"status"`
	ConfirmationCode string    `json:"confirmationCode"`
	CreatedAt        time.Time `json:"createdAt"`
}

// Repository provides access to the appointments table.
type Repository struct {
	pool *pgxpool.Pool
}

// NewRepository wraps the shared connection pool.
func NewRepository(pool *pgxpool.Pool) *Repository {
	return &Repository{pool: pool}
}

const appointmentColumns = `id, user_id, pet_id, scheduled_at, status, confirmation_code, created_at`

func scanAppointment(row interface{ Scan(...any) error }) (*Appointment, error) {
	a := &Appointment{}
	err := row.Scan(&a.ID, &a.UserID, &a.PetID, &a.ScheduledAt, &a.Status,
		&a.ConfirmationCode, &a.CreatedAt)
	if err != nil {
		return nil, err
	}
	return a, nil
}

// Create books a visit. The caller supplies a pre-generated confirmation code.
func (r *Repository) Create(ctx context.Context, userID, petID int64, scheduledAt time.Time, code string) (*Appointment, error) {
	query := `
		INSERT INTO appointments (user_id, pet_id, scheduled_at, confirmation_code)
		VALUES ($1, $2, $3, $4)
		RETURNING ` + appointmentColumns

	row := r.pool.QueryRow(ctx, query, userID, petID, scheduledAt, code)
	return scanAppointment(row)
}

// Get fetches one booking by id.
func (r *Repository) Get(ctx context.Context, id int64) (*Appointment, error) {
	row := r.pool.QueryRow(ctx,
		`SELECT `+appointmentColumns+` FROM appointments WHERE id = $1`, id)
	return scanAppointment(row)
}

// ListByUser returns a visitor's bookings, soonest first.
func (r *Repository) ListByUser(ctx context.Context, userID int64) ([]*Appointment, error) {
	query := `
		SELECT ` + appointmentColumns + `
		FROM appointments
		WHERE user_id = $1
		ORDER BY scheduled_at ASC`

	rows, err := r.pool.Query(ctx, query, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []*Appointment
	for rows.Next() {
		a, err := scanAppointment(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, a)
	}
	return out, rows.Err()
}

// ListAll returns every booking, soonest first. Admin view.
func (r *Repository) ListAll(ctx context.Context) ([]*Appointment, error) {
	query := `
		SELECT ` + appointmentColumns + `
		FROM appointments
		ORDER BY scheduled_at ASC`

	rows, err := r.pool.Query(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []*Appointment
	for rows.Next() {
		a, err := scanAppointment(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, a)
	}
	return out, rows.Err()
}

// SetStatus moves a booking to cancelled or completed. Only bookings still in
// the booked state can transition.
func (r *Repository) SetStatus(ctx context.Context, id int64, status string) error {
	tag, err := r.pool.Exec(ctx,
		`UPDATE appointments SET status = $2 WHERE id = $1 AND status = $3`,
		id, status, StatusBooked)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return errNoRows
	}
	return nil
}
