package repository

import (
	"context"
	"errors"
	"time"

	"BookingAPI/internal/model"

	"github.com/jackc/pgx/v5"
)

type BookingRepository struct {
	DB DB
}

func NewBookingRepository(db DB) *BookingRepository {
	return &BookingRepository{DB: db}
}

// HasOverlapTx reports whether any non-deleted booking of the realty
// intersects the half-open window [start, end). Touching endpoints do not
// count as overlap.
func (r *BookingRepository) HasOverlapTx(ctx context.Context, tx pgx.Tx, realtyID string, start, end time.Time) (bool, error) {
	var exists bool
	query := `
		SELECT EXISTS (
			SELECT 1 FROM booking_items
			WHERE realty_id=$1 AND deleted_at IS NULL
			  AND start_date < $3 AND end_date > $2
		)
	`
	if err := tx.QueryRow(ctx, query, realtyID, start, end).Scan(&exists); err != nil {
		return false, err
	}
	return exists, nil
}

// CreateTx inserts the booking inside the provided transaction. The schema's
// exclusion constraint on (realty_id, [start_date, end_date)) is the final
// arbiter against concurrent writers; callers map its violation to a conflict.
func (r *BookingRepository) CreateTx(ctx context.Context, tx pgx.Tx, b *model.BookingItem) error {
	query := `
		INSERT INTO booking_items (id, realty_id, user_access_id, start_date, end_date, created_at)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING created_at
	`
	return tx.QueryRow(ctx, query, b.ID, b.RealtyID, b.UserAccessID, b.StartDate, b.EndDate, time.Now()).
		Scan(&b.CreatedAt)
}

func (r *BookingRepository) GetByID(ctx context.Context, id string) (*model.BookingItem, error) {
	var b model.BookingItem
	query := `
		SELECT id, realty_id, user_access_id, start_date, end_date, created_at, deleted_at
		FROM booking_items
		WHERE id=$1 AND deleted_at IS NULL
	`
	err := r.DB.QueryRow(ctx, query, id).
		Scan(&b.ID, &b.RealtyID, &b.UserAccessID, &b.StartDate, &b.EndDate, &b.CreatedAt, &b.DeletedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, err
	}
	return &b, nil
}

// List returns non-deleted bookings, optionally filtered by realty and/or the
// owning login.
func (r *BookingRepository) List(ctx context.Context, realtyID, login string) ([]model.BookingItem, error) {
	query := `
		SELECT bi.id, bi.realty_id, bi.user_access_id, bi.start_date, bi.end_date, bi.created_at, bi.deleted_at
		FROM booking_items bi
		JOIN user_access ua ON ua.id = bi.user_access_id
		WHERE bi.deleted_at IS NULL
		  AND ($1 = '' OR bi.realty_id = $1::uuid)
		  AND ($2 = '' OR ua.login = $2)
		ORDER BY bi.start_date
	`
	rows, err := r.DB.Query(ctx, query, realtyID, login)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := []model.BookingItem{}
	for rows.Next() {
		var b model.BookingItem
		if err := rows.Scan(&b.ID, &b.RealtyID, &b.UserAccessID, &b.StartDate, &b.EndDate, &b.CreatedAt, &b.DeletedAt); err != nil {
			return nil, err
		}
		out = append(out, b)
	}
	return out, rows.Err()
}

// ListByUserAccess returns all active bookings owned by one credential record.
func (r *BookingRepository) ListByUserAccess(ctx context.Context, userAccessID string) ([]model.BookingItem, error) {
	query := `
		SELECT id, realty_id, user_access_id, start_date, end_date, created_at, deleted_at
		FROM booking_items
		WHERE user_access_id=$1 AND deleted_at IS NULL
		ORDER BY start_date
	`
	rows, err := r.DB.Query(ctx, query, userAccessID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := []model.BookingItem{}
	for rows.Next() {
		var b model.BookingItem
		if err := rows.Scan(&b.ID, &b.RealtyID, &b.UserAccessID, &b.StartDate, &b.EndDate, &b.CreatedAt, &b.DeletedAt); err != nil {
			return nil, err
		}
		out = append(out, b)
	}
	return out, rows.Err()
}

// SoftDelete tombstones a booking.
func (r *BookingRepository) SoftDelete(ctx context.Context, id string) error {
	tag, err := r.DB.Exec(ctx,
		`UPDATE booking_items SET deleted_at=$1 WHERE id=$2 AND deleted_at IS NULL`,
		time.Now(), id)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return errors.New("booking not found or already deleted")
	}
	return nil
}
