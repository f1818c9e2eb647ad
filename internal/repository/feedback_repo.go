package repository

import (
	"context"
	"errors"
	"time"

	"BookingAPI/internal/model"
)

type FeedbackRepository struct {
	DB DB
}

func NewFeedbackRepository(db DB) *FeedbackRepository {
	return &FeedbackRepository{DB: db}
}

func (r *FeedbackRepository) Create(ctx context.Context, f *model.Feedback) error {
	now := time.Now()
	query := `
		INSERT INTO feedbacks (id, text, rate, realty_id, user_access_id, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $6)
		RETURNING created_at, updated_at
	`
	return r.DB.QueryRow(ctx, query, f.ID, f.Text, f.Rate, f.RealtyID, f.UserAccessID, now).
		Scan(&f.CreatedAt, &f.UpdatedAt)
}

// List returns non-deleted feedbacks, optionally restricted to one realty.
func (r *FeedbackRepository) List(ctx context.Context, realtyID string) ([]model.Feedback, error) {
	query := `
		SELECT id, text, rate, realty_id, user_access_id, created_at, updated_at, deleted_at
		FROM feedbacks
		WHERE deleted_at IS NULL
		  AND ($1 = '' OR realty_id = $1::uuid)
		ORDER BY created_at DESC
	`
	rows, err := r.DB.Query(ctx, query, realtyID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := []model.Feedback{}
	for rows.Next() {
		var f model.Feedback
		if err := rows.Scan(&f.ID, &f.Text, &f.Rate, &f.RealtyID, &f.UserAccessID, &f.CreatedAt, &f.UpdatedAt, &f.DeletedAt); err != nil {
			return nil, err
		}
		out = append(out, f)
	}
	return out, rows.Err()
}

// ListByUserAccess returns all active feedbacks left by one credential record.
func (r *FeedbackRepository) ListByUserAccess(ctx context.Context, userAccessID string) ([]model.Feedback, error) {
	query := `
		SELECT id, text, rate, realty_id, user_access_id, created_at, updated_at, deleted_at
		FROM feedbacks
		WHERE user_access_id=$1 AND deleted_at IS NULL
		ORDER BY created_at DESC
	`
	rows, err := r.DB.Query(ctx, query, userAccessID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := []model.Feedback{}
	for rows.Next() {
		var f model.Feedback
		if err := rows.Scan(&f.ID, &f.Text, &f.Rate, &f.RealtyID, &f.UserAccessID, &f.CreatedAt, &f.UpdatedAt, &f.DeletedAt); err != nil {
			return nil, err
		}
		out = append(out, f)
	}
	return out, rows.Err()
}

func (r *FeedbackRepository) SoftDelete(ctx context.Context, id string) error {
	tag, err := r.DB.Exec(ctx,
		`UPDATE feedbacks SET deleted_at=$1 WHERE id=$2 AND deleted_at IS NULL`,
		time.Now(), id)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return errors.New("feedback not found or already deleted")
	}
	return nil
}
