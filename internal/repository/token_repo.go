package repository

import (
	"context"

	"BookingAPI/internal/model"
)

type AccessTokenRepository struct {
	DB DB
}

func NewAccessTokenRepository(db DB) *AccessTokenRepository {
	return &AccessTokenRepository{DB: db}
}

// Create appends one issued-token record. Rows are never updated; expiry is
// checked at verification time, not here.
func (r *AccessTokenRepository) Create(ctx context.Context, t *model.AccessToken) error {
	query := `
		INSERT INTO access_tokens (jti, sub, iat, exp, nbf, aud, iss, user_access_id)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
	`
	_, err := r.DB.Exec(ctx, query, t.JTI, t.Sub, t.Iat, t.Exp, t.Nbf, t.Aud, t.Iss, t.UserAccessID)
	return err
}

// CountForUser returns how many tokens were ever issued to a credential record.
func (r *AccessTokenRepository) CountForUser(ctx context.Context, userAccessID string) (int64, error) {
	var n int64
	query := `SELECT COUNT(*) FROM access_tokens WHERE user_access_id=$1`
	if err := r.DB.QueryRow(ctx, query, userAccessID).Scan(&n); err != nil {
		return 0, err
	}
	return n, nil
}
