package repository

import (
	"context"
	"errors"
	"time"

	"BookingAPI/internal/model"

	"github.com/jackc/pgx/v5"
)

type UserAccessRepository struct {
	DB DB
}

func NewUserAccessRepository(db DB) *UserAccessRepository {
	return &UserAccessRepository{DB: db}
}

// FindActiveByLogin resolves a login to its credential record, eager-loading
// the profile and role needed for token claims. Soft-deleted accesses and
// profiles are excluded. Returns (nil, nil) when no active record exists.
func (r *UserAccessRepository) FindActiveByLogin(ctx context.Context, login string) (*model.UserAccess, error) {
	query := `
		SELECT ua.id, ua.user_id, ua.login, ua.salt, ua.dk, ua.created_at, ua.deleted_at,
		       ud.id, ud.first_name, ud.last_name, ud.email, ud.birth_date, ud.registered_at,
		       ur.id, ur.description, ur.can_create, ur.can_read, ur.can_update, ur.can_delete
		FROM user_access ua
		JOIN user_data ud ON ud.id = ua.user_data_id
		JOIN user_roles ur ON ur.id = ua.user_role_id
		WHERE ua.login=$1 AND ua.deleted_at IS NULL AND ud.deleted_at IS NULL
	`
	var (
		ua model.UserAccess
		ud model.UserData
		ur model.UserRole
	)
	err := r.DB.QueryRow(ctx, query, login).Scan(
		&ua.ID, &ua.UserID, &ua.Login, &ua.Salt, &ua.DK, &ua.CreatedAt, &ua.DeletedAt,
		&ud.ID, &ud.FirstName, &ud.LastName, &ud.Email, &ud.BirthDate, &ud.RegisteredAt,
		&ur.ID, &ur.Description, &ur.CanCreate, &ur.CanRead, &ur.CanUpdate, &ur.CanDelete,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, err
	}
	ua.UserData = &ud
	ua.UserRole = &ur
	return &ua, nil
}

// ExistsByID reports whether an active credential record with the given id exists.
func (r *UserAccessRepository) ExistsByID(ctx context.Context, id string) (bool, error) {
	var exists bool
	query := `SELECT EXISTS (SELECT 1 FROM user_access WHERE id=$1 AND deleted_at IS NULL)`
	if err := r.DB.QueryRow(ctx, query, id).Scan(&exists); err != nil {
		return false, err
	}
	return exists, nil
}

// CreateTx inserts the profile row and the credential row inside the provided
// transaction. The caller owns commit/rollback.
func (r *UserAccessRepository) CreateTx(ctx context.Context, tx pgx.Tx, ua *model.UserAccess) error {
	now := time.Now()
	_, err := tx.Exec(ctx, `
		INSERT INTO user_data (id, first_name, last_name, email, birth_date, registered_at)
		VALUES ($1, $2, $3, $4, $5, $6)
	`, ua.UserData.ID, ua.UserData.FirstName, ua.UserData.LastName, ua.UserData.Email, ua.UserData.BirthDate, now)
	if err != nil {
		return err
	}
	_, err = tx.Exec(ctx, `
		INSERT INTO user_access (id, user_id, login, salt, dk, user_data_id, user_role_id, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
	`, ua.ID, ua.UserID, ua.Login, ua.Salt, ua.DK, ua.UserData.ID, ua.UserRole.ID, now)
	return err
}

// BanByLogin soft-deletes a credential record.
func (r *UserAccessRepository) BanByLogin(ctx context.Context, login string) error {
	tag, err := r.DB.Exec(ctx,
		`UPDATE user_access SET deleted_at=$1 WHERE login=$2 AND deleted_at IS NULL`,
		time.Now(), login)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return errors.New("user not found or already deleted")
	}
	return nil
}
