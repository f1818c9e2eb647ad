package model

import "time"

type UserRole struct {
	ID          string `json:"id"`
	Description string `json:"description"`
	CanCreate   bool   `json:"can_create"`
	CanRead     bool   `json:"can_read"`
	CanUpdate   bool   `json:"can_update"`
	CanDelete   bool   `json:"can_delete"`
}

type UserData struct {
	ID           string     `json:"id"`
	FirstName    string     `json:"first_name"`
	LastName     string     `json:"last_name"`
	Email        string     `json:"email"`
	BirthDate    *time.Time `json:"birth_date,omitempty"`
	RegisteredAt *time.Time `json:"registered_at,omitempty"`
	DeletedAt    *time.Time `json:"deleted_at,omitempty"`
}

// UserAccess is the credential record for one login. Salt and DK are the
// stored verifier pair and must never be JSON-encoded.
type UserAccess struct {
	ID        string     `json:"id"`
	UserID    string     `json:"user_id"`
	Login     string     `json:"login"`
	Salt      string     `json:"-"`
	DK        string     `json:"-"`
	CreatedAt *time.Time `json:"created_at,omitempty"`
	DeletedAt *time.Time `json:"deleted_at,omitempty"`

	UserData *UserData `json:"user_data,omitempty"`
	UserRole *UserRole `json:"user_role,omitempty"`
}
