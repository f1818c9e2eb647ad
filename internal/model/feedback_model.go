package model

import "time"

type Feedback struct {
	ID           string     `json:"id"`
	Text         string     `json:"text"`
	Rate         int        `json:"rate"`
	RealtyID     string     `json:"realty_id"`
	UserAccessID string     `json:"user_access_id"`
	CreatedAt    *time.Time `json:"created_at,omitempty"`
	UpdatedAt    *time.Time `json:"updated_at,omitempty"`
	DeletedAt    *time.Time `json:"deleted_at,omitempty"`
}
