package model

import "time"

// BookingItem holds a half-open [StartDate, EndDate) reservation of a realty.
type BookingItem struct {
	ID           string     `json:"id"`
	RealtyID     string     `json:"realty_id"`
	UserAccessID string     `json:"user_access_id"`
	StartDate    time.Time  `json:"start_date"`
	EndDate      time.Time  `json:"end_date"`
	CreatedAt    *time.Time `json:"created_at,omitempty"`
	DeletedAt    *time.Time `json:"deleted_at,omitempty"`
}
