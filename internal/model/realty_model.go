package model

import "time"

type Country struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

type City struct {
	ID        string `json:"id"`
	Name      string `json:"name"`
	CountryID string `json:"country_id"`
}

type RealtyGroup struct {
	ID            string     `json:"id"`
	Name          string     `json:"name"`
	Description   string     `json:"description"`
	Slug          string     `json:"slug"`
	ImageURL      *string    `json:"image_url,omitempty"`
	ParentGroupID *string    `json:"parent_group_id,omitempty"`
	DeletedAt     *time.Time `json:"deleted_at,omitempty"`
}

type Realty struct {
	ID            string     `json:"id"`
	Name          string     `json:"name"`
	Description   *string    `json:"description,omitempty"`
	Slug          *string    `json:"slug,omitempty"`
	Price         float64    `json:"price"`
	CityID        string     `json:"city_id"`
	RealtyGroupID string     `json:"realty_group_id"`
	DeletedAt     *time.Time `json:"deleted_at,omitempty"`

	// aggregated from feedbacks on list/search queries
	AvgRating  float64 `json:"avg_rating"`
	RatesCount int64   `json:"rates_count"`
}
