package repository

import (
	"context"
	"errors"
	"time"

	"BookingAPI/internal/model"

	"github.com/jackc/pgx/v5"
)

type RealtyRepository struct {
	DB DB
}

func NewRealtyRepository(db DB) *RealtyRepository {
	return &RealtyRepository{DB: db}
}

// RealtyFilter narrows List results. Zero values mean "no filter".
type RealtyFilter struct {
	CityID        string
	CountryID     string
	RealtyGroupID string
	PriceMin      *float64
	PriceMax      *float64
}

const realtyListQuery = `
	SELECT r.id, r.name, r.description, r.slug, r.price, r.city_id, r.realty_group_id, r.deleted_at,
	       COALESCE(AVG(f.rate), 0) AS avg_rating,
	       COUNT(f.id) AS rates_count
	FROM realties r
	JOIN cities c ON c.id = r.city_id
	LEFT JOIN feedbacks f ON f.realty_id = r.id AND f.deleted_at IS NULL
	WHERE r.deleted_at IS NULL
	  AND ($1 = '' OR r.city_id = $1::uuid)
	  AND ($2 = '' OR c.country_id = $2::uuid)
	  AND ($3 = '' OR r.realty_group_id = $3::uuid)
	  AND ($4::numeric IS NULL OR r.price >= $4)
	  AND ($5::numeric IS NULL OR r.price <= $5)
	GROUP BY r.id, r.name, r.description, r.slug, r.price, r.city_id, r.realty_group_id, r.deleted_at
	ORDER BY r.name
`

func (r *RealtyRepository) List(ctx context.Context, f RealtyFilter) ([]model.Realty, error) {
	rows, err := r.DB.Query(ctx, realtyListQuery, f.CityID, f.CountryID, f.RealtyGroupID, f.PriceMin, f.PriceMax)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return scanRealties(rows)
}

func (r *RealtyRepository) GetByID(ctx context.Context, id string) (*model.Realty, error) {
	var rt model.Realty
	query := `
		SELECT r.id, r.name, r.description, r.slug, r.price, r.city_id, r.realty_group_id, r.deleted_at,
		       COALESCE(AVG(f.rate), 0) AS avg_rating,
		       COUNT(f.id) AS rates_count
		FROM realties r
		LEFT JOIN feedbacks f ON f.realty_id = r.id AND f.deleted_at IS NULL
		WHERE r.id=$1 AND r.deleted_at IS NULL
		GROUP BY r.id, r.name, r.description, r.slug, r.price, r.city_id, r.realty_group_id, r.deleted_at
	`
	err := r.DB.QueryRow(ctx, query, id).Scan(
		&rt.ID, &rt.Name, &rt.Description, &rt.Slug, &rt.Price, &rt.CityID, &rt.RealtyGroupID, &rt.DeletedAt,
		&rt.AvgRating, &rt.RatesCount,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, err
	}
	return &rt, nil
}

func (r *RealtyRepository) ExistsByID(ctx context.Context, id string) (bool, error) {
	var exists bool
	query := `SELECT EXISTS (SELECT 1 FROM realties WHERE id=$1 AND deleted_at IS NULL)`
	if err := r.DB.QueryRow(ctx, query, id).Scan(&exists); err != nil {
		return false, err
	}
	return exists, nil
}

// Search filters by minimum price, group slugs and minimum average rating,
// matching the catalog search form.
func (r *RealtyRepository) Search(ctx context.Context, priceMin *float64, groupSlugs []string, ratingMin *float64) ([]model.Realty, error) {
	query := `
		SELECT r.id, r.name, r.description, r.slug, r.price, r.city_id, r.realty_group_id, r.deleted_at,
		       COALESCE(AVG(f.rate), 0) AS avg_rating,
		       COUNT(f.id) AS rates_count
		FROM realties r
		JOIN realty_groups rg ON rg.id = r.realty_group_id
		LEFT JOIN feedbacks f ON f.realty_id = r.id AND f.deleted_at IS NULL
		WHERE r.deleted_at IS NULL
		  AND ($1::numeric IS NULL OR r.price >= $1)
		  AND (cardinality($2::text[]) = 0 OR rg.slug = ANY($2))
		GROUP BY r.id, r.name, r.description, r.slug, r.price, r.city_id, r.realty_group_id, r.deleted_at
		HAVING ($3::numeric IS NULL OR COALESCE(AVG(f.rate), 0) >= $3)
		ORDER BY r.name
	`
	if groupSlugs == nil {
		groupSlugs = []string{}
	}
	rows, err := r.DB.Query(ctx, query, priceMin, groupSlugs, ratingMin)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return scanRealties(rows)
}

func (r *RealtyRepository) Create(ctx context.Context, rt *model.Realty) error {
	query := `
		INSERT INTO realties (id, name, description, slug, price, city_id, realty_group_id)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
	`
	_, err := r.DB.Exec(ctx, query, rt.ID, rt.Name, rt.Description, rt.Slug, rt.Price, rt.CityID, rt.RealtyGroupID)
	return err
}

// RealtyPatch carries a partial update. Nil fields are left as stored.
type RealtyPatch struct {
	Name        *string
	Description *string
	Slug        *string
	Price       *float64
}

// UpdateBySlug applies a partial update to the realty addressed by its former
// slug. Omitted fields keep their stored values, so a rename never clears the
// slug or the price.
func (r *RealtyRepository) UpdateBySlug(ctx context.Context, formerSlug string, patch RealtyPatch) error {
	query := `
		UPDATE realties
		SET name=COALESCE($1, name),
		    description=COALESCE($2, description),
		    slug=COALESCE($3, slug),
		    price=COALESCE($4, price)
		WHERE slug=$5 AND deleted_at IS NULL
	`
	tag, err := r.DB.Exec(ctx, query, patch.Name, patch.Description, patch.Slug, patch.Price, formerSlug)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return errors.New("realty not found")
	}
	return nil
}

func (r *RealtyRepository) SoftDeleteBySlug(ctx context.Context, slug string) error {
	tag, err := r.DB.Exec(ctx,
		`UPDATE realties SET deleted_at=$1 WHERE slug=$2 AND deleted_at IS NULL`,
		time.Now(), slug)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return errors.New("realty not found or already deleted")
	}
	return nil
}

func scanRealties(rows pgx.Rows) ([]model.Realty, error) {
	out := []model.Realty{}
	for rows.Next() {
		var rt model.Realty
		if err := rows.Scan(
			&rt.ID, &rt.Name, &rt.Description, &rt.Slug, &rt.Price, &rt.CityID, &rt.RealtyGroupID, &rt.DeletedAt,
			&rt.AvgRating, &rt.RatesCount,
		); err != nil {
			return nil, err
		}
		out = append(out, rt)
	}
	return out, rows.Err()
}
