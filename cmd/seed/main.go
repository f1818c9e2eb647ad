package main

import (
	"context"
	"log"
	"time"

	"BookingAPI/internal/db"
	"BookingAPI/internal/services"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"
)

// Seeds reference data: roles, realty groups, a starter location set and the
// admin identity. Safe to run repeatedly; every insert is ON CONFLICT DO NOTHING.
func main() {
	pool, err := db.Connect()
	if err != nil {
		log.Fatal(err)
	}
	defer pool.Close()

	ctx := context.Background()
	log.Println("seeding data...")

	if err := seedRoles(ctx, pool); err != nil {
		log.Fatal(err)
	}
	if err := seedGroups(ctx, pool); err != nil {
		log.Fatal(err)
	}
	if err := seedLocations(ctx, pool); err != nil {
		log.Fatal(err)
	}
	if err := seedAdmin(ctx, pool); err != nil {
		log.Fatal(err)
	}

	log.Println("seed completed")
}

func seedRoles(ctx context.Context, pool *pgxpool.Pool) error {
	roles := []struct {
		id, description                          string
		canCreate, canRead, canUpdate, canDelete bool
	}{
		{"admin", "Full catalog management", true, true, true, true},
		{"self_registered", "Self-registered customer", true, true, false, false},
	}
	for _, r := range roles {
		_, err := pool.Exec(ctx, `
			INSERT INTO user_roles (id, description, can_create, can_read, can_update, can_delete)
			VALUES ($1, $2, $3, $4, $5, $6)
			ON CONFLICT (id) DO NOTHING
		`, r.id, r.description, r.canCreate, r.canRead, r.canUpdate, r.canDelete)
		if err != nil {
			return err
		}
	}
	return nil
}

func seedGroups(ctx context.Context, pool *pgxpool.Pool) error {
	groups := []struct {
		id, name, description, slug string
	}{
		{"f1ea6b3f-0021-417b-95c8-f6cd333d7207", "Hotels", "Multi-room hotels", "hotels"},
		{"8806ca58-8daa-4576-92ba-797de42ffaa7", "Apartments", "Apartments", "apartments"},
		{"97191468-a02f-4a78-927b-9ea660e9ea36", "Houses", "Houses", "houses"},
	}
	for _, g := range groups {
		_, err := pool.Exec(ctx, `
			INSERT INTO realty_groups (id, name, description, slug)
			VALUES ($1, $2, $3, $4)
			ON CONFLICT (id) DO NOTHING
		`, g.id, g.name, g.description, g.slug)
		if err != nil {
			return err
		}
	}
	return nil
}

func seedLocations(ctx context.Context, pool *pgxpool.Pool) error {
	countries := map[string][]string{
		"Ukraine": {"Kyiv", "Lviv", "Odesa"},
		"Poland":  {"Warsaw", "Krakow"},
	}
	for country, cities := range countries {
		countryID := uuid.NewString()
		tag, err := pool.Exec(ctx, `
			INSERT INTO countries (id, name)
			SELECT $1, $2
			WHERE NOT EXISTS (SELECT 1 FROM countries WHERE name=$2)
		`, countryID, country)
		if err != nil {
			return err
		}
		if tag.RowsAffected() == 0 {
			// country already seeded, keep its existing id for the cities
			if err := pool.QueryRow(ctx, `SELECT id FROM countries WHERE name=$1`, country).Scan(&countryID); err != nil {
				return err
			}
		}
		for _, city := range cities {
			_, err := pool.Exec(ctx, `
				INSERT INTO cities (id, name, country_id)
				SELECT $1, $2, $3
				WHERE NOT EXISTS (SELECT 1 FROM cities WHERE name=$2 AND country_id=$3)
			`, uuid.NewString(), city, countryID)
			if err != nil {
				return err
			}
		}
	}
	return nil
}

// seedAdmin provisions the admin identity through the same derivation path
// registration uses, so its credentials verify like any other account.
func seedAdmin(ctx context.Context, pool *pgxpool.Pool) error {
	kdf := services.NewSha1KdfService()
	random := services.NewCryptoRandomService()

	salt, err := random.OTP(12)
	if err != nil {
		return err
	}

	userDataID := uuid.NewString()
	_, err = pool.Exec(ctx, `
		INSERT INTO user_data (id, first_name, last_name, email, registered_at)
		SELECT $1, 'Booking', 'Admin', 'admin@booking.local', $2
		WHERE NOT EXISTS (SELECT 1 FROM user_data WHERE email='admin@booking.local')
	`, userDataID, time.Now())
	if err != nil {
		return err
	}
	// the row may predate this run; reuse its id for the credential record
	if err := pool.QueryRow(ctx, `SELECT id FROM user_data WHERE email='admin@booking.local'`).Scan(&userDataID); err != nil {
		return err
	}

	_, err = pool.Exec(ctx, `
		INSERT INTO user_access (id, user_id, login, salt, dk, user_data_id, user_role_id)
		SELECT $1, $2, 'admin', $3, $4, $2, 'admin'
		WHERE NOT EXISTS (SELECT 1 FROM user_access WHERE login='admin')
	`, uuid.NewString(), userDataID, salt, kdf.DeriveKey("ChangeMe123!Now", salt))
	return err
}
