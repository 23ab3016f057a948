package sqlstore

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/mmynk/biteswipe/internal/models"
	"github.com/mmynk/biteswipe/internal/storage"
)

const selectRestaurant = `
	SELECT id, name, image_url, cuisine, price_range, rating, address, latitude, longitude, phone, website
	FROM restaurants`

// UpsertRestaurant inserts a catalog entry or replaces the existing one.
func (s *Store) UpsertRestaurant(ctx context.Context, r *models.Restaurant) error {
	_, err := s.db.ExecContext(ctx, s.q(`
		INSERT INTO restaurants (id, name, image_url, cuisine, price_range, rating, address, latitude, longitude, phone, website)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT (id) DO UPDATE SET
			name = excluded.name,
			image_url = excluded.image_url,
			cuisine = excluded.cuisine,
			price_range = excluded.price_range,
			rating = excluded.rating,
			address = excluded.address,
			latitude = excluded.latitude,
			longitude = excluded.longitude,
			phone = excluded.phone,
			website = excluded.website`),
		r.ID, r.Name, r.ImageURL, r.Cuisine, r.PriceRange, r.Rating,
		r.Address, r.Latitude, r.Longitude, r.Phone, r.Website,
	)
	if err != nil {
		return fmt.Errorf("failed to upsert restaurant: %w", err)
	}
	return nil
}

// GetRestaurant retrieves a restaurant by ID.
func (s *Store) GetRestaurant(ctx context.Context, restaurantID string) (*models.Restaurant, error) {
	r, err := scanRestaurant(s.db.QueryRowContext(ctx, s.q(selectRestaurant+" WHERE id = ?"), restaurantID))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("restaurant %s: %w", restaurantID, storage.ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get restaurant: %w", err)
	}
	return r, nil
}

// ListRestaurants returns the catalog ordered by name. An empty cuisine
// returns everything.
func (s *Store) ListRestaurants(ctx context.Context, cuisine string) ([]*models.Restaurant, error) {
	var (
		rows *sql.Rows
		err  error
	)
	if cuisine == "" {
		rows, err = s.db.QueryContext(ctx, s.q(selectRestaurant+" ORDER BY name, id"))
	} else {
		rows, err = s.db.QueryContext(ctx, s.q(selectRestaurant+" WHERE cuisine = ? ORDER BY name, id"), cuisine)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to list restaurants: %w", err)
	}
	defer rows.Close()

	var restaurants []*models.Restaurant
	for rows.Next() {
		r, err := scanRestaurant(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan restaurant: %w", err)
		}
		restaurants = append(restaurants, r)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate restaurants: %w", err)
	}
	return restaurants, nil
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanRestaurant(row rowScanner) (*models.Restaurant, error) {
	r := &models.Restaurant{}
	err := row.Scan(&r.ID, &r.Name, &r.ImageURL, &r.Cuisine, &r.PriceRange, &r.Rating,
		&r.Address, &r.Latitude, &r.Longitude, &r.Phone, &r.Website)
	if err != nil {
		return nil, err
	}
	return r, nil
}
