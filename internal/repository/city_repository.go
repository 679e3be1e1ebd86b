package repository

// Cities sit between countries and places.  Creating or moving a city
// validates that the referenced country exists; deleting one is
// rejected while places, hotels or trips still point at it.

import (
    "context"
    "database/sql"
    "errors"

    "github.com/voyago/travel-reservation/internal/model"
)

// ErrCityNotFound is returned when a city cannot be found.
var ErrCityNotFound = errors.New("city not found")

// CityRepo encapsulates all database queries related to cities.
type CityRepo struct {
    db *sql.DB
}

// NewCityRepo constructs a CityRepo with the provided DB handle.
func NewCityRepo(db *sql.DB) *CityRepo { return &CityRepo{db: db} }

// Create inserts a new city after verifying its parent country
// exists.  Returns ErrCountryNotFound when the parent is missing.
func (r *CityRepo) Create(ctx context.Context, c *model.City) error {
    var exists int
    if err := r.db.QueryRowContext(ctx,
        `SELECT COUNT(*) FROM countries WHERE id = ?`, c.CountryID).Scan(&exists); err != nil {
        return err
    }
    if exists == 0 {
        return ErrCountryNotFound
    }
    const qInsert = `INSERT INTO cities (country_id, name, description, image_url) VALUES (?, ?, ?, ?)`
    res, err := r.db.ExecContext(ctx, qInsert, c.CountryID, c.Name, c.Description, c.ImageURL)
    if err != nil {
        return err
    }
    id, err := res.LastInsertId()
    if err != nil {
        return err
    }
    c.ID = uint64(id)
    const qSelect = `SELECT created_at, updated_at FROM cities WHERE id = ?`
    return r.db.QueryRowContext(ctx, qSelect, c.ID).Scan(&c.CreatedAt, &c.UpdatedAt)
}

// GetByID fetches a city by its ID.
func (r *CityRepo) GetByID(ctx context.Context, id uint64) (*model.City, error) {
    const q = `SELECT id, country_id, name, description, image_url, created_at, updated_at
               FROM cities WHERE id = ?`
    var c model.City
    if err := r.db.QueryRowContext(ctx, q, id).Scan(
        &c.ID, &c.CountryID, &c.Name, &c.Description, &c.ImageURL, &c.CreatedAt, &c.UpdatedAt,
    ); err != nil {
        if errors.Is(err, sql.ErrNoRows) {
            return nil, ErrCityNotFound
        }
        return nil, err
    }
    return &c, nil
}

// List returns cities ordered by id.  When countryID is non-zero the
// result is restricted to that country.
func (r *CityRepo) List(ctx context.Context, countryID uint64) ([]*model.City, error) {
    q := `SELECT id, country_id, name, description, image_url, created_at, updated_at
          FROM cities`
    args := []any{}
    if countryID != 0 {
        q += ` WHERE country_id = ?`
        args = append(args, countryID)
    }
    q += ` ORDER BY id`
    rows, err := r.db.QueryContext(ctx, q, args...)
    if err != nil {
        return nil, err
    }
    defer rows.Close()
    out := make([]*model.City, 0)
    for rows.Next() {
        c := new(model.City)
        if err := rows.Scan(&c.ID, &c.CountryID, &c.Name, &c.Description, &c.ImageURL, &c.CreatedAt, &c.UpdatedAt); err != nil {
            return nil, err
        }
        out = append(out, c)
    }
    if err := rows.Err(); err != nil {
        return nil, err
    }
    return out, nil
}

// Update rewrites the mutable fields of a city, re-validating the
// parent country when it changes.
func (r *CityRepo) Update(ctx context.Context, c *model.City) error {
    var exists int
    if err := r.db.QueryRowContext(ctx,
        `SELECT COUNT(*) FROM countries WHERE id = ?`, c.CountryID).Scan(&exists); err != nil {
        return err
    }
    if exists == 0 {
        return ErrCountryNotFound
    }
    const q = `UPDATE cities
               SET country_id = ?, name = ?, description = ?, image_url = ?, updated_at = CURRENT_TIMESTAMP
               WHERE id = ?`
    res, err := r.db.ExecContext(ctx, q, c.CountryID, c.Name, c.Description, c.ImageURL, c.ID)
    if err != nil {
        return err
    }
    if n, _ := res.RowsAffected(); n == 0 {
        return ErrCityNotFound
    }
    return nil
}

// Delete removes a city unless places, hotels or trips still
// reference it.
func (r *CityRepo) Delete(ctx context.Context, id uint64) error {
    var children int
    const qChildren = `SELECT
            (SELECT COUNT(*) FROM places WHERE city_id = ?) +
            (SELECT COUNT(*) FROM hotels WHERE city_id = ?) +
            (SELECT COUNT(*) FROM trips  WHERE city_id = ?)`
    if err := r.db.QueryRowContext(ctx, qChildren, id, id, id).Scan(&children); err != nil {
        return err
    }
    if children > 0 {
        return ErrConflict
    }
    res, err := r.db.ExecContext(ctx, `DELETE FROM cities WHERE id = ?`, id)
    if err != nil {
        return err
    }
    if n, _ := res.RowsAffected(); n == 0 {
        return ErrCityNotFound
    }
    return nil
}
