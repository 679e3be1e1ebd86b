// Package repository contains data access logic separated from HTTP
// handlers.  This file defines repository methods for countries, the
// roots of the catalog hierarchy.  Deleting a country that still has
// cities is rejected with ErrConflict; the catalog never cascades
// deletes into reservation-bearing entities.
package repository

import (
    "context"
    "database/sql"
    "errors"

    "github.com/voyago/travel-reservation/internal/model"
)

// ErrCountryNotFound is returned when a country cannot be found.
var ErrCountryNotFound = errors.New("country not found")

// CountryRepo encapsulates all database queries related to countries.
type CountryRepo struct {
    db *sql.DB
}

// NewCountryRepo constructs a CountryRepo with the provided DB handle.
func NewCountryRepo(db *sql.DB) *CountryRepo { return &CountryRepo{db: db} }

// Create inserts a new country.  On success the ID field is populated
// with the auto-generated value and timestamps are read back so the
// caller receives a fully populated record.
func (r *CountryRepo) Create(ctx context.Context, c *model.Country) error {
    const qInsert = `INSERT INTO countries (name, description, image_url) VALUES (?, ?, ?)`
    res, err := r.db.ExecContext(ctx, qInsert, c.Name, c.Description, c.ImageURL)
    if err != nil {
        return err
    }
    id, err := res.LastInsertId()
    if err != nil {
        return err
    }
    c.ID = uint64(id)
    const qSelect = `SELECT created_at, updated_at FROM countries WHERE id = ?`
    return r.db.QueryRowContext(ctx, qSelect, c.ID).Scan(&c.CreatedAt, &c.UpdatedAt)
}

// GetByID fetches a country by its ID.  It returns ErrCountryNotFound
// when no row exists.
func (r *CountryRepo) GetByID(ctx context.Context, id uint64) (*model.Country, error) {
    const q = `SELECT id, name, description, image_url, created_at, updated_at
               FROM countries WHERE id = ?`
    var c model.Country
    if err := r.db.QueryRowContext(ctx, q, id).Scan(
        &c.ID, &c.Name, &c.Description, &c.ImageURL, &c.CreatedAt, &c.UpdatedAt,
    ); err != nil {
        if errors.Is(err, sql.ErrNoRows) {
            return nil, ErrCountryNotFound
        }
        return nil, err
    }
    return &c, nil
}

// ListAll returns every country ordered by id (insertion order).
func (r *CountryRepo) ListAll(ctx context.Context) ([]*model.Country, error) {
    const q = `SELECT id, name, description, image_url, created_at, updated_at
               FROM countries ORDER BY id`
    rows, err := r.db.QueryContext(ctx, q)
    if err != nil {
        return nil, err
    }
    defer rows.Close()
    out := make([]*model.Country, 0)
    for rows.Next() {
        c := new(model.Country)
        if err := rows.Scan(&c.ID, &c.Name, &c.Description, &c.ImageURL, &c.CreatedAt, &c.UpdatedAt); err != nil {
            return nil, err
        }
        out = append(out, c)
    }
    if err := rows.Err(); err != nil {
        return nil, err
    }
    return out, nil
}

// Update rewrites the mutable fields of a country.  It returns
// ErrCountryNotFound when no row was affected.
func (r *CountryRepo) Update(ctx context.Context, c *model.Country) error {
    const q = `UPDATE countries
               SET name = ?, description = ?, image_url = ?, updated_at = CURRENT_TIMESTAMP
               WHERE id = ?`
    res, err := r.db.ExecContext(ctx, q, c.Name, c.Description, c.ImageURL, c.ID)
    if err != nil {
        return err
    }
    if n, _ := res.RowsAffected(); n == 0 {
        return ErrCountryNotFound
    }
    return nil
}

// Delete removes a country.  When the country still has cities the
// delete is rejected with ErrConflict; when it does not exist,
// ErrCountryNotFound is returned.
func (r *CountryRepo) Delete(ctx context.Context, id uint64) error {
    var children int
    if err := r.db.QueryRowContext(ctx,
        `SELECT COUNT(*) FROM cities WHERE country_id = ?`, id).Scan(&children); err != nil {
        return err
    }
    if children > 0 {
        return ErrConflict
    }
    res, err := r.db.ExecContext(ctx, `DELETE FROM countries WHERE id = ?`, id)
    if err != nil {
        return err
    }
    if n, _ := res.RowsAffected(); n == 0 {
        return ErrCountryNotFound
    }
    return nil
}
