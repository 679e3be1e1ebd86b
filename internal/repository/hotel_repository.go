package repository

// Hotels anchor the bookable side of the catalog.  A hotel belongs to
// a city and owns room types; deleting a hotel is rejected while room
// types still exist under it, which in turn protects rooms and their
// reservation history from cascading away.

import (
    "context"
    "database/sql"
    "errors"

    "github.com/voyago/travel-reservation/internal/model"
)

// ErrHotelNotFound is returned when a hotel cannot be found.
var ErrHotelNotFound = errors.New("hotel not found")

// HotelRepo encapsulates all database queries related to hotels.
type HotelRepo struct {
    db *sql.DB
}

// NewHotelRepo constructs a HotelRepo with the provided DB handle.
func NewHotelRepo(db *sql.DB) *HotelRepo { return &HotelRepo{db: db} }

// DB exposes the underlying handle so handlers can open transactions
// that span repositories.
func (r *HotelRepo) DB() *sql.DB { return r.db }

// Create inserts a new hotel after verifying the parent city exists.
func (r *HotelRepo) Create(ctx context.Context, h *model.Hotel) error {
    var exists int
    if err := r.db.QueryRowContext(ctx,
        `SELECT COUNT(*) FROM cities WHERE id = ?`, h.CityID).Scan(&exists); err != nil {
        return err
    }
    if exists == 0 {
        return ErrCityNotFound
    }
    res, err := r.db.ExecContext(ctx,
        `INSERT INTO hotels (city_id, name, description, image_url, price_per_night_cents)
         VALUES (?, ?, ?, ?, ?)`,
        h.CityID, h.Name, h.Description, h.ImageURL, h.PricePerNightCents)
    if err != nil {
        return err
    }
    id, err := res.LastInsertId()
    if err != nil {
        return err
    }
    h.ID = uint64(id)
    return r.db.QueryRowContext(ctx,
        `SELECT created_at, updated_at FROM hotels WHERE id = ?`, h.ID).Scan(&h.CreatedAt, &h.UpdatedAt)
}

// GetByID fetches a hotel by its ID.
func (r *HotelRepo) GetByID(ctx context.Context, id uint64) (*model.Hotel, error) {
    const q = `SELECT id, city_id, name, description, image_url, price_per_night_cents, created_at, updated_at
               FROM hotels WHERE id = ?`
    var h model.Hotel
    if err := r.db.QueryRowContext(ctx, q, id).Scan(
        &h.ID, &h.CityID, &h.Name, &h.Description, &h.ImageURL, &h.PricePerNightCents, &h.CreatedAt, &h.UpdatedAt,
    ); err != nil {
        if errors.Is(err, sql.ErrNoRows) {
            return nil, ErrHotelNotFound
        }
        return nil, err
    }
    return &h, nil
}

// List returns hotels ordered by id, optionally restricted to a city.
func (r *HotelRepo) List(ctx context.Context, cityID uint64) ([]*model.Hotel, error) {
    q := `SELECT id, city_id, name, description, image_url, price_per_night_cents, created_at, updated_at
          FROM hotels`
    args := []any{}
    if cityID != 0 {
        q += ` WHERE city_id = ?`
        args = append(args, cityID)
    }
    q += ` ORDER BY id`
    rows, err := r.db.QueryContext(ctx, q, args...)
    if err != nil {
        return nil, err
    }
    defer rows.Close()
    out := make([]*model.Hotel, 0)
    for rows.Next() {
        h := new(model.Hotel)
        if err := rows.Scan(&h.ID, &h.CityID, &h.Name, &h.Description, &h.ImageURL, &h.PricePerNightCents, &h.CreatedAt, &h.UpdatedAt); err != nil {
            return nil, err
        }
        out = append(out, h)
    }
    if err := rows.Err(); err != nil {
        return nil, err
    }
    return out, nil
}

// Update rewrites the mutable fields of a hotel, re-validating the
// parent city.
func (r *HotelRepo) Update(ctx context.Context, h *model.Hotel) error {
    var exists int
    if err := r.db.QueryRowContext(ctx,
        `SELECT COUNT(*) FROM cities WHERE id = ?`, h.CityID).Scan(&exists); err != nil {
        return err
    }
    if exists == 0 {
        return ErrCityNotFound
    }
    const q = `UPDATE hotels
               SET city_id = ?, name = ?, description = ?, image_url = ?, price_per_night_cents = ?, updated_at = CURRENT_TIMESTAMP
               WHERE id = ?`
    res, err := r.db.ExecContext(ctx, q, h.CityID, h.Name, h.Description, h.ImageURL, h.PricePerNightCents, h.ID)
    if err != nil {
        return err
    }
    if n, _ := res.RowsAffected(); n == 0 {
        return ErrHotelNotFound
    }
    return nil
}

// Delete removes a hotel unless room types or trips still reference it.
func (r *HotelRepo) Delete(ctx context.Context, id uint64) error {
    var children int
    const qChildren = `SELECT
            (SELECT COUNT(*) FROM room_types WHERE hotel_id = ?) +
            (SELECT COUNT(*) FROM trips WHERE hotel_id = ?)`
    if err := r.db.QueryRowContext(ctx, qChildren, id, id).Scan(&children); err != nil {
        return err
    }
    if children > 0 {
        return ErrConflict
    }
    res, err := r.db.ExecContext(ctx, `DELETE FROM hotels WHERE id = ?`, id)
    if err != nil {
        return err
    }
    if n, _ := res.RowsAffected(); n == 0 {
        return ErrHotelNotFound
    }
    return nil
}
