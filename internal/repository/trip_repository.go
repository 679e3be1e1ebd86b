package repository

import (
    "context"
    "database/sql"
    "errors"

    "github.com/voyago/travel-reservation/internal/model"
)

// ErrTripNotFound is returned when a trip cannot be found.
var ErrTripNotFound = errors.New("trip not found")

// TripRepo encapsulates all database queries related to trips.
type TripRepo struct {
    db *sql.DB
}

// NewTripRepo constructs a TripRepo with the provided DB handle.
func NewTripRepo(db *sql.DB) *TripRepo { return &TripRepo{db: db} }

// Create inserts a trip and links its activities in one transaction.
func (r *TripRepo) Create(ctx context.Context, t *model.Trip, activityIDs []uint64) error {
    tx, err := r.db.BeginTx(ctx, nil)
    if err != nil {
        return err
    }
    committed := false
    defer func() {
        if !committed {
            _ = tx.Rollback()
        }
    }()

    var cityExists int
    if err := tx.QueryRowContext(ctx,
        `SELECT COUNT(*) FROM cities WHERE id = ?`, t.CityID).Scan(&cityExists); err != nil {
        return err
    }
    if cityExists == 0 {
        return ErrCityNotFound
    }
    if t.HotelID != nil {
        var hotelExists int
        if err := tx.QueryRowContext(ctx,
            `SELECT COUNT(*) FROM hotels WHERE id = ?`, *t.HotelID).Scan(&hotelExists); err != nil {
            return err
        }
        if hotelExists == 0 {
            return ErrHotelNotFound
        }
    }

    res, err := tx.ExecContext(ctx,
        `INSERT INTO trips (city_id, hotel_id, name, description, image_url, start_date, end_date, price_cents)
         VALUES (?, ?, ?, ?, ?, ?, ?, ?)`,
        t.CityID, t.HotelID, t.Name, t.Description, t.ImageURL, t.StartDate, t.EndDate, t.PriceCents)
    if err != nil {
        return err
    }
    id, err := res.LastInsertId()
    if err != nil {
        return err
    }
    t.ID = uint64(id)

    for _, aid := range activityIDs {
        if _, err := tx.ExecContext(ctx,
            `INSERT INTO trip_activities (trip_id, activity_id) VALUES (?, ?)`, t.ID, aid); err != nil {
            return err
        }
    }

    if err := tx.QueryRowContext(ctx,
        `SELECT created_at, updated_at FROM trips WHERE id = ?`, t.ID).Scan(&t.CreatedAt, &t.UpdatedAt); err != nil {
        return err
    }
    if err := tx.Commit(); err != nil {
        return err
    }
    committed = true
    return nil
}

// GetByID fetches a trip by its ID, activities included.
func (r *TripRepo) GetByID(ctx context.Context, id uint64) (*model.Trip, error) {
    const q = `SELECT id, city_id, hotel_id, name, description, image_url, start_date, end_date, price_cents, created_at, updated_at
               FROM trips WHERE id = ?`
    var t model.Trip
    if err := r.db.QueryRowContext(ctx, q, id).Scan(
        &t.ID, &t.CityID, &t.HotelID, &t.Name, &t.Description, &t.ImageURL,
        &t.StartDate, &t.EndDate, &t.PriceCents, &t.CreatedAt, &t.UpdatedAt,
    ); err != nil {
        if errors.Is(err, sql.ErrNoRows) {
            return nil, ErrTripNotFound
        }
        return nil, err
    }
    ids, err := r.activityIDs(ctx, t.ID)
    if err != nil {
        return nil, err
    }
    t.ActivityIDs = ids
    return &t, nil
}

// List returns all trips, optionally filtered by city.
func (r *TripRepo) List(ctx context.Context, cityID uint64) ([]*model.Trip, error) {
    q := `SELECT id, city_id, hotel_id, name, description, image_url, start_date, end_date, price_cents, created_at, updated_at
          FROM trips`
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
    out := make([]*model.Trip, 0)
    for rows.Next() {
        t := new(model.Trip)
        if err := rows.Scan(&t.ID, &t.CityID, &t.HotelID, &t.Name, &t.Description, &t.ImageURL,
            &t.StartDate, &t.EndDate, &t.PriceCents, &t.CreatedAt, &t.UpdatedAt); err != nil {
            return nil, err
        }
        out = append(out, t)
    }
    if err := rows.Err(); err != nil {
        return nil, err
    }
    return out, nil
}

// Update rewrites a trip's fields and replaces its activity links.
func (r *TripRepo) Update(ctx context.Context, t *model.Trip, activityIDs []uint64) error {
    tx, err := r.db.BeginTx(ctx, nil)
    if err != nil {
        return err
    }
    committed := false
    defer func() {
        if !committed {
            _ = tx.Rollback()
        }
    }()

    res, err := tx.ExecContext(ctx,
        `UPDATE trips SET city_id = ?, hotel_id = ?, name = ?, description = ?, image_url = ?,
                start_date = ?, end_date = ?, price_cents = ?, updated_at = CURRENT_TIMESTAMP
         WHERE id = ?`,
        t.CityID, t.HotelID, t.Name, t.Description, t.ImageURL,
        t.StartDate, t.EndDate, t.PriceCents, t.ID)
    if err != nil {
        return err
    }
    if n, _ := res.RowsAffected(); n == 0 {
        return ErrTripNotFound
    }

    if _, err := tx.ExecContext(ctx, `DELETE FROM trip_activities WHERE trip_id = ?`, t.ID); err != nil {
        return err
    }
    for _, aid := range activityIDs {
        if _, err := tx.ExecContext(ctx,
            `INSERT INTO trip_activities (trip_id, activity_id) VALUES (?, ?)`, t.ID, aid); err != nil {
            return err
        }
    }

    if err := tx.Commit(); err != nil {
        return err
    }
    committed = true
    return nil
}

// Delete removes a trip unless reservations still reference it.
func (r *TripRepo) Delete(ctx context.Context, id uint64) error {
    var active int
    if err := r.db.QueryRowContext(ctx,
        `SELECT COUNT(*) FROM trip_reservations WHERE trip_id = ? AND status IN ('PENDING','CONFIRMED')`, id).Scan(&active); err != nil {
        return err
    }
    if active > 0 {
        return ErrConflict
    }

    tx, err := r.db.BeginTx(ctx, nil)
    if err != nil {
        return err
    }
    committed := false
    defer func() {
        if !committed {
            _ = tx.Rollback()
        }
    }()

    if _, err := tx.ExecContext(ctx, `DELETE FROM trip_activities WHERE trip_id = ?`, id); err != nil {
        return err
    }
    res, err := tx.ExecContext(ctx, `DELETE FROM trips WHERE id = ?`, id)
    if err != nil {
        return err
    }
    if n, _ := res.RowsAffected(); n == 0 {
        return ErrTripNotFound
    }
    if err := tx.Commit(); err != nil {
        return err
    }
    committed = true
    return nil
}

func (r *TripRepo) activityIDs(ctx context.Context, tripID uint64) ([]uint64, error) {
    rows, err := r.db.QueryContext(ctx,
        `SELECT activity_id FROM trip_activities WHERE trip_id = ? ORDER BY activity_id`, tripID)
    if err != nil {
        return nil, err
    }
    defer rows.Close()
    out := make([]uint64, 0)
    for rows.Next() {
        var id uint64
        if err := rows.Scan(&id); err != nil {
            return nil, err
        }
        out = append(out, id)
    }
    return out, rows.Err()
}
