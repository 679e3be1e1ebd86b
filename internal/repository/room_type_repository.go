package repository

// Room types are the unit of selection when booking: a priced class
// of rooms within a hotel.  Besides CRUD, this repository answers the
// browse-side question "how many rooms of this type are free for a
// date range", a read-only projection of the same overlap predicate
// the booking transaction locks on.

import (
    "context"
    "database/sql"
    "errors"
    "time"

    "github.com/voyago/travel-reservation/internal/model"
)

// ErrRoomTypeNotFound is returned when a room type cannot be found.
var ErrRoomTypeNotFound = errors.New("room type not found")

// RoomTypeRepo encapsulates all database queries related to room types.
type RoomTypeRepo struct {
    db *sql.DB
}

// NewRoomTypeRepo constructs a RoomTypeRepo with the provided DB handle.
func NewRoomTypeRepo(db *sql.DB) *RoomTypeRepo { return &RoomTypeRepo{db: db} }

// Create inserts a new room type after verifying the hotel exists.
func (r *RoomTypeRepo) Create(ctx context.Context, rt *model.RoomType) error {
    var exists int
    if err := r.db.QueryRowContext(ctx,
        `SELECT COUNT(*) FROM hotels WHERE id = ?`, rt.HotelID).Scan(&exists); err != nil {
        return err
    }
    if exists == 0 {
        return ErrHotelNotFound
    }
    res, err := r.db.ExecContext(ctx,
        `INSERT INTO room_types (hotel_id, name, description, max_guests, price_per_night_cents, capacity)
         VALUES (?, ?, ?, ?, ?, ?)`,
        rt.HotelID, rt.Name, rt.Description, rt.MaxGuests, rt.PricePerNightCents, rt.Capacity)
    if err != nil {
        return err
    }
    id, err := res.LastInsertId()
    if err != nil {
        return err
    }
    rt.ID = uint64(id)
    return r.db.QueryRowContext(ctx,
        `SELECT created_at, updated_at FROM room_types WHERE id = ?`, rt.ID).Scan(&rt.CreatedAt, &rt.UpdatedAt)
}

// GetByID fetches a room type by its ID.
func (r *RoomTypeRepo) GetByID(ctx context.Context, id uint64) (*model.RoomType, error) {
    const q = `SELECT id, hotel_id, name, description, max_guests, price_per_night_cents, capacity, created_at, updated_at
               FROM room_types WHERE id = ?`
    var rt model.RoomType
    if err := r.db.QueryRowContext(ctx, q, id).Scan(
        &rt.ID, &rt.HotelID, &rt.Name, &rt.Description, &rt.MaxGuests,
        &rt.PricePerNightCents, &rt.Capacity, &rt.CreatedAt, &rt.UpdatedAt,
    ); err != nil {
        if errors.Is(err, sql.ErrNoRows) {
            return nil, ErrRoomTypeNotFound
        }
        return nil, err
    }
    return &rt, nil
}

// GetByIDTx is GetByID inside an existing transaction.  The booking
// flow uses it so the rate it freezes onto a reservation is read in
// the same transaction that locks the room.
func (r *RoomTypeRepo) GetByIDTx(ctx context.Context, tx *sql.Tx, id uint64) (*model.RoomType, error) {
    const q = `SELECT id, hotel_id, name, description, max_guests, price_per_night_cents, capacity, created_at, updated_at
               FROM room_types WHERE id = ?`
    var rt model.RoomType
    if err := tx.QueryRowContext(ctx, q, id).Scan(
        &rt.ID, &rt.HotelID, &rt.Name, &rt.Description, &rt.MaxGuests,
        &rt.PricePerNightCents, &rt.Capacity, &rt.CreatedAt, &rt.UpdatedAt,
    ); err != nil {
        if errors.Is(err, sql.ErrNoRows) {
            return nil, ErrRoomTypeNotFound
        }
        return nil, err
    }
    return &rt, nil
}

// ListByHotel returns the room types of a hotel ordered by id.
func (r *RoomTypeRepo) ListByHotel(ctx context.Context, hotelID uint64) ([]*model.RoomType, error) {
    const q = `SELECT id, hotel_id, name, description, max_guests, price_per_night_cents, capacity, created_at, updated_at
               FROM room_types WHERE hotel_id = ? ORDER BY id`
    rows, err := r.db.QueryContext(ctx, q, hotelID)
    if err != nil {
        return nil, err
    }
    defer rows.Close()
    out := make([]*model.RoomType, 0)
    for rows.Next() {
        rt := new(model.RoomType)
        if err := rows.Scan(&rt.ID, &rt.HotelID, &rt.Name, &rt.Description, &rt.MaxGuests,
            &rt.PricePerNightCents, &rt.Capacity, &rt.CreatedAt, &rt.UpdatedAt); err != nil {
            return nil, err
        }
        out = append(out, rt)
    }
    if err := rows.Err(); err != nil {
        return nil, err
    }
    return out, nil
}

// AvailableRoomCount returns how many rooms of the type are free for
// the half-open interval [start, end): not in maintenance and with no
// PENDING or CONFIRMED reservation overlapping the range.  This is a
// plain read; only the booking transaction takes locks.
func (r *RoomTypeRepo) AvailableRoomCount(ctx context.Context, roomTypeID uint64, start, end time.Time) (int, error) {
    const q = `SELECT COUNT(*)
               FROM rooms rm
               WHERE rm.room_type_id = ?
                 AND rm.status <> 'MAINTENANCE'
                 AND NOT EXISTS (
                     SELECT 1 FROM reservations rs
                     WHERE rs.room_id = rm.id
                       AND rs.status IN ('PENDING','CONFIRMED')
                       AND rs.start_date < ?
                       AND rs.end_date > ?
                 )`
    var n int
    if err := r.db.QueryRowContext(ctx, q, roomTypeID, end, start).Scan(&n); err != nil {
        return 0, err
    }
    return n, nil
}

// Update rewrites the mutable fields of a room type.
func (r *RoomTypeRepo) Update(ctx context.Context, rt *model.RoomType) error {
    const q = `UPDATE room_types
               SET name = ?, description = ?, max_guests = ?, price_per_night_cents = ?, capacity = ?, updated_at = CURRENT_TIMESTAMP
               WHERE id = ?`
    res, err := r.db.ExecContext(ctx, q, rt.Name, rt.Description, rt.MaxGuests, rt.PricePerNightCents, rt.Capacity, rt.ID)
    if err != nil {
        return err
    }
    if n, _ := res.RowsAffected(); n == 0 {
        return ErrRoomTypeNotFound
    }
    return nil
}

// Delete removes a room type unless rooms still exist under it.
func (r *RoomTypeRepo) Delete(ctx context.Context, id uint64) error {
    var children int
    if err := r.db.QueryRowContext(ctx,
        `SELECT COUNT(*) FROM rooms WHERE room_type_id = ?`, id).Scan(&children); err != nil {
        return err
    }
    if children > 0 {
        return ErrConflict
    }
    res, err := r.db.ExecContext(ctx, `DELETE FROM room_types WHERE id = ?`, id)
    if err != nil {
        return err
    }
    if n, _ := res.RowsAffected(); n == 0 {
        return ErrRoomTypeNotFound
    }
    return nil
}
