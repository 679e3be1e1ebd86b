package repository

import (
    "context"
    "database/sql"
    "errors"
    "time"

    "github.com/voyago/travel-reservation/internal/model"
)

// ErrReservationNotFound is returned when a reservation cannot be found.
var ErrReservationNotFound = errors.New("reservation not found")

// ReservationRepo provides operations for hotel room reservations.
// Booking runs inside a caller-owned transaction: the handler begins
// the transaction, the repository locks a candidate room, reads the
// rate, inserts the reservation and flips the room's ledger flag, and
// the handler commits.  All timestamp fields are assumed to be stored
// in UTC.
type ReservationRepo struct {
    db *sql.DB
}

// NewReservationRepo returns a new ReservationRepo bound to the given database.
func NewReservationRepo(db *sql.DB) *ReservationRepo { return &ReservationRepo{db: db} }

// DB exposes the underlying handle so handlers can begin booking
// transactions themselves.
func (r *ReservationRepo) DB() *sql.DB { return r.db }

// ReservationRecord mirrors the schema of the reservations table.  It
// is used internally by the repository when constructing or scanning
// rows.  Business logic should use the model.Reservation type instead.
type ReservationRecord struct {
    ID              uint64
    UserID          uint64
    RoomID          uint64
    Status          string
    Guests          int
    StartDate       time.Time
    EndDate         time.Time
    TotalPriceCents int64
    CreatedAt       time.Time
    UpdatedAt       time.Time
}

// FindAvailableRoomTx locks and returns the ID of one room of the
// requested type that is free for the half-open interval [start, end).
// Candidate rows are locked with FOR UPDATE so that two concurrent
// bookings for the last free room serialize: the second transaction
// blocks until the first commits and then sees its reservation via
// the NOT EXISTS subquery.  Returns ErrRoomUnavailable when every
// room of the type is taken or under maintenance, and ErrBusy when
// the lock could not be acquired in time.
func (r *ReservationRepo) FindAvailableRoomTx(ctx context.Context, tx *sql.Tx, roomTypeID uint64, start, end time.Time) (uint64, error) {
    const q = `SELECT rm.id
               FROM rooms rm
               WHERE rm.room_type_id = ?
                 AND rm.status <> 'MAINTENANCE'
                 AND NOT EXISTS (
                     SELECT 1 FROM reservations rs
                     WHERE rs.room_id = rm.id
                       AND rs.status IN ('PENDING','CONFIRMED')
                       AND rs.start_date < ?
                       AND rs.end_date > ?
                 )
               ORDER BY rm.id
               LIMIT 1
               FOR UPDATE`
    var roomID uint64
    err := tx.QueryRowContext(ctx, q, roomTypeID, end, start).Scan(&roomID)
    if err != nil {
        if errors.Is(err, sql.ErrNoRows) {
            return 0, ErrRoomUnavailable
        }
        return 0, mapLockErr(err)
    }
    return roomID, nil
}

// CreateTx inserts a new reservation within the scope of an existing
// transaction.  It populates the generated ID and timestamps on the
// provided record.  The caller must commit or rollback the
// transaction.  Status should be a valid enumeration
// ('PENDING','CONFIRMED','CANCELLED').
func (r *ReservationRepo) CreateTx(ctx context.Context, tx *sql.Tx, res *ReservationRecord) error {
    const q = `INSERT INTO reservations (user_id, room_id, status, guests, start_date, end_date, total_price_cents)
               VALUES (?, ?, ?, ?, ?, ?, ?)`
    result, err := tx.ExecContext(ctx, q,
        res.UserID, res.RoomID, res.Status, res.Guests, res.StartDate, res.EndDate, res.TotalPriceCents)
    if err != nil {
        return mapLockErr(err)
    }
    id, err := result.LastInsertId()
    if err != nil {
        return err
    }
    res.ID = uint64(id)
    // Query back the full row to populate timestamps and defaults
    const sel = `SELECT id, user_id, room_id, status, guests, start_date, end_date, total_price_cents, created_at, updated_at
                 FROM reservations WHERE id = ?`
    return tx.QueryRowContext(ctx, sel, res.ID).Scan(
        &res.ID, &res.UserID, &res.RoomID, &res.Status, &res.Guests,
        &res.StartDate, &res.EndDate, &res.TotalPriceCents, &res.CreatedAt, &res.UpdatedAt,
    )
}

// GetForUpdateTx loads a reservation row with FOR UPDATE so a status
// change sees a stable current status.  Returns ErrReservationNotFound
// when the row does not exist.
func (r *ReservationRepo) GetForUpdateTx(ctx context.Context, tx *sql.Tx, reservationID uint64) (*ReservationRecord, error) {
    const q = `SELECT id, user_id, room_id, status, guests, start_date, end_date, total_price_cents, created_at, updated_at
               FROM reservations WHERE id = ? FOR UPDATE`
    var rec ReservationRecord
    err := tx.QueryRowContext(ctx, q, reservationID).Scan(
        &rec.ID, &rec.UserID, &rec.RoomID, &rec.Status, &rec.Guests,
        &rec.StartDate, &rec.EndDate, &rec.TotalPriceCents, &rec.CreatedAt, &rec.UpdatedAt,
    )
    if err != nil {
        if errors.Is(err, sql.ErrNoRows) {
            return nil, ErrReservationNotFound
        }
        return nil, mapLockErr(err)
    }
    return &rec, nil
}

// UpdateStatusTx writes a new status for a reservation.  Legality of
// the transition is the caller's responsibility (model.CanDecide).
func (r *ReservationRepo) UpdateStatusTx(ctx context.Context, tx *sql.Tx, reservationID uint64, status model.ReservationStatus) error {
    res, err := tx.ExecContext(ctx,
        `UPDATE reservations SET status = ?, updated_at = CURRENT_TIMESTAMP WHERE id = ?`,
        status, reservationID)
    if err != nil {
        return mapLockErr(err)
    }
    if n, _ := res.RowsAffected(); n == 0 {
        return ErrReservationNotFound
    }
    return nil
}

// SetRoomBookedTx flips the room ledger flag to BOOKED.  The flag is
// informational; availability is decided by the overlap query, never
// by this column.
func (r *ReservationRepo) SetRoomBookedTx(ctx context.Context, tx *sql.Tx, roomID uint64) error {
    _, err := tx.ExecContext(ctx,
        `UPDATE rooms SET status = 'BOOKED', updated_at = CURRENT_TIMESTAMP WHERE id = ? AND status = 'AVAILABLE'`,
        roomID)
    return mapLockErr(err)
}

// ReleaseRoomTx recomputes the room ledger flag after a cancellation.
// The room returns to AVAILABLE only when no other active reservation
// still holds it; maintenance rooms are left alone.
func (r *ReservationRepo) ReleaseRoomTx(ctx context.Context, tx *sql.Tx, roomID uint64) error {
    const q = `UPDATE rooms
               SET status = 'AVAILABLE', updated_at = CURRENT_TIMESTAMP
               WHERE id = ?
                 AND status = 'BOOKED'
                 AND NOT EXISTS (
                     SELECT 1 FROM reservations rs
                     WHERE rs.room_id = ? AND rs.status IN ('PENDING','CONFIRMED')
                 )`
    _, err := tx.ExecContext(ctx, q, roomID, roomID)
    return mapLockErr(err)
}

// ReservationDetail encapsulates a reservation along with room, room
// type and hotel information for display to customers.
type ReservationDetail struct {
    ID              uint64    `json:"id"`
    Status          string    `json:"status"`
    Guests          int       `json:"guests"`
    StartDate       time.Time `json:"start_date"`
    EndDate         time.Time `json:"end_date"`
    TotalPriceCents int64     `json:"total_price_cents"`
    RoomID          uint64    `json:"room_id"`
    RoomNumber      string    `json:"room_number"`
    RoomTypeID      uint64    `json:"room_type_id"`
    RoomTypeName    string    `json:"room_type_name"`
    HotelID         uint64    `json:"hotel_id"`
    HotelName       string    `json:"hotel_name"`
    CreatedAt       time.Time `json:"created_at"`
}

// AdminReservationDetail extends ReservationDetail with the booking
// user for staff-facing listings.
type AdminReservationDetail struct {
    ReservationDetail
    UserID    uint64 `json:"user_id"`
    UserEmail string `json:"user_email"`
}

const detailSelect = `SELECT r.id, r.status, r.guests, r.start_date, r.end_date, r.total_price_cents,
                             rm.id, rm.room_number, rt.id, rt.name, h.id, h.name, r.created_at
                      FROM reservations r
                      JOIN rooms rm ON rm.id = r.room_id
                      JOIN room_types rt ON rt.id = rm.room_type_id
                      JOIN hotels h ON h.id = rt.hotel_id`

func scanDetail(row interface{ Scan(...any) error }, d *ReservationDetail) error {
    return row.Scan(
        &d.ID, &d.Status, &d.Guests, &d.StartDate, &d.EndDate, &d.TotalPriceCents,
        &d.RoomID, &d.RoomNumber, &d.RoomTypeID, &d.RoomTypeName, &d.HotelID, &d.HotelName, &d.CreatedAt,
    )
}

// GetByIDForUser returns a single reservation for the given user.
// Restricting on user_id enforces ownership: someone else's
// reservation reads the same as a missing one.
func (r *ReservationRepo) GetByIDForUser(ctx context.Context, reservationID, userID uint64) (*ReservationDetail, error) {
    q := detailSelect + ` WHERE r.id = ? AND r.user_id = ?`
    var d ReservationDetail
    if err := scanDetail(r.db.QueryRowContext(ctx, q, reservationID, userID), &d); err != nil {
        if errors.Is(err, sql.ErrNoRows) {
            return nil, ErrReservationNotFound
        }
        return nil, err
    }
    return &d, nil
}

// ListByUser returns all reservations for the given user, newest
// first.  When no reservations exist an empty slice is returned.
func (r *ReservationRepo) ListByUser(ctx context.Context, userID uint64) ([]ReservationDetail, error) {
    q := detailSelect + ` WHERE r.user_id = ? ORDER BY r.created_at DESC, r.id DESC`
    rows, err := r.db.QueryContext(ctx, q, userID)
    if err != nil {
        return nil, err
    }
    defer rows.Close()
    out := make([]ReservationDetail, 0)
    for rows.Next() {
        var d ReservationDetail
        if err := scanDetail(rows, &d); err != nil {
            return nil, err
        }
        out = append(out, d)
    }
    return out, rows.Err()
}

// ListAll returns every reservation with its booking user, newest
// first, optionally filtered by status.  Used by staff listings.
func (r *ReservationRepo) ListAll(ctx context.Context, status model.ReservationStatus) ([]AdminReservationDetail, error) {
    q := `SELECT r.id, r.status, r.guests, r.start_date, r.end_date, r.total_price_cents,
                 rm.id, rm.room_number, rt.id, rt.name, h.id, h.name, r.created_at,
                 u.id, u.email
          FROM reservations r
          JOIN rooms rm ON rm.id = r.room_id
          JOIN room_types rt ON rt.id = rm.room_type_id
          JOIN hotels h ON h.id = rt.hotel_id
          JOIN users u ON u.id = r.user_id`
    args := []any{}
    if status != "" {
        q += ` WHERE r.status = ?`
        args = append(args, status)
    }
    q += ` ORDER BY r.created_at DESC, r.id DESC`
    rows, err := r.db.QueryContext(ctx, q, args...)
    if err != nil {
        return nil, err
    }
    defer rows.Close()
    out := make([]AdminReservationDetail, 0)
    for rows.Next() {
        var d AdminReservationDetail
        if err := rows.Scan(
            &d.ID, &d.Status, &d.Guests, &d.StartDate, &d.EndDate, &d.TotalPriceCents,
            &d.RoomID, &d.RoomNumber, &d.RoomTypeID, &d.RoomTypeName, &d.HotelID, &d.HotelName, &d.CreatedAt,
            &d.UserID, &d.UserEmail,
        ); err != nil {
            return nil, err
        }
        out = append(out, d)
    }
    return out, rows.Err()
}
