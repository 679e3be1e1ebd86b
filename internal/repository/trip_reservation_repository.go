package repository

import (
    "context"
    "database/sql"
    "errors"
    "time"

    "github.com/voyago/travel-reservation/internal/model"
)

// ErrTripReservationNotFound is returned when a trip reservation
// cannot be found.
var ErrTripReservationNotFound = errors.New("trip reservation not found")

// TripReservationRepo provides operations for trip reservations.
// Trips model no physical capacity, so booking needs no availability
// check; the transaction only freezes the per-guest price into the
// total and inserts the PENDING row.
type TripReservationRepo struct {
    db *sql.DB
}

// NewTripReservationRepo returns a TripReservationRepo bound to the given database.
func NewTripReservationRepo(db *sql.DB) *TripReservationRepo { return &TripReservationRepo{db: db} }

// DB exposes the underlying handle so handlers can begin booking
// transactions themselves.
func (r *TripReservationRepo) DB() *sql.DB { return r.db }

// TripReservationRecord mirrors the schema of the trip_reservations table.
type TripReservationRecord struct {
    ID              uint64
    UserID          uint64
    TripID          uint64
    Status          string
    Guests          int
    TotalPriceCents int64
    CreatedAt       time.Time
    UpdatedAt       time.Time
}

// TripPriceTx reads the trip's per-guest price inside the booking
// transaction so the frozen total matches the rate at booking time.
// Returns ErrTripNotFound when the trip does not exist.
func (r *TripReservationRepo) TripPriceTx(ctx context.Context, tx *sql.Tx, tripID uint64) (int64, error) {
    var priceCents int64
    err := tx.QueryRowContext(ctx,
        `SELECT price_cents FROM trips WHERE id = ?`, tripID).Scan(&priceCents)
    if err != nil {
        if errors.Is(err, sql.ErrNoRows) {
            return 0, ErrTripNotFound
        }
        return 0, mapLockErr(err)
    }
    return priceCents, nil
}

// CreateTx inserts a new trip reservation within an existing
// transaction and populates the generated ID and timestamps.
func (r *TripReservationRepo) CreateTx(ctx context.Context, tx *sql.Tx, rec *TripReservationRecord) error {
    result, err := tx.ExecContext(ctx,
        `INSERT INTO trip_reservations (user_id, trip_id, status, guests, total_price_cents)
         VALUES (?, ?, ?, ?, ?)`,
        rec.UserID, rec.TripID, rec.Status, rec.Guests, rec.TotalPriceCents)
    if err != nil {
        return mapLockErr(err)
    }
    id, err := result.LastInsertId()
    if err != nil {
        return err
    }
    rec.ID = uint64(id)
    return tx.QueryRowContext(ctx,
        `SELECT created_at, updated_at FROM trip_reservations WHERE id = ?`, rec.ID).Scan(&rec.CreatedAt, &rec.UpdatedAt)
}

// GetForUpdateTx loads a trip reservation row with FOR UPDATE.
func (r *TripReservationRepo) GetForUpdateTx(ctx context.Context, tx *sql.Tx, id uint64) (*TripReservationRecord, error) {
    const q = `SELECT id, user_id, trip_id, status, guests, total_price_cents, created_at, updated_at
               FROM trip_reservations WHERE id = ? FOR UPDATE`
    var rec TripReservationRecord
    err := tx.QueryRowContext(ctx, q, id).Scan(
        &rec.ID, &rec.UserID, &rec.TripID, &rec.Status, &rec.Guests,
        &rec.TotalPriceCents, &rec.CreatedAt, &rec.UpdatedAt,
    )
    if err != nil {
        if errors.Is(err, sql.ErrNoRows) {
            return nil, ErrTripReservationNotFound
        }
        return nil, mapLockErr(err)
    }
    return &rec, nil
}

// UpdateStatusTx writes a new status for a trip reservation.
func (r *TripReservationRepo) UpdateStatusTx(ctx context.Context, tx *sql.Tx, id uint64, status model.ReservationStatus) error {
    res, err := tx.ExecContext(ctx,
        `UPDATE trip_reservations SET status = ?, updated_at = CURRENT_TIMESTAMP WHERE id = ?`,
        status, id)
    if err != nil {
        return mapLockErr(err)
    }
    if n, _ := res.RowsAffected(); n == 0 {
        return ErrTripReservationNotFound
    }
    return nil
}

// TripReservationDetail is a trip reservation joined with its trip
// for display.
type TripReservationDetail struct {
    ID              uint64    `json:"id"`
    Status          string    `json:"status"`
    Guests          int       `json:"guests"`
    TotalPriceCents int64     `json:"total_price_cents"`
    TripID          uint64    `json:"trip_id"`
    TripName        string    `json:"trip_name"`
    StartDate       time.Time `json:"start_date"`
    EndDate         time.Time `json:"end_date"`
    CreatedAt       time.Time `json:"created_at"`
}

const tripDetailSelect = `SELECT tr.id, tr.status, tr.guests, tr.total_price_cents,
                                 t.id, t.name, t.start_date, t.end_date, tr.created_at
                          FROM trip_reservations tr
                          JOIN trips t ON t.id = tr.trip_id`

// GetByIDForUser returns one trip reservation owned by the user.
func (r *TripReservationRepo) GetByIDForUser(ctx context.Context, id, userID uint64) (*TripReservationDetail, error) {
    q := tripDetailSelect + ` WHERE tr.id = ? AND tr.user_id = ?`
    var d TripReservationDetail
    err := r.db.QueryRowContext(ctx, q, id, userID).Scan(
        &d.ID, &d.Status, &d.Guests, &d.TotalPriceCents,
        &d.TripID, &d.TripName, &d.StartDate, &d.EndDate, &d.CreatedAt,
    )
    if err != nil {
        if errors.Is(err, sql.ErrNoRows) {
            return nil, ErrTripReservationNotFound
        }
        return nil, err
    }
    return &d, nil
}

// ListByUser returns all trip reservations for the user, newest first.
func (r *TripReservationRepo) ListByUser(ctx context.Context, userID uint64) ([]TripReservationDetail, error) {
    q := tripDetailSelect + ` WHERE tr.user_id = ? ORDER BY tr.created_at DESC, tr.id DESC`
    rows, err := r.db.QueryContext(ctx, q, userID)
    if err != nil {
        return nil, err
    }
    defer rows.Close()
    out := make([]TripReservationDetail, 0)
    for rows.Next() {
        var d TripReservationDetail
        if err := rows.Scan(&d.ID, &d.Status, &d.Guests, &d.TotalPriceCents,
            &d.TripID, &d.TripName, &d.StartDate, &d.EndDate, &d.CreatedAt); err != nil {
            return nil, err
        }
        out = append(out, d)
    }
    return out, rows.Err()
}

// AdminTripReservationDetail extends TripReservationDetail with the
// booking user for staff listings.
type AdminTripReservationDetail struct {
    TripReservationDetail
    UserID    uint64 `json:"user_id"`
    UserEmail string `json:"user_email"`
}

// ListAll returns every trip reservation with its booking user,
// newest first, optionally filtered by status.
func (r *TripReservationRepo) ListAll(ctx context.Context, status model.ReservationStatus) ([]AdminTripReservationDetail, error) {
    q := `SELECT tr.id, tr.status, tr.guests, tr.total_price_cents,
                 t.id, t.name, t.start_date, t.end_date, tr.created_at,
                 u.id, u.email
          FROM trip_reservations tr
          JOIN trips t ON t.id = tr.trip_id
          JOIN users u ON u.id = tr.user_id`
    args := []any{}
    if status != "" {
        q += ` WHERE tr.status = ?`
        args = append(args, status)
    }
    q += ` ORDER BY tr.created_at DESC, tr.id DESC`
    rows, err := r.db.QueryContext(ctx, q, args...)
    if err != nil {
        return nil, err
    }
    defer rows.Close()
    out := make([]AdminTripReservationDetail, 0)
    for rows.Next() {
        var d AdminTripReservationDetail
        if err := rows.Scan(&d.ID, &d.Status, &d.Guests, &d.TotalPriceCents,
            &d.TripID, &d.TripName, &d.StartDate, &d.EndDate, &d.CreatedAt,
            &d.UserID, &d.UserEmail); err != nil {
            return nil, err
        }
        out = append(out, d)
    }
    return out, rows.Err()
}
