package repository

import (
    "context"
    "database/sql"
    "errors"
    "fmt"

    "github.com/voyago/travel-reservation/internal/model"
)

// ErrRoomNotFound is returned when a room cannot be found.
var ErrRoomNotFound = errors.New("room not found")

// RoomRepo encapsulates all database queries related to physical rooms.
type RoomRepo struct {
    db *sql.DB
}

// NewRoomRepo constructs a RoomRepo with the provided DB handle.
func NewRoomRepo(db *sql.DB) *RoomRepo { return &RoomRepo{db: db} }

// Create inserts a single room after verifying the room type exists.
func (r *RoomRepo) Create(ctx context.Context, rm *model.Room) error {
    var exists int
    if err := r.db.QueryRowContext(ctx,
        `SELECT COUNT(*) FROM room_types WHERE id = ?`, rm.RoomTypeID).Scan(&exists); err != nil {
        return err
    }
    if exists == 0 {
        return ErrRoomTypeNotFound
    }
    if rm.Status == "" {
        rm.Status = model.RoomAvailable
    }
    res, err := r.db.ExecContext(ctx,
        `INSERT INTO rooms (room_type_id, room_number, status) VALUES (?, ?, ?)`,
        rm.RoomTypeID, rm.RoomNumber, rm.Status)
    if err != nil {
        return err
    }
    id, err := res.LastInsertId()
    if err != nil {
        return err
    }
    rm.ID = uint64(id)
    return r.db.QueryRowContext(ctx,
        `SELECT created_at, updated_at FROM rooms WHERE id = ?`, rm.ID).Scan(&rm.CreatedAt, &rm.UpdatedAt)
}

// BulkAdd creates count rooms under a room type in one transaction,
// numbering them prefix-1 .. prefix-count after the current maximum
// suffix already present.  Returns the created rooms.
func (r *RoomRepo) BulkAdd(ctx context.Context, roomTypeID uint64, prefix string, count int) ([]*model.Room, error) {
    tx, err := r.db.BeginTx(ctx, nil)
    if err != nil {
        return nil, err
    }
    committed := false
    defer func() {
        if !committed {
            _ = tx.Rollback()
        }
    }()

    var exists int
    if err := tx.QueryRowContext(ctx,
        `SELECT COUNT(*) FROM room_types WHERE id = ?`, roomTypeID).Scan(&exists); err != nil {
        return nil, err
    }
    if exists == 0 {
        return nil, ErrRoomTypeNotFound
    }

    var existing int
    if err := tx.QueryRowContext(ctx,
        `SELECT COUNT(*) FROM rooms WHERE room_type_id = ?`, roomTypeID).Scan(&existing); err != nil {
        return nil, err
    }

    out := make([]*model.Room, 0, count)
    for i := 1; i <= count; i++ {
        number := fmt.Sprintf("%s-%d", prefix, existing+i)
        res, err := tx.ExecContext(ctx,
            `INSERT INTO rooms (room_type_id, room_number, status) VALUES (?, ?, 'AVAILABLE')`,
            roomTypeID, number)
        if err != nil {
            return nil, err
        }
        id, err := res.LastInsertId()
        if err != nil {
            return nil, err
        }
        out = append(out, &model.Room{
            ID:         uint64(id),
            RoomTypeID: roomTypeID,
            RoomNumber: number,
            Status:     model.RoomAvailable,
        })
    }

    if err := tx.Commit(); err != nil {
        return nil, err
    }
    committed = true
    return out, nil
}

// BulkRemove deletes up to count rooms of a room type, skipping any
// room that has a PENDING or CONFIRMED reservation.  Returns how many
// rooms were actually removed.
func (r *RoomRepo) BulkRemove(ctx context.Context, roomTypeID uint64, count int) (int, error) {
    const q = `DELETE FROM rooms
               WHERE id IN (
                   SELECT id FROM (
                       SELECT rm.id
                       FROM rooms rm
                       WHERE rm.room_type_id = ?
                         AND NOT EXISTS (
                             SELECT 1 FROM reservations rs
                             WHERE rs.room_id = rm.id
                               AND rs.status IN ('PENDING','CONFIRMED')
                         )
                       ORDER BY rm.id DESC
                       LIMIT ?
                   ) candidates
               )`
    res, err := r.db.ExecContext(ctx, q, roomTypeID, count)
    if err != nil {
        return 0, err
    }
    n, err := res.RowsAffected()
    return int(n), err
}

// GetByID fetches a room by its ID.
func (r *RoomRepo) GetByID(ctx context.Context, id uint64) (*model.Room, error) {
    const q = `SELECT id, room_type_id, room_number, status, created_at, updated_at FROM rooms WHERE id = ?`
    var rm model.Room
    if err := r.db.QueryRowContext(ctx, q, id).Scan(
        &rm.ID, &rm.RoomTypeID, &rm.RoomNumber, &rm.Status, &rm.CreatedAt, &rm.UpdatedAt,
    ); err != nil {
        if errors.Is(err, sql.ErrNoRows) {
            return nil, ErrRoomNotFound
        }
        return nil, err
    }
    return &rm, nil
}

// ListByRoomType returns the rooms of a room type ordered by id.
func (r *RoomRepo) ListByRoomType(ctx context.Context, roomTypeID uint64) ([]*model.Room, error) {
    const q = `SELECT id, room_type_id, room_number, status, created_at, updated_at
               FROM rooms WHERE room_type_id = ? ORDER BY id`
    rows, err := r.db.QueryContext(ctx, q, roomTypeID)
    if err != nil {
        return nil, err
    }
    defer rows.Close()
    out := make([]*model.Room, 0)
    for rows.Next() {
        rm := new(model.Room)
        if err := rows.Scan(&rm.ID, &rm.RoomTypeID, &rm.RoomNumber, &rm.Status, &rm.CreatedAt, &rm.UpdatedAt); err != nil {
            return nil, err
        }
        out = append(out, rm)
    }
    if err := rows.Err(); err != nil {
        return nil, err
    }
    return out, nil
}

// SetStatus sets a room's status flag.  Admin-facing; the booking
// path never consults the flag beyond MAINTENANCE so flipping it
// cannot create double bookings.
func (r *RoomRepo) SetStatus(ctx context.Context, id uint64, status model.RoomStatus) error {
    res, err := r.db.ExecContext(ctx,
        `UPDATE rooms SET status = ?, updated_at = CURRENT_TIMESTAMP WHERE id = ?`, status, id)
    if err != nil {
        return err
    }
    if n, _ := res.RowsAffected(); n == 0 {
        return ErrRoomNotFound
    }
    return nil
}

// Delete removes a room unless it has active reservations.
func (r *RoomRepo) Delete(ctx context.Context, id uint64) error {
    var active int
    if err := r.db.QueryRowContext(ctx,
        `SELECT COUNT(*) FROM reservations WHERE room_id = ? AND status IN ('PENDING','CONFIRMED')`, id).Scan(&active); err != nil {
        return err
    }
    if active > 0 {
        return ErrConflict
    }
    res, err := r.db.ExecContext(ctx, `DELETE FROM rooms WHERE id = ?`, id)
    if err != nil {
        return err
    }
    if n, _ := res.RowsAffected(); n == 0 {
        return ErrRoomNotFound
    }
    return nil
}
