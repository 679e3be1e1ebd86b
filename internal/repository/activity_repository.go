package repository

import (
    "context"
    "database/sql"
    "errors"

    "github.com/voyago/travel-reservation/internal/model"
)

// ErrActivityNotFound is returned when an activity cannot be found.
var ErrActivityNotFound = errors.New("activity not found")

// ActivityRepo encapsulates all database queries related to
// activities, the leaves of the catalog hierarchy.
type ActivityRepo struct {
    db *sql.DB
}

// NewActivityRepo constructs an ActivityRepo with the provided DB handle.
func NewActivityRepo(db *sql.DB) *ActivityRepo { return &ActivityRepo{db: db} }

// Create inserts a new activity after verifying the parent place exists.
func (r *ActivityRepo) Create(ctx context.Context, a *model.Activity) error {
    var exists int
    if err := r.db.QueryRowContext(ctx,
        `SELECT COUNT(*) FROM places WHERE id = ?`, a.PlaceID).Scan(&exists); err != nil {
        return err
    }
    if exists == 0 {
        return ErrPlaceNotFound
    }
    res, err := r.db.ExecContext(ctx,
        `INSERT INTO activities (place_id, name, description, image_url) VALUES (?, ?, ?, ?)`,
        a.PlaceID, a.Name, a.Description, a.ImageURL)
    if err != nil {
        return err
    }
    id, err := res.LastInsertId()
    if err != nil {
        return err
    }
    a.ID = uint64(id)
    return r.db.QueryRowContext(ctx,
        `SELECT created_at, updated_at FROM activities WHERE id = ?`, a.ID).Scan(&a.CreatedAt, &a.UpdatedAt)
}

// GetByID fetches an activity by its ID.
func (r *ActivityRepo) GetByID(ctx context.Context, id uint64) (*model.Activity, error) {
    const q = `SELECT id, place_id, name, description, image_url, created_at, updated_at
               FROM activities WHERE id = ?`
    var a model.Activity
    if err := r.db.QueryRowContext(ctx, q, id).Scan(
        &a.ID, &a.PlaceID, &a.Name, &a.Description, &a.ImageURL, &a.CreatedAt, &a.UpdatedAt,
    ); err != nil {
        if errors.Is(err, sql.ErrNoRows) {
            return nil, ErrActivityNotFound
        }
        return nil, err
    }
    return &a, nil
}

// List returns activities ordered by id, optionally restricted to a place.
func (r *ActivityRepo) List(ctx context.Context, placeID uint64) ([]*model.Activity, error) {
    q := `SELECT id, place_id, name, description, image_url, created_at, updated_at FROM activities`
    args := []any{}
    if placeID != 0 {
        q += ` WHERE place_id = ?`
        args = append(args, placeID)
    }
    q += ` ORDER BY id`
    rows, err := r.db.QueryContext(ctx, q, args...)
    if err != nil {
        return nil, err
    }
    defer rows.Close()
    out := make([]*model.Activity, 0)
    for rows.Next() {
        a := new(model.Activity)
        if err := rows.Scan(&a.ID, &a.PlaceID, &a.Name, &a.Description, &a.ImageURL, &a.CreatedAt, &a.UpdatedAt); err != nil {
            return nil, err
        }
        out = append(out, a)
    }
    if err := rows.Err(); err != nil {
        return nil, err
    }
    return out, nil
}

// Update rewrites the mutable fields of an activity, re-validating
// the parent place.
func (r *ActivityRepo) Update(ctx context.Context, a *model.Activity) error {
    var exists int
    if err := r.db.QueryRowContext(ctx,
        `SELECT COUNT(*) FROM places WHERE id = ?`, a.PlaceID).Scan(&exists); err != nil {
        return err
    }
    if exists == 0 {
        return ErrPlaceNotFound
    }
    const q = `UPDATE activities
               SET place_id = ?, name = ?, description = ?, image_url = ?, updated_at = CURRENT_TIMESTAMP
               WHERE id = ?`
    res, err := r.db.ExecContext(ctx, q, a.PlaceID, a.Name, a.Description, a.ImageURL, a.ID)
    if err != nil {
        return err
    }
    if n, _ := res.RowsAffected(); n == 0 {
        return ErrActivityNotFound
    }
    return nil
}

// Delete removes an activity.  Trip links to the activity are removed
// alongside; the trips themselves survive.
func (r *ActivityRepo) Delete(ctx context.Context, id uint64) error {
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
    if _, err := tx.ExecContext(ctx, `DELETE FROM trip_activities WHERE activity_id = ?`, id); err != nil {
        return err
    }
    res, err := tx.ExecContext(ctx, `DELETE FROM activities WHERE id = ?`, id)
    if err != nil {
        return err
    }
    if n, _ := res.RowsAffected(); n == 0 {
        return ErrActivityNotFound
    }
    if err := tx.Commit(); err != nil {
        return err
    }
    committed = true
    return nil
}
