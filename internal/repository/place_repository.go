package repository

// Places belong to cities and may carry category and theme labels via
// the place_categories and place_themes join tables.  Label rewrites
// happen inside a transaction so a place is never observed with half
// its labels missing.

import (
    "context"
    "database/sql"
    "errors"
    "strings"

    "github.com/voyago/travel-reservation/internal/model"
)

// ErrPlaceNotFound is returned when a place cannot be found.
var ErrPlaceNotFound = errors.New("place not found")

// PlaceRepo encapsulates all database queries related to places.
type PlaceRepo struct {
    db *sql.DB
}

// NewPlaceRepo constructs a PlaceRepo with the provided DB handle.
func NewPlaceRepo(db *sql.DB) *PlaceRepo { return &PlaceRepo{db: db} }

// Create inserts a new place and its category/theme links after
// verifying the parent city exists.
func (r *PlaceRepo) Create(ctx context.Context, p *model.Place, categoryIDs, themeIDs []uint64) error {
    var exists int
    if err := r.db.QueryRowContext(ctx,
        `SELECT COUNT(*) FROM cities WHERE id = ?`, p.CityID).Scan(&exists); err != nil {
        return err
    }
    if exists == 0 {
        return ErrCityNotFound
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
    res, err := tx.ExecContext(ctx,
        `INSERT INTO places (city_id, name, description, image_url) VALUES (?, ?, ?, ?)`,
        p.CityID, p.Name, p.Description, p.ImageURL)
    if err != nil {
        return err
    }
    id, err := res.LastInsertId()
    if err != nil {
        return err
    }
    p.ID = uint64(id)
    if err := insertLinks(ctx, tx, "place_categories", "category_id", p.ID, categoryIDs); err != nil {
        return err
    }
    if err := insertLinks(ctx, tx, "place_themes", "theme_id", p.ID, themeIDs); err != nil {
        return err
    }
    if err := tx.QueryRowContext(ctx,
        `SELECT created_at, updated_at FROM places WHERE id = ?`, p.ID).Scan(&p.CreatedAt, &p.UpdatedAt); err != nil {
        return err
    }
    if err := tx.Commit(); err != nil {
        return err
    }
    committed = true
    return nil
}

// GetByID fetches a place by its ID.
func (r *PlaceRepo) GetByID(ctx context.Context, id uint64) (*model.Place, error) {
    const q = `SELECT id, city_id, name, description, image_url, created_at, updated_at
               FROM places WHERE id = ?`
    var p model.Place
    if err := r.db.QueryRowContext(ctx, q, id).Scan(
        &p.ID, &p.CityID, &p.Name, &p.Description, &p.ImageURL, &p.CreatedAt, &p.UpdatedAt,
    ); err != nil {
        if errors.Is(err, sql.ErrNoRows) {
            return nil, ErrPlaceNotFound
        }
        return nil, err
    }
    return &p, nil
}

// List returns places ordered by id, optionally restricted to a city
// and/or a category label.
func (r *PlaceRepo) List(ctx context.Context, cityID, categoryID uint64) ([]*model.Place, error) {
    q := `SELECT p.id, p.city_id, p.name, p.description, p.image_url, p.created_at, p.updated_at
          FROM places p`
    where := []string{}
    args := []any{}
    if categoryID != 0 {
        q += ` JOIN place_categories pc ON pc.place_id = p.id`
        where = append(where, "pc.category_id = ?")
        args = append(args, categoryID)
    }
    if cityID != 0 {
        where = append(where, "p.city_id = ?")
        args = append(args, cityID)
    }
    if len(where) > 0 {
        q += ` WHERE ` + strings.Join(where, " AND ")
    }
    q += ` ORDER BY p.id`
    rows, err := r.db.QueryContext(ctx, q, args...)
    if err != nil {
        return nil, err
    }
    defer rows.Close()
    out := make([]*model.Place, 0)
    for rows.Next() {
        p := new(model.Place)
        if err := rows.Scan(&p.ID, &p.CityID, &p.Name, &p.Description, &p.ImageURL, &p.CreatedAt, &p.UpdatedAt); err != nil {
            return nil, err
        }
        out = append(out, p)
    }
    if err := rows.Err(); err != nil {
        return nil, err
    }
    return out, nil
}

// Labels returns the categories and themes attached to a place.
func (r *PlaceRepo) Labels(ctx context.Context, placeID uint64) ([]*model.Category, []*model.Theme, error) {
    const qCat = `SELECT c.id, c.name, c.created_at
                  FROM categories c
                  JOIN place_categories pc ON pc.category_id = c.id
                  WHERE pc.place_id = ? ORDER BY c.id`
    rows, err := r.db.QueryContext(ctx, qCat, placeID)
    if err != nil {
        return nil, nil, err
    }
    cats := make([]*model.Category, 0)
    for rows.Next() {
        c := new(model.Category)
        if err := rows.Scan(&c.ID, &c.Name, &c.CreatedAt); err != nil {
            rows.Close()
            return nil, nil, err
        }
        cats = append(cats, c)
    }
    if err := rows.Err(); err != nil {
        rows.Close()
        return nil, nil, err
    }
    rows.Close()

    const qTheme = `SELECT t.id, t.name, t.created_at
                    FROM themes t
                    JOIN place_themes pt ON pt.theme_id = t.id
                    WHERE pt.place_id = ? ORDER BY t.id`
    trows, err := r.db.QueryContext(ctx, qTheme, placeID)
    if err != nil {
        return nil, nil, err
    }
    defer trows.Close()
    themes := make([]*model.Theme, 0)
    for trows.Next() {
        t := new(model.Theme)
        if err := trows.Scan(&t.ID, &t.Name, &t.CreatedAt); err != nil {
            return nil, nil, err
        }
        themes = append(themes, t)
    }
    if err := trows.Err(); err != nil {
        return nil, nil, err
    }
    return cats, themes, nil
}

// Update rewrites a place and replaces its label links atomically.
func (r *PlaceRepo) Update(ctx context.Context, p *model.Place, categoryIDs, themeIDs []uint64) error {
    var exists int
    if err := r.db.QueryRowContext(ctx,
        `SELECT COUNT(*) FROM cities WHERE id = ?`, p.CityID).Scan(&exists); err != nil {
        return err
    }
    if exists == 0 {
        return ErrCityNotFound
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
    res, err := tx.ExecContext(ctx,
        `UPDATE places SET city_id = ?, name = ?, description = ?, image_url = ?, updated_at = CURRENT_TIMESTAMP
         WHERE id = ?`,
        p.CityID, p.Name, p.Description, p.ImageURL, p.ID)
    if err != nil {
        return err
    }
    if n, _ := res.RowsAffected(); n == 0 {
        return ErrPlaceNotFound
    }
    if _, err := tx.ExecContext(ctx, `DELETE FROM place_categories WHERE place_id = ?`, p.ID); err != nil {
        return err
    }
    if _, err := tx.ExecContext(ctx, `DELETE FROM place_themes WHERE place_id = ?`, p.ID); err != nil {
        return err
    }
    if err := insertLinks(ctx, tx, "place_categories", "category_id", p.ID, categoryIDs); err != nil {
        return err
    }
    if err := insertLinks(ctx, tx, "place_themes", "theme_id", p.ID, themeIDs); err != nil {
        return err
    }
    if err := tx.Commit(); err != nil {
        return err
    }
    committed = true
    return nil
}

// Delete removes a place unless activities still reference it.  Label
// links are removed alongside.
func (r *PlaceRepo) Delete(ctx context.Context, id uint64) error {
    var children int
    if err := r.db.QueryRowContext(ctx,
        `SELECT COUNT(*) FROM activities WHERE place_id = ?`, id).Scan(&children); err != nil {
        return err
    }
    if children > 0 {
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
    if _, err := tx.ExecContext(ctx, `DELETE FROM place_categories WHERE place_id = ?`, id); err != nil {
        return err
    }
    if _, err := tx.ExecContext(ctx, `DELETE FROM place_themes WHERE place_id = ?`, id); err != nil {
        return err
    }
    res, err := tx.ExecContext(ctx, `DELETE FROM places WHERE id = ?`, id)
    if err != nil {
        return err
    }
    if n, _ := res.RowsAffected(); n == 0 {
        return ErrPlaceNotFound
    }
    if err := tx.Commit(); err != nil {
        return err
    }
    committed = true
    return nil
}

// insertLinks bulk-inserts join-table rows for a place in a single
// statement.  Passing an empty id list has no effect.
func insertLinks(ctx context.Context, tx *sql.Tx, table, column string, placeID uint64, ids []uint64) error {
    if len(ids) == 0 {
        return nil
    }
    query := `INSERT INTO ` + table + ` (place_id, ` + column + `) VALUES `
    args := make([]any, 0, len(ids)*2)
    for i, id := range ids {
        if i > 0 {
            query += ","
        }
        query += "(?, ?)"
        args = append(args, placeID, id)
    }
    _, err := tx.ExecContext(ctx, query, args...)
    return err
}
