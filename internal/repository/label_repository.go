package repository

// Categories and themes are flat labels attached to places.  The two
// tables are structurally identical, so one repository serves both
// with the table name fixed at construction time.

import (
    "context"
    "database/sql"
    "errors"
    "strings"

    "github.com/go-sql-driver/mysql"

    "github.com/voyago/travel-reservation/internal/model"
)

// ErrLabelNotFound is returned when a category or theme cannot be found.
var ErrLabelNotFound = errors.New("label not found")

// ErrLabelExists is returned when a label with the same name already
// exists (names are unique per table).
var ErrLabelExists = errors.New("label already exists")

// LabelRepo serves either the categories or the themes table.
type LabelRepo struct {
    db        *sql.DB
    table     string // "categories" or "themes"
    joinTable string // "place_categories" or "place_themes"
    joinCol   string // "category_id" or "theme_id"
}

// NewCategoryRepo constructs a LabelRepo over the categories table.
func NewCategoryRepo(db *sql.DB) *LabelRepo {
    return &LabelRepo{db: db, table: "categories", joinTable: "place_categories", joinCol: "category_id"}
}

// NewThemeRepo constructs a LabelRepo over the themes table.
func NewThemeRepo(db *sql.DB) *LabelRepo {
    return &LabelRepo{db: db, table: "themes", joinTable: "place_themes", joinCol: "theme_id"}
}

// Create inserts a new label and returns its ID.
func (r *LabelRepo) Create(ctx context.Context, name string) (uint64, error) {
    res, err := r.db.ExecContext(ctx,
        `INSERT INTO `+r.table+` (name) VALUES (?)`, strings.TrimSpace(name))
    if err != nil {
        var me *mysql.MySQLError
        if errors.As(err, &me) && me.Number == mySQLDuplicateEntry {
            return 0, ErrLabelExists
        }
        return 0, err
    }
    id, err := res.LastInsertId()
    if err != nil {
        return 0, err
    }
    return uint64(id), nil
}

// ListAll returns every label ordered by id.  The result is reported
// as Category values for both tables; handlers rename the field for
// themes.
func (r *LabelRepo) ListAll(ctx context.Context) ([]*model.Category, error) {
    rows, err := r.db.QueryContext(ctx,
        `SELECT id, name, created_at FROM `+r.table+` ORDER BY id`)
    if err != nil {
        return nil, err
    }
    defer rows.Close()
    out := make([]*model.Category, 0)
    for rows.Next() {
        c := new(model.Category)
        if err := rows.Scan(&c.ID, &c.Name, &c.CreatedAt); err != nil {
            return nil, err
        }
        out = append(out, c)
    }
    if err := rows.Err(); err != nil {
        return nil, err
    }
    return out, nil
}

// Exists reports whether a label id is present.
func (r *LabelRepo) Exists(ctx context.Context, id uint64) (bool, error) {
    var n int
    if err := r.db.QueryRowContext(ctx,
        `SELECT COUNT(*) FROM `+r.table+` WHERE id = ?`, id).Scan(&n); err != nil {
        return false, err
    }
    return n > 0, nil
}

// Delete removes a label and its place links.
func (r *LabelRepo) Delete(ctx context.Context, id uint64) error {
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
    if _, err := tx.ExecContext(ctx,
        `DELETE FROM `+r.joinTable+` WHERE `+r.joinCol+` = ?`, id); err != nil {
        return err
    }
    res, err := tx.ExecContext(ctx, `DELETE FROM `+r.table+` WHERE id = ?`, id)
    if err != nil {
        return err
    }
    if n, _ := res.RowsAffected(); n == 0 {
        return ErrLabelNotFound
    }
    if err := tx.Commit(); err != nil {
        return err
    }
    committed = true
    return nil
}
