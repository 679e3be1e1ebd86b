package repository

import (
    "context"
    "database/sql"
    "errors"

    "github.com/go-sql-driver/mysql"

    "github.com/voyago/travel-reservation/internal/model"
)

var (
    // ErrUserNotFound is returned when a user cannot be found.
    ErrUserNotFound = errors.New("user not found")
    // ErrEmailExists is returned when registering an already-used email.
    ErrEmailExists = errors.New("email already registered")
)

// UserRepo encapsulates all database queries related to users.
type UserRepo struct {
    db *sql.DB
}

// NewUserRepo constructs a UserRepo with the provided DB handle.
func NewUserRepo(db *sql.DB) *UserRepo { return &UserRepo{db: db} }

// Create inserts a new user.  The unique index on email turns
// concurrent duplicate registrations into ErrEmailExists.
func (r *UserRepo) Create(ctx context.Context, u *model.User) error {
    res, err := r.db.ExecContext(ctx,
        `INSERT INTO users (email, password_hash, role, is_active) VALUES (?, ?, ?, ?)`,
        u.Email, u.PasswordHash, u.Role, u.IsActive)
    if err != nil {
        var me *mysql.MySQLError
        if errors.As(err, &me) && me.Number == mySQLDuplicateEntry {
            return ErrEmailExists
        }
        return err
    }
    id, err := res.LastInsertId()
    if err != nil {
        return err
    }
    u.ID = uint64(id)
    return r.db.QueryRowContext(ctx,
        `SELECT created_at, updated_at FROM users WHERE id = ?`, u.ID).Scan(&u.CreatedAt, &u.UpdatedAt)
}

// GetByEmail fetches a user by email.
func (r *UserRepo) GetByEmail(ctx context.Context, email string) (*model.User, error) {
    const q = `SELECT id, email, password_hash, role, is_active, created_at, updated_at
               FROM users WHERE email = ?`
    var u model.User
    if err := r.db.QueryRowContext(ctx, q, email).Scan(
        &u.ID, &u.Email, &u.PasswordHash, &u.Role, &u.IsActive, &u.CreatedAt, &u.UpdatedAt,
    ); err != nil {
        if errors.Is(err, sql.ErrNoRows) {
            return nil, ErrUserNotFound
        }
        return nil, err
    }
    return &u, nil
}

// GetByID fetches a user by its ID.
func (r *UserRepo) GetByID(ctx context.Context, id uint64) (*model.User, error) {
    const q = `SELECT id, email, password_hash, role, is_active, created_at, updated_at
               FROM users WHERE id = ?`
    var u model.User
    if err := r.db.QueryRowContext(ctx, q, id).Scan(
        &u.ID, &u.Email, &u.PasswordHash, &u.Role, &u.IsActive, &u.CreatedAt, &u.UpdatedAt,
    ); err != nil {
        if errors.Is(err, sql.ErrNoRows) {
            return nil, ErrUserNotFound
        }
        return nil, err
    }
    return &u, nil
}

// SetActive flips the account active flag.
func (r *UserRepo) SetActive(ctx context.Context, id uint64, active bool) error {
    res, err := r.db.ExecContext(ctx,
        `UPDATE users SET is_active = ?, updated_at = CURRENT_TIMESTAMP WHERE id = ?`, active, id)
    if err != nil {
        return err
    }
    if n, _ := res.RowsAffected(); n == 0 {
        return ErrUserNotFound
    }
    return nil
}
