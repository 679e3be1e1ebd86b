package repository

import (
    "context"
    "database/sql"
    "errors"
    "time"
)

// ErrRefreshInvalid is returned when a refresh token hash is unknown,
// revoked or expired.  Callers treat all three identically so a
// revoked token is indistinguishable from a bogus one.
var ErrRefreshInvalid = errors.New("refresh token invalid")

// TokenRepo stores refresh token hashes.  Raw tokens never reach the
// database; the handler hashes before calling in.
type TokenRepo struct {
    db *sql.DB
}

// NewTokenRepo constructs a TokenRepo with the provided DB handle.
func NewTokenRepo(db *sql.DB) *TokenRepo { return &TokenRepo{db: db} }

// StoreRefresh records a refresh token hash for a user session.
func (r *TokenRepo) StoreRefresh(ctx context.Context, userID uint64, tokenHash string, expiresAt time.Time) error {
    const q = `INSERT INTO refresh_tokens (user_id, token_hash, expires_at) VALUES (?, ?, ?)`
    _, err := r.db.ExecContext(ctx, q, userID, tokenHash, expiresAt)
    return err
}

// ValidateRefresh resolves a token hash to its user.  Returns
// ErrRefreshInvalid for unknown, revoked or expired tokens.
func (r *TokenRepo) ValidateRefresh(ctx context.Context, tokenHash string) (uint64, error) {
    const q = `SELECT user_id, expires_at, revoked_at FROM refresh_tokens WHERE token_hash = ? LIMIT 1`
    var (
        userID    uint64
        expiresAt time.Time
        revokedAt sql.NullTime
    )
    err := r.db.QueryRowContext(ctx, q, tokenHash).Scan(&userID, &expiresAt, &revokedAt)
    if err != nil {
        if errors.Is(err, sql.ErrNoRows) {
            return 0, ErrRefreshInvalid
        }
        return 0, err
    }
    if revokedAt.Valid || time.Now().UTC().After(expiresAt) {
        return 0, ErrRefreshInvalid
    }
    return userID, nil
}

// RevokeByHash revokes a single session's refresh token.  Already
// revoked rows are left untouched so the original revocation time
// survives.
func (r *TokenRepo) RevokeByHash(ctx context.Context, tokenHash string) error {
    const q = `UPDATE refresh_tokens SET revoked_at = NOW() WHERE token_hash = ? AND revoked_at IS NULL`
    _, err := r.db.ExecContext(ctx, q, tokenHash)
    return err
}

// RevokeAllForUser revokes every active session of a user.
func (r *TokenRepo) RevokeAllForUser(ctx context.Context, userID uint64) error {
    const q = `UPDATE refresh_tokens SET revoked_at = NOW() WHERE user_id = ? AND revoked_at IS NULL`
    _, err := r.db.ExecContext(ctx, q, userID)
    return err
}
