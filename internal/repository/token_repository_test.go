package repository

import (
    "context"
    "testing"
    "time"

    "github.com/DATA-DOG/go-sqlmock"
    "github.com/stretchr/testify/require"
)

func TestValidateRefreshAcceptsLiveToken(t *testing.T) {
    db, mock, err := sqlmock.New()
    require.NoError(t, err)
    defer db.Close()

    mock.ExpectQuery("FROM refresh_tokens WHERE token_hash").
        WithArgs("hash-a").
        WillReturnRows(sqlmock.NewRows([]string{"user_id", "expires_at", "revoked_at"}).
            AddRow(uint64(7), time.Now().Add(time.Hour), nil))

    repo := NewTokenRepo(db)
    userID, err := repo.ValidateRefresh(context.Background(), "hash-a")
    require.NoError(t, err)
    require.Equal(t, uint64(7), userID)
    require.NoError(t, mock.ExpectationsWereMet())
}

func TestValidateRefreshRejectsRevokedAndExpired(t *testing.T) {
    db, mock, err := sqlmock.New()
    require.NoError(t, err)
    defer db.Close()

    mock.ExpectQuery("FROM refresh_tokens WHERE token_hash").
        WithArgs("revoked").
        WillReturnRows(sqlmock.NewRows([]string{"user_id", "expires_at", "revoked_at"}).
            AddRow(uint64(7), time.Now().Add(time.Hour), time.Now()))
    mock.ExpectQuery("FROM refresh_tokens WHERE token_hash").
        WithArgs("expired").
        WillReturnRows(sqlmock.NewRows([]string{"user_id", "expires_at", "revoked_at"}).
            AddRow(uint64(7), time.Now().Add(-time.Minute), nil))
    mock.ExpectQuery("FROM refresh_tokens WHERE token_hash").
        WithArgs("unknown").
        WillReturnRows(sqlmock.NewRows([]string{"user_id", "expires_at", "revoked_at"}))

    repo := NewTokenRepo(db)
    for _, hash := range []string{"revoked", "expired", "unknown"} {
        _, err := repo.ValidateRefresh(context.Background(), hash)
        require.ErrorIs(t, err, ErrRefreshInvalid, hash)
    }
    require.NoError(t, mock.ExpectationsWereMet())
}
