package repository

import (
    "context"
    "testing"

    "github.com/DATA-DOG/go-sqlmock"
    "github.com/go-sql-driver/mysql"
    "github.com/stretchr/testify/assert"
    "github.com/stretchr/testify/require"

    "github.com/voyago/travel-reservation/internal/model"
)

func TestUserCreateDuplicateEmail(t *testing.T) {
    db, mock, err := sqlmock.New()
    require.NoError(t, err)
    defer db.Close()

    mock.ExpectExec("INSERT INTO users").
        WillReturnError(&mysql.MySQLError{Number: 1062, Message: "Duplicate entry 'a@b.c' for key 'users.email'"})

    repo := NewUserRepo(db)
    err = repo.Create(context.Background(), &model.User{
        Email:        "a@b.c",
        PasswordHash: "x",
        Role:         model.RoleUser,
        IsActive:     true,
    })
    assert.ErrorIs(t, err, ErrEmailExists)
}

func TestUserGetByEmailNotFound(t *testing.T) {
    db, mock, err := sqlmock.New()
    require.NoError(t, err)
    defer db.Close()

    mock.ExpectQuery("SELECT id, email").
        WithArgs("nobody@example.com").
        WillReturnRows(sqlmock.NewRows([]string{"id"}))

    repo := NewUserRepo(db)
    _, err = repo.GetByEmail(context.Background(), "nobody@example.com")
    assert.ErrorIs(t, err, ErrUserNotFound)
}
