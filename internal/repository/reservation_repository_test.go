package repository

import (
    "context"
    "regexp"
    "testing"
    "time"

    "github.com/DATA-DOG/go-sqlmock"
    "github.com/go-sql-driver/mysql"
    "github.com/stretchr/testify/assert"
    "github.com/stretchr/testify/require"
)

func day(s string) time.Time {
    t, err := time.Parse("2006-01-02", s)
    if err != nil {
        panic(err)
    }
    return t
}

func TestFindAvailableRoomTxLocksFreeRoom(t *testing.T) {
    db, mock, err := sqlmock.New()
    require.NoError(t, err)
    defer db.Close()

    mock.ExpectBegin()
    mock.ExpectQuery(regexp.QuoteMeta("FOR UPDATE")).
        WithArgs(uint64(7), day("2026-09-03"), day("2026-09-01")).
        WillReturnRows(sqlmock.NewRows([]string{"id"}).AddRow(42))

    tx, err := db.Begin()
    require.NoError(t, err)

    repo := NewReservationRepo(db)
    roomID, err := repo.FindAvailableRoomTx(context.Background(), tx, 7, day("2026-09-01"), day("2026-09-03"))
    require.NoError(t, err)
    assert.Equal(t, uint64(42), roomID)
    assert.NoError(t, mock.ExpectationsWereMet())
}

func TestFindAvailableRoomTxNoRoomFree(t *testing.T) {
    db, mock, err := sqlmock.New()
    require.NoError(t, err)
    defer db.Close()

    mock.ExpectBegin()
    mock.ExpectQuery("SELECT rm.id").
        WillReturnRows(sqlmock.NewRows([]string{"id"}))

    tx, err := db.Begin()
    require.NoError(t, err)

    repo := NewReservationRepo(db)
    _, err = repo.FindAvailableRoomTx(context.Background(), tx, 7, day("2026-09-01"), day("2026-09-03"))
    assert.ErrorIs(t, err, ErrRoomUnavailable)
}

func TestFindAvailableRoomTxLockContention(t *testing.T) {
    db, mock, err := sqlmock.New()
    require.NoError(t, err)
    defer db.Close()

    mock.ExpectBegin()
    mock.ExpectQuery("SELECT rm.id").
        WillReturnError(&mysql.MySQLError{Number: 1205, Message: "Lock wait timeout exceeded"})

    tx, err := db.Begin()
    require.NoError(t, err)

    repo := NewReservationRepo(db)
    _, err = repo.FindAvailableRoomTx(context.Background(), tx, 7, day("2026-09-01"), day("2026-09-03"))
    assert.ErrorIs(t, err, ErrBusy)
}

func TestFindAvailableRoomTxDeadlock(t *testing.T) {
    db, mock, err := sqlmock.New()
    require.NoError(t, err)
    defer db.Close()

    mock.ExpectBegin()
    mock.ExpectQuery("SELECT rm.id").
        WillReturnError(&mysql.MySQLError{Number: 1213, Message: "Deadlock found when trying to get lock"})

    tx, err := db.Begin()
    require.NoError(t, err)

    repo := NewReservationRepo(db)
    _, err = repo.FindAvailableRoomTx(context.Background(), tx, 7, day("2026-09-01"), day("2026-09-03"))
    assert.ErrorIs(t, err, ErrBusy)
}

func TestCreateTxPopulatesRecord(t *testing.T) {
    db, mock, err := sqlmock.New()
    require.NoError(t, err)
    defer db.Close()

    now := time.Now().UTC().Truncate(time.Second)

    mock.ExpectBegin()
    mock.ExpectExec(regexp.QuoteMeta("INSERT INTO reservations")).
        WithArgs(uint64(5), uint64(42), "PENDING", 2, day("2026-09-01"), day("2026-09-03"), int64(20000)).
        WillReturnResult(sqlmock.NewResult(99, 1))
    mock.ExpectQuery("SELECT id, user_id, room_id").
        WithArgs(uint64(99)).
        WillReturnRows(sqlmock.NewRows([]string{
            "id", "user_id", "room_id", "status", "guests", "start_date", "end_date", "total_price_cents", "created_at", "updated_at",
        }).AddRow(99, 5, 42, "PENDING", 2, day("2026-09-01"), day("2026-09-03"), 20000, now, now))

    tx, err := db.Begin()
    require.NoError(t, err)

    repo := NewReservationRepo(db)
    rec := &ReservationRecord{
        UserID:          5,
        RoomID:          42,
        Status:          "PENDING",
        Guests:          2,
        StartDate:       day("2026-09-01"),
        EndDate:         day("2026-09-03"),
        TotalPriceCents: 20000,
    }
    require.NoError(t, repo.CreateTx(context.Background(), tx, rec))
    assert.Equal(t, uint64(99), rec.ID)
    assert.Equal(t, now, rec.CreatedAt)
    assert.NoError(t, mock.ExpectationsWereMet())
}

func TestGetByIDForUserScopesOwnership(t *testing.T) {
    db, mock, err := sqlmock.New()
    require.NoError(t, err)
    defer db.Close()

    // Another user's reservation must look identical to a missing one.
    mock.ExpectQuery("SELECT r.id").
        WithArgs(uint64(99), uint64(12)).
        WillReturnRows(sqlmock.NewRows([]string{"id"}))

    repo := NewReservationRepo(db)
    _, err = repo.GetByIDForUser(context.Background(), 99, 12)
    assert.ErrorIs(t, err, ErrReservationNotFound)
}

func TestUpdateStatusTxMissingRow(t *testing.T) {
    db, mock, err := sqlmock.New()
    require.NoError(t, err)
    defer db.Close()

    mock.ExpectBegin()
    mock.ExpectExec("UPDATE reservations SET status").
        WillReturnResult(sqlmock.NewResult(0, 0))

    tx, err := db.Begin()
    require.NoError(t, err)

    repo := NewReservationRepo(db)
    err = repo.UpdateStatusTx(context.Background(), tx, 12345, "CANCELLED")
    assert.ErrorIs(t, err, ErrReservationNotFound)
}
