package handler

import (
    "net/http"
    "net/http/httptest"
    "strings"
    "testing"
    "time"

    "github.com/DATA-DOG/go-sqlmock"
    "github.com/labstack/echo/v4"
    "github.com/stretchr/testify/require"

    "github.com/voyago/travel-reservation/internal/repository"
)

func reservationCtx(t *testing.T, body string, userID string) (echo.Context, *httptest.ResponseRecorder) {
    t.Helper()
    e := echo.New()
    req := httptest.NewRequest(http.MethodPost, "/v1/reservations", strings.NewReader(body))
    req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
    rec := httptest.NewRecorder()
    c := e.NewContext(req, rec)
    if userID != "" {
        c.Set("user_id", userID)
    }
    return c, rec
}

func TestParseStayRange(t *testing.T) {
    tomorrow := time.Now().UTC().AddDate(0, 0, 1).Format(dateLayout)
    nextWeek := time.Now().UTC().AddDate(0, 0, 7).Format(dateLayout)

    cases := []struct {
        name  string
        start string
        end   string
        ok    bool
    }{
        {"valid future stay", tomorrow, nextWeek, true},
        {"end before start", nextWeek, tomorrow, false},
        {"zero nights", tomorrow, tomorrow, false},
        {"start in the past", "2020-01-01", nextWeek, false},
        {"malformed start", "not-a-date", nextWeek, false},
        {"malformed end", tomorrow, "2026-13-99", false},
    }
    for _, tc := range cases {
        t.Run(tc.name, func(t *testing.T) {
            _, _, ok := parseStayRange(tc.start, tc.end)
            require.Equal(t, tc.ok, ok)
        })
    }
}

func TestCreateReservationRequiresIdentity(t *testing.T) {
    h := &ReservationHandler{}
    c, rec := reservationCtx(t, `{}`, "")

    require.NoError(t, h.Create(c))
    require.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestCreateReservationRejectsInvalidBody(t *testing.T) {
    h := &ReservationHandler{}
    c, rec := reservationCtx(t, `{"room_type_id": 1, "guests": 0}`, "42")

    require.NoError(t, h.Create(c))
    require.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestCreateReservationRejectsBadDateRange(t *testing.T) {
    h := &ReservationHandler{}
    body := `{"room_type_id": 1, "guests": 2, "start_date": "2030-05-10", "end_date": "2030-05-01"}`
    c, rec := reservationCtx(t, body, "42")

    require.NoError(t, h.Create(c))
    require.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestCancelMineForbiddenForOtherUser(t *testing.T) {
    db, mock, err := sqlmock.New()
    require.NoError(t, err)
    defer db.Close()

    now := time.Now()
    mock.ExpectBegin()
    mock.ExpectQuery("FROM reservations").
        WithArgs(uint64(9)).
        WillReturnRows(sqlmock.NewRows([]string{
            "id", "user_id", "room_id", "status", "guests",
            "start_date", "end_date", "total_price_cents", "created_at", "updated_at",
        }).AddRow(uint64(9), uint64(77), uint64(3), "PENDING", 2, now, now.AddDate(0, 0, 2), int64(20000), now, now))
    mock.ExpectRollback()

    e := echo.New()
    req := httptest.NewRequest(http.MethodDelete, "/v1/reservations/me/9", nil)
    rec := httptest.NewRecorder()
    c := e.NewContext(req, rec)
    c.SetParamNames("id")
    c.SetParamValues("9")
    c.Set("user_id", "42")

    h := &ReservationHandler{Reservations: repository.NewReservationRepo(db)}
    require.NoError(t, h.CancelMine(c))
    require.Equal(t, http.StatusForbidden, rec.Code)
    require.NoError(t, mock.ExpectationsWereMet())
}

func TestCreateTripFreezesPriceWithoutAvailabilityCheck(t *testing.T) {
    db, mock, err := sqlmock.New()
    require.NoError(t, err)
    defer db.Close()

    now := time.Now()
    mock.ExpectBegin()
    // Trips model no capacity: the only read is the per-guest rate.
    mock.ExpectQuery("SELECT price_cents FROM trips").
        WithArgs(uint64(5)).
        WillReturnRows(sqlmock.NewRows([]string{"price_cents"}).AddRow(int64(150000)))
    mock.ExpectExec("INSERT INTO trip_reservations").
        WithArgs(uint64(42), uint64(5), "PENDING", 3, int64(450000)).
        WillReturnResult(sqlmock.NewResult(11, 1))
    mock.ExpectQuery("FROM trip_reservations WHERE id").
        WithArgs(uint64(11)).
        WillReturnRows(sqlmock.NewRows([]string{"created_at", "updated_at"}).AddRow(now, now))
    mock.ExpectCommit()

    c, rec := reservationCtx(t, `{"trip_id": 5, "guests": 3}`, "42")
    h := &ReservationHandler{TripReservations: repository.NewTripReservationRepo(db)}

    require.NoError(t, h.CreateTrip(c))
    require.Equal(t, http.StatusCreated, rec.Code)
    require.NoError(t, mock.ExpectationsWereMet())
}

func TestCancelMineCancelsAndReleasesRoom(t *testing.T) {
    db, mock, err := sqlmock.New()
    require.NoError(t, err)
    defer db.Close()

    now := time.Now()
    mock.ExpectBegin()
    mock.ExpectQuery("FROM reservations").
        WithArgs(uint64(9)).
        WillReturnRows(sqlmock.NewRows([]string{
            "id", "user_id", "room_id", "status", "guests",
            "start_date", "end_date", "total_price_cents", "created_at", "updated_at",
        }).AddRow(uint64(9), uint64(42), uint64(3), "PENDING", 2, now, now.AddDate(0, 0, 2), int64(20000), now, now))
    mock.ExpectExec("UPDATE reservations SET status").
        WithArgs("CANCELLED", uint64(9)).
        WillReturnResult(sqlmock.NewResult(0, 1))
    // Room returns to AVAILABLE once no active reservation holds it.
    mock.ExpectExec("UPDATE rooms").
        WithArgs(uint64(3), uint64(3)).
        WillReturnResult(sqlmock.NewResult(0, 1))
    mock.ExpectCommit()

    e := echo.New()
    req := httptest.NewRequest(http.MethodDelete, "/v1/reservations/me/9", nil)
    rec := httptest.NewRecorder()
    c := e.NewContext(req, rec)
    c.SetParamNames("id")
    c.SetParamValues("9")
    c.Set("user_id", "42")

    h := &ReservationHandler{Reservations: repository.NewReservationRepo(db)}
    require.NoError(t, h.CancelMine(c))
    require.Equal(t, http.StatusOK, rec.Code)
    require.NoError(t, mock.ExpectationsWereMet())
}

func TestParseDecisionRejectsPending(t *testing.T) {
    _, ok := parseDecision("PENDING")
    require.False(t, ok)

    status, ok := parseDecision("confirmed")
    require.True(t, ok)
    require.Equal(t, "CONFIRMED", string(status))

    _, ok = parseDecision("garbage")
    require.False(t, ok)
}
