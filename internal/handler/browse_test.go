package handler

import (
    "database/sql"
    "encoding/json"
    "net/http"
    "net/http/httptest"
    "testing"
    "time"

    "github.com/DATA-DOG/go-sqlmock"
    "github.com/labstack/echo/v4"
    "github.com/stretchr/testify/require"

    "github.com/voyago/travel-reservation/internal/repository"
)

// browseCtx builds an Echo context for a GET request against the
// browse surface.
func browseCtx(t *testing.T, target string) (echo.Context, *httptest.ResponseRecorder) {
    t.Helper()
    e := echo.New()
    req := httptest.NewRequest(http.MethodGet, target, nil)
    rec := httptest.NewRecorder()
    return e.NewContext(req, rec), rec
}

func countryRows(names ...string) *sqlmock.Rows {
    rows := sqlmock.NewRows([]string{"id", "name", "description", "image_url", "created_at", "updated_at"})
    now := time.Now()
    for i, n := range names {
        rows.AddRow(uint64(i+1), n, "", "", now, now)
    }
    return rows
}

func TestListCountriesAppliesQueryFilter(t *testing.T) {
    db, mock, err := sqlmock.New()
    require.NoError(t, err)
    defer db.Close()

    mock.ExpectQuery("FROM countries ORDER BY id").
        WillReturnRows(countryRows("Italy", "Japan", "Iceland"))

    h := &BrowseHandler{Countries: repository.NewCountryRepo(db)}
    c, rec := browseCtx(t, "/v1/browse/countries?q=ita")

    require.NoError(t, h.ListCountries(c))
    require.Equal(t, http.StatusOK, rec.Code)

    var page struct {
        Items      []struct{ Name string } `json:"items"`
        TotalItems int                     `json:"total_items"`
    }
    require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &page))
    require.Equal(t, 1, page.TotalItems)
    require.Len(t, page.Items, 1)
    require.Equal(t, "Italy", page.Items[0].Name)
    require.NoError(t, mock.ExpectationsWereMet())
}

func TestListCountriesClampsPageSize(t *testing.T) {
    db, mock, err := sqlmock.New()
    require.NoError(t, err)
    defer db.Close()

    names := make([]string, 25)
    for i := range names {
        names[i] = "Country"
    }
    mock.ExpectQuery("FROM countries ORDER BY id").WillReturnRows(countryRows(names...))

    h := &BrowseHandler{Countries: repository.NewCountryRepo(db)}
    c, rec := browseCtx(t, "/v1/browse/countries?page=2&page_size=10")

    require.NoError(t, h.ListCountries(c))

    var page struct {
        Items      []json.RawMessage `json:"items"`
        Page       int               `json:"page"`
        TotalPages int               `json:"total_pages"`
        HasNext    bool              `json:"has_next"`
        HasPrev    bool              `json:"has_prev"`
    }
    require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &page))
    require.Equal(t, 2, page.Page)
    require.Equal(t, 3, page.TotalPages)
    require.Len(t, page.Items, 10)
    require.True(t, page.HasNext)
    require.True(t, page.HasPrev)
    require.NoError(t, mock.ExpectationsWereMet())
}

func TestGetCountryNotFound(t *testing.T) {
    db, mock, err := sqlmock.New()
    require.NoError(t, err)
    defer db.Close()

    mock.ExpectQuery("FROM countries WHERE id").
        WithArgs(uint64(7)).
        WillReturnError(sql.ErrNoRows)

    h := &BrowseHandler{Countries: repository.NewCountryRepo(db)}
    c, rec := browseCtx(t, "/v1/browse/countries/7")
    c.SetParamNames("id")
    c.SetParamValues("7")

    require.NoError(t, h.GetCountry(c))
    require.Equal(t, http.StatusNotFound, rec.Code)
    require.NoError(t, mock.ExpectationsWereMet())
}

func TestGetCountryRejectsBadID(t *testing.T) {
    h := &BrowseHandler{}
    c, rec := browseCtx(t, "/v1/browse/countries/abc")
    c.SetParamNames("id")
    c.SetParamValues("abc")

    require.NoError(t, h.GetCountry(c))
    require.Equal(t, http.StatusBadRequest, rec.Code)
}
