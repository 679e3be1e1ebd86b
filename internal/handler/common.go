package handler

import (
    "errors"
    "net/http"
    "strconv"
    "strings"
    "time"

    "github.com/go-playground/validator/v10"
    "github.com/labstack/echo/v4"

    "github.com/voyago/travel-reservation/internal/middleware"
    "github.com/voyago/travel-reservation/internal/pagination"
    "github.com/voyago/travel-reservation/internal/repository"
)

// validate is shared across handlers.  DTOs declare constraints with
// struct tags; there is no other validation layer.
var validate = validator.New()

// dbTimeout bounds every database call made from a handler.
const dbTimeout = 5 * time.Second

// dateLayout is the wire format for reservation and trip dates.  Dates
// are calendar days; time-of-day is never accepted.
const dateLayout = "2006-01-02"

// bindAndValidate binds the JSON body into dst and runs the shared
// validator.  Returns false after writing the 400 response itself.
func bindAndValidate(c echo.Context, dst any) bool {
    if err := c.Bind(dst); err != nil {
        _ = c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid body"})
        return false
    }
    if err := validate.Struct(dst); err != nil {
        _ = c.JSON(http.StatusBadRequest, echo.Map{"error": "validation failed", "detail": err.Error()})
        return false
    }
    return true
}

// paramID parses a numeric path parameter.  Returns 0 after writing
// the 400 response when the parameter is malformed.
func paramID(c echo.Context, name string) uint64 {
    id, err := strconv.ParseUint(c.Param(name), 10, 64)
    if err != nil || id == 0 {
        _ = c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid " + name})
        return 0
    }
    return id
}

// parseDate parses a YYYY-MM-DD value into a UTC day.
func parseDate(s string) (time.Time, error) {
    return time.Parse(dateLayout, strings.TrimSpace(s))
}

// pageParams reads ?page= and ?page_size= with the pagination
// package's defaults applied to anything missing or malformed.
func pageParams(c echo.Context) (page, pageSize int) {
    page, _ = strconv.Atoi(c.QueryParam("page"))
    pageSize, _ = strconv.Atoi(c.QueryParam("page_size"))
    if page < 1 {
        page = 1
    }
    if pageSize < 1 {
        pageSize = pagination.DefaultPageSize
    }
    return page, pageSize
}

// currentUserID reads the authenticated user out of the context.
func currentUserID(c echo.Context) uint64 { return middleware.CurrentUserID(c) }

// writeRepoErr maps repository sentinels onto HTTP statuses.  Unknown
// errors become a generic 500 so internals never leak to clients.
func writeRepoErr(c echo.Context, err error) error {
    switch {
    case errors.Is(err, repository.ErrBusy):
        c.Response().Header().Set("Retry-After", "1")
        return c.JSON(http.StatusServiceUnavailable, echo.Map{"error": "busy, retry shortly"})
    case errors.Is(err, repository.ErrRoomUnavailable):
        return c.JSON(http.StatusConflict, echo.Map{"error": "no room available for the requested dates"})
    case errors.Is(err, repository.ErrInvalidTransition):
        return c.JSON(http.StatusConflict, echo.Map{"error": "invalid status transition"})
    case errors.Is(err, repository.ErrConflict):
        return c.JSON(http.StatusConflict, echo.Map{"error": "conflicting state"})
    case errors.Is(err, repository.ErrForbidden):
        return c.JSON(http.StatusForbidden, echo.Map{"error": "forbidden"})
    case isNotFound(err):
        return c.JSON(http.StatusNotFound, echo.Map{"error": err.Error()})
    default:
        return c.JSON(http.StatusInternalServerError, echo.Map{"error": "internal error"})
    }
}

func isNotFound(err error) bool {
    for _, sentinel := range []error{
        repository.ErrCountryNotFound,
        repository.ErrCityNotFound,
        repository.ErrPlaceNotFound,
        repository.ErrActivityNotFound,
        repository.ErrLabelNotFound,
        repository.ErrHotelNotFound,
        repository.ErrRoomTypeNotFound,
        repository.ErrRoomNotFound,
        repository.ErrTripNotFound,
        repository.ErrReservationNotFound,
        repository.ErrTripReservationNotFound,
        repository.ErrUserNotFound,
    } {
        if errors.Is(err, sentinel) {
            return true
        }
    }
    return false
}
