package handler

import (
    "context"
    "net/http"

    "github.com/labstack/echo/v4"

    "github.com/voyago/travel-reservation/internal/repository"
)

// DashboardHandler serves the staff dashboard counters and the
// public catalog counters.
type DashboardHandler struct {
    Stats *repository.StatsRepo
}

func NewDashboardHandler(stats *repository.StatsRepo) *DashboardHandler {
    return &DashboardHandler{Stats: stats}
}

// Dashboard returns aggregate counts and confirmed revenue.
func (h *DashboardHandler) Dashboard(c echo.Context) error {
    ctx, cancel := context.WithTimeout(c.Request().Context(), dbTimeout)
    defer cancel()

    stats, err := h.Stats.Dashboard(ctx)
    if err != nil {
        return writeRepoErr(c, err)
    }
    return c.JSON(http.StatusOK, echo.Map{"stats": stats})
}

// Guest returns catalog counts for unauthenticated visitors.  Sits
// behind the browse cache, so the counts may lag by one TTL.
func (h *DashboardHandler) Guest(c echo.Context) error {
    ctx, cancel := context.WithTimeout(c.Request().Context(), dbTimeout)
    defer cancel()

    stats, err := h.Stats.GuestCounts(ctx)
    if err != nil {
        return writeRepoErr(c, err)
    }
    return c.JSON(http.StatusOK, echo.Map{"stats": stats})
}
