package router

import (
    "github.com/labstack/echo/v4"
    "github.com/redis/go-redis/v9"

    "github.com/voyago/travel-reservation/internal/config"
    "github.com/voyago/travel-reservation/internal/handler"
    "github.com/voyago/travel-reservation/internal/middleware"
)

// RegisterCustomer registers the reservation surface under
// /v1/reservations.  Every route requires a valid JWT and a role that
// can reserve; the rate limiter throttles booking bursts before they
// reach the row locks.
func RegisterCustomer(e *echo.Echo, h *handler.ReservationHandler, jwtSecret string, rlCfg config.RateLimitConfig, rdb *redis.Client) {
    g := e.Group(
        "/v1/reservations",
        middleware.JWTAuth(jwtSecret),
        middleware.RequireReserver(),
        middleware.NewTokenBucket(rlCfg, rdb),
    )

    g.POST("", h.Create)
    g.GET("/me", h.ListMine)
    g.GET("/me/:id", h.GetMine)
    g.DELETE("/me/:id", h.CancelMine)

    g.POST("/trips", h.CreateTrip)
    g.GET("/me/trips", h.ListMineTrips)
    g.GET("/me/trips/:id", h.GetMineTrip)
    g.DELETE("/me/trips/:id", h.CancelMineTrip)
}
