// Package router maps HTTP routes onto handlers and middleware.
package router

import (
    "github.com/labstack/echo/v4"
    "github.com/redis/go-redis/v9"

    "github.com/voyago/travel-reservation/internal/config"
    "github.com/voyago/travel-reservation/internal/handler"
    "github.com/voyago/travel-reservation/internal/middleware"
)

// RegisterRoutes registers routes that need no authentication and no
// rate limiting.  Currently only the health check.
func RegisterRoutes(e *echo.Echo) {
    e.GET("/healthz", handler.Health)
}

// RegisterAuth registers authentication routes.  Register, login and
// the refresh endpoints live under /v1/auth without a session; /v1/me
// and logout sit behind JWTAuth.
func RegisterAuth(e *echo.Echo, a *handler.AuthHandler, jwtSecret string) {
    g := e.Group("/v1/auth")
    g.POST("/register", a.Register)
    g.POST("/login", a.Login)
    g.POST("/refresh", a.Refresh)
    g.POST("/refresh-access", a.RefreshAccess)
    // Logout with a refresh token in the body needs no JWT.
    g.POST("/logout", a.Logout)

    auth := e.Group("/v1", middleware.JWTAuth(jwtSecret))
    auth.GET("/me", a.Me)
    auth.POST("/logout", a.Logout)
}

// RegisterPublic registers the unauthenticated browse surface under
// /v1/browse.  The whole group sits behind the response cache and the
// rate limiter; every list accepts ?q=, ?page= and ?page_size=.
func RegisterPublic(e *echo.Echo, b *handler.BrowseHandler, dash *handler.DashboardHandler, cacheCfg config.CacheConfig, rlCfg config.RateLimitConfig, rdb *redis.Client) {
    g := e.Group("/v1/browse",
        middleware.NewTokenBucket(rlCfg, rdb),
        middleware.NewRedisCache(cacheCfg, rdb),
    )

    g.GET("/countries", b.ListCountries)
    g.GET("/countries/:id", b.GetCountry)
    g.GET("/countries/:id/cities", b.ListCities)
    g.GET("/cities/:id", b.GetCity)
    g.GET("/cities/:id/places", b.ListPlaces)
    g.GET("/cities/:id/hotels", b.ListHotels)
    g.GET("/cities/:id/trips", b.ListTrips)
    g.GET("/places/:id", b.GetPlace)
    g.GET("/places/:id/activities", b.ListActivities)
    g.GET("/labels", b.ListLabels)
    g.GET("/hotels/:id", b.GetHotel)
    g.GET("/hotels/:id/room-types", b.ListRoomTypes)
    g.GET("/trips/:id", b.GetTrip)
    g.GET("/stats", dash.Guest)
}
