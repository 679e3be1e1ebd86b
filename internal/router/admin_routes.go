package router

import (
    "github.com/labstack/echo/v4"

    "github.com/voyago/travel-reservation/internal/handler"
    "github.com/voyago/travel-reservation/internal/middleware"
)

// RegisterAdmin registers the staff surface under /v1/admin.  Every
// route requires a valid JWT and a managing role (ADMIN or
// SUB_ADMIN); sub-admin creation additionally checks for ADMIN inside
// the handler.
func RegisterAdmin(
    e *echo.Echo,
    a *handler.AuthHandler,
    cat *handler.CatalogHandler,
    inv *handler.InventoryHandler,
    res *handler.AdminReservationHandler,
    dash *handler.DashboardHandler,
    jwtSecret string,
) {
    g := e.Group(
        "/v1/admin",
        middleware.JWTAuth(jwtSecret),
        middleware.RequireManager(),
    )

    // staff accounts
    g.POST("/sub-admins", a.CreateSubAdmin)

    // catalog
    g.POST("/countries", cat.CreateCountry)
    g.PUT("/countries/:id", cat.UpdateCountry)
    g.DELETE("/countries/:id", cat.DeleteCountry)
    g.POST("/cities", cat.CreateCity)
    g.PUT("/cities/:id", cat.UpdateCity)
    g.DELETE("/cities/:id", cat.DeleteCity)
    g.POST("/places", cat.CreatePlace)
    g.PUT("/places/:id", cat.UpdatePlace)
    g.DELETE("/places/:id", cat.DeletePlace)
    g.POST("/activities", cat.CreateActivity)
    g.PUT("/activities/:id", cat.UpdateActivity)
    g.DELETE("/activities/:id", cat.DeleteActivity)
    g.POST("/categories", cat.CreateCategory)
    g.DELETE("/categories/:id", cat.DeleteCategory)
    g.POST("/themes", cat.CreateTheme)
    g.DELETE("/themes/:id", cat.DeleteTheme)

    // inventory
    g.POST("/hotels", inv.CreateHotel)
    g.PUT("/hotels/:id", inv.UpdateHotel)
    g.DELETE("/hotels/:id", inv.DeleteHotel)
    g.POST("/room-types", inv.CreateRoomType)
    g.PUT("/room-types/:id", inv.UpdateRoomType)
    g.DELETE("/room-types/:id", inv.DeleteRoomType)
    g.GET("/room-types/:id/rooms", inv.ListRooms)
    g.POST("/room-types/:id/rooms/bulk-add", inv.BulkAddRooms)
    g.POST("/room-types/:id/rooms/bulk-remove", inv.BulkRemoveRooms)
    g.POST("/rooms", inv.CreateRoom)
    g.PATCH("/rooms/:id/status", inv.SetRoomStatus)
    g.DELETE("/rooms/:id", inv.DeleteRoom)
    g.POST("/trips", inv.CreateTrip)
    g.PUT("/trips/:id", inv.UpdateTrip)
    g.DELETE("/trips/:id", inv.DeleteTrip)

    // reservations
    g.GET("/reservations", res.ListAll)
    g.PATCH("/reservations/:id/status", res.Decide)
    g.GET("/trip-reservations", res.ListAllTrips)
    g.PATCH("/trip-reservations/:id/status", res.DecideTrip)

    // dashboard
    g.GET("/dashboard", dash.Dashboard)
}
