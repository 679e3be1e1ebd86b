package main

import (
    "log"

    "github.com/joho/godotenv"
    "github.com/labstack/echo/v4"
    echomw "github.com/labstack/echo/v4/middleware"

    "github.com/voyago/travel-reservation/internal/config"
    "github.com/voyago/travel-reservation/internal/database"
    "github.com/voyago/travel-reservation/internal/handler"
    "github.com/voyago/travel-reservation/internal/queue"
    "github.com/voyago/travel-reservation/internal/repository"
    "github.com/voyago/travel-reservation/internal/router"
    "github.com/voyago/travel-reservation/internal/service"
)

func main() {
    // .env is optional; in containers the variables come from the
    // environment directly.
    _ = godotenv.Load()

    cfg := config.Load()

    db, err := database.Open(cfg.DBUser, cfg.DBPass, cfg.DBHost, cfg.DBPort, cfg.DBName)
    if err != nil {
        log.Fatalf("database: %v", err)
    }
    defer db.Close()

    rdb := config.NewRedisClient()
    cacheCfg := config.LoadCacheConfig()
    rlCfg := config.LoadRateLimitConfig()

    users := repository.NewUserRepo(db)
    tokens := repository.NewTokenRepo(db)
    countries := repository.NewCountryRepo(db)
    cities := repository.NewCityRepo(db)
    places := repository.NewPlaceRepo(db)
    activities := repository.NewActivityRepo(db)
    categories := repository.NewCategoryRepo(db)
    themes := repository.NewThemeRepo(db)
    hotels := repository.NewHotelRepo(db)
    roomTypes := repository.NewRoomTypeRepo(db)
    rooms := repository.NewRoomRepo(db)
    trips := repository.NewTripRepo(db)
    reservations := repository.NewReservationRepo(db)
    tripReservations := repository.NewTripReservationRepo(db)
    stats := repository.NewStatsRepo(db)

    auth := handler.NewAuthHandler(cfg, users, tokens)
    browse := handler.NewBrowseHandler(countries, cities, places, activities, categories, themes, hotels, roomTypes, trips)
    customer := handler.NewReservationHandler(reservations, roomTypes, tripReservations)
    catalog := handler.NewCatalogHandler(countries, cities, places, activities, categories, themes)
    inventory := handler.NewInventoryHandler(hotels, roomTypes, rooms, trips)
    adminRes := handler.NewAdminReservationHandler(reservations, tripReservations, users)
    dashboard := handler.NewDashboardHandler(stats)

    e := echo.New()
    e.HideBanner = true
    e.Use(echomw.Logger())
    e.Use(echomw.Recover())

    router.RegisterRoutes(e)
    router.RegisterAuth(e, auth, cfg.JWTSecret)
    router.RegisterPublic(e, browse, dashboard, cacheCfg, rlCfg, rdb)
    router.RegisterCustomer(e, customer, cfg.JWTSecret, rlCfg, rdb)
    router.RegisterAdmin(e, auth, catalog, inventory, adminRes, dashboard, cfg.JWTSecret)

    // Confirmation events are consumed in-process; the consumer
    // reconnects on its own if the broker drops.
    go queue.StartConfirmationConsumer(service.BrokerURL())

    addr := ":" + cfg.Port
    log.Printf("listening on %s (env=%s)", addr, cfg.Env)
    if err := e.Start(addr); err != nil {
        log.Fatal(err)
    }
}
