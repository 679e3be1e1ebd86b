package handler

import (
    "context"
    "net/http"

    "github.com/labstack/echo/v4"

    "github.com/voyago/travel-reservation/internal/model"
    "github.com/voyago/travel-reservation/internal/repository"
)

// InventoryHandler serves staff management of hotels, room types,
// rooms and trips.
type InventoryHandler struct {
    Hotels    *repository.HotelRepo
    RoomTypes *repository.RoomTypeRepo
    Rooms     *repository.RoomRepo
    Trips     *repository.TripRepo
}

func NewInventoryHandler(
    hotels *repository.HotelRepo,
    roomTypes *repository.RoomTypeRepo,
    rooms *repository.RoomRepo,
    trips *repository.TripRepo,
) *InventoryHandler {
    return &InventoryHandler{Hotels: hotels, RoomTypes: roomTypes, Rooms: rooms, Trips: trips}
}

// ----- DTOs -----

type hotelReq struct {
    CityID             uint64 `json:"city_id" validate:"required"`
    Name               string `json:"name" validate:"required"`
    Description        string `json:"description"`
    ImageURL           string `json:"image_url"`
    PricePerNightCents int64  `json:"price_per_night_cents" validate:"min=0"`
}

type roomTypeReq struct {
    HotelID            uint64 `json:"hotel_id" validate:"required"`
    Name               string `json:"name" validate:"required"`
    Description        string `json:"description"`
    MaxGuests          int    `json:"max_guests" validate:"required,min=1"`
    PricePerNightCents int64  `json:"price_per_night_cents" validate:"required,min=1"`
    Capacity           int    `json:"capacity" validate:"min=0"`
}

type roomReq struct {
    RoomTypeID uint64 `json:"room_type_id" validate:"required"`
    RoomNumber string `json:"room_number" validate:"required"`
}

type bulkRoomsReq struct {
    Count  int    `json:"count" validate:"required,min=1,max=500"`
    Prefix string `json:"prefix"`
}

type roomStatusReq struct {
    Status string `json:"status" validate:"required"`
}

type tripReq struct {
    CityID      uint64   `json:"city_id" validate:"required"`
    HotelID     *uint64  `json:"hotel_id"`
    Name        string   `json:"name" validate:"required"`
    Description string   `json:"description"`
    ImageURL    string   `json:"image_url"`
    StartDate   string   `json:"start_date" validate:"required"`
    EndDate     string   `json:"end_date" validate:"required"`
    PriceCents  int64    `json:"price_cents" validate:"required,min=1"`
    ActivityIDs []uint64 `json:"activity_ids"`
}

// ----- hotels -----

func (h *InventoryHandler) CreateHotel(c echo.Context) error {
    var req hotelReq
    if !bindAndValidate(c, &req) {
        return nil
    }
    ctx, cancel := context.WithTimeout(c.Request().Context(), dbTimeout)
    defer cancel()

    hotel := &model.Hotel{
        CityID:             req.CityID,
        Name:               req.Name,
        Description:        req.Description,
        ImageURL:           req.ImageURL,
        PricePerNightCents: req.PricePerNightCents,
    }
    if err := h.Hotels.Create(ctx, hotel); err != nil {
        return writeRepoErr(c, err)
    }
    return c.JSON(http.StatusCreated, echo.Map{"hotel": hotel})
}

func (h *InventoryHandler) UpdateHotel(c echo.Context) error {
    id := paramID(c, "id")
    if id == 0 {
        return nil
    }
    var req hotelReq
    if !bindAndValidate(c, &req) {
        return nil
    }
    ctx, cancel := context.WithTimeout(c.Request().Context(), dbTimeout)
    defer cancel()

    hotel := &model.Hotel{
        ID:                 id,
        CityID:             req.CityID,
        Name:               req.Name,
        Description:        req.Description,
        ImageURL:           req.ImageURL,
        PricePerNightCents: req.PricePerNightCents,
    }
    if err := h.Hotels.Update(ctx, hotel); err != nil {
        return writeRepoErr(c, err)
    }
    return c.JSON(http.StatusOK, echo.Map{"hotel": hotel})
}

func (h *InventoryHandler) DeleteHotel(c echo.Context) error {
    id := paramID(c, "id")
    if id == 0 {
        return nil
    }
    ctx, cancel := context.WithTimeout(c.Request().Context(), dbTimeout)
    defer cancel()

    if err := h.Hotels.Delete(ctx, id); err != nil {
        return writeRepoErr(c, err)
    }
    return c.NoContent(http.StatusNoContent)
}

// ----- room types -----

func (h *InventoryHandler) CreateRoomType(c echo.Context) error {
    var req roomTypeReq
    if !bindAndValidate(c, &req) {
        return nil
    }
    ctx, cancel := context.WithTimeout(c.Request().Context(), dbTimeout)
    defer cancel()

    rt := &model.RoomType{
        HotelID:            req.HotelID,
        Name:               req.Name,
        Description:        req.Description,
        MaxGuests:          req.MaxGuests,
        PricePerNightCents: req.PricePerNightCents,
        Capacity:           req.Capacity,
    }
    if err := h.RoomTypes.Create(ctx, rt); err != nil {
        return writeRepoErr(c, err)
    }
    return c.JSON(http.StatusCreated, echo.Map{"room_type": rt})
}

func (h *InventoryHandler) UpdateRoomType(c echo.Context) error {
    id := paramID(c, "id")
    if id == 0 {
        return nil
    }
    var req roomTypeReq
    if !bindAndValidate(c, &req) {
        return nil
    }
    ctx, cancel := context.WithTimeout(c.Request().Context(), dbTimeout)
    defer cancel()

    rt := &model.RoomType{
        ID:                 id,
        HotelID:            req.HotelID,
        Name:               req.Name,
        Description:        req.Description,
        MaxGuests:          req.MaxGuests,
        PricePerNightCents: req.PricePerNightCents,
        Capacity:           req.Capacity,
    }
    if err := h.RoomTypes.Update(ctx, rt); err != nil {
        return writeRepoErr(c, err)
    }
    return c.JSON(http.StatusOK, echo.Map{"room_type": rt})
}

func (h *InventoryHandler) DeleteRoomType(c echo.Context) error {
    id := paramID(c, "id")
    if id == 0 {
        return nil
    }
    ctx, cancel := context.WithTimeout(c.Request().Context(), dbTimeout)
    defer cancel()

    if err := h.RoomTypes.Delete(ctx, id); err != nil {
        return writeRepoErr(c, err)
    }
    return c.NoContent(http.StatusNoContent)
}

// ----- rooms -----

func (h *InventoryHandler) ListRooms(c echo.Context) error {
    roomTypeID := paramID(c, "id")
    if roomTypeID == 0 {
        return nil
    }
    ctx, cancel := context.WithTimeout(c.Request().Context(), dbTimeout)
    defer cancel()

    rooms, err := h.Rooms.ListByRoomType(ctx, roomTypeID)
    if err != nil {
        return writeRepoErr(c, err)
    }
    return c.JSON(http.StatusOK, echo.Map{"rooms": rooms})
}

func (h *InventoryHandler) CreateRoom(c echo.Context) error {
    var req roomReq
    if !bindAndValidate(c, &req) {
        return nil
    }
    ctx, cancel := context.WithTimeout(c.Request().Context(), dbTimeout)
    defer cancel()

    room := &model.Room{RoomTypeID: req.RoomTypeID, RoomNumber: req.RoomNumber}
    if err := h.Rooms.Create(ctx, room); err != nil {
        return writeRepoErr(c, err)
    }
    return c.JSON(http.StatusCreated, echo.Map{"room": room})
}

// BulkAddRooms creates count numbered rooms under a room type in one
// transaction.
func (h *InventoryHandler) BulkAddRooms(c echo.Context) error {
    roomTypeID := paramID(c, "id")
    if roomTypeID == 0 {
        return nil
    }
    var req bulkRoomsReq
    if !bindAndValidate(c, &req) {
        return nil
    }
    if req.Prefix == "" {
        req.Prefix = "R"
    }
    ctx, cancel := context.WithTimeout(c.Request().Context(), dbTimeout)
    defer cancel()

    rooms, err := h.Rooms.BulkAdd(ctx, roomTypeID, req.Prefix, req.Count)
    if err != nil {
        return writeRepoErr(c, err)
    }
    return c.JSON(http.StatusCreated, echo.Map{"created": len(rooms), "rooms": rooms})
}

// BulkRemoveRooms removes up to count rooms of a type, skipping any
// with active reservations; the response reports how many actually
// went away so operators can see a partial removal.
func (h *InventoryHandler) BulkRemoveRooms(c echo.Context) error {
    roomTypeID := paramID(c, "id")
    if roomTypeID == 0 {
        return nil
    }
    var req bulkRoomsReq
    if !bindAndValidate(c, &req) {
        return nil
    }
    ctx, cancel := context.WithTimeout(c.Request().Context(), dbTimeout)
    defer cancel()

    removed, err := h.Rooms.BulkRemove(ctx, roomTypeID, req.Count)
    if err != nil {
        return writeRepoErr(c, err)
    }
    return c.JSON(http.StatusOK, echo.Map{"removed": removed})
}

// SetRoomStatus flips a room's status flag, e.g. into MAINTENANCE to
// pull it from sale.
func (h *InventoryHandler) SetRoomStatus(c echo.Context) error {
    id := paramID(c, "id")
    if id == 0 {
        return nil
    }
    var req roomStatusReq
    if !bindAndValidate(c, &req) {
        return nil
    }
    status := model.RoomStatus(req.Status)
    if !model.ValidRoomStatus(status) {
        return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid room status"})
    }
    ctx, cancel := context.WithTimeout(c.Request().Context(), dbTimeout)
    defer cancel()

    if err := h.Rooms.SetStatus(ctx, id, status); err != nil {
        return writeRepoErr(c, err)
    }
    return c.JSON(http.StatusOK, echo.Map{"id": id, "status": status})
}

func (h *InventoryHandler) DeleteRoom(c echo.Context) error {
    id := paramID(c, "id")
    if id == 0 {
        return nil
    }
    ctx, cancel := context.WithTimeout(c.Request().Context(), dbTimeout)
    defer cancel()

    if err := h.Rooms.Delete(ctx, id); err != nil {
        return writeRepoErr(c, err)
    }
    return c.NoContent(http.StatusNoContent)
}

// ----- trips -----

func (h *InventoryHandler) bindTrip(c echo.Context, id uint64) (*model.Trip, []uint64, bool) {
    var req tripReq
    if !bindAndValidate(c, &req) {
        return nil, nil, false
    }
    start, err := parseDate(req.StartDate)
    if err != nil {
        _ = c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid start_date"})
        return nil, nil, false
    }
    end, err := parseDate(req.EndDate)
    if err != nil || !start.Before(end) {
        _ = c.JSON(http.StatusBadRequest, echo.Map{"error": "start_date must precede end_date"})
        return nil, nil, false
    }
    return &model.Trip{
        ID:          id,
        CityID:      req.CityID,
        HotelID:     req.HotelID,
        Name:        req.Name,
        Description: req.Description,
        ImageURL:    req.ImageURL,
        StartDate:   start,
        EndDate:     end,
        PriceCents:  req.PriceCents,
    }, req.ActivityIDs, true
}

func (h *InventoryHandler) CreateTrip(c echo.Context) error {
    trip, activityIDs, ok := h.bindTrip(c, 0)
    if !ok {
        return nil
    }
    ctx, cancel := context.WithTimeout(c.Request().Context(), dbTimeout)
    defer cancel()

    if err := h.Trips.Create(ctx, trip, activityIDs); err != nil {
        return writeRepoErr(c, err)
    }
    return c.JSON(http.StatusCreated, echo.Map{"trip": trip})
}

func (h *InventoryHandler) UpdateTrip(c echo.Context) error {
    id := paramID(c, "id")
    if id == 0 {
        return nil
    }
    trip, activityIDs, ok := h.bindTrip(c, id)
    if !ok {
        return nil
    }
    ctx, cancel := context.WithTimeout(c.Request().Context(), dbTimeout)
    defer cancel()

    if err := h.Trips.Update(ctx, trip, activityIDs); err != nil {
        return writeRepoErr(c, err)
    }
    return c.JSON(http.StatusOK, echo.Map{"trip": trip})
}

func (h *InventoryHandler) DeleteTrip(c echo.Context) error {
    id := paramID(c, "id")
    if id == 0 {
        return nil
    }
    ctx, cancel := context.WithTimeout(c.Request().Context(), dbTimeout)
    defer cancel()

    if err := h.Trips.Delete(ctx, id); err != nil {
        return writeRepoErr(c, err)
    }
    return c.NoContent(http.StatusNoContent)
}
