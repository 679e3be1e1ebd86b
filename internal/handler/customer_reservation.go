package handler

import (
    "context"
    "net/http"
    "time"

    "github.com/labstack/echo/v4"

    "github.com/voyago/travel-reservation/internal/model"
    "github.com/voyago/travel-reservation/internal/pagination"
    "github.com/voyago/travel-reservation/internal/pricing"
    "github.com/voyago/travel-reservation/internal/repository"
)

// ReservationHandler serves the customer-facing reservation surface.
// Booking is transactional end to end: the handler owns the
// transaction, the repositories do the locking, and nothing is
// visible to other requests until commit.
type ReservationHandler struct {
    Reservations     *repository.ReservationRepo
    RoomTypes        *repository.RoomTypeRepo
    TripReservations *repository.TripReservationRepo
}

func NewReservationHandler(
    res *repository.ReservationRepo,
    roomTypes *repository.RoomTypeRepo,
    tripRes *repository.TripReservationRepo,
) *ReservationHandler {
    return &ReservationHandler{Reservations: res, RoomTypes: roomTypes, TripReservations: tripRes}
}

// ----- DTOs -----

type createReservationReq struct {
    RoomTypeID uint64 `json:"room_type_id" validate:"required"`
    StartDate  string `json:"start_date" validate:"required"`
    EndDate    string `json:"end_date" validate:"required"`
    Guests     int    `json:"guests" validate:"required,min=1"`
}

type createTripReservationReq struct {
    TripID uint64 `json:"trip_id" validate:"required"`
    Guests int    `json:"guests" validate:"required,min=1"`
}

// parseStayRange validates the booking interval: well-formed dates,
// start strictly before end, start not in the past.  Dates are
// calendar days in UTC.
func parseStayRange(startRaw, endRaw string) (start, end time.Time, ok bool) {
    start, err := parseDate(startRaw)
    if err != nil {
        return start, end, false
    }
    end, err = parseDate(endRaw)
    if err != nil {
        return start, end, false
    }
    today := time.Now().UTC().Truncate(24 * time.Hour)
    if !start.Before(end) || start.Before(today) {
        return start, end, false
    }
    return start, end, true
}

// Create books one room of the requested type for a date range.  The
// whole operation runs in a single transaction: lock a free room,
// freeze the rate into the total, insert the PENDING reservation and
// flip the room ledger flag.  Two concurrent requests for the last
// free room serialize on the row lock; the loser gets 409.
func (h *ReservationHandler) Create(c echo.Context) error {
    uid := currentUserID(c)
    if uid == 0 {
        return c.JSON(http.StatusUnauthorized, echo.Map{"error": "unauthorized"})
    }
    var req createReservationReq
    if !bindAndValidate(c, &req) {
        return nil
    }
    start, end, ok := parseStayRange(req.StartDate, req.EndDate)
    if !ok {
        return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid date range"})
    }

    ctx, cancel := context.WithTimeout(c.Request().Context(), dbTimeout)
    defer cancel()

    tx, err := h.Reservations.DB().BeginTx(ctx, nil)
    if err != nil {
        return c.JSON(http.StatusInternalServerError, echo.Map{"error": "begin failed"})
    }
    committed := false
    defer func() {
        if !committed {
            _ = tx.Rollback()
        }
    }()

    rt, err := h.RoomTypes.GetByIDTx(ctx, tx, req.RoomTypeID)
    if err != nil {
        return writeRepoErr(c, err)
    }
    if req.Guests > rt.MaxGuests {
        return c.JSON(http.StatusBadRequest, echo.Map{"error": "too many guests for this room type"})
    }

    roomID, err := h.Reservations.FindAvailableRoomTx(ctx, tx, rt.ID, start, end)
    if err != nil {
        return writeRepoErr(c, err)
    }

    total, err := pricing.HotelTotalCents(rt.PricePerNightCents, start, end)
    if err != nil {
        return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid date range"})
    }

    rec := &repository.ReservationRecord{
        UserID:          uid,
        RoomID:          roomID,
        Status:          string(model.StatusPending),
        Guests:          req.Guests,
        StartDate:       start,
        EndDate:         end,
        TotalPriceCents: total,
    }
    if err := h.Reservations.CreateTx(ctx, tx, rec); err != nil {
        return writeRepoErr(c, err)
    }
    if err := h.Reservations.SetRoomBookedTx(ctx, tx, roomID); err != nil {
        return writeRepoErr(c, err)
    }

    if err := tx.Commit(); err != nil {
        return writeRepoErr(c, err)
    }
    committed = true

    return c.JSON(http.StatusCreated, echo.Map{"reservation": rec})
}

// CreateTrip books a trip package.  Trips model no physical
// capacity, so unlike hotel booking there is no availability check;
// the transaction freezes the per-guest rate into the total and
// inserts the PENDING reservation.
func (h *ReservationHandler) CreateTrip(c echo.Context) error {
    uid := currentUserID(c)
    if uid == 0 {
        return c.JSON(http.StatusUnauthorized, echo.Map{"error": "unauthorized"})
    }
    var req createTripReservationReq
    if !bindAndValidate(c, &req) {
        return nil
    }

    ctx, cancel := context.WithTimeout(c.Request().Context(), dbTimeout)
    defer cancel()

    tx, err := h.TripReservations.DB().BeginTx(ctx, nil)
    if err != nil {
        return c.JSON(http.StatusInternalServerError, echo.Map{"error": "begin failed"})
    }
    committed := false
    defer func() {
        if !committed {
            _ = tx.Rollback()
        }
    }()

    priceCents, err := h.TripReservations.TripPriceTx(ctx, tx, req.TripID)
    if err != nil {
        return writeRepoErr(c, err)
    }

    rec := &repository.TripReservationRecord{
        UserID:          uid,
        TripID:          req.TripID,
        Status:          string(model.StatusPending),
        Guests:          req.Guests,
        TotalPriceCents: pricing.TripTotalCents(priceCents, req.Guests),
    }
    if err := h.TripReservations.CreateTx(ctx, tx, rec); err != nil {
        return writeRepoErr(c, err)
    }

    if err := tx.Commit(); err != nil {
        return writeRepoErr(c, err)
    }
    committed = true

    return c.JSON(http.StatusCreated, echo.Map{"reservation": rec})
}

// ListMine returns the caller's hotel reservations, paged.
func (h *ReservationHandler) ListMine(c echo.Context) error {
    uid := currentUserID(c)
    if uid == 0 {
        return c.JSON(http.StatusUnauthorized, echo.Map{"error": "unauthorized"})
    }
    ctx, cancel := context.WithTimeout(c.Request().Context(), dbTimeout)
    defer cancel()

    items, err := h.Reservations.ListByUser(ctx, uid)
    if err != nil {
        return writeRepoErr(c, err)
    }
    page, size := pageParams(c)
    return c.JSON(http.StatusOK, pagination.Paginate(items, page, size))
}

// GetMine returns one of the caller's hotel reservations.
func (h *ReservationHandler) GetMine(c echo.Context) error {
    uid := currentUserID(c)
    if uid == 0 {
        return c.JSON(http.StatusUnauthorized, echo.Map{"error": "unauthorized"})
    }
    id := paramID(c, "id")
    if id == 0 {
        return nil
    }
    ctx, cancel := context.WithTimeout(c.Request().Context(), dbTimeout)
    defer cancel()

    det, err := h.Reservations.GetByIDForUser(ctx, id, uid)
    if err != nil {
        return writeRepoErr(c, err)
    }
    return c.JSON(http.StatusOK, echo.Map{"reservation": det})
}

// CancelMine cancels one of the caller's PENDING hotel reservations
// and releases the room's ledger flag if no other active reservation
// holds it.  CONFIRMED reservations need an admin decision.
func (h *ReservationHandler) CancelMine(c echo.Context) error {
    uid := currentUserID(c)
    if uid == 0 {
        return c.JSON(http.StatusUnauthorized, echo.Map{"error": "unauthorized"})
    }
    id := paramID(c, "id")
    if id == 0 {
        return nil
    }
    ctx, cancel := context.WithTimeout(c.Request().Context(), dbTimeout)
    defer cancel()

    tx, err := h.Reservations.DB().BeginTx(ctx, nil)
    if err != nil {
        return c.JSON(http.StatusInternalServerError, echo.Map{"error": "begin failed"})
    }
    committed := false
    defer func() {
        if !committed {
            _ = tx.Rollback()
        }
    }()

    rec, err := h.Reservations.GetForUpdateTx(ctx, tx, id)
    if err != nil {
        return writeRepoErr(c, err)
    }
    if rec.UserID != uid {
        return writeRepoErr(c, repository.ErrForbidden)
    }
    if !model.CanCancelOwn(model.ReservationStatus(rec.Status)) {
        return writeRepoErr(c, repository.ErrInvalidTransition)
    }
    if err := h.Reservations.UpdateStatusTx(ctx, tx, id, model.StatusCancelled); err != nil {
        return writeRepoErr(c, err)
    }
    if err := h.Reservations.ReleaseRoomTx(ctx, tx, rec.RoomID); err != nil {
        return writeRepoErr(c, err)
    }

    if err := tx.Commit(); err != nil {
        return writeRepoErr(c, err)
    }
    committed = true

    return c.JSON(http.StatusOK, echo.Map{"id": id, "status": model.StatusCancelled})
}

// ListMineTrips returns the caller's trip reservations, paged.
func (h *ReservationHandler) ListMineTrips(c echo.Context) error {
    uid := currentUserID(c)
    if uid == 0 {
        return c.JSON(http.StatusUnauthorized, echo.Map{"error": "unauthorized"})
    }
    ctx, cancel := context.WithTimeout(c.Request().Context(), dbTimeout)
    defer cancel()

    items, err := h.TripReservations.ListByUser(ctx, uid)
    if err != nil {
        return writeRepoErr(c, err)
    }
    page, size := pageParams(c)
    return c.JSON(http.StatusOK, pagination.Paginate(items, page, size))
}

// GetMineTrip returns one of the caller's trip reservations.
func (h *ReservationHandler) GetMineTrip(c echo.Context) error {
    uid := currentUserID(c)
    if uid == 0 {
        return c.JSON(http.StatusUnauthorized, echo.Map{"error": "unauthorized"})
    }
    id := paramID(c, "id")
    if id == 0 {
        return nil
    }
    ctx, cancel := context.WithTimeout(c.Request().Context(), dbTimeout)
    defer cancel()

    det, err := h.TripReservations.GetByIDForUser(ctx, id, uid)
    if err != nil {
        return writeRepoErr(c, err)
    }
    return c.JSON(http.StatusOK, echo.Map{"reservation": det})
}

// CancelMineTrip cancels one of the caller's PENDING trip
// reservations, returning its guests to the trip's capacity.
func (h *ReservationHandler) CancelMineTrip(c echo.Context) error {
    uid := currentUserID(c)
    if uid == 0 {
        return c.JSON(http.StatusUnauthorized, echo.Map{"error": "unauthorized"})
    }
    id := paramID(c, "id")
    if id == 0 {
        return nil
    }
    ctx, cancel := context.WithTimeout(c.Request().Context(), dbTimeout)
    defer cancel()

    tx, err := h.TripReservations.DB().BeginTx(ctx, nil)
    if err != nil {
        return c.JSON(http.StatusInternalServerError, echo.Map{"error": "begin failed"})
    }
    committed := false
    defer func() {
        if !committed {
            _ = tx.Rollback()
        }
    }()

    rec, err := h.TripReservations.GetForUpdateTx(ctx, tx, id)
    if err != nil {
        return writeRepoErr(c, err)
    }
    if rec.UserID != uid {
        return writeRepoErr(c, repository.ErrForbidden)
    }
    if !model.CanCancelOwn(model.ReservationStatus(rec.Status)) {
        return writeRepoErr(c, repository.ErrInvalidTransition)
    }
    if err := h.TripReservations.UpdateStatusTx(ctx, tx, id, model.StatusCancelled); err != nil {
        return writeRepoErr(c, err)
    }

    if err := tx.Commit(); err != nil {
        return writeRepoErr(c, err)
    }
    committed = true

    return c.JSON(http.StatusOK, echo.Map{"id": id, "status": model.StatusCancelled})
}
