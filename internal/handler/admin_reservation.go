package handler

import (
    "context"
    "net/http"
    "time"

    "github.com/labstack/echo/v4"

    "github.com/voyago/travel-reservation/internal/model"
    "github.com/voyago/travel-reservation/internal/pagination"
    "github.com/voyago/travel-reservation/internal/queue"
    "github.com/voyago/travel-reservation/internal/repository"
    "github.com/voyago/travel-reservation/internal/service"
)

// AdminReservationHandler serves staff reservation listings and
// decisions.  Confirmations publish a broker event after commit; the
// event is best effort and never fails the decision.
type AdminReservationHandler struct {
    Reservations     *repository.ReservationRepo
    TripReservations *repository.TripReservationRepo
    Users            *repository.UserRepo
}

func NewAdminReservationHandler(
    res *repository.ReservationRepo,
    tripRes *repository.TripReservationRepo,
    users *repository.UserRepo,
) *AdminReservationHandler {
    return &AdminReservationHandler{Reservations: res, TripReservations: tripRes, Users: users}
}

type decideReq struct {
    Status string `json:"status" validate:"required"`
}

// parseDecision validates the requested target status.  Only the two
// decision outcomes are accepted; PENDING is not a target.
func parseDecision(raw string) (model.ReservationStatus, bool) {
    status, ok := model.ParseReservationStatus(raw)
    if !ok || status == model.StatusPending {
        return "", false
    }
    return status, true
}

// statusFilter reads the optional ?status= list filter.
func statusFilter(c echo.Context) (model.ReservationStatus, bool) {
    raw := c.QueryParam("status")
    if raw == "" {
        return "", true
    }
    status, ok := model.ParseReservationStatus(raw)
    return status, ok
}

// ListAll returns every hotel reservation, optionally filtered by
// ?status=, paged.
func (h *AdminReservationHandler) ListAll(c echo.Context) error {
    status, ok := statusFilter(c)
    if !ok {
        return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid status"})
    }
    ctx, cancel := context.WithTimeout(c.Request().Context(), dbTimeout)
    defer cancel()

    items, err := h.Reservations.ListAll(ctx, status)
    if err != nil {
        return writeRepoErr(c, err)
    }
    page, size := pageParams(c)
    return c.JSON(http.StatusOK, pagination.Paginate(items, page, size))
}

// ListAllTrips returns every trip reservation, optionally filtered by
// ?status=, paged.
func (h *AdminReservationHandler) ListAllTrips(c echo.Context) error {
    status, ok := statusFilter(c)
    if !ok {
        return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid status"})
    }
    ctx, cancel := context.WithTimeout(c.Request().Context(), dbTimeout)
    defer cancel()

    items, err := h.TripReservations.ListAll(ctx, status)
    if err != nil {
        return writeRepoErr(c, err)
    }
    page, size := pageParams(c)
    return c.JSON(http.StatusOK, pagination.Paginate(items, page, size))
}

// Decide moves a hotel reservation to CONFIRMED or CANCELLED.
// PENDING accepts either outcome; CONFIRMED may still be cancelled as
// an administrative override.  Cancelling releases the room's ledger
// flag inside the same transaction.
func (h *AdminReservationHandler) Decide(c echo.Context) error {
    id := paramID(c, "id")
    if id == 0 {
        return nil
    }
    var req decideReq
    if !bindAndValidate(c, &req) {
        return nil
    }
    target, ok := parseDecision(req.Status)
    if !ok {
        return c.JSON(http.StatusBadRequest, echo.Map{"error": "status must be CONFIRMED or CANCELLED"})
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
    if !model.CanDecide(model.ReservationStatus(rec.Status), target) {
        return writeRepoErr(c, repository.ErrInvalidTransition)
    }
    if err := h.Reservations.UpdateStatusTx(ctx, tx, id, target); err != nil {
        return writeRepoErr(c, err)
    }
    if target == model.StatusCancelled {
        if err := h.Reservations.ReleaseRoomTx(ctx, tx, rec.RoomID); err != nil {
            return writeRepoErr(c, err)
        }
    }

    if err := tx.Commit(); err != nil {
        return writeRepoErr(c, err)
    }
    committed = true

    if target == model.StatusConfirmed {
        h.publishConfirmed(ctx, rec)
    }
    return c.JSON(http.StatusOK, echo.Map{"id": id, "status": target})
}

// DecideTrip moves a trip reservation to CONFIRMED or CANCELLED.
// Cancelling implicitly frees capacity because the sum over active
// reservations no longer counts this one.
func (h *AdminReservationHandler) DecideTrip(c echo.Context) error {
    id := paramID(c, "id")
    if id == 0 {
        return nil
    }
    var req decideReq
    if !bindAndValidate(c, &req) {
        return nil
    }
    target, ok := parseDecision(req.Status)
    if !ok {
        return c.JSON(http.StatusBadRequest, echo.Map{"error": "status must be CONFIRMED or CANCELLED"})
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
    if !model.CanDecide(model.ReservationStatus(rec.Status), target) {
        return writeRepoErr(c, repository.ErrInvalidTransition)
    }
    if err := h.TripReservations.UpdateStatusTx(ctx, tx, id, target); err != nil {
        return writeRepoErr(c, err)
    }

    if err := tx.Commit(); err != nil {
        return writeRepoErr(c, err)
    }
    committed = true

    if target == model.StatusConfirmed {
        h.publishTripConfirmed(ctx, rec)
    }
    return c.JSON(http.StatusOK, echo.Map{"id": id, "status": target})
}

func (h *AdminReservationHandler) publishConfirmed(ctx context.Context, rec *repository.ReservationRecord) {
    // Detail lookup failing only degrades the event payload.
    det, _ := h.Reservations.GetByIDForUser(ctx, rec.ID, rec.UserID)
    var email string
    if u, err := h.Users.GetByID(ctx, rec.UserID); err == nil {
        email = u.Email
    }
    ev := queue.ReservationConfirmedEvent{
        ReservationID:   rec.ID,
        UserID:          rec.UserID,
        UserEmail:       email,
        StartDate:       rec.StartDate.Format(dateLayout),
        EndDate:         rec.EndDate.Format(dateLayout),
        Guests:          rec.Guests,
        TotalPriceCents: rec.TotalPriceCents,
        ConfirmedAt:     time.Now().UTC().Format(time.RFC3339),
    }
    if det != nil {
        ev.HotelName = det.HotelName
        ev.RoomTypeName = det.RoomTypeName
        ev.RoomNumber = det.RoomNumber
    }
    _ = service.Publish(ctx, service.ReservationConfirmedQueue, ev)
}

func (h *AdminReservationHandler) publishTripConfirmed(ctx context.Context, rec *repository.TripReservationRecord) {
    var email string
    if u, err := h.Users.GetByID(ctx, rec.UserID); err == nil {
        email = u.Email
    }
    var tripName string
    if det, err := h.TripReservations.GetByIDForUser(ctx, rec.ID, rec.UserID); err == nil {
        tripName = det.TripName
    }
    _ = service.Publish(ctx, service.TripConfirmedQueue, queue.TripConfirmedEvent{
        ReservationID:   rec.ID,
        UserID:          rec.UserID,
        UserEmail:       email,
        TripName:        tripName,
        Guests:          rec.Guests,
        TotalPriceCents: rec.TotalPriceCents,
        ConfirmedAt:     time.Now().UTC().Format(time.RFC3339),
    })
}
