package model

import "strings"

// ReservationStatus enumerates the lifecycle states shared by hotel
// and trip reservations.  A reservation is created PENDING, may move
// to CONFIRMED or CANCELLED, and is never physically deleted:
// CANCELLED is a terminal, auditable state.
type ReservationStatus string

const (
    StatusPending   ReservationStatus = "PENDING"
    StatusConfirmed ReservationStatus = "CONFIRMED"
    StatusCancelled ReservationStatus = "CANCELLED"
)

// ParseReservationStatus normalises a raw status string.
func ParseReservationStatus(raw string) (ReservationStatus, bool) {
    s := ReservationStatus(strings.ToUpper(strings.TrimSpace(raw)))
    switch s {
    case StatusPending, StatusConfirmed, StatusCancelled:
        return s, true
    }
    return "", false
}

// CanDecide reports whether an admin decision may move a reservation
// from one status to another.  PENDING may go to CONFIRMED or
// CANCELLED.  CONFIRMED may still be cancelled as an administrative
// override; it may not revert to PENDING.  CANCELLED is terminal.
func CanDecide(from, to ReservationStatus) bool {
    switch from {
    case StatusPending:
        return to == StatusConfirmed || to == StatusCancelled
    case StatusConfirmed:
        return to == StatusCancelled
    }
    return false
}

// CanCancelOwn reports whether the owning user may cancel a
// reservation themselves.  Only PENDING reservations qualify; once an
// admin has confirmed, cancellation requires an admin decision.
func CanCancelOwn(from ReservationStatus) bool {
    return from == StatusPending
}

