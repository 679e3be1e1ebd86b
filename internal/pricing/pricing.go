// Package pricing turns a reservation request into a total price.
// All arithmetic is integer cents; the same functions back both the
// quote a client previews and the total frozen onto the persisted
// reservation, so the two cannot diverge.
package pricing

import (
    "errors"
    "time"
)

// ErrInvalidRange is returned when the end date is not strictly after
// the start date.
var ErrInvalidRange = errors.New("end date must be after start date")

// Nights returns the number of nights in the half-open interval
// [start, end), counting whole days.  Both arguments are expected to
// be date-only values (midnight UTC); any time-of-day component is
// truncated before the difference is taken.
func Nights(start, end time.Time) (int, error) {
    s := truncateToDay(start)
    e := truncateToDay(end)
    if !e.After(s) {
        return 0, ErrInvalidRange
    }
    return int(e.Sub(s).Hours() / 24), nil
}

// HotelTotalCents computes the frozen total for a hotel reservation:
// the room type's nightly rate multiplied by the number of nights.
func HotelTotalCents(pricePerNightCents int64, start, end time.Time) (int64, error) {
    nights, err := Nights(start, end)
    if err != nil {
        return 0, err
    }
    return pricePerNightCents * int64(nights), nil
}

// TripTotalCents computes the frozen total for a trip reservation:
// the per-guest price multiplied by the headcount.
func TripTotalCents(pricePerGuestCents int64, guests int) int64 {
    return pricePerGuestCents * int64(guests)
}

func truncateToDay(t time.Time) time.Time {
    y, m, d := t.UTC().Date()
    return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}
