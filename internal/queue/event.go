// Package queue defines message payloads exchanged over the message
// broker and the background consumer that processes them.
package queue

// ReservationConfirmedEvent is published when staff confirm a hotel
// reservation.  It carries enough for downstream consumers to log or
// notify without querying the primary database.
type ReservationConfirmedEvent struct {
    ReservationID   uint64 `json:"reservation_id"`
    UserID          uint64 `json:"user_id"`
    UserEmail       string `json:"user_email"`
    HotelName       string `json:"hotel_name"`
    RoomTypeName    string `json:"room_type_name"`
    RoomNumber      string `json:"room_number"`
    StartDate       string `json:"start_date"`
    EndDate         string `json:"end_date"`
    Guests          int    `json:"guests"`
    TotalPriceCents int64  `json:"total_price_cents"`
    ConfirmedAt     string `json:"confirmed_at"`
}

// TripConfirmedEvent is published when staff confirm a trip
// reservation.
type TripConfirmedEvent struct {
    ReservationID   uint64 `json:"reservation_id"`
    UserID          uint64 `json:"user_id"`
    UserEmail       string `json:"user_email"`
    TripName        string `json:"trip_name"`
    Guests          int    `json:"guests"`
    TotalPriceCents int64  `json:"total_price_cents"`
    ConfirmedAt     string `json:"confirmed_at"`
}
