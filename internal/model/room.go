package model

import "time"

// RoomStatus enumerates the states of a concrete room.  AVAILABLE and
// BOOKED are maintained by the availability ledger as a side effect
// of reservation transitions; no other component writes them.
// MAINTENANCE is set by admins and excludes the room from booking
// regardless of its reservation history.  The overlap check on
// reservations, not this flag, is what actually prevents
// double-booking.
type RoomStatus string

const (
    RoomAvailable   RoomStatus = "AVAILABLE"
    RoomBooked      RoomStatus = "BOOKED"
    RoomMaintenance RoomStatus = "MAINTENANCE"
)

// ValidRoomStatus reports whether s is one of the three known room
// states.  Used when admins set a status directly.
func ValidRoomStatus(s RoomStatus) bool {
    switch s {
    case RoomAvailable, RoomBooked, RoomMaintenance:
        return true
    }
    return false
}

// Room is a concrete bookable unit within a RoomType: the unit of
// reservation and of the overlap check.
//
// Fields:
//  ID         – primary key identifier.
//  RoomTypeID – owning room type.
//  RoomNumber – optional human-readable room number (e.g. "R101").
//  Status     – AVAILABLE, BOOKED or MAINTENANCE.
//  CreatedAt  – creation timestamp.
//  UpdatedAt  – last update timestamp.
type Room struct {
    ID         uint64     // rooms.id
    RoomTypeID uint64     // rooms.room_type_id
    RoomNumber string     // rooms.room_number (may be empty)
    Status     RoomStatus // rooms.status
    CreatedAt  time.Time  // rooms.created_at
    UpdatedAt  time.Time  // rooms.updated_at
}
