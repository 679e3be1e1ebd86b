package model

import "time"

// Hotel belongs to a City and owns an ordered list of room types.
// PricePerNightCents is a display default; the authoritative nightly
// rate lives on each RoomType.  All prices in this codebase are
// fixed-point cents, never binary floats, so a client preview and the
// frozen reservation total can never drift apart.
//
// Fields:
//  ID                 – primary key identifier.
//  CityID             – city the hotel is located in.
//  Name               – hotel name.
//  Description        – free-form description.
//  ImageURL           – optional image reference.
//  PricePerNightCents – display default nightly rate in cents.
//  CreatedAt          – creation timestamp.
//  UpdatedAt          – last update timestamp.
type Hotel struct {
    ID                 uint64    // hotels.id
    CityID             uint64    // hotels.city_id
    Name               string    // hotels.name
    Description        string    // hotels.description
    ImageURL           string    // hotels.image_url
    PricePerNightCents int64     // hotels.price_per_night_cents
    CreatedAt          time.Time // hotels.created_at
    UpdatedAt          time.Time // hotels.updated_at
}

// RoomType is a priced class of room within a hotel: the unit of
// selection when booking.  Capacity records the intended room count;
// the concrete Room rows are what actually get reserved.
//
// Fields:
//  ID                 – primary key identifier.
//  HotelID            – owning hotel.
//  Name               – room type name (e.g. "Double Deluxe").
//  Description        – optional description.
//  MaxGuests          – maximum guests per room of this type.
//  PricePerNightCents – nightly rate in cents, frozen onto reservations.
//  Capacity           – intended number of rooms of this type.
//  CreatedAt          – creation timestamp.
//  UpdatedAt          – last update timestamp.
type RoomType struct {
    ID                 uint64    // room_types.id
    HotelID            uint64    // room_types.hotel_id
    Name               string    // room_types.name
    Description        string    // room_types.description
    MaxGuests          int       // room_types.max_guests
    PricePerNightCents int64     // room_types.price_per_night_cents
    Capacity           int       // room_types.capacity
    CreatedAt          time.Time // room_types.created_at
    UpdatedAt          time.Time // room_types.updated_at
}
