package model

import "time"

// Trip is a packaged offering tied to a City, optionally anchored to
// a Hotel, with a set of included activities (trip_activities join
// table).  The price is flat per guest; trips model no physical
// capacity, so trip reservations skip the room availability check.
//
// Fields:
//  ID          – primary key identifier.
//  CityID      – city the trip takes place in.
//  HotelID     – optional anchor hotel (nil when none).
//  Name        – trip name.
//  Description – free-form description.
//  ImageURL    – optional image reference.
//  StartDate   – first day of the trip.
//  EndDate     – exclusive end day of the trip.
//  PriceCents  – per-guest price in cents.
//  ActivityIDs – linked activities, loaded on single-trip reads.
//  CreatedAt   – creation timestamp.
//  UpdatedAt   – last update timestamp.
type Trip struct {
    ID          uint64    // trips.id
    CityID      uint64    // trips.city_id
    HotelID     *uint64   // trips.hotel_id (nullable)
    Name        string    // trips.name
    Description string    // trips.description
    ImageURL    string    // trips.image_url
    StartDate   time.Time // trips.start_date
    EndDate     time.Time // trips.end_date
    PriceCents  int64     // trips.price_cents
    ActivityIDs []uint64  // trip_activities join rows
    CreatedAt   time.Time // trips.created_at
    UpdatedAt   time.Time // trips.updated_at
}
