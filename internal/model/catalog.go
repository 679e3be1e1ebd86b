package model

import "time"

// The catalog hierarchy is Country → City → Place → Activity.  Every
// non-root entity carries a single parent id that must reference an
// existing row; referential integrity is validated by the repository
// layer before any write.  Image references are plain optional URLs:
// an empty string means "no image", there are no placeholder URLs to
// string-match against.

// Country is the root of the catalog hierarchy.
//
// Fields:
//  ID          – primary key identifier.
//  Name        – country name.
//  Description – free-form description shown on detail pages.
//  ImageURL    – optional image reference (empty when absent).
//  CreatedAt   – creation timestamp.
//  UpdatedAt   – last update timestamp.
type Country struct {
    ID          uint64    // countries.id
    Name        string    // countries.name
    Description string    // countries.description
    ImageURL    string    // countries.image_url (empty = none)
    CreatedAt   time.Time // countries.created_at
    UpdatedAt   time.Time // countries.updated_at
}

// City belongs to exactly one Country.
type City struct {
    ID          uint64    // cities.id
    CountryID   uint64    // cities.country_id
    Name        string    // cities.name
    Description string    // cities.description
    ImageURL    string    // cities.image_url
    CreatedAt   time.Time // cities.created_at
    UpdatedAt   time.Time // cities.updated_at
}

// Place belongs to exactly one City and may carry any number of
// categories and themes (via the place_categories / place_themes join
// tables).
type Place struct {
    ID          uint64    // places.id
    CityID      uint64    // places.city_id
    Name        string    // places.name
    Description string    // places.description
    ImageURL    string    // places.image_url
    CreatedAt   time.Time // places.created_at
    UpdatedAt   time.Time // places.updated_at
}

// Activity belongs to exactly one Place.
type Activity struct {
    ID          uint64    // activities.id
    PlaceID     uint64    // activities.place_id
    Name        string    // activities.name
    Description string    // activities.description
    ImageURL    string    // activities.image_url
    CreatedAt   time.Time // activities.created_at
    UpdatedAt   time.Time // activities.updated_at
}

// Category is a flat label attached to places (e.g. "Museum").
type Category struct {
    ID        uint64    // categories.id
    Name      string    // categories.name
    CreatedAt time.Time // categories.created_at
}

// Theme is a flat label attached to places (e.g. "Family").  It is
// structurally identical to Category but lives in its own table.
type Theme struct {
    ID        uint64    // themes.id
    Name      string    // themes.name
    CreatedAt time.Time // themes.created_at
}
