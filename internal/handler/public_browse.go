package handler

import (
    "context"
    "net/http"
    "strconv"
    "strings"
    "time"

    "github.com/labstack/echo/v4"

    "github.com/voyago/travel-reservation/internal/model"
    "github.com/voyago/travel-reservation/internal/pagination"
    "github.com/voyago/travel-reservation/internal/repository"
)

// BrowseHandler serves the unauthenticated catalog surface.  Every
// list endpoint accepts ?q= (case-insensitive name search), ?page=
// and ?page_size=; filtering happens before pagination so page counts
// reflect the filtered set.
type BrowseHandler struct {
    Countries  *repository.CountryRepo
    Cities     *repository.CityRepo
    Places     *repository.PlaceRepo
    Activities *repository.ActivityRepo
    Categories *repository.LabelRepo
    Themes     *repository.LabelRepo
    Hotels     *repository.HotelRepo
    RoomTypes  *repository.RoomTypeRepo
    Trips      *repository.TripRepo
}

func NewBrowseHandler(
    countries *repository.CountryRepo,
    cities *repository.CityRepo,
    places *repository.PlaceRepo,
    activities *repository.ActivityRepo,
    categories *repository.LabelRepo,
    themes *repository.LabelRepo,
    hotels *repository.HotelRepo,
    roomTypes *repository.RoomTypeRepo,
    trips *repository.TripRepo,
) *BrowseHandler {
    return &BrowseHandler{
        Countries:  countries,
        Cities:     cities,
        Places:     places,
        Activities: activities,
        Categories: categories,
        Themes:     themes,
        Hotels:     hotels,
        RoomTypes:  roomTypes,
        Trips:      trips,
    }
}

// nameMatches implements the ?q= contract: substring match on the
// name, ignoring case.  An empty query matches everything.
func nameMatches(name, q string) bool {
    if q == "" {
        return true
    }
    return strings.Contains(strings.ToLower(name), strings.ToLower(q))
}

// listPage applies q-filter then pagination to a loaded slice and
// writes the standard page envelope.
func listPage[T any](c echo.Context, items []T, name func(T) string) error {
    q := strings.TrimSpace(c.QueryParam("q"))
    filtered := pagination.Filter(items, func(it T) bool { return nameMatches(name(it), q) })
    page, size := pageParams(c)
    return c.JSON(http.StatusOK, pagination.Paginate(filtered, page, size))
}

// ----- countries -----

func (h *BrowseHandler) ListCountries(c echo.Context) error {
    ctx, cancel := context.WithTimeout(c.Request().Context(), dbTimeout)
    defer cancel()

    items, err := h.Countries.ListAll(ctx)
    if err != nil {
        return writeRepoErr(c, err)
    }
    return listPage(c, items, func(x *model.Country) string { return x.Name })
}

func (h *BrowseHandler) GetCountry(c echo.Context) error {
    id := paramID(c, "id")
    if id == 0 {
        return nil
    }
    ctx, cancel := context.WithTimeout(c.Request().Context(), dbTimeout)
    defer cancel()

    country, err := h.Countries.GetByID(ctx, id)
    if err != nil {
        return writeRepoErr(c, err)
    }
    return c.JSON(http.StatusOK, echo.Map{"country": country})
}

// ----- cities -----

func (h *BrowseHandler) ListCities(c echo.Context) error {
    countryID := paramID(c, "id")
    if countryID == 0 {
        return nil
    }
    ctx, cancel := context.WithTimeout(c.Request().Context(), dbTimeout)
    defer cancel()

    items, err := h.Cities.List(ctx, countryID)
    if err != nil {
        return writeRepoErr(c, err)
    }
    return listPage(c, items, func(x *model.City) string { return x.Name })
}

func (h *BrowseHandler) GetCity(c echo.Context) error {
    id := paramID(c, "id")
    if id == 0 {
        return nil
    }
    ctx, cancel := context.WithTimeout(c.Request().Context(), dbTimeout)
    defer cancel()

    city, err := h.Cities.GetByID(ctx, id)
    if err != nil {
        return writeRepoErr(c, err)
    }
    return c.JSON(http.StatusOK, echo.Map{"city": city})
}

// ----- places -----

// ListPlaces lists the places of a city, optionally narrowed to one
// category with ?category_id=.
func (h *BrowseHandler) ListPlaces(c echo.Context) error {
    cityID := paramID(c, "id")
    if cityID == 0 {
        return nil
    }
    categoryID, _ := strconv.ParseUint(c.QueryParam("category_id"), 10, 64)

    ctx, cancel := context.WithTimeout(c.Request().Context(), dbTimeout)
    defer cancel()

    items, err := h.Places.List(ctx, cityID, categoryID)
    if err != nil {
        return writeRepoErr(c, err)
    }
    return listPage(c, items, func(x *model.Place) string { return x.Name })
}

func (h *BrowseHandler) GetPlace(c echo.Context) error {
    id := paramID(c, "id")
    if id == 0 {
        return nil
    }
    ctx, cancel := context.WithTimeout(c.Request().Context(), dbTimeout)
    defer cancel()

    place, err := h.Places.GetByID(ctx, id)
    if err != nil {
        return writeRepoErr(c, err)
    }
    cats, themes, err := h.Places.Labels(ctx, id)
    if err != nil {
        return writeRepoErr(c, err)
    }
    return c.JSON(http.StatusOK, echo.Map{
        "place":      place,
        "categories": cats,
        "themes":     themes,
    })
}

// ----- activities -----

func (h *BrowseHandler) ListActivities(c echo.Context) error {
    placeID := paramID(c, "id")
    if placeID == 0 {
        return nil
    }
    ctx, cancel := context.WithTimeout(c.Request().Context(), dbTimeout)
    defer cancel()

    items, err := h.Activities.List(ctx, placeID)
    if err != nil {
        return writeRepoErr(c, err)
    }
    return listPage(c, items, func(x *model.Activity) string { return x.Name })
}

// ----- labels -----

// ListLabels returns all categories and themes in one response; the
// browse UI needs both to render filters.
func (h *BrowseHandler) ListLabels(c echo.Context) error {
    ctx, cancel := context.WithTimeout(c.Request().Context(), dbTimeout)
    defer cancel()

    cats, err := h.Categories.ListAll(ctx)
    if err != nil {
        return writeRepoErr(c, err)
    }
    themes, err := h.Themes.ListAll(ctx)
    if err != nil {
        return writeRepoErr(c, err)
    }
    return c.JSON(http.StatusOK, echo.Map{"categories": cats, "themes": themes})
}

// ----- hotels -----

func (h *BrowseHandler) ListHotels(c echo.Context) error {
    cityID := paramID(c, "id")
    if cityID == 0 {
        return nil
    }
    ctx, cancel := context.WithTimeout(c.Request().Context(), dbTimeout)
    defer cancel()

    items, err := h.Hotels.List(ctx, cityID)
    if err != nil {
        return writeRepoErr(c, err)
    }
    return listPage(c, items, func(x *model.Hotel) string { return x.Name })
}

func (h *BrowseHandler) GetHotel(c echo.Context) error {
    id := paramID(c, "id")
    if id == 0 {
        return nil
    }
    ctx, cancel := context.WithTimeout(c.Request().Context(), dbTimeout)
    defer cancel()

    hotel, err := h.Hotels.GetByID(ctx, id)
    if err != nil {
        return writeRepoErr(c, err)
    }
    return c.JSON(http.StatusOK, echo.Map{"hotel": hotel})
}

// roomTypeView is a room type plus its availability count when the
// client asked for a date range.
type roomTypeView struct {
    *model.RoomType
    AvailableRooms *int `json:"available_rooms,omitempty"`
}

// ListRoomTypes lists a hotel's room types.  When ?start= and ?end=
// are both present (YYYY-MM-DD, half-open) each entry carries the
// number of rooms still free for that range.
func (h *BrowseHandler) ListRoomTypes(c echo.Context) error {
    hotelID := paramID(c, "id")
    if hotelID == 0 {
        return nil
    }
    ctx, cancel := context.WithTimeout(c.Request().Context(), dbTimeout)
    defer cancel()

    if _, err := h.Hotels.GetByID(ctx, hotelID); err != nil {
        return writeRepoErr(c, err)
    }
    items, err := h.RoomTypes.ListByHotel(ctx, hotelID)
    if err != nil {
        return writeRepoErr(c, err)
    }

    views := make([]roomTypeView, 0, len(items))
    startRaw, endRaw := c.QueryParam("start"), c.QueryParam("end")
    withAvail := startRaw != "" && endRaw != ""
    var start, end time.Time
    if withAvail {
        var err error
        start, err = parseDate(startRaw)
        if err == nil {
            end, err = parseDate(endRaw)
        }
        if err != nil || !start.Before(end) {
            return c.JSON(http.StatusBadRequest, echo.Map{"error": "start must precede end, format YYYY-MM-DD"})
        }
    }
    for _, rt := range items {
        v := roomTypeView{RoomType: rt}
        if withAvail {
            n, err := h.RoomTypes.AvailableRoomCount(ctx, rt.ID, start, end)
            if err != nil {
                return writeRepoErr(c, err)
            }
            v.AvailableRooms = &n
        }
        views = append(views, v)
    }
    return listPage(c, views, func(x roomTypeView) string { return x.Name })
}

// ----- trips -----

func (h *BrowseHandler) ListTrips(c echo.Context) error {
    cityID := paramID(c, "id")
    if cityID == 0 {
        return nil
    }
    ctx, cancel := context.WithTimeout(c.Request().Context(), dbTimeout)
    defer cancel()

    items, err := h.Trips.List(ctx, cityID)
    if err != nil {
        return writeRepoErr(c, err)
    }
    return listPage(c, items, func(x *model.Trip) string { return x.Name })
}

func (h *BrowseHandler) GetTrip(c echo.Context) error {
    id := paramID(c, "id")
    if id == 0 {
        return nil
    }
    ctx, cancel := context.WithTimeout(c.Request().Context(), dbTimeout)
    defer cancel()

    trip, err := h.Trips.GetByID(ctx, id)
    if err != nil {
        return writeRepoErr(c, err)
    }
    return c.JSON(http.StatusOK, echo.Map{"trip": trip})
}
