package handler

import (
    "context"
    "errors"
    "net/http"

    "github.com/labstack/echo/v4"

    "github.com/voyago/travel-reservation/internal/model"
    "github.com/voyago/travel-reservation/internal/repository"
)

// CatalogHandler serves the staff-facing catalog writes.  Reads stay
// on the public browse surface; this handler only mutates.
type CatalogHandler struct {
    Countries  *repository.CountryRepo
    Cities     *repository.CityRepo
    Places     *repository.PlaceRepo
    Activities *repository.ActivityRepo
    Categories *repository.LabelRepo
    Themes     *repository.LabelRepo
}

func NewCatalogHandler(
    countries *repository.CountryRepo,
    cities *repository.CityRepo,
    places *repository.PlaceRepo,
    activities *repository.ActivityRepo,
    categories *repository.LabelRepo,
    themes *repository.LabelRepo,
) *CatalogHandler {
    return &CatalogHandler{
        Countries:  countries,
        Cities:     cities,
        Places:     places,
        Activities: activities,
        Categories: categories,
        Themes:     themes,
    }
}

// ----- DTOs -----

type countryReq struct {
    Name        string `json:"name" validate:"required"`
    Description string `json:"description"`
    ImageURL    string `json:"image_url"`
}

type cityReq struct {
    CountryID   uint64 `json:"country_id" validate:"required"`
    Name        string `json:"name" validate:"required"`
    Description string `json:"description"`
    ImageURL    string `json:"image_url"`
}

type placeReq struct {
    CityID      uint64   `json:"city_id" validate:"required"`
    Name        string   `json:"name" validate:"required"`
    Description string   `json:"description"`
    ImageURL    string   `json:"image_url"`
    CategoryIDs []uint64 `json:"category_ids"`
    ThemeIDs    []uint64 `json:"theme_ids"`
}

type activityReq struct {
    PlaceID     uint64 `json:"place_id" validate:"required"`
    Name        string `json:"name" validate:"required"`
    Description string `json:"description"`
    ImageURL    string `json:"image_url"`
}

type labelReq struct {
    Name string `json:"name" validate:"required"`
}

// ----- countries -----

func (h *CatalogHandler) CreateCountry(c echo.Context) error {
    var req countryReq
    if !bindAndValidate(c, &req) {
        return nil
    }
    ctx, cancel := context.WithTimeout(c.Request().Context(), dbTimeout)
    defer cancel()

    country := &model.Country{Name: req.Name, Description: req.Description, ImageURL: req.ImageURL}
    if err := h.Countries.Create(ctx, country); err != nil {
        return writeRepoErr(c, err)
    }
    return c.JSON(http.StatusCreated, echo.Map{"country": country})
}

func (h *CatalogHandler) UpdateCountry(c echo.Context) error {
    id := paramID(c, "id")
    if id == 0 {
        return nil
    }
    var req countryReq
    if !bindAndValidate(c, &req) {
        return nil
    }
    ctx, cancel := context.WithTimeout(c.Request().Context(), dbTimeout)
    defer cancel()

    country := &model.Country{ID: id, Name: req.Name, Description: req.Description, ImageURL: req.ImageURL}
    if err := h.Countries.Update(ctx, country); err != nil {
        return writeRepoErr(c, err)
    }
    return c.JSON(http.StatusOK, echo.Map{"country": country})
}

// DeleteCountry refuses to delete a country that still has cities;
// the 409 tells the operator to clear children first.
func (h *CatalogHandler) DeleteCountry(c echo.Context) error {
    id := paramID(c, "id")
    if id == 0 {
        return nil
    }
    ctx, cancel := context.WithTimeout(c.Request().Context(), dbTimeout)
    defer cancel()

    if err := h.Countries.Delete(ctx, id); err != nil {
        return writeRepoErr(c, err)
    }
    return c.NoContent(http.StatusNoContent)
}

// ----- cities -----

func (h *CatalogHandler) CreateCity(c echo.Context) error {
    var req cityReq
    if !bindAndValidate(c, &req) {
        return nil
    }
    ctx, cancel := context.WithTimeout(c.Request().Context(), dbTimeout)
    defer cancel()

    city := &model.City{CountryID: req.CountryID, Name: req.Name, Description: req.Description, ImageURL: req.ImageURL}
    if err := h.Cities.Create(ctx, city); err != nil {
        return writeRepoErr(c, err)
    }
    return c.JSON(http.StatusCreated, echo.Map{"city": city})
}

func (h *CatalogHandler) UpdateCity(c echo.Context) error {
    id := paramID(c, "id")
    if id == 0 {
        return nil
    }
    var req cityReq
    if !bindAndValidate(c, &req) {
        return nil
    }
    ctx, cancel := context.WithTimeout(c.Request().Context(), dbTimeout)
    defer cancel()

    city := &model.City{ID: id, CountryID: req.CountryID, Name: req.Name, Description: req.Description, ImageURL: req.ImageURL}
    if err := h.Cities.Update(ctx, city); err != nil {
        return writeRepoErr(c, err)
    }
    return c.JSON(http.StatusOK, echo.Map{"city": city})
}

func (h *CatalogHandler) DeleteCity(c echo.Context) error {
    id := paramID(c, "id")
    if id == 0 {
        return nil
    }
    ctx, cancel := context.WithTimeout(c.Request().Context(), dbTimeout)
    defer cancel()

    if err := h.Cities.Delete(ctx, id); err != nil {
        return writeRepoErr(c, err)
    }
    return c.NoContent(http.StatusNoContent)
}

// ----- places -----

func (h *CatalogHandler) CreatePlace(c echo.Context) error {
    var req placeReq
    if !bindAndValidate(c, &req) {
        return nil
    }
    ctx, cancel := context.WithTimeout(c.Request().Context(), dbTimeout)
    defer cancel()

    place := &model.Place{CityID: req.CityID, Name: req.Name, Description: req.Description, ImageURL: req.ImageURL}
    if err := h.Places.Create(ctx, place, req.CategoryIDs, req.ThemeIDs); err != nil {
        return writeRepoErr(c, err)
    }
    return c.JSON(http.StatusCreated, echo.Map{"place": place})
}

func (h *CatalogHandler) UpdatePlace(c echo.Context) error {
    id := paramID(c, "id")
    if id == 0 {
        return nil
    }
    var req placeReq
    if !bindAndValidate(c, &req) {
        return nil
    }
    ctx, cancel := context.WithTimeout(c.Request().Context(), dbTimeout)
    defer cancel()

    place := &model.Place{ID: id, CityID: req.CityID, Name: req.Name, Description: req.Description, ImageURL: req.ImageURL}
    if err := h.Places.Update(ctx, place, req.CategoryIDs, req.ThemeIDs); err != nil {
        return writeRepoErr(c, err)
    }
    return c.JSON(http.StatusOK, echo.Map{"place": place})
}

func (h *CatalogHandler) DeletePlace(c echo.Context) error {
    id := paramID(c, "id")
    if id == 0 {
        return nil
    }
    ctx, cancel := context.WithTimeout(c.Request().Context(), dbTimeout)
    defer cancel()

    if err := h.Places.Delete(ctx, id); err != nil {
        return writeRepoErr(c, err)
    }
    return c.NoContent(http.StatusNoContent)
}

// ----- activities -----

func (h *CatalogHandler) CreateActivity(c echo.Context) error {
    var req activityReq
    if !bindAndValidate(c, &req) {
        return nil
    }
    ctx, cancel := context.WithTimeout(c.Request().Context(), dbTimeout)
    defer cancel()

    a := &model.Activity{PlaceID: req.PlaceID, Name: req.Name, Description: req.Description, ImageURL: req.ImageURL}
    if err := h.Activities.Create(ctx, a); err != nil {
        return writeRepoErr(c, err)
    }
    return c.JSON(http.StatusCreated, echo.Map{"activity": a})
}

func (h *CatalogHandler) UpdateActivity(c echo.Context) error {
    id := paramID(c, "id")
    if id == 0 {
        return nil
    }
    var req activityReq
    if !bindAndValidate(c, &req) {
        return nil
    }
    ctx, cancel := context.WithTimeout(c.Request().Context(), dbTimeout)
    defer cancel()

    a := &model.Activity{ID: id, PlaceID: req.PlaceID, Name: req.Name, Description: req.Description, ImageURL: req.ImageURL}
    if err := h.Activities.Update(ctx, a); err != nil {
        return writeRepoErr(c, err)
    }
    return c.JSON(http.StatusOK, echo.Map{"activity": a})
}

func (h *CatalogHandler) DeleteActivity(c echo.Context) error {
    id := paramID(c, "id")
    if id == 0 {
        return nil
    }
    ctx, cancel := context.WithTimeout(c.Request().Context(), dbTimeout)
    defer cancel()

    if err := h.Activities.Delete(ctx, id); err != nil {
        return writeRepoErr(c, err)
    }
    return c.NoContent(http.StatusNoContent)
}

// ----- labels -----

func (h *CatalogHandler) createLabel(c echo.Context, repo *repository.LabelRepo, kind string) error {
    var req labelReq
    if !bindAndValidate(c, &req) {
        return nil
    }
    ctx, cancel := context.WithTimeout(c.Request().Context(), dbTimeout)
    defer cancel()

    id, err := repo.Create(ctx, req.Name)
    if err != nil {
        if errors.Is(err, repository.ErrLabelExists) {
            return c.JSON(http.StatusConflict, echo.Map{"error": kind + " already exists"})
        }
        return writeRepoErr(c, err)
    }
    return c.JSON(http.StatusCreated, echo.Map{"id": id, "name": req.Name})
}

func (h *CatalogHandler) deleteLabel(c echo.Context, repo *repository.LabelRepo) error {
    id := paramID(c, "id")
    if id == 0 {
        return nil
    }
    ctx, cancel := context.WithTimeout(c.Request().Context(), dbTimeout)
    defer cancel()

    if err := repo.Delete(ctx, id); err != nil {
        return writeRepoErr(c, err)
    }
    return c.NoContent(http.StatusNoContent)
}

func (h *CatalogHandler) CreateCategory(c echo.Context) error { return h.createLabel(c, h.Categories, "category") }
func (h *CatalogHandler) DeleteCategory(c echo.Context) error { return h.deleteLabel(c, h.Categories) }
func (h *CatalogHandler) CreateTheme(c echo.Context) error    { return h.createLabel(c, h.Themes, "theme") }
func (h *CatalogHandler) DeleteTheme(c echo.Context) error    { return h.deleteLabel(c, h.Themes) }
