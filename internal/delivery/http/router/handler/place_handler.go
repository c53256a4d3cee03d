package handler

import (
	"log/slog"
	"net/http"
	"strconv"

	"yatra/internal/delivery/http/response"
	"yatra/internal/domain/entity"
	"yatra/internal/domain/service"
	"yatra/internal/usecase"

	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"
)

// PlaceHandler exposes destination discovery.
type PlaceHandler struct {
	uc     usecase.PlaceUsecase
	logger *slog.Logger
}

// NewPlaceHandler is the constructor for PlaceHandler, injected by Fx.
func NewPlaceHandler(uc usecase.PlaceUsecase, logger *slog.Logger) *PlaceHandler {
	return &PlaceHandler{
		uc:     uc,
		logger: logger,
	}
}

// SearchPlaces runs a destination search with optional filters.
func (h *PlaceHandler) SearchPlaces(c echo.Context) error {
	limit, _ := strconv.Atoi(c.QueryParam("limit"))
	lat, _ := strconv.ParseFloat(c.QueryParam("near_lat"), 64)
	lon, _ := strconv.ParseFloat(c.QueryParam("near_lon"), 64)
	withinKm, _ := strconv.ParseFloat(c.QueryParam("within_km"), 64)

	places, err := h.uc.SearchPlaces(c.Request().Context(), service.PlaceQuery{
		Text:     c.QueryParam("q"),
		City:     c.QueryParam("city"),
		Category: entity.PlaceCategory(c.QueryParam("category")),
		Near:     entity.Coordinate{Latitude: lat, Longitude: lon},
		WithinKm: withinKm,
		Limit:    limit,
	})
	if err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusOK, places, "Places retrieved successfully")
}

// GetPlace returns one destination by ID.
func (h *PlaceHandler) GetPlace(c echo.Context) error {
	place, err := h.uc.GetPlace(c.Request().Context(), c.Param("id"))
	if err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusOK, place, "Place retrieved successfully")
}

// ListPlacesByCity returns all catalogued destinations in a city.
func (h *PlaceHandler) ListPlacesByCity(c echo.Context) error {
	places, err := h.uc.ListPlacesByCity(c.Request().Context(), c.Param("city"))
	if err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusOK, places, "Places retrieved successfully")
}
