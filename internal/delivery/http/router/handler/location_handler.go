package handler

import (
	"log/slog"
	"net/http"
	"time"

	"yatra/internal/delivery/http/middleware"
	"yatra/internal/delivery/http/response"
	"yatra/internal/domain/entity"
	"yatra/internal/domain/service"
	"yatra/internal/infra/geolocate"

	"github.com/labstack/echo/v4"
)

// LocationHandler ingests positioning fixes and failures from devices.
type LocationHandler struct {
	feed   *geolocate.Provider
	logger *slog.Logger
}

// NewLocationHandler is the constructor for LocationHandler, injected by Fx.
func NewLocationHandler(feed *geolocate.Provider, logger *slog.Logger) *LocationHandler {
	return &LocationHandler{
		feed:   feed,
		logger: logger,
	}
}

type sampleRequest struct {
	Latitude       float64   `json:"latitude"`
	Longitude      float64   `json:"longitude"`
	AccuracyMeters float64   `json:"accuracy_meters"`
	CapturedAt     time.Time `json:"captured_at"`
}

// ReportSample records a fresh positioning fix for the user.
func (h *LocationHandler) ReportSample(c echo.Context) error {
	userID, ok := middleware.UserID(c)
	if !ok {
		return response.Unauthorized(c, "INVALID_TOKEN", "Invalid user ID in token")
	}

	var req sampleRequest
	if err := c.Bind(&req); err != nil {
		return response.BindingError(c, "INVALID_INPUT", "Invalid location sample")
	}

	coordinate := entity.Coordinate{Latitude: req.Latitude, Longitude: req.Longitude}
	if !coordinate.Valid() {
		return response.BadRequest(c, "INVALID_INPUT", "Coordinate out of WGS84 bounds")
	}

	h.feed.Report(userID, entity.LocationSample{
		Coordinate:     coordinate,
		AccuracyMeters: req.AccuracyMeters,
		CapturedAt:     req.CapturedAt,
	})

	return response.Success(c, http.StatusAccepted, nil, "Sample recorded")
}

type locationErrorRequest struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

// ReportError records a positioning failure for the user.
func (h *LocationHandler) ReportError(c echo.Context) error {
	userID, ok := middleware.UserID(c)
	if !ok {
		return response.Unauthorized(c, "INVALID_TOKEN", "Invalid user ID in token")
	}

	var req locationErrorRequest
	if err := c.Bind(&req); err != nil {
		return response.BindingError(c, "INVALID_INPUT", "Invalid location error")
	}

	code := service.LocationErrorCode(req.Code)
	switch code {
	case service.LocationNotSupported, service.LocationPermissionDenied,
		service.LocationPositionUnavailable, service.LocationTimeout:
	default:
		return response.BadRequest(c, "INVALID_INPUT", "Unknown location error code")
	}

	h.feed.ReportError(userID, &service.LocationError{Code: code, Message: req.Message})

	return response.Success(c, http.StatusAccepted, nil, "Error recorded")
}
