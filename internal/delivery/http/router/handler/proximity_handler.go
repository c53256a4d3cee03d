package handler

import (
	"log/slog"
	"net/http"

	"yatra/internal/delivery/http/middleware"
	"yatra/internal/delivery/http/response"
	"yatra/internal/domain/entity"
	"yatra/internal/usecase"

	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"
)

// ProximityHandler exposes the nearby-place notification engine.
type ProximityHandler struct {
	uc     usecase.ProximityUsecase
	logger *slog.Logger
}

// NewProximityHandler is the constructor for ProximityHandler, injected by Fx.
func NewProximityHandler(uc usecase.ProximityUsecase, logger *slog.Logger) *ProximityHandler {
	return &ProximityHandler{
		uc:     uc,
		logger: logger,
	}
}

// StartTracking begins watching the user's location feed.
func (h *ProximityHandler) StartTracking(c echo.Context) error {
	userID, ok := middleware.UserID(c)
	if !ok {
		return response.Unauthorized(c, "INVALID_TOKEN", "Invalid user ID in token")
	}

	if err := h.uc.StartTracking(c.Request().Context(), userID); err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusOK, nil, "Tracking started")
}

// StopTracking cancels the user's location watch.
func (h *ProximityHandler) StopTracking(c echo.Context) error {
	userID, ok := middleware.UserID(c)
	if !ok {
		return response.Unauthorized(c, "INVALID_TOKEN", "Invalid user ID in token")
	}

	if err := h.uc.StopTracking(c.Request().Context(), userID); err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusOK, nil, "Tracking stopped")
}

// RefreshLocation requests one fresh location fix and recomputes.
func (h *ProximityHandler) RefreshLocation(c echo.Context) error {
	userID, ok := middleware.UserID(c)
	if !ok {
		return response.Unauthorized(c, "INVALID_TOKEN", "Invalid user ID in token")
	}

	if err := h.uc.RefreshLocation(c.Request().Context(), userID); err != nil {
		return errors.WithStack(err)
	}

	state, err := h.uc.GetState(c.Request().Context(), userID)
	if err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusOK, state, "Location refreshed")
}

// GetState returns the user's proximity state snapshot.
func (h *ProximityHandler) GetState(c echo.Context) error {
	userID, ok := middleware.UserID(c)
	if !ok {
		return response.Unauthorized(c, "INVALID_TOKEN", "Invalid user ID in token")
	}

	state, err := h.uc.GetState(c.Request().Context(), userID)
	if err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusOK, state, "State retrieved successfully")
}

// GetSettings returns the user's notification settings.
func (h *ProximityHandler) GetSettings(c echo.Context) error {
	userID, ok := middleware.UserID(c)
	if !ok {
		return response.Unauthorized(c, "INVALID_TOKEN", "Invalid user ID in token")
	}

	settings, err := h.uc.GetSettings(c.Request().Context(), userID)
	if err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusOK, settings, "Settings retrieved successfully")
}

// UpdateSettings applies a partial settings update.
func (h *ProximityHandler) UpdateSettings(c echo.Context) error {
	userID, ok := middleware.UserID(c)
	if !ok {
		return response.Unauthorized(c, "INVALID_TOKEN", "Invalid user ID in token")
	}

	var patch entity.NotificationSettingsPatch
	if err := c.Bind(&patch); err != nil {
		return response.BindingError(c, "INVALID_INPUT", "Invalid settings input")
	}

	settings, err := h.uc.UpdateSettings(c.Request().Context(), userID, patch)
	if err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusOK, settings, "Settings updated successfully")
}

// ClearNotifiedPlaces resets the notified-place set.
func (h *ProximityHandler) ClearNotifiedPlaces(c echo.Context) error {
	userID, ok := middleware.UserID(c)
	if !ok {
		return response.Unauthorized(c, "INVALID_TOKEN", "Invalid user ID in token")
	}

	if err := h.uc.ClearNotifiedPlaces(c.Request().Context(), userID); err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusOK, nil, "Notified places cleared")
}
