package handler

import (
	"log/slog"
	"net/http"
	"strconv"
	"time"

	"yatra/internal/delivery/http/middleware"
	"yatra/internal/delivery/http/response"
	"yatra/internal/domain/entity"
	"yatra/internal/usecase"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"
)

// BookingHandler exposes fare search and booking management.
type BookingHandler struct {
	uc     usecase.BookingUsecase
	logger *slog.Logger
}

// NewBookingHandler is the constructor for BookingHandler, injected by Fx.
func NewBookingHandler(uc usecase.BookingUsecase, logger *slog.Logger) *BookingHandler {
	return &BookingHandler{
		uc:     uc,
		logger: logger,
	}
}

type quoteRequest struct {
	Type        string `json:"type"`
	Origin      string `json:"origin"`
	Destination string `json:"destination"`
	StartDate   string `json:"start_date"`
	EndDate     string `json:"end_date"`
	Guests      int    `json:"guests"`
	Rooms       int    `json:"rooms"`
}

// QuoteFares searches fares for a trip.
func (h *BookingHandler) QuoteFares(c echo.Context) error {
	var req quoteRequest
	if err := c.Bind(&req); err != nil {
		return response.BindingError(c, "INVALID_INPUT", "Invalid quote input")
	}

	start, end, err := parseDateRange(req.StartDate, req.EndDate)
	if err != nil {
		return response.BadRequest(c, "INVALID_INPUT", err.Error())
	}

	quotes, err := h.uc.QuoteFares(c.Request().Context(), usecase.FareQuoteInput{
		Type:        entity.BookingType(req.Type),
		Origin:      req.Origin,
		Destination: req.Destination,
		StartDate:   start,
		EndDate:     end,
		Guests:      req.Guests,
		Rooms:       req.Rooms,
	})
	if err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusOK, quotes, "Fares retrieved successfully")
}

type createBookingRequest struct {
	Type        string  `json:"type"`
	Destination string  `json:"destination"`
	Origin      string  `json:"origin"`
	StartDate   string  `json:"start_date"`
	EndDate     string  `json:"end_date"`
	Guests      int     `json:"guests"`
	Rooms       int     `json:"rooms"`
	DistanceKm  float64 `json:"distance_km"`
	ProviderRef string  `json:"provider_ref"`
	BaseAmount  float64 `json:"base_amount"`
}

// CreateBooking prices and persists a new booking.
func (h *BookingHandler) CreateBooking(c echo.Context) error {
	userID, ok := middleware.UserID(c)
	if !ok {
		return response.Unauthorized(c, "INVALID_TOKEN", "Invalid user ID in token")
	}

	var req createBookingRequest
	if err := c.Bind(&req); err != nil {
		return response.BindingError(c, "INVALID_INPUT", "Invalid booking input")
	}

	start, end, err := parseDateRange(req.StartDate, req.EndDate)
	if err != nil {
		return response.BadRequest(c, "INVALID_INPUT", err.Error())
	}

	booking, err := h.uc.CreateBooking(c.Request().Context(), userID, usecase.CreateBookingInput{
		Type:        entity.BookingType(req.Type),
		Destination: req.Destination,
		Origin:      req.Origin,
		StartDate:   start,
		EndDate:     end,
		Guests:      req.Guests,
		Rooms:       req.Rooms,
		DistanceKm:  req.DistanceKm,
		ProviderRef: req.ProviderRef,
		BaseAmount:  req.BaseAmount,
	})
	if err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusCreated, booking, "Booking created successfully")
}

// GetBooking returns one booking owned by the caller.
func (h *BookingHandler) GetBooking(c echo.Context) error {
	userID, bookingID, ok := h.bookingScope(c)
	if !ok {
		return nil
	}

	booking, err := h.uc.GetBooking(c.Request().Context(), userID, bookingID)
	if err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusOK, booking, "Booking retrieved successfully")
}

// ListBookings returns the caller's bookings, newest first.
func (h *BookingHandler) ListBookings(c echo.Context) error {
	userID, ok := middleware.UserID(c)
	if !ok {
		return response.Unauthorized(c, "INVALID_TOKEN", "Invalid user ID in token")
	}

	limit, _ := strconv.Atoi(c.QueryParam("limit"))
	offset, _ := strconv.Atoi(c.QueryParam("offset"))

	bookings, err := h.uc.ListBookings(c.Request().Context(), userID, limit, offset)
	if err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusOK, bookings, "Bookings retrieved successfully")
}

// CancelBooking cancels a pending or confirmed booking.
func (h *BookingHandler) CancelBooking(c echo.Context) error {
	userID, bookingID, ok := h.bookingScope(c)
	if !ok {
		return nil
	}

	booking, err := h.uc.CancelBooking(c.Request().Context(), userID, bookingID)
	if err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusOK, booking, "Booking cancelled successfully")
}

// BookingQRCode streams the booking reference as a PNG QR code.
func (h *BookingHandler) BookingQRCode(c echo.Context) error {
	userID, bookingID, ok := h.bookingScope(c)
	if !ok {
		return nil
	}

	png, err := h.uc.BookingQRCode(c.Request().Context(), userID, bookingID)
	if err != nil {
		return errors.WithStack(err)
	}

	return c.Blob(http.StatusOK, "image/png", png)
}

// ItineraryPDF streams a printable itinerary for the booking.
func (h *BookingHandler) ItineraryPDF(c echo.Context) error {
	userID, bookingID, ok := h.bookingScope(c)
	if !ok {
		return nil
	}

	doc, err := h.uc.ItineraryPDF(c.Request().Context(), userID, bookingID)
	if err != nil {
		return errors.WithStack(err)
	}

	c.Response().Header().Set(echo.HeaderContentDisposition, `attachment; filename="itinerary.pdf"`)

	return c.Blob(http.StatusOK, "application/pdf", doc)
}

// bookingScope extracts the caller and booking IDs. When it cannot, the
// error response has already been written and done is false.
func (h *BookingHandler) bookingScope(c echo.Context) (userID, bookingID uuid.UUID, done bool) {
	userID, ok := middleware.UserID(c)
	if !ok {
		_ = response.Unauthorized(c, "INVALID_TOKEN", "Invalid user ID in token")
		return uuid.Nil, uuid.Nil, false
	}

	bookingID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		_ = response.BadRequest(c, "INVALID_INPUT", "Invalid booking ID")
		return uuid.Nil, uuid.Nil, false
	}

	return userID, bookingID, true
}

// parseDateRange parses ISO dates; the end date may be empty.
func parseDateRange(startStr, endStr string) (time.Time, time.Time, error) {
	var start, end time.Time
	var err error

	if startStr != "" {
		if start, err = time.Parse("2006-01-02", startStr); err != nil {
			return time.Time{}, time.Time{}, errors.New("start_date must be formatted YYYY-MM-DD")
		}
	}
	if endStr != "" {
		if end, err = time.Parse("2006-01-02", endStr); err != nil {
			return time.Time{}, time.Time{}, errors.New("end_date must be formatted YYYY-MM-DD")
		}
	}

	return start, end, nil
}
