package usecase

import (
	"context"
	"time"

	"yatra/internal/domain/entity"
	"yatra/internal/domain/service"

	"github.com/google/uuid"
)

// FareQuoteInput describes a fare search for either flights or hotels.
type FareQuoteInput struct {
	Type        entity.BookingType `json:"type"`
	Origin      string             `json:"origin"`
	Destination string             `json:"destination"`
	StartDate   time.Time          `json:"start_date"`
	EndDate     time.Time          `json:"end_date"`
	Guests      int                `json:"guests"`
	Rooms       int                `json:"rooms"`
}

// FareQuote is a single priced option returned by a fare search.
type FareQuote struct {
	ProviderRef string  `json:"provider_ref"`
	Description string  `json:"description"`
	Currency    string  `json:"currency"`
	Amount      float64 `json:"amount"`
	Estimated   bool    `json:"estimated"`
}

// CreateBookingInput carries everything needed to price and persist a booking.
type CreateBookingInput struct {
	Type        entity.BookingType
	Destination string
	Origin      string
	StartDate   time.Time
	EndDate     time.Time
	Guests      int
	Rooms       int
	DistanceKm  float64
	ProviderRef string
	BaseAmount  float64
}

// BookingUsecase defines the interface for booking management use cases
type BookingUsecase interface {
	// QuoteFares searches live fares, falling back to estimated fares when
	// the provider is unavailable.
	QuoteFares(ctx context.Context, input FareQuoteInput) ([]FareQuote, error)

	// CreateBooking prices the booking, persists it as pending and publishes
	// a booking event for confirmation fan-out.
	CreateBooking(ctx context.Context, userID uuid.UUID, input CreateBookingInput) (*entity.Booking, error)

	// GetBooking returns a booking owned by the user.
	GetBooking(ctx context.Context, userID, bookingID uuid.UUID) (*entity.Booking, error)

	// ListBookings returns the user's bookings with pagination, newest first.
	ListBookings(ctx context.Context, userID uuid.UUID, limit, offset int) ([]*entity.Booking, error)

	// CancelBooking cancels a pending or confirmed booking owned by the user.
	CancelBooking(ctx context.Context, userID, bookingID uuid.UUID) (*entity.Booking, error)

	// BookingQRCode renders the booking reference as a PNG QR code.
	BookingQRCode(ctx context.Context, userID, bookingID uuid.UUID) ([]byte, error)

	// ItineraryPDF renders a printable itinerary for the booking.
	ItineraryPDF(ctx context.Context, userID, bookingID uuid.UUID) ([]byte, error)

	// ConfirmBooking marks a booking confirmed and sends its confirmations
	// over every reachable channel. Invoked by the notification worker.
	ConfirmBooking(ctx context.Context, event service.BookingEvent) ([]entity.ConfirmationResult, error)
}
