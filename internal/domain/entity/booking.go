package entity

import (
	"time"

	"github.com/google/uuid"
)

// BookingType identifies what is being booked.
type BookingType string

const (
	BookingHotel  BookingType = "hotel"
	BookingCab    BookingType = "cab"
	BookingFlight BookingType = "flight"
)

// Valid reports whether the booking type is one of the known values.
func (t BookingType) Valid() bool {
	switch t {
	case BookingHotel, BookingCab, BookingFlight:
		return true
	}

	return false
}

// BookingStatus is the lifecycle state of a booking.
type BookingStatus string

const (
	BookingPending   BookingStatus = "pending"
	BookingConfirmed BookingStatus = "confirmed"
	BookingCancelled BookingStatus = "cancelled"
	BookingCompleted BookingStatus = "completed"
)

// Booking is a confirmed or pending reservation made through the assistant.
type Booking struct {
	ID        uuid.UUID   `json:"id"`        // The Global Unique Identifier (GUID) for the booking.
	UserID    uuid.UUID   `json:"user_id"`   // The ID of the user who made the booking.
	Reference string      `json:"reference"` // Human-facing reference, e.g. "YTR-4F7A21BC".
	Type      BookingType `json:"type"`

	// What was booked; exactly the fields relevant to the type are set.
	Destination string    `json:"destination"`           // City or place name.
	Origin      string    `json:"origin,omitempty"`      // Flights and cabs only.
	StartDate   time.Time `json:"start_date"`            // Check-in / pickup / departure.
	EndDate     time.Time `json:"end_date,omitempty"`    // Check-out / return; zero for one-way.
	Guests      int       `json:"guests"`                // Passengers or guests.
	Rooms       int       `json:"rooms,omitempty"`       // Hotels only.
	ProviderRef string    `json:"provider_ref,omitempty"` // Upstream offer ID when priced live.

	// Pricing breakdown in the booking currency.
	Currency    string  `json:"currency"`
	BaseAmount  float64 `json:"base_amount"`
	ServiceFee  float64 `json:"service_fee"`
	TaxAmount   float64 `json:"tax_amount"`
	TotalAmount float64 `json:"total_amount"`
	Estimated   bool    `json:"estimated"` // True when priced from fallback data, not a live fare.

	Status    BookingStatus `json:"status"`
	CreatedAt time.Time     `json:"created_at"`
	UpdatedAt time.Time     `json:"updated_at"`
}

// ConfirmationChannel names one delivery channel of the confirmation fan-out.
type ConfirmationChannel string

const (
	ChannelEmail    ConfirmationChannel = "email"
	ChannelSMS      ConfirmationChannel = "sms"
	ChannelWhatsApp ConfirmationChannel = "whatsapp"
	ChannelPush     ConfirmationChannel = "push"
)

// ConfirmationResult records the outcome of one channel of the fan-out.
type ConfirmationResult struct {
	Channel ConfirmationChannel `json:"channel"`
	Sent    bool                `json:"sent"`
	Error   string              `json:"error,omitempty"`
}
