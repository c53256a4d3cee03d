package repository

import (
	"context"
	"errors"

	"yatra/internal/domain/entity"

	"github.com/google/uuid"
)

// ErrBookingNotFound is returned when no booking matches the lookup.
var ErrBookingNotFound = errors.New("booking not found")

// BookingRepository persists bookings.
type BookingRepository interface {
	CreateBooking(ctx context.Context, booking *entity.Booking) error
	FindBookingByID(ctx context.Context, id uuid.UUID) (*entity.Booking, error)
	FindBookingByReference(ctx context.Context, reference string) (*entity.Booking, error)
	FindBookingsByUser(ctx context.Context, userID uuid.UUID, limit, offset int) ([]*entity.Booking, error)
	UpdateBookingStatus(ctx context.Context, id uuid.UUID, status entity.BookingStatus) error
}
