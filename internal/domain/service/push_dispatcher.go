package service

import (
	"context"

	"yatra/internal/domain/entity"

	"github.com/google/uuid"
)

// PushDispatcher emits user-visible notifications. Delivery is best-effort:
// Dispatch never returns an error to the caller, mirroring platform
// notification APIs where failures are unobservable.
type PushDispatcher interface {
	// RequestPermission reports whether the user can currently receive
	// push notifications. It never fails; absence of a registered
	// push-enabled device reads as false.
	RequestPermission(ctx context.Context, userID uuid.UUID) bool

	// Dispatch sends a nearby-place alert. The place ID doubles as the
	// collapse tag so the platform coalesces duplicate alerts per place.
	Dispatch(ctx context.Context, userID uuid.UUID, place entity.NearbyPlace)

	// DispatchBooking sends a booking confirmation push.
	DispatchBooking(ctx context.Context, userID uuid.UUID, booking *entity.Booking)
}
