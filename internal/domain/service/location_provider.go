// Package service defines the capability interfaces the use cases depend on.
// Implementations live under internal/infra.
package service

import (
	"context"
	"time"

	"yatra/internal/domain/entity"

	"github.com/google/uuid"
)

// LocationErrorCode classifies why a position could not be acquired.
type LocationErrorCode string

const (
	LocationNotSupported        LocationErrorCode = "NOT_SUPPORTED"
	LocationPermissionDenied    LocationErrorCode = "PERMISSION_DENIED"
	LocationPositionUnavailable LocationErrorCode = "POSITION_UNAVAILABLE"
	LocationTimeout             LocationErrorCode = "TIMEOUT"
)

// LocationError is a structured positioning failure. It is surfaced to the
// UI as state, not raised through business logic.
type LocationError struct {
	Code    LocationErrorCode `json:"code"`
	Message string            `json:"message"`
}

func (e *LocationError) Error() string {
	return string(e.Code) + ": " + e.Message
}

// LocationOptions tunes a position request.
type LocationOptions struct {
	// HighAccuracy prefers GPS over network-based positioning.
	HighAccuracy bool

	// Timeout bounds how long RequestOnce waits for a fix.
	Timeout time.Duration

	// MaxCacheAge accepts a previously captured fix no older than this.
	MaxCacheAge time.Duration
}

// Subscription is a handle to a continuous location watch.
// Cancel stops all further callbacks; it is safe to call more than once.
type Subscription interface {
	Cancel()
}

// LocationProvider abstracts the positioning capability into a pollable and
// observable stream of samples per user.
type LocationProvider interface {
	// RequestOnce returns the user's current location, honouring
	// opts.Timeout and opts.MaxCacheAge. Failures are *LocationError.
	RequestOnce(ctx context.Context, userID uuid.UUID, opts LocationOptions) (entity.LocationSample, error)

	// Watch invokes fn for every new sample of the user until the returned
	// subscription is cancelled. No callback fires after Cancel returns.
	Watch(userID uuid.UUID, opts LocationOptions, fn func(entity.LocationSample)) (Subscription, error)

	// LastError returns the most recent positioning failure for the user,
	// or nil when the latest feed was a successful fix.
	LastError(userID uuid.UUID) *LocationError
}
