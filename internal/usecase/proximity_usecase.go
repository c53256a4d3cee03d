package usecase

import (
	"context"

	"yatra/internal/domain/entity"
	"yatra/internal/domain/service"

	"github.com/google/uuid"
)

// ProximityState is the complete observable state of a user's proximity
// engine at one point in time.
type ProximityState struct {
	NearbyPlaces      []entity.NearbyPlace        `json:"nearby_places"`
	Settings          entity.NotificationSettings `json:"settings"`
	PermissionGranted bool                        `json:"permission_granted"`
	LocationLoading   bool                        `json:"location_loading"`
	LocationError     *service.LocationError      `json:"location_error,omitempty"`
	Latitude          *float64                    `json:"latitude,omitempty"`
	Longitude         *float64                    `json:"longitude,omitempty"`
}

// ProximityUsecase defines the interface for the nearby-place tracking use cases
type ProximityUsecase interface {
	// StartTracking begins watching the user's location feed and recomputing
	// nearby places on every new sample. Idempotent per user.
	StartTracking(ctx context.Context, userID uuid.UUID) error

	// StopTracking cancels the user's location watch and clears the nearby list.
	StopTracking(ctx context.Context, userID uuid.UUID) error

	// RefreshLocation requests a single fresh location sample and recomputes
	// the nearby list from it.
	RefreshLocation(ctx context.Context, userID uuid.UUID) error

	// GetState returns the user's current proximity state snapshot.
	GetState(ctx context.Context, userID uuid.UUID) (*ProximityState, error)

	// GetSettings returns the user's notification settings, creating defaults
	// on first access.
	GetSettings(ctx context.Context, userID uuid.UUID) (entity.NotificationSettings, error)

	// UpdateSettings applies a partial settings update and recomputes the
	// nearby list against the new settings.
	UpdateSettings(ctx context.Context, userID uuid.UUID, patch entity.NotificationSettingsPatch) (entity.NotificationSettings, error)

	// ClearNotifiedPlaces empties the user's notified-place set so previously
	// notified places become eligible for notification again.
	ClearNotifiedPlaces(ctx context.Context, userID uuid.UUID) error
}
