package repository

import (
	"context"
	"errors"

	"yatra/internal/domain/entity"

	"github.com/google/uuid"
)

// ErrDeviceNotFound is returned when no device matches the lookup.
var ErrDeviceNotFound = errors.New("device not found")

// DeviceRepository persists the push-capable devices of a user.
type DeviceRepository interface {
	UpsertDevice(ctx context.Context, device *entity.UserDevice) error
	FindDevicesByUser(ctx context.Context, userID uuid.UUID) ([]*entity.UserDevice, error)
	DeleteDevice(ctx context.Context, id uuid.UUID) error
}
