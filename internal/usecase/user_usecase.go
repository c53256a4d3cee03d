package usecase

import (
	"context"

	"yatra/internal/domain/entity"

	"github.com/google/uuid"
)

// RegisterInput carries the fields required to create an account.
type RegisterInput struct {
	Email    string
	Password string
	FullName string
	Phone    string
}

// AuthTokens is the token pair issued on login.
type AuthTokens struct {
	AccessToken  string `json:"access_token"`
	RefreshToken string `json:"refresh_token"`
}

// RegisterDeviceInput registers or refreshes a push-capable device.
type RegisterDeviceInput struct {
	FCMToken    string
	Platform    string
	PushEnabled bool
}

// UserUsecase defines the interface for account and device management use cases
type UserUsecase interface {
	// Register creates a new account with a bcrypt-hashed password.
	Register(ctx context.Context, input RegisterInput) (*entity.User, error)

	// Login verifies credentials and issues a token pair.
	Login(ctx context.Context, email, password string) (*AuthTokens, error)

	// GetProfile returns the user's account details.
	GetProfile(ctx context.Context, userID uuid.UUID) (*entity.User, error)

	// RegisterDevice upserts a push-capable device for the user.
	RegisterDevice(ctx context.Context, userID uuid.UUID, input RegisterDeviceInput) (*entity.UserDevice, error)

	// ListDevices returns the user's registered devices.
	ListDevices(ctx context.Context, userID uuid.UUID) ([]*entity.UserDevice, error)

	// RemoveDevice deletes one of the user's devices.
	RemoveDevice(ctx context.Context, userID, deviceID uuid.UUID) error
}
