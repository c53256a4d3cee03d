package impl

import (
	"context"
	"log/slog"
	"strings"
	"time"

	"yatra/internal/domain/entity"
	domainerrors "yatra/internal/domain/errors"
	"yatra/internal/domain/repository"
	"yatra/internal/domain/service"
	"yatra/internal/errors"
	"yatra/internal/usecase"

	"github.com/google/uuid"
)

type userService struct {
	users   repository.UserRepository
	devices repository.DeviceRepository
	hasher  service.PasswordHasher
	tokens  service.TokenService
	logger  *slog.Logger
}

// NewUserService creates the account and device management use case.
func NewUserService(
	users repository.UserRepository,
	devices repository.DeviceRepository,
	hasher service.PasswordHasher,
	tokens service.TokenService,
	logger *slog.Logger,
) usecase.UserUsecase {
	return &userService{
		users:   users,
		devices: devices,
		hasher:  hasher,
		tokens:  tokens,
		logger:  logger,
	}
}

// Register creates a new traveller account.
func (s *userService) Register(ctx context.Context, input usecase.RegisterInput) (*entity.User, error) {
	email := strings.ToLower(strings.TrimSpace(input.Email))
	if email == "" || !strings.Contains(email, "@") {
		return nil, domainerrors.ErrValidationFailed.WithDetails("a valid email address is required")
	}
	if len(input.Password) < 8 {
		return nil, domainerrors.ErrValidationFailed.WithDetails("password must be at least 8 characters")
	}

	hash, err := s.hasher.Hash(input.Password)
	if err != nil {
		return nil, domainerrors.ErrPasswordHashFailed.WrapMessage(err.Error())
	}

	now := time.Now().UTC()
	user := &entity.User{
		ID:           uuid.New(),
		Email:        email,
		FullName:     strings.TrimSpace(input.FullName),
		Phone:        strings.TrimSpace(input.Phone),
		PasswordHash: hash,
		CreatedAt:    now,
		UpdatedAt:    now,
	}

	if err := s.users.CreateUser(ctx, user); err != nil {
		return nil, err
	}

	s.logger.Info("user registered", slog.String("user_id", user.ID.String()))

	return user, nil
}

// Login verifies the credentials and issues a token pair.
func (s *userService) Login(ctx context.Context, email, password string) (*usecase.AuthTokens, error) {
	user, err := s.users.FindUserByEmail(ctx, strings.ToLower(strings.TrimSpace(email)))
	if err != nil {
		if errors.Is(err, repository.ErrUserNotFound) {
			return nil, domainerrors.ErrInvalidCredentials
		}
		return nil, errors.Wrap(err, "failed to look up user")
	}

	if err := s.hasher.Compare(user.PasswordHash, password); err != nil {
		return nil, domainerrors.ErrInvalidCredentials
	}

	access, refresh, err := s.tokens.GenerateTokens(user.ID, []string{"traveller"})
	if err != nil {
		return nil, errors.Wrap(err, "failed to issue tokens")
	}

	return &usecase.AuthTokens{AccessToken: access, RefreshToken: refresh}, nil
}

// GetProfile returns the account details.
func (s *userService) GetProfile(ctx context.Context, userID uuid.UUID) (*entity.User, error) {
	user, err := s.users.FindUserByID(ctx, userID)
	if err != nil {
		if errors.Is(err, repository.ErrUserNotFound) {
			return nil, domainerrors.ErrUserNotFound
		}
		return nil, errors.Wrap(err, "failed to load user")
	}

	return user, nil
}

// RegisterDevice upserts a push-capable device keyed by its FCM token.
func (s *userService) RegisterDevice(ctx context.Context, userID uuid.UUID, input usecase.RegisterDeviceInput) (*entity.UserDevice, error) {
	token := strings.TrimSpace(input.FCMToken)
	if token == "" {
		return nil, domainerrors.ErrValidationFailed.WithDetails("fcm token is required")
	}
	platform := strings.ToLower(strings.TrimSpace(input.Platform))
	switch platform {
	case "android", "ios", "web":
	default:
		return nil, domainerrors.ErrValidationFailed.WithDetails("platform must be android, ios or web")
	}

	now := time.Now().UTC()
	device := &entity.UserDevice{
		ID:          uuid.New(),
		UserID:      userID,
		FCMToken:    token,
		Platform:    platform,
		PushEnabled: input.PushEnabled,
		CreatedAt:   now,
		UpdatedAt:   now,
	}

	if err := s.devices.UpsertDevice(ctx, device); err != nil {
		return nil, errors.Wrap(err, "failed to register device")
	}

	return device, nil
}

// ListDevices returns the user's registered devices.
func (s *userService) ListDevices(ctx context.Context, userID uuid.UUID) ([]*entity.UserDevice, error) {
	devices, err := s.devices.FindDevicesByUser(ctx, userID)
	if err != nil {
		return nil, errors.Wrap(err, "failed to list devices")
	}

	return devices, nil
}

// RemoveDevice deletes one of the user's devices after an ownership check.
func (s *userService) RemoveDevice(ctx context.Context, userID, deviceID uuid.UUID) error {
	devices, err := s.devices.FindDevicesByUser(ctx, userID)
	if err != nil {
		return errors.Wrap(err, "failed to list devices")
	}

	for _, device := range devices {
		if device.ID == deviceID {
			if err := s.devices.DeleteDevice(ctx, deviceID); err != nil {
				return errors.Wrap(err, "failed to remove device")
			}
			return nil
		}
	}

	return domainerrors.ErrNotFound.WithDetails("device is not registered for this user")
}
