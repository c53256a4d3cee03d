package impl

import (
	"context"
	"io"
	"log/slog"
	"sync"
	"testing"
	"time"

	"yatra/internal/domain/entity"
	domainerrors "yatra/internal/domain/errors"
	"yatra/internal/domain/repository"
	"yatra/internal/usecase"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// fakeDeviceRepo stores devices in memory, upserting on FCM token.
type fakeDeviceRepo struct {
	mu      sync.Mutex
	devices map[uuid.UUID]*entity.UserDevice
}

func newFakeDeviceRepo() *fakeDeviceRepo {
	return &fakeDeviceRepo{devices: make(map[uuid.UUID]*entity.UserDevice)}
}

func (r *fakeDeviceRepo) UpsertDevice(_ context.Context, device *entity.UserDevice) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	for id, existing := range r.devices {
		if existing.FCMToken == device.FCMToken {
			device.ID = id
			clone := *device
			r.devices[id] = &clone
			return nil
		}
	}
	clone := *device
	r.devices[device.ID] = &clone
	return nil
}

func (r *fakeDeviceRepo) FindDevicesByUser(_ context.Context, userID uuid.UUID) ([]*entity.UserDevice, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []*entity.UserDevice
	for _, device := range r.devices {
		if device.UserID == userID {
			clone := *device
			out = append(out, &clone)
		}
	}
	return out, nil
}

func (r *fakeDeviceRepo) DeleteDevice(_ context.Context, id uuid.UUID) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.devices[id]; !ok {
		return repository.ErrDeviceNotFound
	}
	delete(r.devices, id)
	return nil
}

// fakeHasher reverses the password so Compare can verify without bcrypt.
type fakeHasher struct{}

func (fakeHasher) Hash(password string) (string, error) {
	return "hashed:" + password, nil
}

func (fakeHasher) Compare(hashedPassword, password string) error {
	if hashedPassword != "hashed:"+password {
		return domainerrors.ErrInvalidCredentials
	}
	return nil
}

type fakeTokenService struct{}

func (fakeTokenService) GenerateTokens(userID uuid.UUID, _ []string) (string, string, error) {
	return "access-" + userID.String(), "refresh-" + userID.String(), nil
}

func (fakeTokenService) ValidateToken(string, string) (*jwt.Token, error) { return nil, nil }

func (fakeTokenService) GetRefreshTokenDuration() time.Duration { return 24 * time.Hour }

func newUserFixture(t *testing.T) (usecase.UserUsecase, *fakeUserRepo, *fakeDeviceRepo) {
	t.Helper()

	users := newFakeUserRepo()
	devices := newFakeDeviceRepo()
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	svc := NewUserService(users, devices, fakeHasher{}, fakeTokenService{}, logger)

	return svc, users, devices
}

func TestRegister_HashesPasswordAndNormalizesEmail(t *testing.T) {
	svc, users, _ := newUserFixture(t)

	user, err := svc.Register(context.Background(), usecase.RegisterInput{
		Email:    "  Asha@Example.COM ",
		Password: "sup3r-secret",
		FullName: "Asha Verma",
		Phone:    "+919876543210",
	})
	require.NoError(t, err)
	assert.Equal(t, "asha@example.com", user.Email)
	assert.Equal(t, "hashed:sup3r-secret", user.PasswordHash)

	stored, err := users.FindUserByEmail(context.Background(), "asha@example.com")
	require.NoError(t, err)
	assert.Equal(t, user.ID, stored.ID)
}

func TestRegister_RejectsWeakInput(t *testing.T) {
	svc, _, _ := newUserFixture(t)

	_, err := svc.Register(context.Background(), usecase.RegisterInput{Email: "not-an-email", Password: "sup3r-secret"})
	assert.Error(t, err)

	_, err = svc.Register(context.Background(), usecase.RegisterInput{Email: "a@b.com", Password: "short"})
	assert.Error(t, err)
}

func TestLogin_IssuesTokens(t *testing.T) {
	svc, _, _ := newUserFixture(t)

	user, err := svc.Register(context.Background(), usecase.RegisterInput{
		Email:    "asha@example.com",
		Password: "sup3r-secret",
	})
	require.NoError(t, err)

	tokens, err := svc.Login(context.Background(), "asha@example.com", "sup3r-secret")
	require.NoError(t, err)
	assert.Equal(t, "access-"+user.ID.String(), tokens.AccessToken)
	assert.Equal(t, "refresh-"+user.ID.String(), tokens.RefreshToken)
}

func TestLogin_WrongPasswordAndUnknownUser(t *testing.T) {
	svc, _, _ := newUserFixture(t)

	_, err := svc.Register(context.Background(), usecase.RegisterInput{
		Email:    "asha@example.com",
		Password: "sup3r-secret",
	})
	require.NoError(t, err)

	_, err = svc.Login(context.Background(), "asha@example.com", "wrong-password")
	assert.ErrorIs(t, err, domainerrors.ErrInvalidCredentials)

	// Unknown accounts fail with the same error as wrong passwords.
	_, err = svc.Login(context.Background(), "nobody@example.com", "whatever")
	assert.ErrorIs(t, err, domainerrors.ErrInvalidCredentials)
}

func TestRegisterDevice_ValidatesPlatform(t *testing.T) {
	svc, _, _ := newUserFixture(t)
	userID := uuid.New()

	device, err := svc.RegisterDevice(context.Background(), userID, usecase.RegisterDeviceInput{
		FCMToken:    "token-1",
		Platform:    "Android",
		PushEnabled: true,
	})
	require.NoError(t, err)
	assert.Equal(t, "android", device.Platform)

	_, err = svc.RegisterDevice(context.Background(), userID, usecase.RegisterDeviceInput{
		FCMToken: "token-2",
		Platform: "windows",
	})
	assert.Error(t, err)

	_, err = svc.RegisterDevice(context.Background(), userID, usecase.RegisterDeviceInput{Platform: "ios"})
	assert.Error(t, err)
}

func TestRemoveDevice_OwnershipEnforced(t *testing.T) {
	svc, _, _ := newUserFixture(t)
	owner := uuid.New()

	device, err := svc.RegisterDevice(context.Background(), owner, usecase.RegisterDeviceInput{
		FCMToken: "token-1",
		Platform: "ios",
	})
	require.NoError(t, err)

	err = svc.RemoveDevice(context.Background(), uuid.New(), device.ID)
	assert.Error(t, err)

	err = svc.RemoveDevice(context.Background(), owner, device.ID)
	require.NoError(t, err)

	devices, err := svc.ListDevices(context.Background(), owner)
	require.NoError(t, err)
	assert.Empty(t, devices)
}
