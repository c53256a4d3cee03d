package notification

import (
	"context"
	"log/slog"

	"yatra/config"
	"yatra/internal/domain/entity"
	"yatra/internal/domain/repository"
	"yatra/internal/domain/service"

	"github.com/google/uuid"
	"go.uber.org/fx"
)

// noopDispatcher is used when Firebase is not configured. Permission always
// reads as false, so callers skip the push channel entirely.
type noopDispatcher struct {
	logger *slog.Logger
}

func (d *noopDispatcher) RequestPermission(_ context.Context, _ uuid.UUID) bool {
	return false
}

func (d *noopDispatcher) Dispatch(_ context.Context, userID uuid.UUID, place entity.NearbyPlace) {
	d.logger.Debug("[NoopPush] Push disabled, dropping alert",
		slog.String("userID", userID.String()),
		slog.String("placeID", place.ID),
	)
}

func (d *noopDispatcher) DispatchBooking(_ context.Context, userID uuid.UUID, booking *entity.Booking) {
	d.logger.Debug("[NoopPush] Push disabled, dropping booking confirmation",
		slog.String("userID", userID.String()),
		slog.String("reference", booking.Reference),
	)
}

// DispatcherParams holds dependencies for PushDispatcher, injected by Fx
type DispatcherParams struct {
	fx.In

	Ctx        context.Context
	Config     *config.Config
	DeviceRepo repository.DeviceRepository
	Logger     *slog.Logger
}

// NewDispatcher creates a PushDispatcher based on configuration
func NewDispatcher(params DispatcherParams) (service.PushDispatcher, error) {
	if params.Config.Firebase == nil || params.Config.Firebase.CredentialsPath == "" {
		params.Logger.Info("Firebase not configured, using no-op push dispatcher")

		return &noopDispatcher{logger: params.Logger}, nil
	}

	return NewFirebaseDispatcher(params.Ctx, params.Config.Firebase, params.DeviceRepo, params.Logger)
}
