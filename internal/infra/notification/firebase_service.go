// Package notification implements push delivery over Firebase Cloud Messaging.
package notification

import (
	"context"
	"fmt"
	"log/slog"

	"yatra/config"
	"yatra/internal/domain/entity"
	"yatra/internal/domain/repository"
	"yatra/internal/domain/service"

	firebase "firebase.google.com/go/v4"
	"firebase.google.com/go/v4/messaging"
	"github.com/google/uuid"
	"google.golang.org/api/option"
)

// Messenger is the subset of the FCM client used by the dispatcher.
type Messenger interface {
	Send(ctx context.Context, message *messaging.Message) (string, error)
}

type firebaseDispatcher struct {
	client     Messenger
	deviceRepo repository.DeviceRepository
	logger     *slog.Logger
}

// NewFirebaseDispatcher creates a push dispatcher backed by Firebase Cloud
// Messaging.
func NewFirebaseDispatcher(ctx context.Context, cfg *config.FirebaseConfig, deviceRepo repository.DeviceRepository, logger *slog.Logger) (service.PushDispatcher, error) {
	opt := option.WithCredentialsFile(cfg.CredentialsPath)
	app, err := firebase.NewApp(ctx, &firebase.Config{ProjectID: cfg.ProjectID}, opt)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize Firebase app: %w", err)
	}

	client, err := app.Messaging(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to get messaging client: %w", err)
	}

	return NewDispatcherWithClient(client, deviceRepo, logger), nil
}

// NewDispatcherWithClient wires the dispatcher over an existing messenger.
func NewDispatcherWithClient(client Messenger, deviceRepo repository.DeviceRepository, logger *slog.Logger) service.PushDispatcher {
	return &firebaseDispatcher{
		client:     client,
		deviceRepo: deviceRepo,
		logger:     logger,
	}
}

// RequestPermission reports whether the user has at least one push-enabled
// device registered.
func (d *firebaseDispatcher) RequestPermission(ctx context.Context, userID uuid.UUID) bool {
	devices, err := d.deviceRepo.FindDevicesByUser(ctx, userID)
	if err != nil {
		d.logger.Error("failed to resolve devices for permission check",
			slog.String("user_id", userID.String()),
			slog.Any("error", err))
		return false
	}

	for _, device := range devices {
		if device.PushEnabled {
			return true
		}
	}

	return false
}

// Dispatch sends a nearby-place alert to every push-enabled device. The
// place ID is used as the collapse key so repeated alerts for the same place
// coalesce on the device.
func (d *firebaseDispatcher) Dispatch(ctx context.Context, userID uuid.UUID, place entity.NearbyPlace) {
	title := fmt.Sprintf("%s is nearby!", place.Name)
	body := fmt.Sprintf("%s is %.1f km away. %s", place.Name, place.DistanceKm, place.Description)

	data := map[string]string{
		"place_id":    place.ID,
		"category":    string(place.Category),
		"distance_km": fmt.Sprintf("%.2f", place.DistanceKm),
		"latitude":    fmt.Sprintf("%f", place.Coordinate.Latitude),
		"longitude":   fmt.Sprintf("%f", place.Coordinate.Longitude),
	}

	d.sendToDevices(ctx, userID, place.ID, title, body, data)
}

// DispatchBooking sends a booking confirmation push.
func (d *firebaseDispatcher) DispatchBooking(ctx context.Context, userID uuid.UUID, booking *entity.Booking) {
	title := "Booking confirmed"
	body := fmt.Sprintf("Your %s booking %s to %s is confirmed.", booking.Type, booking.Reference, booking.Destination)

	data := map[string]string{
		"booking_id": booking.ID.String(),
		"reference":  booking.Reference,
		"type":       string(booking.Type),
	}

	d.sendToDevices(ctx, userID, booking.Reference, title, body, data)
}

func (d *firebaseDispatcher) sendToDevices(ctx context.Context, userID uuid.UUID, collapseKey, title, body string, data map[string]string) {
	devices, err := d.deviceRepo.FindDevicesByUser(ctx, userID)
	if err != nil {
		d.logger.Error("failed to resolve devices for dispatch",
			slog.String("user_id", userID.String()),
			slog.Any("error", err))
		return
	}

	for _, device := range devices {
		if !device.PushEnabled {
			continue
		}

		message := &messaging.Message{
			Token: device.FCMToken,
			Notification: &messaging.Notification{
				Title: title,
				Body:  body,
			},
			Data: data,
			Android: &messaging.AndroidConfig{
				CollapseKey: collapseKey,
			},
			APNS: &messaging.APNSConfig{
				Headers: map[string]string{"apns-collapse-id": collapseKey},
			},
		}

		if _, err := d.client.Send(ctx, message); err != nil {
			// Delivery is best-effort; log and move on.
			d.logger.Warn("push delivery failed",
				slog.String("user_id", userID.String()),
				slog.String("device_id", device.ID.String()),
				slog.Any("error", err))

			if messaging.IsUnregistered(err) {
				if delErr := d.deviceRepo.DeleteDevice(ctx, device.ID); delErr != nil {
					d.logger.Warn("failed to remove unregistered device",
						slog.String("device_id", device.ID.String()),
						slog.Any("error", delErr))
				}
			}
		}
	}
}
