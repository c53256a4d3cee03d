package main

import (
	"context"
	"log/slog"
	"os"

	"yatra/config"
	"yatra/internal/delivery"
	"yatra/internal/delivery/worker"
	"yatra/internal/delivery/worker/handler"
	"yatra/internal/domain/repository"
	"yatra/internal/domain/service"
	logs "yatra/internal/infra/log"
	"yatra/internal/infra/messaging"
	"yatra/internal/infra/notification"
	"yatra/internal/infra/pdf"
	"yatra/internal/infra/persistence/postgres"
	"yatra/internal/infra/pricing"
	"yatra/internal/infra/pubsub"
	"yatra/internal/infra/qrcode"
	"yatra/internal/usecase"
	"yatra/internal/usecase/impl"

	"go.uber.org/fx"
)

type startServerParams struct {
	fx.In
	fx.Lifecycle
	fx.Shutdowner

	Deliveries []delivery.Delivery `group:"deliveries"`
}

func main() {
	fx.New(
		injectInfra(),
		injectRepo(),
		injectService(),
		injectUsecase(),
		injectHandler(),
		injectDelivery(),
		fx.Invoke(
			startServer,
		),
	).Run()
}

func injectInfra() fx.Option {
	return fx.Provide(
		config.New,
		logs.New,
		context.Background,
		postgres.New,
	)
}

func injectRepo() fx.Option {
	return fx.Options(
		fx.Provide(
			postgres.NewUserRepository,
			postgres.NewDeviceRepository,
			postgres.NewBookingRepository,
		),
	)
}

func injectService() fx.Option {
	return fx.Options(
		fx.Provide(
			notification.NewDispatcher,
			pubsub.NewEventPublisher,
			messaging.NewTwilioSender,
			func(cfg *config.Config) service.EmailSender {
				return messaging.NewResendSender(cfg.Resend)
			},
			func(cfg *config.Config) service.QRCodeService {
				return qrcode.NewQRCodeService(cfg.QRCode)
			},
		),
	)
}

// newBookingService wires the booking use case the worker drives through
// Pub/Sub push deliveries
func newBookingService(
	cfg *config.Config,
	bookings repository.BookingRepository,
	users repository.UserRepository,
	publisher service.EventPublisher,
	qrcodes service.QRCodeService,
	email service.EmailSender,
	twilio *messaging.TwilioSender,
	dispatcher service.PushDispatcher,
	logger *slog.Logger,
) usecase.BookingUsecase {
	return impl.NewBookingService(
		bookings,
		users,
		pricing.NewAmadeusProvider(cfg.Amadeus),
		pricing.NewFallbackProvider(),
		publisher,
		qrcodes,
		pdf.NewItineraryRenderer(),
		email,
		twilio,
		twilio,
		dispatcher,
		logger,
	)
}

func injectUsecase() fx.Option {
	return fx.Options(
		fx.Provide(
			newBookingService,
		),
	)
}

func injectHandler() fx.Option {
	return fx.Options(
		fx.Provide(
			handler.NewPushHandler,
		),
	)
}

func injectDelivery() fx.Option {
	return fx.Options(
		fx.Provide(
			fx.Annotate(
				worker.NewServer,
				fx.ResultTags(`group:"deliveries"`),
			),
		),
	)
}

func startServer(ctx context.Context, params startServerParams) {
	for _, delivery := range params.Deliveries {
		go func() {
			if err := delivery.Serve(ctx); err != nil {
				slog.Error("Failed to start server", slog.Any("error", err))

				// Trigger graceful shutdown to execute all OnStop hooks
				if shutdownErr := params.Shutdown(); shutdownErr != nil {
					slog.Error("Failed to shutdown gracefully", slog.Any("error", shutdownErr))
					os.Exit(1)
				}
			}
		}()
	}
}
