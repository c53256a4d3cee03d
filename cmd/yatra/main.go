package main

import (
	"context"
	"log/slog"
	"os"

	"yatra/config"
	"yatra/internal/catalog"
	"yatra/internal/delivery"
	"yatra/internal/delivery/http"
	"yatra/internal/delivery/http/middleware"
	"yatra/internal/delivery/http/router/handler"
	"yatra/internal/domain/entity"
	"yatra/internal/domain/repository"
	"yatra/internal/domain/service"
	"yatra/internal/infra/auth"
	"yatra/internal/infra/geolocate"
	"yatra/internal/infra/llm"
	logs "yatra/internal/infra/log"
	"yatra/internal/infra/messaging"
	"yatra/internal/infra/notification"
	"yatra/internal/infra/pdf"
	"yatra/internal/infra/persistence/kv"
	"yatra/internal/infra/persistence/postgres"
	"yatra/internal/infra/pricing"
	"yatra/internal/infra/pubsub"
	"yatra/internal/infra/qrcode"
	"yatra/internal/infra/search"
	"yatra/internal/usecase"
	"yatra/internal/usecase/impl"

	"go.uber.org/fx"
)

type startServerParams struct {
	fx.In
	fx.Lifecycle

	Deliveries []delivery.Delivery `group:"deliveries"`
}

func main() {
	fx.New(
		injectInfra(),
		injectRepo(),
		injectService(),
		injectUsecase(),
		injectDelivery(),
		injectMiddleware(),
		injectHandler(),
		fx.Invoke(
			startServer,
		),
	).Run()
}

func injectInfra() fx.Option {
	return fx.Provide(
		config.New,
		// Expose the proximity engine config with sane defaults
		func(cfg *config.Config) *config.ProximityConfig {
			if cfg == nil || cfg.Proximity == nil {
				return &config.ProximityConfig{
					DefaultRadiusKm: 10,
					MinRadiusKm:     1,
					MaxRadiusKm:     50,
				}
			}

			return cfg.Proximity
		},
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
			kv.NewGormStore,
		),
	)
}

func injectService() fx.Option {
	return fx.Options(
		fx.Provide(
			auth.NewBcryptHasher,
			auth.NewJWTService,
			geolocate.NewProvider,
			func(provider *geolocate.Provider) service.LocationProvider { return provider },
			notification.NewDispatcher,
			pubsub.NewEventPublisher,
			newQRCodeService,
			newEmailSender,
			newChatGateway,
			llm.NewTranslator,
			newPlaceSearcher,
			messaging.NewTwilioSender,
			catalog.All,
		),
	)
}

// newQRCodeService creates a QR code service with dependency injection
func newQRCodeService(cfg *config.Config) service.QRCodeService {
	return qrcode.NewQRCodeService(cfg.QRCode)
}

// newEmailSender creates the transactional email sender
func newEmailSender(cfg *config.Config) service.EmailSender {
	return messaging.NewResendSender(cfg.Resend)
}

// newChatGateway creates the assistant gateway with dependency injection
func newChatGateway(cfg *config.Config) service.ChatGateway {
	return llm.NewGateway(cfg.ChatGateway)
}

// newPlaceSearcher creates the Elasticsearch place searcher.
// Search is optional; without a configured cluster the place service
// falls back to the built-in catalog.
func newPlaceSearcher(cfg *config.Config, logger *slog.Logger) (service.PlaceSearcher, error) {
	if cfg.Elastic == nil || len(cfg.Elastic.Addresses) == 0 {
		logger.Info("Elasticsearch not configured, place search uses the built-in catalog")

		return nil, nil
	}

	return search.NewElasticSearcher(cfg.Elastic, logger)
}

// newBookingService wires the booking use case with both fare providers
// and the Twilio sender bound to its SMS and WhatsApp channels
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

// newProximityService wires the proximity engine over the place catalog
func newProximityService(
	cfg *config.ProximityConfig,
	provider service.LocationProvider,
	dispatcher service.PushDispatcher,
	store service.KeyValueStore,
	places []entity.Place,
	logger *slog.Logger,
) usecase.ProximityUsecase {
	return impl.NewProximityService(cfg, provider, dispatcher, store, places, logger)
}

func injectUsecase() fx.Option {
	return fx.Options(
		fx.Provide(
			impl.NewUserService,
			newProximityService,
			newBookingService,
			impl.NewChatService,
			impl.NewPlaceService,
			impl.NewCurrencyService,
			impl.NewTranslateService,
		),
	)
}

func injectMiddleware() fx.Option {
	return fx.Options(
		fx.Provide(
			middleware.NewAuthMiddleware,
			middleware.NewErrorMiddleware,
		),
	)
}

func injectHandler() fx.Option {
	return fx.Options(
		fx.Provide(
			handler.NewUserHandler,
			handler.NewProximityHandler,
			handler.NewLocationHandler,
			handler.NewBookingHandler,
			handler.NewChatHandler,
			handler.NewPlaceHandler,
			handler.NewCurrencyHandler,
			handler.NewTranslateHandler,
		),
	)
}

func injectDelivery() fx.Option {
	return fx.Options(
		fx.Provide(
			fx.Annotate(
				http.NewServer,
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
				os.Exit(1)
			}
		}()
	}
}
