package impl

import (
	"context"
	"crypto/rand"
	"encoding/hex"
	"fmt"
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

const (
	serviceFeeRate = 0.05
	gstRate        = 0.18

	cabBaseFareINR = 100.0
	cabPerKmINR    = 18.0

	defaultCurrency = "INR"
)

// cityIATACodes maps catalog cities to the codes the fare provider expects.
var cityIATACodes = map[string]string{
	"delhi":     "DEL",
	"new delhi": "DEL",
	"mumbai":    "BOM",
	"jaipur":    "JAI",
	"agra":      "AGR",
	"varanasi":  "VNS",
	"goa":       "GOI",
	"bengaluru": "BLR",
	"chennai":   "MAA",
	"kolkata":   "CCU",
	"hyderabad": "HYD",
	"udaipur":   "UDR",
}

// PDFRenderer renders a booking itinerary document.
type PDFRenderer interface {
	Render(booking *entity.Booking, traveller *entity.User) ([]byte, error)
}

type bookingService struct {
	bookings   repository.BookingRepository
	users      repository.UserRepository
	fares      service.FareProvider
	fallback   service.FareProvider
	publisher  service.EventPublisher
	qrcodes    service.QRCodeService
	pdfs       PDFRenderer
	email      service.EmailSender
	sms        service.SMSSender
	whatsapp   service.WhatsAppSender
	dispatcher service.PushDispatcher
	logger     *slog.Logger
}

// NewBookingService creates the booking use case.
func NewBookingService(
	bookings repository.BookingRepository,
	users repository.UserRepository,
	fares service.FareProvider,
	fallback service.FareProvider,
	publisher service.EventPublisher,
	qrcodes service.QRCodeService,
	pdfs PDFRenderer,
	email service.EmailSender,
	sms service.SMSSender,
	whatsapp service.WhatsAppSender,
	dispatcher service.PushDispatcher,
	logger *slog.Logger,
) usecase.BookingUsecase {
	return &bookingService{
		bookings:   bookings,
		users:      users,
		fares:      fares,
		fallback:   fallback,
		publisher:  publisher,
		qrcodes:    qrcodes,
		pdfs:       pdfs,
		email:      email,
		sms:        sms,
		whatsapp:   whatsapp,
		dispatcher: dispatcher,
		logger:     logger,
	}
}

// QuoteFares searches live fares and falls back to estimated ones when the
// live provider cannot serve the query.
func (s *bookingService) QuoteFares(ctx context.Context, input usecase.FareQuoteInput) ([]usecase.FareQuote, error) {
	switch input.Type {
	case entity.BookingFlight:
		return s.quoteFlights(ctx, input)
	case entity.BookingHotel:
		return s.quoteHotels(ctx, input)
	default:
		return nil, domainerrors.ErrValidationFailed.WithDetails("fare quotes are available for flight and hotel bookings only")
	}
}

func (s *bookingService) quoteFlights(ctx context.Context, input usecase.FareQuoteInput) ([]usecase.FareQuote, error) {
	query := service.FlightQuery{
		Origin:        cityCode(input.Origin),
		Destination:   cityCode(input.Destination),
		DepartureDate: input.StartDate,
		ReturnDate:    input.EndDate,
		Adults:        max(input.Guests, 1),
	}

	estimated := false
	fares, err := s.fares.SearchFlights(ctx, query)
	if err != nil {
		s.logger.Warn("live flight search unavailable, using estimated fares",
			slog.String("route", query.Origin+"-"+query.Destination),
			slog.Any("error", err))
		estimated = true
		if fares, err = s.fallback.SearchFlights(ctx, query); err != nil {
			return nil, errors.Wrap(err, "failed to price flights")
		}
	}

	quotes := make([]usecase.FareQuote, 0, len(fares))
	for _, fare := range fares {
		quotes = append(quotes, usecase.FareQuote{
			ProviderRef: fare.OfferID,
			Description: fmt.Sprintf("%s %s, %s, %s", fare.Airline, fare.FlightNumber, fare.Duration, stopsLabel(fare.Stops)),
			Currency:    fare.Currency,
			Amount:      fare.Price,
			Estimated:   estimated,
		})
	}

	return quotes, nil
}

func (s *bookingService) quoteHotels(ctx context.Context, input usecase.FareQuoteInput) ([]usecase.FareQuote, error) {
	query := service.HotelQuery{
		CityCode: cityCode(input.Destination),
		CheckIn:  input.StartDate,
		CheckOut: input.EndDate,
		Adults:   max(input.Guests, 1),
	}

	estimated := false
	rates, err := s.fares.SearchHotels(ctx, query)
	if err != nil {
		s.logger.Warn("live hotel search unavailable, using estimated rates",
			slog.String("city", query.CityCode),
			slog.Any("error", err))
		estimated = true
		if rates, err = s.fallback.SearchHotels(ctx, query); err != nil {
			return nil, errors.Wrap(err, "failed to price hotels")
		}
	}

	quotes := make([]usecase.FareQuote, 0, len(rates))
	for _, rate := range rates {
		quotes = append(quotes, usecase.FareQuote{
			ProviderRef: rate.HotelID,
			Description: fmt.Sprintf("%s (%.1f stars), %s, per night", rate.Name, rate.Rating, rate.Location),
			Currency:    rate.Currency,
			Amount:      rate.NightlyPrice,
			Estimated:   estimated,
		})
	}

	return quotes, nil
}

// CreateBooking prices the booking, persists it as pending and publishes the
// booking event for asynchronous confirmation.
func (s *bookingService) CreateBooking(ctx context.Context, userID uuid.UUID, input usecase.CreateBookingInput) (*entity.Booking, error) {
	if !input.Type.Valid() {
		return nil, domainerrors.ErrValidationFailed.WithDetails("unknown booking type: " + string(input.Type))
	}
	if input.Destination == "" {
		return nil, domainerrors.ErrValidationFailed.WithDetails("destination is required")
	}
	if err := validateDates(input); err != nil {
		return nil, err
	}

	guests := max(input.Guests, 1)
	rooms := input.Rooms
	if input.Type == entity.BookingHotel {
		rooms = max(rooms, 1)
	}

	base, estimated, err := s.priceBooking(ctx, input, guests, rooms)
	if err != nil {
		return nil, err
	}

	fee := round2(base * serviceFeeRate)
	tax := round2((base + fee) * gstRate)

	now := time.Now().UTC()
	booking := &entity.Booking{
		ID:          uuid.New(),
		UserID:      userID,
		Reference:   newBookingReference(),
		Type:        input.Type,
		Destination: input.Destination,
		Origin:      input.Origin,
		StartDate:   input.StartDate,
		EndDate:     input.EndDate,
		Guests:      guests,
		Rooms:       rooms,
		ProviderRef: input.ProviderRef,
		Currency:    defaultCurrency,
		BaseAmount:  round2(base),
		ServiceFee:  fee,
		TaxAmount:   tax,
		TotalAmount: round2(base + fee + tax),
		Estimated:   estimated,
		Status:      entity.BookingPending,
		CreatedAt:   now,
		UpdatedAt:   now,
	}

	if err := s.bookings.CreateBooking(ctx, booking); err != nil {
		return nil, errors.Wrap(err, "failed to persist booking")
	}

	event := &service.BookingEvent{
		BookingID:   booking.ID.String(),
		UserID:      userID.String(),
		Reference:   booking.Reference,
		Type:        string(booking.Type),
		Destination: booking.Destination,
		TotalAmount: booking.TotalAmount,
		Currency:    booking.Currency,
		OccurredAt:  now,
	}
	if err := s.publisher.PublishBookingEvent(ctx, event); err != nil {
		// The booking stands; confirmation can be retried by republishing.
		s.logger.Error("failed to publish booking event",
			slog.String("booking_id", booking.ID.String()),
			slog.Any("error", err))
	}

	s.logger.Info("booking created",
		slog.String("booking_id", booking.ID.String()),
		slog.String("reference", booking.Reference),
		slog.String("type", string(booking.Type)),
		slog.Float64("total", booking.TotalAmount))

	return booking, nil
}

// priceBooking computes the base amount per booking type. The bool result
// reports whether the price came from estimated data.
func (s *bookingService) priceBooking(ctx context.Context, input usecase.CreateBookingInput, guests, rooms int) (float64, bool, error) {
	switch input.Type {
	case entity.BookingHotel:
		nights := max(int(input.EndDate.Sub(input.StartDate).Hours()/24), 1)
		rate := input.BaseAmount
		estimated := false
		if rate <= 0 {
			quote, est, err := s.bestQuote(ctx, input, guests)
			if err != nil {
				return 0, false, err
			}
			rate, estimated = quote, est
		}
		return rate * float64(nights) * float64(rooms), estimated, nil

	case entity.BookingCab:
		if input.DistanceKm <= 0 {
			return 0, false, domainerrors.ErrValidationFailed.WithDetails("cab bookings require a positive distance")
		}
		return cabBaseFareINR + cabPerKmINR*input.DistanceKm, true, nil

	case entity.BookingFlight:
		fare := input.BaseAmount
		estimated := false
		if fare <= 0 {
			quote, est, err := s.bestQuote(ctx, input, guests)
			if err != nil {
				return 0, false, err
			}
			fare, estimated = quote, est
		}
		return fare * float64(guests), estimated, nil
	}

	return 0, false, domainerrors.ErrValidationFailed
}

// bestQuote returns the cheapest available fare for the booking input.
func (s *bookingService) bestQuote(ctx context.Context, input usecase.CreateBookingInput, guests int) (float64, bool, error) {
	quotes, err := s.QuoteFares(ctx, usecase.FareQuoteInput{
		Type:        input.Type,
		Origin:      input.Origin,
		Destination: input.Destination,
		StartDate:   input.StartDate,
		EndDate:     input.EndDate,
		Guests:      guests,
	})
	if err != nil {
		return 0, false, err
	}
	if len(quotes) == 0 {
		return 0, false, errors.New("no fares available for the requested trip")
	}

	best := quotes[0]
	for _, q := range quotes[1:] {
		if q.Amount < best.Amount {
			best = q
		}
	}

	return best.Amount, best.Estimated, nil
}

// GetBooking returns the booking after an ownership check.
func (s *bookingService) GetBooking(ctx context.Context, userID, bookingID uuid.UUID) (*entity.Booking, error) {
	return s.ownedBooking(ctx, userID, bookingID)
}

// ListBookings returns the user's bookings, newest first.
func (s *bookingService) ListBookings(ctx context.Context, userID uuid.UUID, limit, offset int) ([]*entity.Booking, error) {
	if limit <= 0 || limit > 100 {
		limit = 20
	}
	if offset < 0 {
		offset = 0
	}

	bookings, err := s.bookings.FindBookingsByUser(ctx, userID, limit, offset)
	if err != nil {
		return nil, errors.Wrap(err, "failed to list bookings")
	}

	return bookings, nil
}

// CancelBooking cancels a pending or confirmed booking.
func (s *bookingService) CancelBooking(ctx context.Context, userID, bookingID uuid.UUID) (*entity.Booking, error) {
	booking, err := s.ownedBooking(ctx, userID, bookingID)
	if err != nil {
		return nil, err
	}

	switch booking.Status {
	case entity.BookingPending, entity.BookingConfirmed:
	default:
		return nil, domainerrors.ErrBookingNotCancellable.WithDetails("status is " + string(booking.Status))
	}

	if err := s.bookings.UpdateBookingStatus(ctx, bookingID, entity.BookingCancelled); err != nil {
		return nil, errors.Wrap(err, "failed to cancel booking")
	}
	booking.Status = entity.BookingCancelled

	s.logger.Info("booking cancelled",
		slog.String("booking_id", bookingID.String()),
		slog.String("reference", booking.Reference))

	return booking, nil
}

// BookingQRCode renders the booking reference as a PNG QR code.
func (s *bookingService) BookingQRCode(ctx context.Context, userID, bookingID uuid.UUID) ([]byte, error) {
	booking, err := s.ownedBooking(ctx, userID, bookingID)
	if err != nil {
		return nil, err
	}

	png, err := s.qrcodes.GeneratePNG(booking.Reference)
	if err != nil {
		return nil, errors.Wrap(err, "failed to render booking QR code")
	}

	return png, nil
}

// ItineraryPDF renders a printable itinerary for the booking.
func (s *bookingService) ItineraryPDF(ctx context.Context, userID, bookingID uuid.UUID) ([]byte, error) {
	booking, err := s.ownedBooking(ctx, userID, bookingID)
	if err != nil {
		return nil, err
	}

	traveller, err := s.users.FindUserByID(ctx, userID)
	if err != nil && !errors.Is(err, repository.ErrUserNotFound) {
		return nil, errors.Wrap(err, "failed to load traveller")
	}

	doc, err := s.pdfs.Render(booking, traveller)
	if err != nil {
		return nil, errors.Wrap(err, "failed to render itinerary")
	}

	return doc, nil
}

// ConfirmBooking marks the booking confirmed and fans the confirmation out
// over every reachable channel. Each channel is best-effort.
func (s *bookingService) ConfirmBooking(ctx context.Context, event service.BookingEvent) ([]entity.ConfirmationResult, error) {
	bookingID, err := uuid.Parse(event.BookingID)
	if err != nil {
		return nil, errors.Wrap(err, "invalid booking id in event")
	}

	booking, err := s.bookings.FindBookingByID(ctx, bookingID)
	if err != nil {
		if errors.Is(err, repository.ErrBookingNotFound) {
			return nil, domainerrors.ErrBookingNotFound
		}
		return nil, errors.Wrap(err, "failed to load booking")
	}

	// Only pending bookings are confirmable; redelivered events are no-ops.
	if booking.Status != entity.BookingPending {
		s.logger.Info("skipping confirmation for non-pending booking",
			slog.String("booking_id", bookingID.String()),
			slog.String("status", string(booking.Status)))
		return nil, nil
	}

	if err := s.bookings.UpdateBookingStatus(ctx, bookingID, entity.BookingConfirmed); err != nil {
		return nil, errors.Wrap(err, "failed to confirm booking")
	}
	booking.Status = entity.BookingConfirmed

	user, err := s.users.FindUserByID(ctx, booking.UserID)
	if err != nil {
		return nil, errors.Wrap(err, "failed to load booking owner")
	}

	results := s.fanOutConfirmation(ctx, booking, user)

	s.logger.Info("booking confirmed",
		slog.String("booking_id", bookingID.String()),
		slog.String("reference", booking.Reference),
		slog.Int("channels", len(results)))

	return results, nil
}

func (s *bookingService) fanOutConfirmation(ctx context.Context, booking *entity.Booking, user *entity.User) []entity.ConfirmationResult {
	results := make([]entity.ConfirmationResult, 0, 4)
	text := confirmationText(booking)

	if user.Email != "" {
		err := s.email.SendEmail(ctx, user.Email, "Booking confirmed: "+booking.Reference, confirmationHTML(booking, user))
		results = append(results, channelResult(entity.ChannelEmail, err))
	}
	if user.Phone != "" {
		results = append(results, channelResult(entity.ChannelSMS, s.sms.SendSMS(ctx, user.Phone, text)))
		results = append(results, channelResult(entity.ChannelWhatsApp, s.whatsapp.SendWhatsApp(ctx, user.Phone, text)))
	}
	if s.dispatcher.RequestPermission(ctx, booking.UserID) {
		s.dispatcher.DispatchBooking(ctx, booking.UserID, booking)
		results = append(results, entity.ConfirmationResult{Channel: entity.ChannelPush, Sent: true})
	}

	for _, r := range results {
		if !r.Sent {
			s.logger.Warn("confirmation channel failed",
				slog.String("booking_id", booking.ID.String()),
				slog.String("channel", string(r.Channel)),
				slog.String("error", r.Error))
		}
	}

	return results
}

func (s *bookingService) ownedBooking(ctx context.Context, userID, bookingID uuid.UUID) (*entity.Booking, error) {
	booking, err := s.bookings.FindBookingByID(ctx, bookingID)
	if err != nil {
		if errors.Is(err, repository.ErrBookingNotFound) {
			return nil, domainerrors.ErrBookingNotFound
		}
		return nil, errors.Wrap(err, "failed to load booking")
	}
	if booking.UserID != userID {
		return nil, domainerrors.ErrBookingOwnershipViolation
	}

	return booking, nil
}

func validateDates(input usecase.CreateBookingInput) error {
	if input.StartDate.IsZero() {
		return domainerrors.ErrInvalidBookingDates.WithDetails("start date is required")
	}
	if !input.EndDate.IsZero() && input.EndDate.Before(input.StartDate) {
		return domainerrors.ErrInvalidBookingDates.WithDetails("end date precedes start date")
	}
	if input.Type == entity.BookingHotel && input.EndDate.IsZero() {
		return domainerrors.ErrInvalidBookingDates.WithDetails("hotel bookings require a check-out date")
	}

	return nil
}

// newBookingReference generates a human-facing reference like "YTR-4F7A21BC".
func newBookingReference() string {
	buf := make([]byte, 4)
	if _, err := rand.Read(buf); err != nil {
		panic(err)
	}

	return "YTR-" + strings.ToUpper(hex.EncodeToString(buf))
}

func cityCode(name string) string {
	trimmed := strings.TrimSpace(name)
	if code, ok := cityIATACodes[strings.ToLower(trimmed)]; ok {
		return code
	}
	if len(trimmed) == 3 {
		return strings.ToUpper(trimmed)
	}

	return strings.ToUpper(trimmed)
}

func stopsLabel(stops int) string {
	switch stops {
	case 0:
		return "non-stop"
	case 1:
		return "1 stop"
	default:
		return fmt.Sprintf("%d stops", stops)
	}
}

func channelResult(channel entity.ConfirmationChannel, err error) entity.ConfirmationResult {
	if err != nil {
		return entity.ConfirmationResult{Channel: channel, Error: err.Error()}
	}

	return entity.ConfirmationResult{Channel: channel, Sent: true}
}

func confirmationText(booking *entity.Booking) string {
	return fmt.Sprintf("Your %s booking %s to %s is confirmed. Total: %s %.2f.",
		booking.Type, booking.Reference, booking.Destination, booking.Currency, booking.TotalAmount)
}

func confirmationHTML(booking *entity.Booking, user *entity.User) string {
	name := user.FullName
	if name == "" {
		name = "Traveller"
	}

	var b strings.Builder
	fmt.Fprintf(&b, "<h2>Booking confirmed</h2>")
	fmt.Fprintf(&b, "<p>Hi %s, your %s booking is confirmed.</p>", name, booking.Type)
	fmt.Fprintf(&b, "<p><strong>Reference:</strong> %s<br>", booking.Reference)
	fmt.Fprintf(&b, "<strong>Destination:</strong> %s<br>", booking.Destination)
	fmt.Fprintf(&b, "<strong>Date:</strong> %s<br>", booking.StartDate.Format("02 Jan 2006"))
	fmt.Fprintf(&b, "<strong>Total:</strong> %s %.2f</p>", booking.Currency, booking.TotalAmount)
	if booking.Estimated {
		fmt.Fprintf(&b, "<p><em>Prices are estimates; verify the final amount with the provider.</em></p>")
	}

	return b.String()
}

func round2(v float64) float64 {
	return float64(int64(v*100+0.5)) / 100
}
