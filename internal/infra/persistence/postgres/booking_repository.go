package postgres

import (
	"context"

	"yatra/internal/domain/entity"
	"yatra/internal/domain/repository"
	"yatra/internal/infra/persistence/model"

	"github.com/google/uuid"
	"github.com/pkg/errors"
	"gorm.io/gorm"
)

// bookingRepository implements the repository.BookingRepository interface.
type bookingRepository struct {
	db *gorm.DB
}

// NewBookingRepository is the constructor for bookingRepository.
func NewBookingRepository(db *gorm.DB) repository.BookingRepository {
	return &bookingRepository{
		db: db,
	}
}

// CreateBooking persists a new booking.
func (repo *bookingRepository) CreateBooking(ctx context.Context, booking *entity.Booking) error {
	bookingM := fromBookingDomain(booking)

	if err := repo.db.WithContext(ctx).Create(bookingM).Error; err != nil {
		return errors.Wrap(err, "failed to create booking")
	}

	booking.ID = bookingM.ID
	booking.CreatedAt = bookingM.CreatedAt
	booking.UpdatedAt = bookingM.UpdatedAt

	return nil
}

// FindBookingByID retrieves a booking by its unique ID.
func (repo *bookingRepository) FindBookingByID(ctx context.Context, id uuid.UUID) (*entity.Booking, error) {
	var bookingM model.BookingModel

	if err := repo.db.WithContext(ctx).
		Where("id = ?", id).
		First(&bookingM).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, repository.ErrBookingNotFound
		}

		return nil, errors.Wrap(err, "failed to find booking by ID")
	}

	return toBookingDomain(&bookingM), nil
}

// FindBookingByReference retrieves a booking by its human-facing reference.
func (repo *bookingRepository) FindBookingByReference(ctx context.Context, reference string) (*entity.Booking, error) {
	var bookingM model.BookingModel

	if err := repo.db.WithContext(ctx).
		Where("reference = ?", reference).
		First(&bookingM).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, repository.ErrBookingNotFound
		}

		return nil, errors.Wrap(err, "failed to find booking by reference")
	}

	return toBookingDomain(&bookingM), nil
}

// FindBookingsByUser retrieves a user's bookings with pagination, newest first.
func (repo *bookingRepository) FindBookingsByUser(ctx context.Context, userID uuid.UUID, limit, offset int) ([]*entity.Booking, error) {
	var bookingModels []*model.BookingModel

	if err := repo.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("created_at DESC").
		Limit(limit).
		Offset(offset).
		Find(&bookingModels).Error; err != nil {
		return nil, errors.Wrap(err, "failed to find bookings by user")
	}

	bookings := make([]*entity.Booking, 0, len(bookingModels))
	for _, bookingM := range bookingModels {
		bookings = append(bookings, toBookingDomain(bookingM))
	}

	return bookings, nil
}

// UpdateBookingStatus transitions a booking to a new lifecycle status.
func (repo *bookingRepository) UpdateBookingStatus(ctx context.Context, id uuid.UUID, status entity.BookingStatus) error {
	result := repo.db.WithContext(ctx).
		Model(&model.BookingModel{}).
		Where("id = ?", id).
		Update("status", string(status))

	if result.Error != nil {
		return errors.Wrap(result.Error, "failed to update booking status")
	}

	if result.RowsAffected == 0 {
		return repository.ErrBookingNotFound
	}

	return nil
}

// --- Mapper Functions ---

func toBookingDomain(data *model.BookingModel) *entity.Booking {
	if data == nil {
		return nil
	}

	return &entity.Booking{
		ID:          data.ID,
		UserID:      data.UserID,
		Reference:   data.Reference,
		Type:        entity.BookingType(data.Type),
		Destination: data.Destination,
		Origin:      data.Origin,
		StartDate:   data.StartDate,
		EndDate:     data.EndDate,
		Guests:      data.Guests,
		Rooms:       data.Rooms,
		ProviderRef: data.ProviderRef,
		Currency:    data.Currency,
		BaseAmount:  data.BaseAmount,
		ServiceFee:  data.ServiceFee,
		TaxAmount:   data.TaxAmount,
		TotalAmount: data.TotalAmount,
		Estimated:   data.Estimated,
		Status:      entity.BookingStatus(data.Status),
		CreatedAt:   data.CreatedAt,
		UpdatedAt:   data.UpdatedAt,
	}
}

func fromBookingDomain(data *entity.Booking) *model.BookingModel {
	if data == nil {
		return nil
	}

	return &model.BookingModel{
		ID:          data.ID,
		UserID:      data.UserID,
		Reference:   data.Reference,
		Type:        string(data.Type),
		Destination: data.Destination,
		Origin:      data.Origin,
		StartDate:   data.StartDate,
		EndDate:     data.EndDate,
		Guests:      data.Guests,
		Rooms:       data.Rooms,
		ProviderRef: data.ProviderRef,
		Currency:    data.Currency,
		BaseAmount:  data.BaseAmount,
		ServiceFee:  data.ServiceFee,
		TaxAmount:   data.TaxAmount,
		TotalAmount: data.TotalAmount,
		Estimated:   data.Estimated,
		Status:      string(data.Status),
		CreatedAt:   data.CreatedAt,
		UpdatedAt:   data.UpdatedAt,
	}
}
