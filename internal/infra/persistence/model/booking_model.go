package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// BookingModel is the GORM-specific struct for the 'bookings' table.
type BookingModel struct {
	ID          uuid.UUID `gorm:"type:uuid;primary_key;default:uuid_generate_v7()"`
	UserID      uuid.UUID `gorm:"type:uuid;not null;index"`
	Reference   string    `gorm:"type:varchar(20);not null;uniqueIndex"`
	Type        string    `gorm:"type:varchar(20);not null"`
	Destination string    `gorm:"type:varchar(255);not null"`
	Origin      string    `gorm:"type:varchar(255)"`
	StartDate   time.Time `gorm:"not null"`
	EndDate     time.Time
	Guests      int    `gorm:"not null;default:1"`
	Rooms       int    `gorm:"not null;default:0"`
	ProviderRef string `gorm:"type:varchar(255)"`

	Currency    string  `gorm:"type:varchar(3);not null"`
	BaseAmount  float64 `gorm:"type:numeric(12,2);not null"`
	ServiceFee  float64 `gorm:"type:numeric(12,2);not null"`
	TaxAmount   float64 `gorm:"type:numeric(12,2);not null"`
	TotalAmount float64 `gorm:"type:numeric(12,2);not null"`
	Estimated   bool    `gorm:"not null;default:false"`

	Status    string `gorm:"type:varchar(20);not null;index"`
	CreatedAt time.Time
	UpdatedAt time.Time
	DeletedAt gorm.DeletedAt `gorm:"index"`
}

// TableName explicitly sets the table name for GORM.
func (BookingModel) TableName() string {
	return "bookings"
}
