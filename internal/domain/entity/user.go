package entity

import (
	"time"

	"github.com/google/uuid"
)

// User is a registered traveller account.
type User struct {
	ID           uuid.UUID `json:"id"`
	Email        string    `json:"email"`
	FullName     string    `json:"full_name"`
	Phone        string    `json:"phone,omitempty"` // E.164, used for SMS/WhatsApp confirmations.
	PasswordHash string    `json:"-"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}

// UserDevice is a push-capable device registered by a user.
type UserDevice struct {
	ID          uuid.UUID `json:"id"`
	UserID      uuid.UUID `json:"user_id"`
	FCMToken    string    `json:"fcm_token"`
	Platform    string    `json:"platform"` // "android", "ios" or "web".
	PushEnabled bool      `json:"push_enabled"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}
