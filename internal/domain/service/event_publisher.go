package service

import (
	"context"
	"time"
)

// BookingEvent is published when a booking is created, for asynchronous
// confirmation fan-out by the notify worker.
type BookingEvent struct {
	BookingID   string    `json:"booking_id"`
	UserID      string    `json:"user_id"`
	Reference   string    `json:"reference"`
	Type        string    `json:"type"`
	Destination string    `json:"destination"`
	TotalAmount float64   `json:"total_amount"`
	Currency    string    `json:"currency"`
	OccurredAt  time.Time `json:"occurred_at"`
}

// EventPublisher publishes booking events to the configured transport.
type EventPublisher interface {
	PublishBookingEvent(ctx context.Context, event *BookingEvent) error
	Close() error
}
