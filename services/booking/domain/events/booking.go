package events

import (
	"time"

	"github.com/google/uuid"
)

// Watermill topics for the booking lifecycle.
const (
	TopicBookingCreated = "booking.created"
	TopicBookingDecided = "booking.decided"
)

// BookingCreatedEvent is published after a booking is persisted in WAITING state.
type BookingCreatedEvent struct {
	EventID    uuid.UUID `json:"event_id"`
	Version    int       `json:"version"`
	BookingID  int64     `json:"booking_id"`
	ItemID     int64     `json:"item_id"`
	BookerID   int64     `json:"booker_id"`
	Start      time.Time `json:"start"`
	End        time.Time `json:"end"`
	OccurredAt time.Time `json:"occurred_at"`
}

// BookingDecidedEvent is published after an owner approves or rejects a booking.
type BookingDecidedEvent struct {
	EventID    uuid.UUID `json:"event_id"`
	Version    int       `json:"version"`
	BookingID  int64     `json:"booking_id"`
	ItemID     int64     `json:"item_id"`
	BookerID   int64     `json:"booker_id"`
	Status     string    `json:"status"`
	OccurredAt time.Time `json:"occurred_at"`
}
