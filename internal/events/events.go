package events

import (
	"encoding/json"
	"fmt"
)

// Routing keys on the marketplace topic exchange.
const (
	RKBookingApplied       = "booking.applied"
	RKBookingInvited       = "booking.invited"
	RKBookingStatusChanged = "booking.status_changed"
	RKMessageSent          = "message.sent"
)

type BookingChanged struct {
	BookingID  string `json:"booking_id"`
	EventID    string `json:"event_id"`
	MusicianID string `json:"musician_id"`
	Status     string `json:"status"`
}

type MessageSent struct {
	MessageID   string `json:"message_id"`
	BookingID   string `json:"booking_id"`
	SenderID    string `json:"sender_id"`
	RecipientID string `json:"recipient_id"`
}

func Unmarshal[T any](b []byte) (T, error) {
	var t T
	if err := json.Unmarshal(b, &t); err != nil {
		var zero T
		return zero, fmt.Errorf("decode payload: %w", err)
	}
	return t, nil
}
