package domain

import (
	"time"

	"github.com/google/uuid"
)

type NotificationType string

const (
	NotificationNewMessage     NotificationType = "new_message"
	NotificationBookingApplied NotificationType = "booking_applied"
	NotificationBookingInvited NotificationType = "booking_invited"
	NotificationStatusChanged  NotificationType = "status_changed"
)

type Notification struct {
	ID        uuid.UUID
	UserID    uuid.UUID
	BookingID *uuid.UUID
	Type      NotificationType
	Title     string
	Body      string
	IsRead    bool
	ReadAt    *time.Time
	CreatedAt time.Time
}

type Message struct {
	ID          uuid.UUID
	BookingID   uuid.UUID
	SenderID    uuid.UUID
	RecipientID uuid.UUID
	Body        string
	IsRead      bool
	ReadAt      *time.Time
	CreatedAt   time.Time
}
