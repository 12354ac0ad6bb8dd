package services

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/gigstage/gigstage/internal/core/domain"
	"github.com/gigstage/gigstage/internal/core/ports"
	"github.com/gigstage/gigstage/internal/events"
)

type SendMessageRequest struct {
	BookingID   string `json:"booking_id"`
	SenderID    string `json:"sender_id"`
	RecipientID string `json:"recipient_id"`
	Body        string `json:"body"`
}

// InboxService owns messages and notifications, including the read-state
// cascade between them: reading a notification reads the unread messages on
// its booking, and reading a message reads the unread "new_message"
// notifications for the acting user.
type InboxService struct {
	notifications ports.NotificationRepository
	messages      ports.MessageRepository
	bookings      ports.BookingRepository
	pub           ports.Publisher
	log           zerolog.Logger
}

func NewInboxService(notifications ports.NotificationRepository, messages ports.MessageRepository, bookings ports.BookingRepository, pub ports.Publisher, log zerolog.Logger) *InboxService {
	return &InboxService{
		notifications: notifications,
		messages:      messages,
		bookings:      bookings,
		pub:           pub,
		log:           log,
	}
}

// SendMessage creates a message on a booking thread. The recipient gets a
// "new_message" notification best-effort: a failed notification write is
// logged and does not fail the send.
func (s *InboxService) SendMessage(ctx context.Context, req SendMessageRequest) (*domain.Message, error) {
	bookingID, err := uuid.Parse(req.BookingID)
	if err != nil {
		return nil, fmt.Errorf("%w: invalid booking id", domain.ErrInvalidInput)
	}

	senderID, err := uuid.Parse(req.SenderID)
	if err != nil {
		return nil, fmt.Errorf("%w: invalid sender id", domain.ErrInvalidInput)
	}

	recipientID, err := uuid.Parse(req.RecipientID)
	if err != nil {
		return nil, fmt.Errorf("%w: invalid recipient id", domain.ErrInvalidInput)
	}

	if req.Body == "" {
		return nil, fmt.Errorf("%w: message body is required", domain.ErrInvalidInput)
	}

	if _, err := s.bookings.GetByID(ctx, bookingID); err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, fmt.Errorf("%w: booking does not exist", domain.ErrInvalidInput)
		}
		return nil, err
	}

	msg := &domain.Message{
		ID:          uuid.New(),
		BookingID:   bookingID,
		SenderID:    senderID,
		RecipientID: recipientID,
		Body:        req.Body,
		CreatedAt:   time.Now().UTC(),
	}

	if err := s.messages.Create(ctx, msg); err != nil {
		return nil, fmt.Errorf("create message: %w", err)
	}

	n := &domain.Notification{
		ID:        uuid.New(),
		UserID:    recipientID,
		BookingID: &bookingID,
		Type:      domain.NotificationNewMessage,
		Title:     "New message",
		Body:      req.Body,
		CreatedAt: msg.CreatedAt,
	}
	if err := s.notifications.Create(ctx, n); err != nil {
		s.log.Error().Err(err).Str("message_id", msg.ID.String()).Msg("new_message notification create failed")
	}

	_ = s.pub.PublishJSON(ctx, events.RKMessageSent, events.MessageSent{
		MessageID:   msg.ID.String(),
		BookingID:   msg.BookingID.String(),
		SenderID:    msg.SenderID.String(),
		RecipientID: msg.RecipientID.String(),
	})

	return msg, nil
}

// MarkNotificationRead marks a notification read and cascades the flag to
// the unread messages on the linked booking addressed to the notification's
// user. Already-read notifications are a no-op. Each cascade target is
// updated independently; one failure does not stop the rest.
func (s *InboxService) MarkNotificationRead(ctx context.Context, notificationID uuid.UUID) error {
	n, err := s.notifications.GetByID(ctx, notificationID)
	if err != nil {
		return err
	}

	if n.IsRead {
		return nil
	}

	now := time.Now().UTC()
	if err := s.notifications.MarkRead(ctx, n.ID, now); err != nil {
		return fmt.Errorf("mark notification read: %w", err)
	}

	if n.BookingID == nil {
		return nil
	}

	msgs, err := s.messages.ListUnreadByBooking(ctx, *n.BookingID, n.UserID)
	if err != nil {
		s.log.Error().Err(err).Str("notification_id", n.ID.String()).Msg("unread message lookup failed")
		return nil
	}

	for _, m := range msgs {
		if err := s.messages.MarkRead(ctx, m.ID, now); err != nil {
			s.log.Error().Err(err).Str("message_id", m.ID.String()).Msg("message read cascade failed")
			continue
		}
	}

	return nil
}

// MarkMessageRead marks a message read and cascades the flag to the unread
// "new_message" notifications on the same booking belonging to the acting
// user. The unread filter in the lookup is what keeps the cascade from
// looping back: anything already read is never touched again.
func (s *InboxService) MarkMessageRead(ctx context.Context, messageID, actorID uuid.UUID) error {
	m, err := s.messages.GetByID(ctx, messageID)
	if err != nil {
		return err
	}

	if m.IsRead {
		return nil
	}

	now := time.Now().UTC()
	if err := s.messages.MarkRead(ctx, m.ID, now); err != nil {
		return fmt.Errorf("mark message read: %w", err)
	}

	notifs, err := s.notifications.ListUnreadByBooking(ctx, m.BookingID, actorID, domain.NotificationNewMessage)
	if err != nil {
		s.log.Error().Err(err).Str("message_id", m.ID.String()).Msg("unread notification lookup failed")
		return nil
	}

	for _, n := range notifs {
		if err := s.notifications.MarkRead(ctx, n.ID, now); err != nil {
			s.log.Error().Err(err).Str("notification_id", n.ID.String()).Msg("notification read cascade failed")
			continue
		}
	}

	return nil
}

func (s *InboxService) ListNotifications(ctx context.Context, userID uuid.UUID) ([]domain.Notification, error) {
	return s.notifications.ListByUser(ctx, userID)
}
