package services_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"github.com/gigstage/gigstage/internal/core/domain"
	"github.com/gigstage/gigstage/internal/core/ports/mocks"
	"github.com/gigstage/gigstage/internal/core/services"
	"github.com/gigstage/gigstage/internal/events"
)

type inboxFixture struct {
	svc           *services.InboxService
	notifications *mocks.NotificationRepository
	messages      *mocks.MessageRepository
	bookings      *mocks.BookingRepository
	pub           *mocks.Publisher
}

func newInboxFixture(t *testing.T) *inboxFixture {
	f := &inboxFixture{
		notifications: mocks.NewNotificationRepository(t),
		messages:      mocks.NewMessageRepository(t),
		bookings:      mocks.NewBookingRepository(t),
		pub:           mocks.NewPublisher(t),
	}
	f.svc = services.NewInboxService(f.notifications, f.messages, f.bookings, f.pub, zerolog.Nop())
	return f
}

func TestMarkNotificationRead_CascadesToUnreadMessages(t *testing.T) {
	f := newInboxFixture(t)

	ctx := context.Background()
	bookingID := uuid.New()
	userID := uuid.New()

	notif := &domain.Notification{
		ID:        uuid.New(),
		UserID:    userID,
		BookingID: &bookingID,
		Type:      domain.NotificationNewMessage,
	}

	unread := []domain.Message{
		{ID: uuid.New(), BookingID: bookingID, RecipientID: userID},
		{ID: uuid.New(), BookingID: bookingID, RecipientID: userID},
	}

	f.notifications.On("GetByID", ctx, notif.ID).Return(notif, nil)
	f.notifications.On("MarkRead", ctx, notif.ID, mock.AnythingOfType("time.Time")).Return(nil)
	f.messages.On("ListUnreadByBooking", ctx, bookingID, userID).Return(unread, nil)
	f.messages.On("MarkRead", ctx, unread[0].ID, mock.AnythingOfType("time.Time")).Return(nil)
	f.messages.On("MarkRead", ctx, unread[1].ID, mock.AnythingOfType("time.Time")).Return(nil)

	err := f.svc.MarkNotificationRead(ctx, notif.ID)

	assert.NoError(t, err)
}

func TestMarkNotificationRead_AlreadyReadIsNoOp(t *testing.T) {
	f := newInboxFixture(t)

	ctx := context.Background()
	bookingID := uuid.New()

	notif := &domain.Notification{
		ID:        uuid.New(),
		UserID:    uuid.New(),
		BookingID: &bookingID,
		IsRead:    true,
	}

	f.notifications.On("GetByID", ctx, notif.ID).Return(notif, nil)

	err := f.svc.MarkNotificationRead(ctx, notif.ID)

	assert.NoError(t, err)
	f.notifications.AssertNotCalled(t, "MarkRead", mock.Anything, mock.Anything, mock.Anything)
	f.messages.AssertNotCalled(t, "ListUnreadByBooking", mock.Anything, mock.Anything, mock.Anything)
}

func TestMarkNotificationRead_NoBookingNoCascade(t *testing.T) {
	f := newInboxFixture(t)

	ctx := context.Background()
	notif := &domain.Notification{ID: uuid.New(), UserID: uuid.New()}

	f.notifications.On("GetByID", ctx, notif.ID).Return(notif, nil)
	f.notifications.On("MarkRead", ctx, notif.ID, mock.AnythingOfType("time.Time")).Return(nil)

	err := f.svc.MarkNotificationRead(ctx, notif.ID)

	assert.NoError(t, err)
	f.messages.AssertNotCalled(t, "ListUnreadByBooking", mock.Anything, mock.Anything, mock.Anything)
}

func TestMarkNotificationRead_CascadeContinuesPastFailures(t *testing.T) {
	f := newInboxFixture(t)

	ctx := context.Background()
	bookingID := uuid.New()
	userID := uuid.New()

	notif := &domain.Notification{ID: uuid.New(), UserID: userID, BookingID: &bookingID}
	unread := []domain.Message{
		{ID: uuid.New(), BookingID: bookingID, RecipientID: userID},
		{ID: uuid.New(), BookingID: bookingID, RecipientID: userID},
	}

	f.notifications.On("GetByID", ctx, notif.ID).Return(notif, nil)
	f.notifications.On("MarkRead", ctx, notif.ID, mock.AnythingOfType("time.Time")).Return(nil)
	f.messages.On("ListUnreadByBooking", ctx, bookingID, userID).Return(unread, nil)
	f.messages.On("MarkRead", ctx, unread[0].ID, mock.AnythingOfType("time.Time")).Return(errors.New("row locked"))
	f.messages.On("MarkRead", ctx, unread[1].ID, mock.AnythingOfType("time.Time")).Return(nil)

	err := f.svc.MarkNotificationRead(ctx, notif.ID)

	assert.NoError(t, err)
	f.messages.AssertCalled(t, "MarkRead", ctx, unread[1].ID, mock.AnythingOfType("time.Time"))
}

func TestMarkMessageRead_CascadesToNewMessageNotifications(t *testing.T) {
	f := newInboxFixture(t)

	ctx := context.Background()
	bookingID := uuid.New()
	actorID := uuid.New()

	msg := &domain.Message{ID: uuid.New(), BookingID: bookingID, RecipientID: actorID}
	notifs := []domain.Notification{
		{ID: uuid.New(), UserID: actorID, BookingID: &bookingID, Type: domain.NotificationNewMessage},
	}

	f.messages.On("GetByID", ctx, msg.ID).Return(msg, nil)
	f.messages.On("MarkRead", ctx, msg.ID, mock.AnythingOfType("time.Time")).Return(nil)
	f.notifications.On("ListUnreadByBooking", ctx, bookingID, actorID, domain.NotificationNewMessage).Return(notifs, nil)
	f.notifications.On("MarkRead", ctx, notifs[0].ID, mock.AnythingOfType("time.Time")).Return(nil)

	err := f.svc.MarkMessageRead(ctx, msg.ID, actorID)

	assert.NoError(t, err)
}

func TestMarkMessageRead_AlreadyReadIsNoOp(t *testing.T) {
	f := newInboxFixture(t)

	ctx := context.Background()
	msg := &domain.Message{ID: uuid.New(), BookingID: uuid.New(), IsRead: true}

	f.messages.On("GetByID", ctx, msg.ID).Return(msg, nil)

	err := f.svc.MarkMessageRead(ctx, msg.ID, uuid.New())

	assert.NoError(t, err)
	f.messages.AssertNotCalled(t, "MarkRead", mock.Anything, mock.Anything, mock.Anything)
}

func TestSendMessage_NotificationFailureDoesNotFailSend(t *testing.T) {
	f := newInboxFixture(t)

	ctx := context.Background()
	bookingID := uuid.New()
	senderID := uuid.New()
	recipientID := uuid.New()

	f.bookings.On("GetByID", ctx, bookingID).Return(&domain.Booking{ID: bookingID}, nil)
	f.messages.On("Create", ctx, mock.AnythingOfType("*domain.Message")).Return(nil)
	f.notifications.On("Create", ctx, mock.MatchedBy(func(n *domain.Notification) bool {
		return n.UserID == recipientID && n.Type == domain.NotificationNewMessage
	})).Return(errors.New("insert failed"))
	f.pub.On("PublishJSON", ctx, events.RKMessageSent, mock.Anything).Return(nil)

	msg, err := f.svc.SendMessage(ctx, services.SendMessageRequest{
		BookingID:   bookingID.String(),
		SenderID:    senderID.String(),
		RecipientID: recipientID.String(),
		Body:        "soundcheck at five",
	})

	assert.NoError(t, err)
	if assert.NotNil(t, msg) {
		assert.Equal(t, bookingID, msg.BookingID)
		assert.False(t, msg.IsRead)
		assert.WithinDuration(t, time.Now().UTC(), msg.CreatedAt, time.Minute)
	}
}

func TestSendMessage_MissingBookingIsValidationError(t *testing.T) {
	f := newInboxFixture(t)

	ctx := context.Background()
	bookingID := uuid.New()

	f.bookings.On("GetByID", ctx, bookingID).Return(nil, domain.ErrNotFound)

	msg, err := f.svc.SendMessage(ctx, services.SendMessageRequest{
		BookingID:   bookingID.String(),
		SenderID:    uuid.New().String(),
		RecipientID: uuid.New().String(),
		Body:        "hello",
	})

	assert.Nil(t, msg)
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
	f.messages.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
}
