package ports

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/gigstage/gigstage/internal/core/domain"
)

type UserRepository interface {
	Create(ctx context.Context, user *domain.User) error
	GetByID(ctx context.Context, userID uuid.UUID) (*domain.User, error)
	UpdateRoles(ctx context.Context, userID uuid.UUID, roles []string, primaryRole domain.PrimaryRole) error
}

type MusicianRepository interface {
	Create(ctx context.Context, musician *domain.Musician) error
	GetByID(ctx context.Context, musicianID uuid.UUID) (*domain.Musician, error)
	GetByUserID(ctx context.Context, userID uuid.UUID) (*domain.Musician, error)
}

type VenueRepository interface {
	Create(ctx context.Context, venue *domain.Venue) error
	GetByID(ctx context.Context, venueID uuid.UUID) (*domain.Venue, error)
	GetByOwnerID(ctx context.Context, ownerID uuid.UUID) (*domain.Venue, error)
}

type EventRepository interface {
	Create(ctx context.Context, event *domain.Event) error
	GetByID(ctx context.Context, eventID uuid.UUID) (*domain.Event, error)
	ListUpcomingByVenue(ctx context.Context, venueID uuid.UUID, after time.Time) ([]domain.Event, error)
}

type BookingRepository interface {
	Create(ctx context.Context, booking *domain.Booking) error
	GetByID(ctx context.Context, bookingID uuid.UUID) (*domain.Booking, error)
	Update(ctx context.Context, booking *domain.Booking) error
	ListByEvent(ctx context.Context, eventID uuid.UUID) ([]domain.Booking, error)
	ListStaleInvites(ctx context.Context, invitedBefore time.Time) ([]uuid.UUID, error)
	Expire(ctx context.Context, bookingID uuid.UUID) error
}

type NotificationRepository interface {
	Create(ctx context.Context, notification *domain.Notification) error
	GetByID(ctx context.Context, notificationID uuid.UUID) (*domain.Notification, error)
	MarkRead(ctx context.Context, notificationID uuid.UUID, readAt time.Time) error
	ListUnreadByBooking(ctx context.Context, bookingID, userID uuid.UUID, notifType domain.NotificationType) ([]domain.Notification, error)
	ListByUser(ctx context.Context, userID uuid.UUID) ([]domain.Notification, error)
}

type MessageRepository interface {
	Create(ctx context.Context, message *domain.Message) error
	GetByID(ctx context.Context, messageID uuid.UUID) (*domain.Message, error)
	MarkRead(ctx context.Context, messageID uuid.UUID, readAt time.Time) error
	ListUnreadByBooking(ctx context.Context, bookingID, recipientID uuid.UUID) ([]domain.Message, error)
}

// Publisher emits domain events onto the message bus. Publishes are
// fire-and-forget from the caller's point of view.
type Publisher interface {
	PublishJSON(ctx context.Context, key string, v any) error
}
