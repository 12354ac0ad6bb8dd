package services

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"

	"github.com/gigstage/gigstage/internal/core/domain"
	"github.com/gigstage/gigstage/internal/core/ports"
	"github.com/gigstage/gigstage/internal/events"
)

const bookingCacheTTL = 30 * time.Second

func bookingCacheKey(eventID uuid.UUID) string {
	return fmt.Sprintf("bookings:event:%s", eventID)
}

type ApplyRequest struct {
	EventID    string `json:"event_id"`
	MusicianID string `json:"musician_id"`
	UserID     string `json:"user_id"`
}

type InviteRequest struct {
	EventID    string `json:"event_id"`
	MusicianID string `json:"musician_id"`
	UserID     string `json:"user_id"`
}

type UpdateStatusRequest struct {
	Status string `json:"status"`
}

type BookingResponse struct {
	BookingID   string     `json:"booking_id"`
	EventID     string     `json:"event_id"`
	VenueID     string     `json:"venue_id"`
	MusicianID  string     `json:"musician_id"`
	Status      string     `json:"status"`
	AppliedAt   *time.Time `json:"applied_at,omitempty"`
	InvitedAt   *time.Time `json:"invited_at,omitempty"`
	SelectedAt  *time.Time `json:"selected_at,omitempty"`
	ConfirmedAt *time.Time `json:"confirmed_at,omitempty"`
}

func toBookingResponse(b *domain.Booking) *BookingResponse {
	return &BookingResponse{
		BookingID:   b.ID.String(),
		EventID:     b.EventID.String(),
		VenueID:     b.VenueID.String(),
		MusicianID:  b.MusicianID.String(),
		Status:      string(b.Status),
		AppliedAt:   b.AppliedAt,
		InvitedAt:   b.InvitedAt,
		SelectedAt:  b.SelectedAt,
		ConfirmedAt: b.ConfirmedAt,
	}
}

type BookingService struct {
	bookings      ports.BookingRepository
	eventsRepo    ports.EventRepository
	musicians     ports.MusicianRepository
	venues        ports.VenueRepository
	notifications ports.NotificationRepository
	cache         *redis.Client
	pub           ports.Publisher
	log           zerolog.Logger
	inviteTTL     time.Duration
}

func NewBookingService(
	bookings ports.BookingRepository,
	eventsRepo ports.EventRepository,
	musicians ports.MusicianRepository,
	venues ports.VenueRepository,
	notifications ports.NotificationRepository,
	cache *redis.Client,
	pub ports.Publisher,
	log zerolog.Logger,
	inviteTTL time.Duration,
) *BookingService {
	return &BookingService{
		bookings:      bookings,
		eventsRepo:    eventsRepo,
		musicians:     musicians,
		venues:        venues,
		notifications: notifications,
		cache:         cache,
		pub:           pub,
		log:           log,
		inviteTTL:     inviteTTL,
	}
}

// Apply creates a booking on behalf of a musician applying to play an event.
// The event and musician must exist; the booking starts in "applied" and the
// applied_at timestamp is stamped before the record is persisted.
func (s *BookingService) Apply(ctx context.Context, req ApplyRequest) (*BookingResponse, error) {
	userID, err := uuid.Parse(req.UserID)
	if err != nil {
		return nil, fmt.Errorf("%w: invalid user id", domain.ErrInvalidInput)
	}

	eventID, err := uuid.Parse(req.EventID)
	if err != nil {
		return nil, fmt.Errorf("%w: invalid event id", domain.ErrInvalidInput)
	}

	musicianID, err := uuid.Parse(req.MusicianID)
	if err != nil {
		return nil, fmt.Errorf("%w: invalid musician id", domain.ErrInvalidInput)
	}

	event, err := s.eventsRepo.GetByID(ctx, eventID)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, fmt.Errorf("%w: event does not exist", domain.ErrInvalidInput)
		}
		return nil, err
	}

	musician, err := s.musicians.GetByID(ctx, musicianID)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, fmt.Errorf("%w: musician does not exist", domain.ErrInvalidInput)
		}
		return nil, err
	}

	now := time.Now().UTC()
	booking := &domain.Booking{
		ID:         uuid.New(),
		EventID:    event.ID,
		VenueID:    event.VenueID,
		MusicianID: musician.ID,
		BookedByID: userID,
		Status:     domain.BookingApplied,
		CreatedAt:  now,
		UpdatedAt:  now,
	}
	booking.StampStatus(now)

	if err := s.bookings.Create(ctx, booking); err != nil {
		return nil, fmt.Errorf("create booking: %w", err)
	}

	if venue, err := s.venues.GetByID(ctx, event.VenueID); err != nil {
		s.log.Error().Err(err).Str("venue_id", event.VenueID.String()).Msg("venue lookup for notification failed")
	} else {
		s.notify(ctx, venue.OwnerID, booking.ID, domain.NotificationBookingApplied,
			"New application", fmt.Sprintf("%s applied to play %s", musician.Name, event.Title))
	}

	s.invalidateEventBookings(ctx, event.ID)
	_ = s.pub.PublishJSON(ctx, events.RKBookingApplied, events.BookingChanged{
		BookingID:  booking.ID.String(),
		EventID:    booking.EventID.String(),
		MusicianID: booking.MusicianID.String(),
		Status:     string(booking.Status),
	})

	return toBookingResponse(booking), nil
}

// Invite creates a booking on behalf of a venue inviting a musician. Same
// shape as Apply, starting in "invited" with invited_at stamped; the
// musician's user is notified.
func (s *BookingService) Invite(ctx context.Context, req InviteRequest) (*BookingResponse, error) {
	userID, err := uuid.Parse(req.UserID)
	if err != nil {
		return nil, fmt.Errorf("%w: invalid user id", domain.ErrInvalidInput)
	}

	eventID, err := uuid.Parse(req.EventID)
	if err != nil {
		return nil, fmt.Errorf("%w: invalid event id", domain.ErrInvalidInput)
	}

	musicianID, err := uuid.Parse(req.MusicianID)
	if err != nil {
		return nil, fmt.Errorf("%w: invalid musician id", domain.ErrInvalidInput)
	}

	event, err := s.eventsRepo.GetByID(ctx, eventID)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, fmt.Errorf("%w: event does not exist", domain.ErrInvalidInput)
		}
		return nil, err
	}

	musician, err := s.musicians.GetByID(ctx, musicianID)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, fmt.Errorf("%w: musician does not exist", domain.ErrInvalidInput)
		}
		return nil, err
	}

	now := time.Now().UTC()
	booking := &domain.Booking{
		ID:         uuid.New(),
		EventID:    event.ID,
		VenueID:    event.VenueID,
		MusicianID: musician.ID,
		BookedByID: userID,
		Status:     domain.BookingInvited,
		CreatedAt:  now,
		UpdatedAt:  now,
	}
	booking.StampStatus(now)

	if err := s.bookings.Create(ctx, booking); err != nil {
		return nil, fmt.Errorf("create booking: %w", err)
	}

	s.notify(ctx, musician.UserID, booking.ID, domain.NotificationBookingInvited,
		"New invitation", fmt.Sprintf("You have been invited to play %s", event.Title))

	s.invalidateEventBookings(ctx, event.ID)
	_ = s.pub.PublishJSON(ctx, events.RKBookingInvited, events.BookingChanged{
		BookingID:  booking.ID.String(),
		EventID:    booking.EventID.String(),
		MusicianID: booking.MusicianID.String(),
		Status:     string(booking.Status),
	})

	return toBookingResponse(booking), nil
}

// UpdateStatus moves a booking to the given status. The matching lifecycle
// timestamp is stamped set-once; statuses outside the tracked set are
// accepted and persisted with no timestamp written.
func (s *BookingService) UpdateStatus(ctx context.Context, bookingID string, req UpdateStatusRequest) (*BookingResponse, error) {
	id, err := uuid.Parse(bookingID)
	if err != nil {
		return nil, fmt.Errorf("%w: invalid booking id", domain.ErrInvalidInput)
	}

	if req.Status == "" {
		return nil, fmt.Errorf("%w: status is required", domain.ErrInvalidInput)
	}

	booking, err := s.bookings.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	now := time.Now().UTC()
	booking.Status = domain.BookingStatus(req.Status)
	booking.StampStatus(now)
	booking.UpdatedAt = now

	if err := s.bookings.Update(ctx, booking); err != nil {
		return nil, fmt.Errorf("update booking: %w", err)
	}

	s.notify(ctx, booking.BookedByID, booking.ID, domain.NotificationStatusChanged,
		"Booking updated", fmt.Sprintf("Booking is now %s", booking.Status))

	s.invalidateEventBookings(ctx, booking.EventID)
	_ = s.pub.PublishJSON(ctx, events.RKBookingStatusChanged, events.BookingChanged{
		BookingID:  booking.ID.String(),
		EventID:    booking.EventID.String(),
		MusicianID: booking.MusicianID.String(),
		Status:     string(booking.Status),
	})

	return toBookingResponse(booking), nil
}

func (s *BookingService) GetBooking(ctx context.Context, bookingID string) (*BookingResponse, error) {
	id, err := uuid.Parse(bookingID)
	if err != nil {
		return nil, fmt.Errorf("%w: invalid booking id", domain.ErrInvalidInput)
	}

	booking, err := s.bookings.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	return toBookingResponse(booking), nil
}

// ListByEvent returns the bookings for an event, served from the redis
// cache when warm. Cache failures fall through to the repository.
func (s *BookingService) ListByEvent(ctx context.Context, eventID string) ([]domain.Booking, error) {
	id, err := uuid.Parse(eventID)
	if err != nil {
		return nil, fmt.Errorf("%w: invalid event id", domain.ErrInvalidInput)
	}

	key := bookingCacheKey(id)
	if data, err := s.cache.Get(ctx, key).Bytes(); err == nil {
		var cached []domain.Booking
		if err := json.Unmarshal(data, &cached); err == nil {
			return cached, nil
		}
	} else if !errors.Is(err, redis.Nil) {
		s.log.Error().Err(err).Str("key", key).Msg("booking cache read failed")
	}

	bookings, err := s.bookings.ListByEvent(ctx, id)
	if err != nil {
		return nil, err
	}

	if data, err := json.Marshal(bookings); err == nil {
		if err := s.cache.Set(ctx, key, data, bookingCacheTTL).Err(); err != nil {
			s.log.Error().Err(err).Str("key", key).Msg("booking cache write failed")
		}
	}

	return bookings, nil
}

// RunInviteExpiry moves unanswered invitations to "expired" on a fixed
// interval until ctx is cancelled.
func (s *BookingService) RunInviteExpiry(ctx context.Context) {
	ticker := time.NewTicker(1 * time.Minute)
	defer ticker.Stop()

	s.log.Info().Dur("invite_ttl", s.inviteTTL).Msg("invite expiry worker started")

	for {
		select {
		case <-ctx.Done():
			s.log.Info().Msg("invite expiry worker stopped")
			return
		case <-ticker.C:
			s.ExpireStaleInvites(ctx)
		}
	}
}

// ExpireStaleInvites is one expiry sweep. Failures on individual bookings
// are logged and the sweep moves on.
func (s *BookingService) ExpireStaleInvites(ctx context.Context) {
	cutoff := time.Now().UTC().Add(-s.inviteTTL)

	ids, err := s.bookings.ListStaleInvites(ctx, cutoff)
	if err != nil {
		s.log.Error().Err(err).Msg("fetching stale invites failed")
		return
	}

	if len(ids) == 0 {
		return
	}

	s.log.Info().Int("count", len(ids)).Msg("expiring stale invitations")

	for _, id := range ids {
		if err := s.bookings.Expire(ctx, id); err != nil {
			s.log.Error().Err(err).Str("booking_id", id.String()).Msg("expire booking failed")
			continue
		}
		s.log.Info().Str("booking_id", id.String()).Msg("invitation expired")
	}
}

// notify inserts a notification row. Failures are logged and swallowed; a
// booking action never fails because its notification could not be written.
func (s *BookingService) notify(ctx context.Context, userID, bookingID uuid.UUID, notifType domain.NotificationType, title, body string) {
	n := &domain.Notification{
		ID:        uuid.New(),
		UserID:    userID,
		BookingID: &bookingID,
		Type:      notifType,
		Title:     title,
		Body:      body,
		CreatedAt: time.Now().UTC(),
	}
	if err := s.notifications.Create(ctx, n); err != nil {
		s.log.Error().Err(err).
			Str("user_id", userID.String()).
			Str("booking_id", bookingID.String()).
			Msg("notification create failed")
	}
}

func (s *BookingService) invalidateEventBookings(ctx context.Context, eventID uuid.UUID) {
	key := bookingCacheKey(eventID)
	if err := s.cache.Del(ctx, key).Err(); err != nil {
		s.log.Error().Err(err).Str("key", key).Msg("booking cache invalidation failed")
	}
}
