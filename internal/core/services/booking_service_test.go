package services_test

import (
	"context"
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/go-redis/redismock/v9"
	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"github.com/gigstage/gigstage/internal/core/domain"
	"github.com/gigstage/gigstage/internal/core/ports/mocks"
	"github.com/gigstage/gigstage/internal/core/services"
	"github.com/gigstage/gigstage/internal/events"
)

type bookingFixture struct {
	svc           *services.BookingService
	bookings      *mocks.BookingRepository
	eventsRepo    *mocks.EventRepository
	musicians     *mocks.MusicianRepository
	venues        *mocks.VenueRepository
	notifications *mocks.NotificationRepository
	redis         redismock.ClientMock
	pub           *mocks.Publisher
}

func newBookingFixture(t *testing.T) *bookingFixture {
	f := &bookingFixture{
		bookings:      mocks.NewBookingRepository(t),
		eventsRepo:    mocks.NewEventRepository(t),
		musicians:     mocks.NewMusicianRepository(t),
		venues:        mocks.NewVenueRepository(t),
		notifications: mocks.NewNotificationRepository(t),
		pub:           mocks.NewPublisher(t),
	}

	db, redisMock := redismock.NewClientMock()
	f.redis = redisMock
	f.svc = services.NewBookingService(
		f.bookings, f.eventsRepo, f.musicians, f.venues, f.notifications,
		db, f.pub, zerolog.Nop(), 72*time.Hour,
	)
	return f
}

func TestApply_Success(t *testing.T) {
	f := newBookingFixture(t)

	ctx := context.Background()
	userID := uuid.New()
	venueID := uuid.New()
	ownerID := uuid.New()

	event := &domain.Event{ID: uuid.New(), VenueID: venueID, Title: "Jazz Night"}
	musician := &domain.Musician{ID: uuid.New(), UserID: userID, Name: "Nina Vale"}

	f.eventsRepo.On("GetByID", ctx, event.ID).Return(event, nil)
	f.musicians.On("GetByID", ctx, musician.ID).Return(musician, nil)

	var created *domain.Booking
	f.bookings.On("Create", ctx, mock.AnythingOfType("*domain.Booking")).
		Run(func(args mock.Arguments) {
			created = args.Get(1).(*domain.Booking)
		}).Return(nil)

	f.venues.On("GetByID", ctx, venueID).Return(&domain.Venue{ID: venueID, OwnerID: ownerID}, nil)
	f.notifications.On("Create", ctx, mock.MatchedBy(func(n *domain.Notification) bool {
		return n.UserID == ownerID && n.Type == domain.NotificationBookingApplied
	})).Return(nil)

	f.redis.ExpectDel(fmt.Sprintf("bookings:event:%s", event.ID)).SetVal(1)
	f.pub.On("PublishJSON", ctx, events.RKBookingApplied, mock.Anything).Return(nil)

	resp, err := f.svc.Apply(ctx, services.ApplyRequest{
		EventID:    event.ID.String(),
		MusicianID: musician.ID.String(),
		UserID:     userID.String(),
	})

	assert.NoError(t, err)
	if assert.NotNil(t, resp) {
		assert.Equal(t, string(domain.BookingApplied), resp.Status)
		assert.NotNil(t, resp.AppliedAt)
	}
	if assert.NotNil(t, created) {
		assert.NotNil(t, created.AppliedAt)
		assert.Nil(t, created.ConfirmedAt)
	}

	if err := f.redis.ExpectationsWereMet(); err != nil {
		t.Errorf("there were unfulfilled expectations: %s", err)
	}
}

func TestApply_MissingEventIsValidationError(t *testing.T) {
	f := newBookingFixture(t)

	ctx := context.Background()
	eventID := uuid.New()

	f.eventsRepo.On("GetByID", ctx, eventID).Return(nil, domain.ErrNotFound)

	resp, err := f.svc.Apply(ctx, services.ApplyRequest{
		EventID:    eventID.String(),
		MusicianID: uuid.New().String(),
		UserID:     uuid.New().String(),
	})

	assert.Nil(t, resp)
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
	f.bookings.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
}

func TestApply_NotificationFailureDoesNotFailBooking(t *testing.T) {
	f := newBookingFixture(t)

	ctx := context.Background()
	userID := uuid.New()
	venueID := uuid.New()

	event := &domain.Event{ID: uuid.New(), VenueID: venueID, Title: "Open Mic"}
	musician := &domain.Musician{ID: uuid.New(), UserID: userID, Name: "Falk Trio"}

	f.eventsRepo.On("GetByID", ctx, event.ID).Return(event, nil)
	f.musicians.On("GetByID", ctx, musician.ID).Return(musician, nil)
	f.bookings.On("Create", ctx, mock.AnythingOfType("*domain.Booking")).Return(nil)
	f.venues.On("GetByID", ctx, venueID).Return(&domain.Venue{ID: venueID, OwnerID: uuid.New()}, nil)
	f.notifications.On("Create", ctx, mock.AnythingOfType("*domain.Notification")).Return(errors.New("insert failed"))
	f.redis.ExpectDel(fmt.Sprintf("bookings:event:%s", event.ID)).SetVal(1)
	f.pub.On("PublishJSON", ctx, events.RKBookingApplied, mock.Anything).Return(nil)

	resp, err := f.svc.Apply(ctx, services.ApplyRequest{
		EventID:    event.ID.String(),
		MusicianID: musician.ID.String(),
		UserID:     userID.String(),
	})

	assert.NoError(t, err)
	assert.NotNil(t, resp)
}

func TestInvite_StampsInvitedAtAndNotifiesMusician(t *testing.T) {
	f := newBookingFixture(t)

	ctx := context.Background()
	ownerID := uuid.New()
	musicianUserID := uuid.New()
	venueID := uuid.New()

	event := &domain.Event{ID: uuid.New(), VenueID: venueID, Title: "Festival Eve"}
	musician := &domain.Musician{ID: uuid.New(), UserID: musicianUserID, Name: "Nina Vale"}

	f.eventsRepo.On("GetByID", ctx, event.ID).Return(event, nil)
	f.musicians.On("GetByID", ctx, musician.ID).Return(musician, nil)
	f.bookings.On("Create", ctx, mock.AnythingOfType("*domain.Booking")).Return(nil)
	f.notifications.On("Create", ctx, mock.MatchedBy(func(n *domain.Notification) bool {
		return n.UserID == musicianUserID && n.Type == domain.NotificationBookingInvited
	})).Return(nil)
	f.redis.ExpectDel(fmt.Sprintf("bookings:event:%s", event.ID)).SetVal(1)
	f.pub.On("PublishJSON", ctx, events.RKBookingInvited, mock.Anything).Return(nil)

	resp, err := f.svc.Invite(ctx, services.InviteRequest{
		EventID:    event.ID.String(),
		MusicianID: musician.ID.String(),
		UserID:     ownerID.String(),
	})

	assert.NoError(t, err)
	if assert.NotNil(t, resp) {
		assert.Equal(t, string(domain.BookingInvited), resp.Status)
		assert.NotNil(t, resp.InvitedAt)
		assert.Nil(t, resp.AppliedAt)
	}
}

func TestUpdateStatus_ConfirmKeepsAppliedAt(t *testing.T) {
	f := newBookingFixture(t)

	ctx := context.Background()
	appliedAt := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)

	booking := &domain.Booking{
		ID:         uuid.New(),
		EventID:    uuid.New(),
		MusicianID: uuid.New(),
		BookedByID: uuid.New(),
		Status:     domain.BookingApplied,
		AppliedAt:  &appliedAt,
	}

	f.bookings.On("GetByID", ctx, booking.ID).Return(booking, nil)

	var updated *domain.Booking
	f.bookings.On("Update", ctx, mock.AnythingOfType("*domain.Booking")).
		Run(func(args mock.Arguments) {
			updated = args.Get(1).(*domain.Booking)
		}).Return(nil)

	f.notifications.On("Create", ctx, mock.AnythingOfType("*domain.Notification")).Return(nil)
	f.redis.ExpectDel(fmt.Sprintf("bookings:event:%s", booking.EventID)).SetVal(1)
	f.pub.On("PublishJSON", ctx, events.RKBookingStatusChanged, mock.Anything).Return(nil)

	resp, err := f.svc.UpdateStatus(ctx, booking.ID.String(), services.UpdateStatusRequest{Status: "confirmed"})

	assert.NoError(t, err)
	assert.Equal(t, "confirmed", resp.Status)
	if assert.NotNil(t, updated) {
		assert.NotNil(t, updated.ConfirmedAt)
		assert.Equal(t, appliedAt, *updated.AppliedAt)
	}
}

func TestUpdateStatus_UnknownStatusStampsNothing(t *testing.T) {
	f := newBookingFixture(t)

	ctx := context.Background()
	booking := &domain.Booking{
		ID:         uuid.New(),
		EventID:    uuid.New(),
		MusicianID: uuid.New(),
		BookedByID: uuid.New(),
		Status:     domain.BookingApplied,
	}

	f.bookings.On("GetByID", ctx, booking.ID).Return(booking, nil)

	var updated *domain.Booking
	f.bookings.On("Update", ctx, mock.AnythingOfType("*domain.Booking")).
		Run(func(args mock.Arguments) {
			updated = args.Get(1).(*domain.Booking)
		}).Return(nil)

	f.notifications.On("Create", ctx, mock.AnythingOfType("*domain.Notification")).Return(nil)
	f.redis.ExpectDel(fmt.Sprintf("bookings:event:%s", booking.EventID)).SetVal(1)
	f.pub.On("PublishJSON", ctx, events.RKBookingStatusChanged, mock.Anything).Return(nil)

	resp, err := f.svc.UpdateStatus(ctx, booking.ID.String(), services.UpdateStatusRequest{Status: "on_hold"})

	assert.NoError(t, err)
	assert.Equal(t, "on_hold", resp.Status)
	if assert.NotNil(t, updated) {
		assert.Nil(t, updated.InvitedAt)
		assert.Nil(t, updated.SelectedAt)
		assert.Nil(t, updated.ConfirmedAt)
	}
}

func TestListByEvent_CacheHitSkipsRepository(t *testing.T) {
	f := newBookingFixture(t)

	ctx := context.Background()
	eventID := uuid.New()

	f.redis.ExpectGet(fmt.Sprintf("bookings:event:%s", eventID)).SetVal("[]")

	out, err := f.svc.ListByEvent(ctx, eventID.String())

	assert.NoError(t, err)
	assert.Empty(t, out)
	f.bookings.AssertNotCalled(t, "ListByEvent", mock.Anything, mock.Anything)
}

func TestExpireStaleInvites_ContinuesPastFailures(t *testing.T) {
	f := newBookingFixture(t)

	ctx := context.Background()
	first := uuid.New()
	second := uuid.New()

	f.bookings.On("ListStaleInvites", ctx, mock.AnythingOfType("time.Time")).
		Return([]uuid.UUID{first, second}, nil)
	f.bookings.On("Expire", ctx, first).Return(errors.New("row locked"))
	f.bookings.On("Expire", ctx, second).Return(nil)

	f.svc.ExpireStaleInvites(ctx)

	f.bookings.AssertCalled(t, "Expire", ctx, second)
}
