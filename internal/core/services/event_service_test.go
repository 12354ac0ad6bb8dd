package services_test

import (
	"context"
	"encoding/json"
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
)

func TestCreateEvent_InvalidatesVenueCache(t *testing.T) {
	eventsRepo := mocks.NewEventRepository(t)
	venues := mocks.NewVenueRepository(t)
	db, redisMock := redismock.NewClientMock()

	svc := services.NewEventService(eventsRepo, venues, db, zerolog.Nop())

	ctx := context.Background()
	venueID := uuid.New()

	venues.On("GetByID", ctx, venueID).Return(&domain.Venue{ID: venueID}, nil)
	eventsRepo.On("Create", ctx, mock.MatchedBy(func(e *domain.Event) bool {
		return e.VenueID == venueID && e.Title == "Jazz Night"
	})).Return(nil)
	redisMock.ExpectDel(fmt.Sprintf("events:venue:%s", venueID)).SetVal(1)

	event, err := svc.CreateEvent(ctx, services.CreateEventRequest{
		VenueID:     venueID.String(),
		CreatedByID: uuid.New().String(),
		Title:       "Jazz Night",
		StartsAt:    time.Now().UTC().Add(24 * time.Hour),
		Capacity:    120,
	})

	assert.NoError(t, err)
	assert.NotNil(t, event)

	if err := redisMock.ExpectationsWereMet(); err != nil {
		t.Errorf("there were unfulfilled expectations: %s", err)
	}
}

func TestCreateEvent_MissingVenueIsValidationError(t *testing.T) {
	eventsRepo := mocks.NewEventRepository(t)
	venues := mocks.NewVenueRepository(t)
	db, _ := redismock.NewClientMock()

	svc := services.NewEventService(eventsRepo, venues, db, zerolog.Nop())

	ctx := context.Background()
	venueID := uuid.New()

	venues.On("GetByID", ctx, venueID).Return(nil, domain.ErrNotFound)

	event, err := svc.CreateEvent(ctx, services.CreateEventRequest{
		VenueID:     venueID.String(),
		CreatedByID: uuid.New().String(),
		Title:       "Jazz Night",
	})

	assert.Nil(t, event)
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
	eventsRepo.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
}

func TestListUpcoming_CacheHitSkipsRepository(t *testing.T) {
	eventsRepo := mocks.NewEventRepository(t)
	venues := mocks.NewVenueRepository(t)
	db, redisMock := redismock.NewClientMock()

	svc := services.NewEventService(eventsRepo, venues, db, zerolog.Nop())

	ctx := context.Background()
	venueID := uuid.New()

	cached := []domain.Event{{ID: uuid.New(), VenueID: venueID, Title: "Jazz Night"}}
	data, err := json.Marshal(cached)
	assert.NoError(t, err)

	redisMock.ExpectGet(fmt.Sprintf("events:venue:%s", venueID)).SetVal(string(data))

	out, err := svc.ListUpcoming(ctx, venueID.String())

	assert.NoError(t, err)
	assert.Len(t, out, 1)
	assert.Equal(t, "Jazz Night", out[0].Title)
	eventsRepo.AssertNotCalled(t, "ListUpcomingByVenue", mock.Anything, mock.Anything, mock.Anything)
}

func TestListUpcoming_CacheMissFillsCache(t *testing.T) {
	eventsRepo := mocks.NewEventRepository(t)
	venues := mocks.NewVenueRepository(t)
	db, redisMock := redismock.NewClientMock()

	svc := services.NewEventService(eventsRepo, venues, db, zerolog.Nop())

	ctx := context.Background()
	venueID := uuid.New()
	key := fmt.Sprintf("events:venue:%s", venueID)

	listed := []domain.Event{{ID: uuid.New(), VenueID: venueID, Title: "Open Mic"}}
	data, err := json.Marshal(listed)
	assert.NoError(t, err)

	redisMock.ExpectGet(key).RedisNil()
	eventsRepo.On("ListUpcomingByVenue", ctx, venueID, mock.AnythingOfType("time.Time")).Return(listed, nil)
	redisMock.ExpectSet(key, data, 60*time.Second).SetVal("OK")

	out, err := svc.ListUpcoming(ctx, venueID.String())

	assert.NoError(t, err)
	assert.Len(t, out, 1)

	if err := redisMock.ExpectationsWereMet(); err != nil {
		t.Errorf("there were unfulfilled expectations: %s", err)
	}
}
