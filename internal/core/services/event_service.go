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
)

const eventCacheTTL = 60 * time.Second

func eventCacheKey(venueID uuid.UUID) string {
	return fmt.Sprintf("events:venue:%s", venueID)
}

type CreateEventRequest struct {
	VenueID     string    `json:"venue_id"`
	CreatedByID string    `json:"created_by_id"`
	Title       string    `json:"title"`
	StartsAt    time.Time `json:"starts_at"`
	Capacity    int       `json:"capacity"`
}

type EventService struct {
	eventsRepo ports.EventRepository
	venues     ports.VenueRepository
	cache      *redis.Client
	log        zerolog.Logger
}

func NewEventService(eventsRepo ports.EventRepository, venues ports.VenueRepository, cache *redis.Client, log zerolog.Logger) *EventService {
	return &EventService{eventsRepo: eventsRepo, venues: venues, cache: cache, log: log}
}

func (s *EventService) CreateEvent(ctx context.Context, req CreateEventRequest) (*domain.Event, error) {
	venueID, err := uuid.Parse(req.VenueID)
	if err != nil {
		return nil, fmt.Errorf("%w: invalid venue id", domain.ErrInvalidInput)
	}

	createdByID, err := uuid.Parse(req.CreatedByID)
	if err != nil {
		return nil, fmt.Errorf("%w: invalid creator id", domain.ErrInvalidInput)
	}

	if req.Title == "" {
		return nil, fmt.Errorf("%w: title is required", domain.ErrInvalidInput)
	}

	if _, err := s.venues.GetByID(ctx, venueID); err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, fmt.Errorf("%w: venue does not exist", domain.ErrInvalidInput)
		}
		return nil, err
	}

	event := &domain.Event{
		ID:          uuid.New(),
		VenueID:     venueID,
		CreatedByID: createdByID,
		Title:       req.Title,
		StartsAt:    req.StartsAt,
		Capacity:    req.Capacity,
		CreatedAt:   time.Now().UTC(),
	}

	if err := s.eventsRepo.Create(ctx, event); err != nil {
		return nil, fmt.Errorf("create event: %w", err)
	}

	key := eventCacheKey(venueID)
	if err := s.cache.Del(ctx, key).Err(); err != nil {
		s.log.Error().Err(err).Str("key", key).Msg("event cache invalidation failed")
	}

	return event, nil
}

// ListUpcoming returns a venue's upcoming events, served from the redis
// cache when warm.
func (s *EventService) ListUpcoming(ctx context.Context, venueID string) ([]domain.Event, error) {
	id, err := uuid.Parse(venueID)
	if err != nil {
		return nil, fmt.Errorf("%w: invalid venue id", domain.ErrInvalidInput)
	}

	key := eventCacheKey(id)
	if data, err := s.cache.Get(ctx, key).Bytes(); err == nil {
		var cached []domain.Event
		if err := json.Unmarshal(data, &cached); err == nil {
			return cached, nil
		}
	} else if !errors.Is(err, redis.Nil) {
		s.log.Error().Err(err).Str("key", key).Msg("event cache read failed")
	}

	listed, err := s.eventsRepo.ListUpcomingByVenue(ctx, id, time.Now().UTC())
	if err != nil {
		return nil, err
	}

	if data, err := json.Marshal(listed); err == nil {
		if err := s.cache.Set(ctx, key, data, eventCacheTTL).Err(); err != nil {
			s.log.Error().Err(err).Str("key", key).Msg("event cache write failed")
		}
	}

	return listed, nil
}
