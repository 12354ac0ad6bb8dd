package postgres

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/gigstage/gigstage/internal/core/domain"
)

type EventRepository struct {
	db *sql.DB
}

func NewEventRepository(db *sql.DB) *EventRepository {
	return &EventRepository{db: db}
}

func (r *EventRepository) Create(ctx context.Context, event *domain.Event) error {
	query := `
	INSERT INTO events (id, venue_id, created_by_id, title, starts_at, capacity, created_at)
	VALUES ($1, $2, $3, $4, $5, $6, $7)
	`

	_, err := r.db.ExecContext(ctx, query,
		event.ID, event.VenueID, event.CreatedByID, event.Title,
		event.StartsAt, event.Capacity, event.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to insert event: %w", err)
	}

	return nil
}

func (r *EventRepository) GetByID(ctx context.Context, eventID uuid.UUID) (*domain.Event, error) {
	query := `
	SELECT id, venue_id, created_by_id, title, starts_at, capacity, created_at
	FROM events
	WHERE id = $1
	`

	var e domain.Event
	err := r.db.QueryRowContext(ctx, query, eventID).Scan(
		&e.ID,
		&e.VenueID,
		&e.CreatedByID,
		&e.Title,
		&e.StartsAt,
		&e.Capacity,
		&e.CreatedAt,
	)

	if err != nil {
		if err == sql.ErrNoRows {
			return nil, domain.ErrNotFound
		}

		return nil, err
	}

	return &e, nil
}

func (r *EventRepository) ListUpcomingByVenue(ctx context.Context, venueID uuid.UUID, after time.Time) ([]domain.Event, error) {
	query := `
	SELECT id, venue_id, created_by_id, title, starts_at, capacity, created_at
	FROM events
	WHERE venue_id = $1 AND starts_at >= $2
	ORDER BY starts_at ASC
	`

	rows, err := r.db.QueryContext(ctx, query, venueID, after)
	if err != nil {
		return nil, err
	}

	defer rows.Close()

	var eventList []domain.Event
	for rows.Next() {
		var e domain.Event
		if err := rows.Scan(
			&e.ID,
			&e.VenueID,
			&e.CreatedByID,
			&e.Title,
			&e.StartsAt,
			&e.Capacity,
			&e.CreatedAt,
		); err != nil {
			return nil, err
		}

		eventList = append(eventList, e)
	}

	return eventList, rows.Err()
}
