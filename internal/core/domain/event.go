package domain

import (
	"time"

	"github.com/google/uuid"
)

type Event struct {
	ID          uuid.UUID
	VenueID     uuid.UUID
	CreatedByID uuid.UUID
	Title       string
	StartsAt    time.Time
	Capacity    int
	CreatedAt   time.Time
}
