package domain

import (
	"time"

	"github.com/google/uuid"
)

// Musician is the performer profile owned by a user. At most one row per
// user is intended; creation goes through a find-first guard, the schema
// itself does not enforce uniqueness.
type Musician struct {
	ID        uuid.UUID
	UserID    uuid.UUID
	Name      string
	Genres    string
	City      string
	IsActive  bool
	CreatedAt time.Time
}

// Venue is the host profile owned by a user.
type Venue struct {
	ID        uuid.UUID
	OwnerID   uuid.UUID
	Name      string
	City      string
	Capacity  int
	IsActive  bool
	CreatedAt time.Time
}
