package domain

import (
	"time"

	"github.com/google/uuid"
)

// BookingStatus is an open string enum: unknown values are persisted as-is
// and simply carry no tracked timestamp.
type BookingStatus string

const (
	BookingApplied   BookingStatus = "applied"
	BookingInvited   BookingStatus = "invited"
	BookingSelected  BookingStatus = "selected"
	BookingConfirmed BookingStatus = "confirmed"
	BookingRejected  BookingStatus = "rejected"
	BookingCancelled BookingStatus = "cancelled"
	BookingExpired   BookingStatus = "expired"
)

type Booking struct {
	ID          uuid.UUID
	EventID     uuid.UUID
	VenueID     uuid.UUID
	MusicianID  uuid.UUID
	BookedByID  uuid.UUID
	Status      BookingStatus
	AppliedAt   *time.Time
	InvitedAt   *time.Time
	SelectedAt  *time.Time
	ConfirmedAt *time.Time
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

// StampStatus records when the booking first reached its current status.
// Each timestamp is set once: saving the booking again with the same status
// leaves the earlier value in place, and later transitions never clear
// timestamps set before them. Statuses without a tracked timestamp are a
// no-op, never an error.
func (b *Booking) StampStatus(now time.Time) {
	switch b.Status {
	case BookingApplied:
		if b.AppliedAt == nil {
			b.AppliedAt = &now
		}
	case BookingInvited:
		if b.InvitedAt == nil {
			b.InvitedAt = &now
		}
	case BookingSelected:
		if b.SelectedAt == nil {
			b.SelectedAt = &now
		}
	case BookingConfirmed:
		if b.ConfirmedAt == nil {
			b.ConfirmedAt = &now
		}
	}
}

// IsTerminal reports whether no further lifecycle transition is expected.
func (b *Booking) IsTerminal() bool {
	switch b.Status {
	case BookingConfirmed, BookingRejected, BookingCancelled, BookingExpired:
		return true
	}
	return false
}
