package postgres

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/gigstage/gigstage/internal/core/domain"
)

type BookingRepository struct {
	db *sql.DB
}

func NewBookingRepository(db *sql.DB) *BookingRepository {
	return &BookingRepository{db: db}
}

func (r *BookingRepository) Create(ctx context.Context, booking *domain.Booking) error {
	query := `
	INSERT INTO bookings (id, event_id, venue_id, musician_id, booked_by_id, status,
		applied_at, invited_at, selected_at, confirmed_at, created_at, updated_at)
	VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12)
	`

	_, err := r.db.ExecContext(ctx, query,
		booking.ID, booking.EventID, booking.VenueID, booking.MusicianID,
		booking.BookedByID, booking.Status,
		booking.AppliedAt, booking.InvitedAt, booking.SelectedAt, booking.ConfirmedAt,
		booking.CreatedAt, booking.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to insert booking: %w", err)
	}

	return nil
}

func (r *BookingRepository) GetByID(ctx context.Context, bookingID uuid.UUID) (*domain.Booking, error) {
	query := `
	SELECT id, event_id, venue_id, musician_id, booked_by_id, status,
		applied_at, invited_at, selected_at, confirmed_at, created_at, updated_at
	FROM bookings
	WHERE id = $1
	`

	booking, err := scanBooking(r.db.QueryRowContext(ctx, query, bookingID))
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, domain.ErrNotFound
		}

		return nil, err
	}

	return booking, nil
}

func (r *BookingRepository) Update(ctx context.Context, booking *domain.Booking) error {
	query := `
	UPDATE bookings
	SET status = $1,
		applied_at = $2,
		invited_at = $3,
		selected_at = $4,
		confirmed_at = $5,
		updated_at = $6
	WHERE id = $7
	`

	result, err := r.db.ExecContext(ctx, query,
		booking.Status,
		booking.AppliedAt, booking.InvitedAt, booking.SelectedAt, booking.ConfirmedAt,
		booking.UpdatedAt,
		booking.ID,
	)
	if err != nil {
		return err
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return err
	}

	if rowsAffected == 0 {
		return domain.ErrNotFound
	}

	return nil
}

func (r *BookingRepository) ListByEvent(ctx context.Context, eventID uuid.UUID) ([]domain.Booking, error) {
	query := `
	SELECT id, event_id, venue_id, musician_id, booked_by_id, status,
		applied_at, invited_at, selected_at, confirmed_at, created_at, updated_at
	FROM bookings
	WHERE event_id = $1
	ORDER BY created_at ASC
	`

	rows, err := r.db.QueryContext(ctx, query, eventID)
	if err != nil {
		return nil, err
	}

	defer rows.Close()

	var bookings []domain.Booking
	for rows.Next() {
		booking, err := scanBooking(rows)
		if err != nil {
			return nil, err
		}

		bookings = append(bookings, *booking)
	}

	return bookings, rows.Err()
}

func (r *BookingRepository) ListStaleInvites(ctx context.Context, invitedBefore time.Time) ([]uuid.UUID, error) {
	query := `
	SELECT id FROM bookings
	WHERE status = 'invited' AND invited_at < $1
	LIMIT 100
	`

	rows, err := r.db.QueryContext(ctx, query, invitedBefore)
	if err != nil {
		return nil, err
	}

	defer rows.Close()

	var ids []uuid.UUID
	for rows.Next() {
		var id uuid.UUID
		if err := rows.Scan(&id); err != nil {
			return nil, err
		}

		ids = append(ids, id)
	}

	return ids, rows.Err()
}

// Expire only moves bookings still in "invited"; an invitation answered
// between the sweep's read and this write is left alone.
func (r *BookingRepository) Expire(ctx context.Context, bookingID uuid.UUID) error {
	query := `
	UPDATE bookings
	SET status = 'expired', updated_at = NOW()
	WHERE id = $1 AND status = 'invited'
	`

	_, err := r.db.ExecContext(ctx, query, bookingID)

	return err
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanBooking(row rowScanner) (*domain.Booking, error) {
	var b domain.Booking
	var appliedAt, invitedAt, selectedAt, confirmedAt sql.NullTime

	err := row.Scan(
		&b.ID,
		&b.EventID,
		&b.VenueID,
		&b.MusicianID,
		&b.BookedByID,
		&b.Status,
		&appliedAt,
		&invitedAt,
		&selectedAt,
		&confirmedAt,
		&b.CreatedAt,
		&b.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}

	if appliedAt.Valid {
		b.AppliedAt = &appliedAt.Time
	}
	if invitedAt.Valid {
		b.InvitedAt = &invitedAt.Time
	}
	if selectedAt.Valid {
		b.SelectedAt = &selectedAt.Time
	}
	if confirmedAt.Valid {
		b.ConfirmedAt = &confirmedAt.Time
	}

	return &b, nil
}
