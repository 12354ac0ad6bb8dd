package postgres

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/gigstage/gigstage/internal/core/domain"
)

type MessageRepository struct {
	db *sql.DB
}

func NewMessageRepository(db *sql.DB) *MessageRepository {
	return &MessageRepository{db: db}
}

func (r *MessageRepository) Create(ctx context.Context, message *domain.Message) error {
	query := `
	INSERT INTO messages (id, booking_id, sender_id, recipient_id, body, is_read, read_at, created_at)
	VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
	`

	_, err := r.db.ExecContext(ctx, query,
		message.ID, message.BookingID, message.SenderID, message.RecipientID,
		message.Body, message.IsRead, message.ReadAt, message.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to insert message: %w", err)
	}

	return nil
}

func (r *MessageRepository) GetByID(ctx context.Context, messageID uuid.UUID) (*domain.Message, error) {
	query := `
	SELECT id, booking_id, sender_id, recipient_id, body, is_read, read_at, created_at
	FROM messages
	WHERE id = $1
	`

	message, err := scanMessage(r.db.QueryRowContext(ctx, query, messageID))
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, domain.ErrNotFound
		}

		return nil, err
	}

	return message, nil
}

func (r *MessageRepository) MarkRead(ctx context.Context, messageID uuid.UUID, readAt time.Time) error {
	query := `
	UPDATE messages
	SET is_read = TRUE, read_at = $1
	WHERE id = $2
	`

	result, err := r.db.ExecContext(ctx, query, readAt, messageID)
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

func (r *MessageRepository) ListUnreadByBooking(ctx context.Context, bookingID, recipientID uuid.UUID) ([]domain.Message, error) {
	query := `
	SELECT id, booking_id, sender_id, recipient_id, body, is_read, read_at, created_at
	FROM messages
	WHERE booking_id = $1 AND recipient_id = $2 AND is_read = FALSE
	`

	rows, err := r.db.QueryContext(ctx, query, bookingID, recipientID)
	if err != nil {
		return nil, err
	}

	defer rows.Close()

	var messages []domain.Message
	for rows.Next() {
		m, err := scanMessage(rows)
		if err != nil {
			return nil, err
		}

		messages = append(messages, *m)
	}

	return messages, rows.Err()
}

func scanMessage(row rowScanner) (*domain.Message, error) {
	var m domain.Message
	var readAt sql.NullTime

	err := row.Scan(
		&m.ID,
		&m.BookingID,
		&m.SenderID,
		&m.RecipientID,
		&m.Body,
		&m.IsRead,
		&readAt,
		&m.CreatedAt,
	)
	if err != nil {
		return nil, err
	}

	if readAt.Valid {
		m.ReadAt = &readAt.Time
	}

	return &m, nil
}
