package postgres

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/gigstage/gigstage/internal/core/domain"
)

type NotificationRepository struct {
	db *sql.DB
}

func NewNotificationRepository(db *sql.DB) *NotificationRepository {
	return &NotificationRepository{db: db}
}

func (r *NotificationRepository) Create(ctx context.Context, notification *domain.Notification) error {
	query := `
	INSERT INTO notifications (id, user_id, booking_id, type, title, body, is_read, read_at, created_at)
	VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
	`

	_, err := r.db.ExecContext(ctx, query,
		notification.ID, notification.UserID, notification.BookingID,
		notification.Type, notification.Title, notification.Body,
		notification.IsRead, notification.ReadAt, notification.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to insert notification: %w", err)
	}

	return nil
}

func (r *NotificationRepository) GetByID(ctx context.Context, notificationID uuid.UUID) (*domain.Notification, error) {
	query := `
	SELECT id, user_id, booking_id, type, title, body, is_read, read_at, created_at
	FROM notifications
	WHERE id = $1
	`

	notification, err := scanNotification(r.db.QueryRowContext(ctx, query, notificationID))
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, domain.ErrNotFound
		}

		return nil, err
	}

	return notification, nil
}

func (r *NotificationRepository) MarkRead(ctx context.Context, notificationID uuid.UUID, readAt time.Time) error {
	query := `
	UPDATE notifications
	SET is_read = TRUE, read_at = $1
	WHERE id = $2
	`

	result, err := r.db.ExecContext(ctx, query, readAt, notificationID)
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

func (r *NotificationRepository) ListUnreadByBooking(ctx context.Context, bookingID, userID uuid.UUID, notifType domain.NotificationType) ([]domain.Notification, error) {
	query := `
	SELECT id, user_id, booking_id, type, title, body, is_read, read_at, created_at
	FROM notifications
	WHERE booking_id = $1 AND user_id = $2 AND type = $3 AND is_read = FALSE
	`

	rows, err := r.db.QueryContext(ctx, query, bookingID, userID, notifType)
	if err != nil {
		return nil, err
	}

	defer rows.Close()

	return collectNotifications(rows)
}

func (r *NotificationRepository) ListByUser(ctx context.Context, userID uuid.UUID) ([]domain.Notification, error) {
	query := `
	SELECT id, user_id, booking_id, type, title, body, is_read, read_at, created_at
	FROM notifications
	WHERE user_id = $1
	ORDER BY created_at DESC
	`

	rows, err := r.db.QueryContext(ctx, query, userID)
	if err != nil {
		return nil, err
	}

	defer rows.Close()

	return collectNotifications(rows)
}

func collectNotifications(rows *sql.Rows) ([]domain.Notification, error) {
	var notifications []domain.Notification
	for rows.Next() {
		n, err := scanNotification(rows)
		if err != nil {
			return nil, err
		}

		notifications = append(notifications, *n)
	}

	return notifications, rows.Err()
}

func scanNotification(row rowScanner) (*domain.Notification, error) {
	var n domain.Notification
	var bookingID sql.NullString
	var readAt sql.NullTime

	err := row.Scan(
		&n.ID,
		&n.UserID,
		&bookingID,
		&n.Type,
		&n.Title,
		&n.Body,
		&n.IsRead,
		&readAt,
		&n.CreatedAt,
	)
	if err != nil {
		return nil, err
	}

	if bookingID.Valid && bookingID.String != "" {
		id, err := uuid.Parse(bookingID.String)
		if err != nil {
			return nil, fmt.Errorf("invalid booking id on notification %s: %w", n.ID, err)
		}
		n.BookingID = &id
	}

	if readAt.Valid {
		n.ReadAt = &readAt.Time
	}

	return &n, nil
}
