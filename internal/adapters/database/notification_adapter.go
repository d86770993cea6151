package database

import (
	"context"
	"time"

	"github.com/jmoiron/sqlx"
	"github.com/greencycle/greencycle/backend/internal/domain/entities"
	"github.com/greencycle/greencycle/backend/internal/domain/repositories"
	"github.com/greencycle/greencycle/backend/internal/infrastructure/clients/postgres"
	apperrors "github.com/greencycle/greencycle/backend/pkg/errors"
)

// NotificationAdapter implements the NotificationRepository interface
type NotificationAdapter struct {
	db *sqlx.DB
}

// NewNotificationAdapter creates a new notification adapter
func NewNotificationAdapter(client *postgres.Client) repositories.NotificationRepository {
	return &NotificationAdapter{
		db: sqlx.NewDb(client.DB(), "postgres"),
	}
}

// Create inserts a notification
func (a *NotificationAdapter) Create(ctx context.Context, notification *entities.Notification) error {
	notification.CreatedAt = time.Now()
	notification.IsRead = false

	query := `INSERT INTO notifications (user_id, message, type, is_read, created_at)
		VALUES (:user_id, :message, :type, :is_read, :created_at) RETURNING id`

	rows, err := a.db.NamedQueryContext(ctx, query, notification)
	if err != nil {
		return apperrors.NewInternalError("failed to create notification", err)
	}
	defer rows.Close()

	if rows.Next() {
		if err := rows.Scan(&notification.ID); err != nil {
			return apperrors.NewInternalError("failed to scan notification id", err)
		}
	}

	return rows.Err()
}

// ListUnread retrieves a user's unread notifications, newest first
func (a *NotificationAdapter) ListUnread(ctx context.Context, userID int64) ([]*entities.Notification, error) {
	query := `SELECT id, user_id, message, type, is_read, created_at
		FROM notifications
		WHERE user_id = $1 AND is_read = false
		ORDER BY created_at DESC`

	var notifications []*entities.Notification
	if err := a.db.SelectContext(ctx, &notifications, query, userID); err != nil {
		return nil, apperrors.NewInternalError("failed to list notifications", err)
	}

	return notifications, nil
}

// MarkRead flips the read flag on a single notification owned by the user
func (a *NotificationAdapter) MarkRead(ctx context.Context, notificationID, userID int64) error {
	query := `UPDATE notifications SET is_read = true WHERE id = $1 AND user_id = $2`

	result, err := a.db.ExecContext(ctx, query, notificationID, userID)
	if err != nil {
		return apperrors.NewInternalError("failed to mark notification read", err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return apperrors.NewInternalError("failed to get rows affected", err)
	}
	if rowsAffected == 0 {
		return apperrors.NewNotFoundError("notification not found")
	}

	return nil
}
