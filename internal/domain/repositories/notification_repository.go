package repositories

import (
	"context"

	"github.com/greencycle/greencycle/backend/internal/domain/entities"
)

// NotificationRepository defines access to user notifications
type NotificationRepository interface {
	// Create inserts a notification
	Create(ctx context.Context, notification *entities.Notification) error

	// ListUnread retrieves a user's unread notifications, newest first
	ListUnread(ctx context.Context, userID int64) ([]*entities.Notification, error)

	// MarkRead flips the read flag on a single notification owned by the
	// user
	MarkRead(ctx context.Context, notificationID, userID int64) error
}
