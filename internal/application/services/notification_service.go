package services

import (
	"context"

	"github.com/greencycle/greencycle/backend/internal/domain/entities"
	"github.com/greencycle/greencycle/backend/internal/domain/repositories"
)

// NotificationService handles business logic for notifications
type NotificationService struct {
	repo repositories.NotificationRepository
}

// NewNotificationService creates a new notification service
func NewNotificationService(repo repositories.NotificationRepository) *NotificationService {
	return &NotificationService{repo: repo}
}

// ListUnread retrieves a user's unread notifications
func (s *NotificationService) ListUnread(ctx context.Context, userID int64) ([]*entities.Notification, error) {
	return s.repo.ListUnread(ctx, userID)
}

// MarkRead marks a single notification as read. The user id guards
// against marking another user's notification.
func (s *NotificationService) MarkRead(ctx context.Context, notificationID, userID int64) error {
	return s.repo.MarkRead(ctx, notificationID, userID)
}
