package handlers

import (
	"context"
	"net/http"

	"github.com/greencycle/greencycle/backend/internal/api/middleware"
	"github.com/greencycle/greencycle/backend/internal/domain/entities"
)

// NotificationService handles user notifications
type NotificationService interface {
	ListUnread(ctx context.Context, userID int64) ([]*entities.Notification, error)
	MarkRead(ctx context.Context, notificationID, userID int64) error
}

// NotificationHandler handles notification-related HTTP requests
type NotificationHandler struct {
	notifications NotificationService
}

// NewNotificationHandler creates a new notification handler
func NewNotificationHandler(notifications NotificationService) *NotificationHandler {
	return &NotificationHandler{notifications: notifications}
}

// ListNotifications handles GET /api/notifications
func (h *NotificationHandler) ListNotifications(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.UserID(r.Context())
	if !ok {
		respondWithError(w, http.StatusUnauthorized, "authentication required")
		return
	}

	notifications, err := h.notifications.ListUnread(r.Context(), userID)
	if err != nil {
		respondWithAppError(w, err)
		return
	}

	respondWithJSON(w, http.StatusOK, map[string]interface{}{
		"notifications": notifications,
		"count":         len(notifications),
	})
}

// MarkNotificationRead handles POST /api/notifications/{id}/read
func (h *NotificationHandler) MarkNotificationRead(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.UserID(r.Context())
	if !ok {
		respondWithError(w, http.StatusUnauthorized, "authentication required")
		return
	}

	notificationID, err := pathID(r)
	if err != nil {
		respondWithError(w, http.StatusBadRequest, "invalid notification ID")
		return
	}

	if err := h.notifications.MarkRead(r.Context(), notificationID, userID); err != nil {
		respondWithAppError(w, err)
		return
	}

	respondWithJSON(w, http.StatusOK, map[string]bool{"success": true})
}
