package handlers_test

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/greencycle/greencycle/backend/internal/api/handlers"
	"github.com/greencycle/greencycle/backend/internal/domain/entities"
	apperrors "github.com/greencycle/greencycle/backend/pkg/errors"
)

type stubNotificationService struct {
	unread  []*entities.Notification
	readErr error
	marked  []int64
}

func (s *stubNotificationService) ListUnread(ctx context.Context, userID int64) ([]*entities.Notification, error) {
	return s.unread, nil
}

func (s *stubNotificationService) MarkRead(ctx context.Context, notificationID, userID int64) error {
	if s.readErr != nil {
		return s.readErr
	}
	s.marked = append(s.marked, notificationID)
	return nil
}

func TestNotificationHandler_ListNotifications(t *testing.T) {
	service := &stubNotificationService{unread: []*entities.Notification{
		{ID: 1, UserID: 3, Message: "You earned 10 points for reporting waste!", Type: entities.NotificationTypeReward},
	}}
	handler := handlers.NewNotificationHandler(service)

	req := authedRequest("GET", "/api/notifications", "", 3)
	w := httptest.NewRecorder()

	handler.ListNotifications(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	var response struct {
		Notifications []entities.Notification `json:"notifications"`
		Count         int                     `json:"count"`
	}
	require.NoError(t, json.NewDecoder(w.Body).Decode(&response))
	assert.Equal(t, 1, response.Count)
	assert.Equal(t, entities.NotificationTypeReward, response.Notifications[0].Type)
}

func TestNotificationHandler_MarkNotificationRead(t *testing.T) {
	t.Run("marks the notification", func(t *testing.T) {
		service := &stubNotificationService{}
		handler := handlers.NewNotificationHandler(service)

		req := authedRequest("POST", "/api/notifications/5/read", "", 3)
		req.SetPathValue("id", "5")
		w := httptest.NewRecorder()

		handler.MarkNotificationRead(w, req)

		assert.Equal(t, http.StatusOK, w.Code)
		assert.Equal(t, []int64{5}, service.marked)
	})

	t.Run("maps foreign notification to 404", func(t *testing.T) {
		service := &stubNotificationService{readErr: apperrors.NewNotFoundError("notification not found")}
		handler := handlers.NewNotificationHandler(service)

		req := authedRequest("POST", "/api/notifications/5/read", "", 3)
		req.SetPathValue("id", "5")
		w := httptest.NewRecorder()

		handler.MarkNotificationRead(w, req)

		assert.Equal(t, http.StatusNotFound, w.Code)
	})
}
