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

type stubTaskService struct {
	tasks      []*entities.Report
	claimed    *entities.Report
	collected  []*entities.CollectedWaste
	lastFilter entities.TaskFilter
	err        error
}

func (s *stubTaskService) List(ctx context.Context, filter entities.TaskFilter) ([]*entities.Report, error) {
	s.lastFilter = filter
	return s.tasks, s.err
}

func (s *stubTaskService) Search(ctx context.Context, query string, limit int) ([]*entities.Report, error) {
	return s.tasks, s.err
}

func (s *stubTaskService) Claim(ctx context.Context, reportID, collectorID int64) (*entities.Report, error) {
	if s.err != nil {
		return nil, s.err
	}
	return s.claimed, nil
}

func (s *stubTaskService) Verify(ctx context.Context, reportID, collectorID int64) (*entities.CollectedWaste, *entities.CollectionVerification, float64, error) {
	if s.err != nil {
		return nil, nil, 0, s.err
	}
	return &entities.CollectedWaste{ID: 1, ReportID: reportID, CollectorID: collectorID},
		&entities.CollectionVerification{WasteTypeMatch: true, QuantityMatch: true, Confidence: 90},
		12.5, nil
}

func (s *stubTaskService) UpdateStatus(ctx context.Context, reportID int64, status entities.ReportStatus) (*entities.Report, error) {
	if s.err != nil {
		return nil, s.err
	}
	return &entities.Report{ID: reportID, Status: status}, nil
}

func (s *stubTaskService) ListCollected(ctx context.Context, collectorID int64) ([]*entities.CollectedWaste, error) {
	return s.collected, s.err
}

func taskRequest(method, target, body string, userID int64, taskID string) *http.Request {
	req := authedRequest(method, target, body, userID)
	if taskID != "" {
		req.SetPathValue("id", taskID)
	}
	return req
}

func TestTaskHandler_ListTasks(t *testing.T) {
	service := &stubTaskService{tasks: []*entities.Report{{ID: 1}, {ID: 2}}}
	handler := handlers.NewTaskHandler(service)

	req := httptest.NewRequest("GET", "/api/tasks?status=pending&limit=5&offset=10", nil)
	w := httptest.NewRecorder()

	handler.ListTasks(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, entities.ReportStatusPending, service.lastFilter.Status)
	assert.Equal(t, 5, service.lastFilter.Limit)
	assert.Equal(t, 10, service.lastFilter.Offset)
}

func TestTaskHandler_SearchTasks_RequiresQuery(t *testing.T) {
	handler := handlers.NewTaskHandler(&stubTaskService{})

	req := httptest.NewRequest("GET", "/api/tasks/search", nil)
	w := httptest.NewRecorder()

	handler.SearchTasks(w, req)

	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestTaskHandler_ClaimTask(t *testing.T) {
	t.Run("returns the claimed task", func(t *testing.T) {
		collectorID := int64(9)
		service := &stubTaskService{claimed: &entities.Report{ID: 5, Status: entities.ReportStatusInProgress, CollectorID: &collectorID}}
		handler := handlers.NewTaskHandler(service)

		req := taskRequest("POST", "/api/tasks/5/claim", "", 9, "5")
		w := httptest.NewRecorder()

		handler.ClaimTask(w, req)

		assert.Equal(t, http.StatusOK, w.Code)
		var task entities.Report
		require.NoError(t, json.NewDecoder(w.Body).Decode(&task))
		assert.Equal(t, entities.ReportStatusInProgress, task.Status)
	})

	t.Run("maps lost race to 409", func(t *testing.T) {
		service := &stubTaskService{err: apperrors.NewConflictError("task already claimed")}
		handler := handlers.NewTaskHandler(service)

		req := taskRequest("POST", "/api/tasks/5/claim", "", 9, "5")
		w := httptest.NewRecorder()

		handler.ClaimTask(w, req)

		assert.Equal(t, http.StatusConflict, w.Code)
	})

	t.Run("rejects malformed id", func(t *testing.T) {
		handler := handlers.NewTaskHandler(&stubTaskService{})

		req := taskRequest("POST", "/api/tasks/abc/claim", "", 9, "abc")
		w := httptest.NewRecorder()

		handler.ClaimTask(w, req)

		assert.Equal(t, http.StatusBadRequest, w.Code)
	})

	t.Run("rejects unauthenticated request", func(t *testing.T) {
		handler := handlers.NewTaskHandler(&stubTaskService{})

		req := httptest.NewRequest("POST", "/api/tasks/5/claim", nil)
		req.SetPathValue("id", "5")
		w := httptest.NewRecorder()

		handler.ClaimTask(w, req)

		assert.Equal(t, http.StatusUnauthorized, w.Code)
	})
}

func TestTaskHandler_VerifyTask(t *testing.T) {
	handler := handlers.NewTaskHandler(&stubTaskService{})

	req := taskRequest("POST", "/api/tasks/5/verify", "", 9, "5")
	w := httptest.NewRecorder()

	handler.VerifyTask(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	var response struct {
		Collected    entities.CollectedWaste        `json:"collected"`
		Verification entities.CollectionVerification `json:"verification"`
		Balance      float64                         `json:"balance"`
	}
	require.NoError(t, json.NewDecoder(w.Body).Decode(&response))
	assert.Equal(t, int64(5), response.Collected.ReportID)
	assert.Equal(t, 90, response.Verification.Confidence)
	assert.Equal(t, 12.5, response.Balance)
}

func TestTaskHandler_UpdateTaskStatus(t *testing.T) {
	t.Run("applies the status", func(t *testing.T) {
		handler := handlers.NewTaskHandler(&stubTaskService{})

		req := taskRequest("PATCH", "/api/tasks/5/status", `{"status":"completed"}`, 9, "5")
		w := httptest.NewRecorder()

		handler.UpdateTaskStatus(w, req)

		assert.Equal(t, http.StatusOK, w.Code)
		var task entities.Report
		require.NoError(t, json.NewDecoder(w.Body).Decode(&task))
		assert.Equal(t, entities.ReportStatusCompleted, task.Status)
	})

	t.Run("maps illegal transition to 409", func(t *testing.T) {
		service := &stubTaskService{err: apperrors.NewConflictError("cannot move task from pending to verified")}
		handler := handlers.NewTaskHandler(service)

		req := taskRequest("PATCH", "/api/tasks/5/status", `{"status":"verified"}`, 9, "5")
		w := httptest.NewRecorder()

		handler.UpdateTaskStatus(w, req)

		assert.Equal(t, http.StatusConflict, w.Code)
	})
}

func TestTaskHandler_ListCollected(t *testing.T) {
	service := &stubTaskService{collected: []*entities.CollectedWaste{{ID: 1, CollectorID: 9}}}
	handler := handlers.NewTaskHandler(service)

	req := authedRequest("GET", "/api/collected", "", 9)
	w := httptest.NewRecorder()

	handler.ListCollected(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	var response struct {
		Collected []entities.CollectedWaste `json:"collected"`
		Count     int                       `json:"count"`
	}
	require.NoError(t, json.NewDecoder(w.Body).Decode(&response))
	assert.Equal(t, 1, response.Count)
}
