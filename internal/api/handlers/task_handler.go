package handlers

import (
	"context"
	"encoding/json"
	"net/http"
	"strconv"

	"github.com/greencycle/greencycle/backend/internal/api/middleware"
	"github.com/greencycle/greencycle/backend/internal/domain/entities"
)

// TaskService handles collection task listing and lifecycle
type TaskService interface {
	List(ctx context.Context, filter entities.TaskFilter) ([]*entities.Report, error)
	Search(ctx context.Context, query string, limit int) ([]*entities.Report, error)
	Claim(ctx context.Context, reportID, collectorID int64) (*entities.Report, error)
	Verify(ctx context.Context, reportID, collectorID int64) (*entities.CollectedWaste, *entities.CollectionVerification, float64, error)
	UpdateStatus(ctx context.Context, reportID int64, status entities.ReportStatus) (*entities.Report, error)
	ListCollected(ctx context.Context, collectorID int64) ([]*entities.CollectedWaste, error)
}

// TaskHandler handles task-related HTTP requests
type TaskHandler struct {
	tasks TaskService
}

// NewTaskHandler creates a new task handler
func NewTaskHandler(tasks TaskService) *TaskHandler {
	return &TaskHandler{tasks: tasks}
}

// ListTasks handles GET /api/tasks
func (h *TaskHandler) ListTasks(w http.ResponseWriter, r *http.Request) {
	query := r.URL.Query()

	filter := entities.TaskFilter{
		Status: entities.ReportStatus(query.Get("status")),
		Limit:  30,
	}
	if v := query.Get("limit"); v != "" {
		if parsed, err := strconv.Atoi(v); err == nil && parsed > 0 {
			filter.Limit = parsed
		}
	}
	if v := query.Get("offset"); v != "" {
		if parsed, err := strconv.Atoi(v); err == nil && parsed >= 0 {
			filter.Offset = parsed
		}
	}

	tasks, err := h.tasks.List(r.Context(), filter)
	if err != nil {
		respondWithAppError(w, err)
		return
	}

	respondWithJSON(w, http.StatusOK, map[string]interface{}{
		"tasks": tasks,
		"count": len(tasks),
	})
}

// SearchTasks handles GET /api/tasks/search
func (h *TaskHandler) SearchTasks(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query().Get("q")
	if q == "" {
		respondWithError(w, http.StatusBadRequest, "query parameter q is required")
		return
	}

	limit := 20
	if v := r.URL.Query().Get("limit"); v != "" {
		if parsed, err := strconv.Atoi(v); err == nil && parsed > 0 {
			limit = parsed
		}
	}

	tasks, err := h.tasks.Search(r.Context(), q, limit)
	if err != nil {
		respondWithAppError(w, err)
		return
	}

	respondWithJSON(w, http.StatusOK, map[string]interface{}{
		"tasks": tasks,
		"count": len(tasks),
	})
}

// ClaimTask handles POST /api/tasks/{id}/claim
func (h *TaskHandler) ClaimTask(w http.ResponseWriter, r *http.Request) {
	collectorID, ok := middleware.UserID(r.Context())
	if !ok {
		respondWithError(w, http.StatusUnauthorized, "authentication required")
		return
	}

	taskID, err := pathID(r)
	if err != nil {
		respondWithError(w, http.StatusBadRequest, "invalid task ID")
		return
	}

	task, err := h.tasks.Claim(r.Context(), taskID, collectorID)
	if err != nil {
		respondWithAppError(w, err)
		return
	}

	respondWithJSON(w, http.StatusOK, task)
}

// VerifyTask handles POST /api/tasks/{id}/verify
func (h *TaskHandler) VerifyTask(w http.ResponseWriter, r *http.Request) {
	collectorID, ok := middleware.UserID(r.Context())
	if !ok {
		respondWithError(w, http.StatusUnauthorized, "authentication required")
		return
	}

	taskID, err := pathID(r)
	if err != nil {
		respondWithError(w, http.StatusBadRequest, "invalid task ID")
		return
	}

	collected, verification, balance, err := h.tasks.Verify(r.Context(), taskID, collectorID)
	if err != nil {
		respondWithAppError(w, err)
		return
	}

	respondWithJSON(w, http.StatusOK, map[string]interface{}{
		"collected":    collected,
		"verification": verification,
		"balance":      balance,
	})
}

type updateStatusRequest struct {
	Status string `json:"status"`
}

// UpdateTaskStatus handles PATCH /api/tasks/{id}/status
func (h *TaskHandler) UpdateTaskStatus(w http.ResponseWriter, r *http.Request) {
	if _, ok := middleware.UserID(r.Context()); !ok {
		respondWithError(w, http.StatusUnauthorized, "authentication required")
		return
	}

	taskID, err := pathID(r)
	if err != nil {
		respondWithError(w, http.StatusBadRequest, "invalid task ID")
		return
	}

	var req updateStatusRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondWithError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	task, err := h.tasks.UpdateStatus(r.Context(), taskID, entities.ReportStatus(req.Status))
	if err != nil {
		respondWithAppError(w, err)
		return
	}

	respondWithJSON(w, http.StatusOK, task)
}

// ListCollected handles GET /api/collected
func (h *TaskHandler) ListCollected(w http.ResponseWriter, r *http.Request) {
	collectorID, ok := middleware.UserID(r.Context())
	if !ok {
		respondWithError(w, http.StatusUnauthorized, "authentication required")
		return
	}

	collected, err := h.tasks.ListCollected(r.Context(), collectorID)
	if err != nil {
		respondWithAppError(w, err)
		return
	}

	respondWithJSON(w, http.StatusOK, map[string]interface{}{
		"collected": collected,
		"count":     len(collected),
	})
}

func pathID(r *http.Request) (int64, error) {
	return strconv.ParseInt(r.PathValue("id"), 10, 64)
}
