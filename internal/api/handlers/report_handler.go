package handlers

import (
	"context"
	"encoding/json"
	"net/http"
	"strconv"

	"github.com/greencycle/greencycle/backend/internal/api/middleware"
	"github.com/greencycle/greencycle/backend/internal/domain/entities"
)

// ReportService handles waste report submission and listing
type ReportService interface {
	Create(ctx context.Context, report *entities.Report) (*entities.Report, float64, error)
	ListByUser(ctx context.Context, userID int64) ([]*entities.Report, error)
	ListRecent(ctx context.Context, limit int) ([]*entities.Report, error)
	AnalyzeWaste(ctx context.Context, imageRef string) (*entities.WasteAnalysis, error)
}

// ReportHandler handles report-related HTTP requests
type ReportHandler struct {
	reports ReportService
}

// NewReportHandler creates a new report handler
func NewReportHandler(reports ReportService) *ReportHandler {
	return &ReportHandler{reports: reports}
}

type createReportRequest struct {
	Location  string `json:"location"`
	WasteType string `json:"waste_type"`
	Amount    string `json:"amount"`
	ImageURL  string `json:"image_url"`
}

// CreateReport handles POST /api/reports
func (h *ReportHandler) CreateReport(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.UserID(r.Context())
	if !ok {
		respondWithError(w, http.StatusUnauthorized, "authentication required")
		return
	}

	var req createReportRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondWithError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	report := &entities.Report{
		UserID:    userID,
		Location:  req.Location,
		WasteType: req.WasteType,
		Amount:    req.Amount,
		ImageURL:  req.ImageURL,
	}

	created, balance, err := h.reports.Create(r.Context(), report)
	if err != nil {
		respondWithAppError(w, err)
		return
	}

	respondWithJSON(w, http.StatusCreated, map[string]interface{}{
		"report":  created,
		"balance": balance,
	})
}

// ListReports handles GET /api/reports
func (h *ReportHandler) ListReports(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.UserID(r.Context())
	if !ok {
		respondWithError(w, http.StatusUnauthorized, "authentication required")
		return
	}

	reports, err := h.reports.ListByUser(r.Context(), userID)
	if err != nil {
		respondWithAppError(w, err)
		return
	}

	respondWithJSON(w, http.StatusOK, map[string]interface{}{
		"reports": reports,
		"count":   len(reports),
	})
}

// ListRecentReports handles GET /api/reports/recent
func (h *ReportHandler) ListRecentReports(w http.ResponseWriter, r *http.Request) {
	limit := 30
	if v := r.URL.Query().Get("limit"); v != "" {
		if parsed, err := strconv.Atoi(v); err == nil && parsed > 0 {
			limit = parsed
		}
	}

	reports, err := h.reports.ListRecent(r.Context(), limit)
	if err != nil {
		respondWithAppError(w, err)
		return
	}

	respondWithJSON(w, http.StatusOK, map[string]interface{}{
		"reports": reports,
		"count":   len(reports),
	})
}

type verifyWasteRequest struct {
	Image string `json:"image"`
}

// VerifyWaste handles POST /api/verify-waste
func (h *ReportHandler) VerifyWaste(w http.ResponseWriter, r *http.Request) {
	var req verifyWasteRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondWithError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	analysis, err := h.reports.AnalyzeWaste(r.Context(), req.Image)
	if err != nil {
		respondWithAppError(w, err)
		return
	}

	respondWithJSON(w, http.StatusOK, analysis)
}
