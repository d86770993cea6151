package handlers_test

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/greencycle/greencycle/backend/internal/api/handlers"
	"github.com/greencycle/greencycle/backend/internal/api/middleware"
	"github.com/greencycle/greencycle/backend/internal/domain/entities"
	apperrors "github.com/greencycle/greencycle/backend/pkg/errors"
)

type stubReportService struct {
	created  *entities.Report
	balance  float64
	reports  []*entities.Report
	analysis *entities.WasteAnalysis
	err      error
}

func (s *stubReportService) Create(ctx context.Context, report *entities.Report) (*entities.Report, float64, error) {
	if s.err != nil {
		return nil, 0, s.err
	}
	report.ID = 1
	report.Status = entities.ReportStatusPending
	s.created = report
	return report, s.balance, nil
}

func (s *stubReportService) ListByUser(ctx context.Context, userID int64) ([]*entities.Report, error) {
	return s.reports, s.err
}

func (s *stubReportService) ListRecent(ctx context.Context, limit int) ([]*entities.Report, error) {
	return s.reports, s.err
}

func (s *stubReportService) AnalyzeWaste(ctx context.Context, imageRef string) (*entities.WasteAnalysis, error) {
	return s.analysis, s.err
}

func authedRequest(method, target, body string, userID int64) *http.Request {
	var req *http.Request
	if body != "" {
		req = httptest.NewRequest(method, target, strings.NewReader(body))
	} else {
		req = httptest.NewRequest(method, target, nil)
	}
	return req.WithContext(middleware.WithUserID(req.Context(), userID))
}

func TestReportHandler_CreateReport(t *testing.T) {
	t.Run("returns report and balance", func(t *testing.T) {
		service := &stubReportService{balance: 10}
		handler := handlers.NewReportHandler(service)

		body := `{"location":"MG Road, Bangalore","waste_type":"Plastic Bottles","amount":"2 kg"}`
		req := authedRequest("POST", "/api/reports", body, 3)
		w := httptest.NewRecorder()

		handler.CreateReport(w, req)

		assert.Equal(t, http.StatusCreated, w.Code)
		require.NotNil(t, service.created)
		assert.Equal(t, int64(3), service.created.UserID)

		var response struct {
			Report  entities.Report `json:"report"`
			Balance float64         `json:"balance"`
		}
		require.NoError(t, json.NewDecoder(w.Body).Decode(&response))
		assert.Equal(t, "MG Road, Bangalore", response.Report.Location)
		assert.Equal(t, 10.0, response.Balance)
	})

	t.Run("rejects unauthenticated request", func(t *testing.T) {
		handler := handlers.NewReportHandler(&stubReportService{})

		req := httptest.NewRequest("POST", "/api/reports", strings.NewReader(`{}`))
		w := httptest.NewRecorder()

		handler.CreateReport(w, req)

		assert.Equal(t, http.StatusUnauthorized, w.Code)
	})

	t.Run("rejects malformed body", func(t *testing.T) {
		handler := handlers.NewReportHandler(&stubReportService{})

		req := authedRequest("POST", "/api/reports", `{not json`, 3)
		w := httptest.NewRecorder()

		handler.CreateReport(w, req)

		assert.Equal(t, http.StatusBadRequest, w.Code)
	})

	t.Run("maps validation errors to 400", func(t *testing.T) {
		service := &stubReportService{err: apperrors.NewValidationError("location is required")}
		handler := handlers.NewReportHandler(service)

		req := authedRequest("POST", "/api/reports", `{"waste_type":"Plastic","amount":"2 kg"}`, 3)
		w := httptest.NewRecorder()

		handler.CreateReport(w, req)

		assert.Equal(t, http.StatusBadRequest, w.Code)
		var response map[string]string
		require.NoError(t, json.NewDecoder(w.Body).Decode(&response))
		assert.Equal(t, "location is required", response["error"])
	})
}

func TestReportHandler_ListReports(t *testing.T) {
	service := &stubReportService{reports: []*entities.Report{{ID: 1, UserID: 3}, {ID: 2, UserID: 3}}}
	handler := handlers.NewReportHandler(service)

	req := authedRequest("GET", "/api/reports", "", 3)
	w := httptest.NewRecorder()

	handler.ListReports(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	var response struct {
		Reports []entities.Report `json:"reports"`
		Count   int               `json:"count"`
	}
	require.NoError(t, json.NewDecoder(w.Body).Decode(&response))
	assert.Equal(t, 2, response.Count)
	assert.Len(t, response.Reports, 2)
}

func TestReportHandler_VerifyWaste(t *testing.T) {
	service := &stubReportService{analysis: &entities.WasteAnalysis{WasteType: "Glass Containers", Quantity: "2-3 kg", Confidence: 85}}
	handler := handlers.NewReportHandler(service)

	req := httptest.NewRequest("POST", "/api/verify-waste", strings.NewReader(`{"image":"data:image/jpeg;base64,abc"}`))
	w := httptest.NewRecorder()

	handler.VerifyWaste(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	var analysis entities.WasteAnalysis
	require.NoError(t, json.NewDecoder(w.Body).Decode(&analysis))
	assert.Equal(t, "Glass Containers", analysis.WasteType)
	assert.Equal(t, 85, analysis.Confidence)
}
