package database

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/doug-martin/goqu/v9"
	_ "github.com/doug-martin/goqu/v9/dialect/postgres"
	"github.com/greencycle/greencycle/backend/internal/domain/entities"
	"github.com/greencycle/greencycle/backend/internal/domain/repositories"
	"github.com/greencycle/greencycle/backend/internal/infrastructure/clients/postgres"
	apperrors "github.com/greencycle/greencycle/backend/pkg/errors"
)

var reportColumns = []interface{}{
	"id", "user_id", "location", "waste_type", "amount",
	"image_url", "verification_result", "status", "collector_id", "created_at",
}

// ReportAdapter implements the ReportRepository interface
type ReportAdapter struct {
	client *postgres.Client
	db     *goqu.Database
}

// NewReportAdapter creates a new report adapter
func NewReportAdapter(client *postgres.Client) repositories.ReportRepository {
	return &ReportAdapter{
		client: client,
		db:     goqu.New("postgres", client.DB()),
	}
}

func scanReport(scan func(dest ...interface{}) error) (*entities.Report, error) {
	report := &entities.Report{}
	var imageURL, verificationResult sql.NullString
	var collectorID sql.NullInt64

	err := scan(
		&report.ID,
		&report.UserID,
		&report.Location,
		&report.WasteType,
		&report.Amount,
		&imageURL,
		&verificationResult,
		&report.Status,
		&collectorID,
		&report.CreatedAt,
	)
	if err != nil {
		return nil, err
	}

	report.ImageURL = imageURL.String
	report.VerificationResult = verificationResult.String
	if collectorID.Valid {
		report.CollectorID = &collectorID.Int64
	}

	return report, nil
}

// GetByID retrieves a report by ID
func (a *ReportAdapter) GetByID(ctx context.Context, id int64) (*entities.Report, error) {
	query, args, err := a.db.Select(reportColumns...).
		From("reports").
		Where(goqu.Ex{"id": id}).
		ToSQL()
	if err != nil {
		return nil, apperrors.NewInternalError("failed to build report query", err)
	}

	row := a.client.DB().QueryRowContext(ctx, query, args...)
	report, err := scanReport(row.Scan)
	if err == sql.ErrNoRows {
		return nil, apperrors.NewNotFoundError(fmt.Sprintf("report with id %d not found", id))
	}
	if err != nil {
		return nil, apperrors.NewInternalError("failed to get report", err)
	}

	return report, nil
}

// ListByUser retrieves all reports submitted by a user
func (a *ReportAdapter) ListByUser(ctx context.Context, userID int64) ([]*entities.Report, error) {
	ds := a.db.Select(reportColumns...).
		From("reports").
		Where(goqu.Ex{"user_id": userID}).
		Order(goqu.I("created_at").Desc())

	return a.list(ctx, ds)
}

// ListRecent retrieves the most recent reports, newest first
func (a *ReportAdapter) ListRecent(ctx context.Context, limit int) ([]*entities.Report, error) {
	if limit <= 0 {
		limit = 30
	}

	ds := a.db.Select(reportColumns...).
		From("reports").
		Order(goqu.I("created_at").Desc()).
		Limit(uint(limit))

	return a.list(ctx, ds)
}

// ListTasks retrieves reports as collection tasks, optionally filtered by
// status
func (a *ReportAdapter) ListTasks(ctx context.Context, filter entities.TaskFilter) ([]*entities.Report, error) {
	ds := a.db.Select(reportColumns...).
		From("reports").
		Order(goqu.I("created_at").Desc())

	if filter.Status != "" {
		ds = ds.Where(goqu.Ex{"status": filter.Status})
	}

	if filter.Limit > 0 {
		ds = ds.Limit(uint(filter.Limit))
	}

	if filter.Offset > 0 {
		ds = ds.Offset(uint(filter.Offset))
	}

	return a.list(ctx, ds)
}

func (a *ReportAdapter) list(ctx context.Context, ds *goqu.SelectDataset) ([]*entities.Report, error) {
	query, args, err := ds.ToSQL()
	if err != nil {
		return nil, apperrors.NewInternalError("failed to build report list query", err)
	}

	rows, err := a.client.DB().QueryContext(ctx, query, args...)
	if err != nil {
		return nil, apperrors.NewInternalError("failed to list reports", err)
	}
	defer rows.Close()

	var reports []*entities.Report
	for rows.Next() {
		report, err := scanReport(rows.Scan)
		if err != nil {
			return nil, apperrors.NewInternalError("failed to scan report", err)
		}
		reports = append(reports, report)
	}

	return reports, rows.Err()
}

// Claim atomically moves a pending, unclaimed report to in_progress under
// the given collector. The WHERE clause is the mutual exclusion: of two
// concurrent claimants exactly one matches the pending row.
func (a *ReportAdapter) Claim(ctx context.Context, reportID, collectorID int64) (bool, error) {
	query, args, err := a.db.Update("reports").
		Set(goqu.Record{
			"status":       entities.ReportStatusInProgress,
			"collector_id": collectorID,
		}).
		Where(goqu.Ex{
			"id":           reportID,
			"status":       entities.ReportStatusPending,
			"collector_id": nil,
		}).
		ToSQL()
	if err != nil {
		return false, apperrors.NewInternalError("failed to build claim query", err)
	}

	result, err := a.client.DB().ExecContext(ctx, query, args...)
	if err != nil {
		return false, apperrors.NewInternalError("failed to claim report", err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return false, apperrors.NewInternalError("failed to get rows affected", err)
	}

	return rowsAffected == 1, nil
}

// Release undoes a claim, returning an in_progress report to pending
func (a *ReportAdapter) Release(ctx context.Context, reportID, collectorID int64) (bool, error) {
	query, args, err := a.db.Update("reports").
		Set(goqu.Record{
			"status":       entities.ReportStatusPending,
			"collector_id": nil,
		}).
		Where(goqu.Ex{
			"id":           reportID,
			"status":       entities.ReportStatusInProgress,
			"collector_id": collectorID,
		}).
		ToSQL()
	if err != nil {
		return false, apperrors.NewInternalError("failed to build release query", err)
	}

	result, err := a.client.DB().ExecContext(ctx, query, args...)
	if err != nil {
		return false, apperrors.NewInternalError("failed to release report", err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return false, apperrors.NewInternalError("failed to get rows affected", err)
	}

	return rowsAffected == 1, nil
}

// UpdateStatus overwrites a report's status
func (a *ReportAdapter) UpdateStatus(ctx context.Context, reportID int64, status entities.ReportStatus) (*entities.Report, error) {
	query, args, err := a.db.Update("reports").
		Set(goqu.Record{"status": status}).
		Where(goqu.Ex{"id": reportID}).
		ToSQL()
	if err != nil {
		return nil, apperrors.NewInternalError("failed to build status update query", err)
	}

	result, err := a.client.DB().ExecContext(ctx, query, args...)
	if err != nil {
		return nil, apperrors.NewInternalError("failed to update report status", err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return nil, apperrors.NewInternalError("failed to get rows affected", err)
	}
	if rowsAffected == 0 {
		return nil, apperrors.NewNotFoundError(fmt.Sprintf("report with id %d not found", reportID))
	}

	return a.GetByID(ctx, reportID)
}
