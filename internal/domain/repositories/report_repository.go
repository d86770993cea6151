package repositories

import (
	"context"

	"github.com/greencycle/greencycle/backend/internal/domain/entities"
)

// ReportRepository defines the interface for report data access.
// Reports and collection tasks are the same rows; ListTasks is the one
// canonical task query.
type ReportRepository interface {
	// GetByID retrieves a report by ID
	GetByID(ctx context.Context, id int64) (*entities.Report, error)

	// ListByUser retrieves all reports submitted by a user
	ListByUser(ctx context.Context, userID int64) ([]*entities.Report, error)

	// ListRecent retrieves the most recent reports, newest first
	ListRecent(ctx context.Context, limit int) ([]*entities.Report, error)

	// ListTasks retrieves reports as collection tasks, optionally filtered
	// by status
	ListTasks(ctx context.Context, filter entities.TaskFilter) ([]*entities.Report, error)

	// Claim atomically moves a pending, unclaimed report to in_progress
	// under the given collector. Returns false when another collector won.
	Claim(ctx context.Context, reportID, collectorID int64) (bool, error)

	// Release undoes a claim, returning an in_progress report to pending
	Release(ctx context.Context, reportID, collectorID int64) (bool, error)

	// UpdateStatus overwrites a report's status; transition legality is
	// enforced by the service layer before calling this
	UpdateStatus(ctx context.Context, reportID int64, status entities.ReportStatus) (*entities.Report, error)
}
