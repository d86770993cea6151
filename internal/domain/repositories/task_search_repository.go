package repositories

import (
	"context"

	"github.com/greencycle/greencycle/backend/internal/domain/entities"
)

// TaskSearchRepository defines full-text search over collection tasks
type TaskSearchRepository interface {
	// IndexTask upserts a report into the search index
	IndexTask(ctx context.Context, report *entities.Report) error

	// SearchTasks finds tasks matching the free-text query against
	// location and waste type
	SearchTasks(ctx context.Context, query string, limit int) ([]*entities.Report, error)
}
