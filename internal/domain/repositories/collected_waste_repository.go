package repositories

import (
	"context"

	"github.com/greencycle/greencycle/backend/internal/domain/entities"
)

// CollectedWasteRepository defines access to collection records
type CollectedWasteRepository interface {
	// ListByCollector retrieves a collector's collection log
	ListByCollector(ctx context.Context, collectorID int64) ([]*entities.CollectedWaste, error)
}
