package database

import (
	"context"

	"github.com/doug-martin/goqu/v9"
	_ "github.com/doug-martin/goqu/v9/dialect/postgres"
	"github.com/greencycle/greencycle/backend/internal/domain/entities"
	"github.com/greencycle/greencycle/backend/internal/domain/repositories"
	"github.com/greencycle/greencycle/backend/internal/infrastructure/clients/postgres"
	apperrors "github.com/greencycle/greencycle/backend/pkg/errors"
)

// CollectedWasteAdapter implements the CollectedWasteRepository interface
type CollectedWasteAdapter struct {
	client *postgres.Client
	db     *goqu.Database
}

// NewCollectedWasteAdapter creates a new collected waste adapter
func NewCollectedWasteAdapter(client *postgres.Client) repositories.CollectedWasteRepository {
	return &CollectedWasteAdapter{
		client: client,
		db:     goqu.New("postgres", client.DB()),
	}
}

// ListByCollector retrieves collection records for a collector, newest first
func (a *CollectedWasteAdapter) ListByCollector(ctx context.Context, collectorID int64) ([]*entities.CollectedWaste, error) {
	query, args, err := a.db.Select("id", "report_id", "collector_id", "collection_date", "status").
		From("collected_wastes").
		Where(goqu.Ex{"collector_id": collectorID}).
		Order(goqu.I("collection_date").Desc()).
		ToSQL()
	if err != nil {
		return nil, apperrors.NewInternalError("failed to build collected waste query", err)
	}

	rows, err := a.client.DB().QueryContext(ctx, query, args...)
	if err != nil {
		return nil, apperrors.NewInternalError("failed to list collected wastes", err)
	}
	defer rows.Close()

	var collected []*entities.CollectedWaste
	for rows.Next() {
		cw := &entities.CollectedWaste{}
		err := rows.Scan(&cw.ID, &cw.ReportID, &cw.CollectorID, &cw.CollectionDate, &cw.Status)
		if err != nil {
			return nil, apperrors.NewInternalError("failed to scan collected waste", err)
		}
		collected = append(collected, cw)
	}

	return collected, rows.Err()
}
