package search

import (
	"context"
	"fmt"
	"strconv"
	"time"

	"github.com/typesense/typesense-go/v2/typesense/api"
	"github.com/typesense/typesense-go/v2/typesense/api/pointer"
	"github.com/greencycle/greencycle/backend/internal/domain/entities"
	"github.com/greencycle/greencycle/backend/internal/domain/repositories"
	tsclient "github.com/greencycle/greencycle/backend/internal/infrastructure/clients/typesense"
)

// TypesenseAdapter implements task search using Typesense
type TypesenseAdapter struct {
	client *tsclient.Client
}

var _ repositories.TaskSearchRepository = (*TypesenseAdapter)(nil)

// NewTypesenseAdapter creates a new Typesense adapter
func NewTypesenseAdapter(client *tsclient.Client) *TypesenseAdapter {
	return &TypesenseAdapter{client: client}
}

// IndexTask upserts a report into the search index
func (a *TypesenseAdapter) IndexTask(ctx context.Context, report *entities.Report) error {
	document := map[string]interface{}{
		"id":         strconv.FormatInt(report.ID, 10),
		"location":   report.Location,
		"waste_type": report.WasteType,
		"amount":     report.Amount,
		"status":     string(report.Status),
		"user_id":    report.UserID,
		"created_at": report.CreatedAt.Unix(),
	}
	if report.CollectorID != nil {
		document["collector_id"] = *report.CollectorID
	}

	_, err := a.client.Client().Collection(tsclient.TasksCollection).Documents().Upsert(ctx, document)
	if err != nil {
		return fmt.Errorf("failed to index task: %w", err)
	}

	return nil
}

// SearchTasks finds tasks matching the free-text query against location
// and waste type
func (a *TypesenseAdapter) SearchTasks(ctx context.Context, query string, limit int) ([]*entities.Report, error) {
	if limit <= 0 {
		limit = 20
	}

	searchParams := &api.SearchCollectionParams{
		Q:       pointer.String(query),
		QueryBy: pointer.String("location,waste_type"),
		SortBy:  pointer.String("created_at:desc"),
		PerPage: pointer.Int(limit),
	}

	result, err := a.client.Client().Collection(tsclient.TasksCollection).Documents().Search(ctx, searchParams)
	if err != nil {
		return nil, fmt.Errorf("failed to search tasks: %w", err)
	}

	reports := []*entities.Report{}
	if result.Hits == nil {
		return reports, nil
	}

	for _, hit := range *result.Hits {
		doc := *hit.Document

		report := &entities.Report{}
		if val, ok := doc["id"].(string); ok {
			report.ID, _ = strconv.ParseInt(val, 10, 64)
		}
		if val, ok := doc["location"].(string); ok {
			report.Location = val
		}
		if val, ok := doc["waste_type"].(string); ok {
			report.WasteType = val
		}
		if val, ok := doc["amount"].(string); ok {
			report.Amount = val
		}
		if val, ok := doc["status"].(string); ok {
			report.Status = entities.ReportStatus(val)
		}
		if val, ok := doc["user_id"].(float64); ok {
			report.UserID = int64(val)
		}
		if val, ok := doc["collector_id"].(float64); ok {
			collectorID := int64(val)
			report.CollectorID = &collectorID
		}
		if val, ok := doc["created_at"].(float64); ok {
			report.CreatedAt = time.Unix(int64(val), 0)
		}

		reports = append(reports, report)
	}

	return reports, nil
}
