package services

import (
	"context"
	"fmt"

	"github.com/rs/zerolog/log"
	"github.com/greencycle/greencycle/backend/internal/domain/entities"
	"github.com/greencycle/greencycle/backend/internal/domain/providers"
	"github.com/greencycle/greencycle/backend/internal/domain/repositories"
	"github.com/greencycle/greencycle/backend/internal/infrastructure/observability"
	apperrors "github.com/greencycle/greencycle/backend/pkg/errors"
)

// TaskService handles business logic for collection tasks
type TaskService struct {
	reports       repositories.ReportRepository
	ledger        repositories.LedgerRepository
	collected     repositories.CollectedWasteRepository
	notifications repositories.NotificationRepository
	searchRepo    repositories.TaskSearchRepository
	verifier      providers.WasteVerifier
	eventBus      providers.EventBus
	metrics       *observability.Metrics
}

// NewTaskService creates a new task service
func NewTaskService(
	reports repositories.ReportRepository,
	ledger repositories.LedgerRepository,
	collected repositories.CollectedWasteRepository,
	notifications repositories.NotificationRepository,
	searchRepo repositories.TaskSearchRepository,
	verifier providers.WasteVerifier,
	eventBus providers.EventBus,
	metrics *observability.Metrics,
) *TaskService {
	return &TaskService{
		reports:       reports,
		ledger:        ledger,
		collected:     collected,
		notifications: notifications,
		searchRepo:    searchRepo,
		verifier:      verifier,
		eventBus:      eventBus,
		metrics:       metrics,
	}
}

// List retrieves collection tasks through the single canonical query
func (s *TaskService) List(ctx context.Context, filter entities.TaskFilter) ([]*entities.Report, error) {
	if filter.Status != "" && !entities.ValidStatus(filter.Status) {
		return nil, apperrors.NewValidationError(fmt.Sprintf("unknown status %q", filter.Status))
	}
	return s.reports.ListTasks(ctx, filter)
}

// Search finds tasks by free-text query, falling back to the database
// listing when no search index is configured
func (s *TaskService) Search(ctx context.Context, query string, limit int) ([]*entities.Report, error) {
	if s.searchRepo != nil {
		return s.searchRepo.SearchTasks(ctx, query, limit)
	}
	return s.reports.ListTasks(ctx, entities.TaskFilter{Limit: limit})
}

// Claim moves a pending task to in_progress under the collector. When two
// collectors race, the conditional update lets exactly one win; the other
// gets a conflict.
func (s *TaskService) Claim(ctx context.Context, reportID, collectorID int64) (*entities.Report, error) {
	won, err := s.reports.Claim(ctx, reportID, collectorID)
	if err != nil {
		return nil, err
	}
	if !won {
		// Distinguish a missing report from a lost race
		if _, err := s.reports.GetByID(ctx, reportID); err != nil {
			return nil, err
		}
		return nil, apperrors.NewConflictError("task already claimed")
	}

	report, err := s.reports.GetByID(ctx, reportID)
	if err != nil {
		return nil, err
	}

	s.reindex(ctx, report)
	s.publishReportEvent(ctx, entities.RewardEventTaskClaimed, collectorID, reportID)
	s.notifyReporter(ctx, report)

	return report, nil
}

// Verify runs the simulated collection check, then atomically transitions
// the task, records the collection and credits the collector. Only the
// claiming collector may verify, and only once.
func (s *TaskService) Verify(ctx context.Context, reportID, collectorID int64) (*entities.CollectedWaste, *entities.CollectionVerification, float64, error) {
	report, err := s.reports.GetByID(ctx, reportID)
	if err != nil {
		return nil, nil, 0, err
	}
	if report.Status != entities.ReportStatusInProgress || report.CollectorID == nil || *report.CollectorID != collectorID {
		return nil, nil, 0, apperrors.NewConflictError("task is not in progress under this collector")
	}

	verification, err := s.verifier.ConfirmCollection(ctx, report)
	if err != nil {
		return nil, nil, 0, apperrors.NewExternalError("collection verification failed", err)
	}

	award := CalculateCollectionReward(report.WasteType, report.Amount)
	result := fmt.Sprintf("verified with %d%% confidence", verification.Confidence)

	collected, balance, err := s.ledger.VerifyCollection(ctx, reportID, collectorID, award, result)
	if err != nil {
		return nil, nil, 0, err
	}

	observability.RecordPointsAwarded(ctx, s.metrics, string(entities.TransactionEarnedCollect), award)

	report.Status = entities.ReportStatusVerified
	report.VerificationResult = result
	s.reindex(ctx, report)
	s.publishReportEvent(ctx, entities.RewardEventTaskVerified, collectorID, reportID)
	s.publishBalance(ctx, collectorID, balance)

	return collected, verification, balance, nil
}

// UpdateStatus applies a status change after validating the transition
func (s *TaskService) UpdateStatus(ctx context.Context, reportID int64, status entities.ReportStatus) (*entities.Report, error) {
	if !entities.ValidStatus(status) {
		return nil, apperrors.NewValidationError(fmt.Sprintf("unknown status %q", status))
	}

	report, err := s.reports.GetByID(ctx, reportID)
	if err != nil {
		return nil, err
	}
	if !entities.CanTransition(report.Status, status) {
		return nil, apperrors.NewConflictError(fmt.Sprintf("cannot move task from %s to %s", report.Status, status))
	}

	// Returning an in-progress task to pending also unassigns the
	// collector, so someone else can claim it.
	if report.Status == entities.ReportStatusInProgress && status == entities.ReportStatusPending && report.CollectorID != nil {
		released, err := s.reports.Release(ctx, reportID, *report.CollectorID)
		if err != nil {
			return nil, err
		}
		if !released {
			return nil, apperrors.NewConflictError("task changed while releasing")
		}

		updated, err := s.reports.GetByID(ctx, reportID)
		if err != nil {
			return nil, err
		}
		s.reindex(ctx, updated)
		return updated, nil
	}

	updated, err := s.reports.UpdateStatus(ctx, reportID, status)
	if err != nil {
		return nil, err
	}

	s.reindex(ctx, updated)
	return updated, nil
}

// ListCollected retrieves a collector's collection log
func (s *TaskService) ListCollected(ctx context.Context, collectorID int64) ([]*entities.CollectedWaste, error) {
	return s.collected.ListByCollector(ctx, collectorID)
}

// notifyReporter tells the report owner their waste is being collected.
// Best effort, a failed insert never fails the claim.
func (s *TaskService) notifyReporter(ctx context.Context, report *entities.Report) {
	if s.notifications == nil {
		return
	}

	notification := &entities.Notification{
		UserID:  report.UserID,
		Message: fmt.Sprintf("A collector has claimed your %s report at %s", report.WasteType, report.Location),
		Type:    entities.NotificationTypeCollection,
	}
	if err := s.notifications.Create(ctx, notification); err != nil {
		log.Warn().Err(err).Int64("report_id", report.ID).Msg("failed to create claim notification")
	}
}

func (s *TaskService) reindex(ctx context.Context, report *entities.Report) {
	if s.searchRepo == nil {
		return
	}
	if err := s.searchRepo.IndexTask(ctx, report); err != nil {
		log.Warn().Err(err).Int64("report_id", report.ID).Msg("failed to reindex task")
	}
}

func (s *TaskService) publishReportEvent(ctx context.Context, eventType entities.RewardEventType, userID, reportID int64) {
	if s.eventBus == nil {
		return
	}

	event := entities.NewRewardEvent(eventType, userID)
	event.ReportID = reportID
	if err := s.eventBus.Publish(ctx, providers.EventChannelReports, event); err != nil {
		log.Warn().Err(err).Str("event_type", string(eventType)).Msg("failed to publish report event")
		return
	}
	observability.RecordEventPublished(ctx, s.metrics, string(eventType))
}

func (s *TaskService) publishBalance(ctx context.Context, userID int64, balance float64) {
	if s.eventBus == nil {
		return
	}

	event := entities.NewRewardEvent(entities.RewardEventBalanceUpdated, userID)
	event.Balance = balance
	if err := s.eventBus.Publish(ctx, providers.GetBalanceChannel(userID), event); err != nil {
		log.Warn().Err(err).Int64("user_id", userID).Msg("failed to publish balance event")
		return
	}
	observability.RecordEventPublished(ctx, s.metrics, string(entities.RewardEventBalanceUpdated))
}
