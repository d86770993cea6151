package services

import (
	"context"
	"fmt"
	"strings"

	"github.com/rs/zerolog/log"
	"github.com/greencycle/greencycle/backend/internal/domain/entities"
	"github.com/greencycle/greencycle/backend/internal/domain/providers"
	"github.com/greencycle/greencycle/backend/internal/domain/repositories"
	"github.com/greencycle/greencycle/backend/internal/infrastructure/observability"
	apperrors "github.com/greencycle/greencycle/backend/pkg/errors"
)

const (
	// ReportAward is the fixed number of points credited for submitting
	// a report
	ReportAward = 10

	// submissions per user per window
	submissionRateLimit  = 10
	submissionRateWindow = 3600
)

// ReportService handles business logic for waste reports
type ReportService struct {
	reports    repositories.ReportRepository
	ledger     repositories.LedgerRepository
	searchRepo repositories.TaskSearchRepository
	verifier   providers.WasteVerifier
	eventBus   providers.EventBus
	cache      providers.CacheProvider
	metrics    *observability.Metrics
}

// NewReportService creates a new report service
func NewReportService(
	reports repositories.ReportRepository,
	ledger repositories.LedgerRepository,
	searchRepo repositories.TaskSearchRepository,
	verifier providers.WasteVerifier,
	eventBus providers.EventBus,
	cache providers.CacheProvider,
	metrics *observability.Metrics,
) *ReportService {
	return &ReportService{
		reports:    reports,
		ledger:     ledger,
		searchRepo: searchRepo,
		verifier:   verifier,
		eventBus:   eventBus,
		cache:      cache,
		metrics:    metrics,
	}
}

// Create validates and stores a new report, crediting the submission
// award atomically with the insert, then indexes the task and publishes
// refresh events.
func (s *ReportService) Create(ctx context.Context, report *entities.Report) (*entities.Report, float64, error) {
	if strings.TrimSpace(report.Location) == "" {
		return nil, 0, apperrors.NewValidationError("location is required")
	}
	if strings.TrimSpace(report.WasteType) == "" {
		return nil, 0, apperrors.NewValidationError("waste type is required")
	}
	if strings.TrimSpace(report.Amount) == "" {
		return nil, 0, apperrors.NewValidationError("amount is required")
	}

	if err := s.checkRateLimit(ctx, report.UserID); err != nil {
		return nil, 0, err
	}

	message := fmt.Sprintf("You earned %d points for reporting waste!", ReportAward)
	created, balance, err := s.ledger.CreateReport(ctx, report, ReportAward, message)
	if err != nil {
		return nil, 0, err
	}

	observability.RecordPointsAwarded(ctx, s.metrics, string(entities.TransactionEarnedReport), ReportAward)

	if s.searchRepo != nil {
		if err := s.searchRepo.IndexTask(ctx, created); err != nil {
			// Eventual consistency, the indexer backfills
			log.Warn().Err(err).Int64("report_id", created.ID).Msg("failed to index task")
		}
	}

	s.publishReportEvent(ctx, entities.RewardEventReportSubmitted, created.UserID, created.ID)
	s.publishBalanceEvent(ctx, created.UserID, balance)

	return created, balance, nil
}

// ListByUser retrieves a user's reports
func (s *ReportService) ListByUser(ctx context.Context, userID int64) ([]*entities.Report, error) {
	return s.reports.ListByUser(ctx, userID)
}

// ListRecent retrieves the most recent reports
func (s *ReportService) ListRecent(ctx context.Context, limit int) ([]*entities.Report, error) {
	return s.reports.ListRecent(ctx, limit)
}

// AnalyzeWaste runs the simulated analysis of a submitted image reference
func (s *ReportService) AnalyzeWaste(ctx context.Context, imageRef string) (*entities.WasteAnalysis, error) {
	if strings.TrimSpace(imageRef) == "" {
		return nil, apperrors.NewValidationError("image is required")
	}
	return s.verifier.AnalyzeWaste(ctx, imageRef)
}

func (s *ReportService) checkRateLimit(ctx context.Context, userID int64) error {
	if s.cache == nil {
		return nil
	}

	key := fmt.Sprintf("ratelimit:reports:%d", userID)
	count, err := s.cache.Increment(ctx, key, submissionRateWindow)
	if err != nil {
		// Rate limiting is advisory, never block submissions on cache
		// trouble
		log.Warn().Err(err).Int64("user_id", userID).Msg("rate limit check failed")
		return nil
	}
	if count > submissionRateLimit {
		return apperrors.NewValidationError("too many reports submitted, try again later")
	}

	return nil
}

func (s *ReportService) publishReportEvent(ctx context.Context, eventType entities.RewardEventType, userID, reportID int64) {
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

func (s *ReportService) publishBalanceEvent(ctx context.Context, userID int64, balance float64) {
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
