package services

import (
	"context"
	"regexp"
	"strconv"
	"strings"

	"github.com/rs/zerolog/log"
	"github.com/greencycle/greencycle/backend/internal/domain/entities"
	"github.com/greencycle/greencycle/backend/internal/domain/providers"
	"github.com/greencycle/greencycle/backend/internal/domain/repositories"
	"github.com/greencycle/greencycle/backend/internal/infrastructure/observability"
)

// leadingQuantity extracts the leading integer from an amount string like
// "5 kg" or "3-4 kg"
var leadingQuantity = regexp.MustCompile(`^(\d+)`)

// RewardService handles business logic for points, catalog and redemption
type RewardService struct {
	rewards      repositories.RewardRepository
	transactions repositories.TransactionRepository
	ledger       repositories.LedgerRepository
	eventBus     providers.EventBus
	metrics      *observability.Metrics
}

// NewRewardService creates a new reward service
func NewRewardService(
	rewards repositories.RewardRepository,
	transactions repositories.TransactionRepository,
	ledger repositories.LedgerRepository,
	eventBus providers.EventBus,
	metrics *observability.Metrics,
) *RewardService {
	return &RewardService{
		rewards:      rewards,
		transactions: transactions,
		ledger:       ledger,
		eventBus:     eventBus,
		metrics:      metrics,
	}
}

// Balance returns the user's current point balance, creating the ledger
// row on first access
func (s *RewardService) Balance(ctx context.Context, userID int64) (float64, error) {
	reward, err := s.rewards.GetOrCreateLedger(ctx, userID)
	if err != nil {
		return 0, err
	}
	return reward.Points, nil
}

// Transactions returns the user's 10 most recent transactions
func (s *RewardService) Transactions(ctx context.Context, userID int64) ([]*entities.Transaction, error) {
	return s.transactions.ListByUser(ctx, userID, 10)
}

// Catalog returns the redeemable rewards: the id-0 pseudo-reward holding
// the user's own balance, followed by catalog rows with a positive cost
func (s *RewardService) Catalog(ctx context.Context, userID int64) ([]*entities.AvailableReward, error) {
	balance, err := s.Balance(ctx, userID)
	if err != nil {
		return nil, err
	}

	catalog := []*entities.AvailableReward{
		{
			ID:             0,
			Name:           "Your Points",
			Cost:           balance,
			Description:    "Redeem your earned points",
			CollectionInfo: "Points earned from reporting and collecting waste",
		},
	}

	rows, err := s.rewards.ListAvailable(ctx)
	if err != nil {
		return nil, err
	}
	for _, row := range rows {
		if row.Points <= 0 {
			continue
		}
		catalog = append(catalog, &entities.AvailableReward{
			ID:             row.ID,
			Name:           row.Name,
			Cost:           row.Points,
			Description:    row.Description,
			CollectionInfo: row.CollectionInfo,
		})
	}

	return catalog, nil
}

// Redeem deducts a redemption and publishes the new balance
func (s *RewardService) Redeem(ctx context.Context, userID, rewardID int64) (float64, error) {
	before, err := s.Balance(ctx, userID)
	if err != nil {
		return 0, err
	}

	balance, err := s.ledger.Redeem(ctx, userID, rewardID)
	if err != nil {
		return 0, err
	}

	observability.RecordPointsRedeemed(ctx, s.metrics, before-balance)
	s.publishBalance(ctx, userID, balance)

	return balance, nil
}

// Leaderboard returns ledger rows joined with user names, highest first
func (s *RewardService) Leaderboard(ctx context.Context) ([]*entities.LeaderboardEntry, error) {
	return s.rewards.Leaderboard(ctx)
}

// CalculateCollectionReward computes the points for a verified
// collection: a base by waste category plus a bonus from the reported
// quantity.
func CalculateCollectionReward(wasteType, amount string) float64 {
	points := 1.0

	category := strings.ToLower(wasteType)
	if strings.Contains(category, "metal") || strings.Contains(category, "electronic") || strings.Contains(category, "e-waste") {
		points = 2.0
	}

	if match := leadingQuantity.FindString(strings.TrimSpace(amount)); match != "" {
		if quantity, err := strconv.Atoi(match); err == nil {
			switch {
			case quantity >= 5:
				points += 1.0
			case quantity >= 3:
				points += 0.5
			}
		}
	}

	return points
}

func (s *RewardService) publishBalance(ctx context.Context, userID int64, balance float64) {
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
