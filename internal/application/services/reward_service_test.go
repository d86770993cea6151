package services_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/greencycle/greencycle/backend/internal/application/services"
	"github.com/greencycle/greencycle/backend/internal/domain/entities"
	apperrors "github.com/greencycle/greencycle/backend/pkg/errors"
)

// Stubs

type stubRewardRepo struct {
	ledger    *entities.Reward
	available []*entities.Reward
	leaders   []*entities.LeaderboardEntry
}

func (s *stubRewardRepo) GetOrCreateLedger(ctx context.Context, userID int64) (*entities.Reward, error) {
	if s.ledger != nil {
		return s.ledger, nil
	}
	return &entities.Reward{ID: 1, UserID: userID}, nil
}

func (s *stubRewardRepo) GetByID(ctx context.Context, id int64) (*entities.Reward, error) {
	for _, r := range s.available {
		if r.ID == id {
			return r, nil
		}
	}
	return nil, apperrors.NewNotFoundError("reward not found")
}

func (s *stubRewardRepo) ListAvailable(ctx context.Context) ([]*entities.Reward, error) {
	return s.available, nil
}

func (s *stubRewardRepo) Leaderboard(ctx context.Context) ([]*entities.LeaderboardEntry, error) {
	return s.leaders, nil
}

type stubLedgerRepo struct {
	redeemFn func(ctx context.Context, userID, rewardID int64) (float64, error)
}

func (s *stubLedgerRepo) CreateReport(ctx context.Context, report *entities.Report, award float64, notifMessage string) (*entities.Report, float64, error) {
	return report, award, nil
}

func (s *stubLedgerRepo) VerifyCollection(ctx context.Context, reportID, collectorID int64, award float64, verification string) (*entities.CollectedWaste, float64, error) {
	return &entities.CollectedWaste{ReportID: reportID, CollectorID: collectorID}, award, nil
}

func (s *stubLedgerRepo) Redeem(ctx context.Context, userID, rewardID int64) (float64, error) {
	return s.redeemFn(ctx, userID, rewardID)
}

type stubTransactionRepo struct {
	rows      []*entities.Transaction
	lastLimit int
}

func (s *stubTransactionRepo) ListByUser(ctx context.Context, userID int64, limit int) ([]*entities.Transaction, error) {
	s.lastLimit = limit
	return s.rows, nil
}

// Tests

func TestCalculateCollectionReward(t *testing.T) {
	tests := []struct {
		name      string
		wasteType string
		amount    string
		want      float64
	}{
		{"plastic small quantity", "Plastic Bottles", "2 kg", 1.0},
		{"plastic medium quantity", "Plastic Bottles", "3 kg", 1.5},
		{"plastic large quantity", "Plastic Bottles", "5 kg", 2.0},
		{"metal base rate", "Metal Cans & Scrap", "1 kg", 2.0},
		{"metal large quantity", "Metal Cans", "5 kg", 3.0},
		{"electronic medium quantity", "Electronic Waste", "4 kg", 2.5},
		{"e-waste label base rate", "E-Waste Items", "1 kg", 2.0},
		{"range takes leading number", "Paper & Cardboard", "4-5 kg", 1.5},
		{"unparseable amount keeps base", "Organic Food Waste", "a few bags", 1.0},
		{"case insensitive category", "METAL scrap", "1 kg", 2.0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, services.CalculateCollectionReward(tt.wasteType, tt.amount))
		})
	}
}

func TestRewardService_Balance_CreatesLedgerOnFirstAccess(t *testing.T) {
	rewards := &stubRewardRepo{}
	service := services.NewRewardService(rewards, &stubTransactionRepo{}, &stubLedgerRepo{}, nil, nil)

	balance, err := service.Balance(context.Background(), 7)

	require.NoError(t, err)
	assert.Equal(t, 0.0, balance)
}

func TestRewardService_Catalog(t *testing.T) {
	rewards := &stubRewardRepo{
		ledger: &entities.Reward{ID: 1, UserID: 7, Points: 42.5},
		available: []*entities.Reward{
			{ID: 1, UserID: 7, Points: 42.5, Name: "Default Reward", IsAvailable: true},
			{ID: 2, UserID: 100, Points: 50, Name: "Reusable Water Bottle", IsAvailable: true},
			{ID: 3, UserID: 101, Points: 0, Name: "Empty Sponsor", IsAvailable: true},
		},
	}
	service := services.NewRewardService(rewards, &stubTransactionRepo{}, &stubLedgerRepo{}, nil, nil)

	catalog, err := service.Catalog(context.Background(), 7)

	require.NoError(t, err)
	require.NotEmpty(t, catalog)

	// The synthetic entry always comes first and carries the caller's balance
	assert.Equal(t, int64(0), catalog[0].ID)
	assert.Equal(t, "Your Points", catalog[0].Name)
	assert.Equal(t, 42.5, catalog[0].Cost)

	// Zero-cost rows are dropped
	for _, entry := range catalog[1:] {
		assert.Greater(t, entry.Cost, 0.0)
	}
	assert.Len(t, catalog, 3)
	assert.Equal(t, "Reusable Water Bottle", catalog[2].Name)
	assert.Equal(t, 50.0, catalog[2].Cost)
}

func TestRewardService_Redeem(t *testing.T) {
	t.Run("returns new balance from ledger", func(t *testing.T) {
		rewards := &stubRewardRepo{ledger: &entities.Reward{ID: 1, UserID: 7, Points: 60}}
		ledger := &stubLedgerRepo{
			redeemFn: func(ctx context.Context, userID, rewardID int64) (float64, error) {
				assert.Equal(t, int64(7), userID)
				assert.Equal(t, int64(2), rewardID)
				return 10, nil
			},
		}
		service := services.NewRewardService(rewards, &stubTransactionRepo{}, ledger, nil, nil)

		balance, err := service.Redeem(context.Background(), 7, 2)

		require.NoError(t, err)
		assert.Equal(t, 10.0, balance)
	})

	t.Run("propagates ledger rejection", func(t *testing.T) {
		rewards := &stubRewardRepo{ledger: &entities.Reward{ID: 1, UserID: 7, Points: 0}}
		ledger := &stubLedgerRepo{
			redeemFn: func(ctx context.Context, userID, rewardID int64) (float64, error) {
				return 0, apperrors.NewValidationError("no points available to redeem")
			},
		}
		service := services.NewRewardService(rewards, &stubTransactionRepo{}, ledger, nil, nil)

		_, err := service.Redeem(context.Background(), 7, 0)

		require.Error(t, err)
		assert.True(t, apperrors.IsType(err, apperrors.ErrorTypeValidation))
	})
}

func TestRewardService_Transactions_LimitsToTen(t *testing.T) {
	transactions := &stubTransactionRepo{rows: []*entities.Transaction{{ID: 1, UserID: 7, Amount: 10}}}
	service := services.NewRewardService(&stubRewardRepo{}, transactions, &stubLedgerRepo{}, nil, nil)

	rows, err := service.Transactions(context.Background(), 7)

	require.NoError(t, err)
	assert.Len(t, rows, 1)
	assert.Equal(t, 10, transactions.lastLimit)
}
