package repositories

import (
	"context"

	"github.com/greencycle/greencycle/backend/internal/domain/entities"
)

// RewardRepository defines read access to the rewards table
type RewardRepository interface {
	// GetOrCreateLedger returns the user's ledger row, creating it with
	// zero points on first access
	GetOrCreateLedger(ctx context.Context, userID int64) (*entities.Reward, error)

	// GetByID retrieves a reward row (ledger or catalog) by ID
	GetByID(ctx context.Context, id int64) (*entities.Reward, error)

	// ListAvailable retrieves catalog rows with is_available=true
	ListAvailable(ctx context.Context) ([]*entities.Reward, error)

	// Leaderboard retrieves ledger rows joined with user names, ordered
	// by points descending
	Leaderboard(ctx context.Context) ([]*entities.LeaderboardEntry, error)
}
