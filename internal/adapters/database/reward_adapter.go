package database

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/doug-martin/goqu/v9"
	_ "github.com/doug-martin/goqu/v9/dialect/postgres"
	"github.com/greencycle/greencycle/backend/internal/domain/entities"
	"github.com/greencycle/greencycle/backend/internal/domain/repositories"
	"github.com/greencycle/greencycle/backend/internal/infrastructure/clients/postgres"
	apperrors "github.com/greencycle/greencycle/backend/pkg/errors"
)

var rewardColumns = []interface{}{
	"id", "user_id", "points", "level", "is_available",
	"name", "description", "collection_info", "created_at", "updated_at",
}

// RewardAdapter implements the RewardRepository interface
type RewardAdapter struct {
	client *postgres.Client
	db     *goqu.Database
}

// NewRewardAdapter creates a new reward adapter
func NewRewardAdapter(client *postgres.Client) repositories.RewardRepository {
	return &RewardAdapter{
		client: client,
		db:     goqu.New("postgres", client.DB()),
	}
}

func scanReward(scan func(dest ...interface{}) error) (*entities.Reward, error) {
	reward := &entities.Reward{}
	var description sql.NullString

	err := scan(
		&reward.ID,
		&reward.UserID,
		&reward.Points,
		&reward.Level,
		&reward.IsAvailable,
		&reward.Name,
		&description,
		&reward.CollectionInfo,
		&reward.CreatedAt,
		&reward.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}

	reward.Description = description.String
	return reward, nil
}

// GetOrCreateLedger returns the user's ledger row, creating it with zero
// points on first access
func (a *RewardAdapter) GetOrCreateLedger(ctx context.Context, userID int64) (*entities.Reward, error) {
	reward, err := a.getByUser(ctx, userID)
	if err == nil {
		return reward, nil
	}
	if !apperrors.IsType(err, apperrors.ErrorTypeNotFound) {
		return nil, err
	}

	now := time.Now()
	query, args, err := a.db.Insert("rewards").Rows(goqu.Record{
		"user_id":         userID,
		"points":          0,
		"level":           1,
		"is_available":    true,
		"name":            "Default Reward",
		"collection_info": "Default Collection Info",
		"created_at":      now,
		"updated_at":      now,
	}).Returning("id").ToSQL()
	if err != nil {
		return nil, apperrors.NewInternalError("failed to build reward insert query", err)
	}

	var id int64
	if err := a.client.DB().QueryRowContext(ctx, query, args...).Scan(&id); err != nil {
		return nil, apperrors.NewInternalError("failed to create reward ledger", err)
	}

	return a.GetByID(ctx, id)
}

func (a *RewardAdapter) getByUser(ctx context.Context, userID int64) (*entities.Reward, error) {
	query, args, err := a.db.Select(rewardColumns...).
		From("rewards").
		Where(goqu.Ex{"user_id": userID}).
		ToSQL()
	if err != nil {
		return nil, apperrors.NewInternalError("failed to build reward query", err)
	}

	row := a.client.DB().QueryRowContext(ctx, query, args...)
	reward, err := scanReward(row.Scan)
	if err == sql.ErrNoRows {
		return nil, apperrors.NewNotFoundError(fmt.Sprintf("reward ledger for user %d not found", userID))
	}
	if err != nil {
		return nil, apperrors.NewInternalError("failed to get reward ledger", err)
	}

	return reward, nil
}

// GetByID retrieves a reward row by ID
func (a *RewardAdapter) GetByID(ctx context.Context, id int64) (*entities.Reward, error) {
	query, args, err := a.db.Select(rewardColumns...).
		From("rewards").
		Where(goqu.Ex{"id": id}).
		ToSQL()
	if err != nil {
		return nil, apperrors.NewInternalError("failed to build reward query", err)
	}

	row := a.client.DB().QueryRowContext(ctx, query, args...)
	reward, err := scanReward(row.Scan)
	if err == sql.ErrNoRows {
		return nil, apperrors.NewNotFoundError(fmt.Sprintf("reward with id %d not found", id))
	}
	if err != nil {
		return nil, apperrors.NewInternalError("failed to get reward", err)
	}

	return reward, nil
}

// ListAvailable retrieves catalog rows with is_available=true
func (a *RewardAdapter) ListAvailable(ctx context.Context) ([]*entities.Reward, error) {
	query, args, err := a.db.Select(rewardColumns...).
		From("rewards").
		Where(goqu.Ex{"is_available": true}).
		ToSQL()
	if err != nil {
		return nil, apperrors.NewInternalError("failed to build catalog query", err)
	}

	rows, err := a.client.DB().QueryContext(ctx, query, args...)
	if err != nil {
		return nil, apperrors.NewInternalError("failed to list rewards", err)
	}
	defer rows.Close()

	var rewards []*entities.Reward
	for rows.Next() {
		reward, err := scanReward(rows.Scan)
		if err != nil {
			return nil, apperrors.NewInternalError("failed to scan reward", err)
		}
		rewards = append(rewards, reward)
	}

	return rewards, rows.Err()
}

// Leaderboard retrieves ledger rows joined with user names, ordered by
// points descending
func (a *RewardAdapter) Leaderboard(ctx context.Context) ([]*entities.LeaderboardEntry, error) {
	query, args, err := a.db.Select(
		goqu.I("rewards.id"),
		goqu.I("rewards.user_id"),
		goqu.I("rewards.points"),
		goqu.I("rewards.level"),
		goqu.I("users.name"),
		goqu.I("rewards.created_at"),
	).
		From("rewards").
		LeftJoin(goqu.T("users"), goqu.On(goqu.Ex{"rewards.user_id": goqu.I("users.id")})).
		Order(goqu.I("rewards.points").Desc()).
		ToSQL()
	if err != nil {
		return nil, apperrors.NewInternalError("failed to build leaderboard query", err)
	}

	rows, err := a.client.DB().QueryContext(ctx, query, args...)
	if err != nil {
		return nil, apperrors.NewInternalError("failed to list leaderboard", err)
	}
	defer rows.Close()

	var entries []*entities.LeaderboardEntry
	for rows.Next() {
		entry := &entities.LeaderboardEntry{}
		var userName sql.NullString
		err := rows.Scan(
			&entry.ID,
			&entry.UserID,
			&entry.Points,
			&entry.Level,
			&userName,
			&entry.CreatedAt,
		)
		if err != nil {
			return nil, apperrors.NewInternalError("failed to scan leaderboard entry", err)
		}
		entry.UserName = userName.String
		entries = append(entries, entry)
	}

	return entries, rows.Err()
}
