package handlers

import (
	"context"
	"encoding/json"
	"net/http"

	"github.com/greencycle/greencycle/backend/internal/api/middleware"
	"github.com/greencycle/greencycle/backend/internal/domain/entities"
)

// RewardService handles points, catalog and redemption
type RewardService interface {
	Balance(ctx context.Context, userID int64) (float64, error)
	Transactions(ctx context.Context, userID int64) ([]*entities.Transaction, error)
	Catalog(ctx context.Context, userID int64) ([]*entities.AvailableReward, error)
	Redeem(ctx context.Context, userID, rewardID int64) (float64, error)
	Leaderboard(ctx context.Context) ([]*entities.LeaderboardEntry, error)
}

// RewardHandler handles reward-related HTTP requests
type RewardHandler struct {
	rewards RewardService
}

// NewRewardHandler creates a new reward handler
func NewRewardHandler(rewards RewardService) *RewardHandler {
	return &RewardHandler{rewards: rewards}
}

// GetBalance handles GET /api/rewards/balance
func (h *RewardHandler) GetBalance(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.UserID(r.Context())
	if !ok {
		respondWithError(w, http.StatusUnauthorized, "authentication required")
		return
	}

	balance, err := h.rewards.Balance(r.Context(), userID)
	if err != nil {
		respondWithAppError(w, err)
		return
	}

	respondWithJSON(w, http.StatusOK, map[string]float64{"balance": balance})
}

// ListTransactions handles GET /api/rewards/transactions
func (h *RewardHandler) ListTransactions(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.UserID(r.Context())
	if !ok {
		respondWithError(w, http.StatusUnauthorized, "authentication required")
		return
	}

	transactions, err := h.rewards.Transactions(r.Context(), userID)
	if err != nil {
		respondWithAppError(w, err)
		return
	}

	respondWithJSON(w, http.StatusOK, map[string]interface{}{
		"transactions": transactions,
		"count":        len(transactions),
	})
}

// GetCatalog handles GET /api/rewards/catalog
func (h *RewardHandler) GetCatalog(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.UserID(r.Context())
	if !ok {
		respondWithError(w, http.StatusUnauthorized, "authentication required")
		return
	}

	catalog, err := h.rewards.Catalog(r.Context(), userID)
	if err != nil {
		respondWithAppError(w, err)
		return
	}

	respondWithJSON(w, http.StatusOK, map[string]interface{}{
		"rewards": catalog,
		"count":   len(catalog),
	})
}

type redeemRequest struct {
	RewardID int64 `json:"reward_id"`
}

// Redeem handles POST /api/rewards/redeem
func (h *RewardHandler) Redeem(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.UserID(r.Context())
	if !ok {
		respondWithError(w, http.StatusUnauthorized, "authentication required")
		return
	}

	var req redeemRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondWithError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	balance, err := h.rewards.Redeem(r.Context(), userID, req.RewardID)
	if err != nil {
		respondWithAppError(w, err)
		return
	}

	respondWithJSON(w, http.StatusOK, map[string]float64{"balance": balance})
}

// GetLeaderboard handles GET /api/leaderboard
func (h *RewardHandler) GetLeaderboard(w http.ResponseWriter, r *http.Request) {
	entries, err := h.rewards.Leaderboard(r.Context())
	if err != nil {
		respondWithAppError(w, err)
		return
	}

	respondWithJSON(w, http.StatusOK, map[string]interface{}{
		"leaderboard": entries,
		"count":       len(entries),
	})
}
