package entities

import (
	"time"
)

// Reward is a row in the rewards table. One row per user acts as that
// user's running point ledger; rows with IsAvailable=true also act as
// redeemable catalog entries whose cost is kept in Points.
type Reward struct {
	ID             int64     `json:"id" db:"id"`
	UserID         int64     `json:"user_id" db:"user_id"`
	Points         float64   `json:"points" db:"points"`
	Level          int       `json:"level" db:"level"`
	IsAvailable    bool      `json:"is_available" db:"is_available"`
	Name           string    `json:"name" db:"name"`
	Description    string    `json:"description,omitempty" db:"description"`
	CollectionInfo string    `json:"collection_info" db:"collection_info"`
	CreatedAt      time.Time `json:"created_at" db:"created_at"`
	UpdatedAt      time.Time `json:"updated_at" db:"updated_at"`
}

// AvailableReward is the catalog read model. ID 0 is the synthetic
// "Your Points" pseudo-reward assembled per user, never persisted.
type AvailableReward struct {
	ID             int64   `json:"id"`
	Name           string  `json:"name"`
	Cost           float64 `json:"cost"`
	Description    string  `json:"description"`
	CollectionInfo string  `json:"collection_info"`
}

// LeaderboardEntry joins a reward ledger row with its owner's name
type LeaderboardEntry struct {
	ID        int64     `json:"id" db:"id"`
	UserID    int64     `json:"user_id" db:"user_id"`
	Points    float64   `json:"points" db:"points"`
	Level     int       `json:"level" db:"level"`
	UserName  string    `json:"user_name" db:"user_name"`
	CreatedAt time.Time `json:"created_at" db:"created_at"`
}
