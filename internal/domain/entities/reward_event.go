package entities

import (
	"time"

	"github.com/google/uuid"
)

// RewardEventType represents the type of cross-client refresh event
type RewardEventType string

const (
	RewardEventReportSubmitted RewardEventType = "report_submitted"
	RewardEventTaskClaimed     RewardEventType = "task_claimed"
	RewardEventTaskVerified    RewardEventType = "task_verified"
	RewardEventBalanceUpdated  RewardEventType = "balance_updated"
)

// RewardEvent is published whenever a report or a balance changes, so
// connected clients can refresh without polling. Delivery is at-most-once,
// best-effort.
type RewardEvent struct {
	ID        string          `json:"id"`
	EventType RewardEventType `json:"event_type"`
	UserID    int64           `json:"user_id"`
	ReportID  int64           `json:"report_id,omitempty"`
	Balance   float64         `json:"balance,omitempty"`
	Timestamp time.Time       `json:"timestamp"`
}

// NewRewardEvent creates a reward event with a fresh ID
func NewRewardEvent(eventType RewardEventType, userID int64) *RewardEvent {
	return &RewardEvent{
		ID:        uuid.New().String(),
		EventType: eventType,
		UserID:    userID,
		Timestamp: time.Now(),
	}
}
