package entities

import (
	"time"
)

// NotificationType categorizes a user notification
type NotificationType string

const (
	NotificationTypeReward     NotificationType = "reward"
	NotificationTypeCollection NotificationType = "collection"
	NotificationTypeRedemption NotificationType = "redemption"
)

// Notification is a per-user message, polled by clients and marked read
// individually.
type Notification struct {
	ID        int64            `json:"id" db:"id"`
	UserID    int64            `json:"user_id" db:"user_id"`
	Message   string           `json:"message" db:"message"`
	Type      NotificationType `json:"type" db:"type"`
	IsRead    bool             `json:"is_read" db:"is_read"`
	CreatedAt time.Time        `json:"created_at" db:"created_at"`
}
