package entities

import (
	"time"
)

// TransactionType classifies a point-affecting event
type TransactionType string

const (
	TransactionEarnedReport  TransactionType = "earned_report"
	TransactionEarnedCollect TransactionType = "earned_collect"
	TransactionRedeemed      TransactionType = "redeemed"
)

// Transaction is an append-only log entry for a point-affecting event.
// Rows are never mutated or deleted.
type Transaction struct {
	ID          int64           `json:"id" db:"id"`
	UserID      int64           `json:"user_id" db:"user_id"`
	Type        TransactionType `json:"type" db:"type"`
	Amount      float64         `json:"amount" db:"amount"`
	Description string          `json:"description" db:"description"`
	Date        time.Time       `json:"date" db:"date"`
}
