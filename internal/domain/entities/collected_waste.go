package entities

import (
	"time"
)

// CollectedWasteStatus is the state of a collection record
type CollectedWasteStatus string

const (
	CollectedWasteStatusCollected CollectedWasteStatus = "collected"
	CollectedWasteStatusVerified  CollectedWasteStatus = "verified"
)

// CollectedWaste records a collector completing verification of a report
type CollectedWaste struct {
	ID             int64                `json:"id" db:"id"`
	ReportID       int64                `json:"report_id" db:"report_id"`
	CollectorID    int64                `json:"collector_id" db:"collector_id"`
	CollectionDate time.Time            `json:"collection_date" db:"collection_date"`
	Status         CollectedWasteStatus `json:"status" db:"status"`
}
