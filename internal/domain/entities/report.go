package entities

import (
	"time"
)

// ReportStatus represents the lifecycle state of a report
type ReportStatus string

const (
	ReportStatusPending    ReportStatus = "pending"
	ReportStatusInProgress ReportStatus = "in_progress"
	ReportStatusVerified   ReportStatus = "verified"
	ReportStatusCompleted  ReportStatus = "completed"
)

// validTransitions is the server-side state machine for report statuses.
// The zero-value entry for a status means it is terminal.
var validTransitions = map[ReportStatus][]ReportStatus{
	ReportStatusPending:    {ReportStatusInProgress},
	ReportStatusInProgress: {ReportStatusPending, ReportStatusVerified},
	ReportStatusVerified:   {ReportStatusCompleted},
}

// ValidStatus reports whether s is a known report status
func ValidStatus(s ReportStatus) bool {
	switch s {
	case ReportStatusPending, ReportStatusInProgress, ReportStatusVerified, ReportStatusCompleted:
		return true
	}
	return false
}

// CanTransition reports whether a report may move from one status to another
func CanTransition(from, to ReportStatus) bool {
	for _, next := range validTransitions[from] {
		if next == to {
			return true
		}
	}
	return false
}

// Report represents a user-submitted waste sighting. Once a collector is
// assigned it doubles as a collection task.
type Report struct {
	ID                 int64        `json:"id" db:"id"`
	UserID             int64        `json:"user_id" db:"user_id"`
	Location           string       `json:"location" db:"location"`
	WasteType          string       `json:"waste_type" db:"waste_type"`
	Amount             string       `json:"amount" db:"amount"`
	ImageURL           string       `json:"image_url,omitempty" db:"image_url"`
	VerificationResult string       `json:"verification_result,omitempty" db:"verification_result"`
	Status             ReportStatus `json:"status" db:"status"`
	CollectorID        *int64       `json:"collector_id,omitempty" db:"collector_id"`
	CreatedAt          time.Time    `json:"created_at" db:"created_at"`
}

// TaskFilter narrows task listings
type TaskFilter struct {
	Status ReportStatus
	Limit  int
	Offset int
}
