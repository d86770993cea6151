package entities

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCanTransition(t *testing.T) {
	assert.True(t, CanTransition(ReportStatusPending, ReportStatusInProgress))
	assert.True(t, CanTransition(ReportStatusInProgress, ReportStatusVerified))
	assert.True(t, CanTransition(ReportStatusInProgress, ReportStatusPending))
	assert.True(t, CanTransition(ReportStatusVerified, ReportStatusCompleted))

	// No skipping ahead or moving backwards from terminal states
	assert.False(t, CanTransition(ReportStatusPending, ReportStatusVerified))
	assert.False(t, CanTransition(ReportStatusCompleted, ReportStatusPending))
	assert.False(t, CanTransition(ReportStatusVerified, ReportStatusPending))
	assert.False(t, CanTransition(ReportStatusVerified, ReportStatusVerified))
}

func TestValidStatus(t *testing.T) {
	assert.True(t, ValidStatus(ReportStatusPending))
	assert.True(t, ValidStatus(ReportStatusCompleted))
	assert.False(t, ValidStatus("archived"))
	assert.False(t, ValidStatus(""))
}
