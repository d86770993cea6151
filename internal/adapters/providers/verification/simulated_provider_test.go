package verification_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/greencycle/greencycle/backend/internal/adapters/providers/verification"
	"github.com/greencycle/greencycle/backend/internal/domain/entities"
)

func TestSimulatedVerifier_AnalyzeWaste_Deterministic(t *testing.T) {
	verifier := verification.NewSimulatedVerifier(0, 0)

	first, err := verifier.AnalyzeWaste(context.Background(), "data:image/jpeg;base64,abcdef")
	require.NoError(t, err)

	second, err := verifier.AnalyzeWaste(context.Background(), "data:image/jpeg;base64,abcdef")
	require.NoError(t, err)

	assert.Equal(t, first, second)
	assert.NotEmpty(t, first.WasteType)
	assert.NotEmpty(t, first.Quantity)
	assert.Greater(t, first.Confidence, 0)
}

func TestSimulatedVerifier_AnalyzeWaste_HonorsCancellation(t *testing.T) {
	verifier := verification.NewSimulatedVerifier(time.Minute, 0)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := verifier.AnalyzeWaste(ctx, "image")
	assert.ErrorIs(t, err, context.Canceled)
}

func TestSimulatedVerifier_ConfirmCollection(t *testing.T) {
	verifier := verification.NewSimulatedVerifier(0, 0)
	report := &entities.Report{ID: 1, WasteType: "Plastic Bottles", Amount: "2 kg"}

	for i := 0; i < 20; i++ {
		result, err := verifier.ConfirmCollection(context.Background(), report)
		require.NoError(t, err)
		assert.True(t, result.WasteTypeMatch)
		assert.True(t, result.QuantityMatch)
		assert.GreaterOrEqual(t, result.Confidence, 85)
		assert.LessOrEqual(t, result.Confidence, 94)
	}
}

func TestSimulatedVerifier_ConfirmCollection_HonorsCancellation(t *testing.T) {
	verifier := verification.NewSimulatedVerifier(0, time.Minute)

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Millisecond)
	defer cancel()

	_, err := verifier.ConfirmCollection(ctx, &entities.Report{ID: 1})
	assert.ErrorIs(t, err, context.DeadlineExceeded)
}
