package providers

import (
	"context"

	"github.com/greencycle/greencycle/backend/internal/domain/entities"
)

// WasteVerifier performs the verification steps of the reporting and
// collection flows. The shipped implementation is simulated; the
// interface leaves room for a real vision model later.
type WasteVerifier interface {
	// AnalyzeWaste inspects a submitted image reference and estimates
	// waste type and quantity
	AnalyzeWaste(ctx context.Context, imageRef string) (*entities.WasteAnalysis, error)

	// ConfirmCollection checks a collected pile against its report
	ConfirmCollection(ctx context.Context, report *entities.Report) (*entities.CollectionVerification, error)
}
