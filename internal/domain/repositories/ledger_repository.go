package repositories

import (
	"context"

	"github.com/greencycle/greencycle/backend/internal/domain/entities"
)

// LedgerRepository groups every point-affecting write. Each method runs
// its side effects inside a single database transaction so the ledger,
// the transaction log and any derived rows can never drift apart.
type LedgerRepository interface {
	// CreateReport inserts the report, credits the fixed submission award,
	// appends the earned_report transaction and the unread notification,
	// all or nothing. Returns the stored report and the new balance.
	CreateReport(ctx context.Context, report *entities.Report, award float64, notifMessage string) (*entities.Report, float64, error)

	// VerifyCollection moves the report from in_progress to verified for
	// the claiming collector, records the collected waste, credits the
	// collection award and appends the earned_collect transaction. Fails
	// with a conflict when the report is not in_progress under this
	// collector, so repeated calls cannot double-award.
	VerifyCollection(ctx context.Context, reportID, collectorID int64, award float64, verification string) (*entities.CollectedWaste, float64, error)

	// Redeem deducts a redemption from the user's balance and appends the
	// redeemed transaction. rewardID 0 redeems the entire balance and is
	// rejected when the balance is zero; any other ID deducts that catalog
	// row's cost and is rejected when the balance cannot cover it.
	Redeem(ctx context.Context, userID, rewardID int64) (float64, error)
}
