package repositories

import (
	"context"

	"github.com/greencycle/greencycle/backend/internal/domain/entities"
)

// TransactionRepository defines read access to the append-only
// transaction log
type TransactionRepository interface {
	// ListByUser retrieves a user's most recent transactions, newest first
	ListByUser(ctx context.Context, userID int64, limit int) ([]*entities.Transaction, error)
}
