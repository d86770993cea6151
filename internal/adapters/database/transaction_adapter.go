package database

import (
	"context"

	"github.com/doug-martin/goqu/v9"
	_ "github.com/doug-martin/goqu/v9/dialect/postgres"
	"github.com/greencycle/greencycle/backend/internal/domain/entities"
	"github.com/greencycle/greencycle/backend/internal/domain/repositories"
	"github.com/greencycle/greencycle/backend/internal/infrastructure/clients/postgres"
	apperrors "github.com/greencycle/greencycle/backend/pkg/errors"
)

// TransactionAdapter implements the TransactionRepository interface
type TransactionAdapter struct {
	client *postgres.Client
	db     *goqu.Database
}

// NewTransactionAdapter creates a new transaction adapter
func NewTransactionAdapter(client *postgres.Client) repositories.TransactionRepository {
	return &TransactionAdapter{
		client: client,
		db:     goqu.New("postgres", client.DB()),
	}
}

// ListByUser retrieves the user's most recent transactions, newest first
func (a *TransactionAdapter) ListByUser(ctx context.Context, userID int64, limit int) ([]*entities.Transaction, error) {
	ds := a.db.Select("id", "user_id", "type", "amount", "description", "date").
		From("transactions").
		Where(goqu.Ex{"user_id": userID}).
		Order(goqu.I("date").Desc())
	if limit > 0 {
		ds = ds.Limit(uint(limit))
	}

	query, args, err := ds.ToSQL()
	if err != nil {
		return nil, apperrors.NewInternalError("failed to build transaction query", err)
	}

	rows, err := a.client.DB().QueryContext(ctx, query, args...)
	if err != nil {
		return nil, apperrors.NewInternalError("failed to list transactions", err)
	}
	defer rows.Close()

	var transactions []*entities.Transaction
	for rows.Next() {
		t := &entities.Transaction{}
		err := rows.Scan(&t.ID, &t.UserID, &t.Type, &t.Amount, &t.Description, &t.Date)
		if err != nil {
			return nil, apperrors.NewInternalError("failed to scan transaction", err)
		}
		transactions = append(transactions, t)
	}

	return transactions, rows.Err()
}
