package database

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/doug-martin/goqu/v9"
	_ "github.com/doug-martin/goqu/v9/dialect/postgres"
	"github.com/doug-martin/goqu/v9/exp"
	"github.com/greencycle/greencycle/backend/internal/domain/entities"
	"github.com/greencycle/greencycle/backend/internal/domain/repositories"
	"github.com/greencycle/greencycle/backend/internal/infrastructure/clients/postgres"
	apperrors "github.com/greencycle/greencycle/backend/pkg/errors"
)

// LedgerAdapter implements the LedgerRepository interface. Every method
// runs its writes inside a single transaction.
type LedgerAdapter struct {
	client *postgres.Client
	db     *goqu.Database
}

// NewLedgerAdapter creates a new ledger adapter
func NewLedgerAdapter(client *postgres.Client) repositories.LedgerRepository {
	return &LedgerAdapter{
		client: client,
		db:     goqu.New("postgres", client.DB()),
	}
}

// CreateReport inserts the report and credits the submission award in one
// transaction
func (a *LedgerAdapter) CreateReport(ctx context.Context, report *entities.Report, award float64, notifMessage string) (*entities.Report, float64, error) {
	tx, err := a.client.BeginTx(ctx)
	if err != nil {
		return nil, 0, apperrors.NewInternalError("failed to begin transaction", err)
	}
	defer tx.Rollback()

	now := time.Now()
	report.Status = entities.ReportStatusPending
	report.CreatedAt = now

	query, args, err := a.db.Insert("reports").Rows(goqu.Record{
		"user_id":             report.UserID,
		"location":            report.Location,
		"waste_type":          report.WasteType,
		"amount":              report.Amount,
		"image_url":           report.ImageURL,
		"verification_result": report.VerificationResult,
		"status":              report.Status,
		"created_at":          report.CreatedAt,
	}).Returning("id").ToSQL()
	if err != nil {
		return nil, 0, apperrors.NewInternalError("failed to build report insert query", err)
	}

	if err := tx.QueryRowContext(ctx, query, args...).Scan(&report.ID); err != nil {
		return nil, 0, apperrors.NewInternalError("failed to create report", err)
	}

	balance, err := a.credit(ctx, tx, report.UserID, award)
	if err != nil {
		return nil, 0, err
	}

	if err := a.appendTransaction(ctx, tx, report.UserID, entities.TransactionEarnedReport, award, "Points earned for reporting waste"); err != nil {
		return nil, 0, err
	}

	if err := a.appendNotification(ctx, tx, report.UserID, notifMessage, entities.NotificationTypeReward); err != nil {
		return nil, 0, err
	}

	if err := tx.Commit(); err != nil {
		return nil, 0, apperrors.NewInternalError("failed to commit report creation", err)
	}

	return report, balance, nil
}

// VerifyCollection transitions the report to verified and credits the
// collector in one transaction. The guarded update makes repeat calls fail
// with a conflict instead of awarding twice.
func (a *LedgerAdapter) VerifyCollection(ctx context.Context, reportID, collectorID int64, award float64, verification string) (*entities.CollectedWaste, float64, error) {
	tx, err := a.client.BeginTx(ctx)
	if err != nil {
		return nil, 0, apperrors.NewInternalError("failed to begin transaction", err)
	}
	defer tx.Rollback()

	query, args, err := a.db.Update("reports").
		Set(goqu.Record{
			"status":              entities.ReportStatusVerified,
			"verification_result": verification,
		}).
		Where(goqu.Ex{
			"id":           reportID,
			"status":       entities.ReportStatusInProgress,
			"collector_id": collectorID,
		}).
		ToSQL()
	if err != nil {
		return nil, 0, apperrors.NewInternalError("failed to build verification update query", err)
	}

	result, err := tx.ExecContext(ctx, query, args...)
	if err != nil {
		return nil, 0, apperrors.NewInternalError("failed to verify report", err)
	}
	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return nil, 0, apperrors.NewInternalError("failed to get rows affected", err)
	}
	if rowsAffected == 0 {
		return nil, 0, apperrors.NewConflictError(fmt.Sprintf("report %d is not in progress under collector %d", reportID, collectorID))
	}

	collected := &entities.CollectedWaste{
		ReportID:       reportID,
		CollectorID:    collectorID,
		CollectionDate: time.Now(),
		Status:         entities.CollectedWasteStatusVerified,
	}

	query, args, err = a.db.Insert("collected_wastes").Rows(goqu.Record{
		"report_id":       collected.ReportID,
		"collector_id":    collected.CollectorID,
		"collection_date": collected.CollectionDate,
		"status":          collected.Status,
	}).Returning("id").ToSQL()
	if err != nil {
		return nil, 0, apperrors.NewInternalError("failed to build collected waste insert query", err)
	}

	if err := tx.QueryRowContext(ctx, query, args...).Scan(&collected.ID); err != nil {
		return nil, 0, apperrors.NewInternalError("failed to record collected waste", err)
	}

	balance, err := a.credit(ctx, tx, collectorID, award)
	if err != nil {
		return nil, 0, err
	}

	if err := a.appendTransaction(ctx, tx, collectorID, entities.TransactionEarnedCollect, award, "Points earned for collecting waste"); err != nil {
		return nil, 0, err
	}

	message := fmt.Sprintf("You earned %.1f points for verifying a waste collection!", award)
	if err := a.appendNotification(ctx, tx, collectorID, message, entities.NotificationTypeCollection); err != nil {
		return nil, 0, err
	}

	if err := tx.Commit(); err != nil {
		return nil, 0, apperrors.NewInternalError("failed to commit collection verification", err)
	}

	return collected, balance, nil
}

// Redeem deducts a redemption from the user's balance in one transaction
func (a *LedgerAdapter) Redeem(ctx context.Context, userID, rewardID int64) (float64, error) {
	tx, err := a.client.BeginTx(ctx)
	if err != nil {
		return 0, apperrors.NewInternalError("failed to begin transaction", err)
	}
	defer tx.Rollback()

	balance, err := a.lockLedger(ctx, tx, userID)
	if err != nil {
		return 0, err
	}

	var amount float64
	var description string

	if rewardID == 0 {
		if balance <= 0 {
			return 0, apperrors.NewValidationError("no points available to redeem")
		}
		amount = balance
		description = "Redeemed all points"
	} else {
		catalog, err := a.catalogRow(ctx, tx, rewardID)
		if err != nil {
			return 0, err
		}
		if balance < catalog.Points {
			return 0, apperrors.NewValidationError("insufficient points for this reward")
		}
		amount = catalog.Points
		description = fmt.Sprintf("Redeemed: %s", catalog.Name)
	}

	newBalance, err := a.credit(ctx, tx, userID, -amount)
	if err != nil {
		return 0, err
	}

	if err := a.appendTransaction(ctx, tx, userID, entities.TransactionRedeemed, amount, description); err != nil {
		return 0, err
	}

	message := fmt.Sprintf("You have successfully redeemed %.1f points!", amount)
	if err := a.appendNotification(ctx, tx, userID, message, entities.NotificationTypeRedemption); err != nil {
		return 0, err
	}

	if err := tx.Commit(); err != nil {
		return 0, apperrors.NewInternalError("failed to commit redemption", err)
	}

	return newBalance, nil
}

// credit adjusts the user's ledger row by delta and returns the new
// balance, creating the row when the user has never earned points
func (a *LedgerAdapter) credit(ctx context.Context, tx *sql.Tx, userID int64, delta float64) (float64, error) {
	now := time.Now()
	query, args, err := a.db.Insert("rewards").Rows(goqu.Record{
		"user_id":         userID,
		"points":          delta,
		"level":           1,
		"is_available":    true,
		"name":            "Default Reward",
		"collection_info": "Default Collection Info",
		"created_at":      now,
		"updated_at":      now,
	}).OnConflict(goqu.DoUpdate("user_id", goqu.Record{
		"points":     goqu.L("rewards.points + ?", delta),
		"updated_at": now,
	})).Returning("points").ToSQL()
	if err != nil {
		return 0, apperrors.NewInternalError("failed to build ledger update query", err)
	}

	var balance float64
	if err := tx.QueryRowContext(ctx, query, args...).Scan(&balance); err != nil {
		return 0, apperrors.NewInternalError("failed to update point balance", err)
	}

	return balance, nil
}

// lockLedger reads the user's balance under FOR UPDATE so concurrent
// redemptions serialize
func (a *LedgerAdapter) lockLedger(ctx context.Context, tx *sql.Tx, userID int64) (float64, error) {
	query, args, err := a.db.Select("points").
		From("rewards").
		Where(goqu.Ex{"user_id": userID}).
		ForUpdate(exp.Wait).
		ToSQL()
	if err != nil {
		return 0, apperrors.NewInternalError("failed to build ledger lock query", err)
	}

	var balance float64
	err = tx.QueryRowContext(ctx, query, args...).Scan(&balance)
	if err == sql.ErrNoRows {
		return 0, nil
	}
	if err != nil {
		return 0, apperrors.NewInternalError("failed to read point balance", err)
	}

	return balance, nil
}

func (a *LedgerAdapter) catalogRow(ctx context.Context, tx *sql.Tx, rewardID int64) (*entities.Reward, error) {
	query, args, err := a.db.Select("id", "points", "name").
		From("rewards").
		Where(goqu.Ex{"id": rewardID, "is_available": true}).
		ToSQL()
	if err != nil {
		return nil, apperrors.NewInternalError("failed to build catalog query", err)
	}

	reward := &entities.Reward{}
	err = tx.QueryRowContext(ctx, query, args...).Scan(&reward.ID, &reward.Points, &reward.Name)
	if err == sql.ErrNoRows {
		return nil, apperrors.NewNotFoundError(fmt.Sprintf("reward with id %d not found", rewardID))
	}
	if err != nil {
		return nil, apperrors.NewInternalError("failed to get reward", err)
	}

	return reward, nil
}

func (a *LedgerAdapter) appendTransaction(ctx context.Context, tx *sql.Tx, userID int64, txType entities.TransactionType, amount float64, description string) error {
	query, args, err := a.db.Insert("transactions").Rows(goqu.Record{
		"user_id":     userID,
		"type":        txType,
		"amount":      amount,
		"description": description,
		"date":        time.Now(),
	}).ToSQL()
	if err != nil {
		return apperrors.NewInternalError("failed to build transaction insert query", err)
	}

	if _, err := tx.ExecContext(ctx, query, args...); err != nil {
		return apperrors.NewInternalError("failed to append transaction", err)
	}

	return nil
}

func (a *LedgerAdapter) appendNotification(ctx context.Context, tx *sql.Tx, userID int64, message string, notifType entities.NotificationType) error {
	query, args, err := a.db.Insert("notifications").Rows(goqu.Record{
		"user_id":    userID,
		"message":    message,
		"type":       notifType,
		"is_read":    false,
		"created_at": time.Now(),
	}).ToSQL()
	if err != nil {
		return apperrors.NewInternalError("failed to build notification insert query", err)
	}

	if _, err := tx.ExecContext(ctx, query, args...); err != nil {
		return apperrors.NewInternalError("failed to create notification", err)
	}

	return nil
}
