package dbrepo

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/voltedge/workshop-api/internal/models"
)

const (
	dateLayout      = "2006-01-02"
	timestampLayout = "2006-01-02 15:04:05"
)

const (
	maxWriteRetries = 5
	retryBackoff    = 500 * time.Millisecond
)

func todayDate() string {
	return time.Now().Format(dateLayout)
}

// queryer is satisfied by both *pgxpool.Pool and pgx.Tx.
type queryer interface {
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
}

func retryable(err error) bool {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		switch pgErr.Code {
		case "40001", "40P01", "55P03":
			return true
		}
	}
	return false
}

// withRetry runs fn up to maxWriteRetries times with a fixed backoff,
// retrying only transient storage errors (serialization failure, deadlock,
// lock not available). The last error is reported once retries run out and
// the write is abandoned.
func withRetry(ctx context.Context, fn func() error) error {
	var err error
	for attempt := 0; attempt < maxWriteRetries; attempt++ {
		if err = fn(); err == nil || !retryable(err) {
			return err
		}
		select {
		case <-time.After(retryBackoff):
		case <-ctx.Done():
			return ctx.Err()
		}
	}
	return err
}

// addLedgerEntryTx appends one party ledger entry inside an open transaction.
func addLedgerEntryTx(ctx context.Context, tx pgx.Tx, e *models.LedgerEntry) (int64, error) {
	if e.Date == "" {
		e.Date = time.Now().Format(dateLayout)
	}
	var id int64
	err := tx.QueryRow(ctx, `
		INSERT INTO ledger (party_name, entry_date, ref_no, description, debit, credit, quantity, rate, discount)
		VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9)
		RETURNING id`,
		e.PartyName, e.Date, e.RefNo, e.Description, e.Debit, e.Credit, e.Quantity, e.Rate, e.Discount,
	).Scan(&id)
	if err != nil {
		return 0, fmt.Errorf("insert ledger entry: %w", err)
	}
	return id, nil
}

// addEmployeeLedgerEntryTx appends one payroll ledger entry inside an open
// transaction.
func addEmployeeLedgerEntryTx(ctx context.Context, tx pgx.Tx, e *models.EmployeeLedgerEntry) (int64, error) {
	if e.Date == "" {
		e.Date = time.Now().Format(dateLayout)
	}
	var id int64
	err := tx.QueryRow(ctx, `
		INSERT INTO employee_ledger (employee_name, entry_date, entry_type, description, earned, paid)
		VALUES ($1,$2,$3,$4,$5,$6)
		RETURNING id`,
		e.EmployeeName, e.Date, e.Type, e.Description, e.Earned, e.Paid,
	).Scan(&id)
	if err != nil {
		return 0, fmt.Errorf("insert employee ledger entry: %w", err)
	}
	return id, nil
}

// logInventoryChangeTx appends one stock movement to the audit trail.
func logInventoryChangeTx(ctx context.Context, tx pgx.Tx, l *models.InventoryLogEntry) error {
	_, err := tx.Exec(ctx, `
		INSERT INTO inventory_logs (item_id, item_name, change, reason, reference, description)
		VALUES ($1,$2,$3,$4,$5,$6)`,
		l.ItemID, l.ItemName, l.Change, l.Reason, l.Reference, l.Description,
	)
	if err != nil {
		return fmt.Errorf("insert inventory log: %w", err)
	}
	return nil
}

// deductStockTx decrements a stock item's quantity, floored at zero, and logs
// the movement. A missing item is skipped silently: repair parts may
// reference stock that has since been deleted.
func deductStockTx(ctx context.Context, tx pgx.Tx, itemID, qty int64, reason, reference string) error {
	var itemName string
	err := tx.QueryRow(ctx, `
		UPDATE inventory
		SET quantity = GREATEST(quantity - $1, 0)
		WHERE id = $2
		RETURNING item_name`,
		qty, itemID,
	).Scan(&itemName)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil
		}
		return fmt.Errorf("deduct stock for item %d: %w", itemID, err)
	}

	return logInventoryChangeTx(ctx, tx, &models.InventoryLogEntry{
		ItemID:      itemID,
		ItemName:    itemName,
		Change:      -qty,
		Reason:      reason,
		Reference:   reference,
		Description: fmt.Sprintf("Decrease by %d", qty),
	})
}
