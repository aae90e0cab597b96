package dbrepo

import (
	"context"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/voltedge/workshop-api/internal/models"
)

// ============================== Purchase Repository ==============================
type PurchaseRepo struct {
	db *pgxpool.Pool
}

func NewPurchaseRepo(db *pgxpool.Pool) *PurchaseRepo {
	return &PurchaseRepo{db: db}
}

// NextPurchaseNumber returns the next free purchase id in the PUR-YYYY-NNN
// sequence for the current year.
func (r *PurchaseRepo) NextPurchaseNumber(ctx context.Context) (string, error) {
	prefix := DocumentPrefix("PUR", currentYear())

	rows, err := r.db.Query(ctx,
		`SELECT purchase_id FROM purchases WHERE purchase_id LIKE $1`,
		prefix+"%",
	)
	if err != nil {
		return "", fmt.Errorf("fetch purchase ids: %w", err)
	}
	defer rows.Close()

	var existing []string
	for rows.Next() {
		var id string
		if err := rows.Scan(&id); err != nil {
			return "", fmt.Errorf("scan purchase id: %w", err)
		}
		existing = append(existing, id)
	}
	if err := rows.Err(); err != nil {
		return "", fmt.Errorf("iterate purchase ids: %w", err)
	}

	return NextDocumentNumber(prefix, existing), nil
}

// RecordPurchase records a supplier purchase: one purchase line per item and
// a single ledger credit for the grand total. The credit raises what we owe
// the supplier.
func (r *PurchaseRepo) RecordPurchase(ctx context.Context, purchaseID, supplierName string, lines []models.PurchaseLine, grandTotal float64) error {
	return withRetry(ctx, func() error {
		tx, err := r.db.Begin(ctx)
		if err != nil {
			return fmt.Errorf("begin tx: %w", err)
		}
		defer tx.Rollback(ctx)

		purchaseDate := time.Now().Format(timestampLayout)
		for _, line := range lines {
			_, err := tx.Exec(ctx, `
				INSERT INTO purchases (purchase_id, supplier_name, item_name, quantity_bought, unit_cost, total_amount, purchase_date)
				VALUES ($1,$2,$3,$4,$5,$6,$7)`,
				purchaseID, supplierName, line.ItemName, line.Qty, line.Rate, line.Total, purchaseDate,
			)
			if err != nil {
				return fmt.Errorf("insert purchase line: %w", err)
			}
		}

		_, err = addLedgerEntryTx(ctx, tx, &models.LedgerEntry{
			PartyName:   supplierName,
			RefNo:       purchaseID,
			Description: "Batch Purchase",
			Credit:      grandTotal,
		})
		if err != nil {
			return err
		}

		return tx.Commit(ctx)
	})
}

// PurchaseItems returns the purchase lines recorded under a document id.
func (r *PurchaseRepo) PurchaseItems(ctx context.Context, purchaseID string) ([]*models.PurchaseRecord, error) {
	rows, err := r.db.Query(ctx, `
		SELECT id, purchase_id, supplier_name, item_name, quantity_bought, unit_cost, total_amount, purchase_date
		FROM purchases
		WHERE purchase_id = $1
		ORDER BY id`,
		purchaseID,
	)
	if err != nil {
		return nil, fmt.Errorf("fetch purchase items: %w", err)
	}
	defer rows.Close()

	var items []*models.PurchaseRecord
	for rows.Next() {
		var p models.PurchaseRecord
		if err := rows.Scan(
			&p.ID, &p.PurchaseID, &p.SupplierName, &p.ItemName,
			&p.QuantityBought, &p.UnitCost, &p.TotalAmount, &p.PurchaseDate,
		); err != nil {
			return nil, fmt.Errorf("scan purchase line: %w", err)
		}
		items = append(items, &p)
	}
	return items, rows.Err()
}

// PurchaseTotalFromLedger recovers a purchase document's billed total from
// its ledger credits.
func (r *PurchaseRepo) PurchaseTotalFromLedger(ctx context.Context, purchaseID string) (float64, error) {
	var total float64
	err := r.db.QueryRow(ctx,
		`SELECT COALESCE(SUM(credit), 0) FROM ledger WHERE ref_no = $1`,
		purchaseID,
	).Scan(&total)
	if err != nil {
		return 0, fmt.Errorf("sum ledger for purchase %s: %w", purchaseID, err)
	}
	return total, nil
}

// CashPaidForPurchase returns the cash paid recorded against a purchase
// document.
func (r *PurchaseRepo) CashPaidForPurchase(ctx context.Context, purchaseID string) (float64, error) {
	var cash float64
	err := r.db.QueryRow(ctx,
		`SELECT COALESCE(SUM(debit), 0) FROM ledger WHERE ref_no = $1 AND description = 'Cash Paid'`,
		purchaseID,
	).Scan(&cash)
	if err != nil {
		return 0, fmt.Errorf("sum cash paid for purchase %s: %w", purchaseID, err)
	}
	return cash, nil
}

// PurchaseIDs returns the distinct purchase document ids on file, newest
// first.
func (r *PurchaseRepo) PurchaseIDs(ctx context.Context) ([]string, error) {
	rows, err := r.db.Query(ctx, `
		SELECT DISTINCT purchase_id FROM purchases WHERE purchase_id <> '' ORDER BY purchase_id DESC`,
	)
	if err != nil {
		return nil, fmt.Errorf("fetch purchase ids: %w", err)
	}
	defer rows.Close()

	var ids []string
	for rows.Next() {
		var id string
		if err := rows.Scan(&id); err != nil {
			return nil, fmt.Errorf("scan purchase id: %w", err)
		}
		ids = append(ids, id)
	}
	return ids, rows.Err()
}
