package dbrepo

import (
	"context"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/voltedge/workshop-api/internal/models"
)

// ============================== Sales Repository ==============================
type SaleRepo struct {
	db *pgxpool.Pool
}

func NewSaleRepo(db *pgxpool.Pool) *SaleRepo {
	return &SaleRepo{db: db}
}

// NextInvoiceNumber returns the next free invoice id in the INV-YYYY-NNN
// sequence for the current year.
func (r *SaleRepo) NextInvoiceNumber(ctx context.Context) (string, error) {
	prefix := DocumentPrefix("INV", currentYear())

	rows, err := r.db.Query(ctx,
		`SELECT invoice_id FROM sales WHERE invoice_id LIKE $1`,
		prefix+"%",
	)
	if err != nil {
		return "", fmt.Errorf("fetch invoice ids: %w", err)
	}
	defer rows.Close()

	var existing []string
	for rows.Next() {
		var id string
		if err := rows.Scan(&id); err != nil {
			return "", fmt.Errorf("scan invoice id: %w", err)
		}
		existing = append(existing, id)
	}
	if err := rows.Err(); err != nil {
		return "", fmt.Errorf("iterate invoice ids: %w", err)
	}

	return NextDocumentNumber(prefix, existing), nil
}

func insertSaleRecordTx(ctx context.Context, tx pgx.Tx, s *models.SaleRecord) error {
	_, err := tx.Exec(ctx, `
		INSERT INTO sales (invoice_id, customer_name, item_name, description, quantity_sold,
			sale_price, return_quantity, total_amount, sale_date, txn_type, discount,
			cash_received, cash_paid)
		VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9,$10,$11,$12,$13)`,
		s.InvoiceID, s.CustomerName, s.ItemName, s.Description, s.QuantitySold,
		s.SalePrice, s.ReturnQuantity, s.TotalAmount, s.SaleDate, s.Type, s.Discount,
		s.CashReceived, s.CashPaid,
	)
	if err != nil {
		return fmt.Errorf("insert sale line: %w", err)
	}
	return nil
}

// RecordInvoice records a plain sales invoice: one sale line per item and a
// single ledger debit for the grand total, all linked by the invoice id.
func (r *SaleRepo) RecordInvoice(ctx context.Context, invoiceID, customerName string, lines []models.InvoiceLine, freight, misc, grandTotal float64) error {
	return withRetry(ctx, func() error {
		tx, err := r.db.Begin(ctx)
		if err != nil {
			return fmt.Errorf("begin tx: %w", err)
		}
		defer tx.Rollback(ctx)

		saleDate := time.Now().Format(timestampLayout)
		for _, line := range lines {
			err := insertSaleRecordTx(ctx, tx, &models.SaleRecord{
				InvoiceID:      invoiceID,
				CustomerName:   customerName,
				ItemName:       line.ItemName,
				QuantitySold:   line.Qty,
				SalePrice:      line.Rate,
				ReturnQuantity: line.ReturnQty,
				TotalAmount:    line.Total,
				SaleDate:       saleDate,
				Type:           models.TxnSale,
			})
			if err != nil {
				return err
			}
		}

		desc := fmt.Sprintf("Invoice #%s", invoiceID)
		if freight > 0 || misc > 0 {
			desc += " (Inc. Freight/Misc)"
		}
		_, err = addLedgerEntryTx(ctx, tx, &models.LedgerEntry{
			PartyName:   customerName,
			RefNo:       invoiceID,
			Description: desc,
			Debit:       grandTotal,
		})
		if err != nil {
			return err
		}

		return tx.Commit(ctx)
	})
}

// RecordBatch records a mixed batch document: every non-empty row is kept as
// a sale line for reprints and classified into its ledger postings, all
// linked by the document id. Freight and misc charges are debited as extra
// entries dated today.
func (r *SaleRepo) RecordBatch(ctx context.Context, invoiceID, customerName string, batch []models.BatchRow, freight, misc float64) error {
	return withRetry(ctx, func() error {
		tx, err := r.db.Begin(ctx)
		if err != nil {
			return fmt.Errorf("begin tx: %w", err)
		}
		defer tx.Rollback(ctx)

		for _, row := range batch {
			if rowIsEmpty(row) {
				continue
			}

			// Standalone cash rows get the type as a display label
			itemName := row.ItemName
			if itemName == "" && (row.Type == models.TxnCashReceived || row.Type == models.TxnCashPaid) {
				itemName = row.Type
			}

			err := insertSaleRecordTx(ctx, tx, &models.SaleRecord{
				InvoiceID:    invoiceID,
				CustomerName: customerName,
				ItemName:     itemName,
				Description:  row.Description,
				QuantitySold: row.Qty,
				SalePrice:    row.Rate,
				TotalAmount:  row.Total,
				SaleDate:     row.Date,
				Type:         row.Type,
				Discount:     row.Discount,
				CashReceived: row.CashReceived,
				CashPaid:     row.CashPaid,
			})
			if err != nil {
				return err
			}

			for _, p := range ClassifyRow(row) {
				_, err := addLedgerEntryTx(ctx, tx, &models.LedgerEntry{
					PartyName:   customerName,
					Date:        p.Date,
					RefNo:       invoiceID,
					Description: p.Description,
					Debit:       p.Debit,
					Credit:      p.Credit,
					Quantity:    p.Quantity,
					Rate:        p.Rate,
					Discount:    p.Discount,
				})
				if err != nil {
					return err
				}
			}
		}

		today := todayDate()
		if freight > 0 {
			_, err := addLedgerEntryTx(ctx, tx, &models.LedgerEntry{
				PartyName:   customerName,
				Date:        today,
				RefNo:       invoiceID,
				Description: "Freight",
				Debit:       freight,
			})
			if err != nil {
				return err
			}
		}
		if misc > 0 {
			_, err := addLedgerEntryTx(ctx, tx, &models.LedgerEntry{
				PartyName:   customerName,
				Date:        today,
				RefNo:       invoiceID,
				Description: "Misc/Labor",
				Debit:       misc,
			})
			if err != nil {
				return err
			}
		}

		return tx.Commit(ctx)
	})
}

// InvoiceItems returns the sale lines recorded under a document id.
func (r *SaleRepo) InvoiceItems(ctx context.Context, invoiceID string) ([]*models.SaleRecord, error) {
	rows, err := r.db.Query(ctx, `
		SELECT id, invoice_id, customer_name, item_name, description, quantity_sold,
			sale_price, return_quantity, total_amount, sale_date, txn_type, discount,
			cash_received, cash_paid
		FROM sales
		WHERE invoice_id = $1
		ORDER BY id`,
		invoiceID,
	)
	if err != nil {
		return nil, fmt.Errorf("fetch invoice items: %w", err)
	}
	defer rows.Close()

	var items []*models.SaleRecord
	for rows.Next() {
		var s models.SaleRecord
		if err := rows.Scan(
			&s.ID, &s.InvoiceID, &s.CustomerName, &s.ItemName, &s.Description, &s.QuantitySold,
			&s.SalePrice, &s.ReturnQuantity, &s.TotalAmount, &s.SaleDate, &s.Type, &s.Discount,
			&s.CashReceived, &s.CashPaid,
		); err != nil {
			return nil, fmt.Errorf("scan sale line: %w", err)
		}
		items = append(items, &s)
	}
	return items, rows.Err()
}

// AllSales returns every sale line, newest first.
func (r *SaleRepo) AllSales(ctx context.Context) ([]*models.SaleRecord, error) {
	rows, err := r.db.Query(ctx, `
		SELECT id, invoice_id, customer_name, item_name, description, quantity_sold,
			sale_price, return_quantity, total_amount, sale_date, txn_type, discount,
			cash_received, cash_paid
		FROM sales
		ORDER BY id DESC`,
	)
	if err != nil {
		return nil, fmt.Errorf("fetch sales: %w", err)
	}
	defer rows.Close()

	var sales []*models.SaleRecord
	for rows.Next() {
		var s models.SaleRecord
		if err := rows.Scan(
			&s.ID, &s.InvoiceID, &s.CustomerName, &s.ItemName, &s.Description, &s.QuantitySold,
			&s.SalePrice, &s.ReturnQuantity, &s.TotalAmount, &s.SaleDate, &s.Type, &s.Discount,
			&s.CashReceived, &s.CashPaid,
		); err != nil {
			return nil, fmt.Errorf("scan sale line: %w", err)
		}
		sales = append(sales, &s)
	}
	return sales, rows.Err()
}

// InvoiceIDs returns the distinct document ids on file, newest first, for
// the reprint picker.
func (r *SaleRepo) InvoiceIDs(ctx context.Context) ([]string, error) {
	rows, err := r.db.Query(ctx, `
		SELECT DISTINCT invoice_id FROM sales WHERE invoice_id <> '' ORDER BY invoice_id DESC`,
	)
	if err != nil {
		return nil, fmt.Errorf("fetch invoice ids: %w", err)
	}
	defer rows.Close()

	var ids []string
	for rows.Next() {
		var id string
		if err := rows.Scan(&id); err != nil {
			return nil, fmt.Errorf("scan invoice id: %w", err)
		}
		ids = append(ids, id)
	}
	return ids, rows.Err()
}
