package dbrepo

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/voltedge/workshop-api/internal/models"
)

// ============================== Ledger Repository ==============================
//
// The shared party ledger behind customers and suppliers. The directory
// opening balance is folded in here and nowhere else: GetEntries prepends a
// synthetic opening row, Balance adds the same amount once. Aggregators must
// not add it again.
type LedgerRepo struct {
	db *pgxpool.Pool
}

func NewLedgerRepo(db *pgxpool.Pool) *LedgerRepo {
	return &LedgerRepo{db: db}
}

// AddEntry appends one entry. An empty date defaults to today.
func (r *LedgerRepo) AddEntry(ctx context.Context, e *models.LedgerEntry) error {
	return withRetry(ctx, func() error {
		tx, err := r.db.Begin(ctx)
		if err != nil {
			return fmt.Errorf("begin tx: %w", err)
		}
		defer tx.Rollback(ctx)

		id, err := addLedgerEntryTx(ctx, tx, e)
		if err != nil {
			return err
		}
		e.ID = id

		return tx.Commit(ctx)
	})
}

// openingBalance reads the directory opening balance for a party, matching
// the name case-insensitively. Parties without a directory record have an
// opening balance of zero.
func openingBalance(ctx context.Context, q queryer, party string) (float64, error) {
	var opening float64
	err := q.QueryRow(ctx,
		`SELECT opening_balance FROM customers WHERE LOWER(name) = LOWER($1) ORDER BY id LIMIT 1`,
		party,
	).Scan(&opening)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return 0, nil
		}
		return 0, fmt.Errorf("fetch opening balance: %w", err)
	}
	return opening, nil
}

// openingEntry builds the synthetic opening-balance row. Positive balances
// are carried as a debit, negative as a credit. Never persisted.
func openingEntry(party string, opening float64) *models.LedgerEntry {
	e := &models.LedgerEntry{
		PartyName:   party,
		Date:        "Old Khata",
		Description: "Opening Balance (B/F)",
	}
	if opening > 0 {
		e.Debit = opening
	} else {
		e.Credit = -opening
	}
	return e
}

// GetEntries returns all entries for a party in id order, with the synthetic
// opening-balance entry prepended when the directory carries a non-zero
// opening balance.
func (r *LedgerRepo) GetEntries(ctx context.Context, party string) ([]*models.LedgerEntry, error) {
	rows, err := r.db.Query(ctx, `
		SELECT id, party_name, entry_date, ref_no, description, debit, credit, quantity, rate, discount
		FROM ledger
		WHERE party_name = $1
		ORDER BY id`,
		party,
	)
	if err != nil {
		return nil, fmt.Errorf("fetch ledger entries: %w", err)
	}
	defer rows.Close()

	var entries []*models.LedgerEntry
	for rows.Next() {
		var e models.LedgerEntry
		if err := rows.Scan(
			&e.ID, &e.PartyName, &e.Date, &e.RefNo, &e.Description,
			&e.Debit, &e.Credit, &e.Quantity, &e.Rate, &e.Discount,
		); err != nil {
			return nil, fmt.Errorf("scan ledger entry: %w", err)
		}
		entries = append(entries, &e)
	}
	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate ledger entries: %w", err)
	}

	opening, err := openingBalance(ctx, r.db, party)
	if err != nil {
		return nil, err
	}
	if opening != 0 {
		entries = append([]*models.LedgerEntry{openingEntry(party, opening)}, entries...)
	}

	return entries, nil
}

// DeleteEntry removes one entry by id. No reversal entry is generated; a
// missing id is a no-op.
func (r *LedgerRepo) DeleteEntry(ctx context.Context, id int64) error {
	_, err := r.db.Exec(ctx, `DELETE FROM ledger WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete ledger entry: %w", err)
	}
	return nil
}

// Balance returns sum(debit) - sum(credit) for a party plus its directory
// opening balance. Positive means the party owes us.
func (r *LedgerRepo) Balance(ctx context.Context, party string) (float64, error) {
	var debit, credit float64
	err := r.db.QueryRow(ctx, `
		SELECT COALESCE(SUM(debit), 0), COALESCE(SUM(credit), 0)
		FROM ledger
		WHERE party_name = $1`,
		party,
	).Scan(&debit, &credit)
	if err != nil {
		return 0, fmt.Errorf("sum ledger: %w", err)
	}

	opening, err := openingBalance(ctx, r.db, party)
	if err != nil {
		return 0, err
	}

	return debit - credit + opening, nil
}

// ListParties returns every party known to the system: ledger names, repair
// clients and directory names, deduplicated and sorted.
func (r *LedgerRepo) ListParties(ctx context.Context) ([]string, error) {
	rows, err := r.db.Query(ctx, `
		SELECT party_name FROM ledger
		UNION
		SELECT client_name FROM repairs
		UNION
		SELECT name FROM customers
		ORDER BY 1`,
	)
	if err != nil {
		return nil, fmt.Errorf("list parties: %w", err)
	}
	defer rows.Close()

	var parties []string
	for rows.Next() {
		var name string
		if err := rows.Scan(&name); err != nil {
			return nil, fmt.Errorf("scan party name: %w", err)
		}
		if name != "" {
			parties = append(parties, name)
		}
	}
	return parties, rows.Err()
}

// Statement returns the party's full ledger shaped for the document
// renderer: every row with its running balance plus the closing balance.
func (r *LedgerRepo) Statement(ctx context.Context, party string) (*models.Statement, error) {
	entries, err := r.GetEntries(ctx, party)
	if err != nil {
		return nil, err
	}
	return BuildStatement(party, entries), nil
}

// NetForRef returns sum(debit) - sum(credit) over the entries linked to a
// document, used to recover an invoice's billed total on reprint.
func (r *LedgerRepo) NetForRef(ctx context.Context, refNo string) (float64, error) {
	var net float64
	err := r.db.QueryRow(ctx,
		`SELECT COALESCE(SUM(debit - credit), 0) FROM ledger WHERE ref_no = $1`,
		refNo,
	).Scan(&net)
	if err != nil {
		return 0, fmt.Errorf("sum ledger for ref %s: %w", refNo, err)
	}
	return net, nil
}

// CashReceivedForRef returns the cash received recorded against a document.
func (r *LedgerRepo) CashReceivedForRef(ctx context.Context, refNo string) (float64, error) {
	var cash float64
	err := r.db.QueryRow(ctx,
		`SELECT COALESCE(SUM(credit), 0) FROM ledger WHERE ref_no = $1 AND description = 'Cash Received'`,
		refNo,
	).Scan(&cash)
	if err != nil {
		return 0, fmt.Errorf("sum cash received for ref %s: %w", refNo, err)
	}
	return cash, nil
}

// CreditsOn returns the total credits posted on a given date, the ledger's
// contribution to the daily cash flow.
func (r *LedgerRepo) CreditsOn(ctx context.Context, date string) (float64, error) {
	if date == "" {
		date = time.Now().Format(dateLayout)
	}
	var credits float64
	err := r.db.QueryRow(ctx,
		`SELECT COALESCE(SUM(credit), 0) FROM ledger WHERE entry_date = $1`,
		date,
	).Scan(&credits)
	if err != nil {
		return 0, fmt.Errorf("sum credits on %s: %w", date, err)
	}
	return credits, nil
}
