package dbrepo

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/voltedge/workshop-api/internal/models"
)

// ============================== Expense Repository ==============================
type ExpenseRepo struct {
	db *pgxpool.Pool
}

func NewExpenseRepo(db *pgxpool.Pool) *ExpenseRepo {
	return &ExpenseRepo{db: db}
}

// AddExpense records one shop expense. Date defaults to today, category to
// Shop Expense.
func (r *ExpenseRepo) AddExpense(ctx context.Context, e *models.Expense) error {
	if e.Date == "" {
		e.Date = todayDate()
	}
	if e.Category == "" {
		e.Category = "Shop Expense"
	}
	err := r.db.QueryRow(ctx, `
		INSERT INTO expenses (entry_date, description, amount, category)
		VALUES ($1,$2,$3,$4)
		RETURNING id`,
		e.Date, e.Description, e.Amount, e.Category,
	).Scan(&e.ID)
	if err != nil {
		return fmt.Errorf("insert expense: %w", err)
	}
	return nil
}

// Expenses returns expense records, optionally filtered to one date.
func (r *ExpenseRepo) Expenses(ctx context.Context, date string) ([]*models.Expense, error) {
	sql := `SELECT id, entry_date, description, amount, category FROM expenses`
	var args []any
	if date != "" {
		sql += ` WHERE entry_date = $1`
		args = append(args, date)
	}
	sql += ` ORDER BY id DESC`

	rows, err := r.db.Query(ctx, sql, args...)
	if err != nil {
		return nil, fmt.Errorf("fetch expenses: %w", err)
	}
	defer rows.Close()

	var expenses []*models.Expense
	for rows.Next() {
		var e models.Expense
		if err := rows.Scan(&e.ID, &e.Date, &e.Description, &e.Amount, &e.Category); err != nil {
			return nil, fmt.Errorf("scan expense: %w", err)
		}
		expenses = append(expenses, &e)
	}
	return expenses, rows.Err()
}

// DeleteExpense removes one expense record. Missing ids are a no-op.
func (r *ExpenseRepo) DeleteExpense(ctx context.Context, id int64) error {
	_, err := r.db.Exec(ctx, `DELETE FROM expenses WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete expense: %w", err)
	}
	return nil
}

// DailyCashFlow summarizes one day: cash in is the ledger credits on that
// date, cash out is the expenses. An empty date means today.
func (r *ExpenseRepo) DailyCashFlow(ctx context.Context, date string) (*models.CashFlow, error) {
	if date == "" {
		date = todayDate()
	}

	var cashIn float64
	err := r.db.QueryRow(ctx,
		`SELECT COALESCE(SUM(credit), 0) FROM ledger WHERE entry_date = $1`,
		date,
	).Scan(&cashIn)
	if err != nil {
		return nil, fmt.Errorf("sum ledger credits on %s: %w", date, err)
	}

	var cashOut float64
	err = r.db.QueryRow(ctx,
		`SELECT COALESCE(SUM(amount), 0) FROM expenses WHERE entry_date = $1`,
		date,
	).Scan(&cashOut)
	if err != nil {
		return nil, fmt.Errorf("sum expenses on %s: %w", date, err)
	}

	return &models.CashFlow{
		Date:    date,
		CashIn:  cashIn,
		CashOut: cashOut,
		NetCash: cashIn - cashOut,
	}, nil
}

// MonthlyExpenseBreakdown returns the current month's expenses grouped by
// category.
func (r *ExpenseRepo) MonthlyExpenseBreakdown(ctx context.Context) (map[string]float64, error) {
	month := todayDate()[:7]
	rows, err := r.db.Query(ctx, `
		SELECT category, COALESCE(SUM(amount), 0)
		FROM expenses
		WHERE LEFT(entry_date, 7) = $1
		GROUP BY category`,
		month,
	)
	if err != nil {
		return nil, fmt.Errorf("fetch expense breakdown: %w", err)
	}
	defer rows.Close()

	breakdown := make(map[string]float64)
	for rows.Next() {
		var category string
		var amount float64
		if err := rows.Scan(&category, &amount); err != nil {
			return nil, fmt.Errorf("scan expense breakdown: %w", err)
		}
		breakdown[category] = amount
	}
	return breakdown, rows.Err()
}
