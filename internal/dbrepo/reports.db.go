package dbrepo

import (
	"context"
	"fmt"
	"math"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/voltedge/workshop-api/internal/models"
)

// ============================== Report Repository ==============================
type ReportRepo struct {
	db *pgxpool.Pool
}

func NewReportRepo(db *pgxpool.Pool) *ReportRepo {
	return &ReportRepo{db: db}
}

// Workload returns the number of not-yet-delivered jobs per assignee.
func (r *ReportRepo) Workload(ctx context.Context) ([]*models.EmployeeWorkload, error) {
	rows, err := r.db.Query(ctx, `
		SELECT assigned_to, COUNT(*)
		FROM repairs
		WHERE status <> $1 AND assigned_to <> ''
		GROUP BY assigned_to
		ORDER BY COUNT(*) DESC`,
		models.RepairStatusDelivered,
	)
	if err != nil {
		return nil, fmt.Errorf("fetch workload: %w", err)
	}
	defer rows.Close()

	var workload []*models.EmployeeWorkload
	for rows.Next() {
		var w models.EmployeeWorkload
		if err := rows.Scan(&w.AssignedTo, &w.ActiveJobs); err != nil {
			return nil, fmt.Errorf("scan workload: %w", err)
		}
		workload = append(workload, &w)
	}
	return workload, rows.Err()
}

// Performance summarizes delivered jobs per assignee with an on-time rate in
// percent, rounded to one decimal.
func (r *ReportRepo) Performance(ctx context.Context) ([]*models.EmployeePerformance, error) {
	rows, err := r.db.Query(ctx, `
		SELECT assigned_to, COUNT(*), COALESCE(SUM(is_late), 0)
		FROM repairs
		WHERE status = $1 AND assigned_to <> ''
		GROUP BY assigned_to
		ORDER BY COUNT(*) DESC`,
		models.RepairStatusDelivered,
	)
	if err != nil {
		return nil, fmt.Errorf("fetch performance: %w", err)
	}
	defer rows.Close()

	var report []*models.EmployeePerformance
	for rows.Next() {
		var p models.EmployeePerformance
		if err := rows.Scan(&p.AssignedTo, &p.TotalCompleted, &p.TotalLate); err != nil {
			return nil, fmt.Errorf("scan performance: %w", err)
		}
		if p.TotalCompleted > 0 {
			rate := float64(p.TotalCompleted-p.TotalLate) / float64(p.TotalCompleted) * 100
			p.OnTimeRate = math.Round(rate*10) / 10
		}
		report = append(report, &p)
	}
	return report, rows.Err()
}

// Revenue returns delivered-job revenue: all time and the current month,
// matched on the completion date prefix.
func (r *ReportRepo) Revenue(ctx context.Context) (*models.RevenueTotals, error) {
	month := time.Now().Format("2006-01")
	var totals models.RevenueTotals
	err := r.db.QueryRow(ctx, `
		SELECT COALESCE(SUM(total_cost), 0),
		       COALESCE(SUM(total_cost) FILTER (WHERE completion_date LIKE $2), 0)
		FROM repairs
		WHERE status = $1`,
		models.RepairStatusDelivered, month+"%",
	).Scan(&totals.Total, &totals.Monthly)
	if err != nil {
		return nil, fmt.Errorf("sum revenue: %w", err)
	}
	return &totals, nil
}

// PartsVsService splits delivered-job billing between parts and service.
func (r *ReportRepo) PartsVsService(ctx context.Context) (*models.CostSplit, error) {
	var split models.CostSplit
	err := r.db.QueryRow(ctx, `
		SELECT COALESCE(SUM(parts_cost), 0), COALESCE(SUM(service_cost), 0)
		FROM repairs
		WHERE status = $1`,
		models.RepairStatusDelivered,
	).Scan(&split.Parts, &split.Service)
	if err != nil {
		return nil, fmt.Errorf("sum cost split: %w", err)
	}
	return &split, nil
}

// SalesTrend returns the daily sales totals over the last N days. Sale dates
// may carry a time component, so grouping is on the date prefix.
func (r *ReportRepo) SalesTrend(ctx context.Context, days int) ([]*models.TrendPoint, error) {
	if days <= 0 {
		days = 30
	}
	cutoff := time.Now().AddDate(0, 0, -days).Format(dateLayout)

	rows, err := r.db.Query(ctx, `
		SELECT LEFT(sale_date, 10), COALESCE(SUM(total_amount), 0)
		FROM sales
		WHERE LEFT(sale_date, 10) >= $1
		GROUP BY LEFT(sale_date, 10)
		ORDER BY LEFT(sale_date, 10)`,
		cutoff,
	)
	if err != nil {
		return nil, fmt.Errorf("fetch sales trend: %w", err)
	}
	defer rows.Close()

	var trend []*models.TrendPoint
	for rows.Next() {
		var p models.TrendPoint
		if err := rows.Scan(&p.Date, &p.TotalAmount); err != nil {
			return nil, fmt.Errorf("scan trend point: %w", err)
		}
		trend = append(trend, &p)
	}
	return trend, rows.Err()
}

// RecoveryList assembles the customer recovery report from the directory,
// the ledger, the sales history and the stock catalog.
func (r *ReportRepo) RecoveryList(ctx context.Context) ([]*models.RecoveryRow, error) {
	customers, err := NewCustomerRepo(r.db).GetCustomers(ctx)
	if err != nil {
		return nil, err
	}

	ledger, err := r.allLedgerEntries(ctx)
	if err != nil {
		return nil, err
	}

	sales, err := NewSaleRepo(r.db).AllSales(ctx)
	if err != nil {
		return nil, err
	}

	inventory, err := NewInventoryRepo(r.db).GetInventory(ctx)
	if err != nil {
		return nil, err
	}

	return BuildRecoveryList(customers, ledger, sales, inventory), nil
}

func (r *ReportRepo) allLedgerEntries(ctx context.Context) ([]*models.LedgerEntry, error) {
	rows, err := r.db.Query(ctx, `
		SELECT id, party_name, entry_date, ref_no, description, debit, credit, quantity, rate, discount
		FROM ledger
		ORDER BY id`,
	)
	if err != nil {
		return nil, fmt.Errorf("fetch ledger: %w", err)
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
	return entries, rows.Err()
}
