package dbrepo

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/voltedge/workshop-api/internal/models"
)

// ============================== Employee Repository ==============================
type EmployeeRepo struct {
	db *pgxpool.Pool
}

func NewEmployeeRepo(db *pgxpool.Pool) *EmployeeRepo {
	return &EmployeeRepo{db: db}
}

// AddEmployee inserts a staff record. Password must already be hashed.
func (r *EmployeeRepo) AddEmployee(ctx context.Context, e *models.Employee) error {
	err := r.db.QueryRow(ctx, `
		INSERT INTO employees (name, role, phone, salary, cnic, username, password)
		VALUES ($1,$2,$3,$4,$5,$6,$7)
		RETURNING id, created_at`,
		e.Name, e.Role, e.Phone, e.Salary, e.CNIC, e.Username, e.Password,
	).Scan(&e.ID, &e.CreatedAt)
	if err != nil {
		return fmt.Errorf("insert employee: %w", err)
	}
	return nil
}

func (r *EmployeeRepo) GetEmployees(ctx context.Context) ([]*models.Employee, error) {
	rows, err := r.db.Query(ctx, `
		SELECT id, name, role, phone, salary, cnic, username, password, created_at
		FROM employees
		ORDER BY name`,
	)
	if err != nil {
		return nil, fmt.Errorf("fetch employees: %w", err)
	}
	defer rows.Close()

	var employees []*models.Employee
	for rows.Next() {
		var e models.Employee
		if err := rows.Scan(
			&e.ID, &e.Name, &e.Role, &e.Phone, &e.Salary,
			&e.CNIC, &e.Username, &e.Password, &e.CreatedAt,
		); err != nil {
			return nil, fmt.Errorf("scan employee: %w", err)
		}
		employees = append(employees, &e)
	}
	return employees, rows.Err()
}

// EmployeeNames returns the staff names for job assignment pickers.
func (r *EmployeeRepo) EmployeeNames(ctx context.Context) ([]string, error) {
	rows, err := r.db.Query(ctx, `SELECT name FROM employees ORDER BY name`)
	if err != nil {
		return nil, fmt.Errorf("fetch employee names: %w", err)
	}
	defer rows.Close()

	var names []string
	for rows.Next() {
		var name string
		if err := rows.Scan(&name); err != nil {
			return nil, fmt.Errorf("scan employee name: %w", err)
		}
		names = append(names, name)
	}
	return names, rows.Err()
}

// GetEmployeeByUsername fetches the login record for authentication.
// Returns (nil, nil) when the username is unknown.
func (r *EmployeeRepo) GetEmployeeByUsername(ctx context.Context, username string) (*models.Employee, error) {
	var e models.Employee
	err := r.db.QueryRow(ctx, `
		SELECT id, name, role, phone, salary, cnic, username, password, created_at
		FROM employees
		WHERE username = $1`,
		username,
	).Scan(
		&e.ID, &e.Name, &e.Role, &e.Phone, &e.Salary,
		&e.CNIC, &e.Username, &e.Password, &e.CreatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("fetch employee %s: %w", username, err)
	}
	return &e, nil
}

// DeleteEmployee removes the staff record only. Payroll ledger history is
// kept under the employee's name.
func (r *EmployeeRepo) DeleteEmployee(ctx context.Context, id int64) error {
	_, err := r.db.Exec(ctx, `DELETE FROM employees WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete employee: %w", err)
	}
	return nil
}

// AddLedgerEntry appends one payroll ledger record: Work Log earnings, a
// Salary Payment, or an Advance/Loan.
func (r *EmployeeRepo) AddLedgerEntry(ctx context.Context, e *models.EmployeeLedgerEntry) error {
	return withRetry(ctx, func() error {
		tx, err := r.db.Begin(ctx)
		if err != nil {
			return fmt.Errorf("begin tx: %w", err)
		}
		defer tx.Rollback(ctx)

		id, err := addEmployeeLedgerEntryTx(ctx, tx, e)
		if err != nil {
			return err
		}
		e.ID = id

		return tx.Commit(ctx)
	})
}

// GetLedger returns an employee's payroll history, most recent first.
func (r *EmployeeRepo) GetLedger(ctx context.Context, name string) ([]*models.EmployeeLedgerEntry, error) {
	rows, err := r.db.Query(ctx, `
		SELECT id, employee_name, entry_date, entry_type, description, earned, paid
		FROM employee_ledger
		WHERE employee_name = $1
		ORDER BY entry_date DESC, id DESC`,
		name,
	)
	if err != nil {
		return nil, fmt.Errorf("fetch employee ledger: %w", err)
	}
	defer rows.Close()

	var entries []*models.EmployeeLedgerEntry
	for rows.Next() {
		var e models.EmployeeLedgerEntry
		if err := rows.Scan(&e.ID, &e.EmployeeName, &e.Date, &e.Type, &e.Description, &e.Earned, &e.Paid); err != nil {
			return nil, fmt.Errorf("scan employee ledger entry: %w", err)
		}
		entries = append(entries, &e)
	}
	return entries, rows.Err()
}

// DeleteLedgerEntry removes one payroll record by id. Missing ids are a no-op.
func (r *EmployeeRepo) DeleteLedgerEntry(ctx context.Context, id int64) error {
	_, err := r.db.Exec(ctx, `DELETE FROM employee_ledger WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete employee ledger entry: %w", err)
	}
	return nil
}

// DeleteLedger wipes an employee's full payroll history.
func (r *EmployeeRepo) DeleteLedger(ctx context.Context, name string) error {
	_, err := r.db.Exec(ctx, `DELETE FROM employee_ledger WHERE employee_name = $1`, name)
	if err != nil {
		return fmt.Errorf("delete employee ledger: %w", err)
	}
	return nil
}

// Balance returns total earned minus total paid for an employee. Positive
// means the shop owes the employee.
func (r *EmployeeRepo) Balance(ctx context.Context, name string) (float64, error) {
	var earned, paid float64
	err := r.db.QueryRow(ctx, `
		SELECT COALESCE(SUM(earned), 0), COALESCE(SUM(paid), 0)
		FROM employee_ledger
		WHERE employee_name = $1`,
		name,
	).Scan(&earned, &paid)
	if err != nil {
		return 0, fmt.Errorf("sum employee ledger: %w", err)
	}
	return earned - paid, nil
}
