package dbrepo

import (
	"github.com/jackc/pgx/v5/pgxpool"
)

// DBRepository bundles every repository over one shared connection pool.
type DBRepository struct {
	DB        *pgxpool.Pool
	Customer  *CustomerRepo
	Employee  *EmployeeRepo
	Ledger    *LedgerRepo
	Repair    *RepairRepo
	Inventory *InventoryRepo
	Sale      *SaleRepo
	Purchase  *PurchaseRepo
	Expense   *ExpenseRepo
	Report    *ReportRepo
}

func NewDBRepository(db *pgxpool.Pool) *DBRepository {
	return &DBRepository{
		DB:        db,
		Customer:  NewCustomerRepo(db),
		Employee:  NewEmployeeRepo(db),
		Ledger:    NewLedgerRepo(db),
		Repair:    NewRepairRepo(db),
		Inventory: NewInventoryRepo(db),
		Sale:      NewSaleRepo(db),
		Purchase:  NewPurchaseRepo(db),
		Expense:   NewExpenseRepo(db),
		Report:    NewReportRepo(db),
	}
}
