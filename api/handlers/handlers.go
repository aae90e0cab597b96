package api

import (
	"log"

	"github.com/voltedge/workshop-api/internal/dbrepo"
	"github.com/voltedge/workshop-api/internal/models"
)

type HandlerRepo struct {
	Auth      *AuthHandler
	Customer  *CustomerHandler
	Employee  *EmployeeHandler
	Ledger    *LedgerHandler
	Repair    *RepairHandler
	Inventory *InventoryHandler
	Invoice   *InvoiceHandler
	Purchase  *PurchaseHandler
	Expense   *ExpenseHandler
	Report    *ReportHandler
}

func NewHandlerRepo(db *dbrepo.DBRepository, JWT models.JWTConfig, infoLog *log.Logger, errorLog *log.Logger) *HandlerRepo {
	return &HandlerRepo{
		Auth:      NewAuthHandler(db, JWT, infoLog, errorLog),
		Customer:  NewCustomerHandler(db, infoLog, errorLog),
		Employee:  NewEmployeeHandler(db.Employee, infoLog, errorLog),
		Ledger:    NewLedgerHandler(db.Ledger, infoLog, errorLog),
		Repair:    NewRepairHandler(db.Repair, infoLog, errorLog),
		Inventory: NewInventoryHandler(db.Inventory, infoLog, errorLog),
		Invoice:   NewInvoiceHandler(db, infoLog, errorLog),
		Purchase:  NewPurchaseHandler(db, infoLog, errorLog),
		Expense:   NewExpenseHandler(db.Expense, infoLog, errorLog),
		Report:    NewReportHandler(db.Report, infoLog, errorLog),
	}
}
