package models

import "time"

const (
	APPName    = "Workshop API"
	APPVersion = "1.0"
)

// Response is the type for response
type Response struct {
	Error   bool   `json:"error"`
	Status  string `json:"status"`
	Message string `json:"message"`
}

// JWT holds the signed-in user info carried inside the token
type JWT struct {
	ID        int64     `json:"id"`
	Name      string    `json:"name"`
	Username  string    `json:"username"`
	Role      string    `json:"role"`
	Issuer    string    `json:"iss"`
	Audience  string    `json:"aud"`
	ExpiresAt int64     `json:"exp"`
	IssuedAt  int64     `json:"iat"`
	CreatedAt time.Time `json:"created_at"`
}

type JWTConfig struct {
	SecretKey string
	Issuer    string
	Audience  string
	Algorithm string
	Expiry    time.Duration
	Refresh   time.Duration
}

type DBConfig struct {
	DSN    string
	DEVDSN string
}

type Config struct {
	Port int
	Env  string
	JWT  JWTConfig
	DB   DBConfig
}

// Repair job lifecycle states. Delivered is terminal.
const (
	RepairStatusPending    = "Pending"
	RepairStatusInProgress = "In Progress"
	RepairStatusDelivered  = "Delivered"
)

// Employee ledger entry types
const (
	EntryTypeWorkLog       = "Work Log"
	EntryTypeSalaryPayment = "Salary Payment"
	EntryTypeAdvance       = "Advance/Loan"
)

// Batch transaction row types
const (
	TxnSale           = "Sale"
	TxnPurchase       = "Purchase"
	TxnSaleReturn     = "Sale Return"
	TxnPurchaseReturn = "Purchase Return"
	TxnCashReceived   = "Cash Received"
	TxnCashPaid       = "Cash Paid"
	TxnCash           = "Cash"
)

// Customer is a directory record for a customer or supplier. The ledger is
// keyed by name, so a party can outlive its directory record (ghost party).
type Customer struct {
	ID             int64     `json:"id"`
	CustomerID     string    `json:"customer_id"` // display id, e.g. C001
	Name           string    `json:"name"`
	City           string    `json:"city"`
	Phone          string    `json:"phone"`
	OpeningBalance float64   `json:"opening_balance"`
	Address        string    `json:"address"`
	NIC            string    `json:"nic"`
	CreatedAt      time.Time `json:"created_at"`
	UpdatedAt      time.Time `json:"updated_at"`
}

// Employee model
type Employee struct {
	ID        int64     `json:"id"`
	Name      string    `json:"name"`
	Role      string    `json:"role"`
	Phone     string    `json:"phone"`
	Salary    float64   `json:"salary"`
	CNIC      string    `json:"cnic"`
	Username  string    `json:"username"`
	Password  string    `json:"-"` // bcrypt hash, never exposed
	CreatedAt time.Time `json:"created_at"`
}

// LedgerEntry is one dated debit/credit record against a party. Exactly one
// of Debit/Credit is normally non-zero; the running balance for a party is
// cumulative(debit) - cumulative(credit) in id order.
type LedgerEntry struct {
	ID          int64   `json:"id"`
	PartyName   string  `json:"party_name"`
	Date        string  `json:"date"` // YYYY-MM-DD; "Old Khata" on the synthetic opening row
	RefNo       string  `json:"ref_no"`
	Description string  `json:"description"`
	Debit       float64 `json:"debit"`
	Credit      float64 `json:"credit"`
	Quantity    int64   `json:"quantity"`
	Rate        float64 `json:"rate"`
	Discount    float64 `json:"discount"`
}

// EmployeeLedgerEntry is one payroll ledger record. Earned credits the
// employee, Paid settles against the balance.
type EmployeeLedgerEntry struct {
	ID           int64   `json:"id"`
	EmployeeName string  `json:"employee_name"`
	Date         string  `json:"date"`
	Type         string  `json:"type"`
	Description  string  `json:"description"`
	Earned       float64 `json:"earned"`
	Paid         float64 `json:"paid"`
}

// RepairPart is one parts line on a repair job. ItemID 0 means a custom part
// that does not track against inventory.
type RepairPart struct {
	ItemID int64   `json:"id"`
	Name   string  `json:"name"`
	Qty    int64   `json:"qty"`
	Price  float64 `json:"price"`
}

// LaborItem is one labor line on a repair job.
type LaborItem struct {
	Description string  `json:"description"`
	Qty         int64   `json:"qty"`
	Rate        float64 `json:"rate"`
	Cost        float64 `json:"cost"`
	Technician  string  `json:"technician"`
}

// RepairJob model. DeductedParts records the per-item quantities already
// taken from stock for this job, so repeated progress saves only deduct the
// delta since the last save.
type RepairJob struct {
	ID             int64        `json:"id"`
	ClientName     string       `json:"client_name"`
	InverterModel  string       `json:"inverter_model"`
	Issue          string       `json:"issue"`
	Status         string       `json:"status"`
	Phone          string       `json:"phone_number"`
	CreatedAt      time.Time    `json:"created_at"`
	ServiceCost    float64      `json:"service_cost"`
	PartsCost      float64      `json:"parts_cost"`
	TotalCost      float64      `json:"total_cost"`
	UsedParts      string       `json:"used_parts"`
	Parts          []RepairPart `json:"parts_data"`
	Labor          []LaborItem  `json:"labor_data"`
	DeductedParts  []RepairPart `json:"-"`
	AssignedTo     string       `json:"assigned_to"`
	StartDate      string       `json:"start_date"`
	DueDate        string       `json:"due_date"`
	CompletionDate string       `json:"completion_date"`
	IsLate         int          `json:"is_late"`
}

// InventoryItem model
type InventoryItem struct {
	ID           int64   `json:"id"`
	ItemName     string  `json:"item_name"`
	Category     string  `json:"category"`
	ImportDate   string  `json:"import_date"`
	Quantity     int64   `json:"quantity"`
	CostPrice    float64 `json:"cost_price"`
	SellingPrice float64 `json:"selling_price"`
}

// InventoryLogEntry is an append-only audit record of a stock movement.
type InventoryLogEntry struct {
	ID          int64     `json:"id"`
	Timestamp   time.Time `json:"timestamp"`
	ItemID      int64     `json:"item_id"`
	ItemName    string    `json:"item_name"`
	Change      int64     `json:"change"`
	Reason      string    `json:"reason"`
	Reference   string    `json:"reference"`
	Description string    `json:"description"`
}

// SaleRecord is one denormalized line of a sales document, kept for invoice
// reprints. The Ledger stays authoritative for balances.
type SaleRecord struct {
	ID             int64   `json:"id"`
	InvoiceID      string  `json:"invoice_id"`
	CustomerName   string  `json:"customer_name"`
	ItemName       string  `json:"item_name"`
	Description    string  `json:"description"`
	QuantitySold   float64 `json:"quantity_sold"`
	SalePrice      float64 `json:"sale_price"`
	ReturnQuantity float64 `json:"return_quantity"`
	TotalAmount    float64 `json:"total_amount"`
	SaleDate       string  `json:"sale_date"`
	Type           string  `json:"type"`
	Discount       float64 `json:"discount"`
	CashReceived   float64 `json:"cash_received"`
	CashPaid       float64 `json:"cash_paid"`
}

// PurchaseRecord is one denormalized line of a purchase document.
type PurchaseRecord struct {
	ID             int64   `json:"id"`
	PurchaseID     string  `json:"purchase_id"`
	SupplierName   string  `json:"supplier_name"`
	ItemName       string  `json:"item_name"`
	QuantityBought float64 `json:"quantity_bought"`
	UnitCost       float64 `json:"unit_cost"`
	TotalAmount    float64 `json:"total_amount"`
	PurchaseDate   string  `json:"purchase_date"`
}

// Expense model
type Expense struct {
	ID          int64   `json:"id"`
	Date        string  `json:"date"`
	Description string  `json:"description"`
	Amount      float64 `json:"amount"`
	Category    string  `json:"category"`
}

// InvoiceLine is one item line of a plain sales invoice.
type InvoiceLine struct {
	ItemName  string  `json:"item_name"`
	Qty       float64 `json:"qty"`
	Rate      float64 `json:"rate"`
	ReturnQty float64 `json:"return_qty"`
	Total     float64 `json:"total"`
}

// PurchaseLine is one item line of a purchase document. Rate is the unit
// cost.
type PurchaseLine struct {
	ItemName string  `json:"item_name"`
	Qty      float64 `json:"qty"`
	Rate     float64 `json:"rate"`
	Total    float64 `json:"total"`
}

// BatchRow is one row of a mixed batch document before classification.
type BatchRow struct {
	Date         string  `json:"date"`
	Type         string  `json:"type"`
	ItemName     string  `json:"item_name"`
	Description  string  `json:"description"`
	Qty          float64 `json:"qty"`
	Rate         float64 `json:"rate"`
	Total        float64 `json:"total"`
	Discount     float64 `json:"discount"`
	CashReceived float64 `json:"cash_received"`
	CashPaid     float64 `json:"cash_paid"`
}

// LedgerPosting is one ledger effect produced by classifying a batch row.
type LedgerPosting struct {
	Description string
	Debit       float64
	Credit      float64
	Date        string
	Quantity    int64
	Rate        float64
	Discount    float64
}

// StatementRow is a ledger entry with its running balance, pre-shaped for the
// external document renderer.
type StatementRow struct {
	LedgerEntry
	Balance float64 `json:"balance"`
}

// Statement is the full data set behind a printable party statement.
type Statement struct {
	PartyName    string         `json:"party_name"`
	Rows         []StatementRow `json:"rows"`
	FinalBalance float64        `json:"final_balance"`
}

// RecoveryRow is one line of the customer recovery/aging list.
type RecoveryRow struct {
	CustomerID     string             `json:"customer_id"`
	Name           string             `json:"name"`
	City           string             `json:"city"`
	Phone          string             `json:"phone"`
	TotalSales     float64            `json:"total_sales"`
	TotalPaid      float64            `json:"total_paid"`
	OpeningBalance float64            `json:"opening_balance"`
	NetOutstanding float64            `json:"net_outstanding"`
	CategoryCounts map[string]float64 `json:"category_counts"`
	OtherCount     float64            `json:"other_count"`
	Deleted        bool               `json:"deleted"`
}

// EmployeeWorkload is the count of active jobs per assignee.
type EmployeeWorkload struct {
	AssignedTo string `json:"assigned_to"`
	ActiveJobs int64  `json:"active_jobs"`
}

// EmployeePerformance summarizes delivered jobs per assignee.
type EmployeePerformance struct {
	AssignedTo     string  `json:"assigned_to"`
	TotalCompleted int64   `json:"total_completed"`
	TotalLate      int64   `json:"total_late"`
	OnTimeRate     float64 `json:"on_time_rate"`
}

// RevenueTotals holds delivered-job revenue aggregates.
type RevenueTotals struct {
	Total   float64 `json:"total"`
	Monthly float64 `json:"monthly"`
}

// CostSplit is delivered-job cost split between parts and service.
type CostSplit struct {
	Parts   float64 `json:"parts"`
	Service float64 `json:"service"`
}

// CashFlow is a single day's cash summary.
type CashFlow struct {
	Date    string  `json:"date"`
	CashIn  float64 `json:"cash_in"`
	CashOut float64 `json:"cash_out"`
	NetCash float64 `json:"net_cash"`
}

// TrendPoint is one day of the sales trend series.
type TrendPoint struct {
	Date        string  `json:"sale_date"`
	TotalAmount float64 `json:"total_amount"`
}
