package api

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/cors"
	"github.com/voltedge/workshop-api/internal/utils"
)

func (app *application) routes() http.Handler {
	mux := chi.NewRouter()

	// --- Global middlewares ---
	mux.Use(cors.Handler(cors.Options{
		AllowedOrigins:   []string{"*"},
		AllowedMethods:   []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type", "X-CSRF-Token"},
		AllowCredentials: false,
		MaxAge:           300,
	}))
	mux.Use(app.Logger)

	// --- Health check endpoint ---
	mux.Get("/ping", func(w http.ResponseWriter, r *http.Request) {
		utils.WriteJSON(w, 200, "Live")
	})

	mux.Post("/api/v1/login", app.Handlers.Auth.Signin)

	// Identity of the signed-in user, from the bearer token
	mux.Route("/api/v1/me", func(r chi.Router) {
		r.Use(app.Authenticate)
		r.Get("/", func(w http.ResponseWriter, r *http.Request) {
			utils.WriteJSON(w, http.StatusOK, userFromContext(r.Context()))
		})
	})

	// --- Customer Directory Routes ---
	mux.Route("/api/v1/customers", func(r chi.Router) {
		r.Use(app.Authenticate)

		// Get full directory
		// Example: GET /api/v1/customers
		r.Get("/", app.Handlers.Customer.GetCustomers)

		// Look up one customer by name (case-insensitive)
		// Example: GET /api/v1/customers/by-name?name=Acme
		r.Get("/by-name", app.Handlers.Customer.GetCustomerByName)

		// Add a new customer; the display id (C001, ...) is allocated here
		// Body (JSON): { customer }
		r.Post("/", app.Handlers.Customer.AddCustomer)

		// Update directory fields
		// Body (JSON): { customer with id }
		r.Put("/", app.Handlers.Customer.UpdateCustomer)

		// Remove directory record only; ledger history survives
		// Example: DELETE /api/v1/customers?id=5
		r.Delete("/", app.Handlers.Customer.DeleteCustomer)

		// Wipe a party completely: directory, ledger, sales, repairs
		// Example: DELETE /api/v1/customers/purge?name=Acme
		r.Delete("/purge", app.Handlers.Customer.PurgeCustomer)
	})

	// --- Party Ledger Routes ---
	mux.Route("/api/v1/ledger", func(r chi.Router) {
		r.Use(app.Authenticate)

		// Full ledger for one party, opening balance row included
		// Example: GET /api/v1/ledger?party=Acme
		r.Get("/", app.Handlers.Ledger.GetEntries)

		// Add a manual ledger entry
		// Body (JSON): { entry }
		r.Post("/", app.Handlers.Ledger.AddEntry)

		// Delete one entry by id (no reversal entry)
		// Example: DELETE /api/v1/ledger?id=42
		r.Delete("/", app.Handlers.Ledger.DeleteEntry)

		// Current balance for one party
		// Example: GET /api/v1/ledger/balance?party=Acme
		r.Get("/balance", app.Handlers.Ledger.GetBalance)

		// Every known party: ledger, repairs and directory combined
		r.Get("/parties", app.Handlers.Ledger.ListParties)

		// Statement rows with running balance for the document renderer
		// Example: GET /api/v1/ledger/statement?party=Acme
		r.Get("/statement", app.Handlers.Ledger.GetStatement)
	})

	// --- HR (Employee) Routes ---
	mux.Route("/api/v1/hr", func(r chi.Router) {
		r.Use(app.Authenticate)

		// Staff list
		r.Get("/employees", app.Handlers.Employee.GetEmployees)

		// Staff names only, for assignment pickers
		r.Get("/employees/names", app.Handlers.Employee.GetEmployeeNames)

		// Add a new employee
		// Body (JSON): { name, role, phone, salary, cnic, username, password }
		r.Post("/employee", app.Handlers.Employee.AddEmployee)

		// Remove an employee; payroll history is kept
		// Example: DELETE /api/v1/hr/employee?id=3
		r.Delete("/employee", app.Handlers.Employee.DeleteEmployee)

		// Payroll ledger for one employee, balance included
		// Example: GET /api/v1/hr/ledger?name=Hamza
		r.Get("/ledger", app.Handlers.Employee.GetLedger)

		// Add a payroll entry: Work Log, Salary Payment or Advance/Loan
		// Body (JSON): { entry }
		r.Post("/ledger", app.Handlers.Employee.AddLedgerEntry)

		// Delete one payroll entry
		// Example: DELETE /api/v1/hr/ledger?id=7
		r.Delete("/ledger", app.Handlers.Employee.DeleteLedgerEntry)

		// Clear an employee's whole payroll ledger
		// Example: DELETE /api/v1/hr/ledger/all?name=Hamza
		r.Delete("/ledger/all", app.Handlers.Employee.DeleteLedger)
	})

	// --- Repair Job Routes ---
	mux.Route("/api/v1/repairs", func(r chi.Router) {
		r.Use(app.Authenticate)

		// All jobs, newest first
		r.Get("/", app.Handlers.Repair.GetAllRepairs)

		// Jobs not yet delivered
		r.Get("/active", app.Handlers.Repair.GetActiveRepairs)

		// Delivered jobs only
		r.Get("/history", app.Handlers.Repair.GetJobHistory)

		// One job by id
		// Example: GET /api/v1/repairs/job?id=12
		r.Get("/job", app.Handlers.Repair.GetRepair)

		// Register a new job (starts Pending)
		// Body (JSON): { job }
		r.Post("/", app.Handlers.Repair.AddRepair)

		// Save progress: costs, parts, labor; deducts only new part
		// quantities from stock
		// Body (JSON): { job with id }
		r.Put("/progress", app.Handlers.Repair.SaveProgress)

		// Close and deliver: final costs, client ledger debit, technician
		// work logs, remaining stock deduction
		// Body (JSON): { job with id }
		r.Put("/close", app.Handlers.Repair.CloseJob)
	})

	// --- Inventory Routes ---
	mux.Route("/api/v1/inventory", func(r chi.Router) {
		r.Use(app.Authenticate)

		// Stock list
		r.Get("/", app.Handlers.Inventory.GetInventory)

		// Item names only
		r.Get("/names", app.Handlers.Inventory.GetItemNames)

		// Add a stock item
		// Body (JSON): { item }
		r.Post("/", app.Handlers.Inventory.AddItem)

		// Update quantity and prices, with optional movement log note
		// Body (JSON): { id, quantity, cost_price, selling_price, log_note }
		r.Put("/", app.Handlers.Inventory.UpdateItem)

		// Delete an item and its movement history
		// Example: DELETE /api/v1/inventory?id=9
		r.Delete("/", app.Handlers.Inventory.DeleteItem)

		// Move stock by a delta, matched by exact item name
		// Body (JSON): { item_name, delta, reference }
		r.Post("/adjust", app.Handlers.Inventory.AdjustQuantity)

		// Direct stock sale with availability check
		// Body (JSON): { item_id, qty, customer_name }
		r.Post("/sell", app.Handlers.Inventory.SellItem)

		// Movement history for one item
		// Example: GET /api/v1/inventory/logs?item_id=9
		r.Get("/logs", app.Handlers.Inventory.GetItemLogs)

		// Stock valuation at cost and at retail
		r.Get("/valuation", app.Handlers.Inventory.GetValuation)
	})

	// --- Invoice / Batch Document Routes ---
	mux.Route("/api/v1/invoices", func(r chi.Router) {
		r.Use(app.Authenticate)

		// Peek at the next invoice number (INV-YYYY-NNN)
		r.Get("/next-number", app.Handlers.Invoice.NextInvoiceNumber)

		// Record a plain sales invoice
		// Body (JSON): { invoice_id?, customer_name, lines, freight, misc, grand_total }
		r.Post("/", app.Handlers.Invoice.RecordInvoice)

		// Record a mixed batch document (sales, purchases, returns, cash)
		// Body (JSON): { invoice_id?, customer_name, rows, freight, misc }
		r.Post("/batch", app.Handlers.Invoice.RecordBatch)

		// Reprint data: lines plus ledger-derived totals
		// Example: GET /api/v1/invoices/reprint?invoice_id=INV-2026-001
		r.Get("/reprint", app.Handlers.Invoice.GetInvoice)

		// All document ids on file
		r.Get("/ids", app.Handlers.Invoice.ListInvoiceIDs)
	})

	// --- Purchase Document Routes ---
	mux.Route("/api/v1/purchases", func(r chi.Router) {
		r.Use(app.Authenticate)

		// Peek at the next purchase number (PUR-YYYY-NNN)
		r.Get("/next-number", app.Handlers.Purchase.NextPurchaseNumber)

		// Record a supplier purchase
		// Body (JSON): { purchase_id?, supplier_name, lines, grand_total }
		r.Post("/", app.Handlers.Purchase.RecordPurchase)

		// Reprint data: lines plus ledger-derived totals
		// Example: GET /api/v1/purchases/reprint?purchase_id=PUR-2026-001
		r.Get("/reprint", app.Handlers.Purchase.GetPurchase)

		// All purchase ids on file
		r.Get("/ids", app.Handlers.Purchase.ListPurchaseIDs)
	})

	// --- Expense / Cash Flow Routes ---
	mux.Route("/api/v1/expenses", func(r chi.Router) {
		r.Use(app.Authenticate)

		// Expense list, optionally for one date
		// Example: GET /api/v1/expenses?date=2026-08-31
		r.Get("/", app.Handlers.Expense.GetExpenses)

		// Record an expense
		// Body (JSON): { date?, description, amount, category? }
		r.Post("/", app.Handlers.Expense.AddExpense)

		// Delete an expense
		// Example: DELETE /api/v1/expenses?id=4
		r.Delete("/", app.Handlers.Expense.DeleteExpense)

		// One day's cash summary (ledger credits in, expenses out)
		// Example: GET /api/v1/expenses/cash-flow?date=2026-08-31
		r.Get("/cash-flow", app.Handlers.Expense.GetDailyCashFlow)

		// Current month's expenses grouped by category
		r.Get("/monthly-breakdown", app.Handlers.Expense.GetMonthlyBreakdown)
	})

	// --- Report Routes ---
	mux.Route("/api/v1/reports", func(r chi.Router) {
		r.Use(app.Authenticate)

		// Active jobs per technician
		r.Get("/workload", app.Handlers.Report.GetWorkload)

		// Delivered jobs, late counts and on-time rate per technician
		r.Get("/performance", app.Handlers.Report.GetPerformance)

		// Delivered-job revenue: all time and current month
		r.Get("/revenue", app.Handlers.Report.GetRevenue)

		// Billing split between parts and service
		r.Get("/parts-vs-service", app.Handlers.Report.GetPartsVsService)

		// Daily sales totals for the last N days
		// Example: GET /api/v1/reports/sales-trend?days=30
		r.Get("/sales-trend", app.Handlers.Report.GetSalesTrend)

		// Customer recovery list sorted by highest outstanding
		r.Get("/recovery", app.Handlers.Report.GetRecoveryList)
	})

	return mux
}
