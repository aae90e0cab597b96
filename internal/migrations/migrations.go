package migrations

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"
)

// Run creates the database schema required for the workshop backend. Every
// statement is idempotent so startup can run this unconditionally.
func Run(ctx context.Context, db *pgxpool.Pool) error {
	schema := []string{
		`CREATE TABLE IF NOT EXISTS customers (
			id BIGSERIAL PRIMARY KEY,
			customer_id TEXT NOT NULL UNIQUE,
			name TEXT NOT NULL,
			city TEXT NOT NULL DEFAULT '',
			phone TEXT NOT NULL DEFAULT '',
			opening_balance DOUBLE PRECISION NOT NULL DEFAULT 0,
			address TEXT NOT NULL DEFAULT '',
			nic TEXT NOT NULL DEFAULT '',
			created_at TIMESTAMPTZ NOT NULL DEFAULT CURRENT_TIMESTAMP,
			updated_at TIMESTAMPTZ NOT NULL DEFAULT CURRENT_TIMESTAMP
		);`,
		`CREATE TABLE IF NOT EXISTS employees (
			id BIGSERIAL PRIMARY KEY,
			name TEXT NOT NULL,
			role TEXT NOT NULL DEFAULT '',
			phone TEXT NOT NULL DEFAULT '',
			salary DOUBLE PRECISION NOT NULL DEFAULT 0,
			cnic TEXT NOT NULL DEFAULT '',
			username TEXT NOT NULL DEFAULT '',
			password TEXT NOT NULL DEFAULT '',
			created_at TIMESTAMPTZ NOT NULL DEFAULT CURRENT_TIMESTAMP
		);`,
		`CREATE TABLE IF NOT EXISTS ledger (
			id BIGSERIAL PRIMARY KEY,
			party_name TEXT NOT NULL,
			entry_date TEXT NOT NULL,
			ref_no TEXT NOT NULL DEFAULT '',
			description TEXT NOT NULL DEFAULT '',
			debit DOUBLE PRECISION NOT NULL DEFAULT 0,
			credit DOUBLE PRECISION NOT NULL DEFAULT 0,
			quantity BIGINT NOT NULL DEFAULT 0,
			rate DOUBLE PRECISION NOT NULL DEFAULT 0,
			discount DOUBLE PRECISION NOT NULL DEFAULT 0
		);`,
		`CREATE INDEX IF NOT EXISTS idx_ledger_party ON ledger (party_name);`,
		`CREATE TABLE IF NOT EXISTS employee_ledger (
			id BIGSERIAL PRIMARY KEY,
			employee_name TEXT NOT NULL,
			entry_date TEXT NOT NULL,
			entry_type TEXT NOT NULL,
			description TEXT NOT NULL DEFAULT '',
			earned DOUBLE PRECISION NOT NULL DEFAULT 0,
			paid DOUBLE PRECISION NOT NULL DEFAULT 0
		);`,
		`CREATE INDEX IF NOT EXISTS idx_employee_ledger_name ON employee_ledger (employee_name);`,
		`CREATE TABLE IF NOT EXISTS repairs (
			id BIGSERIAL PRIMARY KEY,
			client_name TEXT NOT NULL,
			inverter_model TEXT NOT NULL DEFAULT '',
			issue TEXT NOT NULL DEFAULT '',
			status TEXT NOT NULL DEFAULT 'Pending',
			phone_number TEXT NOT NULL DEFAULT '',
			created_at TIMESTAMPTZ NOT NULL DEFAULT CURRENT_TIMESTAMP,
			service_cost DOUBLE PRECISION NOT NULL DEFAULT 0,
			parts_cost DOUBLE PRECISION NOT NULL DEFAULT 0,
			total_cost DOUBLE PRECISION NOT NULL DEFAULT 0,
			used_parts TEXT NOT NULL DEFAULT '',
			parts_data JSONB NOT NULL DEFAULT '[]',
			labor_data JSONB NOT NULL DEFAULT '[]',
			deducted_parts JSONB NOT NULL DEFAULT '[]',
			assigned_to TEXT NOT NULL DEFAULT '',
			start_date TEXT NOT NULL DEFAULT '',
			due_date TEXT NOT NULL DEFAULT '',
			completion_date TEXT NOT NULL DEFAULT '',
			is_late INT NOT NULL DEFAULT 0
		);`,
		`CREATE TABLE IF NOT EXISTS inventory (
			id BIGSERIAL PRIMARY KEY,
			item_name TEXT NOT NULL,
			category TEXT NOT NULL DEFAULT '',
			import_date TEXT NOT NULL DEFAULT '',
			quantity BIGINT NOT NULL DEFAULT 0,
			cost_price DOUBLE PRECISION NOT NULL DEFAULT 0,
			selling_price DOUBLE PRECISION NOT NULL DEFAULT 0
		);`,
		`CREATE TABLE IF NOT EXISTS inventory_logs (
			id BIGSERIAL PRIMARY KEY,
			created_at TIMESTAMPTZ NOT NULL DEFAULT CURRENT_TIMESTAMP,
			item_id BIGINT NOT NULL,
			item_name TEXT NOT NULL,
			change BIGINT NOT NULL,
			reason TEXT NOT NULL DEFAULT '',
			reference TEXT NOT NULL DEFAULT '',
			description TEXT NOT NULL DEFAULT ''
		);`,
		`CREATE INDEX IF NOT EXISTS idx_inventory_logs_item ON inventory_logs (item_id);`,
		`CREATE TABLE IF NOT EXISTS sales (
			id BIGSERIAL PRIMARY KEY,
			invoice_id TEXT NOT NULL DEFAULT '',
			customer_name TEXT NOT NULL DEFAULT '',
			item_name TEXT NOT NULL DEFAULT '',
			description TEXT NOT NULL DEFAULT '',
			quantity_sold DOUBLE PRECISION NOT NULL DEFAULT 0,
			sale_price DOUBLE PRECISION NOT NULL DEFAULT 0,
			return_quantity DOUBLE PRECISION NOT NULL DEFAULT 0,
			total_amount DOUBLE PRECISION NOT NULL DEFAULT 0,
			sale_date TEXT NOT NULL DEFAULT '',
			txn_type TEXT NOT NULL DEFAULT '',
			discount DOUBLE PRECISION NOT NULL DEFAULT 0,
			cash_received DOUBLE PRECISION NOT NULL DEFAULT 0,
			cash_paid DOUBLE PRECISION NOT NULL DEFAULT 0
		);`,
		`CREATE INDEX IF NOT EXISTS idx_sales_invoice ON sales (invoice_id);`,
		`CREATE TABLE IF NOT EXISTS purchases (
			id BIGSERIAL PRIMARY KEY,
			purchase_id TEXT NOT NULL DEFAULT '',
			supplier_name TEXT NOT NULL DEFAULT '',
			item_name TEXT NOT NULL DEFAULT '',
			quantity_bought DOUBLE PRECISION NOT NULL DEFAULT 0,
			unit_cost DOUBLE PRECISION NOT NULL DEFAULT 0,
			total_amount DOUBLE PRECISION NOT NULL DEFAULT 0,
			purchase_date TEXT NOT NULL DEFAULT ''
		);`,
		`CREATE INDEX IF NOT EXISTS idx_purchases_purchase ON purchases (purchase_id);`,
		`CREATE TABLE IF NOT EXISTS expenses (
			id BIGSERIAL PRIMARY KEY,
			entry_date TEXT NOT NULL,
			description TEXT NOT NULL DEFAULT '',
			amount DOUBLE PRECISION NOT NULL DEFAULT 0,
			category TEXT NOT NULL DEFAULT 'Shop Expense'
		);`,
	}

	for _, stmt := range schema {
		if _, err := db.Exec(ctx, stmt); err != nil {
			return fmt.Errorf("run migration: %w", err)
		}
	}
	return nil
}
