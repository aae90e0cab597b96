package dbrepo

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/voltedge/workshop-api/internal/models"
)

// ============================== Customer Repository ==============================
type CustomerRepo struct {
	db *pgxpool.Pool
}

func NewCustomerRepo(db *pgxpool.Pool) *CustomerRepo {
	return &CustomerRepo{db: db}
}

// AddCustomer creates a directory record, allocating the next display id in
// the C001, C002, ... sequence inside the same transaction.
func (r *CustomerRepo) AddCustomer(ctx context.Context, c *models.Customer) error {
	return withRetry(ctx, func() error {
		tx, err := r.db.Begin(ctx)
		if err != nil {
			return fmt.Errorf("begin tx: %w", err)
		}
		defer tx.Rollback(ctx)

		var maxNum int64
		err = tx.QueryRow(ctx, `
			SELECT COALESCE(MAX(CAST(SUBSTRING(customer_id FROM 2) AS BIGINT)), 0)
			FROM customers
			WHERE customer_id ~ '^C[0-9]+$'`,
		).Scan(&maxNum)
		if err != nil {
			return fmt.Errorf("scan max customer id: %w", err)
		}
		c.CustomerID = fmt.Sprintf("C%03d", maxNum+1)

		err = tx.QueryRow(ctx, `
			INSERT INTO customers (customer_id, name, city, phone, opening_balance, address, nic)
			VALUES ($1,$2,$3,$4,$5,$6,$7)
			RETURNING id, created_at, updated_at`,
			c.CustomerID, c.Name, c.City, c.Phone, c.OpeningBalance, c.Address, c.NIC,
		).Scan(&c.ID, &c.CreatedAt, &c.UpdatedAt)
		if err != nil {
			return fmt.Errorf("insert customer: %w", err)
		}

		return tx.Commit(ctx)
	})
}

// GetCustomers returns the full directory ordered by display id.
func (r *CustomerRepo) GetCustomers(ctx context.Context) ([]*models.Customer, error) {
	rows, err := r.db.Query(ctx, `
		SELECT id, customer_id, name, city, phone, opening_balance, address, nic, created_at, updated_at
		FROM customers
		ORDER BY customer_id`,
	)
	if err != nil {
		return nil, fmt.Errorf("fetch customers: %w", err)
	}
	defer rows.Close()

	var customers []*models.Customer
	for rows.Next() {
		var c models.Customer
		if err := rows.Scan(
			&c.ID, &c.CustomerID, &c.Name, &c.City, &c.Phone,
			&c.OpeningBalance, &c.Address, &c.NIC, &c.CreatedAt, &c.UpdatedAt,
		); err != nil {
			return nil, fmt.Errorf("scan customer: %w", err)
		}
		customers = append(customers, &c)
	}
	return customers, rows.Err()
}

// GetCustomerByName looks up a directory record by name, case-insensitively.
// Returns (nil, nil) when no record exists.
func (r *CustomerRepo) GetCustomerByName(ctx context.Context, name string) (*models.Customer, error) {
	var c models.Customer
	err := r.db.QueryRow(ctx, `
		SELECT id, customer_id, name, city, phone, opening_balance, address, nic, created_at, updated_at
		FROM customers
		WHERE LOWER(name) = LOWER($1)
		ORDER BY id LIMIT 1`,
		name,
	).Scan(
		&c.ID, &c.CustomerID, &c.Name, &c.City, &c.Phone,
		&c.OpeningBalance, &c.Address, &c.NIC, &c.CreatedAt, &c.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("fetch customer %s: %w", name, err)
	}
	return &c, nil
}

// UpdateCustomer rewrites the editable directory fields. The display id never
// changes. A missing id is a no-op.
func (r *CustomerRepo) UpdateCustomer(ctx context.Context, c *models.Customer) error {
	_, err := r.db.Exec(ctx, `
		UPDATE customers
		SET name = $1, city = $2, phone = $3, opening_balance = $4, address = $5, nic = $6,
		    updated_at = CURRENT_TIMESTAMP
		WHERE id = $7`,
		c.Name, c.City, c.Phone, c.OpeningBalance, c.Address, c.NIC, c.ID,
	)
	if err != nil {
		return fmt.Errorf("update customer: %w", err)
	}
	return nil
}

// DeleteCustomer removes only the directory record. Ledger entries, sales and
// repairs survive, leaving a ghost party that the recovery list still surfaces
// while it carries a balance.
func (r *CustomerRepo) DeleteCustomer(ctx context.Context, id int64) error {
	_, err := r.db.Exec(ctx, `DELETE FROM customers WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete customer: %w", err)
	}
	return nil
}

// PurgeCustomer removes a party completely: the directory record plus every
// ledger entry, sale line and repair job under the name. Irreversible.
func (r *CustomerRepo) PurgeCustomer(ctx context.Context, name string) error {
	return withRetry(ctx, func() error {
		tx, err := r.db.Begin(ctx)
		if err != nil {
			return fmt.Errorf("begin tx: %w", err)
		}
		defer tx.Rollback(ctx)

		steps := []struct {
			sql string
		}{
			{`DELETE FROM customers WHERE LOWER(name) = LOWER($1)`},
			{`DELETE FROM ledger WHERE LOWER(party_name) = LOWER($1)`},
			{`DELETE FROM sales WHERE LOWER(customer_name) = LOWER($1)`},
			{`DELETE FROM repairs WHERE LOWER(client_name) = LOWER($1)`},
		}
		for _, s := range steps {
			if _, err := tx.Exec(ctx, s.sql, name); err != nil {
				return fmt.Errorf("purge customer %s: %w", name, err)
			}
		}

		return tx.Commit(ctx)
	})
}
