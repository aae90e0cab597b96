package dbrepo

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/voltedge/workshop-api/internal/models"
)

// ============================== Inventory Repository ==============================
type InventoryRepo struct {
	db *pgxpool.Pool
}

func NewInventoryRepo(db *pgxpool.Pool) *InventoryRepo {
	return &InventoryRepo{db: db}
}

// AddItem inserts a stock item and logs the initial quantity.
func (r *InventoryRepo) AddItem(ctx context.Context, item *models.InventoryItem) error {
	return withRetry(ctx, func() error {
		tx, err := r.db.Begin(ctx)
		if err != nil {
			return fmt.Errorf("begin tx: %w", err)
		}
		defer tx.Rollback(ctx)

		err = tx.QueryRow(ctx, `
			INSERT INTO inventory (item_name, category, import_date, quantity, cost_price, selling_price)
			VALUES ($1,$2,$3,$4,$5,$6)
			RETURNING id`,
			item.ItemName, item.Category, item.ImportDate, item.Quantity, item.CostPrice, item.SellingPrice,
		).Scan(&item.ID)
		if err != nil {
			return fmt.Errorf("insert inventory item: %w", err)
		}

		if item.Quantity != 0 {
			err = logInventoryChangeTx(ctx, tx, &models.InventoryLogEntry{
				ItemID:      item.ID,
				ItemName:    item.ItemName,
				Change:      item.Quantity,
				Reason:      "Initial Stock",
				Description: fmt.Sprintf("Increase by %d", item.Quantity),
			})
			if err != nil {
				return err
			}
		}

		return tx.Commit(ctx)
	})
}

func (r *InventoryRepo) GetInventory(ctx context.Context) ([]*models.InventoryItem, error) {
	rows, err := r.db.Query(ctx, `
		SELECT id, item_name, category, import_date, quantity, cost_price, selling_price
		FROM inventory
		ORDER BY item_name`,
	)
	if err != nil {
		return nil, fmt.Errorf("fetch inventory: %w", err)
	}
	defer rows.Close()

	var items []*models.InventoryItem
	for rows.Next() {
		var item models.InventoryItem
		if err := rows.Scan(
			&item.ID, &item.ItemName, &item.Category, &item.ImportDate,
			&item.Quantity, &item.CostPrice, &item.SellingPrice,
		); err != nil {
			return nil, fmt.Errorf("scan inventory item: %w", err)
		}
		items = append(items, &item)
	}
	return items, rows.Err()
}

// ItemNames returns all stock item names for pickers.
func (r *InventoryRepo) ItemNames(ctx context.Context) ([]string, error) {
	rows, err := r.db.Query(ctx, `SELECT item_name FROM inventory ORDER BY item_name`)
	if err != nil {
		return nil, fmt.Errorf("fetch item names: %w", err)
	}
	defer rows.Close()

	var names []string
	for rows.Next() {
		var name string
		if err := rows.Scan(&name); err != nil {
			return nil, fmt.Errorf("scan item name: %w", err)
		}
		names = append(names, name)
	}
	return names, rows.Err()
}

// ItemByName fetches one stock item by exact name. Returns (nil, nil) when
// no such item exists.
func (r *InventoryRepo) ItemByName(ctx context.Context, name string) (*models.InventoryItem, error) {
	var item models.InventoryItem
	err := r.db.QueryRow(ctx, `
		SELECT id, item_name, category, import_date, quantity, cost_price, selling_price
		FROM inventory
		WHERE item_name = $1
		ORDER BY id LIMIT 1`,
		name,
	).Scan(
		&item.ID, &item.ItemName, &item.Category, &item.ImportDate,
		&item.Quantity, &item.CostPrice, &item.SellingPrice,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("fetch inventory item %s: %w", name, err)
	}
	return &item, nil
}

// DeleteItem removes a stock item together with its movement history.
func (r *InventoryRepo) DeleteItem(ctx context.Context, id int64) error {
	return withRetry(ctx, func() error {
		tx, err := r.db.Begin(ctx)
		if err != nil {
			return fmt.Errorf("begin tx: %w", err)
		}
		defer tx.Rollback(ctx)

		if _, err := tx.Exec(ctx, `DELETE FROM inventory_logs WHERE item_id = $1`, id); err != nil {
			return fmt.Errorf("delete inventory logs: %w", err)
		}
		if _, err := tx.Exec(ctx, `DELETE FROM inventory WHERE id = $1`, id); err != nil {
			return fmt.Errorf("delete inventory item: %w", err)
		}

		return tx.Commit(ctx)
	})
}

// AdjustQuantity moves a stock item's quantity by delta, matched by exact
// name, and logs the movement against the given document reference. Unlike
// repair deductions, the quantity may go negative so batch documents never
// silently under-record. An unknown name is an error.
func (r *InventoryRepo) AdjustQuantity(ctx context.Context, itemName string, delta int64, reference string) (int64, error) {
	var newQty int64
	err := withRetry(ctx, func() error {
		tx, err := r.db.Begin(ctx)
		if err != nil {
			return fmt.Errorf("begin tx: %w", err)
		}
		defer tx.Rollback(ctx)

		var itemID int64
		err = tx.QueryRow(ctx, `
			UPDATE inventory
			SET quantity = quantity + $1
			WHERE id = (SELECT id FROM inventory WHERE item_name = $2 ORDER BY id LIMIT 1)
			RETURNING id, quantity`,
			delta, itemName,
		).Scan(&itemID, &newQty)
		if err != nil {
			if errors.Is(err, pgx.ErrNoRows) {
				return fmt.Errorf("item %q not found in inventory", itemName)
			}
			return fmt.Errorf("adjust stock for %s: %w", itemName, err)
		}

		desc := fmt.Sprintf("Increase by %d", delta)
		if delta < 0 {
			desc = fmt.Sprintf("Decrease by %d", -delta)
		}
		err = logInventoryChangeTx(ctx, tx, &models.InventoryLogEntry{
			ItemID:      itemID,
			ItemName:    itemName,
			Change:      delta,
			Reason:      "Transaction",
			Reference:   reference,
			Description: desc,
		})
		if err != nil {
			return err
		}

		return tx.Commit(ctx)
	})
	return newQty, err
}

// UpdateItem rewrites a stock item's quantity and prices. Returns false when
// the id does not exist. A non-empty logNote records the manual adjustment in
// the movement history.
func (r *InventoryRepo) UpdateItem(ctx context.Context, id, quantity int64, costPrice, sellingPrice float64, logNote string) (bool, error) {
	found := false
	err := withRetry(ctx, func() error {
		tx, err := r.db.Begin(ctx)
		if err != nil {
			return fmt.Errorf("begin tx: %w", err)
		}
		defer tx.Rollback(ctx)

		var itemName string
		var oldQty int64
		err = tx.QueryRow(ctx,
			`SELECT item_name, quantity FROM inventory WHERE id = $1 FOR UPDATE`,
			id,
		).Scan(&itemName, &oldQty)
		if err != nil {
			if errors.Is(err, pgx.ErrNoRows) {
				return nil
			}
			return fmt.Errorf("lock inventory item %d: %w", id, err)
		}
		found = true

		_, err = tx.Exec(ctx, `
			UPDATE inventory SET quantity = $1, cost_price = $2, selling_price = $3 WHERE id = $4`,
			quantity, costPrice, sellingPrice, id,
		)
		if err != nil {
			return fmt.Errorf("update inventory item %d: %w", id, err)
		}

		if logNote != "" && quantity != oldQty {
			err = logInventoryChangeTx(ctx, tx, &models.InventoryLogEntry{
				ItemID:      id,
				ItemName:    itemName,
				Change:      quantity - oldQty,
				Reason:      "Manual Adjustment",
				Description: logNote,
			})
			if err != nil {
				return err
			}
		}

		return tx.Commit(ctx)
	})
	return found, err
}

// SellItem records a direct stock sale: checks availability, decrements the
// quantity and writes a sale line. Fails with an error when stock is short.
func (r *InventoryRepo) SellItem(ctx context.Context, itemID, qty int64, customerName string) error {
	return withRetry(ctx, func() error {
		tx, err := r.db.Begin(ctx)
		if err != nil {
			return fmt.Errorf("begin tx: %w", err)
		}
		defer tx.Rollback(ctx)

		var item models.InventoryItem
		err = tx.QueryRow(ctx, `
			SELECT id, item_name, quantity, selling_price FROM inventory WHERE id = $1 FOR UPDATE`,
			itemID,
		).Scan(&item.ID, &item.ItemName, &item.Quantity, &item.SellingPrice)
		if err != nil {
			if errors.Is(err, pgx.ErrNoRows) {
				return fmt.Errorf("item %d not found in inventory", itemID)
			}
			return fmt.Errorf("lock inventory item %d: %w", itemID, err)
		}
		if item.Quantity < qty {
			return fmt.Errorf("insufficient stock for %s: have %d, need %d", item.ItemName, item.Quantity, qty)
		}

		if _, err := tx.Exec(ctx,
			`UPDATE inventory SET quantity = quantity - $1 WHERE id = $2`, qty, itemID,
		); err != nil {
			return fmt.Errorf("deduct stock: %w", err)
		}

		err = logInventoryChangeTx(ctx, tx, &models.InventoryLogEntry{
			ItemID:      itemID,
			ItemName:    item.ItemName,
			Change:      -qty,
			Reason:      "Direct Sale",
			Description: fmt.Sprintf("Decrease by %d", qty),
		})
		if err != nil {
			return err
		}

		total := float64(qty) * item.SellingPrice
		_, err = tx.Exec(ctx, `
			INSERT INTO sales (customer_name, item_name, quantity_sold, sale_price, total_amount, sale_date, txn_type)
			VALUES ($1,$2,$3,$4,$5,$6,$7)`,
			customerName, item.ItemName, float64(qty), item.SellingPrice, total,
			todayDate(), models.TxnSale,
		)
		if err != nil {
			return fmt.Errorf("insert sale line: %w", err)
		}

		return tx.Commit(ctx)
	})
}

// LogsForItem returns the movement history of one stock item, newest first.
func (r *InventoryRepo) LogsForItem(ctx context.Context, itemID int64) ([]*models.InventoryLogEntry, error) {
	rows, err := r.db.Query(ctx, `
		SELECT id, created_at, item_id, item_name, change, reason, reference, description
		FROM inventory_logs
		WHERE item_id = $1
		ORDER BY id DESC`,
		itemID,
	)
	if err != nil {
		return nil, fmt.Errorf("fetch inventory logs: %w", err)
	}
	defer rows.Close()

	var logs []*models.InventoryLogEntry
	for rows.Next() {
		var l models.InventoryLogEntry
		if err := rows.Scan(
			&l.ID, &l.Timestamp, &l.ItemID, &l.ItemName,
			&l.Change, &l.Reason, &l.Reference, &l.Description,
		); err != nil {
			return nil, fmt.Errorf("scan inventory log: %w", err)
		}
		logs = append(logs, &l)
	}
	return logs, rows.Err()
}

// Valuation returns the total cost value and total retail value of stock on
// hand.
func (r *InventoryRepo) Valuation(ctx context.Context) (cost, retail float64, err error) {
	err = r.db.QueryRow(ctx, `
		SELECT COALESCE(SUM(quantity * cost_price), 0), COALESCE(SUM(quantity * selling_price), 0)
		FROM inventory`,
	).Scan(&cost, &retail)
	if err != nil {
		return 0, 0, fmt.Errorf("sum inventory valuation: %w", err)
	}
	return cost, retail, nil
}
