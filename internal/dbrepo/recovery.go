package dbrepo

import (
	"sort"
	"strings"

	"github.com/voltedge/workshop-api/internal/models"
)

// RecoveryCategories are the fixed item categories broken out on the
// recovery list. Anything else is counted under "other".
var RecoveryCategories = []string{"Inverter", "Charger", "Supplier"}

// categoryForItem resolves a sold item name to a recovery category. Exact
// name match against the fixed categories wins; otherwise the item's
// inventory category is matched by substring. Empty string means
// uncategorized.
func categoryForItem(itemName string, inventory []*models.InventoryItem) string {
	lower := strings.ToLower(itemName)

	for _, cat := range RecoveryCategories {
		if strings.ToLower(cat) == lower {
			return cat
		}
	}

	for _, item := range inventory {
		if strings.ToLower(item.ItemName) != lower {
			continue
		}
		raw := strings.ToLower(strings.TrimSpace(item.Category))
		for _, cat := range RecoveryCategories {
			if strings.Contains(raw, strings.ToLower(cat)) {
				return cat
			}
		}
		break
	}
	return ""
}

// BuildRecoveryList computes the customer recovery list: every party known
// to the directory or the ledger, its sales/paid totals, net outstanding and
// per-category sold quantities, sorted by highest outstanding first.
//
// Parties deleted from the directory (ghosts) are included only while they
// still carry a non-zero net balance.
func BuildRecoveryList(
	customers []*models.Customer,
	ledger []*models.LedgerEntry,
	sales []*models.SaleRecord,
	inventory []*models.InventoryItem,
) []*models.RecoveryRow {
	directory := make(map[string]*models.Customer, len(customers))
	for _, c := range customers {
		directory[c.Name] = c
	}

	parties := make(map[string]bool)
	for _, e := range ledger {
		parties[e.PartyName] = true
	}
	for _, c := range customers {
		parties[c.Name] = true
	}

	var rows []*models.RecoveryRow
	for party := range parties {
		row := &models.RecoveryRow{
			CustomerID:     "N/A",
			Name:           party,
			City:           "Unknown",
			Phone:          "N/A",
			CategoryCounts: make(map[string]float64, len(RecoveryCategories)),
		}
		for _, cat := range RecoveryCategories {
			row.CategoryCounts[cat] = 0
		}

		if c, ok := directory[party]; ok {
			row.CustomerID = c.CustomerID
			row.City = c.City
			row.Phone = c.Phone
			row.OpeningBalance = c.OpeningBalance
		} else {
			row.Deleted = true
			row.City = "(Deleted)"
		}

		var partyLedger []*models.LedgerEntry
		for _, e := range ledger {
			if e.PartyName != party {
				continue
			}
			partyLedger = append(partyLedger, e)
			if e.Debit > 0 {
				row.TotalSales += e.Debit
			}
			if e.Credit > 0 {
				row.TotalPaid += e.Credit
			}
		}

		// Sales lines give the precise item-to-category mapping.
		for _, s := range sales {
			if s.CustomerName != party {
				continue
			}
			if cat := categoryForItem(s.ItemName, inventory); cat != "" {
				row.CategoryCounts[cat] += s.QuantitySold
			} else {
				row.OtherCount += s.QuantitySold
			}
		}

		// Manual ledger sales (entered outside the invoice flow) fall back to
		// keyword matching on the description.
		for _, e := range partyLedger {
			if e.Debit <= 0 || e.Quantity <= 0 {
				continue
			}
			if strings.HasPrefix(e.Description, "Invoice #") || strings.HasPrefix(e.Description, "Bill") {
				continue
			}
			desc := strings.ToLower(e.Description)
			matched := false
			for _, cat := range RecoveryCategories {
				if strings.Contains(desc, strings.ToLower(cat)) {
					row.CategoryCounts[cat] += float64(e.Quantity)
					matched = true
					break
				}
			}
			if !matched && strings.Contains(desc, "sale") {
				row.OtherCount += float64(e.Quantity)
			}
		}

		row.NetOutstanding = row.TotalSales - row.TotalPaid + row.OpeningBalance

		if row.Deleted && row.NetOutstanding == 0 {
			continue
		}
		rows = append(rows, row)
	}

	sort.SliceStable(rows, func(i, j int) bool {
		return rows[i].NetOutstanding > rows[j].NetOutstanding
	})
	return rows
}
