package dbrepo

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/voltedge/workshop-api/internal/models"
)

func recoveryFixture() ([]*models.Customer, []*models.LedgerEntry, []*models.SaleRecord, []*models.InventoryItem) {
	customers := []*models.Customer{
		{CustomerID: "C001", Name: "Acme", City: "Lahore", Phone: "111", OpeningBalance: 500},
		{CustomerID: "C002", Name: "Bolt", City: "Karachi", Phone: "222"},
		{CustomerID: "C003", Name: "Idle", City: "Multan", Phone: "333"},
	}
	ledger := []*models.LedgerEntry{
		{PartyName: "Acme", Description: "Invoice #INV-2026-001", Debit: 1000},
		{PartyName: "Acme", Description: "Cash Received", Credit: 300},
		{PartyName: "Bolt", Description: "Sale 'Inverter'", Debit: 400, Quantity: 2},
		{PartyName: "Ghost", Description: "Sale 'Charger'", Debit: 250, Quantity: 1},
	}
	sales := []*models.SaleRecord{
		{CustomerName: "Acme", ItemName: "Solar Panel 300W", QuantitySold: 3},
		{CustomerName: "Acme", ItemName: "Inverter", QuantitySold: 1},
	}
	inventory := []*models.InventoryItem{
		{ItemName: "Solar Panel 300W", Category: "Solar"},
		{ItemName: "Hybrid Inverter", Category: "Inverter Units"},
	}
	return customers, ledger, sales, inventory
}

func findRow(rows []*models.RecoveryRow, name string) *models.RecoveryRow {
	for _, r := range rows {
		if r.Name == name {
			return r
		}
	}
	return nil
}

func TestRecoveryListTotalsAndOpening(t *testing.T) {
	rows := BuildRecoveryList(recoveryFixture())

	acme := findRow(rows, "Acme")
	if acme == nil {
		t.Fatal("Acme missing from recovery list")
	}
	assert.Equal(t, "C001", acme.CustomerID)
	assert.Equal(t, 1000.0, acme.TotalSales)
	assert.Equal(t, 300.0, acme.TotalPaid)
	assert.Equal(t, 500.0, acme.OpeningBalance)
	assert.Equal(t, 1200.0, acme.NetOutstanding)
	assert.False(t, acme.Deleted)
}

func TestRecoveryListGhostInclusion(t *testing.T) {
	rows := BuildRecoveryList(recoveryFixture())

	ghost := findRow(rows, "Ghost")
	if ghost == nil {
		t.Fatal("ghost party with outstanding balance missing")
	}
	assert.True(t, ghost.Deleted)
	assert.Equal(t, "(Deleted)", ghost.City)
	assert.Equal(t, "N/A", ghost.CustomerID)
	assert.Equal(t, 250.0, ghost.NetOutstanding)
}

func TestRecoveryListZeroBalanceGhostExcluded(t *testing.T) {
	ledger := []*models.LedgerEntry{
		{PartyName: "Settled", Debit: 100},
		{PartyName: "Settled", Credit: 100},
	}
	rows := BuildRecoveryList(nil, ledger, nil, nil)
	assert.Nil(t, findRow(rows, "Settled"))
}

func TestRecoveryListDirectoryOnlyPartyIncluded(t *testing.T) {
	rows := BuildRecoveryList(recoveryFixture())

	idle := findRow(rows, "Idle")
	if idle == nil {
		t.Fatal("directory party with no ledger missing")
	}
	assert.Equal(t, 0.0, idle.NetOutstanding)
	assert.False(t, idle.Deleted)
}

func TestRecoveryListCategoryCounts(t *testing.T) {
	rows := BuildRecoveryList(recoveryFixture())

	acme := findRow(rows, "Acme")
	// "Inverter" matches the fixed category by exact name; the solar panel
	// resolves through inventory to no fixed category and lands in other
	assert.Equal(t, 1.0, acme.CategoryCounts["Inverter"])
	assert.Equal(t, 3.0, acme.OtherCount)

	// Bolt's manual ledger sale matches the Inverter keyword
	bolt := findRow(rows, "Bolt")
	assert.Equal(t, 2.0, bolt.CategoryCounts["Inverter"])

	// Ghost's manual ledger sale matches the Charger keyword
	ghost := findRow(rows, "Ghost")
	assert.Equal(t, 1.0, ghost.CategoryCounts["Charger"])
}

func TestRecoveryListInventoryCategorySubstringMatch(t *testing.T) {
	sales := []*models.SaleRecord{
		{CustomerName: "Acme", ItemName: "Hybrid Inverter", QuantitySold: 2},
	}
	inventory := []*models.InventoryItem{
		{ItemName: "Hybrid Inverter", Category: "Inverter Units"},
	}
	customers := []*models.Customer{{CustomerID: "C001", Name: "Acme"}}

	rows := BuildRecoveryList(customers, nil, sales, inventory)
	acme := findRow(rows, "Acme")
	assert.Equal(t, 2.0, acme.CategoryCounts["Inverter"])
}

func TestRecoveryListSortedByOutstanding(t *testing.T) {
	rows := BuildRecoveryList(recoveryFixture())
	for i := 1; i < len(rows); i++ {
		if rows[i].NetOutstanding > rows[i-1].NetOutstanding {
			t.Fatalf("rows not sorted by net outstanding at %d", i)
		}
	}
}

// Sum of net outstanding across the list must equal the sum of each party's
// balance formula computed independently.
func TestRecoveryListConservation(t *testing.T) {
	customers, ledger, sales, inventory := recoveryFixture()
	rows := BuildRecoveryList(customers, ledger, sales, inventory)

	var listSum float64
	for _, r := range rows {
		listSum += r.NetOutstanding
	}

	parties := map[string]bool{}
	for _, e := range ledger {
		parties[e.PartyName] = true
	}
	for _, c := range customers {
		parties[c.Name] = true
	}

	var wantSum float64
	for p := range parties {
		var bal float64
		for _, e := range ledger {
			if e.PartyName == p {
				bal += e.Debit - e.Credit
			}
		}
		for _, c := range customers {
			if c.Name == p {
				bal += c.OpeningBalance
			}
		}
		wantSum += bal
	}

	assert.InDelta(t, wantSum, listSum, 1e-9)
}
