package dbrepo

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/voltedge/workshop-api/internal/models"
)

func TestRunningBalanceReplay(t *testing.T) {
	entries := []*models.LedgerEntry{
		{Debit: 1000},
		{Credit: 300},
		{Debit: 250.50},
		{Credit: 950.50},
	}
	balances := RunningBalance(entries)

	assert.Equal(t, []float64{1000, 700, 950.50, 0}, balances)
}

func TestRunningBalanceEmpty(t *testing.T) {
	assert.Empty(t, RunningBalance(nil))
}

func TestBuildStatementWithOpeningBalance(t *testing.T) {
	// A party with opening balance 500, one sale of 1000, one payment of 300
	entries := append(
		[]*models.LedgerEntry{openingEntry("Acme", 500)},
		&models.LedgerEntry{PartyName: "Acme", Date: "2026-03-01", Description: "Sale 'Inverter'", Debit: 1000},
		&models.LedgerEntry{PartyName: "Acme", Date: "2026-03-05", Description: "Cash Received", Credit: 300},
	)

	st := BuildStatement("Acme", entries)

	assert.Equal(t, "Acme", st.PartyName)
	assert.Len(t, st.Rows, 3)
	assert.Equal(t, "Old Khata", st.Rows[0].Date)
	assert.Equal(t, "Opening Balance (B/F)", st.Rows[0].Description)
	assert.Equal(t, 500.0, st.Rows[0].Balance)
	assert.Equal(t, 1500.0, st.Rows[1].Balance)
	assert.Equal(t, 1200.0, st.Rows[2].Balance)
	assert.Equal(t, 1200.0, st.FinalBalance)
}

func TestBuildStatementEmptyLedger(t *testing.T) {
	st := BuildStatement("Nobody", nil)
	assert.Empty(t, st.Rows)
	assert.Equal(t, 0.0, st.FinalBalance)
}

func TestOpeningEntrySides(t *testing.T) {
	pos := openingEntry("Acme", 750)
	assert.Equal(t, 750.0, pos.Debit)
	assert.Equal(t, 0.0, pos.Credit)

	neg := openingEntry("Acme", -200)
	assert.Equal(t, 0.0, neg.Debit)
	assert.Equal(t, 200.0, neg.Credit)
}

// The displayed final balance must equal the sum-based balance formula over
// the same rows.
func TestStatementMatchesSumFormula(t *testing.T) {
	entries := []*models.LedgerEntry{
		openingEntry("Acme", 500),
		{Debit: 1000},
		{Credit: 300},
		{Debit: 42.42},
		{Credit: 17.17},
	}

	var debits, credits float64
	for _, e := range entries {
		debits += e.Debit
		credits += e.Credit
	}

	st := BuildStatement("Acme", entries)
	assert.InDelta(t, debits-credits, st.FinalBalance, 1e-9)
}
