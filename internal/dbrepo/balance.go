package dbrepo

import (
	"github.com/voltedge/workshop-api/internal/models"
)

// RunningBalance returns the cumulative debit-credit series over entries in
// the order given. Replaying the series must reproduce the displayed balance
// exactly.
func RunningBalance(entries []*models.LedgerEntry) []float64 {
	balances := make([]float64, len(entries))
	running := 0.0
	for i, e := range entries {
		running += e.Debit - e.Credit
		balances[i] = running
	}
	return balances
}

// BuildStatement shapes a party's ledger entries into renderer-ready rows
// with a pre-computed Balance column and the closing balance.
func BuildStatement(party string, entries []*models.LedgerEntry) *models.Statement {
	balances := RunningBalance(entries)

	rows := make([]models.StatementRow, len(entries))
	for i, e := range entries {
		rows[i] = models.StatementRow{LedgerEntry: *e, Balance: balances[i]}
	}

	final := 0.0
	if len(balances) > 0 {
		final = balances[len(balances)-1]
	}

	return &models.Statement{
		PartyName:    party,
		Rows:         rows,
		FinalBalance: final,
	}
}
