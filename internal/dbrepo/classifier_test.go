package dbrepo

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/voltedge/workshop-api/internal/models"
)

func TestClassifySale(t *testing.T) {
	row := models.BatchRow{
		Type: models.TxnSale, ItemName: "Inverter", Description: "1200W",
		Qty: 2, Rate: 500, Total: 1000, CashReceived: 400,
	}
	postings := ClassifyRow(row)

	assert.Len(t, postings, 2)
	assert.Equal(t, "Sale 'Inverter' - 1200W", postings[0].Description)
	assert.Equal(t, 1000.0, postings[0].Debit)
	assert.Equal(t, int64(2), postings[0].Quantity)
	assert.Equal(t, 500.0, postings[0].Rate)
	assert.Equal(t, "Cash Received", postings[1].Description)
	assert.Equal(t, 400.0, postings[1].Credit)
}

func TestClassifyPurchaseCashFallback(t *testing.T) {
	// Paid amount sometimes arrives in the received column on older documents
	row := models.BatchRow{
		Type: models.TxnPurchase, ItemName: "Charger",
		Total: 300, CashReceived: 300,
	}
	postings := ClassifyRow(row)

	assert.Len(t, postings, 2)
	assert.Equal(t, 300.0, postings[0].Credit)
	assert.Equal(t, "Cash Paid", postings[1].Description)
	assert.Equal(t, 300.0, postings[1].Debit)
}

func TestClassifySaleReturnRefund(t *testing.T) {
	row := models.BatchRow{
		Type: models.TxnSaleReturn, ItemName: "Battery",
		Total: 150, CashPaid: 150,
	}
	postings := ClassifyRow(row)

	assert.Len(t, postings, 2)
	assert.Equal(t, 150.0, postings[0].Credit)
	assert.Equal(t, "Cash Refund", postings[1].Description)
	assert.Equal(t, 150.0, postings[1].Debit)
}

func TestClassifyPurchaseReturn(t *testing.T) {
	row := models.BatchRow{Type: models.TxnPurchaseReturn, ItemName: "Cable", Total: 75}
	postings := ClassifyRow(row)

	assert.Len(t, postings, 1)
	assert.Equal(t, 75.0, postings[0].Debit)
}

func TestClassifyStandaloneCash(t *testing.T) {
	recv := ClassifyRow(models.BatchRow{Type: models.TxnCashReceived, CashReceived: 100})
	assert.Len(t, recv, 1)
	assert.Equal(t, 100.0, recv[0].Credit)

	paid := ClassifyRow(models.BatchRow{Type: models.TxnCashPaid, CashPaid: 80})
	assert.Len(t, paid, 1)
	assert.Equal(t, 80.0, paid[0].Debit)

	both := ClassifyRow(models.BatchRow{Type: models.TxnCash, CashReceived: 50, CashPaid: 20})
	assert.Len(t, both, 2)
	assert.Equal(t, 50.0, both[0].Credit)
	assert.Equal(t, 20.0, both[1].Debit)
}

func TestClassifyZeroCashProducesNothing(t *testing.T) {
	assert.Empty(t, ClassifyRow(models.BatchRow{Type: models.TxnCashReceived}))
	assert.Empty(t, ClassifyRow(models.BatchRow{Type: models.TxnCashPaid}))
}

func TestRowIsEmpty(t *testing.T) {
	assert.True(t, rowIsEmpty(models.BatchRow{Type: models.TxnSale}))
	assert.False(t, rowIsEmpty(models.BatchRow{ItemName: "Inverter"}))
	assert.False(t, rowIsEmpty(models.BatchRow{Total: 10}))
	assert.False(t, rowIsEmpty(models.BatchRow{CashReceived: 10}))
	assert.False(t, rowIsEmpty(models.BatchRow{CashPaid: 10}))
}

// Net ledger effect of one batch covering every row kind: every amount is
// accounted for exactly once.
func TestClassifyBatchNetEffect(t *testing.T) {
	batch := []models.BatchRow{
		{Type: models.TxnSale, ItemName: "A", Total: 1000, CashReceived: 200},
		{Type: models.TxnPurchase, ItemName: "B", Total: 400, CashPaid: 100},
		{Type: models.TxnSaleReturn, ItemName: "A", Total: 150},
		{Type: models.TxnPurchaseReturn, ItemName: "B", Total: 50},
		{Type: models.TxnCashReceived, CashReceived: 300},
		{Type: models.TxnCashPaid, CashPaid: 120},
	}

	var net float64
	for _, row := range batch {
		for _, p := range ClassifyRow(row) {
			net += p.Debit - p.Credit
		}
	}

	// 1000 - 200 - 400 + 100 - 150 + 50 - 300 + 120
	assert.InDelta(t, 220.0, net, 1e-9)
}
