package dbrepo

import (
	"github.com/voltedge/workshop-api/internal/models"
)

// rowIsEmpty reports whether a batch row carries nothing worth recording:
// no item name, no amount, no cash movement.
func rowIsEmpty(r models.BatchRow) bool {
	return r.ItemName == "" && r.Total == 0 && r.CashReceived == 0 && r.CashPaid == 0
}

func rowDescription(r models.BatchRow) string {
	desc := r.Type + " '" + r.ItemName + "'"
	if r.Description != "" {
		desc += " - " + r.Description
	}
	return desc
}

// ClassifyRow maps one batch row onto its ledger effects, per the routing
// rules: debit increases the party's receivable from us, credit records
// value received from the party.
func ClassifyRow(r models.BatchRow) []models.LedgerPosting {
	var postings []models.LedgerPosting

	add := func(description string, debit, credit float64, withMeta bool) {
		p := models.LedgerPosting{
			Description: description,
			Debit:       debit,
			Credit:      credit,
			Date:        r.Date,
		}
		if withMeta {
			p.Quantity = int64(r.Qty)
			p.Rate = r.Rate
			p.Discount = r.Discount
		}
		postings = append(postings, p)
	}

	switch r.Type {
	case models.TxnSale:
		add(rowDescription(r), r.Total, 0, true)
		if r.CashReceived > 0 {
			add("Cash Received", 0, r.CashReceived, false)
		}

	case models.TxnPurchase:
		add(rowDescription(r), 0, r.Total, true)
		switch {
		case r.CashPaid > 0:
			add("Cash Paid", r.CashPaid, 0, false)
		case r.CashReceived > 0:
			// Older documents carry the paid amount in the received column
			add("Cash Paid", r.CashReceived, 0, false)
		}

	case models.TxnSaleReturn:
		add(rowDescription(r), 0, r.Total, true)
		if r.CashPaid > 0 {
			add("Cash Refund", r.CashPaid, 0, false)
		}

	case models.TxnPurchaseReturn:
		add(rowDescription(r), r.Total, 0, true)

	case models.TxnCashReceived:
		if r.CashReceived > 0 {
			add("Cash Received", 0, r.CashReceived, false)
		}

	case models.TxnCashPaid:
		if r.CashPaid > 0 {
			add("Cash Paid", r.CashPaid, 0, false)
		}

	case models.TxnCash:
		// Ambiguous rows apply both branches independently
		if r.CashReceived > 0 {
			add("Cash Received", 0, r.CashReceived, false)
		}
		if r.CashPaid > 0 {
			add("Cash Paid", r.CashPaid, 0, false)
		}
	}

	return postings
}
