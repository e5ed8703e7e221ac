// Package recon matches bank-statement line items against ledger entries.
package recon

import (
	"cloud.google.com/go/civil"
)

// Transaction is one side of a reconciliation. Matching is defined only on
// Amount and Date; the remaining fields ride along for reporting.
type Transaction struct {
	Amount      float64    `json:"amount"`
	Date        civil.Date `json:"date"`
	Description string     `json:"description,omitempty"`
	Reference   string     `json:"reference,omitempty"`
}

// Match pairs a bank transaction with the ledger transaction that satisfied it.
type Match struct {
	Bank   Transaction `json:"bank_tx"`
	Ledger Transaction `json:"ledger_tx"`
}

// MatchResult reports the matches plus the unmatched remainder on both sides.
type MatchResult struct {
	Matches         []Match       `json:"matches"`
	UnmatchedBank   []Transaction `json:"unmatched_bank"`
	UnmatchedLedger []Transaction `json:"unmatched_ledger"`
}

// Reconcile pairs the two lists greedily: each bank transaction takes the
// first ledger transaction with equal amount and date. A matched ledger
// transaction stays eligible for later bank transactions, so one ledger
// entry can back multiple matches; that is a known limitation of this
// routine, kept pending product clarification. A ledger transaction counts
// as seen when it is value-equal to the ledger side of any recorded match.
//
// The scan is O(n*m), fine for small daily batches. A replacement should
// index by (amount, date) but must keep these exact-match semantics.
func Reconcile(bankTxns, ledgerTxns []Transaction) MatchResult {
	result := MatchResult{
		Matches:         []Match{},
		UnmatchedBank:   []Transaction{},
		UnmatchedLedger: []Transaction{},
	}

	for _, bt := range bankTxns {
		matched := false
		for _, lt := range ledgerTxns {
			if equalKey(bt, lt) {
				result.Matches = append(result.Matches, Match{Bank: bt, Ledger: lt})
				matched = true
				break
			}
		}
		if !matched {
			result.UnmatchedBank = append(result.UnmatchedBank, bt)
		}
	}

	for _, lt := range ledgerTxns {
		seen := false
		for _, m := range result.Matches {
			if lt == m.Ledger {
				seen = true
				break
			}
		}
		if !seen {
			result.UnmatchedLedger = append(result.UnmatchedLedger, lt)
		}
	}

	return result
}

func equalKey(a, b Transaction) bool {
	return a.Amount == b.Amount && a.Date == b.Date
}
