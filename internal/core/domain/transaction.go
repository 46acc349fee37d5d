package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// TransactionType indicates whether a transaction adds to or removes from a balance.
type TransactionType string

const (
	Deposit  TransactionType = "Deposit"
	Withdraw TransactionType = "Withdraw"
)

// Transaction represents a single executed movement on one account.
// Amount is strictly positive; NewBalance is the account balance snapshot
// immediately after the transaction was applied. A transaction is immutable
// once created except for the Checked marker, which the audit sweep sets after
// evaluating it against the single-transaction rule.
type Transaction struct {
	TransactionID   int64           `json:"transactionID"`
	TransactionType TransactionType `json:"transactionType"`
	Timestamp       time.Time       `json:"timestamp"`
	Amount          decimal.Decimal `json:"amount"`
	NewBalance      decimal.Decimal `json:"newBalance"`
	AccountID       int64           `json:"accountID"`
	Checked         bool            `json:"checked"`
}
