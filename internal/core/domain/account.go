package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// AccountType classifies an account.
type AccountType string

const (
	Personal AccountType = "Personal"
	Checking AccountType = "Checking"
	Savings  AccountType = "Savings"
)

// Account represents a customer account within the core domain.
// Balance is only ever written through the transaction engine; it is the sum
// of all signed transaction effects applied since the account was opened.
type Account struct {
	AccountID   int64           `json:"accountID"`
	AccountType AccountType     `json:"accountType"`
	Created     time.Time       `json:"created"`
	Balance     decimal.Decimal `json:"balance"`
	CustomerID  int64           `json:"customerID"`
}
