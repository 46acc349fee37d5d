package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// Database row representations. Kept separate from the domain types so the
// schema can evolve without leaking column concerns into the core.

type Country struct {
	CountryCode          string `db:"country_code"`
	Name                 string `db:"name"`
	TelephoneCountryCode string `db:"telephone_country_code"`
}

type Customer struct {
	CustomerID  int64     `db:"customer_id"`
	FirstName   string    `db:"first_name"`
	LastName    string    `db:"last_name"`
	Address     string    `db:"address"`
	City        string    `db:"city"`
	PostalCode  string    `db:"postal_code"`
	Birthday    time.Time `db:"birthday"`
	NationalID  string    `db:"national_id"`
	Telephone   string    `db:"telephone"`
	Email       string    `db:"email"`
	CountryCode string    `db:"country_code"`
}

type Account struct {
	AccountID   int64           `db:"account_id"`
	AccountType string          `db:"account_type"`
	Created     time.Time       `db:"created"`
	Balance     decimal.Decimal `db:"balance"`
	CustomerID  int64           `db:"customer_id"`
}

type Transaction struct {
	TransactionID   int64           `db:"transaction_id"`
	TransactionType string          `db:"transaction_type"`
	Timestamp       time.Time       `db:"timestamp"`
	Amount          decimal.Decimal `db:"amount"`
	NewBalance      decimal.Decimal `db:"new_balance"`
	AccountID       int64           `db:"account_id"`
	Checked         bool            `db:"checked"`
}
