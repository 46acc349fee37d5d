package domain

import "github.com/shopspring/decimal"

// CountryStat is an aggregate row for the back-office overview: how many
// customers and accounts a country holds, and the total balance across them.
type CountryStat struct {
	CountryName       string          `json:"country"`
	NumberOfCustomers int64           `json:"numberOfCustomers"`
	NumberOfAccounts  int64           `json:"numberOfAccounts"`
	SumOfBalances     decimal.Decimal `json:"sumOfBalances"`
}

// GlobalStat is the bank-wide total over all country rows.
type GlobalStat struct {
	NumberOfCustomers int64           `json:"numberOfCustomers"`
	NumberOfAccounts  int64           `json:"numberOfAccounts"`
	SumOfBalances     decimal.Decimal `json:"sumOfBalances"`
}
