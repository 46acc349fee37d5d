package dto

import "github.com/testbanken/backoffice/internal/core/domain"

// CountryStatsResponse is the back-office overview: one row per country plus
// the bank-wide totals.
type CountryStatsResponse struct {
	Countries []domain.CountryStat `json:"countries"`
	Global    domain.GlobalStat    `json:"global"`
}

// SweepSummary reports what one audit sweep covered and flagged.
type SweepSummary struct {
	CountriesScanned    int `json:"countriesScanned"`
	CountriesFailed     int `json:"countriesFailed"`
	CustomersScanned    int `json:"customersScanned"`
	FlaggedCustomers    int `json:"flaggedCustomers"`
	FlaggedTransactions int `json:"flaggedTransactions"`
	ReportsSent         int `json:"reportsSent"`
}
