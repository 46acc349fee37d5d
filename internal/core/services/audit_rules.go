package services

import (
	"time"

	"github.com/shopspring/decimal"
	"github.com/testbanken/backoffice/internal/core/domain"
)

// RuleSet holds the fraud thresholds the audit sweep evaluates. Both
// predicates are pure; the boundary is strict greater-than, so a transaction
// of exactly the limit does not flag.
type RuleSet struct {
	SingleTxnLimit decimal.Decimal
	RecentSumLimit decimal.Decimal
	RecentWindow   time.Duration
}

// NewRuleSet builds a rule set from configured thresholds.
func NewRuleSet(singleTxnLimit, recentSumLimit decimal.Decimal, recentWindow time.Duration) RuleSet {
	return RuleSet{
		SingleTxnLimit: singleTxnLimit,
		RecentSumLimit: recentSumLimit,
		RecentWindow:   recentWindow,
	}
}

// SingleTransactionExceedsLimit reports whether one transaction alone is
// large enough to flag.
func (r RuleSet) SingleTransactionExceedsLimit(txn domain.Transaction) bool {
	return txn.Amount.GreaterThan(r.SingleTxnLimit)
}

// RecentActivityExceedsLimit reports whether the summed transaction amounts
// of a customer over the trailing window exceed the limit.
func (r RuleSet) RecentActivityExceedsLimit(sumOfRecentTransactions decimal.Decimal) bool {
	return sumOfRecentTransactions.GreaterThan(r.RecentSumLimit)
}
