package services_test

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"

	"github.com/testbanken/backoffice/internal/core/domain"
	"github.com/testbanken/backoffice/internal/core/services"
)

func testRuleSet() services.RuleSet {
	return services.NewRuleSet(
		decimal.NewFromInt(15000),
		decimal.NewFromInt(23000),
		72*time.Hour,
	)
}

func TestSingleTransactionExceedsLimit(t *testing.T) {
	rules := testRuleSet()

	testCases := []struct {
		name   string
		amount string
		want   bool
	}{
		{"well below limit", "100.00", false},
		{"exactly at limit", "15000.00", false},
		{"just over limit", "15000.01", true},
		{"far over limit", "50000.00", true},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			txn := domain.Transaction{Amount: decimal.RequireFromString(tc.amount)}
			assert.Equal(t, tc.want, rules.SingleTransactionExceedsLimit(txn))
		})
	}
}

func TestRecentActivityExceedsLimit(t *testing.T) {
	rules := testRuleSet()

	testCases := []struct {
		name string
		sum  string
		want bool
	}{
		{"zero activity", "0", false},
		{"exactly at limit", "23000.00", false},
		{"just over limit", "23000.01", true},
		{"sum of small transactions over limit", "23500.00", true},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, rules.RecentActivityExceedsLimit(decimal.RequireFromString(tc.sum)))
		})
	}
}
