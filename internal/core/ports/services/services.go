package services

import (
	"context"
	"time"

	"github.com/shopspring/decimal"
	"github.com/testbanken/backoffice/internal/core/domain"
	"github.com/testbanken/backoffice/internal/dto"
)

// LedgerSvcFacade is the transaction engine: the only component that creates
// transactions and moves balances.
type LedgerSvcFacade interface {
	// ProcessTransaction executes a single deposit or withdrawal.
	ProcessTransaction(ctx context.Context, accountID int64, amount decimal.Decimal, txnType domain.TransactionType) (*domain.Transaction, error)
	// ProcessTransfer executes an atomic two-leg transfer and returns the
	// withdraw and deposit legs.
	ProcessTransfer(ctx context.Context, fromAccountID, toAccountID int64, amount decimal.Decimal) (*domain.Transaction, *domain.Transaction, error)
	// GetAccount resolves an account by id; apperrors.ErrNotFound propagates
	// so callers can render a 404-equivalent response.
	GetAccount(ctx context.Context, accountID int64) (*domain.Account, error)
	// ListTransactions returns a page of the account's history, newest first.
	ListTransactions(ctx context.Context, accountID int64, page, perPage int) (*dto.ListTransactionsResponse, error)
}

// CustomerSvcFacade handles onboarding.
type CustomerSvcFacade interface {
	RegisterCustomer(ctx context.Context, req dto.RegisterCustomerRequest) (*domain.Customer, *domain.Account, error)
	GetCustomer(ctx context.Context, customerID int64) (*domain.Customer, error)
}

// AuditSvcFacade runs the compliance sweep.
type AuditSvcFacade interface {
	// RunSweep scans all countries as of now and dispatches per-country
	// reports. One country failing does not abort the others.
	RunSweep(ctx context.Context, now time.Time) (*dto.SweepSummary, error)
}

// ReportingSvcFacade serves the back-office overview.
type ReportingSvcFacade interface {
	GetCountryStats(ctx context.Context) (*dto.CountryStatsResponse, error)
}

// Notifier dispatches a notification. Fire-and-forget from the core's
// perspective; retry policy belongs to the implementation.
type Notifier interface {
	Send(ctx context.Context, recipient, subject, body string) error
}

// ServiceContainer bundles the constructed services for wiring.
type ServiceContainer struct {
	Ledger    LedgerSvcFacade
	Customer  CustomerSvcFacade
	Audit     AuditSvcFacade
	Reporting ReportingSvcFacade
}
