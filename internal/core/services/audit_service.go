package services

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/testbanken/backoffice/internal/core/domain"
	portsrepo "github.com/testbanken/backoffice/internal/core/ports/repositories"
	portssvc "github.com/testbanken/backoffice/internal/core/ports/services"
	"github.com/testbanken/backoffice/internal/dto"
	"github.com/testbanken/backoffice/internal/middleware"
)

// recipientDomain is where per-country audit reports are addressed:
// <lowercase country name>@testbanken.se
const recipientDomain = "testbanken.se"

// subjectTimeLayout matches the timestamp format used in report subjects.
const subjectTimeLayout = "01/02/2006, 15:04:05"

// AuditOptions tunes sweep behaviour beyond the rule thresholds.
type AuditOptions struct {
	// NotifyOnEmpty sends a "no suspicious transactions" message for
	// countries with no findings instead of staying silent.
	NotifyOnEmpty bool
	// StorageTimeout bounds each storage round-trip so a hung call cannot
	// block the single scanner worker indefinitely.
	StorageTimeout time.Duration
}

// auditService iterates countries, customers and transactions, applies the
// rule set, marks evaluated transactions checked and dispatches per-country
// reports. A failure in one country or customer is logged and skipped; it
// never aborts the rest of the sweep.
type auditService struct {
	countryRepo  portsrepo.CountryRepositoryFacade
	customerRepo portsrepo.CustomerRepositoryFacade
	accountRepo  portsrepo.AccountRepositoryFacade
	txnRepo      portsrepo.TransactionRepositoryFacade
	notifier     portssvc.Notifier
	rules        RuleSet
	opts         AuditOptions
}

// NewAuditService creates a new audit scanner.
func NewAuditService(
	countryRepo portsrepo.CountryRepositoryFacade,
	customerRepo portsrepo.CustomerRepositoryFacade,
	accountRepo portsrepo.AccountRepositoryFacade,
	txnRepo portsrepo.TransactionRepositoryFacade,
	notifier portssvc.Notifier,
	rules RuleSet,
	opts AuditOptions,
) portssvc.AuditSvcFacade {
	if opts.StorageTimeout <= 0 {
		opts.StorageTimeout = 30 * time.Second
	}
	return &auditService{
		countryRepo:  countryRepo,
		customerRepo: customerRepo,
		accountRepo:  accountRepo,
		txnRepo:      txnRepo,
		notifier:     notifier,
		rules:        rules,
		opts:         opts,
	}
}

var _ portssvc.AuditSvcFacade = (*auditService)(nil)

// RunSweep scans all countries as of now.
// Implements portssvc.AuditSvcFacade
func (s *auditService) RunSweep(ctx context.Context, now time.Time) (*dto.SweepSummary, error) {
	logger := middleware.GetLoggerFromCtx(ctx)
	summary := &dto.SweepSummary{}

	countries, err := s.withTimeoutCountries(ctx)
	if err != nil {
		logger.Error("Failed to fetch countries for sweep", slog.String("error", err.Error()))
		return nil, fmt.Errorf("failed to fetch countries: %w", err)
	}

	yesterday := now.AddDate(0, 0, -1)
	windowStart := now.Add(-s.rules.RecentWindow)

	for _, country := range countries {
		if err := ctx.Err(); err != nil {
			// Cancellation mid-sweep is safe: checked flags committed so far
			// stay committed.
			return summary, err
		}

		if err := s.scanCountry(ctx, country, yesterday, windowStart, now, summary); err != nil {
			logger.Error("Country sweep failed, continuing with remaining countries",
				slog.String("country", country.Name),
				slog.String("error", err.Error()),
			)
			summary.CountriesFailed++
			continue
		}
		summary.CountriesScanned++
	}

	logger.Info("Audit sweep completed",
		slog.Int("countries_scanned", summary.CountriesScanned),
		slog.Int("countries_failed", summary.CountriesFailed),
		slog.Int("customers_scanned", summary.CustomersScanned),
		slog.Int("flagged_customers", summary.FlaggedCustomers),
		slog.Int("flagged_transactions", summary.FlaggedTransactions),
		slog.Int("reports_sent", summary.ReportsSent),
	)
	return summary, nil
}

func (s *auditService) withTimeoutCountries(ctx context.Context) ([]domain.Country, error) {
	tctx, cancel := context.WithTimeout(ctx, s.opts.StorageTimeout)
	defer cancel()
	return s.countryRepo.FindAllCountries(tctx)
}

// scanCountry processes every customer of one country and dispatches the
// country report when there are findings.
func (s *auditService) scanCountry(ctx context.Context, country domain.Country, yesterday, windowStart, now time.Time, summary *dto.SweepSummary) error {
	logger := middleware.GetLoggerFromCtx(ctx)

	cctx, cancel := context.WithTimeout(ctx, s.opts.StorageTimeout)
	customers, err := s.customerRepo.FindCustomersByCountry(cctx, country.CountryCode)
	cancel()
	if err != nil {
		return fmt.Errorf("failed to fetch customers for country %s: %w", country.CountryCode, err)
	}

	var flagged []*domain.FlaggedCustomer
	for _, customer := range customers {
		if err := ctx.Err(); err != nil {
			return err
		}

		entry, err := s.scanCustomer(ctx, customer, yesterday, windowStart)
		if err != nil {
			logger.Error("Customer scan failed, continuing with remaining customers",
				slog.Int64("customer_id", customer.CustomerID),
				slog.String("error", err.Error()),
			)
			continue
		}
		summary.CustomersScanned++
		if entry.HasFindings() {
			flagged = append(flagged, entry)
			summary.FlaggedCustomers++
			summary.FlaggedTransactions += len(entry.TransactionIDs)
		}
	}

	recipient := fmt.Sprintf("%s@%s", strings.ToLower(country.Name), recipientDomain)

	if len(flagged) > 0 {
		subject := "Suspicious transactions found at " + now.Format(subjectTimeLayout)
		body := ComposeReport(flagged)
		// Checked flags are already committed per customer; a dispatch
		// failure loses only the notification, never audit progress.
		if err := s.notifier.Send(ctx, recipient, subject, body); err != nil {
			logger.Error("Failed to send audit report", slog.String("recipient", recipient), slog.String("error", err.Error()))
			return nil
		}
		summary.ReportsSent++
		return nil
	}

	if s.opts.NotifyOnEmpty {
		subject := "No suspicious transactions found at " + now.Format(subjectTimeLayout)
		if err := s.notifier.Send(ctx, recipient, subject, "No transactions found"); err != nil {
			logger.Error("Failed to send empty audit report", slog.String("recipient", recipient), slog.String("error", err.Error()))
			return nil
		}
		summary.ReportsSent++
	}
	return nil
}

// scanCustomer applies both rules to one customer and persists the checked
// flags for everything the single-transaction rule evaluated.
func (s *auditService) scanCustomer(ctx context.Context, customer domain.Customer, yesterday, windowStart time.Time) (*domain.FlaggedCustomer, error) {
	tctx, cancel := context.WithTimeout(ctx, s.opts.StorageTimeout)
	defer cancel()

	entry := domain.NewFlaggedCustomer(customer)

	// Rule 1: single transaction over the limit, evaluated once per
	// transaction. Every fetched transaction is marked checked whether or
	// not it flagged, so the next sweep never re-evaluates it.
	txns, err := s.txnRepo.FindUncheckedTransactionsOnDate(tctx, customer.CustomerID, yesterday)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch unchecked transactions: %w", err)
	}

	checkedIDs := make([]int64, 0, len(txns))
	for _, txn := range txns {
		if s.rules.SingleTransactionExceedsLimit(txn) {
			entry.AddTransaction(txn.TransactionID, txn.AccountID)
		}
		checkedIDs = append(checkedIDs, txn.TransactionID)
	}

	if len(checkedIDs) > 0 {
		if err := s.txnRepo.MarkTransactionsChecked(tctx, checkedIDs); err != nil {
			return nil, fmt.Errorf("failed to mark transactions checked: %w", err)
		}
	}

	// Rule 2: summed activity over the trailing window. This legitimately
	// re-flags already-checked transactions while they remain in the window.
	sum, err := s.txnRepo.SumTransactionsSince(tctx, customer.CustomerID, windowStart)
	if err != nil {
		return nil, fmt.Errorf("failed to sum recent transactions: %w", err)
	}

	if s.rules.RecentActivityExceedsLimit(sum) {
		recent, err := s.txnRepo.FindTransactionsSince(tctx, customer.CustomerID, windowStart)
		if err != nil {
			return nil, fmt.Errorf("failed to fetch recent transactions: %w", err)
		}
		for _, txn := range recent {
			entry.AddTransaction(txn.TransactionID, txn.AccountID)
		}
		// The customer-level rule reports all accounts of the customer, not
		// just the ones the contributing transactions touched.
		accounts, err := s.accountRepo.FindAccountsByCustomer(tctx, customer.CustomerID)
		if err != nil {
			return nil, fmt.Errorf("failed to fetch accounts: %w", err)
		}
		for _, account := range accounts {
			entry.AccountIDs[account.AccountID] = struct{}{}
		}
	}

	return entry, nil
}
