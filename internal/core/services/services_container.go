package services

import (
	portsrepo "github.com/testbanken/backoffice/internal/core/ports/repositories"
	portssvc "github.com/testbanken/backoffice/internal/core/ports/services"
	"github.com/testbanken/backoffice/pkg/config"
)

// NewServiceContainer creates a new service container with properly initialized dependencies.
func NewServiceContainer(cfg *config.Config, repos portsrepo.RepositoryProvider, notifier portssvc.Notifier) *portssvc.ServiceContainer {
	rules := NewRuleSet(cfg.AuditSingleTxnLimit, cfg.AuditRecentSumLimit, cfg.AuditRecentWindow)

	return &portssvc.ServiceContainer{
		Ledger:   NewLedgerService(repos.AccountRepo, repos.TransactionRepo),
		Customer: NewCustomerService(repos.CustomerRepo, repos.CountryRepo),
		Audit: NewAuditService(
			repos.CountryRepo,
			repos.CustomerRepo,
			repos.AccountRepo,
			repos.TransactionRepo,
			notifier,
			rules,
			AuditOptions{
				NotifyOnEmpty:  cfg.AuditNotifyOnEmpty,
				StorageTimeout: cfg.AuditStorageTimeout,
			},
		),
		Reporting: NewReportingService(repos.ReportingRepo),
	}
}
