package pgsql

import (
	"github.com/jackc/pgx/v5/pgxpool"
	portsrepo "github.com/testbanken/backoffice/internal/core/ports/repositories"
)

func NewRepositoryProvider(dbPool *pgxpool.Pool) portsrepo.RepositoryProvider {
	return portsrepo.RepositoryProvider{
		AccountRepo:     newPgxAccountRepository(dbPool),
		CustomerRepo:    newPgxCustomerRepository(dbPool),
		CountryRepo:     newPgxCountryRepository(dbPool),
		TransactionRepo: newPgxTransactionRepository(dbPool),
		ReportingRepo:   newPgxReportingRepository(dbPool),
	}
}
