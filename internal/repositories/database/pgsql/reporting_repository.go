package pgsql

import (
	"context"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/testbanken/backoffice/internal/apperrors"
	"github.com/testbanken/backoffice/internal/core/domain"
	portsrepo "github.com/testbanken/backoffice/internal/core/ports/repositories"
)

type PgxReportingRepository struct {
	BaseRepository
}

func newPgxReportingRepository(pool *pgxpool.Pool) portsrepo.ReportingRepositoryFacade {
	return &PgxReportingRepository{BaseRepository: BaseRepository{Pool: pool}}
}

var _ portsrepo.ReportingRepositoryFacade = (*PgxReportingRepository)(nil)

// CountryStats aggregates customer count, account count and summed balances
// per country, smallest total first.
func (r *PgxReportingRepository) CountryStats(ctx context.Context) ([]domain.CountryStat, error) {
	rows, err := r.Pool.Query(ctx, `
		SELECT c.name,
		       COUNT(DISTINCT cu.customer_id) AS number_of_customers,
		       COUNT(a.account_id)            AS number_of_accounts,
		       COALESCE(SUM(a.balance), 0)    AS sum_of_accounts
		FROM countries c
		JOIN customers cu ON cu.country_code = c.country_code
		JOIN accounts a ON a.customer_id = cu.customer_id
		GROUP BY c.name
		ORDER BY sum_of_accounts;
	`)
	if err != nil {
		return nil, apperrors.NewAppError(500, "failed to query country stats", err)
	}
	defer rows.Close()

	var stats []domain.CountryStat
	for rows.Next() {
		var stat domain.CountryStat
		if err := rows.Scan(&stat.CountryName, &stat.NumberOfCustomers, &stat.NumberOfAccounts, &stat.SumOfBalances); err != nil {
			return nil, apperrors.NewAppError(500, "failed to scan country stat row", err)
		}
		stats = append(stats, stat)
	}
	if err := rows.Err(); err != nil {
		return nil, apperrors.NewAppError(500, "failed reading country stat rows", err)
	}
	return stats, nil
}
