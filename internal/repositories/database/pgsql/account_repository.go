package pgsql

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/testbanken/backoffice/internal/apperrors"
	"github.com/testbanken/backoffice/internal/core/domain"
	portsrepo "github.com/testbanken/backoffice/internal/core/ports/repositories"
	"github.com/testbanken/backoffice/internal/models"
	"github.com/testbanken/backoffice/internal/utils/mapping"
)

type PgxAccountRepository struct {
	BaseRepository
}

func newPgxAccountRepository(pool *pgxpool.Pool) portsrepo.AccountRepositoryFacade {
	return &PgxAccountRepository{BaseRepository: BaseRepository{Pool: pool}}
}

var _ portsrepo.AccountRepositoryFacade = (*PgxAccountRepository)(nil)

const selectAccountColumns = `
	SELECT account_id, account_type, created, balance, customer_id
	FROM accounts
`

// FindAccountByID returns the account or apperrors.ErrNotFound.
func (r *PgxAccountRepository) FindAccountByID(ctx context.Context, accountID int64) (*domain.Account, error) {
	var m models.Account
	err := r.Pool.QueryRow(ctx, selectAccountColumns+`WHERE account_id = $1;`, accountID).Scan(
		&m.AccountID,
		&m.AccountType,
		&m.Created,
		&m.Balance,
		&m.CustomerID,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, apperrors.NewAppError(500, "failed to query account", err)
	}

	account := mapping.ToDomainAccount(m)
	return &account, nil
}

// FindAccountsByCustomer returns all accounts owned by the customer.
func (r *PgxAccountRepository) FindAccountsByCustomer(ctx context.Context, customerID int64) ([]domain.Account, error) {
	rows, err := r.Pool.Query(ctx, selectAccountColumns+`WHERE customer_id = $1 ORDER BY account_id;`, customerID)
	if err != nil {
		return nil, apperrors.NewAppError(500, "failed to query customer accounts", err)
	}
	defer rows.Close()

	var accounts []domain.Account
	for rows.Next() {
		var m models.Account
		if err := rows.Scan(&m.AccountID, &m.AccountType, &m.Created, &m.Balance, &m.CustomerID); err != nil {
			return nil, apperrors.NewAppError(500, "failed to scan account row", err)
		}
		accounts = append(accounts, mapping.ToDomainAccount(m))
	}
	if err := rows.Err(); err != nil {
		return nil, apperrors.NewAppError(500, "failed reading account rows", err)
	}
	return accounts, nil
}
