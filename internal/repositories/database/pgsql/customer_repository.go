package pgsql

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/testbanken/backoffice/internal/apperrors"
	"github.com/testbanken/backoffice/internal/core/domain"
	portsrepo "github.com/testbanken/backoffice/internal/core/ports/repositories"
	"github.com/testbanken/backoffice/internal/models"
	"github.com/testbanken/backoffice/internal/utils/mapping"
)

// uniqueViolation is the Postgres error code for unique constraint breaches.
const uniqueViolation = "23505"

type PgxCustomerRepository struct {
	BaseRepository
}

func newPgxCustomerRepository(pool *pgxpool.Pool) portsrepo.CustomerRepositoryFacade {
	return &PgxCustomerRepository{BaseRepository: BaseRepository{Pool: pool}}
}

var _ portsrepo.CustomerRepositoryFacade = (*PgxCustomerRepository)(nil)

const selectCustomerColumns = `
	SELECT customer_id, first_name, last_name, address, city, postal_code, birthday,
	       national_id, telephone, email, country_code
	FROM customers
`

func scanCustomer(row pgx.Row) (*domain.Customer, error) {
	var m models.Customer
	err := row.Scan(
		&m.CustomerID,
		&m.FirstName,
		&m.LastName,
		&m.Address,
		&m.City,
		&m.PostalCode,
		&m.Birthday,
		&m.NationalID,
		&m.Telephone,
		&m.Email,
		&m.CountryCode,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, apperrors.NewAppError(500, "failed to scan customer row", err)
	}
	customer := mapping.ToDomainCustomer(m)
	return &customer, nil
}

// FindCustomerByID returns the customer or apperrors.ErrNotFound.
func (r *PgxCustomerRepository) FindCustomerByID(ctx context.Context, customerID int64) (*domain.Customer, error) {
	return scanCustomer(r.Pool.QueryRow(ctx, selectCustomerColumns+`WHERE customer_id = $1;`, customerID))
}

// FindCustomersByCountry returns all customers registered in the country.
func (r *PgxCustomerRepository) FindCustomersByCountry(ctx context.Context, countryCode string) ([]domain.Customer, error) {
	rows, err := r.Pool.Query(ctx, selectCustomerColumns+`WHERE country_code = $1 ORDER BY customer_id;`, countryCode)
	if err != nil {
		return nil, apperrors.NewAppError(500, "failed to query customers by country", err)
	}
	defer rows.Close()

	var customers []domain.Customer
	for rows.Next() {
		customer, err := scanCustomer(rows)
		if err != nil {
			return nil, err
		}
		customers = append(customers, *customer)
	}
	if err := rows.Err(); err != nil {
		return nil, apperrors.NewAppError(500, "failed reading customer rows", err)
	}
	return customers, nil
}

// SaveCustomer inserts the customer and their initial account in one database
// transaction. The unique index on national_id is the authority on duplicates;
// a violation surfaces as apperrors.ErrDuplicate.
func (r *PgxCustomerRepository) SaveCustomer(ctx context.Context, customer domain.Customer, initialAccount domain.Account) (*domain.Customer, *domain.Account, error) {
	tx, err := r.Begin(ctx)
	if err != nil {
		return nil, nil, err
	}
	defer r.Rollback(ctx, tx)

	err = tx.QueryRow(ctx, `
		INSERT INTO customers (first_name, last_name, address, city, postal_code, birthday, national_id, telephone, email, country_code)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)
		RETURNING customer_id;
	`,
		customer.FirstName,
		customer.LastName,
		customer.Address,
		customer.City,
		customer.PostalCode,
		customer.Birthday,
		customer.NationalID,
		customer.Telephone,
		customer.Email,
		customer.CountryCode,
	).Scan(&customer.CustomerID)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == uniqueViolation {
			return nil, nil, apperrors.ErrDuplicate
		}
		return nil, nil, apperrors.NewAppError(500, "failed to insert customer", err)
	}

	initialAccount.CustomerID = customer.CustomerID
	err = tx.QueryRow(ctx, `
		INSERT INTO accounts (account_type, created, balance, customer_id)
		VALUES ($1, $2, $3, $4)
		RETURNING account_id;
	`,
		string(initialAccount.AccountType),
		initialAccount.Created,
		initialAccount.Balance,
		initialAccount.CustomerID,
	).Scan(&initialAccount.AccountID)
	if err != nil {
		return nil, nil, apperrors.NewAppError(500, "failed to insert initial account", err)
	}

	if err := r.Commit(ctx, tx); err != nil {
		return nil, nil, err
	}
	return &customer, &initialAccount, nil
}
