package repositories

import (
	"context"

	"github.com/testbanken/backoffice/internal/core/domain"
)

// CustomerRepositoryFacade defines access to customers.
type CustomerRepositoryFacade interface {
	// FindCustomerByID returns the customer or apperrors.ErrNotFound.
	FindCustomerByID(ctx context.Context, customerID int64) (*domain.Customer, error)
	// FindCustomersByCountry returns all customers registered in the country.
	FindCustomersByCountry(ctx context.Context, countryCode string) ([]domain.Customer, error)
	// SaveCustomer persists a new customer together with their initial
	// account in one atomic unit and returns both with ids assigned.
	// Returns apperrors.ErrDuplicate if the national id is already taken.
	SaveCustomer(ctx context.Context, customer domain.Customer, initialAccount domain.Account) (*domain.Customer, *domain.Account, error)
}

// CountryRepositoryFacade defines read access to country reference data.
type CountryRepositoryFacade interface {
	FindAllCountries(ctx context.Context) ([]domain.Country, error)
	// FindCountryByCode returns the country or apperrors.ErrNotFound.
	FindCountryByCode(ctx context.Context, countryCode string) (*domain.Country, error)
}

// ReportingRepositoryFacade serves the back-office overview aggregates.
type ReportingRepositoryFacade interface {
	CountryStats(ctx context.Context) ([]domain.CountryStat, error)
}
