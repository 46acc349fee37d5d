package repositories

import (
	"context"

	"github.com/testbanken/backoffice/internal/core/domain"
)

// AccountRepositoryFacade defines read access to accounts. Balance writes go
// exclusively through TransactionRepositoryFacade so that the balance check
// and update stay one atomic unit.
type AccountRepositoryFacade interface {
	// FindAccountByID returns the account or apperrors.ErrNotFound.
	FindAccountByID(ctx context.Context, accountID int64) (*domain.Account, error)
	// FindAccountsByCustomer returns all accounts owned by the customer.
	FindAccountsByCustomer(ctx context.Context, customerID int64) ([]domain.Account, error)
}
