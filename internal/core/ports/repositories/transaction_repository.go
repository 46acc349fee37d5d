package repositories

import (
	"context"
	"time"

	"github.com/shopspring/decimal"
	"github.com/testbanken/backoffice/internal/core/domain"
)

// TransactionRepositoryFacade is the only writer of account balances and the
// only creator of transaction rows. Execute* methods apply the transaction
// insert and the balance update as a single atomic unit, re-checking the
// balance under a row lock so concurrent withdrawals against the same account
// serialize instead of jointly overdrawing it.
type TransactionRepositoryFacade interface {
	// ExecuteTransaction applies one deposit or withdrawal. Returns
	// apperrors.ErrNotFound if the account does not exist and
	// apperrors.ErrInsufficientFunds if a withdrawal exceeds the balance
	// read under lock.
	ExecuteTransaction(ctx context.Context, accountID int64, amount decimal.Decimal, txnType domain.TransactionType, at time.Time) (*domain.Transaction, error)

	// ExecuteTransfer applies the withdraw leg on fromAccountID and the
	// deposit leg on toAccountID inside one database transaction; a failure
	// of either leg leaves no partial state.
	ExecuteTransfer(ctx context.Context, fromAccountID, toAccountID int64, amount decimal.Decimal, at time.Time) (*domain.Transaction, *domain.Transaction, error)

	// FindUncheckedTransactionsOnDate returns the customer's transactions on
	// the given calendar day that have not been evaluated by an audit pass.
	FindUncheckedTransactionsOnDate(ctx context.Context, customerID int64, day time.Time) ([]domain.Transaction, error)

	// FindTransactionsSince returns every transaction of the customer with a
	// timestamp at or after from, regardless of the checked flag.
	FindTransactionsSince(ctx context.Context, customerID int64, from time.Time) ([]domain.Transaction, error)

	// SumTransactionsSince returns the sum of the customer's transaction
	// amounts with a timestamp at or after from.
	SumTransactionsSince(ctx context.Context, customerID int64, from time.Time) (decimal.Decimal, error)

	// MarkTransactionsChecked persists the checked flag for all given ids in
	// one atomic unit.
	MarkTransactionsChecked(ctx context.Context, transactionIDs []int64) error

	// ListTransactionsByAccount returns transactions for an account, newest
	// first, with limit/offset paging.
	ListTransactionsByAccount(ctx context.Context, accountID int64, limit, offset int) ([]domain.Transaction, error)

	// CountTransactionsByAccount returns the total number of transactions on
	// the account.
	CountTransactionsByAccount(ctx context.Context, accountID int64) (int64, error)
}
