package pgsql

import (
	"context"
	"errors"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/shopspring/decimal"

	"github.com/testbanken/backoffice/internal/apperrors"
	"github.com/testbanken/backoffice/internal/core/domain"
	portsrepo "github.com/testbanken/backoffice/internal/core/ports/repositories"
	"github.com/testbanken/backoffice/internal/models"
	"github.com/testbanken/backoffice/internal/utils/mapping"
)

type PgxTransactionRepository struct {
	BaseRepository
}

// newPgxTransactionRepository creates the only writer of balances and
// transaction rows.
func newPgxTransactionRepository(pool *pgxpool.Pool) portsrepo.TransactionRepositoryFacade {
	return &PgxTransactionRepository{BaseRepository: BaseRepository{Pool: pool}}
}

var _ portsrepo.TransactionRepositoryFacade = (*PgxTransactionRepository)(nil)

const selectTransactionColumns = `
	SELECT t.transaction_id, t.transaction_type, t.timestamp, t.amount, t.new_balance, t.account_id, t.checked
	FROM transactions t
`

// lockAccountBalance reads an account's balance under a row lock so the
// funds check and balance update serialize per account.
func lockAccountBalance(ctx context.Context, tx pgx.Tx, accountID int64) (decimal.Decimal, error) {
	var balance decimal.Decimal
	err := tx.QueryRow(ctx, `SELECT balance FROM accounts WHERE account_id = $1 FOR UPDATE;`, accountID).Scan(&balance)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return decimal.Zero, apperrors.ErrNotFound
		}
		return decimal.Zero, apperrors.NewAppError(500, "failed to lock account row", err)
	}
	return balance, nil
}

// applyLeg inserts one transaction row and moves the balance it snapshots,
// assuming the account row is already locked. balance is the pre-transaction
// balance; the caller threads the returned new balance into any further leg
// touching the same account.
func applyLeg(ctx context.Context, tx pgx.Tx, accountID int64, balance, amount decimal.Decimal, txnType domain.TransactionType, at time.Time) (*domain.Transaction, error) {
	var newBalance decimal.Decimal
	switch txnType {
	case domain.Deposit:
		newBalance = balance.Add(amount)
	case domain.Withdraw:
		if amount.GreaterThan(balance) {
			return nil, apperrors.ErrInsufficientFunds
		}
		newBalance = balance.Sub(amount)
	default:
		return nil, apperrors.ErrValidation
	}

	var transactionID int64
	err := tx.QueryRow(ctx, `
		INSERT INTO transactions (transaction_type, timestamp, amount, new_balance, account_id, checked)
		VALUES ($1, $2, $3, $4, $5, FALSE)
		RETURNING transaction_id;
	`, string(txnType), at, amount, newBalance, accountID).Scan(&transactionID)
	if err != nil {
		return nil, apperrors.NewAppError(500, "failed to insert transaction", err)
	}

	if _, err := tx.Exec(ctx, `UPDATE accounts SET balance = $1 WHERE account_id = $2;`, newBalance, accountID); err != nil {
		return nil, apperrors.NewAppError(500, "failed to update account balance", err)
	}

	return &domain.Transaction{
		TransactionID:   transactionID,
		TransactionType: txnType,
		Timestamp:       at,
		Amount:          amount,
		NewBalance:      newBalance,
		AccountID:       accountID,
		Checked:         false,
	}, nil
}

// ExecuteTransaction applies one deposit or withdrawal atomically.
func (r *PgxTransactionRepository) ExecuteTransaction(ctx context.Context, accountID int64, amount decimal.Decimal, txnType domain.TransactionType, at time.Time) (*domain.Transaction, error) {
	tx, err := r.Begin(ctx)
	if err != nil {
		return nil, err
	}
	defer r.Rollback(ctx, tx)

	balance, err := lockAccountBalance(ctx, tx, accountID)
	if err != nil {
		return nil, err
	}

	txn, err := applyLeg(ctx, tx, accountID, balance, amount, txnType, at)
	if err != nil {
		return nil, err
	}

	if err := r.Commit(ctx, tx); err != nil {
		return nil, err
	}
	return txn, nil
}

// ExecuteTransfer applies both legs inside one database transaction. Account
// rows are locked in ascending id order so two opposing transfers cannot
// deadlock; a failure of either leg rolls the whole transfer back.
func (r *PgxTransactionRepository) ExecuteTransfer(ctx context.Context, fromAccountID, toAccountID int64, amount decimal.Decimal, at time.Time) (*domain.Transaction, *domain.Transaction, error) {
	tx, err := r.Begin(ctx)
	if err != nil {
		return nil, nil, err
	}
	defer r.Rollback(ctx, tx)

	lockOrder := []int64{fromAccountID, toAccountID}
	if toAccountID < fromAccountID {
		lockOrder = []int64{toAccountID, fromAccountID}
	}

	balances := make(map[int64]decimal.Decimal, 2)
	for _, accountID := range lockOrder {
		balance, err := lockAccountBalance(ctx, tx, accountID)
		if err != nil {
			return nil, nil, err
		}
		balances[accountID] = balance
	}

	withdrawal, err := applyLeg(ctx, tx, fromAccountID, balances[fromAccountID], amount, domain.Withdraw, at)
	if err != nil {
		return nil, nil, err
	}
	deposit, err := applyLeg(ctx, tx, toAccountID, balances[toAccountID], amount, domain.Deposit, at)
	if err != nil {
		return nil, nil, err
	}

	if err := r.Commit(ctx, tx); err != nil {
		return nil, nil, err
	}
	return withdrawal, deposit, nil
}

// FindUncheckedTransactionsOnDate returns the customer's not-yet-audited
// transactions on the given calendar day.
func (r *PgxTransactionRepository) FindUncheckedTransactionsOnDate(ctx context.Context, customerID int64, day time.Time) ([]domain.Transaction, error) {
	year, month, d := day.Date()
	dayStart := time.Date(year, month, d, 0, 0, 0, 0, day.Location())
	dayEnd := dayStart.AddDate(0, 0, 1)

	rows, err := r.Pool.Query(ctx, selectTransactionColumns+`
		JOIN accounts a ON a.account_id = t.account_id
		WHERE a.customer_id = $1 AND t.checked = FALSE AND t.timestamp >= $2 AND t.timestamp < $3
		ORDER BY t.timestamp;
	`, customerID, dayStart, dayEnd)
	if err != nil {
		return nil, apperrors.NewAppError(500, "failed to query unchecked transactions", err)
	}
	defer rows.Close()

	return scanTransactions(rows)
}

// FindTransactionsSince returns every transaction of the customer from the
// given instant onwards, checked or not.
func (r *PgxTransactionRepository) FindTransactionsSince(ctx context.Context, customerID int64, from time.Time) ([]domain.Transaction, error) {
	rows, err := r.Pool.Query(ctx, selectTransactionColumns+`
		JOIN accounts a ON a.account_id = t.account_id
		WHERE a.customer_id = $1 AND t.timestamp >= $2
		ORDER BY t.timestamp;
	`, customerID, from)
	if err != nil {
		return nil, apperrors.NewAppError(500, "failed to query recent transactions", err)
	}
	defer rows.Close()

	return scanTransactions(rows)
}

// SumTransactionsSince sums the customer's transaction amounts from the given
// instant onwards.
func (r *PgxTransactionRepository) SumTransactionsSince(ctx context.Context, customerID int64, from time.Time) (decimal.Decimal, error) {
	var sum decimal.Decimal
	err := r.Pool.QueryRow(ctx, `
		SELECT COALESCE(SUM(t.amount), 0)
		FROM transactions t
		JOIN accounts a ON a.account_id = t.account_id
		WHERE a.customer_id = $1 AND t.timestamp >= $2;
	`, customerID, from).Scan(&sum)
	if err != nil {
		return decimal.Zero, apperrors.NewAppError(500, "failed to sum recent transactions", err)
	}
	return sum, nil
}

// MarkTransactionsChecked sets the checked flag for all given ids at once.
func (r *PgxTransactionRepository) MarkTransactionsChecked(ctx context.Context, transactionIDs []int64) error {
	if len(transactionIDs) == 0 {
		return nil
	}
	_, err := r.Pool.Exec(ctx, `UPDATE transactions SET checked = TRUE WHERE transaction_id = ANY($1);`, transactionIDs)
	if err != nil {
		return apperrors.NewAppError(500, "failed to mark transactions checked", err)
	}
	return nil
}

// ListTransactionsByAccount returns a page of an account's history, newest first.
func (r *PgxTransactionRepository) ListTransactionsByAccount(ctx context.Context, accountID int64, limit, offset int) ([]domain.Transaction, error) {
	rows, err := r.Pool.Query(ctx, selectTransactionColumns+`
		WHERE t.account_id = $1
		ORDER BY t.timestamp DESC
		LIMIT $2 OFFSET $3;
	`, accountID, limit, offset)
	if err != nil {
		return nil, apperrors.NewAppError(500, "failed to query account transactions", err)
	}
	defer rows.Close()

	return scanTransactions(rows)
}

// CountTransactionsByAccount returns the total number of transactions on the account.
func (r *PgxTransactionRepository) CountTransactionsByAccount(ctx context.Context, accountID int64) (int64, error) {
	var count int64
	err := r.Pool.QueryRow(ctx, `SELECT COUNT(*) FROM transactions WHERE account_id = $1;`, accountID).Scan(&count)
	if err != nil {
		return 0, apperrors.NewAppError(500, "failed to count account transactions", err)
	}
	return count, nil
}

func scanTransactions(rows pgx.Rows) ([]domain.Transaction, error) {
	var txns []domain.Transaction
	for rows.Next() {
		var m models.Transaction
		if err := rows.Scan(
			&m.TransactionID,
			&m.TransactionType,
			&m.Timestamp,
			&m.Amount,
			&m.NewBalance,
			&m.AccountID,
			&m.Checked,
		); err != nil {
			return nil, apperrors.NewAppError(500, "failed to scan transaction row", err)
		}
		txns = append(txns, mapping.ToDomainTransaction(m))
	}
	if err := rows.Err(); err != nil {
		return nil, apperrors.NewAppError(500, "failed reading transaction rows", err)
	}
	return txns, nil
}
