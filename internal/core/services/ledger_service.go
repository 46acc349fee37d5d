package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/shopspring/decimal"

	"github.com/testbanken/backoffice/internal/apperrors"
	"github.com/testbanken/backoffice/internal/core/domain"
	portsrepo "github.com/testbanken/backoffice/internal/core/ports/repositories"
	portssvc "github.com/testbanken/backoffice/internal/core/ports/services"
	"github.com/testbanken/backoffice/internal/dto"
	"github.com/testbanken/backoffice/internal/middleware"
)

const (
	defaultTransactionsPerPage = 20
	maxTransactionsPerPage     = 100
)

// ledgerService is the transaction engine. It validates transactions and
// transfers before handing them to the repository, which applies the record
// insert and balance update as one atomic unit. The repository re-checks the
// balance under a row lock, so the engine's own funds check can never be the
// only line of defence against concurrent overdrafts.
type ledgerService struct {
	accountRepo portsrepo.AccountRepositoryFacade
	txnRepo     portsrepo.TransactionRepositoryFacade
}

// NewLedgerService creates a new transaction engine.
func NewLedgerService(accountRepo portsrepo.AccountRepositoryFacade, txnRepo portsrepo.TransactionRepositoryFacade) portssvc.LedgerSvcFacade {
	return &ledgerService{
		accountRepo: accountRepo,
		txnRepo:     txnRepo,
	}
}

var _ portssvc.LedgerSvcFacade = (*ledgerService)(nil)

// validateAmount rejects zero and negative amounts for every transaction type.
func validateAmount(amount decimal.Decimal) error {
	if amount.LessThanOrEqual(decimal.Zero) {
		return apperrors.ErrNegativeOrZeroAmount
	}
	return nil
}

// ProcessTransaction executes a single deposit or withdrawal against an account.
// Implements portssvc.LedgerSvcFacade
func (s *ledgerService) ProcessTransaction(ctx context.Context, accountID int64, amount decimal.Decimal, txnType domain.TransactionType) (*domain.Transaction, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	if err := validateAmount(amount); err != nil {
		return nil, err
	}
	if txnType != domain.Deposit && txnType != domain.Withdraw {
		return nil, fmt.Errorf("%w: unknown transaction type %q", apperrors.ErrValidation, txnType)
	}

	account, err := s.accountRepo.FindAccountByID(ctx, accountID)
	if err != nil {
		if !errors.Is(err, apperrors.ErrNotFound) {
			logger.Error("Failed to fetch account for transaction", slog.Int64("account_id", accountID), slog.String("error", err.Error()))
		}
		return nil, fmt.Errorf("failed to find account %d: %w", accountID, err)
	}

	if txnType == domain.Withdraw && amount.GreaterThan(account.Balance) {
		return nil, apperrors.ErrInsufficientFunds
	}

	txn, err := s.txnRepo.ExecuteTransaction(ctx, accountID, amount, txnType, time.Now().UTC())
	if err != nil {
		// ErrInsufficientFunds can still surface here when a concurrent
		// withdrawal drained the balance between the read and the row lock.
		if !errors.Is(err, apperrors.ErrInsufficientFunds) && !errors.Is(err, apperrors.ErrNotFound) {
			logger.Error("Failed to execute transaction", slog.Int64("account_id", accountID), slog.String("error", err.Error()))
		}
		return nil, err
	}

	logger.Info("Transaction executed",
		slog.Int64("transaction_id", txn.TransactionID),
		slog.Int64("account_id", accountID),
		slog.String("type", string(txnType)),
		slog.String("amount", amount.String()),
	)
	return txn, nil
}

// ProcessTransfer executes a withdraw on fromAccountID and a deposit on
// toAccountID as one atomic unit. A failure of either leg persists nothing.
// Implements portssvc.LedgerSvcFacade
func (s *ledgerService) ProcessTransfer(ctx context.Context, fromAccountID, toAccountID int64, amount decimal.Decimal) (*domain.Transaction, *domain.Transaction, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	if err := validateAmount(amount); err != nil {
		return nil, nil, err
	}
	if fromAccountID == toAccountID {
		return nil, nil, apperrors.ErrSameAccountTransfer
	}

	fromAccount, err := s.accountRepo.FindAccountByID(ctx, fromAccountID)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to find source account %d: %w", fromAccountID, err)
	}
	if _, err := s.accountRepo.FindAccountByID(ctx, toAccountID); err != nil {
		return nil, nil, fmt.Errorf("failed to find destination account %d: %w", toAccountID, err)
	}

	if amount.GreaterThan(fromAccount.Balance) {
		return nil, nil, apperrors.ErrInsufficientFunds
	}

	withdrawal, deposit, err := s.txnRepo.ExecuteTransfer(ctx, fromAccountID, toAccountID, amount, time.Now().UTC())
	if err != nil {
		if !errors.Is(err, apperrors.ErrInsufficientFunds) && !errors.Is(err, apperrors.ErrNotFound) {
			logger.Error("Failed to execute transfer", slog.Int64("from_account_id", fromAccountID), slog.Int64("to_account_id", toAccountID), slog.String("error", err.Error()))
		}
		return nil, nil, err
	}

	logger.Info("Transfer executed",
		slog.Int64("from_account_id", fromAccountID),
		slog.Int64("to_account_id", toAccountID),
		slog.String("amount", amount.String()),
	)
	return withdrawal, deposit, nil
}

// GetAccount resolves an account by id.
// Implements portssvc.LedgerSvcFacade
func (s *ledgerService) GetAccount(ctx context.Context, accountID int64) (*domain.Account, error) {
	account, err := s.accountRepo.FindAccountByID(ctx, accountID)
	if err != nil {
		return nil, fmt.Errorf("failed to find account %d: %w", accountID, err)
	}
	return account, nil
}

// ListTransactions returns a page of the account's history, newest first.
// Implements portssvc.LedgerSvcFacade
func (s *ledgerService) ListTransactions(ctx context.Context, accountID int64, page, perPage int) (*dto.ListTransactionsResponse, error) {
	if page < 1 {
		page = 1
	}
	if perPage <= 0 {
		perPage = defaultTransactionsPerPage
	}
	if perPage > maxTransactionsPerPage {
		perPage = maxTransactionsPerPage
	}

	// Account existence check keeps a missing account a 404, not an empty page.
	if _, err := s.accountRepo.FindAccountByID(ctx, accountID); err != nil {
		return nil, fmt.Errorf("failed to find account %d: %w", accountID, err)
	}

	total, err := s.txnRepo.CountTransactionsByAccount(ctx, accountID)
	if err != nil {
		return nil, fmt.Errorf("failed to count transactions: %w", err)
	}

	offset := (page - 1) * perPage
	txns, err := s.txnRepo.ListTransactionsByAccount(ctx, accountID, perPage, offset)
	if err != nil {
		return nil, fmt.Errorf("failed to retrieve transactions: %w", err)
	}

	return &dto.ListTransactionsResponse{
		Transactions: dto.ToTransactionResponses(txns),
		Total:        total,
		Page:         page,
		PerPage:      perPage,
	}, nil
}
