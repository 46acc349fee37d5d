package dto

import (
	"time"

	"github.com/shopspring/decimal"
	"github.com/testbanken/backoffice/internal/core/domain"
)

// TransactionRequest is the payload for a deposit or withdrawal.
// Amount validation (strictly positive, covered funds) happens in the
// transaction engine so the error taxonomy stays in one place.
type TransactionRequest struct {
	Amount decimal.Decimal `json:"amount" binding:"required"`
}

// TransferRequest is the payload for a two-leg transfer.
type TransferRequest struct {
	FromAccountID int64           `json:"fromAccountID" binding:"required"`
	ToAccountID   int64           `json:"toAccountID" binding:"required"`
	Amount        decimal.Decimal `json:"amount" binding:"required"`
}

// TransactionResponse mirrors a persisted transaction.
type TransactionResponse struct {
	TransactionID   int64                  `json:"transactionID"`
	TransactionType domain.TransactionType `json:"transactionType"`
	Timestamp       time.Time              `json:"timestamp"`
	Amount          decimal.Decimal        `json:"amount"`
	NewBalance      decimal.Decimal        `json:"newBalance"`
	AccountID       int64                  `json:"accountID"`
}

// TransferResponse carries both legs of a completed transfer.
type TransferResponse struct {
	Withdrawal TransactionResponse `json:"withdrawal"`
	Deposit    TransactionResponse `json:"deposit"`
}

// ListTransactionsResponse is a page of an account's transaction history.
type ListTransactionsResponse struct {
	Transactions []TransactionResponse `json:"transactions"`
	Total        int64                 `json:"total"`
	Page         int                   `json:"page"`
	PerPage      int                   `json:"perPage"`
}

// ToTransactionResponse maps a domain transaction to its response shape.
func ToTransactionResponse(t *domain.Transaction) TransactionResponse {
	return TransactionResponse{
		TransactionID:   t.TransactionID,
		TransactionType: t.TransactionType,
		Timestamp:       t.Timestamp,
		Amount:          t.Amount,
		NewBalance:      t.NewBalance,
		AccountID:       t.AccountID,
	}
}

// ToTransactionResponses maps a slice of domain transactions.
func ToTransactionResponses(txns []domain.Transaction) []TransactionResponse {
	out := make([]TransactionResponse, len(txns))
	for i := range txns {
		out[i] = ToTransactionResponse(&txns[i])
	}
	return out
}
