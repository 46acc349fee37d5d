package handlers

import (
	"errors"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/testbanken/backoffice/internal/apperrors"
	"github.com/testbanken/backoffice/internal/core/domain"
	portssvc "github.com/testbanken/backoffice/internal/core/ports/services"
	"github.com/testbanken/backoffice/internal/dto"
	"github.com/testbanken/backoffice/internal/middleware"
)

// ledgerHandler handles HTTP requests for accounts, transactions and transfers.
type ledgerHandler struct {
	ledgerService portssvc.LedgerSvcFacade
}

func newLedgerHandler(ls portssvc.LedgerSvcFacade) *ledgerHandler {
	return &ledgerHandler{ledgerService: ls}
}

// RegisterLedgerRoutes registers account and transfer routes.
func RegisterLedgerRoutes(rg *gin.RouterGroup, ledgerService portssvc.LedgerSvcFacade) {
	h := newLedgerHandler(ledgerService)

	accounts := rg.Group("/accounts")
	{
		accounts.GET("/:id", h.getAccount)
		accounts.GET("/:id/transactions", h.listTransactions)
		accounts.POST("/:id/deposit", h.deposit)
		accounts.POST("/:id/withdraw", h.withdraw)
	}
	rg.POST("/transfers", h.transfer)
}

// respondLedgerError maps error kinds to HTTP statuses. Routine teller
// failures (insufficient funds, bad amounts) surface verbatim so the operator
// sees the exact reason.
func respondLedgerError(c *gin.Context, logger *slog.Logger, err error) {
	switch {
	case errors.Is(err, apperrors.ErrNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": "Account not found"})
	case errors.Is(err, apperrors.ErrNegativeOrZeroAmount),
		errors.Is(err, apperrors.ErrInsufficientFunds),
		errors.Is(err, apperrors.ErrSameAccountTransfer),
		errors.Is(err, apperrors.ErrValidation):
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
	default:
		logger.Error("Ledger operation failed", slog.String("error", err.Error()))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to process request"})
	}
}

func accountIDParam(c *gin.Context) (int64, bool) {
	accountID, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid account id"})
		return 0, false
	}
	return accountID, true
}

func (h *ledgerHandler) getAccount(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	accountID, ok := accountIDParam(c)
	if !ok {
		return
	}

	account, err := h.ledgerService.GetAccount(c.Request.Context(), accountID)
	if err != nil {
		respondLedgerError(c, logger, err)
		return
	}

	c.JSON(http.StatusOK, account)
}

func (h *ledgerHandler) listTransactions(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	accountID, ok := accountIDParam(c)
	if !ok {
		return
	}
	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	perPage, _ := strconv.Atoi(c.DefaultQuery("perPage", "20"))

	resp, err := h.ledgerService.ListTransactions(c.Request.Context(), accountID, page, perPage)
	if err != nil {
		respondLedgerError(c, logger, err)
		return
	}

	c.JSON(http.StatusOK, resp)
}

func (h *ledgerHandler) deposit(c *gin.Context) {
	h.processTransaction(c, domain.Deposit)
}

func (h *ledgerHandler) withdraw(c *gin.Context) {
	h.processTransaction(c, domain.Withdraw)
}

func (h *ledgerHandler) processTransaction(c *gin.Context, txnType domain.TransactionType) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	accountID, ok := accountIDParam(c)
	if !ok {
		return
	}

	var req dto.TransactionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.Warn("Failed to bind JSON for transaction", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format: " + err.Error()})
		return
	}

	txn, err := h.ledgerService.ProcessTransaction(c.Request.Context(), accountID, req.Amount, txnType)
	if err != nil {
		respondLedgerError(c, logger, err)
		return
	}

	c.JSON(http.StatusCreated, dto.ToTransactionResponse(txn))
}

func (h *ledgerHandler) transfer(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	var req dto.TransferRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.Warn("Failed to bind JSON for transfer", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format: " + err.Error()})
		return
	}

	withdrawal, deposit, err := h.ledgerService.ProcessTransfer(c.Request.Context(), req.FromAccountID, req.ToAccountID, req.Amount)
	if err != nil {
		respondLedgerError(c, logger, err)
		return
	}

	c.JSON(http.StatusCreated, dto.TransferResponse{
		Withdrawal: dto.ToTransactionResponse(withdrawal),
		Deposit:    dto.ToTransactionResponse(deposit),
	})
}
