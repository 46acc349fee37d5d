package handlers_test

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"

	"github.com/testbanken/backoffice/internal/apperrors"
	"github.com/testbanken/backoffice/internal/core/domain"
	portssvc "github.com/testbanken/backoffice/internal/core/ports/services"
	"github.com/testbanken/backoffice/internal/dto"
	"github.com/testbanken/backoffice/internal/handlers"
)

// --- Mock LedgerService ---
type MockLedgerService struct {
	mock.Mock
}

func (m *MockLedgerService) ProcessTransaction(ctx context.Context, accountID int64, amount decimal.Decimal, txnType domain.TransactionType) (*domain.Transaction, error) {
	args := m.Called(ctx, accountID, amount, txnType)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Transaction), args.Error(1)
}
func (m *MockLedgerService) ProcessTransfer(ctx context.Context, fromAccountID, toAccountID int64, amount decimal.Decimal) (*domain.Transaction, *domain.Transaction, error) {
	args := m.Called(ctx, fromAccountID, toAccountID, amount)
	if args.Get(0) == nil {
		return nil, nil, args.Error(2)
	}
	return args.Get(0).(*domain.Transaction), args.Get(1).(*domain.Transaction), args.Error(2)
}
func (m *MockLedgerService) GetAccount(ctx context.Context, accountID int64) (*domain.Account, error) {
	args := m.Called(ctx, accountID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Account), args.Error(1)
}
func (m *MockLedgerService) ListTransactions(ctx context.Context, accountID int64, page, perPage int) (*dto.ListTransactionsResponse, error) {
	args := m.Called(ctx, accountID, page, perPage)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*dto.ListTransactionsResponse), args.Error(1)
}

// Ensure mock implements the interface
var _ portssvc.LedgerSvcFacade = (*MockLedgerService)(nil)

// --- Test Suite ---
type LedgerHandlerTestSuite struct {
	suite.Suite
	router            *gin.Engine
	mockLedgerService *MockLedgerService
}

func (suite *LedgerHandlerTestSuite) SetupTest() {
	gin.SetMode(gin.TestMode)
	suite.router = gin.New()
	suite.mockLedgerService = new(MockLedgerService)

	v1 := suite.router.Group("/api/v1")
	handlers.RegisterLedgerRoutes(v1, suite.mockLedgerService)
}

func (suite *LedgerHandlerTestSuite) performJSON(method, path string, body any) *httptest.ResponseRecorder {
	var buf bytes.Buffer
	if body != nil {
		suite.Require().NoError(json.NewEncoder(&buf).Encode(body))
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	rr := httptest.NewRecorder()
	suite.router.ServeHTTP(rr, req)
	return rr
}

// --- Test Cases ---

func (suite *LedgerHandlerTestSuite) TestDeposit_Success() {
	amount := decimal.RequireFromString("200.00")
	txn := &domain.Transaction{
		TransactionID:   1,
		TransactionType: domain.Deposit,
		Amount:          amount,
		NewBalance:      decimal.RequireFromString("700.00"),
		AccountID:       5,
	}
	suite.mockLedgerService.On("ProcessTransaction", mock.Anything, int64(5), mock.MatchedBy(amount.Equal), domain.Deposit).Return(txn, nil)

	rr := suite.performJSON(http.MethodPost, "/api/v1/accounts/5/deposit", dto.TransactionRequest{Amount: amount})

	suite.Equal(http.StatusCreated, rr.Code)
	var resp dto.TransactionResponse
	suite.Require().NoError(json.Unmarshal(rr.Body.Bytes(), &resp))
	suite.Equal(int64(1), resp.TransactionID)
	suite.True(resp.NewBalance.Equal(decimal.RequireFromString("700.00")))
	suite.mockLedgerService.AssertExpectations(suite.T())
}

func (suite *LedgerHandlerTestSuite) TestWithdraw_InsufficientFunds() {
	amount := decimal.RequireFromString("900.00")
	suite.mockLedgerService.On("ProcessTransaction", mock.Anything, int64(5), mock.MatchedBy(amount.Equal), domain.Withdraw).Return(nil, apperrors.ErrInsufficientFunds)

	rr := suite.performJSON(http.MethodPost, "/api/v1/accounts/5/withdraw", dto.TransactionRequest{Amount: amount})

	suite.Equal(http.StatusBadRequest, rr.Code)
	var resp map[string]string
	suite.Require().NoError(json.Unmarshal(rr.Body.Bytes(), &resp))
	suite.Equal("insufficient funds for transaction", resp["error"])
}

func (suite *LedgerHandlerTestSuite) TestGetAccount_NotFound() {
	suite.mockLedgerService.On("GetAccount", mock.Anything, int64(99)).Return(nil, apperrors.ErrNotFound)

	rr := suite.performJSON(http.MethodGet, "/api/v1/accounts/99", nil)

	suite.Equal(http.StatusNotFound, rr.Code)
}

func (suite *LedgerHandlerTestSuite) TestGetAccount_InvalidID() {
	rr := suite.performJSON(http.MethodGet, "/api/v1/accounts/not-a-number", nil)

	suite.Equal(http.StatusBadRequest, rr.Code)
	suite.mockLedgerService.AssertNotCalled(suite.T(), "GetAccount", mock.Anything, mock.Anything)
}

func (suite *LedgerHandlerTestSuite) TestTransfer_Success() {
	amount := decimal.RequireFromString("40.00")
	withdrawal := &domain.Transaction{TransactionID: 1, TransactionType: domain.Withdraw, Amount: amount, AccountID: 1}
	deposit := &domain.Transaction{TransactionID: 2, TransactionType: domain.Deposit, Amount: amount, AccountID: 2}
	suite.mockLedgerService.On("ProcessTransfer", mock.Anything, int64(1), int64(2), mock.MatchedBy(amount.Equal)).Return(withdrawal, deposit, nil)

	rr := suite.performJSON(http.MethodPost, "/api/v1/transfers", dto.TransferRequest{FromAccountID: 1, ToAccountID: 2, Amount: amount})

	suite.Equal(http.StatusCreated, rr.Code)
	var resp dto.TransferResponse
	suite.Require().NoError(json.Unmarshal(rr.Body.Bytes(), &resp))
	suite.Equal(int64(1), resp.Withdrawal.TransactionID)
	suite.Equal(int64(2), resp.Deposit.TransactionID)
}

func (suite *LedgerHandlerTestSuite) TestTransfer_SameAccount() {
	amount := decimal.RequireFromString("40.00")
	suite.mockLedgerService.On("ProcessTransfer", mock.Anything, int64(1), int64(1), mock.MatchedBy(amount.Equal)).Return(nil, nil, apperrors.ErrSameAccountTransfer)

	rr := suite.performJSON(http.MethodPost, "/api/v1/transfers", dto.TransferRequest{FromAccountID: 1, ToAccountID: 1, Amount: amount})

	suite.Equal(http.StatusBadRequest, rr.Code)
}

func (suite *LedgerHandlerTestSuite) TestListTransactions() {
	suite.mockLedgerService.On("ListTransactions", mock.Anything, int64(5), 2, 10).Return(&dto.ListTransactionsResponse{
		Transactions: []dto.TransactionResponse{},
		Total:        42,
		Page:         2,
		PerPage:      10,
	}, nil)

	rr := suite.performJSON(http.MethodGet, "/api/v1/accounts/5/transactions?page=2&perPage=10", nil)

	suite.Equal(http.StatusOK, rr.Code)
	var resp dto.ListTransactionsResponse
	suite.Require().NoError(json.Unmarshal(rr.Body.Bytes(), &resp))
	suite.Equal(int64(42), resp.Total)
}

func TestLedgerHandlerTestSuite(t *testing.T) {
	suite.Run(t, new(LedgerHandlerTestSuite))
}
