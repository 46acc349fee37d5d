package services_test

import (
	"context"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/mock"

	"github.com/testbanken/backoffice/internal/core/domain"
	portsrepo "github.com/testbanken/backoffice/internal/core/ports/repositories"
	portssvc "github.com/testbanken/backoffice/internal/core/ports/services"
)

// --- Mock AccountRepository ---

type MockAccountRepository struct {
	mock.Mock
}

var _ portsrepo.AccountRepositoryFacade = (*MockAccountRepository)(nil)

func (m *MockAccountRepository) FindAccountByID(ctx context.Context, accountID int64) (*domain.Account, error) {
	args := m.Called(ctx, accountID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Account), args.Error(1)
}

func (m *MockAccountRepository) FindAccountsByCustomer(ctx context.Context, customerID int64) ([]domain.Account, error) {
	args := m.Called(ctx, customerID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Account), args.Error(1)
}

// --- Mock TransactionRepository ---

type MockTransactionRepository struct {
	mock.Mock
}

var _ portsrepo.TransactionRepositoryFacade = (*MockTransactionRepository)(nil)

func (m *MockTransactionRepository) ExecuteTransaction(ctx context.Context, accountID int64, amount decimal.Decimal, txnType domain.TransactionType, at time.Time) (*domain.Transaction, error) {
	args := m.Called(ctx, accountID, amount, txnType, at)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Transaction), args.Error(1)
}

func (m *MockTransactionRepository) ExecuteTransfer(ctx context.Context, fromAccountID, toAccountID int64, amount decimal.Decimal, at time.Time) (*domain.Transaction, *domain.Transaction, error) {
	args := m.Called(ctx, fromAccountID, toAccountID, amount, at)
	if args.Get(0) == nil {
		return nil, nil, args.Error(2)
	}
	return args.Get(0).(*domain.Transaction), args.Get(1).(*domain.Transaction), args.Error(2)
}

func (m *MockTransactionRepository) FindUncheckedTransactionsOnDate(ctx context.Context, customerID int64, day time.Time) ([]domain.Transaction, error) {
	args := m.Called(ctx, customerID, day)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Transaction), args.Error(1)
}

func (m *MockTransactionRepository) FindTransactionsSince(ctx context.Context, customerID int64, from time.Time) ([]domain.Transaction, error) {
	args := m.Called(ctx, customerID, from)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Transaction), args.Error(1)
}

func (m *MockTransactionRepository) SumTransactionsSince(ctx context.Context, customerID int64, from time.Time) (decimal.Decimal, error) {
	args := m.Called(ctx, customerID, from)
	return args.Get(0).(decimal.Decimal), args.Error(1)
}

func (m *MockTransactionRepository) MarkTransactionsChecked(ctx context.Context, transactionIDs []int64) error {
	args := m.Called(ctx, transactionIDs)
	return args.Error(0)
}

func (m *MockTransactionRepository) ListTransactionsByAccount(ctx context.Context, accountID int64, limit, offset int) ([]domain.Transaction, error) {
	args := m.Called(ctx, accountID, limit, offset)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Transaction), args.Error(1)
}

func (m *MockTransactionRepository) CountTransactionsByAccount(ctx context.Context, accountID int64) (int64, error) {
	args := m.Called(ctx, accountID)
	return args.Get(0).(int64), args.Error(1)
}

// --- Mock CustomerRepository ---

type MockCustomerRepository struct {
	mock.Mock
}

var _ portsrepo.CustomerRepositoryFacade = (*MockCustomerRepository)(nil)

func (m *MockCustomerRepository) FindCustomerByID(ctx context.Context, customerID int64) (*domain.Customer, error) {
	args := m.Called(ctx, customerID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Customer), args.Error(1)
}

func (m *MockCustomerRepository) FindCustomersByCountry(ctx context.Context, countryCode string) ([]domain.Customer, error) {
	args := m.Called(ctx, countryCode)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Customer), args.Error(1)
}

func (m *MockCustomerRepository) SaveCustomer(ctx context.Context, customer domain.Customer, initialAccount domain.Account) (*domain.Customer, *domain.Account, error) {
	args := m.Called(ctx, customer, initialAccount)
	if args.Get(0) == nil {
		return nil, nil, args.Error(2)
	}
	return args.Get(0).(*domain.Customer), args.Get(1).(*domain.Account), args.Error(2)
}

// --- Mock CountryRepository ---

type MockCountryRepository struct {
	mock.Mock
}

var _ portsrepo.CountryRepositoryFacade = (*MockCountryRepository)(nil)

func (m *MockCountryRepository) FindAllCountries(ctx context.Context) ([]domain.Country, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Country), args.Error(1)
}

func (m *MockCountryRepository) FindCountryByCode(ctx context.Context, countryCode string) (*domain.Country, error) {
	args := m.Called(ctx, countryCode)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Country), args.Error(1)
}

// --- Mock ReportingRepository ---

type MockReportingRepository struct {
	mock.Mock
}

var _ portsrepo.ReportingRepositoryFacade = (*MockReportingRepository)(nil)

func (m *MockReportingRepository) CountryStats(ctx context.Context) ([]domain.CountryStat, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.CountryStat), args.Error(1)
}

// --- Mock Notifier ---

type MockNotifier struct {
	mock.Mock
}

var _ portssvc.Notifier = (*MockNotifier)(nil)

func (m *MockNotifier) Send(ctx context.Context, recipient, subject, body string) error {
	args := m.Called(ctx, recipient, subject, body)
	return args.Error(0)
}
